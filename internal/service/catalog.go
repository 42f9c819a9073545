package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// TrendingLimit caps each trending row
const TrendingLimit = 10

// credentialed is implemented by repositories that know whether they can authenticate
type credentialed interface {
	HasCredentials() bool
}

// CatalogService is the boundary between the catalog repository and the views.
// Failures are logged and converted into empty results; callers never see an error.
type CatalogService struct {
	repo   domain.CatalogRepository
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo domain.CatalogRepository, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{repo: repo, logger: logger}
}

// ready reports whether the repository can be called at all
func (s *CatalogService) ready() bool {
	if c, ok := s.repo.(credentialed); ok && !c.HasCredentials() {
		s.logger.Error("catalog credentials missing")
		return false
	}
	return true
}

// logFailure records a swallowed repository error
func (s *CatalogService) logFailure(op string, err error, attrs ...any) {
	if errors.Is(err, context.Canceled) {
		s.logger.Debug("catalog request cancelled", append([]any{"op", op}, attrs...)...)
		return
	}
	args := append([]any{"op", op, "status", failureStatus(err), "error", err}, attrs...)
	s.logger.Error("catalog request failed", args...)
}

// failureStatus classifies an error for log output
func failureStatus(err error) string {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAuthFailed):
		return "unauthorized"
	case errors.Is(err, domain.ErrServerOffline):
		return "offline"
	case errors.Is(err, domain.ErrUnexpectedStatus):
		return "bad_status"
	case errors.Is(err, domain.ErrUnsupportedList):
		return "unsupported"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "malformed"
	}
}

// Trending returns at most TrendingLimit items trending this week
func (s *CatalogService) Trending(ctx context.Context, kind domain.MediaKind) []domain.MediaItem {
	if !s.ready() {
		return nil
	}
	items, err := s.repo.Trending(ctx, kind)
	if err != nil {
		s.logFailure("trending", err, "kind", kind)
		return nil
	}
	if len(items) > TrendingLimit {
		items = items[:TrendingLimit]
	}
	return items
}

// List returns one page of a curated list. On failure the page is empty.
func (s *CatalogService) List(ctx context.Context, kind domain.MediaKind, listType domain.ListType, page int) *domain.Page {
	if page < 1 {
		page = 1
	}
	empty := &domain.Page{Page: page, TotalPages: 1}
	if !s.ready() {
		return empty
	}
	result, err := s.repo.List(ctx, kind, listType, page)
	if err != nil {
		s.logFailure("list", err, "kind", kind, "list", listType, "page", page)
		return empty
	}
	return result
}

// Details returns the record for id, or nil when it cannot be loaded.
// Empty or non-numeric ids return nil without a request, and a record
// whose id differs from the requested one counts as missing.
func (s *CatalogService) Details(ctx context.Context, kind domain.MediaKind, id string) *domain.MediaItem {
	want, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || want <= 0 {
		return nil
	}
	if !s.ready() {
		return nil
	}
	item, err := s.repo.Details(ctx, kind, strconv.Itoa(want))
	if err != nil {
		s.logFailure("details", err, "kind", kind, "id", want)
		return nil
	}
	if item == nil || item.ID != want {
		s.logger.Warn("details id mismatch", "kind", kind, "id", want)
		return nil
	}
	return item
}

// Search runs a multi-kind search and keeps only items with an image.
// A blank query returns nothing without touching the network.
func (s *CatalogService) Search(ctx context.Context, query string) []domain.MediaItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if !s.ready() {
		return nil
	}
	items, err := s.repo.Search(ctx, query)
	if err != nil {
		s.logFailure("search", err, "query", query)
		return nil
	}
	return FilterDisplayable(items)
}

// FilterDisplayable drops items with neither a poster nor a profile image, preserving order
func FilterDisplayable(items []domain.MediaItem) []domain.MediaItem {
	out := make([]domain.MediaItem, 0, len(items))
	for _, item := range items {
		if item.HasImage() {
			out = append(out, item)
		}
	}
	return out
}
