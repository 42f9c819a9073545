package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// WatchlistService reads and mutates the configured account's watchlist.
// Like CatalogService it never surfaces errors to callers.
type WatchlistService struct {
	repo      domain.WatchlistRepository
	accountID string
	logger    *slog.Logger

	mu   sync.RWMutex
	last map[domain.MediaKind][]domain.MediaItem
}

// NewWatchlistService creates a watchlist service bound to one account
func NewWatchlistService(repo domain.WatchlistRepository, accountID string, logger *slog.Logger) *WatchlistService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WatchlistService{
		repo:      repo,
		accountID: accountID,
		logger:    logger,
		last:      make(map[domain.MediaKind][]domain.MediaItem),
	}
}

// Configured reports whether an account id is available
func (s *WatchlistService) Configured() bool {
	return s.accountID != ""
}

// Get fetches the watchlist for kind. Failures yield an empty list.
func (s *WatchlistService) Get(ctx context.Context, kind domain.MediaKind) []domain.MediaItem {
	if !s.Configured() {
		s.logger.Warn("watchlist account not configured")
		return nil
	}
	items, err := s.repo.Watchlist(ctx, s.accountID, kind)
	if err != nil {
		s.logger.Error("failed to get watchlist", "kind", kind, "status", failureStatus(err), "error", err)
		return nil
	}

	s.mu.Lock()
	s.last[kind] = items
	s.mu.Unlock()
	return items
}

// Toggle adds or removes an item and re-fetches the list on success.
// Returns false when the mutation failed.
func (s *WatchlistService) Toggle(ctx context.Context, kind domain.MediaKind, mediaID int, add bool) bool {
	if !s.Configured() {
		s.logger.Warn("watchlist account not configured")
		return false
	}
	if err := s.repo.SetWatchlist(ctx, s.accountID, kind, mediaID, add); err != nil {
		s.logger.Error("failed to update watchlist", "kind", kind, "id", mediaID, "add", add, "status", failureStatus(err), "error", err)
		return false
	}
	s.logger.Info("watchlist updated", "kind", kind, "id", mediaID, "add", add)
	s.Get(ctx, kind)
	return true
}

// Cached returns the most recently fetched list for kind
func (s *WatchlistService) Cached(kind domain.MediaKind) []domain.MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last[kind]
}

// Contains reports whether mediaID is on the last fetched list for kind
func (s *WatchlistService) Contains(kind domain.MediaKind, mediaID int) bool {
	for _, item := range s.Cached(kind) {
		if item.ID == mediaID {
			return true
		}
	}
	return false
}
