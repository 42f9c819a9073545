package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"

	defaultTimeout = 30 * time.Second
	userAgent      = "Marquee/1.0"
)

// Client implements domain.CatalogRepository and domain.WatchlistRepository for TMDB
type Client struct {
	baseURL     string
	apiKey      string // v3 key, sent as api_key
	accessToken string // v4 read token, sent as bearer
	httpClient  *http.Client
	logger      *slog.Logger
}

// Options configures a Client
type Options struct {
	BaseURL     string
	APIKey      string
	AccessToken string
	Timeout     time.Duration
}

// NewClient creates a new TMDB API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:     baseURL,
		apiKey:      opts.APIKey,
		accessToken: opts.AccessToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// HasCredentials reports whether any upstream credential is configured
func (c *Client) HasCredentials() bool {
	return c.apiKey != "" || c.accessToken != ""
}

// doRequest performs an authenticated HTTP request and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	// never log the api_key
	c.logger.Debug("tmdb request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrItemNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "message", statusMessage(respBody))
		return nil, fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	return respBody, nil
}

// statusMessage extracts status_message from an error body, if any
func statusMessage(body []byte) string {
	var s statusResponse
	if err := json.Unmarshal(body, &s); err != nil {
		return ""
	}
	return s.StatusMessage
}

// getPaged fetches and decodes a paged endpoint
func (c *Client) getPaged(ctx context.Context, path string, query url.Values) (pagedResponse, error) {
	var resp pagedResponse
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return resp, err
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return resp, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Results == nil {
		return resp, fmt.Errorf("failed to parse response: missing results")
	}
	return resp, nil
}

// Trending returns this week's trending items for a kind
func (c *Client) Trending(ctx context.Context, kind domain.MediaKind) ([]domain.MediaItem, error) {
	path := fmt.Sprintf("/trending/%s/week", url.PathEscape(string(kind)))
	resp, err := c.getPaged(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return mapMediaList(resp.Results, kind), nil
}

// List returns one page of a curated list (popular, top_rated, ...)
func (c *Client) List(ctx context.Context, kind domain.MediaKind, listType domain.ListType, page int) (*domain.Page, error) {
	if !kind.SupportsList(listType) {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrUnsupportedList, kind, listType)
	}
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))

	path := fmt.Sprintf("/%s/%s", kind, listType)
	resp, err := c.getPaged(ctx, path, query)
	if err != nil {
		return nil, err
	}
	return mapPage(resp, kind), nil
}

// Details returns a single movie, tv show or person
func (c *Client) Details(ctx context.Context, kind domain.MediaKind, id string) (*domain.MediaItem, error) {
	path := fmt.Sprintf("/%s/%s", url.PathEscape(string(kind)), url.PathEscape(id))
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var dto mediaDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if dto.ID == 0 {
		return nil, domain.ErrItemNotFound
	}

	item := mapMedia(dto, kind)
	return &item, nil
}

// Search runs a multi-kind search (movies, tv shows and people)
func (c *Client) Search(ctx context.Context, query string) ([]domain.MediaItem, error) {
	q := url.Values{}
	q.Set("query", query)

	resp, err := c.getPaged(ctx, "/search/multi", q)
	if err != nil {
		return nil, err
	}
	return mapMediaList(resp.Results, ""), nil
}

// Watchlist returns the account's watchlist for a kind
func (c *Client) Watchlist(ctx context.Context, accountID string, kind domain.MediaKind) ([]domain.MediaItem, error) {
	path := fmt.Sprintf("/account/%s/watchlist/%s", url.PathEscape(accountID), watchlistSegment(kind))
	resp, err := c.getPaged(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return mapMediaList(resp.Results, kind), nil
}

// SetWatchlist adds or removes an item from the account's watchlist
func (c *Client) SetWatchlist(ctx context.Context, accountID string, kind domain.MediaKind, mediaID int, add bool) error {
	path := fmt.Sprintf("/account/%s/watchlist", url.PathEscape(accountID))
	payload := watchlistRequest{
		MediaType: string(kind),
		MediaID:   mediaID,
		Watchlist: add,
	}

	body, err := c.doRequest(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return err
	}

	var status statusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if !status.Success {
		return fmt.Errorf("watchlist update rejected: %s", status.StatusMessage)
	}
	return nil
}
