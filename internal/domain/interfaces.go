package domain

import "context"

// CatalogRepository: network reads against the upstream catalog.
// Implementations return honest errors; the service layer decides what callers see.
type CatalogRepository interface {
	// Trending returns this week's trending items for a kind
	Trending(ctx context.Context, kind MediaKind) ([]MediaItem, error)

	// List returns one page of a curated list
	List(ctx context.Context, kind MediaKind, listType ListType, page int) (*Page, error)

	// Details returns a single record
	Details(ctx context.Context, kind MediaKind, id string) (*MediaItem, error)

	// Search runs a multi-kind free-text search
	Search(ctx context.Context, query string) ([]MediaItem, error)
}

// WatchlistRepository: account watchlist reads and mutations
type WatchlistRepository interface {
	Watchlist(ctx context.Context, accountID string, kind MediaKind) ([]MediaItem, error)
	SetWatchlist(ctx context.Context, accountID string, kind MediaKind, mediaID int, add bool) error
}

// IdentityProvider: external sign-in backend
type IdentityProvider interface {
	// SignIn exchanges email/password for an identity
	SignIn(ctx context.Context, email, password string) (*SessionIdentity, error)

	// SignUp creates an account
	SignUp(ctx context.Context, email, password string) (*SessionIdentity, error)
}

// SessionStore persists the signed-in identity between runs.
// The token lives under a single key and is written on sign-in, removed on sign-out.
type SessionStore interface {
	LoadSession() (*SessionIdentity, bool)
	SaveSession(identity *SessionIdentity) error
	ClearSession() error
	Token() (string, bool)
}
