package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// fakeCatalog is an in-memory CatalogRepository that counts calls
type fakeCatalog struct {
	mu    sync.Mutex
	calls int

	noCredentials bool
	err           error
	trending      []domain.MediaItem
	page          *domain.Page
	details       map[string]*domain.MediaItem
	search        []domain.MediaItem
	lastQuery     string
}

func (f *fakeCatalog) HasCredentials() bool { return !f.noCredentials }

func (f *fakeCatalog) hit() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeCatalog) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeCatalog) Trending(ctx context.Context, kind domain.MediaKind) ([]domain.MediaItem, error) {
	f.hit()
	return f.trending, f.err
}

func (f *fakeCatalog) List(ctx context.Context, kind domain.MediaKind, listType domain.ListType, page int) (*domain.Page, error) {
	f.hit()
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeCatalog) Details(ctx context.Context, kind domain.MediaKind, id string) (*domain.MediaItem, error) {
	f.hit()
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.details[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeCatalog) Search(ctx context.Context, query string) ([]domain.MediaItem, error) {
	f.hit()
	f.lastQuery = query
	return f.search, f.err
}

func makeItems(n int, kind domain.MediaKind) []domain.MediaItem {
	items := make([]domain.MediaItem, n)
	for i := range items {
		items[i] = domain.MediaItem{ID: i + 1, Kind: kind, Title: "Item " + strconv.Itoa(i+1)}
	}
	return items
}

// fakeProvider is an IdentityProvider with a single known account
type fakeProvider struct {
	email    string
	password string
	signUps  int
}

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (*domain.SessionIdentity, error) {
	if email != f.email {
		return nil, &domain.AuthError{Code: "auth/user-not-found", Message: "Firebase: Error (auth/user-not-found)."}
	}
	if password != f.password {
		return nil, &domain.AuthError{Code: "auth/wrong-password", Message: "Firebase: Error (auth/wrong-password)."}
	}
	return &domain.SessionIdentity{UserID: "uid-1", Email: email, Token: "id-token"}, nil
}

func (f *fakeProvider) SignUp(ctx context.Context, email, password string) (*domain.SessionIdentity, error) {
	if email == f.email {
		return nil, &domain.AuthError{Code: "auth/email-already-in-use", Message: "Firebase: Error (auth/email-already-in-use)."}
	}
	f.signUps++
	return &domain.SessionIdentity{UserID: "uid-2", Email: email, Token: "other-token"}, nil
}

// fakeWatchlist records mutations and serves a fixed list
type fakeWatchlist struct {
	items   []domain.MediaItem
	fetches int
	setErr  error
	lastSet struct {
		accountID string
		mediaID   int
		add       bool
	}
}

func (f *fakeWatchlist) Watchlist(ctx context.Context, accountID string, kind domain.MediaKind) ([]domain.MediaItem, error) {
	f.fetches++
	return f.items, nil
}

func (f *fakeWatchlist) SetWatchlist(ctx context.Context, accountID string, kind domain.MediaKind, mediaID int, add bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.lastSet.accountID = accountID
	f.lastSet.mediaID = mediaID
	f.lastSet.add = add
	if add {
		f.items = append(f.items, domain.MediaItem{ID: mediaID, Kind: kind})
	}
	return nil
}
