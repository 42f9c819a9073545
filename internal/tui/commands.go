package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
)

// Command factories for async operations. Each takes the context and
// generation handed out by the request tracker.

// authTimeout bounds a sign-in or registration round trip
const authTimeout = 30 * time.Second

// RestoreSessionCmd resolves the initial session state
func RestoreSessionCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		svc.Restore(context.Background())
		return nil
	}
}

// LoadHomeCmd loads trending movies and trending TV together
func LoadHomeCmd(ctx context.Context, gen uint64, svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		var (
			wg     sync.WaitGroup
			movies []domain.MediaItem
			tv     []domain.MediaItem
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			movies = svc.Trending(ctx, domain.KindMovie)
		}()
		go func() {
			defer wg.Done()
			tv = svc.Trending(ctx, domain.KindTV)
		}()
		wg.Wait()
		return HomeLoadedMsg{Gen: gen, Movies: movies, TV: tv}
	}
}

// LoadListCmd loads one page of the popular list for kind
func LoadListCmd(ctx context.Context, gen uint64, svc *service.CatalogService, kind domain.MediaKind, page int) tea.Cmd {
	return func() tea.Msg {
		return ListLoadedMsg{Gen: gen, Kind: kind, Page: svc.List(ctx, kind, domain.ListPopular, page)}
	}
}

// LoadDetailsCmd loads a movie or tv record
func LoadDetailsCmd(ctx context.Context, gen uint64, svc *service.CatalogService, kind domain.MediaKind, id string) tea.Cmd {
	return func() tea.Msg {
		return DetailsLoadedMsg{Gen: gen, Kind: kind, ID: id, Item: svc.Details(ctx, kind, id)}
	}
}

// SearchCmd runs a multi-kind search
func SearchCmd(ctx context.Context, gen uint64, svc *service.CatalogService, query string) tea.Cmd {
	return func() tea.Msg {
		return SearchResultsMsg{Gen: gen, Query: query, Results: svc.Search(ctx, query)}
	}
}

// SignInCmd submits the login form
func SignInCmd(ctx context.Context, gen uint64, svc *service.SessionService, form service.LoginForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, authTimeout)
		defer cancel()

		_, err := svc.SignIn(ctx, form)
		return SignInResultMsg{Gen: gen, Err: err}
	}
}

// RegisterCmd submits the registration form
func RegisterCmd(ctx context.Context, gen uint64, svc *service.SessionService, form service.RegisterForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, authTimeout)
		defer cancel()

		return RegisterResultMsg{Gen: gen, Err: svc.Register(ctx, form)}
	}
}

// SignOutCmd signs the user out
func SignOutCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		return SignedOutMsg{Err: svc.SignOut(context.Background())}
	}
}

// NavigateCmd requests navigation from inside a command chain
func NavigateCmd(msg NavigateMsg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
