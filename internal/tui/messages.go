package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/nav"
	"github.com/mmcdole/marquee/internal/service"
)

// Message types for the TUI. Fetch results carry the generation of the
// request that produced them; results from superseded requests are dropped.

// SessionEventMsg wraps a session transition delivered by the observer
type SessionEventMsg struct {
	Event service.SessionEvent
}

// NavigateMsg asks the model to move to a route
type NavigateMsg struct {
	Route   nav.Route
	Replace bool
}

// HomeLoadedMsg carries both trending rows
type HomeLoadedMsg struct {
	Gen    uint64
	Movies []domain.MediaItem
	TV     []domain.MediaItem
}

// ListLoadedMsg carries one page of a curated list
type ListLoadedMsg struct {
	Gen  uint64
	Kind domain.MediaKind
	Page *domain.Page
}

// DetailsLoadedMsg carries a detail record; Item is nil when not found
type DetailsLoadedMsg struct {
	Gen  uint64
	Kind domain.MediaKind
	ID   string
	Item *domain.MediaItem
}

// SearchResultsMsg carries search results for a query
type SearchResultsMsg struct {
	Gen     uint64
	Query   string
	Results []domain.MediaItem
}

// SignInResultMsg reports the outcome of a sign-in attempt.
// Success is observed through the session event, not this message.
type SignInResultMsg struct {
	Gen uint64
	Err error
}

// RegisterResultMsg reports the outcome of a registration attempt
type RegisterResultMsg struct {
	Gen uint64
	Err error
}

// SignedOutMsg signals that sign-out finished
type SignedOutMsg struct {
	Err error
}

// StatusMsg displays a status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}
