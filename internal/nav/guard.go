package nav

import "github.com/mmcdole/marquee/internal/domain"

// Decision is the outcome of guarding a route: Authorized or Redirect
type Decision interface {
	decision()
}

// Authorized lets the route render. Identity is nil on public routes.
type Authorized struct {
	Identity *domain.SessionIdentity
}

// Redirect sends the user to Target instead
type Redirect struct {
	Target Route
}

func (Authorized) decision() {}
func (Redirect) decision()   {}

// Guard decides whether route may render for the given session.
// An identity of nil means no one is signed in; AuthUnknown is treated as anonymous.
func Guard(route Route, state domain.AuthState, identity *domain.SessionIdentity) Decision {
	signedIn := state == domain.AuthAuthenticated && identity != nil

	switch {
	case route.Protected() && !signedIn:
		return Redirect{Target: Login}
	case signedIn && (route.PublicOnly() || route.Page == PageRoot):
		return Redirect{Target: Home}
	case signedIn:
		return Authorized{Identity: identity}
	default:
		return Authorized{}
	}
}

// Intent is a navigation request emitted by a session transition
type Intent struct {
	Target  Route
	Replace bool // replace the current history entry
}

// IntentFor computes the redirect a state change implies for the current route.
// Returns nil when the current route is consistent with the new state.
func IntentFor(current Route, state domain.AuthState) *Intent {
	switch state {
	case domain.AuthAuthenticated:
		if current.Page == PageRoot || current.PublicOnly() {
			return &Intent{Target: Home, Replace: true}
		}
	case domain.AuthAnonymous:
		if current.Protected() {
			return &Intent{Target: Login}
		}
	}
	return nil
}
