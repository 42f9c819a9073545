package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/nav"
)

// Provider codes with a dedicated user-facing message
const (
	codeUserNotFound      = "auth/user-not-found"
	codeWrongPassword     = "auth/wrong-password"
	codeInvalidCredential = "auth/invalid-credential"
	codeInvalidEmail      = "auth/invalid-email"
	codeEmailInUse        = "auth/email-already-in-use"
	codeWeakPassword      = "auth/weak-password"
)

// User-facing messages
const (
	MsgInvalidCredentials = "Invalid credentials. Please check your email or password."
	MsgInvalidEmail       = "Invalid email format."
	MsgEmailInUse         = "This email is already registered."
	MsgWeakPassword       = "Password should be at least 6 characters."
	MsgRegistered         = "Registration successful! Please log in."
)

// AuthMessage maps an identity provider error onto the message shown to the user.
// Unmapped codes fall through to the provider's raw message.
func AuthMessage(err error) string {
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		return err.Error()
	}
	switch authErr.Code {
	case codeUserNotFound, codeWrongPassword, codeInvalidCredential:
		return MsgInvalidCredentials
	case codeInvalidEmail:
		return MsgInvalidEmail
	case codeEmailInUse:
		return MsgEmailInUse
	case codeWeakPassword:
		return MsgWeakPassword
	default:
		return authErr.Error()
	}
}

// AuthFailure is returned when the identity provider rejects a request.
// Message is already mapped for display.
type AuthFailure struct {
	Message string
	Err     error
}

func (e *AuthFailure) Error() string { return e.Message }
func (e *AuthFailure) Unwrap() error { return e.Err }

// SessionEvent is delivered to subscribers on every transition
type SessionEvent struct {
	State    domain.AuthState
	Identity *domain.SessionIdentity
	Intent   *nav.Intent // nil when the current route already fits the new state
}

// SessionService is the session state machine: Unknown -> Authenticated | Anonymous.
// Transitions are published to subscribers along with the navigation they imply;
// the service never navigates itself.
type SessionService struct {
	provider domain.IdentityProvider
	store    domain.SessionStore
	logger   *slog.Logger

	mu       sync.RWMutex
	state    domain.AuthState
	identity *domain.SessionIdentity
	route    nav.Route

	subMu   sync.Mutex
	subs    map[int]func(SessionEvent)
	nextSub int
}

// NewSessionService creates a session service in the Unknown state
func NewSessionService(provider domain.IdentityProvider, store domain.SessionStore, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		provider: provider,
		store:    store,
		logger:   logger,
		state:    domain.AuthUnknown,
		route:    nav.Root,
		subs:     make(map[int]func(SessionEvent)),
	}
}

// Subscribe registers fn for every future transition
func (s *SessionService) Subscribe(fn func(SessionEvent)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// State returns the current state
func (s *SessionService) State() domain.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Identity returns the signed-in identity, or nil
func (s *SessionService) Identity() *domain.SessionIdentity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Ready is false until the initial state has been resolved
func (s *SessionService) Ready() bool {
	return s.State() != domain.AuthUnknown
}

// SetRoute records the route currently shown; intents are computed against it
func (s *SessionService) SetRoute(r nav.Route) {
	s.mu.Lock()
	s.route = r
	s.mu.Unlock()
}

// Guard evaluates a route against the current session
func (s *SessionService) Guard(r nav.Route) nav.Decision {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nav.Guard(r, s.state, s.identity)
}

// Restore resolves the Unknown state from the persisted session
func (s *SessionService) Restore(ctx context.Context) {
	if identity, ok := s.store.LoadSession(); ok {
		if identity.SessionID == "" {
			identity.SessionID = uuid.NewString()
		}
		s.logger.Info("session restored", "user", identity.UserID, "session_id", identity.SessionID)
		s.transition(domain.AuthAuthenticated, identity)
		return
	}
	s.logger.Info("no persisted session")
	s.transition(domain.AuthAnonymous, nil)
}

// SignIn validates the form, authenticates with the provider and persists the session.
// Returns ValidationErrors for a bad form and *AuthFailure for a provider rejection;
// in both cases the state is unchanged.
func (s *SessionService) SignIn(ctx context.Context, form LoginForm) (*domain.SessionIdentity, error) {
	if err := ValidateForm(form); err != nil {
		return nil, err
	}

	identity, err := s.provider.SignIn(ctx, form.Email, form.Password)
	if err != nil {
		s.logger.Warn("sign-in rejected", "error", err)
		return nil, &AuthFailure{Message: AuthMessage(err), Err: err}
	}

	identity.SessionID = uuid.NewString()
	if err := s.store.SaveSession(identity); err != nil {
		// The session still works for this run
		s.logger.Error("failed to persist session", "error", err)
	}

	s.logger.Info("signed in", "user", identity.UserID, "session_id", identity.SessionID)
	s.transition(domain.AuthAuthenticated, identity)
	return identity, nil
}

// Register validates the form and creates an account. It does not sign in.
func (s *SessionService) Register(ctx context.Context, form RegisterForm) error {
	if err := ValidateForm(form); err != nil {
		return err
	}

	identity, err := s.provider.SignUp(ctx, form.Email, form.Password)
	if err != nil {
		s.logger.Warn("registration rejected", "error", err)
		return &AuthFailure{Message: AuthMessage(err), Err: err}
	}

	s.logger.Info("account created", "user", identity.UserID)
	return nil
}

// SignOut clears the persisted session and moves to Anonymous
func (s *SessionService) SignOut(ctx context.Context) error {
	err := s.store.ClearSession()
	if err != nil {
		s.logger.Error("failed to clear session", "error", err)
	}

	if prev := s.Identity(); prev != nil {
		s.logger.Info("signed out", "user", prev.UserID, "session_id", prev.SessionID)
	}
	s.transition(domain.AuthAnonymous, nil)
	return err
}

// transition updates the state and notifies subscribers outside the lock
func (s *SessionService) transition(state domain.AuthState, identity *domain.SessionIdentity) {
	s.mu.Lock()
	prev := s.state
	s.state = state
	s.identity = identity
	intent := nav.IntentFor(s.route, state)
	s.mu.Unlock()

	s.logger.Debug("auth state changed", "from", prev, "to", state)

	event := SessionEvent{State: state, Identity: identity, Intent: intent}

	s.subMu.Lock()
	subs := make([]func(SessionEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}
