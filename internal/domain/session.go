package domain

import "time"

// SessionIdentity is the signed-in user as issued by the identity provider.
// It lives until sign-out; the token is never refreshed or validated here.
type SessionIdentity struct {
	UserID      string    `json:"user_id"`      // provider user handle
	Email       string    `json:"email"`        // sign-in email
	DisplayName string    `json:"display_name"` // may be empty
	Token       string    `json:"-"`            // provider ID token, stored under its own key
	SessionID   string    `json:"session_id"`   // local id for log correlation
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Name returns the best display handle for the identity
func (s SessionIdentity) Name() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	if s.Email != "" {
		return s.Email
	}
	return s.UserID
}

// AuthState is the session state machine position
type AuthState int

const (
	AuthUnknown AuthState = iota
	AuthAuthenticated
	AuthAnonymous
)

// String returns a human-readable representation of the state
func (a AuthState) String() string {
	switch a {
	case AuthUnknown:
		return "unknown"
	case AuthAuthenticated:
		return "authenticated"
	case AuthAnonymous:
		return "anonymous"
	default:
		return "invalid"
	}
}
