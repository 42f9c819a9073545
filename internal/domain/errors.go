package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested catalog record does not exist
	ErrItemNotFound = errors.New("media item not found")

	// ErrServerOffline indicates the upstream service is unreachable
	ErrServerOffline = errors.New("upstream service is unreachable")

	// ErrAuthFailed indicates the upstream rejected our credentials
	ErrAuthFailed = errors.New("upstream credentials are invalid")

	// ErrUnexpectedStatus indicates a non-success HTTP status
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrUnsupportedList indicates a list type the media kind does not serve
	ErrUnsupportedList = errors.New("unsupported list for media kind")

	// ErrNotSignedIn indicates an operation that needs a session was called without one
	ErrNotSignedIn = errors.New("not signed in")
)

// AuthError is a rejection from the identity provider.
// Code uses the provider's "auth/..." namespace.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}
