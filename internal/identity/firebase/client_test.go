package firebase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, email string, iat, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, idTokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid-1",
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func identityServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts:signInWithPassword", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "web-key", r.URL.Query().Get("key"))

		var req credentialsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.ReturnSecureToken)

		w.Header().Set("Content-Type", "application/json")
		switch {
		case req.Email == "ada@example.com" && req.Password == "secret1":
			_ = json.NewEncoder(w).Encode(authResponse{
				IDToken: token, Email: req.Email, LocalID: "uid-1", ExpiresIn: "3600",
			})
		case req.Email == "ada@example.com":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"EMAIL_NOT_FOUND"}}`))
		}
	})
	mux.HandleFunc("/accounts:signUp", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"WEAK_PASSWORD : Password should be at least 6 characters"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSignIn_Success(t *testing.T) {
	iat := time.Unix(1_700_000_000, 0)
	exp := iat.Add(time.Hour)
	srv := identityServer(t, signedToken(t, "ada@example.com", iat, exp))

	c := NewClient(srv.URL, "web-key", 0, nil)
	identity, err := c.SignIn(context.Background(), "ada@example.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "uid-1", identity.UserID)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.NotEmpty(t, identity.Token)
	assert.True(t, identity.IssuedAt.Equal(iat))
	assert.True(t, identity.ExpiresAt.Equal(exp))
}

func TestSignIn_Rejections(t *testing.T) {
	srv := identityServer(t, "unused")
	c := NewClient(srv.URL, "web-key", 0, nil)

	_, err := c.SignIn(context.Background(), "ada@example.com", "wrong")
	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CodeInvalidCredential, authErr.Code)

	_, err = c.SignIn(context.Background(), "nobody@example.com", "secret1")
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CodeUserNotFound, authErr.Code)
}

func TestSignUp_WeakPasswordKeepsDetail(t *testing.T) {
	srv := identityServer(t, "unused")
	c := NewClient(srv.URL, "web-key", 0, nil)

	_, err := c.SignUp(context.Background(), "ada@example.com", "123")
	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CodeWeakPassword, authErr.Code)
	assert.Equal(t, "Firebase: Password should be at least 6 characters (auth/weak-password).", authErr.Message)
}

func TestSignIn_Offline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(base, "web-key", time.Second, nil)
	_, err := c.SignIn(context.Background(), "ada@example.com", "secret1")
	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CodeNetworkFailed, authErr.Code)
}

func TestParseError(t *testing.T) {
	tests := []struct {
		body string
		code string
		msg  string
	}{
		{`{"error":{"message":"EMAIL_EXISTS"}}`, CodeEmailInUse, "Firebase: Error (auth/email-already-in-use)."},
		{`{"error":{"message":"INVALID_PASSWORD"}}`, CodeWrongPassword, "Firebase: Error (auth/wrong-password)."},
		{`{"error":{"message":"OPERATION_NOT_ALLOWED"}}`, "auth/operation-not-allowed", "Firebase: Error (auth/operation-not-allowed)."},
		{`<html>`, CodeInternal, "Firebase: Error (auth/internal-error)."},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := parseError([]byte(tt.body))
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.msg, err.Message)
		})
	}
}

func TestDecodeClaims_Garbage(t *testing.T) {
	_, err := DecodeClaims("not-a-jwt")
	assert.Error(t, err)
}
