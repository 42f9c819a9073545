package firebase

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
	DefaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

	authTimeout = 30 * time.Second
)

// Client implements domain.IdentityProvider against the Identity Toolkit REST API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient creates a new identity provider client
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = authTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		now:    time.Now,
	}
}

// credentialsRequest is the body for signInWithPassword and signUp
type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// authResponse is the success body for signInWithPassword and signUp
type authResponse struct {
	IDToken      string `json:"idToken"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"` // seconds, as a string
	LocalID      string `json:"localId"`
	DisplayName  string `json:"displayName"`
}

// errorResponse is the failure envelope
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn exchanges email/password for an identity
func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.SessionIdentity, error) {
	return c.authenticate(ctx, "accounts:signInWithPassword", email, password)
}

// SignUp creates an account and returns its identity
func (c *Client) SignUp(ctx context.Context, email, password string) (*domain.SessionIdentity, error) {
	return c.authenticate(ctx, "accounts:signUp", email, password)
}

// authenticate posts credentials to an accounts endpoint
func (c *Client) authenticate(ctx context.Context, endpoint, email, password string) (*domain.SessionIdentity, error) {
	bodyBytes, err := json.Marshal(credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s?key=%s", c.baseURL, endpoint, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("identity request failed", "endpoint", endpoint, "error", err)
		return nil, &domain.AuthError{Code: CodeNetworkFailed, Message: rawMessage(CodeNetworkFailed)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		authErr := parseError(respBody)
		c.logger.Warn("identity provider rejected request", "endpoint", endpoint, "status", resp.StatusCode, "code", authErr.Code)
		return nil, authErr
	}

	var authResp authResponse
	if err := json.Unmarshal(respBody, &authResp); err != nil {
		return nil, fmt.Errorf("failed to parse auth response: %w", err)
	}
	if authResp.IDToken == "" || authResp.LocalID == "" {
		return nil, fmt.Errorf("failed to parse auth response: missing token")
	}

	return c.toIdentity(authResp), nil
}

// toIdentity builds a SessionIdentity, preferring claims from the ID token
func (c *Client) toIdentity(resp authResponse) *domain.SessionIdentity {
	identity := &domain.SessionIdentity{
		UserID:      resp.LocalID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		Token:       resp.IDToken,
		IssuedAt:    c.now(),
	}
	if secs, err := strconv.Atoi(resp.ExpiresIn); err == nil && secs > 0 {
		identity.ExpiresAt = identity.IssuedAt.Add(time.Duration(secs) * time.Second)
	}

	claims, err := DecodeClaims(resp.IDToken)
	if err != nil {
		c.logger.Debug("id token claims unreadable", "error", err)
		return identity
	}
	if identity.Email == "" {
		identity.Email = claims.Email
	}
	if identity.DisplayName == "" {
		identity.DisplayName = claims.Name
	}
	if !claims.IssuedAt.IsZero() {
		identity.IssuedAt = claims.IssuedAt
	}
	if !claims.ExpiresAt.IsZero() {
		identity.ExpiresAt = claims.ExpiresAt
	}
	return identity
}
