package firebase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the display fields read from an ID token
type Claims struct {
	Subject   string
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// idTokenClaims mirrors the provider's ID token payload
type idTokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// DecodeClaims reads an ID token's payload without verifying its signature.
// Only used for display fields.
func DecodeClaims(token string) (*Claims, error) {
	var c idTokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return nil, fmt.Errorf("failed to decode id token: %w", err)
	}

	claims := &Claims{
		Subject: c.Subject,
		Email:   c.Email,
		Name:    c.Name,
	}
	if c.IssuedAt != nil {
		claims.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		claims.ExpiresAt = c.ExpiresAt.Time
	}
	return claims, nil
}
