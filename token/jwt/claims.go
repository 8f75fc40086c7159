package jwt

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenClaims represents the registered claims of a Polestar access token.
// The token is decoded without signature verification: the client only holds the token, never the
// provider's keys, so the result is for display and expiry checks only.
type TokenClaims struct {
	Active   bool      `json:"active"`              // True when the token has not expired
	Subject  string    `json:"sub,omitempty"`       // Polestar user ID
	Issuer   string    `json:"iss,omitempty"`       // Issuer of the token
	Audience []string  `json:"aud,omitempty"`       // Intended audiences
	IssuedAt time.Time `json:"iat,omitempty"`       // Issued at time
	Expiry   time.Time `json:"exp,omitempty"`       // Expiration
	ID       string    `json:"jti,omitempty"`       // Token ID
	ClientID string    `json:"client_id,omitempty"` // OAuth client the token was issued to
}

type polestarClaims struct {
	jwtlib.RegisteredClaims
	ClientID string `json:"client_id,omitempty"`
}

// Inspect decodes the claims of rawToken and marks it active if it has not expired at now.
func Inspect(rawToken string, now time.Time) (*TokenClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.New("[jwt.Inspect] token is empty")
	}

	claims := &polestarClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(rawToken, claims); err != nil {
		return nil, errors.Wrap(err, "[jwt.Inspect] ParseUnverified")
	}

	tc := &TokenClaims{
		Subject:  claims.Subject,
		Issuer:   claims.Issuer,
		Audience: claims.Audience,
		ID:       claims.ID,
		ClientID: claims.ClientID,
	}
	if claims.IssuedAt != nil {
		tc.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		tc.Expiry = claims.ExpiresAt.Time
		tc.Active = now.Before(tc.Expiry)
	}
	return tc, nil
}
