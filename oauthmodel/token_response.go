package oauthmodel

import (
	"strings"
	"time"

	autherrors "github.com/jrsteele09/go-polestar-auth/internal/errors"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const bearerTokenType = "Bearer"

// TokenResponse is the GraphQL envelope returned by the getAuthToken query.
//
//	{"data": {"getAuthToken": {"access_token": "...", "refresh_token": "...", "expires_in": 3600}}}
type TokenResponse struct {
	Data struct {
		GetAuthToken *AuthToken `json:"getAuthToken"`
	} `json:"data"`

	// Errors is populated instead of Data when the API rejects the code.
	Errors []GraphQLError `json:"errors,omitempty"`
}

// AuthToken holds the token pair issued for an authorization code.
type AuthToken struct {
	// AccessToken is the JWT used for Polestar API calls.
	// Usage: Include in Authorization header: "Bearer <access_token>"
	AccessToken string `json:"access_token"`

	// RefreshToken is an opaque token used to obtain new access tokens.
	// Security: Should be stored securely
	RefreshToken string `json:"refresh_token"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// Example: 3600
	ExpiresIn int `json:"expires_in"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

// Token converts the response into an oauth2 token whose expiry is relative to now.
func (r *TokenResponse) Token(now time.Time) (*oauth2.Token, error) {
	if len(r.Errors) > 0 {
		messages := make([]string, 0, len(r.Errors))
		for _, e := range r.Errors {
			messages = append(messages, e.Message)
		}
		return nil, errors.Wrap(autherrors.ErrTokenResponse, strings.Join(messages, "; "))
	}

	t := r.Data.GetAuthToken
	if t == nil {
		return nil, errors.Wrap(autherrors.ErrTokenResponse, "getAuthToken missing from response")
	}
	if t.AccessToken == "" {
		return nil, errors.Wrap(autherrors.ErrTokenResponse, "access_token is empty")
	}

	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    bearerTokenType,
		Expiry:       now.Add(time.Duration(t.ExpiresIn) * time.Second),
	}, nil
}
