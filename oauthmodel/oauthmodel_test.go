package oauthmodel_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	autherrors "github.com/jrsteele09/go-polestar-auth/internal/errors"
	"github.com/jrsteele09/go-polestar-auth/oauthmodel"
	"github.com/stretchr/testify/require"
)

func TestCredentials(t *testing.T) {
	creds := oauthmodel.Credentials{Username: "driver@example.com", Password: "hunter2"}

	t.Run("form fields", func(t *testing.T) {
		form := creds.Form()
		require.Equal(t, "driver@example.com", form.Get("pf.username"))
		require.Equal(t, "hunter2", form.Get("pf.pass"))
	})

	t.Run("password masked", func(t *testing.T) {
		require.NotContains(t, fmt.Sprint(creds), "hunter2")
		require.Contains(t, fmt.Sprint(creds), "driver@example.com")
	})
}

func TestTokenRequest_Query(t *testing.T) {
	q, err := oauthmodel.TokenRequest{Code: "XYZ987"}.Query()
	require.NoError(t, err)
	require.Equal(t, "getAuthToken", q.Get("operationName"))
	require.Contains(t, q.Get("query"), "getAuthToken(code: $code)")
	require.JSONEq(t, `{"code":"XYZ987"}`, q.Get("variables"))
}

func TestTokenResponse_Token(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	decode := func(t *testing.T, body string) *oauthmodel.TokenResponse {
		t.Helper()
		var resp oauthmodel.TokenResponse
		require.NoError(t, json.Unmarshal([]byte(body), &resp))
		return &resp
	}

	t.Run("valid", func(t *testing.T) {
		resp := decode(t, `{"data":{"getAuthToken":{"access_token":"A","refresh_token":"R","expires_in":3600}}}`)
		tok, err := resp.Token(now)
		require.NoError(t, err)
		require.Equal(t, "A", tok.AccessToken)
		require.Equal(t, "R", tok.RefreshToken)
		require.Equal(t, "Bearer", tok.TokenType)
		require.Equal(t, now.Add(time.Hour), tok.Expiry)
	})

	t.Run("graphql errors", func(t *testing.T) {
		resp := decode(t, `{"data":{"getAuthToken":null},"errors":[{"message":"invalid code"}]}`)
		tok, err := resp.Token(now)
		require.Nil(t, tok)
		require.ErrorIs(t, err, autherrors.ErrTokenResponse)
		require.Contains(t, err.Error(), "invalid code")
	})

	t.Run("missing payload", func(t *testing.T) {
		resp := decode(t, `{"data":{}}`)
		_, err := resp.Token(now)
		require.ErrorIs(t, err, autherrors.ErrTokenResponse)
	})

	t.Run("empty access token", func(t *testing.T) {
		resp := decode(t, `{"data":{"getAuthToken":{"access_token":"","refresh_token":"R","expires_in":60}}}`)
		_, err := resp.Token(now)
		require.ErrorIs(t, err, autherrors.ErrTokenResponse)
	})
}
