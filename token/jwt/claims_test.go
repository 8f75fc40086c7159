package jwt_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-polestar-auth/token/jwt"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwtlib.Claims) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("1234"))
	require.NoError(t, err)
	return raw
}

func TestInspect(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := signedToken(t, jwtlib.MapClaims{
		"sub":       "user-1",
		"iss":       "https://polestarid.eu.polestar.com",
		"aud":       "polmystar",
		"iat":       issued.Unix(),
		"exp":       issued.Add(time.Hour).Unix(),
		"jti":       "token-1",
		"client_id": "polmystar",
	})

	t.Run("active token", func(t *testing.T) {
		claims, err := jwt.Inspect(raw, issued.Add(time.Minute))
		require.NoError(t, err)
		require.True(t, claims.Active)
		require.Equal(t, "user-1", claims.Subject)
		require.Equal(t, "https://polestarid.eu.polestar.com", claims.Issuer)
		require.Equal(t, []string{"polmystar"}, claims.Audience)
		require.Equal(t, "token-1", claims.ID)
		require.Equal(t, "polmystar", claims.ClientID)
		require.True(t, claims.IssuedAt.Equal(issued))
		require.True(t, claims.Expiry.Equal(issued.Add(time.Hour)))
	})

	t.Run("expired token still decodes", func(t *testing.T) {
		claims, err := jwt.Inspect(raw, issued.Add(2*time.Hour))
		require.NoError(t, err)
		require.False(t, claims.Active)
		require.Equal(t, "user-1", claims.Subject)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := jwt.Inspect("  ", issued)
		require.Error(t, err)
	})

	t.Run("not a jwt", func(t *testing.T) {
		_, err := jwt.Inspect("not-a-jwt", issued)
		require.Error(t, err)
	})
}
