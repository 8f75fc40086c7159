package errors_test

import (
	stderrors "errors"
	"testing"

	autherrors "github.com/jrsteele09/go-polestar-auth/internal/errors"
	"github.com/stretchr/testify/require"
)

type statusErr struct{ code int }

func (e *statusErr) Error() string { return "status" }

func TestWrapf(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		require.NoError(t, autherrors.Wrapf(nil, "context %d", 1))
	})

	t.Run("keeps chain", func(t *testing.T) {
		err := autherrors.Wrapf(autherrors.ErrTokenResponse, "[ExchangeCode] decode: %v", "eof")
		require.ErrorIs(t, err, autherrors.ErrTokenResponse)
		require.Equal(t, "[ExchangeCode] decode: eof: invalid token response", err.Error())
	})
}

func TestAs(t *testing.T) {
	err := autherrors.Wrapf(&statusErr{code: 401}, "login")
	var target *statusErr
	require.True(t, autherrors.As(err, &target))
	require.Equal(t, 401, target.code)
	require.False(t, autherrors.As(stderrors.New("plain"), &target))
}
