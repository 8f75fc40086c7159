package auth

import (
	"fmt"

	autherrors "github.com/jrsteele09/go-polestar-auth/internal/errors"
)

// AuthError is returned when Polestar ID does not accept the submitted credentials.
// StatusCode is the status of the resume endpoint response.
type AuthError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (status %d): %v", e.Message, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// PreconditionError is returned when a step is called before the step it depends on has succeeded.
type PreconditionError struct {
	Operation string
	State     State
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("[Authenticator.%s] %v: state is %s", e.Operation, autherrors.ErrOutOfOrder, e.State)
}

func (e *PreconditionError) Unwrap() error {
	return autherrors.ErrOutOfOrder
}
