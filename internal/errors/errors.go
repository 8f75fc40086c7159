package errors

import (
	"errors"
	"fmt"
)

// Common error types for the Polestar ID login flow
var (
	// Redirect errors
	ErrMissingLocation  = errors.New("location header not found in the response")
	ErrMissingParameter = errors.New("query parameter not found in redirect location")
	ErrInvalidLocation  = errors.New("invalid redirect location")

	// Response errors
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrTokenResponse    = errors.New("invalid token response")

	// Flow errors
	ErrOutOfOrder         = errors.New("operation called out of order")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrNoToken            = errors.New("no token available")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
