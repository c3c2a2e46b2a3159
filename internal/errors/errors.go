package errors

import (
	"errors"
	"fmt"
)

// Common error types for the auth gateway. The authorization-flow messages
// are user-facing: the callback handler writes them verbatim into 400
// responses.
var (
	// Authentication errors
	ErrUnauthenticated = errors.New("not authenticated")

	// Authorization-flow errors
	ErrMissingParameters = errors.New("Missing authorization code or state")
	ErrStateMismatch     = errors.New("Invalid state parameter")
	ErrMissingVerifier   = errors.New("Missing code verifier")

	// General errors
	ErrNotFound = errors.New("not found")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
