package errors

import (
	"errors"
	"fmt"
)

// Common error types for the admin console client
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbiddenRole      = errors.New("only admins are allowed")
	ErrBundleDecode       = errors.New("could not decode login bundle")

	// Session errors
	ErrUnauthorized   = errors.New("session invalid or expired")
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrSessionPersist = errors.New("could not persist session")

	// Resource errors
	ErrBusinessRule = errors.New("request rejected by the server")
	ErrNotFound     = errors.New("not found")
	ErrBadEnvelope  = errors.New("malformed response envelope")

	// General errors
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
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

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
