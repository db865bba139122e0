package session

import (
	"errors"
	"fmt"
)

// ValidationError is malformed or missing user input, caught before any
// network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is a local input-validation failure.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ErrNotAuthenticated is returned when navigation or a flow requires a live
// session and there is none.
var ErrNotAuthenticated = errors.New("session: not authenticated")
