// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common application-specific errors.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input provided")
	ErrMalformedInput = errors.New("malformed input")
)

// ValidationError carries every field-level problem found on a write candidate or query.
// Details keeps the order in which the checks ran.
type ValidationError struct {
	Message string
	Details []string
}

// NewValidationError creates a ValidationError with the given message and details.
func NewValidationError(message string, details ...string) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Details, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NotFoundError reports a lookup of a transaction id that does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No transaction found with ID: %s", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}

// AsValidationError extracts a *ValidationError from err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
