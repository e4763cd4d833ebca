// Package repositories holds error kinds shared by every repository so the
// bridge layer can translate them uniformly.
package repositories

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that a referenced record does not resolve.
	ErrNotFound = errors.New("record not found")
)

// ValidationError marks missing or malformed caller input. The bridge maps
// it to a 400 response; it is never retried.
type ValidationError struct {
	msg string
}

func NewValidationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.msg
}

// IsValidationError reports whether err carries a ValidationError anywhere
// in its chain.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
