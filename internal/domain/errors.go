package domain

import "fmt"

// ValidationError marks invalid caller input detected at the public API
// boundary (mismatched array lengths, NaN-only data, non-positive window
// configuration). It is deliberately distinct from the insufficient-data
// conditions inside the algorithms, which resolve to neutral defaults and
// never surface as errors.
type ValidationError struct {
	msg string
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "invalid input: " + e.msg
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
