// Package apperr defines the error taxonomy shared by services and handlers.
// Anything that is not a validation or not-found error is treated as an
// infrastructure failure and surfaces as a 5xx.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError marks a lookup for an entity that does not exist, or a
// nearest query over an empty candidate set.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

// NotFound builds a NotFoundError with a formatted message.
func NotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// ValidationError carries one or more input violations. Validation runs
// before any store mutation, so a ValidationError implies nothing was
// written.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// Validation builds a ValidationError from the given violations.
func Validation(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
