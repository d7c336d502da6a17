// Package service implements the application's business operations on top of
// the storage layer and the balance engine.
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means the request failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPermissionDenied means the caller is not allowed to perform the
	// operation on this entity.
	ErrPermissionDenied = errors.New("permission denied")
)

// invalidf builds a validation error wrapping ErrInvalidInput.
func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
