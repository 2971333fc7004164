package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Parameter errors
	ErrInvalidParameter = errors.New("invalid parameter")

	// Not found errors
	ErrNotFound = errors.New("resource not found")

	// Result errors
	ErrEmptyCurve = errors.New("empty sweep curve")
)

// Error constructors with context
func NewParameterError(field string, value int, reason string) error {
	return fmt.Errorf("%w: %s=%d (%s)", ErrInvalidParameter, field, value, reason)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsParameterError(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
