package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is the sentinel matched by every InvalidGridError.
var ErrInvalidGrid = errors.New("invalid grid")

// ErrInvalidRequest is the sentinel matched by every InvalidRequestError.
var ErrInvalidRequest = errors.New("invalid request")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// InvalidGridError reports a malformed grid: bad dimensions, or start/end
// out of bounds or colliding with obstacles or each other.
type InvalidGridError struct {
	Field  string // Offending field ("width", "start", "obstacles"...)
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation, if any
}

func (e *InvalidGridError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid grid: field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid grid: field %q: %s (got %v)", e.Field, e.Reason, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidGrid.
func (e *InvalidGridError) Unwrap() error { return ErrInvalidGrid }

// InvalidRequestError reports an empty or unknown algorithm selection.
type InvalidRequestError struct {
	Field  string
	Reason string
	Value  any
}

func (e *InvalidRequestError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid request: field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid request: field %q: %s (got %v)", e.Field, e.Reason, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidRequest.
func (e *InvalidRequestError) Unwrap() error { return ErrInvalidRequest }

func gridError(field, reason string, value any) error {
	return &InvalidGridError{Field: field, Reason: reason, Value: value}
}
