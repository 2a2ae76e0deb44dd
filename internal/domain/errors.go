package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing entity. A listing that matched nothing
	// is reported as an empty result, not as ErrNotFound.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals caller-supplied search parameters the store
	// schema cannot satisfy (unknown sort field, malformed filter).
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUnavailable signals a transient search-store failure. It is never
	// conflated with an empty result.
	ErrUnavailable = errors.New("store unavailable")
	// ErrDataIntegrity signals a store document that does not deserialize
	// into the expected entity shape.
	ErrDataIntegrity = errors.New("data integrity")
)

// IntegrityError wraps ErrDataIntegrity with the index and document id of the
// offending record.
type IntegrityError struct {
	Index string
	ID    string
	Err   error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s/%s: %v", ErrDataIntegrity.Error(), e.Index, e.ID, e.Err)
}

func (e *IntegrityError) Unwrap() error { return ErrDataIntegrity }

// NewIntegrity creates a data-integrity error for a store document.
func NewIntegrity(index, id string, err error) error {
	return &IntegrityError{Index: index, ID: id, Err: err}
}
