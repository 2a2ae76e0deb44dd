package db

import "errors"

// Sentinel errors for storage operations. Anything else coming out of a
// backend is wrapped in Error and treated as transient.
var (
	// ErrKeyNotFound reports a cache miss.
	ErrKeyNotFound = errors.New("db: key not found")
	// ErrDocNotFound reports a missing document. A normal outcome, not a failure.
	ErrDocNotFound = errors.New("db: document not found")
	// ErrBadQuery reports a query the store schema rejected, e.g. an unknown
	// sort field. Fatal to the request, never retried.
	ErrBadQuery = errors.New("db: malformed query")
)

// Op constants name the backend operation for error context.
const (
	OpGet    = "GET"
	OpSet    = "SET"
	OpPing   = "PING"
	OpDoc    = "_doc"
	OpSearch = "_search"
)

// Error wraps an underlying backend error with the operation name.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
