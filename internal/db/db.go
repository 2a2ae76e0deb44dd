// Package db defines the storage contracts shared by the cache and the
// document-store backends. Both connections are long-lived, opened once at
// startup and shared by all concurrent requests; deadlines are passed through
// from the caller's context, never imposed here.
package db

import (
	"context"
	"time"

	"github.com/Benrise/Async-API-sprint-1/internal/esquery"
)

// KV provides the key-value operations the cache gateway needs.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DocumentStore provides point lookup and search against the document store.
type DocumentStore interface {
	// GetByID returns the raw source of one document, or ErrDocNotFound.
	GetByID(ctx context.Context, index, id string) ([]byte, error)
	// Search returns the raw sources of all hits in store order. Zero hits
	// yield an empty slice, not an error.
	Search(ctx context.Context, index string, q *esquery.Query) ([][]byte, error)
}

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Cache is the cache backend facade.
type Cache interface {
	KV
	Pinger
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Store is the document-store backend facade.
type Store interface {
	DocumentStore
	Pinger
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
