// Package cache is the gateway in front of the key-value cache. It owns the
// key scheme and the JSON serialization contract for entities and result
// pages. Entries are advisory: a miss, a backend failure or a garbled entry
// all read as "not cached", and writes are best-effort. Correctness never
// depends on the cache, only latency does.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Benrise/Async-API-sprint-1/internal/db"
	"github.com/Benrise/Async-API-sprint-1/internal/logger"
)

// EntryTTL bounds the staleness of every cached entity and listing.
const EntryTTL = 5 * time.Minute

// store is the consumer interface for the cache backend (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Repo implements the byte-level cache gateway.
type Repo struct {
	store store
	ttl   time.Duration
}

// New creates a cache gateway with the default entry TTL.
func New(s store) *Repo {
	return &Repo{store: s, ttl: EntryTTL}
}

// WithTTL overrides the entry TTL (config-driven).
func (r *Repo) WithTTL(ttl time.Duration) *Repo {
	if ttl > 0 {
		r.ttl = ttl
	}
	return r
}

// Get returns the cached bytes for key. A miss and a backend failure both
// read as "not cached": the caller falls through to the document store.
func (r *Repo) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			logger.FromContext(ctx).Debug("cache read failed",
				zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set writes bytes under key best-effort. A failed write never fails the
// request that triggered it; it only costs the next caller a store round-trip.
func (r *Repo) Set(ctx context.Context, key string, data []byte) {
	if err := r.store.SetWithTTL(ctx, key, data, r.ttl); err != nil {
		logger.FromContext(ctx).Warn("cache write failed",
			zap.String("key", key), zap.Error(err))
	}
}

// Getter reads raw cache entries.
type Getter interface {
	Get(ctx context.Context, key string) ([]byte, bool)
}

// Setter writes raw cache entries.
type Setter interface {
	Set(ctx context.Context, key string, data []byte)
}

// Lookup decodes the cached JSON entry under key into T. A garbled entry
// reads as "not cached".
func Lookup[T any](ctx context.Context, g Getter, key string) (T, bool) {
	var v T
	data, ok := g.Get(ctx, key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		logger.FromContext(ctx).Debug("cache entry garbled",
			zap.String("key", key), zap.Error(err))
		var zero T
		return zero, false
	}
	return v, true
}

// Store encodes v as JSON and writes it under key best-effort.
func Store[T any](ctx context.Context, s Setter, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.FromContext(ctx).Warn("cache encode failed",
			zap.String("key", key), zap.Error(err))
		return
	}
	s.Set(ctx, key, data)
}
