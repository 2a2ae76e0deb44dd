// Package elastic implements the document-store backend via the official
// Elasticsearch client. It classifies store responses into the domain-neutral
// sentinels of package db: missing documents and zero-hit searches are normal
// outcomes, schema-rejected queries are fatal to the request, and everything
// else is transient.
package elastic

import (
	"context"
	"fmt"
	"net/http"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"

	"github.com/Benrise/Async-API-sprint-1/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for the Elasticsearch store.
type Config struct {
	Addresses []string
	Username  string
	Password  string
}

// Store implements db.Store on a single shared Elasticsearch client. The
// client keeps its own connection pool; Store itself holds no mutable state.
type Store struct {
	client *elasticsearch.Client
}

// NewStore creates the Elasticsearch store client.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("addresses is required")
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("ping: %s", res.Status())
	}
	return nil
}

// Close releases the store handle. The underlying HTTP transport keeps no
// resources that need explicit shutdown.
func (s *Store) Close() {}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for document store: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// newStoreWithTransport creates a Store over a custom RoundTripper (test-only).
func newStoreWithTransport(rt http.RoundTripper) (*Store, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://stub:9200"},
		Transport: rt,
	})
	if err != nil {
		return nil, err
	}
	return &Store{client: client}, nil
}
