package film

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/Benrise/Async-API-sprint-1/internal/domain"
	"github.com/Benrise/Async-API-sprint-1/internal/esquery"
)

// --- Mocks ---

type mockRepo struct {
	mu        sync.Mutex
	getCalls  int
	listCalls int

	getByIDFn func(ctx context.Context, id string) (domain.Film, error)
	searchFn  func(ctx context.Context, q *esquery.Query) ([]domain.Film, error)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (domain.Film, error) {
	m.mu.Lock()
	m.getCalls++
	m.mu.Unlock()
	return m.getByIDFn(ctx, id)
}

func (m *mockRepo) Search(ctx context.Context, q *esquery.Query) ([]domain.Film, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	return m.searchFn(ctx, q)
}

type mockCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]byte)}
}

func (m *mockCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	return data, ok
}

func (m *mockCache) Set(_ context.Context, key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = data
}

func (m *mockCache) put(t *testing.T, key string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal cache fixture: %v", err)
	}
	m.Set(context.Background(), key, data)
}

func (m *mockCache) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func defaultParams(t *testing.T) domain.ListParams {
	t.Helper()
	p, err := domain.NewListParams("", "", "", domain.DefaultPage, domain.DefaultPageSize, "")
	if err != nil {
		t.Fatalf("NewListParams: %v", err)
	}
	return p
}
