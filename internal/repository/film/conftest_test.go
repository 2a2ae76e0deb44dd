package film

import (
	"context"
	"testing"

	"github.com/Benrise/Async-API-sprint-1/internal/esquery"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getByIDFn func(ctx context.Context, index, id string) ([]byte, error)
	searchFn  func(ctx context.Context, index string, q *esquery.Query) ([][]byte, error)
}

func (m *mockStore) GetByID(ctx context.Context, index, id string) ([]byte, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, index, id)
	}
	return nil, nil
}

func (m *mockStore) Search(ctx context.Context, index string, q *esquery.Query) ([][]byte, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, index, q)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func defaultQuery() *esquery.Query {
	return esquery.New().Sort("imdb_rating", esquery.Desc).Page(1, 10).Build()
}
