// Package film is the document-store gateway for the movies index.
package film

import (
	"context"
	"errors"
	"fmt"

	"github.com/Benrise/Async-API-sprint-1/internal/db"
	"github.com/Benrise/Async-API-sprint-1/internal/domain"
	"github.com/Benrise/Async-API-sprint-1/internal/esquery"
)

// Index is the document-store index holding film records.
const Index = "movies"

// store is the consumer interface for the document store (ISP).
type store interface {
	GetByID(ctx context.Context, index, id string) ([]byte, error)
	Search(ctx context.Context, index string, q *esquery.Query) ([][]byte, error)
}

// Repo implements the film repository over the document store.
type Repo struct {
	store store
}

// New creates a film repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// GetByID returns one film, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.Film, error) {
	raw, err := r.store.GetByID(ctx, Index, id)
	if err != nil {
		return domain.Film{}, classify(err)
	}
	return parseFilm(id, raw)
}

// Search executes a query document against the movies index. Zero matches
// yield an empty slice; a record that fails to deserialize aborts the whole
// result rather than being dropped, so pagination counts stay honest.
func (r *Repo) Search(ctx context.Context, q *esquery.Query) ([]domain.Film, error) {
	hits, err := r.store.Search(ctx, Index, q)
	if err != nil {
		return nil, classify(err)
	}

	films := make([]domain.Film, 0, len(hits))
	for _, raw := range hits {
		f, err := parseFilm("", raw)
		if err != nil {
			return nil, err
		}
		films = append(films, f)
	}
	return films, nil
}

// classify maps store-level errors onto the domain taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, db.ErrDocNotFound):
		return domain.ErrNotFound
	case errors.Is(err, db.ErrBadQuery):
		return fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
}
