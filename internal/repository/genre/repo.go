// Package genre is the document-store gateway for the genres index.
package genre

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Benrise/Async-API-sprint-1/internal/db"
	"github.com/Benrise/Async-API-sprint-1/internal/domain"
	"github.com/Benrise/Async-API-sprint-1/internal/esquery"
)

// Index is the document-store index holding genre records.
const Index = "genres"

type store interface {
	GetByID(ctx context.Context, index, id string) ([]byte, error)
	Search(ctx context.Context, index string, q *esquery.Query) ([][]byte, error)
}

// Repo implements the genre repository over the document store.
type Repo struct {
	store store
}

// New creates a genre repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// GetByID returns one genre, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.Genre, error) {
	raw, err := r.store.GetByID(ctx, Index, id)
	if err != nil {
		return domain.Genre{}, classify(err)
	}
	return parseGenre(id, raw)
}

// Search executes a query document against the genres index.
func (r *Repo) Search(ctx context.Context, q *esquery.Query) ([]domain.Genre, error) {
	hits, err := r.store.Search(ctx, Index, q)
	if err != nil {
		return nil, classify(err)
	}

	genres := make([]domain.Genre, 0, len(hits))
	for _, raw := range hits {
		g, err := parseGenre("", raw)
		if err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, nil
}

func parseGenre(id string, raw []byte) (domain.Genre, error) {
	var g domain.Genre
	if err := json.Unmarshal(raw, &g); err != nil {
		return domain.Genre{}, domain.NewIntegrity(Index, id, err)
	}
	if g.UUID == "" {
		return domain.Genre{}, domain.NewIntegrity(Index, id, errors.New("missing uuid"))
	}
	if g.Name == "" {
		return domain.Genre{}, domain.NewIntegrity(Index, g.UUID, errors.New("missing name"))
	}
	return g, nil
}

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
