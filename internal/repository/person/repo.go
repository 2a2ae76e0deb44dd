// Package person is the document-store gateway for the persons index.
package person

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Benrise/Async-API-sprint-1/internal/db"
	"github.com/Benrise/Async-API-sprint-1/internal/domain"
	"github.com/Benrise/Async-API-sprint-1/internal/esquery"
)

// Index is the document-store index holding person records.
const Index = "persons"

type store interface {
	GetByID(ctx context.Context, index, id string) ([]byte, error)
	Search(ctx context.Context, index string, q *esquery.Query) ([][]byte, error)
}

// Repo implements the person repository over the document store.
type Repo struct {
	store store
}

// New creates a person repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// GetByID returns one person with their film roles, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.PersonDetail, error) {
	raw, err := r.store.GetByID(ctx, Index, id)
	if err != nil {
		return domain.PersonDetail{}, classify(err)
	}
	return parsePerson(id, raw)
}

// Search executes a query document against the persons index.
func (r *Repo) Search(ctx context.Context, q *esquery.Query) ([]domain.PersonDetail, error) {
	hits, err := r.store.Search(ctx, Index, q)
	if err != nil {
		return nil, classify(err)
	}

	persons := make([]domain.PersonDetail, 0, len(hits))
	for _, raw := range hits {
		p, err := parsePerson("", raw)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, nil
}

func parsePerson(id string, raw []byte) (domain.PersonDetail, error) {
	var p domain.PersonDetail
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.PersonDetail{}, domain.NewIntegrity(Index, id, err)
	}
	if p.UUID == "" {
		return domain.PersonDetail{}, domain.NewIntegrity(Index, id, errors.New("missing uuid"))
	}
	if p.FullName == "" {
		return domain.PersonDetail{}, domain.NewIntegrity(Index, p.UUID, errors.New("missing full_name"))
	}
	return p, nil
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
