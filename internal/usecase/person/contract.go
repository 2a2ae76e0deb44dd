package person

import (
	"context"

	"github.com/Benrise/Async-API-sprint-1/internal/domain"
	"github.com/Benrise/Async-API-sprint-1/internal/esquery"
	"github.com/Benrise/Async-API-sprint-1/internal/repository/cache"
)

// Repository defines the document-store contract for person retrieval.
type Repository interface {
	GetByID(ctx context.Context, id string) (domain.PersonDetail, error)
	Search(ctx context.Context, q *esquery.Query) ([]domain.PersonDetail, error)
}

// FilmSearcher searches the film index for a person's filmography.
type FilmSearcher interface {
	Search(ctx context.Context, q *esquery.Query) ([]domain.Film, error)
}

// Cache reads and writes serialized entries best-effort.
type Cache interface {
	cache.Getter
	cache.Setter
}
