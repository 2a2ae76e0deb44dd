package genre

import (
	"context"

	"github.com/Benrise/Async-API-sprint-1/internal/domain"
	"github.com/Benrise/Async-API-sprint-1/internal/esquery"
	"github.com/Benrise/Async-API-sprint-1/internal/repository/cache"
)

// Repository defines the document-store contract for genre retrieval.
type Repository interface {
	GetByID(ctx context.Context, id string) (domain.Genre, error)
	Search(ctx context.Context, q *esquery.Query) ([]domain.Genre, error)
}

// Cache reads and writes serialized entries best-effort.
type Cache interface {
	cache.Getter
	cache.Setter
}
