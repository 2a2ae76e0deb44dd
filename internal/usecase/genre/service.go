// Package genre implements cache-aside genre retrieval.
package genre

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/Benrise/Async-API-sprint-1/internal/domain"
	"github.com/Benrise/Async-API-sprint-1/internal/esquery"
	"github.com/Benrise/Async-API-sprint-1/internal/metrics"
	"github.com/Benrise/Async-API-sprint-1/internal/repository/cache"
)

const entity = "genres"

// Service handles genre reads: cache first, document store on a miss.
type Service struct {
	repo  Repository
	cache Cache
	group singleflight.Group
}

// New creates a genre service.
func New(repo Repository, c Cache) *Service {
	return &Service{repo: repo, cache: c}
}

// GetByID returns one genre by uuid.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Genre, error) {
	key := cache.EntityKey(id)
	if g, ok := cache.Lookup[domain.Genre](ctx, s.cache, key); ok {
		metrics.CacheHit(entity)
		return g, nil
	}
	metrics.CacheMiss(entity)

	v, err, _ := s.group.Do("genre:"+id, func() (any, error) {
		g, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		cache.Store(ctx, s.cache, key, g)
		return g, nil
	})
	if err != nil {
		return domain.Genre{}, err
	}
	return v.(domain.Genre), nil
}

// List returns the full genre catalog sorted by name. The catalog is small
// enough to fit in one page, so listing is a single fixed query.
func (s *Service) List(ctx context.Context) ([]domain.Genre, error) {
	p := listParams()
	key := cache.ListKey(entity, p)
	if genres, ok := cache.Lookup[[]domain.Genre](ctx, s.cache, key); ok {
		metrics.CacheHit(entity)
		return genres, nil
	}
	metrics.CacheMiss(entity)

	v, err, _ := s.group.Do("genre_list", func() (any, error) {
		genres, err := s.repo.Search(ctx, buildQuery(p))
		if err != nil {
			return nil, err
		}
		if len(genres) > 0 {
			cache.Store(ctx, s.cache, key, genres)
		}
		return genres, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Genre), nil
}

func listParams() domain.ListParams {
	return domain.ListParams{
		SortField: "name.raw",
		SortOrder: domain.SortAsc,
		Page:      domain.DefaultPage,
		Size:      domain.MaxPageSize,
	}
}

func buildQuery(p domain.ListParams) *esquery.Query {
	return esquery.New().
		Sort(p.SortField, esquery.Order(p.SortOrder)).
		Page(p.Page, p.Size).
		Build()
}
