// Package film implements cache-aside film retrieval and search.
package film

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/Benrise/Async-API-sprint-1/internal/domain"
	"github.com/Benrise/Async-API-sprint-1/internal/esquery"
	"github.com/Benrise/Async-API-sprint-1/internal/metrics"
	"github.com/Benrise/Async-API-sprint-1/internal/repository/cache"
)

const entity = "films"

// Service handles film reads: cache first, document store on a miss.
type Service struct {
	repo  Repository
	cache Cache
	group singleflight.Group
}

// New creates a film service.
func New(repo Repository, c Cache) *Service {
	return &Service{repo: repo, cache: c}
}

// GetByID returns one film by uuid. Concurrent misses for the same uuid
// collapse into a single store round-trip.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Film, error) {
	key := cache.EntityKey(id)
	if f, ok := cache.Lookup[domain.Film](ctx, s.cache, key); ok {
		metrics.CacheHit(entity)
		return f, nil
	}
	metrics.CacheMiss(entity)

	v, err, _ := s.group.Do("film:"+id, func() (any, error) {
		f, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		cache.Store(ctx, s.cache, key, f)
		return f, nil
	})
	if err != nil {
		return domain.Film{}, err
	}
	return v.(domain.Film), nil
}

// List returns a page of films matching p. Empty pages are a valid outcome
// and are never cached, so a late-arriving dataset shows up immediately.
func (s *Service) List(ctx context.Context, p domain.ListParams) ([]domain.Film, error) {
	key := cache.ListKey(entity, p)
	if films, ok := cache.Lookup[[]domain.Film](ctx, s.cache, key); ok {
		metrics.CacheHit(entity)
		return films, nil
	}
	metrics.CacheMiss(entity)

	v, err, _ := s.group.Do("film_list:"+key, func() (any, error) {
		films, err := s.repo.Search(ctx, buildQuery(p))
		if err != nil {
			return nil, err
		}
		if len(films) > 0 {
			cache.Store(ctx, s.cache, key, films)
		}
		return films, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Film), nil
}

func buildQuery(p domain.ListParams) *esquery.Query {
	return esquery.New().
		Text(p.Query).
		Nested("genres", "genres.uuid", p.GenreID).
		Sort(p.SortField, esquery.Order(p.SortOrder)).
		Page(p.Page, p.Size).
		Build()
}
