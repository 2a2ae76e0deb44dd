// Package person implements cache-aside person retrieval and filmography.
package person

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/Benrise/Async-API-sprint-1/internal/domain"
	"github.com/Benrise/Async-API-sprint-1/internal/esquery"
	"github.com/Benrise/Async-API-sprint-1/internal/metrics"
	"github.com/Benrise/Async-API-sprint-1/internal/repository/cache"
)

const entity = "persons"

// sortField is the keyword subfield used for alphabetic person listings.
const sortField = "full_name.raw"

// Service handles person reads: cache first, document store on a miss.
type Service struct {
	repo  Repository
	films FilmSearcher
	cache Cache
	group singleflight.Group
}

// New creates a person service.
func New(repo Repository, films FilmSearcher, c Cache) *Service {
	return &Service{repo: repo, films: films, cache: c}
}

// GetByID returns one person with their film roles by uuid.
func (s *Service) GetByID(ctx context.Context, id string) (domain.PersonDetail, error) {
	key := cache.EntityKey(id)
	if p, ok := cache.Lookup[domain.PersonDetail](ctx, s.cache, key); ok {
		metrics.CacheHit(entity)
		return p, nil
	}
	metrics.CacheMiss(entity)

	v, err, _ := s.group.Do("person:"+id, func() (any, error) {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		cache.Store(ctx, s.cache, key, p)
		return p, nil
	})
	if err != nil {
		return domain.PersonDetail{}, err
	}
	return v.(domain.PersonDetail), nil
}

// List returns a page of persons matching p, alphabetic by full name.
// The sort is fixed so the cache key stays canonical for person listings.
func (s *Service) List(ctx context.Context, p domain.ListParams) ([]domain.PersonDetail, error) {
	p.SortField = sortField
	p.SortOrder = domain.SortAsc

	key := cache.ListKey(entity, p)
	if persons, ok := cache.Lookup[[]domain.PersonDetail](ctx, s.cache, key); ok {
		metrics.CacheHit(entity)
		return persons, nil
	}
	metrics.CacheMiss(entity)

	v, err, _ := s.group.Do("person_list:"+key, func() (any, error) {
		persons, err := s.repo.Search(ctx, buildQuery(p))
		if err != nil {
			return nil, err
		}
		if len(persons) > 0 {
			cache.Store(ctx, s.cache, key, persons)
		}
		return persons, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.PersonDetail), nil
}

// Films returns the films a person took part in, best rated first. An
// unknown person and a person with no films both read as an empty list.
func (s *Service) Films(ctx context.Context, personID string) ([]domain.FilmRating, error) {
	key := cache.PersonFilmsKey(personID)
	if films, ok := cache.Lookup[[]domain.FilmRating](ctx, s.cache, key); ok {
		metrics.CacheHit(entity)
		return films, nil
	}
	metrics.CacheMiss(entity)

	v, err, _ := s.group.Do("person_films:"+personID, func() (any, error) {
		q := esquery.New().
			NestedAny("uuid", personID, "actors", "writers", "directors").
			Sort(domain.DefaultSortField, esquery.Desc).
			Page(domain.DefaultPage, domain.MaxPageSize).
			Build()

		films, err := s.films.Search(ctx, q)
		if err != nil {
			return nil, err
		}
		ratings := make([]domain.FilmRating, 0, len(films))
		for _, f := range films {
			ratings = append(ratings, f.AsRating())
		}
		if len(ratings) > 0 {
			cache.Store(ctx, s.cache, key, ratings)
		}
		return ratings, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.FilmRating), nil
}

func buildQuery(p domain.ListParams) *esquery.Query {
	return esquery.New().
		Text(p.Query).
		Sort(p.SortField, esquery.Order(p.SortOrder)).
		Page(p.Page, p.Size).
		Build()
}
