package film

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Benrise/Async-API-sprint-1/internal/domain"
	"github.com/Benrise/Async-API-sprint-1/internal/esquery"
	"github.com/Benrise/Async-API-sprint-1/internal/repository/cache"
)

func rating(v float64) *float64 { return &v }

var dune = domain.Film{
	UUID:       "f1",
	Title:      "Dune",
	IMDBRating: rating(8.1),
	Genres:     []domain.Genre{{UUID: "g1", Name: "Sci-Fi"}},
}

func TestGetByID_CacheHit(t *testing.T) {
	mc := newMockCache()
	mc.put(t, cache.EntityKey("f1"), dune)
	repo := &mockRepo{getByIDFn: func(_ context.Context, _ string) (domain.Film, error) {
		t.Fatal("store must not be consulted on a cache hit")
		return domain.Film{}, nil
	}}

	f, err := New(repo, mc).GetByID(context.Background(), "f1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.UUID != "f1" || f.Title != "Dune" {
		t.Errorf("film = %+v", f)
	}
	if repo.getCalls != 0 {
		t.Errorf("store consulted %d times on a hit", repo.getCalls)
	}
}

func TestGetByID_MissPopulatesCache(t *testing.T) {
	mc := newMockCache()
	repo := &mockRepo{getByIDFn: func(_ context.Context, id string) (domain.Film, error) {
		if id != "f1" {
			t.Errorf("id = %q, want f1", id)
		}
		return dune, nil
	}}

	f, err := New(repo, mc).GetByID(context.Background(), "f1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.UUID != "f1" {
		t.Errorf("film = %+v", f)
	}

	data, ok := mc.Get(context.Background(), cache.EntityKey("f1"))
	if !ok {
		t.Fatal("miss must populate the cache")
	}
	var cached domain.Film
	if err := json.Unmarshal(data, &cached); err != nil {
		t.Fatalf("cached entry not valid JSON: %v", err)
	}
	if cached.IMDBRating == nil || *cached.IMDBRating != 8.1 {
		t.Errorf("cached rating = %v, want 8.1", cached.IMDBRating)
	}
}

func TestGetByID_NotFoundNotCached(t *testing.T) {
	mc := newMockCache()
	repo := &mockRepo{getByIDFn: func(_ context.Context, _ string) (domain.Film, error) {
		return domain.Film{}, domain.ErrNotFound
	}}

	_, err := New(repo, mc).GetByID(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if mc.len() != 0 {
		t.Error("absence must never be cached")
	}
}

func TestGetByID_ConcurrentMissesShareOneFetch(t *testing.T) {
	mc := newMockCache()
	release := make(chan struct{})
	repo := &mockRepo{getByIDFn: func(_ context.Context, _ string) (domain.Film, error) {
		<-release
		return dune, nil
	}}
	svc := New(repo, mc)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]domain.Film, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.GetByID(context.Background(), "f1")
		}(i)
	}

	// Let every goroutine reach the in-flight fetch before it completes.
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if results[i].UUID != "f1" {
			t.Errorf("caller %d got %+v", i, results[i])
		}
	}
	repo.mu.Lock()
	calls := repo.getCalls
	repo.mu.Unlock()
	if calls >= callers {
		t.Errorf("store consulted %d times for %d concurrent callers", calls, callers)
	}
}

func TestList_CacheHit(t *testing.T) {
	p := defaultParams(t)
	mc := newMockCache()
	mc.put(t, cache.ListKey("films", p), []domain.Film{dune})
	repo := &mockRepo{searchFn: func(_ context.Context, _ *esquery.Query) ([]domain.Film, error) {
		t.Fatal("store must not be consulted on a cache hit")
		return nil, nil
	}}

	films, err := New(repo, mc).List(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(films) != 1 || films[0].UUID != "f1" {
		t.Errorf("films = %+v", films)
	}
}

func TestList_MissPopulatesCache(t *testing.T) {
	p := defaultParams(t)
	mc := newMockCache()
	repo := &mockRepo{searchFn: func(_ context.Context, q *esquery.Query) ([]domain.Film, error) {
		if q.From() != 0 || q.Size() != domain.DefaultPageSize {
			t.Errorf("paging = %d/%d", q.From(), q.Size())
		}
		return []domain.Film{dune}, nil
	}}

	films, err := New(repo, mc).List(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(films) != 1 {
		t.Fatalf("got %d films, want 1", len(films))
	}
	if _, ok := mc.Get(context.Background(), cache.ListKey("films", p)); !ok {
		t.Error("miss must populate the cache")
	}
}

func TestList_EmptyPageNotCached(t *testing.T) {
	p := defaultParams(t)
	mc := newMockCache()
	repo := &mockRepo{searchFn: func(_ context.Context, _ *esquery.Query) ([]domain.Film, error) {
		return nil, nil
	}}

	films, err := New(repo, mc).List(context.Background(), p)
	if err != nil {
		t.Fatalf("empty page must not be an error, got %v", err)
	}
	if len(films) != 0 {
		t.Errorf("films = %+v", films)
	}
	if mc.len() != 0 {
		t.Error("empty pages must never be cached")
	}
}

func TestList_InvalidQueryPropagates(t *testing.T) {
	p := defaultParams(t)
	mc := newMockCache()
	repo := &mockRepo{searchFn: func(_ context.Context, _ *esquery.Query) ([]domain.Film, error) {
		return nil, domain.ErrInvalidQuery
	}}

	_, err := New(repo, mc).List(context.Background(), p)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
	if mc.len() != 0 {
		t.Error("failures must never be cached")
	}
}

func TestBuildQuery_GenreFilterAndSort(t *testing.T) {
	p, err := domain.NewListParams("space", "imdb_rating", domain.SortDesc, 2, 25, "g1")
	if err != nil {
		t.Fatalf("NewListParams: %v", err)
	}

	body, err := buildQuery(p).Body()
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	if !json.Valid(body) {
		t.Fatal("body is not valid JSON")
	}
	for _, want := range []string{
		`"multi_match"`, `"space"`,
		`"nested"`, `"genres.uuid"`, `"g1"`,
		`"imdb_rating":{"order":"desc"}`,
		`"from":25`, `"size":25`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("body missing %s:\n%s", want, body)
		}
	}
}
