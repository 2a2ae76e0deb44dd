package chi

import (
	"context"
	"net/http/httptest"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Benrise/Async-API-sprint-1/internal/domain"
	"github.com/Benrise/Async-API-sprint-1/internal/esquery"
	filmuc "github.com/Benrise/Async-API-sprint-1/internal/usecase/film"
	genreuc "github.com/Benrise/Async-API-sprint-1/internal/usecase/genre"
	healthuc "github.com/Benrise/Async-API-sprint-1/internal/usecase/health"
	personuc "github.com/Benrise/Async-API-sprint-1/internal/usecase/person"
)

// --- Mocks ---

type mockFilmRepo struct {
	getByIDFn func(ctx context.Context, id string) (domain.Film, error)
	searchFn  func(ctx context.Context, q *esquery.Query) ([]domain.Film, error)
}

func (m *mockFilmRepo) GetByID(ctx context.Context, id string) (domain.Film, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockFilmRepo) Search(ctx context.Context, q *esquery.Query) ([]domain.Film, error) {
	return m.searchFn(ctx, q)
}

type mockGenreRepo struct {
	getByIDFn func(ctx context.Context, id string) (domain.Genre, error)
	searchFn  func(ctx context.Context, q *esquery.Query) ([]domain.Genre, error)
}

func (m *mockGenreRepo) GetByID(ctx context.Context, id string) (domain.Genre, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockGenreRepo) Search(ctx context.Context, q *esquery.Query) ([]domain.Genre, error) {
	return m.searchFn(ctx, q)
}

type mockPersonRepo struct {
	getByIDFn func(ctx context.Context, id string) (domain.PersonDetail, error)
	searchFn  func(ctx context.Context, q *esquery.Query) ([]domain.PersonDetail, error)
}

func (m *mockPersonRepo) GetByID(ctx context.Context, id string) (domain.PersonDetail, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockPersonRepo) Search(ctx context.Context, q *esquery.Query) ([]domain.PersonDetail, error) {
	return m.searchFn(ctx, q)
}

// mockCache never hits, so every request exercises the store path.
type mockCache struct{}

func (mockCache) Get(_ context.Context, _ string) ([]byte, bool) { return nil, false }
func (mockCache) Set(_ context.Context, _ string, _ []byte)      {}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// fixtures is the set of mocks behind a test server.
type fixtures struct {
	films    *mockFilmRepo
	genres   *mockGenreRepo
	persons  *mockPersonRepo
	storePin *mockPinger
	cachePin *mockPinger
}

func newTestServer(t *testing.T) (*httptest.Server, *fixtures) {
	t.Helper()

	f := &fixtures{
		films:    &mockFilmRepo{},
		genres:   &mockGenreRepo{},
		persons:  &mockPersonRepo{},
		storePin: &mockPinger{},
		cachePin: &mockPinger{},
	}

	mc := mockCache{}
	filmSvc := filmuc.New(f.films, mc)
	genreSvc := genreuc.New(f.genres, mc)
	personSvc := personuc.New(f.persons, f.films, mc)
	healthSvc := healthuc.New(f.storePin, f.cachePin)

	server := NewServer(filmSvc, genreSvc, personSvc, healthSvc, zap.NewNop())

	r := chirouter.NewRouter()
	server.Register(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, f
}
