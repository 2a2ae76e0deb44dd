// Package chi exposes the movie catalog over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Benrise/Async-API-sprint-1/internal/domain"
	filmuc "github.com/Benrise/Async-API-sprint-1/internal/usecase/film"
	genreuc "github.com/Benrise/Async-API-sprint-1/internal/usecase/genre"
	healthuc "github.com/Benrise/Async-API-sprint-1/internal/usecase/health"
	personuc "github.com/Benrise/Async-API-sprint-1/internal/usecase/person"
)

// Error response codes returned to clients.
const (
	codeBadRequest    = "bad_request"
	codeNotFound      = "not_found"
	codeInvalidQuery  = "invalid_query"
	codeUnavailable   = "service_unavailable"
	codeInternalError = "internal_error"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server routes catalog requests to the entity services.
type Server struct {
	films   *filmuc.Service
	genres  *genreuc.Service
	persons *personuc.Service
	health  *healthuc.Service
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	films *filmuc.Service,
	genres *genreuc.Service,
	persons *personuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		films:   films,
		genres:  genres,
		persons: persons,
		health:  health,
		logger:  logger,
	}
}

// Register mounts all API routes on r.
func (s *Server) Register(r chirouter.Router) {
	r.Route("/api/v1", func(r chirouter.Router) {
		r.Get("/films", s.ListFilms)
		r.Get("/films/{film_id}", s.GetFilm)
		r.Get("/genres", s.ListGenres)
		r.Get("/genres/{genre_id}", s.GetGenre)
		r.Get("/persons", s.ListPersons)
		r.Get("/persons/{person_id}", s.GetPerson)
		r.Get("/persons/{person_id}/film", s.GetPersonFilms)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// GetFilm handles GET /api/v1/films/{film_id}.
func (s *Server) GetFilm(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "film_id")

	film, err := s.films.GetByID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, film)
}

// ListFilms handles GET /api/v1/films.
func (s *Server) ListFilms(w http.ResponseWriter, r *http.Request) {
	params, err := listParamsFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidQuery, err.Error())
		return
	}

	films, err := s.films.List(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if films == nil {
		films = []domain.Film{}
	}
	writeJSON(w, http.StatusOK, films)
}

// GetGenre handles GET /api/v1/genres/{genre_id}.
func (s *Server) GetGenre(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "genre_id")

	genre, err := s.genres.GetByID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, genre)
}

// ListGenres handles GET /api/v1/genres.
func (s *Server) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.genres.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if genres == nil {
		genres = []domain.Genre{}
	}
	writeJSON(w, http.StatusOK, genres)
}

// GetPerson handles GET /api/v1/persons/{person_id}.
func (s *Server) GetPerson(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "person_id")

	person, err := s.persons.GetByID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, person)
}

// ListPersons handles GET /api/v1/persons.
func (s *Server) ListPersons(w http.ResponseWriter, r *http.Request) {
	params, err := listParamsFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidQuery, err.Error())
		return
	}

	persons, err := s.persons.List(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if persons == nil {
		persons = []domain.PersonDetail{}
	}
	writeJSON(w, http.StatusOK, persons)
}

// GetPersonFilms handles GET /api/v1/persons/{person_id}/film.
func (s *Server) GetPersonFilms(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "person_id")

	films, err := s.persons.Films(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if films == nil {
		films = []domain.FilmRating{}
	}
	writeJSON(w, http.StatusOK, films)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// listParamsFromRequest parses the shared listing query parameters:
// query, sort_field, sort_order, page, size, genre.
func listParamsFromRequest(r *http.Request) (domain.ListParams, error) {
	q := r.URL.Query()

	page := domain.DefaultPage
	if raw := q.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return domain.ListParams{}, errors.New("page must be an integer")
		}
		page = v
	}

	size := domain.DefaultPageSize
	if raw := q.Get("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return domain.ListParams{}, errors.New("size must be an integer")
		}
		size = v
	}

	return domain.NewListParams(
		q.Get("query"),
		q.Get("sort_field"),
		domain.SortOrder(q.Get("sort_order")),
		page,
		size,
		q.Get("genre"),
	)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidQuery):
		s.logger.Warn("invalid query", zap.Error(err))
		writeError(w, http.StatusBadRequest, codeInvalidQuery, "invalid query parameters")
	case errors.Is(err, domain.ErrUnavailable):
		s.logger.Error("backend unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "service temporarily unavailable")
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
