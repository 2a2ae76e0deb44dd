package domain

import "fmt"

// SortOrder is a sort direction for listings.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Listing defaults and limits.
const (
	DefaultPage      = 1
	DefaultPageSize  = 10
	MaxPageSize      = 100
	DefaultSortField = "imdb_rating"
)

// ListParams is a validated listing request: an optional free-text query,
// exactly one sort field/direction pair, 1-based pagination and an optional
// genre filter. It is transient and never persisted.
type ListParams struct {
	Query     string
	SortField string
	SortOrder SortOrder
	Page      int
	Size      int
	GenreID   string
}

// NewListParams normalizes defaults and rejects out-of-range paging.
// Defaults: page 1, size 10, sort imdb_rating descending.
func NewListParams(
	query, sortField string, order SortOrder, page, size int, genreID string,
) (ListParams, error) {
	if sortField == "" {
		sortField = DefaultSortField
	}
	if order == "" {
		order = SortDesc
	}
	if order != SortAsc && order != SortDesc {
		return ListParams{}, fmt.Errorf("%w: sort_order must be %q or %q", ErrInvalidQuery, SortAsc, SortDesc)
	}
	if page < 1 {
		return ListParams{}, fmt.Errorf("%w: page must be >= 1", ErrInvalidQuery)
	}
	if size < 1 || size > MaxPageSize {
		return ListParams{}, fmt.Errorf("%w: size must be between 1 and %d", ErrInvalidQuery, MaxPageSize)
	}
	return ListParams{
		Query:     query,
		SortField: sortField,
		SortOrder: order,
		Page:      page,
		Size:      size,
		GenreID:   genreID,
	}, nil
}
