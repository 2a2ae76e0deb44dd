package cache

import (
	"strconv"
	"strings"

	"github.com/Benrise/Async-API-sprint-1/internal/domain"
)

// EntityKey is the cache key for a single entity: the entity's own uuid.
func EntityKey(id string) string { return id }

// ListKey derives a deterministic key from every distinguishing listing
// parameter, so semantically identical requests share one entry and any
// differing parameter lands on a different key.
func ListKey(prefix string, p domain.ListParams) string {
	return strings.Join([]string{
		prefix,
		p.Query,
		string(p.SortOrder),
		p.SortField,
		strconv.Itoa(p.Page),
		strconv.Itoa(p.Size),
		p.GenreID,
	}, ":")
}

// PersonFilmsKey is the cache key for a person's filmography.
func PersonFilmsKey(personID string) string {
	return "person_films:" + personID
}
