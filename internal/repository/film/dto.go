package film

import (
	"encoding/json"
	"errors"

	"github.com/Benrise/Async-API-sprint-1/internal/domain"
)

// parseFilm deserializes a raw store document into a Film. A record missing
// required fields is a data-integrity error, reported, never defaulted.
func parseFilm(id string, raw []byte) (domain.Film, error) {
	var f domain.Film
	if err := json.Unmarshal(raw, &f); err != nil {
		return domain.Film{}, domain.NewIntegrity(Index, id, err)
	}
	if f.UUID == "" {
		return domain.Film{}, domain.NewIntegrity(Index, id, errors.New("missing uuid"))
	}
	if f.Title == "" {
		return domain.Film{}, domain.NewIntegrity(Index, f.UUID, errors.New("missing title"))
	}
	return f, nil
}
