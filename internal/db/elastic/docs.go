package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Benrise/Async-API-sprint-1/internal/db"
	"github.com/Benrise/Async-API-sprint-1/internal/esquery"
)

// GetByID fetches one document and returns its raw _source. A store-reported
// missing document (or missing index) maps to db.ErrDocNotFound.
func (s *Store) GetByID(ctx context.Context, index, id string) ([]byte, error) {
	res, err := s.client.Get(index, id, s.client.Get.WithContext(ctx))
	if err != nil {
		return nil, &db.Error{Op: db.OpDoc, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, db.ErrDocNotFound
	}
	if res.IsError() {
		return nil, &db.Error{Op: db.OpDoc, Err: errors.New(res.Status())}
	}

	var out struct {
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &db.Error{Op: db.OpDoc, Err: err}
	}
	if len(out.Source) == 0 {
		return nil, db.ErrDocNotFound
	}
	return out.Source, nil
}

// Search executes a query document against an index and returns the raw
// sources of all hits in store order. A missing index reads as zero hits; a
// schema-rejected body maps to db.ErrBadQuery with the server's reason.
func (s *Store) Search(ctx context.Context, index string, q *esquery.Query) ([][]byte, error) {
	body, err := q.Body()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", db.ErrBadQuery, errorReason(res.Body))
	case res.StatusCode == http.StatusNotFound:
		return nil, nil
	case res.IsError():
		return nil, &db.Error{Op: db.OpSearch, Err: errors.New(res.Status())}
	}

	var out struct {
		Hits struct {
			Hits []struct {
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	sources := make([][]byte, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		sources = append(sources, h.Source)
	}
	return sources, nil
}

// errorReason extracts the server-side reason from an error response body.
func errorReason(r io.Reader) string {
	var out struct {
		Error struct {
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&out); err != nil || out.Error.Reason == "" {
		return "bad request"
	}
	return out.Error.Reason
}
