// Package esquery builds the structured query documents sent to the search
// store. Construction is pure: the same inputs always yield the same query,
// and no I/O happens here. Input validation (page >= 1, size cap) is the
// caller's responsibility.
package esquery

import "encoding/json"

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

type filterKind int

const (
	termFilter filterKind = iota
	nestedFilter
	nestedAnyFilter
)

// filter is one clause of the query's filter context.
type filter struct {
	kind  filterKind
	field string
	value string
	path  string
	paths []string
}

// Query is an immutable search-store query document: a boolean match clause,
// optional filters, exactly one sort field/direction pair and offset/limit.
// Ties on the sort key are broken by store-default order, which is not
// deterministic; callers that need stable pages must pick a unique sort key.
type Query struct {
	text      string
	filters   []filter
	sortField string
	sortOrder Order
	from      int
	size      int
}

// From returns the pagination offset.
func (q *Query) From() int { return q.from }

// Size returns the page size.
func (q *Query) Size() int { return q.size }

// Body marshals the query into the search-store request document:
//
//	{"query":{"bool":{...}},"sort":{field:{"order":o}},"from":F,"size":S}
//
// An empty free-text query produces a match_all must clause; filters apply
// either way.
func (q *Query) Body() ([]byte, error) {
	boolClause := map[string]any{}
	if q.text == "" {
		boolClause["must"] = []any{map[string]any{"match_all": map[string]any{}}}
	} else {
		boolClause["must"] = []any{
			map[string]any{"multi_match": map[string]any{"query": q.text}},
		}
	}
	if len(q.filters) > 0 {
		clauses := make([]any, 0, len(q.filters))
		for _, f := range q.filters {
			clauses = append(clauses, f.clause())
		}
		boolClause["filter"] = clauses
	}

	return json.Marshal(map[string]any{
		"query": map[string]any{"bool": boolClause},
		"sort":  map[string]any{q.sortField: map[string]any{"order": string(q.sortOrder)}},
		"from":  q.from,
		"size":  q.size,
	})
}

func (f filter) clause() map[string]any {
	switch f.kind {
	case termFilter:
		return map[string]any{"term": map[string]any{f.field: f.value}}
	case nestedFilter:
		return nestedClause(f.path, f.field, f.value)
	default:
		should := make([]any, 0, len(f.paths))
		for _, p := range f.paths {
			should = append(should, nestedClause(p, p+"."+f.field, f.value))
		}
		return map[string]any{"bool": map[string]any{
			"should":               should,
			"minimum_should_match": 1,
		}}
	}
}

func nestedClause(path, field, value string) map[string]any {
	return map[string]any{"nested": map[string]any{
		"path":  path,
		"query": map[string]any{"match": map[string]any{field: value}},
	}}
}

// Builder assembles a Query.
type Builder struct {
	q Query
}

// New starts building a query document.
func New() *Builder {
	return &Builder{}
}

// Text sets the free-text query. Empty text leaves the match clause
// unconstrained.
func (b *Builder) Text(text string) *Builder {
	b.q.text = text
	return b
}

// Term adds an exact-value filter on a flat attribute. Empty values are
// skipped so callers can pass optional parameters straight through.
func (b *Builder) Term(field, value string) *Builder {
	if value == "" {
		return b
	}
	b.q.filters = append(b.q.filters, filter{kind: termFilter, field: field, value: value})
	return b
}

// Nested adds a relational filter: a nested match against an embedded
// sub-object field, e.g. Nested("genres", "genres.uuid", id). Empty values
// are skipped.
func (b *Builder) Nested(path, field, value string) *Builder {
	if value == "" {
		return b
	}
	b.q.filters = append(b.q.filters, filter{kind: nestedFilter, path: path, field: field, value: value})
	return b
}

// NestedAny adds a filter matching documents whose embedded sub-objects under
// any of the given paths carry the value in the named field, e.g. films where
// a person appears among actors, writers or directors.
func (b *Builder) NestedAny(field, value string, paths ...string) *Builder {
	if value == "" || len(paths) == 0 {
		return b
	}
	b.q.filters = append(b.q.filters, filter{kind: nestedAnyFilter, field: field, value: value, paths: paths})
	return b
}

// Sort sets the single sort field/direction pair.
func (b *Builder) Sort(field string, order Order) *Builder {
	b.q.sortField = field
	b.q.sortOrder = order
	return b
}

// Page sets pagination from a 1-based page number: offset = (page-1)*size.
func (b *Builder) Page(page, size int) *Builder {
	b.q.from = (page - 1) * size
	b.q.size = size
	return b
}

// Build returns the assembled query document.
func (b *Builder) Build() *Query {
	q := b.q
	return &q
}
