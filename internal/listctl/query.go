// Package listctl drives paginated, server-side list screens: query state,
// fetch ordering, mutation outcomes, and permission-gated actions.
package listctl

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultPageSize is used when a non-positive page size is requested.
const DefaultPageSize = 10

// Filter is one column filter. Multi-valued filters keep every value.
type Filter struct {
	Field  string
	Values []string
}

// Query is the table state of a list screen. Page is 0-indexed.
type Query struct {
	PageIndex      int
	PageSize       int
	SortField      string
	SortDescending bool
	GlobalSearch   string
	Filters        []Filter
}

// NewQuery returns page 0 with the given size.
func NewQuery(pageSize int) Query {
	q := Query{}
	q.SetPageSize(pageSize)
	return q
}

// --- Pagination ---

func (q *Query) SetPage(index int) {
	if index < 0 {
		index = 0
	}
	q.PageIndex = index
}

// SetPageSize changes the page size and returns to the first page.
func (q *Query) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	q.PageSize = size
	q.PageIndex = 0
}

// PageCount is the number of pages needed to show total rows.
func (q Query) PageCount(total int) int {
	if total <= 0 || q.PageSize <= 0 {
		return 0
	}
	return (total + q.PageSize - 1) / q.PageSize
}

// NextPage advances when another page exists. It reports whether the page moved.
func (q *Query) NextPage(total int) bool {
	if q.PageIndex+1 >= q.PageCount(total) {
		return false
	}
	q.PageIndex++
	return true
}

// PrevPage steps back unless already on the first page.
func (q *Query) PrevPage() bool {
	if q.PageIndex == 0 {
		return false
	}
	q.PageIndex--
	return true
}

// --- Sorting ---

func (q *Query) SetSort(field string, descending bool) {
	q.SortField = field
	q.SortDescending = descending
}

// ToggleSort flips direction on the same field, or sorts a new field ascending.
func (q *Query) ToggleSort(field string) {
	if q.SortField == field {
		q.SortDescending = !q.SortDescending
		return
	}
	q.SortField = field
	q.SortDescending = false
}

// --- Search & Filters ---

// SetSearch replaces the global search term. Any change goes back to page 0.
func (q *Query) SetSearch(term string) {
	q.GlobalSearch = strings.TrimSpace(term)
	q.PageIndex = 0
}

// SetFilter sets or replaces a column filter and goes back to page 0.
// An empty value list removes the filter.
func (q *Query) SetFilter(field string, values ...string) {
	defer func() { q.PageIndex = 0 }()

	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) == 0 {
		q.removeFilter(field)
		return
	}
	for i := range q.Filters {
		if q.Filters[i].Field == field {
			q.Filters[i].Values = cleaned
			return
		}
	}
	q.Filters = append(q.Filters, Filter{Field: field, Values: cleaned})
}

func (q *Query) ClearFilter(field string) {
	q.removeFilter(field)
	q.PageIndex = 0
}

func (q *Query) ClearFilters() {
	q.Filters = nil
	q.PageIndex = 0
}

// FilterValues returns the values of a filter, nil when unset.
func (q Query) FilterValues(field string) []string {
	for _, f := range q.Filters {
		if f.Field == field {
			return f.Values
		}
	}
	return nil
}

func (q *Query) removeFilter(field string) {
	out := q.Filters[:0]
	for _, f := range q.Filters {
		if f.Field != field {
			out = append(out, f)
		}
	}
	q.Filters = out
}

// --- Wire Translation ---

// SortMap translates UI column keys to backend sort names.
type SortMap map[string]string

// Params renders the query as search endpoint parameters. The wire page is
// 1-indexed. Sort fields missing from sortMap are not sent.
func (q Query) Params(sortMap SortMap) url.Values {
	params := url.Values{}
	if q.GlobalSearch != "" {
		params.Set("Search", q.GlobalSearch)
	}
	if wire, ok := sortMap[q.SortField]; ok && q.SortField != "" {
		params.Set("SortBy", wire)
		params.Set("IsDescending", strconv.FormatBool(q.SortDescending))
	}
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	params.Set("Page", strconv.Itoa(q.PageIndex+1))
	params.Set("PageSize", strconv.Itoa(size))
	for _, f := range q.Filters {
		for _, v := range f.Values {
			params.Add(f.Field, v)
		}
	}
	return params
}

// FilterKind is the value type a filter widget produces.
type FilterKind int

const (
	FilterText FilterKind = iota
	FilterInt
	FilterBool
	FilterIntList
)

// ParseFilterValue coerces text typed into a filter prompt into wire values.
// Booleans accept true/false, si/no, 1/0. Lists are comma separated.
func ParseFilterValue(kind FilterKind, raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	switch kind {
	case FilterInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &FilterValueError{Raw: raw, Kind: kind}
		}
		return []string{strconv.Itoa(n)}, nil
	case FilterBool:
		switch strings.ToLower(raw) {
		case "true", "si", "sí", "1", "yes", "activo":
			return []string{"true"}, nil
		case "false", "no", "0", "inactivo":
			return []string{"false"}, nil
		}
		return nil, &FilterValueError{Raw: raw, Kind: kind}
	case FilterIntList:
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			n, err := strconv.Atoi(p)
			if err != nil {
				return nil, &FilterValueError{Raw: p, Kind: kind}
			}
			out = append(out, strconv.Itoa(n))
		}
		return out, nil
	default:
		return []string{raw}, nil
	}
}

// FilterValueError reports text that does not parse as the filter's kind.
type FilterValueError struct {
	Raw  string
	Kind FilterKind
}

func (e *FilterValueError) Error() string {
	switch e.Kind {
	case FilterInt, FilterIntList:
		return "invalid number: " + strconv.Quote(e.Raw)
	case FilterBool:
		return "invalid boolean: " + strconv.Quote(e.Raw)
	}
	return "invalid filter value: " + strconv.Quote(e.Raw)
}
