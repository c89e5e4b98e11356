package mockapi

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type record map[string]any

func (r record) str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (r record) clone() record {
	out := make(record, len(r))
	for k, v := range r {
		if list, ok := v.([]any); ok {
			v = append([]any(nil), list...)
		}
		out[k] = v
	}
	return out
}

// collection keeps rows in insertion order.
type collection struct {
	rows  map[string]record
	order []string
}

func newCollection() *collection {
	return &collection{rows: map[string]record{}}
}

func (c *collection) put(id string, r record) {
	if _, ok := c.rows[id]; !ok {
		c.order = append(c.order, id)
	}
	r["id"] = id
	c.rows[id] = r
}

func (c *collection) get(id string) (record, bool) {
	r, ok := c.rows[id]
	return r, ok
}

func (c *collection) remove(id string) {
	delete(c.rows, id)
	out := c.order[:0]
	for _, existing := range c.order {
		if existing != id {
			out = append(out, existing)
		}
	}
	c.order = out
}

func (c *collection) all() []record {
	out := make([]record, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.rows[id])
	}
	return out
}

// findBy returns the first row whose field equals value, ignoring case.
func (c *collection) findBy(field, value string) (record, bool) {
	for _, r := range c.all() {
		if strings.EqualFold(r.str(field), value) {
			return r, true
		}
	}
	return nil, false
}

// --- Search ---

var reservedParams = map[string]bool{
	"Search": true, "SortBy": true, "IsDescending": true, "Page": true, "PageSize": true,
}

type searchQuery struct {
	term       string
	sortBy     string
	descending bool
	page       int
	pageSize   int
	filters    map[string][]string
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func (c *collection) search(q searchQuery) ([]record, int) {
	term := strings.ToLower(strings.TrimSpace(q.term))
	var matched []record
	for _, r := range c.all() {
		if term != "" && !matchesTerm(r, term) {
			continue
		}
		if !matchesFilters(r, q.filters) {
			continue
		}
		matched = append(matched, r)
	}

	if q.sortBy != "" {
		field := lowerFirst(q.sortBy)
		sort.SliceStable(matched, func(i, j int) bool {
			cmp := compare(matched[i][field], matched[j][field])
			if q.descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	total := len(matched)
	start := (q.page - 1) * q.pageSize
	if start > total {
		start = total
	}
	end := start + q.pageSize
	if end > total {
		end = total
	}
	return matched[start:end], total
}

func matchesTerm(r record, term string) bool {
	for _, v := range r {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

func matchesFilters(r record, filters map[string][]string) bool {
	for param, values := range filters {
		field := lowerFirst(param)
		got := r.str(field)
		ok := false
		for _, want := range values {
			if strings.EqualFold(got, want) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func compare(a, b any) int {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum && bNum {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(fmt.Sprint(a)), strings.ToLower(fmt.Sprint(b)))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
