package listctl

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

type row struct {
	ID     string
	Name   string
	Active bool
	Status int
}

func (r row) EntityID() string { return r.ID }

type statusErr int

func (e statusErr) Error() string   { return "HTTP " + strconv.Itoa(int(e)) }
func (e statusErr) StatusCode() int { return int(e) }

type validationErr map[string]string

func (v validationErr) Error() string              { return "validation failed" }
func (v validationErr) Fields() map[string]string { return v }

// fakeBackend is an in-memory search endpoint with name search and paging.
type fakeBackend struct {
	mu    sync.Mutex
	rows  []row
	calls []url.Values
	err   error
}

func newFakeBackend(n int) *fakeBackend {
	b := &fakeBackend{}
	for i := 1; i <= n; i++ {
		b.rows = append(b.rows, row{ID: fmt.Sprintf("r-%02d", i), Name: fmt.Sprintf("Row %02d", i), Active: true})
	}
	return b
}

func (b *fakeBackend) search(ctx context.Context, params url.Values) ([]row, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, params)
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if b.err != nil {
		return nil, 0, b.err
	}
	term := strings.ToLower(params.Get("Search"))
	var matched []row
	for _, r := range b.rows {
		if term == "" || strings.Contains(strings.ToLower(r.Name), term) {
			matched = append(matched, r)
		}
	}
	page, _ := strconv.Atoi(params.Get("Page"))
	size, _ := strconv.Atoi(params.Get("PageSize"))
	start := (page - 1) * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return append([]row(nil), matched[start:end]...), len(matched), nil
}

func (b *fakeBackend) remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.rows[:0]
	for _, r := range b.rows {
		if r.ID != id {
			out = append(out, r)
		}
	}
	b.rows = out
}

func (b *fakeBackend) lastCall() url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.calls) == 0 {
		return nil
	}
	return b.calls[len(b.calls)-1]
}

func (b *fakeBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}
