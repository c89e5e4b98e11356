package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gravitrone/backoffice/cli/internal/api"
	"github.com/gravitrone/backoffice/cli/internal/listctl"
)

// Listing is one fetched page rendered for non-interactive output.
type Listing struct {
	Headers []string
	Cells   [][]string
	// Rows holds the typed entities for JSON output.
	Rows  []any
	Total int
	Page  int
	Pages int
}

// Result is a mutation outcome without the entity type.
type Result struct {
	Kind    listctl.OutcomeKind
	Message string
	Err     error
}

// Entry is the type-erased view of a Resource used by the CLI.
type Entry struct {
	Key         string
	Title       string
	Path        string
	Perms       Permissions
	Headers     []string
	SortKeys    []string
	// DefaultSort is the column key applied when no sort is requested.
	DefaultSort string
	Filters     []FilterDef

	List func(ctx context.Context, client *api.Client, q listctl.Query, timeout time.Duration) (*Listing, error)
	// Delete is nil when the resource cannot be deleted.
	Delete func(ctx context.Context, client *api.Client, id string) Result
	// ToggleStatus is nil when the resource has no status endpoint.
	ToggleStatus func(ctx context.Context, client *api.Client, id string) Result
}

// Entry erases the resource's entity type.
func (r *Resource[T]) Entry() Entry {
	sortKeys := make([]string, 0, len(r.SortMap))
	for k := range r.SortMap {
		sortKeys = append(sortKeys, k)
	}
	sort.Strings(sortKeys)

	e := Entry{
		Key:         r.Key,
		Title:       r.Title,
		Path:        r.Path,
		Perms:       r.Perms,
		Headers:     r.Headers(),
		SortKeys:    sortKeys,
		DefaultSort: r.DefaultSort,
		Filters:     r.Filters,
		List:        r.list,
	}
	if !r.NoDelete {
		e.Delete = func(ctx context.Context, client *api.Client, id string) Result {
			return toResult(r.Dispatcher(client).Delete(ctx, id))
		}
	}
	if r.HasStatus() {
		e.ToggleStatus = func(ctx context.Context, client *api.Client, id string) Result {
			row, err := api.Get[T](ctx, client, r.Path, id)
			if err != nil {
				kind, msg := kindOf(err), r.Messages.GenericText()
				if kind == listctl.OutcomeNotFound {
					msg = r.Messages.NotFoundText()
				}
				return Result{Kind: kind, Message: msg, Err: err}
			}
			if row == nil {
				return Result{Kind: listctl.OutcomeNotFound, Message: r.Messages.NotFoundText()}
			}
			return toResult(r.Dispatcher(client).ChangeStatus(ctx, *row))
		}
	}
	return e
}

func (r *Resource[T]) list(ctx context.Context, client *api.Client, q listctl.Query, timeout time.Duration) (*Listing, error) {
	ctl := listctl.NewController(r.Searcher(client),
		listctl.WithSortMap[T](r.SortMap),
		listctl.WithQuery[T](q),
		listctl.WithFetchTimeout[T](timeout),
	)
	if _, err := ctl.Refresh(ctx); err != nil {
		return nil, err
	}
	res := ctl.Result()
	final := ctl.Query()

	out := &Listing{
		Headers: r.Headers(),
		Cells:   make([][]string, 0, len(res.Rows)),
		Rows:    make([]any, 0, len(res.Rows)),
		Total:   res.TotalCount,
		Page:    final.PageIndex + 1,
		Pages:   final.PageCount(res.TotalCount),
	}
	for _, row := range res.Rows {
		out.Cells = append(out.Cells, r.Cells(row))
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func toResult[T listctl.Entity](o listctl.Outcome[T]) Result {
	return Result{Kind: o.Kind, Message: o.Message, Err: o.Err}
}

func kindOf(err error) listctl.OutcomeKind {
	switch api.KindOf(err) {
	case api.KindUnauthorized:
		return listctl.OutcomeUnauthorized
	case api.KindNotFound:
		return listctl.OutcomeNotFound
	}
	return listctl.OutcomeToast
}

// Registry is the ordered set of resources.
type Registry struct {
	entries []Entry
	byKey   map[string]Entry
}

// Default returns every backoffice resource in menu order.
func Default() *Registry {
	return NewRegistry(
		Orders().Entry(),
		Users().Entry(),
		Couriers().Entry(),
		Businesses().Entry(),
		Products().Entry(),
		Categories().Entry(),
		Roles().Entry(),
		Vehicles().Entry(),
		VehicleTypes().Entry(),
		ShippingCosts().Entry(),
	)
}

func NewRegistry(entries ...Entry) *Registry {
	reg := &Registry{byKey: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		reg.entries = append(reg.entries, e)
		reg.byKey[e.Key] = e
	}
	return reg
}

// All returns the entries in registration order.
func (r *Registry) All() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Lookup finds an entry by key.
func (r *Registry) Lookup(key string) (Entry, error) {
	e, ok := r.byKey[key]
	if !ok {
		return Entry{}, fmt.Errorf("unknown resource %q (try one of: %s)", key, r.keyList())
	}
	return e, nil
}

// Visible returns entries the gate may view.
func (r *Registry) Visible(gate listctl.Gate) []Entry {
	var out []Entry
	for _, e := range r.entries {
		if gate.Has(e.Perms.View) {
			out = append(out, e)
		}
	}
	return out
}

func (r *Registry) keyList() string {
	keys := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		keys = append(keys, e.Key)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
