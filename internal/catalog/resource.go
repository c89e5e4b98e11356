// Package catalog declares every backoffice list screen: columns, sort
// names, filters, form fields, permission codes, and user-facing texts.
package catalog

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/gravitrone/backoffice/cli/internal/api"
	"github.com/gravitrone/backoffice/cli/internal/listctl"
)

// Column is one table column of a resource.
type Column[T any] struct {
	Key    string
	Header string
	Width  int
	Render func(T) string
}

// Sortable reports whether the column can be sent as SortBy.
func (c Column[T]) Sortable(m listctl.SortMap) bool {
	_, ok := m[c.Key]
	return ok
}

// FilterDef describes one column filter offered by the filter prompt.
type FilterDef struct {
	Param string
	Label string
	Kind  listctl.FilterKind
	// Lookup names an api.Lookups list used to offer choices.
	Lookup string
	// Choices are static id/label pairs (enums).
	Choices []api.Option
}

// Permissions are the capability codes guarding a resource.
type Permissions struct {
	View   string
	Create string
	Edit   string
	Delete string
	Status string
}

// PermissionsFor derives the standard codes for a permission noun.
func PermissionsFor(noun string) Permissions {
	return Permissions{
		View:   "Ver_" + noun,
		Create: "Crear_" + noun,
		Edit:   "Editar_" + noun,
		Delete: "Eliminar_" + noun,
		Status: "Estado_" + noun,
	}
}

// Standard action ids.
const (
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionStatus = "status"
	ActionAssign = "assign"
)

// Resource is the declarative configuration of one entity screen.
type Resource[T listctl.Entity] struct {
	Key   string
	Title string
	// Path is the API collection path, e.g. "vehicle-types".
	Path        string
	Perms       Permissions
	Columns     []Column[T]
	SortMap     listctl.SortMap
	DefaultSort string
	Filters     []FilterDef
	Fields      []Field
	Messages    listctl.Messages

	// Build turns submitted form values into an api input.
	Build func(Values) (any, error)
	// Values fills the edit form from a row.
	Values func(T) Values
	// Label names a row in dialogs.
	Label func(T) string

	// StatusOf and SetStatus are set for entities with a status toggle.
	StatusOf  func(T) bool
	SetStatus func(T, bool) T

	// Extra row actions beyond the standard ones.
	Extra []listctl.Action[T]
	// ReadOnly disables create and edit.
	ReadOnly bool
	NoDelete bool
}

// HasStatus reports whether the entity supports the status endpoint.
func (r *Resource[T]) HasStatus() bool {
	return r.StatusOf != nil && r.SetStatus != nil
}

// Toolbar returns the toolbar actions (create).
func (r *Resource[T]) Toolbar() []listctl.Action[T] {
	if r.ReadOnly || r.Build == nil {
		return nil
	}
	return []listctl.Action[T]{{
		ID:         ActionCreate,
		Label:      "Nuevo",
		Key:        "n",
		Permission: r.Perms.Create,
		Kind:       listctl.MutationCreate,
	}}
}

// RowActions returns every row action of the resource.
func (r *Resource[T]) RowActions() []listctl.Action[T] {
	var out []listctl.Action[T]
	if !r.ReadOnly && r.Build != nil {
		out = append(out, listctl.Action[T]{
			ID: ActionEdit, Label: "Editar", Key: "e",
			Permission: r.Perms.Edit, Kind: listctl.MutationUpdate,
		})
	}
	if !r.NoDelete {
		out = append(out, listctl.Action[T]{
			ID: ActionDelete, Label: "Eliminar", Key: "d",
			Permission: r.Perms.Delete, Kind: listctl.MutationDelete,
		})
	}
	if r.HasStatus() {
		out = append(out, listctl.Action[T]{
			ID: ActionStatus, Label: "Cambiar estado", Key: "s",
			Permission: r.Perms.Status, Kind: listctl.MutationChangeStatus,
		})
	}
	return append(out, r.Extra...)
}

// Searcher binds the resource's search endpoint to client.
func (r *Resource[T]) Searcher(client *api.Client) listctl.Searcher[T] {
	return func(ctx context.Context, params url.Values) ([]T, int, error) {
		page, err := api.Search[T](ctx, client, r.Path, params)
		if err != nil {
			return nil, 0, err
		}
		return page.Data, page.TotalCount, nil
	}
}

// Commands binds the resource's command endpoints to client. Inputs are
// validated before any request is sent.
func (r *Resource[T]) Commands(client *api.Client) listctl.Commands[T] {
	cmds := listctl.Commands[T]{}
	if !r.ReadOnly && r.Build != nil {
		cmds.Create = func(ctx context.Context, input any) (*T, error) {
			if errs := api.Validate(input); len(errs) > 0 {
				return nil, errs
			}
			return api.Create[T](ctx, client, r.Path, input)
		}
		cmds.Update = func(ctx context.Context, id string, input any) (*T, error) {
			if errs := api.Validate(input); len(errs) > 0 {
				return nil, errs
			}
			return api.Update[T](ctx, client, r.Path, id, input)
		}
	}
	if !r.NoDelete {
		cmds.Delete = func(ctx context.Context, id string) error {
			return api.Delete(ctx, client, r.Path, id)
		}
	}
	if r.HasStatus() {
		cmds.ChangeStatus = func(ctx context.Context, row T) (*T, error) {
			return api.ChangeStatus[T](ctx, client, r.Path, row.EntityID(), !r.StatusOf(row))
		}
		cmds.Toggle = func(row T) T {
			return r.SetStatus(row, !r.StatusOf(row))
		}
	}
	return cmds
}

// Controller builds a list controller for the resource.
func (r *Resource[T]) Controller(client *api.Client, pageSize int, timeout time.Duration) *listctl.Controller[T] {
	q := listctl.NewQuery(pageSize)
	if r.DefaultSort != "" {
		q.SetSort(r.DefaultSort, false)
	}
	return listctl.NewController(r.Searcher(client),
		listctl.WithSortMap[T](r.SortMap),
		listctl.WithQuery[T](q),
		listctl.WithFetchTimeout[T](timeout),
	)
}

// Dispatcher builds the mutation dispatcher for the resource.
func (r *Resource[T]) Dispatcher(client *api.Client) *listctl.Dispatcher[T] {
	return listctl.NewDispatcher(r.Commands(client), r.Messages)
}

// Headers returns the column headers.
func (r *Resource[T]) Headers() []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = c.Header
	}
	return out
}

// Cells renders row into one string per column.
func (r *Resource[T]) Cells(row T) []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = c.Render(row)
	}
	return out
}

// RowLabel names row for dialogs, falling back to its id.
func (r *Resource[T]) RowLabel(row T) string {
	if r.Label != nil {
		if l := r.Label(row); l != "" {
			return l
		}
	}
	return row.EntityID()
}

// --- Cell Formatting ---

func yesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}

func activeLabel(v bool) string {
	if v {
		return "Activo"
	}
	return "Inactivo"
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

func km(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + " km"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
