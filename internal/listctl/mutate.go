package listctl

import (
	"context"
	"errors"
	"net/http"

	"github.com/gravitrone/backoffice/cli/internal/logging"
)

// UnauthorizedRoute is where a 401 sends the user.
const UnauthorizedRoute = "/unauthorized"

// Fallback texts used when an entity does not define its own.
const (
	DefaultGenericMessage        = "No se pudo completar la operación. Intenta nuevamente."
	DefaultNotFoundMessage       = "El registro no existe o fue eliminado."
	DefaultDeleteConflictMessage = "No se puede eliminar porque está en uso."
)

// Commands are the write endpoints of one entity. A nil field means the
// entity does not support that command.
type Commands[T Entity] struct {
	Create       func(ctx context.Context, input any) (*T, error)
	Update       func(ctx context.Context, id string, input any) (*T, error)
	Delete       func(ctx context.Context, id string) error
	ChangeStatus func(ctx context.Context, row T) (*T, error)
	// Toggle flips the status locally when ChangeStatus returns no body.
	Toggle func(T) T
}

// Messages are the user-facing texts of one entity.
type Messages struct {
	NotFound        string
	Generic         string
	DeleteConflict  string
	ConflictField   string
	ConflictMessage string
	Created         string
	Updated         string
	Deleted         string
	StatusChanged   string
}

// NotFoundText returns NotFound or the shared default.
func (m Messages) NotFoundText() string {
	if m.NotFound != "" {
		return m.NotFound
	}
	return DefaultNotFoundMessage
}

// GenericText returns Generic or the shared default.
func (m Messages) GenericText() string {
	if m.Generic != "" {
		return m.Generic
	}
	return DefaultGenericMessage
}

func (m Messages) deleteConflict() string {
	if m.DeleteConflict != "" {
		return m.DeleteConflict
	}
	return DefaultDeleteConflictMessage
}

// OutcomeKind is how the UI must surface a mutation result.
type OutcomeKind int

const (
	OutcomeOK OutcomeKind = iota
	OutcomeUnauthorized
	OutcomeNotFound
	OutcomeFieldError
	OutcomeToast
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeFieldError:
		return "field_error"
	case OutcomeToast:
		return "toast"
	}
	return "unknown"
}

// Outcome is the classified result of one mutation.
type Outcome[T Entity] struct {
	Kind OutcomeKind
	Op   MutationKind
	// Field and Message describe an inline error for OutcomeFieldError.
	Field   string
	Message string
	// Fields carries client-side validation errors keyed by field.
	Fields   map[string]string
	Refetch  bool
	Navigate string
	// Row is the updated entity for a status change.
	Row *T
	Err error
}

// Failed reports whether the outcome is an error of any kind.
func (o Outcome[T]) Failed() bool {
	return o.Kind != OutcomeOK
}

// Dispatcher runs commands and classifies their errors.
type Dispatcher[T Entity] struct {
	commands Commands[T]
	messages Messages
}

func NewDispatcher[T Entity](commands Commands[T], messages Messages) *Dispatcher[T] {
	return &Dispatcher[T]{commands: commands, messages: messages}
}

// Supports reports whether the entity has an endpoint for kind.
func (d *Dispatcher[T]) Supports(kind MutationKind) bool {
	switch kind {
	case MutationCreate:
		return d.commands.Create != nil
	case MutationUpdate:
		return d.commands.Update != nil
	case MutationDelete:
		return d.commands.Delete != nil
	case MutationChangeStatus:
		return d.commands.ChangeStatus != nil
	}
	return false
}

var errUnsupported = errors.New("operation not supported for this entity")

// Create posts input. A conflict becomes an inline error on ConflictField.
func (d *Dispatcher[T]) Create(ctx context.Context, input any) Outcome[T] {
	if d.commands.Create == nil {
		return d.unsupported(MutationCreate)
	}
	_, err := d.commands.Create(ctx, input)
	return d.saveOutcome(MutationCreate, err, d.messages.Created)
}

// Update puts input for id. Conflicts behave like Create.
func (d *Dispatcher[T]) Update(ctx context.Context, id string, input any) Outcome[T] {
	if d.commands.Update == nil {
		return d.unsupported(MutationUpdate)
	}
	_, err := d.commands.Update(ctx, id, input)
	return d.saveOutcome(MutationUpdate, err, d.messages.Updated)
}

// Delete removes id and always asks for a refetch on success. A conflict is
// the entity's explanatory toast and the row stays.
func (d *Dispatcher[T]) Delete(ctx context.Context, id string) Outcome[T] {
	if d.commands.Delete == nil {
		return d.unsupported(MutationDelete)
	}
	err := d.commands.Delete(ctx, id)
	if err == nil {
		return Outcome[T]{Kind: OutcomeOK, Op: MutationDelete, Message: d.messages.Deleted, Refetch: true}
	}
	out := d.classify(MutationDelete, err)
	if statusOf(err) == http.StatusConflict {
		out.Kind = OutcomeToast
		out.Message = d.messages.deleteConflict()
	}
	return out
}

// ChangeStatus toggles row's status. The row is patched in place; no refetch.
func (d *Dispatcher[T]) ChangeStatus(ctx context.Context, row T) Outcome[T] {
	if d.commands.ChangeStatus == nil {
		return d.unsupported(MutationChangeStatus)
	}
	updated, err := d.commands.ChangeStatus(ctx, row)
	if err != nil {
		return d.classify(MutationChangeStatus, err)
	}
	if updated == nil && d.commands.Toggle != nil {
		flipped := d.commands.Toggle(row)
		updated = &flipped
	}
	return Outcome[T]{Kind: OutcomeOK, Op: MutationChangeStatus, Message: d.messages.StatusChanged, Row: updated}
}

func (d *Dispatcher[T]) saveOutcome(op MutationKind, err error, success string) Outcome[T] {
	if err == nil {
		return Outcome[T]{Kind: OutcomeOK, Op: op, Message: success, Refetch: true}
	}
	var fields fieldErrors
	if errors.As(err, &fields) {
		return Outcome[T]{Kind: OutcomeFieldError, Op: op, Fields: fields.Fields(), Err: err}
	}
	out := d.classify(op, err)
	if statusOf(err) == http.StatusConflict {
		if d.messages.ConflictField != "" {
			out.Kind = OutcomeFieldError
			out.Field = d.messages.ConflictField
			out.Message = d.messages.ConflictMessage
			if out.Message == "" {
				out.Message = d.messages.GenericText()
			}
			out.Fields = map[string]string{out.Field: out.Message}
		} else if d.messages.ConflictMessage != "" {
			out.Message = d.messages.ConflictMessage
		}
	}
	return out
}

// classify maps err to the four-way taxonomy. Conflicts start as a generic
// toast and are refined by the caller.
func (d *Dispatcher[T]) classify(op MutationKind, err error) Outcome[T] {
	status := statusOf(err)
	logging.Debug("mutation failed", "op", op.String(), "status", status, "err", err)
	switch status {
	case http.StatusUnauthorized:
		return Outcome[T]{Kind: OutcomeUnauthorized, Op: op, Navigate: UnauthorizedRoute, Err: err}
	case http.StatusNotFound:
		return Outcome[T]{Kind: OutcomeNotFound, Op: op, Message: d.messages.NotFoundText(), Err: err}
	default:
		return Outcome[T]{Kind: OutcomeToast, Op: op, Message: d.messages.GenericText(), Err: err}
	}
}

func (d *Dispatcher[T]) unsupported(op MutationKind) Outcome[T] {
	return Outcome[T]{Kind: OutcomeToast, Op: op, Message: d.messages.GenericText(), Err: errUnsupported}
}

// Settle applies the state side of a mutation outcome: halting on 401,
// patching a status change in place, and closing the pending target.
// Create/Update keep the modal open on failure so the user can fix input.
func (c *Controller[T]) Settle(out Outcome[T]) {
	if out.Kind == OutcomeUnauthorized {
		c.Halt()
		c.ClosePending()
		return
	}
	if out.Op == MutationChangeStatus && out.Kind == OutcomeOK && out.Row != nil {
		c.PatchRow(*out.Row)
	}
	switch out.Op {
	case MutationCreate, MutationUpdate:
		if out.Kind == OutcomeOK {
			c.ClosePending()
		}
	default:
		c.ClosePending()
	}
}

// --- Error Classification ---

type statusCoder interface {
	StatusCode() int
}

type fieldErrors interface {
	error
	Fields() map[string]string
}

func statusOf(err error) int {
	var coder statusCoder
	if errors.As(err, &coder) {
		return coder.StatusCode()
	}
	return 0
}

// IsUnauthorized reports whether err carries a 401 status.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}
