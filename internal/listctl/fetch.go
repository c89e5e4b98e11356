package listctl

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/gravitrone/backoffice/cli/internal/logging"
)

// DefaultTimeout bounds a single search request.
const DefaultTimeout = 30 * time.Second

// ErrHalted is returned by Begin after a 401 until Resume is called.
var ErrHalted = errors.New("list controller halted: session is not authorized")

// Entity is any row with a backend-assigned id.
type Entity interface {
	EntityID() string
}

// Searcher runs one search request. total is the server-side row count.
type Searcher[T Entity] func(ctx context.Context, params url.Values) (rows []T, total int, err error)

// Phase is the screen state of a list.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhasePopulated
	PhaseEmptyFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePopulated:
		return "populated"
	case PhaseEmptyFailed:
		return "empty_failed"
	default:
		return "idle"
	}
}

// ResultSet is the page currently shown. Rows and TotalCount always come
// from the same response.
type ResultSet[T Entity] struct {
	Rows       []T
	TotalCount int
	IsLoading  bool
}

// Ticket identifies one issued fetch.
type Ticket struct {
	Generation uint64
	Params     url.Values
	Page       int
	ctx        context.Context
}

// Context is the request context of the ticket. It is cancelled when a newer
// fetch starts or the controller closes.
func (t Ticket) Context() context.Context {
	if t.ctx == nil {
		return context.Background()
	}
	return t.ctx
}

// Result is the raw outcome of Run, not yet applied.
type Result[T Entity] struct {
	Generation uint64
	Rows       []T
	Total      int
	Err        error
	Took       time.Duration
}

// Applied reports what Apply did with a result.
type Applied struct {
	// Stale is set when a newer fetch superseded the result.
	Stale bool
	// Refetch asks the caller to run another cycle (page clamp).
	Refetch bool
	// Unauthorized is set when the fetch failed with a 401.
	Unauthorized bool
	Err          error
}

// Controller owns the query, the result set, and fetch ordering of one list.
type Controller[T Entity] struct {
	search  Searcher[T]
	sortMap SortMap
	timeout time.Duration

	mu         sync.Mutex
	query      Query
	result     ResultSet[T]
	phase      Phase
	generation uint64
	cancel     context.CancelFunc
	halted     bool
	pending    *PendingMutation[T]
}

// ControllerOption customizes a Controller.
type ControllerOption[T Entity] func(*Controller[T])

// WithFetchTimeout bounds each search request. Non-positive keeps the default.
func WithFetchTimeout[T Entity](d time.Duration) ControllerOption[T] {
	return func(c *Controller[T]) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithSortMap sets the UI to backend sort-name dictionary.
func WithSortMap[T Entity](m SortMap) ControllerOption[T] {
	return func(c *Controller[T]) {
		c.sortMap = m
	}
}

// WithQuery seeds the initial query.
func WithQuery[T Entity](q Query) ControllerOption[T] {
	return func(c *Controller[T]) {
		if q.PageSize <= 0 {
			q.PageSize = DefaultPageSize
		}
		c.query = q
	}
}

// NewController builds an idle controller around search.
func NewController[T Entity](search Searcher[T], opts ...ControllerOption[T]) *Controller[T] {
	c := &Controller[T]{
		search:  search,
		timeout: DefaultTimeout,
		query:   NewQuery(DefaultPageSize),
		phase:   PhaseIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// --- Query Access ---

// Query returns a copy of the current query.
func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	q := c.query
	q.Filters = append([]Filter(nil), c.query.Filters...)
	return q
}

// UpdateQuery mutates the query under the controller lock. Callers start a
// new cycle afterwards.
func (c *Controller[T]) UpdateQuery(fn func(*Query)) {
	c.mu.Lock()
	fn(&c.query)
	c.mu.Unlock()
}

// Params renders the current query for the wire.
func (c *Controller[T]) Params() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Params(c.sortMap)
}

// --- State Access ---

// Result returns a copy of the current result set.
func (c *Controller[T]) Result() ResultSet[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make([]T, len(c.result.Rows))
	copy(rows, c.result.Rows)
	return ResultSet[T]{
		Rows:       rows,
		TotalCount: c.result.TotalCount,
		IsLoading:  c.result.IsLoading,
	}
}

func (c *Controller[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller[T]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *Controller[T]) Halted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halted
}

// --- Fetch Cycle ---

// Begin issues a new fetch: it supersedes any in-flight request and marks
// the result set as loading. The query is not modified.
func (c *Controller[T]) Begin(parent context.Context) (Ticket, error) {
	if parent == nil {
		parent = context.Background()
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.halted {
		return Ticket{}, ErrHalted
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithTimeout(parent, c.timeout)
	c.cancel = cancel
	c.generation++
	c.phase = PhaseLoading
	c.result.IsLoading = true

	return Ticket{
		Generation: c.generation,
		Params:     c.query.Params(c.sortMap),
		Page:       c.query.PageIndex,
		ctx:        ctx,
	}, nil
}

// Run performs the request for ticket. It never touches controller state.
func (c *Controller[T]) Run(ticket Ticket) Result[T] {
	started := time.Now()
	rows, total, err := c.search(ticket.Context(), ticket.Params)
	return Result[T]{
		Generation: ticket.Generation,
		Rows:       rows,
		Total:      total,
		Err:        err,
		Took:       time.Since(started),
	}
}

// Apply installs res when it belongs to the latest ticket. Results from
// superseded tickets are dropped.
func (c *Controller[T]) Apply(res Result[T]) Applied {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.Generation != c.generation {
		logging.Debug("fetch discarded",
			"generation", res.Generation,
			"current", c.generation,
			"reason", "superseded",
		)
		return Applied{Stale: true}
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if res.Err != nil {
		c.result = ResultSet[T]{Rows: []T{}}
		c.phase = PhaseEmptyFailed
		unauthorized := IsUnauthorized(res.Err)
		if unauthorized {
			c.halted = true
		}
		logging.Debug("fetch failed",
			"generation", res.Generation,
			"page", c.query.PageIndex+1,
			"took", res.Took,
			"unauthorized", unauthorized,
			"err", res.Err,
		)
		return Applied{Err: res.Err, Unauthorized: unauthorized}
	}

	total := res.Total
	if total < len(res.Rows) {
		total = len(res.Rows)
	}

	if len(res.Rows) == 0 && c.query.PageIndex > 0 && total > 0 {
		last := c.query.PageCount(total) - 1
		if last < 0 {
			last = 0
		}
		logging.Debug("fetch page out of range",
			"generation", res.Generation,
			"page", c.query.PageIndex+1,
			"clamped_to", last+1,
			"total", total,
		)
		c.query.PageIndex = last
		c.result = ResultSet[T]{Rows: []T{}, TotalCount: total, IsLoading: true}
		c.phase = PhaseLoading
		return Applied{Refetch: true}
	}

	rows := res.Rows
	if rows == nil {
		rows = []T{}
	}
	if c.query.PageSize > 0 && len(rows) > c.query.PageSize {
		logging.Warn("search returned more rows than requested",
			"rows", len(rows),
			"page_size", c.query.PageSize,
		)
		rows = rows[:c.query.PageSize]
	}
	c.result = ResultSet[T]{Rows: rows, TotalCount: total}
	c.phase = PhasePopulated
	logging.Debug("fetch applied",
		"generation", res.Generation,
		"page", c.query.PageIndex+1,
		"rows", len(rows),
		"total", total,
		"took", res.Took,
	)
	return Applied{}
}

// Refresh runs a full cycle synchronously, following page clamps.
func (c *Controller[T]) Refresh(ctx context.Context) (Applied, error) {
	var applied Applied
	for attempt := 0; attempt < 3; attempt++ {
		ticket, err := c.Begin(ctx)
		if err != nil {
			return Applied{}, err
		}
		applied = c.Apply(c.Run(ticket))
		if applied.Err != nil {
			return applied, applied.Err
		}
		if !applied.Refetch {
			break
		}
	}
	return applied, nil
}

// Resume clears a halt after the session has been re-established.
func (c *Controller[T]) Resume() {
	c.mu.Lock()
	c.halted = false
	if c.phase == PhaseEmptyFailed {
		c.phase = PhaseIdle
	}
	c.mu.Unlock()
}

// Halt stops further fetches, for example after a 401 from a mutation.
func (c *Controller[T]) Halt() {
	c.mu.Lock()
	c.halted = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
}

// Close cancels any in-flight request.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
}

// PatchRow replaces the row with the same id in place. Row membership and
// the total count are unchanged. It reports whether a row matched.
func (c *Controller[T]) PatchRow(row T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := row.EntityID()
	for i := range c.result.Rows {
		if c.result.Rows[i].EntityID() == id {
			c.result.Rows[i] = row
			return true
		}
	}
	return false
}

// --- Pending Mutation ---

// MutationKind names the command a pending dialog will run.
type MutationKind int

const (
	MutationCreate MutationKind = iota
	MutationUpdate
	MutationDelete
	MutationChangeStatus
)

func (k MutationKind) String() string {
	switch k {
	case MutationCreate:
		return "create"
	case MutationUpdate:
		return "update"
	case MutationDelete:
		return "delete"
	case MutationChangeStatus:
		return "change_status"
	}
	return "unknown"
}

// PendingMutation is the target of an open dialog or modal.
type PendingMutation[T Entity] struct {
	Entity T
	Kind   MutationKind
}

// Open records the target of a dialog. Any previous target is replaced.
func (c *Controller[T]) Open(entity T, kind MutationKind) {
	c.mu.Lock()
	c.pending = &PendingMutation[T]{Entity: entity, Kind: kind}
	c.mu.Unlock()
}

// ClosePending clears the pending target (confirm or cancel).
func (c *Controller[T]) ClosePending() {
	c.mu.Lock()
	c.pending = nil
	c.mu.Unlock()
}

// Pending returns the open target, if any.
func (c *Controller[T]) Pending() (PendingMutation[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return PendingMutation[T]{}, false
	}
	return *c.pending, true
}
