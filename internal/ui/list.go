package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/backoffice/cli/internal/api"
	"github.com/gravitrone/backoffice/cli/internal/catalog"
	"github.com/gravitrone/backoffice/cli/internal/listctl"
	"github.com/gravitrone/backoffice/cli/internal/ui/components"
)

// screenEnv is shared by every list screen of one signed-in session.
type screenEnv struct {
	client   *api.Client
	gate     listctl.Gate
	lookups  *api.Lookups
	pageSize int
	timeout  time.Duration
}

func (e *screenEnv) mutationTimeout() time.Duration {
	if e.timeout > 0 {
		return e.timeout
	}
	return listctl.DefaultTimeout
}

type listMode int

const (
	modeBrowse listMode = iota
	modeSearch
	modeFilterPick
	modeFilterValue
	modeConfirm
	modeForm
	modeAssign
	modeDetail
)

// assignFunc assigns a courier to the row with id.
type assignFunc[T listctl.Entity] func(ctx context.Context, id, courierID string) (*T, error)

// ListModel is the list screen of one resource: a paginated server-side
// table with search, filters, sorting, and the row actions the session is
// allowed to run.
type ListModel[T listctl.Entity] struct {
	res  *catalog.Resource[T]
	env  *screenEnv
	ctl  *listctl.Controller[T]
	disp *listctl.Dispatcher[T]
	// assignDisp runs the courier assignment; nil when unsupported.
	assignDisp *listctl.Dispatcher[T]

	cursor  int
	mode    listMode
	busy    bool
	loadErr error
	width   int
	height  int

	search      textinput.Model
	filterList  *components.List
	filterDef   catalog.FilterDef
	filterInput textinput.Model
	filterErr   string
	pick        *components.List
	pickOptions []api.Option
	form        formModel
	spinner     spinner.Model
}

func newListModel[T listctl.Entity](res *catalog.Resource[T], env *screenEnv, assign assignFunc[T]) ListModel[T] {
	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "Buscar..."
	search.CharLimit = 120

	filterInput := textinput.New()
	filterInput.Prompt = ""
	filterInput.CharLimit = 120

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SelectedStyle

	m := ListModel[T]{
		res:         res,
		env:         env,
		ctl:         res.Controller(env.client, env.pageSize, env.timeout),
		disp:        res.Dispatcher(env.client),
		search:      search,
		filterInput: filterInput,
		spinner:     s,
	}
	if assign != nil {
		m.assignDisp = listctl.NewDispatcher(listctl.Commands[T]{
			Update: func(ctx context.Context, id string, input any) (*T, error) {
				courierID, _ := input.(string)
				return assign(ctx, id, courierID)
			},
		}, res.Messages)
	}
	return m
}

// --- screen ---

func (m ListModel[T]) Key() string   { return m.res.Key }
func (m ListModel[T]) Title() string { return m.res.Title }

func (m ListModel[T]) Init() tea.Cmd {
	return m.fetch()
}

func (m ListModel[T]) Reload() tea.Cmd {
	m.ctl.Resume()
	return m.fetch()
}

func (m ListModel[T]) Close() {
	m.ctl.Close()
}

func (m ListModel[T]) SetSize(width, height int) screen {
	m.width = width
	m.height = height
	return m
}

// Capturing reports whether keys belong to an open input or modal.
func (m ListModel[T]) Capturing() bool {
	return m.mode != modeBrowse
}

// AtTop reports whether an up key should leave the table for the tab bar.
func (m ListModel[T]) AtTop() bool {
	return m.mode == modeBrowse && m.cursor == 0
}

func (m ListModel[T]) Busy() bool {
	return m.busy || m.ctl.Phase() == listctl.PhaseLoading
}

// --- Fetch ---

func (m ListModel[T]) fetch() tea.Cmd {
	ticket, err := m.ctl.Begin(context.Background())
	if err != nil {
		if errors.Is(err, listctl.ErrHalted) {
			return emit(unauthorizedMsg{})
		}
		return toastCmd(toastError, err.Error())
	}
	ctl, key := m.ctl, m.res.Key
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return listFetchedMsg[T]{key: key, result: ctl.Run(ticket)}
	})
}

func (m ListModel[T]) mutate(run func(ctx context.Context) listctl.Outcome[T]) tea.Cmd {
	key, timeout := m.res.Key, m.env.mutationTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return listMutatedMsg[T]{key: key, outcome: run(ctx)}
	}
}

// --- Update ---

func (m ListModel[T]) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case listFetchedMsg[T]:
		return m.applyFetch(msg.result)
	case listMutatedMsg[T]:
		return m.applyOutcome(msg.outcome)
	case spinner.TickMsg:
		if !m.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	switch m.mode {
	case modeSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	case modeFilterValue:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	case modeForm:
		var cmd tea.Cmd
		m.form, cmd, _ = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ListModel[T]) applyFetch(res listctl.Result[T]) (screen, tea.Cmd) {
	applied := m.ctl.Apply(res)
	switch {
	case applied.Stale:
		return m, nil
	case applied.Unauthorized:
		m.loadErr = applied.Err
		return m, emit(unauthorizedMsg{})
	case applied.Refetch:
		return m, m.fetch()
	}
	m.loadErr = applied.Err
	m.clampCursor()
	return m, nil
}

func (m ListModel[T]) applyOutcome(out listctl.Outcome[T]) (screen, tea.Cmd) {
	m.busy = false
	m.ctl.Settle(out)

	switch out.Kind {
	case listctl.OutcomeUnauthorized:
		m.mode = modeBrowse
		return m, emit(unauthorizedMsg{})

	case listctl.OutcomeOK:
		if m.mode == modeForm || m.mode == modeAssign {
			m.mode = modeBrowse
		}
		cmds := []tea.Cmd{toastCmd(toastSuccess, out.Message)}
		if out.Refetch {
			cmds = append(cmds, m.fetch())
		}
		if out.Op != listctl.MutationChangeStatus {
			cmds = append(cmds, emit(lookupsStaleMsg{}))
		}
		return m, tea.Batch(cmds...)

	case listctl.OutcomeFieldError:
		if m.mode == modeForm {
			m.form = m.form.withErrors(out.Fields)
			return m, nil
		}
		return m, toastCmd(toastError, firstMessage(out))
	}

	m.form.submitting = false
	cmds := []tea.Cmd{toastCmd(toastError, out.Message)}
	if out.Op == listctl.MutationDelete {
		cmds = append(cmds, m.fetch())
	}
	return m, tea.Batch(cmds...)
}

func firstMessage[T listctl.Entity](out listctl.Outcome[T]) string {
	if out.Message != "" {
		return out.Message
	}
	for _, msg := range out.Fields {
		return msg
	}
	return listctl.DefaultGenericMessage
}

// --- Keys ---

func (m ListModel[T]) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeFilterPick:
		return m.handleFilterPickKey(msg)
	case modeFilterValue:
		return m.handleFilterValueKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	case modeForm:
		return m.handleFormKey(msg)
	case modeAssign:
		return m.handleAssignKey(msg)
	case modeDetail:
		if isBack(msg) || isEnter(msg) {
			m.mode = modeBrowse
		}
		return m, nil
	}
	return m.handleBrowseKey(msg)
}

func (m ListModel[T]) handleBrowseKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	rows := m.ctl.Result().Rows

	switch {
	case isUp(msg):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case isDown(msg):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
		return m, nil
	case isNextPage(msg):
		total := m.ctl.Result().TotalCount
		moved := false
		m.ctl.UpdateQuery(func(q *listctl.Query) { moved = q.NextPage(total) })
		if !moved {
			return m, nil
		}
		m.cursor = 0
		return m, m.fetch()
	case isPrevPage(msg):
		moved := false
		m.ctl.UpdateQuery(func(q *listctl.Query) { moved = q.PrevPage() })
		if !moved {
			return m, nil
		}
		m.cursor = 0
		return m, m.fetch()
	case isKey(msg, "/"):
		m.mode = modeSearch
		m.search.SetValue(m.ctl.Query().GlobalSearch)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case isKey(msg, "f"):
		if len(m.res.Filters) == 0 {
			return m, nil
		}
		m.filterList = components.NewList(8)
		m.filterList.SetItems(m.filterLabels())
		m.mode = modeFilterPick
		return m, nil
	case isKey(msg, "x"):
		m.ctl.UpdateQuery(func(q *listctl.Query) {
			q.ClearFilters()
			q.SetSearch("")
		})
		m.cursor = 0
		return m, m.fetch()
	case isKey(msg, "o"):
		next := m.nextSortKey()
		if next == "" {
			return m, nil
		}
		m.ctl.UpdateQuery(func(q *listctl.Query) { q.SetSort(next, false) })
		return m, m.fetch()
	case isKey(msg, "O"):
		field := m.ctl.Query().SortField
		if field == "" {
			field = m.nextSortKey()
		}
		if field == "" {
			return m, nil
		}
		m.ctl.UpdateQuery(func(q *listctl.Query) { q.ToggleSort(field) })
		return m, m.fetch()
	case isKey(msg, "r"):
		return m, m.fetch()
	case isEnter(msg):
		if len(rows) > 0 {
			m.mode = modeDetail
		}
		return m, nil
	}

	for _, a := range listctl.Permitted(m.env.gate, m.res.Toolbar()) {
		if isKey(msg, a.Key) {
			return m.openCreate()
		}
	}
	if row, ok := m.selected(); ok {
		for _, a := range listctl.Visible(m.env.gate, m.res.RowActions(), row) {
			if isKey(msg, a.Key) {
				return m.openAction(a, row)
			}
		}
	}
	return m, nil
}

func (m ListModel[T]) handleSearchKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch {
	case isBack(msg):
		m.search.Blur()
		m.mode = modeBrowse
		return m, nil
	case isEnter(msg):
		term := m.search.Value()
		m.search.Blur()
		m.mode = modeBrowse
		m.ctl.UpdateQuery(func(q *listctl.Query) { q.SetSearch(term) })
		m.cursor = 0
		return m, m.fetch()
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m ListModel[T]) handleFilterPickKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch {
	case isBack(msg):
		m.mode = modeBrowse
	case isUp(msg):
		m.filterList.Up()
	case isDown(msg):
		m.filterList.Down()
	case isEnter(msg):
		idx := m.filterList.Selected()
		if idx < 0 || idx >= len(m.res.Filters) {
			m.mode = modeBrowse
			return m, nil
		}
		m.filterDef = m.res.Filters[idx]
		m.filterErr = ""
		if opts := m.filterOptions(m.filterDef); len(opts) > 0 {
			m.pickOptions = opts
			m.pick = components.NewList(8)
			m.pick.SetItems(append([]string{"(todos)"}, optionLabels(opts)...))
			m.mode = modeFilterValue
			return m, nil
		}
		m.pick = nil
		m.filterInput.SetValue(strings.Join(m.ctl.Query().FilterValues(m.filterDef.Param), ","))
		m.filterInput.CursorEnd()
		m.mode = modeFilterValue
		return m, m.filterInput.Focus()
	}
	return m, nil
}

func (m ListModel[T]) handleFilterValueKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	if m.pick != nil {
		switch {
		case isBack(msg):
			m.mode = modeBrowse
		case isUp(msg):
			m.pick.Up()
		case isDown(msg):
			m.pick.Down()
		case isEnter(msg):
			idx := m.pick.Selected()
			param := m.filterDef.Param
			if idx <= 0 {
				m.ctl.UpdateQuery(func(q *listctl.Query) { q.ClearFilter(param) })
			} else {
				id := m.pickOptions[idx-1].ID
				m.ctl.UpdateQuery(func(q *listctl.Query) { q.SetFilter(param, id) })
			}
			m.mode = modeBrowse
			m.cursor = 0
			return m, m.fetch()
		}
		return m, nil
	}

	switch {
	case isBack(msg):
		m.filterInput.Blur()
		m.mode = modeBrowse
		return m, nil
	case isEnter(msg):
		values, err := listctl.ParseFilterValue(m.filterDef.Kind, m.filterInput.Value())
		if err != nil {
			m.filterErr = err.Error()
			return m, nil
		}
		param := m.filterDef.Param
		m.ctl.UpdateQuery(func(q *listctl.Query) { q.SetFilter(param, values...) })
		m.filterInput.Blur()
		m.filterErr = ""
		m.mode = modeBrowse
		m.cursor = 0
		return m, m.fetch()
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m ListModel[T]) handleConfirmKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	pending, ok := m.ctl.Pending()
	if !ok {
		m.mode = modeBrowse
		return m, nil
	}
	switch {
	case isKey(msg, "y", "Y"):
		m.mode = modeBrowse
		m.busy = true
		disp, row := m.disp, pending.Entity
		if pending.Kind == listctl.MutationDelete {
			return m, tea.Batch(m.spinner.Tick, m.mutate(func(ctx context.Context) listctl.Outcome[T] {
				return disp.Delete(ctx, row.EntityID())
			}))
		}
		return m, tea.Batch(m.spinner.Tick, m.mutate(func(ctx context.Context) listctl.Outcome[T] {
			return disp.ChangeStatus(ctx, row)
		}))
	case isKey(msg, "n", "N"), isBack(msg):
		m.ctl.ClosePending()
		m.mode = modeBrowse
	}
	return m, nil
}

func (m ListModel[T]) handleFormKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	var (
		cmd    tea.Cmd
		action formAction
	)
	m.form, cmd, action = m.form.Update(msg)
	switch action {
	case formCancel:
		m.ctl.ClosePending()
		m.mode = modeBrowse
		return m, nil
	case formSubmit:
		return m.submitForm()
	}
	return m, cmd
}

func (m ListModel[T]) submitForm() (screen, tea.Cmd) {
	pending, ok := m.ctl.Pending()
	if !ok {
		m.mode = modeBrowse
		return m, nil
	}
	input, err := m.res.Build(m.form.values())
	if err != nil {
		var fields api.FieldErrors
		if errors.As(err, &fields) {
			m.form = m.form.withErrors(fields)
			return m, nil
		}
		return m, toastCmd(toastError, err.Error())
	}

	m.busy = true
	m.form.submitting = true
	disp := m.disp
	if pending.Kind == listctl.MutationCreate {
		return m, m.mutate(func(ctx context.Context) listctl.Outcome[T] {
			return disp.Create(ctx, input)
		})
	}
	id := pending.Entity.EntityID()
	return m, m.mutate(func(ctx context.Context) listctl.Outcome[T] {
		return disp.Update(ctx, id, input)
	})
}

func (m ListModel[T]) handleAssignKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch {
	case isBack(msg):
		m.ctl.ClosePending()
		m.mode = modeBrowse
	case isUp(msg):
		m.pick.Up()
	case isDown(msg):
		m.pick.Down()
	case isEnter(msg):
		pending, ok := m.ctl.Pending()
		idx := m.pick.Selected()
		if !ok || idx < 0 || idx >= len(m.pickOptions) {
			return m, nil
		}
		m.busy = true
		disp, id, courierID := m.assignDisp, pending.Entity.EntityID(), m.pickOptions[idx].ID
		return m, tea.Batch(m.spinner.Tick, m.mutate(func(ctx context.Context) listctl.Outcome[T] {
			return disp.Update(ctx, id, courierID)
		}))
	}
	return m, nil
}

// --- Actions ---

func (m ListModel[T]) openCreate() (screen, tea.Cmd) {
	var zero T
	m.ctl.Open(zero, listctl.MutationCreate)
	m.form = newForm("Nuevo: "+m.res.Title, m.res.Fields, catalog.Values{}, *m.env.lookups, false)
	m.mode = modeForm
	return m, textinput.Blink
}

func (m ListModel[T]) openAction(a listctl.Action[T], row T) (screen, tea.Cmd) {
	switch a.ID {
	case catalog.ActionEdit:
		values := catalog.Values{}
		if m.res.Values != nil {
			values = m.res.Values(row)
		}
		m.ctl.Open(row, listctl.MutationUpdate)
		m.form = newForm("Editar: "+m.res.RowLabel(row), m.res.Fields, values, *m.env.lookups, true)
		m.mode = modeForm
		return m, textinput.Blink
	case catalog.ActionDelete:
		m.ctl.Open(row, listctl.MutationDelete)
		m.mode = modeConfirm
	case catalog.ActionStatus:
		m.ctl.Open(row, listctl.MutationChangeStatus)
		m.mode = modeConfirm
	case catalog.ActionAssign:
		if m.assignDisp == nil {
			return m, nil
		}
		m.pickOptions = m.env.lookups.Couriers
		m.pick = components.NewList(8)
		m.pick.SetItems(optionLabels(m.pickOptions))
		m.ctl.Open(row, listctl.MutationUpdate)
		m.mode = modeAssign
	}
	return m, nil
}

// --- Helpers ---

func (m ListModel[T]) selected() (T, bool) {
	rows := m.ctl.Result().Rows
	if m.cursor < 0 || m.cursor >= len(rows) {
		var zero T
		return zero, false
	}
	return rows[m.cursor], true
}

func (m *ListModel[T]) clampCursor() {
	n := len(m.ctl.Result().Rows)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// nextSortKey returns the sortable column after the current sort field.
func (m ListModel[T]) nextSortKey() string {
	var keys []string
	for _, c := range m.res.Columns {
		if c.Sortable(m.res.SortMap) {
			keys = append(keys, c.Key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	current := m.ctl.Query().SortField
	for i, k := range keys {
		if k == current {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

func (m ListModel[T]) filterOptions(def catalog.FilterDef) []api.Option {
	if len(def.Choices) > 0 {
		return def.Choices
	}
	if def.Lookup != "" && m.env.lookups != nil {
		return m.env.lookups.Options(def.Lookup)
	}
	if def.Kind == listctl.FilterBool {
		return []api.Option{{ID: "true", Label: "Activo"}, {ID: "false", Label: "Inactivo"}}
	}
	return nil
}

func (m ListModel[T]) filterLabels() []string {
	q := m.ctl.Query()
	out := make([]string, 0, len(m.res.Filters))
	for _, def := range m.res.Filters {
		label := def.Label
		if values := q.FilterValues(def.Param); len(values) > 0 {
			label += " = " + m.describeFilter(def, values)
		}
		out = append(out, label)
	}
	return out
}

func (m ListModel[T]) describeFilter(def catalog.FilterDef, values []string) string {
	opts := m.filterOptions(def)
	labels := make([]string, 0, len(values))
	for _, v := range values {
		label := v
		for _, o := range opts {
			if o.ID == v {
				label = o.Label
				break
			}
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, ", ")
}

func optionLabels(opts []api.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Label
	}
	return out
}

// --- View ---

func (m ListModel[T]) View() string {
	switch m.mode {
	case modeForm:
		return m.form.View(m.width)
	case modeConfirm:
		return m.renderConfirm()
	case modeAssign:
		title := "Asignar repartidor"
		if pending, ok := m.ctl.Pending(); ok {
			title += ": " + m.res.RowLabel(pending.Entity)
		}
		body := components.SelectDialog(title, m.pick)
		if m.busy {
			body += "\n" + m.spinner.View() + " Asignando..."
		}
		return body
	case modeFilterPick:
		return components.SelectDialog("Filtrar por", m.filterList)
	case modeFilterValue:
		if m.pick != nil {
			return components.SelectDialog(m.filterDef.Label, m.pick)
		}
		return components.InputDialog(m.filterDef.Label, m.filterInput.View(), m.filterErr)
	case modeDetail:
		return m.renderDetail()
	}

	var sections []string
	sections = append(sections, m.renderSummary())
	if m.mode == modeSearch {
		sections = append(sections, components.InputDialog("Buscar", m.search.View(), ""))
	}
	sections = append(sections, components.TitledBox(m.res.Title, m.renderBody(), m.width))
	return strings.Join(sections, "\n\n")
}

func (m ListModel[T]) renderBody() string {
	res := m.ctl.Result()
	phase := m.ctl.Phase()
	width := components.BoxContentWidth(m.width)
	if width <= 0 {
		width = 100
	}

	switch {
	case phase == listctl.PhaseEmptyFailed:
		msg := "No se pudieron cargar los datos."
		if m.loadErr != nil {
			msg += "\n" + components.SanitizeOneLine(m.loadErr.Error())
		}
		return ErrorStyle.Render(msg) + "\n\n" + MutedStyle.Render("r: reintentar")
	case (phase == listctl.PhaseLoading || phase == listctl.PhaseIdle) && len(res.Rows) == 0:
		return m.spinner.View() + " Cargando..."
	case len(res.Rows) == 0:
		return components.CenterLine(MutedStyle.Render("Sin resultados."), m.width)
	}

	q := m.ctl.Query()
	cols := make([]components.TableColumn, len(m.res.Columns))
	for i, c := range m.res.Columns {
		header := c.Header
		if c.Key == q.SortField {
			if q.SortDescending {
				header += " ▼"
			} else {
				header += " ▲"
			}
		}
		cols[i] = components.TableColumn{Header: header, Width: c.Width}
	}
	cells := make([][]string, len(res.Rows))
	for i, row := range res.Rows {
		cells[i] = m.res.Cells(row)
	}
	table := components.TableGridWithActiveRow(cols, cells, width, m.cursor)
	if phase == listctl.PhaseLoading || m.busy {
		table += "\n\n" + m.spinner.View() + MutedStyle.Render(" Actualizando...")
	}
	return table
}

func (m ListModel[T]) renderSummary() string {
	q := m.ctl.Query()
	res := m.ctl.Result()
	pages := q.PageCount(res.TotalCount)
	if pages < 1 {
		pages = 1
	}
	parts := []string{
		MutedStyle.Render(fmt.Sprintf("Página %d de %d", q.PageIndex+1, pages)),
		MutedStyle.Render(strconv.Itoa(res.TotalCount) + " registros"),
	}
	if q.GlobalSearch != "" {
		parts = append(parts, ChipStyle.Render("buscar: "+components.SanitizeOneLine(q.GlobalSearch)))
	}
	for _, def := range m.res.Filters {
		if values := q.FilterValues(def.Param); len(values) > 0 {
			parts = append(parts, ChipStyle.Render(def.Label+": "+m.describeFilter(def, values)))
		}
	}
	return strings.Join(parts, "  ")
}

func (m ListModel[T]) renderConfirm() string {
	pending, ok := m.ctl.Pending()
	if !ok {
		return ""
	}
	label := m.res.RowLabel(pending.Entity)
	if pending.Kind == listctl.MutationDelete {
		return components.ConfirmDialog("Eliminar", fmt.Sprintf("¿Eliminar %s? Esta acción no se puede deshacer.", label))
	}
	verb := "Activar"
	if m.res.StatusOf != nil && m.res.StatusOf(pending.Entity) {
		verb = "Desactivar"
	}
	return components.ConfirmDialog("Cambiar estado", fmt.Sprintf("¿%s %s?", verb, label))
}

func (m ListModel[T]) renderDetail() string {
	row, ok := m.selected()
	if !ok {
		return ""
	}
	headers := m.res.Headers()
	cells := m.res.Cells(row)
	fields := make([]components.Field, 0, len(headers)+1)
	fields = append(fields, components.Field{Label: "ID", Value: row.EntityID()})
	for i, h := range headers {
		fields = append(fields, components.Field{Label: h, Value: cells[i]})
	}
	var actions []string
	for _, a := range listctl.Visible(m.env.gate, m.res.RowActions(), row) {
		actions = append(actions, a.Key+": "+a.Label)
	}
	out := components.Fields(m.res.RowLabel(row), fields, m.width)
	if len(actions) > 0 {
		out += "\n" + MutedStyle.Render("  "+strings.Join(actions, " | "))
	}
	return out
}

// Hints lists the keys available in the current mode.
func (m ListModel[T]) Hints() []string {
	switch m.mode {
	case modeForm:
		return []string{
			components.Hint("tab", "Campo"),
			components.Hint("ctrl+s", "Guardar"),
			components.Hint("esc", "Cancelar"),
		}
	case modeConfirm:
		return []string{
			components.Hint("y", "Confirmar"),
			components.Hint("n", "Cancelar"),
		}
	case modeSearch, modeFilterValue:
		return []string{
			components.Hint("enter", "Aplicar"),
			components.Hint("esc", "Cancelar"),
		}
	case modeFilterPick, modeAssign:
		return []string{
			components.Hint("↑/↓", "Mover"),
			components.Hint("enter", "Elegir"),
			components.Hint("esc", "Cancelar"),
		}
	case modeDetail:
		return []string{components.Hint("esc", "Volver")}
	}

	hints := []string{
		components.Hint("↑/↓", "Mover"),
		components.Hint("←/→", "Página"),
		components.Hint("/", "Buscar"),
	}
	if len(m.res.Filters) > 0 {
		hints = append(hints, components.Hint("f", "Filtrar"))
	}
	hints = append(hints,
		components.Hint("x", "Limpiar"),
		components.Hint("o/O", "Ordenar"),
		components.Hint("r", "Recargar"),
	)
	for _, a := range listctl.Permitted(m.env.gate, m.res.Toolbar()) {
		hints = append(hints, components.Hint(a.Key, a.Label))
	}
	if row, ok := m.selected(); ok {
		for _, a := range listctl.Visible(m.env.gate, m.res.RowActions(), row) {
			hints = append(hints, components.Hint(a.Key, a.Label))
		}
	}
	return hints
}
