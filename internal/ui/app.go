package ui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/backoffice/cli/internal/api"
	"github.com/gravitrone/backoffice/cli/internal/catalog"
	"github.com/gravitrone/backoffice/cli/internal/config"
	"github.com/gravitrone/backoffice/cli/internal/listctl"
	"github.com/gravitrone/backoffice/cli/internal/logging"
	"github.com/gravitrone/backoffice/cli/internal/session"
	"github.com/gravitrone/backoffice/cli/internal/ui/components"
)

const sessionWriteTimeout = 5 * time.Second

// screen is one tab of the home route.
type screen interface {
	Key() string
	Title() string
	Init() tea.Cmd
	// Reload clears a halt and fetches again.
	Reload() tea.Cmd
	Close()
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
	Hints() []string
	SetSize(width, height int) screen
	Capturing() bool
	AtTop() bool
	Busy() bool
}

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model. It routes between the login screen, the
// unauthorized screen, and the resource tabs through the session guard.
type App struct {
	client *api.Client
	config *config.Config
	holder *session.Holder

	route string
	login LoginModel

	env     *screenEnv
	screens []screen
	tab     int
	tabNav  bool

	width       int
	height      int
	toast       *appToast
	helpOpen    bool
	quitConfirm bool
}

// NewApp creates the root application model. A persisted, unexpired
// session skips the login screen.
func NewApp(client *api.Client, cfg *config.Config, holder *session.Holder) App {
	if cfg == nil {
		cfg = config.Default()
	}
	ApplyTheme(cfg.Theme)
	SetVimKeys(cfg.VimKeys)

	a := App{
		client: client,
		config: cfg,
		holder: holder,
		login:  NewLoginModel(client),
		tabNav: true,
	}
	sess := holder.Current()
	a.route = session.Guard(session.RouteHome, sess)
	if a.route == session.RouteHome {
		a.startSession(sess)
	}
	return a
}

// startSession installs the token and builds the tabs the session may see.
func (a *App) startSession(sess session.Session) {
	a.client.SetToken(sess.Token)
	for _, s := range a.screens {
		s.Close()
	}
	a.env = &screenEnv{
		client:   a.client,
		gate:     sess.Gate(),
		lookups:  &api.Lookups{},
		pageSize: a.config.PageSize,
		timeout:  a.config.Timeout,
	}
	a.screens = buildScreens(a.env)
	for i := range a.screens {
		a.screens[i] = a.screens[i].SetSize(a.width, a.height)
	}
	a.tab = 0
	a.tabNav = true
}

func (a App) Init() tea.Cmd {
	if a.route != session.RouteHome {
		return a.login.Init()
	}
	return tea.Batch(a.initTab(a.tab), a.loadLookups())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.login.width = msg.Width
		for i := range a.screens {
			a.screens[i] = a.screens[i].SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case clearToastMsg:
		a.toast = nil
		return a, nil
	case toastMsg:
		return a, a.setToast(msg.level, msg.text)

	case unauthorizedMsg:
		return a.navigateUnauthorized()

	case loginDoneMsg:
		return a.finishLogin(msg)

	case lookupsStaleMsg:
		if a.route != session.RouteHome {
			return a, nil
		}
		return a, a.loadLookups()
	case lookupsLoadedMsg:
		return a.applyLookups(msg)

	case keyedMsg:
		for i, s := range a.screens {
			if s.Key() == msg.screenKey() {
				var cmd tea.Cmd
				a.screens[i], cmd = s.Update(msg)
				return a, cmd
			}
		}
		return a, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		cmds = append(cmds, cmd)
		for i, s := range a.screens {
			a.screens[i], cmd = s.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	switch a.route {
	case session.RouteLogin:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	case session.RouteHome:
		if s := a.active(); s != nil {
			var cmd tea.Cmd
			a.screens[a.tab], cmd = s.Update(msg)
			return a, cmd
		}
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.quitConfirm {
		switch {
		case isKey(msg, "y", "ctrl+c"):
			return a, tea.Quit
		case isKey(msg, "n"), isBack(msg):
			a.quitConfirm = false
		}
		return a, nil
	}

	switch a.route {
	case session.RouteLogin:
		if isKey(msg, "ctrl+c") {
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case session.RouteUnauthorized:
		switch {
		case isQuit(msg):
			return a, tea.Quit
		case isKey(msg, "r", "enter"):
			return a.logout("")
		}
		return a, nil
	}

	if a.helpOpen {
		if isBack(msg) || isKey(msg, "?") {
			a.helpOpen = false
		}
		return a, nil
	}

	active := a.active()
	if active != nil && active.Capturing() {
		if isKey(msg, "ctrl+c") {
			a.quitConfirm = true
			return a, nil
		}
		var cmd tea.Cmd
		a.screens[a.tab], cmd = active.Update(msg)
		return a, cmd
	}

	// Global keys
	switch {
	case isQuit(msg):
		return a, tea.Quit
	case isKey(msg, "?"):
		a.helpOpen = true
		return a, nil
	case isKey(msg, "L"):
		return a.logout("Sesión cerrada.")
	}

	if idx, ok := tabIndexForKey(msg.String(), len(a.screens)); ok {
		return a.switchTab(idx)
	}

	// Arrow tab navigation until user enters content with Down
	if a.tabNav {
		n := len(a.screens)
		switch {
		case n > 0 && isKey(msg, "left"):
			return a.switchTab((a.tab - 1 + n) % n)
		case n > 0 && isKey(msg, "right"):
			return a.switchTab((a.tab + 1) % n)
		case isDown(msg):
			a.tabNav = false
			return a, nil
		}
		// Any other key exits tab nav so the active tab can handle it.
		a.tabNav = false
	} else if isUp(msg) && active != nil && active.AtTop() {
		a.tabNav = true
		return a, nil
	}

	if active == nil {
		return a, nil
	}
	var cmd tea.Cmd
	a.screens[a.tab], cmd = active.Update(msg)
	return a, cmd
}

// --- Routing ---

func (a App) navigateUnauthorized() (tea.Model, tea.Cmd) {
	if a.env == nil || a.route == session.RouteUnauthorized {
		return a, nil
	}
	a.route = session.Guard(session.RouteUnauthorized, a.holder.Current())
	a.helpOpen = false
	logging.Warn("session rejected by backend", "route", a.route)
	if a.route == session.RouteLogin {
		a.login = a.login.reset()
		return a, a.login.Init()
	}
	return a, nil
}

func (a App) finishLogin(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.login = a.login.fail(msg.err)
		return a, nil
	}
	sess := session.New(msg.resp.Token, msg.resp.Username, msg.resp.Permissions)
	ctx, cancel := context.WithTimeout(context.Background(), sessionWriteTimeout)
	defer cancel()
	if err := a.holder.Replace(ctx, sess); err != nil {
		a.login = a.login.fail(err)
		return a, nil
	}

	var cmds []tea.Cmd
	if a.env != nil && slices.Equal(a.env.gate.Codes(), sess.Gate().Codes()) {
		a.client.SetToken(sess.Token)
		for _, s := range a.screens {
			cmds = append(cmds, s.Reload())
		}
	} else {
		a.startSession(sess)
		cmds = append(cmds, a.initTab(a.tab))
	}
	a.route = session.Guard(session.RouteHome, sess)
	a.login = a.login.reset()
	cmds = append(cmds, a.loadLookups(), a.setToast(toastSuccess, "Bienvenido, "+sess.Username))
	return a, tea.Batch(cmds...)
}

// logout drops the session and goes back to the login screen.
func (a App) logout(notice string) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithTimeout(context.Background(), sessionWriteTimeout)
	defer cancel()
	var cmds []tea.Cmd
	if err := a.holder.Clear(ctx); err != nil {
		cmds = append(cmds, a.setToast(toastError, err.Error()))
	} else if notice != "" {
		cmds = append(cmds, a.setToast(toastInfo, notice))
	}
	a.client.SetToken("")
	for _, s := range a.screens {
		s.Close()
	}
	a.screens = nil
	a.env = nil
	a.tab = 0
	a.helpOpen = false
	a.route = session.Guard(session.RouteHome, a.holder.Current())
	a.login = a.login.reset()
	cmds = append(cmds, a.login.Init())
	return a, tea.Batch(cmds...)
}

func (a App) loadLookups() tea.Cmd {
	client, timeout := a.client, a.config.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		lookups, err := client.LoadLookups(ctx)
		return lookupsLoadedMsg{lookups: lookups, err: err}
	}
}

func (a App) applyLookups(msg lookupsLoadedMsg) (tea.Model, tea.Cmd) {
	if a.env == nil {
		return a, nil
	}
	if api.KindOf(msg.err) == api.KindUnauthorized {
		return a.navigateUnauthorized()
	}
	*a.env.lookups = msg.lookups
	if msg.err != nil {
		logging.Warn("lookups unavailable", "err", msg.err)
		return a, a.setToast(toastWarning, "No se pudieron cargar las opciones de los formularios.")
	}
	return a, nil
}

// --- Tabs ---

// buildScreens returns the tabs the gate may view, in menu order.
func buildScreens(env *screenEnv) []screen {
	var out []screen
	out = addScreen(out, catalog.Orders(), env, env.client.AssignCourier)
	out = addScreen(out, catalog.Users(), env, nil)
	out = addScreen(out, catalog.Couriers(), env, nil)
	out = addScreen(out, catalog.Businesses(), env, nil)
	out = addScreen(out, catalog.Products(), env, nil)
	out = addScreen(out, catalog.Categories(), env, nil)
	out = addScreen(out, catalog.Roles(), env, nil)
	out = addScreen(out, catalog.Vehicles(), env, nil)
	out = addScreen(out, catalog.VehicleTypes(), env, nil)
	out = addScreen(out, catalog.ShippingCosts(), env, nil)
	return out
}

func addScreen[T listctl.Entity](out []screen, res *catalog.Resource[T], env *screenEnv, assign assignFunc[T]) []screen {
	if !env.gate.Has(res.Perms.View) {
		return out
	}
	return append(out, newListModel(res, env, assign))
}

func (a App) active() screen {
	if a.tab < 0 || a.tab >= len(a.screens) {
		return nil
	}
	return a.screens[a.tab]
}

func (a App) switchTab(newTab int) (tea.Model, tea.Cmd) {
	if newTab == a.tab {
		return a, nil
	}
	a.tab = newTab
	return a, a.initTab(newTab)
}

func (a App) initTab(tab int) tea.Cmd {
	if tab < 0 || tab >= len(a.screens) {
		return nil
	}
	return a.screens[tab].Init()
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(a.screens))
	for i, s := range a.screens {
		label := s.Title()
		if i < 10 {
			label = strconv.Itoa((i+1)%10) + " " + label
		}
		if i == a.tab {
			segments = append(segments, TabActiveStyle.Render(label))
		} else {
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

// --- View ---

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(a.width), a.width)

	var content string
	switch a.route {
	case session.RouteLogin:
		content = a.login.View()
	case session.RouteUnauthorized:
		content = a.renderUnauthorized()
	default:
		content = a.renderHome()
	}
	if a.quitConfirm {
		content = components.Indent(components.ConfirmDialog("Salir", "Hay cambios sin guardar.\n¿Salir de todos modos?"), 1)
	} else if a.helpOpen {
		content = a.renderHelp()
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}
	return fmt.Sprintf("%s\n%s\n\n%s%s", banner, content, hints, feedback)
}

func (a App) renderHome() string {
	if len(a.screens) == 0 {
		return components.ActiveBox(MutedStyle.Render("Tu rol no tiene acceso a ninguna sección.\n\nL: cerrar sesión"), a.width)
	}
	user := components.InfoRow("Sesión", a.holder.Current().Username)
	tabs := a.renderTabs()
	if a.tabNav {
		tabs += "\n" + MutedStyle.Render("←/→ secciones | ↓ entrar")
	}
	return tabs + "\n" + user + "\n\n" + a.active().View()
}

func (a App) renderUnauthorized() string {
	body := "Tu sesión expiró o no tienes permiso para esta operación.\n\n" +
		"r: iniciar sesión nuevamente | q: salir"
	return components.ErrorBox("No autorizado", body, a.width)
}

func (a App) renderHelp() string {
	hints := a.statusHintsForRoute()
	lines := make([]string, 0, len(hints)+6)
	lines = append(lines, MutedStyle.Render("esc para cerrar"), "")
	for _, hint := range hints {
		lines = append(lines, "  "+hint)
	}
	lines = append(lines, "",
		"  "+components.Hint("1-0", "Sección"),
		"  "+components.Hint("L", "Cerrar sesión"),
		"  "+components.Hint("q", "Salir"),
	)
	return components.Indent(components.TitledBox("Ayuda", strings.Join(lines, "\n"), a.width), 1)
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{
			components.Hint("y", "Salir"),
			components.Hint("n", "Cancelar"),
		}
	}
	if a.helpOpen {
		return []string{components.Hint("esc", "Volver")}
	}
	return a.statusHintsForRoute()
}

func (a App) statusHintsForRoute() []string {
	switch a.route {
	case session.RouteLogin:
		return []string{
			components.Hint("tab", "Campo"),
			components.Hint("enter", "Ingresar"),
			components.Hint("ctrl+c", "Salir"),
		}
	case session.RouteUnauthorized:
		return []string{
			components.Hint("r", "Iniciar sesión"),
			components.Hint("q", "Salir"),
		}
	}
	active := a.active()
	if active == nil {
		return []string{components.Hint("L", "Cerrar sesión"), components.Hint("q", "Salir")}
	}
	hints := active.Hints()
	if !active.Capturing() {
		hints = append(hints, components.Hint("?", "Ayuda"), components.Hint("q", "Salir"))
	}
	return hints
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	switch a.toast.level {
	case toastSuccess:
		return components.SuccessBox("Listo", a.toast.text, a.width)
	case toastError:
		return components.ErrorBox("Error", a.toast.text, a.width)
	case toastWarning:
		return components.TitledBox("Aviso", a.toast.text, a.width)
	}
	return components.TitledBox("Info", a.toast.text, a.width)
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// tabIndexForKey maps 1-9 and 0 to tab indexes within count.
func tabIndexForKey(key string, count int) (int, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	idx := int(key[0] - '1')
	if key == "0" {
		idx = 9
	}
	if idx < 0 || idx >= count {
		return 0, false
	}
	return idx, true
}
