package ui

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/backoffice/cli/internal/api"
	"github.com/gravitrone/backoffice/cli/internal/listctl"
	"github.com/gravitrone/backoffice/cli/internal/mockapi"
)

const cmdTimeout = 2 * time.Second

func init() {
	toastTTL = time.Millisecond
}

// backend is a seeded mock API plus a signed-in client.
type backend struct {
	srv    *mockapi.Server
	url    string
	client *api.Client
	perms  []string
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	srv := mockapi.New()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL+"/api", "", api.WithRateLimit(0))
	resp, err := client.Login(context.Background(), mockapi.AdminEmail, mockapi.AdminPassword)
	require.NoError(t, err)
	client.SetToken(resp.Token)
	return &backend{srv: srv, url: ts.URL + "/api", client: client, perms: resp.Permissions}
}

// env builds a screen env for the signed-in admin, with lookups loaded.
func (b *backend) env(t *testing.T, pageSize int) *screenEnv {
	t.Helper()
	lookups, err := b.client.LoadLookups(context.Background())
	require.NoError(t, err)
	return &screenEnv{
		client:   b.client,
		gate:     listctl.NewGate(b.perms),
		lookups:  &lookups,
		pageSize: pageSize,
		timeout:  cmdTimeout,
	}
}

// anonymousClient is a client for the same backend without a token.
func (b *backend) anonymousClient() *api.Client {
	return api.NewClient(b.url, "", api.WithRateLimit(0))
}

// ignorable drops timers that would otherwise loop forever in tests.
func ignorable(msg tea.Msg) bool {
	switch msg.(type) {
	case spinner.TickMsg, clearToastMsg:
		return true
	}
	return strings.HasPrefix(fmt.Sprintf("%T", msg), "cursor.")
}

// drain runs cmd and returns the messages it produces, expanding batches.
// Commands that do not return within cmdTimeout are dropped.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(cmdTimeout):
		return nil
	}

	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if msg == nil || ignorable(msg) {
			return nil
		}
		return []tea.Msg{msg}
	}

	results := make([][]tea.Msg, len(batch))
	var wg sync.WaitGroup
	for i, c := range batch {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = drain(c)
		}()
	}
	wg.Wait()

	var out []tea.Msg
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// pump feeds the screen's own results back into it until it settles and
// returns the messages meant for the app.
func pump(t *testing.T, s screen, cmd tea.Cmd) (screen, []tea.Msg) {
	t.Helper()
	var external []tea.Msg
	queue := drain(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		keyed, ok := msg.(keyedMsg)
		if !ok {
			external = append(external, msg)
			continue
		}
		require.Equal(t, s.Key(), keyed.screenKey())
		var next tea.Cmd
		s, next = s.Update(msg)
		queue = append(queue, drain(next)...)
	}
	return s, external
}

// press sends keys to the screen one by one, pumping after each.
func press(t *testing.T, s screen, keys ...tea.KeyMsg) (screen, []tea.Msg) {
	t.Helper()
	var external []tea.Msg
	for _, k := range keys {
		var cmd tea.Cmd
		s, cmd = s.Update(k)
		var msgs []tea.Msg
		s, msgs = pump(t, s, cmd)
		external = append(external, msgs...)
	}
	return s, external
}

// pumpApp feeds every produced message back into the app.
func pumpApp(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	queue := drain(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if _, quit := msg.(tea.QuitMsg); quit {
			continue
		}
		model, next := a.Update(msg)
		a = model.(App)
		queue = append(queue, drain(next)...)
	}
	return a
}

func pressApp(t *testing.T, a App, keys ...tea.KeyMsg) App {
	t.Helper()
	for _, k := range keys {
		model, cmd := a.Update(k)
		a = pumpApp(t, model.(App), cmd)
	}
	return a
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func toasts(msgs []tea.Msg) []toastMsg {
	var out []toastMsg
	for _, m := range msgs {
		if tm, ok := m.(toastMsg); ok {
			out = append(out, tm)
		}
	}
	return out
}

func hasMsg[M any](msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(M); ok {
			return true
		}
	}
	return false
}

// list unwraps a screen back into its concrete list model.
func list[T listctl.Entity](t *testing.T, s screen) ListModel[T] {
	t.Helper()
	m, ok := s.(ListModel[T])
	require.True(t, ok, "screen is %T", s)
	return m
}

// cursorTo moves the cursor down to the first row matching pred.
func cursorTo[T listctl.Entity](t *testing.T, s screen, pred func(T) bool) screen {
	t.Helper()
	m := list[T](t, s)
	for i, row := range m.ctl.Result().Rows {
		if pred(row) {
			for range i {
				s, _ = s.Update(key("down"))
			}
			return s
		}
	}
	require.FailNow(t, "no row matches")
	return s
}
