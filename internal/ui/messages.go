package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/backoffice/cli/internal/api"
	"github.com/gravitrone/backoffice/cli/internal/listctl"
)

// --- Messages ---

type clearToastMsg struct{}

// unauthorizedMsg routes the app to the unauthorized screen.
type unauthorizedMsg struct{}

// UnauthorizedNotifier returns an api client hook that delivers a 401 to
// the app through send, usually (*tea.Program).Send.
func UnauthorizedNotifier(send func(tea.Msg)) func() {
	return func() { send(unauthorizedMsg{}) }
}

// lookupsStaleMsg asks the app to reload select options after a write.
type lookupsStaleMsg struct{}

type lookupsLoadedMsg struct {
	lookups api.Lookups
	err     error
}

type loginDoneMsg struct {
	resp *api.LoginResponse
	err  error
}

// Toast levels.
const (
	toastInfo    = "info"
	toastSuccess = "success"
	toastWarning = "warning"
	toastError   = "error"
)

type toastMsg struct {
	level string
	text  string
}

// keyedMsg is a result that belongs to one screen.
type keyedMsg interface {
	screenKey() string
}

type listFetchedMsg[T listctl.Entity] struct {
	key    string
	result listctl.Result[T]
}

func (m listFetchedMsg[T]) screenKey() string { return m.key }

type listMutatedMsg[T listctl.Entity] struct {
	key     string
	outcome listctl.Outcome[T]
}

func (m listMutatedMsg[T]) screenKey() string { return m.key }

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func toastCmd(level, text string) tea.Cmd {
	if text == "" {
		return nil
	}
	return emit(toastMsg{level: level, text: text})
}

var toastTTL = 2500 * time.Millisecond
