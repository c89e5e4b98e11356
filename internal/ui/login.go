package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/backoffice/cli/internal/api"
	"github.com/gravitrone/backoffice/cli/internal/ui/components"
)

const loginTimeout = 15 * time.Second

const (
	loginFieldEmail = iota
	loginFieldPassword
)

// LoginModel is the sign-in screen.
type LoginModel struct {
	client     *api.Client
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	err        string
	fieldErrs  map[string]string
	spinner    spinner.Model
	width      int
}

func NewLoginModel(client *api.Client) LoginModel {
	email := textinput.New()
	email.Prompt = ""
	email.Placeholder = "correo@empresa.com"
	email.CharLimit = 120

	password := textinput.New()
	password.Prompt = ""
	password.Placeholder = "contraseña"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SelectedStyle

	m := LoginModel{
		client:   client,
		email:    email,
		password: password,
		spinner:  s,
	}
	m.email.Focus()
	return m
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// reset clears the form for a fresh sign-in, keeping the last email.
func (m LoginModel) reset() LoginModel {
	m.password.SetValue("")
	m.submitting = false
	m.err = ""
	m.fieldErrs = nil
	return m.focusOn(loginFieldEmail)
}

func (m LoginModel) focusOn(field int) LoginModel {
	m.focus = field
	if field == loginFieldEmail {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.password.Focus()
		m.email.Blur()
	}
	return m
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch {
		case isKey(msg, "tab", "shift+tab", "up", "down"):
			return m.focusOn(1 - m.focus), nil
		case isEnter(msg):
			if m.focus == loginFieldEmail {
				return m.focusOn(loginFieldPassword), nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == loginFieldEmail {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	m.submitting = true
	m.err = ""
	m.fieldErrs = nil
	client := m.client
	email, password := m.email.Value(), m.password.Value()
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()
		resp, err := client.Login(ctx, email, password)
		return loginDoneMsg{resp: resp, err: err}
	})
}

// fail shows a login error. Validation errors land next to their field.
func (m LoginModel) fail(err error) LoginModel {
	m.submitting = false
	var fields api.FieldErrors
	switch {
	case errors.As(err, &fields):
		m.fieldErrs = fields
		if _, bad := fields["email"]; bad {
			return m.focusOn(loginFieldEmail)
		}
		return m.focusOn(loginFieldPassword)
	case api.KindOf(err) == api.KindUnauthorized:
		m.err = "Correo o contraseña incorrectos."
	case api.KindOf(err) == api.KindValidation:
		m.err = err.Error()
	default:
		m.err = "No se pudo iniciar sesión: " + err.Error()
	}
	m.password.SetValue("")
	return m.focusOn(loginFieldPassword)
}

func (m LoginModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderField("Correo", m.email.View(), loginFieldEmail, "email"))
	b.WriteString("\n\n")
	b.WriteString(m.renderField("Contraseña", m.password.View(), loginFieldPassword, "password"))

	if m.submitting {
		b.WriteString("\n\n" + m.spinner.View() + MutedStyle.Render(" Ingresando..."))
	} else if m.err != "" {
		b.WriteString("\n\n" + ErrorStyle.Render(components.SanitizeOneLine(m.err)))
	}
	b.WriteString("\n\n" + MutedStyle.Render("tab: cambiar campo | enter: ingresar | ctrl+c: salir"))
	return components.TitledBox("Iniciar sesión", b.String(), m.width)
}

func (m LoginModel) renderField(label, input string, field int, key string) string {
	marker := "  "
	if m.focus == field {
		marker = SelectedStyle.Render("› ")
	}
	out := marker + LabelStyle.Render(label) + "\n    " + input
	if msg, bad := m.fieldErrs[key]; bad {
		out += "\n    " + ErrorStyle.Render(msg)
	}
	return out
}
