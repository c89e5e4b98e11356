package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/backoffice/cli/internal/api"
	"github.com/gravitrone/backoffice/cli/internal/config"
	"github.com/gravitrone/backoffice/cli/internal/mockapi"
	"github.com/gravitrone/backoffice/cli/internal/session"
	"github.com/gravitrone/backoffice/cli/internal/ui/components"
)

func newTestApp(t *testing.T, b *backend, sess *session.Session) (App, *session.Holder) {
	t.Helper()
	holder, err := session.NewHolder(context.Background(), nil)
	require.NoError(t, err)
	if sess != nil {
		require.NoError(t, holder.Replace(context.Background(), *sess))
	}
	a := NewApp(b.anonymousClient(), config.Default(), holder)
	model, _ := a.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return model.(App), holder
}

func signIn(t *testing.T, a App, email, password string) App {
	t.Helper()
	return pressApp(t, a, typed(email), key("enter"), typed(password), key("enter"))
}

func TestAppStartsAtLoginWithoutSession(t *testing.T) {
	b := newBackend(t)
	a, _ := newTestApp(t, b, nil)

	assert.Equal(t, session.RouteLogin, a.route)
	assert.Empty(t, a.screens)
	assert.Contains(t, a.View(), "Iniciar sesión")
}

func TestAppLoginLoadsTabsAndLookups(t *testing.T) {
	b := newBackend(t)
	a, holder := newTestApp(t, b, nil)

	a = signIn(t, a, mockapi.AdminEmail, mockapi.AdminPassword)

	require.Equal(t, session.RouteHome, a.route)
	assert.Equal(t, "Administrador", holder.Current().Username)
	assert.NotEmpty(t, a.client.Token())
	require.Len(t, a.screens, 10)
	assert.Equal(t, "Pedidos", a.screens[0].Title())
	assert.Len(t, list[api.Order](t, a.screens[0]).ctl.Result().Rows, 5)
	assert.NotEmpty(t, a.env.lookups.Couriers)
	assert.NotEmpty(t, a.env.lookups.Categories)

	require.NotNil(t, a.toast)
	assert.Equal(t, toastSuccess, a.toast.level)
	assert.Equal(t, "Bienvenido, Administrador", a.toast.text)

	view := a.View()
	assert.Contains(t, view, "1 Pedidos")
	assert.Contains(t, view, "PED-0001")
}

func TestAppLoginWrongPasswordStaysOnLogin(t *testing.T) {
	b := newBackend(t)
	a, holder := newTestApp(t, b, nil)

	a = signIn(t, a, mockapi.AdminEmail, "incorrecta")

	assert.Equal(t, session.RouteLogin, a.route)
	assert.Equal(t, "Correo o contraseña incorrectos.", a.login.err)
	assert.False(t, a.login.submitting)
	assert.Empty(t, a.login.password.Value())
	assert.Empty(t, holder.Current().Token)
	assert.Contains(t, a.View(), "Correo o contraseña incorrectos.")
}

func TestAppLoginValidationShowsFieldError(t *testing.T) {
	b := newBackend(t)
	a, _ := newTestApp(t, b, nil)

	a = signIn(t, a, "no-es-correo", "x")

	assert.Equal(t, session.RouteLogin, a.route)
	assert.NotEmpty(t, a.login.fieldErrs["email"])
	assert.Equal(t, loginFieldEmail, a.login.focus)
}

func TestAppPermissionsLimitTabs(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.srv.AddAccount("Operador", "op@backoffice.test", "secreto123", []string{"Ver_Pedidos", "Ver_Roles"}))
	a, _ := newTestApp(t, b, nil)

	a = signIn(t, a, "op@backoffice.test", "secreto123")

	require.Equal(t, session.RouteHome, a.route)
	require.Len(t, a.screens, 2)
	assert.Equal(t, "Pedidos", a.screens[0].Title())
	assert.Equal(t, "Roles", a.screens[1].Title())
	// Lookups the role cannot read are skipped without a warning.
	require.NotNil(t, a.toast)
	assert.Equal(t, toastSuccess, a.toast.level)
}

func TestAppPartialPermissionsLoadsReadableLookups(t *testing.T) {
	b := newBackend(t)
	perms := []string{"Ver_Productos", "Crear_Productos", "Ver_Categorias", "Ver_Negocios"}
	require.NoError(t, b.srv.AddAccount("Catálogo", "catalogo@backoffice.test", "secreto123", perms))
	a, _ := newTestApp(t, b, nil)

	a = signIn(t, a, "catalogo@backoffice.test", "secreto123")

	require.Equal(t, session.RouteHome, a.route)
	require.NotNil(t, a.env)
	assert.NotEmpty(t, a.env.lookups.Categories)
	assert.NotEmpty(t, a.env.lookups.Businesses)
	assert.Empty(t, a.env.lookups.Roles)
	assert.Empty(t, a.env.lookups.Couriers)
	require.NotNil(t, a.toast)
	assert.Equal(t, toastSuccess, a.toast.level)
}

func TestAppRestoresPersistedSession(t *testing.T) {
	b := newBackend(t)
	sess := session.New(b.client.Token(), "Administrador", b.perms)
	a, _ := newTestApp(t, b, &sess)

	require.Equal(t, session.RouteHome, a.route)
	a = pumpApp(t, a, a.Init())
	assert.Len(t, list[api.Order](t, a.screens[0]).ctl.Result().Rows, 5)
}

func TestAppUnauthorizedRoutesBackToLogin(t *testing.T) {
	b := newBackend(t)
	sess := session.New("garbage", "Administrador", b.perms)
	a, holder := newTestApp(t, b, &sess)
	require.Equal(t, session.RouteHome, a.route)

	a = pumpApp(t, a, a.Init())
	require.Equal(t, session.RouteUnauthorized, a.route)
	assert.Contains(t, a.View(), "No autorizado")

	a = pressApp(t, a, key("r"))
	assert.Equal(t, session.RouteLogin, a.route)
	assert.Empty(t, holder.Current().Token)
	assert.Empty(t, a.screens)

	a = signIn(t, a, mockapi.AdminEmail, mockapi.AdminPassword)
	require.Equal(t, session.RouteHome, a.route)
	assert.Len(t, list[api.Order](t, a.screens[0]).ctl.Result().Rows, 5)
}

func TestUnauthorizedNotifierRoutesApp(t *testing.T) {
	b := newBackend(t)
	sess := session.New(b.client.Token(), "Administrador", b.perms)
	a, holder := newTestApp(t, b, &sess)
	a = pumpApp(t, a, a.Init())
	require.Equal(t, session.RouteHome, a.route)

	sent := make(chan tea.Msg, 1)
	a.client.OnUnauthorized(UnauthorizedNotifier(func(msg tea.Msg) { sent <- msg }))
	a.client.SetToken("garbage")
	_, err := api.Get[api.Category](context.Background(), a.client, "categories", "cat-1")
	require.Error(t, err)

	var msg tea.Msg
	select {
	case msg = <-sent:
	case <-time.After(cmdTimeout):
		t.Fatal("no message sent for the 401")
	}
	model, _ := a.Update(msg)
	a = model.(App)
	assert.Equal(t, session.RouteUnauthorized, a.route)
	assert.NotEmpty(t, holder.Current().Token)
}

func TestUnauthorizedIgnoredOnLoginScreen(t *testing.T) {
	b := newBackend(t)
	a, _ := newTestApp(t, b, nil)
	a.login.email.SetValue("alguien@backoffice.test")

	model, cmd := a.Update(unauthorizedMsg{})
	a = model.(App)
	assert.Nil(t, cmd)
	assert.Equal(t, session.RouteLogin, a.route)
	assert.Equal(t, "alguien@backoffice.test", a.login.email.Value())
}

func TestAppTabSwitching(t *testing.T) {
	b := newBackend(t)
	a, _ := newTestApp(t, b, nil)
	a = signIn(t, a, mockapi.AdminEmail, mockapi.AdminPassword)

	a = pressApp(t, a, key("2"))
	assert.Equal(t, 1, a.tab)
	assert.NotEmpty(t, list[api.User](t, a.screens[1]).ctl.Result().Rows)

	a = pressApp(t, a, key("right"))
	assert.Equal(t, 2, a.tab)
	a = pressApp(t, a, key("left"))
	assert.Equal(t, 1, a.tab)

	a = pressApp(t, a, key("down"))
	assert.False(t, a.tabNav)
	a = pressApp(t, a, key("up"))
	assert.True(t, a.tabNav)

	require.Len(t, a.screens, 10)
	a = pressApp(t, a, key("0"))
	assert.Equal(t, 9, a.tab)
}

func TestAppHelpToggle(t *testing.T) {
	b := newBackend(t)
	a, _ := newTestApp(t, b, nil)
	a = signIn(t, a, mockapi.AdminEmail, mockapi.AdminPassword)

	a = pressApp(t, a, key("?"))
	assert.True(t, a.helpOpen)
	assert.Contains(t, a.View(), "Ayuda")

	a = pressApp(t, a, key("esc"))
	assert.False(t, a.helpOpen)
}

func TestAppLogout(t *testing.T) {
	b := newBackend(t)
	a, holder := newTestApp(t, b, nil)
	a = signIn(t, a, mockapi.AdminEmail, mockapi.AdminPassword)

	a = pressApp(t, a, key("L"))

	assert.Equal(t, session.RouteLogin, a.route)
	assert.Empty(t, a.client.Token())
	assert.Empty(t, holder.Current().Token)
	assert.Nil(t, a.env)
	require.NotNil(t, a.toast)
	assert.Equal(t, "Sesión cerrada.", a.toast.text)
	assert.Equal(t, mockapi.AdminEmail, a.login.email.Value())
}

func TestAppQuitConfirmWhileEditing(t *testing.T) {
	b := newBackend(t)
	a, _ := newTestApp(t, b, nil)
	a = signIn(t, a, mockapi.AdminEmail, mockapi.AdminPassword)

	a = pressApp(t, a, key("6"), key("n"))
	require.Equal(t, "Categorías", a.active().Title())
	require.True(t, a.active().Capturing())

	a = pressApp(t, a, key("ctrl+c"))
	assert.True(t, a.quitConfirm)
	view := components.SanitizeText(a.View())
	assert.Contains(t, view, "Hay cambios sin guardar.")
	assert.Contains(t, view, "¿Salir de todos modos?")

	a = pressApp(t, a, key("n"))
	assert.False(t, a.quitConfirm)
	assert.True(t, a.active().Capturing())

	a = pressApp(t, a, key("ctrl+c"))
	_, cmd := a.Update(key("y"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppQuitFromBrowse(t *testing.T) {
	b := newBackend(t)
	a, _ := newTestApp(t, b, nil)
	a = signIn(t, a, mockapi.AdminEmail, mockapi.AdminPassword)

	_, cmd := a.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTabIndexForKey(t *testing.T) {
	tests := []struct {
		key   string
		count int
		want  int
		ok    bool
	}{
		{"1", 3, 0, true},
		{"3", 3, 2, true},
		{"4", 3, 0, false},
		{"0", 10, 9, true},
		{"0", 9, 0, false},
		{"a", 3, 0, false},
		{"12", 20, 0, false},
	}
	for _, tt := range tests {
		got, ok := tabIndexForKey(tt.key, tt.count)
		assert.Equal(t, tt.ok, ok, tt.key)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.key)
		}
	}
}

func TestCenterBlockUniform(t *testing.T) {
	out := centerBlockUniform("ab\nabcd", 10)
	assert.Equal(t, "   ab\n   abcd", out)
	assert.Equal(t, "ab", centerBlockUniform("ab", 0))
}
