package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "u-1"}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestParseExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, err := ParseExpiry(signedToken(t, exp))
	require.NoError(t, err)
	assert.True(t, exp.Equal(got))

	got, err = ParseExpiry(signedToken(t, time.Time{}))
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseExpiry("not-a-jwt")
	assert.Error(t, err)
}

func TestSessionAuthenticated(t *testing.T) {
	now := time.Now()
	assert.False(t, Session{}.Authenticated(now))

	live := New(signedToken(t, now.Add(time.Hour)), "ana", nil)
	assert.True(t, live.Authenticated(now))
	assert.False(t, live.Expired(now))

	expired := New(signedToken(t, now.Add(-time.Minute)), "ana", nil)
	assert.False(t, expired.Authenticated(now))
	assert.True(t, expired.Expired(now))

	opaque := New("opaque-token", "ana", nil)
	assert.True(t, opaque.Authenticated(now))
}

func TestSessionGate(t *testing.T) {
	s := New("tok", "ana", []string{"Ver_Usuarios"})
	gate := s.Gate()
	assert.True(t, gate.Has("Ver_Usuarios"))
	assert.False(t, gate.Has("Eliminar_Usuarios"))
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	token := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, store.Save(ctx, New(token, "ana", []string{"Ver_Pedidos", "Asignar_Repartidor"})))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, loaded.Token)
	assert.Equal(t, "ana", loaded.Username)
	assert.Equal(t, []string{"Ver_Pedidos", "Asignar_Repartidor"}, loaded.Permissions)
	assert.False(t, loaded.ExpiresAt.IsZero())
}

func TestStoreSaveReplacesWholesale(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, New("first", "ana", []string{"Ver_Usuarios"})))
	require.NoError(t, store.Save(ctx, New("second", "", nil)))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.Token)
	assert.Empty(t, loaded.Username)
	assert.Empty(t, loaded.Permissions)
}

func TestStoreRejectsEmptyToken(t *testing.T) {
	store := openTestStore(t)
	assert.Error(t, store.Save(context.Background(), Session{}))
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, New("tok", "ana", nil)))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	store, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, New("tok", "ana", []string{"Ver_Roles"})))
	require.NoError(t, store.Close())

	reopened, err := OpenStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ver_Roles"}, loaded.Permissions)
}

func TestHolderLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	holder, err := NewHolder(ctx, store)
	require.NoError(t, err)
	assert.Empty(t, holder.Current().Token)

	require.NoError(t, holder.Replace(ctx, New("tok", "ana", []string{"Ver_Negocios"})))
	assert.Equal(t, "tok", holder.Current().Token)

	again, err := NewHolder(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, "ana", again.Current().Username)

	require.NoError(t, holder.Clear(ctx))
	assert.Empty(t, holder.Current().Token)
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestHolderWithoutStore(t *testing.T) {
	holder, err := NewHolder(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, holder.Replace(context.Background(), New("tok", "ana", nil)))
	assert.Equal(t, "tok", holder.Current().Token)
}
