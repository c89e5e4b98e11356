package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSendsJSON(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/categories", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body CategoryInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusCreated, map[string]any{"id": "cat-1", "name": body.Name, "isActive": true})
	})

	cat, err := Create[Category](context.Background(), client, "categories", CategoryInput{Name: "Bebidas"})
	require.NoError(t, err)
	assert.Equal(t, "cat-1", cat.ID)
	assert.True(t, cat.IsActive)
}

func TestCreateWithImageSendsMultipart(t *testing.T) {
	image := filepath.Join(t.TempDir(), "burger.png")
	require.NoError(t, os.WriteFile(image, []byte("png-bytes"), 0o600))

	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Burger", r.FormValue("name"))
		assert.Equal(t, "12.50", r.FormValue("price"))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "burger.png", header.Filename)
		assert.Equal(t, "png-bytes", string(data))
		writeJSON(w, http.StatusCreated, map[string]any{"id": "p-1", "name": "Burger"})
	})

	_, err := Create[Product](context.Background(), client, "products", ProductInput{
		Name:       "Burger",
		Price:      12.5,
		CategoryID: "cat-1",
		BusinessID: "b-1",
		ImagePath:  image,
	})
	require.NoError(t, err)
}

func TestCreateMissingImageFails(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not be sent")
	})

	_, err := Create[Product](context.Background(), client, "products", ProductInput{
		Name:      "Burger",
		ImagePath: filepath.Join(t.TempDir(), "missing.png"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open image")
}

func TestUpdateUsesPut(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/businesses/b-1", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"id": "b-1", "name": "Acme"})
	})

	biz, err := Update[Business](context.Background(), client, "businesses", "b-1", BusinessInput{Name: "Acme", Address: "Calle 1"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", biz.Name)
}

func TestUpdateConflictIsClassified(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{"message": "duplicate name"})
	})

	_, err := Update[Business](context.Background(), client, "businesses", "b-1", BusinessInput{Name: "Acme"})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Contains(t, err.Error(), "duplicate name")
}

func TestDeleteEmptyBody(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/vehicle-types/vt-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, Delete(context.Background(), client, "vehicle-types", "vt-1"))
}

func TestDeleteNotFound(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := Delete(context.Background(), client, "vehicles", "missing")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestChangeStatusSendsDesiredValue(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users/u-1/status", r.URL.Path)
		var body StatusInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.False(t, body.IsActive)
		writeJSON(w, http.StatusOK, map[string]any{"id": "u-1", "isActive": body.IsActive})
	})

	user, err := ChangeStatus[User](context.Background(), client, "users", "u-1", false)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.IsActive)
}

func TestChangeStatusNoContentReturnsNil(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	user, err := ChangeStatus[User](context.Background(), client, "users", "u-1", true)
	require.NoError(t, err)
	assert.Nil(t, user)
}
