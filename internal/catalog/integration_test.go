package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/backoffice/cli/internal/api"
	"github.com/gravitrone/backoffice/cli/internal/catalog"
	"github.com/gravitrone/backoffice/cli/internal/listctl"
	"github.com/gravitrone/backoffice/cli/internal/mockapi"
)

func newBackend(t *testing.T) (*mockapi.Server, *api.Client) {
	t.Helper()
	srv := mockapi.New()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL+"/api", "", api.WithRateLimit(0))
	resp, err := client.Login(context.Background(), mockapi.AdminEmail, mockapi.AdminPassword)
	require.NoError(t, err)
	client.SetToken(resp.Token)
	return srv, client
}

func TestCreateBusinessWithTakenNameIsInlineError(t *testing.T) {
	_, client := newBackend(t)
	res := catalog.Businesses()
	ctl := res.Controller(client, 10, time.Second)
	_, err := ctl.Refresh(context.Background())
	require.NoError(t, err)

	ctl.Open(api.Business{}, listctl.MutationCreate)
	input, err := res.Build(catalog.Values{"name": "Burger Palace", "address": "Otra calle"})
	require.NoError(t, err)

	out := res.Dispatcher(client).Create(context.Background(), input)
	assert.Equal(t, listctl.OutcomeFieldError, out.Kind)
	assert.Equal(t, "name", out.Field)
	assert.Equal(t, catalog.MsgBusinessNameTaken, out.Message)
	assert.False(t, out.Refetch)

	ctl.Settle(out)
	_, open := ctl.Pending()
	assert.True(t, open)
}

func TestDeleteVehicleTypeInUseKeepsRow(t *testing.T) {
	srv, client := newBackend(t)
	res := catalog.VehicleTypes()
	ctl := res.Controller(client, 10, time.Second)
	_, err := ctl.Refresh(context.Background())
	require.NoError(t, err)
	before := ctl.Result().Rows

	moto, ok := srv.Find("vehicle-types", "name", "Motocicleta")
	require.True(t, ok)
	ctl.Open(api.VehicleType{ID: moto["id"].(string)}, listctl.MutationDelete)

	out := res.Dispatcher(client).Delete(context.Background(), moto["id"].(string))
	assert.Equal(t, listctl.OutcomeToast, out.Kind)
	assert.Equal(t, catalog.MsgVehicleTypeInUse, out.Message)
	assert.False(t, out.Refetch)

	ctl.Settle(out)
	_, open := ctl.Pending()
	assert.False(t, open)
	assert.Equal(t, before, ctl.Result().Rows)
	assert.Equal(t, 3, srv.Count("vehicle-types"))
}

func TestDeleteProductInCartShowsEntityMessage(t *testing.T) {
	srv, client := newBackend(t)
	p, ok := srv.Find("products", "name", "Hamburguesa clásica")
	require.True(t, ok)

	out := catalog.Products().Dispatcher(client).Delete(context.Background(), p["id"].(string))
	assert.Equal(t, listctl.OutcomeToast, out.Kind)
	assert.Equal(t, catalog.MsgProductInActiveCarts, out.Message)
}

func TestCreateValidatesBeforeSending(t *testing.T) {
	srv, client := newBackend(t)
	res := catalog.Users()
	before := srv.Count("users")

	input, err := res.Build(catalog.Values{"name": "A", "email": "no-es-correo"})
	require.NoError(t, err)

	out := res.Dispatcher(client).Create(context.Background(), input)
	assert.Equal(t, listctl.OutcomeFieldError, out.Kind)
	assert.Contains(t, out.Fields, "name")
	assert.Contains(t, out.Fields, "email")
	assert.Contains(t, out.Fields, "roleId")
	assert.Equal(t, before, srv.Count("users"))
}

func TestChangeStatusPatchesRowInPlace(t *testing.T) {
	_, client := newBackend(t)
	res := catalog.Categories()
	ctl := res.Controller(client, 10, time.Second)
	_, err := ctl.Refresh(context.Background())
	require.NoError(t, err)

	var target api.Category
	for _, c := range ctl.Result().Rows {
		if c.Name == "Bebidas" {
			target = c
		}
	}
	require.True(t, target.IsActive)
	gen := ctl.Generation()

	ctl.Open(target, listctl.MutationChangeStatus)
	out := res.Dispatcher(client).ChangeStatus(context.Background(), target)
	require.Equal(t, listctl.OutcomeOK, out.Kind)
	ctl.Settle(out)

	assert.Equal(t, gen, ctl.Generation())
	for _, c := range ctl.Result().Rows {
		if c.ID == target.ID {
			assert.False(t, c.IsActive)
		}
	}
}

func TestEntryListAppliesQuery(t *testing.T) {
	_, client := newBackend(t)
	entry, err := catalog.Default().Lookup("orders")
	require.NoError(t, err)

	q := listctl.NewQuery(2)
	q.SetSort("total", true)
	q.SetFilter("Status", "0", "1")

	listing, err := entry.List(context.Background(), client, q, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 3, listing.Total)
	assert.Equal(t, 1, listing.Page)
	assert.Equal(t, 2, listing.Pages)
	require.Len(t, listing.Cells, 2)
	assert.Equal(t, "$22.00", listing.Cells[0][5])
	assert.Equal(t, "$15.25", listing.Cells[1][5])
	assert.IsType(t, api.Order{}, listing.Rows[0])
}

func TestEntryListClampsPastLastPage(t *testing.T) {
	_, client := newBackend(t)
	entry, err := catalog.Default().Lookup("categories")
	require.NoError(t, err)

	q := listctl.NewQuery(2)
	q.SetPage(5)

	listing, err := entry.List(context.Background(), client, q, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 3, listing.Total)
	assert.Equal(t, 2, listing.Page)
	assert.Len(t, listing.Cells, 1)
}

func TestEntryDeleteAndToggle(t *testing.T) {
	srv, client := newBackend(t)
	reg := catalog.Default()

	types, err := reg.Lookup("vehicle-types")
	require.NoError(t, err)
	bike, ok := srv.Find("vehicle-types", "name", "Bicicleta")
	require.True(t, ok)
	res := types.Delete(context.Background(), client, bike["id"].(string))
	assert.Equal(t, listctl.OutcomeOK, res.Kind)
	assert.Equal(t, "Tipo de vehículo eliminado correctamente", res.Message)

	missing := types.Delete(context.Background(), client, "missing")
	assert.Equal(t, listctl.OutcomeNotFound, missing.Kind)
	assert.Equal(t, "Tipo de vehículo no encontrado", missing.Message)

	couriers, err := reg.Lookup("couriers")
	require.NoError(t, err)
	carlos, ok := srv.Find("couriers", "name", "Carlos Ruiz")
	require.True(t, ok)
	toggled := couriers.ToggleStatus(context.Background(), client, carlos["id"].(string))
	assert.Equal(t, listctl.OutcomeOK, toggled.Kind)
	after, _ := srv.Find("couriers", "name", "Carlos Ruiz")
	assert.Equal(t, false, after["isActive"])
}

func TestToggleStatusMessageFollowsErrorKind(t *testing.T) {
	_, client := newBackend(t)
	categories := catalog.Categories().Entry()

	missing := categories.ToggleStatus(context.Background(), client, "missing")
	assert.Equal(t, listctl.OutcomeNotFound, missing.Kind)
	assert.Equal(t, "Categoría no encontrada", missing.Message)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}))
	t.Cleanup(ts.Close)
	broken := api.NewClient(ts.URL, "token", api.WithRateLimit(0))

	failed := categories.ToggleStatus(context.Background(), broken, "cat-1")
	assert.Equal(t, listctl.OutcomeToast, failed.Kind)
	assert.Equal(t, "Error al procesar la categoría", failed.Message)
	assert.NotEqual(t, "Categoría no encontrada", failed.Message)
	require.Error(t, failed.Err)
}

func TestExpiredSessionHaltsController(t *testing.T) {
	_, client := newBackend(t)
	client.SetToken("expired")
	ctl := catalog.Users().Controller(client, 10, time.Second)

	applied, err := ctl.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, applied.Unauthorized)
	assert.True(t, ctl.Halted())

	_, err = ctl.Begin(context.Background())
	assert.ErrorIs(t, err, listctl.ErrHalted)
}
