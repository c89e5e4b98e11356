package listctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assignAction() Action[row] {
	return Action[row]{
		ID:         "assign",
		Label:      "Asignar repartidor",
		Permission: "Asignar_Repartidor",
		When:       func(r row) bool { return r.Status == 0 },
	}
}

func TestGateChecks(t *testing.T) {
	gate := NewGate([]string{"Ver_Usuarios", "Crear_Usuarios", ""})
	assert.True(t, gate.Has("Ver_Usuarios"))
	assert.False(t, gate.Has("Eliminar_Usuarios"))
	assert.True(t, gate.All("Ver_Usuarios", "Crear_Usuarios"))
	assert.False(t, gate.All("Ver_Usuarios", "Eliminar_Usuarios"))
	assert.True(t, gate.Any("Eliminar_Usuarios", "Crear_Usuarios"))
	assert.False(t, gate.Any())
	assert.Equal(t, []string{"Crear_Usuarios", "Ver_Usuarios"}, gate.Codes())
	assert.Equal(t, 2, gate.Len())
}

func TestAssignCourierVisibility(t *testing.T) {
	inProcess := row{ID: "o-1", Status: 0}
	assigned := row{ID: "o-2", Status: 1}
	actions := []Action[row]{assignAction()}

	granted := NewGate([]string{"Asignar_Repartidor"})
	assert.Len(t, Visible(granted, actions, inProcess), 1)
	assert.Empty(t, Visible(granted, actions, assigned))

	denied := NewGate(nil)
	assert.Empty(t, Visible(denied, actions, inProcess))
}

func TestPermittedIgnoresRowPredicate(t *testing.T) {
	toolbar := []Action[row]{
		{ID: "create", Permission: "Crear_Pedidos"},
		{ID: "export"},
	}
	gate := NewGate([]string{"Ver_Pedidos"})
	got := Permitted(gate, toolbar)
	assert.Len(t, got, 1)
	assert.Equal(t, "export", got[0].ID)
}
