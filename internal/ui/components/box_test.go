package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maxLineWidth(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

func TestBoxWidthBounds(t *testing.T) {
	assert.Equal(t, 0, boxWidth(0))
	assert.Equal(t, 30, boxWidth(30))
	assert.Equal(t, 40, boxWidth(45))
	assert.Equal(t, 85, boxWidth(100))
	assert.Equal(t, 120, boxWidth(200))
	assert.Equal(t, 79, BoxContentWidth(100))
	assert.Equal(t, 0, BoxContentWidth(3))
}

func TestPanelNarrowTerminalStaysInside(t *testing.T) {
	for _, tone := range []Tone{ToneNeutral, ToneActive, ToneSuccess, ToneError} {
		out := Panel(tone, "Pedidos pendientes de asignación", "line", 20)
		assert.LessOrEqual(t, maxLineWidth(out), 20)
	}
}

func TestPanelTitleSitsInTopBorder(t *testing.T) {
	out := TitledBox("Categorías", "Contenido", 80)
	lines := strings.Split(SanitizeText(out), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "[ Categorías ]")
	assert.True(t, strings.HasPrefix(lines[0], "╭"))
	assert.True(t, strings.HasSuffix(lines[0], "╮"))
	assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(lines[1]))
}

func TestPanelWithoutTitle(t *testing.T) {
	out := SanitizeText(TitledBox("", "Contenido", 80))
	assert.Contains(t, out, "Contenido")
	assert.NotContains(t, out, "[")
}

func TestMessageBoxes(t *testing.T) {
	clean := SanitizeText(SuccessBox("Listo", "Usuario creado correctamente", 80))
	assert.Contains(t, clean, "Listo")
	assert.Contains(t, clean, "Usuario creado correctamente")

	clean = SanitizeText(ErrorBox("Error", "No se pudo conectar", 80))
	assert.Contains(t, clean, "No se pudo conectar")
}

func TestFieldsStayInsidePanel(t *testing.T) {
	rows := []Field{
		{Label: strings.Repeat("Etiqueta", 8), Value: strings.Repeat("valor", 40)},
		{Label: "Corto", Value: "ok"},
	}
	out := Fields("Detalle", rows, 60)
	assert.LessOrEqual(t, maxLineWidth(out), 60)
	assert.Contains(t, SanitizeText(out), "…")
	assert.Empty(t, Fields("Detalle", nil, 60))
}

func TestInfoRowSanitizesLabelAndValue(t *testing.T) {
	out := InfoRow("Ses\x1b[31mión\n", "ana‮")
	clean := SanitizeText(out)
	assert.Contains(t, clean, "Sesión: ana")
	assert.NotContains(t, clean, "‮")
}

func TestIndentPrefixesEveryLine(t *testing.T) {
	assert.Equal(t, "  a\n  b", Indent("a\nb", 2))
}

func TestCenterLine(t *testing.T) {
	out := CenterLine("hola", 100)
	assert.Equal(t, strings.Repeat(" ", 40)+"hola", out)
	assert.Equal(t, "hola", CenterLine("hola", 0))
}

func TestSetPaletteChangesBorder(t *testing.T) {
	t.Cleanup(func() { SetPalette(DarkPalette) })

	SetPalette(LightPalette)
	assert.Equal(t, LightPalette.Border, ToneNeutral.border())
	assert.Equal(t, LightPalette.Danger, ToneError.border())
}
