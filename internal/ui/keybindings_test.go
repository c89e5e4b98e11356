package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit(tea.KeyMsg{Type: tea.KeyCtrlC}))
	assert.True(t, isQuit(runeKey('q')))
	assert.False(t, isQuit(runeKey('a')))
}

func TestIsEnter(t *testing.T) {
	assert.True(t, isEnter(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.False(t, isEnter(tea.KeyMsg{Type: tea.KeySpace}))
}

func TestIsBack(t *testing.T) {
	assert.True(t, isBack(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.False(t, isBack(tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestIsUpDownHonoursVimKeys(t *testing.T) {
	t.Cleanup(func() { SetVimKeys(false) })

	SetVimKeys(false)
	assert.True(t, isDown(tea.KeyMsg{Type: tea.KeyDown}))
	assert.False(t, isDown(runeKey('j')))
	assert.False(t, isUp(runeKey('k')))

	SetVimKeys(true)
	assert.True(t, isDown(runeKey('j')))
	assert.True(t, isUp(runeKey('k')))
	assert.True(t, isUp(tea.KeyMsg{Type: tea.KeyUp}))
}

func TestPagingKeys(t *testing.T) {
	assert.True(t, isNextPage(tea.KeyMsg{Type: tea.KeyRight}))
	assert.True(t, isNextPage(runeKey(']')))
	assert.True(t, isPrevPage(tea.KeyMsg{Type: tea.KeyLeft}))
	assert.True(t, isPrevPage(runeKey('[')))
	assert.False(t, isNextPage(tea.KeyMsg{Type: tea.KeyLeft}))
}

func TestFieldNavigationKeys(t *testing.T) {
	assert.True(t, isNextField(tea.KeyMsg{Type: tea.KeyTab}))
	assert.True(t, isPrevField(tea.KeyMsg{Type: tea.KeyShiftTab}))
	assert.False(t, isNextField(tea.KeyMsg{Type: tea.KeyShiftTab}))
}
