package ui

import tea "github.com/charmbracelet/bubbletea"

// --- Key Constants ---

// vimKeys adds j/k to the up/down checks. Set once from config at startup.
var vimKeys bool

// SetVimKeys enables j/k navigation.
func SetVimKeys(on bool) {
	vimKeys = on
}

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isUp(msg tea.KeyMsg) bool {
	if vimKeys && isKey(msg, "k") {
		return true
	}
	return isKey(msg, "up")
}

func isDown(msg tea.KeyMsg) bool {
	if vimKeys && isKey(msg, "j") {
		return true
	}
	return isKey(msg, "down")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter", "return")
}

func isNextPage(msg tea.KeyMsg) bool {
	return isKey(msg, "right", "]", "pgdown")
}

func isPrevPage(msg tea.KeyMsg) bool {
	return isKey(msg, "left", "[", "pgup")
}

func isNextField(msg tea.KeyMsg) bool {
	return isKey(msg, "tab", "down")
}

func isPrevField(msg tea.KeyMsg) bool {
	return isKey(msg, "shift+tab", "up")
}
