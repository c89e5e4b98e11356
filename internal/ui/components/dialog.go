package components

import (
	"strings"
)

const dialogWidth = 48

func dialog(title, body, hint string) string {
	style := bordered(pal.Border).Width(dialogWidth)
	header := fg(pal.Accent).Bold(true).Render(SanitizeOneLine(title))
	return style.Render(header + "\n\n" + body + "\n" + fg(pal.Muted).Render(hint))
}

// ConfirmDialog renders a yes/no question.
func ConfirmDialog(title, message string) string {
	return dialog(title, fg(pal.Muted).Render(message), "y: confirmar | n: cancelar")
}

// InputDialog renders a one-line prompt around an already rendered input.
// errText, when set, is shown under the input.
func InputDialog(title, input, errText string) string {
	body := fg(pal.Label).Render("> ") + input
	if errText != "" {
		body += "\n" + fg(pal.Danger).Render(SanitizeOneLine(errText))
	}
	return dialog(title, body, "enter: aplicar | esc: cancelar")
}

// SelectDialog renders the visible window of list with the cursor marked.
func SelectDialog(title string, list *List) string {
	if list == nil || len(list.Items) == 0 {
		return dialog(title, fg(pal.Muted).Render("Sin opciones disponibles."), "\n↑/↓: mover | enter: elegir | esc: cancelar")
	}

	cursor := fg(pal.Accent).Bold(true)
	visible := list.Visible()
	lines := make([]string, len(visible))
	for i, item := range visible {
		text := ClampTextWidth(item, dialogWidth-8)
		if list.Offset+i == list.Cursor {
			lines[i] = cursor.Render("› " + text)
		} else {
			lines[i] = "  " + text
		}
	}
	return dialog(title, strings.Join(lines, "\n"), "\n↑/↓: mover | enter: elegir | esc: cancelar")
}
