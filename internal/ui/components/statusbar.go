package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Hint formats one key hint as "desc [key]".
func Hint(key, desc string) string {
	keyCap := lipgloss.NewStyle().
		Foreground(pal.Surface).
		Background(pal.KeyCap).
		Bold(true).
		Padding(0, 1)
	return fg(pal.Muted).Render(desc+" ") + keyCap.Render(key)
}

// StatusBar lays hints out in framed segments, wrapping onto more rows when
// width is too narrow, and centers the result.
func StatusBar(hints []string, width int) string {
	segment := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(pal.Border).
		Padding(0, 1).
		MarginRight(1)
	segments := make([]string, len(hints))
	for i, h := range hints {
		segments[i] = segment.Render(h)
	}

	bar := lipgloss.NewStyle().PaddingLeft(2)
	rows := wrapSegments(segments, width)
	switch {
	case len(hints) == 0:
		return ""
	case width <= 0:
		return bar.Render(rows[0])
	}

	widest := 0
	for _, row := range rows {
		widest = max(widest, lipgloss.Width(row))
	}
	centered := make([]string, len(rows))
	for i, row := range rows {
		centered[i] = lipgloss.PlaceHorizontal(widest, lipgloss.Center, row)
	}
	return bar.Width(width).Align(lipgloss.Center).Render(lipgloss.JoinVertical(lipgloss.Left, centered...))
}

// wrapSegments groups segments into rows no wider than width. A single
// segment wider than width still gets its own row.
func wrapSegments(segments []string, width int) []string {
	if width <= 0 {
		return []string{lipgloss.JoinHorizontal(lipgloss.Top, segments...)}
	}
	var rows []string
	var row []string
	used := 0
	for _, seg := range segments {
		w := lipgloss.Width(seg)
		if len(row) > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, seg)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return rows
}
