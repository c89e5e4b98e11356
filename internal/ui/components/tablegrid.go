package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TableColumn is one column of a TableGrid. Width counts content cells
// only; separators are added between columns.
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

const gridMargin = 2

// TableGrid renders a header, a rule and one line per row. Every line is
// exactly tableWidth cells wide; the last column absorbs any slack.
func TableGrid(columns []TableColumn, rows [][]string, tableWidth int) string {
	return TableGridWithActiveRow(columns, rows, tableWidth, -1)
}

// TableGridWithActiveRow is TableGrid with row activeRow highlighted. Pass
// -1 for no highlight.
func TableGridWithActiveRow(columns []TableColumn, rows [][]string, tableWidth int, activeRow int) string {
	if tableWidth <= 0 {
		return ""
	}
	if len(columns) == 0 {
		return strings.Repeat(" ", tableWidth)
	}

	g := newGrid(columns, tableWidth)
	lines := make([]string, 0, len(rows)+2)
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	lines = append(lines, g.line(headers, rowHeader), g.rule())
	for i, cells := range rows {
		kind := rowPlain
		if i == activeRow {
			kind = rowActive
		}
		lines = append(lines, g.line(cells, kind))
	}
	return strings.Join(lines, "\n")
}

type rowKind int

const (
	rowPlain rowKind = iota
	rowHeader
	rowActive
)

type grid struct {
	cols  []TableColumn
	width int
	glyph lipgloss.Border
}

func newGrid(columns []TableColumn, width int) grid {
	cols := append([]TableColumn(nil), columns...)
	used := len(cols) - 1 // separators
	for i := range cols {
		cols[i].Width = max(cols[i].Width, 1)
		used += cols[i].Width
	}
	avail := max(width-gridMargin, len(cols))
	last := len(cols) - 1
	cols[last].Width = max(cols[last].Width+avail-used, 1)
	return grid{cols: cols, width: width, glyph: lipgloss.RoundedBorder()}
}

func (g grid) line(cells []string, kind rowKind) string {
	sepStyle := fg(pal.Border).Inline(true)
	cellStyle := lipgloss.NewStyle().Inline(true)
	switch kind {
	case rowHeader:
		cellStyle = fg(pal.Label).Bold(true).Inline(true)
	case rowActive:
		sepStyle = sepStyle.Background(pal.Surface)
		cellStyle = fg(pal.Text).Background(pal.Surface).Bold(true).Inline(true)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridMargin))
	for i, col := range g.cols {
		if i > 0 {
			b.WriteString(sepStyle.Render(g.glyph.Left))
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		b.WriteString(cellStyle.Render(alignCell(text, col.Width, col.Align)))
	}
	return fitLine(b.String(), g.width)
}

func (g grid) rule() string {
	parts := make([]string, len(g.cols))
	for i, col := range g.cols {
		parts[i] = strings.Repeat(g.glyph.Top, col.Width)
	}
	line := strings.Repeat(" ", gridMargin) + strings.Join(parts, g.glyph.Middle)
	return fg(pal.Border).Inline(true).Render(fitLine(line, g.width))
}

func alignCell(text string, width int, align lipgloss.Position) string {
	text = ClampTextWidth(text, width)
	gap := width - ansi.StringWidth(text)
	if gap <= 0 {
		return text
	}
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", gap) + text
	case lipgloss.Center:
		return strings.Repeat(" ", gap/2) + text + strings.Repeat(" ", gap-gap/2)
	}
	return text + strings.Repeat(" ", gap)
}

// fitLine pads or cuts s to exactly width cells.
func fitLine(s string, width int) string {
	if ansi.StringWidth(s) > width {
		return ansi.Truncate(s, width, "")
	}
	return padRight(s, width)
}
