package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Tone picks the border color of a panel.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneActive
	ToneSuccess
	ToneError
)

func (t Tone) border() lipgloss.Color {
	switch t {
	case ToneActive:
		return pal.Accent
	case ToneSuccess:
		return pal.Success
	case ToneError:
		return pal.Danger
	}
	return pal.Border
}

func (t Tone) title() lipgloss.Color {
	switch t {
	case ToneSuccess:
		return pal.Success
	case ToneError:
		return pal.Danger
	}
	return pal.Accent
}

const (
	minBoxWidth = 40
	maxBoxWidth = 120
	// rounded border plus two cells of padding per side
	boxChrome = 6
)

// boxWidth is 85% of the terminal, kept between 40 and 120 cells and never
// wider than the terminal itself.
func boxWidth(term int) int {
	if term <= 0 {
		return 0
	}
	return min(max(term*85/100, minBoxWidth), maxBoxWidth, term)
}

// BoxContentWidth is the usable width inside a panel for a terminal of the
// given width.
func BoxContentWidth(term int) int {
	return max(boxWidth(term)-boxChrome, 0)
}

// Panel draws body in a rounded box. A non-empty title is set into the top
// border.
func Panel(tone Tone, title, body string, width int) string {
	style := bordered(tone.border())
	if w := boxWidth(width); w > 2 {
		// Width excludes the border.
		style = style.Width(w - 2)
	}
	boxed := style.Render(body)
	title = SanitizeOneLine(title)
	if title == "" {
		return boxed
	}
	return embedTitle(boxed, title, tone)
}

func embedTitle(boxed, title string, tone Tone) string {
	top, rest, _ := strings.Cut(boxed, "\n")
	w := ansi.StringWidth(top)
	if w < 4 {
		return boxed
	}

	glyphs := lipgloss.RoundedBorder()
	span := w - 2
	label := ansi.Truncate(" [ "+title+" ] ", span, "")
	left := (span - ansi.StringWidth(label)) / 2
	right := span - ansi.StringWidth(label) - left

	line := fg(tone.border()).Render(glyphs.TopLeft+strings.Repeat(glyphs.Top, left)) +
		fg(tone.title()).Bold(true).Render(label) +
		fg(tone.border()).Render(strings.Repeat(glyphs.Top, right)+glyphs.TopRight)
	return line + "\n" + rest
}

// Box renders content in a neutral panel.
func Box(content string, width int) string {
	return Panel(ToneNeutral, "", content, width)
}

// ActiveBox renders content in a highlighted panel.
func ActiveBox(content string, width int) string {
	return Panel(ToneActive, "", content, width)
}

// TitledBox renders content in a neutral panel with a title.
func TitledBox(title, content string, width int) string {
	return Panel(ToneNeutral, title, content, width)
}

// SuccessBox renders a confirmation message.
func SuccessBox(title, message string, width int) string {
	return Panel(ToneSuccess, title, fg(pal.Text).Render(message), width)
}

// ErrorBox renders an error message.
func ErrorBox(title, message string, width int) string {
	return Panel(ToneError, title, fg(pal.Text).Render(message), width)
}

// Field is one label/value line of a detail panel.
type Field struct {
	Label string
	Value string
}

// Fields renders label/value pairs with aligned labels inside a titled panel.
// Long labels and values are cut to keep every line inside the panel.
func Fields(title string, rows []Field, width int) string {
	if len(rows) == 0 {
		return ""
	}

	labelW := 0
	for _, r := range rows {
		labelW = max(labelW, ansi.StringWidth(SanitizeOneLine(r.Label)))
	}
	labelW = min(labelW, 24)
	valueW := 0
	if inner := BoxContentWidth(width); inner > 0 {
		labelW = min(labelW, max(inner/2, 4))
		valueW = max(inner-labelW-2, 4)
	}

	labelStyle := fg(pal.Label).Bold(true)
	valueStyle := fg(pal.Text)
	lines := make([]string, len(rows))
	for i, r := range rows {
		label := padRight(ClampTextWidth(r.Label, labelW), labelW)
		lines[i] = labelStyle.Render(label) + "  " + valueStyle.Render(ClampTextWidth(r.Value, valueW))
	}
	return Panel(ToneNeutral, title, strings.Join(lines, "\n"), width)
}

// InfoRow renders a single "label: value" line.
func InfoRow(label, value string) string {
	return fg(pal.Muted).Render(SanitizeOneLine(label)+": ") + fg(pal.Text).Render(SanitizeOneLine(value))
}

// Indent prefixes every line of s with n spaces.
func Indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}

// CenterLine centers a single line within the panel width.
func CenterLine(s string, width int) string {
	gap := boxWidth(width) - ansi.StringWidth(s)
	if gap < 2 {
		return s
	}
	return strings.Repeat(" ", gap/2) + s
}
