package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/backoffice/cli/internal/ui/components"
)

// --- Theme Colors ---

var (
	ColorPrimary    = lipgloss.Color("#d4763b") // orange
	ColorSecondary  = lipgloss.Color("#436b77") // teal
	ColorAccent     = lipgloss.Color("#a7754e") // warm
	ColorBackground = lipgloss.Color("#16161d") // dark
	ColorText       = lipgloss.Color("#d7d9da") // main text
	ColorMuted      = lipgloss.Color("#9ba0bf") // muted text
	ColorSuccess    = lipgloss.Color("#3f866b") // green
	ColorError      = lipgloss.Color("#e06c75") // red
	ColorWarning    = lipgloss.Color("#c78854") // warning
	ColorBorder     = lipgloss.Color("#273540") // border
)

// --- Reusable Styles ---

var (
	BannerStyle      lipgloss.Style
	TabActiveStyle   lipgloss.Style
	TabInactiveStyle lipgloss.Style
	SelectedStyle    lipgloss.Style
	NormalStyle      lipgloss.Style
	MutedStyle       lipgloss.Style
	SuccessStyle     lipgloss.Style
	ErrorStyle       lipgloss.Style
	WarningStyle     lipgloss.Style
	AccentStyle      lipgloss.Style
	HeaderStyle      lipgloss.Style
	LabelStyle       lipgloss.Style
	ChipStyle        lipgloss.Style
)

func init() {
	buildStyles()
}

// ApplyTheme switches the palette. Unknown names keep the dark theme.
func ApplyTheme(name string) {
	switch name {
	case "light":
		ColorPrimary = lipgloss.Color("#b35418")
		ColorSecondary = lipgloss.Color("#2f5562")
		ColorBackground = lipgloss.Color("#f4f4f4")
		ColorText = lipgloss.Color("#1c1c22")
		ColorMuted = lipgloss.Color("#5d6078")
		ColorBorder = lipgloss.Color("#b9c0c7")
		components.SetPalette(components.LightPalette)
	default:
		ColorPrimary = lipgloss.Color("#d4763b")
		ColorSecondary = lipgloss.Color("#436b77")
		ColorBackground = lipgloss.Color("#16161d")
		ColorText = lipgloss.Color("#d7d9da")
		ColorMuted = lipgloss.Color("#9ba0bf")
		ColorBorder = lipgloss.Color("#273540")
		components.SetPalette(components.DarkPalette)
	}
	buildStyles()
}

func buildStyles() {
	BannerStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	TabActiveStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	NormalStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	WarningStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)

	AccentStyle = lipgloss.NewStyle().
		Foreground(ColorAccent)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		PaddingBottom(1)

	LabelStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	ChipStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorSecondary).
		Padding(0, 1)
}
