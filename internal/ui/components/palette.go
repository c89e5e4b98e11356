package components

import "github.com/charmbracelet/lipgloss"

// Palette holds the colors every component renders with.
type Palette struct {
	Accent  lipgloss.Color
	Label   lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Surface lipgloss.Color
	KeyCap  lipgloss.Color
	Success lipgloss.Color
	Danger  lipgloss.Color
}

// DarkPalette is the default look.
var DarkPalette = Palette{
	Accent:  "#d4763b",
	Label:   "#436b77",
	Text:    "#d7d9da",
	Muted:   "#9ba0bf",
	Border:  "#273540",
	Surface: "#1f2530",
	KeyCap:  "#888ba4",
	Success: "#3f866b",
	Danger:  "#e06c75",
}

// LightPalette suits light terminal backgrounds.
var LightPalette = Palette{
	Accent:  "#b35418",
	Label:   "#2f5562",
	Text:    "#1c1c22",
	Muted:   "#5d6078",
	Border:  "#b9c0c7",
	Surface: "#e4e7ea",
	KeyCap:  "#5d6078",
	Success: "#2d6b52",
	Danger:  "#b3363f",
}

var pal = DarkPalette

// SetPalette switches the colors of all components rendered afterwards.
func SetPalette(p Palette) {
	pal = p
}

// CurrentPalette returns the active palette.
func CurrentPalette() Palette {
	return pal
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func bordered(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(1, 2)
}
