package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
 ██████   █████   ██████ ██   ██  ██████  ███████ ███████ ██  ██████ ███████
 ██   ██ ██   ██ ██      ██  ██  ██    ██ ██      ██      ██ ██      ██
 ██████  ███████ ██      █████   ██    ██ █████   █████   ██ ██      █████
 ██   ██ ██   ██ ██      ██  ██  ██    ██ ██      ██      ██ ██      ██
 ██████  ██   ██  ██████ ██   ██  ██████  ██      ██      ██  ██████ ███████`

const bannerSubtitle = "Panel de administración • Delivery"

// RenderBanner returns the styled ASCII banner. Narrow terminals get the
// plain title instead of the art.
func RenderBanner(width int) string {
	lines := splitLines(bannerArt)

	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}

	var rendered strings.Builder
	if width > 0 && width < maxWidth {
		rendered.WriteString(BannerStyle.Render("BACKOFFICE") + "\n")
		maxWidth = lipgloss.Width("BACKOFFICE")
	} else {
		for _, line := range lines {
			if line == "" {
				continue
			}
			rendered.WriteString(BannerStyle.Render(line) + "\n")
		}
	}

	subtitleWidth := lipgloss.Width(bannerSubtitle)
	blockWidth := maxWidth
	if blockWidth < subtitleWidth {
		blockWidth = subtitleWidth
	}

	subtitle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(bannerSubtitle)

	underline := lipgloss.NewStyle().
		Foreground(ColorBorder).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(strings.Repeat("─", subtitleWidth))

	return "\n" + rendered.String() + "\n" + subtitle + "\n" + underline + "\n"
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
