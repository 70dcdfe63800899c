package tui

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"mcmap/internal/render"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
)

// popupColor is the hover popup's text color on the map background.
func popupColor(t render.Theme) color.RGBA {
	if t == render.Light {
		return color.RGBA{0x22, 0x22, 0x22, 0xff}
	}
	return color.RGBA{0xe6, 0xe6, 0xe6, 0xff}
}
