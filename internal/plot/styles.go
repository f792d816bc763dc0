package plot

import "github.com/charmbracelet/lipgloss"

var (
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")

	titleStyle   = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(baseDimFg)
	captionStyle = lipgloss.NewStyle().Foreground(baseDimFg).Italic(true)
)
