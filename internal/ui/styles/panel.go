package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the bordered panel style for the active theme.
func PanelStyle(focused bool) lipgloss.Style {
	color := T().Border
	if focused {
		color = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color)
}
