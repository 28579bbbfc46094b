package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/eko/internal/ui/styles"
)

func barStyle() lipgloss.Style {
	return styles.PanelStyle(false)
}

func titleStyle() lipgloss.Style {
	return styles.T().S().Title
}

func categoryStyle() lipgloss.Style {
	return styles.T().S().Category
}

func metaStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func statusStyle() lipgloss.Style {
	return styles.T().S().Playing
}

func progressBarFilled() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}

func progressBarEmpty() lipgloss.Style {
	return styles.T().S().Subtle
}
