package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/eko/internal/ui/render"
	"github.com/llehouerou/eko/internal/ui/styles"
)

// Dialog is a small centered message box: a title, a body and a hint line.
type Dialog struct {
	Title   string
	Content string
	Footer  string
}

// Render returns the dialog centered on a screen of the given size.
func (d Dialog) Render(screenW, screenH int) string {
	t := styles.T()
	width := lipgloss.Width(d.Content)
	width = max(width, lipgloss.Width(d.Title), lipgloss.Width(d.Footer))
	width = max(min(width, screenW-screenMargin-2), 1) // border and padding

	var lines []string
	if d.Title != "" {
		lines = append(lines, render.Center(t.S().Title.Render(ansi.Truncate(d.Title, width, "…")), width), "")
	}
	for l := range strings.SplitSeq(d.Content, "\n") {
		l = ansi.Truncate(l, width, "…")
		lines = append(lines, l+strings.Repeat(" ", width-lipgloss.Width(l)))
	}
	if d.Footer != "" {
		footer := t.S().Subtle.Render(ansi.Truncate(d.Footer, width, "…"))
		lines = append(lines, "", render.Center(footer, width))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
	return Center(box, screenW, screenH)
}
