package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/eko/internal/ui/render"
)

var (
	filledBlock = "━"
	emptyBlock  = "─"
)

// ratio is the played fraction, clamped to [0, 1].
func ratio(position, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	return min(max(float64(position)/float64(duration), 0), 1)
}

// RenderBar renders only the bar of the given width.
func RenderBar(position, duration time.Duration, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(float64(width) * ratio(position, duration))
	return progressBarFilled().Render(strings.Repeat(filledBlock, filled)) +
		progressBarEmpty().Render(strings.Repeat(emptyBlock, width-filled))
}

// RenderProgressBar renders "1:23  ━━━━───  4:56" in the given width.
// An unknown duration renders the elapsed time only.
func RenderProgressBar(position, duration time.Duration, width int) string {
	posStr := render.Clock(position)
	if duration <= 0 {
		return posStr
	}
	durStr := render.Clock(duration)

	fixedWidth := lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth
	if barWidth < 3 {
		return posStr + " / " + durStr
	}
	return posStr + "  " + RenderBar(position, duration, barWidth) + "  " + durStr
}
