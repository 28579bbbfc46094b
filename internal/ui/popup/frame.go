package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/eko/internal/ui/styles"
)

const (
	screenMargin = 4 // kept free around a frame
	frameCols    = 6 // border and horizontal padding
	frameRows    = 4 // border and vertical padding
)

// ContentSize is the largest content a Frame shows on a screen of the
// given size.
func ContentSize(screenW, screenH int) (width, height int) {
	return max(screenW-screenMargin-frameCols, 1), max(screenH-screenMargin-frameRows, 1)
}

// Frame wraps content in a rounded border and centers it on the screen.
// Content beyond ContentSize is clipped.
func Frame(content string, screenW, screenH int) string {
	maxW, maxH := ContentSize(screenW, screenH)
	lines := strings.Split(content, "\n")
	if len(lines) > maxH {
		lines = lines[:maxH]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, maxW, "…")
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
	return Center(box, screenW, screenH)
}

// Center offsets a pre-rendered block to the middle of the screen.
func Center(block string, screenW, screenH int) string {
	lines := strings.Split(block, "\n")
	top := max((screenH-len(lines))/2, 0)
	left := max((screenW-lipgloss.Width(block))/2, 0)

	var sb strings.Builder
	for range top {
		sb.WriteString("\n")
	}
	indent := strings.Repeat(" ", left)
	for i, l := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(indent + l)
	}
	return sb.String()
}

// Compose draws overlay on top of base, row by row. Leading and trailing
// spaces of an overlay row are transparent.
func Compose(base, overlay string, width int) string {
	rows := strings.Split(base, "\n")
	for i, line := range strings.Split(overlay, "\n") {
		if i >= len(rows) {
			break
		}
		plain := ansi.Strip(line)
		body := strings.Trim(plain, " ")
		if body == "" {
			continue
		}
		start := len(plain) - len(strings.TrimLeft(plain, " "))
		end := start + ansi.StringWidth(body)
		rows[i] = splice(rows[i], ansi.Cut(line, start, end), start, end, width)
	}
	return strings.Join(rows, "\n")
}

// splice puts mid over columns [start, end) of row. A wide rune cut by
// either edge becomes a space so the row stays width columns wide.
func splice(row, mid string, start, end, width int) string {
	if w := ansi.StringWidth(row); w < width {
		row += strings.Repeat(" ", width-w)
	}
	left := ansi.Cut(row, 0, start)
	if w := ansi.StringWidth(left); w < start {
		left += strings.Repeat(" ", start-w)
	}
	if end >= width {
		return left + mid
	}
	right := ansi.Cut(row, end, width)
	want := width - end
	switch w := ansi.StringWidth(right); {
	case w > want:
		right = " " + ansi.Cut(right, w-want+1, w)
	case w < want:
		right = strings.Repeat(" ", want-w) + right
	}
	return left + mid + right
}
