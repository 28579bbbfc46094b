package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Heading renders bold text fading from the theme's primary color to its
// secondary one. The solid theme draws it flat in the primary color.
func Heading(text string) string {
	if text == "" {
		return ""
	}
	t := T()
	bold := lipgloss.NewStyle().Bold(true)

	var clusters []string
	for g := uniseg.NewGraphemes(text); g.Next(); {
		clusters = append(clusters, g.Str())
	}
	colors := blend(t.Primary, t.Secondary, len(clusters))
	if ReduceTransparency() || colors == nil {
		return bold.Foreground(t.Primary).Render(text)
	}

	var b strings.Builder
	for i, c := range clusters {
		b.WriteString(bold.Foreground(colors[i]).Render(c))
	}
	return b.String()
}

// blend returns n colors evenly spaced from a to b in HCL space, or nil
// when n < 2 or either end is not a #rrggbb color.
func blend(a, b lipgloss.Color, n int) []lipgloss.Color {
	if n < 2 {
		return nil
	}
	from, err := colorful.Hex(string(a))
	if err != nil {
		return nil
	}
	to, err := colorful.Hex(string(b))
	if err != nil {
		return nil
	}
	out := make([]lipgloss.Color, n)
	for i := range out {
		c := from.BlendHcl(to, float64(i)/float64(n-1)).Clamped()
		out[i] = lipgloss.Color(c.Hex())
	}
	return out
}
