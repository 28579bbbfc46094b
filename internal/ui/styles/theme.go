package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // Terracotta - playing track, active states
	Secondary lipgloss.Color // Sage - category labels, gradients

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	// Backgrounds
	BgBase   lipgloss.Color // Overlay backdrop
	BgCursor lipgloss.Color

	// Borders
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Title    lipgloss.Style
	Playing  lipgloss.Style // Currently playing track
	Category lipgloss.Style
	Cursor   lipgloss.Style
	Backdrop lipgloss.Style // Full-screen player background
	Toast    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#d67c66"),
	Secondary: lipgloss.Color("#5c7a64"),

	FgBase:   lipgloss.Color("#f4f6f0"),
	FgMuted:  lipgloss.Color("#9aa59f"),
	FgSubtle: lipgloss.Color("#5c6b65"),

	BgBase:   lipgloss.Color("#1a3c34"),
	BgCursor: lipgloss.Color("#2a4d44"),

	Border:      lipgloss.Color("#5c6b65"),
	BorderFocus: lipgloss.Color("#d67c66"),

	Success: lipgloss.Color("#7fb08a"),
	Error:   lipgloss.Color("#e06c5a"),
	Warning: lipgloss.Color("#e8b44c"),
}

// solidTheme replaces the dim tones with opaque, high-contrast ones for
// users who asked for reduced transparency.
var solidTheme = Theme{
	Primary:   lipgloss.Color("#ff9b82"),
	Secondary: lipgloss.Color("#a8d5b5"),

	FgBase:   lipgloss.Color("#ffffff"),
	FgMuted:  lipgloss.Color("#e8e4d9"),
	FgSubtle: lipgloss.Color("#dbece5"),

	BgBase:   lipgloss.Color("#000000"),
	BgCursor: lipgloss.Color("#4a453e"),

	Border:      lipgloss.Color("#e8e4d9"),
	BorderFocus: lipgloss.Color("#ff9b82"),

	Success: lipgloss.Color("#a8d5b5"),
	Error:   lipgloss.Color("#ff8070"),
	Warning: lipgloss.Color("#ffd27a"),
}

var active = &defaultTheme

// T returns the active theme.
func T() *Theme {
	return active
}

// SetReduceTransparency switches between the default and the solid theme.
func SetReduceTransparency(on bool) {
	if on {
		active = &solidTheme
		return
	}
	active = &defaultTheme
}

// ReduceTransparency reports whether the solid theme is active.
func ReduceTransparency() bool {
	return active == &solidTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Playing: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Category: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Italic(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Backdrop: lipgloss.NewStyle().
			Background(t.BgBase).
			Foreground(t.FgBase),
		Toast: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Foreground(t.FgBase).
			Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}
