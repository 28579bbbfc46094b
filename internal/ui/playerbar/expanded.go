package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/eko/internal/icons"
	"github.com/llehouerou/eko/internal/playback"
	"github.com/llehouerou/eko/internal/ui/render"
	"github.com/llehouerou/eko/internal/ui/styles"
)

const maxExpandedWidth = 72

// RenderExpanded renders the full-screen player filling width x height.
func RenderExpanded(s State, width, height int) string {
	t := styles.T()
	contentWidth := min(max(width-4, 0), maxExpandedWidth)

	lines := []string{
		styles.Heading("Now playing"),
		"",
	}

	if !s.HasTrack {
		lines = append(lines, metaStyle().Render("Nothing is playing"))
		return place(lines, width, height)
	}

	title := render.Truncate(s.Title, contentWidth)
	if s.Favorite {
		title += " " + statusStyle().Render(icons.Current().Favorite)
	}
	lines = append(lines, titleStyle().Render(title))
	if s.Artist != "" {
		lines = append(lines, metaStyle().Render(render.Truncate(s.Artist, contentWidth)))
	}
	if s.Category != "" {
		lines = append(lines, categoryStyle().Render(render.Truncate(s.Category, contentWidth)))
	}

	if s.Description != "" {
		desc := lipgloss.NewStyle().
			Width(contentWidth).
			Align(lipgloss.Center).
			Foreground(t.FgMuted).
			Render(render.Sanitize(s.Description))
		lines = append(lines, "", desc)
	}

	lines = append(lines, "")
	if s.Lyric != "" {
		lines = append(lines, statusStyle().Render(render.Truncate(s.Lyric, contentWidth)))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, "")

	if s.Video {
		hint := "Playing on the video surface"
		if s.VideoURL != "" {
			hint += ": " + s.VideoURL
		}
		lines = append(lines, metaStyle().Render(render.Truncate(hint, contentWidth)))
	} else {
		lines = append(lines, RenderProgressBar(s.Position, s.Duration, contentWidth))
	}

	lines = append(lines, "", renderControls(s), "",
		metaStyle().Render("esc close · space play/pause · f favorite · y share"))

	return place(lines, width, height)
}

func renderControls(s State) string {
	ic := icons.Current()
	parts := []string{statusStyle().Render(s.status())}

	if s.Shuffle {
		parts = append(parts, statusStyle().Render(ic.Shuffle))
	} else {
		parts = append(parts, progressBarEmpty().Render(ic.Shuffle))
	}
	switch s.RepeatMode {
	case playback.RepeatAll:
		parts = append(parts, statusStyle().Render(ic.RepeatAll))
	case playback.RepeatOne:
		parts = append(parts, statusStyle().Render(ic.RepeatOne))
	default:
		parts = append(parts, progressBarEmpty().Render(ic.RepeatAll))
	}
	if !s.Video {
		parts = append(parts, RenderVolumeCompact(s.Volume, s.Muted))
	}
	return strings.Join(parts, "   ")
}

func place(lines []string, width, height int) string {
	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return styles.T().S().Backdrop.Render(
		lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block,
			lipgloss.WithWhitespaceBackground(styles.T().BgBase)),
	)
}
