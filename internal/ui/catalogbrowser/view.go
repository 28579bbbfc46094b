package catalogbrowser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/eko/internal/icons"
	"github.com/llehouerou/eko/internal/ui/render"
	"github.com/llehouerou/eko/internal/ui/styles"
)

const (
	borderCols = 2
	borderRows = 2
	chromeRows = borderRows + 2 // breadcrumb and separator
)

// View renders the browser panel at its current size.
func (m Model) View() string {
	width, height := m.width, m.height
	if width <= 0 || height <= 0 {
		return ""
	}
	innerWidth := max(width-borderCols, 0)
	listHeight := max(height-chromeRows, 0)

	t := styles.T()
	header := styles.Heading(render.Truncate(m.Breadcrumb(), innerWidth))
	lines := []string{
		render.Pad(header, innerWidth),
		t.S().Subtle.Render(render.Separator(innerWidth)),
	}

	if m.Len() == 0 {
		lines = append(lines, t.S().Muted.Render(render.Fit(m.emptyText(), innerWidth)))
	}
	for i := range listHeight {
		if m.Len() == 0 {
			break
		}
		idx := i + m.sel.top
		if idx >= m.Len() {
			lines = append(lines, strings.Repeat(" ", innerWidth))
			continue
		}
		lines = append(lines, m.renderItem(idx, innerWidth))
	}

	return styles.PanelStyle(m.focused).
		Width(innerWidth).
		Height(height - borderRows).
		Render(strings.Join(lines, "\n"))
}

func (m Model) emptyText() string {
	switch m.level {
	case LevelFavorites:
		return "No favorites yet, press f while a track plays"
	case LevelTracks:
		return "This playlist is empty"
	}
	return "Nothing here"
}

func (m Model) renderItem(idx, width int) string {
	isCursor := idx == m.sel.pos
	var (
		name   string
		suffix string
		id     string
	)

	switch m.level {
	case LevelContexts:
		name = icons.Context(m.contexts[idx].Title)
	case LevelPlaylists:
		p := m.playlists[idx]
		name = icons.Playlist(p.Title)
		if m.isLocked(p.ID) {
			suffix = icons.Current().Locked
		}
	case LevelTracks:
		tr := m.tracks[idx]
		id = tr.ID
		name = icons.Track(fmt.Sprintf("%02d. %s", idx+1, tr.Title), tr.IsVideo())
	case LevelFavorites:
		tr := m.favorites[idx].Track
		id = tr.ID
		name = icons.Track(tr.Title, tr.IsVideo())
		if tr.Category != "" {
			name += " · " + tr.Category
		}
	}
	if id != "" && m.isFavorite(id) {
		suffix = icons.Current().Favorite
	}

	prefix := "  "
	if isCursor {
		prefix = "> "
	}

	nameWidth := width - lipgloss.Width(prefix)
	if suffix != "" {
		nameWidth -= lipgloss.Width(suffix) + 1
	}
	line := prefix + render.Fit(name, max(nameWidth, 0))
	if suffix != "" {
		line += " " + suffix
	}

	s := styles.T().S()
	switch {
	case isCursor && m.focused:
		return s.Cursor.Render(line)
	case id != "" && id == m.playingID:
		return s.Playing.Render(line)
	default:
		return s.Base.Render(line)
	}
}
