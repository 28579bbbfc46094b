// internal/app/view.go
package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/eko/internal/errmsg"
	"github.com/llehouerou/eko/internal/ui/playerbar"
	"github.com/llehouerou/eko/internal/ui/popup"
	"github.com/llehouerou/eko/internal/ui/styles"
)

// View implements tea.Model. Nothing is drawn until the store is hydrated
// so the first frame already shows the restored track.
func (m Model) View() string {
	if !m.hydrated || m.width == 0 || m.height == 0 {
		return ""
	}
	if m.loadErr != nil {
		d := popup.Dialog{
			Title:   "Catalog unavailable",
			Content: styles.T().S().Error.Render(errmsg.Format(errmsg.OpCatalogLoad, m.loadErr)),
			Footer:  "Fix the catalog file to reload · q quit",
		}
		return d.Render(m.width, m.height)
	}

	ps := m.deps.Playback.Snapshot()
	state := playerbar.NewState(ps, m.lyrics)
	state.VideoURL = m.deps.VideoURL
	state.Spinner = m.spinner.View()

	var view string
	switch {
	case ps.IsPlayerVisible:
		view = playerbar.RenderExpanded(state, m.width, m.height)
	case state.HasTrack:
		view = m.Browser.View() + "\n" + playerbar.Render(state, m.width)
	default:
		view = m.Browser.View()
	}

	if m.Popup != nil {
		view = popup.Compose(view, popup.Frame(m.Popup.View(), m.width, m.height), m.width)
	}
	if m.notification != nil {
		view = popup.Compose(view, m.renderToast(m.notification.Message), m.width)
	}
	return view
}

// renderToast places the notification in the top-right corner.
func (m Model) renderToast(text string) string {
	box := styles.T().S().Toast.Render(text)
	w := lipgloss.Width(box)
	if w > m.width {
		return ""
	}
	pad := strings.Repeat(" ", m.width-w)
	lines := strings.Split(box, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return "\n" + strings.Join(lines, "\n")
}
