// internal/app/handlers_browser.go
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/eko/internal/errmsg"
	"github.com/llehouerou/eko/internal/keymap"
)

func (m *Model) handleBrowserAction(action keymap.Action) (tea.Cmd, bool) {
	// the full-screen player swallows navigation
	if m.deps.Playback.Snapshot().IsPlayerVisible {
		return nil, false
	}
	ctx := context.Background()

	switch action {
	case keymap.ActionMoveUp:
		m.Browser.Move(-1)
	case keymap.ActionMoveDown:
		m.Browser.Move(1)
	case keymap.ActionBack:
		m.Browser.Back()
	case keymap.ActionSelect:
		play, err := m.Browser.Enter(ctx)
		if err != nil {
			return m.notify(errmsg.Format(errmsg.OpCatalogLoad, err)), true
		}
		if play != nil {
			return m.play(play), true
		}
	case keymap.ActionShowFavorites:
		if err := m.Browser.ShowFavorites(ctx); err != nil {
			return m.notify(errmsg.Format(errmsg.OpCatalogLoad, err)), true
		}
	default:
		return nil, false
	}
	return nil, true
}
