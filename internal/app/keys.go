// internal/app/keys.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/eko/internal/keymap"
)

// handleKey dispatches a key press. Every key counts as a user gesture.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.deps.Gesture()

	if m.Popup != nil {
		return m, m.Popup.Update(msg)
	}
	return m.dispatchKey(msg)
}

// dispatchKey runs the key through the action handlers.
func (m Model) dispatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.resolver.Resolve(msg.String())
	if action == keymap.ActionQuit {
		return m, tea.Quit
	}
	if !m.hydrated || action == "" {
		return m, nil
	}

	// first handler to claim the action wins
	for _, h := range []func(keymap.Action) (tea.Cmd, bool){
		m.handleGlobalAction,
		m.handlePlaybackAction,
		m.handleBrowserAction,
	} {
		if cmd, ok := h(action); ok {
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) handleGlobalAction(action keymap.Action) (tea.Cmd, bool) {
	if action != keymap.ActionHelp {
		return nil, false
	}
	m.Help.SetSize(m.width, m.height)
	m.Popup = m.Help
	return nil, true
}
