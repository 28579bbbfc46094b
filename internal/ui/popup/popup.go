// Package popup draws modal panels over the main view and carries their
// replies back to the app.
package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is a modal panel. While one is open it receives every key and
// answers with CloseMsg or ForwardMsg when the app has to act.
type Popup interface {
	Update(msg tea.KeyMsg) tea.Cmd
	View() string
	SetSize(width, height int)
}

// CloseMsg dismisses the open popup.
type CloseMsg struct{}

// ForwardMsg hands a key the popup does not bind back to the app.
type ForwardMsg struct {
	Key tea.KeyMsg
}

// Close is a command producing CloseMsg.
func Close() tea.Msg {
	return CloseMsg{}
}

// Forward returns a command producing ForwardMsg for key.
func Forward(key tea.KeyMsg) tea.Cmd {
	return func() tea.Msg { return ForwardMsg{Key: key} }
}
