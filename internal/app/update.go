// internal/app/update.go
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/eko/internal/errmsg"
	"github.com/llehouerou/eko/internal/playback"
	"github.com/llehouerou/eko/internal/ui/playerbar"
	"github.com/llehouerou/eko/internal/ui/popup"
	"github.com/llehouerou/eko/internal/ui/styles"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case HydratedMsg:
		m.hydrated = true
		styles.SetReduceTransparency(m.deps.Playback.Snapshot().ReduceTransparency)
		m.syncTrack()
		m.resize()
		return m, nil

	case PlaybackMessage:
		return m.handlePlaybackMsg(msg)

	case CatalogMessage:
		return m.handleCatalogMsg(msg)

	case popup.CloseMsg:
		m.Popup = nil
		return m, nil

	case popup.ForwardMsg:
		return m.dispatchKey(msg.Key)

	case StderrMsg:
		return m, tea.Batch(m.notify(msg.Line), WatchStderr())

	case spinner.TickMsg:
		// the spinner only runs while a track is loading
		if m.deps.Playback.Snapshot().State != playback.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NotificationClearMsg:
		if m.notification != nil && m.notification.ID == msg.ID {
			m.notification = nil
		}
		return m, nil
	}
	return m, nil
}

// handlePlaybackMsg routes playback store events. Every branch re-arms the
// subscription except ServiceClosedMsg.
func (m Model) handlePlaybackMsg(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.WatchServiceEvents()}

	switch msg := msg.(type) {
	case ServiceClosedMsg:
		return m, nil
	case ServiceTrackChangedMsg:
		m.syncTrack()
		m.resize()
	case ServiceStateChangedMsg:
		if msg.Current == playback.StateLoading && msg.Previous != playback.StateLoading {
			cmds = append(cmds, m.spinner.Tick)
		}
	case ServicePositionChangedMsg:
		m.LyricsView.SetPosition(msg.Position)
	case ServiceErrorMsg:
		e := playback.ErrorEvent(msg)
		m.deps.Log.Warn().Str("kind", e.Kind.String()).Str("error", e.Message).Msg("playback error")
		if text := e.UserMessage(); text != "" {
			cmds = append(cmds, m.notify(text))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleCatalogMsg(msg CatalogMessage) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.WatchCatalogReloads()}

	if msg, ok := msg.(CatalogReloadedMsg); ok {
		switch {
		case msg.Err != nil:
			cmds = append(cmds, m.notify(errmsg.Format(errmsg.OpCatalogReload, msg.Err)))
		default:
			if err := m.Browser.Refresh(context.Background()); err != nil {
				m.loadErr = err
			} else {
				m.loadErr = nil
			}
			cmds = append(cmds, m.notify("Catalog updated"))
		}
	}
	return m, tea.Batch(cmds...)
}

// resize hands the browser whatever the mini player leaves free.
func (m *Model) resize() {
	h := m.height
	if m.deps.Playback.CurrentTrack() != nil {
		h -= playerbar.Height
	}
	m.Browser.SetSize(m.width, max(h, 0))
	m.Help.SetSize(m.width, m.height)
	m.LyricsView.SetSize(m.width, m.height)
}
