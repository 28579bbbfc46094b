package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/eko/internal/stderr"
)

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// WaitHydrated returns a command that fires once the store is hydrated.
func (m Model) WaitHydrated() tea.Cmd {
	return waitForChannel(m.deps.Playback.Hydrated(), func(struct{}, bool) tea.Msg {
		return HydratedMsg{}
	})
}

// WatchServiceEvents returns a command that waits for the next playback
// store event. Handlers re-arm it after each message.
func (m Model) WatchServiceEvents() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateChangedMsg(e)
		case e := <-sub.TrackChanged:
			return ServiceTrackChangedMsg(e)
		case e := <-sub.PositionChanged:
			return ServicePositionChangedMsg(e)
		case e := <-sub.ModeChanged:
			return ServiceModeChangedMsg(e)
		case e := <-sub.QueueChanged:
			return ServiceQueueChangedMsg(e)
		case e := <-sub.Error:
			return ServiceErrorMsg(e)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// WatchCatalogReloads returns a command that waits for the next reload result.
func (m Model) WatchCatalogReloads() tea.Cmd {
	return waitForChannel(m.deps.Reloads, func(err error, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return CatalogReloadedMsg{Err: err}
	})
}

// WatchStderr returns a command that waits for stderr output from the audio backend.
func WatchStderr() tea.Cmd {
	return waitForChannel(stderr.Messages, func(line string, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	})
}
