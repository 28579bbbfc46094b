// Package app contains the root bubbletea model of the player.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/eko/internal/playback"
)

// Message category interfaces for type-based routing in Update().

// PlaybackMessage is implemented by messages coming from the playback store.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// CatalogMessage is implemented by messages about the catalog file.
type CatalogMessage interface {
	tea.Msg
	catalogMessage()
}

// HydratedMsg is sent once the store has restored its persisted state.
type HydratedMsg struct{}

// ServiceStateChangedMsg is sent when the playback phase changes.
type ServiceStateChangedMsg playback.StateChange

func (ServiceStateChangedMsg) playbackMessage() {}

// ServiceTrackChangedMsg is sent when a different track becomes current.
type ServiceTrackChangedMsg playback.TrackChange

func (ServiceTrackChangedMsg) playbackMessage() {}

// ServicePositionChangedMsg is sent on time updates and seeks.
type ServicePositionChangedMsg playback.PositionChange

func (ServicePositionChangedMsg) playbackMessage() {}

// ServiceModeChangedMsg is sent when repeat or shuffle changes.
type ServiceModeChangedMsg playback.ModeChange

func (ServiceModeChangedMsg) playbackMessage() {}

// ServiceQueueChangedMsg is sent when the queue is replaced.
type ServiceQueueChangedMsg playback.QueueChange

func (ServiceQueueChangedMsg) playbackMessage() {}

// ServiceErrorMsg is sent when the store surfaces a playback error.
type ServiceErrorMsg playback.ErrorEvent

func (ServiceErrorMsg) playbackMessage() {}

// ServiceClosedMsg is sent when the playback service is closed.
type ServiceClosedMsg struct{}

func (ServiceClosedMsg) playbackMessage() {}

// CatalogReloadedMsg reports the outcome of a catalog file reload.
type CatalogReloadedMsg struct {
	Err error
}

func (CatalogReloadedMsg) catalogMessage() {}

// StderrMsg is sent when stderr output is captured from the audio backend.
type StderrMsg struct {
	Line string
}

// Notification represents a temporary notification message.
type Notification struct {
	ID      int64
	Message string
}

// NotificationClearMsg is sent to clear a specific notification after a delay.
type NotificationClearMsg struct {
	ID int64
}

// NotificationDuration is how long notifications are displayed.
const NotificationDuration = 3 * time.Second

// NotificationClearCmd returns a command that clears the notification after a delay.
func NotificationClearCmd(id int64) tea.Cmd {
	return tea.Tick(NotificationDuration, func(time.Time) tea.Msg {
		return NotificationClearMsg{ID: id}
	})
}
