package playback

import (
	"time"

	"github.com/llehouerou/eko/internal/errmsg"
	"github.com/llehouerou/eko/internal/player"
	"github.com/llehouerou/eko/internal/playlist"
)

// StateChange is emitted when the playback phase changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when a different track becomes current, or when
// the current track is cleared by Stop (Current is nil).
//
// The app handles track-related side effects (now-playing metadata, lyrics,
// video surface loading) in response to this event.
type TrackChange struct {
	Previous *playlist.Track
	Current  *playlist.Track
}

// QueueChange is emitted when the queue is replaced.
type QueueChange struct {
	Tracks []playlist.Track
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	RepeatMode RepeatMode
	Shuffle    bool
}

// PositionChange is emitted on time updates and seeks.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// ErrorEvent re-exports a surfaced adapter error.
type ErrorEvent struct {
	Kind    player.Kind
	Message string
	Track   *playlist.Track
}

// UserMessage is the text shown to the user for this error.
func (e ErrorEvent) UserMessage() string {
	return errmsg.Playback(e.Kind)
}
