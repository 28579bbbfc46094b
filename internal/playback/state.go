// internal/playback/state.go
package playback

import (
	"time"

	"github.com/llehouerou/eko/internal/playlist"
)

// State is the playback phase of the current track.
//
//	Idle → Loading → Playing ⇄ Paused → Ended | next track → Idle | Loading
//
// Loading and Playing both report IsPlaying: the UI only needs to know
// whether to show a pause control.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
	StatePaused
	StateEnded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// IsPlaying returns true for Loading and Playing.
func (s State) IsPlaying() bool {
	return s == StateLoading || s == StatePlaying
}

// RepeatMode is stored and persisted; no transition reads it.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatAll:
		return "All"
	case RepeatOne:
		return "One"
	default:
		return "Unknown"
	}
}

// Valid returns true for known modes.
func (m RepeatMode) Valid() bool {
	return m >= RepeatOff && m <= RepeatOne
}

// PlaybackState is a copy of the store's root state.
type PlaybackState struct {
	CurrentTrack       *playlist.Track
	State              State
	IsPlaying          bool
	CurrentTime        time.Duration
	Duration           time.Duration
	Volume             float64
	IsMuted            bool
	Favorites          []string
	IsPlayerVisible    bool
	Queue              []playlist.Track
	RepeatMode         RepeatMode
	Shuffle            bool
	ReduceTransparency bool
}

// EffectiveVolume is 0 when muted, Volume otherwise.
func (p PlaybackState) EffectiveVolume() float64 {
	if p.IsMuted {
		return 0
	}
	return p.Volume
}

// Snapshot is the durable subset of the state. Playing flag, position, mute
// and overlay visibility are session-only and never part of it.
type Snapshot struct {
	CurrentTrack       *playlist.Track
	Queue              []playlist.Track
	Volume             float64
	Favorites          []string
	RepeatMode         RepeatMode
	Shuffle            bool
	ReduceTransparency bool
}

// Restore carries the fields recovered from durable storage. A nil field
// was absent or unusable and keeps its default.
type Restore struct {
	CurrentTrack       *playlist.Track
	Queue              []playlist.Track
	Volume             *float64
	Favorites          []string
	RepeatMode         *RepeatMode
	Shuffle            *bool
	ReduceTransparency *bool
}

// Persister receives the durable snapshot after every change to it.
type Persister interface {
	Persist(Snapshot) error
}
