package playback

import (
	"time"

	"github.com/llehouerou/eko/internal/player"
	"github.com/llehouerou/eko/internal/playlist"
)

// Adapter is the media handle the store drives. *player.Adapter implements it.
// Every command returns the handle generation it leaves current.
type Adapter interface {
	LoadAndPlay(locator string) uint64
	Pause() uint64
	Resume() uint64
	Stop() uint64
	Seek(pos time.Duration)
	SetVolume(level float64)
	HasSource() bool
	Events() <-chan player.Event
}

var _ Adapter = (*player.Adapter)(nil)

// Service is the single source of truth for playback state. Actions are the
// only way to mutate it.
type Service interface {
	// Playback control
	PlayTrack(track playlist.Track)
	TogglePlayPause()
	NextTrack()
	PrevTrack()
	Seek(position time.Duration)
	Stop()

	// Output
	SetVolume(level float64)
	ToggleMute()

	// Library and presentation
	ToggleFavorite(id string)
	SetPlaylist(tracks []playlist.Track)
	SetPlayerVisible(visible bool)
	SetRepeatMode(mode RepeatMode)
	SetShuffle(enabled bool)
	SetReduceTransparency(enabled bool)

	// Hydration
	Hydrate(r *Restore)
	HasHydrated() bool
	Hydrated() <-chan struct{}

	// State queries
	Snapshot() PlaybackState
	CurrentTrack() *playlist.Track
	IsPlaying() bool
	IsFavorite(id string) bool
	Queue() []playlist.Track
	EffectiveVolume() float64

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
