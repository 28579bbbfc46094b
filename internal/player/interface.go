// internal/player/interface.go
package player

import (
	"context"
	"time"
)

// Engine is the underlying media primitive: exactly one playable handle.
// Load and Play may block; the Adapter always calls them off the caller's
// goroutine.
type Engine interface {
	// Load replaces the handle's source and resets its position.
	Load(ctx context.Context, locator string) error
	// Play starts or resumes output of the loaded source.
	Play(ctx context.Context) error
	Pause()
	Paused() bool
	Seek(pos time.Duration) error
	SetVolume(level float64)
	// Unload detaches the source so the handle holds nothing.
	Unload()
	Loaded() bool
	Position() time.Duration
	Duration() time.Duration
	// Ended is signalled when the loaded source plays to its end.
	Ended() <-chan struct{}
}

// Verify implementations at compile time.
var (
	_ Engine = (*BeepEngine)(nil)
	_ Engine = (*MockEngine)(nil)
)
