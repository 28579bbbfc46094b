// Package access decides whether a playlist may be played.
package access

import "slices"

// Gate answers entitlement questions. Playback itself never consults it;
// the app does before starting a track.
type Gate interface {
	Entitled(playlistID string) bool
}

// StaticGate grants everything to subscribers and a fixed list of free
// playlists to everyone else.
type StaticGate struct {
	Subscriber bool
	Free       []string
}

func (g StaticGate) Entitled(playlistID string) bool {
	return g.Subscriber || slices.Contains(g.Free, playlistID)
}
