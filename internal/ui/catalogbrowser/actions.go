package catalogbrowser

import "github.com/llehouerou/eko/internal/playlist"

// Play asks the app to play Track with Queue as the new queue. PlaylistID
// is the playlist Track belongs to, for entitlement checks.
type Play struct {
	Track      playlist.Track
	Queue      []playlist.Track
	PlaylistID string
}
