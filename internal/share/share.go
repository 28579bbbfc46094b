// Package share builds links that open a playlist or a track position in
// the web player.
package share

import (
	"net/url"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/eko/internal/playlist"
)

// ErrNoID is returned when the target has no id to link to.
var ErrNoID = errors.New("nothing to share")

// PlaylistLink returns <base>/player/<playlistID>, with ?ref=<ref> when ref
// is set.
func PlaylistLink(baseURL, playlistID, ref string) (string, error) {
	if playlistID == "" {
		return "", ErrNoID
	}
	u, err := join(baseURL, "player", playlistID)
	if err != nil {
		return "", err
	}
	if ref != "" {
		u.RawQuery = url.Values{"ref": {ref}}.Encode()
	}
	return u.String(), nil
}

// TrackLink returns <base>/track/<id>, with ?t=<seconds> when at is at
// least one second.
func TrackLink(baseURL string, track playlist.Track, at time.Duration) (string, error) {
	if track.ID == "" {
		return "", ErrNoID
	}
	u, err := join(baseURL, "track", track.ID)
	if err != nil {
		return "", err
	}
	if secs := int64(at / time.Second); secs > 0 {
		u.RawQuery = url.Values{"t": {strconv.FormatInt(secs, 10)}}.Encode()
	}
	return u.String(), nil
}

func join(baseURL string, elem ...string) (*url.URL, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse share base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Newf("share base url %q is not absolute", baseURL)
	}
	return u.JoinPath(elem...), nil
}
