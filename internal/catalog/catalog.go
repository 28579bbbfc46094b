// Package catalog provides the read-only content tree: contexts group
// playlists, playlists hold ordered tracks.
package catalog

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/eko/internal/playlist"
)

// ErrNotFound is returned for an unknown context or playlist id.
var ErrNotFound = errors.New("not found in catalog")

// Context is a top-level theme such as "Sleep" or "Anxiety".
type Context struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	IconURL string `yaml:"icon_url"`
	Color   string `yaml:"color"`
}

// Playlist belongs to one context.
type Playlist struct {
	ID          string `yaml:"id"`
	ContextID   string `yaml:"context_id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	CoverURL    string `yaml:"cover_url"`
}

// Entry is a catalog track. Exactly one of AudioURL and YouTubeID is set.
type Entry struct {
	ID          string  `yaml:"id"`
	PlaylistID  string  `yaml:"playlist_id"`
	TrackNumber int     `yaml:"track_number"`
	Title       string  `yaml:"title"`
	Artist      string  `yaml:"artist"`
	Description string  `yaml:"description"`
	AudioURL    string  `yaml:"audio_url"`
	YouTubeID   string  `yaml:"youtube_id"`
	CoverURL    string  `yaml:"cover_url"`
	Duration    float64 `yaml:"duration"` // seconds
	Lyrics      string  `yaml:"lyrics"`   // LRC text

	category string
}

// Track converts the entry to a playable track. Entries with a YouTube id
// become video tracks.
func (e Entry) Track() playlist.Track {
	t := playlist.Track{
		ID:          e.ID,
		Title:       e.Title,
		Artist:      e.Artist,
		Category:    e.category,
		Description: e.Description,
		Kind:        playlist.KindAudio,
		Source:      e.AudioURL,
		Cover:       e.CoverURL,
		Lyrics:      e.Lyrics,
	}
	if e.Duration > 0 {
		t.Duration = time.Duration(e.Duration * float64(time.Second))
	}
	if e.YouTubeID != "" {
		t.Kind = playlist.KindVideo
		t.Source = e.YouTubeID
	}
	return t
}

// Source reads the catalog.
type Source interface {
	Contexts(ctx context.Context) ([]Context, error)
	Playlists(ctx context.Context, contextID string) ([]Playlist, error)
	// Tracks returns the playlist's tracks ordered by track number.
	Tracks(ctx context.Context, playlistID string) ([]playlist.Track, error)
}

// Tracks converts entries to tracks.
func Tracks(entries []Entry) []playlist.Track {
	tracks := make([]playlist.Track, len(entries))
	for i, e := range entries {
		tracks[i] = e.Track()
	}
	return tracks
}
