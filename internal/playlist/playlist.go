package playlist

import "time"

// MediaKind tells which surface renders a track.
type MediaKind int

const (
	KindAudio MediaKind = iota
	KindVideo
)

// String returns the kind name.
func (k MediaKind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// ParseKind maps a catalog kind string to a MediaKind. Anything but "video"
// is audio.
func ParseKind(s string) MediaKind {
	if s == "video" {
		return KindVideo
	}
	return KindAudio
}

// Track is a playable unit. Values are never mutated once built.
type Track struct {
	ID          string // stable within a queue
	Title       string
	Artist      string
	Category    string
	Description string
	Kind        MediaKind
	Source      string // audio URL or path; external video id for video
	Cover       string
	Duration    time.Duration // catalog hint, zero if unknown
	Lyrics      string        // LRC text, optional
}

// IsVideo returns true if the track plays on the embedded video surface.
func (t Track) IsVideo() bool {
	return t.Kind == KindVideo
}

// Playlist holds an ordered collection of tracks.
type Playlist struct {
	tracks []Track
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		tracks: make([]Track, 0),
	}
}

// Add appends tracks to the playlist.
func (p *Playlist) Add(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	t := p.tracks[index]
	return &t
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// IndexOf returns the index of the first track with the given id, or -1.
func (p *Playlist) IndexOf(id string) int {
	for i := range p.tracks {
		if p.tracks[i].ID == id {
			return i
		}
	}
	return -1
}
