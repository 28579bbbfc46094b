package playlist

// Queue is the ordered list of tracks traversed by next/previous.
// Insertion order is playback order; the queue never reorders itself.
type Queue struct {
	playlist *Playlist
}

// NewQueue creates a new empty queue.
func NewQueue() *Queue {
	return &Queue{playlist: NewPlaylist()}
}

// Replace swaps the whole content of the queue.
func (q *Queue) Replace(tracks ...Track) {
	q.playlist.Clear()
	q.playlist.Add(tracks...)
}

// Tracks returns a copy of the queued tracks.
func (q *Queue) Tracks() []Track {
	return q.playlist.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *Queue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.playlist.Len() == 0
}

// Contains reports whether a track with the given id is queued.
func (q *Queue) Contains(id string) bool {
	return q.playlist.IndexOf(id) >= 0
}

// After returns the track following id, wrapping from last to first.
// Returns false when the queue is empty or id is not queued.
func (q *Queue) After(id string) (Track, bool) {
	return q.step(id, 1)
}

// Before returns the track preceding id, wrapping from first to last.
// Returns false when the queue is empty or id is not queued.
func (q *Queue) Before(id string) (Track, bool) {
	return q.step(id, -1)
}

func (q *Queue) step(id string, delta int) (Track, bool) {
	n := q.playlist.Len()
	if n == 0 {
		return Track{}, false
	}
	idx := q.playlist.IndexOf(id)
	if idx < 0 {
		return Track{}, false
	}
	next := ((idx+delta)%n + n) % n
	return *q.playlist.Track(next), true
}
