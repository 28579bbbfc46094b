package state

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/eko/internal/playback"
	"github.com/llehouerou/eko/internal/playlist"
)

// ErrMalformed is returned when a stored snapshot cannot be read at all.
var ErrMalformed = errors.New("malformed playback snapshot")

// document is the stored JSON shape. Session fields (playing flag,
// position, mute, overlay visibility) have no place in it.
type document struct {
	CurrentTrack       *trackDoc  `json:"currentTrack"`
	Queue              []trackDoc `json:"queue"`
	Volume             float64    `json:"volume"`
	Favorites          []string   `json:"favorites"`
	RepeatMode         string     `json:"repeatMode"`
	Shuffle            bool       `json:"shuffle"`
	ReduceTransparency bool       `json:"reduceTransparency"`
}

type trackDoc struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist,omitempty"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Kind        string  `json:"kind"`
	Src         string  `json:"src"`
	Cover       string  `json:"cover,omitempty"`
	Duration    float64 `json:"duration,omitempty"` // seconds
	Lyrics      string  `json:"lyrics,omitempty"`
}

// Encode renders a snapshot as stored JSON.
func Encode(s playback.Snapshot) ([]byte, error) {
	doc := document{
		Queue:              make([]trackDoc, 0, len(s.Queue)),
		Volume:             s.Volume,
		Favorites:          s.Favorites,
		RepeatMode:         strings.ToLower(s.RepeatMode.String()),
		Shuffle:            s.Shuffle,
		ReduceTransparency: s.ReduceTransparency,
	}
	if doc.Favorites == nil {
		doc.Favorites = []string{}
	}
	if s.CurrentTrack != nil {
		t := toDoc(*s.CurrentTrack)
		doc.CurrentTrack = &t
	}
	for _, t := range s.Queue {
		doc.Queue = append(doc.Queue, toDoc(t))
	}
	data, err := json.Marshal(doc)
	return data, errors.Wrap(err, "encode snapshot")
}

// Decode reads stored JSON. Each recognized field is taken on its own: a
// field with the wrong shape or an out-of-range value is left unset in the
// result and reported in skipped. Unknown fields are ignored.
func Decode(data []byte) (r *playback.Restore, skipped []string, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, nil, errors.Mark(errors.Wrap(err, "decode snapshot"), ErrMalformed)
	}

	r = &playback.Restore{}
	skip := func(name string) { skipped = append(skipped, name) }

	if raw, ok := fields["currentTrack"]; ok && string(raw) != "null" {
		var t trackDoc
		if json.Unmarshal(raw, &t) == nil && t.ID != "" {
			track := fromDoc(t)
			r.CurrentTrack = &track
		} else {
			skip("currentTrack")
		}
	}
	if raw, ok := fields["queue"]; ok {
		var docs []trackDoc
		if json.Unmarshal(raw, &docs) == nil {
			r.Queue = make([]playlist.Track, 0, len(docs))
			for _, t := range docs {
				if t.ID == "" {
					continue
				}
				r.Queue = append(r.Queue, fromDoc(t))
			}
		} else {
			skip("queue")
		}
	}
	if raw, ok := fields["volume"]; ok {
		var v float64
		if json.Unmarshal(raw, &v) == nil && v >= 0 && v <= 1 {
			r.Volume = &v
		} else {
			skip("volume")
		}
	}
	if raw, ok := fields["favorites"]; ok {
		var ids []string
		if json.Unmarshal(raw, &ids) == nil {
			r.Favorites = ids
		} else {
			skip("favorites")
		}
	}
	if raw, ok := fields["repeatMode"]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			if mode, ok := parseRepeatMode(s); ok {
				r.RepeatMode = &mode
			} else {
				skip("repeatMode")
			}
		} else {
			skip("repeatMode")
		}
	}
	if raw, ok := fields["shuffle"]; ok {
		var b bool
		if json.Unmarshal(raw, &b) == nil {
			r.Shuffle = &b
		} else {
			skip("shuffle")
		}
	}
	if raw, ok := fields["reduceTransparency"]; ok {
		var b bool
		if json.Unmarshal(raw, &b) == nil {
			r.ReduceTransparency = &b
		} else {
			skip("reduceTransparency")
		}
	}
	return r, skipped, nil
}

func parseRepeatMode(s string) (playback.RepeatMode, bool) {
	switch strings.ToLower(s) {
	case "off":
		return playback.RepeatOff, true
	case "all":
		return playback.RepeatAll, true
	case "one":
		return playback.RepeatOne, true
	default:
		return playback.RepeatOff, false
	}
}

func toDoc(t playlist.Track) trackDoc {
	return trackDoc{
		ID:          t.ID,
		Title:       t.Title,
		Artist:      t.Artist,
		Category:    t.Category,
		Description: t.Description,
		Kind:        t.Kind.String(),
		Src:         t.Source,
		Cover:       t.Cover,
		Duration:    t.Duration.Seconds(),
		Lyrics:      t.Lyrics,
	}
}

func fromDoc(d trackDoc) playlist.Track {
	var dur time.Duration
	if d.Duration > 0 && !math.IsInf(d.Duration, 0) {
		dur = time.Duration(d.Duration * float64(time.Second))
	}
	return playlist.Track{
		ID:          d.ID,
		Title:       d.Title,
		Artist:      d.Artist,
		Category:    d.Category,
		Description: d.Description,
		Kind:        playlist.ParseKind(d.Kind),
		Source:      d.Src,
		Cover:       d.Cover,
		Duration:    dur,
		Lyrics:      d.Lyrics,
	}
}
