//nolint:goconst // test file with repeated string literals
package playlist

import "testing"

func TestNewPlaylist(t *testing.T) {
	p := NewPlaylist()

	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	if p.Tracks() == nil {
		t.Error("Tracks() should return empty slice, not nil")
	}
}

func TestPlaylist_Add(t *testing.T) {
	p := NewPlaylist()

	p.Add(Track{ID: "a"}, Track{ID: "b"})

	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}

	tracks := p.Tracks()
	if tracks[0].ID != "a" {
		t.Errorf("tracks[0].ID = %q, want a", tracks[0].ID)
	}
	if tracks[1].ID != "b" {
		t.Errorf("tracks[1].ID = %q, want b", tracks[1].ID)
	}
}

func TestPlaylist_Clear(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{ID: "a"}, Track{ID: "b"})

	p.Clear()

	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestPlaylist_Tracks_ReturnsCopy(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{ID: "a", Title: "Original"})

	tracks := p.Tracks()
	tracks[0].Title = "Modified"

	if p.Track(0).Title != "Original" {
		t.Error("Tracks() should return a copy")
	}
}

func TestPlaylist_Track_ReturnsCopy(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{ID: "a", Title: "Original"})

	tr := p.Track(0)
	tr.Title = "Modified"

	if p.Track(0).Title != "Original" {
		t.Error("Track() should not expose internal storage")
	}
}

func TestPlaylist_Track_InvalidIndex(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{ID: "a"})

	tests := []int{-1, 1, 10}
	for _, idx := range tests {
		if p.Track(idx) != nil {
			t.Errorf("Track(%d) should return nil", idx)
		}
	}
}

func TestPlaylist_IndexOf(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{ID: "a"}, Track{ID: "b"}, Track{ID: "c"})

	tests := []struct {
		id   string
		want int
	}{
		{"a", 0},
		{"c", 2},
		{"missing", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := p.IndexOf(tt.id); got != tt.want {
			t.Errorf("IndexOf(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestTrack_IsVideo(t *testing.T) {
	if (Track{Kind: KindAudio}).IsVideo() {
		t.Error("audio track reported as video")
	}
	if !(Track{Kind: KindVideo}).IsVideo() {
		t.Error("video track not reported as video")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want MediaKind
	}{
		{"video", KindVideo},
		{"audio", KindAudio},
		{"", KindAudio},
		{"VIDEO", KindAudio},
	}
	for _, tt := range tests {
		if got := ParseKind(tt.in); got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMediaKind_String(t *testing.T) {
	tests := []struct {
		kind MediaKind
		want string
	}{
		{KindAudio, "audio"},
		{KindVideo, "video"},
		{MediaKind(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
