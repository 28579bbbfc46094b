//nolint:goconst // test file with repeated string literals
package playlist

import "testing"

func newTestQueue(ids ...string) *Queue {
	q := NewQueue()
	tracks := make([]Track, len(ids))
	for i, id := range ids {
		tracks[i] = Track{ID: id}
	}
	q.Replace(tracks...)
	return q
}

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if !q.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}
}

func TestQueue_Replace(t *testing.T) {
	q := newTestQueue("old1", "old2")

	q.Replace(Track{ID: "new"})

	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
	if q.Tracks()[0].ID != "new" {
		t.Errorf("Tracks()[0].ID = %q, want new", q.Tracks()[0].ID)
	}
	if q.Contains("old1") {
		t.Error("old tracks should be gone after Replace")
	}
}

func TestQueue_Replace_Empty(t *testing.T) {
	q := newTestQueue("a")

	q.Replace()

	if !q.IsEmpty() {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}

func TestQueue_After(t *testing.T) {
	q := newTestQueue("a", "b", "c")

	tests := []struct {
		id   string
		want string
	}{
		{"a", "b"},
		{"b", "c"},
		{"c", "a"}, // wraps last to first
	}
	for _, tt := range tests {
		got, ok := q.After(tt.id)
		if !ok {
			t.Errorf("After(%q) ok = false", tt.id)
			continue
		}
		if got.ID != tt.want {
			t.Errorf("After(%q) = %q, want %q", tt.id, got.ID, tt.want)
		}
	}
}

func TestQueue_Before(t *testing.T) {
	q := newTestQueue("a", "b", "c")

	tests := []struct {
		id   string
		want string
	}{
		{"a", "c"}, // wraps first to last
		{"b", "a"},
		{"c", "b"},
	}
	for _, tt := range tests {
		got, ok := q.Before(tt.id)
		if !ok {
			t.Errorf("Before(%q) ok = false", tt.id)
			continue
		}
		if got.ID != tt.want {
			t.Errorf("Before(%q) = %q, want %q", tt.id, got.ID, tt.want)
		}
	}
}

func TestQueue_After_FullCycleReturnsToStart(t *testing.T) {
	q := newTestQueue("a", "b", "c", "d")

	id := "b"
	for range q.Len() {
		next, ok := q.After(id)
		if !ok {
			t.Fatalf("After(%q) ok = false", id)
		}
		id = next.ID
	}

	if id != "b" {
		t.Errorf("after %d steps got %q, want b", q.Len(), id)
	}
}

func TestQueue_Step_SingleTrack(t *testing.T) {
	q := newTestQueue("only")

	next, ok := q.After("only")
	if !ok || next.ID != "only" {
		t.Errorf("After(only) = %q, %v; want only, true", next.ID, ok)
	}
	prev, ok := q.Before("only")
	if !ok || prev.ID != "only" {
		t.Errorf("Before(only) = %q, %v; want only, true", prev.ID, ok)
	}
}

func TestQueue_Step_EmptyOrMissing(t *testing.T) {
	empty := NewQueue()
	if _, ok := empty.After("a"); ok {
		t.Error("After on empty queue should report false")
	}
	if _, ok := empty.Before("a"); ok {
		t.Error("Before on empty queue should report false")
	}

	q := newTestQueue("a", "b")
	if _, ok := q.After("outside"); ok {
		t.Error("After with unknown id should report false")
	}
	if _, ok := q.Before("outside"); ok {
		t.Error("Before with unknown id should report false")
	}
}

func TestQueue_Tracks_ReturnsCopy(t *testing.T) {
	q := newTestQueue("a")

	tracks := q.Tracks()
	tracks[0].ID = "changed"

	if !q.Contains("a") {
		t.Error("Tracks() should return a copy")
	}
}
