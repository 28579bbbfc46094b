package state

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func storageBackends(t *testing.T) map[string]Storage {
	t.Helper()
	dir := t.TempDir()

	sqliteMem, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite(:memory:) failed: %v", err)
	}
	sqliteFile, err := OpenSQLite(filepath.Join(dir, "sub", "eko.db"))
	if err != nil {
		t.Fatalf("OpenSQLite(file) failed: %v", err)
	}
	boltFile, err := OpenBolt(filepath.Join(dir, "eko.bolt"))
	if err != nil {
		t.Fatalf("OpenBolt failed: %v", err)
	}

	backends := map[string]Storage{
		"sqlite-memory": sqliteMem,
		"sqlite-file":   sqliteFile,
		"bolt":          boltFile,
		"memory":        NewMemory(),
	}
	t.Cleanup(func() {
		for _, s := range backends {
			s.Close()
		}
	})
	return backends
}

func TestStorage_GetMissing(t *testing.T) {
	for name, s := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get("absent")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(absent) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStorage_PutGetOverwrite(t *testing.T) {
	for name, s := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put("k", []byte("one")); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			if err := s.Put("k", []byte("two")); err != nil {
				t.Fatalf("Put failed: %v", err)
			}

			got, err := s.Get("k")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if string(got) != "two" {
				t.Errorf("Get(k) = %q, want two", got)
			}
		})
	}
}

func TestStorage_DeleteOthers(t *testing.T) {
	for name, s := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"eko.playback.v0", "eko.playback.v1", "eko.playback.v2", "other"} {
				if err := s.Put(k, []byte(k)); err != nil {
					t.Fatalf("Put(%s) failed: %v", k, err)
				}
			}

			if err := s.DeleteOthers("eko.playback.", "eko.playback.v1"); err != nil {
				t.Fatalf("DeleteOthers failed: %v", err)
			}

			for _, k := range []string{"eko.playback.v0", "eko.playback.v2"} {
				if _, err := s.Get(k); !errors.Is(err, ErrNotFound) {
					t.Errorf("Get(%s) error = %v, want ErrNotFound", k, err)
				}
			}
			for _, k := range []string{"eko.playback.v1", "other"} {
				if _, err := s.Get(k); err != nil {
					t.Errorf("Get(%s) error = %v, want kept", k, err)
				}
			}
		})
	}
}

func TestSQLiteStorage_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eko.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := s.Put(Key, []byte(`{}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	got, err := s.Get(Key)
	if err != nil || string(got) != `{}` {
		t.Errorf("Get after reopen = %q, %v", got, err)
	}
	if ts, err := s.UpdatedAt(Key); err != nil || ts.IsZero() {
		t.Errorf("UpdatedAt = %v, %v", ts, err)
	}
}

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend string
		path    string
		wantErr bool
	}{
		{BackendSQLite, filepath.Join(dir, "a.db"), false},
		{BackendBolt, filepath.Join(dir, "a.bolt"), false},
		{BackendMemory, "", false},
		{"redis", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			s, err := Open(tt.backend, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open(%s) error = %v, wantErr %v", tt.backend, err, tt.wantErr)
			}
			if s != nil {
				s.Close()
			}
		})
	}
}

func TestMemory_Keys(t *testing.T) {
	m := NewMemory()
	_ = m.Put("b", nil)
	_ = m.Put("a", nil)

	keys := m.Keys()
	slices.Sort(keys)
	if !slices.Equal(keys, []string{"a", "b"}) {
		t.Errorf("Keys() = %v, want [a b]", keys)
	}
}
