package catalog

import (
	"cmp"
	"context"
	"os"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/llehouerou/eko/internal/playlist"
)

type document struct {
	Contexts  []Context  `yaml:"contexts"`
	Playlists []Playlist `yaml:"playlists"`
	Tracks    []Entry    `yaml:"tracks"`
}

type index struct {
	contexts  []Context
	playlists map[string][]Playlist // by context id
	entries   map[string][]Entry    // by playlist id, ordered
	known     map[string]bool       // playlist ids
}

// FileSource serves a catalog read from a YAML file.
type FileSource struct {
	path string

	mu  sync.RWMutex
	idx *index
}

var _ Source = (*FileSource)(nil)

// OpenFile reads and indexes the catalog file.
func OpenFile(path string) (*FileSource, error) {
	s := &FileSource{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the catalog file path.
func (s *FileSource) Path() string {
	return s.path
}

// Reload re-reads the file. On failure the previous catalog is kept.
func (s *FileSource) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return errors.Wrap(err, "read catalog")
	}
	idx, err := parse(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.idx = idx
	s.mu.Unlock()
	return nil
}

func (s *FileSource) Contexts(ctx context.Context) ([]Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.idx.contexts), nil
}

func (s *FileSource) Playlists(ctx context.Context, contextID string) ([]Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !slices.ContainsFunc(s.idx.contexts, func(c Context) bool { return c.ID == contextID }) {
		return nil, errors.Wrapf(ErrNotFound, "context %q", contextID)
	}
	return slices.Clone(s.idx.playlists[contextID]), nil
}

func (s *FileSource) Tracks(ctx context.Context, playlistID string) ([]playlist.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.idx.known[playlistID] {
		return nil, errors.Wrapf(ErrNotFound, "playlist %q", playlistID)
	}
	return Tracks(s.idx.entries[playlistID]), nil
}

func parse(data []byte) (*index, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parse catalog")
	}

	idx := &index{
		contexts:  doc.Contexts,
		playlists: make(map[string][]Playlist),
		entries:   make(map[string][]Entry),
		known:     make(map[string]bool),
	}

	titles := make(map[string]string, len(doc.Contexts))
	for _, c := range doc.Contexts {
		if c.ID == "" {
			return nil, errors.New("parse catalog: context without id")
		}
		titles[c.ID] = c.Title
	}

	category := make(map[string]string, len(doc.Playlists))
	for _, p := range doc.Playlists {
		if p.ID == "" {
			return nil, errors.New("parse catalog: playlist without id")
		}
		if _, ok := titles[p.ContextID]; !ok {
			return nil, errors.Newf("parse catalog: playlist %q has unknown context %q", p.ID, p.ContextID)
		}
		idx.playlists[p.ContextID] = append(idx.playlists[p.ContextID], p)
		idx.known[p.ID] = true
		category[p.ID] = titles[p.ContextID]
	}

	seen := make(map[string]bool, len(doc.Tracks))
	for _, e := range doc.Tracks {
		switch {
		case e.ID == "":
			return nil, errors.New("parse catalog: track without id")
		case seen[e.ID]:
			return nil, errors.Newf("parse catalog: duplicate track id %q", e.ID)
		case !idx.known[e.PlaylistID]:
			return nil, errors.Newf("parse catalog: track %q has unknown playlist %q", e.ID, e.PlaylistID)
		case (e.AudioURL == "") == (e.YouTubeID == ""):
			return nil, errors.Newf("parse catalog: track %q needs exactly one of audio_url and youtube_id", e.ID)
		}
		seen[e.ID] = true
		e.category = category[e.PlaylistID]
		idx.entries[e.PlaylistID] = append(idx.entries[e.PlaylistID], e)
	}

	for id := range idx.entries {
		slices.SortStableFunc(idx.entries[id], func(a, b Entry) int {
			return cmp.Compare(a.TrackNumber, b.TrackNumber)
		})
	}
	return idx, nil
}
