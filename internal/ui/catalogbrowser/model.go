// Package catalogbrowser provides a drill-down browser over the catalog:
// contexts, then playlists, then tracks, plus a favorites list.
package catalogbrowser

import (
	"context"

	"github.com/llehouerou/eko/internal/catalog"
	"github.com/llehouerou/eko/internal/playlist"
)

// Level is the list the browser currently shows.
type Level int

const (
	LevelContexts Level = iota
	LevelPlaylists
	LevelTracks
	LevelFavorites
)

// FavoriteTrack is a favorited track with the playlist it was found in.
type FavoriteTrack struct {
	Track      playlist.Track
	PlaylistID string
}

// Model is the catalog browser state.
type Model struct {
	src     catalog.Source
	width   int
	height  int
	focused bool

	level     Level
	contexts  []catalog.Context
	playlists []catalog.Playlist
	tracks    []playlist.Track
	favorites []FavoriteTrack

	context  *catalog.Context
	playlist *catalog.Playlist

	sel   selection
	stack []int // selected rows of the levels above

	isFavorite func(id string) bool
	isLocked   func(playlistID string) bool
	playingID  string
}

// New creates a browser over src.
func New(src catalog.Source) Model {
	return Model{
		src:        src,
		isFavorite: func(string) bool { return false },
		isLocked:   func(string) bool { return false },
	}
}

// SetSize sets the panel dimensions, border included.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.sel.jump(m.sel.pos, m.Len(), m.listHeight())
}

// SetFocused sets whether the selection is highlighted.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// SetFavoriteFunc sets how favorite markers are decided.
func (m *Model) SetFavoriteFunc(fn func(id string) bool) {
	if fn != nil {
		m.isFavorite = fn
	}
}

// SetLockedFunc sets how locked playlists are decided.
func (m *Model) SetLockedFunc(fn func(playlistID string) bool) {
	if fn != nil {
		m.isLocked = fn
	}
}

// SetPlaying marks the track id that is current in the store.
func (m *Model) SetPlaying(id string) {
	m.playingID = id
}

// Level returns the list being shown.
func (m Model) Level() Level {
	return m.level
}

// Len returns the number of items in the current list.
func (m Model) Len() int {
	switch m.level {
	case LevelContexts:
		return len(m.contexts)
	case LevelPlaylists:
		return len(m.playlists)
	case LevelTracks:
		return len(m.tracks)
	case LevelFavorites:
		return len(m.favorites)
	}
	return 0
}

// Pos returns the selected row.
func (m Model) Pos() int {
	return m.sel.pos
}

// Playlist returns the open playlist, or nil above the track level.
func (m Model) Playlist() *catalog.Playlist {
	if m.level != LevelTracks {
		return nil
	}
	return m.playlist
}

// SelectedPlaylist returns the playlist under the cursor, or the open one
// at the track level.
func (m Model) SelectedPlaylist() *catalog.Playlist {
	switch m.level {
	case LevelPlaylists:
		if p := m.sel.pos; p < len(m.playlists) {
			pl := m.playlists[p]
			return &pl
		}
	case LevelTracks:
		return m.playlist
	}
	return nil
}

// SelectedTrack returns the track under the cursor, or nil outside the
// track and favorites lists.
func (m Model) SelectedTrack() *playlist.Track {
	pos := m.sel.pos
	switch m.level {
	case LevelTracks:
		if pos < len(m.tracks) {
			t := m.tracks[pos]
			return &t
		}
	case LevelFavorites:
		if pos < len(m.favorites) {
			t := m.favorites[pos].Track
			return &t
		}
	}
	return nil
}

// Load reads the top-level contexts and resets navigation.
func (m *Model) Load(ctx context.Context) error {
	contexts, err := m.src.Contexts(ctx)
	if err != nil {
		return err
	}
	m.contexts = contexts
	m.level = LevelContexts
	m.context, m.playlist = nil, nil
	m.stack = nil
	m.sel = selection{}
	return nil
}

// Refresh re-reads the current level after a catalog reload. If the open
// context or playlist disappeared, the browser falls back to the top.
func (m *Model) Refresh(ctx context.Context) error {
	contexts, err := m.src.Contexts(ctx)
	if err != nil {
		return err
	}
	m.contexts = contexts

	switch m.level {
	case LevelPlaylists:
		if err := m.loadPlaylists(ctx); err != nil {
			return m.Load(ctx)
		}
	case LevelTracks:
		if err := m.loadTracks(ctx); err != nil {
			return m.Load(ctx)
		}
	case LevelFavorites:
		if err := m.loadFavorites(ctx); err != nil {
			return err
		}
	}
	m.sel.jump(m.sel.pos, m.Len(), m.listHeight())
	return nil
}

func (m *Model) loadPlaylists(ctx context.Context) error {
	pls, err := m.src.Playlists(ctx, m.context.ID)
	if err != nil {
		return err
	}
	m.playlists = pls
	return nil
}

func (m *Model) loadTracks(ctx context.Context) error {
	tracks, err := m.src.Tracks(ctx, m.playlist.ID)
	if err != nil {
		return err
	}
	m.tracks = tracks
	return nil
}

// Move moves the selection by delta rows.
func (m *Model) Move(delta int) {
	m.sel.move(delta, m.Len(), m.listHeight())
}

// Enter opens the selected item. Opening a track returns a Play
// action; opening a context or playlist descends and returns nil.
func (m *Model) Enter(ctx context.Context) (*Play, error) {
	pos := m.sel.pos
	if pos >= m.Len() {
		return nil, nil
	}

	switch m.level {
	case LevelContexts:
		c := m.contexts[pos]
		m.context = &c
		if err := m.loadPlaylists(ctx); err != nil {
			return nil, err
		}
		m.descend(LevelPlaylists)
	case LevelPlaylists:
		p := m.playlists[pos]
		m.playlist = &p
		if err := m.loadTracks(ctx); err != nil {
			return nil, err
		}
		m.descend(LevelTracks)
	case LevelTracks:
		return &Play{
			Track:      m.tracks[pos],
			Queue:      append([]playlist.Track(nil), m.tracks...),
			PlaylistID: m.playlist.ID,
		}, nil
	case LevelFavorites:
		fav := m.favorites[pos]
		queue := make([]playlist.Track, len(m.favorites))
		for i, f := range m.favorites {
			queue[i] = f.Track
		}
		return &Play{Track: fav.Track, Queue: queue, PlaylistID: fav.PlaylistID}, nil
	}
	return nil, nil
}

func (m *Model) descend(level Level) {
	m.stack = append(m.stack, m.sel.pos)
	m.level = level
	m.sel = selection{}
}

// Back returns to the parent list. It reports false at the top.
func (m *Model) Back() bool {
	if len(m.stack) == 0 {
		return false
	}
	pos := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]

	switch m.level {
	case LevelTracks:
		m.level = LevelPlaylists
		m.playlist = nil
		m.tracks = nil
	case LevelPlaylists:
		m.level = LevelContexts
		m.context = nil
		m.playlists = nil
	case LevelFavorites:
		m.level = LevelContexts
		m.favorites = nil
	}
	m.sel.jump(pos, m.Len(), m.listHeight())
	return true
}

// ShowFavorites switches to the favorites list, ordered as favorites
// appear in the catalog. Calling it from the favorites list is a no-op.
func (m *Model) ShowFavorites(ctx context.Context) error {
	if m.level == LevelFavorites {
		return nil
	}
	for len(m.stack) > 0 {
		m.Back()
	}
	if err := m.loadFavorites(ctx); err != nil {
		return err
	}
	m.descend(LevelFavorites)
	return nil
}

func (m *Model) loadFavorites(ctx context.Context) error {
	var favs []FavoriteTrack
	seen := make(map[string]bool)
	for _, c := range m.contexts {
		pls, err := m.src.Playlists(ctx, c.ID)
		if err != nil {
			return err
		}
		for _, p := range pls {
			tracks, err := m.src.Tracks(ctx, p.ID)
			if err != nil {
				return err
			}
			for _, t := range tracks {
				if seen[t.ID] || !m.isFavorite(t.ID) {
					continue
				}
				seen[t.ID] = true
				favs = append(favs, FavoriteTrack{Track: t, PlaylistID: p.ID})
			}
		}
	}
	m.favorites = favs
	return nil
}

// Breadcrumb describes where the browser is.
func (m Model) Breadcrumb() string {
	switch m.level {
	case LevelPlaylists:
		return m.context.Title
	case LevelTracks:
		return m.context.Title + " › " + m.playlist.Title
	case LevelFavorites:
		return "Favorites"
	}
	return "Explore"
}

func (m Model) listHeight() int {
	return max(m.height-chromeRows, 1)
}
