// internal/app/app.go
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/eko/internal/access"
	"github.com/llehouerou/eko/internal/catalog"
	"github.com/llehouerou/eko/internal/keymap"
	"github.com/llehouerou/eko/internal/lyrics"
	"github.com/llehouerou/eko/internal/playback"
	"github.com/llehouerou/eko/internal/ui/catalogbrowser"
	"github.com/llehouerou/eko/internal/ui/helpbindings"
	lyricsui "github.com/llehouerou/eko/internal/ui/lyrics"
	"github.com/llehouerou/eko/internal/ui/popup"
)

// Deps wires the model to its collaborators. Playback and Catalog are
// required; everything else may be left zero.
type Deps struct {
	Playback playback.Service
	Catalog  catalog.Source
	Gate     access.Gate

	// Gesture is called on every key press; it unlocks audio output when
	// playback requires a user gesture.
	Gesture func()
	// Copy puts a share link on the clipboard.
	Copy func(string) error

	ShareBaseURL string
	ShareRef     string
	VideoURL     string // where the video surface is served, empty if disabled

	// Reloads delivers catalog reload results.
	Reloads <-chan error

	Log zerolog.Logger
}

// Model is the root application model.
type Model struct {
	deps     Deps
	resolver keymap.Resolver
	sub      *playback.Subscription

	Browser    catalogbrowser.Model
	Help       *helpbindings.Model
	LyricsView *lyricsui.Model
	Popup      popup.Popup // open popup, nil when none

	hydrated bool
	loadErr  error

	lyrics    *lyrics.Lyrics
	lyricsFor string

	spinner spinner.Model

	notification *Notification
	nextNotifID  int64

	width, height int
}

// New creates the root model and subscribes to the playback store.
func New(deps Deps) Model {
	if deps.Gate == nil {
		deps.Gate = access.StaticGate{Subscriber: true}
	}
	if deps.Gesture == nil {
		deps.Gesture = func() {}
	}

	m := Model{
		deps:       deps,
		resolver:   keymap.NewResolver(keymap.Bindings),
		sub:        deps.Playback.Subscribe(),
		Browser:    catalogbrowser.New(deps.Catalog),
		Help:       helpbindings.New(),
		LyricsView: lyricsui.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
	m.Browser.SetFocused(true)
	m.Browser.SetFavoriteFunc(deps.Playback.IsFavorite)
	m.Browser.SetLockedFunc(func(id string) bool { return !deps.Gate.Entitled(id) })
	m.Help.SetContexts([]string{"global", "playback", "browser"})

	if err := m.Browser.Load(context.Background()); err != nil {
		m.loadErr = err
		deps.Log.Error().Err(err).Msg("load catalog")
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.WaitHydrated(),
		m.WatchServiceEvents(),
		m.WatchCatalogReloads(),
		WatchStderr(),
	)
}

// Hydrated reports whether the first real frame may be drawn.
func (m Model) Hydrated() bool {
	return m.hydrated
}

// syncTrack refreshes what depends on the current track: parsed lyrics
// and the browser's playing marker.
func (m *Model) syncTrack() {
	t := m.deps.Playback.CurrentTrack()
	if t == nil {
		m.lyrics, m.lyricsFor = nil, ""
		if m.Popup == m.LyricsView {
			m.Popup = nil
		}
		m.Browser.SetPlaying("")
		return
	}
	if t.ID != m.lyricsFor {
		m.lyrics = lyrics.Parse(t.Lyrics)
		m.lyricsFor = t.ID
	}
	m.LyricsView.SetTrack(t.ID, t.Title, t.Artist, m.lyrics, t.Duration)
	m.Browser.SetPlaying(t.ID)
}
