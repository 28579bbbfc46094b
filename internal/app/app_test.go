package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/eko/internal/access"
	"github.com/llehouerou/eko/internal/catalog"
	"github.com/llehouerou/eko/internal/errmsg"
	"github.com/llehouerou/eko/internal/playback"
	"github.com/llehouerou/eko/internal/player"
	"github.com/llehouerou/eko/internal/ui/catalogbrowser"
	"github.com/llehouerou/eko/internal/ui/popup"
	"github.com/llehouerou/eko/internal/ui/styles"
)

const testCatalog = `
contexts:
  - id: sleep
    title: Sleep
playlists:
  - id: pl-rain
    context_id: sleep
    title: Rain
tracks:
  - id: t1
    playlist_id: pl-rain
    track_number: 1
    title: Light rain
    audio_url: https://cdn.example.com/light.mp3
    duration: 120
    lyrics: "[00:01.00]Breathe in\n[00:03.00]Let go"
  - id: t2
    playlist_id: pl-rain
    track_number: 2
    title: Heavy rain
    audio_url: https://cdn.example.com/heavy.mp3
    duration: 90
`

type fixture struct {
	svc    playback.Service
	engine *player.MockEngine
	src    *catalog.FileSource
	copied []string
}

// newTestModel must be called inside a synctest bubble.
func newTestModel(t *testing.T, mutate func(*Deps)) (Model, *fixture) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))
	src, err := catalog.OpenFile(path)
	require.NoError(t, err)

	f := &fixture{engine: player.NewMockEngine(), src: src}
	adapter := player.NewAdapter(f.engine)
	f.svc = playback.New(adapter)
	t.Cleanup(func() {
		f.svc.Close()
		adapter.Close()
		styles.SetReduceTransparency(false)
	})

	deps := Deps{
		Playback:     f.svc,
		Catalog:      src,
		ShareBaseURL: "https://eko.example.com",
		Copy: func(s string) error {
			f.copied = append(f.copied, s)
			return nil
		},
	}
	if mutate != nil {
		mutate(&deps)
	}
	m := New(deps)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, f
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return out
}

func hydrate(t *testing.T, m Model, f *fixture) Model {
	t.Helper()
	f.svc.Hydrate(nil)
	return update(t, m, HydratedMsg{})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, key(k))
	}
	return m
}

func TestView_EmptyUntilHydrated(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, nil)
		assert.Empty(t, m.View())
		assert.False(t, m.Hydrated())

		m = hydrate(t, m, f)
		assert.True(t, m.Hydrated())
		assert.Contains(t, m.View(), "Sleep")
	})
}

func TestKeys_IgnoredBeforeHydration(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		m = press(t, m, "enter")
		assert.Equal(t, catalogbrowser.LevelContexts, m.Browser.Level())
	})
}

func TestKeys_QuitBeforeHydration(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		_, cmd := m.Update(key("q"))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

func TestSelect_PlaysTrackAndQueuesPlaylist(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, nil)
		m = hydrate(t, m, f)

		m = press(t, m, "enter", "enter", "j", "enter")
		synctest.Wait()

		ps := f.svc.Snapshot()
		require.NotNil(t, ps.CurrentTrack)
		assert.Equal(t, "t2", ps.CurrentTrack.ID)
		assert.Len(t, ps.Queue, 2)
		assert.Equal(t, playback.StatePlaying, ps.State)
		assert.Equal(t, "https://cdn.example.com/heavy.mp3", f.engine.Locator())
		assert.True(t, ps.IsPlayerVisible)
	})
}

func TestSelect_LockedPlaylistNotifies(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, func(d *Deps) {
			d.Gate = access.StaticGate{Free: []string{"pl-other"}}
		})
		m = hydrate(t, m, f)

		m = press(t, m, "enter", "enter", "enter")
		synctest.Wait()

		assert.Nil(t, f.svc.CurrentTrack())
		require.NotNil(t, m.notification)
		assert.Equal(t, errmsg.MsgNotEntitled, m.notification.Message)
	})
}

func TestPlayPause_StartsTrackUnderCursor(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, nil)
		m = hydrate(t, m, f)
		m = press(t, m, "enter", "enter", " ")
		synctest.Wait()
		require.NotNil(t, f.svc.CurrentTrack())
		assert.Equal(t, "t1", f.svc.CurrentTrack().ID)

		press(t, m, " ")
		synctest.Wait()
		assert.Equal(t, playback.StatePaused, f.svc.Snapshot().State)
	})
}

func TestOverlay_EscClosesAndBlocksBrowser(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, nil)
		m = hydrate(t, m, f)
		m = press(t, m, "enter", "enter", "enter")
		synctest.Wait()
		require.True(t, f.svc.Snapshot().IsPlayerVisible)
		assert.Contains(t, m.View(), "Now playing")

		// navigation keys don't reach the browser behind the player
		pos := m.Browser.Pos()
		m = press(t, m, "j")
		assert.Equal(t, pos, m.Browser.Pos())

		m = press(t, m, "esc")
		assert.False(t, f.svc.Snapshot().IsPlayerVisible)
		assert.Contains(t, m.View(), "Light rain")
	})
}

func TestToggleFavorite_Notifies(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, nil)
		m = hydrate(t, m, f)
		m = press(t, m, "enter", "enter", "f")

		assert.True(t, f.svc.IsFavorite("t1"))
		require.NotNil(t, m.notification)
		assert.Equal(t, "Added to favorites", m.notification.Message)

		m = press(t, m, "f")
		assert.False(t, f.svc.IsFavorite("t1"))
		assert.Equal(t, "Removed from favorites", m.notification.Message)
	})
}

func TestShare_CopiesTrackLink(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, nil)
		m = hydrate(t, m, f)
		m = press(t, m, "enter", "enter", "enter")
		synctest.Wait()

		m = press(t, m, "y")
		require.Len(t, f.copied, 1)
		assert.True(t, strings.HasPrefix(f.copied[0], "https://eko.example.com/track/t1"), f.copied[0])
		assert.Contains(t, m.notification.Message, "Link copied")
	})
}

func TestShare_PlaylistLinkWhenIdle(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, func(d *Deps) { d.ShareRef = "friend" })
		m = hydrate(t, m, f)
		m = press(t, m, "enter", "y")

		require.Len(t, f.copied, 1)
		assert.Equal(t, "https://eko.example.com/player/pl-rain?ref=friend", f.copied[0])
	})
}

func TestShare_ClipboardFailureShowsLink(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, func(d *Deps) {
			d.Copy = func(string) error { return errors.New("no clipboard") }
		})
		m = hydrate(t, m, f)
		m = press(t, m, "enter", "y")

		require.NotNil(t, m.notification)
		assert.Equal(t, "Share: https://eko.example.com/player/pl-rain", m.notification.Message)
	})
}

func TestCycleRepeat(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, nil)
		m = hydrate(t, m, f)

		m = press(t, m, "r")
		assert.Equal(t, playback.RepeatAll, f.svc.Snapshot().RepeatMode)
		m = press(t, m, "r")
		assert.Equal(t, playback.RepeatOne, f.svc.Snapshot().RepeatMode)
		press(t, m, "r")
		assert.Equal(t, playback.RepeatOff, f.svc.Snapshot().RepeatMode)
	})
}

func TestToggleContrast_AppliesTheme(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, nil)
		m = hydrate(t, m, f)

		press(t, m, "t")
		assert.True(t, f.svc.Snapshot().ReduceTransparency)
		assert.True(t, styles.ReduceTransparency())
	})
}

func TestHelp_ToggleAndClose(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, nil)
		m = hydrate(t, m, f)

		m = press(t, m, "?")
		require.Equal(t, popup.Popup(m.Help), m.Popup)
		assert.Contains(t, m.View(), "Show help")

		next, cmd := m.Update(key("esc"))
		m = next.(Model)
		require.NotNil(t, cmd)
		m = update(t, m, cmd())
		assert.Nil(t, m.Popup)
	})
}

func TestNotification_ClearsOnlyMatchingID(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, nil)
		m = hydrate(t, m, f)
		m = press(t, m, "enter", "y", "y")
		require.NotNil(t, m.notification)
		id := m.notification.ID

		m = update(t, m, NotificationClearMsg{ID: id - 1})
		require.NotNil(t, m.notification)
		m = update(t, m, NotificationClearMsg{ID: id})
		assert.Nil(t, m.notification)
	})
}

func TestPlaybackError_Notifies(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, nil)
		m = hydrate(t, m, f)

		m = update(t, m, ServiceErrorMsg{Kind: player.KindInteractionRequired})
		require.NotNil(t, m.notification)
		assert.Equal(t, errmsg.MsgInteractionRequired, m.notification.Message)

		m.notification = nil
		m = update(t, m, ServiceErrorMsg{Kind: player.KindAborted})
		assert.Nil(t, m.notification)
	})
}

type flakySource struct {
	catalog.Source
	err error
}

func (s *flakySource) Contexts(ctx context.Context) ([]catalog.Context, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.Source.Contexts(ctx)
}

func TestCatalogLoadError_ShowsDialogUntilReload(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var flaky *flakySource
		m, f := newTestModel(t, func(d *Deps) {
			flaky = &flakySource{Source: d.Catalog, err: errors.New("missing contexts")}
			d.Catalog = flaky
		})
		m = hydrate(t, m, f)

		view := m.View()
		assert.Contains(t, view, "Catalog unavailable")
		assert.Contains(t, view, "missing contexts")

		flaky.err = nil
		m = update(t, m, CatalogReloadedMsg{})
		view = m.View()
		assert.NotContains(t, view, "Catalog unavailable")
		assert.Contains(t, view, "Sleep")
	})
}

func TestCatalogReload_RefreshesBrowser(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, nil)
		m = hydrate(t, m, f)

		m = update(t, m, CatalogReloadedMsg{Err: errors.New("bad yaml")})
		require.NotNil(t, m.notification)
		assert.Contains(t, m.notification.Message, errmsg.Format(errmsg.OpCatalogReload, errors.New("bad yaml")))

		updated := strings.Replace(testCatalog, "title: Sleep", "title: Deep sleep", 1)
		require.NoError(t, os.WriteFile(f.src.Path(), []byte(updated), 0o600))
		require.NoError(t, f.src.Reload())

		m = update(t, m, CatalogReloadedMsg{})
		assert.Equal(t, "Catalog updated", m.notification.Message)
		assert.Contains(t, m.View(), "Deep sleep")
	})
}

func TestLyrics_PopupFollowsPosition(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, nil)
		m = hydrate(t, m, f)

		m = press(t, m, "L")
		assert.Nil(t, m.Popup, "nothing playing")

		m = press(t, m, "enter", "enter", "enter", "esc", "L")
		synctest.Wait()
		require.Equal(t, popup.Popup(m.LyricsView), m.Popup)
		assert.Contains(t, m.View(), "Breathe in")

		m = update(t, m, ServicePositionChangedMsg{Position: 2 * time.Second, Duration: 2 * time.Minute})
		assert.Equal(t, 0, m.LyricsView.CurrentLine())

		// playback keys pass through the popup
		next, cmd := m.Update(key("m"))
		m = next.(Model)
		require.NotNil(t, cmd)
		m = update(t, m, cmd())
		assert.True(t, f.svc.Snapshot().IsMuted)
		assert.Equal(t, popup.Popup(m.LyricsView), m.Popup)

		next, cmd = m.Update(key("esc"))
		m = next.(Model)
		m = update(t, m, cmd())
		assert.Nil(t, m.Popup)
	})
}

func TestSpinner_StopsOnceLoaded(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, f := newTestModel(t, nil)
		m = hydrate(t, m, f)

		_, cmd := m.Update(ServiceStateChangedMsg{Previous: playback.StateIdle, Current: playback.StateLoading})
		require.NotNil(t, cmd)

		// nothing is loading any more, so a stray tick is dropped
		_, cmd = m.Update(m.spinner.Tick())
		assert.Nil(t, cmd)
	})
}
