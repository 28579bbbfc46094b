package mpris

import (
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/eko/internal/playback"
	"github.com/llehouerou/eko/internal/player"
	"github.com/llehouerou/eko/internal/playlist"
)

var (
	trackRain  = playlist.Track{ID: "rain", Title: "Rain", Artist: "eko", Category: "Sleep", Source: "/media/rain.mp3", Cover: "https://cdn.example.com/rain.jpg"}
	trackOcean = playlist.Track{ID: "ocean", Title: "Ocean", Source: "/media/ocean.mp3"}
	trackYoga  = playlist.Track{ID: "yoga", Title: "Yoga", Kind: playlist.KindVideo, Source: "dQw4w9WgXcQ"}
)

// newTestPlayer must be called inside a synctest bubble.
func newTestPlayer(t *testing.T) (*playerAdapter, playback.Service) {
	t.Helper()
	p, svc := newUnhydratedPlayer(t)
	svc.Hydrate(nil)
	return p, svc
}

func newUnhydratedPlayer(t *testing.T) (*playerAdapter, playback.Service) {
	t.Helper()
	engine := player.NewMockEngine()
	engine.SetDuration(3 * time.Minute)
	adapter := player.NewAdapter(engine)
	svc := playback.New(adapter)
	t.Cleanup(func() {
		svc.Close()
		adapter.Close()
	})
	return &playerAdapter{service: svc}, svc
}

func TestPlayer_IgnoresCommandsBeforeHydration(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, svc := newUnhydratedPlayer(t)
		svc.SetPlaylist([]playlist.Track{trackRain, trackOcean})

		canControl, _ := p.CanControl()
		assert.False(t, canControl)
		require.NoError(t, p.Play())
		require.NoError(t, p.PlayPause())
		require.NoError(t, p.Next())
		require.NoError(t, p.SetVolume(0.2))
		require.NoError(t, p.SetShuffle(true))
		synctest.Wait()

		snap := svc.Snapshot()
		assert.Nil(t, snap.CurrentTrack)
		assert.InDelta(t, 1.0, snap.Volume, 1e-9)
		assert.False(t, snap.Shuffle)

		svc.Hydrate(&playback.Restore{CurrentTrack: &trackOcean})
		canControl, _ = p.CanControl()
		assert.True(t, canControl)
		require.NoError(t, p.Play())
		synctest.Wait()
		assert.Equal(t, "ocean", svc.CurrentTrack().ID)
		assert.True(t, svc.IsPlaying())
	})
}

func TestPlayer_PlayStartsQueue(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, svc := newTestPlayer(t)

		canPlay, _ := p.CanPlay()
		assert.False(t, canPlay)

		svc.SetPlaylist([]playlist.Track{trackRain, trackOcean})
		require.NoError(t, p.Play())
		synctest.Wait()

		assert.Equal(t, "rain", svc.CurrentTrack().ID)
		status, _ := p.PlaybackStatus()
		assert.Equal(t, types.PlaybackStatusPlaying, status)
	})
}

func TestPlayer_PauseAndPlay(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, svc := newTestPlayer(t)
		svc.SetPlaylist([]playlist.Track{trackRain})
		svc.PlayTrack(trackRain)
		synctest.Wait()

		require.NoError(t, p.Pause())
		synctest.Wait()
		status, _ := p.PlaybackStatus()
		assert.Equal(t, types.PlaybackStatusPaused, status)

		require.NoError(t, p.Pause())
		assert.False(t, svc.IsPlaying(), "pause is idempotent")

		require.NoError(t, p.Play())
		synctest.Wait()
		assert.True(t, svc.IsPlaying())

		require.NoError(t, p.PlayPause())
		synctest.Wait()
		assert.False(t, svc.IsPlaying())
	})
}

func TestPlayer_NextPreviousWrap(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, svc := newTestPlayer(t)
		svc.SetPlaylist([]playlist.Track{trackRain, trackOcean})
		svc.PlayTrack(trackOcean)

		require.NoError(t, p.Next())
		assert.Equal(t, "rain", svc.CurrentTrack().ID)

		require.NoError(t, p.Previous())
		assert.Equal(t, "ocean", svc.CurrentTrack().ID)

		canNext, _ := p.CanGoNext()
		canPrev, _ := p.CanGoPrevious()
		assert.True(t, canNext)
		assert.True(t, canPrev)
	})
}

func TestPlayer_Seek(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, svc := newTestPlayer(t)
		svc.PlayTrack(trackRain)
		synctest.Wait()

		require.NoError(t, p.SetPosition(string(trackObjectPath("rain")), types.Microseconds(time.Minute.Microseconds())))
		pos, _ := p.Position()
		assert.Equal(t, time.Minute.Microseconds(), pos)

		require.NoError(t, p.Seek(types.Microseconds((30 * time.Second).Microseconds())))
		pos, _ = p.Position()
		assert.Equal(t, (90 * time.Second).Microseconds(), pos)

		require.NoError(t, p.SetPosition(string(trackObjectPath("other")), 0))
		pos, _ = p.Position()
		assert.Equal(t, (90 * time.Second).Microseconds(), pos, "stale track id ignored")
	})
}

func TestPlayer_Metadata(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, svc := newTestPlayer(t)

		meta, err := p.Metadata()
		require.NoError(t, err)
		assert.Equal(t, types.Metadata{}, meta)

		svc.PlayTrack(trackRain)
		synctest.Wait()

		meta, err = p.Metadata()
		require.NoError(t, err)
		assert.Equal(t, trackObjectPath("rain"), meta.TrackId)
		assert.Equal(t, "Rain", meta.Title)
		assert.Equal(t, []string{"eko"}, meta.Artist)
		assert.Equal(t, "Sleep", meta.Album)
		assert.Equal(t, "https://cdn.example.com/rain.jpg", meta.ArtUrl)
		assert.Equal(t, types.Microseconds((3 * time.Minute).Microseconds()), meta.Length)

		canSeek, _ := p.CanSeek()
		assert.True(t, canSeek)
	})
}

func TestPlayer_VideoCannotSeek(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, svc := newTestPlayer(t)
		svc.PlayTrack(trackYoga)

		canSeek, _ := p.CanSeek()
		assert.False(t, canSeek)
	})
}

func TestPlayer_VolumeAndModes(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, svc := newTestPlayer(t)

		require.NoError(t, p.SetVolume(0.3))
		vol, _ := p.Volume()
		assert.InDelta(t, 0.3, vol, 1e-9)

		svc.ToggleMute()
		vol, _ = p.Volume()
		assert.Zero(t, vol)

		require.NoError(t, p.SetLoopStatus(types.LoopStatusTrack))
		loop, _ := p.LoopStatus()
		assert.Equal(t, types.LoopStatusTrack, loop)
		assert.Equal(t, playback.RepeatOne, svc.Snapshot().RepeatMode)

		require.NoError(t, p.SetShuffle(true))
		shuffle, _ := p.Shuffle()
		assert.True(t, shuffle)
	})
}

func TestPlayer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, svc := newTestPlayer(t)
		svc.PlayTrack(trackRain)
		synctest.Wait()

		require.NoError(t, p.Stop())
		synctest.Wait()

		assert.Nil(t, svc.CurrentTrack())
		status, _ := p.PlaybackStatus()
		assert.Equal(t, types.PlaybackStatusStopped, status)
	})
}

func TestArtURL(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.jpg")
	require.NoError(t, os.WriteFile(cover, []byte("fake"), 0o600))

	assert.Equal(t, "", artURL(""))
	assert.Equal(t, "https://cdn.example.com/c.jpg", artURL("https://cdn.example.com/c.jpg"))
	assert.Equal(t, "file://"+cover, artURL(cover))
	assert.Equal(t, "", artURL(filepath.Join(dir, "missing.jpg")))
}
