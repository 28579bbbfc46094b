// internal/app/handlers_playback.go
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/eko/internal/errmsg"
	"github.com/llehouerou/eko/internal/keymap"
	"github.com/llehouerou/eko/internal/playback"
	"github.com/llehouerou/eko/internal/share"
	"github.com/llehouerou/eko/internal/ui/catalogbrowser"
	"github.com/llehouerou/eko/internal/ui/styles"
)

const (
	seekStep   = 10 * time.Second
	volumeStep = 0.1
)

// nextRepeatMode cycles Off → All → One → Off.
func nextRepeatMode(mode playback.RepeatMode) playback.RepeatMode {
	switch mode {
	case playback.RepeatOff:
		return playback.RepeatAll
	case playback.RepeatAll:
		return playback.RepeatOne
	default:
		return playback.RepeatOff
	}
}

func (m *Model) handlePlaybackAction(action keymap.Action) (tea.Cmd, bool) {
	svc := m.deps.Playback
	ps := svc.Snapshot()

	switch action {
	case keymap.ActionPlayPause:
		return m.togglePlayPause(ps), true
	case keymap.ActionStop:
		svc.Stop()
	case keymap.ActionNextTrack:
		svc.NextTrack()
	case keymap.ActionPrevTrack:
		svc.PrevTrack()
	case keymap.ActionSeekForward:
		svc.Seek(ps.CurrentTime + seekStep)
	case keymap.ActionSeekBack:
		svc.Seek(ps.CurrentTime - seekStep)
	case keymap.ActionVolumeUp:
		svc.SetVolume(ps.Volume + volumeStep)
	case keymap.ActionVolumeDown:
		svc.SetVolume(ps.Volume - volumeStep)
	case keymap.ActionToggleMute:
		svc.ToggleMute()
	case keymap.ActionToggleFavorite:
		return m.toggleFavorite(ps), true
	case keymap.ActionCycleRepeat:
		svc.SetRepeatMode(nextRepeatMode(ps.RepeatMode))
	case keymap.ActionToggleShuffle:
		svc.SetShuffle(!ps.Shuffle)
	case keymap.ActionToggleOverlay:
		svc.SetPlayerVisible(!ps.IsPlayerVisible)
	case keymap.ActionCloseOverlay:
		if !ps.IsPlayerVisible {
			return nil, false
		}
		svc.SetPlayerVisible(false)
	case keymap.ActionShare:
		return m.shareLink(ps), true
	case keymap.ActionLyrics:
		if ps.CurrentTrack == nil {
			return nil, false
		}
		m.syncTrack()
		m.LyricsView.SetPosition(ps.CurrentTime)
		m.LyricsView.SetSize(m.width, m.height)
		m.Popup = m.LyricsView
	case keymap.ActionToggleContrast:
		svc.SetReduceTransparency(!ps.ReduceTransparency)
		styles.SetReduceTransparency(!ps.ReduceTransparency)
	default:
		return nil, false
	}
	return nil, true
}

// togglePlayPause toggles the current track. Without one it starts the
// head of the queue, then the track under the cursor.
func (m *Model) togglePlayPause(ps playback.PlaybackState) tea.Cmd {
	svc := m.deps.Playback
	switch {
	case ps.CurrentTrack != nil:
		svc.TogglePlayPause()
	case len(ps.Queue) > 0:
		svc.PlayTrack(ps.Queue[0])
	case m.Browser.SelectedTrack() != nil:
		play, err := m.Browser.Enter(context.Background())
		if err == nil && play != nil {
			return m.play(play)
		}
	}
	return nil
}

// play replaces the queue and starts the requested track, unless the
// playlist is locked.
func (m *Model) play(p *catalogbrowser.Play) tea.Cmd {
	if !m.deps.Gate.Entitled(p.PlaylistID) {
		return m.notify(errmsg.MsgNotEntitled)
	}
	m.deps.Playback.SetPlaylist(p.Queue)
	m.deps.Playback.PlayTrack(p.Track)
	m.syncTrack()
	m.resize()
	return nil
}

func (m *Model) toggleFavorite(ps playback.PlaybackState) tea.Cmd {
	target := ps.CurrentTrack
	if target == nil {
		target = m.Browser.SelectedTrack()
	}
	if target == nil {
		return nil
	}
	m.deps.Playback.ToggleFavorite(target.ID)

	text := "Removed from favorites"
	if m.deps.Playback.IsFavorite(target.ID) {
		text = "Added to favorites"
	}
	return m.notify(text)
}

// shareLink copies a link to the current track at the playhead, or to the
// selected playlist when nothing is playing.
func (m *Model) shareLink(ps playback.PlaybackState) tea.Cmd {
	var (
		link string
		err  error
	)
	switch {
	case ps.CurrentTrack != nil:
		at := ps.CurrentTime
		if ps.CurrentTrack.IsVideo() {
			at = 0
		}
		link, err = share.TrackLink(m.deps.ShareBaseURL, *ps.CurrentTrack, at)
	case m.Browser.SelectedPlaylist() != nil:
		link, err = share.PlaylistLink(m.deps.ShareBaseURL, m.Browser.SelectedPlaylist().ID, m.deps.ShareRef)
	default:
		err = share.ErrNoID
	}
	if err != nil {
		return m.notify(errmsg.Format(errmsg.OpShareLink, err))
	}

	if m.deps.Copy != nil {
		cerr := m.deps.Copy(link)
		if cerr == nil {
			return m.notify("Link copied: " + link)
		}
		m.deps.Log.Debug().Err(cerr).Msg("clipboard unavailable")
	}
	return m.notify("Share: " + link)
}

// notify shows a toast and schedules its removal.
func (m *Model) notify(text string) tea.Cmd {
	m.nextNotifID++
	m.notification = &Notification{ID: m.nextNotifID, Message: text}
	return NotificationClearCmd(m.nextNotifID)
}
