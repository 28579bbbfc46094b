package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/eko/internal/playback"
)

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "eko", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and optional
// interfaces. It holds no state: every read goes to the service.
// Commands are dropped until the service is hydrated, so a restored
// session cannot overwrite them.
type playerAdapter struct {
	service playback.Service
}

func (p *playerAdapter) ready() bool {
	return p.service.HasHydrated()
}

func (p *playerAdapter) Next() error {
	if !p.ready() {
		return nil
	}
	p.service.NextTrack()
	return nil
}

func (p *playerAdapter) Previous() error {
	if !p.ready() {
		return nil
	}
	p.service.PrevTrack()
	return nil
}

func (p *playerAdapter) Pause() error {
	if !p.ready() {
		return nil
	}
	if p.service.IsPlaying() {
		p.service.TogglePlayPause()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	if !p.ready() {
		return nil
	}
	p.service.TogglePlayPause()
	return nil
}

func (p *playerAdapter) Stop() error {
	if !p.ready() {
		return nil
	}
	p.service.Stop()
	return nil
}

// Play resumes the current track, or starts the queue when nothing is
// current.
func (p *playerAdapter) Play() error {
	if !p.ready() {
		return nil
	}
	if p.service.IsPlaying() {
		return nil
	}
	if p.service.CurrentTrack() != nil {
		p.service.TogglePlayPause()
		return nil
	}
	if queue := p.service.Queue(); len(queue) > 0 {
		p.service.PlayTrack(queue[0])
	}
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	if !p.ready() {
		return nil
	}
	pos := p.service.Snapshot().CurrentTime
	p.service.Seek(pos + time.Duration(offset)*time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	if !p.ready() {
		return nil
	}
	track := p.service.CurrentTrack()
	if track == nil || string(trackObjectPath(track.ID)) != trackID {
		return nil // stale request
	}
	p.service.Seek(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.service.Snapshot().State {
	case playback.StateLoading, playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateIdle, playback.StateEnded:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.service.Snapshot()
	track := snap.CurrentTrack
	if track == nil {
		return types.Metadata{}, nil
	}

	length := snap.Duration
	if length == 0 {
		length = track.Duration
	}
	meta := types.Metadata{
		TrackId: trackObjectPath(track.ID),
		Length:  types.Microseconds(length.Microseconds()),
		Title:   track.Title,
		Album:   track.Category,
		ArtUrl:  artURL(track.Cover),
	}
	if track.Artist != "" {
		meta.Artist = []string{track.Artist}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.service.EffectiveVolume(), nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	if !p.ready() {
		return nil
	}
	p.service.SetVolume(level)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.service.Snapshot().CurrentTime.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

// Next and previous wrap around, so any non-empty queue can step.
func (p *playerAdapter) CanGoNext() (bool, error) {
	return len(p.service.Queue()) > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return len(p.service.Queue()) > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.service.CurrentTrack() != nil || len(p.service.Queue()) > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	track := p.service.CurrentTrack()
	return track != nil && !track.IsVideo(), nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return p.ready(), nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.service.Snapshot().RepeatMode {
	case playback.RepeatOne:
		return types.LoopStatusTrack, nil
	case playback.RepeatAll:
		return types.LoopStatusPlaylist, nil
	case playback.RepeatOff:
		return types.LoopStatusNone, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	if !p.ready() {
		return nil
	}
	switch status {
	case types.LoopStatusNone:
		p.service.SetRepeatMode(playback.RepeatOff)
	case types.LoopStatusTrack:
		p.service.SetRepeatMode(playback.RepeatOne)
	case types.LoopStatusPlaylist:
		p.service.SetRepeatMode(playback.RepeatAll)
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.service.Snapshot().Shuffle, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	if !p.ready() {
		return nil
	}
	p.service.SetShuffle(shuffle)
	return nil
}

func trackObjectPath(id string) dbus.ObjectPath {
	h := fnv.New64a()
	h.Write([]byte(id))
	return dbus.ObjectPath(fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64()))
}
