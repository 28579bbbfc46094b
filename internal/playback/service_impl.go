// internal/playback/service_impl.go
package playback

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/eko/internal/player"
	"github.com/llehouerou/eko/internal/playlist"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

// Option configures the service.
type Option func(*serviceImpl)

// WithVideoSurface routes play/pause intents of video tracks to v.
// Send must not block.
func WithVideoSurface(v VideoSurface) Option {
	return func(s *serviceImpl) { s.video = v }
}

// WithPersister writes the durable snapshot after every change to it.
// Nothing is written before hydration.
func WithPersister(p Persister) Option {
	return func(s *serviceImpl) { s.persister = p }
}

// WithAutoAdvance plays the next queue entry when a track ends.
func WithAutoAdvance(enabled bool) Option {
	return func(s *serviceImpl) { s.autoAdvance = enabled }
}

// WithLogger sets the service logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *serviceImpl) { s.log = log.With().Str("component", "playback").Logger() }
}

type serviceImpl struct {
	mu sync.Mutex

	adapter     Adapter
	video       VideoSurface
	persister   Persister
	autoAdvance bool
	log         zerolog.Logger

	// gen is the last handle generation returned by the adapter.
	// Older events describe superseded requests.
	gen uint64

	current            *playlist.Track
	state              State
	position           time.Duration
	duration           time.Duration
	volume             float64
	muted              bool
	favorites          map[string]struct{}
	visible            bool
	queue              *playlist.Queue
	repeat             RepeatMode
	shuffle            bool
	reduceTransparency bool

	hydrated   bool
	hydratedCh chan struct{}

	subs   []*Subscription
	subsMu sync.RWMutex

	done     chan struct{}
	loopDone chan struct{}
	closed   bool
}

// New creates the playback service and starts consuming adapter events.
func New(adapter Adapter, opts ...Option) Service {
	s := &serviceImpl{
		adapter:    adapter,
		log:        zerolog.Nop(),
		volume:     1,
		favorites:  make(map[string]struct{}),
		queue:      playlist.NewQueue(),
		hydratedCh: make(chan struct{}),
		done:       make(chan struct{}),
		loopDone:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.run()
	return s
}

// PlayTrack selects track and plays it. Selecting the current track again
// toggles it instead of reloading. The overlay is always shown.
func (s *serviceImpl) PlayTrack(track playlist.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.ID == track.ID {
		s.visible = true
		s.toggleLocked()
		return
	}
	s.startTrackLocked(track)
}

// TogglePlayPause flips the playing flag of the current track.
func (s *serviceImpl) TogglePlayPause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toggleLocked()
}

func (s *serviceImpl) NextTrack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	if t, ok := s.queue.After(s.current.ID); ok {
		s.stepToLocked(t)
	}
}

func (s *serviceImpl) PrevTrack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	if t, ok := s.queue.Before(s.current.ID); ok {
		s.stepToLocked(t)
	}
}

// stepToLocked plays a queue neighbour. In a single-entry queue the
// neighbour is the current track, which restarts rather than toggles.
func (s *serviceImpl) stepToLocked(t playlist.Track) {
	if s.current != nil && s.current.ID == t.ID {
		s.restartLocked()
		return
	}
	s.startTrackLocked(t)
}

func (s *serviceImpl) restartLocked() {
	s.position = 0
	if s.current.IsVideo() {
		s.setStateQuietLocked(StatePlaying)
		s.sendVideoLocked(VideoLoad, s.current.Source)
		return
	}
	s.gen = s.adapter.LoadAndPlay(s.current.Source)
	s.setStateLocked(StateLoading)
}

// Seek moves the playhead of an audio track, clamped to [0, duration].
// Video tracks own their clock; seeking them is ignored.
func (s *serviceImpl) Seek(position time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.IsVideo() {
		return
	}
	position = max(0, position)
	if s.duration > 0 {
		position = min(position, s.duration)
	}
	s.adapter.Seek(position)
	s.position = position
	s.broadcast(PositionChange{Position: s.position, Duration: s.duration})
}

// Stop releases the handle and clears the current track.
func (s *serviceImpl) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current
	if prev != nil && prev.IsVideo() && s.state.IsPlaying() {
		s.sendVideoLocked(VideoPause, prev.Source)
	}
	s.gen = s.adapter.Stop()
	s.current = nil
	s.visible = false
	s.position = 0
	s.duration = 0
	s.setStateLocked(StateIdle)
	if prev != nil {
		s.broadcast(TrackChange{Previous: prev})
	}
	s.persistLocked()
}

// SetVolume stores level and unmutes.
func (s *serviceImpl) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = max(0, min(1, level))
	s.muted = false
	s.adapter.SetVolume(s.volume)
	s.persistLocked()
}

// ToggleMute flips the mute overlay. The stored volume is untouched.
func (s *serviceImpl) ToggleMute() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = !s.muted
	s.adapter.SetVolume(s.effectiveVolumeLocked())
}

func (s *serviceImpl) ToggleFavorite(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.favorites[id]; ok {
		delete(s.favorites, id)
	} else {
		s.favorites[id] = struct{}{}
	}
	s.persistLocked()
}

// SetPlaylist replaces the queue. The current track is kept.
func (s *serviceImpl) SetPlaylist(tracks []playlist.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Replace(tracks...)
	s.broadcast(QueueChange{Tracks: s.queue.Tracks()})
	s.persistLocked()
}

// SetPlayerVisible shows or hides the overlay. Without a current track the
// overlay stays hidden.
func (s *serviceImpl) SetPlayerVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = visible && s.current != nil
}

func (s *serviceImpl) SetRepeatMode(mode RepeatMode) {
	if !mode.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repeat = mode
	s.broadcast(ModeChange{RepeatMode: s.repeat, Shuffle: s.shuffle})
	s.persistLocked()
}

func (s *serviceImpl) SetShuffle(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shuffle = enabled
	s.broadcast(ModeChange{RepeatMode: s.repeat, Shuffle: s.shuffle})
	s.persistLocked()
}

func (s *serviceImpl) SetReduceTransparency(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reduceTransparency = enabled
	s.persistLocked()
}

// Hydrate merges restored fields and marks the service hydrated. A nil
// Restore keeps every default. Only the first call has an effect.
func (s *serviceImpl) Hydrate(r *Restore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hydrated {
		s.log.Debug().Msg("already hydrated")
		return
	}

	if r != nil {
		if r.CurrentTrack != nil {
			t := *r.CurrentTrack
			s.current = &t
			s.duration = t.Duration
		}
		if r.Queue != nil {
			s.queue.Replace(r.Queue...)
		}
		if r.Volume != nil && *r.Volume >= 0 && *r.Volume <= 1 {
			s.volume = *r.Volume
		}
		for _, id := range r.Favorites {
			s.favorites[id] = struct{}{}
		}
		if r.RepeatMode != nil && r.RepeatMode.Valid() {
			s.repeat = *r.RepeatMode
		}
		if r.Shuffle != nil {
			s.shuffle = *r.Shuffle
		}
		if r.ReduceTransparency != nil {
			s.reduceTransparency = *r.ReduceTransparency
		}
	}
	s.adapter.SetVolume(s.effectiveVolumeLocked())

	s.hydrated = true
	close(s.hydratedCh)
	s.log.Debug().
		Bool("track", s.current != nil).
		Int("queue", s.queue.Len()).
		Int("favorites", len(s.favorites)).
		Msg("hydrated")
}

func (s *serviceImpl) HasHydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// Hydrated is closed once hydration completes.
func (s *serviceImpl) Hydrated() <-chan struct{} {
	return s.hydratedCh
}

// Snapshot returns a copy of the full state.
func (s *serviceImpl) Snapshot() PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PlaybackState{
		CurrentTrack:       copyTrack(s.current),
		State:              s.state,
		IsPlaying:          s.state.IsPlaying(),
		CurrentTime:        s.position,
		Duration:           s.duration,
		Volume:             s.volume,
		IsMuted:            s.muted,
		Favorites:          s.favoriteIDsLocked(),
		IsPlayerVisible:    s.visible,
		Queue:              s.queue.Tracks(),
		RepeatMode:         s.repeat,
		Shuffle:            s.shuffle,
		ReduceTransparency: s.reduceTransparency,
	}
}

// CurrentTrack returns the current track, or nil if none.
func (s *serviceImpl) CurrentTrack() *playlist.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTrack(s.current)
}

func (s *serviceImpl) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsPlaying()
}

func (s *serviceImpl) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favorites[id]
	return ok
}

// Queue returns a copy of the queue.
func (s *serviceImpl) Queue() []playlist.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Tracks()
}

func (s *serviceImpl) EffectiveVolume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveVolumeLocked()
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close stops event handling and closes all subscriptions. The adapter is
// owned by the caller and left open.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	<-s.loopDone

	s.subsMu.Lock()
	for _, sub := range s.subs {
		close(sub.done)
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

func (s *serviceImpl) toggleLocked() {
	if s.current == nil {
		return
	}
	if s.current.IsVideo() {
		if s.state.IsPlaying() {
			s.setStateLocked(StatePaused)
		} else {
			s.setStateLocked(StatePlaying)
		}
		return
	}

	if s.state.IsPlaying() {
		s.gen = s.adapter.Pause()
		s.setStateLocked(StatePaused)
		return
	}
	if s.adapter.HasSource() {
		s.gen = s.adapter.Resume()
	} else {
		// Nothing loaded yet, e.g. a track restored at startup.
		s.gen = s.adapter.LoadAndPlay(s.current.Source)
	}
	s.setStateLocked(StateLoading)
}

func (s *serviceImpl) startTrackLocked(track playlist.Track) {
	prev := s.current
	if prev != nil && prev.IsVideo() && s.state.IsPlaying() {
		s.sendVideoLocked(VideoPause, prev.Source)
	}

	s.current = &track
	s.visible = true
	s.position = 0

	if track.IsVideo() {
		// The embed owns playback; free the audio handle for the next track.
		s.gen = s.adapter.Stop()
		s.duration = 0
		s.setStateQuietLocked(StatePlaying)
		s.sendVideoLocked(VideoLoad, track.Source)
	} else {
		s.gen = s.adapter.LoadAndPlay(track.Source)
		s.duration = track.Duration
		s.setStateLocked(StateLoading)
	}

	s.log.Debug().Str("track", track.ID).Stringer("kind", track.Kind).Uint64("gen", s.gen).Msg("track selected")
	s.broadcast(TrackChange{Previous: prev, Current: copyTrack(s.current)})
	s.persistLocked()
}

// setStateLocked changes the phase and forwards playing-flag changes of a
// video track to the video surface.
func (s *serviceImpl) setStateLocked(next State) {
	prev := s.state
	if !s.setStateQuietLocked(next) {
		return
	}
	if s.current == nil || !s.current.IsVideo() || prev.IsPlaying() == next.IsPlaying() {
		return
	}
	if next.IsPlaying() {
		s.sendVideoLocked(VideoPlay, s.current.Source)
	} else {
		s.sendVideoLocked(VideoPause, s.current.Source)
	}
}

func (s *serviceImpl) setStateQuietLocked(next State) bool {
	prev := s.state
	if prev == next {
		return false
	}
	s.state = next
	s.broadcast(StateChange{Previous: prev, Current: next})
	return true
}

func (s *serviceImpl) sendVideoLocked(action VideoAction, id string) {
	if s.video == nil {
		return
	}
	s.video.Send(VideoCommand{Action: action, VideoID: id})
}

func (s *serviceImpl) effectiveVolumeLocked() float64 {
	if s.muted {
		return 0
	}
	return s.volume
}

func (s *serviceImpl) favoriteIDsLocked() []string {
	return slices.Sorted(maps.Keys(s.favorites))
}

func (s *serviceImpl) persistLocked() {
	if s.persister == nil || !s.hydrated {
		return
	}
	snap := Snapshot{
		CurrentTrack:       copyTrack(s.current),
		Queue:              s.queue.Tracks(),
		Volume:             s.volume,
		Favorites:          s.favoriteIDsLocked(),
		RepeatMode:         s.repeat,
		Shuffle:            s.shuffle,
		ReduceTransparency: s.reduceTransparency,
	}
	if err := s.persister.Persist(snap); err != nil {
		s.log.Warn().Err(err).Msg("persist playback state")
	}
}

func (s *serviceImpl) run() {
	defer close(s.loopDone)
	events := s.adapter.Events()
	for {
		select {
		case <-s.done:
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			s.handleEvent(e)
		}
	}
}

func (s *serviceImpl) handleEvent(e player.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.Gen < s.gen {
		s.log.Trace().Stringer("event", e.Type).Uint64("gen", e.Gen).Uint64("current", s.gen).Msg("stale event dropped")
		return
	}
	// Video tracks never attach a source, so the handle has nothing to say
	// about them.
	if s.current == nil || s.current.IsVideo() {
		return
	}

	switch e.Type {
	case player.EventTimeUpdate:
		s.position = e.CurrentTime
		if e.Duration > 0 {
			s.duration = e.Duration
		}
		s.broadcast(PositionChange{Position: s.position, Duration: s.duration})
	case player.EventLoaded:
		if e.Duration > 0 {
			s.duration = e.Duration
		}
	case player.EventPlay:
		s.setStateLocked(StatePlaying)
	case player.EventPause:
		s.setStateLocked(StatePaused)
	case player.EventEnded:
		s.position = max(e.CurrentTime, s.duration)
		s.setStateLocked(StateEnded)
		if s.autoAdvance {
			if next, ok := s.queue.After(s.current.ID); ok && next.ID != s.current.ID {
				s.startTrackLocked(next)
			}
		}
	case player.EventError:
		s.setStateLocked(StatePaused)
		s.log.Warn().Str("track", s.current.ID).Stringer("kind", e.Kind).Str("error", e.Message).Msg("playback error")
		s.broadcast(ErrorEvent{Kind: e.Kind, Message: e.Message, Track: copyTrack(s.current)})
	}
}

// broadcast hands e to every subscriber without blocking.
func (s *serviceImpl) broadcast(e any) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.deliver(e)
	}
}

func copyTrack(t *playlist.Track) *playlist.Track {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
