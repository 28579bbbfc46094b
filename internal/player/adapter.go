package player

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config tunes the Adapter.
type Config struct {
	// RetryAttempts is the number of extra attempts after a transient failure.
	RetryAttempts int
	// RetryBackoff is the base delay; retry n waits n*RetryBackoff.
	RetryBackoff time.Duration
	// TimeUpdateInterval is the polling period for TimeUpdate events.
	TimeUpdateInterval time.Duration
}

// DefaultConfig returns the adapter defaults: two retries at 1s then 2s,
// four time updates per second.
func DefaultConfig() Config {
	return Config{
		RetryAttempts:      2,
		RetryBackoff:       time.Second,
		TimeUpdateInterval: 250 * time.Millisecond,
	}
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithConfig overrides the default configuration.
func WithConfig(cfg Config) Option {
	return func(a *Adapter) { a.cfg = cfg }
}

// WithLogger sets the adapter logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Adapter) { a.log = log.With().Str("component", "player").Logger() }
}

// Adapter owns the single media handle and reports what happens to it
// through Events. It is constructed once and handed to the playback store.
//
// Commands never block the caller: loads and play requests run on their own
// goroutine, and their outcome arrives later as events. Each LoadAndPlay,
// Stop, or pause of an in-flight load starts a new generation; events of
// older generations are never emitted.
type Adapter struct {
	engine Engine
	cfg    Config
	log    zerolog.Logger
	events *eventQueue

	base       context.Context
	baseCancel context.CancelFunc

	mu      sync.Mutex
	gen     uint64
	ctx     context.Context
	cancel  context.CancelFunc
	pending chan struct{} // closed when the latest play request settles
	loading bool          // a play request of the current generation is in flight
	closed  bool
}

// NewAdapter wraps an engine. Call Close to release it.
func NewAdapter(engine Engine, opts ...Option) *Adapter {
	base, baseCancel := context.WithCancel(context.Background())
	a := &Adapter{
		engine:     engine,
		cfg:        DefaultConfig(),
		log:        zerolog.Nop(),
		events:     newEventQueue(),
		base:       base,
		baseCancel: baseCancel,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ctx, a.cancel = context.WithCancel(base)
	return a
}

// Events returns the ordered event stream. It is closed by Close.
func (a *Adapter) Events() <-chan Event {
	return a.events.out
}

// Generation returns the current handle generation.
func (a *Adapter) Generation() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen
}

// HasSource returns true if a source is loaded or being loaded.
func (a *Adapter) HasSource() bool {
	return a.State().IsActive()
}

// State returns the handle state as seen from the adapter.
func (a *Adapter) State() State {
	a.mu.Lock()
	loading := a.loading
	a.mu.Unlock()
	switch {
	case loading:
		return Playing
	case !a.engine.Loaded():
		return Stopped
	case a.engine.Paused():
		return Paused
	default:
		return Playing
	}
}

// LoadAndPlay replaces the source and starts playback. The current source is
// silenced and detached before returning, so a failed load leaves nothing
// playing. A play request still pending is superseded: it is cancelled,
// awaited, and its failure swallowed before the new request touches the
// handle. An empty locator stops. Returns the generation of the new request.
func (a *Adapter) LoadAndPlay(locator string) uint64 {
	if locator == "" {
		return a.Stop()
	}

	a.mu.Lock()
	if a.closed {
		gen := a.gen
		a.mu.Unlock()
		return gen
	}
	gen := a.nextGenLocked()
	ctx := a.ctx
	wait := a.pending
	settled := make(chan struct{})
	a.pending = settled
	a.loading = true
	a.release()
	a.mu.Unlock()

	a.log.Debug().Uint64("gen", gen).Str("locator", locator).Msg("load")
	go a.request(ctx, gen, locator, wait, settled)
	return gen
}

// Toggle resumes a paused handle or pauses a playing one.
func (a *Adapter) Toggle() uint64 {
	if a.State().CanResume() {
		return a.Resume()
	}
	return a.Pause()
}

// Pause pauses synchronously and reports a pause. Pausing while a load is in
// flight cancels that load.
func (a *Adapter) Pause() uint64 {
	a.mu.Lock()
	if a.closed {
		gen := a.gen
		a.mu.Unlock()
		return gen
	}
	if a.loading {
		gen := a.nextGenLocked()
		a.loading = false
		// The request may already have installed its source.
		a.release()
		a.emitLocked(gen, Event{Type: EventPause})
		a.mu.Unlock()
		a.log.Debug().Uint64("gen", gen).Msg("pause during load")
		return gen
	}
	gen := a.gen
	a.mu.Unlock()

	if !a.State().CanPause() {
		return gen
	}
	a.engine.Pause()
	a.emit(gen, Event{Type: EventPause})
	return gen
}

// Resume plays a paused handle. The outcome arrives as a Play or Error event.
// A handle already playing reports Play again. Nothing happens if no source
// is loaded or a load is in flight.
func (a *Adapter) Resume() uint64 {
	a.mu.Lock()
	gen := a.gen
	ctx := a.ctx
	busy := a.loading || a.closed
	a.mu.Unlock()

	if busy {
		return gen
	}
	switch a.State() {
	case Stopped:
		return gen
	case Playing:
		a.emit(gen, Event{Type: EventPlay})
		return gen
	}

	go func() {
		if err := a.engine.Play(ctx); err != nil {
			kind := Classify(err)
			if kind == KindAborted || !a.isCurrent(gen) {
				return
			}
			a.log.Warn().Err(err).Stringer("kind", kind).Msg("resume failed")
			a.emit(gen, Event{Type: EventError, Kind: kind, Message: err.Error()})
			return
		}
		a.emit(gen, Event{Type: EventPlay})
	}()
	return gen
}

// Seek moves the playhead. Callers clamp to [0, duration].
func (a *Adapter) Seek(pos time.Duration) {
	if err := a.engine.Seek(pos); err != nil {
		a.log.Debug().Err(err).Dur("pos", pos).Msg("seek ignored")
	}
}

// SetVolume applies a volume level, clamped to [0,1].
func (a *Adapter) SetVolume(level float64) {
	a.engine.SetVolume(clampVolume(level))
}

// Stop pauses, detaches the source and reports a pause.
func (a *Adapter) Stop() uint64 {
	a.mu.Lock()
	gen := a.nextGenLocked()
	a.loading = false
	a.release()
	a.emitLocked(gen, Event{Type: EventPause})
	a.mu.Unlock()
	return gen
}

// Close releases the handle and closes the event stream.
func (a *Adapter) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.cancel()
	a.mu.Unlock()

	a.baseCancel()
	a.engine.Pause()
	a.engine.Unload()
	a.events.close()
}

func (a *Adapter) nextGenLocked() uint64 {
	a.gen++
	a.cancel()
	a.ctx, a.cancel = context.WithCancel(a.base)
	return a.gen
}

func (a *Adapter) isCurrent(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen == gen && !a.closed
}

func (a *Adapter) emit(gen uint64, e Event) {
	a.mu.Lock()
	a.emitLocked(gen, e)
	a.mu.Unlock()
}

func (a *Adapter) emitLocked(gen uint64, e Event) {
	if a.gen != gen || a.closed {
		return
	}
	e.Gen = gen
	a.events.push(e)
}

// request runs one play request to settlement.
func (a *Adapter) request(ctx context.Context, gen uint64, locator string, wait, settled chan struct{}) {
	defer func() {
		a.mu.Lock()
		if a.gen == gen {
			a.loading = false
		}
		a.mu.Unlock()
		close(settled)
	}()

	// The previous request was cancelled when this one was issued; wait for it
	// to let go of the handle. Its outcome no longer matters.
	if wait != nil {
		<-wait
	}

	for attempt := 0; ; attempt++ {
		err := a.attempt(ctx, gen, locator)
		if err == nil {
			return
		}
		kind := Classify(err)
		if !a.isCurrent(gen) {
			kind = KindAborted
		}

		switch {
		case kind == KindAborted:
			a.log.Debug().Uint64("gen", gen).Msg("superseded request dropped")
			return
		case kind == KindTransient && attempt < a.cfg.RetryAttempts:
			backoff := time.Duration(attempt+1) * a.cfg.RetryBackoff
			a.log.Info().Err(err).Int("attempt", attempt+1).Dur("backoff", backoff).Msg("retrying load")
			select {
			case <-time.After(backoff):
				continue
			case <-ctx.Done():
				return
			}
		}

		a.log.Warn().Err(err).Stringer("kind", kind).Str("locator", locator).Msg("playback failed")
		a.emit(gen, Event{Type: EventError, Kind: kind, Message: err.Error()})
		return
	}
}

func (a *Adapter) attempt(ctx context.Context, gen uint64, locator string) error {
	if err := a.engine.Load(ctx, locator); err != nil {
		return err
	}
	if !a.isCurrent(gen) {
		a.release()
		return ErrAborted
	}
	a.emit(gen, Event{Type: EventLoaded, Duration: a.engine.Duration()})

	if err := a.engine.Play(ctx); err != nil {
		return err
	}
	if !a.isCurrent(gen) {
		a.release()
		return ErrAborted
	}
	a.emit(gen, Event{Type: EventPlay})
	go a.clock(ctx, gen)
	return nil
}

// release silences and detaches whatever source the engine holds.
func (a *Adapter) release() {
	a.engine.Pause()
	a.engine.Unload()
}

// clock reports position while playing and the end of the source.
func (a *Adapter) clock(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(a.cfg.TimeUpdateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.engine.Ended():
			a.emit(gen, Event{
				Type:        EventEnded,
				CurrentTime: a.engine.Position(),
				Duration:    a.engine.Duration(),
			})
		case <-ticker.C:
			if a.engine.Paused() || !a.engine.Loaded() {
				continue
			}
			a.emit(gen, Event{
				Type:        EventTimeUpdate,
				CurrentTime: a.engine.Position(),
				Duration:    a.engine.Duration(),
			})
		}
	}
}

func clampVolume(level float64) float64 {
	return max(0, min(1, level))
}
