package player

import (
	"bytes"
	"context"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
)

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// BeepEngine plays audio sources through the system speaker.
// Remote sources are fetched whole into memory before decoding.
type BeepEngine struct {
	client         *http.Client
	requireGesture bool

	mu       sync.Mutex
	gestured bool
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64
	queued   bool   // the source is on the speaker mixer
	atEnd    bool   // played to the end; the mixer dropped it
	seq      uint64 // bumped on every load and unload
	ended    chan struct{}
}

// BeepOption configures a BeepEngine.
type BeepOption func(*BeepEngine)

// WithHTTPClient sets the client used for remote sources.
func WithHTTPClient(c *http.Client) BeepOption {
	return func(e *BeepEngine) { e.client = c }
}

// WithGestureRequired blocks output until Gesture is called, the way a
// browser blocks autoplay before the first user interaction.
func WithGestureRequired(required bool) BeepOption {
	return func(e *BeepEngine) { e.requireGesture = required }
}

// NewBeepEngine creates an engine with nothing loaded.
func NewBeepEngine(opts ...BeepOption) *BeepEngine {
	e := &BeepEngine{
		client: &http.Client{Timeout: 30 * time.Second},
		level:  1,
		ended:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Gesture records a user interaction, unblocking output.
func (e *BeepEngine) Gesture() {
	e.mu.Lock()
	e.gestured = true
	e.mu.Unlock()
}

func (e *BeepEngine) Load(ctx context.Context, locator string) error {
	rc, name, err := e.open(ctx, locator)
	if err != nil {
		return err
	}

	streamer, format, err := decode(rc, name)
	if err != nil {
		rc.Close()
		return err
	}
	if err := ctx.Err(); err != nil {
		streamer.Close()
		return err
	}
	if err := initSpeaker(format.SampleRate); err != nil {
		streamer.Close()
		return errors.Wrap(err, "init speaker")
	}

	var out beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		out = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.unloadLocked()
	e.streamer = streamer
	e.format = format
	e.ctrl = &beep.Ctrl{Streamer: out, Paused: true}
	e.volume = &effects.Volume{Streamer: e.ctrl, Base: 2}
	e.applyVolumeLocked()
	select {
	case <-e.ended:
	default:
	}
	return nil
}

func (e *BeepEngine) Play(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.requireGesture && !e.gestured {
		return errors.Mark(errors.New("output blocked until a key is pressed"), ErrInteractionRequired)
	}
	if e.streamer == nil {
		return errors.New("no source loaded")
	}

	if e.atEnd {
		speaker.Lock()
		err := e.streamer.Seek(0)
		speaker.Unlock()
		if err != nil {
			return errors.Wrap(err, "rewind")
		}
		e.atEnd = false
	}
	if !e.queued {
		seq := e.seq
		// The callback runs on the mixer goroutine with the speaker locked.
		speaker.Play(beep.Seq(e.volume, beep.Callback(func() {
			go e.finish(seq)
		})))
		e.queued = true
	}

	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

func (e *BeepEngine) finish(seq uint64) {
	e.mu.Lock()
	if seq != e.seq || e.streamer == nil {
		e.mu.Unlock()
		return
	}
	e.atEnd = true
	e.queued = false
	e.mu.Unlock()

	select {
	case e.ended <- struct{}{}:
	default:
	}
}

func (e *BeepEngine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctrl == nil {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
}

func (e *BeepEngine) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl == nil || e.atEnd || !e.queued || e.ctrl.Paused
}

func (e *BeepEngine) Seek(pos time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return errors.New("no source loaded")
	}

	n := e.format.SampleRate.N(pos)
	n = max(0, min(n, e.streamer.Len()-1))

	speaker.Lock()
	err := e.streamer.Seek(n)
	speaker.Unlock()
	if err != nil {
		return errors.Wrap(err, "seek")
	}
	e.atEnd = false
	return nil
}

// SetVolume sets the volume level (0.0 to 1.0).
func (e *BeepEngine) SetVolume(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.level = clampVolume(level)
	e.applyVolumeLocked()
}

func (e *BeepEngine) applyVolumeLocked() {
	if e.volume == nil {
		return
	}
	speaker.Lock()
	e.volume.Volume = levelToVolume(e.level)
	e.volume.Silent = e.level <= 0
	speaker.Unlock()
}

func (e *BeepEngine) Unload() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.unloadLocked()
}

func (e *BeepEngine) unloadLocked() {
	e.seq++
	if e.queued {
		speaker.Clear()
		e.queued = false
	}
	if e.streamer != nil {
		e.streamer.Close()
	}
	e.streamer = nil
	e.ctrl = nil
	e.volume = nil
	e.atEnd = false
}

func (e *BeepEngine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.streamer != nil
}

func (e *BeepEngine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := e.streamer.Position()
	speaker.Unlock()
	return e.format.SampleRate.D(pos)
}

func (e *BeepEngine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return 0
	}
	return e.format.SampleRate.D(e.streamer.Len())
}

func (e *BeepEngine) Ended() <-chan struct{} {
	return e.ended
}

// open returns the raw source and the name used to pick a decoder.
func (e *BeepEngine) open(ctx context.Context, locator string) (io.ReadCloser, string, error) {
	u, err := url.Parse(locator)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return e.fetch(ctx, u)
	}

	p := locator
	if err == nil && u.Scheme == "file" {
		p = u.Path
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, "", errors.Wrapf(err, "open %s", p)
	}
	return f, p, nil
}

func (e *BeepEngine) fetch(ctx context.Context, u *url.URL) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", errors.Wrap(err, "build request")
	}
	resp, err := e.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		return nil, "", errors.Mark(errors.Wrapf(err, "fetch %s", u.Redacted()), ErrTransient)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := errors.Newf("fetch %s: %s", u.Redacted(), resp.Status)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			err = errors.Mark(err, ErrTransient)
		}
		return nil, "", err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		return nil, "", errors.Mark(errors.Wrap(err, "read body"), ErrTransient)
	}
	return memSource{bytes.NewReader(data)}, u.Path, nil
}

// memSource keeps the fetched bytes seekable for the decoders.
type memSource struct {
	*bytes.Reader
}

func (memSource) Close() error { return nil }

func decode(rc io.ReadCloser, name string) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case extMP3:
		streamer, format, err = mp3.Decode(rc)
	case extFLAC:
		streamer, format, err = flac.Decode(rc)
	case extWAV:
		streamer, format, err = wav.Decode(rc)
	case extOGG:
		streamer, format, err = vorbis.Decode(rc)
	default:
		return nil, beep.Format{}, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
	if err != nil {
		return nil, beep.Format{}, errors.Mark(errors.Wrapf(err, "decode %s", ext), ErrTransient)
	}
	return streamer, format, nil
}

func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	speakerSampleRate = rate
	speakerInitialized = true
	return nil
}

// levelToVolume converts a 0.0-1.0 level to beep's base-2 Volume.
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (essentially silent).
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
