// internal/player/mock.go
package player

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// errNoSource is returned by MockEngine.Play when nothing is loaded.
var errNoSource = errors.New("no source loaded")

// MockEngine is a scriptable Engine for tests. It is safe for concurrent use.
type MockEngine struct {
	mu        sync.Mutex
	loaded    bool
	paused    bool
	locator   string
	position  time.Duration
	duration  time.Duration
	volume    float64
	loadErrs  []error
	playErrs  []error
	loadGate  chan struct{}
	playGate  chan struct{}
	loadCalls []string
	playCalls int
	seekCalls []time.Duration
	ended     chan struct{}
}

// NewMockEngine creates an empty, paused mock handle.
func NewMockEngine() *MockEngine {
	return &MockEngine{
		paused: true,
		volume: 1,
		ended:  make(chan struct{}, 1),
	}
}

func (m *MockEngine) Load(ctx context.Context, locator string) error {
	m.mu.Lock()
	m.loadCalls = append(m.loadCalls, locator)
	gate := m.loadGate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.loadErrs) > 0 {
		err := m.loadErrs[0]
		m.loadErrs = m.loadErrs[1:]
		if err != nil {
			return err
		}
	}
	m.loaded = true
	m.paused = true
	m.locator = locator
	m.position = 0
	select {
	case <-m.ended:
	default:
	}
	return nil
}

func (m *MockEngine) Play(ctx context.Context) error {
	m.mu.Lock()
	m.playCalls++
	gate := m.playGate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.playErrs) > 0 {
		err := m.playErrs[0]
		m.playErrs = m.playErrs[1:]
		if err != nil {
			return err
		}
	}
	if !m.loaded {
		return errNoSource
	}
	if m.duration > 0 && m.position >= m.duration {
		m.position = 0
	}
	m.paused = false
	return nil
}

func (m *MockEngine) Pause() {
	m.mu.Lock()
	m.paused = true
	m.mu.Unlock()
}

func (m *MockEngine) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

func (m *MockEngine) Seek(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
	if !m.loaded {
		return errNoSource
	}
	m.position = pos
	return nil
}

func (m *MockEngine) SetVolume(level float64) {
	m.mu.Lock()
	m.volume = level
	m.mu.Unlock()
}

func (m *MockEngine) Unload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = false
	m.paused = true
	m.locator = ""
	m.position = 0
}

func (m *MockEngine) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

func (m *MockEngine) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *MockEngine) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.loaded {
		return 0
	}
	return m.duration
}

func (m *MockEngine) Ended() <-chan struct{} {
	return m.ended
}

// Test helpers

// FailLoad queues errors returned by the next Load calls, in order.
// A nil entry lets that call succeed.
func (m *MockEngine) FailLoad(errs ...error) {
	m.mu.Lock()
	m.loadErrs = append(m.loadErrs, errs...)
	m.mu.Unlock()
}

// FailPlay queues errors returned by the next Play calls, in order.
func (m *MockEngine) FailPlay(errs ...error) {
	m.mu.Lock()
	m.playErrs = append(m.playErrs, errs...)
	m.mu.Unlock()
}

// HoldLoad makes Load block until the returned release func is called or
// the request context is cancelled.
func (m *MockEngine) HoldLoad() (release func()) {
	gate := make(chan struct{})
	m.mu.Lock()
	m.loadGate = gate
	m.mu.Unlock()
	return m.releaser(gate, &m.loadGate)
}

// HoldPlay makes Play block until released or cancelled.
func (m *MockEngine) HoldPlay() (release func()) {
	gate := make(chan struct{})
	m.mu.Lock()
	m.playGate = gate
	m.mu.Unlock()
	return m.releaser(gate, &m.playGate)
}

func (m *MockEngine) releaser(gate chan struct{}, slot *chan struct{}) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			if *slot == gate {
				*slot = nil
			}
			m.mu.Unlock()
			close(gate)
		})
	}
}

// SetDuration sets the duration reported for loaded sources.
func (m *MockEngine) SetDuration(d time.Duration) {
	m.mu.Lock()
	m.duration = d
	m.mu.Unlock()
}

// SetPosition moves the playhead without recording a seek.
func (m *MockEngine) SetPosition(d time.Duration) {
	m.mu.Lock()
	m.position = d
	m.mu.Unlock()
}

// SimulateEnded plays the source to its end.
func (m *MockEngine) SimulateEnded() {
	m.mu.Lock()
	m.position = m.duration
	m.paused = true
	m.mu.Unlock()
	select {
	case m.ended <- struct{}{}:
	default:
	}
}

// Locator returns the loaded locator.
func (m *MockEngine) Locator() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locator
}

// Volume returns the last applied volume.
func (m *MockEngine) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// LoadCalls returns the locators passed to Load.
func (m *MockEngine) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

// PlayCalls returns the number of Play calls.
func (m *MockEngine) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

// SeekCalls returns the positions passed to Seek.
func (m *MockEngine) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}
