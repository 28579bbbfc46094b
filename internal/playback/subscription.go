package playback

// eventBuffer is how far a subscriber may fall behind on one event kind.
const eventBuffer = 16

// Subscription receives service events, one buffered channel per kind.
// A subscriber that lets a buffer fill misses further events of that kind;
// the service never blocks on it. Done closes with the service.
type Subscription struct {
	StateChanged    <-chan StateChange
	TrackChanged    <-chan TrackChange
	PositionChanged <-chan PositionChange
	QueueChanged    <-chan QueueChange
	ModeChanged     <-chan ModeChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	state    chan StateChange
	track    chan TrackChange
	position chan PositionChange
	queue    chan QueueChange
	mode     chan ModeChange
	errs     chan ErrorEvent
	done     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		state:    make(chan StateChange, eventBuffer),
		track:    make(chan TrackChange, eventBuffer),
		position: make(chan PositionChange, eventBuffer),
		queue:    make(chan QueueChange, eventBuffer),
		mode:     make(chan ModeChange, eventBuffer),
		errs:     make(chan ErrorEvent, eventBuffer),
		done:     make(chan struct{}),
	}
	s.StateChanged, s.TrackChanged, s.PositionChanged = s.state, s.track, s.position
	s.QueueChanged, s.ModeChanged, s.Error, s.Done = s.queue, s.mode, s.errs, s.done
	return s
}

// deliver routes e to the channel for its kind.
func (s *Subscription) deliver(e any) {
	switch e := e.(type) {
	case StateChange:
		offer(s.state, e)
	case TrackChange:
		offer(s.track, e)
	case PositionChange:
		offer(s.position, e)
	case QueueChange:
		offer(s.queue, e)
	case ModeChange:
		offer(s.mode, e)
	case ErrorEvent:
		offer(s.errs, e)
	}
}

func offer[T any](ch chan<- T, e T) {
	select {
	case ch <- e:
	default:
	}
}
