package player

import (
	"sync"
	"time"
)

// EventType names an adapter event.
type EventType int

const (
	EventTimeUpdate EventType = iota
	EventLoaded
	EventPlay
	EventPause
	EventEnded
	EventError
)

// String returns the event name as the media element would report it.
func (t EventType) String() string {
	switch t {
	case EventTimeUpdate:
		return "timeupdate"
	case EventLoaded:
		return "loaded"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is emitted by the Adapter.
//
// Gen identifies the handle generation the event belongs to. Every
// LoadAndPlay and Stop starts a new generation; consumers ignore events from
// generations older than the one the Adapter last returned to them.
type Event struct {
	Type        EventType
	Gen         uint64
	CurrentTime time.Duration // TimeUpdate, Loaded
	Duration    time.Duration // TimeUpdate, Loaded
	Kind        Kind          // Error
	Message     string        // Error
}

// eventQueue is an unbounded FIFO in front of the public events channel.
// Emitters never block and never drop; delivery order is emission order.
type eventQueue struct {
	mu     sync.Mutex
	items  []Event
	signal chan struct{}
	out    chan Event
	done   chan struct{}
}

func newEventQueue() *eventQueue {
	q := &eventQueue{
		signal: make(chan struct{}, 1),
		out:    make(chan Event),
		done:   make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *eventQueue) push(e Event) {
	q.mu.Lock()
	q.items = append(q.items, e)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *eventQueue) run() {
	defer close(q.out)
	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.mu.Unlock()
			select {
			case <-q.signal:
				continue
			case <-q.done:
				return
			}
		}
		e := q.items[0]
		q.items = q.items[1:]
		q.mu.Unlock()

		select {
		case q.out <- e:
		case <-q.done:
			return
		}
	}
}

func (q *eventQueue) close() {
	select {
	case <-q.done:
	default:
		close(q.done)
	}
}
