package player

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Kind classifies a playback failure.
type Kind int

const (
	// KindUnknown failures are surfaced immediately and never retried.
	KindUnknown Kind = iota
	// KindAborted means a newer command superseded the request. Never surfaced.
	KindAborted
	// KindInteractionRequired means output is blocked until the user acts.
	KindInteractionRequired
	// KindTransient covers network and decode failures; retried with backoff.
	KindTransient
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "Unknown"
	case KindAborted:
		return "Aborted"
	case KindInteractionRequired:
		return "InteractionRequired"
	case KindTransient:
		return "Transient"
	default:
		return "Unknown"
	}
}

// Marks attached by engines to their errors. Use errors.Mark(err, ErrTransient)
// to tag a failure without losing its message.
var (
	ErrAborted             = errors.New("playback aborted")
	ErrInteractionRequired = errors.New("user interaction required")
	ErrTransient           = errors.New("transient playback failure")
)

// ErrUnsupportedFormat is returned for locators with no known decoder.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Classify maps an engine error to its Kind.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrAborted), errors.Is(err, context.Canceled):
		return KindAborted
	case errors.Is(err, ErrInteractionRequired):
		return KindInteractionRequired
	case errors.Is(err, ErrTransient), errors.Is(err, context.DeadlineExceeded):
		return KindTransient
	default:
		return KindUnknown
	}
}
