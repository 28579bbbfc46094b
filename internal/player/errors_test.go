package player

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", errors.New("boom"), KindUnknown},
		{"aborted", errors.Wrap(ErrAborted, "load"), KindAborted},
		{"canceled", errors.Wrap(context.Canceled, "fetch"), KindAborted},
		{"interaction", errors.Mark(errors.New("autoplay blocked"), ErrInteractionRequired), KindInteractionRequired},
		{"transient", errors.Mark(errors.New("reset"), ErrTransient), KindTransient},
		{"deadline", context.DeadlineExceeded, KindTransient},
		{"unsupported", errors.Wrap(ErrUnsupportedFormat, ".xm"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{1, 0},
		{0.5, -1},
		{0.25, -2},
		{0, -10},
		{2, 0},
	}
	for _, tt := range tests {
		if got := levelToVolume(tt.level); got != tt.want {
			t.Errorf("levelToVolume(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
