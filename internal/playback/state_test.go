package playback

import (
	"testing"

	"github.com/llehouerou/eko/internal/player"
)

func TestState_IsPlaying(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateIdle, false},
		{StateLoading, true},
		{StatePlaying, true},
		{StatePaused, false},
		{StateEnded, false},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.IsPlaying(); got != tt.want {
				t.Errorf("IsPlaying() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRepeatMode_Valid(t *testing.T) {
	for _, m := range []RepeatMode{RepeatOff, RepeatAll, RepeatOne} {
		if !m.Valid() {
			t.Errorf("%v.Valid() = false", m)
		}
	}
	if RepeatMode(7).Valid() {
		t.Error("RepeatMode(7).Valid() = true")
	}
	if RepeatMode(7).String() != "Unknown" {
		t.Errorf("String() = %q, want Unknown", RepeatMode(7).String())
	}
}

func TestPlaybackState_EffectiveVolume(t *testing.T) {
	s := PlaybackState{Volume: 0.4}
	if s.EffectiveVolume() != 0.4 {
		t.Errorf("EffectiveVolume() = %v, want 0.4", s.EffectiveVolume())
	}
	s.IsMuted = true
	if s.EffectiveVolume() != 0 {
		t.Errorf("muted EffectiveVolume() = %v, want 0", s.EffectiveVolume())
	}
}

func TestErrorEvent_UserMessage(t *testing.T) {
	prompt := ErrorEvent{Kind: player.KindInteractionRequired}.UserMessage()
	failed := ErrorEvent{Kind: player.KindTransient}.UserMessage()

	if prompt == failed {
		t.Errorf("interaction prompt should differ from failure message, both %q", prompt)
	}
	if failed != (ErrorEvent{Kind: player.KindUnknown}).UserMessage() {
		t.Error("transient and unknown failures should share the generic message")
	}
}
