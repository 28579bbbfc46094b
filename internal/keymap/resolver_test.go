package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(Bindings)

	tests := []struct {
		key  string
		want Action
	}{
		{" ", ActionPlayPause},
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{"right", ActionSeekForward},
		{"l", ActionSeekForward},
		{"=", ActionVolumeUp},
		{"L", ActionLyrics},
		{"F", ActionShowFavorites},
		{"f", ActionToggleFavorite},
		{"z", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.key))
		})
	}
}

func TestResolver_FirstBindingWins(t *testing.T) {
	r := NewResolver([]Binding{
		{Action: ActionStop, Keys: []string{"x"}},
		{Action: ActionQuit, Keys: []string{"x", "q"}},
	})

	assert.Equal(t, ActionStop, r.Resolve("x"))
	assert.Equal(t, ActionQuit, r.Resolve("q"))
}

func TestResolver_Empty(t *testing.T) {
	assert.Equal(t, Action(""), NewResolver(nil).Resolve("q"))
}
