package errmsg

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/eko/internal/player"
)

func TestFormat(t *testing.T) {
	assert.Empty(t, Format(OpCatalogLoad, nil))
	assert.Equal(t, "Failed to load catalog: file not found",
		Format(OpCatalogLoad, errors.New("file not found")))
	assert.Equal(t, "Failed to save playback state: disk full",
		Format(OpStateSave, errors.New("disk full")))

	wrapped := errors.Wrap(errors.New("no audio device"), "open output")
	assert.Equal(t, "Failed to start playback: open output: no audio device",
		Format(OpPlaybackStart, wrapped))
}

func TestFormatWith(t *testing.T) {
	err := errors.New("yaml: line 3")

	assert.Empty(t, FormatWith(OpCatalogReload, "catalog.yaml", nil))
	assert.Equal(t, "Failed to reload catalog 'catalog.yaml': yaml: line 3",
		FormatWith(OpCatalogReload, "catalog.yaml", err))
	assert.Equal(t, Format(OpVideoListen, err), FormatWith(OpVideoListen, "", err),
		"no context reads like Format")
}

func TestPlayback(t *testing.T) {
	for kind, want := range map[player.Kind]string{
		player.KindAborted:             "",
		player.KindInteractionRequired: MsgInteractionRequired,
		player.KindTransient:           MsgPlaybackFailed,
		player.KindUnknown:             MsgPlaybackFailed,
	} {
		assert.Equal(t, want, Playback(kind), kind.String())
	}
}
