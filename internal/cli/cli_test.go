package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
contexts:
  - id: sleep
    title: Sleep
playlists:
  - id: pl-rain
    context_id: sleep
    title: Rain
tracks:
  - id: t1
    playlist_id: pl-rain
    track_number: 1
    title: Light rain
    audio_url: https://cdn.example.com/light.mp3
    duration: 95
  - id: v1
    playlist_id: pl-rain
    track_number: 2
    title: Morning flow
    youtube_id: dQw4w9WgXcQ
`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalog), 0o600))

	cfg := "[catalog]\npath = \"" + filepath.ToSlash(catalogPath) + "\"\n\n[state]\nbackend = \"memory\"\n"
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	return cfgPath
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		configPath = ""
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCatalogCommand(t *testing.T) {
	out := run(t, "--config", writeConfig(t), "catalog")

	assert.Contains(t, out, "Sleep (sleep)\n")
	assert.Contains(t, out, "  Rain (pl-rain)\n")
	assert.Contains(t, out, "Light rain  1:35")
	assert.Contains(t, out, "[v] Morning flow")
}

func TestStateShow_Empty(t *testing.T) {
	out := run(t, "--config", writeConfig(t), "state", "show")
	assert.Equal(t, "No saved state.\n", out)
}

func TestStateReset(t *testing.T) {
	out := run(t, "--config", writeConfig(t), "state", "reset")
	assert.Equal(t, "Playback state cleared.\n", out)
}

func TestCatalogCommand_MissingFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	cfg := "[catalog]\npath = \"" + filepath.ToSlash(filepath.Join(dir, "missing.yaml")) + "\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	rootCmd.SetArgs([]string{"--config", cfgPath, "catalog"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		configPath = ""
	})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open catalog")
}
