// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "browser"
}

// Bindings contains every key binding, in help order.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionStop, []string{"x"}, "Stop", "playback"},
	{ActionNextTrack, []string{"n"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p"}, "Previous track", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek +10s", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek -10s", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleMute, []string{"m"}, "Mute", "playback"},
	{ActionToggleFavorite, []string{"f"}, "Favorite", "playback"},
	{ActionCycleRepeat, []string{"r"}, "Cycle repeat mode", "playback"},
	{ActionToggleShuffle, []string{"s"}, "Toggle shuffle", "playback"},
	{ActionToggleOverlay, []string{"o"}, "Full-screen player", "playback"},
	{ActionCloseOverlay, []string{"esc"}, "Close player", "playback"},
	{ActionShare, []string{"y"}, "Copy share link", "playback"},
	{ActionToggleContrast, []string{"t"}, "Reduce transparency", "playback"},
	{ActionLyrics, []string{"L"}, "Lyrics", "playback"},

	// Browser
	{ActionMoveUp, []string{"k", "up"}, "Move up", "browser"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "browser"},
	{ActionSelect, []string{"enter"}, "Open / play", "browser"},
	{ActionBack, []string{"backspace"}, "Back", "browser"},
	{ActionShowFavorites, []string{"F"}, "Favorites", "browser"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
