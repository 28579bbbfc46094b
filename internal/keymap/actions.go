package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause      Action = "play_pause"
	ActionStop           Action = "stop"
	ActionNextTrack      Action = "next_track"
	ActionPrevTrack      Action = "prev_track"
	ActionSeekForward    Action = "seek_forward"
	ActionSeekBack       Action = "seek_back"
	ActionVolumeUp       Action = "volume_up"
	ActionVolumeDown     Action = "volume_down"
	ActionToggleMute     Action = "toggle_mute"
	ActionToggleFavorite Action = "toggle_favorite"
	ActionCycleRepeat    Action = "cycle_repeat"
	ActionToggleShuffle  Action = "toggle_shuffle"
	ActionToggleOverlay  Action = "toggle_overlay"
	ActionCloseOverlay   Action = "close_overlay"
	ActionShare          Action = "share"
	ActionToggleContrast Action = "toggle_contrast"
	ActionLyrics         Action = "lyrics"
	ActionShowFavorites  Action = "show_favorites"

	// Navigation actions
	ActionMoveUp   Action = "move_up"
	ActionMoveDown Action = "move_down"
	ActionBack     Action = "back"
	ActionSelect   Action = "select" // enter - open or play
)
