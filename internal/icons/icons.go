package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Context   string
	Playlist  string
	Audio     string
	Video     string
	Play      string
	Pause     string
	Shuffle   string
	RepeatAll string
	RepeatOne string
	Favorite  string
	Volume    string
	Mute      string
	Locked    string
}

var (
	nerdIcons = Icons{
		Context:   "󰉋 ", // nf-md-folder
		Playlist:  "󰲸 ", // nf-md-playlist_music
		Audio:     " ",
		Video:     " ",
		Play:      "",
		Pause:     "",
		Shuffle:   "󰒟",
		RepeatAll: "󰑖",
		RepeatOne: "󰑘",
		Favorite:  "󰣐",
		Volume:    "󰕾",
		Mute:      "󰖁",
		Locked:    "",
	}

	unicodeIcons = Icons{
		Context:   "📁 ",
		Playlist:  "📋 ",
		Audio:     "🎵 ",
		Video:     "🎬 ",
		Play:      "▶",
		Pause:     "⏸",
		Shuffle:   "🔀",
		RepeatAll: "🔁",
		RepeatOne: "🔂",
		Favorite:  "♥",
		Volume:    "🔊",
		Mute:      "🔇",
		Locked:    "🔒",
	}

	noneIcons = Icons{
		Context:   "",
		Playlist:  "",
		Audio:     "",
		Video:     "[v] ",
		Play:      ">",
		Pause:     "||",
		Shuffle:   "[S]",
		RepeatAll: "[R]",
		RepeatOne: "[1]",
		Favorite:  "*",
		Volume:    "vol",
		Mute:      "mute",
		Locked:    "[locked]",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Current returns the active icon set.
func Current() Icons {
	return current
}

// Track prefixes a track title with its media kind icon.
func Track(title string, video bool) string {
	if video {
		return current.Video + title
	}
	return current.Audio + title
}

// Context prefixes a context title.
func Context(title string) string {
	return current.Context + title
}

// Playlist prefixes a playlist title.
func Playlist(title string) string {
	return current.Playlist + title
}

// Status returns the play or pause symbol.
func Status(playing bool) string {
	if playing {
		return current.Play
	}
	return current.Pause
}

// Volume returns the volume or mute icon.
func Volume(muted bool) string {
	if muted {
		return current.Mute
	}
	return current.Volume
}
