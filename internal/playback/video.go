package playback

// VideoAction is a command for the embedded video surface.
type VideoAction string

const (
	VideoPlay  VideoAction = "play"
	VideoPause VideoAction = "pause"
	// VideoLoad starts VideoID from the beginning, even if it is already cued.
	VideoLoad VideoAction = "load"
)

// VideoCommand is sent to the video surface whenever the playing flag
// changes while a video track is current, and when a video track is
// selected or restarted. No confirmation flows back.
type VideoCommand struct {
	Action  VideoAction
	VideoID string
}

// VideoSurface receives play/pause intents for video tracks.
type VideoSurface interface {
	Send(VideoCommand)
}
