package videobridge

import (
	"encoding/json"

	"github.com/llehouerou/eko/internal/playback"
)

// Player API function names understood by the embedded YouTube player.
const (
	funcLoad  = "loadVideoById"
	funcPlay  = "playVideo"
	funcPause = "pauseVideo"
)

// Message is the postMessage payload the page forwards to the player
// iframe unchanged.
type Message struct {
	Event string `json:"event"`
	Func  string `json:"func"`
	Args  []any  `json:"args"`
}

func command(fn string, args ...any) Message {
	if args == nil {
		args = []any{}
	}
	return Message{Event: "command", Func: fn, Args: args}
}

// translate maps a surface command to player messages. loaded is the video
// currently cued on the surface.
func translate(cmd playback.VideoCommand, loaded string) []Message {
	switch cmd.Action {
	case playback.VideoPlay:
		if cmd.VideoID != "" && cmd.VideoID != loaded {
			return []Message{command(funcLoad, cmd.VideoID)}
		}
		return []Message{command(funcPlay)}
	case playback.VideoLoad:
		if cmd.VideoID == "" {
			return nil
		}
		return []Message{command(funcLoad, cmd.VideoID)}
	case playback.VideoPause:
		return []Message{command(funcPause)}
	default:
		return nil
	}
}

func encode(msgs []Message) ([][]byte, error) {
	out := make([][]byte, 0, len(msgs))
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}
