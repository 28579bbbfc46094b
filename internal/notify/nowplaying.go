package notify

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/eko/internal/playback"
	"github.com/llehouerou/eko/internal/playlist"
)

// nowPlayingTimeout is how long a track notification stays up.
const nowPlayingTimeout = 5 * time.Second

// NowPlaying announces every new current track until sub is done. Each
// notification replaces the previous one; stopping playback closes it.
func NowPlaying(n Notifier, sub *playback.Subscription, log zerolog.Logger) {
	var shown uint32
	for {
		select {
		case <-sub.Done:
			return
		case e := <-sub.TrackChanged:
			if e.Current == nil {
				if shown != 0 {
					if err := n.Close(shown); err != nil {
						log.Debug().Err(err).Msg("close notification")
					}
					shown = 0
				}
				continue
			}
			id, err := n.Notify(trackNotification(*e.Current, shown))
			if err != nil {
				log.Debug().Err(err).Msg("send notification")
				continue
			}
			shown = id
		}
	}
}

func trackNotification(t playlist.Track, replaces uint32) Notification {
	icon := "audio-x-generic"
	if t.IsVideo() {
		icon = "video-x-generic"
	}
	var body []string
	for _, s := range []string{t.Artist, t.Category} {
		if s != "" {
			body = append(body, s)
		}
	}
	return Notification{
		Title:      t.Title,
		Body:       strings.Join(body, " · "),
		Icon:       icon,
		Timeout:    nowPlayingTimeout,
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
	}
}
