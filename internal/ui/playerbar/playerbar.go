package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/eko/internal/icons"
	"github.com/llehouerou/eko/internal/lyrics"
	"github.com/llehouerou/eko/internal/playback"
	"github.com/llehouerou/eko/internal/ui/render"
)

// Height is the mini player height including borders.
const Height = 3

// minBarWidth keeps the progress bar readable on narrow terminals.
const minBarWidth = 5

// State holds everything needed to render the player.
type State struct {
	HasTrack    bool
	Video       bool
	Title       string
	Artist      string
	Category    string
	Description string
	Playing     bool
	Loading     bool
	Position    time.Duration
	Duration    time.Duration
	Volume      float64
	Muted       bool
	Favorite    bool
	RepeatMode  playback.RepeatMode
	Shuffle     bool
	Lyric       string // line at Position, empty when none
	VideoURL    string // where the video surface is served, if any
	Spinner     string // current spinner frame, shown while loading
}

// NewState builds a State from a store snapshot. lyr may be nil.
func NewState(ps playback.PlaybackState, lyr *lyrics.Lyrics) State {
	s := State{
		Playing:    ps.IsPlaying,
		Loading:    ps.State == playback.StateLoading,
		Position:   ps.CurrentTime,
		Duration:   ps.Duration,
		Volume:     ps.Volume,
		Muted:      ps.IsMuted,
		RepeatMode: ps.RepeatMode,
		Shuffle:    ps.Shuffle,
	}
	t := ps.CurrentTrack
	if t == nil {
		return s
	}
	s.HasTrack = true
	s.Video = t.IsVideo()
	s.Title = t.Title
	s.Artist = t.Artist
	s.Category = t.Category
	s.Description = t.Description
	if s.Duration <= 0 {
		s.Duration = t.Duration
	}
	for _, id := range ps.Favorites {
		if id == t.ID {
			s.Favorite = true
			break
		}
	}
	s.Lyric = lyr.TextAt(ps.CurrentTime)
	return s
}

func (s State) status() string {
	if s.Loading {
		if s.Spinner != "" {
			return s.Spinner
		}
		return "…"
	}
	return icons.Status(s.Playing)
}

// Render returns the mini player for the given width, or "" when no track
// is current.
func Render(s State, width int) string {
	if !s.HasTrack {
		return ""
	}
	innerWidth := max(width-6, 0)

	title := s.Title
	if title == "" {
		title = "Untitled"
	}
	if s.Favorite {
		title += " " + icons.Current().Favorite
	}

	right := render.Clock(s.Position)
	if s.Duration > 0 {
		right += " / " + render.Clock(s.Duration)
	}
	if !s.Video {
		right += "   " + RenderVolumeCompact(s.Volume, s.Muted)
	}

	status := statusStyle().Render(s.status())
	separator := "   "
	sepWidth := lipgloss.Width(separator)
	fixed := lipgloss.Width(status) + sepWidth*2 + lipgloss.Width(right)
	minBar := 10
	available := innerWidth - fixed - minBar - 1

	titleWidth := lipgloss.Width(title)
	catWidth := lipgloss.Width(s.Category)

	var content strings.Builder
	content.WriteString(status)
	content.WriteString(" ")

	used := 0
	switch {
	case s.Category != "" && titleWidth+sepWidth+catWidth <= available:
		content.WriteString(titleStyle().Render(title))
		content.WriteString(separator)
		content.WriteString(categoryStyle().Render(s.Category))
		used = titleWidth + sepWidth + catWidth
	case titleWidth <= available:
		content.WriteString(titleStyle().Render(title))
		used = titleWidth
	default:
		w := max(available, 10)
		content.WriteString(titleStyle().Render(render.Truncate(title, w)))
		used = w
	}

	barWidth := max(innerWidth-fixed-used-1, minBarWidth)
	content.WriteString(separator)
	if s.Video {
		// the embedded player owns its own progress
		content.WriteString(metaStyle().Render(render.Fit("video", barWidth)))
	} else {
		content.WriteString(RenderBar(s.Position, s.Duration, barWidth))
	}
	content.WriteString(separator)
	content.WriteString(metaStyle().Render(right))

	return barStyle().Padding(0, 2).Width(width - 2).Render(content.String())
}
