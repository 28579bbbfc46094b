// Package lyrics shows the current track's lyrics in a popup that follows
// playback.
package lyrics

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/eko/internal/lyrics"
	"github.com/llehouerou/eko/internal/ui/popup"
	"github.com/llehouerou/eko/internal/ui/render"
	"github.com/llehouerou/eko/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// chromeRows covers the title, the footer and the blank lines around them.
const chromeRows = 4

// Model is the lyrics popup.
type Model struct {
	lyrics  *lyrics.Lyrics
	current int  // active line, -1 before the first
	follow  bool // keep the active line centered

	vp            viewport.Model
	width, height int

	trackID  string
	title    string
	artist   string
	duration time.Duration
	position time.Duration
}

// New returns an empty lyrics popup.
func New() *Model {
	return &Model{current: -1, follow: true, vp: viewport.New(0, 0)}
}

// SetTrack shows lyr for a new track. Calling it again for the same track
// id only refreshes the duration.
func (m *Model) SetTrack(id, title, artist string, lyr *lyrics.Lyrics, duration time.Duration) {
	m.duration = duration
	if id == m.trackID {
		return
	}
	m.trackID, m.title, m.artist = id, title, artist
	m.lyrics = lyr
	m.current = -1
	m.follow = true
	m.position = 0
	m.layout()
	m.vp.GotoTop()
}

// TrackID returns the id of the track shown.
func (m *Model) TrackID() string {
	return m.trackID
}

// CurrentLine returns the index of the active line, -1 before the first.
func (m *Model) CurrentLine() int {
	return m.current
}

// SetPosition moves the highlight to the line sung at pos.
func (m *Model) SetPosition(pos time.Duration) {
	m.position = pos
	if !m.hasLines() {
		return
	}
	if line := m.lyrics.LineAt(pos); line != m.current {
		m.current = line
		m.layout()
		if m.follow {
			m.center()
		}
	}
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.layout()
	if m.follow {
		m.center()
	}
}

func (m *Model) hasLines() bool {
	return m.lyrics != nil && len(m.lyrics.Lines) > 0
}

// layout renders the lines with the active one highlighted and fits the
// viewport around them.
func (m *Model) layout() {
	if !m.hasLines() {
		m.vp.SetContent("")
		return
	}
	t := styles.T()
	active := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	maxW, maxH := popup.ContentSize(m.width, m.height)

	lines := make([]string, len(m.lyrics.Lines))
	width := 0
	for i, l := range m.lyrics.Lines {
		text := "  " + l.Text
		style := t.S().Subtle
		if i == m.current {
			text, style = "▶ "+l.Text, active
		}
		lines[i] = style.Render(ansi.Truncate(text, maxW, "…"))
		width = max(width, lipgloss.Width(lines[i]))
	}
	m.vp.Width = width
	m.vp.Height = max(min(len(lines), maxH-chromeRows), 1)
	m.vp.SetContent(strings.Join(lines, "\n"))
}

func (m *Model) center() {
	if m.current >= 0 {
		m.vp.SetYOffset(m.current - m.vp.Height/2)
	}
}

// Update implements popup.Popup. Keys the popup does not bind go back to
// the app so playback stays under control.
func (m *Model) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "L":
		return popup.Close
	case "j", "down":
		m.follow = false
		m.vp.SetYOffset(m.vp.YOffset + 1)
	case "k", "up":
		m.follow = false
		m.vp.SetYOffset(m.vp.YOffset - 1)
	case "g":
		m.follow = false
		m.vp.GotoTop()
	case "G":
		m.follow = false
		m.vp.GotoBottom()
	case "c":
		m.follow = true
		m.center()
	default:
		return popup.Forward(msg)
	}
	return nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	s := styles.T().S()
	body := m.vp.View()
	if !m.hasLines() {
		info := m.title
		if m.artist != "" {
			info += " - " + m.artist
		}
		body = s.Subtle.Render("No lyrics for this track") + "\n\n" + s.Subtle.Render(info)
	}
	return s.Title.Render("Lyrics") + "\n\n" + body + "\n\n" + s.Subtle.Render(m.footer())
}

func (m *Model) footer() string {
	var parts []string
	if m.duration > 0 {
		parts = append(parts, render.Clock(m.position)+" / "+render.Clock(m.duration))
	}
	if m.hasLines() {
		switch {
		case !m.lyrics.IsSynced():
			parts = append(parts, "unsynced")
		case m.follow:
			parts = append(parts, "synced")
		default:
			parts = append(parts, "c sync")
		}
		if m.vp.TotalLineCount() > m.vp.Height {
			parts = append(parts, "j/k scroll")
		}
	}
	parts = append(parts, "esc close")
	return strings.Join(parts, " · ")
}
