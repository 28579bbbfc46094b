// Package helpbindings lists the key bindings in a scrollable popup.
package helpbindings

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/eko/internal/keymap"
	"github.com/llehouerou/eko/internal/ui/popup"
	"github.com/llehouerou/eko/internal/ui/render"
	"github.com/llehouerou/eko/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// sections lists binding contexts in display order.
var sections = []struct{ context, label string }{
	{"global", "Global"},
	{"playback", "Playback"},
	{"browser", "Browser"},
}

// chromeRows covers the title, the footer and the blank lines around them.
const chromeRows = 4

// Model is the help popup.
type Model struct {
	contexts      []string
	vp            viewport.Model
	width, height int
}

// New returns an empty help popup.
func New() *Model {
	return &Model{vp: viewport.New(0, 0)}
}

// SetContexts picks which binding contexts are listed and scrolls to the top.
func (m *Model) SetContexts(contexts []string) {
	m.contexts = contexts
	m.layout()
	m.vp.GotoTop()
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.layout()
}

// layout rebuilds the listing and fits the viewport around it.
func (m *Model) layout() {
	maxW, maxH := popup.ContentSize(m.width, m.height)
	lines := m.listing()
	width := 0
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, maxW, "…")
		width = max(width, lipgloss.Width(lines[i]))
	}
	m.vp.Width = width
	m.vp.Height = max(min(len(lines), maxH-chromeRows), 1)
	m.vp.SetContent(strings.Join(lines, "\n"))
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "?", "esc", "q":
		return popup.Close
	case "g", "home":
		m.vp.GotoTop()
		return nil
	case "G", "end":
		m.vp.GotoBottom()
		return nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	s := styles.T().S()
	return s.Title.Render("Help") + "\n\n" + m.vp.View() + "\n\n" + s.Subtle.Render(m.footer())
}

func (m *Model) footer() string {
	if m.vp.TotalLineCount() <= m.vp.Height {
		return "?/esc close"
	}
	return fmt.Sprintf("%3.f%% · j/k scroll · ?/esc close", m.vp.ScrollPercent()*100)
}

// listing renders one block per selected context, keys aligned in a column.
func (m *Model) listing() []string {
	t := styles.T()
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)

	type block struct {
		label    string
		bindings []keymap.Binding
	}
	var blocks []block
	keyWidth := 0
	for _, sec := range sections {
		if !slices.Contains(m.contexts, sec.context) {
			continue
		}
		bs := keymap.ByContext(sec.context)
		for _, b := range bs {
			keyWidth = max(keyWidth, lipgloss.Width(keyLabel(b.Keys)))
		}
		blocks = append(blocks, block{sec.label, bs})
	}

	var lines []string
	for i, blk := range blocks {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			headerStyle.Render(blk.label),
			t.S().Subtle.Render(render.Separator(keyWidth+15)))
		for _, b := range blk.bindings {
			key := keyStyle.Render(render.Pad(keyLabel(b.Keys), keyWidth))
			lines = append(lines, key+"  "+t.S().Base.Render(b.Description))
		}
	}
	return lines
}

// keyLabel joins keys for display; a bare space is unreadable.
func keyLabel(keys []string) string {
	labels := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		labels[i] = k
	}
	return strings.Join(labels, ", ")
}
