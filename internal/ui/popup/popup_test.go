package popup

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialog_Render(t *testing.T) {
	d := Dialog{
		Title:   "Catalog unavailable",
		Content: "Failed to load catalog: no such file",
		Footer:  "q quit",
	}

	out := d.Render(80, 24)
	plain := ansi.Strip(out)
	for _, want := range []string{"Catalog unavailable", "no such file", "q quit"} {
		assert.Contains(t, plain, want)
	}
	assert.Less(t, len(strings.Split(out, "\n")), 24)
}

func TestDialog_TruncatesWideContent(t *testing.T) {
	d := Dialog{Title: strings.Repeat("t", 100), Content: strings.Repeat("é", 200)}

	for _, line := range strings.Split(d.Render(40, 10), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}

func TestFrame_ClipsToScreen(t *testing.T) {
	content := strings.Repeat(strings.Repeat("x", 100)+"\n", 50)

	out := Frame(content, 60, 20)
	lines := strings.Split(out, "\n")
	assert.LessOrEqual(t, len(lines), 20)
	for _, line := range lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 60)
	}
	w, h := ContentSize(60, 20)
	assert.Equal(t, 50, w)
	assert.Equal(t, 12, h)
}

func TestFrame_Centers(t *testing.T) {
	out := Frame("hi", 40, 11)

	lines := strings.Split(out, "\n")
	// 5 rows of box on an 11-row screen
	require.Len(t, lines, 3+5)
	assert.Equal(t, "", lines[0])
	row := ansi.Strip(lines[5])
	assert.Equal(t, strings.Repeat(" ", 16)+"│  hi  │", row)
}

func TestCompose(t *testing.T) {
	base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"

	got := Compose(base, "\n   XY", 10)
	assert.Equal(t, "aaaaaaaaaa\nbbbXYbbbbb\ncccccccccc", got)
}

func TestCompose_PadsShortRows(t *testing.T) {
	got := Compose("ab", "    Z", 6)
	assert.Equal(t, "ab  Z ", got)
}

func TestCompose_BlanksSplitWideRune(t *testing.T) {
	// 世 spans columns 2-3; the overlay ends inside it
	got := Compose("ab世cd", "  Z", 6)
	assert.Equal(t, "abZ cd", got)
}

func TestForward(t *testing.T) {
	key := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{" "}}

	msg := Forward(key)()
	assert.Equal(t, ForwardMsg{Key: key}, msg)
	assert.Equal(t, CloseMsg{}, Close())
}
