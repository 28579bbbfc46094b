package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetReduceTransparency(t *testing.T) {
	defer SetReduceTransparency(false)

	if ReduceTransparency() {
		t.Fatal("default theme should be active")
	}
	SetReduceTransparency(true)
	if !ReduceTransparency() || T() != &solidTheme {
		t.Fatal("solid theme should be active")
	}
	if T().S() == nil {
		t.Fatal("solid theme styles missing")
	}
	SetReduceTransparency(false)
	if T() != &defaultTheme {
		t.Fatal("default theme should be restored")
	}
}

func TestHeading(t *testing.T) {
	defer SetReduceTransparency(false)

	assert.Empty(t, Heading(""))
	for _, solid := range []bool{false, true} {
		SetReduceTransparency(solid)
		out := Heading("Now playing")
		assert.Equal(t, 11, lipgloss.Width(out))
		assert.Equal(t, "Now playing", ansi.Strip(out))
	}
}

func TestBlend(t *testing.T) {
	colors := blend("#000000", "#ffffff", 5)
	require.Len(t, colors, 5)
	assert.Equal(t, lipgloss.Color("#000000"), colors[0])
	assert.Equal(t, lipgloss.Color("#ffffff"), colors[4])

	assert.Nil(t, blend("#000000", "#ffffff", 1))
	assert.Nil(t, blend("12", "#ffffff", 3), "ANSI colors do not blend")
}
