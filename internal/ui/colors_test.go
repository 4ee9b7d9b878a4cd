package ui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestColorConstants(t *testing.T) {
	colors := []lipgloss.Color{
		ColorNeonPink,
		ColorNeonCyan,
		ColorNeonPurple,
		ColorNeonGreen,
		ColorNeonOrange,
		ColorNeonAmber,
		ColorDeepVoid,
		ColorDarkSurface,
		ColorGlassBorder,
		ColorSuccess,
		ColorError,
		ColorWarning,
		ColorInfo,
		ColorPrimary,
		ColorSecondary,
		ColorMuted,
	}

	for _, color := range colors {
		colorStr := string(color)
		assert.NotEmpty(t, colorStr, "color should not be empty")
		assert.True(t, colorStr[0] == '#', "color should start with #: %s", colorStr)
		assert.Len(t, colorStr, 7, "color should be 7 chars (#RRGGBB): %s", colorStr)
	}
}

func TestGradientColors(t *testing.T) {
	assert.Len(t, GradientColors, 4)
	for i, color := range GradientColors {
		assert.True(t, string(color)[0] == '#', "gradient color %d should start with #", i)
	}
}

func TestStylesAreFunctional(t *testing.T) {
	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Success", SuccessStyle()},
		{"Error", ErrorStyle()},
		{"Warning", WarningStyle()},
		{"Info", InfoStyle()},
		{"Muted", MutedStyle()},
	}

	for _, tt := range styles {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.style.Render("text"), "text")
		})
	}
}

func TestPrintWarning(t *testing.T) {
	var buf bytes.Buffer
	PrintWarning(&buf, "test warning message")

	assert.Contains(t, buf.String(), "test warning message")
	assert.Contains(t, buf.String(), SymbolWarning)
}

func TestPrintSuccess(t *testing.T) {
	var buf bytes.Buffer
	PrintSuccess(&buf, "wrote .sysmon.yaml")

	assert.Contains(t, buf.String(), "wrote .sysmon.yaml")
	assert.Contains(t, buf.String(), SymbolSuccess)
}

func TestDisableColors(t *testing.T) {
	prev := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	lipgloss.SetColorProfile(termenv.TrueColor)
	DisableColors()

	assert.Equal(t, "test", SuccessStyle().Render("test"))
}
