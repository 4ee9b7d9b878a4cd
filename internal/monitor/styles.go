package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent    = lipgloss.Color("#FF2E97")
	ColorAccentDim = lipgloss.Color("#BF40FF")

	// Series colors for the chart
	ColorCPUSeries = lipgloss.Color("#00FFFF")
	ColorMemSeries = lipgloss.Color("#FF2E97")
	ColorOverlap   = lipgloss.Color("#BF40FF")
)

// Thresholds for the stats-line gauges
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	AxisStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	// Table styles
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary).
				Bold(true)

	TableHeaderActiveStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	// High-usage cell classes
	CPUHighStyle = lipgloss.NewStyle().
			Foreground(ColorCritical).
			Bold(true)

	MemoryHighStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)
)

// Loading spinner frames
var ConnectingSpinnerFrames = []string{"◐", "◓", "◑", "◒"}

// MetricColor returns the gauge color for a percentage: green < 70%, amber
// 70-90%, red >= 90%.
func MetricColor(percent float64) lipgloss.Color {
	switch {
	case percent >= CriticalThreshold:
		return ColorCritical
	case percent >= WarningThreshold:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// ThinProgressBar renders a one-line gauge using ━ for the filled part and ─
// for the rest. Percentages are clamped to 0-100.
func ThinProgressBar(width int, percent float64) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
	return lipgloss.NewStyle().Foreground(MetricColor(percent)).Render(bar)
}
