package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 80
	minChartWidth = 24
	gaugeWidth    = 10
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderAboveTable())
	b.WriteString("\n")
	b.WriteString(m.table.Render(m.contentWidth(), m.tableRows()))
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderAboveTable renders everything between the top of the screen and the
// table header: title bar, stats line and chart.
func (m Model) renderAboveTable() string {
	sections := []string{m.renderHeader(), "", m.renderStats(), ""}
	if chart := m.renderChart(); chart != "" {
		sections = append(sections, chart, "")
	}
	return strings.Join(sections, "\n")
}

// tableHeaderRow is the screen row of the table header line.
func (m Model) tableHeaderRow() int {
	return lipgloss.Height(m.renderAboveTable())
}

// tableRows is how many process rows fit below the header. Zero means
// unbounded, used before the first WindowSizeMsg.
func (m Model) tableRows() int {
	if m.height == 0 {
		return 0
	}
	rows := m.height - m.tableHeaderRow() - 1 - 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) contentWidth() int {
	if m.width == 0 {
		return defaultWidth
	}
	return m.width
}

// renderHeader renders the title bar with sort state and data age.
func (m Model) renderHeader() string {
	var updateText string
	switch lastUpdate := m.SecondsSinceUpdate(); lastUpdate {
	case -1:
		updateText = "waiting for data"
	case 0:
		updateText = "updated just now"
	default:
		updateText = fmt.Sprintf("updated %ds ago", lastUpdate)
	}

	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("sysmon")

	info := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(fmt.Sprintf(" | %s | sort %s | %s", m.source, m.sort, updateText))

	return HeaderStyle.Render(title + info)
}

// renderStats renders the summary line with CPU and memory gauges.
func (m Model) renderStats() string {
	if m.stats == nil {
		return m.spinner.View() + " " + LabelStyle.Render("Connecting to "+m.source+"...")
	}

	gauges := fmt.Sprintf("  %s %s  %s %s",
		LabelStyle.Render("cpu"), ThinProgressBar(gaugeWidth, m.stats.CPUPercent),
		LabelStyle.Render("mem"), ThinProgressBar(gaugeWidth, m.stats.MemoryPercent))

	return ValueStyle.Render(m.statsText) + gauges
}

// renderChart renders the CPU/memory history, or nothing on narrow
// terminals.
func (m Model) renderChart() string {
	width := m.contentWidth()
	if width < minChartWidth {
		return m.renderNarrowChart(width)
	}
	return m.chart.Render(width, m.chartHeight)
}

// renderNarrowChart falls back to a one-row CPU sparkline when the braille
// chart doesn't fit.
func (m Model) renderNarrowChart(width int) string {
	series := m.buffer.Snapshot()
	if series.Len() == 0 {
		return ""
	}
	return LabelStyle.Render("cpu ") + RenderCleanSparkline(series.CPU, width-4, ColorCPUSeries)
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"r refresh",
		"1-4 sort",
		"? help",
	}

	return FooterStyle.Render(strings.Join(hints, " | "))
}
