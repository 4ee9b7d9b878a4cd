package monitor

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

// Chart animation settings
const (
	chartFPS            = 60
	springFrequency     = 8.0
	springDamping       = 1.0
	animationSettleDist = 0.05
)

// chartFrameInterval is the delay between animation frames.
const chartFrameInterval = time.Second / chartFPS

// Series bits on the braille canvas
const (
	cpuSeries uint8 = 1 << iota
	memSeries
)

// Legend labels
const (
	LegendCPU    = "CPU %"
	LegendMemory = "Memory %"
)

const yAxisWidth = 4 // "100┤"

// pointAnim eases the newest point of a series toward its stored value.
type pointAnim struct {
	pos    float64
	vel    float64
	target float64
	active bool
}

// ChartRenderer turns SeriesSnapshots into a two-series line chart with a
// fixed 0-100 Y axis. The window's slots are spaced evenly across the plot so
// the line grows left to right until the buffer is full.
type ChartRenderer struct {
	window  int
	animate bool
	spring  harmonica.Spring

	labels []string
	cpu    []float64
	mem    []float64

	cpuAnim pointAnim
	memAnim pointAnim
}

// NewChartRenderer creates a chart sized for window samples. With animate set
// the newest point springs from the previous value to the new one.
func NewChartRenderer(window int, animate bool) *ChartRenderer {
	if window < 2 {
		window = DefaultWindow
	}
	return &ChartRenderer{
		window:  window,
		animate: animate,
		spring:  harmonica.NewSpring(harmonica.FPS(chartFPS), springFrequency, springDamping),
	}
}

// Update replaces the chart data with a copy of snap.
func (c *ChartRenderer) Update(snap SeriesSnapshot) {
	prevCPU, hadCPU := c.lastDisplayed(c.cpu, c.cpuAnim)
	prevMem, _ := c.lastDisplayed(c.mem, c.memAnim)

	c.labels = append([]string(nil), snap.Labels...)
	c.cpu = append([]float64(nil), snap.CPU...)
	c.mem = append([]float64(nil), snap.Mem...)

	if !c.animate || !hadCPU || len(c.cpu) == 0 {
		c.cpuAnim = pointAnim{}
		c.memAnim = pointAnim{}
		return
	}

	c.cpuAnim = startAnim(prevCPU, c.cpu[len(c.cpu)-1], c.cpuAnim.vel)
	c.memAnim = startAnim(prevMem, c.mem[len(c.mem)-1], c.memAnim.vel)
}

func startAnim(from, to, vel float64) pointAnim {
	if math.Abs(to-from) < animationSettleDist {
		return pointAnim{}
	}
	return pointAnim{pos: from, vel: vel, target: to, active: true}
}

func (c *ChartRenderer) lastDisplayed(series []float64, anim pointAnim) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	if anim.active {
		return anim.pos, true
	}
	return series[len(series)-1], true
}

// Animating reports whether another animation frame is needed.
func (c *ChartRenderer) Animating() bool {
	return c.cpuAnim.active || c.memAnim.active
}

// Step advances the animation by one frame.
func (c *ChartRenderer) Step() {
	c.cpuAnim = c.stepAnim(c.cpuAnim)
	c.memAnim = c.stepAnim(c.memAnim)
}

func (c *ChartRenderer) stepAnim(a pointAnim) pointAnim {
	if !a.active {
		return a
	}
	a.pos, a.vel = c.spring.Update(a.pos, a.vel, a.target)
	if math.Abs(a.pos-a.target) < animationSettleDist && math.Abs(a.vel) < animationSettleDist {
		return pointAnim{}
	}
	return a
}

// Len returns the number of points on the chart.
func (c *ChartRenderer) Len() int {
	return len(c.labels)
}

// Labels returns a copy of the X-axis labels.
func (c *ChartRenderer) Labels() []string {
	return append([]string(nil), c.labels...)
}

// displayed returns the series as drawn, with the newest point at its
// animated position.
func (c *ChartRenderer) displayed() (cpu, mem []float64) {
	cpu = append([]float64(nil), c.cpu...)
	mem = append([]float64(nil), c.mem...)
	if c.cpuAnim.active && len(cpu) > 0 {
		cpu[len(cpu)-1] = c.cpuAnim.pos
	}
	if c.memAnim.active && len(mem) > 0 {
		mem[len(mem)-1] = c.memAnim.pos
	}
	return cpu, mem
}

// slotX maps a window index to a dot column.
func (c *ChartRenderer) slotX(i, dotsWide int) int {
	return int(math.Round(float64(i) * float64(dotsWide-1) / float64(c.window-1)))
}

// valueY maps a percentage to a dot row counted from the bottom.
func valueY(v float64, dotsHigh int) int {
	return int(math.Round(clampPercent(v) / 100 * float64(dotsHigh-1)))
}

// Render draws the chart into width x height cells: height rows of plot
// followed by the X axis, its labels and the legend.
func (c *ChartRenderer) Render(width, height int) string {
	plotWidth := width - yAxisWidth
	if plotWidth < 2 || height < 1 {
		return ""
	}

	canvas := newBrailleCanvas(plotWidth, height)
	cpu, mem := c.displayed()
	c.plot(canvas, cpu, cpuSeries)
	c.plot(canvas, mem, memSeries)

	rows := canvas.rows(map[uint8]lipgloss.Color{
		cpuSeries: ColorCPUSeries,
		memSeries: ColorMemSeries,
	}, ColorOverlap)

	lines := make([]string, 0, height+3)
	for i, row := range rows {
		lines = append(lines, AxisStyle.Render(yTick(i, height))+row)
	}
	lines = append(lines, AxisStyle.Render("   └"+strings.Repeat("─", plotWidth)))
	lines = append(lines, AxisStyle.Render(c.xLabels(plotWidth)))
	lines = append(lines, renderLegend())

	return strings.Join(lines, "\n")
}

func (c *ChartRenderer) plot(canvas *brailleCanvas, values []float64, series uint8) {
	if len(values) == 0 {
		return
	}
	dotsWide, dotsHigh := canvas.dotsWide(), canvas.dotsHigh()

	prevX, prevY := c.slotX(0, dotsWide), valueY(values[0], dotsHigh)
	canvas.set(prevX, prevY, series)
	for i := 1; i < len(values) && i < c.window; i++ {
		x, y := c.slotX(i, dotsWide), valueY(values[i], dotsHigh)
		canvas.line(prevX, prevY, x, y, series)
		prevX, prevY = x, y
	}
}

// yTick labels the top, middle and bottom plot rows with 100, 50 and 0.
func yTick(row, height int) string {
	switch {
	case row == 0:
		return "100┤"
	case height > 2 && row == height/2:
		return " 50┤"
	case row == height-1 && height > 1:
		return "  0┤"
	default:
		return "   │"
	}
}

// xLabels places the first label at the left edge and the last label under
// the newest point.
func (c *ChartRenderer) xLabels(plotWidth int) string {
	line := []rune(strings.Repeat(" ", yAxisWidth+plotWidth))
	if len(c.labels) == 0 {
		return string(line)
	}

	put := func(at int, s string) {
		for i, r := range s {
			if at+i >= 0 && at+i < len(line) {
				line[at+i] = r
			}
		}
	}

	first := c.labels[0]
	put(yAxisWidth, first)

	if len(c.labels) > 1 {
		last := c.labels[len(c.labels)-1]
		col := yAxisWidth + c.slotX(len(c.labels)-1, plotWidth*2)/2
		at := col - len(last) + 1
		if at < yAxisWidth+len(first)+1 {
			at = yAxisWidth + len(first) + 1
		}
		put(at, last)
	}
	return strings.TrimRight(string(line), " ")
}

func renderLegend() string {
	cpu := lipgloss.NewStyle().Foreground(ColorCPUSeries).Render("━━ " + LegendCPU)
	mem := lipgloss.NewStyle().Foreground(ColorMemSeries).Render("━━ " + LegendMemory)
	return strings.Repeat(" ", yAxisWidth) + cpu + "  " + mem
}

// chartHeight returns how many lines Render produces for a plot height.
func chartHeight(plotHeight int) int {
	return plotHeight + 3
}
