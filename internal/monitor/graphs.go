package monitor

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille character rendering for high-resolution terminal graphs.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '⠀'

// sparklineBlocks are block characters for 8-level vertical resolution (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// brailleDots maps row/column to the bit offset for braille pattern
// [row][col] where row is 0-3 (top to bottom) and col is 0-1 (left to right)
var brailleDots = [4][2]uint8{
	{0, 3}, // Row 0: dots 1 and 4
	{1, 4}, // Row 1: dots 2 and 5
	{2, 5}, // Row 2: dots 3 and 6
	{6, 7}, // Row 3: dots 7 and 8
}

// clampInt clamps an integer to a range [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// clampPercent clips a value to the fixed 0-100 axis.
func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// brailleCanvas is a dot grid that records which series lit each cell.
// Series are identified by bit (1 << series index).
type brailleCanvas struct {
	width, height int
	dots          [][]uint8 // braille bit pattern per cell
	series        [][]uint8 // series mask per cell
}

func newBrailleCanvas(width, height int) *brailleCanvas {
	c := &brailleCanvas{width: width, height: height}
	c.dots = make([][]uint8, height)
	c.series = make([][]uint8, height)
	for i := range c.dots {
		c.dots[i] = make([]uint8, width)
		c.series[i] = make([]uint8, width)
	}
	return c
}

// dotsWide and dotsHigh are the canvas resolution in dots.
func (c *brailleCanvas) dotsWide() int { return c.width * 2 }
func (c *brailleCanvas) dotsHigh() int { return c.height * 4 }

// set lights the dot at (x, y), with y counted from the bottom.
func (c *brailleCanvas) set(x, y int, series uint8) {
	if x < 0 || x >= c.dotsWide() || y < 0 || y >= c.dotsHigh() {
		return
	}
	top := c.dotsHigh() - 1 - y
	row, sub := top/4, top%4
	col, subCol := x/2, x%2
	c.dots[row][col] |= 1 << brailleDots[sub][subCol]
	c.series[row][col] |= series
}

// line draws a segment between two dots, filling vertical gaps so steep
// segments stay connected.
func (c *brailleCanvas) line(x0, y0, x1, y1 int, series uint8) {
	if x1 < x0 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	if x0 == x1 {
		c.vertical(x0, y0, y1, series)
		return
	}
	prevY := y0
	for x := x0; x <= x1; x++ {
		t := float64(x-x0) / float64(x1-x0)
		y := int(math.Round(float64(y0) + t*float64(y1-y0)))
		c.vertical(x, prevY, y, series)
		prevY = y
	}
}

func (c *brailleCanvas) vertical(x, y0, y1 int, series uint8) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		c.set(x, y, series)
	}
}

// rows renders the canvas, coloring each cell by the series that lit it.
func (c *brailleCanvas) rows(colors map[uint8]lipgloss.Color, overlap lipgloss.Color) []string {
	out := make([]string, c.height)
	for r := 0; r < c.height; r++ {
		var b strings.Builder
		for col := 0; col < c.width; col++ {
			ch := string(rune(brailleBase + rune(c.dots[r][col])))
			mask := c.series[r][col]
			if mask == 0 {
				b.WriteString(ch)
				continue
			}
			color, ok := colors[mask]
			if !ok {
				color = overlap
			}
			b.WriteString(lipgloss.NewStyle().Foreground(color).Render(ch))
		}
		out[r] = b.String()
	}
	return out
}

// RenderCleanSparkline renders a single-row sparkline with a consistent accent color.
// Values use the fixed 0-100 percentage range.
func RenderCleanSparkline(data []float64, width int, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	resampled := data
	if len(data) > width {
		resampled = resampleData(data, width)
	}

	var result strings.Builder
	for _, val := range resampled {
		normalized := clampPercent(val) / 100
		idx := clampInt(int(normalized*float64(len(sparklineBlocks)-1)), len(sparklineBlocks)-1)
		result.WriteRune(sparklineBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Render(result.String())
}

// resampleData resamples data to the target size.
// When downsampling (compressing), uses max-based sampling to preserve peaks/spikes.
// When upsampling (expanding), uses linear interpolation.
func resampleData(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}

	if len(data) == targetSize {
		return data
	}

	result := make([]float64, targetSize)

	if len(data) == 1 || targetSize == 1 {
		for i := range result {
			result[i] = data[len(data)-1]
		}
		return result
	}

	// Downsampling: use max within each bucket to preserve peaks
	if len(data) > targetSize {
		bucketSize := float64(len(data)) / float64(targetSize)
		for i := 0; i < targetSize; i++ {
			start := int(float64(i) * bucketSize)
			end := int(float64(i+1) * bucketSize)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}

			maxVal := data[start]
			for j := start + 1; j < end; j++ {
				if data[j] > maxVal {
					maxVal = data[j]
				}
			}
			result[i] = maxVal
		}
		return result
	}

	// Upsampling: linear interpolation
	scale := float64(len(data)-1) / float64(targetSize-1)
	for i := 0; i < targetSize; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)

		if idx >= len(data)-1 {
			result[i] = data[len(data)-1]
		} else {
			result[i] = data[idx]*(1-frac) + data[idx+1]*frac
		}
	}

	return result
}
