package monitor

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/rileyhilliard/sysmon/internal/metrics"
)

// CellClass marks a table cell for highlighting.
type CellClass string

const (
	ClassNone       CellClass = ""
	ClassCPUHigh    CellClass = "cpu-high"
	ClassMemoryHigh CellClass = "memory-high"
)

// Highlight thresholds. A value strictly greater than the threshold is high.
const (
	CPUHighThreshold    = 30.0
	MemoryHighThreshold = 20.0
)

// Fixed column widths; the name column takes whatever is left.
const (
	pidColumnWidth     = 9
	percentColumnWidth = 11
	minNameWidth       = 8
	columnGap          = 1
)

// HeaderCell is one column header.
type HeaderCell struct {
	Column    metrics.Column
	Title     string
	Indicator string
}

// Label is the header text including the sort glyph, if any.
func (h HeaderCell) Label() string {
	if h.Indicator == "" {
		return h.Title
	}
	return h.Title + " " + h.Indicator
}

// Cell is one rendered table value.
type Cell struct {
	Text  string
	Class CellClass
}

// Row is one process line, cells in metrics.Columns order.
type Row struct {
	PID   int32
	Cells []Cell
}

// TableView is the render tree for the process table. It is rebuilt from
// scratch on every RenderTable call.
type TableView struct {
	Headers []HeaderCell
	Rows    []Row
	Sort    SortState
}

// RenderTable sorts a copy of procs according to state and builds the
// table view. The input slice is not modified.
func RenderTable(procs []metrics.ProcessInfo, state SortState) TableView {
	sorted := SortProcesses(procs, state)

	view := TableView{
		Headers: make([]HeaderCell, len(metrics.Columns)),
		Rows:    make([]Row, len(sorted)),
		Sort:    state,
	}
	for i, col := range metrics.Columns {
		view.Headers[i] = HeaderCell{
			Column:    col,
			Title:     col.Title(),
			Indicator: state.Indicator(col),
		}
	}
	for i, p := range sorted {
		view.Rows[i] = Row{
			PID: p.PID,
			Cells: []Cell{
				{Text: strconv.FormatInt(int64(p.PID), 10)},
				{Text: SanitizeName(p.Name)},
				{Text: FormatPercent(p.CPUPercent), Class: cpuClass(p.CPUPercent)},
				{Text: FormatPercent(p.MemoryPercent), Class: memoryClass(p.MemoryPercent)},
			},
		}
	}
	return view
}

// SortProcesses returns a stably sorted copy of procs. The natural comparison
// orders each column descending; ascending is its negation.
func SortProcesses(procs []metrics.ProcessInfo, state SortState) []metrics.ProcessInfo {
	out := make([]metrics.ProcessInfo, len(procs))
	copy(out, procs)

	sort.SliceStable(out, func(i, j int) bool {
		c := naturalCompare(out[i], out[j], state.Column)
		if state.Direction == Ascending {
			c = -c
		}
		return c < 0
	})
	return out
}

// naturalCompare returns a negative number when a belongs before b in
// descending order.
func naturalCompare(a, b metrics.ProcessInfo, col metrics.Column) int {
	switch col {
	case metrics.ColumnPID:
		return compareInt(int64(b.PID), int64(a.PID))
	case metrics.ColumnName:
		return strings.Compare(b.Name, a.Name)
	case metrics.ColumnMemory:
		return compareFloat(b.MemoryPercent, a.MemoryPercent)
	default:
		return compareFloat(b.CPUPercent, a.CPUPercent)
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cpuClass(v float64) CellClass {
	if v > CPUHighThreshold {
		return ClassCPUHigh
	}
	return ClassNone
}

func memoryClass(v float64) CellClass {
	if v > MemoryHighThreshold {
		return ClassMemoryHigh
	}
	return ClassNone
}

// FormatPercent renders a value in its shortest exact decimal form, so 45.2
// stays "45.2" and 3 stays "3".
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SanitizeName makes a process name safe to print: escape sequences are
// stripped and remaining control characters become spaces.
func SanitizeName(name string) string {
	stripped := ansi.Strip(name)
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			return ' '
		}
		return r
	}, stripped)
}

// columnWidths lays the four columns out across width cells.
func columnWidths(width int) []int {
	name := width - pidColumnWidth - 2*percentColumnWidth - 3*columnGap
	if name < minNameWidth {
		name = minNameWidth
	}
	return []int{pidColumnWidth, name, percentColumnWidth, percentColumnWidth}
}

// ColumnAt maps a horizontal cell offset on the header line to the column
// under it. Clicks in a gap or past the last column report false.
func (v TableView) ColumnAt(x, width int) (metrics.Column, bool) {
	if x < 0 {
		return "", false
	}
	start := 0
	for i, w := range columnWidths(width) {
		if x >= start && x < start+w {
			return v.Headers[i].Column, true
		}
		start += w + columnGap
	}
	return "", false
}

// Render draws the header line and at most maxRows process rows. maxRows <= 0
// renders every row.
func (v TableView) Render(width, maxRows int) string {
	widths := columnWidths(width)
	gap := strings.Repeat(" ", columnGap)

	headers := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		style := TableHeaderStyle
		if h.Indicator != "" {
			style = TableHeaderActiveStyle
		}
		headers[i] = style.Render(fit(h.Label(), widths[i], i >= 2))
	}

	lines := []string{strings.Join(headers, gap)}

	rows := v.Rows
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	for _, r := range rows {
		cells := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			cells[i] = cellStyle(c.Class).Render(fit(c.Text, widths[i], i >= 2))
		}
		lines = append(lines, strings.Join(cells, gap))
	}

	if len(v.Rows) == 0 {
		lines = append(lines, LabelStyle.Render("no processes"))
	}

	return strings.Join(lines, "\n")
}

func cellStyle(class CellClass) lipgloss.Style {
	switch class {
	case ClassCPUHigh:
		return CPUHighStyle
	case ClassMemoryHigh:
		return MemoryHighStyle
	default:
		return TableCellStyle
	}
}

// fit truncates s to w cells and pads it, right-aligning numeric columns.
func fit(s string, w int, right bool) string {
	s = ansi.Truncate(s, w, "…")
	pad := w - ansi.StringWidth(s)
	if pad <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}
