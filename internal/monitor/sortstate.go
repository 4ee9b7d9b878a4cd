package monitor

import "github.com/rileyhilliard/sysmon/internal/metrics"

// Direction is the ordering applied to the active sort column.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Header glyphs for the active column
const (
	IndicatorAsc  = "▲"
	IndicatorDesc = "▼"
)

// SortState is the process table ordering: exactly one active column and a
// direction. The zero value is not useful; start from DefaultSortState.
type SortState struct {
	Column    metrics.Column
	Direction Direction
}

// DefaultSortState sorts by CPU, highest first.
func DefaultSortState() SortState {
	return SortState{Column: metrics.ColumnCPU, Direction: Descending}
}

// Toggle returns the state after a header selection. Selecting the active
// column flips its direction; selecting any other column makes it active in
// descending order.
func (s SortState) Toggle(column metrics.Column) SortState {
	if column == s.Column {
		return SortState{Column: s.Column, Direction: s.Direction.Flip()}
	}
	return SortState{Column: column, Direction: Descending}
}

// Indicator returns the glyph the header for column should show. Only the
// active column gets one.
func (s SortState) Indicator(column metrics.Column) string {
	if column != s.Column {
		return ""
	}
	if s.Direction == Ascending {
		return IndicatorAsc
	}
	return IndicatorDesc
}

// String renders the state for the dashboard header, e.g. "cpu_percent ▼".
func (s SortState) String() string {
	return string(s.Column) + " " + s.Indicator(s.Column)
}
