// Package metrics defines the wire model shared by the sysmon backend and the
// dashboard client.
package metrics

import "strings"

// SystemStats is a whole-host snapshot returned by GET /stats.
type SystemStats struct {
	CPUPercent     float64 `json:"cpu_percent"`
	MemoryPercent  float64 `json:"memory_percent"`
	TotalProcesses int     `json:"total_processes"`
}

// ProcessInfo is one row of GET /processes.
type ProcessInfo struct {
	PID           int32   `json:"pid"`
	Name          string  `json:"name"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// Column names a sortable process field. The value doubles as the sort_by
// query parameter.
type Column string

const (
	ColumnPID    Column = "pid"
	ColumnName   Column = "name"
	ColumnCPU    Column = "cpu_percent"
	ColumnMemory Column = "memory_percent"
)

// Columns lists the process columns in display order.
var Columns = []Column{ColumnPID, ColumnName, ColumnCPU, ColumnMemory}

// Title returns the header label for the column.
func (c Column) Title() string {
	switch c {
	case ColumnPID:
		return "PID"
	case ColumnName:
		return "Name"
	case ColumnCPU:
		return "CPU %"
	case ColumnMemory:
		return "Memory %"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known columns.
func (c Column) Valid() bool {
	switch c {
	case ColumnPID, ColumnName, ColumnCPU, ColumnMemory:
		return true
	}
	return false
}

// ParseColumn converts a wire name or short alias to a Column.
// The second return value is false for unknown names.
func ParseColumn(s string) (Column, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pid":
		return ColumnPID, true
	case "name":
		return ColumnName, true
	case "cpu", "cpu_percent":
		return ColumnCPU, true
	case "mem", "memory", "memory_percent":
		return ColumnMemory, true
	}
	return "", false
}
