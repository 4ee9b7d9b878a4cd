package monitor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/sysmon/internal/metrics"
)

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyRefresh    = "r"
	KeySortPID    = "1"
	KeySortPIDAlt = "p"
	KeySortName   = "2"
	KeySortNameN  = "n"
	KeySortCPU    = "3"
	KeySortCPUAlt = "c"
	KeySortMem    = "4"
	KeySortMemAlt = "m"
	KeyCloseHelp  = "esc"
	KeyToggleHelp = "?"
)

// sortKeys maps keys to the column header they select.
var sortKeys = map[string]metrics.Column{
	KeySortPID:    metrics.ColumnPID,
	KeySortPIDAlt: metrics.ColumnPID,
	KeySortName:   metrics.ColumnName,
	KeySortNameN:  metrics.ColumnName,
	KeySortCPU:    metrics.ColumnCPU,
	KeySortCPUAlt: metrics.ColumnCPU,
	KeySortMem:    metrics.ColumnMemory,
	KeySortMemAlt: metrics.ColumnMemory,
}

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key == KeyCloseHelp {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		m.cancel()
		return true, tea.Quit

	case KeyRefresh:
		return true, m.refresh()
	}

	if col, ok := sortKeys[key]; ok {
		return true, m.ToggleSort(col)
	}

	return false, nil
}
