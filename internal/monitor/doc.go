// Package monitor implements the live terminal dashboard for a sysmon
// backend.
//
// The dashboard polls two endpoints on a fixed interval and shows a
// one-line system summary, a rolling CPU and memory chart, and a sortable
// process table.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: Holds application state (sort, time series, last snapshots)
//   - Update: Processes messages (keystrokes, clicks, ticks, fetch results)
//   - View: Renders the current state to a string for display
//
// # Key Components
//
//	Model            - The Bubble Tea model and refresh loop
//	SortState        - Active column and direction for the process table
//	TimeSeriesBuffer - Fixed-size window of chart samples with smoothing
//	TableView        - Render tree for the process table
//	ChartRenderer    - Braille line chart with a fixed 0-100 axis
//
// # Message Flow
//
//  1. tickMsg fires at the configured interval (the first one immediately)
//  2. refresh() starts a stats fetch and a processes fetch, skipping any
//     source whose previous request has not come back yet
//  3. statsMsg and processesMsg arrive independently; failures keep the
//     previous display and are only logged at debug level
//  4. View() re-renders from the latest state
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Refresh now
//	1-4, p/n/c/m - Sort by PID, name, CPU, memory
//	?           - Toggle help overlay
//
// Clicking a column header has the same effect as its sort key.
package monitor
