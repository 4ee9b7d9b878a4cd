package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/rileyhilliard/sysmon/internal/client"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/monitor"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

// TopOptions holds options for the top command.
type TopOptions struct {
	URL   string
	Sort  string
	Asc   bool
	JSON  bool
	Limit int
}

// TopSnapshot is the --json payload.
type TopSnapshot struct {
	Stats     metrics.SystemStats   `json:"stats"`
	Processes []metrics.ProcessInfo `json:"processes"`
	Sort      TopSort               `json:"sort"`
}

// TopSort names the ordering applied to Processes.
type TopSort struct {
	Column    metrics.Column    `json:"column"`
	Direction monitor.Direction `json:"direction"`
}

// Widths for the one-shot table
var topColumnWidths = map[metrics.Column]int{
	metrics.ColumnPID:    8,
	metrics.ColumnName:   28,
	metrics.ColumnCPU:    9,
	metrics.ColumnMemory: 11,
}

// topCommand fetches one snapshot and prints it.
func topCommand(ctx context.Context, opts TopOptions, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	state, err := ParseSortFlag(opts.Sort, opts.Asc)
	if err != nil {
		return err
	}

	baseURL, err := resolveURL(opts.URL, cfg)
	if err != nil {
		return err
	}

	limit := opts.Limit
	if limit == 0 {
		limit = cfg.Dashboard.ProcessLimit
	}
	c, err := client.New(baseURL, client.WithTimeout(cfg.Dashboard.RequestTimeout), client.WithLimit(limit))
	if err != nil {
		return err
	}

	snap, err := fetchSnapshot(ctx, c, state)
	if err != nil {
		return err
	}

	if opts.JSON {
		return WriteJSONSuccess(out, snap)
	}

	if f, ok := out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		ui.DisableColors()
	}
	fmt.Fprint(out, renderTop(snap, state))
	return nil
}

// fetchSnapshot reads both endpoints and orders the processes the same way
// the dashboard does.
func fetchSnapshot(ctx context.Context, f monitor.Fetcher, state monitor.SortState) (TopSnapshot, error) {
	stats, err := f.FetchStats(ctx)
	if err != nil {
		return TopSnapshot{}, err
	}
	procs, err := f.FetchProcesses(ctx, state.Column)
	if err != nil {
		return TopSnapshot{}, err
	}

	return TopSnapshot{
		Stats:     stats,
		Processes: monitor.SortProcesses(procs, state),
		Sort:      TopSort{Column: state.Column, Direction: state.Direction},
	}, nil
}

// renderTop formats a snapshot as the stats line followed by the table.
func renderTop(snap TopSnapshot, state monitor.SortState) string {
	view := monitor.RenderTable(snap.Processes, state)

	columns := make([]ui.TableColumn, len(view.Headers))
	for i, h := range view.Headers {
		columns[i] = ui.TableColumn{Title: h.Label(), Width: topColumnWidths[h.Column]}
	}

	rows := make([][]string, len(view.Rows))
	for i, r := range view.Rows {
		cells := make([]string, len(r.Cells))
		for j, cell := range r.Cells {
			cells[j] = cell.Text
		}
		rows[i] = cells
	}

	s := monitor.FormatStatsText(snap.Stats) + "\n\n"
	if table := ui.RenderSimpleTable(columns, rows); table != "" {
		return s + table + "\n"
	}
	return s + ui.MutedStyle().Render("no processes") + "\n"
}
