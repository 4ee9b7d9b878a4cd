package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
)

// LabelLayout is the wall-clock format used for chart labels.
const LabelLayout = "15:04:05"

// DefaultInterval is the refresh period used when Options.Interval is unset.
const DefaultInterval = time.Second

// DefaultChartHeight is the plot height in rows.
const DefaultChartHeight = 8

// Fetcher retrieves metrics from the backend. *client.Client satisfies it.
type Fetcher interface {
	FetchStats(ctx context.Context) (metrics.SystemStats, error)
	FetchProcesses(ctx context.Context, sortBy metrics.Column) ([]metrics.ProcessInfo, error)
}

// Options configures a dashboard Model.
type Options struct {
	Source      string // backend URL shown in the header
	Interval    time.Duration
	Smoothing   SmoothingMode
	Animate     bool
	ChartHeight int
	Window      int
	Logger      logger.Logger
}

// Model is the Bubble Tea model for the dashboard. It owns the refresh loop:
// a tick starts one fetch per source, and each source is skipped while its
// previous fetch is still outstanding.
type Model struct {
	fetcher  Fetcher
	source   string
	interval time.Duration
	log      logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	sort        SortState
	buffer      *TimeSeriesBuffer
	chart       *ChartRenderer
	chartHeight int
	animating   bool

	stats     *metrics.SystemStats
	statsText string
	processes []metrics.ProcessInfo
	table     TableView

	// Per-source request tracking. gen is the generation of the most
	// recently issued request; applied is the newest one rendered.
	statsInFlight bool
	statsGen      uint64
	statsApplied  uint64
	procsInFlight bool
	procsGen      uint64
	procsApplied  uint64

	lastUpdate time.Time
	width      int
	height     int
	showHelp   bool
	quitting   bool
	spinner    spinner.Model
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// chartFrameMsg advances the chart animation by one frame.
type chartFrameMsg time.Time

// statsMsg carries the result of one /stats request.
type statsMsg struct {
	gen   uint64
	stats metrics.SystemStats
	err   error
	at    time.Time
}

// processesMsg carries the result of one /processes request.
type processesMsg struct {
	gen   uint64
	procs []metrics.ProcessInfo
	err   error
	at    time.Time
}

// NewModel creates a dashboard model that polls f.
func NewModel(f Fetcher, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.ChartHeight <= 0 {
		opts.ChartHeight = DefaultChartHeight
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	sp := spinner.New(
		spinner.WithSpinner(spinner.Spinner{Frames: ConnectingSpinnerFrames, FPS: 150 * time.Millisecond}),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorAccent)),
	)

	m := Model{
		fetcher:     f,
		source:      opts.Source,
		interval:    opts.Interval,
		log:         opts.Logger,
		ctx:         ctx,
		cancel:      cancel,
		sort:        DefaultSortState(),
		buffer:      NewTimeSeriesBuffer(opts.Window, opts.Smoothing),
		chart:       NewChartRenderer(opts.Window, opts.Animate),
		chartHeight: opts.ChartHeight,
		spinner:     sp,
	}
	m.table = RenderTable(nil, m.sort)
	return m
}

// Init performs the first refresh immediately and starts the tick timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return tickMsg(time.Now()) },
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.tickCmd(), m.refresh())

	case statsMsg:
		return m, m.applyStats(msg)

	case processesMsg:
		m.applyProcesses(msg)

	case chartFrameMsg:
		m.chart.Step()
		if m.chart.Animating() {
			return m, m.chartFrameCmd()
		}
		m.animating = false

	case spinner.TickMsg:
		// The spinner only shows until the first sample arrives.
		if m.stats != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// Close cancels any outstanding fetches.
func (m Model) Close() {
	m.cancel()
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// chartFrameCmd schedules the next animation frame.
func (m Model) chartFrameCmd() tea.Cmd {
	return tea.Tick(chartFrameInterval, func(t time.Time) tea.Msg {
		return chartFrameMsg(t)
	})
}

// refresh issues a fetch for every source that is not already waiting on
// one.
func (m *Model) refresh() tea.Cmd {
	return tea.Batch(m.refreshStats(), m.refreshProcesses())
}

func (m *Model) refreshStats() tea.Cmd {
	if m.statsInFlight {
		m.log.Debug("stats request still pending, skipping tick")
		return nil
	}
	m.statsInFlight = true
	m.statsGen++
	return fetchStatsCmd(m.ctx, m.fetcher, m.statsGen)
}

func (m *Model) refreshProcesses() tea.Cmd {
	if m.procsInFlight {
		m.log.Debug("processes request still pending, skipping tick")
		return nil
	}
	m.procsInFlight = true
	m.procsGen++
	return fetchProcessesCmd(m.ctx, m.fetcher, m.procsGen, m.sort.Column)
}

func fetchStatsCmd(ctx context.Context, f Fetcher, gen uint64) tea.Cmd {
	return func() tea.Msg {
		stats, err := f.FetchStats(ctx)
		return statsMsg{gen: gen, stats: stats, err: err, at: time.Now()}
	}
}

func fetchProcessesCmd(ctx context.Context, f Fetcher, gen uint64, sortBy metrics.Column) tea.Cmd {
	return func() tea.Msg {
		procs, err := f.FetchProcesses(ctx, sortBy)
		return processesMsg{gen: gen, procs: procs, err: err, at: time.Now()}
	}
}

// applyStats updates the stats line and chart from a successful fetch.
// Failures and stale results leave the display untouched.
func (m *Model) applyStats(msg statsMsg) tea.Cmd {
	if msg.gen == m.statsGen {
		m.statsInFlight = false
	}
	if msg.err != nil {
		m.log.Debug("fetch stats: %v", msg.err)
		return nil
	}
	if msg.gen <= m.statsApplied {
		m.log.Debug("dropping stale stats response (gen %d)", msg.gen)
		return nil
	}
	m.statsApplied = msg.gen

	stats := msg.stats
	m.stats = &stats
	m.statsText = FormatStatsText(stats)
	m.lastUpdate = msg.at

	m.buffer.Push(stats.CPUPercent, stats.MemoryPercent, msg.at.Format(LabelLayout))
	m.chart.Update(m.buffer.Snapshot())

	if m.chart.Animating() && !m.animating {
		m.animating = true
		return m.chartFrameCmd()
	}
	return nil
}

// applyProcesses replaces the process snapshot and rebuilds the table.
func (m *Model) applyProcesses(msg processesMsg) {
	if msg.gen == m.procsGen {
		m.procsInFlight = false
	}
	if msg.err != nil {
		m.log.Debug("fetch processes: %v", msg.err)
		return
	}
	if msg.gen <= m.procsApplied {
		m.log.Debug("dropping stale processes response (gen %d)", msg.gen)
		return
	}
	m.procsApplied = msg.gen

	m.processes = msg.procs
	m.lastUpdate = msg.at
	m.table = RenderTable(m.processes, m.sort)
}

// ToggleSort applies a header selection. The table re-renders from the
// current snapshot right away and a fresh process fetch is started.
func (m *Model) ToggleSort(column metrics.Column) tea.Cmd {
	m.sort = m.sort.Toggle(column)
	m.table = RenderTable(m.processes, m.sort)
	return m.refreshProcesses()
}

// handleMouse toggles the sort when a column header is clicked.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.showHelp || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if msg.Y != m.tableHeaderRow() {
		return nil
	}
	col, ok := m.table.ColumnAt(msg.X, m.contentWidth())
	if !ok {
		return nil
	}
	return m.ToggleSort(col)
}

// FormatStatsText renders the one-line system summary.
func FormatStatsText(s metrics.SystemStats) string {
	return fmt.Sprintf("CPU: %s%% Memory: %s%% Processes: %d",
		FormatPercent(s.CPUPercent), FormatPercent(s.MemoryPercent), s.TotalProcesses)
}

// StatsText returns the last rendered stats line, empty before the first
// successful fetch.
func (m Model) StatsText() string {
	return m.statsText
}

// Sort returns the current sort state.
func (m Model) Sort() SortState {
	return m.sort
}

// Table returns the current table render tree.
func (m Model) Table() TableView {
	return m.table
}

// Series returns a copy of the chart's time series.
func (m Model) Series() SeriesSnapshot {
	return m.buffer.Snapshot()
}

// SecondsSinceUpdate returns seconds since the last successful fetch.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return -1
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

// Connected reports whether any stats sample has been received.
func (m Model) Connected() bool {
	return m.stats != nil
}
