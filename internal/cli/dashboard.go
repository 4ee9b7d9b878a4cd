package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/sysmon/internal/client"
	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/monitor"
)

// debugLogFile receives dashboard logs while the alt screen owns the terminal.
const debugLogFile = "sysmon-debug.log"

// dashboardSettings is everything runDashboard needs, resolved from config
// and flags.
type dashboardSettings struct {
	URL         string
	Interval    time.Duration
	Timeout     time.Duration
	Limit       int
	Smoothing   monitor.SmoothingMode
	Animate     bool
	ChartHeight int
}

// dashboardSettingsFrom merges flags over cfg. Empty flags keep the config
// values.
func dashboardSettingsFrom(cfg *config.Config, urlFlag, intervalFlag string) (dashboardSettings, error) {
	baseURL, err := resolveURL(urlFlag, cfg)
	if err != nil {
		return dashboardSettings{}, err
	}

	interval, err := ParseInterval(intervalFlag)
	if err != nil {
		return dashboardSettings{}, err
	}
	if interval == 0 {
		interval = cfg.Dashboard.Interval
	}

	smoothing, err := monitor.ParseSmoothingMode(cfg.Chart.Smoothing)
	if err != nil {
		return dashboardSettings{}, errors.WrapWithCode(err, errors.ErrConfig,
			"chart.smoothing isn't valid",
			"Use 'exponential' or 'raw'.")
	}

	return dashboardSettings{
		URL:         baseURL,
		Interval:    interval,
		Timeout:     cfg.Dashboard.RequestTimeout,
		Limit:       cfg.Dashboard.ProcessLimit,
		Smoothing:   smoothing,
		Animate:     cfg.Chart.Animate,
		ChartHeight: cfg.Chart.Height,
	}, nil
}

// dashboardCommand starts the dashboard against the configured backend.
func dashboardCommand(urlFlag, intervalFlag string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	settings, err := dashboardSettingsFrom(cfg, urlFlag, intervalFlag)
	if err != nil {
		return err
	}
	return runDashboard(settings)
}

// runDashboard runs the Bubble Tea program until the user quits.
func runDashboard(s dashboardSettings) error {
	c, err := client.New(s.URL, client.WithTimeout(s.Timeout), client.WithLimit(s.Limit))
	if err != nil {
		return err
	}

	log := logger.Noop()
	if logger.DebugEnabled() {
		f, err := tea.LogToFile(debugLogFile, "sysmon")
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Can't open "+debugLogFile,
				"Unset "+logger.DebugEnvVar+" or run from a writable directory.")
		}
		defer f.Close()
		log = logger.NewEnvLogger("[dashboard]")
	}

	model := monitor.NewModel(c, monitor.Options{
		Source:      c.BaseURL(),
		Interval:    s.Interval,
		Smoothing:   s.Smoothing,
		Animate:     s.Animate,
		ChartHeight: s.ChartHeight,
		Logger:      log,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
