package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/monitor"
)

// ParseInterval parses an --interval flag. Returns zero duration if the
// flag is empty so the config value applies.
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 1s, 2s, or 500ms.")
	}
	if err := config.ValidateInterval(d); err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", flag),
			fmt.Sprintf("Use %s or longer.", config.MinInterval))
	}
	return d, nil
}

// ParseSortFlag turns --sort and --asc into a sort state.
func ParseSortFlag(name string, asc bool) (monitor.SortState, error) {
	col, ok := metrics.ParseColumn(name)
	if !ok {
		return monitor.SortState{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown sort column '%s'", name),
			"Use one of: pid, name, cpu, mem")
	}
	dir := monitor.Descending
	if asc {
		dir = monitor.Ascending
	}
	return monitor.SortState{Column: col, Direction: dir}, nil
}

// resolveURL picks the --url flag over the configured URL and validates it.
func resolveURL(flag string, cfg *config.Config) (string, error) {
	raw := strings.TrimSpace(flag)
	if raw == "" {
		raw = cfg.Dashboard.URL
	}
	if err := config.ValidateBaseURL(raw); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Backend URL isn't usable",
			"Pass something like --url http://127.0.0.1:8000")
	}
	return strings.TrimRight(raw, "/"), nil
}
