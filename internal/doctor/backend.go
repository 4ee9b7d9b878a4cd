package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/sysmon/internal/metrics"
)

// Backend is the subset of *client.Client the backend checks use.
type Backend interface {
	BaseURL() string
	Health(ctx context.Context) error
	FetchStats(ctx context.Context) (metrics.SystemStats, error)
	FetchProcesses(ctx context.Context, sortBy metrics.Column) ([]metrics.ProcessInfo, error)
}

// BackendHealthCheck verifies the backend answers GET /health.
type BackendHealthCheck struct {
	Backend Backend
}

func (c *BackendHealthCheck) Name() string     { return "backend_health" }
func (c *BackendHealthCheck) Category() string { return CategoryBackend }

func (c *BackendHealthCheck) Run(ctx context.Context) CheckResult {
	start := time.Now()
	if err := c.Backend.Health(ctx); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Backend at %s isn't answering", c.Backend.BaseURL()),
			Suggestion: "Start it with 'sysmon serve', or point --url at a running one",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Backend at %s is up (%s)", c.Backend.BaseURL(), time.Since(start).Round(time.Millisecond)),
	}
}

func (c *BackendHealthCheck) Fix() error { return nil }

// BackendStatsCheck verifies /stats decodes and reports percentages the
// dashboard can chart without clipping.
type BackendStatsCheck struct {
	Backend Backend
}

func (c *BackendStatsCheck) Name() string     { return "backend_stats" }
func (c *BackendStatsCheck) Category() string { return CategoryBackend }

func (c *BackendStatsCheck) Run(ctx context.Context) CheckResult {
	stats, err := c.Backend.FetchStats(ctx)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "GET /stats failed",
			Suggestion: firstLine(err.Error()),
		}
	}

	if !inPercentRange(stats.CPUPercent) || !inPercentRange(stats.MemoryPercent) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Stats out of range: cpu %g%%, memory %g%%", stats.CPUPercent, stats.MemoryPercent),
			Suggestion: "The chart clips values to 0-100",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Stats OK (%d processes)", stats.TotalProcesses),
	}
}

func (c *BackendStatsCheck) Fix() error { return nil }

// BackendProcessesCheck verifies /processes decodes and is non-empty.
type BackendProcessesCheck struct {
	Backend Backend
}

func (c *BackendProcessesCheck) Name() string     { return "backend_processes" }
func (c *BackendProcessesCheck) Category() string { return CategoryBackend }

func (c *BackendProcessesCheck) Run(ctx context.Context) CheckResult {
	procs, err := c.Backend.FetchProcesses(ctx, metrics.ColumnCPU)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "GET /processes failed",
			Suggestion: firstLine(err.Error()),
		}
	}

	if len(procs) == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Backend returned no processes",
			Suggestion: "The process table will stay empty",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Processes OK (%d rows)", len(procs)),
	}
}

func (c *BackendProcessesCheck) Fix() error { return nil }

// NewBackendChecks returns all backend checks against b.
func NewBackendChecks(b Backend) []Check {
	return []Check{
		&BackendHealthCheck{Backend: b},
		&BackendStatsCheck{Backend: b},
		&BackendProcessesCheck{Backend: b},
	}
}

func inPercentRange(v float64) bool {
	return v >= 0 && v <= 100
}

// firstLine returns the headline of a multi-line structured error.
func firstLine(s string) string {
	s = strings.TrimPrefix(s, "✗ ")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
