package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/rileyhilliard/sysmon/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but sysmon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade sysmon or lower the version field.")
	}

	if err := validateDashboard(cfg.Dashboard); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'dashboard' section in your .sysmon.yaml.")
	}

	if err := validateChart(cfg.Chart); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'chart' section in your .sysmon.yaml.")
	}

	if err := validateServer(cfg.Server); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'server' section in your .sysmon.yaml.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your .sysmon.yaml.")
	}

	return nil
}

// ValidateInterval checks a refresh interval against MinInterval.
func ValidateInterval(d time.Duration) error {
	if d < MinInterval {
		return fmt.Errorf("interval %s is too short - the minimum is %s", d, MinInterval)
	}
	return nil
}

func validateDashboard(d DashboardConfig) error {
	if err := ValidateBaseURL(d.URL); err != nil {
		return err
	}
	if err := ValidateInterval(d.Interval); err != nil {
		return fmt.Errorf("dashboard.%w", err)
	}
	if d.RequestTimeout < 0 {
		return fmt.Errorf("dashboard.request_timeout can't be negative")
	}
	if d.ProcessLimit < 0 {
		return fmt.Errorf("dashboard.process_limit can't be negative")
	}
	return nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("dashboard.url '%s' isn't a valid URL: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("dashboard.url '%s' needs an http:// or https:// scheme", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("dashboard.url '%s' is missing a host", raw)
	}
	return nil
}

func validateChart(c ChartConfig) error {
	switch c.Smoothing {
	case SmoothingExponential, SmoothingRaw:
	default:
		return fmt.Errorf("chart.smoothing '%s' isn't valid - use 'exponential' or 'raw'", c.Smoothing)
	}
	if c.Height < 2 {
		return fmt.Errorf("chart.height must be at least 2 rows, got %d", c.Height)
	}
	return nil
}

func validateServer(s ServerConfig) error {
	if s.Addr == "" {
		return fmt.Errorf("server.addr can't be empty")
	}
	if s.CPUSample < 0 {
		return fmt.Errorf("server.cpu_sample can't be negative")
	}
	if s.DefaultLimit < 1 {
		return fmt.Errorf("server.default_limit must be at least 1, got %d", s.DefaultLimit)
	}
	return nil
}

func validateOutput(out OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[out.Color] {
		return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
	}
	return nil
}
