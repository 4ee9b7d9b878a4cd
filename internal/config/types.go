package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Smoothing modes accepted by chart.smoothing.
const (
	SmoothingExponential = "exponential"
	SmoothingRaw         = "raw"
)

// MinInterval is the shortest refresh interval the dashboard accepts.
const MinInterval = 500 * time.Millisecond

// Config represents the complete .sysmon.yaml configuration file.
type Config struct {
	Version   int             `yaml:"version" mapstructure:"version"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
	Chart     ChartConfig     `yaml:"chart" mapstructure:"chart"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// DashboardConfig controls the polling client.
type DashboardConfig struct {
	// URL is the base URL of the metrics backend.
	URL string `yaml:"url" mapstructure:"url"`

	// Interval between refresh ticks.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// RequestTimeout bounds each fetch. Zero means no timeout.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`

	// ProcessLimit is sent as the advisory limit hint. Zero omits it.
	ProcessLimit int `yaml:"process_limit" mapstructure:"process_limit"`
}

// ChartConfig controls the rolling CPU/memory chart.
type ChartConfig struct {
	// Smoothing is "exponential" or "raw".
	Smoothing string `yaml:"smoothing" mapstructure:"smoothing"`

	// Animate eases the newest point into place.
	Animate bool `yaml:"animate" mapstructure:"animate"`

	// Height is the number of terminal rows used by the plot area.
	Height int `yaml:"height" mapstructure:"height"`
}

// ServerConfig controls the bundled metrics backend.
type ServerConfig struct {
	// Addr is the listen address for sysmon serve / sysmon run.
	Addr string `yaml:"addr" mapstructure:"addr"`

	// CPUSample is how long /stats samples CPU usage.
	CPUSample time.Duration `yaml:"cpu_sample" mapstructure:"cpu_sample"`

	// DefaultLimit applies when /processes is called without limit.
	DefaultLimit int `yaml:"default_limit" mapstructure:"default_limit"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Dashboard: DashboardConfig{
			URL:      "http://127.0.0.1:8000",
			Interval: time.Second,
		},
		Chart: ChartConfig{
			Smoothing: SmoothingExponential,
			Animate:   true,
			Height:    8,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8000",
			CPUSample:    500 * time.Millisecond,
			DefaultLimit: 10,
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
