package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/monitor"
)

func TestDashboardSettingsFrom_ConfigValues(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Dashboard.RequestTimeout = 3 * time.Second
	cfg.Dashboard.ProcessLimit = 25
	cfg.Chart.Smoothing = config.SmoothingRaw
	cfg.Chart.Animate = false
	cfg.Chart.Height = 12

	got, err := dashboardSettingsFrom(cfg, "", "")
	require.NoError(t, err)

	assert.Equal(t, dashboardSettings{
		URL:         "http://127.0.0.1:8000",
		Interval:    time.Second,
		Timeout:     3 * time.Second,
		Limit:       25,
		Smoothing:   monitor.SmoothingRaw,
		Animate:     false,
		ChartHeight: 12,
	}, got)
}

func TestDashboardSettingsFrom_FlagsOverride(t *testing.T) {
	cfg := config.DefaultConfig()

	got, err := dashboardSettingsFrom(cfg, "http://10.0.0.5:9000/", "2s")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", got.URL)
	assert.Equal(t, 2*time.Second, got.Interval)
	assert.Equal(t, monitor.SmoothingExponential, got.Smoothing)
}

func TestDashboardSettingsFrom_Errors(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		interval string
		mutate   func(*config.Config)
	}{
		{name: "bad url", url: "not a url"},
		{name: "interval too short", interval: "10ms"},
		{name: "bad smoothing", mutate: func(c *config.Config) { c.Chart.Smoothing = "cubic" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			_, err := dashboardSettingsFrom(cfg, tt.url, tt.interval)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_UsesConfigFlag(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Dashboard.URL = "http://192.168.1.20:8000"
	useTestConfig(t, cfg)

	got, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.1.20:8000", got.Dashboard.URL)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	old := cfgFile
	cfgFile = t.TempDir() + "/missing.yaml"
	t.Cleanup(func() { cfgFile = old })

	_, err := loadConfig()
	require.Error(t, err)
	assert.Equal(t, ErrCodeConfigNotFound, ErrorToJSON(err).Code)
}
