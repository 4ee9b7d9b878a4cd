package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysmon/internal/config"
)

func TestConfigFileCheck_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, config.Save(config.DefaultConfig(), path))

	result := (&ConfigFileCheck{ConfigPath: path}).Run(context.Background())
	assert.Equal(t, StatusPass, result.Status)
	assert.Contains(t, result.Message, config.ConfigFileName)
}

func TestConfigFileCheck_MissingExplicitFile(t *testing.T) {
	result := (&ConfigFileCheck{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")}).Run(context.Background())
	assert.Equal(t, StatusFail, result.Status)
	assert.False(t, result.Fixable)
}

func TestConfigFileCheck_FixWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	check := &ConfigFileCheck{FixPath: path}

	require.NoError(t, check.Fix())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Dashboard.URL, cfg.Dashboard.URL)
}

func TestConfigFileCheck_FixWithoutPathIsNoop(t *testing.T) {
	assert.NoError(t, (&ConfigFileCheck{}).Fix())
}

func TestConfigSchemaCheck(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.yaml")
	require.NoError(t, config.Save(config.DefaultConfig(), valid))

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("chart:\n  smoothing: cubic\n"), 0o644))

	tests := []struct {
		name   string
		path   string
		status CheckStatus
	}{
		{name: "valid config", path: valid, status: StatusPass},
		{name: "invalid smoothing", path: invalid, status: StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := (&ConfigSchemaCheck{ConfigPath: tt.path}).Run(context.Background())
			assert.Equal(t, tt.status, result.Status)
			if tt.status == StatusFail {
				assert.Contains(t, result.Suggestion, "smoothing")
				assert.NotContains(t, result.Suggestion, "\n")
			}
		})
	}
}

func TestNewConfigChecks(t *testing.T) {
	checks := NewConfigChecks("x.yaml", "y.yaml")
	require.Len(t, checks, 2)
	for _, c := range checks {
		assert.Equal(t, CategoryConfig, c.Category())
	}
}
