package doctor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rileyhilliard/sysmon/internal/config"
)

// ConfigFileCheck reports which config file is in effect. Running on
// defaults is a warning, not a failure.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
	// FixPath is where Fix writes a default config.
	FixPath string
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(ctx context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Config file can't be read",
			Suggestion: "Check the --config path and its permissions",
		}
	}

	if path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No config file found, using defaults",
			Suggestion: "Run 'sysmon init' to create a .sysmon.yaml",
			Fixable:    true,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", filepath.Base(path)),
	}
}

// Fix writes the default config to FixPath.
func (c *ConfigFileCheck) Fix() error {
	if c.FixPath == "" {
		return nil
	}
	return config.Save(config.DefaultConfig(), c.FixPath)
}

// ConfigSchemaCheck verifies the config in effect loads and validates.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return CategoryConfig }

func (c *ConfigSchemaCheck) Run(ctx context.Context) CheckResult {
	if _, err := config.LoadOrDefault(c.ConfigPath); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Config is invalid",
			Suggestion: firstLine(err.Error()),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Config valid",
	}
}

func (c *ConfigSchemaCheck) Fix() error {
	return nil // Schema issues require manual intervention
}

// NewConfigChecks returns all config-related checks.
func NewConfigChecks(configPath, fixPath string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: configPath, FixPath: fixPath},
		&ConfigSchemaCheck{ConfigPath: configPath},
	}
}
