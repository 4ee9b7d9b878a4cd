package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".sysmon.yaml"
	// GlobalConfigDir is the directory for global config, relative to $HOME.
	GlobalConfigDir = ".config/sysmon"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'sysmon init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .sysmon.yaml in current directory
// 3. .sysmon.yaml in parent directories (stops at home)
// 4. ~/.config/sysmon/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir || (home != "" && dir == home) {
			break
		}
		dir = parent
	}

	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads the config found via Find(explicit), or returns
// defaults when no file exists. The result is validated.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if path != "" {
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	setDefaults(v, cfg)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	return cfg, nil
}

// setDefaults registers every default with viper so partially written files
// keep the values they leave out.
func setDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("version", def.Version)
	v.SetDefault("dashboard.url", def.Dashboard.URL)
	v.SetDefault("dashboard.interval", def.Dashboard.Interval.String())
	v.SetDefault("dashboard.request_timeout", def.Dashboard.RequestTimeout.String())
	v.SetDefault("dashboard.process_limit", def.Dashboard.ProcessLimit)
	v.SetDefault("chart.smoothing", def.Chart.Smoothing)
	v.SetDefault("chart.animate", def.Chart.Animate)
	v.SetDefault("chart.height", def.Chart.Height)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.cpu_sample", def.Server.CPUSample.String())
	v.SetDefault("server.default_limit", def.Server.DefaultLimit)
	v.SetDefault("output.color", def.Output.Color)
}
