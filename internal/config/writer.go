package config

import (
	"os"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"gopkg.in/yaml.v3"
)

// Marshal renders cfg as YAML with a short header comment.
func Marshal(cfg *Config) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't encode config as YAML", "")
	}
	header := []byte("# sysmon configuration\n# Docs: sysmon init --help\n\n")
	return append(header, body...), nil
}

// Save writes cfg to path, replacing any existing file.
func Save(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write "+path,
			"Check that the directory exists and is writable")
	}
	return nil
}
