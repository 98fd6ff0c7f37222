// Package config loads Filmi's interpreter settings from TOML, following a
// project-then-user precedence chain before falling back to built-in
// defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/rverma/filmi/pkg/evaluator"
)

// Config holds the settings the CLI and runtime accept beyond the source
// file itself.
type Config struct {
	MaxIterations int64 `toml:"max_iterations"`
}

// Default returns the built-in configuration used when no config file is
// found.
func Default() *Config {
	return &Config{MaxIterations: evaluator.DefaultMaxIterations}
}

// Load resolves settings with precedence: project (.filmi.toml in
// projectDir) → user (~/.filmi/config.toml) → built-in default.
func Load(projectDir string) (*Config, error) {
	projectPath := filepath.Join(projectDir, ".filmi.toml")
	if cfg, err := loadFile(projectPath); err == nil {
		return cfg, nil
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(homeDir, ".filmi", "config.toml")
		if cfg, err := loadFile(userPath); err == nil {
			return cfg, nil
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return Default(), nil
}

func loadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = evaluator.DefaultMaxIterations
	}
	return cfg, nil
}
