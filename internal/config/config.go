// Package config loads nstreed's runtime configuration from an optional
// YAML file, following rclone's convention of file-provided defaults that
// command-line flags are free to override.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/nbtaylor/nstree/pathutil"
)

// Config holds the tunables a long-running nstreed process needs.
type Config struct {
	MaxComponentLength int    `yaml:"max_component_length"`
	MaxDepth           int    `yaml:"max_depth"`
	LogLevel           string `yaml:"log_level"`
	MetricsAddr        string `yaml:"metrics_addr"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	limits := pathutil.DefaultLimits()
	return Config{
		MaxComponentLength: limits.MaxComponentLength,
		MaxDepth:           limits.MaxDepth,
		LogLevel:           "info",
		MetricsAddr:        "",
	}
}

// Load reads and parses a YAML config file, starting from Default() so
// that a file only needs to mention the fields it wants to override.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %q", path)
	}
	return cfg, nil
}

// Limits derives pathutil.Limits from the configuration.
func (c Config) Limits() pathutil.Limits {
	return pathutil.Limits{
		MaxComponentLength: c.MaxComponentLength,
		MaxDepth:           c.MaxDepth,
	}
}
