// Package config loads beadpert settings from .beadpert/config.yaml.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/joshharrison/beadpert/internal/pert"
)

const (
	Dir      = ".beadpert"
	fileName = "config.yaml"
)

// Config is the full set of tunables. Zero values in the file fall back to
// Default().
type Config struct {
	DB    string `yaml:"db"`
	BdBin string `yaml:"bd_bin"`

	DefaultDuration float64  `yaml:"default_duration" validate:"gte=0"`
	Tolerance       float64  `yaml:"tolerance" validate:"gt=0"`
	BucketTarget    int      `yaml:"bucket_target" validate:"gt=0"`
	Statuses        []string `yaml:"statuses" validate:"dive,oneof=open in_progress blocked closed"`

	Viewer  ViewerConfig  `yaml:"viewer"`
	Log     LogConfig     `yaml:"log"`
	History HistoryConfig `yaml:"history"`
	Watch   WatchConfig   `yaml:"watch"`
}

type ViewerConfig struct {
	Port int `yaml:"port" validate:"gt=0,lte=65535"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" validate:"gte=0s"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DefaultDuration: pert.DefaultDuration,
		Tolerance:       pert.DefaultTolerance,
		BucketTarget:    pert.DefaultBucketTarget,
		Statuses:        []string{"open", "in_progress", "blocked"},
		Viewer:          ViewerConfig{Port: 7272},
		Log:             LogConfig{Level: "info", Format: "text"},
		History:         HistoryConfig{Path: filepath.Join(Dir, "history.db")},
		Watch:           WatchConfig{Debounce: 500 * time.Millisecond},
	}
}

// DefaultPath is the config file location relative to the working directory.
func DefaultPath() string {
	return filepath.Join(Dir, fileName)
}

// Load reads path over the defaults and validates the result. A missing file
// is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("no config file, using defaults", "path", path)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	slog.Debug("loaded config", "path", path)
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// Options converts the analysis settings into engine options.
func (c Config) Options() pert.Options {
	opts := pert.DefaultOptions()
	opts.DefaultDuration = c.DefaultDuration
	opts.Tolerance = c.Tolerance
	opts.BucketTarget = c.BucketTarget
	return opts
}
