// Package config loads the optional TOML file holding the converter's
// ambient settings. The encodings are fixed and cannot be configured.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/isseis/go-utf8conv/internal/logging"
	"github.com/isseis/go-utf8conv/internal/safefileio"
	"github.com/isseis/go-utf8conv/internal/terminal"
	"github.com/pelletier/go-toml/v2"
)

// Default values
const (
	DefaultLogLevel = "warn"
	DefaultColor    = string(terminal.ColorAuto)
)

// ErrInvalidConfig wraps every parse and validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the file representation of the ambient settings.
type Config struct {
	LogLevel  string `toml:"log_level"`
	LogDir    string `toml:"log_dir"`
	KeepGoing bool   `toml:"keep_going"`
	Color     string `toml:"color"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Color:    DefaultColor,
	}
}

// Load reads and validates the file at path. Keys missing from the file
// keep their default value; unknown keys are rejected.
func Load(path string) (*Config, error) {
	content, err := safefileio.SafeReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(content)
}

// Parse decodes TOML content on top of Default and validates the result.
func Parse(content []byte) (*Config, error) {
	cfg := Default()

	decoder := toml.NewDecoder(bytes.NewReader(content)).DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strictErr.String())
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}
	if _, err := terminal.ParseColorMode(c.Color); err != nil {
		return fmt.Errorf("%w: color: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Level returns the parsed log level. Call Validate first.
func (c *Config) Level() slog.Level {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

// ColorMode returns the parsed color mode. Call Validate first.
func (c *Config) ColorMode() terminal.ColorMode {
	mode, err := terminal.ParseColorMode(c.Color)
	if err != nil {
		return terminal.ColorAuto
	}
	return mode
}
