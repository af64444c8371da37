// Package config loads and saves the sldview TOML configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds sldview configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Window  WindowConfig  `toml:"window"`
	Render  RenderConfig  `toml:"render"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig points at the vectorization service.
type ServerConfig struct {
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"`
}

// WindowConfig sizes the interactive window.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// RenderConfig controls drawing.
type RenderConfig struct {
	PointSize      float64 `toml:"point_size"`
	RepeatGradient float64 `toml:"repeat_gradient"`
	Background     string  `toml:"background"` // hex, e.g. "#ffffff"
}

// HistoryConfig controls the local run history.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // empty means <config dir>/history.db
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Duration is a time.Duration that reads and writes as "30s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{URL: "http://127.0.0.1:5000", Timeout: Duration{2 * time.Minute}},
		Window:  WindowConfig{Width: 1280, Height: 800, Title: "sldview"},
		Render:  RenderConfig{PointSize: 5, RepeatGradient: 1, Background: "#ffffff"},
		History: HistoryConfig{Enabled: true},
		Log:     LogConfig{Level: "warn"},
	}
}

// Dir returns the sldview config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sldview")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// HistoryPath returns the history database path.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(Dir(), "history.db")
}

// Load reads the config file. A missing file yields the defaults; a file
// that does not parse is an error.
func Load() (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(Path())
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", Path(), err)
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
// It reports whether a file was written.
func EnsureExists() (bool, error) {
	if _, err := os.Stat(Path()); err == nil {
		return false, nil
	}
	return true, Save(Default())
}

// SlogLevel maps the configured level name to a slog.Level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("config: unknown log level %q", c.Level)
}
