// Package config loads hexstorm's settings from a TOML file and HEXSTORM_
// environment variables.
//
// Precedence, lowest first: built-in defaults, the config file, the
// environment. A missing config file is not an error.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/hexstorm/internal/clipboard"
	"github.com/dshills/hexstorm/internal/logging"
	"github.com/dshills/hexstorm/internal/renderer/style"
)

// MaxBytesPerLine is the widest row the view accepts.
const MaxBytesPerLine = 64

// Config holds every setting.
type Config struct {
	// BytesPerLine is the number of bytes in one row.
	BytesPerLine int `toml:"bytes_per_line"`
	// ChunkRows is the number of rows one window chunk holds. Zero derives
	// it from the terminal height.
	ChunkRows int `toml:"chunk_rows"`
	// HistoryLimit caps the number of undo steps kept.
	HistoryLimit int `toml:"history_limit"`

	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`

	// WatchFile reports changes to the open file on disk.
	WatchFile bool `toml:"watch_file"`
	// Clipboard is "system" or "internal".
	Clipboard string `toml:"clipboard"`

	// Theme maps theme color names to colors.
	Theme map[string]string `toml:"theme"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BytesPerLine: 16,
		HistoryLimit: 1000,
		LogLevel:     "info",
		WatchFile:    true,
		Clipboard:    "system",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/hexstorm/config.toml, or the
// platform's user config directory when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		dir = d
	}
	return filepath.Join(dir, "hexstorm", "config.toml")
}

// Load reads the file at path over the defaults, applies the environment
// and validates the result. An empty path means DefaultPath.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.LoadEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile decodes the TOML file at path into c. Keys absent from the file
// keep their current values. A missing file leaves c unchanged.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return c.decode(path, data)
}

func (c *Config) decode(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.BytesPerLine < 1 || c.BytesPerLine > MaxBytesPerLine {
		return &ValidationError{Field: "bytes_per_line", Value: c.BytesPerLine,
			Message: fmt.Sprintf("must be between 1 and %d", MaxBytesPerLine)}
	}
	if c.ChunkRows < 0 {
		return &ValidationError{Field: "chunk_rows", Value: c.ChunkRows, Message: "must not be negative"}
	}
	if c.HistoryLimit < 0 {
		return &ValidationError{Field: "history_limit", Value: c.HistoryLimit, Message: "must not be negative"}
	}
	if _, err := clipboard.ParseMethod(c.Clipboard); err != nil {
		return &ValidationError{Field: "clipboard", Value: c.Clipboard, Message: err.Error()}
	}
	if _, err := c.BuildTheme(); err != nil {
		return &ValidationError{Field: "theme", Value: c.Theme, Message: err.Error()}
	}
	return nil
}

// BuildTheme returns the default theme with the configured colors applied.
func (c Config) BuildTheme() (style.Theme, error) {
	return style.DefaultTheme().Apply(c.Theme)
}

// ClipboardMethod returns the configured clipboard method.
func (c Config) ClipboardMethod() clipboard.Method {
	m, err := clipboard.ParseMethod(c.Clipboard)
	if err != nil {
		return clipboard.System
	}
	return m
}

// Level returns the configured log level.
func (c Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// ChunkSize returns the window chunk size in bytes for a screen of rows
// data rows.
func (c Config) ChunkSize(rows int) int {
	if c.ChunkRows > 0 {
		rows = c.ChunkRows
	}
	return max(rows, 1) * c.BytesPerLine
}
