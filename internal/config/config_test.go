package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/hexstorm/internal/clipboard"
	"github.com/dshills/hexstorm/internal/logging"
	"github.com/dshills/hexstorm/internal/renderer/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.BytesPerLine != 16 || cfg.HistoryLimit != 1000 || !cfg.WatchFile {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ClipboardMethod() != clipboard.System {
		t.Errorf("ClipboardMethod() = %v", cfg.ClipboardMethod())
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
bytes_per_line = 8
history_limit = 50
watch_file = false
clipboard = "internal"
log_level = "debug"

[theme]
caret = "#ff0000"
selection = "0a0b0c"
`)

	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.BytesPerLine != 8 {
		t.Errorf("BytesPerLine = %d, want 8", cfg.BytesPerLine)
	}
	if cfg.HistoryLimit != 50 {
		t.Errorf("HistoryLimit = %d, want 50", cfg.HistoryLimit)
	}
	if cfg.WatchFile {
		t.Error("WatchFile = true, want false")
	}
	if cfg.ClipboardMethod() != clipboard.Internal {
		t.Errorf("ClipboardMethod() = %v, want internal", cfg.ClipboardMethod())
	}
	if cfg.Level() != logging.LevelDebug {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
	if cfg.ChunkRows != 0 {
		t.Errorf("ChunkRows = %d, want the default", cfg.ChunkRows)
	}

	th, err := cfg.BuildTheme()
	if err != nil {
		t.Fatalf("BuildTheme() error = %v", err)
	}
	if th.Caret.Background != core.ColorFromRGB(255, 0, 0) {
		t.Errorf("caret background = %v", th.Caret.Background)
	}
	if th.Selection.Background != core.ColorFromRGB(10, 11, 12) {
		t.Errorf("selection background = %v", th.Selection.Background)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg := Default()
	if err := cfg.LoadFile(filepath.Join(t.TempDir(), "absent.toml")); err != nil {
		t.Fatalf("LoadFile() on a missing file = %v", err)
	}
	if cfg.BytesPerLine != 16 {
		t.Errorf("BytesPerLine = %d, want unchanged", cfg.BytesPerLine)
	}
}

func TestLoadFileParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "bytes_per_line = = 3\n"},
		{"unknown key", "tab_size = 4\n"},
		{"wrong type", "bytes_per_line = \"wide\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := cfg.LoadFile(writeConfig(t, tt.content))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("LoadFile() error = %v, want *ParseError", err)
			}
			if perr.Path == "" {
				t.Error("ParseError has no path")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"zero bpl", func(c *Config) { c.BytesPerLine = 0 }, "bytes_per_line"},
		{"wide bpl", func(c *Config) { c.BytesPerLine = MaxBytesPerLine + 1 }, "bytes_per_line"},
		{"negative chunk rows", func(c *Config) { c.ChunkRows = -1 }, "chunk_rows"},
		{"negative history", func(c *Config) { c.HistoryLimit = -5 }, "history_limit"},
		{"clipboard", func(c *Config) { c.Clipboard = "x11" }, "clipboard"},
		{"theme name", func(c *Config) { c.Theme = map[string]string{"sparkles": "#fff"} }, "theme"},
		{"theme color", func(c *Config) { c.Theme = map[string]string{"caret": "nope"} }, "theme"},
		{"max bpl is fine", func(c *Config) { c.BytesPerLine = MaxBytesPerLine }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Error("ValidationError should wrap ErrInvalid")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"HEXSTORM_BYTES_PER_LINE": "8",
		"HEXSTORM_CHUNK_ROWS":     " 40 ",
		"HEXSTORM_LOG_FILE":       "/tmp/hexstorm.log",
		"HEXSTORM_WATCH_FILE":     "off",
		"HEXSTORM_CLIPBOARD":      "internal",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.BytesPerLine != 8 || cfg.ChunkRows != 40 {
		t.Errorf("ints not applied: %+v", cfg)
	}
	if cfg.LogFile != "/tmp/hexstorm.log" || cfg.Clipboard != "internal" {
		t.Errorf("strings not applied: %+v", cfg)
	}
	if cfg.WatchFile {
		t.Error("WatchFile should be off")
	}
	if cfg.HistoryLimit != 1000 {
		t.Errorf("HistoryLimit = %d, want untouched", cfg.HistoryLimit)
	}
}

func TestApplyEnvErrors(t *testing.T) {
	tests := []struct {
		key, val string
	}{
		{"HEXSTORM_BYTES_PER_LINE", "wide"},
		{"HEXSTORM_WATCH_FILE", "maybe"},
	}
	for _, tt := range tests {
		cfg := Default()
		err := cfg.ApplyEnv(func(k string) (string, bool) {
			if k == tt.key {
				return tt.val, true
			}
			return "", false
		})
		var perr *ParseError
		if !errors.As(err, &perr) || perr.Path != tt.key {
			t.Errorf("%s=%s: error = %v, want ParseError for the variable", tt.key, tt.val, err)
		}
	}
}

func TestApplyEnvList(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnvList([]string{
		"HOME=/root",
		"HEXSTORM_THEME_CARET=#00ff00",
		"HEXSTORM_THEME_EMPTY_CARET=idx(4)",
		"HEXSTORM_THEME_=ignored",
	})
	want := map[string]string{"caret": "#00ff00", "empty_caret": "idx(4)"}
	if len(cfg.Theme) != len(want) {
		t.Fatalf("Theme = %v, want %v", cfg.Theme, want)
	}
	for k, v := range want {
		if cfg.Theme[k] != v {
			t.Errorf("Theme[%q] = %q, want %q", k, cfg.Theme[k], v)
		}
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, "bytes_per_line = 8\nhistory_limit = 10\n")
	t.Setenv("HEXSTORM_BYTES_PER_LINE", "32")
	t.Setenv("HEXSTORM_THEME_GUTTER", "#123456")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BytesPerLine != 32 {
		t.Errorf("BytesPerLine = %d, want the environment value", cfg.BytesPerLine)
	}
	if cfg.HistoryLimit != 10 {
		t.Errorf("HistoryLimit = %d, want the file value", cfg.HistoryLimit)
	}
	th, err := cfg.BuildTheme()
	if err != nil {
		t.Fatalf("BuildTheme() error = %v", err)
	}
	if th.Gutter.Foreground != core.ColorFromRGB(0x12, 0x34, 0x56) {
		t.Errorf("gutter = %v", th.Gutter.Foreground)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, "bytes_per_line = 100\n")
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Load() error = %v, want ErrInvalid", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got, want := DefaultPath(), filepath.Join("/xdg", "hexstorm", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestChunkSize(t *testing.T) {
	cfg := Default()
	if got := cfg.ChunkSize(30); got != 30*16 {
		t.Errorf("ChunkSize(30) = %d", got)
	}
	cfg.ChunkRows = 100
	if got := cfg.ChunkSize(30); got != 100*16 {
		t.Errorf("ChunkSize with chunk_rows = %d", got)
	}
	if got := Default().ChunkSize(0); got != 16 {
		t.Errorf("ChunkSize(0) = %d, want one row", got)
	}
}
