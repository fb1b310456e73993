package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// EnvPrefix starts every environment variable the config reads.
const EnvPrefix = "HEXSTORM_"

// themeEnvPrefix starts theme color variables, e.g. HEXSTORM_THEME_CARET.
const themeEnvPrefix = EnvPrefix + "THEME_"

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides the scalar settings from HEXSTORM_ variables found by
// lookup. Theme colors come from ApplyEnvList.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"BYTES_PER_LINE", &c.BytesPerLine},
		{"CHUNK_ROWS", &c.ChunkRows},
		{"HISTORY_LIMIT", &c.HistoryLimit},
	}
	for _, s := range ints {
		val, ok := lookup(EnvPrefix + s.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return &ParseError{Path: EnvPrefix + s.name, Message: fmt.Sprintf("not an integer: %q", val), Err: err}
		}
		*s.dst = n
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"LOG_FILE", &c.LogFile},
		{"LOG_LEVEL", &c.LogLevel},
		{"CLIPBOARD", &c.Clipboard},
	}
	for _, s := range strs {
		if val, ok := lookup(EnvPrefix + s.name); ok {
			*s.dst = val
		}
	}

	if val, ok := lookup(EnvPrefix + "WATCH_FILE"); ok {
		b, err := parseBool(val)
		if err != nil {
			return &ParseError{Path: EnvPrefix + "WATCH_FILE", Message: err.Error(), Err: err}
		}
		c.WatchFile = b
	}
	return nil
}

// ApplyEnvList applies theme colors from environ, a list of KEY=value
// pairs as returned by os.Environ.
func (c *Config) ApplyEnvList(environ []string) {
	sorted := append([]string(nil), environ...)
	sort.Strings(sorted)
	for _, kv := range sorted {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, themeEnvPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, themeEnvPrefix))
		if name == "" {
			continue
		}
		if c.Theme == nil {
			c.Theme = make(map[string]string)
		}
		c.Theme[name] = val
	}
}

// LoadEnv applies every HEXSTORM_ variable of the process environment.
func (c *Config) LoadEnv() error {
	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	c.ApplyEnvList(os.Environ())
	return nil
}

// parseBool accepts the spellings the environment commonly uses.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}
