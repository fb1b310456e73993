package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key spec into an event.
//
// Supported formats:
//   - Single character: "a", "A", "%"
//   - Key names: "Enter", "Esc", "Backspace", "Space"
//   - Modifier style: "Ctrl+E", "Alt+x"
//   - Vim style: "<C-e>", "<CR>", "<Esc>", "<lt>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		return Event{}, ErrEmptySpec
	case len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">"):
		return parseParts(strings.Split(spec[1:len(spec)-1], "-"), "-")
	case len(spec) > 1 && strings.Contains(spec[1:], "+"):
		return parseParts(strings.Split(spec, "+"), "+")
	}
	return parseKey(spec, ModNone)
}

// parseParts treats every part but the last as a modifier.
func parseParts(parts []string, sep string) (Event, error) {
	// "<C-->" splits into a trailing empty pair; rejoin it as the separator key.
	if n := len(parts); n >= 3 && parts[n-1] == "" && parts[n-2] == "" {
		parts = append(parts[:n-2], sep)
	}
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods |= mod
	}
	return parseKey(parts[len(parts)-1], mods)
}

func parseKey(name string, mods Modifier) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, ErrInvalidSpec
	}

	runes := []rune(name)
	if len(runes) == 1 {
		r := runes[0]
		if mods.Has(ModCtrl) {
			r = unicode.ToLower(r)
		} else if unicode.IsUpper(r) {
			mods |= ModShift
		}
		return NewRuneEvent(r, mods), nil
	}

	lower := strings.ToLower(name)
	if k, ok := keyAliases[lower]; ok {
		return NewSpecialEvent(k, mods), nil
	}
	if r, ok := runeAliases[lower]; ok {
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

// MustParse parses a key spec and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return e
}

// NormalizeSpec returns the canonical form of a key spec.
func NormalizeSpec(spec string) (string, error) {
	e, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return e.VimString(), nil
}
