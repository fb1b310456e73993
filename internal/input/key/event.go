package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewRuneEvent returns the event for a character key.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent returns the event for a non-character key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune reports whether e is a character key.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified reports whether Ctrl, Alt or Meta is held. Shift is part of
// the character for rune events and does not count.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Char returns the typed character of an unmodified rune event.
func (e Event) Char() (rune, bool) {
	if !e.IsRune() || e.IsModified() {
		return 0, false
	}
	return e.Rune, true
}

// Byte returns the typed character as a byte when it is printable ASCII.
func (e Event) Byte() (byte, bool) {
	r, ok := e.Char()
	if !ok || r > unicode.MaxASCII || !unicode.IsPrint(r) {
		return 0, false
	}
	return byte(r), true
}

// Digit returns the value of a typed decimal digit.
func (e Event) Digit() (int, bool) {
	r, ok := e.Char()
	if !ok || r < '0' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

// HexDigit returns the value of a typed hexadecimal digit.
func (e Event) HexDigit() (byte, bool) {
	r, ok := e.Char()
	if !ok {
		return 0, false
	}
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	}
	return 0, false
}

// Is reports whether e is the unmodified key k.
func (e Event) Is(k Key) bool {
	return e.Key == k && e.Modifiers == ModNone
}

// VimString returns the canonical spec of e: a bare character for plain
// runes, otherwise Vim notation such as "<C-e>" or "<Esc>".
func (e Event) VimString() string {
	if e.IsRune() && !e.IsModified() {
		if e.Rune == ' ' {
			return "<Space>"
		}
		if e.Rune == '<' {
			return "<lt>"
		}
		return string(e.Rune)
	}

	var parts []string
	if e.Modifiers.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if e.Modifiers.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if e.Modifiers.Has(ModMeta) {
		parts = append(parts, "D")
	}
	if e.Modifiers.Has(ModShift) && !e.IsRune() {
		parts = append(parts, "S")
	}

	switch {
	case e.IsRune() && e.Rune == ' ':
		parts = append(parts, "Space")
	case e.IsRune():
		parts = append(parts, strings.ToLower(string(e.Rune)))
	default:
		parts = append(parts, e.Key.String())
	}
	return "<" + strings.Join(parts, "-") + ">"
}

// String returns the canonical spec.
func (e Event) String() string {
	return e.VimString()
}

// Equals reports whether two events are the same key press.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key && e.Rune == other.Rune && e.Modifiers == other.Modifiers
}

// Matches reports whether e matches a key spec.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.VimString() == parsed.VimString()
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}", e.Key, e.Rune, e.Modifiers)
}
