package mode

import (
	"fmt"

	"github.com/dshills/hexstorm/internal/engine/buffer"
	"github.com/dshills/hexstorm/internal/engine/ops"
	"github.com/dshills/hexstorm/internal/input/key"
)

// Search reads a byte pattern and selects every match in the loaded window.
// ASCII patterns use '*' and hex patterns "**" as a one-byte wildcard.
type Search struct {
	hex   bool
	input string
}

func (m Search) Name() string {
	if m.hex {
		return "SEARCH (hex)"
	}
	return "SEARCH (ascii)"
}

func (Search) HasHalfCursor() bool { return false }
func (Search) TakesInput() bool    { return true }
func (Search) mode()               {}

// Prompt returns the search prompt.
func (m Search) Prompt() (string, string) {
	if m.hex {
		return "?", m.input
	}
	return "/", m.input
}

// Transition edits the pattern or runs it on Enter.
func (m Search) Transition(ev key.Event, bufs *buffer.Collection, _ int) *Transition {
	buf := bufs.Current()
	if buf == nil {
		return nil
	}
	if next, done := editLine(m.input, ev); !done {
		if next == m.input {
			return nil
		}
		return NewMode(Search{hex: m.hex, input: next})
	}

	switch {
	case ev.Is(key.KeyEnter):
		return m.run(buf)
	case ev.Is(key.KeyBackspace) && m.input != "":
		return NewMode(Search{hex: m.hex, input: dropLast(m.input)})
	}
	return NewMode(NewNormal())
}

func (m Search) run(buf *buffer.Buffer) *Transition {
	parse := ops.ParseASCII
	if m.hex {
		parse = ops.ParseHex
	}
	pattern, err := parse(m.input)
	if err != nil {
		return NewModeAndInfo(NewNormal(), err.Error())
	}

	matches := pattern.FindAll(buf.Data())
	sel, ok := ops.SelectMatches(matches, buf.Selection().MainCursorOffset())
	if !ok {
		return NewModeAndInfo(NewNormal(), "no matches")
	}
	before := buf.Selection().Regions()
	buf.SetSelection(sel)
	return NewModeAndDirty(NewNormal(), selectionDirty(before, sel.Regions())).
		WithInfo(fmt.Sprintf("%d matches", len(matches)))
}

// editLine appends typed characters to a prompt line. done is true for keys
// that end or shorten the line, which the caller handles.
func editLine(line string, ev key.Event) (next string, done bool) {
	if ev.Is(key.KeyEnter) || ev.Is(key.KeyEscape) || ev.Is(key.KeyBackspace) {
		return line, true
	}
	if r, ok := ev.Char(); ok {
		return line + string(r), false
	}
	return line, false
}

// dropLast removes the last character of s.
func dropLast(s string) string {
	r := []rune(s)
	return string(r[:len(r)-1])
}
