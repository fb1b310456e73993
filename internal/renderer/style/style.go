// Package style computes per-byte styling for the hex view.
//
// Styles are layered on a priority stack (Basic < Selection < Cursor). For
// every visible byte MarkCommands produces a StylingCommand with up to three
// style transitions: start (before the glyph), mid (between the two nibbles
// of a hex byte) and end (after the glyph). A Pen replays the transitions
// while a row is drawn, so bytes without a command keep the style of the
// byte before them.
package style

import (
	"github.com/dshills/hexstorm/internal/renderer/core"
)

// Priority orders the style layers.
type Priority uint8

const (
	// Basic is the plain byte style.
	Basic Priority = iota

	// Selection is the style of selected bytes.
	Selection

	// Cursor is the style of the byte under a caret.
	Cursor
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	switch p {
	case Basic:
		return "basic"
	case Selection:
		return "selection"
	case Cursor:
		return "cursor"
	default:
		return "unknown"
	}
}

// PrioritizedStyle is a style tagged with its layer.
type PrioritizedStyle struct {
	Style    core.Style
	Priority Priority
}

const (
	hasStart uint8 = 1 << iota
	hasMid
	hasEnd
)

// StylingCommand holds the style transitions for one byte. The zero value
// changes nothing.
type StylingCommand struct {
	start, mid, end PrioritizedStyle
	set             uint8
}

// WithStart returns c with a transition before the glyph.
func (c StylingCommand) WithStart(s PrioritizedStyle) StylingCommand {
	c.start = s
	c.set |= hasStart
	return c
}

// WithMid returns c with a transition between the nibbles.
func (c StylingCommand) WithMid(s PrioritizedStyle) StylingCommand {
	c.mid = s
	c.set |= hasMid
	return c
}

// WithEnd returns c with a transition after the glyph.
func (c StylingCommand) WithEnd(s PrioritizedStyle) StylingCommand {
	c.end = s
	c.set |= hasEnd
	return c
}

// Start returns the start transition, if any.
func (c StylingCommand) Start() (PrioritizedStyle, bool) {
	return c.start, c.set&hasStart != 0
}

// Mid returns the mid transition, if any.
func (c StylingCommand) Mid() (PrioritizedStyle, bool) {
	return c.mid, c.set&hasMid != 0
}

// End returns the end transition, if any.
func (c StylingCommand) End() (PrioritizedStyle, bool) {
	return c.end, c.set&hasEnd != 0
}

// IsZero reports whether c has no transitions.
func (c StylingCommand) IsZero() bool {
	return c.set == 0
}

// Pen tracks the current style while the glyphs of one column are drawn.
type Pen struct {
	cur core.Style
}

// NewPen returns a pen holding s.
func NewPen(s core.Style) *Pen {
	return &Pen{cur: s}
}

// Style returns the current style.
func (p *Pen) Style() core.Style {
	return p.cur
}

// Hex applies cmd to a hex byte cell "xy " and returns the styles of the
// high nibble, the low nibble and the trailing space.
func (p *Pen) Hex(cmd StylingCommand) (high, low, space core.Style) {
	if s, ok := cmd.Start(); ok {
		p.cur = s.Style
	}
	high = p.cur
	if s, ok := cmd.Mid(); ok {
		p.cur = s.Style
	}
	low = p.cur
	if s, ok := cmd.End(); ok {
		p.cur = s.Style
	}
	return high, low, p.cur
}

// ASCII applies cmd to a single glyph and returns its style. A mid
// transition wins over start since the glyph has no halves.
func (p *Pen) ASCII(cmd StylingCommand) core.Style {
	if s, ok := cmd.Start(); ok {
		p.cur = s.Style
	}
	if s, ok := cmd.Mid(); ok {
		p.cur = s.Style
	}
	glyph := p.cur
	if s, ok := cmd.End(); ok {
		p.cur = s.Style
	}
	return glyph
}
