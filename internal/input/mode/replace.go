package mode

import (
	"fmt"

	"github.com/dshills/hexstorm/internal/engine/buffer"
	"github.com/dshills/hexstorm/internal/engine/ops"
	"github.com/dshills/hexstorm/internal/input/key"
)

// Replace overwrites the selected bytes with one typed value and returns to
// Normal. Ctrl-N writes a zero byte.
type Replace struct {
	hex     bool
	pending bool
	high    byte
}

func (m Replace) Name() string {
	switch {
	case !m.hex:
		return "REPLACE (ascii)"
	case m.pending:
		return fmt.Sprintf("REPLACE (hex: %x...)", m.high>>4)
	default:
		return "REPLACE (hex)"
	}
}

func (m Replace) HasHalfCursor() bool { return m.hex && m.pending }
func (Replace) TakesInput() bool      { return true }
func (Replace) mode()                 {}

var ctrlN = key.MustParse("<C-n>")

// Transition replaces with the typed value. Any other key cancels.
func (m Replace) Transition(ev key.Event, bufs *buffer.Collection, _ int) *Transition {
	buf := bufs.Current()
	if buf == nil {
		return nil
	}
	if ev.Equals(ctrlN) {
		return m.replace(buf, 0)
	}
	if !ev.IsRune() || ev.IsModified() {
		return NewMode(NewNormal())
	}

	if !m.hex {
		b, ok := ev.Byte()
		if !ok {
			return NewMode(NewNormal())
		}
		return m.replace(buf, b)
	}

	nibble, ok := ev.HexDigit()
	if !ok {
		return NewMode(NewNormal())
	}
	if !m.pending {
		return NewMode(Replace{hex: true, pending: true, high: nibble << 4})
	}
	return m.replace(buf, m.high|nibble)
}

func (Replace) replace(buf *buffer.Buffer, value byte) *Transition {
	return NewModeAndDirty(NewNormal(), edit(buf, ops.Replace(buf.Len(), buf.Selection(), value)))
}
