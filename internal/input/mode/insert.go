package mode

import (
	"fmt"

	"github.com/dshills/hexstorm/internal/engine/buffer"
	"github.com/dshills/hexstorm/internal/engine/ops"
	"github.com/dshills/hexstorm/internal/input/key"
)

// Insert inserts typed bytes before every region. In hex mode the first
// nibble inserts a byte and the second completes it.
type Insert struct {
	hex     bool
	pending bool
	high    byte
}

func (m Insert) Name() string {
	switch {
	case !m.hex:
		return "INSERT (ascii)"
	case m.pending:
		return fmt.Sprintf("INSERT (hex: %x...)", m.high>>4)
	default:
		return "INSERT (hex)"
	}
}

func (m Insert) HasHalfCursor() bool { return m.hex && m.pending }
func (Insert) TakesInput() bool      { return true }
func (Insert) mode()                 {}

// Transition inserts ev or leaves the mode on Esc.
func (m Insert) Transition(ev key.Event, bufs *buffer.Collection, _ int) *Transition {
	buf := bufs.Current()
	if buf == nil {
		return nil
	}
	sel := buf.Selection()

	switch {
	case ev.Is(key.KeyEscape):
		buf.Commit()
		return NewMode(NewNormal())
	case ev.Is(key.KeyBackspace):
		dirty := buf.MustApplyDelta(ops.Backspace(buf.Len(), sel))
		return NewModeAndDirty(Insert{hex: m.hex}, dirty)
	}

	if !m.hex {
		b, ok := ev.Byte()
		if !ok {
			return nil
		}
		return Dirty(buf.MustApplyDelta(ops.Insert(buf.Len(), sel, []byte{b})))
	}

	nibble, ok := ev.HexDigit()
	if !ok {
		return nil
	}
	if !m.pending {
		high := nibble << 4
		dirty := buf.MustApplyDelta(ops.Insert(buf.Len(), sel, []byte{high}))
		return NewModeAndDirty(Insert{hex: true, pending: true, high: high}, dirty)
	}
	dirty := buf.MustApplyDelta(ops.ReplaceBefore(buf.Len(), sel, m.high|nibble))
	return NewModeAndDirty(Insert{hex: true}, dirty)
}
