package mode

import (
	"github.com/dshills/hexstorm/internal/engine/buffer"
	"github.com/dshills/hexstorm/internal/engine/delta"
	"github.com/dshills/hexstorm/internal/engine/selection"
	"github.com/dshills/hexstorm/internal/input/key"
)

// Mode interprets key events.
type Mode interface {
	// Name is shown in the status line.
	Name() string

	// HasHalfCursor reports whether the caret sits between the two nibbles
	// of a byte, as while typing a hex value.
	HasHalfCursor() bool

	// TakesInput is false once the editor should stop reading events.
	TakesInput() bool

	// Transition handles ev against the current buffer of bufs. It returns
	// nil for events the mode does not handle.
	Transition(ev key.Event, bufs *buffer.Collection, bytesPerLine int) *Transition

	mode()
}

// Prompter is implemented by modes that read a line of input.
type Prompter interface {
	Prompt() (label, input string)
}

// Transition is the outcome of a handled event.
type Transition struct {
	// Mode is the next mode, or nil to stay.
	Mode Mode
	// Dirty describes what must be redrawn.
	Dirty buffer.DirtyBytes
	// Info is a status message.
	Info string
	// BytesPerLine, when positive, changes the row width of the view.
	BytesPerLine int
}

// NoTransition reports a handled event with no visible effect.
func NoTransition() *Transition {
	return &Transition{}
}

// Dirty reports changed bytes without a mode switch.
func Dirty(d buffer.DirtyBytes) *Transition {
	return &Transition{Dirty: d}
}

// NewMode switches to m.
func NewMode(m Mode) *Transition {
	return &Transition{Mode: m}
}

// NewModeAndDirty switches to m after changing bytes.
func NewModeAndDirty(m Mode, d buffer.DirtyBytes) *Transition {
	return &Transition{Mode: m, Dirty: d}
}

// NewModeAndInfo switches to m and shows info.
func NewModeAndInfo(m Mode, info string) *Transition {
	return &Transition{Mode: m, Info: info}
}

// WithInfo adds a status message to t.
func (t *Transition) WithInfo(info string) *Transition {
	t.Info = info
	return t
}

// Quitting ends the event loop.
type Quitting struct{}

func (Quitting) Name() string        { return "QUIT" }
func (Quitting) HasHalfCursor() bool { return false }
func (Quitting) TakesInput() bool    { return false }
func (Quitting) mode()               {}

// Transition ignores every event.
func (Quitting) Transition(key.Event, *buffer.Collection, int) *Transition {
	return nil
}

// selectionDirty marks the bytes covered by the regions before and after a
// selection change. The caret byte is included so it gets redrawn.
func selectionDirty(before, after []selection.Region) buffer.DirtyBytes {
	ivs := make([]delta.Interval, 0, len(before)+len(after))
	for _, r := range before {
		ivs = append(ivs, delta.Interval{Start: r.Min(), End: r.Max() + 1})
	}
	for _, r := range after {
		ivs = append(ivs, delta.Interval{Start: r.Min(), End: r.Max() + 1})
	}
	return buffer.InPlace(ivs...)
}

// mapSelection applies f to every region of buf and returns to Normal.
func mapSelection(buf *buffer.Buffer, f func(selection.Region) selection.Region) *Transition {
	sel := buf.Selection()
	before := sel.Regions()
	sel.MapEach(f)
	return NewModeAndDirty(NewNormal(), selectionDirty(before, sel.Regions()))
}

// edit applies d to buf as one undoable action.
func edit(buf *buffer.Buffer, d delta.Delta) buffer.DirtyBytes {
	dirty := buf.MustApplyDelta(d)
	buf.Commit()
	return dirty
}
