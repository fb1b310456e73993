package mode

import (
	"fmt"

	"github.com/dshills/hexstorm/internal/engine/buffer"
	"github.com/dshills/hexstorm/internal/engine/ops"
	"github.com/dshills/hexstorm/internal/engine/selection"
	"github.com/dshills/hexstorm/internal/input/key"
	"github.com/dshills/hexstorm/internal/navigation"
)

// maxCount caps the count prefix.
const maxCount = 1 << 20

// Normal is the command mode the editor starts in. Digits build a count
// prefix for the next movement.
type Normal struct {
	count int
}

// NewNormal returns Normal mode without a pending count.
func NewNormal() Normal {
	return Normal{}
}

func (m Normal) Name() string {
	if m.count > 0 {
		return fmt.Sprintf("NORMAL %d", m.count)
	}
	return "NORMAL"
}

func (Normal) HasHalfCursor() bool { return false }
func (Normal) TakesInput() bool    { return true }
func (Normal) mode()               {}

// Count returns the pending count prefix, 0 when none was typed.
func (m Normal) Count() int {
	return m.count
}

type normalContext struct {
	bufs  *buffer.Collection
	buf   *buffer.Buffer
	bpl   int
	count int
}

type normalAction func(c normalContext) *Transition

// Transition looks ev up in the Normal keymap.
func (m Normal) Transition(ev key.Event, bufs *buffer.Collection, bytesPerLine int) *Transition {
	buf := bufs.Current()
	if buf == nil {
		return nil
	}
	if d, ok := ev.Digit(); ok && (d > 0 || m.count > 0) {
		return NewMode(Normal{count: min(m.count*10+d, maxCount)})
	}
	action, ok := normalKeymap[ev.VimString()]
	if !ok {
		return nil
	}
	return action(normalContext{
		bufs:  bufs,
		buf:   buf,
		bpl:   max(bytesPerLine, 1),
		count: max(m.count, 1),
	})
}

var normalKeymap = keymap(map[string]normalAction{
	"h":       move(selection.Left, false),
	"<Left>":  move(selection.Left, false),
	"j":       move(selection.Down, false),
	"<Down>":  move(selection.Down, false),
	"k":       move(selection.Up, false),
	"<Up>":    move(selection.Up, false),
	"l":       move(selection.Right, false),
	"<Right>": move(selection.Right, false),

	"H":         move(selection.Left, true),
	"<S-Left>":  move(selection.Left, true),
	"J":         move(selection.Down, true),
	"<S-Down>":  move(selection.Down, true),
	"K":         move(selection.Up, true),
	"<S-Up>":    move(selection.Up, true),
	"L":         move(selection.Right, true),
	"<S-Right>": move(selection.Right, true),

	"g": jumpAction(navigation.Command{Kind: navigation.Start}),
	"G": jumpAction(navigation.Command{Kind: navigation.End}),

	";": selectionAction((*selection.Selection).CollapseAll),
	",": selectionAction((*selection.Selection).KeepMain),
	"(": func(c normalContext) *Transition {
		return selectionAction(func(s *selection.Selection) { s.RotateMain(-c.count) })(c)
	},
	")": func(c normalContext) *Transition {
		return selectionAction(func(s *selection.Selection) { s.RotateMain(c.count) })(c)
	},
	"%": func(c normalContext) *Transition {
		return selectionAction(func(s *selection.Selection) { s.SelectAll(c.buf.Len()) })(c)
	},

	"d": func(c normalContext) *Transition {
		return NewModeAndDirty(NewNormal(), edit(c.buf, ops.Delete(c.buf.Len(), c.buf.Selection())))
	},

	"i": enterInsert(false, false),
	"a": enterInsert(false, true),
	"I": enterInsert(true, false),
	"A": enterInsert(true, true),

	"r": func(normalContext) *Transition { return NewMode(Replace{}) },
	"R": func(normalContext) *Transition { return NewMode(Replace{hex: true}) },

	"u": func(c normalContext) *Transition { return undo(c.buf) },
	"U": func(c normalContext) *Transition { return redo(c.buf) },

	"y": yank,
	"p": paste(true),
	"P": paste(false),

	"/": func(normalContext) *Transition { return NewMode(Search{}) },
	"?": func(normalContext) *Transition { return NewMode(Search{hex: true}) },
	":": func(normalContext) *Transition { return NewMode(Command{}) },

	"<Esc>": func(normalContext) *Transition { return NewMode(NewNormal()) },
})

// keymap indexes actions by the canonical form of their key spec.
func keymap[A any](bindings map[string]A) map[string]A {
	out := make(map[string]A, len(bindings))
	for spec, a := range bindings {
		out[key.MustParse(spec).VimString()] = a
	}
	return out
}

func move(dir selection.Direction, extend bool) normalAction {
	return func(c normalContext) *Transition {
		n := c.buf.Len()
		return mapSelection(c.buf, func(r selection.Region) selection.Region {
			if extend {
				return r.SimpleExtend(dir, c.bpl, n, c.count)
			}
			return r.SimpleMove(dir, c.bpl, n, c.count)
		})
	}
}

func selectionAction(f func(*selection.Selection)) normalAction {
	return func(c normalContext) *Transition {
		sel := c.buf.Selection()
		before := sel.Regions()
		f(sel)
		return NewModeAndDirty(NewNormal(), selectionDirty(before, sel.Regions()))
	}
}

func jumpAction(cmd navigation.Command) normalAction {
	return func(c normalContext) *Transition {
		return jump(c.buf, cmd)
	}
}

// jump moves the caret to the file offset cmd resolves to.
func jump(buf *buffer.Buffer, cmd navigation.Command) *Transition {
	size, err := buf.FileSize()
	if err != nil {
		return NewModeAndInfo(NewNormal(), err.Error())
	}
	current := buf.FileStart() + buf.Selection().MainCursorOffset()
	if _, err := buf.JumpToFileOffset(cmd.Target(current, size)); err != nil {
		return NewModeAndInfo(NewNormal(), err.Error())
	}
	return NewModeAndDirty(NewNormal(), buffer.LengthChanged())
}

// enterInsert switches to Insert. Appending first moves every region past
// its last byte.
func enterInsert(hex, after bool) normalAction {
	return func(c normalContext) *Transition {
		next := Insert{hex: hex}
		if !after {
			return NewMode(next)
		}
		n := c.buf.Len()
		t := mapSelection(c.buf, func(r selection.Region) selection.Region {
			at := min(r.Max()+1, n)
			return selection.Region{Anchor: at, Caret: at, Main: r.Main}
		})
		t.Mode = next
		return t
	}
}

func undo(buf *buffer.Buffer) *Transition {
	dirty, ok, err := buf.Undo()
	if err != nil {
		panic(err)
	}
	if !ok {
		return NewModeAndInfo(NewNormal(), "nothing to undo")
	}
	return NewModeAndDirty(NewNormal(), dirty)
}

func redo(buf *buffer.Buffer) *Transition {
	dirty, ok, err := buf.Redo()
	if err != nil {
		panic(err)
	}
	if !ok {
		return NewModeAndInfo(NewNormal(), "nothing to redo")
	}
	return NewModeAndDirty(NewNormal(), dirty)
}

func yank(c normalContext) *Transition {
	clips := ops.Yank(c.buf.Data(), c.buf.Selection())
	if err := c.bufs.Register().Yank(clips); err != nil {
		return NewModeAndInfo(NewNormal(), fmt.Sprintf("yank failed: %v", err))
	}
	total := 0
	for _, clip := range clips {
		total += len(clip)
	}
	return NewModeAndInfo(NewNormal(), fmt.Sprintf("yanked %d bytes", total))
}

func paste(after bool) normalAction {
	return func(c normalContext) *Transition {
		clips, err := c.bufs.Register().Paste()
		if err != nil {
			return NewModeAndInfo(NewNormal(), fmt.Sprintf("paste failed: %v", err))
		}
		if len(clips) == 0 {
			return NewModeAndInfo(NewNormal(), "register is empty")
		}
		d := ops.Paste(c.buf.Len(), c.buf.Selection(), clips, after)
		return NewModeAndDirty(NewNormal(), edit(c.buf, d))
	}
}
