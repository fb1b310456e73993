package style

import (
	"github.com/dshills/hexstorm/internal/engine/delta"
	"github.com/dshills/hexstorm/internal/engine/selection"
)

// MarkCommands computes the styling command of every offset in visible.
// regions must be sorted and non-overlapping; regions outside visible are
// ignored. Offsets are rope offsets and rows start at visible.Start.
//
// Events on one byte apply in the order region start, caret, region end.
// Row starts restore the top of the style stack and row ends fall back to
// the basic style, so any single row can be redrawn on its own.
func MarkCommands(regions []selection.Region, visible delta.Interval, bytesPerLine int, halfCursor bool, theme Theme) []StylingCommand {
	if visible.IsEmpty() {
		return nil
	}
	bpl := max(bytesPerLine, 1)
	cmds := make([]StylingCommand, visible.Len())
	pending := inRange(regions, visible)

	basic := theme.basic()
	stack := []PrioritizedStyle{basic}
	if len(pending) > 0 && pending[0].Min() < visible.Start {
		stack = append(stack, theme.selection(pending[0].Main))
	}

	for i := visible.Start; i < visible.End; i++ {
		n := i - visible.Start
		if len(pending) > 0 {
			r := pending[0]
			if r.Min() == i {
				stack = append(stack, theme.selection(r.Main))
				cmds[n] = cmds[n].WithStart(stack[len(stack)-1])
			}
			if r.Caret == i {
				base := stack[len(stack)-1]
				caret := theme.caret(r.Main)
				switch {
				case halfCursor && i == r.Min():
					cmds[n] = cmds[n].WithMid(caret).WithEnd(base)
				case halfCursor:
					cmds[n] = cmds[n].WithStart(base).WithMid(caret)
				default:
					cmds[n] = cmds[n].WithStart(caret).WithEnd(base)
				}
			}
			if r.Max() == i {
				cmds[n] = cmds[n].WithEnd(stack[len(stack)-2])
			}
		}

		// With one byte per line a byte is both a row start and a row end.
		if _, ok := cmds[n].Start(); n%bpl == 0 && !ok {
			cmds[n] = cmds[n].WithStart(stack[len(stack)-1])
		}
		if (n+1)%bpl == 0 {
			cmds[n] = cmds[n].WithEnd(basic)
		}

		// Popped after the row handling so a region ending on a row end
		// still restores its own style at the next row start.
		if len(pending) > 0 && pending[0].Max() == i {
			stack = stack[:len(stack)-1]
			pending = pending[1:]
		}
	}
	return cmds
}

// OverflowCommand styles the phantom cell after the last byte when a caret
// sits at the end of the data.
func OverflowCommand(halfCursor bool, theme Theme) StylingCommand {
	empty := PrioritizedStyle{Style: theme.EmptyCaret, Priority: Cursor}
	var cmd StylingCommand
	if halfCursor {
		cmd = cmd.WithMid(empty)
	} else {
		cmd = cmd.WithStart(empty)
	}
	return cmd.WithEnd(theme.basic())
}

func inRange(regions []selection.Region, visible delta.Interval) []selection.Region {
	lo := 0
	for lo < len(regions) && regions[lo].Max() < visible.Start {
		lo++
	}
	hi := lo
	for hi < len(regions) && regions[hi].Min() < visible.End {
		hi++
	}
	return regions[lo:hi]
}
