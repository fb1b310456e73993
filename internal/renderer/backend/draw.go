package backend

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/hexstorm/internal/renderer/core"
)

// Draw writes ops to b in order. Text is clipped at the right edge; wide
// runes take two cells and are dropped when only one is left.
func Draw(b Backend, ops []core.DrawOp) {
	width, height := b.Size()
	for _, op := range ops {
		if op.Row < 0 || op.Row >= height {
			continue
		}
		x := op.Col
		for _, r := range op.Text {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if x+w > width {
				break
			}
			if x >= 0 {
				b.SetCell(x, op.Row, core.Cell{Rune: r, Style: op.Style})
			}
			x += w
		}
	}
}

// ScrollRows shifts the contents of rows [top, bottom) by n rows, the way a
// terminal scroll region does: positive n moves content up. Rows uncovered
// by the shift are blanked with fill.
func ScrollRows(b Backend, top, bottom, n int, fill core.Style) {
	width, height := b.Size()
	top, bottom = max(top, 0), min(bottom, height)
	if n == 0 || top >= bottom {
		return
	}
	blank := core.Cell{Rune: ' ', Style: fill}

	copyRow := func(dst, src int) {
		for x := 0; x < width; x++ {
			if src >= top && src < bottom {
				b.SetCell(x, dst, b.GetCell(x, src))
			} else {
				b.SetCell(x, dst, blank)
			}
		}
	}

	if n > 0 {
		for y := top; y < bottom; y++ {
			copyRow(y, y+n)
		}
	} else {
		for y := bottom - 1; y >= top; y-- {
			copyRow(y, y+n)
		}
	}
}
