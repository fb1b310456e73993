package hexview

import (
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/renderer/core"
)

// Draw redraws the rows marked dirty since the last draw plus the status
// line, then shows the result.
func (v *View) Draw(b backend.Backend, st State) {
	rows, full := v.tracker.Take()
	if full {
		rows = v.allRows()
	}
	backend.Draw(b, v.RowOps(st, rows))
	backend.Draw(b, v.StatusOps(st))
	b.Show()
}

// Frame builds the draw ops of the whole screen without touching the
// tracker.
func (v *View) Frame(st State) []core.DrawOp {
	ops := v.RowOps(st, v.allRows())
	return append(ops, v.StatusOps(st)...)
}

func (v *View) allRows() []int {
	rows := make([]int, v.Rows())
	for i := range rows {
		rows[i] = i
	}
	return rows
}
