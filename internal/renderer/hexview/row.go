package hexview

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/hexstorm/internal/engine/buffer"
	"github.com/dshills/hexstorm/internal/engine/delta"
	"github.com/dshills/hexstorm/internal/renderer/core"
	"github.com/dshills/hexstorm/internal/renderer/style"
)

const (
	hexDigits = "0123456789abcdef"
	separator = "│ "

	// minGutterDigits is the narrowest offset gutter.
	minGutterDigits = 8
)

// State is everything a frame is built from besides the view itself.
type State struct {
	Snapshot   buffer.Snapshot
	ModeName   string
	HalfCursor bool

	// Prompt is the Search or Command input line, nil otherwise.
	Prompt *Prompt
}

// Prompt is an input line drawn in place of the info text.
type Prompt struct {
	Label string
	Input string
}

// frame holds what every row of one draw shares.
type frame struct {
	dataLen   int
	fileStart int
	visible   delta.Interval
	bytes     []byte
	cmds      []style.StylingCommand
	overflow  style.StylingCommand
	// hasOverflow is set when a caret sits at dataLen.
	hasOverflow bool
	panel       [PanelHeight]string
	gutter      int
}

func (v *View) newFrame(st State) frame {
	snap := st.Snapshot
	n := snap.Data.Len()
	visible := v.Visible(n)

	f := frame{
		dataLen:   n,
		fileStart: snap.FileStart,
		visible:   visible,
		bytes:     snap.Data.Slice(visible.Start, min(visible.End, n)),
		cmds:      style.MarkCommands(snap.Regions, visible, v.bpl, st.HalfCursor, v.theme),
		overflow:  style.OverflowCommand(st.HalfCursor, v.theme),
		gutter:    max(minGutterDigits, len(fmt.Sprintf("%x", snap.FileStart+n))),
	}
	for _, r := range snap.Regions {
		if r.Caret == n {
			f.hasOverflow = true
			break
		}
	}
	caret := snap.Main().Caret
	f.panel = PanelLines(snap.Data.Slice(caret, caret+4))
	return f
}

// Column layout of a data row: gutter, space, hex column, separator,
// ASCII column with one spare cell for the overflow caret, separator,
// panel.
func (f frame) hexCol() int          { return f.gutter + 1 }
func (f frame) hexEnd(bpl int) int   { return f.hexCol() + 3*bpl }
func (f frame) asciiEnd(bpl int) int { return f.hexEnd(bpl) + 2 + bpl + 1 }

// RowOps builds the draw ops of the given data rows.
func (v *View) RowOps(st State, rows []int) []core.DrawOp {
	if len(rows) == 0 {
		return nil
	}
	f := v.newFrame(st)
	var ops []core.DrawOp
	for _, row := range rows {
		if row < 0 || row >= v.Rows() {
			continue
		}
		ops = append(ops, v.rowOps(f, row)...)
	}
	return ops
}

func (v *View) rowOps(f frame, row int) []core.DrawOp {
	th := v.theme
	bpl := v.bpl
	lb := &lineBuilder{row: row}

	rowStart := v.start + row*bpl
	lo := rowStart - f.visible.Start
	hi := max(lo, min(rowStart+bpl, f.dataLen)-f.visible.Start)
	var data []byte
	if lo < len(f.bytes) {
		data = f.bytes[lo:min(hi, len(f.bytes))]
	}
	phantom := f.hasOverflow && f.dataLen >= rowStart && f.dataLen < rowStart+bpl

	if len(data) > 0 || phantom || rowStart == 0 {
		lb.put(fmt.Sprintf("%0*x", f.gutter, f.fileStart+rowStart), th.Gutter)
	}
	lb.padTo(f.hexCol(), th.Default)

	hexPen := style.NewPen(th.Default)
	for i, c := range data {
		high, low, space := hexPen.Hex(f.cmds[lo+i])
		lb.put(hexDigits[c>>4:c>>4+1], high)
		lb.put(hexDigits[c&0xf:c&0xf+1], low)
		lb.put(" ", space)
	}
	if phantom {
		high, low, space := hexPen.Hex(f.overflow)
		lb.put(" ", high)
		lb.put(" ", low)
		lb.put(" ", space)
	}
	lb.padTo(f.hexEnd(bpl), th.Default)
	lb.put(separator, th.Separator)

	asciiPen := style.NewPen(th.Default)
	for i, c := range data {
		glyph := byte('.')
		if isPrintable(c) {
			glyph = c
		}
		lb.put(string(rune(glyph)), asciiPen.ASCII(f.cmds[lo+i]))
	}
	if phantom {
		lb.put(" ", asciiPen.ASCII(f.overflow))
	}
	lb.padTo(f.asciiEnd(bpl), th.Default)
	lb.put(separator, th.Separator)

	if row < PanelHeight {
		lb.put(f.panel[row], th.Panel)
	}
	lb.padTo(v.width, th.Default)
	return lb.ops
}

// lineBuilder accumulates the ops of one screen row, merging runs of the
// same style.
type lineBuilder struct {
	row, col int
	ops      []core.DrawOp
}

func (l *lineBuilder) put(text string, s core.Style) {
	if text == "" {
		return
	}
	if n := len(l.ops); n > 0 && l.ops[n-1].Style == s {
		l.ops[n-1].Text += text
	} else {
		l.ops = append(l.ops, core.DrawOp{Row: l.row, Col: l.col, Style: s, Text: text})
	}
	l.col += runewidth.StringWidth(text)
}

func (l *lineBuilder) padTo(col int, s core.Style) {
	if col > l.col {
		l.put(strings.Repeat(" ", col-l.col), s)
	}
}
