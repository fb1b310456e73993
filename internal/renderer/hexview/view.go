// Package hexview lays out a buffer as a hex dump: an offset gutter, the
// hex column, the ASCII column and the byte-properties panel, with a status
// line at the bottom.
//
// The View only holds presentation state (size, first visible offset, bytes
// per line, info text). Frames are built from a buffer.Snapshot as ordered
// core.DrawOp lists; only rows marked in the view's dirty tracker are
// rebuilt on an incremental draw.
package hexview

import (
	"github.com/dshills/hexstorm/internal/engine/delta"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/renderer/dirty"
	"github.com/dshills/hexstorm/internal/renderer/style"
)

// DefaultBytesPerLine is the row width used when none is configured.
const DefaultBytesPerLine = 16

// View is the presentation state of the hex view.
type View struct {
	width, height int
	bpl           int

	// start is the rope offset of the first byte on screen, a multiple of
	// bpl.
	start int

	info string

	// lastPromptCol is the first input column shown in the prompt the last
	// time it was drawn; the prompt scrolls only when the cursor leaves it.
	lastPromptCol int

	theme   style.Theme
	tracker *dirty.Tracker
}

// New creates a view with no size. Call Resize before drawing.
func New(theme style.Theme, bytesPerLine int) *View {
	if bytesPerLine <= 0 {
		bytesPerLine = DefaultBytesPerLine
	}
	return &View{
		bpl:     bytesPerLine,
		theme:   theme,
		tracker: dirty.NewTracker(0, PanelHeight),
	}
}

// Resize sets the terminal size and schedules a full redraw.
func (v *View) Resize(width, height int) {
	v.width, v.height = max(width, 0), max(height, 0)
	v.tracker.SetRows(v.Rows())
}

// Size returns the terminal size.
func (v *View) Size() (width, height int) {
	return v.width, v.height
}

// Rows returns the number of data rows; the last terminal row is the
// status line.
func (v *View) Rows() int {
	return max(v.height-1, 0)
}

// BytesPerLine returns the row width in bytes.
func (v *View) BytesPerLine() int {
	return v.bpl
}

// SetBytesPerLine changes the row width. The first visible offset is
// realigned and everything is redrawn.
func (v *View) SetBytesPerLine(n int) {
	if n <= 0 || n == v.bpl {
		return
	}
	v.bpl = n
	v.start -= v.start % n
	v.tracker.MarkAll()
}

// ChunkSize is the number of bytes one screen shows, the unit the file
// window loads and trims in.
func (v *View) ChunkSize() int {
	return max(v.Rows(), 1) * v.bpl
}

// Start returns the rope offset of the first byte on screen.
func (v *View) Start() int {
	return v.start
}

// SetStart moves the view to the row holding rope offset off.
func (v *View) SetStart(off int) {
	off = max(off, 0)
	v.start = off - off%v.bpl
	v.tracker.MarkAll()
}

// Info returns the status message.
func (v *View) Info() string {
	return v.info
}

// SetInfo sets the status message shown until the next transition.
func (v *View) SetInfo(info string) {
	v.info = info
}

// Theme returns the view's theme.
func (v *View) Theme() style.Theme {
	return v.theme
}

// Tracker returns the dirty row tracker.
func (v *View) Tracker() *dirty.Tracker {
	return v.tracker
}

// Visible returns the rope range on screen. It includes offset dataLen,
// where a caret past the last byte is drawn.
func (v *View) Visible(dataLen int) delta.Interval {
	end := min(dataLen+1, v.start+v.Rows()*v.bpl)
	return delta.NewInterval(v.start, max(end, v.start))
}

// OffsetToRow returns the screen row of rope offset off.
func (v *View) OffsetToRow(off int) (int, bool) {
	if off < v.start {
		return 0, false
	}
	row := (off - v.start) / v.bpl
	if row >= v.Rows() {
		return 0, false
	}
	return row, true
}

// maxStart is the last start offset that still fills the screen: the row
// holding offset dataLen sits at the bottom.
func (v *View) maxStart(dataLen int) int {
	last := dataLen - dataLen%v.bpl
	return max(last-(v.Rows()-1)*v.bpl, 0)
}

// ScrollBy moves the view by lines rows, toward the end of the data for
// positive values, and returns how many rows it actually moved. It does
// not touch the screen or the tracker; see Scroll.
func (v *View) ScrollBy(lines, dataLen int) int {
	target := v.start + lines*v.bpl
	switch {
	case lines > 0:
		target = min(target, max(v.maxStart(dataLen), v.start))
	case lines < 0:
		target = max(target, 0)
	}
	moved := (target - v.start) / v.bpl
	v.start = target
	return moved
}

// Scroll moves the view by lines rows and shifts the rows already on b, so
// only the revealed rows and the panel need drawing. It returns the rows
// moved.
func (v *View) Scroll(b backend.Backend, lines, dataLen int) int {
	moved := v.ScrollBy(lines, dataLen)
	if moved == 0 {
		return 0
	}
	if moved >= v.Rows() || -moved >= v.Rows() {
		v.tracker.MarkAll()
		return moved
	}
	backend.ScrollRows(b, 0, v.Rows(), moved, v.theme.Default)
	v.tracker.MarkScroll(moved)
	return moved
}

// FollowCaret scrolls the fewest rows that bring rope offset caret on
// screen, using Scroll. It returns the rows moved.
func (v *View) FollowCaret(b backend.Backend, caret, dataLen int) int {
	if dataLen == 0 {
		if v.start != 0 {
			v.SetStart(0)
		}
		return 0
	}
	visible := v.Visible(dataLen)
	var lines int
	switch {
	case caret < visible.Start:
		lines = -ceilDiv(visible.Start-caret, v.bpl)
	case caret >= visible.Start+v.Rows()*v.bpl:
		lines = ceilDiv(caret-(visible.Start+v.Rows()*v.bpl)+1, v.bpl)
	default:
		return 0
	}
	return v.Scroll(b, lines, dataLen)
}

// Reveal realigns the view after the data length changed so that caret is
// on screen, and schedules a full redraw.
func (v *View) Reveal(caret, dataLen int) {
	caret = max(0, min(caret, dataLen))
	rows := max(v.Rows(), 1)
	switch {
	case caret < v.start:
		v.start = caret - caret%v.bpl
	case caret >= v.start+rows*v.bpl:
		v.start = max(caret-caret%v.bpl+v.bpl-rows*v.bpl, 0)
	}
	v.start = min(v.start, v.maxStart(dataLen))
	v.tracker.MarkAll()
}

// Shift moves the view by n bytes after the file window prepended or
// trimmed bytes at the start of the rope, so the same file bytes stay on
// screen. Trimmed rows that were visible are lost and the view clamps to
// the new rope start.
func (v *View) Shift(n int) {
	if n == 0 {
		return
	}
	v.SetStart(v.start + n)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
