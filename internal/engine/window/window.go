// Package window streams a large file through a bounded in-memory rope.
//
// A Window covers the file range [Start, End). Scrolling near the bottom of
// the rope appends the next chunk and, once the rope would exceed two chunks,
// trims one chunk from the top. Scrolling near the top does the opposite.
// Only the trigger for the scroll direction is evaluated, so a trim never
// immediately re-triggers a fetch on the other side.
//
// The window never touches the buffer rope itself. Each adjustment is
// returned as a Change holding the delta to apply, which lets the caller remap
// selections and history through the same edit.
//
// Trims only happen while the buffer is pristine. A modified buffer keeps
// every loaded byte, and fetched chunks are reported as plain prefix or
// suffix growth so history deltas can be padded to match.
package window

import (
	"errors"
	"io"

	"github.com/dshills/hexstorm/internal/engine/delta"
	"github.com/dshills/hexstorm/internal/engine/rope"
	"github.com/dshills/hexstorm/internal/logging"
)

// Direction is the direction of the scroll that triggered an adjustment.
type Direction int

const (
	Down Direction = iota
	Up
)

// Change is a window adjustment to apply to the buffer rope.
type Change struct {
	Delta delta.Delta

	Prepended     int
	Appended      int
	TrimmedTop    int
	TrimmedBottom int
}

// IsEmpty reports whether the change does nothing.
func (c Change) IsEmpty() bool {
	return c.Prepended == 0 && c.Appended == 0 && c.TrimmedTop == 0 && c.TrimmedBottom == 0
}

// Shift returns how far the rope offset of every surviving byte moved.
func (c Change) Shift() int {
	return c.Prepended - c.TrimmedTop
}

// Window tracks which part of a source the buffer rope holds.
type Window struct {
	src       Source
	start     int
	end       int
	chunkSize int
	align     int
	atEOF     bool
	log       *logging.Logger
}

// New returns a window over src. chunkSize is one screenful of bytes and
// align, normally bytes per line, keeps reload offsets on row boundaries.
func New(src Source, chunkSize, align int, log *logging.Logger) *Window {
	return &Window{
		src:       src,
		chunkSize: max(chunkSize, 1),
		align:     max(align, 1),
		log:       log.WithComponent("window"),
	}
}

// Start returns the file offset of the first rope byte.
func (w *Window) Start() int {
	return w.start
}

// End returns the file offset just past the last loaded byte.
func (w *Window) End() int {
	return w.end
}

// ChunkSize returns the fetch and trim unit.
func (w *Window) ChunkSize() int {
	return w.chunkSize
}

// SetChunkSize changes the fetch and trim unit, e.g. after a resize. A
// smaller unit takes effect on the loaded bytes through Shrink.
func (w *Window) SetChunkSize(n int) {
	w.chunkSize = max(n, 1)
}

// Shrink trims a pristine window back to two chunks after the chunk size
// dropped. Bytes below view go first, then row-aligned bytes above it; the
// view itself is never trimmed.
func (w *Window) Shrink(r rope.Rope, view delta.Interval, pristine bool) Change {
	n := r.Len()
	excess := n - 2*w.chunkSize
	if w.src == nil || !pristine || excess <= 0 {
		return Change{}
	}
	viewStart := max(0, min(view.Start, n))
	viewEnd := max(viewStart, min(view.End, n))

	bottom := min(excess, n-viewEnd)
	top := 0
	if rest := excess - bottom; rest > 0 {
		limit := viewStart - viewStart%w.align
		top = min(limit, ceilTo(rest, w.align))
	}
	if top == 0 && bottom == 0 {
		return Change{}
	}

	b := delta.NewBuilder(n)
	if top > 0 {
		b.Delete(0, top)
	}
	if bottom > 0 {
		b.Delete(n-bottom, n)
		w.atEOF = false
	}
	w.start += top
	w.end -= bottom
	w.log.Debug("shrunk by %d above and %d below; window [%d, %d)", top, bottom, w.start, w.end)
	return Change{Delta: b.Build(), TrimmedTop: top, TrimmedBottom: bottom}
}

func ceilTo(n, m int) int {
	return (n + m - 1) / m * m
}

// SetAlign changes the reload alignment.
func (w *Window) SetAlign(n int) {
	w.align = max(n, 1)
}

// Source returns the backing source.
func (w *Window) Source() Source {
	return w.src
}

// Path returns the name of the backing source.
func (w *Window) Path() string {
	if w.src == nil {
		return ""
	}
	return w.src.Path()
}

// FileOffset converts a rope offset to a file offset.
func (w *Window) FileOffset(ropeOffset int) int {
	return w.start + ropeOffset
}

// FileSize returns the current size of the source.
func (w *Window) FileSize() (int, error) {
	if w.src == nil {
		return 0, ErrNoSource
	}
	n, err := w.src.Size()
	if err != nil {
		return 0, &ReadError{Path: w.src.Path(), Offset: -1, Err: err}
	}
	return int(n), nil
}

// Open loads the first chunk of the source.
func (w *Window) Open() (rope.Rope, error) {
	return w.load(0, w.chunkSize)
}

// Reload replaces the window with up to two chunks around file offset
// target. The previous rope must be discarded by the caller. A source that
// was replaced on disk is reopened first.
func (w *Window) Reload(target int) (rope.Rope, error) {
	if ro, ok := w.src.(Reopener); ok {
		switched, err := ro.Reopen()
		if err != nil {
			return rope.Rope{}, &ReadError{Path: w.src.Path(), Offset: -1, Err: err}
		}
		if switched {
			w.log.Info("reopened replaced file %s", w.src.Path())
		}
	}
	size, err := w.FileSize()
	if err != nil {
		return rope.Rope{}, err
	}
	start := target - w.chunkSize/2
	start = max(0, min(start, size-w.chunkSize))
	start -= start % w.align
	return w.load(start, min(size-start, 2*w.chunkSize))
}

func (w *Window) load(start, n int) (rope.Rope, error) {
	if w.src == nil {
		return rope.Rope{}, ErrNoSource
	}
	data, err := w.read(int64(start), n)
	if err != nil {
		return rope.Rope{}, err
	}
	w.start = start
	w.end = start + len(data)
	w.atEOF = false
	w.log.Debug("loaded %d bytes at %d", len(data), start)
	return rope.FromBytes(data), nil
}

// Manage evaluates the trigger for a scroll in dir. r is the buffer rope and
// view the rope range on screen. pristine reports whether the buffer has no
// edit history, which is the only state in which trimming is allowed.
//
// On error the window is unchanged and the returned change is empty.
func (w *Window) Manage(r rope.Rope, view delta.Interval, dir Direction, pristine bool) (Change, error) {
	if w.src == nil {
		return Change{}, nil
	}
	n := r.Len()
	switch dir {
	case Down:
		if n-view.End < n/10 {
			return w.fetchBottom(n, pristine)
		}
	case Up:
		if w.start > 0 && view.Start < n/10 {
			return w.fetchTop(n, pristine)
		}
	}
	return Change{}, nil
}

// fetchBottom appends the chunk following the window.
func (w *Window) fetchBottom(n int, pristine bool) (Change, error) {
	if w.atEOF {
		return Change{}, nil
	}
	data, err := w.read(int64(w.end), w.chunkSize)
	if err != nil {
		w.log.Warn("bottom fetch failed: %v", err)
		return Change{}, err
	}
	if len(data) == 0 {
		w.atEOF = true
		w.log.Debug("end of file reached at %d", w.end)
		return Change{}, nil
	}

	trim := 0
	if pristine && n+len(data) > 2*w.chunkSize {
		trim = min(w.chunkSize, n)
	}

	b := delta.NewBuilder(n)
	if trim > 0 {
		b.Delete(0, trim)
	}
	b.Insert(n, data)

	w.end += len(data)
	w.start += trim
	w.log.Debug("fetched %d bytes below, trimmed %d above; window [%d, %d)", len(data), trim, w.start, w.end)
	return Change{Delta: b.Build(), Appended: len(data), TrimmedTop: trim}, nil
}

// fetchTop prepends the chunk preceding the window.
func (w *Window) fetchTop(n int, pristine bool) (Change, error) {
	readLen := min(w.chunkSize, w.start)
	off := w.start - readLen
	data, err := w.read(int64(off), readLen)
	if err == nil && len(data) < readLen {
		// The file shrank under the window.
		err = &ReadError{Path: w.src.Path(), Offset: int64(off), Err: io.ErrUnexpectedEOF}
	}
	if err != nil {
		w.log.Warn("top fetch failed: %v", err)
		return Change{}, err
	}

	trim := 0
	if pristine && n+len(data) > 2*w.chunkSize {
		trim = min(w.chunkSize, n)
	}

	b := delta.NewBuilder(n)
	b.Insert(0, data)
	if trim > 0 {
		b.Delete(n-trim, n)
		w.atEOF = false
	}

	w.start = off
	w.end -= trim
	w.log.Debug("fetched %d bytes above, trimmed %d below; window [%d, %d)", len(data), trim, w.start, w.end)
	return Change{Delta: b.Build(), Prepended: len(data), TrimmedBottom: trim}, nil
}

func (w *Window) read(off int64, n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := w.src.ReadAt(buf, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &ReadError{Path: w.src.Path(), Offset: off, Err: err}
	}
	return buf[:got], nil
}
