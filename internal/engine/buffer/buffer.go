package buffer

import (
	"errors"
	"path/filepath"

	"github.com/dshills/hexstorm/internal/engine/delta"
	"github.com/dshills/hexstorm/internal/engine/history"
	"github.com/dshills/hexstorm/internal/engine/rope"
	"github.com/dshills/hexstorm/internal/engine/selection"
	"github.com/dshills/hexstorm/internal/engine/window"
	"github.com/dshills/hexstorm/internal/logging"
)

// Errors returned by buffer operations.
var (
	// ErrWindowPinned is returned when a jump or refresh would replace the
	// loaded window of a buffer that has unsaved edits.
	ErrWindowPinned = errors.New("buffer is modified; window cannot move")
)

// Buffer is an editable byte sequence with its selection and history.
type Buffer struct {
	data         rope.Rope
	sel          *selection.Selection
	hist         *history.History
	win          *window.Window
	name         string
	revision     uint64
	historyLimit int
	log          *logging.Logger
}

// New creates an in-memory buffer holding data.
func New(data rope.Rope, opts ...Option) *Buffer {
	b := &Buffer{
		data:         data,
		sel:          selection.New(),
		historyLimit: history.DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.hist = history.New(b.historyLimit)
	return b
}

// FromBytes creates an in-memory buffer holding a copy of data.
func FromBytes(data []byte, opts ...Option) *Buffer {
	return New(rope.FromBytes(data), opts...)
}

// Open creates a buffer streaming src through a window of chunkSize bytes.
// bytesPerLine keeps reloads aligned to display rows.
func Open(src window.Source, chunkSize, bytesPerLine int, opts ...Option) (*Buffer, error) {
	b := New(rope.New(), opts...)
	w := window.New(src, chunkSize, bytesPerLine, b.log)
	data, err := w.Open()
	if err != nil {
		return nil, err
	}
	b.win = w
	b.data = data
	if b.name == "" {
		b.name = filepath.Base(src.Path())
	}
	b.log.WithComponent("buffer").Info("opened %s: %d bytes loaded", src.Path(), data.Len())
	return b, nil
}

// Data returns the current content.
func (b *Buffer) Data() rope.Rope {
	return b.data
}

// Len returns the number of loaded bytes.
func (b *Buffer) Len() int {
	return b.data.Len()
}

// Name returns the display name.
func (b *Buffer) Name() string {
	if b.name == "" {
		return "[scratch]"
	}
	return b.name
}

// Path returns the backing file path, or "" for in-memory buffers.
func (b *Buffer) Path() string {
	if b.win == nil {
		return ""
	}
	return b.win.Path()
}

// Selection returns the live selection. Callers may map it directly for
// movements that do not edit the buffer.
func (b *Buffer) Selection() *selection.Selection {
	return b.sel
}

// History returns the edit history.
func (b *Buffer) History() *history.History {
	return b.hist
}

// Window returns the file window, or nil for in-memory buffers.
func (b *Buffer) Window() *window.Window {
	return b.win
}

// Revision increases with every content change.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// Dirty reports whether the content differs from the opened state.
func (b *Buffer) Dirty() bool {
	return !b.hist.AtSavePoint()
}

// Pristine reports whether the buffer has no edit history at all, which is
// the only state in which the window may drop loaded bytes.
func (b *Buffer) Pristine() bool {
	return b.hist.IsEmpty()
}

// FileStart returns the file offset of rope offset 0.
func (b *Buffer) FileStart() int {
	if b.win == nil {
		return 0
	}
	return b.win.Start()
}

// FileSize returns the size of the backing file, or the rope length for
// in-memory buffers.
func (b *Buffer) FileSize() (int, error) {
	if b.win == nil {
		return b.data.Len(), nil
	}
	return b.win.FileSize()
}

// ApplyDelta applies d, remaps the selection through it and records it in
// the history. Consecutive edits coalesce until Commit.
//
// A length mismatch means a caller built d against a stale rope. The buffer
// is left unchanged and the error wraps delta.ErrLengthMismatch.
func (b *Buffer) ApplyDelta(d delta.Delta) (DirtyBytes, error) {
	if d.IsIdentity() && d.BaseLen() == b.data.Len() {
		return DirtyBytes{}, nil
	}
	next, err := b.hist.ApplyAndRecord(b.data, d)
	if err != nil {
		return DirtyBytes{}, err
	}
	b.data = next
	b.sel.ApplyDelta(d)
	b.revision++
	return DirtyFor(d), nil
}

// MustApplyDelta is ApplyDelta for deltas built from the current rope. A
// length mismatch there is a programming error and panics.
func (b *Buffer) MustApplyDelta(d delta.Delta) DirtyBytes {
	dirty, err := b.ApplyDelta(d)
	if err != nil {
		panic(err)
	}
	return dirty
}

// SetSelection replaces the selection. Regions are clamped to the rope.
func (b *Buffer) SetSelection(sel *selection.Selection) {
	sel.Clamp(b.data.Len())
	b.sel = sel
}

// Commit closes the action being recorded.
func (b *Buffer) Commit() {
	b.hist.Commit()
}

// Undo reverts the last action. ok is false when there was nothing to undo.
func (b *Buffer) Undo() (DirtyBytes, bool, error) {
	step, ok, err := b.hist.Undo(b.data)
	return b.step(step, ok, err)
}

// Redo reapplies the last undone action.
func (b *Buffer) Redo() (DirtyBytes, bool, error) {
	step, ok, err := b.hist.Redo(b.data)
	return b.step(step, ok, err)
}

func (b *Buffer) step(step history.Step, ok bool, err error) (DirtyBytes, bool, error) {
	if err != nil || !ok {
		return DirtyBytes{}, ok, err
	}
	b.data = step.Rope
	b.sel.ApplyDelta(step.Delta)
	b.revision++
	return DirtyFor(step.Delta), true, nil
}

// ManageWindow lets the window react to a scroll in dir while view (a rope
// interval) is on screen. The window change is applied to the rope and the
// selection; for a modified buffer the history is padded to the grown rope.
// It returns the change so the caller can shift its view.
//
// On a read error the buffer is unchanged.
func (b *Buffer) ManageWindow(view delta.Interval, dir window.Direction) (window.Change, error) {
	if b.win == nil {
		return window.Change{}, nil
	}
	pristine := b.Pristine()
	change, err := b.win.Manage(b.data, view, dir, pristine)
	if err != nil || change.IsEmpty() {
		return window.Change{}, err
	}
	b.data = delta.MustApply(b.data, change.Delta)
	b.sel.ApplyDelta(change.Delta)
	if !pristine {
		b.hist.PadAll(change.Prepended, change.Appended)
	}
	b.revision++
	return change, nil
}

// JumpToFileOffset collapses the selection to a caret at file offset target
// and returns its rope offset. When target lies outside the loaded window
// the window is reloaded around it, which requires a pristine buffer.
func (b *Buffer) JumpToFileOffset(target int) (int, error) {
	size, err := b.FileSize()
	if err != nil {
		return 0, err
	}
	target = max(0, min(target, size))

	if b.win != nil && !b.inWindow(target, size) {
		if !b.Pristine() {
			return 0, ErrWindowPinned
		}
		data, err := b.win.Reload(target)
		if err != nil {
			return 0, err
		}
		b.data = data
		b.revision++
	}

	off := max(0, min(target-b.FileStart(), b.data.Len()))
	b.sel = selection.NewAt(off)
	return off, nil
}

// inWindow reports whether file offset target has a rope position. The end of
// the window only counts when it is the end of the file.
func (b *Buffer) inWindow(target, size int) bool {
	start, end := b.win.Start(), b.win.End()
	if target == end {
		return end == size
	}
	return target >= start && target < end
}

// Refresh rereads the loaded window from the source, for example after the
// file changed on disk. Modified buffers refuse with ErrWindowPinned.
func (b *Buffer) Refresh() (DirtyBytes, error) {
	if b.win == nil {
		return DirtyBytes{}, nil
	}
	if !b.Pristine() {
		return DirtyBytes{}, ErrWindowPinned
	}
	data, err := b.win.Reload(b.win.Start() + b.win.ChunkSize()/2)
	if err != nil {
		return DirtyBytes{}, err
	}
	b.data = data
	b.sel.Clamp(data.Len())
	b.revision++
	return LengthChanged(), nil
}

// SetChunkSize changes the window chunk size, for example after a resize.
// A pristine window larger than two of the new chunks is trimmed around
// view, and the returned change says how far rope offsets moved.
func (b *Buffer) SetChunkSize(n, bytesPerLine int, view delta.Interval) window.Change {
	if b.win == nil {
		return window.Change{}
	}
	b.win.SetChunkSize(n)
	b.win.SetAlign(bytesPerLine)

	change := b.win.Shrink(b.data, view, b.Pristine())
	if change.IsEmpty() {
		return change
	}
	b.data = delta.MustApply(b.data, change.Delta)
	b.sel.ApplyDelta(change.Delta)
	b.revision++
	return change
}

// Snapshot captures the state needed to draw the buffer.
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{
		Data:      b.data,
		Regions:   b.sel.Regions(),
		MainIndex: b.sel.MainIndex(),
		FileStart: b.FileStart(),
		Name:      b.Name(),
		Dirty:     b.Dirty(),
		Revision:  b.revision,
	}
}

// Snapshot is a read-only view of a buffer. The rope is persistent, so a
// snapshot stays valid while the buffer keeps changing.
type Snapshot struct {
	Data      rope.Rope
	Regions   []selection.Region
	MainIndex int
	FileStart int
	Name      string
	Dirty     bool
	Revision  uint64
}

// Main returns the main region of the snapshot.
func (s Snapshot) Main() selection.Region {
	if len(s.Regions) == 0 {
		return selection.Region{Main: true}
	}
	return s.Regions[s.MainIndex]
}
