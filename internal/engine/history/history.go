package history

import (
	"sync"
	"time"

	"github.com/dshills/hexstorm/internal/engine/delta"
	"github.com/dshills/hexstorm/internal/engine/rope"
)

// DefaultMaxEntries is the undo depth used when none is configured.
const DefaultMaxEntries = 1000

// Action is one undoable unit: the delta that reverts it.
type Action struct {
	Delta     delta.Delta
	Timestamp time.Time
}

// Step is the outcome of an undo or redo.
type Step struct {
	// Rope is the buffer content after the step.
	Rope rope.Rope
	// Delta is the delta that was applied to get there. Selections and
	// other offsets must be remapped through it.
	Delta delta.Delta
}

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	recording *Action
	undoStack []*Action
	redoStack []*Action

	// savePoint is the undo depth of the unmodified content, or -1 once that
	// state can no longer be reached.
	savePoint int

	maxEntries int
}

// New creates a history keeping at most maxEntries undo actions.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// ApplyAndRecord applies d to cur and records its inverse. Consecutive calls
// between commits coalesce into one action. The redo stack is cleared.
func (h *History) ApplyAndRecord(cur rope.Rope, d delta.Delta) (rope.Rope, error) {
	next, err := delta.Apply(cur, d)
	if err != nil {
		return cur, err
	}
	if d.IsIdentity() {
		return next, nil
	}
	inv, err := delta.Invert(d, cur)
	if err != nil {
		return cur, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.recording == nil {
		h.recording = &Action{Delta: inv, Timestamp: time.Now()}
	} else {
		// inv takes next back to cur, the recording takes cur back further.
		chained, err := delta.Chain(inv, cur, h.recording.Delta)
		if err != nil {
			return cur, err
		}
		h.recording.Delta = chained
		h.recording.Timestamp = time.Now()
	}

	if len(h.redoStack) > 0 {
		if h.savePoint > len(h.undoStack) {
			h.savePoint = -1
		}
		h.redoStack = nil
	}
	return next, nil
}

// Commit flushes the in-progress recording onto the undo stack.
func (h *History) Commit() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commitLocked()
}

func (h *History) commitLocked() {
	if h.recording == nil {
		return
	}
	if h.savePoint > len(h.undoStack) {
		h.savePoint = -1
	}
	h.undoStack = append(h.undoStack, h.recording)
	h.recording = nil
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
		h.savePoint -= excess
		if h.savePoint < 0 {
			h.savePoint = -1
		}
	}
}

// Undo reverts the last action. A pending recording is committed first.
// ok is false when there is nothing to undo.
func (h *History) Undo(cur rope.Rope) (step Step, ok bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.commitLocked()
	return h.moveLocked(cur, &h.undoStack, &h.redoStack)
}

// Redo re-applies the last undone action. ok is false when there is
// nothing to redo.
func (h *History) Redo(cur rope.Rope) (step Step, ok bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.recording != nil {
		return Step{Rope: cur}, false, nil
	}
	return h.moveLocked(cur, &h.redoStack, &h.undoStack)
}

// moveLocked pops an action from src, applies it and pushes its inverse onto
// dst. The stacks are untouched on error.
func (h *History) moveLocked(cur rope.Rope, src, dst *[]*Action) (Step, bool, error) {
	if len(*src) == 0 {
		return Step{Rope: cur}, false, nil
	}

	entry := (*src)[len(*src)-1]
	next, err := delta.Apply(cur, entry.Delta)
	if err != nil {
		return Step{Rope: cur}, false, err
	}
	inv, err := delta.Invert(entry.Delta, cur)
	if err != nil {
		return Step{Rope: cur}, false, err
	}

	*src = (*src)[:len(*src)-1]
	*dst = append(*dst, &Action{Delta: inv, Timestamp: time.Now()})
	return Step{Rope: next, Delta: entry.Delta}, true, nil
}

// PadAll extends every stored delta by prefix untouched bytes before and
// suffix untouched bytes after its base.
func (h *History) PadAll(prefix, suffix int) {
	if prefix == 0 && suffix == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.recording != nil {
		h.recording.Delta = h.recording.Delta.Pad(prefix, suffix)
	}
	for _, a := range h.undoStack {
		a.Delta = a.Delta.Pad(prefix, suffix)
	}
	for _, a := range h.redoStack {
		a.Delta = a.Delta.Pad(prefix, suffix)
	}
}

// IsRecording reports whether an edit is in progress.
func (h *History) IsRecording() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recording != nil
}

// IsEmpty reports whether there is nothing to undo, redo or commit.
func (h *History) IsEmpty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recording == nil && len(h.undoStack) == 0 && len(h.redoStack) == 0
}

// AtSavePoint reports whether the content equals the state the history
// started from (or was last marked with MarkSaved).
func (h *History) AtSavePoint() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recording == nil && h.savePoint == len(h.undoStack)
}

// MarkSaved makes the current state the save point.
func (h *History) MarkSaved() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commitLocked()
	h.savePoint = len(h.undoStack)
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recording != nil || len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recording == nil && len(h.redoStack) > 0
}

// UndoCount returns the number of committed undo actions.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo actions available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history and makes the current state the save point.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.recording = nil
	h.undoStack = nil
	h.redoStack = nil
	h.savePoint = 0
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max

	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
		h.savePoint -= excess
		if h.savePoint < 0 {
			h.savePoint = -1
		}
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
