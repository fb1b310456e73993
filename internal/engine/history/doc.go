// Package history provides undo/redo for the hex editor engine.
//
// Edits are recorded as deltas. While an edit is in progress (for example
// while typing in insert mode) each keystroke's inverse is chained onto a
// single recording action, so the whole insertion undoes as one unit:
//
//	h := history.New(1000)
//	r, err := h.ApplyAndRecord(r, d1)
//	r, err = h.ApplyAndRecord(r, d2)
//	h.Commit()
//
//	step, ok, err := h.Undo(r) // step.Rope is the rope before d1
//
// # Actions
//
// An Action holds the delta that reverts one logical edit. Undo applies it
// and pushes the inverse onto the redo stack, so redo is symmetric.
//
// # Windows
//
// When the buffer window grows while history is non-empty, PadAll extends
// every stored delta with the new untouched bytes so the deltas keep
// matching the rope lengths they will be applied to.
package history
