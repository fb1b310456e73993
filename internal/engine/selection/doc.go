// Package selection provides the multi-region selection model of a buffer.
//
// A Region spans the bytes between its anchor and caret, both inclusive, so a
// collapsed region (anchor == caret) still covers the byte under the caret.
// The caret may sit one past the last byte (the overflow position) to allow
// appending.
//
// A Selection is an ordered list of regions that never overlap. Exactly one
// region is the main region. Every mapping over the selection re-sorts the
// regions and merges regions that overlap, or that touch and point the same
// way. The merged region keeps the main flag if any of its parts had it.
//
// Offsets must be remapped through every delta applied to the buffer:
//
//	sel.ApplyDelta(d)
//
// Selection is not safe for concurrent use.
package selection
