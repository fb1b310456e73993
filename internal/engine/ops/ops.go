// Package ops builds the deltas for editing operations over a selection.
//
// Every function takes the current rope length and the selection and returns
// one delta covering all regions. The caller applies it to the buffer, which
// remaps the selection through the same delta.
package ops

import (
	"bytes"

	"github.com/dshills/hexstorm/internal/engine/delta"
	"github.com/dshills/hexstorm/internal/engine/rope"
	"github.com/dshills/hexstorm/internal/engine/selection"
)

// Delete removes the bytes of every region.
func Delete(n int, sel *selection.Selection) delta.Delta {
	b := delta.NewBuilder(n)
	for _, r := range sel.Regions() {
		rng := r.Range(n)
		if !rng.IsEmpty() {
			b.Delete(rng.Start, rng.End)
		}
	}
	return b.Build()
}

// Insert inserts data before the first byte of every region.
func Insert(n int, sel *selection.Selection, data []byte) delta.Delta {
	return InsertRope(n, sel, rope.FromBytes(data))
}

// InsertRope is like Insert for rope data.
func InsertRope(n int, sel *selection.Selection, data rope.Rope) delta.Delta {
	b := delta.NewBuilder(n)
	if data.IsEmpty() {
		return b.Build()
	}
	for _, r := range sel.Regions() {
		b.InsertRope(min(r.Min(), n), data)
	}
	return b.Build()
}

// Backspace removes the byte before every region.
func Backspace(n int, sel *selection.Selection) delta.Delta {
	b := delta.NewBuilder(n)
	for _, r := range sel.Regions() {
		if at := min(r.Min(), n); at > 0 {
			b.Delete(at-1, at)
		}
	}
	return b.Build()
}

// Replace overwrites every byte of every region with value.
func Replace(n int, sel *selection.Selection, value byte) delta.Delta {
	b := delta.NewBuilder(n)
	for _, r := range sel.Regions() {
		rng := r.Range(n)
		if rng.IsEmpty() {
			continue
		}
		b.Replace(rng.Start, rng.End, rope.Repeat([]byte{value}, rng.Len()))
	}
	return b.Build()
}

// ReplaceBefore overwrites the byte just before every region with value.
// Hex insertion uses it to complete the low nibble of the byte it inserted.
func ReplaceBefore(n int, sel *selection.Selection, value byte) delta.Delta {
	b := delta.NewBuilder(n)
	for _, r := range sel.Regions() {
		if at := min(r.Min(), n); at > 0 {
			b.Replace(at-1, at, rope.FromBytes([]byte{value}))
		}
	}
	return b.Build()
}

// Yank returns the bytes of every region, in order.
func Yank(data rope.Rope, sel *selection.Selection) [][]byte {
	out := make([][]byte, 0, sel.Len())
	for _, r := range sel.Regions() {
		rng := r.Range(data.Len())
		out = append(out, data.Slice(rng.Start, rng.End))
	}
	return out
}

// Paste inserts clips before (or after) each region. With as many clips as
// regions each region gets its own clip, otherwise every region gets all
// clips joined.
func Paste(n int, sel *selection.Selection, clips [][]byte, after bool) delta.Delta {
	b := delta.NewBuilder(n)
	joined := rope.FromBytes(bytes.Join(clips, nil))
	for i, r := range sel.Regions() {
		data := joined
		if len(clips) == sel.Len() {
			data = rope.FromBytes(clips[i])
		}
		if data.IsEmpty() {
			continue
		}
		at := r.Min()
		if after {
			at = r.Max() + 1
		}
		b.InsertRope(min(at, n), data)
	}
	return b.Build()
}
