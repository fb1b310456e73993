package delta

import (
	"fmt"

	"github.com/dshills/hexstorm/internal/engine/rope"
)

// Builder constructs a Delta from edits given in increasing base order.
// Edits are expressed in base coordinates; untouched bytes are copied.
type Builder struct {
	baseLen int
	pos     int
	elems   []Element
}

// NewBuilder returns a builder for a delta over baseLen bytes.
func NewBuilder(baseLen int) *Builder {
	return &Builder{baseLen: baseLen}
}

// Replace replaces base range [start, end) with r. Ranges must not go
// backwards or overlap a previous edit.
func (b *Builder) Replace(start, end int, r rope.Rope) {
	if start < b.pos || end < start || end > b.baseLen {
		panic(fmt.Sprintf("delta: edit [%d, %d) out of order (at %d, base %d)",
			start, end, b.pos, b.baseLen))
	}
	if start > b.pos {
		b.elems = append(b.elems, CopyElement(b.pos, start))
	}
	if !r.IsEmpty() {
		b.elems = append(b.elems, InsertElement(r))
	}
	b.pos = end
}

// Delete deletes base range [start, end).
func (b *Builder) Delete(start, end int) {
	b.Replace(start, end, rope.New())
}

// Insert inserts data at base offset at.
func (b *Builder) Insert(at int, data []byte) {
	b.Replace(at, at, rope.FromBytes(data))
}

// InsertRope inserts r at base offset at.
func (b *Builder) InsertRope(at int, r rope.Rope) {
	b.Replace(at, at, r)
}

// IsEmpty reports whether no edit has been recorded.
func (b *Builder) IsEmpty() bool {
	return len(b.elems) == 0 && b.pos == 0
}

// Build returns the delta. The builder should not be reused.
func (b *Builder) Build() Delta {
	elems := b.elems
	if b.pos < b.baseLen {
		elems = append(elems, CopyElement(b.pos, b.baseLen))
	}
	return Delta{baseLen: b.baseLen, elems: compact(elems)}
}
