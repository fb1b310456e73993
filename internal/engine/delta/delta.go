package delta

import (
	"fmt"
	"strings"

	"github.com/dshills/hexstorm/internal/engine/rope"
)

// Element is one segment of a Delta: either a copy of base range
// [Start, End) or an inserted rope.
type Element struct {
	Start int
	End   int
	Bytes rope.Rope

	insert bool
}

// CopyElement returns an element copying base range [start, end).
func CopyElement(start, end int) Element {
	return Element{Start: start, End: end}
}

// InsertElement returns an element inserting r.
func InsertElement(r rope.Rope) Element {
	return Element{Bytes: r, insert: true}
}

// IsCopy reports whether the element copies from the base.
func (e Element) IsCopy() bool {
	return !e.insert
}

// Len returns the number of bytes the element contributes to the result.
func (e Element) Len() int {
	if e.insert {
		return e.Bytes.Len()
	}
	return e.End - e.Start
}

// Delta describes an edit from a base of BaseLen bytes to a new sequence.
type Delta struct {
	baseLen int
	elems   []Element
}

// New builds a delta from raw elements. Copies must be increasing and
// within the base; adjacent copies and adjacent inserts are merged.
func New(baseLen int, elems []Element) (Delta, error) {
	pos := 0
	for _, el := range elems {
		if !el.IsCopy() {
			continue
		}
		if el.Start < pos || el.End < el.Start || el.End > baseLen {
			return Delta{}, fmt.Errorf("delta: copy [%d, %d) out of order or outside base of %d",
				el.Start, el.End, baseLen)
		}
		pos = el.End
	}
	return Delta{baseLen: baseLen, elems: compact(elems)}, nil
}

// Identity returns the delta that copies all n base bytes.
func Identity(n int) Delta {
	return Delta{baseLen: n, elems: compact([]Element{CopyElement(0, n)})}
}

// SimpleEdit replaces base range [start, end) with r.
func SimpleEdit(start, end int, r rope.Rope, baseLen int) Delta {
	b := NewBuilder(baseLen)
	b.Replace(start, end, r)
	return b.Build()
}

// Insertion inserts data at offset.
func Insertion(offset int, data []byte, baseLen int) Delta {
	return SimpleEdit(offset, offset, rope.FromBytes(data), baseLen)
}

// Deletion deletes base range [start, end).
func Deletion(start, end, baseLen int) Delta {
	return SimpleEdit(start, end, rope.New(), baseLen)
}

// BaseLen returns the length of the sequence the delta applies to.
func (d Delta) BaseLen() int {
	return d.baseLen
}

// NewLen returns the length of the sequence the delta produces.
func (d Delta) NewLen() int {
	n := 0
	for _, el := range d.elems {
		n += el.Len()
	}
	return n
}

// Elements returns a copy of the delta's elements.
func (d Delta) Elements() []Element {
	out := make([]Element, len(d.elems))
	copy(out, d.elems)
	return out
}

// IsIdentity reports whether applying the delta leaves the base unchanged.
func (d Delta) IsIdentity() bool {
	switch len(d.elems) {
	case 0:
		return d.baseLen == 0
	case 1:
		el := d.elems[0]
		return el.IsCopy() && el.Start == 0 && el.End == d.baseLen
	}
	return false
}

// Pad returns the delta extended with prefix untouched bytes before its base
// and suffix untouched bytes after it.
func (d Delta) Pad(prefix, suffix int) Delta {
	elems := make([]Element, 0, len(d.elems)+2)
	if prefix > 0 {
		elems = append(elems, CopyElement(0, prefix))
	}
	for _, el := range d.elems {
		if el.IsCopy() {
			el.Start += prefix
			el.End += prefix
		}
		elems = append(elems, el)
	}
	if suffix > 0 {
		elems = append(elems, CopyElement(d.baseLen+prefix, d.baseLen+prefix+suffix))
	}
	return Delta{baseLen: d.baseLen + prefix + suffix, elems: compact(elems)}
}

func (d Delta) String() string {
	parts := make([]string, 0, len(d.elems))
	for _, el := range d.elems {
		if el.IsCopy() {
			parts = append(parts, fmt.Sprintf("copy %d..%d", el.Start, el.End))
		} else {
			parts = append(parts, fmt.Sprintf("insert %x", el.Bytes.String()))
		}
	}
	return fmt.Sprintf("Delta(%d: %s)", d.baseLen, strings.Join(parts, ", "))
}

// compact drops empty elements and merges adjacent copies and inserts.
func compact(elems []Element) []Element {
	out := make([]Element, 0, len(elems))
	for _, el := range elems {
		if el.Len() == 0 {
			continue
		}
		if last := len(out) - 1; last >= 0 {
			prev := out[last]
			if prev.IsCopy() && el.IsCopy() && prev.End == el.Start {
				out[last].End = el.End
				continue
			}
			if !prev.IsCopy() && !el.IsCopy() {
				out[last].Bytes = prev.Bytes.Concat(el.Bytes)
				continue
			}
		}
		out = append(out, el)
	}
	return out
}
