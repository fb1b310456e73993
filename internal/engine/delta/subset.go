package delta

import (
	"fmt"
	"strings"

	"github.com/dshills/hexstorm/internal/engine/rope"
)

type segment struct {
	len int
	in  bool
}

// Subset marks positions of a coordinate space as in or out.
// The zero value is an empty subset of an empty space.
type Subset struct {
	segs []segment
}

// SubsetBuilder accumulates runs into a Subset. Adjacent runs with the same
// membership are merged and empty runs are dropped.
type SubsetBuilder struct {
	segs  []segment
	total int
}

// Add appends a run of n positions.
func (b *SubsetBuilder) Add(n int, in bool) {
	if n <= 0 {
		return
	}
	b.total += n
	if last := len(b.segs) - 1; last >= 0 && b.segs[last].in == in {
		b.segs[last].len += n
		return
	}
	b.segs = append(b.segs, segment{len: n, in: in})
}

// PadTo appends out positions until the subset covers n positions.
func (b *SubsetBuilder) PadTo(n int) {
	b.Add(n-b.total, false)
}

// Len returns the number of positions added so far.
func (b *SubsetBuilder) Len() int {
	return b.total
}

// Build returns the accumulated subset.
func (b *SubsetBuilder) Build() Subset {
	segs := b.segs
	b.segs, b.total = nil, 0
	return Subset{segs: segs}
}

// EmptySubset returns a subset of n positions with nothing marked.
func EmptySubset(n int) Subset {
	var b SubsetBuilder
	b.Add(n, false)
	return b.Build()
}

// RangeSubset returns a subset of n positions marking [start, end).
func RangeSubset(n, start, end int) Subset {
	var b SubsetBuilder
	b.Add(start, false)
	b.Add(end-start, true)
	b.PadTo(n)
	return b.Build()
}

// Len returns the size of the coordinate space.
func (s Subset) Len() int {
	n := 0
	for _, seg := range s.segs {
		n += seg.len
	}
	return n
}

// CountIn returns the number of marked positions.
func (s Subset) CountIn() int {
	n := 0
	for _, seg := range s.segs {
		if seg.in {
			n += seg.len
		}
	}
	return n
}

// CountOut returns the number of unmarked positions.
func (s Subset) CountOut() int {
	return s.Len() - s.CountIn()
}

// IsEmpty reports whether no position is marked.
func (s Subset) IsEmpty() bool {
	for _, seg := range s.segs {
		if seg.in {
			return false
		}
	}
	return true
}

// Contains reports whether pos is marked.
func (s Subset) Contains(pos int) bool {
	off := 0
	for _, seg := range s.segs {
		if pos < off+seg.len {
			return pos >= off && seg.in
		}
		off += seg.len
	}
	return false
}

// Ranges returns the marked runs in order.
func (s Subset) Ranges() []Interval {
	var out []Interval
	off := 0
	for _, seg := range s.segs {
		if seg.in {
			out = append(out, Interval{Start: off, End: off + seg.len})
		}
		off += seg.len
	}
	return out
}

// Complement returns the subset marking exactly the unmarked positions.
func (s Subset) Complement() Subset {
	segs := make([]segment, len(s.segs))
	for i, seg := range s.segs {
		segs[i] = segment{len: seg.len, in: !seg.in}
	}
	return Subset{segs: segs}
}

// Union marks every position marked by either subset.
// Both subsets must cover the same space.
func (s Subset) Union(other Subset) Subset {
	var b SubsetBuilder
	zipRuns(s, other, func(n int, a, o bool) {
		b.Add(n, a || o)
	})
	return b.Build()
}

// TransformExpand maps s, a subset of the positions other leaves out, into the
// full space of other. Positions marked by other are unmarked in the result.
func (s Subset) TransformExpand(other Subset) Subset {
	if s.Len() != other.CountOut() {
		panic(fmt.Sprintf("delta: expand of subset len %d through subset with %d free positions",
			s.Len(), other.CountOut()))
	}

	var b SubsetBuilder
	i, rem := 0, 0
	for _, seg := range other.segs {
		if seg.in {
			b.Add(seg.len, false)
			continue
		}
		need := seg.len
		for need > 0 {
			if rem == 0 {
				rem = s.segs[i].len
			}
			n := min(rem, need)
			b.Add(n, s.segs[i].in)
			rem -= n
			need -= n
			if rem == 0 {
				i++
			}
		}
	}
	return b.Build()
}

// TransformShrink drops the positions marked by other from s.
// Both subsets must cover the same space.
func (s Subset) TransformShrink(other Subset) Subset {
	var b SubsetBuilder
	zipRuns(s, other, func(n int, a, o bool) {
		if !o {
			b.Add(n, a)
		}
	})
	return b.Build()
}

// TransformUnion is TransformExpand followed by a union with other.
func (s Subset) TransformUnion(other Subset) Subset {
	return s.TransformExpand(other).Union(other)
}

// mapOut returns the position in the full space of s of the p-th unmarked
// position. A p sitting right before a marked run maps after that run when
// after is set, and before it otherwise. p may equal CountOut.
func (s Subset) mapOut(p int, after bool) int {
	out, full := 0, 0
	for _, seg := range s.segs {
		if seg.in {
			if !after && out == p {
				return full
			}
			full += seg.len
			continue
		}
		if p < out+seg.len {
			return full + p - out
		}
		out += seg.len
		full += seg.len
	}
	return full
}

// DeleteFrom returns b without the marked positions.
func (s Subset) DeleteFrom(b []byte) []byte {
	if len(b) != s.Len() {
		panic(fmt.Sprintf("delta: subset of len %d applied to %d bytes", s.Len(), len(b)))
	}
	out := make([]byte, 0, s.CountOut())
	off := 0
	for _, seg := range s.segs {
		if !seg.in {
			out = append(out, b[off:off+seg.len]...)
		}
		off += seg.len
	}
	return out
}

// DeleteFromRope returns r without the marked positions, sharing the
// surviving nodes of r.
func (s Subset) DeleteFromRope(r rope.Rope) rope.Rope {
	if r.Len() != s.Len() {
		panic(fmt.Sprintf("delta: subset of len %d applied to rope of len %d", s.Len(), r.Len()))
	}
	out := rope.New()
	off := 0
	for _, seg := range s.segs {
		if !seg.in {
			out = out.Concat(r.SubRope(off, off+seg.len))
		}
		off += seg.len
	}
	return out
}

// String renders the subset as runs, e.g. "3-2+1-" for out(3) in(2) out(1).
func (s Subset) String() string {
	var sb strings.Builder
	for _, seg := range s.segs {
		sign := "-"
		if seg.in {
			sign = "+"
		}
		fmt.Fprintf(&sb, "%d%s", seg.len, sign)
	}
	return sb.String()
}

// zipRuns walks two subsets of the same space run by run.
func zipRuns(a, b Subset, fn func(n int, aIn, bIn bool)) {
	if a.Len() != b.Len() {
		panic(fmt.Sprintf("delta: subsets cover different spaces (%d and %d)", a.Len(), b.Len()))
	}
	i, j := 0, 0
	ra, rb := 0, 0
	for i < len(a.segs) && j < len(b.segs) {
		if ra == 0 {
			ra = a.segs[i].len
		}
		if rb == 0 {
			rb = b.segs[j].len
		}
		n := min(ra, rb)
		fn(n, a.segs[i].in, b.segs[j].in)
		ra -= n
		rb -= n
		if ra == 0 {
			i++
		}
		if rb == 0 {
			j++
		}
	}
}
