package selection

import (
	"fmt"

	"github.com/dshills/hexstorm/internal/engine/delta"
)

// Direction is a caret movement direction.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Region is one selected span. Anchor and Caret are both inclusive.
type Region struct {
	Anchor int
	Caret  int
	Main   bool
}

// NewRegion returns a non-main region.
func NewRegion(anchor, caret int) Region {
	return Region{Anchor: anchor, Caret: caret}
}

// Min returns the first selected offset.
func (r Region) Min() int {
	return min(r.Anchor, r.Caret)
}

// Max returns the last selected offset.
func (r Region) Max() int {
	return max(r.Anchor, r.Caret)
}

// Len returns the number of offsets the region covers.
func (r Region) Len() int {
	return r.Max() - r.Min() + 1
}

// IsForward reports whether the caret is at or after the anchor.
func (r Region) IsForward() bool {
	return r.Caret >= r.Anchor
}

// Contains reports whether offset is inside the region.
func (r Region) Contains(offset int) bool {
	return offset >= r.Min() && offset <= r.Max()
}

// Overlaps reports whether the regions share an offset.
func (r Region) Overlaps(other Region) bool {
	return r.Min() <= other.Max() && other.Min() <= r.Max()
}

// Touches reports whether the regions overlap, or are adjacent and point the
// same way.
func (r Region) Touches(other Region) bool {
	if r.Overlaps(other) {
		return true
	}
	if r.IsForward() != other.IsForward() {
		return false
	}
	return r.Max()+1 == other.Min() || other.Max()+1 == r.Min()
}

// Merge returns a region covering both. The orientation of r is kept.
func (r Region) Merge(other Region) Region {
	lo, hi := min(r.Min(), other.Min()), max(r.Max(), other.Max())
	out := Region{Anchor: lo, Caret: hi, Main: r.Main || other.Main}
	if !r.IsForward() {
		out.Anchor, out.Caret = hi, lo
	}
	return out
}

// Collapse moves the anchor onto the caret.
func (r Region) Collapse() Region {
	r.Anchor = r.Caret
	return r
}

// Flip swaps anchor and caret.
func (r Region) Flip() Region {
	r.Anchor, r.Caret = r.Caret, r.Anchor
	return r
}

// Range returns the covered offsets as a half-open interval clipped to n
// bytes. The overflow position is not a byte and is never included.
func (r Region) Range(n int) delta.Interval {
	start := min(r.Min(), n)
	end := min(r.Max()+1, n)
	return delta.Interval{Start: start, End: end}
}

// Clip returns the part of the region inside [start, end) for display.
// ok is false when they do not intersect.
func (r Region) Clip(start, end int) (lo, hi int, ok bool) {
	lo, hi = max(r.Min(), start), min(r.Max(), end-1)
	return lo, hi, lo <= hi
}

// Clamp limits both ends to [0, n].
func (r Region) Clamp(n int) Region {
	r.Anchor = clamp(r.Anchor, 0, n)
	r.Caret = clamp(r.Caret, 0, n)
	return r
}

// SimpleMove moves the caret count steps in dir and brings the anchor along.
// Left and right move by one byte, up and down by bytesPerLine. The result is
// clamped to [0, maxBytes].
func (r Region) SimpleMove(dir Direction, bytesPerLine, maxBytes, count int) Region {
	r = r.SimpleExtend(dir, bytesPerLine, maxBytes, count)
	r.Anchor = r.Caret
	return r
}

// SimpleExtend is like SimpleMove but leaves the anchor in place.
func (r Region) SimpleExtend(dir Direction, bytesPerLine, maxBytes, count int) Region {
	stride := 1
	if dir == Up || dir == Down {
		stride = bytesPerLine
	}
	step := stride * max(count, 1)
	if dir == Left || dir == Up {
		step = -step
	}
	r.Caret = clamp(r.Caret+step, 0, maxBytes)
	return r
}

// ApplyDelta remaps both ends through d.
func (r Region) ApplyDelta(d delta.Delta) Region {
	r.Anchor = d.TransformOffset(r.Anchor)
	r.Caret = d.TransformOffset(r.Caret)
	return r
}

func (r Region) String() string {
	main := ""
	if r.Main {
		main = "*"
	}
	return fmt.Sprintf("%s[%d→%d]", main, r.Anchor, r.Caret)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
