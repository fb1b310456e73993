// Package dirty tracks which screen rows of the hex view need redrawing.
//
// Changes arrive as byte intervals (edits, selection moves) or as scrolls;
// both are reduced to half-open row ranges. Ranges are kept sorted and
// merged, so iterating the dirty rows never visits a row twice.
package dirty

import "fmt"

// Rows is the half-open row range [Start, End).
type Rows struct {
	Start int
	End   int
}

// NewRows returns [start, end), empty when end <= start.
func NewRows(start, end int) Rows {
	if end < start {
		end = start
	}
	return Rows{Start: start, End: end}
}

// Len returns the number of rows in the range.
func (r Rows) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range holds no rows.
func (r Rows) IsEmpty() bool {
	return r.End <= r.Start
}

// Contains reports whether row is in the range.
func (r Rows) Contains(row int) bool {
	return row >= r.Start && row < r.End
}

// Clip bounds the range to [0, n).
func (r Rows) Clip(n int) Rows {
	return NewRows(max(r.Start, 0), min(r.End, n))
}

// Merge joins two overlapping or adjacent ranges. ok is false when a gap
// separates them.
func (r Rows) Merge(other Rows) (Rows, bool) {
	if r.End < other.Start || other.End < r.Start {
		return r, false
	}
	return Rows{Start: min(r.Start, other.Start), End: max(r.End, other.End)}, true
}

func (r Rows) String() string {
	return fmt.Sprintf("rows[%d, %d)", r.Start, r.End)
}
