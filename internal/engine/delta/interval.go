package delta

import "fmt"

// Interval is a half-open byte range [Start, End).
type Interval struct {
	Start int
	End   int
}

// NewInterval returns the interval [start, end). Inverted bounds yield an
// empty interval at start.
func NewInterval(start, end int) Interval {
	if end < start {
		end = start
	}
	return Interval{Start: start, End: end}
}

// Len returns the number of bytes covered.
func (iv Interval) Len() int {
	return iv.End - iv.Start
}

// IsEmpty reports whether the interval covers no bytes.
func (iv Interval) IsEmpty() bool {
	return iv.End <= iv.Start
}

// Contains reports whether offset lies inside the interval.
func (iv Interval) Contains(offset int) bool {
	return offset >= iv.Start && offset < iv.End
}

// Intersect returns the overlap of two intervals, possibly empty.
func (iv Interval) Intersect(other Interval) Interval {
	return NewInterval(max(iv.Start, other.Start), min(iv.End, other.End))
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d)", iv.Start, iv.End)
}
