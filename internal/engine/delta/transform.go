package delta

// TransformOffset maps a base offset to the delta's result.
//
// Offsets before an insertion point are unchanged and offsets at or after it
// shift by the inserted length. An offset inside a deleted range clamps to the
// start of the gap; when the gap was replaced by new bytes the offset keeps its
// distance from the gap start, capped at the replacement length, so a
// same-length replacement leaves offsets where they were.
func (d Delta) TransformOffset(offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > d.baseLen {
		offset = d.baseLen
	}

	out := 0
	gapStart, gapOut, gapInserted := 0, 0, 0
	for _, el := range d.elems {
		if !el.IsCopy() {
			out += el.Len()
			gapInserted += el.Len()
			continue
		}
		if offset < el.Start {
			return gapOut + min(offset-gapStart, gapInserted)
		}
		if offset < el.End {
			return out + offset - el.Start
		}
		out += el.Len()
		gapStart, gapOut, gapInserted = el.End, out, 0
	}
	if offset < d.baseLen {
		return gapOut + min(offset-gapStart, gapInserted)
	}
	return out
}

// InPlaceChanges returns the result intervals holding new bytes when every
// copied byte keeps its offset. ok is false when the delta moves bytes.
func (d Delta) InPlaceChanges() (changes []Interval, ok bool) {
	if d.NewLen() != d.baseLen {
		return nil, false
	}
	out := 0
	for _, el := range d.elems {
		if el.IsCopy() {
			if el.Start != out {
				return nil, false
			}
		} else {
			changes = append(changes, Interval{Start: out, End: out + el.Len()})
		}
		out += el.Len()
	}
	return changes, true
}

// Touched returns the smallest result interval containing every inserted byte
// and every point where bytes were deleted. It is empty for the identity.
func (d Delta) Touched() Interval {
	first, last := -1, -1
	out, pos := 0, 0
	mark := func(a, b int) {
		if first < 0 {
			first = a
		}
		last = b
	}
	for _, el := range d.elems {
		if el.IsCopy() {
			if el.Start > pos {
				mark(out, out)
			}
			pos = el.End
		} else {
			mark(out, out+el.Len())
		}
		out += el.Len()
	}
	if pos < d.baseLen {
		mark(out, out)
	}
	if first < 0 {
		return Interval{}
	}
	return Interval{Start: first, End: last}
}
