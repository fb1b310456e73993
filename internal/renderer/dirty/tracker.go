package dirty

import (
	"sort"
	"sync"

	"github.com/dshills/hexstorm/internal/engine/delta"
)

// Tracker accumulates dirty rows between frames.
type Tracker struct {
	mu sync.Mutex

	// ranges are sorted and pairwise separated by at least one clean row.
	ranges []Rows

	// full means every row is dirty.
	full bool

	// rows is the number of data rows on screen.
	rows int

	// panel is the height of the byte-properties panel, drawn at the right
	// of the first rows. Its rows are dirty whenever the main caret may have
	// moved.
	panel int
}

// NewTracker creates a tracker for rows data rows, the first panel of which
// also show the byte-properties panel. A new tracker needs a full redraw.
func NewTracker(rows, panel int) *Tracker {
	return &Tracker{
		rows:  max(rows, 0),
		panel: max(panel, 0),
		full:  true,
	}
}

// SetRows updates the number of data rows, which forces a full redraw.
func (t *Tracker) SetRows(rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = max(rows, 0)
	t.markAll()
}

// MarkAll marks every row dirty.
func (t *Tracker) MarkAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.markAll()
}

// MarkRow marks a single row dirty.
func (t *Tracker) MarkRow(row int) {
	t.MarkRows(NewRows(row, row+1))
}

// MarkRows marks a range of rows dirty. Rows off screen are ignored.
func (t *Tracker) MarkRows(r Rows) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.add(r)
}

// MarkIntervals marks the rows intersecting each changed byte interval,
// plus the panel rows. visible is the byte range on screen, starting at
// row 0.
func (t *Tracker) MarkIntervals(intervals []delta.Interval, visible delta.Interval, bytesPerLine int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	bpl := max(bytesPerLine, 1)
	for _, iv := range intervals {
		iv = visible.Intersect(iv)
		if iv.IsEmpty() {
			continue
		}
		first := (iv.Start - visible.Start) / bpl
		last := (iv.End - 1 - visible.Start) / bpl
		t.add(NewRows(first, last+1))
	}
	t.add(NewRows(0, t.panel))
}

// MarkScroll records a scroll by lines rows; positive values move the view
// toward the end of the data. Only the rows the scroll reveals and the
// panel rows become dirty; the caller shifts the others on screen. A scroll
// of a screen or more marks everything.
func (t *Tracker) MarkScroll(lines int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case lines == 0:
		return
	case lines >= t.rows || -lines >= t.rows:
		t.markAll()
		return
	}

	// Existing dirty rows move with the content.
	shifted := t.ranges
	t.ranges = nil
	for _, r := range shifted {
		t.add(NewRows(r.Start-lines, r.End-lines))
	}

	if lines > 0 {
		t.add(NewRows(t.rows-lines, t.rows))
	} else {
		t.add(NewRows(0, -lines))
	}
	t.add(NewRows(0, t.panel))
}

// IsFull reports whether every row is dirty.
func (t *Tracker) IsFull() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.full
}

// IsDirty reports whether row needs redrawing.
func (t *Tracker) IsDirty(row int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if row < 0 || row >= t.rows {
		return false
	}
	if t.full {
		return true
	}
	i := sort.Search(len(t.ranges), func(i int) bool { return t.ranges[i].End > row })
	return i < len(t.ranges) && t.ranges[i].Contains(row)
}

// Rows returns the dirty rows in ascending order.
func (t *Tracker) Rows() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.list()
}

// Take returns the dirty rows and whether the redraw is full, then clears
// the tracker.
func (t *Tracker) Take() (rows []int, full bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, full = t.list(), t.full
	t.ranges = t.ranges[:0]
	t.full = false
	return rows, full
}

// Clear marks every row clean.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ranges = t.ranges[:0]
	t.full = false
}

func (t *Tracker) markAll() {
	t.full = true
	t.ranges = t.ranges[:0]
}

func (t *Tracker) list() []int {
	if t.full {
		out := make([]int, t.rows)
		for i := range out {
			out[i] = i
		}
		return out
	}
	var out []int
	for _, r := range t.ranges {
		for row := r.Start; row < r.End; row++ {
			out = append(out, row)
		}
	}
	return out
}

// add inserts r keeping ranges sorted and merged.
func (t *Tracker) add(r Rows) {
	if t.full {
		return
	}
	r = r.Clip(t.rows)
	if r.IsEmpty() {
		return
	}

	i := sort.Search(len(t.ranges), func(i int) bool { return t.ranges[i].End >= r.Start })
	j := i
	for j < len(t.ranges) {
		merged, ok := r.Merge(t.ranges[j])
		if !ok {
			break
		}
		r = merged
		j++
	}
	t.ranges = append(t.ranges[:i], append([]Rows{r}, t.ranges[j:]...)...)

	if len(t.ranges) == 1 && t.ranges[0].Len() == t.rows {
		t.markAll()
	}
}
