package selection

import (
	"sort"

	"github.com/dshills/hexstorm/internal/engine/delta"
)

// Selection is the ordered set of regions of a buffer.
type Selection struct {
	regions []Region
	main    int
}

// New returns a selection with one main region at offset 0.
func New() *Selection {
	return NewAt(0)
}

// NewAt returns a selection with one main region at offset.
func NewAt(offset int) *Selection {
	return &Selection{regions: []Region{{Anchor: offset, Caret: offset, Main: true}}}
}

// FromRegions builds a selection from regions in any order. The region at
// mainIndex becomes the main one. Overlapping regions are merged.
func FromRegions(regions []Region, mainIndex int) *Selection {
	s := &Selection{}
	s.set(regions, mainIndex)
	return s
}

// Len returns the number of regions.
func (s *Selection) Len() int {
	return len(s.regions)
}

// MainIndex returns the index of the main region.
func (s *Selection) MainIndex() int {
	return s.main
}

// Main returns the main region.
func (s *Selection) Main() Region {
	return s.regions[s.main]
}

// MainCursorOffset returns the caret of the main region.
func (s *Selection) MainCursorOffset() int {
	return s.regions[s.main].Caret
}

// Regions returns a copy of the regions in order.
func (s *Selection) Regions() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// Get returns the region at index i.
func (s *Selection) Get(i int) Region {
	return s.regions[i]
}

// RegionsInRange returns the regions intersecting offsets [start, end), in
// order. Regions are returned whole; use Region.Clip to bound them.
func (s *Selection) RegionsInRange(start, end int) []Region {
	// First region whose last offset reaches start.
	lo := sort.Search(len(s.regions), func(i int) bool {
		return s.regions[i].Max() >= start
	})
	hi := lo
	for hi < len(s.regions) && s.regions[hi].Min() < end {
		hi++
	}
	out := make([]Region, hi-lo)
	copy(out, s.regions[lo:hi])
	return out
}

// MapSelections replaces every region with the regions f returns for it, then
// re-sorts and merges. Regions produced from the main region keep the main
// flag on the first of them unless f marks one itself. If f drops every
// region the selection collapses to the old main caret.
func (s *Selection) MapSelections(f func(Region) []Region) {
	out := make([]Region, 0, len(s.regions))
	mainAt := -1
	for i, r := range s.regions {
		mapped := f(r)
		if i == s.main && len(mapped) > 0 {
			mainAt = len(out)
			for j, m := range mapped {
				if m.Main {
					mainAt = len(out) + j
				}
			}
		}
		out = append(out, mapped...)
	}

	if len(out) == 0 {
		caret := s.regions[s.main].Caret
		s.regions = []Region{{Anchor: caret, Caret: caret, Main: true}}
		s.main = 0
		return
	}
	if mainAt < 0 {
		mainAt = min(s.main, len(out)-1)
	}
	s.set(out, mainAt)
}

// MapEach is MapSelections for a one-to-one mapping.
func (s *Selection) MapEach(f func(Region) Region) {
	s.MapSelections(func(r Region) []Region {
		return []Region{f(r)}
	})
}

// ApplyDelta remaps every region through d.
func (s *Selection) ApplyDelta(d delta.Delta) {
	s.MapEach(func(r Region) Region {
		return r.ApplyDelta(d)
	})
}

// Clamp limits every region to [0, n].
func (s *Selection) Clamp(n int) {
	s.MapEach(func(r Region) Region {
		return r.Clamp(n)
	})
}

// CollapseAll collapses every region onto its caret.
func (s *Selection) CollapseAll() {
	s.MapEach(Region.Collapse)
}

// FlipAll swaps anchor and caret of every region.
func (s *Selection) FlipAll() {
	s.MapEach(Region.Flip)
}

// KeepMain drops every region except the main one.
func (s *Selection) KeepMain() {
	s.regions = []Region{s.regions[s.main]}
	s.main = 0
}

// RemoveMain drops the main region. The next region becomes main.
// A single region is never removed.
func (s *Selection) RemoveMain() {
	if len(s.regions) == 1 {
		return
	}
	s.regions = append(s.regions[:s.main], s.regions[s.main+1:]...)
	if s.main >= len(s.regions) {
		s.main = 0
	}
	s.regions[s.main].Main = true
}

// RotateMain moves the main flag by n regions, wrapping around.
func (s *Selection) RotateMain(n int) {
	s.regions[s.main].Main = false
	s.main = ((s.main+n)%len(s.regions) + len(s.regions)) % len(s.regions)
	s.regions[s.main].Main = true
}

// SelectAll replaces the selection with one region covering n bytes.
func (s *Selection) SelectAll(n int) {
	s.regions = []Region{{Anchor: 0, Caret: max(n-1, 0), Main: true}}
	s.main = 0
}

// Valid reports whether every region lies in [0, n], the regions are sorted
// and disjoint, and exactly one is main.
func (s *Selection) Valid(n int) bool {
	if len(s.regions) == 0 || s.main < 0 || s.main >= len(s.regions) {
		return false
	}
	mains := 0
	for i, r := range s.regions {
		if r.Min() < 0 || r.Max() > n {
			return false
		}
		if r.Main {
			mains++
			if i != s.main {
				return false
			}
		}
		if i > 0 && s.regions[i-1].Max() >= r.Min() {
			return false
		}
	}
	return mains == 1
}

// set sorts regions, merges the ones that touch and records the main one.
func (s *Selection) set(regions []Region, mainIndex int) {
	if len(regions) == 0 {
		regions = []Region{{}}
		mainIndex = 0
	}
	mainIndex = clamp(mainIndex, 0, len(regions)-1)

	rs := make([]Region, len(regions))
	copy(rs, regions)
	for i := range rs {
		rs[i].Main = i == mainIndex
	}

	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Min() < rs[j].Min()
	})

	merged := rs[:1]
	for _, r := range rs[1:] {
		last := &merged[len(merged)-1]
		if last.Touches(r) {
			if r.Main {
				*last = r.Merge(*last)
			} else {
				*last = last.Merge(r)
			}
			continue
		}
		merged = append(merged, r)
	}

	s.regions = merged
	for i, r := range merged {
		if r.Main {
			s.main = i
		}
	}
}
