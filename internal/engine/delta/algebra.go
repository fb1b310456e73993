package delta

import (
	"github.com/dshills/hexstorm/internal/engine/rope"
)

// InsertDelta is a delta that copies every base byte and only adds bytes.
type InsertDelta struct {
	Delta
}

type insertion struct {
	at    int
	bytes rope.Rope
}

func (d InsertDelta) insertions() []insertion {
	var out []insertion
	pos := 0
	for _, el := range d.elems {
		if el.IsCopy() {
			pos = el.End
			continue
		}
		out = append(out, insertion{at: pos, bytes: el.Bytes})
	}
	return out
}

// InsertedSubset returns the subset of the delta's result marking the
// inserted bytes.
func (d InsertDelta) InsertedSubset() Subset {
	var b SubsetBuilder
	for _, el := range d.elems {
		b.Add(el.Len(), !el.IsCopy())
	}
	return b.Build()
}

// TransformExpand moves the insertions of d into the full space of xform,
// where d's base is the set of positions xform leaves out. An insertion that
// lands next to a run marked by xform goes after the run when after is set.
func (d InsertDelta) TransformExpand(xform Subset, after bool) InsertDelta {
	b := NewBuilder(xform.Len())
	for _, ins := range d.insertions() {
		b.InsertRope(xform.mapOut(ins.at, after), ins.bytes)
	}
	return InsertDelta{b.Build()}
}

// Factor splits d into its insertions and the subset of base positions it
// deletes. Inserted bytes are placed before any deleted run they border.
func (d Delta) Factor() (InsertDelta, Subset) {
	ins := NewBuilder(d.baseLen)
	var dels SubsetBuilder

	pos := 0
	for _, el := range d.elems {
		if el.IsCopy() {
			dels.Add(el.Start-pos, true)
			dels.Add(el.End-el.Start, false)
			pos = el.End
			continue
		}
		ins.InsertRope(pos, el.Bytes)
	}
	dels.Add(d.baseLen-pos, true)

	return InsertDelta{ins.Build()}, dels.Build()
}

// Synthesize builds the delta turning "union minus from" into "union minus to".
// tombstones holds the union bytes marked by from, in order. Positions marked
// by both subsets are skipped.
func Synthesize(tombstones rope.Rope, from, to Subset) Delta {
	b := NewBuilder(from.CountOut())
	basePos, tombPos := 0, 0
	zipRuns(from, to, func(n int, inFrom, inTo bool) {
		switch {
		case !inFrom && !inTo:
			basePos += n
		case !inFrom && inTo:
			b.Delete(basePos, basePos+n)
			basePos += n
		case inFrom && !inTo:
			b.InsertRope(basePos, tombstones.SubRope(tombPos, tombPos+n))
			tombPos += n
		default:
			tombPos += n
		}
	})
	return b.Build()
}

// Invert returns the delta that undoes d. base must be the rope d applies to.
//
// The inverse deletes what d inserted, keeps what d kept and re-inserts the
// base bytes d deleted.
func Invert(d Delta, base rope.Rope) (Delta, error) {
	if base.Len() != d.baseLen {
		return Delta{}, &LengthMismatchError{Op: "invert", Expected: d.baseLen, Actual: base.Len()}
	}
	if d.IsIdentity() {
		return d, nil
	}

	ins, dels := d.Factor()
	inserted := ins.InsertedSubset()
	deletedBytes := dels.Complement().DeleteFromRope(base)
	deletedInUnion := dels.TransformExpand(inserted)

	return Synthesize(deletedBytes, deletedInUnion, inserted), nil
}

// Chain composes d1 and d2 so that applying the result to d1's base equals
// applying d1 then d2. mid is the rope d1 produces.
//
// Both deltas are laid out in one union space holding the base bytes, d1's
// inserts and d2's inserts. d1's deletes are expanded through its inserts,
// d2's inserts are expanded through those deletes (landing after them), and
// d2's deletes are expanded through its own inserts and then through d1's
// deletes. The surviving inserted bytes are read from mid with d2's inserts
// applied.
func Chain(d1 Delta, mid rope.Rope, d2 Delta) (Delta, error) {
	if mid.Len() != d1.NewLen() {
		return Delta{}, &LengthMismatchError{Op: "chain", Expected: d1.NewLen(), Actual: mid.Len()}
	}
	if d2.baseLen != mid.Len() {
		return Delta{}, &LengthMismatchError{Op: "chain", Expected: d2.baseLen, Actual: mid.Len()}
	}
	if d1.IsIdentity() {
		return d2, nil
	}
	if d2.IsIdentity() {
		return d1, nil
	}

	ins1, del1 := d1.Factor()
	inserted1 := ins1.InsertedSubset()
	deleted1 := del1.TransformExpand(inserted1)

	ins2, del2 := d2.Factor()
	ins2Union := ins2.TransformExpand(deleted1, true)
	inserted2 := ins2Union.InsertedSubset()

	deleted1 = deleted1.TransformExpand(inserted2)
	inserted1 = inserted1.TransformExpand(inserted2)
	deleted2 := del2.TransformExpand(ins2.InsertedSubset()).TransformExpand(deleted1)

	deletes := deleted1.Union(deleted2)
	inserts := inserted1.Union(inserted2)

	prefinal, err := Apply(mid, ins2.Delta)
	if err != nil {
		return Delta{}, err
	}
	insertsInPrefinal := inserts.TransformShrink(deleted1)
	tombstones := insertsInPrefinal.Complement().DeleteFromRope(prefinal)

	return Synthesize(tombstones, inserts, deletes), nil
}

// MustChain is like Chain but panics on a length mismatch.
func MustChain(d1 Delta, mid rope.Rope, d2 Delta) Delta {
	out, err := Chain(d1, mid, d2)
	if err != nil {
		panic(err)
	}
	return out
}
