package buffer

import "github.com/dshills/hexstorm/internal/engine/delta"

// DirtyKind says how an edit changed the buffer.
type DirtyKind uint8

const (
	// ChangeInPlace means only the bytes in Intervals changed and every
	// other byte kept its offset.
	ChangeInPlace DirtyKind = iota + 1
	// ChangeLength means bytes moved, so everything from the first edit on
	// must be redrawn.
	ChangeLength
)

// DirtyBytes describes the part of a buffer an edit invalidated.
// The zero value means nothing changed.
type DirtyBytes struct {
	Kind      DirtyKind
	Intervals []delta.Interval
}

// InPlace returns a ChangeInPlace over the given rope intervals.
func InPlace(intervals ...delta.Interval) DirtyBytes {
	return DirtyBytes{Kind: ChangeInPlace, Intervals: intervals}
}

// LengthChanged returns a ChangeLength.
func LengthChanged() DirtyBytes {
	return DirtyBytes{Kind: ChangeLength}
}

// DirtyFor classifies d.
func DirtyFor(d delta.Delta) DirtyBytes {
	if d.IsIdentity() {
		return DirtyBytes{}
	}
	if changes, ok := d.InPlaceChanges(); ok {
		return InPlace(changes...)
	}
	return LengthChanged()
}

// IsZero reports whether nothing changed.
func (d DirtyBytes) IsZero() bool {
	return d.Kind == 0
}

// Merge combines two dirty descriptions. A length change absorbs anything.
func (d DirtyBytes) Merge(other DirtyBytes) DirtyBytes {
	switch {
	case d.IsZero():
		return other
	case other.IsZero():
		return d
	case d.Kind == ChangeLength || other.Kind == ChangeLength:
		return LengthChanged()
	}
	ivs := make([]delta.Interval, 0, len(d.Intervals)+len(other.Intervals))
	ivs = append(ivs, d.Intervals...)
	ivs = append(ivs, other.Intervals...)
	return InPlace(ivs...)
}
