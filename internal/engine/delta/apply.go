package delta

import (
	"errors"
	"fmt"

	"github.com/dshills/hexstorm/internal/engine/rope"
)

// ErrLengthMismatch is returned when a delta is applied to a rope whose length
// differs from the delta's base length.
var ErrLengthMismatch = errors.New("delta base length does not match")

// LengthMismatchError records a base length mismatch.
type LengthMismatchError struct {
	Op       string
	Expected int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s: delta expects base length %d, got %d", e.Op, e.Expected, e.Actual)
}

func (e *LengthMismatchError) Unwrap() error {
	return ErrLengthMismatch
}

// Apply applies d to base and returns the new rope. The result shares every
// copied range with base.
func Apply(base rope.Rope, d Delta) (rope.Rope, error) {
	if base.Len() != d.baseLen {
		return rope.Rope{}, &LengthMismatchError{Op: "apply", Expected: d.baseLen, Actual: base.Len()}
	}
	if d.IsIdentity() {
		return base, nil
	}

	out := rope.New()
	for _, el := range d.elems {
		if el.IsCopy() {
			out = out.Concat(base.SubRope(el.Start, el.End))
		} else {
			out = out.Concat(el.Bytes)
		}
	}
	return out, nil
}

// MustApply is like Apply but panics on a length mismatch. A mismatch means
// some selection or history remap upstream is broken.
func MustApply(base rope.Rope, d Delta) rope.Rope {
	out, err := Apply(base, d)
	if err != nil {
		panic(err)
	}
	return out
}
