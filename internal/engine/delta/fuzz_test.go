package delta

import (
	"testing"

	"github.com/dshills/hexstorm/internal/engine/rope"
)

func clampRange(start, end, n int) (int, int) {
	start = max(0, min(start, n))
	end = max(start, min(end, n))
	return start, end
}

// FuzzApplyInvert checks that a single replacement is undone by its inverse.
func FuzzApplyInvert(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3}, 0, 1, []byte{})
	f.Add([]byte{0, 1, 2, 3}, 1, 3, []byte{9})
	f.Add([]byte{}, 0, 0, []byte{1, 2})

	f.Fuzz(func(t *testing.T, data []byte, start, end int, ins []byte) {
		base := rope.FromBytes(data)
		start, end = clampRange(start, end, base.Len())
		d := SimpleEdit(start, end, rope.FromBytes(ins), base.Len())

		edited := MustApply(base, d)
		if edited.Len() != base.Len()-(end-start)+len(ins) {
			t.Fatalf("length %d after replacing [%d, %d) of %d with %d bytes",
				edited.Len(), start, end, base.Len(), len(ins))
		}
		inv, err := Invert(d, base)
		if err != nil {
			t.Fatal(err)
		}
		if !MustApply(edited, inv).Equals(base) {
			t.Error("inverse did not restore base")
		}
	})
}

// FuzzChain checks that chaining two replacements equals applying them in turn.
func FuzzChain(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3}, 1, 1, []byte{5}, 2, 2, []byte{6})
	f.Add([]byte{0, 1, 2, 3}, 1, 3, []byte{}, 1, 1, []byte{9})
	f.Add([]byte{0, 1, 2, 3}, 0, 4, []byte{7}, 0, 1, []byte{})

	f.Fuzz(func(t *testing.T, data []byte, s1, e1 int, ins1 []byte, s2, e2 int, ins2 []byte) {
		base := rope.FromBytes(data)
		s1, e1 = clampRange(s1, e1, base.Len())
		d1 := SimpleEdit(s1, e1, rope.FromBytes(ins1), base.Len())
		mid := MustApply(base, d1)

		s2, e2 = clampRange(s2, e2, mid.Len())
		d2 := SimpleEdit(s2, e2, rope.FromBytes(ins2), mid.Len())

		chained, err := Chain(d1, mid, d2)
		if err != nil {
			t.Fatal(err)
		}
		want := MustApply(mid, d2)
		if got := MustApply(base, chained); !got.Equals(want) {
			t.Errorf("chain = %x, want %x", got.Bytes(), want.Bytes())
		}
	})
}
