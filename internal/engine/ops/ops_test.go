package ops

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/dshills/hexstorm/internal/engine/delta"
	"github.com/dshills/hexstorm/internal/engine/rope"
	"github.com/dshills/hexstorm/internal/engine/selection"
)

func twoRegions() *selection.Selection {
	return selection.FromRegions([]selection.Region{
		selection.NewRegion(1, 2),
		selection.NewRegion(5, 5),
	}, 0)
}

func apply(t *testing.T, base []byte, d delta.Delta) []byte {
	t.Helper()
	out, err := delta.Apply(rope.FromBytes(base), d)
	if err != nil {
		t.Fatal(err)
	}
	return out.Bytes()
}

func TestOps(t *testing.T) {
	base := []byte{0, 1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name string
		d    delta.Delta
		want []byte
	}{
		{"delete", Delete(8, twoRegions()), []byte{0, 3, 4, 6, 7}},
		{"insert", Insert(8, twoRegions(), []byte{9}), []byte{0, 9, 1, 2, 3, 4, 9, 5, 6, 7}},
		{"backspace", Backspace(8, twoRegions()), []byte{1, 2, 3, 5, 6, 7}},
		{"replace", Replace(8, twoRegions(), 0xff), []byte{0, 0xff, 0xff, 3, 4, 0xff, 6, 7}},
		{"replace before", ReplaceBefore(8, twoRegions(), 0xaa), []byte{0xaa, 1, 2, 3, 0xaa, 5, 6, 7}},
		{"insert nothing", Insert(8, twoRegions(), nil), base},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apply(t, base, tt.d); !bytes.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpsAtOverflowPosition(t *testing.T) {
	sel := selection.NewAt(3)
	base := []byte{0, 1, 2}

	if got := apply(t, base, Delete(3, sel)); !bytes.Equal(got, base) {
		t.Errorf("delete at overflow = %v", got)
	}
	if got := apply(t, base, Insert(3, sel, []byte{7})); !bytes.Equal(got, []byte{0, 1, 2, 7}) {
		t.Errorf("insert at overflow = %v", got)
	}
	if got := apply(t, base, Backspace(3, sel)); !bytes.Equal(got, []byte{0, 1}) {
		t.Errorf("backspace at overflow = %v", got)
	}
	if got := apply(t, base, Backspace(3, selection.NewAt(0))); !bytes.Equal(got, base) {
		t.Errorf("backspace at start = %v", got)
	}
}

func TestReplaceIsInPlace(t *testing.T) {
	d := Replace(8, twoRegions(), 1)
	changes, ok := d.InPlaceChanges()
	want := []delta.Interval{{Start: 1, End: 3}, {Start: 5, End: 6}}
	if !ok || !reflect.DeepEqual(changes, want) {
		t.Errorf("InPlaceChanges = %v, %v", changes, ok)
	}
}

func TestInsertKeepsCaretOnSameByte(t *testing.T) {
	sel := twoRegions()
	d := Insert(8, sel, []byte{9, 9})
	sel.ApplyDelta(d)
	got := []int{sel.Get(0).Caret, sel.Get(1).Caret}
	if !reflect.DeepEqual(got, []int{4, 9}) {
		t.Errorf("carets = %v, want [4 9]", got)
	}
}

func TestYankPaste(t *testing.T) {
	data := rope.FromBytes([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	sel := twoRegions()

	clips := Yank(data, sel)
	if !reflect.DeepEqual(clips, [][]byte{{1, 2}, {5}}) {
		t.Fatalf("Yank = %v", clips)
	}

	// One clip per region.
	got := apply(t, data.Bytes(), Paste(8, sel, clips, false))
	if want := []byte{0, 1, 2, 1, 2, 3, 4, 5, 5, 6, 7}; !bytes.Equal(got, want) {
		t.Errorf("paste before = %v, want %v", got, want)
	}

	// A single clip is pasted at every region.
	got = apply(t, data.Bytes(), Paste(8, sel, [][]byte{{9}}, true))
	if want := []byte{0, 1, 2, 9, 3, 4, 5, 9, 6, 7}; !bytes.Equal(got, want) {
		t.Errorf("paste after = %v, want %v", got, want)
	}
}
