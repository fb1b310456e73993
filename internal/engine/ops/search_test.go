package ops

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/hexstorm/internal/engine/delta"
	"github.com/dshills/hexstorm/internal/engine/rope"
)

func TestParsePatterns(t *testing.T) {
	tests := []struct {
		name    string
		parse   func(string) (Pattern, error)
		input   string
		want    Pattern
		wantErr bool
	}{
		{"ascii", ParseASCII, "a*b", Pattern{{Byte: 'a'}, {Wildcard: true}, {Byte: 'b'}}, false},
		{"hex", ParseHex, "de ad **", Pattern{{Byte: 0xde}, {Byte: 0xad}, {Wildcard: true}}, false},
		{"hex upper", ParseHex, "FF00", Pattern{{Byte: 0xff}, {Byte: 0x00}}, false},
		{"odd hex", ParseHex, "abc", nil, true},
		{"bad hex", ParseHex, "zz", nil, true},
		{"empty ascii", ParseASCII, "", nil, true},
		{"empty hex", ParseHex, "  ", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := ParseASCII(""); !errors.Is(err, ErrEmptyPattern) {
		t.Errorf("empty pattern err = %v", err)
	}
}

func TestFindAll(t *testing.T) {
	data := rope.FromString("abcabxab")

	p, _ := ParseASCII("ab")
	want := []delta.Interval{{Start: 0, End: 2}, {Start: 3, End: 5}, {Start: 6, End: 8}}
	if got := p.FindAll(data); !reflect.DeepEqual(got, want) {
		t.Errorf("FindAll(ab) = %v", got)
	}

	p, _ = ParseASCII("a*")
	if got := p.FindAll(rope.FromString("aaa")); len(got) != 1 {
		t.Errorf("matches should not overlap: %v", got)
	}

	p, _ = ParseHex("61 ** 63")
	if got := p.FindAll(data); !reflect.DeepEqual(got, []delta.Interval{{Start: 0, End: 3}}) {
		t.Errorf("FindAll(hex) = %v", got)
	}
}

func TestSelectMatches(t *testing.T) {
	matches := []delta.Interval{{Start: 0, End: 2}, {Start: 4, End: 6}, {Start: 8, End: 9}}

	sel, ok := SelectMatches(matches, 3)
	if !ok || sel.Len() != 3 || sel.MainIndex() != 1 {
		t.Fatalf("sel = %v main %d", sel.Regions(), sel.MainIndex())
	}
	if r := sel.Get(0); r.Anchor != 0 || r.Caret != 1 {
		t.Errorf("first region = %v", r)
	}

	sel, _ = SelectMatches(matches, 100)
	if sel.MainIndex() != 0 {
		t.Errorf("main should wrap to first match, got %d", sel.MainIndex())
	}

	if _, ok := SelectMatches(nil, 0); ok {
		t.Error("no matches should report !ok")
	}
}
