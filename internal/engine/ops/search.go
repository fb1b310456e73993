package ops

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/hexstorm/internal/engine/delta"
	"github.com/dshills/hexstorm/internal/engine/rope"
	"github.com/dshills/hexstorm/internal/engine/selection"
)

// ErrEmptyPattern is returned when a search pattern matches nothing useful.
var ErrEmptyPattern = errors.New("empty search pattern")

// PatternPiece is one position of a search pattern: a literal byte or a
// wildcard matching any byte.
type PatternPiece struct {
	Wildcard bool
	Byte     byte
}

// Pattern is a byte pattern with wildcards.
type Pattern []PatternPiece

// ParseASCII parses text where every character is a literal byte and '*' is
// a wildcard.
func ParseASCII(text string) (Pattern, error) {
	var p Pattern
	for i := 0; i < len(text); i++ {
		if text[i] == '*' {
			p = append(p, PatternPiece{Wildcard: true})
			continue
		}
		p = append(p, PatternPiece{Byte: text[i]})
	}
	if len(p) == 0 {
		return nil, ErrEmptyPattern
	}
	return p, nil
}

// ParseHex parses pairs of hex digits as literal bytes and "**" as a
// wildcard. Whitespace is ignored.
func ParseHex(text string) (Pattern, error) {
	digits := strings.Join(strings.Fields(text), "")
	if len(digits)%2 != 0 {
		return nil, fmt.Errorf("odd number of hex digits in %q", text)
	}
	var p Pattern
	for i := 0; i < len(digits); i += 2 {
		pair := digits[i : i+2]
		if pair == "**" {
			p = append(p, PatternPiece{Wildcard: true})
			continue
		}
		hi, ok1 := hexValue(pair[0])
		lo, ok2 := hexValue(pair[1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("invalid hex byte %q", pair)
		}
		p = append(p, PatternPiece{Byte: hi<<4 | lo})
	}
	if len(p) == 0 {
		return nil, ErrEmptyPattern
	}
	return p, nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func (p Pattern) matchAt(data []byte, at int) bool {
	if at+len(p) > len(data) {
		return false
	}
	for i, piece := range p {
		if !piece.Wildcard && data[at+i] != piece.Byte {
			return false
		}
	}
	return true
}

// FindAll returns the non-overlapping matches of p in r, in order.
func (p Pattern) FindAll(r rope.Rope) []delta.Interval {
	if len(p) == 0 {
		return nil
	}
	data := r.Bytes()
	var out []delta.Interval
	for at := 0; at+len(p) <= len(data); {
		if p.matchAt(data, at) {
			out = append(out, delta.Interval{Start: at, End: at + len(p)})
			at += len(p)
			continue
		}
		at++
	}
	return out
}

// SelectMatches turns matches into a selection whose main region is the
// first match at or after the caret, wrapping to the first match. ok is
// false when there are no matches.
func SelectMatches(matches []delta.Interval, caret int) (*selection.Selection, bool) {
	if len(matches) == 0 {
		return nil, false
	}
	regions := make([]selection.Region, len(matches))
	mainIndex := 0
	found := false
	for i, m := range matches {
		regions[i] = selection.NewRegion(m.Start, m.End-1)
		if !found && m.Start >= caret {
			mainIndex, found = i, true
		}
	}
	return selection.FromRegions(regions, mainIndex), true
}
