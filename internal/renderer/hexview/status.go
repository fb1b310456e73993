package hexview

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/hexstorm/internal/renderer/core"
)

// leftArrow separates status line segments.
const leftArrow = "\ue0b2"

type segment struct {
	text  string
	style core.Style
}

// statusSegments returns the right-aligned status line segments.
func (v *View) statusSegments(st State) []segment {
	snap := st.Snapshot
	th := v.theme

	name := snap.Name
	if snap.Dirty {
		name += "[+]"
	}
	segs := []segment{
		{text: " " + name + " ", style: th.StatusName},
		{text: " " + st.ModeName + " ", style: th.StatusMode},
		{text: fmt.Sprintf(" %d sels (%d) ", len(snap.Regions), snap.MainIndex+1), style: th.StatusSelections},
	}
	if n := snap.Data.Len(); n > 0 {
		caret := snap.FileStart + snap.Main().Caret
		last := snap.FileStart + n - 1
		segs = append(segs, segment{text: fmt.Sprintf(" %x/%x ", caret, last), style: th.StatusPosition})
	} else {
		segs = append(segs, segment{text: " empty ", style: th.StatusPosition})
	}
	return segs
}

// StatusWidth returns the width of the right-aligned segments.
func (v *View) StatusWidth(st State) int {
	w := 0
	for _, s := range v.statusSegments(st) {
		w += runewidth.StringWidth(leftArrow) + runewidth.StringWidth(s.text)
	}
	return w
}

// StatusOps builds the status line: the prompt or the info text on the
// left, the segments on the right.
func (v *View) StatusOps(st State) []core.DrawOp {
	if v.height == 0 {
		return nil
	}
	row := v.height - 1
	th := v.theme
	lb := &lineBuilder{row: row}

	segs := v.statusSegments(st)
	right := max(v.width-v.StatusWidth(st), 0)
	avail := max(right-1, 0)

	switch {
	case st.Prompt != nil:
		v.promptOps(lb, *st.Prompt, avail)
	case v.info != "":
		v.lastPromptCol = 0
		lb.put(runewidth.Truncate(v.info, avail, "…"), th.Info)
	default:
		v.lastPromptCol = 0
	}
	lb.padTo(right, th.Default)

	prev := th.Default.Background
	for _, s := range segs {
		lb.put(leftArrow, core.NewStyle(s.style.Background, prev))
		lb.put(s.text, s.style)
		prev = s.style.Background
	}
	lb.padTo(v.width, th.Default)
	return clipOps(lb.ops, v.width)
}

// promptOps draws label and input within width cells. The input scrolls
// horizontally: the first shown column is kept from the previous draw
// unless the cursor, which sits after the last input rune, would leave the
// visible part.
func (v *View) promptOps(lb *lineBuilder, p Prompt, width int) {
	th := v.theme
	label := runewidth.Truncate(p.Label, width, "")
	lb.put(label, th.PromptLabel)
	width -= runewidth.StringWidth(label)

	// One cell is reserved for the cursor.
	width--
	if width < 0 {
		return
	}

	input := []rune(p.Input)
	cursor := len(input)
	start := v.lastPromptCol
	if start >= len(input) {
		start = max(len(input), 1) - 1
	}
	for start < cursor && runewidth.StringWidth(string(input[start:cursor])) > width {
		start++
	}
	v.lastPromptCol = start

	lb.put(string(input[start:cursor]), th.Default)
	lb.put(" ", th.PromptCursor)
}

// PromptStart returns the first input column the prompt showed on the last
// draw.
func (v *View) PromptStart() int {
	return v.lastPromptCol
}

// clipOps drops text past width.
func clipOps(ops []core.DrawOp, width int) []core.DrawOp {
	out := ops[:0]
	for _, op := range ops {
		if op.Col >= width {
			continue
		}
		if w := runewidth.StringWidth(op.Text); op.Col+w > width {
			op.Text = runewidth.Truncate(op.Text, width-op.Col, "")
		}
		out = append(out, op)
	}
	return out
}
