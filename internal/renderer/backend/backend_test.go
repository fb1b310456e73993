package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hexstorm/internal/input/key"
	"github.com/dshills/hexstorm/internal/renderer/core"
)

func newNull(t *testing.T, w, h int) *NullBackend {
	t.Helper()
	b := NewNullBackend(w, h)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return b
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := newNull(t, 80, 24)

	cell := core.Cell{Rune: 'X', Style: core.DefaultStyle().WithForeground(core.ColorRed)}
	b.SetCell(10, 5, cell)

	if got := b.GetCell(10, 5); got != cell {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)
	if got := b.GetCell(-1, 0); got != core.EmptyCell() {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendClear(t *testing.T) {
	b := newNull(t, 10, 3)
	b.SetCell(1, 1, core.Cell{Rune: 'X'})
	b.Clear()
	if got := b.GetCell(1, 1); got != core.EmptyCell() {
		t.Error("clear should reset all cells")
	}
}

func TestNullBackendResizePostsEvent(t *testing.T) {
	b := newNull(t, 10, 3)
	b.Resize(20, 6)

	if w, h := b.Size(); w != 20 || h != 6 {
		t.Errorf("Size() = %d, %d", w, h)
	}
	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 20 || ev.Height != 6 {
		t.Errorf("PollEvent() = %+v", ev)
	}
}

func TestNullBackendPostEvent(t *testing.T) {
	b := newNull(t, 10, 3)
	want := KeyEvent(key.NewRuneEvent('j', key.ModNone))
	b.PostEvent(want)
	if got := b.PollEvent(); got.Type != EventKey || !got.Key.Equals(want.Key) {
		t.Errorf("PollEvent() = %+v", got)
	}
}

func TestNullBackendCloseEvents(t *testing.T) {
	b := newNull(t, 10, 3)
	b.PostEvent(InterruptEvent(1))
	b.CloseEvents()
	b.PostEvent(InterruptEvent(2))
	b.CloseEvents()

	if got := b.PollEvent(); got.Type != EventInterrupt || got.Data != 1 {
		t.Errorf("queued event = %+v", got)
	}
	if got := b.PollEvent(); got.Type != EventClosed {
		t.Errorf("after close PollEvent() = %+v, want closed", got)
	}
}

func TestDraw(t *testing.T) {
	b := newNull(t, 10, 3)
	red := core.DefaultStyle().WithForeground(core.ColorRed)

	Draw(b, []core.DrawOp{
		{Row: 0, Col: 0, Text: "hello"},
		{Row: 0, Col: 3, Style: red, Text: "LO world"},
		{Row: 1, Col: 8, Text: "中"}, // needs two cells, fits exactly
		{Row: 2, Col: 9, Text: "中"}, // one cell left, dropped
		{Row: 5, Col: 0, Text: "off screen"},
	})

	if got := b.Line(0); got != "helLO worl" {
		t.Errorf("row 0 = %q", got)
	}
	if got := b.GetCell(3, 0).Style; got != red {
		t.Errorf("overwritten cell style = %+v", got)
	}
	if got := b.GetCell(8, 1).Rune; got != '中' {
		t.Errorf("wide rune = %q", got)
	}
	if got := b.GetCell(9, 2).Rune; got != ' ' {
		t.Errorf("clipped wide rune wrote %q", got)
	}
}

func TestScrollRows(t *testing.T) {
	fill := core.DefaultStyle()
	setup := func() *NullBackend {
		b := newNull(t, 3, 5)
		for y, s := range []string{"aaa", "bbb", "ccc", "ddd", "sss"} {
			Draw(b, []core.DrawOp{{Row: y, Text: s}})
		}
		return b
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"up one", 1, []string{"bbb", "ccc", "ddd", "   ", "sss"}},
		{"up two", 2, []string{"ccc", "ddd", "   ", "   ", "sss"}},
		{"down one", -1, []string{"   ", "aaa", "bbb", "ccc", "sss"}},
		{"none", 0, []string{"aaa", "bbb", "ccc", "ddd", "sss"}},
		{"past the region", 9, []string{"   ", "   ", "   ", "   ", "sss"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setup()
			// Row 4 plays the status line and stays put.
			ScrollRows(b, 0, 4, tt.n, fill)
			for y, want := range tt.want {
				if got := b.Line(y); got != want {
					t.Errorf("row %d = %q, want %q", y, got, want)
				}
			}
		})
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), "j"},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'J', tcell.ModNone), "J"},
		{"ctrl e", tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModCtrl), "<C-e>"},
		{"ctrl y code", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), "<C-y>"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "<Esc>"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "<CR>"},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "<BS>"},
		{"shift left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), "<S-Left>"},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "<A-x>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertKey(tt.ev).VimString(); got != tt.want {
				t.Errorf("convertKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertKeyRoundTrip(t *testing.T) {
	for _, spec := range []string{"j", "G", "<C-e>", "<C-n>", "<Esc>", "<CR>", "<BS>", "<Tab>", "<S-Up>", "<F5>"} {
		ev := key.MustParse(spec)
		if got := convertKey(convertToTcellKey(ev)); got.VimString() != ev.VimString() {
			t.Errorf("%s: round trip gave %#v", spec, got)
		}
	}
}

func TestConvertStyle(t *testing.T) {
	s := core.NewStyle(core.ColorFromRGB(110, 97, 16), core.ColorDarkGrey).WithAttributes(core.AttrBold)
	if got := convertTcellStyle(convertStyle(s)); got != s {
		t.Errorf("style round trip = %+v, want %+v", got, s)
	}
	if got := convertTcellStyle(convertStyle(core.DefaultStyle())); got != core.DefaultStyle() {
		t.Errorf("default style round trip = %+v", got)
	}
}

func TestTerminalSimulation(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer term.Shutdown()
	screen.SetSize(20, 4)

	Draw(term, []core.DrawOp{{Row: 1, Col: 2, Text: "ab", Style: core.NewStyle(core.ColorBlack, core.ColorGreen)}})
	if got := term.GetCell(3, 1); got.Rune != 'b' || got.Style.Background != core.ColorGreen {
		t.Errorf("GetCell = %+v", got)
	}

	term.PostEvent(KeyEvent(key.MustParse("<C-e>")))
	term.PostEvent(InterruptEvent("reload"))

	var sawKey, sawInterrupt bool
	for i := 0; i < 5 && !(sawKey && sawInterrupt); i++ {
		ev := term.PollEvent()
		switch ev.Type {
		case EventKey:
			sawKey = ev.Key.VimString() == "<C-e>"
		case EventInterrupt:
			sawInterrupt = ev.Data == "reload"
		}
	}
	if !sawKey || !sawInterrupt {
		t.Errorf("events: key %v, interrupt %v", sawKey, sawInterrupt)
	}
}

func TestEventTypeString(t *testing.T) {
	if EventResize.String() != "resize" || EventClosed.String() != "closed" || EventType(42).String() != "unknown" {
		t.Error("unexpected event type names")
	}
}
