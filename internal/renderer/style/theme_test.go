package style

import (
	"testing"

	"github.com/dshills/hexstorm/internal/renderer/core"
)

func TestPriorityString(t *testing.T) {
	tests := []struct {
		p    Priority
		want string
	}{
		{Basic, "basic"},
		{Selection, "selection"},
		{Cursor, "cursor"},
		{Priority(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.p, got, tt.want)
		}
	}
	if !(Basic < Selection && Selection < Cursor) {
		t.Error("priorities out of order")
	}
}

func TestStylingCommandZero(t *testing.T) {
	var c StylingCommand
	if !c.IsZero() {
		t.Error("zero command should be zero")
	}
	if _, ok := c.Start(); ok {
		t.Error("zero command has a start")
	}
	c = c.WithEnd(PrioritizedStyle{Priority: Cursor})
	if c.IsZero() {
		t.Error("command with end is zero")
	}
	if s, ok := c.End(); !ok || s.Priority != Cursor {
		t.Errorf("End() = %v, %v", s, ok)
	}
}

func TestThemeApply(t *testing.T) {
	base := DefaultTheme()

	th, err := base.Apply(map[string]string{
		"selection":   "#336699",
		"caret":       "#ffffff",
		"empty_caret": "idx(2)",
		"statusline":  "#102030",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if th.Selection.Background != core.ColorFromRGB(0x33, 0x66, 0x99) {
		t.Errorf("selection = %v", th.Selection.Background)
	}
	if th.Caret.Background != core.ColorFromRGB(255, 255, 255) {
		t.Errorf("caret = %v", th.Caret.Background)
	}
	if th.EmptyCaret.Background != core.ColorFromIndex(2) {
		t.Errorf("empty caret = %v", th.EmptyCaret.Background)
	}
	if th.StatusMode.Background != core.ColorFromRGB(0x10, 0x20, 0x30) {
		t.Errorf("statusline = %v", th.StatusMode.Background)
	}

	// The inactive color is derived from the selection color.
	dim := th.InactiveSelection.Background
	if dim == base.InactiveSelection.Background || dim == th.Selection.Background {
		t.Errorf("inactive selection not derived: %v", dim)
	}
	if th.InactiveCaret.Background != dim {
		t.Errorf("inactive caret = %v, want %v", th.InactiveCaret.Background, dim)
	}

	// The receiver is unchanged.
	if base != DefaultTheme() {
		t.Error("Apply modified its receiver")
	}
}

func TestThemeApplyExplicitInactive(t *testing.T) {
	th, err := DefaultTheme().Apply(map[string]string{
		"selection": "#336699",
		"inactive":  "#444444",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if want := core.ColorFromRGB(0x44, 0x44, 0x44); th.InactiveSelection.Background != want {
		t.Errorf("inactive = %v, want %v", th.InactiveSelection.Background, want)
	}
}

func TestThemeApplyErrors(t *testing.T) {
	tests := []map[string]string{
		{"selection": "not-a-color"},
		{"sparkles": "#ffffff"},
	}
	for _, colors := range tests {
		if _, err := DefaultTheme().Apply(colors); err == nil {
			t.Errorf("Apply(%v) should fail", colors)
		}
	}
}
