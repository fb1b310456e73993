package style

import (
	"fmt"
	"sort"

	"github.com/dshills/hexstorm/internal/renderer/core"
)

// Theme holds every style the hex view draws with.
type Theme struct {
	Default           core.Style
	Selection         core.Style
	InactiveSelection core.Style
	Caret             core.Style
	InactiveCaret     core.Style
	EmptyCaret        core.Style

	Gutter    core.Style
	Separator core.Style
	Panel     core.Style

	Info         core.Style
	PromptLabel  core.Style
	PromptCursor core.Style

	StatusName       core.Style
	StatusMode       core.Style
	StatusSelections core.Style
	StatusPosition   core.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Default:           core.NewStyle(core.ColorWhite, core.ColorDefault),
		Selection:         core.NewStyle(core.ColorBlack, core.ColorFromRGB(110, 97, 16)),
		InactiveSelection: core.NewStyle(core.ColorBlack, core.ColorDarkGrey),
		Caret:             core.NewStyle(core.ColorNearBlack, core.ColorFromRGB(107, 108, 128)),
		InactiveCaret:     core.NewStyle(core.ColorBlack, core.ColorDarkGrey),
		EmptyCaret:        core.NewStyle(core.ColorDefault, core.ColorGreen),

		Gutter:    core.NewStyle(core.ColorDarkGrey, core.ColorDefault),
		Separator: core.NewStyle(core.ColorWhite, core.ColorDefault),
		Panel:     core.NewStyle(core.ColorWhite, core.ColorDefault),

		Info:         core.NewStyle(core.ColorWhite, core.ColorBlue),
		PromptLabel:  core.NewStyle(core.ColorWhite, core.ColorBlue),
		PromptCursor: core.NewStyle(core.ColorBlack, core.ColorWhite),

		StatusName:       core.NewStyle(core.ColorWhite, core.ColorRed),
		StatusMode:       core.NewStyle(core.ColorNearBlack, core.ColorDarkYellow),
		StatusSelections: core.NewStyle(core.ColorNearBlack, core.ColorWhite),
		StatusPosition:   core.NewStyle(core.ColorWhite, core.ColorBlue),
	}
}

// neutralGrey is blended into a custom selection color to derive the
// inactive selection color.
var neutralGrey = core.ColorFromRGB(128, 128, 128)

// Apply returns t with the colors in colors applied. Keys are theme color
// names; values are anything core.ParseColor accepts. When "selection" is
// given without "inactive" the inactive colors are derived from it.
func (t Theme) Apply(colors map[string]string) (Theme, error) {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c, err := core.ParseColor(colors[name])
		if err != nil {
			return t, fmt.Errorf("theme color %s: %w", name, err)
		}
		switch name {
		case "selection":
			t.Selection.Background = c
			if _, ok := colors["inactive"]; !ok {
				dim := c.Blend(neutralGrey, 0.5)
				t.InactiveSelection.Background = dim
				t.InactiveCaret.Background = dim
			}
		case "caret":
			t.Caret.Background = c
		case "inactive":
			t.InactiveSelection.Background = c
			t.InactiveCaret.Background = c
		case "empty_caret":
			t.EmptyCaret.Background = c
		case "foreground":
			t.Default.Foreground = c
		case "gutter":
			t.Gutter.Foreground = c
		case "info":
			t.Info.Background = c
		case "statusline":
			t.StatusMode.Background = c
		default:
			return t, fmt.Errorf("unknown theme color %q", name)
		}
	}
	return t, nil
}

func (t Theme) basic() PrioritizedStyle {
	return PrioritizedStyle{Style: t.Default, Priority: Basic}
}

func (t Theme) selection(main bool) PrioritizedStyle {
	if main {
		return PrioritizedStyle{Style: t.Selection, Priority: Selection}
	}
	return PrioritizedStyle{Style: t.InactiveSelection, Priority: Selection}
}

func (t Theme) caret(main bool) PrioritizedStyle {
	if main {
		return PrioritizedStyle{Style: t.Caret, Priority: Cursor}
	}
	return PrioritizedStyle{Style: t.InactiveCaret, Priority: Cursor}
}
