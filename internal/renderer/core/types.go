// Package core provides the value types shared by the renderer packages:
// colors, styles, cells and draw operations. It has no dependency on a
// terminal so that frame building can be tested without one.
package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Attribute represents text attributes (bold, underline, ...).
type Attribute uint8

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint text
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video
)

// Has returns true if the attribute set contains attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color is a terminal color: the terminal default, a palette index or a
// 24-bit RGB value.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R holds the palette index and G, B are ignored.
	Indexed bool
	// Default selects the terminal's own color.
	Default bool
}

// ColorDefault is the terminal's default color.
var ColorDefault = Color{Default: true}

// Palette colors in the common 16 color layout.
var (
	ColorBlack      = ColorFromIndex(0)
	ColorDarkRed    = ColorFromIndex(1)
	ColorDarkYellow = ColorFromIndex(3)
	ColorDarkGrey   = ColorFromIndex(8)
	ColorRed        = ColorFromIndex(9)
	ColorGreen      = ColorFromIndex(10)
	ColorBlue       = ColorFromIndex(12)
	ColorWhite      = ColorFromIndex(15)
	// ColorNearBlack is palette 16, the darkest cube color.
	ColorNearBlack = ColorFromIndex(16)
)

// ColorFromRGB creates a true color.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates a palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ParseColor parses "default", a palette index written "idx(N)" or a
// "#rrggbb" hex value.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "default" || s == "":
		return ColorDefault, nil
	case strings.HasPrefix(s, "idx(") && strings.HasSuffix(s, ")"):
		var n int
		if _, err := fmt.Sscanf(s, "idx(%d)", &n); err != nil || n < 0 || n > 255 {
			return Color{}, fmt.Errorf("invalid palette color %q", s)
		}
		return ColorFromIndex(uint8(n)), nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}

// IsDefault returns true for the terminal default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// String formats the color the way ParseColor reads it.
func (c Color) String() string {
	switch {
	case c.Default:
		return "default"
	case c.Indexed:
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend mixes c toward other in Lab space; t=0 gives c, t=1 gives other.
// Palette and default colors do not blend and pick the nearer operand.
func (c Color) Blend(other Color, t float64) Color {
	if c.Indexed || other.Indexed || c.Default || other.Default {
		if t < 0.5 {
			return c
		}
		return other
	}
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	r, g, bl := a.BlendLab(b, t).Clamped().RGB255()
	return ColorFromRGB(r, g, bl)
}

// Style is the visual style of a cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the terminal default style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// NewStyle creates a style with the given colors.
func NewStyle(fg, bg Color) Style {
	return Style{Foreground: fg, Background: bg}
}

// WithForeground returns s with fg as its foreground.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns s with bg as its background.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// WithAttributes returns s with attrs added.
func (s Style) WithAttributes(attrs Attribute) Style {
	s.Attributes |= attrs
	return s
}

// Cell is a single terminal cell.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell returns a blank cell in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Style: DefaultStyle()}
}

// DrawOp writes Text starting at (Row, Col) in Style. A frame is an ordered
// list of draw ops; later ops overwrite earlier ones.
type DrawOp struct {
	Row   int
	Col   int
	Style Style
	Text  string
}

// String is used in test failures.
func (op DrawOp) String() string {
	return fmt.Sprintf("(%d,%d) %q fg=%s bg=%s", op.Row, op.Col, op.Text, op.Style.Foreground, op.Style.Background)
}
