// Package palette holds the ordered shade table used for quantized lighting.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	ErrPaletteIndex = errors.New("palette index out of range")
	ErrInvalidHex   = errors.New("invalid hex color")
)

// Color is an 8-bit RGBA color (not premultiplied).
type Color struct {
	R, G, B, A uint8
}

// Predefined colors.
var (
	Black = Color{0, 0, 0, 0xFF}
	White = Color{0xFF, 0xFF, 0xFF, 0xFF}
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xFF}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Floats returns the channels in the 0..1 range.
func (c Color) Floats() (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

// Hex formats the color as #rrggbb, or #rrggbbaa when not opaque.
func (c Color) Hex() string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseHex parses #rgb, #rrggbb or #rrggbbaa (the leading # is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("%q: %w", s, ErrInvalidHex)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%q: %w", s, ErrInvalidHex)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Palette is an ordered list of shades, darkest first, plus an outline color.
type Palette struct {
	Shades  []Color
	Outline Color
}

// Default returns eight shades of slate blue with a black outline.
func Default() Palette {
	return Palette{
		Shades: []Color{
			RGB(0x1b, 0x1f, 0x3b),
			RGB(0x2b, 0x32, 0x5c),
			RGB(0x3b, 0x4a, 0x7f),
			RGB(0x4f, 0x63, 0x9e),
			RGB(0x68, 0x7e, 0xb8),
			RGB(0x86, 0x9b, 0xcd),
			RGB(0xa9, 0xbb, 0xe0),
			RGB(0xd3, 0xde, 0xf2),
		},
		Outline: Black,
	}
}

// Len returns the number of shades.
func (p Palette) Len() int {
	return len(p.Shades)
}

// At returns the shade at index i.
func (p Palette) At(i int) (Color, error) {
	if i < 0 || i >= len(p.Shades) {
		return Color{}, fmt.Errorf("index %d, %d shades: %w", i, len(p.Shades), ErrPaletteIndex)
	}
	return p.Shades[i], nil
}
