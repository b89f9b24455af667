// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

// ParseHexColor parses a "#rrggbb" or "#rgb" string into an opaque Color.
//
// Parameters:
//   - s: the hex string, with or without the leading '#'
//
// Returns:
//   - Color: the parsed color
//   - error: error if the string is not a valid hex color
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{
		R: float32((v>>16)&0xff) / 255,
		G: float32((v>>8)&0xff) / 255,
		B: float32(v&0xff) / 255,
		A: 1,
	}, nil
}

// RGB8 returns the color as 8-bit channels, clamping out of range components.
func (c Color) RGB8() (r, g, b uint8) {
	to8 := func(v float32) uint8 {
		return uint8(Clamp(v, 0, 1)*255 + 0.5)
	}
	return to8(c.R), to8(c.G), to8(c.B)
}

// Scale multiplies the RGB channels by k, leaving alpha untouched.
func (c Color) Scale(k float32) Color {
	return Color{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}
