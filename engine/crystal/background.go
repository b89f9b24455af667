package crystal

import "github.com/Carmen-Shannon/oxy-crystal/common"

const (
	glowBrighten   = 0.35
	maxGlowInput   = 2
	selectedTint   = 0.4
	hoveredTint    = 0.15
	facetTintLevel = 0.35
)

// DefaultBackground is the clear color with no glow and nothing selected.
var DefaultBackground = common.Color{R: 0.02, G: 0.02, B: 0.05, A: 1}

// Background derives the clear color of a frame. Glow brightens the base color and the
// selected (or else hovered) facet tints it toward its own color.
//
// Parameters:
//   - base: the resting clear color
//
// Returns:
//   - common.Color: the clear color, always opaque
func (f Frame) Background(base common.Color) common.Color {
	c := base.Scale(1 + glowBrighten*common.Clamp(f.Glow, 0, maxGlowInput))

	key, amount := f.Selected, float32(selectedTint)
	if key == "" {
		key, amount = f.Hovered, hoveredTint
	}
	if key != "" {
		if ff, ok := f.Facet(key); ok {
			c = mixColor(c, ff.Color.Scale(facetTintLevel), amount)
		}
	}
	c.A = 1
	return c
}

func mixColor(a, b common.Color, t float32) common.Color {
	return common.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
