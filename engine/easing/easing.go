// Package easing provides the named progress curves used by every animator in the engine.
//
// Each curve maps linear progress t in [0, 1] to eased progress. Inputs outside the unit
// interval are clamped, so callers can pass raw elapsed/duration ratios directly.
package easing

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/chewxy/math32"
)

// Func is an easing curve over normalized progress.
type Func func(t float32) float32

// Curve names recognized by Lookup.
const (
	NameLinear     = "linear"
	NameQuadInOut  = "quadInOut"
	NameCubicIn    = "cubicIn"
	NameCubicOut   = "cubicOut"
	NameCubicInOut = "cubicInOut"
	NameSineOut    = "sineOut"

	// CSS timing-function keywords, built with CubicBezier.
	NameEase      = "ease"
	NameEaseIn    = "easeIn"
	NameEaseOut   = "easeOut"
	NameEaseInOut = "easeInOut"
)

var registry = map[string]Func{
	NameLinear:     Linear,
	NameQuadInOut:  QuadInOut,
	NameCubicIn:    CubicIn,
	NameCubicOut:   CubicOut,
	NameCubicInOut: CubicInOut,
	NameSineOut:    SineOut,
	NameEase:       CubicBezier(0.25, 0.1, 0.25, 1),
	NameEaseIn:     CubicBezier(0.42, 0, 1, 1),
	NameEaseOut:    CubicBezier(0, 0, 0.58, 1),
	NameEaseInOut:  CubicBezier(0.42, 0, 0.58, 1),
}

// Lookup resolves a curve by name. Names are matched case-insensitively.
//
// Parameters:
//   - name: the curve name (e.g. "quadInOut")
//
// Returns:
//   - Func: the curve, or nil if unknown
//   - bool: true if the name resolved
func Lookup(name string) (Func, bool) {
	for k, fn := range registry {
		if strings.EqualFold(k, name) {
			return fn, true
		}
	}
	return nil, false
}

// Resolve returns the first name that resolves, or Linear if none do.
//
// Parameters:
//   - names: candidate curve names in priority order
//
// Returns:
//   - Func: the resolved curve
func Resolve(names ...string) Func {
	for _, n := range names {
		if fn, ok := Lookup(n); ok {
			return fn
		}
	}
	return Linear
}

// Linear returns progress unchanged.
func Linear(t float32) float32 {
	return clampUnit(t)
}

// QuadInOut accelerates through the first half and decelerates through the second.
// This is the explosion and reform curve.
func QuadInOut(t float32) float32 {
	t = clampUnit(t)
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

func CubicIn(t float32) float32 {
	t = clampUnit(t)
	return t * t * t
}

func CubicOut(t float32) float32 {
	u := 1 - clampUnit(t)
	return 1 - u*u*u
}

func CubicInOut(t float32) float32 {
	t = clampUnit(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// SineOut is the quarter-sine ease-out, sin(t*pi/2).
func SineOut(t float32) float32 {
	t = clampUnit(t)
	if t == 1 {
		return 1
	}
	return math32.Sin(t * math32.Pi / 2)
}

// CubicBezier returns a curve matching CSS cubic-bezier(x1, y1, x2, y2).
// The curve starts at (0,0) and ends at (1,1).
//
// Parameters:
//   - x1, y1: the first control point
//   - x2, y2: the second control point
//
// Returns:
//   - Func: the bezier curve
func CubicBezier(x1, y1, x2, y2 float32) Func {
	return func(t float32) float32 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := sampleCurve(x1, x2, u) - t
			if math32.Abs(x) < 1e-6 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math32.Abs(dx) < 1e-6 {
				break
			}
			u -= x / dx
		}

		// Bisection fallback keeps the solution inside [0,1].
		lo, hi := float32(0), float32(1)
		u = clampUnit(u)
		for range 16 {
			x := sampleCurve(x1, x2, u) - t
			if math32.Abs(x) < 1e-6 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}
		return sampleCurve(y1, y2, u)
	}
}

// sampleCurve evaluates one axis of a cubic bezier with endpoints 0 and 1.
func sampleCurve(p1, p2, t float32) float32 {
	u := 1 - t
	return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
}

func sampleCurveDerivative(p1, p2, t float32) float32 {
	u := 1 - t
	return 3*u*u*p1 + 6*u*t*(p2-p1) + 3*t*t*(1-p2)
}

func clampUnit(t float32) float32 {
	return common.Clamp(t, 0, 1)
}
