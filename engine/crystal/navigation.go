package crystal

import (
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is an arrow-key navigation direction on the exploded x/y plane.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// axis returns the coordinate compared for d and whether larger values lie ahead.
func (d Direction) axis() (int, bool) {
	switch d {
	case DirLeft:
		return 0, false
	case DirRight:
		return 0, true
	case DirUp:
		return 1, true
	default:
		return 1, false
	}
}

// Navigate returns the facet reached from current by moving in d.
//
// The nearest facet (x/y distance) strictly ahead of current wins. When none is
// ahead the search wraps to the facet furthest behind. An empty or unknown current
// starts at the first facet.
//
// Parameters:
//   - facets: the configured facets, in display order
//   - current: the key of the hovered facet, or ""
//   - d: the direction
//
// Returns:
//   - string: the next facet key, "" when there are no facets
func Navigate(facets []config.FacetConfig, current string, d Direction) string {
	if len(facets) == 0 {
		return ""
	}
	idx := -1
	for i, f := range facets {
		if f.Key == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return facets[0].Key
	}

	axis, forward := d.axis()
	from := facets[idx].Exploded
	ahead := func(p mgl32.Vec3) bool {
		if forward {
			return p[axis] > from[axis]
		}
		return p[axis] < from[axis]
	}

	best, bestDist := -1, float32(0)
	for i, f := range facets {
		if !ahead(f.Exploded) {
			continue
		}
		dist := planarDistance(f.Exploded, from)
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best >= 0 {
		return facets[best].Key
	}

	wrap := 0
	for i, f := range facets {
		v, w := f.Exploded[axis], facets[wrap].Exploded[axis]
		if (forward && v < w) || (!forward && v > w) {
			wrap = i
		}
	}
	return facets[wrap].Key
}

func planarDistance(a, b mgl32.Vec3) float32 {
	return mgl32.Vec2{a.X() - b.X(), a.Y() - b.Y()}.Len()
}
