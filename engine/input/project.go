package input

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/camera"
	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
	"github.com/go-gl/mathgl/mgl32"
)

// ScreenFacet is a facet projected into viewport pixels.
type ScreenFacet struct {
	Facet crystal.FacetFrame

	// X and Y are viewport coordinates with the origin at the top left.
	X float32
	Y float32

	// Depth is the clip-space depth; smaller is closer.
	Depth float32
}

// ProjectFacets projects every facet of a frame through the frame's camera pose.
// Facets behind the camera or outside the viewport are dropped. The result is sorted
// far to near, which is painter's order.
//
// Parameters:
//   - f: the frame
//   - projection: the camera projection matrix
//   - width: viewport width
//   - height: viewport height
//
// Returns:
//   - []ScreenFacet: the visible facets
func ProjectFacets(f crystal.Frame, projection mgl32.Mat4, width, height int) []ScreenFacet {
	if width <= 0 || height <= 0 {
		return nil
	}
	vp := projection.Mul4(camera.ViewFromPose(f.Camera))
	out := make([]ScreenFacet, 0, len(f.Facets))
	for _, ff := range f.Facets {
		ndc, ok := common.ProjectPoint(vp, ff.Position)
		if !ok || ndc.X() < -1 || ndc.X() > 1 || ndc.Y() < -1 || ndc.Y() > 1 {
			continue
		}
		out = append(out, ScreenFacet{
			Facet: ff,
			X:     (ndc.X() + 1) * 0.5 * float32(width),
			Y:     (1 - ndc.Y()) * 0.5 * float32(height),
			Depth: ndc.Z(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Depth > out[j].Depth
	})
	return out
}

// Pick returns the nearest-to-camera facet whose projected center lies within radius of (x, y).
//
// Parameters:
//   - f: the frame
//   - projection: the camera projection matrix
//   - x, y: the viewport point
//   - width, height: the viewport size
//   - radius: the hit radius in viewport units
//
// Returns:
//   - string: the facet key
//   - bool: false when nothing is hit
func Pick(f crystal.Frame, projection mgl32.Mat4, x, y float32, width, height int, radius float32) (string, bool) {
	hits := ProjectFacets(f, projection, width, height)
	r2 := radius * radius
	for i := len(hits) - 1; i >= 0; i-- {
		dx, dy := hits[i].X-x, hits[i].Y-y
		if dx*dx+dy*dy <= r2 {
			return hits[i].Facet.Key, true
		}
	}
	return "", false
}
