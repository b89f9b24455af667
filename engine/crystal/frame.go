package crystal

import (
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// Frame is the read-only snapshot a renderer consumes after each tick.
type Frame struct {
	Time     time.Time
	Phase    Phase
	Exploded bool
	Selected string
	Hovered  string

	CrystalVisible bool
	FacetsVisible  bool
	LabelsVisible  bool

	GlowSource GlowSource
	Glow       float32
	Facets     []FacetFrame

	Camera          camera.Pose
	CameraAnimating bool
	OrbitEnabled    bool
	DetailVisible   bool
	Transitioning   bool
}

// FacetFrame is the per-facet part of a Frame.
type FacetFrame struct {
	Key         string
	Label       string
	Description string
	Color       common.Color
	Position    mgl32.Vec3
	Scale       float32
	Emissive    float32
	Selected    bool
	Hovered     bool

	LabelOpacity float32
	LabelScale   float32
}

// Facet returns the facet frame for key.
func (f Frame) Facet(key string) (FacetFrame, bool) {
	for _, ff := range f.Facets {
		if ff.Key == key {
			return ff, true
		}
	}
	return FacetFrame{}, false
}

func (f Frame) clone() Frame {
	f.Facets = append([]FacetFrame(nil), f.Facets...)
	return f
}
