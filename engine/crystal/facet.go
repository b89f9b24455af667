package crystal

import (
	"log"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/spring"
	"github.com/go-gl/mathgl/mgl32"
)

const labelHoverScale = 1.05

// facet is the per-facet animation state owned by the assembly.
type facet struct {
	cfg   config.FacetConfig
	index int
	color common.Color

	spring   *spring.Vec3
	position mgl32.Vec3
	glow     float32

	labelShown   bool
	labelOpacity *spring.Scalar
	labelScale   *spring.Scalar
}

func newFacet(cfg config.FacetConfig, index int, springs config.Springs, at mgl32.Vec3) *facet {
	color, err := common.ParseHexColor(cfg.Color)
	if err != nil {
		log.Printf("[Assembly] Warning: facet %q color: %v", cfg.Key, err)
		color = common.Color{R: 1, G: 1, B: 1, A: 1}
	}
	return &facet{
		cfg:          cfg,
		index:        index,
		color:        color,
		spring:       spring.NewVec3(at),
		position:     at,
		labelOpacity: spring.NewScalar(0, springs.LabelAppear),
		labelScale:   spring.NewScalar(1, springs.LabelHover),
	}
}

// target returns the authored position for phase p.
func (f *facet) target(p Phase) mgl32.Vec3 {
	switch p {
	case PhaseFractured:
		return f.cfg.Fracture
	case PhaseExploded:
		return f.cfg.Exploded
	default:
		return f.cfg.Start
	}
}

func (f *facet) showLabel(shown bool) {
	f.labelShown = shown
	if shown {
		f.labelOpacity.SetTarget(1)
	} else {
		f.labelOpacity.SetTarget(0)
	}
}

func (f *facet) hoverLabel(hovered bool) {
	if hovered {
		f.labelScale.SetTarget(labelHoverScale)
	} else {
		f.labelScale.SetTarget(1)
	}
}
