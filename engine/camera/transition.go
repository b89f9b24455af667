package camera

import (
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/easing"
	"github.com/go-gl/mathgl/mgl32"
)

// Trigger identifies what started a camera transition.
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerSelect
	TriggerDeselect
	TriggerExplode
	TriggerReform
)

func (t Trigger) String() string {
	switch t {
	case TriggerSelect:
		return "select"
	case TriggerDeselect:
		return "deselect"
	case TriggerExplode:
		return "explode"
	case TriggerReform:
		return "reform"
	default:
		return "none"
	}
}

// animation is the single active camera transition.
type animation struct {
	from, to Pose
	start    time.Time
	duration time.Duration
	active   bool
}

// sample returns the pose at eased progress p: position is lerped, rotation slerped
// along the shorter arc.
func (a animation) sample(p float32) Pose {
	to := a.to.Rotation
	if a.from.Rotation.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return Pose{
		Position: common.Lerp3(a.from.Position, a.to.Position, p),
		Rotation: mgl32.QuatSlerp(a.from.Rotation, to, p).Normalize(),
	}
}

// selectEasing picks the curve from the current state rather than the trigger that
// started the animation, so a mid-flight state change switches curves.
func selectEasing(names config.Easings, obs Observation, returning bool) easing.Func {
	switch {
	case obs.Selected != "":
		return easing.Resolve(names.FacetZoom, names.Explosion, config.DefaultEasing)
	case returning:
		return easing.Resolve(names.FacetReturn, names.Reform, config.DefaultEasing)
	case obs.Exploded:
		return easing.Resolve(names.Explosion, config.DefaultEasing)
	default:
		return easing.Resolve(names.Reform, config.DefaultEasing)
	}
}
