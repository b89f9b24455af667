package crystal

import (
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/chewxy/math32"
)

// FractureGlowAnimator produces the per-facet scale pulse and the shared glow of the
// fracture sub-phase.
type FractureGlowAnimator struct {
	Timing config.FractureTiming
	Glow   config.FractureGlow
}

func (a FractureGlowAnimator) pulse() time.Duration {
	return common.Coalesce(a.Timing.PulseDuration, config.DefaultPulseDuration).Duration()
}

func (a FractureGlowAnimator) fade() time.Duration {
	return common.Coalesce(a.Timing.GlowFadeDuration, config.DefaultGlowFadeDuration).Duration()
}

// Sample returns the scale factor and glow at time t since fracture start.
//
// The pulse oscillates at full amplitude for the whole pulse window.
func (a FractureGlowAnimator) Sample(t time.Duration) (scale, glow float32) {
	pulse, fade := a.pulse(), a.fade()
	initial, secondary := a.Glow.InitialGlow, a.Glow.SecondaryGlow

	switch {
	case t < 0:
		return 1, initial
	case t < pulse:
		sec := float32(t.Seconds())
		return 1 + a.Glow.MaxScaleFactor*math32.Sin(sec*math32.Pi*10), initial
	case t < pulse+fade:
		f := float32(t-pulse) / float32(fade)
		return 1, initial + (secondary-initial)*f
	default:
		return 1, secondary
	}
}
