package term

import (
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/input"
)

type ViewerBuilderOption func(*viewerImpl)

// WithFrameInterval sets how often Run ticks and redraws.
//
// Parameters:
//   - d: the interval between frames, ignored when not positive
//
// Returns:
//   - ViewerBuilderOption: a function that sets the frame interval
func WithFrameInterval(d time.Duration) ViewerBuilderOption {
	return func(v *viewerImpl) {
		if d > 0 {
			v.frameInterval = d
		}
	}
}

// WithController replaces the default input controller.
func WithController(c input.Controller) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.controller = c
	}
}

// WithFov overrides the configured vertical field of view, in degrees.
func WithFov(degrees float32) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.fovDegrees = degrees
	}
}
