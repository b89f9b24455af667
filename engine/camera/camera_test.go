package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraBuilderOptions(t *testing.T) {
	c := NewCamera(WithFovDegrees(60), WithViewport(80, 20, 2), WithClipPlanes(0.5, 50))
	assert.InDelta(t, math.Pi/3, c.Fov(), 1e-6)
	assert.InDelta(t, 2, c.Aspect(), 1e-6)
	assert.Equal(t, float32(0.5), c.Near())
	assert.Equal(t, float32(50), c.Far())

	d := NewCamera(WithFovDegrees(0), WithAspect(-1), WithViewport(0, 10, 1), WithClipPlanes(2, 1))
	assert.InDelta(t, math.Pi/4, d.Fov(), 1e-6)
	assert.Equal(t, float32(1), d.Aspect())
	assert.Equal(t, float32(0.1), d.Near())
	assert.Equal(t, float32(100), d.Far())
}
