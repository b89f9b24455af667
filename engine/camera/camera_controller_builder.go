package camera

import (
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithConfig applies the camera section, camera timing and easing names of cfg.
//
// Parameters:
//   - cfg: the configuration to read
//
// Returns:
//   - CameraControllerOption: functional option to apply the configuration
func WithConfig(cfg *config.Config) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.applyConfig(cfg)
		cc.position = cfg.Camera.StartPosition
	}
}

// WithStartPosition sets the initial camera position. The camera faces the origin.
//
// Parameters:
//   - p: world-space position
//
// Returns:
//   - CameraControllerOption: functional option to set the start position
func WithStartPosition(p mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = p
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - min: minimum vertical angle in radians
//   - max: maximum vertical angle in radians
//
// Returns:
//   - CameraControllerOption: functional option to set elevation bounds
func WithElevationBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithRotateSpeed sets the orbit input multiplier.
//
// Parameters:
//   - speed: radians per unit of input
//
// Returns:
//   - CameraControllerOption: functional option to set the rotate speed
func WithRotateSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotateSpeed = speed
	}
}

// WithOrbitEnabled sets whether orbit input is accepted initially.
//
// Parameters:
//   - enabled: the initial state
//
// Returns:
//   - CameraControllerOption: functional option to enable or disable orbit
func WithOrbitEnabled(enabled bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbitEnabled = enabled
	}
}
