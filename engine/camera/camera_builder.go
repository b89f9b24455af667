package camera

import "github.com/go-gl/mathgl/mgl32"

type CameraBuilderOption func(*cameraImpl)

// WithFovDegrees sets the vertical field of view. Config files carry degrees, the camera
// stores radians. Non-positive values keep the default.
//
// Parameters:
//   - degrees: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFovDegrees(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if degrees > 0 {
			c.fov = mgl32.DegToRad(degrees)
		}
	}
}

// WithAspect sets the aspect ratio (width / height). Non-positive values keep the default.
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithViewport derives the aspect ratio from a viewport size. Terminal front ends pass a
// cellAspect of about 2 because character cells are twice as tall as they are wide.
//
// Parameters:
//   - width, height: the viewport size in pixels or cells
//   - cellAspect: the height/width ratio of one viewport unit
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithViewport(width, height int, cellAspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if width > 0 && height > 0 && cellAspect > 0 {
			c.aspect = float32(width) / (float32(height) * cellAspect)
		}
	}
}

// WithClipPlanes sets the near and far clip distances. Invalid ranges are ignored.
//
// Parameters:
//   - near: the near plane distance, must be positive
//   - far: the far plane distance, must exceed near
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if near > 0 && far > near {
			c.near, c.far = near, far
		}
	}
}

// WithController attaches a CameraController that drives the view matrix.
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
