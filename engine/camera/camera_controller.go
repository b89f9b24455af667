package camera

import (
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is a camera position and orientation. The orientation rotates camera-space
// -Z onto the viewing direction.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// Observation is the assembly state the controller reacts to.
type Observation struct {
	// Exploded is the current explode flag.
	Exploded bool

	// Selected is the selected facet key, or "".
	Selected string

	// FacetPosition is the world position of the selected facet. It is only read
	// when FacetKnown is true.
	FacetPosition mgl32.Vec3
	FacetKnown    bool
}

// CameraController defines the union interface for camera control.
// Controllers own the camera pose. Camera reads the pose and computes
// view/projection matrices. Embeds orbitCameraController and
// transitionCameraController: user orbit input moves the pose while no transition
// is running, and transitions move it otherwise.
type CameraController interface {
	orbitCameraController
	transitionCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Rotation returns the camera's orientation.
	//
	// Returns:
	//   - mgl32.Quat: the orientation quaternion
	Rotation() mgl32.Quat

	// Pose returns position and orientation together.
	//
	// Returns:
	//   - Pose: the current pose
	Pose() Pose

	// SetPose places the camera directly, cancelling any running transition.
	//
	// Parameters:
	//   - p: the new pose
	SetPose(p Pose)

	// SetConfig replaces the camera settings, timing and easing names. The pose and any
	// running transition are kept.
	//
	// Parameters:
	//   - cfg: the new configuration
	SetConfig(cfg *config.Config)
}

// orbitCameraController defines orbit control around the scene origin using
// spherical coordinates (radius, azimuth, elevation).
type orbitCameraController interface {
	// Orbit rotates the camera around the origin. Ignored while orbit is disabled
	// or a transition is running. Elevation is clamped to its bounds.
	//
	// Parameters:
	//   - dAzimuth: horizontal input, scaled by the rotate speed
	//   - dElevation: vertical input, scaled by the rotate speed
	Orbit(dAzimuth, dElevation float32)

	// Zoom dollies the camera toward (positive steps) or away from the origin, keeping
	// the radius within the configured distance bounds. Ignored unless zoom is enabled,
	// and under the same conditions as Orbit.
	//
	// Parameters:
	//   - steps: scroll input, one unit per wheel notch
	Zoom(steps float32)

	// OrbitEnabled reports whether orbit input is accepted.
	//
	// Returns:
	//   - bool: true if orbit is enabled
	OrbitEnabled() bool

	// SetOrbitEnabled enables or disables orbit input.
	//
	// Parameters:
	//   - enabled: the new state
	SetOrbitEnabled(enabled bool)

	// Radius returns the distance from the origin.
	//
	// Returns:
	//   - float32: current distance from the origin
	Radius() float32

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// MinElevation returns the minimum allowed elevation angle.
	//
	// Returns:
	//   - float32: minimum elevation in radians
	MinElevation() float32

	// MaxElevation returns the maximum allowed elevation angle.
	//
	// Returns:
	//   - float32: maximum elevation in radians
	MaxElevation() float32

	// RotateSpeed returns the multiplier applied to orbit input.
	//
	// Returns:
	//   - float32: radians per unit of input
	RotateSpeed() float32
}

// transitionCameraController defines the animated transitions between the reformed,
// exploded and facet-focused views.
type transitionCameraController interface {
	// Observe starts the transition implied by a change in explode or selection state.
	// Unchanged state is a no-op. A new transition replaces any running one.
	//
	// Parameters:
	//   - now: the time the transition starts
	//   - obs: the current assembly state
	Observe(now time.Time, obs Observation)

	// Update advances the running transition to now. On completion the pose snaps to
	// the exact target.
	//
	// Parameters:
	//   - now: the current time
	//
	// Returns:
	//   - bool: true while a transition is still running
	Update(now time.Time) bool

	// Animating reports whether a transition is running.
	//
	// Returns:
	//   - bool: true while a transition is running
	Animating() bool

	// Trigger returns the kind of the running or most recent transition.
	//
	// Returns:
	//   - Trigger: the transition trigger
	Trigger() Trigger

	// ExplodedMemory returns the pose captured when the last transition into the
	// exploded, nothing-selected state completed.
	//
	// Returns:
	//   - Pose: the remembered pose
	//   - bool: false if none has been captured yet
	ExplodedMemory() (Pose, bool)
}
