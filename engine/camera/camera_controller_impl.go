package camera

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	origin   = mgl32.Vec3{}
	defaultZ = mgl32.Vec3{0, 0, 1}
)

// zoomStep is the radius factor applied per scroll notch.
const zoomStep = 0.95

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	rotation mgl32.Quat

	// Orbit constraints
	minElevation float32
	maxElevation float32
	rotateSpeed  float32
	orbitEnabled bool

	zoomEnabled bool
	minDistance float32
	maxDistance float32

	settings config.CameraConfig
	timing   config.CameraTiming
	easings  config.Easings

	anim      animation
	trigger   Trigger
	returning bool
	last      Observation

	memory    Pose
	hasMemory bool
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller facing the origin.
// Without options it uses the default camera configuration.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:           &sync.Mutex{},
		orbitEnabled: true,
	}
	def := config.Default()
	cc.applyConfig(def)
	cc.position = def.Camera.StartPosition

	for _, option := range options {
		option(cc)
	}

	cc.rotation = common.LookRotation(cc.position, origin, common.WorldUp)
	return cc
}

// --- internal helpers ---

func (cc *cameraControllerImpl) applyConfig(cfg *config.Config) {
	cc.settings = cfg.Camera
	cc.timing = cfg.Timing.Camera
	cc.easings = cfg.Easings

	// polar angles are measured from +Y; elevation from the horizontal plane
	cc.minElevation = math.Pi/2 - cfg.Camera.MaxPolarAngle
	cc.maxElevation = math.Pi/2 - cfg.Camera.MinPolarAngle
	cc.rotateSpeed = cfg.Camera.RotateSpeed
	cc.zoomEnabled = cfg.Camera.EnableZoom
	cc.minDistance = cfg.Camera.MinDistance
	cc.maxDistance = max(cfg.Camera.MaxDistance, cfg.Camera.MinDistance)
}

// spherical returns the position's radius, azimuth and elevation about the origin.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) spherical() (radius, azimuth, elevation float32) {
	radius = cc.position.Len()
	if radius < 1e-8 {
		return 0, 0, 0
	}
	azimuth = math32.Atan2(cc.position.X(), cc.position.Z())
	elevation = math32.Asin(common.Clamp(cc.position.Y()/radius, -1, 1))
	return
}

// setSpherical recomputes the position from spherical coordinates and faces the origin.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) setSpherical(radius, azimuth, elevation float32) {
	cosElev := math32.Cos(elevation)
	sinElev := math32.Sin(elevation)
	cosAzim := math32.Cos(azimuth)
	sinAzim := math32.Sin(azimuth)

	cc.position = mgl32.Vec3{
		radius * cosElev * sinAzim,
		radius * sinElev,
		radius * cosElev * cosAzim,
	}
	cc.rotation = common.LookRotation(cc.position, origin, common.WorldUp)
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Rotation() mgl32.Quat {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rotation
}

func (cc *cameraControllerImpl) Pose() Pose {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return Pose{Position: cc.position, Rotation: cc.rotation}
}

func (cc *cameraControllerImpl) SetPose(p Pose) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.anim.active = false
	cc.position = p.Position
	cc.rotation = p.Rotation
}

func (cc *cameraControllerImpl) SetConfig(cfg *config.Config) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.applyConfig(cfg)
}

// --- orbitCameraController implementation ---

func (cc *cameraControllerImpl) Orbit(dAzimuth, dElevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.orbitEnabled || cc.anim.active {
		return
	}
	radius, azimuth, elevation := cc.spherical()
	if radius == 0 {
		return
	}
	azimuth += dAzimuth * cc.rotateSpeed
	elevation = common.Clamp(elevation+dElevation*cc.rotateSpeed, cc.minElevation, cc.maxElevation)
	cc.setSpherical(radius, azimuth, elevation)
}

func (cc *cameraControllerImpl) Zoom(steps float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.zoomEnabled || !cc.orbitEnabled || cc.anim.active || steps == 0 {
		return
	}
	radius, azimuth, elevation := cc.spherical()
	if radius == 0 {
		return
	}
	radius = common.Clamp(radius*math32.Pow(zoomStep, steps), cc.minDistance, cc.maxDistance)
	cc.setSpherical(radius, azimuth, elevation)
}

func (cc *cameraControllerImpl) OrbitEnabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orbitEnabled
}

func (cc *cameraControllerImpl) SetOrbitEnabled(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbitEnabled = enabled
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	r, _, _ := cc.spherical()
	return r
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, a, _ := cc.spherical()
	return a
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, _, e := cc.spherical()
	return e
}

func (cc *cameraControllerImpl) MinElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minElevation
}

func (cc *cameraControllerImpl) MaxElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxElevation
}

func (cc *cameraControllerImpl) RotateSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rotateSpeed
}

// --- transitionCameraController implementation ---

func (cc *cameraControllerImpl) Observe(now time.Time, obs Observation) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	prev := cc.last
	cc.last = obs

	switch {
	case obs.Selected != "" && obs.Selected != prev.Selected:
		if !obs.FacetKnown {
			log.Printf("[Camera] Warning: no position for facet %q, keeping current view", obs.Selected)
			return
		}
		dir := common.SafeNormalize(cc.position.Sub(obs.FacetPosition), defaultZ)
		target := obs.FacetPosition.Add(dir.Mul(cc.settings.FacetBackOff))
		cc.start(now, TriggerSelect, Pose{
			Position: target,
			Rotation: common.LookRotation(target, obs.FacetPosition, common.WorldUp),
		}, cc.timing.FacetZoom, config.DefaultFacetZoomDuration)
		cc.returning = false

	case obs.Selected == "" && prev.Selected != "" && obs.Exploded:
		target, ok := cc.memory, cc.hasMemory
		if !ok {
			pos := common.SafeNormalize(cc.position, defaultZ).Mul(cc.settings.FallbackRadius)
			target = Pose{Position: pos, Rotation: common.LookRotation(pos, origin, common.WorldUp)}
		}
		cc.start(now, TriggerDeselect, target, cc.timing.FacetReturn, config.DefaultFacetReturnDuration)
		cc.returning = true

	case obs.Exploded != prev.Exploded:
		dir := common.SafeNormalize(cc.position, defaultZ)
		if obs.Exploded {
			target := Pose{Position: cc.position.Add(dir.Mul(cc.settings.ZoomAmount)), Rotation: cc.rotation}
			cc.start(now, TriggerExplode, target, cc.timing.Explode, config.DefaultExplodeDuration)
		} else {
			target := Pose{Position: cc.position.Sub(dir.Mul(cc.settings.ZoomAmount)), Rotation: cc.rotation}
			cc.start(now, TriggerReform, target, cc.timing.Reform, config.DefaultReformDuration)
		}
		cc.returning = false
	}
}

// start replaces the running animation. Caller must hold the mutex.
func (cc *cameraControllerImpl) start(now time.Time, trig Trigger, target Pose, d, def config.Millis) {
	cc.trigger = trig
	cc.anim = animation{
		from:     Pose{Position: cc.position, Rotation: cc.rotation},
		to:       target,
		start:    now,
		duration: common.Coalesce(d, def).Duration(),
		active:   true,
	}
}

func (cc *cameraControllerImpl) Update(now time.Time) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.anim.active {
		return false
	}

	elapsed := now.Sub(cc.anim.start)
	if elapsed >= cc.anim.duration {
		cc.position = cc.anim.to.Position
		cc.rotation = cc.anim.to.Rotation
		cc.anim.active = false
		cc.returning = false
		if cc.last.Exploded && cc.last.Selected == "" {
			cc.memory = cc.anim.to
			cc.hasMemory = true
		}
		return false
	}

	p := max(float32(elapsed)/float32(cc.anim.duration), 0)
	pose := cc.anim.sample(selectEasing(cc.easings, cc.last, cc.returning)(p))
	cc.position = pose.Position
	cc.rotation = pose.Rotation
	return true
}

func (cc *cameraControllerImpl) Animating() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.anim.active
}

func (cc *cameraControllerImpl) Trigger() Trigger {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.trigger
}

func (cc *cameraControllerImpl) ExplodedMemory() (Pose, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.memory, cc.hasMemory
}
