package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// epsilon is the length below which a vector is treated as degenerate.
const epsilon = 1e-8

// WorldUp is the +Y up vector used for every look-at in the engine.
var WorldUp = mgl32.Vec3{0, 1, 0}

// PerspectiveZO creates a right-handed perspective projection matrix that maps depth into
// the WebGPU clip space range [0, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func PerspectiveZO(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)

	var m mgl32.Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1.0
	m[14] = (near * far) / (near - far)
	return m
}

// Lerp3 linearly interpolates between a and b component-wise.
// Written as a*(1-t) + b*t so that t == 0 and t == 1 return a and b exactly.
//
// Parameters:
//   - a: the start vector
//   - b: the end vector
//   - t: interpolation factor
//
// Returns:
//   - mgl32.Vec3: the interpolated vector
func Lerp3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	u := 1 - t
	return mgl32.Vec3{
		a[0]*u + b[0]*t,
		a[1]*u + b[1]*t,
		a[2]*u + b[2]*t,
	}
}

// SafeNormalize returns v scaled to unit length, or fallback when v is degenerate.
//
// Parameters:
//   - v: the vector to normalize
//   - fallback: the value returned when v has (near) zero length
//
// Returns:
//   - mgl32.Vec3: the unit vector
func SafeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < epsilon {
		return fallback
	}
	return v.Mul(1 / l)
}

// LookRotation returns the orientation of an object at eye whose -Z axis faces center.
// This is the camera-to-world rotation, i.e. the inverse of the rotation part of a look-at view matrix.
// When eye and center coincide the identity quaternion is returned.
//
// Parameters:
//   - eye: the position of the object
//   - center: the point to face
//   - up: the up vector (typically WorldUp)
//
// Returns:
//   - mgl32.Quat: the normalized orientation
func LookRotation(eye, center, up mgl32.Vec3) mgl32.Quat {
	if center.Sub(eye).Len() < epsilon {
		return mgl32.QuatIdent()
	}
	view := mgl32.LookAtV(eye, center, up)
	return mgl32.Mat4ToQuat(view.Mat3().Transpose().Mat4()).Normalize()
}

// Forward returns the -Z axis of the given orientation.
//
// Parameters:
//   - q: the orientation
//
// Returns:
//   - mgl32.Vec3: the unit forward vector
func Forward(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(mgl32.Vec3{0, 0, -1})
}

// ProjectPoint transforms a world-space point by a view-projection matrix into normalized
// device coordinates.
//
// Parameters:
//   - viewProj: the combined view-projection matrix
//   - p: the world-space point
//
// Returns:
//   - mgl32.Vec3: x and y in [-1, 1] when on screen, z the clip depth
//   - bool: false when the point lies behind the camera
func ProjectPoint(viewProj mgl32.Mat4, p mgl32.Vec3) (mgl32.Vec3, bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip[3] <= epsilon {
		return mgl32.Vec3{}, false
	}
	return mgl32.Vec3{clip[0] / clip[3], clip[1] / clip[3], clip[2] / clip[3]}, true
}
