// Package camera provides a 3D perspective camera for viewing the particle grid.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Default projection parameters.
const (
	DefaultFovy = 45.0 // degrees
	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

// maxPitch keeps orbiting away from the LookAt singularity at the poles.
const maxPitch = math.Pi/2 - 0.01

// Camera controls the view and projection used for rendering and unprojection.
// View and Projection are only valid after Update and UpdateProjectionMatrix;
// callers must run both before reading them in a frame.
type Camera struct {
	// Position is the eye point in world coordinates
	Position mgl32.Vec3

	// Target is the point the camera looks at
	Target mgl32.Vec3

	// Up is the world up vector handed to LookAt
	Up mgl32.Vec3

	// Projection parameters (Fovy in degrees)
	Fovy, Near, Far float32
	Aspect          float32

	View       mgl32.Mat4
	Projection mgl32.Mat4

	// Initial placement for Reset
	homePosition, homeTarget mgl32.Vec3
}

// New creates a camera at position looking at target with +Y up.
// The view and projection matrices are computed immediately with aspect 1.
func New(position, target mgl32.Vec3) *Camera {
	c := &Camera{
		Position:     position,
		Target:       target,
		Up:           mgl32.Vec3{0, 1, 0},
		Fovy:         DefaultFovy,
		Near:         DefaultNear,
		Far:          DefaultFar,
		Aspect:       1,
		homePosition: position,
		homeTarget:   target,
	}
	c.Update()
	c.UpdateProjectionMatrix()
	return c
}

// SetClipPlanes overrides the projection parameters.
// UpdateProjectionMatrix must be called afterwards.
func (c *Camera) SetClipPlanes(fovy, near, far float32) {
	c.Fovy = fovy
	c.Near = near
	c.Far = far
}

// Update recomputes the view matrix from Position, Target and Up.
func (c *Camera) Update() {
	c.View = mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// SetAspectRatio sets the viewport aspect ratio (width / height).
func (c *Camera) SetAspectRatio(aspect float32) {
	c.Aspect = aspect
}

// UpdateProjectionMatrix recomputes the projection from Fovy, Near, Far and Aspect.
func (c *Camera) UpdateProjectionMatrix() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fovy), c.Aspect, c.Near, c.Far)
}

// Resize updates the aspect ratio and projection for new viewport dimensions.
// Degenerate sizes (minimized windows) are ignored.
func (c *Camera) Resize(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	c.SetAspectRatio(width / height)
	c.UpdateProjectionMatrix()
}

// InverseView returns the camera-to-world transform.
func (c *Camera) InverseView() mgl32.Mat4 {
	return c.View.Inv()
}

// Right returns the camera's world-space right vector.
func (c *Camera) Right() mgl32.Vec3 {
	return c.View.Row(0).Vec3()
}

// CameraUp returns the camera's world-space up vector (orthogonal to Forward,
// unlike the Up field which is the LookAt hint).
func (c *Camera) CameraUp() mgl32.Vec3 {
	return c.View.Row(1).Vec3()
}

// Forward returns the world-space viewing direction.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.View.Row(2).Vec3().Mul(-1)
}

// Orbit rotates Position around Target by the given yaw and pitch deltas (radians).
// Update must be called afterwards.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	offset := c.Position.Sub(c.Target)
	radius := offset.Len()
	if radius == 0 {
		return
	}

	yaw := math.Atan2(float64(offset[0]), float64(offset[2]))
	pitch := math.Asin(float64(offset[1] / radius))

	yaw += float64(dYaw)
	pitch = float64(mgl32.Clamp(float32(pitch)+dPitch, -maxPitch, maxPitch))

	c.Position = c.Target.Add(sphericalOffset(yaw, pitch, radius))
}

// Dolly scales the distance between Position and Target by factor,
// clamped to [1, Far/2]. Update must be called afterwards.
func (c *Camera) Dolly(factor float32) {
	offset := c.Position.Sub(c.Target)
	radius := offset.Len()
	if radius == 0 || factor <= 0 {
		return
	}
	newRadius := mgl32.Clamp(radius*factor, 1, c.Far/2)
	c.Position = c.Target.Add(offset.Mul(newRadius / radius))
}

// Reset returns the camera to its initial position and target.
func (c *Camera) Reset() {
	c.Position = c.homePosition
	c.Target = c.homeTarget
	c.Update()
}

// sphericalOffset converts yaw/pitch/radius to a Cartesian offset (+Y up).
func sphericalOffset(yaw, pitch float64, radius float32) mgl32.Vec3 {
	cp := math.Cos(pitch)
	return mgl32.Vec3{
		radius * float32(cp*math.Sin(yaw)),
		radius * float32(math.Sin(pitch)),
		radius * float32(cp*math.Cos(yaw)),
	}
}
