// Package camera provides the orbit camera the garment viewer looks through.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/merchkit/pkg/math"
)

// OrbitCamera orbits a target point on a sphere. Polar is measured from
// the +Y axis, so π/2 looks straight at the target's side.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates
	Distance float32
	Polar    float32 // radians from +Y
	Azimuth  float32 // radians around +Y, 0 faces +Z

	// Projection
	FOV  float32 // vertical, degrees
	Near float32
	Far  float32

	// Constraints
	MinPolar    float32
	MaxPolar    float32
	MinDistance float32
	MaxDistance float32
	ZoomEnabled bool

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// Default framing: eye at (0, 0.5, 2.5) looking at the origin.
var defaultEye = math.Vec3{X: 0, Y: 0.5, Z: 2.5}

// NewOrbitCamera creates a camera with the viewer's stock framing.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		FOV:             50,
		Near:            0.1,
		Far:             1000,
		MinPolar:        math32.Pi / 3,
		MaxPolar:        2 * math32.Pi / 3,
		MinDistance:     1,
		MaxDistance:     10,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
	c.LookFrom(defaultEye)
	return c
}

// LookFrom places the eye at a world position, keeping the target.
// The polar angle is clamped to the allowed range.
func (c *OrbitCamera) LookFrom(eye math.Vec3) {
	off := eye.Sub(c.Target)
	c.Distance = off.Length()
	if c.Distance == 0 {
		c.Distance = defaultEye.Length()
		off = defaultEye
	}
	c.Polar = math32.Acos(math.Clamp(off.Y/c.Distance, -1, 1))
	c.Azimuth = math32.Atan2(off.X, off.Z)
	c.clampPolar()
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Polar)
	sa, ca := math32.Sincos(c.Azimuth)
	return math.Vec3{
		X: c.Target.X + c.Distance*sp*sa,
		Y: c.Target.Y + c.Distance*cp,
		Z: c.Target.Z + c.Distance*sp*ca,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{X: 0, Y: 1, Z: 0})
}

// ProjectionMatrix returns the perspective projection for a viewport aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.Radians(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// InverseViewProjection returns the unprojection matrix used for picking.
func (c *OrbitCamera) InverseViewProjection(aspect float32) (math.Mat4, bool) {
	return c.ViewProjection(aspect).Inverse()
}

// HandleDrag orbits by a pointer drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Azimuth -= deltaX * c.DragSensitivity
	c.Polar -= deltaY * c.DragSensitivity
	c.clampPolar()
}

// HandleZoom updates distance from the scroll wheel when zoom is enabled.
func (c *OrbitCamera) HandleZoom(delta float32) {
	if !c.ZoomEnabled {
		return
	}
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

func (c *OrbitCamera) clampPolar() {
	c.Polar = math.Clamp(c.Polar, c.MinPolar, c.MaxPolar)
}
