package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/trophy/pkg/geometry"
	"github.com/taigrr/trophy/pkg/math3d"
)

// GenerateRay returns the world-space ray through normalized screen
// coordinate (u, v) ∈ [0, 1]², u increasing right and v increasing
// up. The viewport half-height at the focal plane is
// tan(FOV/2)·FocalDist, half-width is that scaled by AspectRatio; the
// sensor-plane point in view space is ((2u-1)·w, (2v-1)·h,
// -FocalDist). The ray's origin is the camera's world position and
// its direction points from there through that sensor point.
func (c *Camera) GenerateRay(u, v float64) geometry.Ray {
	h := math.Tan(c.FOV/2) * c.FocalDist
	w := h * c.AspectRatio
	sensor := math3d.V3((2*u-1)*w, (2*v-1)*h, -c.FocalDist)

	inv := c.ViewMatrix().Inverse()
	world := inv.MulVec4(math3d.V4FromV3(sensor, 1)).PerspectiveDivide()
	dir := world.Sub(c.Position).Normalize()
	return geometry.NewRay(c.Position, dir)
}

// OrbitSpring drives a spring-damped camera orbit around a fixed
// target, used by the terminal trace preview to settle into position
// after each user nudge instead of snapping.
type OrbitSpring struct {
	spring harmonica.Spring

	target      math3d.Vec3
	radius      float64
	yaw, pitch  float64
	yawVel      float64
	pitchVel    float64
	radiusVel   float64
	targetYaw   float64
	targetPitch float64
	targetRad   float64
}

// NewOrbitSpring creates an orbit spring with the given angular
// frequency (radians per second) and damping ratio, matching
// harmonica's own parameterization; fps sets the time step.
func NewOrbitSpring(target math3d.Vec3, radius float64, fps float64, frequency, damping float64) *OrbitSpring {
	return &OrbitSpring{
		spring:    harmonica.NewSpring(harmonica.FPS(int(fps)), frequency, damping),
		target:    target,
		radius:    radius,
		targetRad: radius,
	}
}

// Nudge offsets the orbit's resting yaw/pitch/radius; Step eases
// toward it over subsequent calls.
func (o *OrbitSpring) Nudge(deltaYaw, deltaPitch, deltaRadius float64) {
	o.targetYaw += deltaYaw
	o.targetPitch += deltaPitch
	o.targetRad += deltaRadius
}

// Step advances the spring by one frame and applies the result to cam.
func (o *OrbitSpring) Step(cam *Camera) {
	o.yaw, o.yawVel = o.spring.Update(o.yaw, o.yawVel, o.targetYaw)
	o.pitch, o.pitchVel = o.spring.Update(o.pitch, o.pitchVel, o.targetPitch)
	o.radius, o.radiusVel = o.spring.Update(o.radius, o.radiusVel, o.targetRad)

	offset := math3d.V3(0, 0, o.radius)
	rot := math3d.RotateY(o.yaw).Mul(math3d.RotateX(o.pitch))
	cam.Position = o.target.Add(rot.MulVec3Dir(offset))
	cam.LookAt(o.target)
}
