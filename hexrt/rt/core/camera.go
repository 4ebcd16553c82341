package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraState orbits a target point. Z is up, matching the tiling normal.
type CameraState struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32 // radians around +Z
	Pitch    float32 // radians above the XY plane
	FovY     float32 // radians
	Near     float32
	Far      float32
}

func NewCameraState() *CameraState {
	return &CameraState{
		Target:   mgl32.Vec3{0, 0, 0},
		Distance: 20,
		Yaw:      0,
		Pitch:    mgl32.DegToRad(60),
		FovY:     mgl32.DegToRad(45),
		Near:     0.1,
		Far:      1000,
	}
}

func (c *CameraState) Position() mgl32.Vec3 {
	cp := float32(math.Cos(float64(c.Pitch)))
	offset := mgl32.Vec3{
		c.Distance * cp * float32(math.Sin(float64(c.Yaw))),
		-c.Distance * cp * float32(math.Cos(float64(c.Yaw))),
		c.Distance * float32(math.Sin(float64(c.Pitch))),
	}
	return c.Target.Add(offset)
}

func (c *CameraState) GetViewMatrix() mgl32.Mat4 {
	up := mgl32.Vec3{0, 0, 1} // Z-up
	return mgl32.LookAtV(c.Position(), c.Target, up)
}

func (c *CameraState) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1.0
	}
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

func (c *CameraState) ViewProj(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.GetViewMatrix())
}

// Frame moves the camera back far enough that a disc of the given radius
// around the target fits inside the vertical field of view.
func (c *CameraState) Frame(radius float32) {
	half := float64(c.FovY) / 2
	if half <= 0 {
		return
	}
	c.Distance = radius / float32(math.Sin(half)) * 1.1
}

const (
	minPitch = 5 * math.Pi / 180
	maxPitch = 89 * math.Pi / 180
)

// Orbit turns the camera around the target and scales its distance by zoom.
// Pitch stays between 5° and 89° so the tiling is always seen from above.
func (c *CameraState) Orbit(dYaw, dPitch, zoom float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+dYaw), 2*math.Pi))
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, minPitch, maxPitch)
	if zoom > 0 {
		c.Distance = mgl32.Clamp(c.Distance*zoom, c.Near*10, c.Far/2)
	}
}
