package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraState_LooksAtTarget(t *testing.T) {
	cam := NewCameraState()
	pos := cam.Position()

	assert.Positive(t, pos.Z(), "camera should sit above the tiling")
	assert.InDelta(t, cam.Distance, pos.Sub(cam.Target).Len(), 1e-4)

	// The target projects to the center of clip space.
	clip := cam.ViewProj(16.0/9.0).Mul4x1(cam.Target.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)
}

func TestCameraState_Frame(t *testing.T) {
	cam := NewCameraState()
	cam.Frame(10)

	// A point on the disc edge, straight up the screen, stays inside the frustum.
	clip := cam.ViewProj(1).Mul4x1(mgl32.Vec4{0, 10, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	assert.Less(t, mgl32.Abs(ndc.Y()), float32(1))
	assert.Less(t, mgl32.Abs(ndc.X()), float32(1))
}

func TestCameraState_ProjectionGuardsAspect(t *testing.T) {
	cam := NewCameraState()
	assert.Equal(t, cam.Projection(1), cam.Projection(0))
}

func TestCameraState_Orbit(t *testing.T) {
	cam := NewCameraState()
	dist := cam.Distance

	cam.Orbit(mgl32.DegToRad(90), 0, 1)
	assert.InDelta(t, mgl32.DegToRad(90), cam.Yaw, 1e-6)
	assert.InDelta(t, dist, cam.Distance, 1e-6)
	assert.InDelta(t, dist, cam.Position().Len(), 1e-3)

	cam.Orbit(0, 10, 1)
	assert.InDelta(t, mgl32.DegToRad(89), cam.Pitch, 1e-6)
	cam.Orbit(0, -10, 1)
	assert.InDelta(t, mgl32.DegToRad(5), cam.Pitch, 1e-6)

	cam.Orbit(0, 0, 0.5)
	assert.InDelta(t, dist/2, cam.Distance, 1e-5)
	cam.Orbit(0, 0, 1e-6)
	assert.InDelta(t, cam.Near*10, cam.Distance, 1e-6)
	cam.Orbit(0, 0, 0)
	assert.InDelta(t, cam.Near*10, cam.Distance, 1e-6, "non-positive zoom is ignored")
}
