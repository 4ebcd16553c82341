package honeycomb

import (
	"testing"

	"github.com/gekko3d/honeycomb/hexrt/rt/core"
	"github.com/stretchr/testify/assert"
)

func TestInput_Set(t *testing.T) {
	var in Input
	in.set(KeyW, true)
	assert.True(t, in.Pressed[KeyW])
	assert.True(t, in.JustPressed[KeyW])

	in.set(KeyW, true)
	assert.False(t, in.JustPressed[KeyW])

	in.set(KeyW, false)
	assert.False(t, in.Pressed[KeyW])
	assert.True(t, in.JustReleased[KeyW])
}

func TestInput_Axis(t *testing.T) {
	var in Input
	assert.Zero(t, in.Axis(KeyA, KeyD))
	in.set(KeyD, true)
	assert.Equal(t, float32(1), in.Axis(KeyA, KeyD))
	in.set(KeyA, true)
	assert.Zero(t, in.Axis(KeyA, KeyD))
	in.set(KeyD, false)
	assert.Equal(t, float32(-1), in.Axis(KeyA, KeyD))
}

func TestOrbitCamera_Apply(t *testing.T) {
	cam := core.NewCameraState()
	orbit := &orbitCamera{speed: 1, zoomSpeed: 2, home: *cam}
	var in Input

	in.set(KeyRight, true)
	orbit.apply(cam, &in, 0.5)
	assert.InDelta(t, 0.5, cam.Yaw, 1e-6)

	in.set(KeyRight, false)
	in.set(KeyEqual, true)
	dist := cam.Distance
	orbit.apply(cam, &in, 1)
	assert.InDelta(t, dist/2, cam.Distance, 1e-4, "zooming in for a second halves the distance")

	in.set(KeyEqual, false)
	in.set(KeyR, true)
	orbit.apply(cam, &in, 0)
	assert.Equal(t, orbit.home, *cam)
}
