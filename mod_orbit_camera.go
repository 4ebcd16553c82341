package honeycomb

import (
	"math"

	"github.com/gekko3d/honeycomb/hexrt/rt/core"
)

// OrbitCameraModule turns the WebGPU camera around the honeycomb:
// A/D or Left/Right yaw, W/S or Up/Down pitch, +/- zoom, R resets.
type OrbitCameraModule struct {
	Speed     float32 // radians per second
	ZoomSpeed float32 // distance factor per second
}

type orbitCamera struct {
	speed     float32
	zoomSpeed float32
	home      core.CameraState
}

func (m OrbitCameraModule) Install(app *App, cmd *Commands) {
	state, ok := Resource[WgpuClientState](app)
	if !ok {
		panic("OrbitCameraModule requires WgpuClientModule to be installed first")
	}
	app.UseModules(InputModule{})

	speed, zoom := m.Speed, m.ZoomSpeed
	if speed <= 0 {
		speed = 1.0
	}
	if zoom <= 1 {
		zoom = 2.0
	}
	cmd.AddResources(&orbitCamera{speed: speed, zoomSpeed: zoom, home: *state.RtApp.Camera})
	cmd.UseSystem(System(orbitCameraSystem).InStage(Update))
}

func orbitCameraSystem(input *Input, clock *Clock, orbit *orbitCamera, state *WgpuClientState) {
	orbit.apply(state.RtApp.Camera, input, float32(clock.Dt))
}

func (o *orbitCamera) apply(cam *core.CameraState, input *Input, dt float32) {
	if input.JustPressed[KeyR] {
		*cam = o.home
		return
	}
	if dt <= 0 {
		return
	}

	yaw := input.Axis(KeyA, KeyD) + input.Axis(KeyLeft, KeyRight)
	pitch := input.Axis(KeyS, KeyW) + input.Axis(KeyDown, KeyUp)
	zoomIn := input.Axis(KeyMinus, KeyEqual) + input.Axis(KeyKPMinus, KeyKPPlus)

	zoom := float32(math.Pow(float64(o.zoomSpeed), float64(-zoomIn*dt)))
	cam.Orbit(yaw*o.speed*dt, pitch*o.speed*dt, zoom)
}
