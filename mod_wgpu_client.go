package honeycomb

import (
	"fmt"

	rtapp "github.com/gekko3d/honeycomb/hexrt/rt/app"
)

// WgpuClientModule draws the Honeycomb into a GLFW window with WebGPU.
// HoneycombModule must be installed first.
type WgpuClientModule struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string
	DebugMode    bool
}

type WgpuClientState struct {
	RtApp *rtapp.App
}

func (s *WgpuClientState) FPS() float64 {
	if s == nil || s.RtApp == nil {
		return 0
	}
	return s.RtApp.FPS
}

func (mod WgpuClientModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, RendererWGPU)

	h, ok := Resource[Honeycomb](app)
	if !ok {
		panic("WgpuClientModule requires HoneycombModule to be installed first")
	}
	assets := ensureAssetServer(app)
	mesh, err := assets.GetMesh(h.Mesh)
	if err != nil {
		panic(err)
	}
	material, err := assets.GetMaterial(h.Material)
	if err != nil {
		panic(err)
	}

	ws := ensureWindowResource(app, mod.WindowWidth, mod.WindowHeight, mod.WindowTitle)

	rt := rtapp.NewApp(ws.Window(), mesh.Prism)
	rt.Profiler = h.Profiler
	rt.Color = material.Vec4()
	rt.DebugMode = mod.DebugMode
	if err := rt.Init(); err != nil {
		rt.Release()
		app.Logger().Errorf("WebGPU init failed: %v", err)
		panic(fmt.Errorf("wgpu renderer: %w", err))
	}
	rt.Camera.Frame(h.Extent() + mesh.Prism.Radius())
	app.onShutdown(rt.Release)

	cmd.AddResources(&WgpuClientState{RtApp: rt})
	cmd.UseSystem(System(wgpuResizeSystem).InStage(PreRender))
	cmd.UseSystem(System(wgpuRenderSystem).InStage(Render))

	app.UseModules(OrbitCameraModule{})
}

func wgpuResizeSystem(cmd *Commands, ws *WindowState, state *WgpuClientState) {
	if w, h, ok := ws.TakeResize(); ok {
		cmd.Logger().Debugf("Framebuffer resized to %dx%d", w, h)
		state.RtApp.Resize(w, h)
	}
}

// wgpuRenderSystem uploads the instance buffer when the animator has written to it, then draws.
func wgpuRenderSystem(cmd *Commands, h *Honeycomb, state *WgpuClientState) {
	if err := state.RtApp.Update(h.Matrices(), h.Store.Dirty()); err != nil {
		cmd.Logger().Errorf("Frame %d skipped: %v", cmd.Frame(), err)
		return
	}
	h.Store.ClearDirty()
	state.RtApp.Render()
}
