package app

import (
	"fmt"

	"github.com/gekko3d/honeycomb/hexrt/rt/core"
	"github.com/gekko3d/honeycomb/hexrt/rt/gpu"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// App owns the WebGPU surface and draws the instanced honeycomb into it.
type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	DepthTexture *wgpu.Texture
	DepthView    *wgpu.TextureView

	Prisms   *gpu.PrismRenderPass
	Mesh     core.PrismMesh
	Camera   *core.CameraState
	Profiler *Profiler

	Color      [4]float32
	LightDir   mgl32.Vec3
	ClearColor wgpu.Color
	DebugMode  bool

	LastRenderTime float64
	FrameCount     int
	FPS            float64
	FPSTime        float64
}

func NewApp(window *glfw.Window, mesh core.PrismMesh) *App {
	return &App{
		Window:     window,
		Mesh:       mesh,
		Camera:     core.NewCameraState(),
		Profiler:   NewProfiler(),
		Color:      [4]float32{1, 1, 1, 1},
		LightDir:   mgl32.Vec3{-0.4, -0.6, 1}.Normalize(),
		ClearColor: wgpu.Color{R: 0.02, G: 0.02, B: 0.03, A: 1},
	}
}

func (a *App) Init() error {
	a.Instance = wgpu.CreateInstance(nil)

	surface := a.Instance.CreateSurface(GetSurfaceDescriptor(a.Window))
	a.Surface = surface

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	a.Queue = a.Device.GetQueue()

	width, height := a.Window.GetFramebufferSize()
	caps := surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return fmt.Errorf("surface reports no usable formats")
	}

	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, a.Device, a.Config)

	a.Prisms, err = gpu.NewPrismRenderPass(a.Device, a.Config.Format, a.Mesh)
	if err != nil {
		return fmt.Errorf("prism pass: %w", err)
	}

	if err := a.setupDepth(width, height); err != nil {
		return err
	}

	a.LastRenderTime = glfw.GetTime()
	return nil
}

func (a *App) setupDepth(w, h int) error {
	if w == 0 || h == 0 {
		return nil
	}

	if a.DepthView != nil {
		a.DepthView.Release()
	}
	if a.DepthTexture != nil {
		a.DepthTexture.Release()
	}

	var err error
	a.DepthTexture, err = a.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Tex",
		Size:          wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        gpu.DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("depth texture: %w", err)
	}
	a.DepthView, err = a.DepthTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("depth view: %w", err)
	}
	return nil
}

// Resize reconfigures the surface and depth buffer. Zero sizes (minimized) are ignored.
func (a *App) Resize(w, h int) {
	if w > 0 && h > 0 {
		a.Config.Width = uint32(w)
		a.Config.Height = uint32(h)
		a.Surface.Configure(a.Adapter, a.Device, a.Config)
		if err := a.setupDepth(w, h); err != nil {
			fmt.Printf("ERROR: Resize failed: %v\n", err)
		}
	}
}

func (a *App) Aspect() float32 {
	if a.Config == nil || a.Config.Height == 0 {
		return 1.0
	}
	return float32(a.Config.Width) / float32(a.Config.Height)
}

// Update refreshes the camera uniform and, when dirty, the instance buffer.
func (a *App) Update(instances []mgl32.Mat4, dirty bool) error {
	a.Profiler.BeginScope("Upload")
	defer a.Profiler.EndScope("Upload")

	err := a.Prisms.UpdateCamera(a.Queue, gpu.CameraUniform{
		ViewProj: a.Camera.ViewProj(a.Aspect()),
		LightDir: [4]float32{a.LightDir.X(), a.LightDir.Y(), a.LightDir.Z(), 0},
		Color:    a.Color,
	})
	if err != nil {
		return fmt.Errorf("camera upload: %w", err)
	}

	if dirty || a.Prisms.InstanceBuffer == nil {
		if err := a.Prisms.UpdateInstances(a.Queue, instances); err != nil {
			return fmt.Errorf("instance upload: %w", err)
		}
	}
	a.Profiler.SetCount("Instances", len(instances))
	return nil
}

func (a *App) Render() {
	a.Profiler.BeginScope("Draw")
	defer a.Profiler.EndScope("Draw")

	if a.DepthView == nil {
		return
	}

	nextTexture, err := a.Surface.GetCurrentTexture()
	if err != nil {
		fmt.Printf("ERROR: GetCurrentTexture failed: %v\n", err)
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		fmt.Printf("ERROR: CreateView failed: %v\n", err)
		return
	}
	defer view.Release()

	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		fmt.Printf("ERROR: CreateCommandEncoder failed: %v\n", err)
		return
	}
	defer encoder.Release()

	rPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: a.ClearColor,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            a.DepthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	a.Prisms.Draw(rPass)
	err = rPass.End()
	if err != nil {
		fmt.Printf("ERROR: Render pass End failed: %v\n", err)
	}
	rPass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		fmt.Printf("ERROR: Encoder Finish failed: %v\n", err)
		return
	}
	defer cmd.Release()

	a.Queue.Submit(cmd)
	a.Surface.Present()

	now := glfw.GetTime()
	if a.LastRenderTime > 0 {
		a.FrameCount++
		a.FPSTime += now - a.LastRenderTime
		if a.FPSTime >= 1.0 {
			a.FPS = float64(a.FrameCount) / a.FPSTime
			a.FrameCount = 0
			a.FPSTime = 0
		}
	}
	a.LastRenderTime = now
}

func (a *App) Release() {
	if a.Prisms != nil {
		a.Prisms.Release()
	}
	if a.DepthView != nil {
		a.DepthView.Release()
	}
	if a.DepthTexture != nil {
		a.DepthTexture.Release()
	}
	if a.Queue != nil {
		a.Queue.Release()
	}
	if a.Device != nil {
		a.Device.Release()
	}
	if a.Adapter != nil {
		a.Adapter.Release()
	}
	if a.Surface != nil {
		a.Surface.Release()
	}
	if a.Instance != nil {
		a.Instance.Release()
	}
}

func GetSurfaceDescriptor(w *glfw.Window) *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w)
}
