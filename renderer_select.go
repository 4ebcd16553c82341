package honeycomb

// RendererName identifies a concrete renderer module.
type RendererName string

const (
	RendererWGPU     RendererName = "wgpu"
	RendererTerminal RendererName = "terminal"
)

// UseRenderer installs exactly one renderer module, enforcing exclusivity via ensureSingleRenderer.
// Usage:
//
//	app.UseRenderer(RendererTerminal, TerminalModule{FPS: 30})
func (app *App) UseRenderer(name RendererName, mod Module) *App {
	ensureSingleRenderer(app, name)
	app.Logger().Infof("Renderer selected: %s", name)
	app.UseModules(mod)
	return app
}

// UseWGPU selects the WebGPU renderer on a shared window with the given parameters.
func (app *App) UseWGPU(width, height int, title string) *App {
	return app.UseRenderer(RendererWGPU, WgpuClientModule{
		WindowWidth:  width,
		WindowHeight: height,
		WindowTitle:  title,
	})
}

// UseTerminal selects the terminal renderer on the controlling terminal.
func (app *App) UseTerminal(fps int) *App {
	return app.UseRenderer(RendererTerminal, TerminalModule{FPS: fps})
}
