package honeycomb

// PlatformWindowModule ensures a single shared GLFW window (WindowState) is created
// and made available as a resource for the renderer.
// Install is idempotent: if a WindowState resource already exists, it is reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// If Width/Height are zero, sensible defaults are used.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	width, height, title = windowDefaults(width, height, title)
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	ensureWindowResource(app, m.Width, m.Height, m.Title)
}

func windowDefaults(width, height int, title string) (int, int, string) {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Honeycomb"
	}
	return width, height, title
}

// ensureWindowResource guarantees a single shared WindowState resource exists,
// pumps its events in PreUpdate and destroys it on shutdown.
func ensureWindowResource(app *App, width, height int, title string) *WindowState {
	if ws, ok := Resource[WindowState](app); ok {
		return ws
	}
	width, height, title = windowDefaults(width, height, title)

	ws, err := createWindowState(width, height, title)
	if err != nil {
		app.Logger().Errorf("Window setup failed: %v", err)
		panic(err)
	}
	app.addResources(ws)
	app.UseSystem(System(windowEventsSystem).InStage(PreUpdate))
	app.onShutdown(ws.destroy)
	app.Logger().Infof("Created shared window (%dx%d) '%s'", width, height, title)
	return ws
}
