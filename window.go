package honeycomb

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the shared GLFW window. Framebuffer size changes are
// recorded by the resize callback and consumed by the renderer.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	FramebufferWidth  int
	FramebufferHeight int
	resized           bool
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // WebGPU draws, not OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	ws := &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
	ws.FramebufferWidth, ws.FramebufferHeight = win.GetFramebufferSize()

	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		ws.FramebufferWidth = width
		ws.FramebufferHeight = height
		ws.resized = true
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	win.SetSizeCallback(func(w *glfw.Window, width, height int) {
		ws.WindowWidth = width
		ws.WindowHeight = height
	})

	return ws, nil
}

func (ws *WindowState) Window() *glfw.Window {
	return ws.windowGlfw
}

// TakeResize reports a pending framebuffer resize and clears it.
func (ws *WindowState) TakeResize() (width, height int, ok bool) {
	if !ws.resized {
		return 0, 0, false
	}
	ws.resized = false
	return ws.FramebufferWidth, ws.FramebufferHeight, true
}

func (ws *WindowState) destroy() {
	ws.windowGlfw.Destroy()
	glfw.Terminate()
}

// windowEventsSystem pumps GLFW events and stops the App when the window is closed.
func windowEventsSystem(cmd *Commands, ws *WindowState) {
	glfw.PollEvents()
	if ws.windowGlfw.ShouldClose() {
		cmd.Logger().Infof("Window closed")
		cmd.Exit()
	}
}
