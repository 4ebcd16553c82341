package honeycomb

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Key int

const (
	KeyA Key = iota
	KeyD
	KeyS
	KeyW
	KeyR
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	keyCount
)

var keyToGlfw = [keyCount]glfw.Key{
	KeyA:       glfw.KeyA,
	KeyD:       glfw.KeyD,
	KeyS:       glfw.KeyS,
	KeyW:       glfw.KeyW,
	KeyR:       glfw.KeyR,
	KeyLeft:    glfw.KeyLeft,
	KeyRight:   glfw.KeyRight,
	KeyUp:      glfw.KeyUp,
	KeyDown:    glfw.KeyDown,
	KeyMinus:   glfw.KeyMinus,
	KeyEqual:   glfw.KeyEqual,
	KeyKPPlus:  glfw.KeyKPAdd,
	KeyKPMinus: glfw.KeyKPSubtract,
}

// Input is the keyboard state of the shared window, sampled once per frame.
type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool
}

// set records the state of key for this frame.
func (in *Input) set(key Key, down bool) {
	in.JustPressed[key] = down && !in.Pressed[key]
	in.JustReleased[key] = !down && in.Pressed[key]
	in.Pressed[key] = down
}

// Axis is +1 while only pos is held, -1 while only neg is held, else 0.
func (in *Input) Axis(neg, pos Key) float32 {
	var v float32
	if in.Pressed[pos] {
		v++
	}
	if in.Pressed[neg] {
		v--
	}
	return v
}

// InputModule samples the shared window's keyboard after events are pumped.
type InputModule struct{}

func (mod InputModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[Input](app); ok {
		return
	}
	ensureWindowResource(app, 0, 0, "")
	cmd.AddResources(&Input{})
	cmd.UseSystem(System(inputSystem).InStage(PreUpdate))
}

func inputSystem(ws *WindowState, input *Input) {
	for key, glfwKey := range keyToGlfw {
		input.set(Key(key), ws.windowGlfw.GetKey(glfwKey) != glfw.Release)
	}
}
