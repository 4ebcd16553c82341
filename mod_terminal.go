package honeycomb

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
)

// depth ramp from the lowest to the highest cell
var terminalGlyphs = []rune(".:-=+*#%@")

// TerminalModule draws a top-down view of the Honeycomb into a terminal,
// one character per cell shaded by its current depth. HoneycombModule must be
// installed first. Esc, Ctrl-C or q stops the App.
type TerminalModule struct {
	// FPS caps the frame rate; 0 draws as fast as the App steps.
	FPS int
	// Screen replaces the controlling terminal, e.g. with tcell.NewSimulationScreen.
	// It is initialized by Install.
	Screen tcell.Screen
}

type TerminalState struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}

	frameInterval time.Duration
	lastFrame     time.Time
	color         color.RGBA
}

func (mod TerminalModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, RendererTerminal)
	log := app.Logger()

	h, ok := Resource[Honeycomb](app)
	if !ok {
		panic("TerminalModule requires HoneycombModule to be installed first")
	}
	material, err := ensureAssetServer(app).GetMaterial(h.Material)
	if err != nil {
		panic(err)
	}

	screen := mod.Screen
	if screen == nil {
		screen, err = tcell.NewScreen()
		if err != nil {
			log.Errorf("Terminal setup failed: %v", err)
			panic(fmt.Errorf("terminal renderer: %w", err))
		}
	}
	if err := screen.Init(); err != nil {
		log.Errorf("Terminal init failed: %v", err)
		panic(fmt.Errorf("terminal renderer: %w", err))
	}
	screen.HideCursor()
	screen.Clear()

	state := &TerminalState{
		screen: screen,
		events: make(chan tcell.Event, 100),
		quit:   make(chan struct{}),
		color:  material.Color,
	}
	if mod.FPS > 0 {
		state.frameInterval = time.Second / time.Duration(mod.FPS)
	}
	go state.pollEvents()
	app.onShutdown(state.close)

	cmd.AddResources(state)
	cmd.UseSystem(System(terminalEventsSystem).InStage(PreUpdate))
	cmd.UseSystem(System(terminalRenderSystem).InStage(Render))
}

// pollEvents forwards screen events until the screen is finalized.
func (s *TerminalState) pollEvents() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.quit:
			return
		}
	}
}

func (s *TerminalState) close() {
	close(s.quit)
	s.screen.Fini()
}

func terminalEventsSystem(cmd *Commands, state *TerminalState) {
	for {
		select {
		case ev := <-state.events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				state.screen.Sync()
			case *tcell.EventKey:
				if isQuitKey(ev) {
					cmd.Exit()
				}
			}
		default:
			return
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func terminalRenderSystem(h *Honeycomb, state *TerminalState) {
	defer h.Profiler.Scope("Draw")()

	if state.frameInterval > 0 {
		if wait := state.frameInterval - time.Since(state.lastFrame); wait > 0 {
			time.Sleep(wait)
		}
		state.lastFrame = time.Now()
	}
	state.draw(h)
}

// draw projects every cell onto the XY plane. Terminal cells are about twice
// as tall as wide, so x is scaled twice as much as y.
func (s *TerminalState) draw(h *Honeycomb) {
	s.screen.Clear()
	w, ht := s.screen.Size()
	if w <= 0 || ht <= 1 {
		return
	}
	rows := ht - 1 // last row is the status line

	extent := float64(h.Extent()) + 0.5
	sy := math.Min(float64(rows-1)/2/extent, float64(w-1)/4/extent)
	sx := 2 * sy
	cx, cy := float64(w)/2, float64(rows)/2

	amp := h.Animator.Amplitude
	for _, m := range h.Matrices() {
		p := m.Col(3)
		col := int(math.Round(cx + float64(p.X())*sx))
		row := int(math.Round(cy - float64(p.Y())*sy))
		if col < 0 || col >= w || row < 0 || row >= rows {
			continue
		}

		k := 0.5
		if amp > 0 {
			k = 0.5 + 0.5*float64(p.Z())/amp
		}
		k = math.Max(0, math.Min(1, k))

		glyph := terminalGlyphs[int(math.Round(k*float64(len(terminalGlyphs)-1)))]
		s.screen.SetContent(col, row, glyph, nil, tcell.StyleDefault.Foreground(s.shade(k)))
	}

	status := fmt.Sprintf(" %d rings  %d cells  q quits", h.Rings, h.Store.Len())
	for i, r := range status {
		if i >= w {
			break
		}
		s.screen.SetContent(i, ht-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	s.screen.Show()
}

func (s *TerminalState) shade(k float64) tcell.Color {
	f := 0.35 + 0.65*k
	return tcell.NewRGBColor(
		int32(float64(s.color.R)*f),
		int32(float64(s.color.G)*f),
		int32(float64(s.color.B)*f),
	)
}
