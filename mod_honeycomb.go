package honeycomb

import (
	"fmt"
	"image/color"
	"time"

	rtapp "github.com/gekko3d/honeycomb/hexrt/rt/app"
	"github.com/gekko3d/honeycomb/hexrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Honeycomb is the animated tiling: the cell layout, the per-cell instance
// state and the animator writing into it once per frame.
type Honeycomb struct {
	Rings    int
	Cells    []core.Cell
	Store    *core.InstanceStore
	Animator *core.BreathingAnimator
	Profiler *rtapp.Profiler

	Mesh     Mesh
	Material Material
	extent   float32
}

// NewHoneycomb lays out rings around the center and seeds one phase per cell from src.
func NewHoneycomb(rings int, opts core.LayoutOptions, src core.PhaseSource) (*Honeycomb, error) {
	cells, err := core.Layout(rings, opts)
	if err != nil {
		return nil, fmt.Errorf("honeycomb with %d rings: %w", rings, err)
	}
	positions := core.Positions(cells)

	var extent float32
	for _, p := range positions {
		extent = max(extent, p.Len())
	}

	return &Honeycomb{
		Rings:    rings,
		Cells:    cells,
		Store:    core.NewInstanceStore(positions, src),
		Animator: core.NewBreathingAnimator(),
		Profiler: rtapp.NewProfiler(),
		extent:   extent,
	}, nil
}

// Extent is the distance from the origin to the farthest cell center.
func (h *Honeycomb) Extent() float32 {
	return h.extent
}

// Tick animates every cell to elapsedSeconds.
func (h *Honeycomb) Tick(elapsedSeconds float64) {
	defer h.Profiler.Scope("Animate")()
	h.Animator.Tick(elapsedSeconds, h.Store)
	h.Profiler.SetCount("Instances", h.Store.Len())
}

// HoneycombModule installs a *Honeycomb resource and animates it in Update.
// A zero value is not usable; start from DefaultHoneycombModule or Config.HoneycombModule.
type HoneycombModule struct {
	Rings          int
	Layout         core.LayoutOptions
	Amplitude      float64
	Workers        int
	Seed           int64 // 0 seeds from the wall clock
	PrismRadius    float64
	PrismThickness float64
	Color          color.RGBA

	// Source overrides Seed when set.
	Source core.PhaseSource
	// StatsEvery logs depth and timing stats every that many frames in debug mode.
	StatsEvery int
}

func DefaultHoneycombModule() HoneycombModule {
	return DefaultConfig().HoneycombModule()
}

func (m HoneycombModule) Install(app *App, cmd *Commands) {
	log := app.Logger()

	src := m.Source
	if src == nil {
		seed := m.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		log.Debugf("Phase seed %d", seed)
		src = core.NewPhaseSource(seed)
	}

	h, err := NewHoneycomb(m.Rings, m.Layout, src)
	if err != nil {
		log.Errorf("Honeycomb setup failed: %v", err)
		panic(err)
	}
	h.Animator.Amplitude = m.Amplitude
	h.Animator.Workers = m.Workers

	assets := ensureAssetServer(app)
	h.Mesh = assets.LoadMesh(core.NewHexPrism(float32(m.PrismRadius), float32(m.PrismThickness)))
	h.Material = assets.CreateMaterial(m.Color)

	if !app.hasResource(typeOfClock) {
		TimeModule{}.Install(app, cmd)
	}

	cmd.AddResources(h, &honeycombStats{every: m.StatsEvery})
	cmd.UseSystem(System(honeycombAnimateSystem).InStage(Update))
	cmd.UseSystem(System(honeycombStatsSystem).InStage(PostRender))

	log.Infof("Honeycomb: %d rings, %d cells", h.Rings, h.Store.Len())
}

var typeOfClock = typeOf[Clock]()

func honeycombAnimateSystem(clock *Clock, h *Honeycomb) {
	h.Tick(clock.Elapsed)
}

type honeycombStats struct {
	every int
}

func honeycombStatsSystem(cmd *Commands, clock *Clock, h *Honeycomb, stats *honeycombStats) {
	log := cmd.Logger()
	if stats.every <= 0 || !log.DebugEnabled() || clock.Frame%uint64(stats.every) != 0 {
		return
	}
	lo, hi := h.Store.DepthRange()
	fps := ""
	if state, ok := Resource[WgpuClientState](cmd.app); ok {
		fps = fmt.Sprintf(" fps %.1f", state.FPS())
	}
	log.Debugf("frame %d t=%.3fs depth [%.4f, %.4f]%s\n%s", clock.Frame, clock.Elapsed, lo, hi, fps, h.Profiler.GetStatsString())
}

// Matrices returns the packed instance matrices renderers upload.
func (h *Honeycomb) Matrices() []mgl32.Mat4 {
	return h.Store.Buffer()
}
