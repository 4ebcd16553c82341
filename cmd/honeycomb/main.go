package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gekko3d/honeycomb"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML config file")
	renderer := flag.String("renderer", string(honeycomb.RendererWGPU), "renderer: wgpu, terminal or none")
	rings := flag.Int("rings", honeycomb.DefaultRings, "number of rings around the center cell")
	seed := flag.Int64("seed", 0, "phase seed, 0 for a random one")
	frames := flag.Int("frames", 0, "stop after this many frames, 0 runs until closed")
	fixedStep := flag.Float64("fixed-step", 0, "advance the clock by this many seconds per frame")
	debug := flag.Bool("debug", false, "debug logging and periodic frame stats")
	flag.Parse()

	cfg := honeycomb.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = honeycomb.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	// Only flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "renderer":
			cfg.Renderer = honeycomb.RendererName(*renderer)
		case "rings":
			cfg.Rings = *rings
		case "seed":
			cfg.Seed = *seed
		case "frames":
			cfg.Frames = *frames
		case "fixed-step":
			cfg.FixedStep = *fixedStep
		case "debug":
			cfg.Debug = *debug
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	app := honeycomb.NewApp()
	app.MaxFrames = cfg.Frames
	app.UseModules(
		honeycomb.LoggingModule{Prefix: "honeycomb", Debug: cfg.Debug},
		honeycomb.TimeModule{Fixed: cfg.FixedStepDuration()},
	)

	hm := cfg.HoneycombModule()
	if cfg.Debug {
		hm.StatsEvery = 60
	}
	app.UseModules(hm)

	switch cfg.Renderer {
	case honeycomb.RendererWGPU:
		app.UseModules(honeycomb.NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title))
		app.UseRenderer(honeycomb.RendererWGPU, honeycomb.WgpuClientModule{
			WindowWidth:  cfg.Window.Width,
			WindowHeight: cfg.Window.Height,
			WindowTitle:  cfg.Window.Title,
			DebugMode:    cfg.Debug,
		})
	case honeycomb.RendererTerminal:
		app.UseTerminal(cfg.TerminalFPS)
	case honeycomb.RendererNone:
		if cfg.Frames == 0 {
			app.Logger().Warnf("No renderer and no frame limit; stop with Ctrl-C")
		}
	}

	app.Run()

	if h, ok := honeycomb.Resource[honeycomb.Honeycomb](app); ok {
		lo, hi := h.Store.DepthRange()
		app.Logger().Infof("%d cells, final depth range [%.4f, %.4f]", h.Store.Len(), lo, hi)
	}
}
