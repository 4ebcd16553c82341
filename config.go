package honeycomb

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gekko3d/honeycomb/hexrt/rt/core"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"
)

const (
	RendererNone RendererName = "none"

	DefaultRings = 10
	DefaultColor = "goldenrod"
)

type PrismConfig struct {
	Radius    float64 `toml:"radius"`
	Thickness float64 `toml:"thickness"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Config is the file and flag configuration of the honeycomb program.
type Config struct {
	Rings             int     `toml:"rings"`
	Gap               float64 `toml:"gap"`
	OrientationOffset float64 `toml:"orientation_offset"`
	Amplitude         float64 `toml:"amplitude"`
	Workers           int     `toml:"workers"`
	// Seed for the phase generator; 0 seeds from the wall clock.
	Seed  int64  `toml:"seed"`
	Color string `toml:"color"`

	Prism  PrismConfig  `toml:"prism"`
	Window WindowConfig `toml:"window"`

	Renderer RendererName `toml:"renderer"`
	// Frames stops the program after that many frames; 0 runs until closed.
	Frames int `toml:"frames"`
	// FixedStep advances the clock by a fixed number of seconds per frame.
	FixedStep float64 `toml:"fixed_step"`
	// TerminalFPS caps the terminal renderer, which has no vsync.
	TerminalFPS int  `toml:"terminal_fps"`
	Debug       bool `toml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Rings:             DefaultRings,
		Gap:               core.DefaultGap,
		OrientationOffset: core.DefaultOrientationOffset,
		Amplitude:         core.DefaultAmplitude,
		Workers:           1,
		Color:             DefaultColor,
		Prism: PrismConfig{
			Radius:    core.DefaultPrismRadius,
			Thickness: core.DefaultPrismThickness,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Honeycomb",
		},
		Renderer:    RendererWGPU,
		TerminalFPS: 30,
	}
}

// LoadConfig reads a TOML file over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML over DefaultConfig. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	// A ring count of 2.5 must fail as an invalid argument, not as a type mismatch.
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if v, ok := raw["rings"]; ok {
		if _, isInt := v.(int64); !isInt {
			return Config{}, fmt.Errorf("rings = %v must be an integer: %w", v, ErrInvalidArgument)
		}
	}

	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown config keys:\n%s", strict.String())
		}
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...))
		}
	}

	check(c.Rings >= 0, "rings = %d must not be negative", c.Rings)
	check(finite(c.Gap) && c.Gap > 0, "gap = %v must be positive", c.Gap)
	check(finite(c.OrientationOffset), "orientation_offset = %v must be finite", c.OrientationOffset)
	check(finite(c.Amplitude) && c.Amplitude >= 0, "amplitude = %v must not be negative", c.Amplitude)
	check(c.Workers >= 0, "workers = %d must not be negative", c.Workers)
	check(finite(c.Prism.Radius) && c.Prism.Radius > 0, "prism.radius = %v must be positive", c.Prism.Radius)
	check(finite(c.Prism.Thickness) && c.Prism.Thickness > 0, "prism.thickness = %v must be positive", c.Prism.Thickness)
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Frames >= 0, "frames = %d must not be negative", c.Frames)
	check(finite(c.FixedStep) && c.FixedStep >= 0, "fixed_step = %v must not be negative", c.FixedStep)
	check(c.TerminalFPS > 0, "terminal_fps = %d must be positive", c.TerminalFPS)

	switch c.Renderer {
	case RendererWGPU, RendererTerminal, RendererNone:
	default:
		errs = append(errs, fmt.Errorf("renderer %q is not one of wgpu, terminal, none: %w", c.Renderer, ErrInvalidArgument))
	}

	if _, err := ParseColor(c.Color); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (c Config) LayoutOptions() core.LayoutOptions {
	return core.LayoutOptions{
		Gap:               c.Gap,
		OrientationOffset: c.OrientationOffset,
	}
}

func (c Config) FixedStepDuration() time.Duration {
	return time.Duration(c.FixedStep * float64(time.Second))
}

// HoneycombModule builds the module described by c. c must be valid.
func (c Config) HoneycombModule() HoneycombModule {
	col, _ := ParseColor(c.Color)
	return HoneycombModule{
		Rings:          c.Rings,
		Layout:         c.LayoutOptions(),
		Amplitude:      c.Amplitude,
		Workers:        c.Workers,
		Seed:           c.Seed,
		PrismRadius:    c.Prism.Radius,
		PrismThickness: c.Prism.Thickness,
		Color:          col,
	}
}

// ParseColor accepts an SVG colour name or #rrggbb.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 6 {
			if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
				return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
			}
		}
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb: %w", s, ErrInvalidArgument)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q: %w", s, ErrInvalidArgument)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
