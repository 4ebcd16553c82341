package honeycomb

import (
	"time"
)

// Clock is the monotonic frame clock. Elapsed never decreases and is reset
// only by creating a new Clock.
type Clock struct {
	Start   time.Time
	Now     time.Time
	Elapsed float64 // seconds since the first frame
	Dt      float64 // seconds since the previous frame
	Frame   uint64

	fixed   time.Duration
	started bool
}

// NewClock returns a clock that follows wall time, or advances by fixed per
// frame when fixed > 0.
func NewClock(fixed time.Duration) *Clock {
	return &Clock{fixed: fixed}
}

// Advance moves the clock to now. The first call starts it at zero.
func (c *Clock) Advance(now time.Time) {
	if !c.started {
		c.started = true
		c.Start = now
		c.Now = now
		c.Elapsed = 0
		c.Dt = 0
		return
	}

	c.Frame++
	if c.fixed > 0 {
		c.Now = c.Now.Add(c.fixed)
		c.Dt = c.fixed.Seconds()
		c.Elapsed = float64(c.Frame) * c.Dt
		return
	}

	dt := now.Sub(c.Now)
	if dt < 0 {
		dt = 0
	}
	c.Now = c.Now.Add(dt)
	c.Dt = dt.Seconds()
	c.Elapsed = c.Now.Sub(c.Start).Seconds()
}

// TimeModule installs the Clock and advances it at the start of every frame.
// Installed after a module that already added a default clock, it only
// replaces that clock's step.
type TimeModule struct {
	Fixed time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	if clock, ok := Resource[Clock](app); ok {
		clock.fixed = mod.Fixed
		return
	}
	cmd.AddResources(NewClock(mod.Fixed))
	cmd.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(clock *Clock) {
	clock.Advance(time.Now())
}
