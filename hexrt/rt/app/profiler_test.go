package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func TestProfiler_Scopes(t *testing.T) {
	p := NewProfiler()
	clk := &stepClock{t: time.Unix(0, 0), step: 2 * time.Millisecond}
	p.now = clk.now

	end := p.Scope("Animate")
	end()
	p.BeginScope("Draw")
	p.EndScope("Draw")
	p.BeginScope("Animate")
	p.EndScope("Animate")

	assert.Equal(t, []string{"Animate", "Draw"}, p.Order)
	assert.Equal(t, 2*time.Millisecond, p.Last["Animate"])
	assert.Equal(t, 2*time.Millisecond, p.Average["Animate"])
}

func TestProfiler_EndWithoutBegin(t *testing.T) {
	p := NewProfiler()
	p.EndScope("Upload")
	assert.Empty(t, p.Last)
	assert.Empty(t, p.Order)
}

func TestProfiler_AverageSmooths(t *testing.T) {
	p := NewProfiler()
	clk := &stepClock{t: time.Unix(0, 0), step: 10 * time.Millisecond}
	p.now = clk.now

	p.BeginScope("Draw")
	p.EndScope("Draw")
	clk.step = 0
	p.BeginScope("Draw")
	p.EndScope("Draw")

	assert.Equal(t, time.Duration(0), p.Last["Draw"])
	assert.Equal(t, 9*time.Millisecond, p.Average["Draw"])
}

func TestProfiler_GetStatsString(t *testing.T) {
	p := NewProfiler()
	p.BeginScope("Animate")
	p.EndScope("Animate")
	p.SetCount("Instances", 331)
	p.SetCount("Frames", 2)

	s := p.GetStatsString()
	require.Contains(t, s, "Animate")
	assert.Contains(t, s, "Instances : 331")
	assert.Less(t, strings.Index(s, "Frames"), strings.Index(s, "Instances"))

	p.Reset()
	assert.Zero(t, p.Last["Animate"])
}
