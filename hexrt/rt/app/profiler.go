package app

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// smoothing factor for the rolling scope averages
const profilerAlpha = 0.1

// Profiler records per-frame CPU timings for named scopes and a set of counters.
// It is not safe for concurrent use; scopes are opened from the frame loop only.
type Profiler struct {
	Last    map[string]time.Duration
	Average map[string]time.Duration
	Counts  map[string]int
	Order   []string

	started map[string]time.Time
	now     func() time.Time
}

func NewProfiler() *Profiler {
	return &Profiler{
		Last:    make(map[string]time.Duration),
		Average: make(map[string]time.Duration),
		Counts:  make(map[string]int),
		started: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (p *Profiler) BeginScope(name string) {
	if _, seen := p.Average[name]; !seen {
		p.Order = append(p.Order, name)
		p.Average[name] = 0
	}
	p.started[name] = p.now()
}

func (p *Profiler) EndScope(name string) {
	start, ok := p.started[name]
	if !ok {
		return
	}
	delete(p.started, name)

	d := p.now().Sub(start)
	p.Last[name] = d
	if avg := p.Average[name]; avg == 0 {
		p.Average[name] = d
	} else {
		p.Average[name] = avg + time.Duration(profilerAlpha*float64(d-avg))
	}
}

// Scope opens name and returns the matching close, for use with defer.
func (p *Profiler) Scope(name string) func() {
	p.BeginScope(name)
	return func() { p.EndScope(name) }
}

func (p *Profiler) SetCount(name string, count int) {
	p.Counts[name] = count
}

func (p *Profiler) Reset() {
	for k := range p.Last {
		p.Last[k] = 0
	}
	for k := range p.Average {
		p.Average[k] = 0
	}
}

func (p *Profiler) GetStatsString() string {
	var sb strings.Builder

	sb.WriteString("Timings (CPU, last / avg):\n")
	for _, name := range p.Order {
		last := float64(p.Last[name].Microseconds()) / 1000.0
		avg := float64(p.Average[name].Microseconds()) / 1000.0
		sb.WriteString(fmt.Sprintf("  %-10s: %.2f / %.2f ms\n", name, last, avg))
	}

	keys := make([]string, 0, len(p.Counts))
	for k := range p.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteString("Stats:\n")
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %-10s: %d\n", k, p.Counts[k]))
	}

	return sb.String()
}
