package core

import (
	"math"
	"sync"
)

const DefaultAmplitude = 0.1

// BreathingAnimator oscillates each cell's depth around its base plane.
type BreathingAnimator struct {
	Amplitude float64
	// Workers > 1 splits the slots into contiguous chunks updated concurrently.
	Workers int
}

func NewBreathingAnimator() *BreathingAnimator {
	return &BreathingAnimator{
		Amplitude: DefaultAmplitude,
		Workers:   1,
	}
}

// Depth is the z offset of a cell with the given phase at time t.
func (a *BreathingAnimator) Depth(phase, elapsedSeconds float64) float32 {
	return float32(math.Sin(phase+elapsedSeconds) * a.Amplitude)
}

// Tick sets position.z = sin(phase + elapsedSeconds) * Amplitude on every slot,
// preserving x, y, rotation and scale. The result depends only on elapsedSeconds.
func (a *BreathingAnimator) Tick(elapsedSeconds float64, store *InstanceStore) {
	n := store.Len()
	workers := a.Workers
	if n > 0 {
		store.dirty = true
	}
	if workers <= 1 || n < 2*workers {
		a.tickRange(elapsedSeconds, store, 0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			a.tickRange(elapsedSeconds, store, start, end)
		}(start, end)
	}
	wg.Wait()
}

// tickRange touches only slots in [start, end), so disjoint ranges never race.
func (a *BreathingAnimator) tickRange(elapsedSeconds float64, store *InstanceStore, start, end int) {
	for i := start; i < end; i++ {
		t := store.transforms[i]
		t.Position[2] = a.Depth(store.phases[i], elapsedSeconds)
		store.transforms[i] = t
		store.matrices[i] = t.ObjectToWorld()
	}
}
