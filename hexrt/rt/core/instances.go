package core

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// PhaseSource is the random stream phases are drawn from. *rand.Rand satisfies it.
type PhaseSource interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
}

// NewPhaseSource returns a deterministic source for the given seed.
func NewPhaseSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// InstanceStore owns the per-cell transform state of a honeycomb.
// bases, phases, transforms and the packed matrix buffer are indexed identically
// and their length never changes after construction.
type InstanceStore struct {
	bases      []mgl32.Vec3
	phases     []float64
	transforms []Transform
	matrices   []mgl32.Mat4
	dirty      bool
}

// NewInstanceStore allocates one slot per position with a translation-only
// transform and a phase drawn uniformly from [0, 2π), in slot order.
// A nil src draws from NewPhaseSource(1).
func NewInstanceStore(positions []mgl32.Vec3, src PhaseSource) *InstanceStore {
	if src == nil {
		src = NewPhaseSource(1)
	}
	n := len(positions)
	s := &InstanceStore{
		bases:      make([]mgl32.Vec3, n),
		phases:     make([]float64, n),
		transforms: make([]Transform, n),
		matrices:   make([]mgl32.Mat4, n),
		dirty:      true,
	}
	for i, p := range positions {
		base := mgl32.Vec3{p.X(), p.Y(), p.Z()}
		s.bases[i] = base
		s.phases[i] = drawPhase(src)
		s.transforms[i] = TranslationTransform(base)
		s.matrices[i] = s.transforms[i].ObjectToWorld()
	}
	return s
}

func drawPhase(src PhaseSource) float64 {
	phase := src.Float64() * 2 * math.Pi
	// Float64 is < 1, but the product can still round up to exactly 2π.
	if phase >= 2*math.Pi {
		phase = 0
	}
	return phase
}

func (s *InstanceStore) Len() int {
	return len(s.transforms)
}

func (s *InstanceStore) check(index int) error {
	if index < 0 || index >= len(s.transforms) {
		return fmt.Errorf("%w: instance %d not in [0, %d)", ErrIndexOutOfRange, index, len(s.transforms))
	}
	return nil
}

func (s *InstanceStore) Transform(index int) (Transform, error) {
	if err := s.check(index); err != nil {
		return Transform{}, err
	}
	return s.transforms[index], nil
}

// SetTransform replaces the transform of a slot and refreshes its packed matrix.
// The slot's phase and base position are not affected.
func (s *InstanceStore) SetTransform(index int, t Transform) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.transforms[index] = t
	s.matrices[index] = t.ObjectToWorld()
	s.dirty = true
	return nil
}

// SetMatrix decomposes m into position, rotation and scale and stores it.
func (s *InstanceStore) SetMatrix(index int, m mgl32.Mat4) error {
	return s.SetTransform(index, DecomposeTransform(m))
}

func (s *InstanceStore) Matrix(index int) (mgl32.Mat4, error) {
	if err := s.check(index); err != nil {
		return mgl32.Mat4{}, err
	}
	return s.matrices[index], nil
}

func (s *InstanceStore) Phase(index int) (float64, error) {
	if err := s.check(index); err != nil {
		return 0, err
	}
	return s.phases[index], nil
}

// Base returns the undisturbed layout position of a slot.
func (s *InstanceStore) Base(index int) (mgl32.Vec3, error) {
	if err := s.check(index); err != nil {
		return mgl32.Vec3{}, err
	}
	return s.bases[index], nil
}

// Buffer returns the packed, render-ready instance matrices.
// Callers must not append to or reslice the returned slice.
func (s *InstanceStore) Buffer() []mgl32.Mat4 {
	return s.matrices
}

// Dirty reports whether any slot was written since the last ClearDirty.
func (s *InstanceStore) Dirty() bool {
	return s.dirty
}

func (s *InstanceStore) ClearDirty() {
	s.dirty = false
}

// DepthRange returns the min and max z over all slots.
func (s *InstanceStore) DepthRange() (min, max float32) {
	if len(s.transforms) == 0 {
		return 0, 0
	}
	min = s.transforms[0].Position.Z()
	max = min
	for _, t := range s.transforms[1:] {
		z := t.Position.Z()
		if z < min {
			min = z
		}
		if z > max {
			max = z
		}
	}
	return min, max
}
