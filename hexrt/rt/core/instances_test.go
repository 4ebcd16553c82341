package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, rings int, seed int64) *InstanceStore {
	t.Helper()
	positions, err := LayoutPositions(rings)
	require.NoError(t, err)
	return NewInstanceStore(positions, NewPhaseSource(seed))
}

func TestInstanceStore_Initialize(t *testing.T) {
	positions, err := LayoutPositions(10)
	require.NoError(t, err)

	store := NewInstanceStore(positions, NewPhaseSource(1))
	require.Equal(t, 331, store.Len())
	require.Len(t, store.Buffer(), 331)

	for i, p := range positions {
		tr, err := store.Transform(i)
		require.NoError(t, err)
		assert.Equal(t, p, tr.Position)
		assert.Equal(t, mgl32.QuatIdent(), tr.Rotation)
		assert.Equal(t, mgl32.Vec3{1, 1, 1}, tr.Scale)

		m, err := store.Matrix(i)
		require.NoError(t, err)
		assert.Equal(t, mgl32.Translate3D(p.X(), p.Y(), p.Z()), m)

		base, err := store.Base(i)
		require.NoError(t, err)
		assert.Equal(t, p, base)

		phase, err := store.Phase(i)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, phase, 0.0)
		assert.Less(t, phase, 2*math.Pi)
	}
	assert.True(t, store.Dirty())
}

func TestInstanceStore_NilSourceUsesDefaultSeed(t *testing.T) {
	positions, err := LayoutPositions(2)
	require.NoError(t, err)

	var store *InstanceStore
	require.NotPanics(t, func() { store = NewInstanceStore(positions, nil) })
	ref := NewInstanceStore(positions, NewPhaseSource(1))
	for i := 0; i < store.Len(); i++ {
		got, _ := store.Phase(i)
		want, _ := ref.Phase(i)
		assert.Equal(t, want, got)
	}
}

func TestInstanceStore_SeededPhases(t *testing.T) {
	positions, err := LayoutPositions(3)
	require.NoError(t, err)

	store := NewInstanceStore(positions, NewPhaseSource(42))
	again := NewInstanceStore(positions, NewPhaseSource(42))
	other := NewInstanceStore(positions, NewPhaseSource(43))

	ref := NewPhaseSource(42)
	differs := false
	for i := 0; i < store.Len(); i++ {
		a, _ := store.Phase(i)
		b, _ := again.Phase(i)
		c, _ := other.Phase(i)
		assert.Equal(t, a, b)
		assert.Equal(t, ref.Float64()*2*math.Pi, a, "phase %d follows the seeded sequence", i)
		if a != c {
			differs = true
		}
	}
	assert.True(t, differs, "different seeds should give different phases")
}

type fixedSource struct{ v float64 }

func (f fixedSource) Float64() float64 { return f.v }

func TestInstanceStore_PhaseUpperBound(t *testing.T) {
	// The largest Float64 below 1 must not produce a phase of 2π.
	store := NewInstanceStore([]mgl32.Vec3{{}}, fixedSource{v: math.Nextafter(1, 0)})
	phase, err := store.Phase(0)
	require.NoError(t, err)
	assert.Less(t, phase, 2*math.Pi)
}

func TestInstanceStore_PhasesUniform(t *testing.T) {
	const n = 20000
	const bins = 10
	positions := make([]mgl32.Vec3, n)
	store := NewInstanceStore(positions, NewPhaseSource(7))

	counts := make([]int, bins)
	sum := 0.0
	for i := 0; i < n; i++ {
		phase, err := store.Phase(i)
		require.NoError(t, err)
		counts[int(phase/(2*math.Pi)*bins)]++
		sum += phase
	}

	expected := n / bins
	for b, c := range counts {
		// ~5 standard deviations of a binomial bin.
		assert.InDelta(t, expected, c, 210, "bin %d", b)
	}
	assert.InDelta(t, math.Pi, sum/n, 0.05)
}

func TestInstanceStore_IndexOutOfRange(t *testing.T) {
	store := newTestStore(t, 1, 1)

	for _, idx := range []int{-1, store.Len(), store.Len() + 10} {
		_, err := store.Transform(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		err = store.SetTransform(idx, NewTransform())
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		_, err = store.Phase(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		_, err = store.Base(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		_, err = store.Matrix(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		err = store.SetMatrix(idx, mgl32.Ident4())
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	assert.Equal(t, 7, store.Len())
}

func TestInstanceStore_SetTransformKeepsPhaseAndBase(t *testing.T) {
	store := newTestStore(t, 2, 3)
	store.ClearDirty()

	phaseBefore, _ := store.Phase(4)
	baseBefore, _ := store.Base(4)

	tr := NewTransform()
	tr.Position = mgl32.Vec3{5, 6, 7}
	tr.Scale = mgl32.Vec3{2, 2, 2}
	require.NoError(t, store.SetTransform(4, tr))

	assert.True(t, store.Dirty())
	got, _ := store.Transform(4)
	assert.Equal(t, tr, got)

	m, _ := store.Matrix(4)
	assert.Equal(t, tr.ObjectToWorld(), m)
	assert.Equal(t, m, store.Buffer()[4])

	phaseAfter, _ := store.Phase(4)
	baseAfter, _ := store.Base(4)
	assert.Equal(t, phaseBefore, phaseAfter)
	assert.Equal(t, baseBefore, baseAfter)
}

func TestInstanceStore_SetMatrix(t *testing.T) {
	store := newTestStore(t, 1, 1)

	want := Transform{
		Position: mgl32.Vec3{1, -2, 0.05},
		Rotation: mgl32.QuatRotate(0.7, mgl32.Vec3{0, 0, 1}),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
	require.NoError(t, store.SetMatrix(2, want.ObjectToWorld()))

	got, err := store.Transform(2)
	require.NoError(t, err)
	assert.True(t, got.Position.ApproxEqualThreshold(want.Position, 1e-5))
	assert.True(t, got.Scale.ApproxEqualThreshold(want.Scale, 1e-5))
	assert.True(t, got.Rotation.ApproxEqualThreshold(want.Rotation, 1e-5))
}

func TestInstanceStore_DepthRange(t *testing.T) {
	store := NewInstanceStore(nil, NewPhaseSource(1))
	lo, hi := store.DepthRange()
	assert.Zero(t, lo)
	assert.Zero(t, hi)

	store = newTestStore(t, 1, 1)
	tr, _ := store.Transform(0)
	tr.Position[2] = -0.5
	require.NoError(t, store.SetTransform(0, tr))
	tr, _ = store.Transform(1)
	tr.Position[2] = 0.25
	require.NoError(t, store.SetTransform(1, tr))

	lo, hi = store.DepthRange()
	assert.Equal(t, float32(-0.5), lo)
	assert.Equal(t, float32(0.25), hi)
}
