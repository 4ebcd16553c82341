package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTransform_ObjectToWorld(t *testing.T) {
	tr := TranslationTransform(mgl32.Vec3{1, 2, 3})
	assert.Equal(t, mgl32.Translate3D(1, 2, 3), tr.ObjectToWorld())

	p := tr.ObjectToWorld().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, p)
}

func TestDecomposeTransform(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
	}{
		{
			name: "identity",
			tr:   NewTransform(),
		},
		{
			name: "translation",
			tr:   TranslationTransform(mgl32.Vec3{-4, 0.5, 0.1}),
		},
		{
			name: "rotated and scaled",
			tr: Transform{
				Position: mgl32.Vec3{3, 2, 1},
				Rotation: mgl32.QuatRotate(1.1, mgl32.Vec3{1, 1, 0}.Normalize()),
				Scale:    mgl32.Vec3{2, 0.5, 1.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecomposeTransform(tt.tr.ObjectToWorld())
			assert.True(t, got.Position.ApproxEqualThreshold(tt.tr.Position, 1e-5), "position %v", got.Position)
			assert.True(t, got.Scale.ApproxEqualThreshold(tt.tr.Scale, 1e-5), "scale %v", got.Scale)
			assert.True(t, got.ObjectToWorld().ApproxEqualThreshold(tt.tr.ObjectToWorld(), 1e-4))
		})
	}
}
