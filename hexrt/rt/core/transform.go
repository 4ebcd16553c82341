package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// TranslationTransform is an identity rotation/scale transform placed at p.
func TranslationTransform(p mgl32.Vec3) Transform {
	t := NewTransform()
	t.Position = p
	return t
}

func (t Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// DecomposeTransform splits a T*R*S matrix back into its parts.
// Shear is not representable and is discarded.
func DecomposeTransform(m mgl32.Mat4) Transform {
	pos := m.Col(3).Vec3()

	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()

	// Mirror the scale if the basis is left-handed.
	if m.Mat3().Det() < 0 {
		sx = -sx
	}

	rot := mgl32.QuatIdent()
	if sx != 0 && sy != 0 && sz != 0 {
		r := mgl32.Mat3FromCols(
			m.Col(0).Vec3().Mul(1/sx),
			m.Col(1).Vec3().Mul(1/sy),
			m.Col(2).Vec3().Mul(1/sz),
		)
		rot = mgl32.Mat4ToQuat(r.Mat4()).Normalize()
	}

	return Transform{
		Position: pos,
		Rotation: rot,
		Scale:    mgl32.Vec3{sx, sy, sz},
	}
}
