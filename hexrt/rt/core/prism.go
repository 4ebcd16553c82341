package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultPrismRadius    = 0.5
	DefaultPrismThickness = 0.1
)

// PrismVertex matches the WGSL vertex input of the prism pipeline.
type PrismVertex struct {
	Pos    [3]float32
	Normal [3]float32
}

type PrismMesh struct {
	Vertices []PrismVertex
	Indices  []uint16
}

// NewHexPrism builds a flat-shaded six-sided prism standing on its flat face:
// the axis is +Z, the caps sit at ±thickness/2 and the corners point along ±Y
// so that neighbours of the tiling face each other across a flat side.
func NewHexPrism(radius, thickness float32) PrismMesh {
	var mesh PrismMesh
	half := thickness / 2

	corner := func(j int) (float32, float32) {
		a := math.Pi/2 + float64(j%6)*math.Pi/3
		return radius * float32(math.Cos(a)), radius * float32(math.Sin(a))
	}

	addCap := func(z float32, normal [3]float32, ccw bool) {
		center := uint16(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices, PrismVertex{Pos: [3]float32{0, 0, z}, Normal: normal})
		for j := 0; j < 6; j++ {
			x, y := corner(j)
			mesh.Vertices = append(mesh.Vertices, PrismVertex{Pos: [3]float32{x, y, z}, Normal: normal})
		}
		for j := 0; j < 6; j++ {
			a := center + 1 + uint16(j)
			b := center + 1 + uint16((j+1)%6)
			if ccw {
				mesh.Indices = append(mesh.Indices, center, a, b)
			} else {
				mesh.Indices = append(mesh.Indices, center, b, a)
			}
		}
	}
	addCap(half, [3]float32{0, 0, 1}, true)
	addCap(-half, [3]float32{0, 0, -1}, false)

	for j := 0; j < 6; j++ {
		x0, y0 := corner(j)
		x1, y1 := corner(j + 1)
		n := mgl32.Vec3{x0 + x1, y0 + y1, 0}.Normalize()
		normal := [3]float32{n.X(), n.Y(), n.Z()}

		base := uint16(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices,
			PrismVertex{Pos: [3]float32{x0, y0, -half}, Normal: normal},
			PrismVertex{Pos: [3]float32{x1, y1, -half}, Normal: normal},
			PrismVertex{Pos: [3]float32{x1, y1, half}, Normal: normal},
			PrismVertex{Pos: [3]float32{x0, y0, half}, Normal: normal},
		)
		mesh.Indices = append(mesh.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}

	return mesh
}

// Radius is the largest distance of a vertex from the prism axis.
func (m PrismMesh) Radius() float32 {
	var r float32
	for _, v := range m.Vertices {
		r = max(r, mgl32.Vec2{v.Pos[0], v.Pos[1]}.Len())
	}
	return r
}
