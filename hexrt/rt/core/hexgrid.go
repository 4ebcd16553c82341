package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultGap               = 1.025
	DefaultOrientationOffset = 30.0 // degrees
	segmentCount             = 6
)

// LayoutOptions tunes the aesthetic of the tiling.
type LayoutOptions struct {
	Gap               float64 // pitch multiplier, > 1 leaves visible seams
	OrientationOffset float64 // degrees added to every segment rotation
}

func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		Gap:               DefaultGap,
		OrientationOffset: DefaultOrientationOffset,
	}
}

// Unit is the distance between the centers of two adjacent cells.
func (o LayoutOptions) Unit() float64 {
	return math.Sqrt(3) / 2 * o.Gap
}

// Cell is one hexagon of the tiling. The center cell has Ring 0.
type Cell struct {
	Ring    int
	Segment int
	Side    int
	Base    mgl32.Vec3
}

// IsCenter reports whether c is the single cell at the origin.
func (c Cell) IsCenter() bool {
	return c.Ring == 0
}

// Axial returns the cell's axial lattice coordinates (q, r) in the frame of the
// unrotated layout, walking segment k from corner k toward corner k+1.
func (c Cell) Axial() (q, r int) {
	if c.IsCenter() {
		return 0, 0
	}
	corner := axialCorners[c.Segment]
	next := axialCorners[(c.Segment+2)%segmentCount]
	q = corner[0]*c.Ring + next[0]*c.Side
	r = corner[1]*c.Ring + next[1]*c.Side
	return q, r
}

// axialCorners are the six unit lattice directions in counter-clockwise order.
var axialCorners = [segmentCount][2]int{
	{1, 0}, {0, 1}, {-1, 1}, {-1, 0}, {0, -1}, {1, -1},
}

// HexDistance is the lattice distance between two axial coordinates.
func HexDistance(q1, r1, q2, r2 int) int {
	dq := q1 - q2
	dr := r1 - r2
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// CellCount returns the number of cells in a tiling with the given ring count.
func CellCount(rings int) (int, error) {
	if rings < 0 {
		return 0, fmt.Errorf("%w: ring count %d is negative", ErrInvalidArgument, rings)
	}
	return rings*(rings+1)/2*segmentCount + 1, nil
}

// Layout computes the cells of a ring-based hexagonal tiling around the origin.
// Cells are ordered segment-major, then ring, then side; the center is last.
func Layout(rings int, opts LayoutOptions) ([]Cell, error) {
	count, err := CellCount(rings)
	if err != nil {
		return nil, err
	}
	if opts.Gap <= 0 || math.IsNaN(opts.Gap) || math.IsInf(opts.Gap, 0) {
		return nil, fmt.Errorf("%w: gap %v must be positive", ErrInvalidArgument, opts.Gap)
	}

	unit := opts.Unit()
	axis := [2]float64{0, -unit}
	side := rotate2([2]float64{0, unit}, -math.Pi/3)

	cells := make([]Cell, 0, count)
	for seg := 0; seg < segmentCount; seg++ {
		angle := float64(seg)*math.Pi/3 + opts.OrientationOffset*math.Pi/180
		for ax := 1; ax <= rings; ax++ {
			for sd := 0; sd < ax; sd++ {
				raw := [2]float64{
					axis[0]*float64(ax) + side[0]*float64(sd),
					axis[1]*float64(ax) + side[1]*float64(sd),
				}
				p := rotate2(raw, angle)
				cells = append(cells, Cell{
					Ring:    ax,
					Segment: seg,
					Side:    sd,
					Base:    mgl32.Vec3{float32(p[0]), float32(p[1]), 0},
				})
			}
		}
	}
	cells = append(cells, Cell{})

	return cells, nil
}

// LayoutPositions is Layout with default options, returning only base positions.
func LayoutPositions(rings int) ([]mgl32.Vec3, error) {
	cells, err := Layout(rings, DefaultLayoutOptions())
	if err != nil {
		return nil, err
	}
	return Positions(cells), nil
}

// Positions extracts the base positions of cells in order.
func Positions(cells []Cell) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(cells))
	for i, c := range cells {
		out[i] = c.Base
	}
	return out
}

// rotate2 rotates v counter-clockwise about +Z by angle radians.
func rotate2(v [2]float64, angle float64) [2]float64 {
	s, c := math.Sincos(angle)
	return [2]float64{
		v[0]*c - v[1]*s,
		v[0]*s + v[1]*c,
	}
}
