package lattice

import (
	"math"

	"github.com/chazu/inflate/pkg/mesh"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ Grid = (*RectGrid)(nil)

var rectDeltas = [4]Cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// RectGrid is a square lattice with 4-neighbourhoods.
type RectGrid struct {
	base
	d float64
}

// NewRectGrid covers a w×h region whose lower-left corner is at origin.
func NewRectGrid(w, h float64, origin v2.Vec, d float64) *RectGrid {
	return &RectGrid{
		base: newBase(1+int(w/d), 1+int(h/d), origin),
		d:    d,
	}
}

func (g *RectGrid) Topology() Topology { return Rect }
func (g *RectGrid) Spacing() float64   { return g.d }
func (g *RectGrid) NumNeighbors() int  { return len(rectDeltas) }

func (g *RectGrid) Neighbor(col, row, i int) (int, int) {
	return col + rectDeltas[i].Col, row + rectDeltas[i].Row
}

func (g *RectGrid) Direction(i int) v2.Vec {
	return v2.Vec{X: float64(rectDeltas[i].Col), Y: float64(rectDeltas[i].Row)}
}

func (g *RectGrid) DeltaLength(col, row, i int) float64 {
	return g.d
}

func (g *RectGrid) Coordinates(col, row int) v2.Vec {
	return v2.Vec{X: g.d*float64(col) + g.origin.X, Y: g.d*float64(row) + g.origin.Y}
}

func (g *RectGrid) InsideWorld(p v2.Vec) bool {
	col := int(math.Floor(0.5 + (p.X-g.origin.X)/g.d))
	row := int(math.Floor(0.5 + (p.Y-g.origin.Y)/g.d))
	return g.mask.Inside(col, row)
}

// Triangulate walks every 2×2 block of lattice points, including the blocks
// that straddle the lattice edge, and splits the blocks touching the raised
// region into two triangles. The diagonal never joins two zero corners, so
// concave boundary corners do not produce flat slivers and every such block
// yields exactly two triangles.
func (g *RectGrid) Triangulate(opts MeshOptions) mesh.Mesh {
	var out mesh.Mesh
	h := g.heights
	for x := -1; x < g.cols; x++ {
		for y := -1; y < g.rows; y++ {
			z00, z10 := h.AtOrZero(x, y), h.AtOrZero(x+1, y)
			z01, z11 := h.AtOrZero(x, y+1), h.AtOrZero(x+1, y+1)
			if !(z00 > 0 || z10 > 0 || z01 > 0 || z11 > 0) {
				continue
			}
			if z10 == 0 && z01 == 0 {
				out = g.blockTriangle(out, opts, x, y, [3]Cell{{0, 0}, {1, 0}, {1, 1}})
				out = g.blockTriangle(out, opts, x, y, [3]Cell{{1, 1}, {0, 1}, {0, 0}})
			} else {
				out = g.blockTriangle(out, opts, x, y, [3]Cell{{0, 0}, {1, 0}, {0, 1}})
				out = g.blockTriangle(out, opts, x, y, [3]Cell{{1, 0}, {1, 1}, {0, 1}})
			}
		}
	}
	return out
}

func (g *RectGrid) blockTriangle(out mesh.Mesh, opts MeshOptions, x, y int, corners [3]Cell) mesh.Mesh {
	var p [3]v3.Vec
	flat := true
	for k, c := range corners {
		col, row := x+c.Col, y+c.Row
		z := g.heights.AtOrZero(col, row)
		if z != 0 {
			flat = false
		}
		xy := g.Coordinates(col, row)
		p[k] = v3.Vec{X: xy.X, Y: xy.Y, Z: z}
	}
	if flat {
		return out
	}
	return emit(out, opts, p)
}
