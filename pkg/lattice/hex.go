package lattice

import (
	"math"
	"sort"

	"github.com/chazu/inflate/pkg/mesh"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ Grid = (*HexGrid)(nil)

// Neighbour tables, counterclockwise from +x. Odd rows are shifted right by
// half a cell.
var (
	hexOddDeltas  = [6]Cell{{1, 0}, {1, 1}, {0, 1}, {-1, 0}, {0, -1}, {1, -1}}
	hexEvenDeltas = [6]Cell{{1, 0}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}}
)

var hexDirections = func() [6]v2.Vec {
	a := math.Sqrt(3) / 2
	return [6]v2.Vec{{X: 1, Y: 0}, {X: 0.5, Y: a}, {X: -0.5, Y: a}, {X: -1, Y: 0}, {X: -0.5, Y: -a}, {X: 0.5, Y: -a}}
}()

// HexGrid is a triangular lattice (hexagonal cells) with 6-neighbourhoods.
type HexGrid struct {
	base
	hd, vd float64
}

// NewHexGrid covers a w×h region whose lower-left corner is at origin.
func NewHexGrid(w, h float64, origin v2.Vec, d float64) *HexGrid {
	vd := d * math.Sqrt(3) / 2
	o := v2.Vec{X: origin.X - d*0.25, Y: origin.Y + vd*0.5}
	return &HexGrid{
		base: newBase(2+int(w/d), 2+int(h/vd), o),
		hd:   d,
		vd:   vd,
	}
}

func (g *HexGrid) Topology() Topology { return Hex }
func (g *HexGrid) Spacing() float64   { return g.hd }
func (g *HexGrid) NumNeighbors() int  { return 6 }

func (g *HexGrid) Neighbor(col, row, i int) (int, int) {
	d := hexEvenDeltas[i]
	if row&1 == 1 {
		d = hexOddDeltas[i]
	}
	return col + d.Col, row + d.Row
}

func (g *HexGrid) Direction(i int) v2.Vec {
	return hexDirections[i]
}

// DeltaLength is the same for all six neighbours.
func (g *HexGrid) DeltaLength(col, row, i int) float64 {
	return g.hd
}

func (g *HexGrid) Coordinates(col, row int) v2.Vec {
	return v2.Vec{
		X: g.hd*(float64(col)+0.5*float64(row&1)) + g.origin.X,
		Y: g.vd*float64(row) + g.origin.Y,
	}
}

func (g *HexGrid) InsideWorld(p v2.Vec) bool {
	row := int(math.Floor(0.5 + (p.Y-g.origin.Y)/g.vd))
	col := int(math.Floor(0.5 + (p.X-g.origin.X)/g.hd - 0.5*float64(row&1)))
	return g.mask.Inside(col, row)
}

// Triangulate fans every masked point with each pair of consecutive
// neighbours. Triangles shared by several points are emitted once.
func (g *HexGrid) Triangulate(opts MeshOptions) mesh.Mesh {
	var out mesh.Mesh
	done := make(map[[3]Cell]struct{})
	for _, c := range g.mask.Points() {
		var ring [6]Cell
		for i := range ring {
			ring[i].Col, ring[i].Row = g.Neighbor(c.Col, c.Row, i)
		}
		for i := range ring {
			tri := [3]Cell{c, ring[(i+5)%6], ring[i]}
			key := sortedCells(tri)
			if _, ok := done[key]; ok {
				continue
			}
			done[key] = struct{}{}
			var p [3]v3.Vec
			for k, v := range tri {
				xy := g.Coordinates(v.Col, v.Row)
				p[k] = v3.Vec{X: xy.X, Y: xy.Y, Z: g.heights.AtOrZero(v.Col, v.Row)}
			}
			out = emit(out, opts, p)
		}
	}
	return out
}

func sortedCells(t [3]Cell) [3]Cell {
	s := t[:]
	sort.Slice(s, func(i, j int) bool {
		if s[i].Col != s[j].Col {
			return s[i].Col < s[j].Col
		}
		return s[i].Row < s[j].Row
	})
	return t
}
