// Package lattice discretizes a planar region into a rectangular or
// hexagonal lattice. A Grid owns the inside/outside mask and the height field
// computed over it, and triangulates that field into a mesh.
package lattice

import (
	"fmt"
	"math"

	"github.com/chazu/inflate/pkg/geom"
	"github.com/chazu/inflate/pkg/mesh"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Topology selects the lattice shape.
type Topology int

const (
	Rect Topology = iota
	Hex
)

func (t Topology) String() string {
	if t == Hex {
		return "hex"
	}
	return "rect"
}

// Grid is a lattice over a polygon's bounding box.
type Grid interface {
	Topology() Topology
	Cols() int
	Rows() int
	// Spacing is the distance between horizontally adjacent points.
	Spacing() float64
	NumNeighbors() int
	// Neighbor returns the lattice address of neighbour i, which may lie
	// off the lattice.
	Neighbor(col, row, i int) (int, int)
	// Direction returns the unit vector pointing at neighbour i.
	Direction(i int) v2.Vec
	// DeltaLength is the physical distance to neighbour i.
	DeltaLength(col, row, i int) float64
	Coordinates(col, row int) v2.Vec
	// InsideWorld rounds p to the nearest lattice point and checks the mask.
	InsideWorld(p v2.Vec) bool
	Mask() *Mask
	Heights() *Field
	// Triangulate converts the height field into triangles.
	Triangulate(opts MeshOptions) mesh.Mesh
}

// MeshOptions controls triangulation.
type MeshOptions struct {
	// TwoSided mirrors every face below the plane, producing a closed solid.
	TwoSided bool
	// FlatBase closes a single-sided surface with a flat bottom at z=0.
	FlatBase bool
	Color    *geom.Color
}

// New builds a lattice of the given topology covering bounds.
func New(topology Topology, bounds sdf.Box2, spacing float64) (Grid, error) {
	w := bounds.Max.X - bounds.Min.X
	h := bounds.Max.Y - bounds.Min.Y
	if !(spacing > 0) || !(w > 0) || !(h > 0) {
		return nil, fmt.Errorf("lattice: %gx%g region with spacing %g: %w", w, h, spacing, geom.ErrDegenerate)
	}
	switch topology {
	case Rect:
		return NewRectGrid(w, h, bounds.Min, spacing), nil
	case Hex:
		return NewHexGrid(w, h, bounds.Min, spacing), nil
	}
	return nil, fmt.Errorf("lattice: unknown topology %d", topology)
}

// SpacingFor returns the spacing that puts resolution cells along the larger
// side of bounds.
func SpacingFor(bounds sdf.Box2, resolution int) float64 {
	w := bounds.Max.X - bounds.Min.X
	h := bounds.Max.Y - bounds.Min.Y
	return math.Max(w, h) / float64(resolution)
}

// base holds the state shared by both topologies.
type base struct {
	cols, rows int
	origin     v2.Vec
	mask       *Mask
	heights    *Field
}

func newBase(cols, rows int, origin v2.Vec) base {
	return base{
		cols:    cols,
		rows:    rows,
		origin:  origin,
		mask:    NewMask(cols, rows),
		heights: NewField(cols, rows),
	}
}

func (b *base) Cols() int       { return b.cols }
func (b *base) Rows() int       { return b.rows }
func (b *base) Mask() *Mask     { return b.mask }
func (b *base) Heights() *Field { return b.heights }

// emit appends an upward triangle and, when requested, its mirror image
// with reversed winding.
func emit(out mesh.Mesh, opts MeshOptions, p [3]v3.Vec) mesh.Mesh {
	out = append(out, mesh.Triangle{Color: opts.Color, V: sdf.Triangle3{p[0], p[1], p[2]}})
	if !opts.TwoSided && !opts.FlatBase {
		return out
	}
	var down sdf.Triangle3
	for k := 0; k < 3; k++ {
		v := p[2-k]
		z := 0.0
		if opts.TwoSided {
			z = 0 - v.Z
		}
		down[k] = v3.Vec{X: v.X, Y: v.Y, Z: z}
	}
	return append(out, mesh.Triangle{Color: opts.Color, V: down})
}
