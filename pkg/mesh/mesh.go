// Package mesh holds the triangle-soup output of inflation and the
// serializers that write it: binary STL, OpenSCAD polyhedra and 3MF.
package mesh

import (
	"math"

	"github.com/chazu/inflate/pkg/geom"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Triangle is a coloured triangle. Vertices are counterclockwise when seen
// from the side the face points to.
type Triangle struct {
	Color *geom.Color
	V     sdf.Triangle3
}

// Mesh is a list of coloured triangles.
type Mesh []Triangle

// Part is a named mesh, one per inflated path.
type Part struct {
	Name string
	Mesh Mesh
}

// TriangleCount returns the number of triangles.
func (m Mesh) TriangleCount() int {
	return len(m)
}

// IsEmpty returns true if the mesh has no geometry.
func (m Mesh) IsEmpty() bool {
	return len(m) == 0
}

// Bounds returns the axis-aligned bounding box of all vertices. The box of
// an empty mesh is the zero box.
func (m Mesh) Bounds() sdf.Box3 {
	if len(m) == 0 {
		return sdf.Box3{}
	}
	lo := v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := v3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, t := range m {
		for _, v := range t.V {
			lo = v3.Vec{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y), Z: math.Min(lo.Z, v.Z)}
			hi = v3.Vec{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y), Z: math.Max(hi.Z, v.Z)}
		}
	}
	return sdf.Box3{Min: lo, Max: hi}
}

// Translate returns a copy of the mesh moved by offset.
func (m Mesh) Translate(offset v3.Vec) Mesh {
	out := make(Mesh, len(m))
	for i, t := range m {
		out[i] = Triangle{Color: t.Color}
		for j, v := range t.V {
			out[i].V[j] = v.Add(offset)
		}
	}
	return out
}

// Colors returns the distinct colours used by the mesh in first-seen order.
// A nil entry stands for uncoloured triangles.
func (m Mesh) Colors() []*geom.Color {
	var out []*geom.Color
	for _, t := range m {
		found := false
		for _, c := range out {
			if sameColor(c, t.Color) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, t.Color)
		}
	}
	return out
}

func sameColor(a, b *geom.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Normal returns the unit normal (v1-v0)x(v2-v0) of a triangle, or the zero
// vector for a degenerate triangle.
func Normal(t sdf.Triangle3) v3.Vec {
	n := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
	l := n.Length()
	if l == 0 {
		return v3.Vec{}
	}
	return n.MulScalar(1 / l)
}

// Area returns the area of a triangle.
func Area(t sdf.Triangle3) float64 {
	return 0.5 * t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Length()
}
