package inflate

import (
	"github.com/chazu/inflate/pkg/geom"
	"github.com/chazu/inflate/pkg/lattice"
	"github.com/chazu/inflate/pkg/mesh"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Trim clips the triangles that straddle the polygon boundary so the mesh
// edge follows the polygon instead of the lattice.
func Trim(m mesh.Mesh, grid lattice.Grid, polygon geom.Polygon) mesh.Mesh {
	out := make(mesh.Mesh, 0, len(m))
	for _, t := range m {
		for _, v := range TrimFace(t.V, grid, polygon) {
			out = append(out, mesh.Triangle{Color: t.Color, V: v})
		}
	}
	return out
}

// TrimFace replaces a triangle by the part of it inside the polygon.
// Inside/outside is decided per vertex with grid.InsideWorld. A triangle
// with all three vertices outside is dropped.
func TrimFace(t sdf.Triangle3, grid lattice.Grid, polygon geom.Polygon) []sdf.Triangle3 {
	var in [3]bool
	outside := 0
	for i, v := range t {
		in[i] = grid.InsideWorld(v2.Vec{X: v.X, Y: v.Y})
		if !in[i] {
			outside++
		}
	}

	switch outside {
	case 0:
		return []sdf.Triangle3{t}
	case 3:
		return nil
	case 2:
		// Rotate so the inside vertex comes first.
		if in[1] {
			t = sdf.Triangle3{t[1], t[2], t[0]}
		} else if in[2] {
			t = sdf.Triangle3{t[2], t[0], t[1]}
		}
		return []sdf.Triangle3{{t[0], TrimLine(t[0], t[1], polygon), TrimLine(t[0], t[2], polygon)}}
	}

	// One vertex outside: rotate it to the end.
	if !in[0] {
		t = sdf.Triangle3{t[1], t[2], t[0]}
	} else if !in[1] {
		t = sdf.Triangle3{t[2], t[0], t[1]}
	}
	c0 := TrimLine(t[0], t[2], polygon)
	c1 := TrimLine(t[1], t[2], polygon)
	if c0 == c1 {
		return []sdf.Triangle3{{t[0], t[1], c0}}
	}
	return []sdf.Triangle3{{t[0], t[1], c0}, {c0, t[1], c1}}
}

// TrimLine walks from start towards stop in the XY plane and returns the
// point where the walk first meets the polygon boundary, at height 0. If the
// boundary is not reached before stop, stop is returned.
func TrimLine(start, stop v3.Vec, polygon geom.Polygon) v3.Vec {
	delta := v2.Vec{X: stop.X - start.X, Y: stop.Y - start.Y}
	if delta.X == 0 && delta.Y == 0 {
		return stop
	}
	length := delta.Length()
	z0 := v2.Vec{X: start.X, Y: start.Y}
	distance := polygon.DistanceToEdge(z0, delta)
	if distance >= length {
		return stop
	}
	return v3.Vec{
		X: z0.X + distance*delta.X/length,
		Y: z0.Y + distance*delta.Y/length,
	}
}
