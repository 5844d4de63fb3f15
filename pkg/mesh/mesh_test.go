package mesh_test

import (
	"math"
	"testing"

	"github.com/chazu/inflate/pkg/geom"
	"github.com/chazu/inflate/pkg/mesh"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func tri(a, b, c v3.Vec) sdf.Triangle3 {
	return sdf.Triangle3{a, b, c}
}

var (
	red  = &geom.Color{R: 1}
	blue = &geom.Color{B: 1}
	unit = tri(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})
)

func TestNormal(t *testing.T) {
	tests := []struct {
		name string
		t    sdf.Triangle3
		want v3.Vec
	}{
		{"counterclockwise", unit, v3.Vec{Z: 1}},
		{"clockwise", tri(v3.Vec{}, v3.Vec{Y: 1}, v3.Vec{X: 1}), v3.Vec{Z: -1}},
		{"degenerate", tri(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{X: 2}), v3.Vec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mesh.Normal(tt.t); got != tt.want {
				t.Errorf("Normal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArea(t *testing.T) {
	if got := mesh.Area(unit); got != 0.5 {
		t.Errorf("Area = %g, want 0.5", got)
	}
}

func TestColors(t *testing.T) {
	m := mesh.Mesh{
		{Color: red, V: unit},
		{Color: nil, V: unit},
		{Color: &geom.Color{R: 1}, V: unit},
		{Color: blue, V: unit},
	}
	got := m.Colors()
	if len(got) != 3 {
		t.Fatalf("got %d colours, want 3", len(got))
	}
	if *got[0] != *red || got[1] != nil || *got[2] != *blue {
		t.Errorf("colours out of order: %v", got)
	}
}

func TestBoundsAndTranslate(t *testing.T) {
	m := mesh.Mesh{{V: tri(v3.Vec{X: -1, Y: 2, Z: 0}, v3.Vec{X: 3, Y: 2, Z: 1}, v3.Vec{X: 0, Y: 5, Z: -2})}}
	b := m.Bounds()
	if b.Min != (v3.Vec{X: -1, Y: 2, Z: -2}) || b.Max != (v3.Vec{X: 3, Y: 5, Z: 1}) {
		t.Errorf("bounds = %v", b)
	}
	moved := m.Translate(v3.Vec{X: 1, Y: 1, Z: 1})
	if moved.Bounds().Min != (v3.Vec{X: 0, Y: 3, Z: -1}) {
		t.Errorf("translated bounds = %v", moved.Bounds())
	}
	if m[0].V[0].X != -1 {
		t.Error("Translate modified the receiver")
	}
	if !(mesh.Mesh{}).IsEmpty() || m.IsEmpty() || m.TriangleCount() != 1 {
		t.Error("IsEmpty/TriangleCount disagree with length")
	}
}

func TestRecenter(t *testing.T) {
	m := mesh.Mesh{{V: tri(v3.Vec{X: 2, Y: 4, Z: 3}, v3.Vec{X: 6, Y: 4}, v3.Vec{X: 2, Y: 10})}}
	out, center, size := mesh.Recenter(m)
	if center != (v3.Vec{X: 4, Y: 7}) {
		t.Errorf("center = %v", center)
	}
	if size != (v3.Vec{X: 4, Y: 6}) {
		t.Errorf("size = %v", size)
	}
	if out[0].V[0] != (v3.Vec{X: -2, Y: -3, Z: 3}) {
		t.Errorf("recentered vertex = %v", out[0].V[0])
	}
}

func TestToIndexed(t *testing.T) {
	m := mesh.Mesh{
		{V: unit},
		{V: tri(v3.Vec{X: 1}, v3.Vec{X: 1, Y: 1}, v3.Vec{Y: 1})},
	}
	ix := mesh.ToIndexed(m, "part")
	if ix.PartName != "part" {
		t.Errorf("PartName = %q", ix.PartName)
	}
	if ix.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", ix.VertexCount())
	}
	if ix.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", ix.TriangleCount())
	}
	want := []uint32{0, 1, 2, 1, 3, 2}
	for i, v := range want {
		if ix.Indices[i] != v {
			t.Fatalf("Indices = %v, want %v", ix.Indices, want)
		}
	}
	for i := 0; i < ix.VertexCount(); i++ {
		n := ix.Normals[3*i : 3*i+3]
		if n[0] != 0 || n[1] != 0 || math.Abs(float64(n[2])-1) > 1e-6 {
			t.Errorf("normal %d = %v", i, n)
		}
	}
	if !mesh.ToIndexed(nil, "").IsEmpty() {
		t.Error("empty mesh is not empty")
	}
}
