package mesh_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/chazu/inflate/pkg/geom"
	"github.com/chazu/inflate/pkg/mesh"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func float32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestWriteSTLLayout(t *testing.T) {
	m := mesh.Mesh{
		{V: tri(v3.Vec{X: -2, Y: 1, Z: 0}, v3.Vec{X: 0, Y: 1, Z: 0}, v3.Vec{X: -2, Y: 3, Z: 0})},
		{V: tri(v3.Vec{X: 0, Y: 1, Z: 5}, v3.Vec{X: 0, Y: 3, Z: 5}, v3.Vec{X: -2, Y: 3, Z: 5})},
	}
	var buf bytes.Buffer
	if err := mesh.WriteSTL(&buf, m); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	if len(b) != 84+50*len(m) {
		t.Fatalf("wrote %d bytes, want %d", len(b), 84+50*len(m))
	}
	for i := 0; i < 80; i++ {
		if b[i] != 0 {
			t.Fatalf("header byte %d = %d", i, b[i])
		}
	}
	if n := binary.LittleEndian.Uint32(b[80:]); n != 2 {
		t.Errorf("triangle count = %d", n)
	}

	rec := b[84:134]
	if nz := float32At(rec, 8); nz != 1 {
		t.Errorf("normal z = %g, want 1", nz)
	}
	// First vertex (-2,1,0) shifted so the mesh minimum (-2,1,0) becomes 0.001.
	for k, want := range []float32{0.001, 0.001, 0.001} {
		if got := float32At(rec, 12+4*k); math.Abs(float64(got-want)) > 1e-6 {
			t.Errorf("vertex coordinate %d = %g, want %g", k, got, want)
		}
	}
	if attr := binary.LittleEndian.Uint16(rec[48:]); attr != 0 {
		t.Errorf("monochrome attribute = %#x, want 0", attr)
	}
}

func TestWriteSTLColors(t *testing.T) {
	tests := []struct {
		name  string
		m     mesh.Mesh
		attrs []uint16
	}{
		{
			name:  "single colour is monochrome",
			m:     mesh.Mesh{{Color: red, V: unit}, {Color: red, V: unit}},
			attrs: []uint16{0, 0},
		},
		{
			name:  "two colours",
			m:     mesh.Mesh{{Color: red, V: unit}, {Color: blue, V: unit}},
			attrs: []uint16{0x8000 | 31<<10, 0x8000 | 31},
		},
		{
			name:  "uncoloured triangle in coloured mesh is white",
			m:     mesh.Mesh{{Color: &geom.Color{R: 0.5, G: 0.25, B: 1}, V: unit}, {V: unit}},
			attrs: []uint16{0x8000 | 16<<10 | 8<<5 | 31, 0xffff},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := mesh.WriteSTL(&buf, tt.m); err != nil {
				t.Fatal(err)
			}
			b := buf.Bytes()
			for i, want := range tt.attrs {
				off := 84 + 50*i + 48
				if got := binary.LittleEndian.Uint16(b[off:]); got != want {
					t.Errorf("triangle %d attribute = %#x, want %#x", i, got, want)
				}
			}
		})
	}
}

func TestWriteSTLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := mesh.WriteSTL(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 84 {
		t.Errorf("empty STL is %d bytes", buf.Len())
	}
}
