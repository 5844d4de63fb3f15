package mesh_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chazu/inflate/pkg/geom"
	"github.com/chazu/inflate/pkg/mesh"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		x         float64
		precision int
		want      string
	}{
		{1.5, 9, "1.5"},
		{2, 9, "2"},
		{-0.25, 3, "-0.25"},
		{1.23456, 2, "1.23"},
		{100, 0, "100"},
		{0.0000000001, 9, "0"},
	}
	for _, tt := range tests {
		if got := mesh.FormatDecimal(tt.x, tt.precision); got != tt.want {
			t.Errorf("FormatDecimal(%g, %d) = %q, want %q", tt.x, tt.precision, got, tt.want)
		}
	}
}

func TestWriteSCADSingleColor(t *testing.T) {
	m := mesh.Mesh{
		{V: unit},
		{V: tri(v3.Vec{X: 1}, v3.Vec{X: 1, Y: 1}, v3.Vec{Y: 1})},
	}
	var buf bytes.Buffer
	if err := mesh.WriteSCAD(&buf, "shape", m, mesh.SCADOptions{}); err != nil {
		t.Fatal(err)
	}
	want := "module shape() {\n" +
		"  polyhedron(points=[[0,1,0],[1,0,0],[0,0,0],[1,1,0]], faces=[[0,1,2],[0,3,1]]);\n" +
		"}\n\n"
	if got := buf.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestWriteSCADColorGroups(t *testing.T) {
	m := mesh.Mesh{
		{Color: red, V: unit},
		{Color: blue, V: unit},
		{Color: red, V: unit},
	}
	var buf bytes.Buffer
	if err := mesh.WriteSCAD(&buf, "s", m, mesh.SCADOptions{}); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{
		"module s_1() {\n  color([1,0,0]) polyhedron(",
		"module s_2() {\n  color([0,0,1]) polyhedron(",
		"faces=[[0,1,2],[0,1,2]]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "module ") != 2 {
		t.Errorf("want 2 modules:\n%s", got)
	}
}

func TestWriteSCADOverrideAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := mesh.WriteSCAD(&buf, "e", nil, mesh.SCADOptions{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "module e() {\n}\n\n" {
		t.Errorf("empty module = %q", buf.String())
	}

	buf.Reset()
	m := mesh.Mesh{{Color: &geom.Color{G: 1}, V: unit}}
	if err := mesh.WriteSCAD(&buf, "o", m, mesh.SCADOptions{ColorOverride: "color_o", Digits: 2}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "color(color_o) polyhedron(") {
		t.Errorf("override not applied:\n%s", buf.String())
	}
}

func TestWriteSCADDocument(t *testing.T) {
	parts := []mesh.Part{
		{Name: "a", Mesh: mesh.Mesh{{Color: red, V: tri(v3.Vec{X: 2, Y: 2}, v3.Vec{X: 4, Y: 2}, v3.Vec{X: 2, Y: 6, Z: 1})}}},
		{Name: "b", Mesh: mesh.Mesh{{V: unit}}},
	}
	var buf bytes.Buffer
	if err := mesh.WriteSCADDocument(&buf, parts); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{
		"center_a = [3.00000,4.00000];\n",
		"size_a = [2.00000,4.00000];\n",
		"color_a = [1.00000,0.00000,0.00000];\n",
		"center_b = [0.50000,0.50000];\n",
		"module a() {\n  color(color_a) polyhedron(points=[[-1,2,1],[1,-2,0],[-1,-2,0]]",
		"module b() {\n  polyhedron(",
		"translate(center_a) a();\ntranslate(center_b) b();\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("document missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "color_b") {
		t.Errorf("uncoloured part has a colour variable:\n%s", got)
	}
}
