package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chazu/inflate/pkg/geom"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"
)

// DefaultDigits is the number of digits after the decimal point used for
// SCAD coordinates.
const DefaultDigits = 9

// SCADOptions controls OpenSCAD output.
type SCADOptions struct {
	Digits int // digits after the decimal point; 0 means DefaultDigits
	// ColorOverride, when set, is an OpenSCAD expression used in place of the
	// triangles' own colours.
	ColorOverride string
}

// WriteSCAD writes one OpenSCAD module per distinct colour group of the mesh.
// A mesh with a single colour group yields a module called name; otherwise the
// modules are called name_1, name_2, ... in order of first appearance.
func WriteSCAD(w io.Writer, name string, m Mesh, opts SCADOptions) error {
	groups := m.Colors()
	if len(groups) == 0 {
		_, err := io.WriteString(w, "module "+name+"() {\n}\n\n")
		return err
	}
	for k, c := range groups {
		moduleName := name
		if len(groups) > 1 {
			moduleName = name + "_" + strconv.Itoa(k+1)
		}
		faces := lo.Filter(m, func(t Triangle, _ int) bool {
			return sameColor(t.Color, c)
		})
		if _, err := io.WriteString(w, scadModule(moduleName, c, faces, opts)); err != nil {
			return fmt.Errorf("mesh: writing SCAD module %s: %w", moduleName, err)
		}
	}
	return nil
}

func scadModule(name string, c *geom.Color, faces Mesh, opts SCADOptions) string {
	digits := opts.Digits
	if digits <= 0 {
		digits = DefaultDigits
	}

	var sb strings.Builder
	sb.WriteString("module " + name + "() {\n")
	switch {
	case opts.ColorOverride != "":
		sb.WriteString("  color(" + opts.ColorOverride + ") ")
	case c != nil:
		sb.WriteString("  color(" + describeColor(c.Clamped()) + ") ")
	default:
		sb.WriteString("  ")
	}

	// OpenSCAD wants faces clockwise seen from outside, so vertex order is
	// reversed both when collecting points and when listing faces.
	index := make(map[v3.Vec]int)
	var points []string
	for _, t := range faces {
		for j := 2; j >= 0; j-- {
			v := t.V[j]
			if _, ok := index[v]; !ok {
				index[v] = len(points)
				points = append(points, "["+FormatDecimal(v.X, digits)+","+FormatDecimal(v.Y, digits)+","+FormatDecimal(v.Z, digits)+"]")
			}
		}
	}
	sb.WriteString("polyhedron(points=[")
	sb.WriteString(strings.Join(points, ","))
	sb.WriteString("], faces=[")
	for i, t := range faces {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "[%d,%d,%d]", index[t.V[2]], index[t.V[1]], index[t.V[0]])
	}
	sb.WriteString("]);\n}\n\n")
	return sb.String()
}

func describeColor(c geom.Color) string {
	return "[" + FormatDecimal(c.R, DefaultDigits) + "," + FormatDecimal(c.G, DefaultDigits) + "," + FormatDecimal(c.B, DefaultDigits) + "]"
}

// Recenter moves the mesh so the centre of its XY footprint is at the
// origin. It returns the moved mesh, the old centre and the footprint size.
func Recenter(m Mesh) (Mesh, v3.Vec, v3.Vec) {
	b := m.Bounds()
	center := v3.Vec{X: 0.5 * (b.Min.X + b.Max.X), Y: 0.5 * (b.Min.Y + b.Max.Y)}
	size := v3.Vec{X: b.Max.X - b.Min.X, Y: b.Max.Y - b.Min.Y}
	return m.Translate(center.MulScalar(-1)), center, size
}

// WriteSCADDocument writes a complete OpenSCAD file for a set of parts:
// per-part centre, size and colour variables, one module per part built
// around the origin, and the calls placing each module at its centre.
func WriteSCADDocument(w io.Writer, parts []Part) error {
	bw := bufio.NewWriter(w)
	centered := make([]Part, len(parts))
	colors := make([]*geom.Color, len(parts))
	for i, p := range parts {
		m, center, size := Recenter(p.Mesh)
		centered[i] = Part{Name: p.Name, Mesh: m}
		fmt.Fprintf(bw, "center_%s = [%.5f,%.5f];\n", p.Name, center.X, center.Y)
		fmt.Fprintf(bw, "size_%s = [%.5f,%.5f];\n", p.Name, size.X, size.Y)
		if len(m) > 0 && m[0].Color != nil {
			c := m[0].Color.Clamped()
			colors[i] = &c
			fmt.Fprintf(bw, "color_%s = [%.5f,%.5f,%.5f];\n", p.Name, c.R, c.G, c.B)
		}
		bw.WriteString("\n")
	}
	for i, p := range centered {
		opts := SCADOptions{}
		if colors[i] != nil {
			opts.ColorOverride = "color_" + p.Name
		}
		// One module per part: the part's own colour variable applies to
		// every face, so the colour groups are merged.
		flat := make(Mesh, len(p.Mesh))
		for j, t := range p.Mesh {
			flat[j] = Triangle{Color: colors[i], V: t.V}
		}
		if err := WriteSCAD(bw, p.Name, flat, opts); err != nil {
			return err
		}
	}
	for _, p := range parts {
		fmt.Fprintf(bw, "translate(center_%s) %s();\n", p.Name, p.Name)
	}
	return bw.Flush()
}
