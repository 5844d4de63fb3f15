package geom

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// ErrDegenerate is returned when the input cannot be discretized, e.g. its
// bounding box has zero width or height.
var ErrDegenerate = errors.New("degenerate input")

// FillRule determines which points are inside a polygon made of several
// subpaths.
type FillRule int

const (
	EvenOdd FillRule = iota
	NonZero
)

// String returns the SVG spelling of the rule.
func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	default:
		return "evenodd"
	}
}

// ParseFillRule accepts "evenodd" and "nonzero". An empty string means EvenOdd.
func ParseFillRule(s string) (FillRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "evenodd", "even-odd":
		return EvenOdd, nil
	case "nonzero", "non-zero":
		return NonZero, nil
	}
	return EvenOdd, fmt.Errorf("geom: unknown fill rule %q", s)
}

// Segment is a directed line segment.
type Segment struct {
	Start v2.Vec
	End   v2.Vec
}

// Degenerate reports whether the segment has zero length.
func (s Segment) Degenerate() bool {
	return s.Start == s.End
}

// Polygon is a set of segments, possibly from several subpaths, with the
// fill state of the path it came from.
type Polygon struct {
	Segments []Segment
	Rule     FillRule
	Color    *Color // nil when the path carries no colour
	Name     string
	NoFill   bool // path is stroke-only and is not inflated
}

// NewPolygonFromRings builds a polygon from point rings. Each ring is closed
// if its last point differs from its first. Rings with fewer than two points
// are skipped.
func NewPolygonFromRings(rings [][]v2.Vec, rule FillRule, color *Color) Polygon {
	p := Polygon{Rule: rule, Color: color}
	for _, ring := range rings {
		if len(ring) < 2 {
			continue
		}
		for i := 1; i < len(ring); i++ {
			p.Segments = append(p.Segments, Segment{Start: ring[i-1], End: ring[i]})
		}
		if ring[0] != ring[len(ring)-1] {
			p.Segments = append(p.Segments, Segment{Start: ring[len(ring)-1], End: ring[0]})
		}
	}
	return p
}

// Bounds returns the axis-aligned bounding box of all segment endpoints.
// A polygon without segments, or whose box has zero width or height,
// yields ErrDegenerate.
func (p Polygon) Bounds() (sdf.Box2, error) {
	if len(p.Segments) == 0 {
		return sdf.Box2{}, fmt.Errorf("geom: polygon %q has no segments: %w", p.Name, ErrDegenerate)
	}
	lo := v2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi := v2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, s := range p.Segments {
		for _, v := range [2]v2.Vec{s.Start, s.End} {
			lo.X = math.Min(lo.X, v.X)
			lo.Y = math.Min(lo.Y, v.Y)
			hi.X = math.Max(hi.X, v.X)
			hi.Y = math.Max(hi.Y, v.Y)
		}
	}
	w, h := hi.X-lo.X, hi.Y-lo.Y
	if !(w > 0) || !(h > 0) {
		return sdf.Box2{}, fmt.Errorf("geom: polygon %q bounding box is %gx%g: %w", p.Name, w, h, ErrDegenerate)
	}
	return sdf.Box2{Min: lo, Max: hi}, nil
}

// Translate returns a copy of the polygon moved by offset.
func (p Polygon) Translate(offset v2.Vec) Polygon {
	out := p
	out.Segments = make([]Segment, len(p.Segments))
	for i, s := range p.Segments {
		out.Segments[i] = Segment{Start: s.Start.Add(offset), End: s.End.Add(offset)}
	}
	return out
}

// minCorner returns the smallest y and x over all segment endpoints.
func (p Polygon) minCorner() (y, x float64) {
	y, x = math.Inf(1), math.Inf(1)
	for _, s := range p.Segments {
		y = math.Min(y, math.Min(s.Start.Y, s.End.Y))
		x = math.Min(x, math.Min(s.Start.X, s.End.X))
	}
	return y, x
}

// SortPaths orders polygons by the lowest y, then the lowest x, of their
// segments. The sort is stable.
func SortPaths(paths []Polygon) {
	sort.SliceStable(paths, func(i, j int) bool {
		yi, xi := paths[i].minCorner()
		yj, xj := paths[j].minCorner()
		if yi != yj {
			return yi < yj
		}
		return xi < xj
	})
}
