// Package raster fills a lattice mask by testing every lattice point against
// a polygon with a crossing-number rule.
package raster

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/chazu/inflate/pkg/geom"
	"github.com/chazu/inflate/pkg/lattice"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// ChooseRotation returns an angle that bisects the largest gap between the
// directions (mod π) of the polygon's segments. Rays cast along that angle
// are as far from parallel to every segment as possible.
func ChooseRotation(segments []geom.Segment) float64 {
	phases := []float64{0}
	var dirs []float64
	for _, s := range segments {
		if s.Degenerate() {
			continue
		}
		d := s.End.Sub(s.Start)
		ph := math.Mod(math.Atan2(d.Y, d.X), math.Pi)
		if ph < 0 {
			ph += math.Pi
		}
		dirs = append(dirs, ph)
	}
	sort.Float64s(dirs)
	phases = append(phases, dirs...)
	phases = append(phases, math.Pi)

	best, gap := 0.0, 0.0
	for i := 1; i < len(phases); i++ {
		if phases[i]-phases[i-1] > gap {
			best = 0.5 * (phases[i] + phases[i-1])
			gap = phases[i] - phases[i-1]
		}
	}
	return best
}

// Rasterize marks every lattice point of grid that lies inside polygon under
// the polygon's fill rule. workers bounds the number of columns tested
// concurrently; 0 means GOMAXPROCS.
func Rasterize(ctx context.Context, grid lattice.Grid, polygon geom.Polygon, workers int) error {
	rot := mgl64.Rotate2D(-ChooseRotation(polygon.Segments))
	rotate := func(v v2.Vec) v2.Vec {
		r := rot.Mul2x1(mgl64.Vec2{v.X, v.Y})
		return v2.Vec{X: r[0], Y: r[1]}
	}

	lines := make([]geom.Segment, len(polygon.Segments))
	for i, s := range polygon.Segments {
		lines[i] = geom.Segment{Start: rotate(s.Start), End: rotate(s.End)}
	}

	mask := grid.Mask()
	err := lattice.ForEachColumn(ctx, grid.Cols(), workers, func(col int) error {
		for row := 0; row < grid.Rows(); row++ {
			z := rotate(grid.Coordinates(col, row))
			mask.Set(col, row, Inside(lines, z, polygon.Rule))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	return nil
}

// Inside casts a ray from z along +x and applies rule to the crossings.
// Horizontal segments never cross the ray.
func Inside(lines []geom.Segment, z v2.Vec, rule geom.FillRule) bool {
	sum := 0
	for _, l := range lines {
		a := l.Start.Sub(z)
		b := l.End.Sub(z)
		// Half-open straddle test: an endpoint on the ray counts as below
		// it, so a vertex is never counted twice.
		if (a.Y > 0) == (b.Y > 0) {
			continue
		}
		mInv := (b.X - a.X) / (b.Y - a.Y)
		if a.X-a.Y*mInv < 0 {
			continue
		}
		switch {
		case rule == geom.EvenOdd:
			sum++
		case a.Y < b.Y:
			sum++
		default:
			sum--
		}
	}
	if rule == geom.EvenOdd {
		return sum%2 != 0
	}
	return sum != 0
}
