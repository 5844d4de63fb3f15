// Package inflate turns a closed polygon into a raised surface mesh. The
// polygon is rasterized onto a lattice, a height field is relaxed over the
// lattice with weights taken from the true boundary distance, and the field
// is triangulated and trimmed back to the polygon outline.
package inflate

import (
	"context"
	"fmt"
	"strconv"

	"github.com/chazu/inflate/pkg/geom"
	"github.com/chazu/inflate/pkg/lattice"
	"github.com/chazu/inflate/pkg/mesh"
	"github.com/chazu/inflate/pkg/raster"
	"github.com/samber/lo"
)

// Inflate converts polygon into a mesh. A degenerate polygon aborts the
// conversion before any work is done.
func Inflate(ctx context.Context, polygon geom.Polygon, p Params, opts ...Option) (mesh.Mesh, error) {
	o := newOptions(opts)
	grid, err := inflateHeights(ctx, polygon, p, o)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("meshing", "polygon", polygon.Name)
	raw := grid.Triangulate(lattice.MeshOptions{
		TwoSided: p.TwoSided,
		FlatBase: p.FlatBase,
		Color:    polygon.Color,
	})
	if !p.Trim {
		return raw, nil
	}

	o.logger.Debug("fixing outer faces", "triangles", len(raw))
	return Trim(raw, grid, polygon), nil
}

// InflateHeights runs the conversion up to the finished height field and
// returns the lattice holding it.
func InflateHeights(ctx context.Context, polygon geom.Polygon, p Params, opts ...Option) (lattice.Grid, error) {
	return inflateHeights(ctx, polygon, p, newOptions(opts))
}

func inflateHeights(ctx context.Context, polygon geom.Polygon, p Params, o options) (lattice.Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	bounds, err := polygon.Bounds()
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	spacing := p.Spacing
	if spacing == 0 {
		spacing = lattice.SpacingFor(bounds, p.Resolution)
	}
	topology := lattice.Rect
	if p.Hex {
		topology = lattice.Hex
	}
	grid, err := lattice.New(topology, bounds, spacing)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}

	logger := o.logger.With("polygon", polygon.Name)
	logger.Debug("rasterizing", "topology", topology, "cols", grid.Cols(), "rows", grid.Rows(), "spacing", spacing)
	if err := raster.Rasterize(ctx, grid, polygon, p.Workers); err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}

	logger.Debug("making edge distance map", "masked", grid.Mask().Count())
	field, err := NewDistanceField(ctx, grid, polygon, p.Workers)
	if err != nil {
		return nil, err
	}

	stats, err := Solve(ctx, grid, field, p, WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.Debug("relaxed", "iterations", stats.Iterations, "alpha", stats.Alpha)

	AddNoise(grid, p)
	return grid, nil
}

// InflatePaths inflates every filled path separately, in reading order, and
// names the parts inflated_<base>, or inflated_<base>_<n> when there is more
// than one.
func InflatePaths(ctx context.Context, paths []geom.Polygon, p Params, base string, opts ...Option) ([]mesh.Part, error) {
	filled := lo.Filter(paths, func(path geom.Polygon, _ int) bool {
		return !path.NoFill && len(path.Segments) > 0
	})
	geom.SortPaths(filled)

	parts := make([]mesh.Part, 0, len(filled))
	for i, path := range filled {
		name := "inflated_" + base
		if len(filled) > 1 {
			name += "_" + strconv.Itoa(i+1)
		}
		if path.Name == "" {
			path.Name = name
		}
		m, err := Inflate(ctx, path, p, opts...)
		if err != nil {
			return nil, fmt.Errorf("inflate: path %s: %w", name, err)
		}
		parts = append(parts, mesh.Part{Name: name, Mesh: m})
	}
	return parts, nil
}
