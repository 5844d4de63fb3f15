package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/chazu/inflate/pkg/geom"
	"github.com/chazu/inflate/pkg/inflate"
	"github.com/chazu/inflate/pkg/mesh"
	"github.com/chazu/inflate/pkg/source"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/samber/lo"
)

// colorPalette assigns display colours to parts whose path has none.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App converts polygon files into meshes.
type App struct {
	params     inflate.Params
	logger     *slog.Logger
	baseName   string
	colors     bool
	centerPage bool
}

// MeshData is the JSON form of one inflated part.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// Result is the JSON document written by -format json.
type Result struct {
	Meshes []MeshData `json:"meshes"`
}

// Convert loads the polygons in path and inflates each filled one.
func (a *App) Convert(ctx context.Context, path string) ([]mesh.Part, error) {
	polygons, err := source.Load(path)
	if err != nil {
		return nil, err
	}
	a.logger.Info("loaded polygons", "path", path, "count", len(polygons))
	return a.inflate(ctx, polygons)
}

func (a *App) inflate(ctx context.Context, polygons []geom.Polygon) ([]mesh.Part, error) {
	if !a.colors {
		polygons = lo.Map(polygons, func(p geom.Polygon, _ int) geom.Polygon {
			p.Color = nil
			return p
		})
	}
	if a.centerPage {
		offset, err := pageOffset(polygons)
		if err != nil {
			return nil, err
		}
		polygons = lo.Map(polygons, func(p geom.Polygon, _ int) geom.Polygon {
			return p.Translate(offset)
		})
	}
	return inflate.InflatePaths(ctx, polygons, a.params, a.baseName, inflate.WithLogger(a.logger))
}

// pageOffset moves the centre of the combined bounding box to the origin.
func pageOffset(polygons []geom.Polygon) (v2.Vec, error) {
	low, high := v2.Vec{X: math.Inf(1), Y: math.Inf(1)}, v2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range polygons {
		for _, s := range p.Segments {
			for _, v := range []v2.Vec{s.Start, s.End} {
				low = v2.Vec{X: math.Min(low.X, v.X), Y: math.Min(low.Y, v.Y)}
				high = v2.Vec{X: math.Max(high.X, v.X), Y: math.Max(high.Y, v.Y)}
			}
		}
	}
	if math.IsInf(low.X, 1) {
		return v2.Vec{}, fmt.Errorf("center page: %w", geom.ErrDegenerate)
	}
	return low.Add(high).MulScalar(-0.5), nil
}

// Write encodes parts in format: stl, scad, 3mf or json.
func (a *App) Write(w io.Writer, format string, parts []mesh.Part) error {
	if format != mesh.JSONFormat {
		return mesh.Encode(w, format, parts)
	}
	result := Result{Meshes: []MeshData{}}
	for i, p := range parts {
		ix := mesh.ToIndexed(p.Mesh, p.Name)
		color := colorPalette[i%len(colorPalette)]
		if cs := p.Mesh.Colors(); len(cs) > 0 && cs[0] != nil {
			color = hexColor(*cs[0])
		}
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: ix.Vertices,
			Normals:  ix.Normals,
			Indices:  ix.Indices,
			PartName: ix.PartName,
			Color:    color,
		})
	}
	enc := json.NewEncoder(w)
	return enc.Encode(result)
}

func hexColor(c geom.Color) string {
	r, g, b := c.RGB8()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
