package source

import (
	"fmt"
	"io"

	"github.com/chazu/inflate/pkg/geom"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/rpaloschi/dxf-go/document"
	"github.com/rpaloschi/dxf-go/entities"
)

// FromDXF reads closed LWPOLYLINE and POLYLINE entities, including those
// defined inside blocks. A polyline counts as closed when its closed flag is
// set or its first and last vertices coincide. Each becomes a single-ring
// polygon named after its layer.
func FromDXF(r io.Reader) ([]geom.Polygon, error) {
	doc, err := document.DxfDocumentFromStream(r)
	if err != nil {
		return nil, fmt.Errorf("source: decoding DXF: %w", err)
	}

	var out []geom.Polygon
	for _, e := range doc.Entities.Entities {
		if p, ok := dxfPolygon(e); ok {
			out = append(out, p)
		}
	}
	for _, block := range doc.Blocks {
		for _, e := range block.Entities {
			if p, ok := dxfPolygon(e); ok {
				out = append(out, p)
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("source: %w", ErrNoPolygons)
	}
	// Blocks come from a map.
	geom.SortPaths(out)
	return out, nil
}

func dxfPolygon(e any) (geom.Polygon, bool) {
	var (
		pts    []v2.Vec
		closed bool
		layer  string
	)
	switch e := e.(type) {
	case *entities.LWPolyline:
		for _, v := range e.Points {
			pts = append(pts, v2.Vec{X: v.Point.X, Y: v.Point.Y})
		}
		closed, layer = e.Closed, e.LayerName
	case *entities.Polyline:
		for _, v := range e.Vertices {
			pts = append(pts, v2.Vec{X: v.Location.X, Y: v.Location.Y})
		}
		closed, layer = e.Closed, e.LayerName
	default:
		return geom.Polygon{}, false
	}

	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
		closed = true
	}
	if !closed || len(pts) < 3 {
		return geom.Polygon{}, false
	}
	p := geom.NewPolygonFromRings([][]v2.Vec{pts}, geom.EvenOdd, nil)
	p.Name = layer
	return p, true
}
