// Package source reads polygons from GeoJSON and DXF documents.
package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chazu/inflate/pkg/geom"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrNoPolygons is returned when a document holds nothing that can be
// inflated.
var ErrNoPolygons = errors.New("no closed polygons found")

// FromGeoJSON decodes a FeatureCollection. Every Polygon or MultiPolygon
// feature becomes one polygon whose rings are all subpaths; closed
// LineStrings become single-ring polygons. The feature properties "fill"
// (a colour or "none"), "fill-rule" and "name" are honoured.
func FromGeoJSON(data []byte) ([]geom.Polygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("source: decoding GeoJSON: %w", err)
	}

	var out []geom.Polygon
	for i, f := range fc.Features {
		rings := featureRings(f.Geometry)
		if len(rings) == 0 {
			continue
		}
		p, err := polygonFromFeature(f, rings)
		if err != nil {
			return nil, fmt.Errorf("source: feature %d: %w", i, err)
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("source: %w", ErrNoPolygons)
	}
	return out, nil
}

func featureRings(g orb.Geometry) [][]v2.Vec {
	var rings [][]v2.Vec
	switch g := g.(type) {
	case orb.Polygon:
		for _, r := range g {
			rings = append(rings, ringPoints(r))
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			for _, r := range poly {
				rings = append(rings, ringPoints(r))
			}
		}
	case orb.LineString:
		if len(g) > 2 && g[0].Equal(g[len(g)-1]) {
			rings = append(rings, ringPoints(orb.Ring(g)))
		}
	case orb.MultiLineString:
		for _, ls := range g {
			if len(ls) > 2 && ls[0].Equal(ls[len(ls)-1]) {
				rings = append(rings, ringPoints(orb.Ring(ls)))
			}
		}
	}
	return rings
}

// ringPoints drops the repeated closing point; polygon rings close
// implicitly.
func ringPoints(r orb.Ring) []v2.Vec {
	pts := make([]v2.Vec, 0, len(r))
	for _, p := range r {
		pts = append(pts, v2.Vec{X: p.X(), Y: p.Y()})
	}
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts
}

func polygonFromFeature(f *geojson.Feature, rings [][]v2.Vec) (geom.Polygon, error) {
	rule := geom.EvenOdd
	if s, ok := stringProperty(f, "fill-rule"); ok {
		r, err := geom.ParseFillRule(s)
		if err != nil {
			return geom.Polygon{}, err
		}
		rule = r
	}

	var color *geom.Color
	noFill := false
	if s, ok := stringProperty(f, "fill"); ok {
		c, err := geom.ParseColor(s)
		if err != nil {
			return geom.Polygon{}, err
		}
		color = c
		noFill = strings.EqualFold(strings.TrimSpace(s), "none")
	}

	p := geom.NewPolygonFromRings(rings, rule, color)
	p.NoFill = noFill
	if name, ok := stringProperty(f, "name"); ok {
		p.Name = name
	}
	return p, nil
}

func stringProperty(f *geojson.Feature, key string) (string, bool) {
	if f.Properties == nil {
		return "", false
	}
	s, ok := f.Properties[key].(string)
	return s, ok
}
