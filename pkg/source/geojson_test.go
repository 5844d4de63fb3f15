package source_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/inflate/pkg/geom"
	"github.com/chazu/inflate/pkg/source"
)

const collection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "frame", "fill": "#ff0000", "fill-rule": "nonzero"},
      "geometry": {"type": "Polygon", "coordinates": [
        [[0,0],[10,0],[10,10],[0,10],[0,0]],
        [[3,3],[3,7],[7,7],[7,3],[3,3]]
      ]}
    },
    {
      "type": "Feature",
      "properties": {"fill": "none"},
      "geometry": {"type": "LineString", "coordinates": [[20,0],[25,0],[25,5],[20,0]]}
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {"type": "LineString", "coordinates": [[0,0],[1,1]]}
    },
    {
      "type": "Feature",
      "properties": null,
      "geometry": {"type": "MultiPolygon", "coordinates": [
        [[[30,0],[31,0],[31,1],[30,0]]],
        [[[40,0],[41,0],[41,1],[40,0]]]
      ]}
    },
    {
      "type": "Feature",
      "properties": {"name": "dot"},
      "geometry": {"type": "Point", "coordinates": [1,1]}
    }
  ]
}`

func TestFromGeoJSON(t *testing.T) {
	polys, err := source.FromGeoJSON([]byte(collection))
	if err != nil {
		t.Fatal(err)
	}
	if len(polys) != 3 {
		t.Fatalf("got %d polygons, want 3", len(polys))
	}

	frame := polys[0]
	if frame.Name != "frame" || frame.Rule != geom.NonZero {
		t.Errorf("frame = %q %v", frame.Name, frame.Rule)
	}
	if frame.Color == nil || *frame.Color != (geom.Color{R: 1}) {
		t.Errorf("frame colour = %v", frame.Color)
	}
	if len(frame.Segments) != 8 {
		t.Errorf("frame has %d segments, want 8", len(frame.Segments))
	}

	stroke := polys[1]
	if !stroke.NoFill || stroke.Color != nil || len(stroke.Segments) != 3 {
		t.Errorf("stroke = %+v", stroke)
	}

	multi := polys[2]
	if multi.NoFill || multi.Rule != geom.EvenOdd || len(multi.Segments) != 6 {
		t.Errorf("multipolygon = %+v", multi)
	}
}

func TestFromGeoJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"no polygons", `{"type":"FeatureCollection","features":[]}`, source.ErrNoPolygons},
		{"bad json", `{"type":`, nil},
		{"bad colour", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"fill":"#zzz"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := source.FromGeoJSON([]byte(tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shape.geojson")
	if err := os.WriteFile(path, []byte(collection), 0o644); err != nil {
		t.Fatal(err)
	}
	polys, err := source.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(polys) != 3 {
		t.Errorf("got %d polygons", len(polys))
	}
	if _, err := source.Load(filepath.Join(dir, "shape.svg")); err == nil {
		t.Error("unsupported extension accepted")
	}
	if _, err := source.Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
}
