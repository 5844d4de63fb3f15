package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/inflate/pkg/geom"
)

// Load reads polygons from a file, picking the decoder by extension:
// .geojson and .json for GeoJSON, .dxf for DXF.
func Load(path string) ([]geom.Polygon, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		return FromGeoJSON(data)
	case ".dxf":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		defer f.Close()
		return FromDXF(f)
	default:
		return nil, fmt.Errorf("source: unsupported file type %q", ext)
	}
}
