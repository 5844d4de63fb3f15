package mesh

import (
	"fmt"
	"io"
)

// Formats lists the file formats Encode accepts.
var Formats = []string{"stl", "scad", "3mf"}

// JSONFormat names the indexed-mesh JSON view offered next to Formats by the
// command and the server. Encode does not write it.
const JSONFormat = "json"

// Encode writes parts as stl, scad or 3mf. STL has no notion of parts, so
// their triangles are concatenated.
func Encode(w io.Writer, format string, parts []Part) error {
	switch format {
	case "stl":
		var all Mesh
		for _, p := range parts {
			all = append(all, p.Mesh...)
		}
		return WriteSTL(w, all)
	case "scad":
		return WriteSCADDocument(w, parts)
	case "3mf":
		return Write3MF(w, parts)
	}
	return fmt.Errorf("mesh: unknown format %q", format)
}
