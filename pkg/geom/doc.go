// Package geom defines the planar input model for inflation: polygons made
// of line segments, fill rules and colours. Polygons are immutable once
// built; every operation returns a new value.
package geom
