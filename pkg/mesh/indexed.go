package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Indexed is a flat, indexed triangle mesh suitable for rendering.
// vertices has 3 floats per vertex (x,y,z), normals has 3 floats per vertex,
// indices has 3 uint32s per triangle.
type Indexed struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"`
}

// ToIndexed deduplicates identical vertices in insertion order. Vertex
// normals are the normalized sum of the normals of the faces sharing them.
func ToIndexed(m Mesh, partName string) *Indexed {
	out := &Indexed{PartName: partName}
	index := make(map[v3.Vec]uint32)
	var normals []v3.Vec
	for _, t := range m {
		n := Normal(t.V)
		for _, v := range t.V {
			i, ok := index[v]
			if !ok {
				i = uint32(len(normals))
				index[v] = i
				normals = append(normals, v3.Vec{})
				out.Vertices = append(out.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			}
			normals[i] = normals[i].Add(n)
			out.Indices = append(out.Indices, i)
		}
	}
	out.Normals = make([]float32, 0, len(normals)*3)
	for _, n := range normals {
		if l := n.Length(); l > 0 {
			n = n.MulScalar(1 / l)
		}
		out.Normals = append(out.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	return out
}

// VertexCount returns the number of vertices.
func (m *Indexed) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Indexed) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Indexed) IsEmpty() bool {
	return len(m.Vertices) == 0
}
