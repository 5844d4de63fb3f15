package mesh

import (
	"fmt"
	"image/color"
	"io"

	"github.com/hpinc/go3mf"
)

// materialsID is the resource ID of the base-material group holding part
// colours.
const materialsID = 1

// Write3MF writes the parts as a 3MF package in millimetres, one object per
// part. Coloured parts reference an entry of a shared base-material group.
func Write3MF(w io.Writer, parts []Part) error {
	model := &go3mf.Model{Units: go3mf.UnitMillimeter}
	materials := &go3mf.BaseMaterials{ID: materialsID}

	for i, p := range parts {
		id := uint32(materialsID + 1 + i)
		obj := &go3mf.Object{
			ID:   id,
			Name: p.Name,
			Type: go3mf.ObjectTypeModel,
			Mesh: to3MFMesh(p.Mesh),
		}
		if len(p.Mesh) > 0 && p.Mesh[0].Color != nil {
			r, g, b := p.Mesh[0].Color.RGB8()
			obj.PID = materialsID
			obj.PIndex = uint32(len(materials.Materials))
			materials.Materials = append(materials.Materials, go3mf.Base{
				Name:  p.Name,
				Color: color.RGBA{R: r, G: g, B: b, A: 255},
			})
		}
		model.Resources.Objects = append(model.Resources.Objects, obj)
		model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: id})
	}
	if len(materials.Materials) > 0 {
		model.Resources.Assets = append(model.Resources.Assets, materials)
	}

	if err := go3mf.NewEncoder(w).Encode(model); err != nil {
		return fmt.Errorf("mesh: encoding 3MF: %w", err)
	}
	return nil
}

func to3MFMesh(m Mesh) *go3mf.Mesh {
	idx := ToIndexed(m, "")
	out := new(go3mf.Mesh)
	for i := 0; i < idx.VertexCount(); i++ {
		out.Vertices.Vertex = append(out.Vertices.Vertex, go3mf.Point3D{
			idx.Vertices[3*i], idx.Vertices[3*i+1], idx.Vertices[3*i+2],
		})
	}
	for i := 0; i < idx.TriangleCount(); i++ {
		out.Triangles.Triangle = append(out.Triangles.Triangle, go3mf.Triangle{
			V1: idx.Indices[3*i], V2: idx.Indices[3*i+1], V3: idx.Indices[3*i+2],
		})
	}
	return out
}
