package mesh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// stlMargin keeps every written coordinate strictly positive.
const stlMargin = 0.001

// WriteSTL writes the mesh as binary STL. Vertices are translated so the
// smallest coordinate on each axis is stlMargin. When the mesh uses more than
// one colour every triangle carries a 15-bit colour in its attribute word;
// uncoloured triangles in such a mesh are written white.
func WriteSTL(w io.Writer, m Mesh) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("mesh: writing STL header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m))); err != nil {
		return fmt.Errorf("mesh: writing STL triangle count: %w", err)
	}

	mono := len(m.Colors()) <= 1
	var offset v3.Vec
	if len(m) > 0 {
		offset = m.Bounds().Min.Sub(v3.Vec{X: stlMargin, Y: stlMargin, Z: stlMargin})
	}

	var rec [50]byte
	for _, t := range m {
		n := Normal(t.V)
		putVec(rec[0:12], n)
		for j, v := range t.V {
			putVec(rec[12+12*j:24+12*j], v.Sub(offset))
		}
		var attr uint16
		if !mono {
			attr = stlColor(t)
		}
		binary.LittleEndian.PutUint16(rec[48:50], attr)
		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("mesh: writing STL triangle: %w", err)
		}
	}
	return bw.Flush()
}

func putVec(b []byte, v v3.Vec) {
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(float32(v.Z)))
}

func stlColor(t Triangle) uint16 {
	r, g, b := uint8(255), uint8(255), uint8(255)
	if t.Color != nil {
		r, g, b = t.Color.RGB8()
	}
	return 0x8000 | uint16(r>>3)<<10 | uint16(g>>3)<<5 | uint16(b>>3)
}
