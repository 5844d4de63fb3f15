package inflate

import (
	"context"
	"fmt"
	"math"

	"github.com/chazu/inflate/pkg/geom"
	"github.com/chazu/inflate/pkg/lattice"
)

// MinDistance is the smallest normalized edge distance kept in a
// DistanceField. The solver divides by these values.
const MinDistance = 1e-9

// DistanceField holds, for every lattice point and neighbour direction, the
// distance to the polygon boundary along that direction divided by the
// neighbour spacing, clamped to [MinDistance, 1].
type DistanceField struct {
	k, rows int
	data    []float64
}

// NewDistanceField computes the field for the masked points of grid.
// Unmasked points hold 1.
func NewDistanceField(ctx context.Context, grid lattice.Grid, polygon geom.Polygon, workers int) (*DistanceField, error) {
	k := grid.NumNeighbors()
	f := &DistanceField{k: k, rows: grid.Rows(), data: make([]float64, grid.Cols()*grid.Rows()*k)}
	for i := range f.data {
		f.data[i] = 1
	}
	mask := grid.Mask()
	err := lattice.ForEachColumn(ctx, grid.Cols(), workers, func(col int) error {
		for row := 0; row < grid.Rows(); row++ {
			if !mask.Inside(col, row) {
				continue
			}
			p := grid.Coordinates(col, row)
			for i := 0; i < k; i++ {
				d := polygon.DistanceToEdge(p, grid.Direction(i)) / grid.DeltaLength(col, row, i)
				f.data[f.index(col, row, i)] = math.Max(MinDistance, math.Min(d, 1))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("inflate: edge distance map: %w", err)
	}
	return f, nil
}

func (f *DistanceField) index(col, row, i int) int {
	return (col*f.rows+row)*f.k + i
}

// At returns the normalized distance from (col,row) towards neighbour i.
func (f *DistanceField) At(col, row, i int) float64 {
	return f.data[f.index(col, row, i)]
}
