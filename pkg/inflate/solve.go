package inflate

import (
	"context"
	"fmt"
	"math"

	"github.com/chazu/inflate/pkg/lattice"
)

// minAlpha replaces a non-positive damping factor.
const minAlpha = 1e-15

// SolveStats describes a finished relaxation.
type SolveStats struct {
	Iterations int
	Alpha      float64
	// PeakRaw is the largest height before normalization.
	PeakRaw float64
}

// DefaultIterations is the iteration count used when Params.Iterations is 0.
func DefaultIterations(grid lattice.Grid) int {
	return 25 * max(grid.Cols(), grid.Rows())
}

// Alpha returns the per-sweep damping factor for the given flatness.
func Alpha(grid lattice.Grid, flatness float64) float64 {
	n := float64(max(grid.Cols(), grid.Rows()))
	a := 1 - 500*flatness/(n*n)
	if a <= 0 {
		return minAlpha
	}
	return a
}

// Solve relaxes the height field of grid for a fixed number of sweeps and
// normalizes it so the highest point equals p.Thickness.
//
// Every sweep reads only the previous sweep's buffer, so the result does not
// depend on the order in which points are updated or on p.Workers.
func Solve(ctx context.Context, grid lattice.Grid, field *DistanceField, p Params, opts ...Option) (SolveStats, error) {
	logger := newOptions(opts).logger
	iterations := p.Iterations
	if iterations == 0 {
		iterations = DefaultIterations(grid)
	}
	stats := SolveStats{Iterations: iterations, Alpha: Alpha(grid, p.Flatness)}

	cols, rows, k := grid.Cols(), grid.Rows(), grid.NumNeighbors()
	mask := grid.Mask()
	inside := make([][]int, cols)
	for _, c := range mask.Points() {
		inside[c.Col] = append(inside[c.Col], c.Row)
	}

	exponent := p.Exponent
	invExponent := 1 / exponent
	prev := grid.Heights()
	prev.Fill(0)
	next := lattice.NewField(cols, rows)

	report := max(iterations/10, 1)
	for it := 0; it < iterations; it++ {
		err := lattice.ForEachColumn(ctx, cols, p.Workers, func(col int) error {
			for _, row := range inside[col] {
				s, w := 0.0, 0.0
				for i := 0; i < k; i++ {
					d := field.At(col, row, i)
					nc, nr := grid.Neighbor(col, row, i)
					h := prev.AtOrZero(nc, nr)
					w += 1 / d
					s += math.Pow(math.Pow(h, invExponent)+d, exponent) / d
				}
				next.Set(col, row, stats.Alpha*s/w)
			}
			return nil
		})
		if err != nil {
			return stats, fmt.Errorf("inflate: relaxation sweep %d: %w", it, err)
		}
		prev.Swap(next)
		if (it+1)%report == 0 {
			logger.Debug("inflating", "iteration", it+1, "of", iterations)
		}
	}

	stats.PeakRaw = prev.Max()
	if !(stats.PeakRaw > 0) {
		logger.Warn("empty height field, nothing to normalize", "masked", mask.Count())
		return stats, nil
	}
	peak := math.Pow(stats.PeakRaw, invExponent)
	values := prev.Values()
	for i, v := range values {
		values[i] = math.Pow(v, invExponent) / peak * p.Thickness
	}
	return stats, nil
}
