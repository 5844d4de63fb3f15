package inflate

import (
	"math"
	"math/rand/v2"

	"github.com/chazu/inflate/pkg/lattice"
)

// DiamondSquare returns a (2^n+1)×(2^n+1) fractal noise grid. Corner values
// and the offsets added at subdivision depth k are uniform in
// [0, magnitude(k)). Edges wrap around during the square step.
func DiamondSquare(n int, magnitude func(depth int) float64, rng *rand.Rand) [][]float64 {
	r := func(depth int) float64 {
		return rng.Float64() * magnitude(depth)
	}
	size := 1<<n + 1
	grid := make([][]float64, size)
	for i := range grid {
		grid[i] = make([]float64, size)
	}
	d := size - 1
	grid[0][0] = r(0)
	grid[d][0] = r(0)
	grid[0][d] = r(0)
	grid[d][d] = r(0)

	wrap := func(i int) int {
		return ((i % size) + size) % size
	}

	depth := 0
	for d /= 2; d >= 1; d /= 2 {
		for x := d; x < size-1; x += 2 * d {
			for y := d; y < size-1; y += 2 * d {
				grid[x][y] = 0.25*(grid[x-d][y-d]+grid[x+d][y+d]+grid[x-d][y+d]+grid[x+d][y-d]) + r(1+depth)
			}
		}
		for x := 0; x < size; x += d {
			for y := d * ((x/d + 1) % 2); y < size; y += 2 * d {
				grid[x][y] = 0.25*(grid[wrap(x-d)][y]+grid[wrap(x+d)][y]+grid[x][wrap(y+d)]+grid[x][wrap(y-d)]) + r(1+depth)
			}
		}
		depth++
	}
	return grid
}

// AddNoise adds fractal texture of amplitude p.Noise to the masked points of
// grid. Each point samples the noise grid at its nearest index after its
// world position is scaled from the masked region's bounds.
func AddNoise(grid lattice.Grid, p Params) {
	if p.Noise <= 0 {
		return
	}
	points := grid.Mask().Points()
	if len(points) == 0 {
		return
	}

	n := int(math.Log(float64(max(grid.Cols(), grid.Rows())))/math.Log(2) + 2)
	rng := rand.New(rand.NewPCG(p.NoiseSeed, p.NoiseSeed^0x9e3779b97f4a7c15))
	noise := DiamondSquare(n, func(depth int) float64 {
		return 1 / math.Pow(float64(1+depth), p.NoiseExponent)
	}, rng)
	size := len(noise)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, col := range noise {
		for _, v := range col {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo == hi {
		return
	}

	left, bottom := math.Inf(1), math.Inf(1)
	right, top := math.Inf(-1), math.Inf(-1)
	for _, c := range points {
		v := grid.Coordinates(c.Col, c.Row)
		left, right = math.Min(left, v.X), math.Max(right, v.X)
		bottom, top = math.Min(bottom, v.Y), math.Max(top, v.Y)
	}
	extent := math.Max(right-left, top-bottom)

	index := func(v, origin float64) int {
		if extent == 0 {
			return 0
		}
		i := int(math.Round((v - origin) / extent * float64(size-1)))
		return min(max(i, 0), size-1)
	}

	heights := grid.Heights()
	for _, c := range points {
		v := grid.Coordinates(c.Col, c.Row)
		sample := noise[index(v.X, left)][index(v.Y, bottom)]
		heights.Set(c.Col, c.Row, heights.At(c.Col, c.Row)+(sample-lo)*p.Noise/(hi-lo))
	}
}
