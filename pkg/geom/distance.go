package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// DistanceToEdge casts a ray from origin along direction and returns the
// distance to the first polygon segment it meets. A point lying on a segment
// collinear with the ray is at distance 0. If the ray meets nothing the
// result is +Inf.
func (p Polygon) DistanceToEdge(origin, direction v2.Vec) float64 {
	length := direction.Length()
	if length == 0 {
		return math.Inf(1)
	}
	dir := direction.MulScalar(1 / length)
	best := math.Inf(1)
	for _, s := range p.Segments {
		d, onEdge := rayHit(toRayFrame(s.Start.Sub(origin), dir), toRayFrame(s.End.Sub(origin), dir), best)
		if onEdge {
			return 0
		}
		best = d
	}
	return best
}

// toRayFrame rotates v so that the unit vector dir maps onto +x.
func toRayFrame(v, dir v2.Vec) v2.Vec {
	return v2.Vec{
		X: v.X*dir.X + v.Y*dir.Y,
		Y: v.Y*dir.X - v.X*dir.Y,
	}
}

// rayHit intersects the segment a-b, already in ray frame, with the +x
// half axis and returns the updated best distance. onEdge is set when the
// segment lies along the axis and covers the origin.
func rayHit(a, b v2.Vec, best float64) (d float64, onEdge bool) {
	switch {
	case a.Y == 0 && b.Y == 0:
		if (a.X <= 0 && b.X >= 0) || (b.X <= 0 && a.X >= 0) {
			return 0, true
		}
		return nearer(nearer(best, a.X), b.X), false
	case (a.Y <= 0 && 0 <= b.Y) || (b.Y <= 0 && 0 <= a.Y):
		mInv := (b.X - a.X) / (b.Y - a.Y)
		return nearer(best, a.X-a.Y*mInv), false
	}
	return best, false
}

func nearer(best, x float64) float64 {
	if 0 <= x && x < best {
		return x
	}
	return best
}
