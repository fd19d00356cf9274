package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box on the (x, z) plane
type AABB struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// ComputeAABB returns the smallest box enclosing every point.
// An empty point set yields the zero box.
func ComputeAABB(points []mgl64.Vec2) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]
	for _, p := range points[1:] {
		min[0] = math.Min(min[0], p[0])
		min[1] = math.Min(min[1], p[1])
		max[0] = math.Max(max[0], p[0])
		max[1] = math.Max(max[1], p[1])
	}

	return AABB{Min: min, Max: max}
}

// ContainsPoint checks if a point is inside the AABB, boundary included
func (a AABB) ContainsPoint(point mgl64.Vec2) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y()
}

// Overlaps checks if two AABBs overlap.
// Intervals are open: boxes sharing only an edge or a corner do not overlap.
func (a AABB) Overlaps(other AABB) bool {
	return a.Min.X() < other.Max.X() && a.Max.X() > other.Min.X() &&
		a.Min.Y() < other.Max.Y() && a.Max.Y() > other.Min.Y()
}

func (a AABB) Center() mgl64.Vec2 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// HalfDiagonal is the radius of the circle centered on the box that encloses it
func (a AABB) HalfDiagonal() float64 {
	return a.Max.Sub(a.Min).Len() / 2
}
