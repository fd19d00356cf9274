package actor

import (
	"math"
	"math/rand"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// VertexGenerator produces the local vertex ring of a polygon.
// The collision pipeline never looks at the generator, only at the resulting points.
type VertexGenerator func(count int) []mgl64.Vec2

// RegularVertices places count vertices on the unit circle, counter-clockwise from +x.
func RegularVertices(count int) []mgl64.Vec2 {
	if count <= 0 {
		return nil
	}

	points := make([]mgl64.Vec2, count)
	step := 2 * math.Pi / float64(count)
	for i := range points {
		angle := float64(i) * step
		points[i] = mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
	}

	return points
}

// IrregularVertices returns a generator sampling count points in the unit disk
// and keeping their convex hull. The hull may have fewer than count vertices;
// if sampling keeps failing to produce a proper polygon it falls back to a regular one.
func IrregularVertices(rng *rand.Rand) VertexGenerator {
	return func(count int) []mgl64.Vec2 {
		if count < MinPoints {
			return RegularVertices(count)
		}

		samples := make([]mgl64.Vec2, count)
		for attempt := 0; attempt < 8; attempt++ {
			for i := range samples {
				angle := rng.Float64() * 2 * math.Pi
				radius := 0.5 + 0.5*rng.Float64()
				samples[i] = mgl64.Vec2{radius * math.Cos(angle), radius * math.Sin(angle)}
			}

			if hull := ConvexHull(samples); len(hull) >= MinPoints {
				return hull
			}
		}

		return RegularVertices(count)
	}
}

// ConvexHull computes the counter-clockwise convex hull of points (monotone chain).
// Collinear and duplicate points are dropped.
func ConvexHull(points []mgl64.Vec2) []mgl64.Vec2 {
	if len(points) < MinPoints {
		out := make([]mgl64.Vec2, len(points))
		copy(out, points)
		return out
	}

	sorted := make([]mgl64.Vec2, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X() != sorted[j].X() {
			return sorted[i].X() < sorted[j].X()
		}
		return sorted[i].Y() < sorted[j].Y()
	})

	hull := make([]mgl64.Vec2, 0, 2*len(sorted))

	// Lower hull
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// Upper hull
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// The last point repeats the first one
	return hull[:len(hull)-1]
}

// cross returns the z component of (a - o) x (b - o)
func cross(o, a, b mgl64.Vec2) float64 {
	return (a.X()-o.X())*(b.Y()-o.Y()) - (a.Y()-o.Y())*(b.X()-o.X())
}
