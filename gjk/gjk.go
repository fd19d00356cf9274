// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm for 2D collision detection.
//
// GJK detects whether two convex polygons overlap by testing if their Minkowski difference
// contains the origin. The algorithm builds a simplex incrementally (point, segment,
// triangle), pruning it toward the origin on every iteration.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"errors"
	"fmt"
	"sync"

	"github.com/akmonengine/prism/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrNotConverged is returned when GJK reaches its iteration cap.
// The pair is then reported as not intersecting.
var ErrNotConverged = errors.New("gjk: iteration cap reached")

// MaxSimplexPoints is the size of the largest simplex in 2D (a triangle)
const MaxSimplexPoints = 3

// degenerateThreshold is the squared length under which a direction is considered null
const degenerateThreshold = 1e-16

// Simplex represents a set of 1-3 points in the Minkowski difference space.
// Points are kept in insertion order, the most recent one last.
type Simplex struct {
	Points [MaxSimplexPoints]mgl64.Vec2
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

// Push appends a point. Growing past MaxSimplexPoints is a defect in the
// calling sequence and panics.
func (s *Simplex) Push(point mgl64.Vec2) {
	if s.Count >= MaxSimplexPoints {
		panic(fmt.Sprintf("gjk: simplex overflow, cannot append point %d", s.Count+1))
	}
	s.Points[s.Count] = point
	s.Count++
}

// Last returns the most recently added point
func (s *Simplex) Last() mgl64.Vec2 {
	return s.Points[s.Count-1]
}

var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex{}
	},
}

// MinkowskiSupport computes a support point in the Minkowski difference (A - B).
//
// Returns:
//
//	Support point: furthestPoint(A, direction) - furthestPoint(B, -direction)
func MinkowskiSupport(a, b *actor.Polygon, direction mgl64.Vec2) mgl64.Vec2 {
	supportA := a.SupportWorld(direction)
	supportB := b.SupportWorld(direction.Mul(-1))
	return supportA.Sub(supportB)
}

// InitialDirection derives the first search direction from the centroids, from A toward B.
// Coincident centroids fall back to +x.
func InitialDirection(a, b *actor.Polygon) mgl64.Vec2 {
	direction := b.Centroid().Sub(a.Centroid())
	if direction.LenSqr() < degenerateThreshold {
		direction = mgl64.Vec2{1, 0}
	}
	return direction
}

// IterationCap returns the automatic iteration cap of a pair, proportional to
// the combined vertex count.
func IterationCap(a, b *actor.Polygon) int {
	return 4 * (a.PointCount() + b.PointCount())
}

// GJK performs collision detection between two convex polygons.
//
// Algorithm overview:
//  1. Start with the centroid direction, add the first support point, flip the direction
//  2. Add a new support point; if it does not pass the origin → no collision
//  3. Prune the simplex to the feature closest to the origin and update the direction
//  4. A triangle enclosing the origin → collision
//
// maxIterations <= 0 selects IterationCap. Reaching the cap returns false with
// an error wrapping ErrNotConverged.
//
// On collision the simplex holds a triangle enclosing the origin, which EPA
// uses as its initial polytope. Contact along a boundary only (zero overlap
// area) is normally reported as no collision; in the rare case it is not,
// EPA yields a zero penetration.
func GJK(a, b *actor.Polygon, simplex *Simplex, maxIterations int) (bool, error) {
	if maxIterations <= 0 {
		maxIterations = IterationCap(a, b)
	}

	direction := InitialDirection(a, b)

	simplex.Reset()
	simplex.Push(MinkowskiSupport(a, b, direction))
	direction = direction.Mul(-1)

	for i := 0; i < maxIterations; i++ {
		newPoint := MinkowskiSupport(a, b, direction)

		// The new point does not pass the origin in the search direction:
		// the origin is outside the Minkowski difference.
		if newPoint.Dot(direction) <= 0 {
			return false, nil
		}

		simplex.Push(newPoint)

		if containsOrigin(simplex, &direction) {
			return true, nil
		}
	}

	return false, fmt.Errorf("%w after %d iterations", ErrNotConverged, maxIterations)
}

// containsOrigin tests if the simplex contains the origin and refines the simplex.
//
// Behavior by simplex dimension:
//   - 2 points (segment): direction becomes the segment normal facing the origin
//   - 3 points (triangle): if the origin is outside edge AB or AC, drop the opposite
//     vertex and search along that edge's normal; otherwise the origin is enclosed
//
// Returns true only for a triangle enclosing the origin.
func containsOrigin(simplex *Simplex, direction *mgl64.Vec2) bool {
	switch simplex.Count {
	case 2:
		return line(simplex, direction)
	case 3:
		return triangle(simplex, direction)
	}
	panic(fmt.Sprintf("gjk: containsOrigin called with %d simplex points", simplex.Count))
}

// line handles the segment case (A most recent, B previous).
func line(simplex *Simplex, direction *mgl64.Vec2) bool {
	a := simplex.Points[1]
	b := simplex.Points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	abPerp := tripleProduct(ab, ao, ab)
	if abPerp.LenSqr() < degenerateThreshold {
		// The origin lies on the line AB: either side may lead to it
		abPerp = mgl64.Vec2{-ab.Y(), ab.X()}
		if abPerp.LenSqr() < degenerateThreshold {
			// A and B coincide
			abPerp = ao
		}
	}

	*direction = abPerp
	return false
}

// triangle handles the triangle case (A most recent, then B, then C).
func triangle(simplex *Simplex, direction *mgl64.Vec2) bool {
	a := simplex.Points[2]
	b := simplex.Points[1]
	c := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	// Edge normals pointing away from the opposite vertex
	abPerp := tripleProduct(ac, ab, ab)
	acPerp := tripleProduct(ab, ac, ac)

	// Collinear points give null normals: the triangle has no area and cannot
	// enclose the origin. Keep the newest edge and search across it.
	if abPerp.LenSqr() < degenerateThreshold || acPerp.LenSqr() < degenerateThreshold {
		simplex.Points[0] = b
		simplex.Points[1] = a
		simplex.Count = 2
		return line(simplex, direction)
	}

	// An origin exactly on edge AB or AC counts as outside: boundary contact
	// is searched across the edge, where the next support point stops the loop.

	// Region AB: drop C
	if abPerp.Dot(ao) >= 0 {
		simplex.Points[0] = b
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = abPerp
		return false
	}

	// Region AC: drop B
	if acPerp.Dot(ao) >= 0 {
		simplex.Points[0] = c
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = acPerp
		return false
	}

	return true
}

// tripleProduct computes (a x b) x c in the plane: b(a.c) - a(b.c)
func tripleProduct(a, b, c mgl64.Vec2) mgl64.Vec2 {
	return b.Mul(a.Dot(c)).Sub(a.Mul(b.Dot(c)))
}
