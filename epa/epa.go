// Package epa implements the Expanding Polytope Algorithm for computing penetration depth.
//
// EPA is run after GJK detects a collision to determine the minimum translation
// vector (MTV): the shortest displacement separating the two polygons.
//
// The algorithm expands a polytope (starting from GJK's final triangle) toward the
// boundary of the Minkowski difference, until the edge closest to the origin is an
// edge of the Minkowski difference itself.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation on 3D Game Objects" (2001)
package epa

import (
	"errors"
	"fmt"

	"github.com/akmonengine/prism/actor"
	"github.com/akmonengine/prism/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultTolerance defines when EPA has converged.
	// If a new support point improves the closest edge distance by less than this
	// threshold, that edge lies on the Minkowski difference boundary.
	DefaultTolerance = 1e-5

	// DefaultMaxIterations limits polytope expansion.
	// Polygons have few vertices, convergence takes a handful of iterations.
	DefaultMaxIterations = 64

	polytopeInitialCapacity = 8
)

// ErrNotConverged is returned with the best estimate when the iteration cap is reached
var ErrNotConverged = errors.New("epa: iteration cap reached")

// Options tunes the expansion. Zero fields select the defaults.
type Options struct {
	Tolerance     float64
	MaxIterations int
}

// WithDefaults replaces zero fields with the package defaults
func (o Options) WithDefaults() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}

// EPA computes the penetration vector of two overlapping convex polygons.
//
// Algorithm overview:
//  1. Start with the GJK triangle enclosing the origin
//  2. Find the polytope edge closest to the origin
//  3. Get the support point along that edge's normal
//  4. If it does not move past the edge by more than the tolerance → done
//  5. Otherwise insert the support point between the edge endpoints, repeat from 2
//
// The returned vector is normal * depth in Minkowski (A - B) space: it points
// from A toward B, moving A by -v/2 and B by +v/2 separates them.
//
// A simplex with fewer than 3 points is a defect in the calling sequence and panics.
// When the iteration cap is reached, the closest edge found so far is returned
// together with an error wrapping ErrNotConverged.
func EPA(a, b *actor.Polygon, simplex *gjk.Simplex, opts Options) (mgl64.Vec2, error) {
	if simplex == nil || simplex.Count < gjk.MaxSimplexPoints {
		count := 0
		if simplex != nil {
			count = simplex.Count
		}
		panic(fmt.Sprintf("epa: expected a %d-point simplex enclosing the origin, got %d points", gjk.MaxSimplexPoints, count))
	}
	opts = opts.WithDefaults()

	polytope := polytopePool.Get().(*Polytope)
	defer polytopePool.Put(polytope)
	polytope.Reset(simplex)

	var best Edge
	var found bool

	for i := 0; i < opts.MaxIterations; i++ {
		closest, ok := polytope.ClosestEdge()
		if !ok {
			// Every edge is degenerate, there is no direction to push along
			break
		}
		best, found = closest, true

		support := gjk.MinkowskiSupport(a, b, closest.Normal)
		distance := support.Dot(closest.Normal)

		if distance-closest.Distance < opts.Tolerance {
			return closest.Normal.Mul(distance), nil
		}

		polytope.Insert(closest.Index, support)
	}

	if !found {
		return mgl64.Vec2{}, nil
	}

	return best.Normal.Mul(best.Distance), fmt.Errorf("%w after %d iterations", ErrNotConverged, opts.MaxIterations)
}
