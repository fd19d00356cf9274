package epa

import (
	"math"
	"sync"

	"github.com/akmonengine/prism/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Polytope is the convex polygon expanded by EPA inside the Minkowski difference.
// Its points form a closed ring in insertion order; the winding is fixed by the
// initial triangle and preserved by every insertion.
type Polytope struct {
	points           []mgl64.Vec2
	counterClockwise bool
}

var polytopePool = sync.Pool{
	New: func() interface{} {
		return &Polytope{
			points: make([]mgl64.Vec2, 0, polytopeInitialCapacity),
		}
	},
}

// Reset loads the polytope with the points of a GJK triangle
func (p *Polytope) Reset(simplex *gjk.Simplex) {
	p.points = append(p.points[:0], simplex.Points[:simplex.Count]...)

	a, b, c := p.points[0], p.points[1], p.points[2]
	area := (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
	p.counterClockwise = area >= 0
}

func (p *Polytope) Len() int {
	return len(p.points)
}

func (p *Polytope) Points() []mgl64.Vec2 {
	return p.points
}

// ClosestEdge returns the edge nearest to the origin. Degenerate edges are
// skipped; ok is false when no edge could be evaluated.
func (p *Polytope) ClosestEdge() (closest Edge, ok bool) {
	closest.Distance = math.Inf(1)

	n := len(p.points)
	for i := 0; i < n; i++ {
		j := i + 1
		edge, valid := newEdge(p.points[i], p.points[j%n], j, p.counterClockwise)
		if !valid {
			continue
		}

		if edge.Distance < closest.Distance {
			closest = edge
			ok = true
		}
	}

	return closest, ok
}

// Insert places point at index, splitting the edge ending there
func (p *Polytope) Insert(index int, point mgl64.Vec2) {
	p.points = append(p.points, mgl64.Vec2{})
	copy(p.points[index+1:], p.points[index:])
	p.points[index] = point
}
