package epa

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// minEdgeLength is the length under which an edge is considered degenerate
const minEdgeLength = 1e-10

// Edge is a polytope edge seen from the origin
type Edge struct {
	Normal   mgl64.Vec2 // Unit normal pointing out of the polytope
	Distance float64    // Signed distance from the origin to the edge line
	Index    int        // Position of the second endpoint in the polytope
}

// newEdge builds the edge from a to b of a polytope with the given winding.
// ok is false for edges too short to carry a normal.
func newEdge(a, b mgl64.Vec2, index int, counterClockwise bool) (edge Edge, ok bool) {
	e := b.Sub(a)

	var normal mgl64.Vec2
	if counterClockwise {
		normal = mgl64.Vec2{e.Y(), -e.X()}
	} else {
		normal = mgl64.Vec2{-e.Y(), e.X()}
	}

	length := normal.Len()
	if length < minEdgeLength || math.IsNaN(length) {
		return Edge{}, false
	}
	normal = normal.Mul(1.0 / length)

	return Edge{
		Normal:   normal,
		Distance: normal.Dot(a),
		Index:    index,
	}, true
}
