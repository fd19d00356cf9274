package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// ID identifies a polygon across ticks
type ID = uuid.UUID

// MinPoints is the smallest vertex count taking part in collision detection
const MinPoints = 3

// Polygon is a convex prism projected onto the (x, z) plane.
//
// The local vertex ring is fixed at construction; its insertion order is the
// winding order. World vertices, bounding box and centroid are derived from
// the transform and cached until the transform changes.
type Polygon struct {
	ID   ID
	Name string

	points    []mgl64.Vec2
	transform Transform

	dirty    bool
	world    []mgl64.Vec2
	aabb     AABB
	centroid mgl64.Vec2
}

// NewPolygon creates a polygon from local-space points.
// The points are copied, later changes to the slice do not affect the polygon.
func NewPolygon(id ID, points []mgl64.Vec2, transform Transform) *Polygon {
	local := make([]mgl64.Vec2, len(points))
	copy(local, points)

	return &Polygon{
		ID:        id,
		points:    local,
		transform: transform,
		dirty:     true,
	}
}

// NewPolygonFrom generates the local points with generator and builds the polygon.
func NewPolygonFrom(id ID, generator VertexGenerator, count int, transform Transform) *Polygon {
	return NewPolygon(id, generator(count), transform)
}

func (p *Polygon) PointCount() int {
	return len(p.points)
}

// LocalPoints returns a copy of the local vertex ring
func (p *Polygon) LocalPoints() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(p.points))
	copy(out, p.points)
	return out
}

// IsDegenerate reports polygons with fewer than MinPoints vertices.
// They are skipped by every collision phase.
func (p *Polygon) IsDegenerate() bool {
	return len(p.points) < MinPoints
}

func (p *Polygon) Transform() Transform {
	return p.transform
}

func (p *Polygon) Position() mgl64.Vec2 {
	return p.transform.Position
}

func (p *Polygon) SetTransform(transform Transform) {
	p.transform = transform
	p.dirty = true
}

// Translate moves the polygon by delta in world space
func (p *Polygon) Translate(delta mgl64.Vec2) {
	p.transform.Position = p.transform.Position.Add(delta)
	p.dirty = true
}

// WorldVertices returns the world-space vertex ring. The slice is owned by the
// polygon and stays valid until the next transform change.
func (p *Polygon) WorldVertices() []mgl64.Vec2 {
	p.refresh()
	return p.world
}

func (p *Polygon) AABB() AABB {
	p.refresh()
	return p.aabb
}

// Centroid is the mean of the world vertices
func (p *Polygon) Centroid() mgl64.Vec2 {
	p.refresh()
	return p.centroid
}

// SupportWorld returns the world vertex furthest along direction
func (p *Polygon) SupportWorld(direction mgl64.Vec2) mgl64.Vec2 {
	return Support(p.WorldVertices(), direction)
}

func (p *Polygon) refresh() {
	if !p.dirty {
		return
	}

	if cap(p.world) < len(p.points) {
		p.world = make([]mgl64.Vec2, len(p.points))
	}
	p.world = p.world[:len(p.points)]

	sum := mgl64.Vec2{}
	for i, local := range p.points {
		p.world[i] = p.transform.Apply(local)
		sum = sum.Add(p.world[i])
	}

	p.aabb = ComputeAABB(p.world)
	if len(p.world) > 0 {
		p.centroid = sum.Mul(1.0 / float64(len(p.world)))
	} else {
		p.centroid = p.transform.Position
	}
	p.dirty = false
}

// Support returns the point maximizing the dot product with direction.
// Ties keep the first point in slice order. An empty slice returns the zero vector.
func Support(points []mgl64.Vec2, direction mgl64.Vec2) mgl64.Vec2 {
	best := mgl64.Vec2{}
	bestDot := math.Inf(-1)

	for _, point := range points {
		if dot := point.Dot(direction); dot > bestDot {
			bestDot = dot
			best = point
		}
	}

	return best
}
