package constraint

import (
	"github.com/akmonengine/prism/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Contact is the collision record of an unordered polygon pair for one tick
type Contact struct {
	PolygonA *actor.Polygon
	PolygonB *actor.Polygon
	// Penetration is the minimum translation vector, pointing from A toward B
	Penetration mgl64.Vec2
	State       State
	// Converged is false when GJK or EPA stopped on their iteration cap
	Converged bool
}

// Depth returns the penetration length
func (c *Contact) Depth() float64 {
	return c.Penetration.Len()
}

// IsColliding reports a pair found intersecting by GJK, touching or penetrating
func (c *Contact) IsColliding() bool {
	return c.State == StateTouching || c.State == StatePenetrating
}

// SolvePosition pushes both polygons apart along the penetration vector:
// A moves by -v/2 and B by +v/2. Both polygons are equally responsive,
// there is no mass and no velocity involved.
func (c *Contact) SolvePosition() {
	if c.State != StatePenetrating || c.Penetration == (mgl64.Vec2{}) {
		return
	}

	half := c.Penetration.Mul(0.5)
	c.PolygonA.Translate(half.Mul(-1))
	c.PolygonB.Translate(half)
}
