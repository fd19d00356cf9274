package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform places a polygon on the (x, z) plane.
// Vectors are stored as mgl64.Vec2{x, z}.
type Transform struct {
	Position mgl64.Vec2
	// Yaw is the rotation around the vertical axis, in radians
	Yaw   float64
	Scale mgl64.Vec2
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec2{0, 0},
		Scale:    mgl64.Vec2{1, 1},
	}
}

// Apply maps a local point to world space: scale, then rotate, then translate.
func (t Transform) Apply(local mgl64.Vec2) mgl64.Vec2 {
	scaled := mgl64.Vec2{local.X() * t.Scale.X(), local.Y() * t.Scale.Y()}
	return mgl64.Rotate2D(t.Yaw).Mul2x1(scaled).Add(t.Position)
}
