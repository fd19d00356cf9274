package actor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// isConvexCCW checks that every turn of the ring is a strict left turn
func isConvexCCW(points []mgl64.Vec2) bool {
	n := len(points)
	for i := 0; i < n; i++ {
		if cross(points[i], points[(i+1)%n], points[(i+2)%n]) <= 0 {
			return false
		}
	}
	return true
}

func TestRegularVertices(t *testing.T) {
	for _, count := range []int{3, 4, 7, 10} {
		points := RegularVertices(count)
		if len(points) != count {
			t.Fatalf("RegularVertices(%d) returned %d points", count, len(points))
		}
		for i, p := range points {
			if math.Abs(p.Len()-1) > 1e-12 {
				t.Errorf("point %d of %d-gon has radius %v, want 1", i, count, p.Len())
			}
		}
		if !isConvexCCW(points) {
			t.Errorf("RegularVertices(%d) is not a convex counter-clockwise ring", count)
		}
	}

	if points := RegularVertices(0); len(points) != 0 {
		t.Errorf("RegularVertices(0) = %v, want empty", points)
	}
}

func TestIrregularVertices(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	generator := IrregularVertices(rng)

	for i := 0; i < 100; i++ {
		count := 3 + i%8
		points := generator(count)

		if len(points) < MinPoints || len(points) > count {
			t.Fatalf("generator(%d) returned %d points", count, len(points))
		}
		if !isConvexCCW(points) {
			t.Fatalf("generator(%d) = %v is not convex", count, points)
		}
		for _, p := range points {
			if p.Len() > 1+1e-12 {
				t.Fatalf("point %v outside the unit disk", p)
			}
		}
	}
}

func TestIrregularVerticesDeterministic(t *testing.T) {
	a := IrregularVertices(rand.New(rand.NewSource(7)))(8)
	b := IrregularVertices(rand.New(rand.NewSource(7)))(8)

	if len(a) != len(b) {
		t.Fatalf("same seed gave %d and %d points", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestConvexHull(t *testing.T) {
	t.Run("drops interior and collinear points", func(t *testing.T) {
		points := []mgl64.Vec2{
			{0, 0}, {2, 0}, {2, 2}, {0, 2},
			{1, 1},   // interior
			{1, 0},   // collinear on an edge
			{2, 2},   // duplicate
			{0.5, 1}, // interior
		}

		hull := ConvexHull(points)
		expected := []mgl64.Vec2{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
		if len(hull) != len(expected) {
			t.Fatalf("ConvexHull() = %v, want %v", hull, expected)
		}
		for i := range expected {
			if hull[i] != expected[i] {
				t.Errorf("hull[%d] = %v, want %v", i, hull[i], expected[i])
			}
		}
	})

	t.Run("collinear input", func(t *testing.T) {
		hull := ConvexHull([]mgl64.Vec2{{0, 0}, {1, 1}, {2, 2}})
		if len(hull) >= MinPoints {
			t.Errorf("ConvexHull() of collinear points = %v, want fewer than %d points", hull, MinPoints)
		}
	})

	t.Run("fewer than three points", func(t *testing.T) {
		hull := ConvexHull([]mgl64.Vec2{{0, 0}, {1, 0}})
		if len(hull) != 2 {
			t.Errorf("ConvexHull() = %v, want the 2 input points", hull)
		}
	})
}

func TestNewPolygonFrom(t *testing.T) {
	polygon := NewPolygonFrom(ID{}, RegularVertices, 6, NewTransform())
	if polygon.PointCount() != 6 {
		t.Errorf("PointCount() = %d, want 6", polygon.PointCount())
	}
}
