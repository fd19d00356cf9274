package kdtree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func bruteForce(points []Point, center mgl64.Vec2, radius float64) []int {
	var owners []int
	for _, p := range points {
		if p.Position.Sub(center).Len() <= radius {
			owners = append(owners, p.Owner)
		}
	}
	sort.Ints(owners)
	return owners
}

func sorted(owners []int) []int {
	out := append([]int(nil), owners...)
	sort.Ints(out)
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEmptyTree(t *testing.T) {
	t.Run("zero value", func(t *testing.T) {
		var tree Tree
		if got := tree.RadialSearch(mgl64.Vec2{0, 0}, 10, nil); len(got) != 0 {
			t.Errorf("expected no results from zero tree, got %v", got)
		}
	})

	t.Run("built from nothing", func(t *testing.T) {
		tree := New(0)
		tree.Build(nil)
		if tree.Len() != 0 {
			t.Errorf("Len() = %d, want 0", tree.Len())
		}
		if got := tree.RadialSearch(mgl64.Vec2{0, 0}, 10, nil); len(got) != 0 {
			t.Errorf("expected no results, got %v", got)
		}
	})
}

func TestRadialSearch(t *testing.T) {
	points := []Point{
		{Position: mgl64.Vec2{0, 0}, Owner: 0},
		{Position: mgl64.Vec2{1, 0}, Owner: 1},
		{Position: mgl64.Vec2{0, 1}, Owner: 2},
		{Position: mgl64.Vec2{5, 5}, Owner: 3},
		{Position: mgl64.Vec2{-3, 2}, Owner: 4},
		{Position: mgl64.Vec2{1, 0}, Owner: 1},
	}
	tree := New(len(points))
	tree.Build(points)

	tests := []struct {
		name     string
		center   mgl64.Vec2
		radius   float64
		expected []int
	}{
		{"unit radius at origin", mgl64.Vec2{0, 0}, 1, []int{0, 1, 1, 2}},
		{"boundary is inclusive", mgl64.Vec2{2, 0}, 1, []int{1, 1}},
		{"zero radius on a point", mgl64.Vec2{0, 1}, 0, []int{2}},
		{"zero radius off every point", mgl64.Vec2{0.5, 0.5}, 0, nil},
		{"negative radius", mgl64.Vec2{0, 0}, -1, nil},
		{"large radius", mgl64.Vec2{0, 0}, 100, []int{0, 1, 1, 2, 3, 4}},
		{"far away", mgl64.Vec2{50, 50}, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sorted(tree.RadialSearch(tt.center, tt.radius, nil))
			if !equalInts(got, tt.expected) {
				t.Errorf("RadialSearch(%v, %v) = %v, want %v", tt.center, tt.radius, got, tt.expected)
			}
		})
	}
}

func TestRadialSearchMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, n := range []int{1, 2, 3, 17, 128, 1000} {
		points := make([]Point, n)
		for i := range points {
			points[i] = Point{
				Position: mgl64.Vec2{rng.Float64()*20 - 10, rng.Float64()*20 - 10},
				Owner:    rng.Intn(10),
			}
		}

		tree := New(n)
		tree.Build(points)
		if tree.Len() != n {
			t.Fatalf("Len() = %d, want %d", tree.Len(), n)
		}

		for q := 0; q < 50; q++ {
			center := mgl64.Vec2{rng.Float64()*24 - 12, rng.Float64()*24 - 12}
			radius := rng.Float64() * 6

			got := sorted(tree.RadialSearch(center, radius, nil))
			want := bruteForce(points, center, radius)
			if !equalInts(got, want) {
				t.Fatalf("n=%d: RadialSearch(%v, %v) = %v, want %v", n, center, radius, got, want)
			}
		}
	}
}

func TestBuildDoesNotModifyInput(t *testing.T) {
	points := []Point{
		{Position: mgl64.Vec2{3, 1}, Owner: 0},
		{Position: mgl64.Vec2{1, 2}, Owner: 1},
		{Position: mgl64.Vec2{2, 3}, Owner: 2},
	}
	original := append([]Point(nil), points...)

	tree := New(0)
	tree.Build(points)

	for i := range points {
		if points[i] != original[i] {
			t.Errorf("points[%d] = %v, want %v", i, points[i], original[i])
		}
	}
}

func TestRebuildReplacesContent(t *testing.T) {
	tree := New(4)
	tree.Build([]Point{
		{Position: mgl64.Vec2{0, 0}, Owner: 7},
		{Position: mgl64.Vec2{1, 1}, Owner: 8},
	})
	tree.Build([]Point{
		{Position: mgl64.Vec2{10, 10}, Owner: 9},
	})

	if tree.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tree.Len())
	}
	if got := tree.RadialSearch(mgl64.Vec2{0, 0}, 2, nil); len(got) != 0 {
		t.Errorf("stale points returned after rebuild: %v", got)
	}
	if got := tree.RadialSearch(mgl64.Vec2{10, 10}, 0, nil); !equalInts(got, []int{9}) {
		t.Errorf("RadialSearch after rebuild = %v, want [9]", got)
	}
}

func TestRadialSearchAppendsToDst(t *testing.T) {
	tree := New(1)
	tree.Build([]Point{{Position: mgl64.Vec2{0, 0}, Owner: 3}})

	dst := []int{1, 2}
	got := tree.RadialSearch(mgl64.Vec2{0, 0}, 1, dst)
	if !equalInts(got, []int{1, 2, 3}) {
		t.Errorf("RadialSearch appended = %v, want [1 2 3]", got)
	}
}

func TestBalancedDepth(t *testing.T) {
	n := 1023
	points := make([]Point, n)
	for i := range points {
		// All on a line, the worst input for a naive split
		points[i] = Point{Position: mgl64.Vec2{float64(i), 0}, Owner: i}
	}

	tree := New(n)
	tree.Build(points)

	var depth func(idx int32) int
	depth = func(idx int32) int {
		if idx == none {
			return 0
		}
		return 1 + max(depth(tree.nodes[idx].left), depth(tree.nodes[idx].right))
	}

	if d := depth(tree.root); d > 10 {
		t.Errorf("tree depth = %d, want <= 10 for %d points", d, n)
	}
}

func BenchmarkBuild(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	points := make([]Point, 10000)
	for i := range points {
		points[i] = Point{Position: mgl64.Vec2{rng.Float64() * 100, rng.Float64() * 100}, Owner: i / 8}
	}
	tree := New(len(points))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Build(points)
	}
}
