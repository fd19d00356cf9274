// Package kdtree implements a static 2D k-d tree over tagged points.
//
// The tree is meant to be rebuilt wholesale every simulation tick: there is no
// insertion or deletion, Build replaces the whole content and reuses the node
// arena allocated by previous builds.
//
// Nodes live in a single slice and reference their children by index, with -1
// standing for "no child".
package kdtree

import (
	"github.com/go-gl/mathgl/mgl64"
)

const none = -1

// Point is an indexed coordinate tagged with the identifier of its owner
type Point struct {
	Position mgl64.Vec2
	Owner    int
}

type node struct {
	point Point
	left  int32
	right int32
	axis  uint8
}

// Tree is a balanced 2D k-d tree. The zero value is an empty tree.
type Tree struct {
	nodes []node
	root  int32

	// scratch is the working copy of the input points during Build
	scratch []Point
}

// New returns an empty tree with room for capacity points
func New(capacity int) *Tree {
	return &Tree{
		nodes:   make([]node, 0, capacity),
		scratch: make([]Point, 0, capacity),
		root:    none,
	}
}

// Len returns the number of indexed points
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Build discards the current content and indexes points.
// The input slice is not modified.
func (t *Tree) Build(points []Point) {
	t.nodes = t.nodes[:0]
	t.scratch = append(t.scratch[:0], points...)
	t.root = none

	if len(t.scratch) == 0 {
		return
	}

	t.root = t.build(t.scratch, 0)
}

// build splits points on the median along axis and returns the subtree root index
func (t *Tree) build(points []Point, depth int) int32 {
	if len(points) == 0 {
		return none
	}

	axis := uint8(depth % 2)
	mid := len(points) / 2
	selectNth(points, mid, int(axis))

	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{point: points[mid], axis: axis})

	left := t.build(points[:mid], depth+1)
	right := t.build(points[mid+1:], depth+1)
	t.nodes[idx].left = left
	t.nodes[idx].right = right

	return idx
}

// RadialSearch appends to dst the owner of every point whose distance to center
// is at most radius, and returns the extended slice. Owners repeat once per
// matching point. A negative radius matches nothing.
func (t *Tree) RadialSearch(center mgl64.Vec2, radius float64, dst []int) []int {
	if len(t.nodes) == 0 || t.root == none || radius < 0 {
		return dst
	}

	radiusSqr := radius * radius

	// Iterative traversal, the stack only holds subtrees still to visit
	var stackBuf [64]int32
	stack := append(stackBuf[:0], t.root)

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[idx]

		if n.point.Position.Sub(center).LenSqr() <= radiusSqr {
			dst = append(dst, n.point.Owner)
		}

		delta := center[n.axis] - n.point.Position[n.axis]
		near, far := n.left, n.right
		if delta > 0 {
			near, far = n.right, n.left
		}

		// The far side can only hold matches if the splitting line is within range
		if far != none && delta*delta <= radiusSqr {
			stack = append(stack, far)
		}
		if near != none {
			stack = append(stack, near)
		}
	}

	return dst
}

// selectNth partially orders points so that points[n] holds the element that
// would be there if the slice were sorted along axis, with smaller-or-equal
// elements before it and greater-or-equal after it.
func selectNth(points []Point, n int, axis int) {
	lo, hi := 0, len(points)-1

	for lo < hi {
		p := partition(points, lo, hi, axis)
		switch {
		case p == n:
			return
		case p < n:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

// partition uses the median of three as pivot and returns its final position
func partition(points []Point, lo, hi int, axis int) int {
	mid := lo + (hi-lo)/2
	if less(points[mid], points[lo], axis) {
		points[mid], points[lo] = points[lo], points[mid]
	}
	if less(points[hi], points[lo], axis) {
		points[hi], points[lo] = points[lo], points[hi]
	}
	if less(points[hi], points[mid], axis) {
		points[hi], points[mid] = points[mid], points[hi]
	}

	// Park the median at hi
	points[mid], points[hi] = points[hi], points[mid]
	pivot := points[hi]

	store := lo
	for i := lo; i < hi; i++ {
		if less(points[i], pivot, axis) {
			points[i], points[store] = points[store], points[i]
			store++
		}
	}
	points[store], points[hi] = points[hi], points[store]

	return store
}

// less orders by the axis coordinate, then by owner so builds are deterministic
func less(a, b Point, axis int) bool {
	if a.Position[axis] != b.Position[axis] {
		return a.Position[axis] < b.Position[axis]
	}
	return a.Owner < b.Owner
}
