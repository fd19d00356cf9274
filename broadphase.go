package prism

import (
	"sort"

	"github.com/akmonengine/prism/actor"
	"github.com/akmonengine/prism/kdtree"
)

// Pair is an unordered pair of polygons that potentially collide.
// A and B are their indices in the tick input, A < B.
type Pair struct {
	A, B     int
	PolygonA *actor.Polygon
	PolygonB *actor.Polygon
}

func pairKey(i, j int) uint64 {
	if j < i {
		i, j = j, i
	}
	return uint64(i)<<32 | uint64(uint32(j))
}

// BroadPhase rebuilds index from every vertex of every polygon, then returns the
// pairs whose bounding boxes overlap, sorted by (A, B).
//
// Each polygon queries the index around its box center. The radius is its own
// half diagonal plus twice the largest half diagonal of the scene: any polygon
// whose box overlaps has at least one vertex that close, so the query never
// misses an overlapping pair. The exact (open interval) AABB test then prunes
// the over-approximation.
//
// Degenerate polygons are skipped. On return every polygon has fresh world
// vertices, later read-only passes do not write to the polygon caches.
func BroadPhase(index *kdtree.Tree, polygons []*actor.Polygon) []Pair {
	var points []kdtree.Point
	maxHalfDiagonal := 0.0

	for i, polygon := range polygons {
		if polygon.IsDegenerate() {
			continue
		}
		for _, vertex := range polygon.WorldVertices() {
			points = append(points, kdtree.Point{Position: vertex, Owner: i})
		}
		maxHalfDiagonal = max(maxHalfDiagonal, polygon.AABB().HalfDiagonal())
	}
	index.Build(points)

	pairs := make([]Pair, 0, len(polygons)/2)
	seen := make(map[uint64]struct{})
	var owners []int

	for i, polygon := range polygons {
		if polygon.IsDegenerate() {
			continue
		}

		box := polygon.AABB()
		owners = index.RadialSearch(box.Center(), box.HalfDiagonal()+2*maxHalfDiagonal, owners[:0])

		for _, j := range owners {
			if j == i {
				continue
			}

			// The query is not symmetric, a pair may show up from either side
			key := pairKey(i, j)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			if box.Overlaps(polygons[j].AABB()) {
				a, b := min(i, j), max(i, j)
				pairs = append(pairs, Pair{A: a, B: b, PolygonA: polygons[a], PolygonB: polygons[b]})
			}
		}
	}

	sort.Slice(pairs, func(x, y int) bool {
		if pairs[x].A != pairs[y].A {
			return pairs[x].A < pairs[y].A
		}
		return pairs[x].B < pairs[y].B
	})

	return pairs
}
