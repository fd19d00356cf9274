package prism

import (
	"errors"
	"sync/atomic"

	"github.com/akmonengine/prism/actor"
	"github.com/akmonengine/prism/constraint"
	"github.com/akmonengine/prism/gjk"
	"github.com/akmonengine/prism/kdtree"
	"go.uber.org/zap"
)

// Stats are the counters of the last tick
type Stats struct {
	Polygons     int
	Degenerate   int
	Candidates   int
	Colliding    int
	Resolved     int
	NotConverged int
}

type World struct {
	Config Config
	Logger *zap.Logger
	Events Events
	// Stats of the last completed Step
	Stats Stats

	index    *kdtree.Tree
	stepping atomic.Bool
}

// NewWorld creates a world. A nil logger is replaced by a no-op one.
func NewWorld(config Config, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &World{
		Config: config,
		Logger: logger,
		Events: NewEvents(),
		index:  kdtree.New(0),
	}
}

// Step runs one full collision pass over polygons and returns the pairs found
// colliding, touching or penetrating, in pair order. Penetrating pairs are
// pushed apart in place; the correction is observed by the next Step.
//
// Phases:
//  1. Rebuild the spatial index, candidate pairs - Broad phase
//  2. GJK then EPA on each candidate, on the geometry of this tick - Narrow phase
//  3. Symmetric positional correction, in pair order
//
// Step is synchronous and must not be called again before it returns:
// overlapping calls panic.
func (w *World) Step(polygons []*actor.Polygon) []*constraint.Contact {
	if !w.stepping.CompareAndSwap(false, true) {
		panic("prism: Step called while another Step is in progress")
	}
	defer w.stepping.Store(false)

	if w.index == nil {
		w.index = kdtree.New(0)
	}
	if w.Logger == nil {
		w.Logger = zap.NewNop()
	}

	completed := false
	defer func() {
		if !completed {
			w.Events.discard()
		}
	}()

	stats := Stats{Polygons: len(polygons)}
	for _, polygon := range polygons {
		if polygon.IsDegenerate() {
			stats.Degenerate++
		}
	}

	// Phase 1: Broad phase
	pairs := BroadPhase(w.index, polygons)
	stats.Candidates = len(pairs)

	// Phase 2: Narrow phase
	contacts, errs := narrowPhase(pairs, w.Config)

	// Phase 3: Resolution
	collisions := make([]*constraint.Contact, 0, len(contacts))
	for i, contact := range contacts {
		if err := errs[i]; err != nil {
			stats.NotConverged++
			w.reportNotConverged(contact, err)
		}

		if !contact.IsColliding() {
			continue
		}
		collisions = append(collisions, contact)

		if contact.State == constraint.StatePenetrating {
			contact.SolvePosition()
			stats.Resolved++
			w.Events.emit(CollisionEvent{Contact: contact})
		}
	}
	stats.Colliding = len(collisions)

	completed = true
	w.Stats = stats
	w.Events.flush()

	w.Logger.Debug("collision step",
		zap.Int("polygons", stats.Polygons),
		zap.Int("degenerate", stats.Degenerate),
		zap.Int("candidates", stats.Candidates),
		zap.Int("colliding", stats.Colliding),
		zap.Int("resolved", stats.Resolved),
		zap.Int("not_converged", stats.NotConverged),
	)

	return collisions
}

func (w *World) reportNotConverged(contact *constraint.Contact, err error) {
	fields := []zap.Field{
		zap.Stringer("polygon_a", contact.PolygonA.ID),
		zap.Stringer("polygon_b", contact.PolygonB.ID),
		zap.Error(err),
	}

	if errors.Is(err, gjk.ErrNotConverged) {
		w.Logger.Warn("gjk did not converge, pair treated as separated", fields...)
		w.Events.emit(GJKNotConvergedEvent{PolygonA: contact.PolygonA, PolygonB: contact.PolygonB, Err: err})
		return
	}

	w.Logger.Warn("epa did not converge, using best penetration estimate",
		append(fields, zap.Float64("depth", contact.Depth()))...)
	w.Events.emit(EPANotConvergedEvent{Contact: contact, Err: err})
}
