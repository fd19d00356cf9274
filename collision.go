package prism

import (
	"github.com/akmonengine/prism/constraint"
	"github.com/akmonengine/prism/epa"
	"github.com/akmonengine/prism/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// NarrowPhase runs GJK, then EPA on intersecting pairs, and returns one contact
// per pair in pair order. Polygons are only read.
func NarrowPhase(pairs []Pair, config Config) []*constraint.Contact {
	contacts, _ := narrowPhase(pairs, config)
	return contacts
}

// narrowPhase also returns the non-convergence error of each pair, if any
func narrowPhase(pairs []Pair, config Config) ([]*constraint.Contact, []error) {
	contacts := make([]*constraint.Contact, len(pairs))
	errs := make([]error, len(pairs))
	indices := make([]int, len(pairs))
	for i, pair := range pairs {
		contacts[i] = &constraint.Contact{PolygonA: pair.PolygonA, PolygonB: pair.PolygonB}
		indices[i] = i
	}

	options := config.epaOptions()
	task(max(DEFAULT_WORKERS, config.Workers), indices, func(i int) {
		errs[i] = collide(contacts[i], config.GJKMaxIterations, options)
	})

	return contacts, errs
}

// collide fills contact with the GJK verdict and the EPA penetration
func collide(contact *constraint.Contact, gjkMaxIterations int, options epa.Options) error {
	simplex := gjk.SimplexPool.Get().(*gjk.Simplex)
	defer gjk.SimplexPool.Put(simplex)
	simplex.Reset()

	contact.Converged = true

	collision, err := gjk.GJK(contact.PolygonA, contact.PolygonB, simplex, gjkMaxIterations)
	if err != nil {
		contact.Converged = false
	}
	if !collision {
		contact.State = constraint.StateSeparated
		return err
	}

	penetration, err := epa.EPA(contact.PolygonA, contact.PolygonB, simplex, options)
	if err != nil {
		contact.Converged = false
	}

	if penetration.Len() < options.Tolerance {
		contact.State = constraint.StateTouching
		contact.Penetration = mgl64.Vec2{}
	} else {
		contact.State = constraint.StatePenetrating
		contact.Penetration = penetration
	}

	return err
}
