// Package constraint holds the per-tick collision records and their positional resolution.
package constraint

type Constraint interface {
	SolvePosition()
}

// State tells how far the narrow phase went for a pair.
// The zero value, StateUntested, is distinct from a tested pair with a zero penetration.
type State uint8

const (
	StateUntested State = iota
	// StateSeparated: GJK found no intersection
	StateSeparated
	// StateTouching: GJK found an intersection but EPA measured no penetration
	StateTouching
	// StatePenetrating: EPA measured a penetration to resolve
	StatePenetrating
)

func (s State) String() string {
	switch s {
	case StateUntested:
		return "untested"
	case StateSeparated:
		return "separated"
	case StateTouching:
		return "touching"
	case StatePenetrating:
		return "penetrating"
	}
	return "unknown"
}
