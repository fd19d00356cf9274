package prism

import (
	"github.com/akmonengine/prism/actor"
	"github.com/akmonengine/prism/constraint"
)

const (
	COLLISION_RESOLVED EventType = iota
	GJK_NOT_CONVERGED
	EPA_NOT_CONVERGED
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// CollisionEvent is emitted for every contact pushed apart during a tick
type CollisionEvent struct {
	Contact *constraint.Contact
}

func (e CollisionEvent) Type() EventType { return COLLISION_RESOLVED }

// GJKNotConvergedEvent reports a pair conservatively considered separated
type GJKNotConvergedEvent struct {
	PolygonA *actor.Polygon
	PolygonB *actor.Polygon
	Err      error
}

func (e GJKNotConvergedEvent) Type() EventType { return GJK_NOT_CONVERGED }

// EPANotConvergedEvent reports a pair resolved with the best penetration estimate
type EPANotConvergedEvent struct {
	Contact *constraint.Contact
	Err     error
}

func (e EPANotConvergedEvent) Type() EventType { return EPA_NOT_CONVERGED }

// EventListener - callback for events
type EventListener func(event Event)

// Events buffers the events of a tick and hands them to listeners once the tick
// is complete. Nothing is kept from one tick to the next.
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 64),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	if len(e.listeners[event.Type()]) == 0 {
		return
	}
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	clear(e.buffer)
	e.buffer = e.buffer[:0]
}

// discard drops the buffered events of an aborted tick
func (e *Events) discard() {
	clear(e.buffer)
	e.buffer = e.buffer[:0]
}
