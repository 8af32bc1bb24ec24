package eggmatch

import "github.com/google/uuid"

// EventType identifies a game outcome.
type EventType uint8

const (
	EventPickUp   EventType = iota // a session started
	EventMismatch                  // an item was dropped on a target of another shape
	EventMatch                     // an item was accepted by a target
	EventComplete                  // every target is matched
	EventCancel                    // a session ended without a drop
	EventReset                     // the board was reset
)

func (t EventType) String() string {
	switch t {
	case EventPickUp:
		return "pickup"
	case EventMismatch:
		return "mismatch"
	case EventMatch:
		return "match"
	case EventComplete:
		return "complete"
	case EventCancel:
		return "cancel"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// EventSink is the interface for optional outcome consumers such as an ECS
// world. When set on a Controller, every outcome is forwarded to it.
type EventSink interface {
	EmitEvent(event Event)
}

// Event carries one game outcome. Session-scoped events share the
// SessionID of the gesture that produced them.
type Event struct {
	Type        EventType
	SessionID   uuid.UUID
	Modality    Modality
	ItemID      string
	TargetID    string
	ItemShape   Shape
	TargetShape Shape
}

// EventRecorder is an EventSink that keeps every event in order.
type EventRecorder struct {
	Events []Event
}

// EmitEvent implements EventSink.
func (r *EventRecorder) EmitEvent(e Event) {
	r.Events = append(r.Events, e)
}

// Types returns the recorded event types in order.
func (r *EventRecorder) Types() []EventType {
	out := make([]EventType, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Type
	}
	return out
}
