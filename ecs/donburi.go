package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/eggmatch"
)

// GameEventType is the Donburi event type for eggmatch outcomes.
var GameEventType = events.NewEventType[eggmatch.Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world. Events are
// published to GameEventType and can be consumed with Subscribe and
// ProcessEvents.
func NewDonburiStore(world donburi.World) eggmatch.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event eggmatch.Event) {
	GameEventType.Publish(s.world, event)
}

// Tally counts outcomes as they are processed.
type Tally struct {
	PickUps    int
	Matches    int
	Mismatches int
	Cancels    int
	Completes  int
	Resets     int
}

// Track subscribes t to GameEventType in world. Counts change when the
// world's events are processed.
func (t *Tally) Track(world donburi.World) {
	GameEventType.Subscribe(world, t.record)
}

func (t *Tally) record(_ donburi.World, e eggmatch.Event) {
	switch e.Type {
	case eggmatch.EventPickUp:
		t.PickUps++
	case eggmatch.EventMatch:
		t.Matches++
	case eggmatch.EventMismatch:
		t.Mismatches++
	case eggmatch.EventCancel:
		t.Cancels++
	case eggmatch.EventComplete:
		t.Completes++
	case eggmatch.EventReset:
		t.Resets++
	}
}
