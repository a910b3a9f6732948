package ecs

import (
	"github.com/phanxgames/ember"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for ember lifecycle events.
var LifecycleEventType = events.NewEventType[ember.LifecycleEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on LifecycleEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) ember.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event ember.LifecycleEvent) {
	LifecycleEventType.Publish(s.world, event)
}
