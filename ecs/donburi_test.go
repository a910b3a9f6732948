package ecs

import (
	"testing"

	"github.com/phanxgames/ember"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []ember.LifecycleEvent
	LifecycleEventType.Subscribe(world, func(w donburi.World, e ember.LifecycleEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(ember.LifecycleEvent{Type: ember.EventAdded, ObjectID: 42, Name: "spark", Index: -1})
	sink.EmitEvent(ember.LifecycleEvent{Type: ember.EventParticleCorrupt, ObjectID: 42, Index: 3})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before processing", len(received))
	}
	LifecycleEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != ember.EventAdded || e.ObjectID != 42 || e.Name != "spark" {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != ember.EventParticleCorrupt || e.Index != 3 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_WorldLifecycle(t *testing.T) {
	dw := donburi.NewWorld()
	w := ember.NewWorld()
	w.SetEventSink(NewDonburiSink(dw))

	var types []ember.EventType
	LifecycleEventType.Subscribe(dw, func(_ donburi.World, e ember.LifecycleEvent) {
		types = append(types, e.Type)
	})

	obj := ember.NewGameObject(ember.WithName[ember.ObjectConfig]("box"))
	w.Add(obj)
	w.Update(&ember.Frame{})
	w.Remove(obj)
	events.ProcessAllEvents(dw)

	want := []ember.EventType{ember.EventAdded, ember.EventInitialized, ember.EventRemoved}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	LifecycleEventType.Subscribe(world, func(w donburi.World, e ember.LifecycleEvent) { count1++ })
	LifecycleEventType.Subscribe(world, func(w donburi.World, e ember.LifecycleEvent) { count2++ })

	sink.EmitEvent(ember.LifecycleEvent{Type: ember.EventRemoved})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
