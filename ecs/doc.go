// Package ecs provides ECS adapters for ember's lifecycle events.
//
// The primary adapter is [NewDonburiSink], which forwards ember lifecycle
// events (added, initialized, removed, particle corrupt) into a [Donburi]
// world as typed events. Subscribe to [LifecycleEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	emberWorld.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
