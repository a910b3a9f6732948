// Package ember is a small GameObject lifecycle engine for [Ebitengine] with
// a pooled, canvas-style particle system.
//
// # Quick start
//
// Build objects from layered configs, add them to a [World], and hand the
// world to [Run], which creates a window and game loop for you:
//
//	world := ember.NewWorld()
//	world.Add(ember.NewBackground(ember.WithBackgroundColor(ember.Color{A: 1})))
//	world.Add(ember.NewParticleSystem(
//		ember.WithPosition[ember.ParticleSystemConfig](320, 240),
//		ember.WithCount(80),
//		ember.WithLoop(true),
//	))
//	ember.Run(world, ember.RunConfig{Title: "Sparks", Width: 640, Height: 480})
//
// For tests and tools, [RunHeadless] drives the same world from a ticker
// until its context is cancelled. [Recorder] is a [Surface] that records
// draw calls instead of rasterizing them.
//
// # Lifecycle
//
// Every entity embeds a [GameObject]. The world calls Init once before the
// entity's first tick, then Update once per rendered frame and FixedUpdate
// at the fixed tick rate, in insertion order. Observers registered with
// [GameObject.OnUpdate] and [GameObject.OnFixedUpdate] run after the
// entity's own work and receive it as a typed handle. [World.Remove] evicts
// an entity; it is never ticked again.
//
// # Configuration
//
// Each component has a closed config struct with documented defaults and
// accepts [Layer] overrides. [YAMLLayer] and [LoadLayer] turn YAML
// documents into layers that only touch the keys they name.
//
// # Particles
//
// A [ParticleSystem] keeps a pool of [Particle] values at Count, drawing
// each as a radial-gradient circle with its blend mode. Particles shrink and
// age by one unit per frame and are respawned (Loop) or dropped when
// either runs out. Changing the system's Width or Height resizes the spawn
// radius on the next fixed tick.
//
// ECS integration is available via a [Donburi] adapter in ember/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package ember
