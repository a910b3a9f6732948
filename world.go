package ember

import (
	"io"
	"os"
	"time"
)

// EventType identifies a lifecycle event.
type EventType uint8

const (
	EventAdded           EventType = iota // object added to a world
	EventInitialized                      // object's Init has run
	EventRemoved                          // object evicted from its world
	EventParticleCorrupt                  // particle respawned by the alpha guard
)

// LifecycleEvent carries lifecycle data for an EventSink.
type LifecycleEvent struct {
	Type     EventType
	ObjectID uint32
	Name     string
	// Tick is the world's update tick count when the event fired.
	Tick uint64
	// Index is the pool slot for EventParticleCorrupt, -1 otherwise.
	Index int
}

// EventSink is the interface for optional event forwarding (for example into
// an ECS world, see ember/ecs).
type EventSink interface {
	EmitEvent(event LifecycleEvent)
}

// WorldStats reports tick counts and timings.
type WorldStats struct {
	Objects          int
	UpdateTicks      uint64
	FixedTicks       uint64
	LastUpdate       time.Duration
	LastFixedUpdate  time.Duration
	CorruptRespawns  uint64
	InitializedTotal uint64
}

// World owns the tracked collection of entities and drives their lifecycle:
// one Init before the first tick, Update once per rendered frame,
// FixedUpdate at the fixed cadence, and eviction on Remove.
type World struct {
	// ScreenshotDir is where queued screenshots are written. Defaults to
	// "screenshots".
	ScreenshotDir string

	objects []Entity
	store   EventSink

	debug    bool
	debugOut io.Writer

	ticking bool
	dirty   bool // removed entities awaiting compaction

	updateTick uint64
	fixedTick  uint64
	stats      WorldStats

	screenshotQueue []string
	stopped         bool
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{debugOut: os.Stderr, ScreenshotDir: defaultScreenshotDir}
}

// Add starts tracking e. Adding an entity already in this world is a no-op.
// Panics if e is nil, already removed, or tracked by another world.
func (w *World) Add(e Entity) {
	if e == nil {
		panic("ember: cannot add nil entity")
	}
	g := e.Object()
	if g == nil {
		panic("ember: entity has no GameObject")
	}
	if g.state == StateRemoved {
		panic("ember: cannot add a removed entity")
	}
	if g.world == w {
		return
	}
	if g.world != nil {
		panic("ember: entity belongs to another world")
	}
	// A GameObject embedded in a user type reports the outer type to its
	// observers.
	if g.self == nil || g.self == Entity(g) || g.self.Object() != g {
		g.self = e
	}
	if g.ID == 0 {
		g.ID = nextObjectID()
	}
	g.world = w
	w.objects = append(w.objects, e)
	w.emit(EventAdded, g, -1)
	if w.debug {
		w.debugf("add %q (id %d), %d objects", g.Name, g.ID, len(w.objects))
	}
}

// Remove evicts e. It receives no further ticks; a removal from inside a
// tick takes effect before the next object is ticked. Returns false if e is
// not tracked by this world.
func (w *World) Remove(e Entity) bool {
	if e == nil {
		return false
	}
	g := e.Object()
	if g == nil || g.world != w || g.state == StateRemoved {
		return false
	}
	g.state = StateRemoved
	w.emit(EventRemoved, g, -1)
	if w.debug {
		w.debugf("remove %q (id %d)", g.Name, g.ID)
	}
	if w.ticking {
		w.dirty = true
		return true
	}
	w.compact()
	return true
}

// Objects returns the tracked entities in insertion order. The returned
// slice MUST NOT be mutated.
func (w *World) Objects() []Entity {
	return w.objects
}

// Len returns the number of tracked entities.
func (w *World) Len() int {
	return len(w.objects)
}

// Update runs the variable-rate phase: pending Inits, then Update on every
// live entity in insertion order. Entities added during the tick are first
// ticked on the next one.
func (w *World) Update(f *Frame) {
	w.updateTick++
	f.Tick = w.updateTick
	f.Fixed = false
	f.World = w

	var t0 time.Time
	if w.debug {
		t0 = time.Now()
	}

	w.tick(f, StateUpdating, Entity.Update)

	w.stats.UpdateTicks = w.updateTick
	if w.debug {
		w.stats.LastUpdate = time.Since(t0)
		w.debugLog()
	}
}

// FixedUpdate runs the fixed-rate phase.
func (w *World) FixedUpdate(f *Frame) {
	w.fixedTick++
	f.Tick = w.fixedTick
	f.Fixed = true
	f.World = w

	var t0 time.Time
	if w.debug {
		t0 = time.Now()
	}

	w.tick(f, StateFixedUpdating, Entity.FixedUpdate)

	w.stats.FixedTicks = w.fixedTick
	if w.debug {
		w.stats.LastFixedUpdate = time.Since(t0)
	}
}

func (w *World) tick(f *Frame, phase State, run func(Entity, *Frame)) {
	w.ticking = true
	n := len(w.objects)
	for i := 0; i < n; i++ {
		e := w.objects[i]
		g := e.Object()
		if g.state == StateRemoved {
			continue
		}
		if g.state == StateConstructed {
			w.initialize(e, g, f)
			if g.state == StateRemoved {
				continue
			}
		}
		g.state = phase
		run(e, f)
		if g.state != StateRemoved {
			g.state = StateInitialized
		}
	}
	w.ticking = false
	if w.dirty {
		w.compact()
	}
}

func (w *World) initialize(e Entity, g *GameObject, f *Frame) {
	g.state = StateInitialized
	e.Init(f)
	w.stats.InitializedTotal++
	w.emit(EventInitialized, g, -1)
}

// compact drops removed entities, keeping order, and releases their hooks.
func (w *World) compact() {
	live := w.objects[:0]
	for _, e := range w.objects {
		g := e.Object()
		if g.state == StateRemoved {
			g.release()
			continue
		}
		live = append(live, e)
	}
	for i := len(live); i < len(w.objects); i++ {
		w.objects[i] = nil
	}
	w.objects = live
	w.dirty = false
}

// Stop asks the driver to end after the current frame.
func (w *World) Stop() { w.stopped = true }

// Stopped reports whether Stop has been called.
func (w *World) Stopped() bool { return w.stopped }

// SetEventSink sets the optional event forwarder.
func (w *World) SetEventSink(sink EventSink) {
	w.store = sink
}

// SetDebugMode enables or disables debug mode. When enabled, lifecycle
// changes and per-frame timing stats are printed to the debug output
// (stderr by default).
func (w *World) SetDebugMode(enabled bool) {
	w.debug = enabled
}

// SetDebugOutput redirects debug output. Nil restores stderr.
func (w *World) SetDebugOutput(out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	w.debugOut = out
}

// Stats returns a snapshot of tick counts and timings.
func (w *World) Stats() WorldStats {
	s := w.stats
	s.Objects = len(w.objects)
	return s
}

// reportCorrupt records a particle respawned by the alpha guard.
func (w *World) reportCorrupt(g *GameObject, index int) {
	w.stats.CorruptRespawns++
	w.emit(EventParticleCorrupt, g, index)
	if w.debug {
		w.debugf("particle %d of %q respawned: non-finite alpha", index, g.Name)
	}
}

func (w *World) emit(t EventType, g *GameObject, index int) {
	if w.store == nil {
		return
	}
	w.store.EmitEvent(LifecycleEvent{
		Type:     t,
		ObjectID: g.ID,
		Name:     g.Name,
		Tick:     w.updateTick,
		Index:    index,
	})
}
