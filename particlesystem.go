package ember

import (
	"math"
	"math/rand/v2"
)

// ParticleSystemConfig controls how a ParticleSystem spawns and draws its
// particles. Life and radius are in ticks and pixels; both decay by 1 per
// processed tick.
type ParticleSystemConfig struct {
	ObjectConfig `yaml:",inline"`

	// Count is the target pool size.
	Count int `yaml:"count"`
	// Speed is the base velocity added to particles each tick.
	Speed Vec2 `yaml:"speed"`
	// Color is the base color. Each spawned particle rescales every channel
	// uniformly into [0, channel]. Alpha is ignored.
	Color Color `yaml:"color"`
	// Loop respawns expired particles in place instead of removing them.
	Loop bool `yaml:"loop"`
	// BlendMode is applied to the surface before drawing particles.
	BlendMode BlendMode `yaml:"blendMode"`
	// Glow fades particles to transparent at the rim; otherwise the edge is
	// hard.
	Glow bool `yaml:"glow"`
	// Life is the base maximum life of a particle.
	Life float64 `yaml:"life"`
	// Radius is the base starting radius of a particle.
	Radius float64 `yaml:"radius"`
	// Radial resamples the emission velocity every tick, uniformly in
	// [-Speed, +Speed] per axis, so particles leave in all directions.
	Radial bool `yaml:"radial"`
}

// DefaultParticleSystemConfig returns the documented defaults: 50 radial,
// glowing white particles with speed (2, 2), life 100 and radius 10,
// additive blending, no looping.
func DefaultParticleSystemConfig() ParticleSystemConfig {
	return ParticleSystemConfig{
		ObjectConfig: DefaultObjectConfig(),
		Count:        50,
		Speed:        Vec2{2, 2},
		Color:        Color{R: 255, G: 255, B: 255},
		Loop:         false,
		BlendMode:    BlendLighter,
		Glow:         true,
		Life:         100,
		Radius:       10,
		Radial:       true,
	}
}

// WithCount sets the target pool size.
func WithCount(n int) Layer[ParticleSystemConfig] {
	return func(c *ParticleSystemConfig) { c.Count = n }
}

// WithSpeed sets the base velocity.
func WithSpeed(x, y float64) Layer[ParticleSystemConfig] {
	return func(c *ParticleSystemConfig) { c.Speed = Vec2{x, y} }
}

// WithColor sets the base color.
func WithColor(col Color) Layer[ParticleSystemConfig] {
	return func(c *ParticleSystemConfig) { c.Color = col }
}

// WithLoop sets whether expired particles respawn.
func WithLoop(loop bool) Layer[ParticleSystemConfig] {
	return func(c *ParticleSystemConfig) { c.Loop = loop }
}

// WithBlendMode sets the compositing mode.
func WithBlendMode(mode BlendMode) Layer[ParticleSystemConfig] {
	return func(c *ParticleSystemConfig) { c.BlendMode = mode }
}

// WithGlow sets soft (true) or hard (false) particle edges.
func WithGlow(glow bool) Layer[ParticleSystemConfig] {
	return func(c *ParticleSystemConfig) { c.Glow = glow }
}

// WithLife sets the base particle life.
func WithLife(life float64) Layer[ParticleSystemConfig] {
	return func(c *ParticleSystemConfig) { c.Life = life }
}

// WithRadius sets the base particle radius.
func WithRadius(r float64) Layer[ParticleSystemConfig] {
	return func(c *ParticleSystemConfig) { c.Radius = r }
}

// WithRadial sets radial emission.
func WithRadial(radial bool) Layer[ParticleSystemConfig] {
	return func(c *ParticleSystemConfig) { c.Radial = radial }
}

// CorruptFunc observes a particle the alpha guard respawned at index.
type CorruptFunc func(ps *ParticleSystem, index int)

// ParticleSystem is a GameObject that owns a pool of Particles and
// simulates them once per rendered frame. Configuration fields are exported
// for live tuning; changes take effect on the next tick.
type ParticleSystem struct {
	GameObject

	Count     int
	Speed     Vec2
	Color     Color
	Loop      bool
	BlendMode BlendMode
	Glow      bool
	Life      float64
	Radius    float64
	Radial    bool

	// pool[:len] are live particles. Slots between len and cap keep their
	// *Particle so spawning after a shrink reuses the allocation.
	pool []*Particle

	// emission is the velocity new particles are built from this tick.
	emission Vec2

	// Width and height as of the last fixed tick, for change detection.
	lastWidth, lastHeight float64

	rng          *rand.Rand
	corruptHooks hooks[CorruptFunc]
}

// NewParticleSystem creates a particle system from
// DefaultParticleSystemConfig plus layers. The pool starts empty and is
// filled on the first Update.
func NewParticleSystem(layers ...Layer[ParticleSystemConfig]) *ParticleSystem {
	cfg := Compose(DefaultParticleSystemConfig(), layers...)
	ps := &ParticleSystem{
		Count:     cfg.Count,
		Speed:     cfg.Speed,
		Color:     cfg.Color,
		Loop:      cfg.Loop,
		BlendMode: cfg.BlendMode,
		Glow:      cfg.Glow,
		Life:      cfg.Life,
		Radius:    cfg.Radius,
		Radial:    cfg.Radial,
	}
	ps.construct(ps, cfg.ObjectConfig)
	// Change detection starts from the defaults, so a configured width or
	// height drives the radius on the first fixed tick.
	def := DefaultObjectConfig()
	ps.lastWidth, ps.lastHeight = def.Width, def.Height
	ps.emission = cfg.Speed
	return ps
}

// SetRand sets the random source. Nil restores the global source.
func (ps *ParticleSystem) SetRand(r *rand.Rand) {
	ps.rng = r
}

// OnCorrupt registers an observer for particles respawned because their
// alpha was not a finite number (for example life 0). Recovery itself is
// silent; this is the opt-in diagnostic.
func (ps *ParticleSystem) OnCorrupt(fn CorruptFunc) HookHandle {
	return ps.corruptHooks.add(fn)
}

// Len returns the number of particles in the pool.
func (ps *ParticleSystem) Len() int {
	return len(ps.pool)
}

// Pool returns the live particles in slot order. The returned slice MUST
// NOT be mutated and is invalidated by the next tick.
func (ps *ParticleSystem) Pool() []*Particle {
	return ps.pool
}

// Particle returns the particle at index.
func (ps *ParticleSystem) Particle(index int) *Particle {
	return ps.pool[index]
}

// EmissionSpeed returns the velocity particles spawned this tick are built
// from: Speed itself, or its per-tick radial resample.
func (ps *ParticleSystem) EmissionSpeed() Vec2 {
	return ps.emission
}

// Reset drops every particle. The pool refills on the next Update.
func (ps *ParticleSystem) Reset() {
	ps.pool = ps.pool[:0]
}

// Update resamples the emission velocity, reconciles the pool with Count,
// then draws and advances every particle in slot order. Observers fire
// after all particles are processed.
func (ps *ParticleSystem) Update(f *Frame) {
	ps.resampleEmission()
	ps.reconcile()

	var s Surface
	if f != nil && ps.Visible {
		s = f.Surface
	}
	if s != nil {
		s.SetCompositeMode(ps.BlendMode)
	}

	count := float64(ps.Count)
	for i := 0; i < len(ps.pool); {
		p := ps.pool[i]

		alpha := math.Round(p.RemainingLife/p.Life*count) / count
		if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
			ps.spawnAt(i)
			ps.corrupt(i)
			i++
			continue
		}
		p.Color.A = clamp01(alpha)

		if s != nil {
			ps.drawParticle(s, p)
		}

		p.RemainingLife--
		p.Radius--
		p.ensureTransform().Translate(p.Speed)

		if p.RemainingLife < 0 || p.Radius < 0 {
			if ps.Loop {
				ps.spawnAt(i)
			} else {
				ps.removeAt(i)
				continue
			}
		}
		i++
	}

	ps.fireUpdate(f)
}

// FixedUpdate keeps the bounding size and the radius in agreement: a
// changed width, then a changed height (which wins), sets the radius, and
// both sides are rewritten to the diameter.
func (ps *ParticleSystem) FixedUpdate(f *Frame) {
	if ps.Width != ps.lastWidth {
		ps.Radius = ps.Width / 2
	}
	if ps.Height != ps.lastHeight {
		ps.Radius = ps.Height / 2
	}
	ps.Width = ps.Radius * 2
	ps.Height = ps.Radius * 2
	ps.lastWidth, ps.lastHeight = ps.Width, ps.Height

	ps.fireFixedUpdate(f)
}

func (ps *ParticleSystem) drawParticle(s Surface, p *Particle) {
	pos := p.ensureTransform().Position
	c := p.Color
	g := s.CreateRadialGradient(pos.X, pos.Y, 0, pos.X, pos.Y, p.Radius)
	g.AddColorStop(0, c)
	g.AddColorStop(0.5, c)
	if ps.Glow {
		g.AddColorStop(1, c.WithAlpha(0))
	} else {
		g.AddColorStop(1, c)
	}
	s.SetFillStyle(g)
	s.FillArc(math.Round(pos.X), math.Round(pos.Y), math.Round(p.Radius), 0, 2*math.Pi)
}

func (ps *ParticleSystem) resampleEmission() {
	if ps.Radial {
		ps.emission = Vec2{
			X: ps.random()*(ps.Speed.X*2) - ps.Speed.X,
			Y: ps.random()*(ps.Speed.Y*2) - ps.Speed.Y,
		}
		return
	}
	ps.emission = ps.Speed
}

// reconcile grows or shrinks the pool to Count. Negative counts act as 0.
func (ps *ParticleSystem) reconcile() {
	target := max(ps.Count, 0)
	for len(ps.pool) < target {
		ps.appendParticle()
	}
	if len(ps.pool) > target {
		ps.pool = ps.pool[:target]
	}
}

// spawnConfig samples a fresh particle from the current configuration.
func (ps *ParticleSystem) spawnConfig() ParticleConfig {
	e := ps.emission
	cfg := DefaultParticleConfig()
	cfg.Transform = *ps.ensureTransform()
	cfg.Speed = Vec2{
		X: e.X + ps.random()*e.X,
		Y: e.Y + ps.random()*e.Y,
	}
	cfg.Radius = ps.Radius + ps.random()*ps.Radius
	cfg.Life = ps.Life + ps.random()*ps.Life
	cfg.Color = Color{
		R: math.Round(ps.random() * ps.Color.R),
		G: math.Round(ps.random() * ps.Color.G),
		B: math.Round(ps.random() * ps.Color.B),
		A: 1,
	}
	cfg.Parent = ps
	return cfg
}

// spawnAt replaces the particle at index in place.
func (ps *ParticleSystem) spawnAt(index int) {
	ps.pool[index].reset(ps.spawnConfig())
}

func (ps *ParticleSystem) appendParticle() {
	n := len(ps.pool)
	if n < cap(ps.pool) {
		if p := ps.pool[:n+1][n]; p != nil {
			ps.pool = ps.pool[:n+1]
			p.reset(ps.spawnConfig())
			return
		}
	}
	p := &Particle{}
	p.reset(ps.spawnConfig())
	ps.pool = append(ps.pool, p)
}

// removeAt removes the slot at index, keeping order. The removed particle is
// parked past the end for reuse.
func (ps *ParticleSystem) removeAt(index int) {
	n := len(ps.pool)
	p := ps.pool[index]
	copy(ps.pool[index:], ps.pool[index+1:])
	ps.pool[n-1] = p
	ps.pool = ps.pool[:n-1]
}

func (ps *ParticleSystem) corrupt(index int) {
	if w := ps.world; w != nil {
		w.reportCorrupt(&ps.GameObject, index)
	}
	ps.corruptHooks.each(func(fn CorruptFunc) { fn(ps, index) })
}

func (ps *ParticleSystem) random() float64 {
	if ps.rng != nil {
		return ps.rng.Float64()
	}
	return rand.Float64()
}
