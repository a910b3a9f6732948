package ember

// ParticleConfig holds the fields a Particle is constructed from.
type ParticleConfig struct {
	ObjectConfig `yaml:",inline"`
	Speed        Vec2    `yaml:"speed"`
	Radius       float64 `yaml:"radius"`
	Life         float64 `yaml:"life"`
	Color        Color   `yaml:"color"`

	// Parent is the owning system. Not serializable.
	Parent *ParticleSystem `yaml:"-"`
}

// DefaultParticleConfig returns the Particle defaults: at rest, radius 1,
// life 1, opaque white.
func DefaultParticleConfig() ParticleConfig {
	return ParticleConfig{
		ObjectConfig: DefaultObjectConfig(),
		Radius:       1,
		Life:         1,
		Color:        ColorWhite,
	}
}

// WithParticleSpeed sets the fixed velocity.
func WithParticleSpeed(x, y float64) Layer[ParticleConfig] {
	return func(c *ParticleConfig) { c.Speed = Vec2{x, y} }
}

// WithParticleRadius sets the starting radius.
func WithParticleRadius(r float64) Layer[ParticleConfig] {
	return func(c *ParticleConfig) { c.Radius = r }
}

// WithParticleLife sets the maximum life in ticks.
func WithParticleLife(life float64) Layer[ParticleConfig] {
	return func(c *ParticleConfig) { c.Life = life }
}

// WithParticleColor sets the base color.
func WithParticleColor(col Color) Layer[ParticleConfig] {
	return func(c *ParticleConfig) { c.Color = col }
}

// WithParticleParent sets the owning system.
func WithParticleParent(ps *ParticleSystem) Layer[ParticleConfig] {
	return func(c *ParticleConfig) { c.Parent = ps }
}

// Particle is a pure data GameObject. It has no behavior of its own; its
// owning ParticleSystem mutates it every tick.
type Particle struct {
	GameObject

	// Speed is added to the position every tick. Fixed at spawn.
	Speed Vec2
	// Radius decays by 1 per tick.
	Radius float64
	// Life is the maximum life in ticks.
	Life float64
	// RemainingLife counts down by 1 per tick from Life.
	RemainingLife float64
	// Color is the particle color; A is rewritten every tick from the
	// remaining life.
	Color Color

	parent *ParticleSystem
}

// NewParticle creates a particle from DefaultParticleConfig plus layers.
// RemainingLife always starts at Life.
func NewParticle(layers ...Layer[ParticleConfig]) *Particle {
	p := &Particle{}
	p.reset(Compose(DefaultParticleConfig(), layers...))
	return p
}

// reset reinitializes p in place from cfg. Used both for construction and
// for pool respawns, so a respawned slot gets a fresh identity.
func (p *Particle) reset(cfg ParticleConfig) {
	p.GameObject = GameObject{}
	p.construct(p, cfg.ObjectConfig)
	p.Speed = cfg.Speed
	p.Radius = cfg.Radius
	p.Life = cfg.Life
	p.RemainingLife = cfg.Life
	p.Color = cfg.Color
	p.parent = cfg.Parent
	p.Width = 2 * p.Radius
	p.Height = 2 * p.Radius
}

// Parent returns the owning system, or nil for a free-standing particle.
func (p *Particle) Parent() *ParticleSystem { return p.parent }

// Alive reports whether neither counter has run out.
func (p *Particle) Alive() bool {
	return p.RemainingLife >= 0 && p.Radius >= 0
}
