package ember

// Entity is anything a World can tick. Every GameObject subtype implements
// it by embedding *GameObject and overriding the phases it needs.
type Entity interface {
	// Object returns the embedded GameObject.
	Object() *GameObject
	// Init runs exactly once, before the first tick of either kind.
	Init(f *Frame)
	// Update runs once per rendered frame.
	Update(f *Frame)
	// FixedUpdate runs at the driver's fixed cadence.
	FixedUpdate(f *Frame)
}

// ObjectConfig holds the fields shared by every GameObject.
type ObjectConfig struct {
	Name      string    `yaml:"name"`
	Transform Transform `yaml:"transform"`
	Width     float64   `yaml:"width"`
	Height    float64   `yaml:"height"`
	Visible   bool      `yaml:"visible"`
}

// DefaultObjectConfig returns the GameObject defaults: visible, at the
// origin, zero size.
func DefaultObjectConfig() ObjectConfig {
	return ObjectConfig{Visible: true}
}

func (c *ObjectConfig) objectConfig() *ObjectConfig { return c }

// objectConfigurer is satisfied by pointers to any config that embeds
// ObjectConfig.
type objectConfigurer[T any] interface {
	*T
	objectConfig() *ObjectConfig
}

// WithName sets the object name.
func WithName[T any, PT objectConfigurer[T]](name string) Layer[T] {
	return func(c *T) { PT(c).objectConfig().Name = name }
}

// WithPosition places the object's Transform at (x, y).
func WithPosition[T any, PT objectConfigurer[T]](x, y float64) Layer[T] {
	return func(c *T) { PT(c).objectConfig().Transform.Position = Vec2{x, y} }
}

// WithTransform copies t into the config. The object never shares t.
func WithTransform[T any, PT objectConfigurer[T]](t *Transform) Layer[T] {
	return func(c *T) { PT(c).objectConfig().Transform = *t.Clone() }
}

// WithSize sets width and height.
func WithSize[T any, PT objectConfigurer[T]](width, height float64) Layer[T] {
	return func(c *T) {
		oc := PT(c).objectConfig()
		oc.Width = width
		oc.Height = height
	}
}

// WithVisible sets visibility.
func WithVisible[T any, PT objectConfigurer[T]](visible bool) Layer[T] {
	return func(c *T) { PT(c).objectConfig().Visible = visible }
}

// objectIDCounter is not atomic; a World is driven from one goroutine.
var objectIDCounter uint32

func nextObjectID() uint32 {
	objectIDCounter++
	return objectIDCounter
}

// GameObject is the base of every ticked object: identity, an owned
// Transform, a size, and the post-tick observer lists.
type GameObject struct {
	ID        uint32
	Name      string
	Transform *Transform
	Width     float64
	Height    float64
	Visible   bool

	state       State
	self        Entity
	world       *World
	updateHooks hooks[HookFunc]
	fixedHooks  hooks[HookFunc]
}

// NewGameObject creates a plain GameObject with the given layers applied on
// top of DefaultObjectConfig.
func NewGameObject(layers ...Layer[ObjectConfig]) *GameObject {
	g := &GameObject{}
	g.construct(g, Compose(DefaultObjectConfig(), layers...))
	return g
}

// construct fills the shared fields. self is the outermost entity that
// embeds g; it is what observers receive.
func (g *GameObject) construct(self Entity, cfg ObjectConfig) {
	g.ID = nextObjectID()
	g.Name = cfg.Name
	g.Transform = cfg.Transform.Clone()
	g.Width = cfg.Width
	g.Height = cfg.Height
	g.Visible = cfg.Visible
	g.state = StateConstructed
	g.self = self
}

// Object implements Entity.
func (g *GameObject) Object() *GameObject { return g }

// Init implements Entity. The base object has nothing to acquire.
func (g *GameObject) Init(*Frame) {}

// Update implements Entity by firing the update observers.
func (g *GameObject) Update(f *Frame) { g.fireUpdate(f) }

// FixedUpdate implements Entity by firing the fixed-update observers.
func (g *GameObject) FixedUpdate(f *Frame) { g.fireFixedUpdate(f) }

// OnUpdate registers an observer that runs after the object's own Update
// processing, every rendered frame.
func (g *GameObject) OnUpdate(fn HookFunc) HookHandle {
	return g.updateHooks.add(fn)
}

// OnFixedUpdate registers an observer that runs after the object's own
// FixedUpdate processing, every fixed tick.
func (g *GameObject) OnFixedUpdate(fn HookFunc) HookHandle {
	return g.fixedHooks.add(fn)
}

// State returns the lifecycle state.
func (g *GameObject) State() State { return g.state }

// IsRemoved reports whether the object has been evicted from its world.
func (g *GameObject) IsRemoved() bool { return g.state == StateRemoved }

// World returns the world tracking this object, or nil.
func (g *GameObject) World() *World { return g.world }

// Position returns the Transform position, defaulting a missing Transform.
func (g *GameObject) Position() Vec2 {
	return g.ensureTransform().Position
}

// SetPosition moves the object to (x, y).
func (g *GameObject) SetPosition(x, y float64) {
	g.ensureTransform().Position = Vec2{x, y}
}

// Entity returns the outermost entity embedding g.
func (g *GameObject) Entity() Entity {
	if g.self == nil {
		return g
	}
	return g.self
}

func (g *GameObject) ensureTransform() *Transform {
	if g.Transform == nil {
		g.Transform = &Transform{}
	}
	return g.Transform
}

func (g *GameObject) fireUpdate(f *Frame) {
	self := g.Entity()
	g.updateHooks.each(func(fn HookFunc) { fn(self, f) })
}

func (g *GameObject) fireFixedUpdate(f *Frame) {
	self := g.Entity()
	g.fixedHooks.each(func(fn HookFunc) { fn(self, f) })
}

// release drops observers once the object is removed.
func (g *GameObject) release() {
	g.updateHooks.clear()
	g.fixedHooks.clear()
	g.world = nil
}
