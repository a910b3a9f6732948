package ember

// Transform holds the position of a GameObject. Each GameObject owns its own
// Transform; use Clone to hand a copy to another object.
type Transform struct {
	Position Vec2 `yaml:"position"`
}

// NewTransform returns a Transform at (x, y).
func NewTransform(x, y float64) *Transform {
	return &Transform{Position: Vec2{x, y}}
}

// Clone returns an independent copy of t. A nil receiver yields a Transform
// at the origin.
func (t *Transform) Clone() *Transform {
	if t == nil {
		return &Transform{}
	}
	c := *t
	return &c
}

// Translate moves the position by d.
func (t *Transform) Translate(d Vec2) {
	t.Position = t.Position.Add(d)
}
