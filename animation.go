package ember

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields of a GameObject at once.
// Create one via TweenPosition, TweenSize, TweenRadius or TweenColor and
// call Update(dt) each frame, usually from an OnUpdate hook. If the target
// is removed from its world, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *GameObject
	Done   bool
}

func newTweenGroup(target *GameObject, duration float32, fn ease.TweenFunc, pairs ...tweenPair) *TweenGroup {
	g := &TweenGroup{count: len(pairs), target: target}
	for i, p := range pairs {
		g.tweens[i] = gween.New(float32(*p.field), float32(p.to), duration, fn)
		g.fields[i] = p.field
	}
	return g
}

type tweenPair struct {
	field *float64
	to    float64
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields. Once the target is removed, Done is set and nothing is
// written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsRemoved() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition animates the object's position to (toX, toY).
func TweenPosition(obj *GameObject, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	t := obj.ensureTransform()
	return newTweenGroup(obj, duration, fn,
		tweenPair{&t.Position.X, toX},
		tweenPair{&t.Position.Y, toY},
	)
}

// TweenSize animates Width and Height. On a ParticleSystem the next fixed
// tick turns the change into a new radius.
func TweenSize(obj *GameObject, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(obj, duration, fn,
		tweenPair{&obj.Width, toW},
		tweenPair{&obj.Height, toH},
	)
}

// TweenRadius animates the base spawn radius of a particle system.
func TweenRadius(ps *ParticleSystem, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(&ps.GameObject, duration, fn, tweenPair{&ps.Radius, to})
}

// TweenColor animates all four channels of c. The target is the object
// that owns c; pass nil for a free-standing color.
func TweenColor(owner *GameObject, c *Color, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(owner, duration, fn,
		tweenPair{&c.R, to.R},
		tweenPair{&c.G, to.G},
		tweenPair{&c.B, to.B},
		tweenPair{&c.A, to.A},
	)
}
