package ember

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	obj := NewGameObject(WithPosition[ObjectConfig](10, 20))

	g := TweenPosition(obj, 100, 200, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	pos := obj.Position()
	if math.Abs(pos.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", pos.X)
	}
	if math.Abs(pos.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", pos.Y)
	}
}

func TestTweenPositionMidway(t *testing.T) {
	obj := NewGameObject()
	g := TweenPosition(obj, 10, -10, 1.0, ease.Linear)
	g.Update(0.5)
	if g.Done {
		t.Fatal("Done too early")
	}
	if math.Abs(obj.Position().X-5) > 0.01 || math.Abs(obj.Position().Y+5) > 0.01 {
		t.Errorf("Position = %v, want ~(5,-5)", obj.Position())
	}
}

func TestTweenSizeDrivesParticleRadius(t *testing.T) {
	ps := NewParticleSystem(WithRadius(5))
	ps.FixedUpdate(&Frame{})

	g := TweenSize(&ps.GameObject, 30, 40, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)
	if !g.Done {
		t.Fatal("expected Done after full duration")
	}

	ps.FixedUpdate(&Frame{})
	// Both sides changed: height is checked last and wins.
	if math.Abs(ps.Radius-20) > 0.01 {
		t.Errorf("Radius = %f, want ~20", ps.Radius)
	}
}

func TestTweenRadius(t *testing.T) {
	ps := NewParticleSystem(WithRadius(2))
	g := TweenRadius(ps, 12, 1.0, ease.Linear)
	g.Update(0.5)
	g.Update(0.5)
	if math.Abs(ps.Radius-12) > 0.01 {
		t.Errorf("Radius = %f, want ~12", ps.Radius)
	}
}

func TestTweenColorAllChannels(t *testing.T) {
	b := NewBackground(WithBackgroundColor(Color{R: 255, A: 1}))
	target := Color{R: 0, G: 255, B: 128, A: 0.5}

	g := TweenColor(&b.GameObject, &b.Color, target, 1.0, ease.Linear)
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(b.Color.R) > 0.5 || math.Abs(b.Color.G-255) > 0.5 || math.Abs(b.Color.B-128) > 0.5 {
		t.Errorf("Color = %v, want ~%v", b.Color, target)
	}
	if math.Abs(b.Color.A-0.5) > 0.01 {
		t.Errorf("A = %f, want ~0.5", b.Color.A)
	}
}

func TestTweenStopsWhenTargetRemoved(t *testing.T) {
	w := NewWorld()
	obj := NewGameObject()
	w.Add(obj)

	g := TweenPosition(obj, 100, 100, 1.0, ease.Linear)
	g.Update(0.25)
	before := obj.Position()

	w.Remove(obj)
	g.Update(0.25)
	if !g.Done {
		t.Error("expected Done once the target is removed")
	}
	if obj.Position() != before {
		t.Errorf("removed target moved from %v to %v", before, obj.Position())
	}
}

func TestTweenDrivenFromUpdateHook(t *testing.T) {
	w := NewWorld()
	obj := NewGameObject()
	g := TweenPosition(obj, 8, 0, 1.0, ease.Linear)
	obj.OnUpdate(func(_ Entity, f *Frame) { g.Update(float32(f.Delta)) })
	w.Add(obj)

	for i := 0; i < 4; i++ {
		w.Update(&Frame{Delta: 0.25})
	}
	if !g.Done {
		t.Fatal("expected Done after four quarter-second frames")
	}
	if math.Abs(obj.Position().X-8) > 0.01 {
		t.Errorf("X = %f, want ~8", obj.Position().X)
	}
}
