package ember

import (
	"image"
	"math"
	"testing"
)

func TestAddColorStopKeepsOrder(t *testing.T) {
	g := &RadialGradient{R1: 10}
	g.AddColorStop(1, ColorWhite)
	g.AddColorStop(0, Color{A: 1})
	g.AddColorStop(0.5, Color{R: 255, A: 1})
	g.AddColorStop(0.5, Color{G: 255, A: 1})

	offsets := []float64{0, 0.5, 0.5, 1}
	if len(g.Stops) != len(offsets) {
		t.Fatalf("len(Stops) = %d, want %d", len(g.Stops), len(offsets))
	}
	for i, want := range offsets {
		assertNear(t, "offset", g.Stops[i].Offset, want)
	}
	// Equal offsets keep insertion order.
	if g.Stops[1].Color.R != 255 || g.Stops[2].Color.G != 255 {
		t.Errorf("equal-offset stops out of order: %v", g.Stops)
	}
}

func TestAddColorStopClampsOffset(t *testing.T) {
	g := &RadialGradient{}
	g.AddColorStop(-1, ColorWhite)
	g.AddColorStop(3, ColorWhite)
	assertNear(t, "low", g.Stops[0].Offset, 0)
	assertNear(t, "high", g.Stops[1].Offset, 1)
}

func TestGradientColorAt(t *testing.T) {
	g := &RadialGradient{R1: 10}
	c := Color{R: 200, G: 100, B: 0, A: 0.8}
	g.AddColorStop(0, c)
	g.AddColorStop(0.5, c)
	g.AddColorStop(1, c.WithAlpha(0))

	assertNear(t, "A(0)", g.ColorAt(0).A, 0.8)
	assertNear(t, "A(0.25)", g.ColorAt(0.25).A, 0.8)
	assertNear(t, "A(0.75)", g.ColorAt(0.75).A, 0.4)
	assertNear(t, "A(1)", g.ColorAt(1).A, 0)
	assertNear(t, "R(0.75)", g.ColorAt(0.75).R, 200)
}

func TestGradientColorAtEmpty(t *testing.T) {
	g := &RadialGradient{}
	if got := g.ColorAt(0.5); got != ColorTransparent {
		t.Errorf("ColorAt on empty gradient = %v", got)
	}
}

func TestGradientOffsetAt(t *testing.T) {
	g := &RadialGradient{R0: 0, R1: 8}
	assertNear(t, "center", g.offsetAt(0), 0)
	assertNear(t, "half", g.offsetAt(4), 0.5)
	assertNear(t, "outside", g.offsetAt(20), 1)

	degenerate := &RadialGradient{R0: 0, R1: 0}
	assertNear(t, "degenerate", degenerate.offsetAt(0), 1)
}

func TestFrameSizeNil(t *testing.T) {
	var f *Frame
	if w, h := f.Size(); w != 0 || h != 0 {
		t.Errorf("nil Frame size = %d,%d", w, h)
	}
	if w, h := (&Frame{}).Size(); w != 0 || h != 0 {
		t.Errorf("surfaceless Frame size = %d,%d", w, h)
	}
	f = &Frame{Surface: NewRecorder(320, 200)}
	if w, h := f.Size(); w != 320 || h != 200 {
		t.Errorf("Frame size = %d,%d, want 320,200", w, h)
	}
}

func TestRecorderRecordsStyleAndMode(t *testing.T) {
	r := NewRecorder(10, 10)
	r.SetCompositeMode(BlendScreen)
	r.SetFillStyle(Solid(ColorWhite))
	r.FillRect(1, 2, 3, 4)
	g := r.CreateRadialGradient(5, 5, 0, 5, 5, 2)
	r.SetFillStyle(g)
	r.FillArc(5, 5, 2, 0, 2*math.Pi)

	if len(r.Ops) != 2 {
		t.Fatalf("len(Ops) = %d, want 2", len(r.Ops))
	}
	rect := r.Ops[0]
	if rect.Kind != OpFillRect || rect.Mode != BlendScreen || rect.Style != Solid(ColorWhite) {
		t.Errorf("rect op = %+v", rect)
	}
	if rect.X != 1 || rect.Y != 2 || rect.Width != 3 || rect.Height != 4 {
		t.Errorf("rect geometry = %+v", rect)
	}
	arcs := r.Arcs()
	if len(arcs) != 1 || arcs[0].Style != FillStyle(g) || arcs[0].Radius != 2 {
		t.Errorf("arcs = %+v", arcs)
	}
	if r.CompositeModeSets() != 1 || r.GradientsCreated() != 1 {
		t.Errorf("counters: modes=%d gradients=%d", r.CompositeModeSets(), r.GradientsCreated())
	}

	r.Reset()
	if len(r.Ops) != 0 || r.CompositeMode() != BlendSourceOver || r.CompositeModeSets() != 0 {
		t.Errorf("Reset left state: %+v", r)
	}
}

func TestRecorderCreatePattern(t *testing.T) {
	r := NewRecorder(10, 10)
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	p := r.CreatePattern(img)
	if p.Width != 4 || p.Height != 3 || p.Image != image.Image(img) {
		t.Errorf("pattern = %+v", p)
	}
	if r.PatternsCreated() != 1 {
		t.Errorf("PatternsCreated = %d", r.PatternsCreated())
	}
}
