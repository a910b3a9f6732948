package ember

import (
	"image"
	"math"
	"sort"
)

// Surface is the drawing API the driver supplies each frame. It mirrors a
// 2D canvas context: a current fill style and compositing mode, rectangle
// and arc fills, and gradient/pattern construction.
type Surface interface {
	// Size returns the drawable area in pixels.
	Size() (width, height int)
	// SetFillStyle sets the style used by subsequent fills.
	SetFillStyle(style FillStyle)
	// SetCompositeMode sets the compositing mode used by subsequent fills.
	SetCompositeMode(mode BlendMode)
	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, width, height float64)
	// FillArc fills the circular sector centered at (x, y) between the two
	// angles (radians, clockwise from +X). A full turn fills a disc.
	FillArc(x, y, radius, startAngle, endAngle float64)
	// CreateRadialGradient returns a gradient between the circles (x0, y0, r0)
	// and (x1, y1, r1). Add stops with AddColorStop.
	CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) *RadialGradient
	// CreatePattern returns a repeating fill built from img.
	CreatePattern(img image.Image) *Pattern
}

// FillStyle is one of Solid, *RadialGradient or *Pattern.
type FillStyle interface {
	fillStyle()
}

// Solid is a single-color fill.
type Solid Color

func (Solid) fillStyle() {}

// ColorStop is one entry of a gradient, with Offset in [0, 1].
type ColorStop struct {
	Offset float64
	Color  Color
}

// RadialGradient interpolates colors between two circles. Only concentric
// gradients with r0 == 0 are rendered exactly by EbitenSurface; other shapes
// are approximated by the outer circle.
type RadialGradient struct {
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	Stops      []ColorStop
}

func (*RadialGradient) fillStyle() {}

// AddColorStop inserts a stop keeping the list ordered by offset. Stops with
// equal offsets keep insertion order. Offsets outside [0, 1] are clamped.
func (g *RadialGradient) AddColorStop(offset float64, c Color) {
	offset = clamp01(offset)
	i := sort.Search(len(g.Stops), func(i int) bool { return g.Stops[i].Offset > offset })
	g.Stops = append(g.Stops, ColorStop{})
	copy(g.Stops[i+1:], g.Stops[i:])
	g.Stops[i] = ColorStop{Offset: offset, Color: c}
}

// ColorAt returns the interpolated color at offset t.
func (g *RadialGradient) ColorAt(t float64) Color {
	if len(g.Stops) == 0 {
		return ColorTransparent
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	last := g.Stops[len(g.Stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		b := g.Stops[i]
		if t > b.Offset {
			continue
		}
		a := g.Stops[i-1]
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerpColor(a.Color, b.Color, (t-a.Offset)/span)
	}
	return last.Color
}

// offsetAt maps a distance from the gradient center to a gradient offset.
func (g *RadialGradient) offsetAt(dist float64) float64 {
	span := g.R1 - g.R0
	if span <= 0 || math.IsNaN(span) {
		return 1
	}
	return clamp01((dist - g.R0) / span)
}

// Pattern is a repeating image fill. Image is whatever the creating surface
// needs to render it (an *ebiten.Image for EbitenSurface).
type Pattern struct {
	Width, Height int
	Image         any
}

func (*Pattern) fillStyle() {}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: lerp(a.R, b.R, t),
		G: lerp(a.G, b.G, t),
		B: lerp(a.B, b.B, t),
		A: lerp(a.A, b.A, t),
	}
}

// Frame is the context handed to every Init, Update, FixedUpdate and
// observer call.
type Frame struct {
	// Surface is the drawing target. Nil during fixed ticks of a headless
	// driver that has no surface.
	Surface Surface
	// Tick counts calls of this phase, starting at 1.
	Tick uint64
	// Delta is the time in seconds since the previous tick of this phase.
	Delta float64
	// Elapsed is the time in seconds since the driver started.
	Elapsed float64
	// Fixed is true for fixed-cadence ticks.
	Fixed bool
	// World is the world being ticked.
	World *World
}

// Size returns the surface size, or zero when there is no surface.
func (f *Frame) Size() (width, height int) {
	if f == nil || f.Surface == nil {
		return 0, 0
	}
	return f.Surface.Size()
}
