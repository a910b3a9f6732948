package ember

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixelImage is created lazily on the first fill; surfaces are drawn
// from the game goroutine only.
var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// as the source for untextured fills.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

const (
	minArcSegments = 8
	maxArcSegments = 96
)

// EbitenSurface renders Surface calls onto an *ebiten.Image with
// DrawTriangles32. Solid fills and gradients use per-vertex colors over a
// white pixel; patterns tile their image with AddressRepeat.
type EbitenSurface struct {
	target *ebiten.Image
	style  FillStyle
	mode   BlendMode

	// Reused vertex/index buffers.
	verts []ebiten.Vertex
	inds  []uint32
	radii []float64
}

var _ Surface = (*EbitenSurface)(nil)

// NewEbitenSurface wraps target.
func NewEbitenSurface(target *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{target: target, style: Solid(ColorTransparent)}
}

// SetTarget switches the image drawn to. The fill style and compositing mode
// reset to their defaults, as they do on a fresh canvas frame.
func (s *EbitenSurface) SetTarget(target *ebiten.Image) {
	s.target = target
	s.style = Solid(ColorTransparent)
	s.mode = BlendSourceOver
}

// Image returns the current target.
func (s *EbitenSurface) Image() *ebiten.Image { return s.target }

// Size implements Surface.
func (s *EbitenSurface) Size() (int, int) {
	if s.target == nil {
		return 0, 0
	}
	b := s.target.Bounds()
	return b.Dx(), b.Dy()
}

// SetFillStyle implements Surface.
func (s *EbitenSurface) SetFillStyle(style FillStyle) {
	if style == nil {
		style = Solid(ColorTransparent)
	}
	s.style = style
}

// SetCompositeMode implements Surface.
func (s *EbitenSurface) SetCompositeMode(mode BlendMode) { s.mode = mode }

// CreateRadialGradient implements Surface.
func (s *EbitenSurface) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) *RadialGradient {
	return &RadialGradient{X0: x0, Y0: y0, R0: r0, X1: x1, Y1: y1, R1: r1}
}

// CreatePattern implements Surface. The image is uploaded once; callers
// should cache the returned pattern.
func (s *EbitenSurface) CreatePattern(img image.Image) *Pattern {
	b := img.Bounds()
	return &Pattern{Width: b.Dx(), Height: b.Dy(), Image: ebiten.NewImageFromImage(img)}
}

// FillRect implements Surface.
func (s *EbitenSurface) FillRect(x, y, width, height float64) {
	if s.target == nil || width <= 0 || height <= 0 {
		return
	}
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]

	xs := [4]float64{x, x + width, x, x + width}
	ys := [4]float64{y, y, y + height, y + height}
	for j := 0; j < 4; j++ {
		s.verts = append(s.verts, s.vertexAt(xs[j], ys[j], s.colorAtPoint(xs[j], ys[j])))
	}
	s.inds = append(s.inds, 0, 1, 2, 1, 3, 2)
	s.flush()
}

// FillArc implements Surface.
func (s *EbitenSurface) FillArc(x, y, radius, startAngle, endAngle float64) {
	if s.target == nil || radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return
	}
	sweep := endAngle - startAngle
	if sweep == 0 {
		return
	}
	if sweep > 2*math.Pi || sweep < -2*math.Pi {
		sweep = math.Copysign(2*math.Pi, sweep)
	}

	segs := int(math.Ceil(math.Abs(sweep) * radius / 4))
	segs = max(minArcSegments, min(segs, maxArcSegments))

	s.radii = s.ringRadii(radius)
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]

	// One vertex ring per radius; ring 0 sits on the center.
	perRing := segs + 1
	for _, r := range s.radii {
		c := s.colorAtRadius(r)
		for i := 0; i <= segs; i++ {
			a := startAngle + sweep*float64(i)/float64(segs)
			sin, cos := math.Sincos(a)
			px, py := x+cos*r, y+sin*r
			if _, ok := s.style.(*RadialGradient); !ok {
				c = s.colorAtPoint(px, py)
			}
			s.verts = append(s.verts, s.vertexAt(px, py, c))
		}
	}
	for k := 0; k+1 < len(s.radii); k++ {
		inner := uint32(k * perRing)
		outer := uint32((k + 1) * perRing)
		for i := uint32(0); i < uint32(segs); i++ {
			s.inds = append(s.inds,
				inner+i, outer+i, outer+i+1,
				inner+i, outer+i+1, inner+i+1,
			)
		}
	}
	s.flush()
}

// ringRadii returns the ring radii for an arc of the given radius: the
// center, one ring per gradient stop inside the arc, and the rim.
func (s *EbitenSurface) ringRadii(radius float64) []float64 {
	radii := append(s.radii[:0], 0)
	if g, ok := s.style.(*RadialGradient); ok {
		for _, st := range g.Stops {
			r := g.R0 + st.Offset*(g.R1-g.R0)
			if r > radii[len(radii)-1] && r < radius {
				radii = append(radii, r)
			}
		}
	}
	return append(radii, radius)
}

func (s *EbitenSurface) colorAtRadius(r float64) Color {
	switch st := s.style.(type) {
	case *RadialGradient:
		return st.ColorAt(st.offsetAt(r))
	case Solid:
		return Color(st)
	default:
		return ColorWhite
	}
}

func (s *EbitenSurface) colorAtPoint(px, py float64) Color {
	switch st := s.style.(type) {
	case Solid:
		return Color(st)
	case *RadialGradient:
		return st.ColorAt(st.offsetAt(math.Hypot(px-st.X1, py-st.Y1)))
	default:
		return ColorWhite
	}
}

func (s *EbitenSurface) vertexAt(px, py float64, c Color) ebiten.Vertex {
	r, g, b, a := c.premultiplied()
	v := ebiten.Vertex{
		DstX:   float32(px),
		DstY:   float32(py),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: r,
		ColorG: g,
		ColorB: b,
		ColorA: a,
	}
	if _, ok := s.style.(*Pattern); ok {
		v.SrcX, v.SrcY = float32(px), float32(py)
	}
	return v
}

func (s *EbitenSurface) flush() {
	if len(s.inds) == 0 {
		return
	}
	src := ensureWhitePixel()
	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = s.mode.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	triOp.AntiAlias = true
	if p, ok := s.style.(*Pattern); ok {
		img, _ := p.Image.(*ebiten.Image)
		if img == nil {
			return
		}
		src = img
		triOp.Address = ebiten.AddressRepeat
	}
	s.target.DrawTriangles32(s.verts, s.inds, src, &triOp)
}
