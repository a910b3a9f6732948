package ember

import "image"

// OpKind identifies a recorded Surface call.
type OpKind uint8

const (
	OpFillRect OpKind = iota // FillRect
	OpFillArc                // FillArc
)

// Op is one recorded fill, with the fill style and compositing mode that
// were current when it was issued.
type Op struct {
	Kind       OpKind
	Style      FillStyle
	Mode       BlendMode
	X, Y       float64
	Width      float64 // OpFillRect
	Height     float64 // OpFillRect
	Radius     float64 // OpFillArc
	StartAngle float64 // OpFillArc
	EndAngle   float64 // OpFillArc
}

// Recorder is a Surface that records fills instead of rendering them. It is
// used for headless runs and tests.
type Recorder struct {
	Width, Height int
	Ops           []Op

	style     FillStyle
	mode      BlendMode
	modeSets  int
	gradients int
	patterns  int
}

var _ Surface = (*Recorder)(nil)

// NewRecorder returns a Recorder reporting the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height, style: Solid(ColorTransparent)}
}

// Size implements Surface.
func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

// SetFillStyle implements Surface.
func (r *Recorder) SetFillStyle(style FillStyle) { r.style = style }

// SetCompositeMode implements Surface.
func (r *Recorder) SetCompositeMode(mode BlendMode) {
	r.mode = mode
	r.modeSets++
}

// FillRect implements Surface.
func (r *Recorder) FillRect(x, y, width, height float64) {
	r.Ops = append(r.Ops, Op{
		Kind: OpFillRect, Style: r.style, Mode: r.mode,
		X: x, Y: y, Width: width, Height: height,
	})
}

// FillArc implements Surface.
func (r *Recorder) FillArc(x, y, radius, startAngle, endAngle float64) {
	r.Ops = append(r.Ops, Op{
		Kind: OpFillArc, Style: r.style, Mode: r.mode,
		X: x, Y: y, Radius: radius, StartAngle: startAngle, EndAngle: endAngle,
	})
}

// CreateRadialGradient implements Surface.
func (r *Recorder) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) *RadialGradient {
	r.gradients++
	return &RadialGradient{X0: x0, Y0: y0, R0: r0, X1: x1, Y1: y1, R1: r1}
}

// CreatePattern implements Surface. The pattern keeps img as its Image.
func (r *Recorder) CreatePattern(img image.Image) *Pattern {
	r.patterns++
	b := img.Bounds()
	return &Pattern{Width: b.Dx(), Height: b.Dy(), Image: img}
}

// CompositeMode returns the current compositing mode.
func (r *Recorder) CompositeMode() BlendMode { return r.mode }

// CompositeModeSets returns how many times SetCompositeMode was called.
func (r *Recorder) CompositeModeSets() int { return r.modeSets }

// GradientsCreated returns how many gradients were created.
func (r *Recorder) GradientsCreated() int { return r.gradients }

// PatternsCreated returns how many patterns were created.
func (r *Recorder) PatternsCreated() int { return r.patterns }

// Arcs returns the recorded arc fills.
func (r *Recorder) Arcs() []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == OpFillArc {
			out = append(out, op)
		}
	}
	return out
}

// Reset clears recorded ops and counters, keeping the size.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.style = Solid(ColorTransparent)
	r.mode = BlendSourceOver
	r.modeSets = 0
	r.gradients = 0
	r.patterns = 0
}
