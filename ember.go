package ember

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Vec2 is a 2D vector used for positions, velocities and sizes.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v with both components multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Round returns v with both components rounded to the nearest integer.
func (v Vec2) Round() Vec2 {
	return Vec2{math.Round(v.X), math.Round(v.Y)}
}

// Color is an RGB color with channels in [0, 255] and an alpha in [0, 1],
// matching the CSS rgba() convention. Not premultiplied.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// ColorWhite is opaque white.
var ColorWhite = Color{255, 255, 255, 1}

// ColorTransparent is fully transparent black.
var ColorTransparent = Color{}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// String formats c as a CSS rgba() string.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}

// NRGBA converts c to a straight-alpha 8-bit color, clamping out of range
// channels.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: clampByte(c.R),
		G: clampByte(c.G),
		B: clampByte(c.B),
		A: clampByte(c.A * 255),
	}
}

// premultiplied returns the color as premultiplied float32 components in
// [0, 1], the form ebiten vertex colors expect.
func (c Color) premultiplied() (r, g, b, a float32) {
	al := clamp01(c.A)
	return float32(clamp01(c.R/255) * al),
		float32(clamp01(c.G/255) * al),
		float32(clamp01(c.B/255) * al),
		float32(al)
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(v))
}

func clamp01(v float64) float64 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 1:
		return 1
	}
	return v
}

// BlendMode selects a compositing operation. The names follow the canvas
// globalCompositeOperation vocabulary; each maps to an ebiten.Blend.
type BlendMode uint8

const (
	BlendSourceOver      BlendMode = iota // "source-over" (standard alpha blending)
	BlendLighter                          // "lighter" (additive)
	BlendMultiply                         // "multiply"
	BlendScreen                           // "screen"
	BlendDestinationOut                   // "destination-out" (erase)
	BlendDestinationIn                    // "destination-in" (mask)
	BlendDestinationOver                  // "destination-over" (draw behind)
	BlendCopy                             // "copy" (no blending)
)

var blendModeNames = [...]string{
	BlendSourceOver:      "source-over",
	BlendLighter:         "lighter",
	BlendMultiply:        "multiply",
	BlendScreen:          "screen",
	BlendDestinationOut:  "destination-out",
	BlendDestinationIn:   "destination-in",
	BlendDestinationOver: "destination-over",
	BlendCopy:            "copy",
}

// String returns the canvas name of the blend mode.
func (b BlendMode) String() string {
	if int(b) < len(blendModeNames) {
		return blendModeNames[b]
	}
	return fmt.Sprintf("BlendMode(%d)", uint8(b))
}

// ParseBlendMode resolves a canvas compositing name. The empty string maps
// to source-over.
func ParseBlendMode(name string) (BlendMode, error) {
	if name == "" {
		return BlendSourceOver, nil
	}
	for i, n := range blendModeNames {
		if n == name {
			return BlendMode(i), nil
		}
	}
	return 0, fmt.Errorf("ember: unknown blend mode %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (b BlendMode) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BlendMode) UnmarshalText(text []byte) error {
	m, err := ParseBlendMode(string(text))
	if err != nil {
		return err
	}
	*b = m
	return nil
}

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendSourceOver:
		return ebiten.BlendSourceOver
	case BlendLighter:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendDestinationOut:
		return ebiten.BlendDestinationOut
	case BlendDestinationIn:
		return ebiten.BlendDestinationIn
	case BlendDestinationOver:
		return ebiten.BlendDestinationOver
	case BlendCopy:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// State is a GameObject lifecycle state.
type State uint8

const (
	StateConstructed   State = iota // fields composed, not yet initialized
	StateInitialized                // Init has run; idle between ticks
	StateUpdating                   // inside Update
	StateFixedUpdating              // inside FixedUpdate
	StateRemoved                    // evicted from its world; terminal
)

var stateNames = [...]string{
	StateConstructed:   "constructed",
	StateInitialized:   "initialized",
	StateUpdating:      "updating",
	StateFixedUpdating: "fixed-updating",
	StateRemoved:       "removed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}
