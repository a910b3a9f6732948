package ember

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the overlay text is rebuilt.
const fpsRefresh = 0.5

// FPSOverlay is a GameObject that prints the current FPS and TPS in the
// corner of an Ebitengine surface. Add it to the World last so it draws on
// top. Other surfaces are ignored.
type FPSOverlay struct {
	GameObject

	text    string
	sinceUp float64
}

// NewFPSOverlay creates an overlay at the top-left corner.
func NewFPSOverlay(layers ...Layer[ObjectConfig]) *FPSOverlay {
	o := &FPSOverlay{}
	cfg := Compose(DefaultObjectConfig(), WithName[ObjectConfig]("fps"), WithSize[ObjectConfig](100, 32))
	Apply(&cfg, layers...)
	o.construct(o, cfg)
	return o
}

// Text returns the last rendered overlay text.
func (o *FPSOverlay) Text() string { return o.text }

// Update refreshes the text every half second and draws it.
func (o *FPSOverlay) Update(f *Frame) {
	o.sinceUp += f.Delta
	if o.text == "" || o.sinceUp >= fpsRefresh {
		o.sinceUp = 0
		o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}

	if es, ok := f.Surface.(*EbitenSurface); ok && o.Visible && es.Image() != nil {
		pos := o.Position().Round()
		// Semi-transparent backing for readability.
		es.Image().SubImage(rectAt(pos, o.Width, o.Height)).(*ebiten.Image).Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrintAt(es.Image(), o.text, int(pos.X), int(pos.Y))
	}
	o.fireUpdate(f)
}

func rectAt(pos Vec2, w, h float64) image.Rectangle {
	x, y := int(pos.X), int(pos.Y)
	return image.Rect(x, y, x+int(w), y+int(h))
}
