package ember

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for DecodeFile
	_ "image/png"
	"math"
	"os"
)

// BackgroundConfig holds the fields a Background is constructed from.
type BackgroundConfig struct {
	ObjectConfig `yaml:",inline"`

	// Color fills the background while no image is ready. Nothing is drawn
	// when its alpha is 0.
	Color Color `yaml:"color"`
	// Image is the path of an image tiled across the background.
	Image string `yaml:"image"`
}

// DefaultBackgroundConfig returns a transparent background with no image,
// sized to the surface at Init.
func DefaultBackgroundConfig() BackgroundConfig {
	return BackgroundConfig{ObjectConfig: DefaultObjectConfig()}
}

// WithBackgroundColor sets the fallback fill color.
func WithBackgroundColor(c Color) Layer[BackgroundConfig] {
	return func(cfg *BackgroundConfig) { cfg.Color = c }
}

// WithBackgroundImage sets the tiled image path.
func WithBackgroundImage(path string) Layer[BackgroundConfig] {
	return func(cfg *BackgroundConfig) { cfg.Image = path }
}

// ImageLoader decodes the image at path. It runs on its own goroutine and
// must not touch the Background.
type ImageLoader func(path string) (image.Image, error)

// DecodeFile is the default ImageLoader. PNG and JPEG are registered.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

type imageResult struct {
	path string
	img  image.Image
	err  error
}

// Background fills its rectangle with a repeating image, or with a solid
// color until the image has loaded. Loading is asynchronous; Update polls
// for the result and never blocks.
type Background struct {
	GameObject

	Color Color
	Image string

	// ImageWidth and ImageHeight are set once the image has loaded.
	ImageWidth  int
	ImageHeight int

	loader    ImageLoader
	requested string // path of the outstanding or completed request
	results   chan imageResult
	loaded    image.Image
	pattern   *Pattern
	lastErr   error
}

// NewBackground creates a background from DefaultBackgroundConfig plus
// layers.
func NewBackground(layers ...Layer[BackgroundConfig]) *Background {
	cfg := Compose(DefaultBackgroundConfig(), layers...)
	b := &Background{
		Color:  cfg.Color,
		Image:  cfg.Image,
		loader: DecodeFile,
	}
	b.construct(b, cfg.ObjectConfig)
	return b
}

// SetLoader replaces the image loader. Call before the background is added
// to a world.
func (b *Background) SetLoader(l ImageLoader) {
	if l == nil {
		l = DecodeFile
	}
	b.loader = l
}

// Ready reports whether the image has loaded.
func (b *Background) Ready() bool {
	return b.loaded != nil
}

// Err returns the error from the most recent failed load, if any.
func (b *Background) Err() error {
	return b.lastErr
}

// Init starts loading the image and sizes the background to the surface
// when no size was configured.
func (b *Background) Init(f *Frame) {
	b.request()
	b.fit(f)
}

// fit defaults an unset size to the surface size.
func (b *Background) fit(f *Frame) {
	w, h := f.Size()
	if b.Width == 0 {
		b.Width = float64(w)
	}
	if b.Height == 0 {
		b.Height = float64(h)
	}
}

// Update picks up a finished load, restarts loading when Image changed, and
// fills the rectangle.
func (b *Background) Update(f *Frame) {
	if b.Image != b.requested {
		b.request()
	}
	b.poll(f)
	b.fit(f)

	if s := f.Surface; s != nil && b.Visible {
		b.draw(s)
	}
	b.fireUpdate(f)
}

func (b *Background) draw(s Surface) {
	switch {
	case b.loaded != nil:
		if b.pattern == nil {
			b.pattern = s.CreatePattern(b.loaded)
		}
		s.SetFillStyle(b.pattern)
	case b.Color.A > 0:
		s.SetFillStyle(Solid(b.Color))
	default:
		return
	}
	pos := b.Position()
	s.FillRect(math.Round(pos.X), math.Round(pos.Y), math.Round(b.Width), math.Round(b.Height))
}

// request drops the current image and pattern and starts loading b.Image.
func (b *Background) request() {
	b.requested = b.Image
	b.loaded = nil
	b.pattern = nil
	b.ImageWidth, b.ImageHeight = 0, 0
	if b.Image == "" {
		return
	}
	// A fresh channel per request; superseded loads finish into channels
	// nobody reads.
	b.results = make(chan imageResult, 1)
	path, load, out := b.Image, b.loader, b.results
	go func() {
		img, err := load(path)
		out <- imageResult{path: path, img: img, err: err}
	}()
}

// poll drains finished loads without blocking.
func (b *Background) poll(f *Frame) {
	for {
		select {
		case r := <-b.results:
			if r.path != b.requested {
				continue
			}
			if r.err != nil {
				b.lastErr = r.err
				if w := f.World; w != nil && w.debug {
					w.debugf("background %q: %v", b.Name, r.err)
				}
				continue
			}
			b.lastErr = nil
			b.loaded = r.img
			bounds := r.img.Bounds()
			b.ImageWidth, b.ImageHeight = bounds.Dx(), bounds.Dy()
		default:
			return
		}
	}
}
