package ember

import (
	"context"
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultMaxFixedSteps caps how many fixed ticks a single headless frame may
// run to catch up.
const DefaultMaxFixedSteps = 5

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// TPS is the fixed tick rate. Zero means Ebitengine's default (60).
	TPS int
	// ShowFPS adds an FPSOverlay to the world.
	ShowFPS bool
	// ClearColor fills the screen before each frame when its alpha is
	// non-zero.
	ClearColor Color
}

// Run opens a window and drives world until the window is closed or
// World.Stop is called. Ebitengine's Update becomes the fixed phase and Draw
// becomes the per-frame phase, drawn onto the screen.
func Run(world *World, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.ShowFPS {
		world.Add(NewFPSOverlay())
	}

	g := &game{world: world, cfg: cfg, surface: NewEbitenSurface(nil)}
	return ebiten.RunGame(g)
}

// game adapts a World to ebiten.Game.
type game struct {
	world   *World
	cfg     RunConfig
	surface *EbitenSurface

	start     time.Time
	lastDraw  time.Time
	fixed     Frame
	frame     Frame
	fixedStep float64
}

func (g *game) Update() error {
	if g.world.Stopped() {
		return ebiten.Termination
	}
	if g.start.IsZero() {
		g.start = time.Now()
		g.lastDraw = g.start
		g.fixedStep = 1 / float64(ebiten.TPS())
	}
	g.fixed.Surface = nil
	g.fixed.Delta = g.fixedStep
	g.fixed.Elapsed = time.Since(g.start).Seconds()
	g.world.FixedUpdate(&g.fixed)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.start.IsZero() {
		return
	}
	if g.cfg.ClearColor.A > 0 {
		screen.Fill(g.cfg.ClearColor.NRGBA())
	}
	now := time.Now()
	g.surface.SetTarget(screen)
	g.frame.Surface = g.surface
	g.frame.Delta = now.Sub(g.lastDraw).Seconds()
	g.frame.Elapsed = now.Sub(g.start).Seconds()
	g.lastDraw = now
	g.world.Update(&g.frame)
	g.world.flushScreenshots(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// HeadlessConfig configures RunHeadless.
type HeadlessConfig struct {
	// FrameInterval is the wall-clock period of the per-frame phase.
	FrameInterval time.Duration
	// FixedInterval is the period of the fixed phase. Zero uses
	// FrameInterval.
	FixedInterval time.Duration
	// MaxFixedSteps caps catch-up per frame. Zero uses
	// DefaultMaxFixedSteps.
	MaxFixedSteps int
}

// RunHeadless drives world without a window, drawing onto surface (which
// may be nil). Each frame runs zero or more fixed ticks from an accumulator,
// then one Update. It returns nil when ctx is cancelled or World.Stop is
// called, and ctx.Err() for any other context error such as a deadline.
func RunHeadless(ctx context.Context, world *World, surface Surface, cfg HeadlessConfig) error {
	if cfg.FrameInterval <= 0 {
		return errors.New("ember: headless frame interval must be positive")
	}
	st := newFixedStepper(cfg)

	ticker := time.NewTicker(cfg.FrameInterval)
	defer ticker.Stop()

	start := time.Now()
	last := start
	var fixed, frame Frame
	frame.Surface = surface

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			elapsed := now.Sub(start).Seconds()

			for n := st.advance(dt); n > 0; n-- {
				fixed.Delta = st.step
				fixed.Elapsed = elapsed
				world.FixedUpdate(&fixed)
			}
			frame.Delta = dt
			frame.Elapsed = elapsed
			world.Update(&frame)
			if world.Stopped() {
				return nil
			}
		}
	}
}

// fixedStepper turns variable frame deltas into a whole number of fixed
// ticks. Time beyond the per-frame cap is dropped.
type fixedStepper struct {
	step     float64
	maxSteps int
	acc      float64
}

func newFixedStepper(cfg HeadlessConfig) *fixedStepper {
	fixed := cfg.FixedInterval
	if fixed <= 0 {
		fixed = cfg.FrameInterval
	}
	maxSteps := cfg.MaxFixedSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxFixedSteps
	}
	return &fixedStepper{step: fixed.Seconds(), maxSteps: maxSteps}
}

// advance adds dt seconds and returns how many fixed ticks are due.
func (s *fixedStepper) advance(dt float64) int {
	s.acc += dt
	n := 0
	for s.acc >= s.step && n < s.maxSteps {
		s.acc -= s.step
		n++
	}
	if n == s.maxSteps && s.acc >= s.step {
		s.acc = 0
	}
	return n
}
