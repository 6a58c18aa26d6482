// Package scene assembles the board's two layers from configuration: the
// typed letters underneath and the fading ink on top.
package scene

import (
	"fmt"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"go.uber.org/zap"

	"AmbientBoard/internal/config"
	"AmbientBoard/internal/draw"
	"AmbientBoard/internal/frame"
	"AmbientBoard/internal/letters"
	"AmbientBoard/internal/mode"
	"AmbientBoard/internal/state"
	"AmbientBoard/internal/surface"
)

type Scene struct {
	Strokes *surface.Canvas
	Glyphs  *surface.Canvas

	Draw  *draw.Engine
	Text  *letters.Layout
	Modes *mode.Controller

	background gg.RGBA
	log        *zap.Logger
}

type Option func(*options)

type options struct {
	clock state.Clock
	rng   *rand.Rand
}

func WithClock(c state.Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// New builds both layers on sched. Nothing is initialized or activated until
// Start.
func New(cfg *config.Config, sched frame.Scheduler, log *zap.Logger, opts ...Option) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}
	o := options{clock: state.SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	face, err := surface.Face(cfg.Text.FontSize)
	if err != nil {
		return nil, fmt.Errorf("letters font: %w", err)
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	s := &Scene{
		Strokes:    surface.New(w, h),
		Glyphs:     surface.New(w, h),
		background: gg.Hex(cfg.Window.Background),
		log:        log,
	}
	s.Glyphs.SetFont(face)

	s.Draw = draw.New(s.Strokes, sched,
		draw.WithClock(o.clock),
		draw.WithPolicy(Policy(cfg.Draw)),
		draw.WithInk(gg.Hex(cfg.Draw.Color)),
		draw.WithLogger(log.Named("draw")),
		draw.WithSize(w, h),
	)

	textOpts := []letters.Option{
		letters.WithClock(o.clock),
		letters.WithInk(gg.Hex(cfg.Text.Color)),
		letters.WithTiming(cfg.Text.Lifetime, cfg.Text.InactivityReset),
		letters.WithLogger(log.Named("letters")),
		letters.WithSize(w, h),
	}
	if o.rng != nil {
		textOpts = append(textOpts, letters.WithRand(o.rng))
	}
	s.Text = letters.New(s.Glyphs, sched, textOpts...)

	s.Modes = mode.New(s.Text, s.Draw, log.Named("mode"))
	return s, nil
}

// Policy returns the fade policy the draw section selects.
func Policy(d config.Draw) draw.FadePolicy {
	if d.Policy == config.PolicyStroke {
		return draw.StrokeFade{
			Duration: d.Stroke.Duration,
			Width:    d.Stroke.LineWidth,
			Peak:     d.Opacity,
		}
	}
	return draw.PointFade{
		Delay:    d.Point.Delay,
		Duration: d.Point.Duration,
		Width:    d.Point.LineWidth,
		Peak:     d.Opacity,
	}
}

// Start initializes both layers and enters text mode.
func (s *Scene) Start() {
	s.Modes.Start()
}

func (s *Scene) Resize(width, height int) {
	s.Draw.Resize(width, height)
	s.Text.Resize(width, height)
}

// Apply takes the live-reloadable parts of cfg: the fade policy, the ink
// colors and the background. Window size and fonts need a restart.
func (s *Scene) Apply(cfg *config.Config) {
	s.Draw.SetPolicy(Policy(cfg.Draw))
	s.Draw.SetInk(gg.Hex(cfg.Draw.Color))
	s.Text.SetInk(gg.Hex(cfg.Text.Color))
	s.background = gg.Hex(cfg.Window.Background)
	s.log.Info("scene settings applied", zap.String("policy", cfg.Draw.Policy))
}

func (s *Scene) Background() gg.RGBA {
	return s.background
}
