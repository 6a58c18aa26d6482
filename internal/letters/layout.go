// Package letters scatters typed characters across an ambient text field.
// Each character drifts and fades away a few seconds after it was typed.
package letters

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gogpu/gg"
	"go.uber.org/zap"

	"AmbientBoard/internal/frame"
	"AmbientBoard/internal/state"
)

const (
	DefaultLifetime        = 6 * time.Second
	DefaultInactivityReset = 30 * time.Second

	margin      = 50.0
	edge        = 100.0
	peakOpacity = 0.9
)

// Surface is what the letters layer paints on.
type Surface interface {
	Clear()
	Resize(width, height int) error
	SetRGBA(r, g, b, a float64)
	DrawString(s string, x, y float64)
}

// Letter is one placed character.
type Letter struct {
	Char  rune
	X, Y  float64
	Drift float64
	Born  time.Time
}

// Key is a keystroke: either a named key or a printable rune.
type Key struct {
	Name             string
	Rune             rune
	Ctrl, Alt, Super bool
}

type Option func(*Layout)

func WithClock(c state.Clock) Option {
	return func(l *Layout) { l.clock = c }
}

func WithRand(r *rand.Rand) Option {
	return func(l *Layout) { l.rng = r }
}

func WithLogger(log *zap.Logger) Option {
	return func(l *Layout) { l.log = log }
}

func WithInk(c gg.RGBA) Option {
	return func(l *Layout) { l.ink = c }
}

// WithTiming overrides the letter lifetime and the inactivity period after
// which typing restarts near the center.
func WithTiming(lifetime, inactivity time.Duration) Option {
	return func(l *Layout) { l.lifetime, l.inactivity = lifetime, inactivity }
}

func WithSize(width, height int) Option {
	return func(l *Layout) { l.width, l.height = float64(width), float64(height) }
}

// Layout owns the placed letters and the typing cursor. Like the draw
// engine it runs on the UI thread only.
type Layout struct {
	surface Surface
	sched   frame.Scheduler
	clock   state.Clock
	rng     *rand.Rand
	ink     gg.RGBA
	log     *zap.Logger

	lifetime   time.Duration
	inactivity time.Duration

	width, height float64
	x, y          float64
	lastTyped     time.Time

	active  bool
	letters []Letter
	pending frame.ID
}

func New(sf Surface, sched frame.Scheduler, opts ...Option) *Layout {
	l := &Layout{
		surface:    sf,
		sched:      sched,
		clock:      state.SystemClock{},
		rng:        rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		ink:        gg.RGB(245.0/255, 240.0/255, 230.0/255),
		log:        zap.NewNop(),
		lifetime:   DefaultLifetime,
		inactivity: DefaultInactivityReset,
		width:      1,
		height:     1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Init sizes the surface and puts the cursor near the center.
func (l *Layout) Init() {
	if err := l.surface.Resize(int(l.width), int(l.height)); err != nil {
		l.log.Warn("resize letters surface", zap.Error(err))
	}
	l.resetToCenter()
	l.lastTyped = l.clock.Now()
}

// Resize changes the field size. After a long pause the cursor also moves
// back to the center of the new field.
func (l *Layout) Resize(width, height int) {
	l.width, l.height = float64(max(width, 1)), float64(max(height, 1))
	if err := l.surface.Resize(int(l.width), int(l.height)); err != nil {
		l.log.Warn("resize letters surface", zap.Error(err))
	}
	l.checkInactivity()
}

func (l *Layout) Activate() {
	l.active = true
	l.schedule()
}

// Deactivate stops accepting keys. Letters already on screen finish fading.
func (l *Layout) Deactivate() {
	l.active = false
}

func (l *Layout) SetInk(c gg.RGBA) {
	l.ink = c
}

// HandleKey reacts to one keystroke and reports whether it was consumed.
func (l *Layout) HandleKey(k Key) bool {
	if !l.active || k.Ctrl || k.Alt || k.Super {
		return false
	}
	switch k.Name {
	case "Escape":
		return false
	}

	l.checkInactivity()
	now := l.clock.Now()

	switch {
	case k.Name == "Space" || (k.Name == "" && k.Rune == ' '):
		l.x += 12
		l.lastTyped = now
		return true
	case k.Name == "Return" || k.Name == "Enter":
		l.x = l.width*0.25 + l.rng.Float64()*50
		l.y += 40 + l.rng.Float64()*15
		l.lastTyped = now
		return true
	case k.Name != "" || k.Rune == 0:
		return false
	}

	l.place(k.Rune)
	return true
}

func (l *Layout) place(r rune) {
	l.checkInactivity()

	l.x += 18 + l.rng.Float64()*8
	l.y += (l.rng.Float64() - 0.5) * 8

	if l.x > l.width-edge {
		l.x = l.width*0.2 + l.rng.Float64()*50
		l.y += 35 + l.rng.Float64()*15
	}
	if l.y > l.height-edge {
		l.x = l.width*0.3 + l.rng.Float64()*100
		l.y = l.height*0.2 + l.rng.Float64()*50
	}

	l.x = clamp(l.x, margin, l.width-margin)
	l.y = clamp(l.y, margin, l.height-margin)

	now := l.clock.Now()
	l.letters = append(l.letters, Letter{
		Char:  r,
		X:     l.x,
		Y:     l.y,
		Drift: (l.rng.Float64() - 0.5) * 30,
		Born:  now,
	})
	l.lastTyped = now
	l.schedule()
}

func (l *Layout) resetToCenter() {
	l.x = l.width/2 - 50 + (l.rng.Float64()-0.5)*100
	l.y = l.height/2 - 20 + (l.rng.Float64()-0.5)*60
}

func (l *Layout) checkInactivity() {
	if l.clock.Now().Sub(l.lastTyped) > l.inactivity {
		l.resetToCenter()
	}
}

func (l *Layout) schedule() {
	if l.pending == 0 {
		l.pending = l.sched.RequestFrame(l.Render)
	}
}

// Render drops expired letters and paints the rest. The loop keeps going
// while the layer is active or letters remain on screen.
func (l *Layout) Render() {
	l.pending = 0
	now := l.clock.Now()

	kept := l.letters[:0]
	for _, lt := range l.letters {
		if now.Sub(lt.Born) < l.lifetime {
			kept = append(kept, lt)
		}
	}
	clear(l.letters[len(kept):])
	if dropped := len(l.letters) - len(kept); dropped > 0 {
		l.log.Debug("letters expired", zap.Int("count", dropped))
	}
	l.letters = kept

	l.surface.Clear()
	for _, lt := range l.letters {
		progress := float64(now.Sub(lt.Born)) / float64(l.lifetime)
		l.surface.SetRGBA(l.ink.R, l.ink.G, l.ink.B, peakOpacity*(1-progress))
		l.surface.DrawString(string(lt.Char), lt.X+lt.Drift*progress, lt.Y)
	}

	if l.active || len(l.letters) > 0 {
		l.schedule()
	}
}

func (l *Layout) Active() bool { return l.active }

// Pending reports whether a frame request is outstanding.
func (l *Layout) Pending() bool { return l.pending != 0 }

// Letters returns a copy of the letters on screen, oldest first.
func (l *Layout) Letters() []Letter {
	return append([]Letter(nil), l.letters...)
}

// Cursor returns where the previous letter was placed.
func (l *Layout) Cursor() (x, y float64) {
	return l.x, l.y
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
