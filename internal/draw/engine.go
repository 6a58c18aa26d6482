// Package draw implements the ambient stroke engine: pointer input becomes
// strokes that fade out with age and are culled once invisible.
package draw

import (
	"github.com/gogpu/gg"
	"go.uber.org/zap"

	"AmbientBoard/internal/frame"
	"AmbientBoard/internal/state"
)

// DefaultInk is the off-white every stroke is drawn with.
var DefaultInk = gg.RGB(245.0/255, 240.0/255, 230.0/255)

// Option configures an Engine.
type Option func(*Engine)

func WithClock(c state.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithPolicy(p FadePolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithInk sets the stroke color. Its alpha is ignored; opacity always comes
// from the fade policy.
func WithInk(c gg.RGBA) Option {
	return func(e *Engine) { e.ink = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithSize sets the surface size applied by Init.
func WithSize(width, height int) Option {
	return func(e *Engine) { e.width, e.height = width, height }
}

// Engine owns the committed strokes and the stroke being drawn, and runs a
// render loop on a frame.Scheduler while active. It is not safe for
// concurrent use; every method must be called from the UI thread.
type Engine struct {
	surface Surface
	sched   frame.Scheduler
	clock   state.Clock
	policy  FadePolicy
	ink     gg.RGBA
	log     *zap.Logger

	width, height int

	active  bool
	drawing bool
	current *state.Stroke
	strokes []*state.Stroke
	pending frame.ID
}

func New(sf Surface, sched frame.Scheduler, opts ...Option) *Engine {
	e := &Engine{
		surface: sf,
		sched:   sched,
		clock:   state.SystemClock{},
		policy:  NewPointFade(),
		ink:     DefaultInk,
		log:     zap.NewNop(),
		width:   1,
		height:  1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init sizes the surface. It renders nothing.
func (e *Engine) Init() {
	e.Resize(e.width, e.height)
	e.log.Debug("draw engine ready",
		zap.String("policy", e.policy.Name()),
		zap.Int("width", e.width),
		zap.Int("height", e.height),
	)
}

// Resize changes the surface size. Non-positive sizes are clamped to 1.
func (e *Engine) Resize(width, height int) {
	e.width, e.height = max(width, 1), max(height, 1)
	if err := e.surface.Resize(e.width, e.height); err != nil {
		e.log.Warn("resize surface", zap.Error(err))
	}
}

// Activate starts accepting input and schedules the render loop unless a
// frame is already outstanding.
func (e *Engine) Activate() {
	e.active = true
	if e.pending == 0 {
		e.pending = e.sched.RequestFrame(e.Render)
	}
	e.log.Debug("draw activated", zap.Int("strokes", len(e.strokes)))
}

// Deactivate stops input and cancels the outstanding frame. Strokes are
// kept and keep aging by wall-clock time.
func (e *Engine) Deactivate() {
	e.active = false
	if e.pending != 0 {
		e.sched.CancelFrame(e.pending)
		e.pending = 0
	}
	e.log.Debug("draw deactivated", zap.Int("strokes", len(e.strokes)))
}

// SetPolicy swaps the fade policy. Existing strokes are judged by the new
// policy from the next frame on.
func (e *Engine) SetPolicy(p FadePolicy) {
	e.policy = p
}

func (e *Engine) SetInk(c gg.RGBA) {
	e.ink = c
}

func (e *Engine) Policy() FadePolicy { return e.policy }

// StartStroke begins a new current stroke at the event's primary contact.
func (e *Engine) StartStroke(ev *PointerEvent) {
	if !e.active {
		return
	}
	ev.suppress()

	e.drawing = true
	e.current = state.NewStroke(ev.point(e.clock.Now()))
}

// ContinueStroke appends the event's primary contact to the current stroke.
func (e *Engine) ContinueStroke(ev *PointerEvent) {
	if !e.active || !e.drawing || e.current == nil {
		return
	}
	ev.suppress()

	e.current.Append(ev.point(e.clock.Now()))
}

// EndStroke commits the current stroke if it has at least two points and
// drops it otherwise. ev may be nil.
func (e *Engine) EndStroke(ev *PointerEvent) {
	if !e.drawing || e.current == nil {
		return
	}
	ev.suppress()

	if e.current.Len() > 1 {
		e.current.CommittedAt = e.clock.Now()
		e.strokes = append(e.strokes, e.current)
		e.log.Debug("stroke committed",
			zap.String("id", e.current.ID),
			zap.Int("points", e.current.Len()),
		)
	} else {
		e.log.Debug("stroke discarded", zap.String("id", e.current.ID))
	}

	e.current = nil
	e.drawing = false
}

// Render draws one frame and schedules the next. It stops the loop when
// the engine is inactive.
func (e *Engine) Render() {
	if !e.active {
		e.pending = 0
		return
	}

	now := e.clock.Now()
	e.surface.Clear()

	kept := e.strokes[:0]
	for _, s := range e.strokes {
		if e.policy.Expired(s, now) {
			e.log.Debug("stroke culled", zap.String("id", s.ID))
			continue
		}
		e.policy.Draw(e.surface, s, now, e.ink)
		kept = append(kept, s)
	}
	clear(e.strokes[len(kept):])
	e.strokes = kept

	if e.current != nil && e.current.Len() > 1 {
		e.policy.DrawLive(e.surface, e.current, e.ink)
	}

	e.pending = e.sched.RequestFrame(e.Render)
}

func (e *Engine) Active() bool { return e.active }
func (e *Engine) Drawing() bool { return e.drawing }

// Pending reports whether a frame request is outstanding.
func (e *Engine) Pending() bool { return e.pending != 0 }

// Strokes returns copies of the committed strokes, oldest first.
func (e *Engine) Strokes() []state.Stroke {
	out := make([]state.Stroke, len(e.strokes))
	for i, s := range e.strokes {
		out[i] = s.Clone()
	}
	return out
}

// Current returns a copy of the stroke being drawn.
func (e *Engine) Current() (state.Stroke, bool) {
	if e.current == nil {
		return state.Stroke{}, false
	}
	return e.current.Clone(), true
}

// Size returns the surface size last applied.
func (e *Engine) Size() (int, int) {
	return e.width, e.height
}
