package draw

import (
	"math"
	"time"

	"github.com/gogpu/gg"

	"AmbientBoard/internal/state"
)

// PeakOpacity is the alpha of a stroke before it starts to fade, and of the
// stroke being drawn.
const PeakOpacity = 0.8

// FadePolicy decides how committed strokes lose opacity with age, when they
// are culled, and what geometry they are drawn with.
type FadePolicy interface {
	Name() string
	// Expired reports whether s is fully faded at now and must be removed.
	Expired(s *state.Stroke, now time.Time) bool
	// Draw paints a committed stroke with its age-derived opacity.
	Draw(sf Surface, s *state.Stroke, now time.Time, ink gg.RGBA)
	// DrawLive paints the in-progress stroke at peak opacity.
	DrawLive(sf Surface, s *state.Stroke, ink gg.RGBA)
}

// PointFade fades each segment by the age of its leading point once a
// delay has passed. Whole strokes are culled once their last point has
// faded out.
type PointFade struct {
	Delay    time.Duration
	Duration time.Duration
	Width    float64
	Peak     float64
}

// NewPointFade returns the per-point policy with a 2 s hold, a 4 s fade and
// 5 unit lines.
func NewPointFade() PointFade {
	return PointFade{
		Delay:    2000 * time.Millisecond,
		Duration: 4000 * time.Millisecond,
		Width:    5,
		Peak:     PeakOpacity,
	}
}

func (PointFade) Name() string { return "point" }

// Opacity returns the alpha of a point of the given age.
func (p PointFade) Opacity(age time.Duration) float64 {
	if age < p.Delay {
		return p.Peak
	}
	fade := float64(age-p.Delay) / float64(p.Duration)
	return math.Max(0, (1-fade)*p.Peak)
}

func (p PointFade) Expired(s *state.Stroke, now time.Time) bool {
	return now.Sub(s.Last().Time) >= p.Delay+p.Duration
}

func (p PointFade) Draw(sf Surface, s *state.Stroke, now time.Time, ink gg.RGBA) {
	p.draw(sf, s, ink, func(pt state.Point) float64 {
		return p.Opacity(now.Sub(pt.Time))
	})
}

func (p PointFade) DrawLive(sf Surface, s *state.Stroke, ink gg.RGBA) {
	p.draw(sf, s, ink, func(state.Point) float64 { return p.Peak })
}

// draw paints every segment as a straight line capped by a filled dot at
// its leading point, then a dot on the last point.
func (p PointFade) draw(sf Surface, s *state.Stroke, ink gg.RGBA, opacity func(state.Point) float64) {
	if s.Len() < 2 {
		return
	}
	roundPen(sf, p.Width)
	r := p.Width / 2

	for i := 0; i < len(s.Points)-1; i++ {
		p0, p1 := s.Points[i], s.Points[i+1]
		a := opacity(p0)
		if a <= 0 {
			continue
		}
		sf.SetRGBA(ink.R, ink.G, ink.B, a)

		sf.DrawCircle(p0.X, p0.Y, r)
		_ = sf.Fill()

		sf.MoveTo(p0.X, p0.Y)
		sf.LineTo(p1.X, p1.Y)
		_ = sf.Stroke()
	}

	last := s.Last()
	if a := opacity(last); a > 0 {
		sf.SetRGBA(ink.R, ink.G, ink.B, a)
		sf.DrawCircle(last.X, last.Y, r)
		_ = sf.Fill()
	}
}

// StrokeFade fades a whole stroke from the moment it was committed and
// draws it as a single smoothed path.
type StrokeFade struct {
	Duration time.Duration
	Width    float64
	Peak     float64
}

// NewStrokeFade returns the per-stroke policy with a 12 s fade and 3 unit
// lines.
func NewStrokeFade() StrokeFade {
	return StrokeFade{
		Duration: 12000 * time.Millisecond,
		Width:    3,
		Peak:     PeakOpacity,
	}
}

func (StrokeFade) Name() string { return "stroke" }

// Opacity returns the alpha of a stroke committed age ago.
func (p StrokeFade) Opacity(age time.Duration) float64 {
	return (1 - float64(age)/float64(p.Duration)) * p.Peak
}

func (p StrokeFade) Expired(s *state.Stroke, now time.Time) bool {
	return now.Sub(s.CommittedAt) >= p.Duration
}

func (p StrokeFade) Draw(sf Surface, s *state.Stroke, now time.Time, ink gg.RGBA) {
	p.draw(sf, s, ink, p.Opacity(now.Sub(s.CommittedAt)))
}

func (p StrokeFade) DrawLive(sf Surface, s *state.Stroke, ink gg.RGBA) {
	p.draw(sf, s, ink, p.Peak)
}

func (p StrokeFade) draw(sf Surface, s *state.Stroke, ink gg.RGBA, a float64) {
	if s.Len() < 2 || a <= 0 {
		return
	}
	roundPen(sf, p.Width)
	sf.SetRGBA(ink.R, ink.G, ink.B, a)
	Smooth(sf, s.Points)
	_ = sf.Stroke()
}

func roundPen(sf Surface, width float64) {
	sf.SetLineWidth(width)
	sf.SetLineCap(gg.LineCapRound)
	sf.SetLineJoin(gg.LineJoinRound)
}

// Smooth traces pts as one path: a quadratic curve through each interior
// point ending at the midpoint to the next point, then a straight run into
// the last point.
func Smooth(sf Surface, pts []state.Point) {
	if len(pts) == 0 {
		return
	}
	sf.MoveTo(pts[0].X, pts[0].Y)
	for i := 1; i < len(pts)-1; i++ {
		c, n := pts[i], pts[i+1]
		sf.QuadraticTo(c.X, c.Y, (c.X+n.X)/2, (c.Y+n.Y)/2)
	}
	last := pts[len(pts)-1]
	sf.LineTo(last.X, last.Y)
}
