package draw

import (
	"time"

	"AmbientBoard/internal/state"
)

// DefaultPressure is used when the input source reports no pressure.
const DefaultPressure = 0.5

// Touch is one contact of a multi-touch report.
type Touch struct {
	X, Y  float64
	Force float64
}

// PointerEvent is a platform pointer or touch event reduced to what the
// engine needs. Pressure and Force are zero when the source reports none.
// Suppress, when set, cancels the platform's default action for the event.
type PointerEvent struct {
	X, Y     float64
	Pressure float64
	Touches  []Touch
	Suppress func()
}

func (ev *PointerEvent) suppress() {
	if ev != nil && ev.Suppress != nil {
		ev.Suppress()
	}
}

// point extracts the primary contact: the first touch when present, the
// pointer otherwise.
func (ev *PointerEvent) point(now time.Time) state.Point {
	x, y, pressure := ev.X, ev.Y, ev.Pressure
	if len(ev.Touches) > 0 {
		t := ev.Touches[0]
		x, y, pressure = t.X, t.Y, t.Force
	}
	if pressure == 0 {
		pressure = DefaultPressure
	}
	return state.Point{X: x, Y: y, Pressure: pressure, Time: now}
}
