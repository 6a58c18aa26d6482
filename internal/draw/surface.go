package draw

import "github.com/gogpu/gg"

// Surface is the immediate-mode 2D target the engine paints on. The method
// set matches *gg.Context, so a gg context (or anything embedding one) can be
// passed directly.
type Surface interface {
	Clear()
	Resize(width, height int) error

	SetRGBA(r, g, b, a float64)
	SetLineWidth(width float64)
	SetLineCap(lineCap gg.LineCap)
	SetLineJoin(join gg.LineJoin)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	DrawCircle(x, y, r float64)

	Fill() error
	Stroke() error
}
