package draw

import (
	"github.com/gogpu/gg"
)

// op is one recorded call against a Surface. Path-building calls are
// folded into the Fill/Stroke op that consumes them.
type op struct {
	kind  string // "clear", "fill", "stroke"
	alpha float64
	width float64
	cap   gg.LineCap
	join  gg.LineJoin
	path  []string // "M", "L", "Q", "C"
	pts   [][2]float64
}

type recorder struct {
	ops    []op
	w, h   int
	alpha  float64
	width  float64
	cap    gg.LineCap
	join   gg.LineJoin
	path   []string
	pts    [][2]float64
	resize error
}

func (r *recorder) Clear() {
	r.ops = append(r.ops, op{kind: "clear"})
	r.path, r.pts = nil, nil
}

func (r *recorder) Resize(w, h int) error {
	r.w, r.h = w, h
	return r.resize
}

func (r *recorder) SetRGBA(_, _, _, a float64) { r.alpha = a }
func (r *recorder) SetLineWidth(w float64) { r.width = w }
func (r *recorder) SetLineCap(c gg.LineCap) { r.cap = c }
func (r *recorder) SetLineJoin(j gg.LineJoin) { r.join = j }

func (r *recorder) MoveTo(x, y float64) { r.add("M", x, y) }
func (r *recorder) LineTo(x, y float64) { r.add("L", x, y) }

func (r *recorder) QuadraticTo(cx, cy, x, y float64) {
	r.path = append(r.path, "Q")
	r.pts = append(r.pts, [2]float64{cx, cy}, [2]float64{x, y})
}

func (r *recorder) DrawCircle(x, y, rad float64) {
	r.path = append(r.path, "C")
	r.pts = append(r.pts, [2]float64{x, y}, [2]float64{rad, rad})
}

func (r *recorder) Fill() error { r.flush("fill"); return nil }
func (r *recorder) Stroke() error { r.flush("stroke"); return nil }

func (r *recorder) add(kind string, x, y float64) {
	r.path = append(r.path, kind)
	r.pts = append(r.pts, [2]float64{x, y})
}

func (r *recorder) flush(kind string) {
	r.ops = append(r.ops, op{
		kind:  kind,
		alpha: r.alpha,
		width: r.width,
		cap:   r.cap,
		join:  r.join,
		path:  r.path,
		pts:   r.pts,
	})
	r.path, r.pts = nil, nil
}

func (r *recorder) reset() { r.ops = nil }

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) of(kind string) []op {
	var out []op
	for _, o := range r.ops {
		if o.kind == kind {
			out = append(out, o)
		}
	}
	return out
}
