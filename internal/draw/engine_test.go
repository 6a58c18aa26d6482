package draw

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AmbientBoard/internal/frame"
	"AmbientBoard/internal/state"
)

type rig struct {
	e     *Engine
	sf    *recorder
	clk   *state.ManualClock
	sched *frame.Manual
	t0    time.Time
}

func newRig(opts ...Option) *rig {
	t0 := time.Unix(1_700_000_000, 0)
	r := &rig{
		sf:    &recorder{},
		clk:   state.NewManualClock(t0),
		sched: frame.NewManual(),
		t0:    t0,
	}
	opts = append([]Option{WithClock(r.clk)}, opts...)
	r.e = New(r.sf, r.sched, opts...)
	r.e.Init()
	return r
}

func (r *rig) at(ms int) {
	r.clk.Set(r.t0.Add(time.Duration(ms) * time.Millisecond))
}

func (r *rig) draw(pts ...[2]float64) {
	r.e.StartStroke(&PointerEvent{X: pts[0][0], Y: pts[0][1]})
	for _, p := range pts[1:] {
		r.e.ContinueStroke(&PointerEvent{X: p[0], Y: p[1]})
	}
	r.e.EndStroke(nil)
}

func TestInputIgnoredWhileInactive(t *testing.T) {
	r := newRig()
	suppressed := 0
	ev := &PointerEvent{X: 1, Y: 1, Suppress: func() { suppressed++ }}

	r.e.StartStroke(ev)
	r.e.ContinueStroke(ev)
	r.e.EndStroke(ev)

	assert.False(t, r.e.Drawing())
	assert.Empty(t, r.e.Strokes())
	assert.Zero(t, suppressed)
}

func TestStrokeEventsSuppressDefault(t *testing.T) {
	r := newRig()
	r.e.Activate()
	suppressed := 0
	ev := &PointerEvent{X: 1, Y: 1, Suppress: func() { suppressed++ }}

	r.e.StartStroke(ev)
	r.e.ContinueStroke(ev)
	r.e.EndStroke(ev)

	assert.Equal(t, 3, suppressed)
}

func TestCommittedPointCount(t *testing.T) {
	for continues := 1; continues <= 6; continues++ {
		r := newRig()
		r.e.Activate()

		r.e.StartStroke(&PointerEvent{X: 0, Y: 0})
		assert.True(t, r.e.Drawing())
		for i := 1; i <= continues; i++ {
			r.e.ContinueStroke(&PointerEvent{X: float64(i), Y: 0})
		}
		cur, ok := r.e.Current()
		require.True(t, ok)
		assert.Equal(t, 1+continues, cur.Len())

		r.e.EndStroke(nil)

		strokes := r.e.Strokes()
		require.Len(t, strokes, 1)
		assert.Equal(t, 1+continues, strokes[0].Len())
		assert.False(t, r.e.Drawing())
		_, ok = r.e.Current()
		assert.False(t, ok)
	}
}

func TestTapWithoutMoveIsDiscarded(t *testing.T) {
	r := newRig()
	r.e.Activate()
	r.draw([2]float64{1, 1})
	r.draw([2]float64{1, 1}, [2]float64{2, 2})
	r.draw([2]float64{5, 5})

	assert.Len(t, r.e.Strokes(), 1)
	assert.False(t, r.e.Drawing())
}

func TestEndStrokeWithoutStartIsNoop(t *testing.T) {
	r := newRig()
	r.e.Activate()
	suppressed := false

	r.e.EndStroke(nil)
	r.e.EndStroke(&PointerEvent{Suppress: func() { suppressed = true }})
	r.e.ContinueStroke(&PointerEvent{Suppress: func() { suppressed = true }})

	assert.False(t, suppressed)
	assert.Empty(t, r.e.Strokes())
}

func TestEndStrokeAfterDeactivateStillCommits(t *testing.T) {
	r := newRig()
	r.e.Activate()
	r.e.StartStroke(&PointerEvent{X: 0, Y: 0})
	r.e.ContinueStroke(&PointerEvent{X: 3, Y: 0})
	r.e.Deactivate()

	r.e.ContinueStroke(&PointerEvent{X: 9, Y: 9})
	r.e.EndStroke(nil)

	strokes := r.e.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, 2, strokes[0].Len())
}

func TestPrimaryContactExtraction(t *testing.T) {
	r := newRig()
	r.e.Activate()
	r.at(40)

	r.e.StartStroke(&PointerEvent{
		X: 100, Y: 100, Pressure: 0.9,
		Touches: []Touch{{X: 7, Y: 8}, {X: 50, Y: 50, Force: 1}},
	})
	r.e.ContinueStroke(&PointerEvent{X: 3, Y: 4, Pressure: 0.25})
	r.e.ContinueStroke(&PointerEvent{X: 5, Y: 6})

	cur, ok := r.e.Current()
	require.True(t, ok)
	assert.Equal(t, state.Point{X: 7, Y: 8, Pressure: DefaultPressure, Time: r.t0.Add(40 * time.Millisecond)}, cur.Points[0])
	assert.Equal(t, 0.25, cur.Points[1].Pressure)
	assert.Equal(t, DefaultPressure, cur.Points[2].Pressure)
}

func TestCommitOrderPreservedAcrossCulls(t *testing.T) {
	r := newRig()
	r.e.Activate()

	var ids []string
	for i := 0; i < 4; i++ {
		r.at(i * 1000)
		r.draw([2]float64{0, float64(i)}, [2]float64{10, float64(i)})
		s := r.e.Strokes()
		ids = append(ids, s[len(s)-1].ID)
	}

	r.at(7500) // strokes 0 and 1 are past 6 s
	r.sched.Step()

	got := r.e.Strokes()
	require.Len(t, got, 2)
	assert.Equal(t, ids[2], got[0].ID)
	assert.Equal(t, ids[3], got[1].ID)
}

func TestPointFadeCullBoundary(t *testing.T) {
	r := newRig()
	r.e.Activate()

	r.at(0)
	r.e.StartStroke(&PointerEvent{X: 0, Y: 0})
	r.at(100)
	r.e.ContinueStroke(&PointerEvent{X: 10, Y: 0})
	r.e.EndStroke(nil)

	r.at(100 + 5999)
	r.sched.Step()
	assert.Len(t, r.e.Strokes(), 1)

	r.at(100 + 6000)
	r.sched.Step()
	assert.Empty(t, r.e.Strokes())
}

func TestScenarioFirstSegmentFading(t *testing.T) {
	r := newRig()
	r.e.Activate()

	r.at(0)
	r.e.StartStroke(&PointerEvent{X: 10, Y: 10})
	r.at(16)
	r.e.ContinueStroke(&PointerEvent{X: 50, Y: 10})
	r.at(32)
	r.e.EndStroke(nil)

	strokes := r.e.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, 2, strokes[0].Len())

	r.at(2100)
	r.sf.reset()
	r.sched.Step()

	require.Equal(t, "clear", r.sf.ops[0].kind)
	fills := r.sf.of("fill")
	lines := r.sf.of("stroke")
	require.Len(t, fills, 2)
	require.Len(t, lines, 1)

	assert.InDelta(t, 0.78, fills[0].alpha, 1e-9)
	assert.Equal(t, [2]float64{10, 10}, fills[0].pts[0])
	assert.InDelta(t, 2.5, fills[0].pts[1][0], 1e-9)

	assert.InDelta(t, 0.78, lines[0].alpha, 1e-9)
	assert.Equal(t, []string{"M", "L"}, lines[0].path)
	assert.Equal(t, 5.0, lines[0].width)
	assert.Equal(t, gg.LineCapRound, lines[0].cap)
	assert.Equal(t, gg.LineJoinRound, lines[0].join)

	// last point is 2084 ms old
	assert.InDelta(t, 0.8*(1-84.0/4000), fills[1].alpha, 1e-9)
	assert.Equal(t, [2]float64{50, 10}, fills[1].pts[0])
}

func TestFadedSegmentsSkippedButStrokeKept(t *testing.T) {
	r := newRig()
	r.e.Activate()

	r.at(0)
	r.e.StartStroke(&PointerEvent{X: 0, Y: 0})
	r.at(5000)
	r.e.ContinueStroke(&PointerEvent{X: 10, Y: 0})
	r.e.EndStroke(nil)

	r.at(6500)
	r.sf.reset()
	r.sched.Step()

	assert.Len(t, r.e.Strokes(), 1)
	assert.Zero(t, r.sf.count("stroke"))
	require.Equal(t, 1, r.sf.count("fill"))
	assert.Equal(t, PeakOpacity, r.sf.of("fill")[0].alpha)
}

func TestStrokeFadeCullBoundary(t *testing.T) {
	r := newRig(WithPolicy(NewStrokeFade()))
	r.e.Activate()

	r.at(0)
	r.e.StartStroke(&PointerEvent{X: 0, Y: 0})
	r.e.ContinueStroke(&PointerEvent{X: 10, Y: 0})
	r.at(500)
	r.e.EndStroke(nil)

	r.at(500 + 6000)
	r.sf.reset()
	r.sched.Step()
	require.Equal(t, 1, r.sf.count("stroke"))
	assert.InDelta(t, 0.4, r.sf.of("stroke")[0].alpha, 1e-9)

	r.at(500 + 11999)
	r.sched.Step()
	assert.Len(t, r.e.Strokes(), 1)

	r.at(500 + 12000)
	r.sf.reset()
	r.sched.Step()
	assert.Empty(t, r.e.Strokes())
	assert.Zero(t, r.sf.count("stroke"))
}

func TestStrokeFadeGeometry(t *testing.T) {
	r := newRig(WithPolicy(NewStrokeFade()))
	r.e.Activate()
	r.draw([2]float64{0, 0}, [2]float64{10, 0}, [2]float64{20, 10}, [2]float64{30, 10})

	r.sf.reset()
	r.sched.Step()

	assert.Zero(t, r.sf.count("fill"))
	lines := r.sf.of("stroke")
	require.Len(t, lines, 1)
	l := lines[0]
	assert.Equal(t, []string{"M", "Q", "Q", "L"}, l.path)
	assert.Equal(t, [][2]float64{
		{0, 0},
		{10, 0}, {15, 5},
		{20, 10}, {25, 10},
		{30, 10},
	}, l.pts)
	assert.Equal(t, 3.0, l.width)
	assert.Equal(t, gg.LineCapRound, l.cap)
	assert.Equal(t, gg.LineJoinRound, l.join)
	assert.InDelta(t, PeakOpacity, l.alpha, 1e-9)
}

func TestCurrentStrokeDrawnOnTopAtPeak(t *testing.T) {
	r := newRig()
	r.e.Activate()

	r.draw([2]float64{0, 0}, [2]float64{5, 5})
	r.at(0)
	r.e.StartStroke(&PointerEvent{X: 1, Y: 1})
	r.e.ContinueStroke(&PointerEvent{X: 2, Y: 2})

	// both strokes are far past any fade window
	r.at(60_000)
	r.sf.reset()
	r.sched.Step()

	assert.Empty(t, r.e.Strokes())
	cur, ok := r.e.Current()
	require.True(t, ok)
	assert.Equal(t, 2, cur.Len())

	require.NotEmpty(t, r.sf.ops)
	for _, o := range r.sf.ops[1:] {
		assert.Equal(t, PeakOpacity, o.alpha)
	}
	last := r.sf.ops[len(r.sf.ops)-1]
	assert.Equal(t, [2]float64{2, 2}, last.pts[0])
}

func TestSinglePointCurrentStrokeNotDrawn(t *testing.T) {
	r := newRig()
	r.e.Activate()
	r.e.StartStroke(&PointerEvent{X: 1, Y: 1})

	r.sf.reset()
	r.sched.Step()

	assert.Equal(t, []op{{kind: "clear"}}, r.sf.ops)
}

func TestActivateIsIdempotent(t *testing.T) {
	r := newRig()
	r.e.Activate()
	r.e.Activate()

	assert.Equal(t, 1, r.sched.Pending())
	assert.True(t, r.e.Pending())

	r.sched.Step()
	r.e.Activate()
	assert.Equal(t, 1, r.sched.Pending())
}

func TestLoopReschedulesWhenEmpty(t *testing.T) {
	r := newRig()
	r.e.Activate()

	for i := 0; i < 5; i++ {
		require.Equal(t, 1, r.sched.Step())
		assert.Equal(t, 1, r.sched.Pending())
	}
	assert.Equal(t, 5, r.sf.count("clear"))
}

func TestDeactivateStopsRendering(t *testing.T) {
	r := newRig()
	r.e.Activate()
	r.sched.Step()
	r.e.Deactivate()
	r.e.Deactivate()

	assert.False(t, r.e.Pending())
	assert.Zero(t, r.sched.Pending())

	r.sf.reset()
	assert.Zero(t, r.sched.Step())
	assert.Empty(t, r.sf.ops)
}

func TestStaleRenderAfterDeactivate(t *testing.T) {
	r := newRig()
	r.e.Activate()
	r.e.Deactivate()
	r.sf.reset()

	r.e.Render()

	assert.Empty(t, r.sf.ops)
	assert.False(t, r.e.Pending())
	assert.Zero(t, r.sched.Pending())
}

func TestDeactivatedTimeCountsTowardAge(t *testing.T) {
	r := newRig()
	r.e.Activate()

	r.at(0)
	r.e.StartStroke(&PointerEvent{X: 0, Y: 0})
	r.at(16)
	r.e.ContinueStroke(&PointerEvent{X: 1, Y: 1})
	r.e.EndStroke(nil)
	r.e.Deactivate()

	r.at(3000)
	r.e.Activate()
	assert.Len(t, r.e.Strokes(), 1)
	r.sched.Step()
	assert.Len(t, r.e.Strokes(), 1)

	r.e.Deactivate()
	r.at(16 + 6000)
	r.e.Activate()
	r.sched.Step()
	assert.Empty(t, r.e.Strokes())
}

func TestSetPolicyRejudgesStrokes(t *testing.T) {
	r := newRig()
	r.e.Activate()
	r.at(0)
	r.draw([2]float64{0, 0}, [2]float64{1, 1})

	r.e.SetPolicy(NewStrokeFade())
	assert.Equal(t, "stroke", r.e.Policy().Name())

	r.at(8000)
	r.sched.Step()
	assert.Len(t, r.e.Strokes(), 1)

	r.e.SetPolicy(NewPointFade())
	r.sched.Step()
	assert.Empty(t, r.e.Strokes())
}

func TestInitAndResize(t *testing.T) {
	r := newRig(WithSize(640, 480))
	assert.Equal(t, 640, r.sf.w)
	assert.Equal(t, 480, r.sf.h)
	assert.Empty(t, r.sf.ops)

	r.e.Resize(0, -5)
	w, h := r.e.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)

	r.sf.resize = errors.New("boom")
	r.e.Resize(10, 10)
	w, _ = r.e.Size()
	assert.Equal(t, 10, w)
}

func TestStrokesReturnsCopies(t *testing.T) {
	r := newRig()
	r.e.Activate()
	r.draw([2]float64{0, 0}, [2]float64{1, 1})

	s := r.e.Strokes()
	s[0].Points[0].X = 42

	assert.Equal(t, 0.0, r.e.Strokes()[0].Points[0].X)
}
