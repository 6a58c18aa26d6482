package export

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"AmbientBoard/internal/config"
	"AmbientBoard/internal/draw"
	"AmbientBoard/internal/frame"
	"AmbientBoard/internal/letters"
	"AmbientBoard/internal/scene"
	"AmbientBoard/internal/state"
)

const (
	demoText      = "ambient"
	demoKeyGap    = 120 * time.Millisecond
	demoFrame     = 16 * time.Millisecond
	demoTurns     = 180
	demoSettle    = 500 * time.Millisecond
	demoSpiralGap = 1.2
)

// RenderDemo plays a short scripted session without a window: a typed word,
// a switch to draw mode and a spiral stroke. The final frame is saved to dir.
func RenderDemo(cfg *config.Config, dir string, log *zap.Logger) (string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	clk := state.NewManualClock(time.Now())
	sched := frame.NewManual()
	sc, err := scene.New(cfg, sched, log,
		scene.WithClock(clk),
		scene.WithRand(rand.New(rand.NewPCG(1, 2))),
	)
	if err != nil {
		return "", fmt.Errorf("build scene: %w", err)
	}
	sc.Start()

	for _, r := range demoText {
		sc.Text.HandleKey(letters.Key{Rune: r})
		clk.Advance(demoKeyGap)
		sched.Step()
	}

	sc.Modes.Toggle()

	cx, cy := float64(cfg.Window.Width)/2, float64(cfg.Window.Height)/2
	sc.Draw.StartStroke(&draw.PointerEvent{X: cx, Y: cy})
	for i := 1; i <= demoTurns; i++ {
		clk.Advance(demoFrame)
		a := float64(i) * 0.1
		r := 4 + float64(i)*demoSpiralGap
		sc.Draw.ContinueStroke(&draw.PointerEvent{
			X:        cx + r*math.Cos(a),
			Y:        cy + r*math.Sin(a),
			Pressure: 0.5 + 0.5*math.Sin(a/2),
		})
		sched.Step()
	}
	sc.Draw.EndStroke(nil)

	clk.Advance(demoSettle)
	sched.Step()

	log.Info("demo rendered",
		zap.Int("strokes", len(sc.Draw.Strokes())),
		zap.Int("letters", len(sc.Text.Letters())),
	)
	return Snapshot(dir, sc, clk.Now())
}
