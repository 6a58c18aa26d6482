package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"go.uber.org/zap"

	"AmbientBoard/internal/config"
	"AmbientBoard/internal/export"
	"AmbientBoard/internal/logging"
	"AmbientBoard/internal/mode"
	"AmbientBoard/internal/scene"
)

// Options are the inputs RunApp needs besides the logger.
type Options struct {
	Config *config.Config
	// Watcher delivers reloaded configurations. Nil disables hot reload.
	Watcher *config.Watcher
	// Level is adjusted when a reload changes log.level.
	Level zap.AtomicLevel
	// SnapshotDir receives Ctrl+S captures.
	SnapshotDir string
}

// host wires a scene into a window. It is split from RunApp so tests can
// drive it on the fyne test app.
type host struct {
	scene   *scene.Scene
	sched   *FrameScheduler
	board   *Board
	toolbar *Toolbar
	content fyne.CanvasObject
	log     *zap.Logger
	dir     string
}

func newHost(cfg *config.Config, sched *FrameScheduler, dir string, log *zap.Logger) (*host, error) {
	sc, err := scene.New(cfg, sched, log)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	h := &host{scene: sc, sched: sched, log: log, dir: dir}
	h.board = NewBoard(sc)
	h.toolbar = NewToolbar(sc, h.snapshot, h.board.Focus)
	h.content = container.NewBorder(h.toolbar.Object(), nil, nil, nil, h.board)

	sched.OnFlush = h.board.Refresh
	sc.Modes.OnChange = func(mode.Mode) {
		h.toolbar.Update()
		h.board.Refresh()
	}
	return h, nil
}

func (h *host) snapshot() {
	path, err := export.Snapshot(h.dir, h.scene, time.Now())
	if err != nil {
		h.log.Error("snapshot failed", zap.Error(err))
		h.toolbar.SetStatus("Snapshot failed")
		return
	}
	h.log.Info("snapshot saved", zap.String("path", path))
	h.toolbar.SetStatus("Saved " + path)
}

// apply takes a reloaded configuration. It must run on the main goroutine.
func (h *host) apply(cfg *config.Config, lvl zap.AtomicLevel) {
	h.scene.Apply(cfg)
	if err := logging.SetLevel(lvl, cfg.Log.Level); err != nil {
		h.log.Warn("ignoring log level", zap.Error(err))
	}
	h.board.Refresh()
}

// RunApp opens the board window and blocks until it is closed.
func RunApp(opts Options, log *zap.Logger) error {
	cfg := opts.Config
	myApp := app.New()
	myWindow := myApp.NewWindow(cfg.Window.Title)
	myWindow.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	myWindow.SetFullScreen(cfg.Window.Fullscreen)

	h, err := newHost(cfg, NewFrameScheduler(), opts.SnapshotDir, log)
	if err != nil {
		return err
	}
	bindKeys(myWindow.Canvas(), h.board, h.snapshot)

	if opts.Watcher != nil {
		opts.Watcher.OnChange(func(c *config.Config) {
			fyne.Do(func() { h.apply(c, opts.Level) })
		})
	}

	myWindow.SetContent(h.content)
	myWindow.Canvas().Focus(h.board)
	h.scene.Start()
	log.Info("board started",
		zap.String("policy", cfg.Draw.Policy),
		zap.Bool("fullscreen", cfg.Window.Fullscreen),
	)
	myWindow.ShowAndRun()
	return nil
}
