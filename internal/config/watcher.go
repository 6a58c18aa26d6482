package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads the configuration file when it changes on disk and hands
// every valid new version to the registered callbacks. Callbacks run on the
// watcher's goroutine and never after Stop returns.
type Watcher struct {
	path     string
	debounce time.Duration
	log      *zap.Logger

	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)

	fs       *fsnotify.Watcher
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

type WatchOption func(*Watcher)

// WithDebounce sets how long the file must stay quiet before a reload.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) { w.debounce = d }
}

// NewWatcher starts watching path. initial is the configuration currently in
// use; reloads that produce an identical configuration are not reported.
func NewWatcher(path string, initial *Config, log *zap.Logger, opts ...WatchOption) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		log:      log,
		config:   initial,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	// Editors often replace the file instead of writing it, so watch the
	// directory and filter by name.
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	w.fs = fs

	go w.loop()
	log.Info("configuration hot reload enabled", zap.String("file", abs))
	return w, nil
}

// OnChange registers a callback for reloaded configurations.
func (w *Watcher) OnChange(cb func(*Config)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, cb)
	w.mu.Unlock()
}

// Config returns the most recent valid configuration.
func (w *Watcher) Config() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.done
	})
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer w.fs.Close()

	// Reloads run here, so none can be in flight once Stop returns.
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.log.Debug("configuration file changed", zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error("file watcher error", zap.Error(err))

		case <-w.stopCh:
			w.log.Info("stopping configuration watcher")
			return
		}
	}
}

func (w *Watcher) reload() {
	next, err := Load(w.path)
	if err != nil {
		w.log.Error("invalid configuration after reload, keeping previous", zap.Error(err))
		return
	}

	w.mu.Lock()
	prev := w.config
	if prev != nil && *prev == *next {
		w.mu.Unlock()
		w.log.Debug("configuration unchanged after reload")
		return
	}
	w.config = next
	callbacks := slices.Clone(w.callbacks)
	w.mu.Unlock()

	w.log.Info("configuration reloaded",
		zap.String("policy", next.Draw.Policy),
		zap.String("color", next.Draw.Color),
		zap.Int("callbacks", len(callbacks)),
	)
	for _, cb := range callbacks {
		cb(next)
	}
}
