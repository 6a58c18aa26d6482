package ui

import (
	"time"

	"fyne.io/fyne/v2"

	"AmbientBoard/internal/frame"
)

// ticker is the part of *fyne.Animation the scheduler needs.
type ticker interface {
	Start()
	Stop()
}

// FrameScheduler runs frame requests on fyne's animation tick, which fires
// on the main goroutine once per display refresh. The animation only runs
// while requests are pending.
type FrameScheduler struct {
	queue   frame.Queue
	ticker  ticker
	running bool

	// OnFlush is called after a tick that ran at least one request.
	OnFlush func()
}

func NewFrameScheduler() *FrameScheduler {
	s := &FrameScheduler{}
	anim := fyne.NewAnimation(time.Second, func(float32) { s.tick() })
	anim.RepeatCount = fyne.AnimationRepeatForever
	anim.Curve = fyne.AnimationLinear
	s.ticker = anim
	return s
}

func (s *FrameScheduler) RequestFrame(fn func()) frame.ID {
	id := s.queue.Push(fn)
	if !s.running {
		s.running = true
		s.ticker.Start()
	}
	return id
}

func (s *FrameScheduler) CancelFrame(id frame.ID) {
	s.queue.Remove(id)
}

func (s *FrameScheduler) tick() {
	if s.queue.Run() > 0 && s.OnFlush != nil {
		s.OnFlush()
	}
	if s.queue.Len() == 0 && s.running {
		s.running = false
		s.ticker.Stop()
	}
}
