// Package mode switches the board between typing and drawing.
package mode

import (
	"go.uber.org/zap"
)

// Component is one interactive layer of the board.
type Component interface {
	Init()
	Activate()
	Deactivate()
}

type Mode int

const (
	Text Mode = iota
	Draw
)

func (m Mode) String() string {
	if m == Draw {
		return "draw"
	}
	return "text"
}

// Controller keeps at most one component active at a time.
type Controller struct {
	text, draw Component
	current    Mode
	started    bool
	log        *zap.Logger

	// OnChange is called after every switch with the new mode.
	OnChange func(Mode)
}

func New(text, draw Component, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{text: text, draw: draw, log: log}
}

// Start initializes both components once and enters text mode.
func (c *Controller) Start() {
	if c.started {
		return
	}
	c.started = true
	c.text.Init()
	c.draw.Init()
	c.current = Text
	c.text.Activate()
	c.log.Debug("mode started", zap.Stringer("mode", c.current))
	c.notify()
}

// Toggle deactivates the current component before activating the other.
func (c *Controller) Toggle() {
	if !c.started {
		c.Start()
	}
	from, to := c.component(c.current), c.other()
	from.Deactivate()
	if c.current == Text {
		c.current = Draw
	} else {
		c.current = Text
	}
	to.Activate()
	c.log.Debug("mode toggled", zap.Stringer("mode", c.current))
	c.notify()
}

func (c *Controller) Mode() Mode { return c.current }

// Label is the caption of the control that performs the next Toggle.
func (c *Controller) Label() string {
	if c.current == Draw {
		return "Switch to text mode"
	}
	return "Switch to draw mode"
}

func (c *Controller) component(m Mode) Component {
	if m == Draw {
		return c.draw
	}
	return c.text
}

func (c *Controller) other() Component {
	if c.current == Draw {
		return c.text
	}
	return c.draw
}

func (c *Controller) notify() {
	if c.OnChange != nil {
		c.OnChange(c.current)
	}
}
