// Package surface provides the software drawing surfaces the board layers
// paint on.
package surface

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// Canvas is a resizable gg context. It satisfies draw.Surface and
// letters.Surface.
type Canvas struct {
	*gg.Context
	frames uint64
}

// New returns a transparent canvas. Sizes below 1 are clamped.
func New(width, height int) *Canvas {
	return &Canvas{Context: gg.NewContext(max(width, 1), max(height, 1))}
}

// Clear wipes the canvas to transparent and starts a new frame.
func (c *Canvas) Clear() {
	c.Context.Clear()
	c.frames++
}

// Resize reallocates the pixel buffer when the size changes.
func (c *Canvas) Resize(width, height int) error {
	if err := c.Context.Resize(max(width, 1), max(height, 1)); err != nil {
		return fmt.Errorf("resize canvas: %w", err)
	}
	return nil
}

// Frames counts Clear calls, one per rendered frame.
func (c *Canvas) Frames() uint64 {
	return c.frames
}

// Frame returns a copy of the current pixels.
func (c *Canvas) Frame() image.Image {
	return c.Context.Image()
}

// Face loads the bundled Go Regular font at size points.
func Face(size float64) (text.Face, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load go regular: %w", err)
	}
	return src.Face(size), nil
}
