package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"AmbientBoard/internal/draw"
	"AmbientBoard/internal/letters"
	"AmbientBoard/internal/scene"
)

// Board shows the scene and feeds it pointer and keyboard input. The letters
// raster sits below the ink raster; the ink is only shown in draw mode.
type Board struct {
	widget.BaseWidget
	scene *scene.Scene

	ctrl, alt, super int // held modifier keys, left and right counted apart
}

var _ fyne.Widget = (*Board)(nil)
var _ fyne.Draggable = (*Board)(nil)
var _ desktop.Mouseable = (*Board)(nil)
var _ desktop.Hoverable = (*Board)(nil)
var _ mobile.Touchable = (*Board)(nil)
var _ fyne.Tappable = (*Board)(nil)
var _ fyne.Focusable = (*Board)(nil)
var _ fyne.Tabbable = (*Board)(nil)
var _ desktop.Keyable = (*Board)(nil)

func NewBoard(sc *scene.Scene) *Board {
	b := &Board{scene: sc}
	b.ExtendBaseWidget(b)
	return b
}

func pointer(pos fyne.Position) *draw.PointerEvent {
	return &draw.PointerEvent{X: float64(pos.X), Y: float64(pos.Y)}
}

func touch(pos fyne.Position) *draw.PointerEvent {
	return &draw.PointerEvent{
		X:       float64(pos.X),
		Y:       float64(pos.Y),
		Touches: []draw.Touch{{X: float64(pos.X), Y: float64(pos.Y)}},
	}
}

// Focus takes keyboard focus for the board so keys reach the scene instead
// of driving focus traversal between widgets.
func (b *Board) Focus() {
	if a := fyne.CurrentApp(); a != nil {
		if c := a.Driver().CanvasForObject(b); c != nil && c.Focused() != b {
			c.Focus(b)
		}
	}
}

func (b *Board) Tapped(*fyne.PointEvent) {
	b.Focus()
}

func (b *Board) MouseDown(e *desktop.MouseEvent) {
	b.Focus()
	if e.Button == desktop.MouseButtonPrimary {
		b.scene.Draw.StartStroke(pointer(e.Position))
	}
}

func (b *Board) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.scene.Draw.EndStroke(pointer(e.Position))
	}
}

func (b *Board) MouseIn(*desktop.MouseEvent) {}

func (b *Board) MouseMoved(e *desktop.MouseEvent) {
	b.scene.Draw.ContinueStroke(pointer(e.Position))
}

// MouseOut ends the stroke like a release would.
func (b *Board) MouseOut() {
	b.scene.Draw.EndStroke(nil)
}

func (b *Board) Dragged(e *fyne.DragEvent) {
	b.scene.Draw.ContinueStroke(pointer(e.Position))
}

func (b *Board) DragEnd() {
	b.scene.Draw.EndStroke(nil)
}

func (b *Board) TouchDown(e *mobile.TouchEvent) {
	b.Focus()
	b.scene.Draw.StartStroke(touch(e.Position))
}

func (b *Board) TouchUp(e *mobile.TouchEvent) {
	b.scene.Draw.EndStroke(touch(e.Position))
}

func (b *Board) TouchCancel(e *mobile.TouchEvent) {
	b.scene.Draw.EndStroke(touch(e.Position))
}

func (b *Board) FocusGained() {}

// FocusLost forgets held modifiers; their releases go elsewhere.
func (b *Board) FocusLost() {
	b.ctrl, b.alt, b.super = 0, 0, 0
}

// AcceptsTab keeps Tab on the board, where it toggles the mode.
func (b *Board) AcceptsTab() bool { return true }

func (b *Board) TypedRune(r rune) {
	b.key(letters.Key{Rune: r})
}

func (b *Board) TypedKey(e *fyne.KeyEvent) {
	switch e.Name {
	case fyne.KeyTab:
		b.scene.Modes.Toggle()
	case fyne.KeySpace:
		// delivered as a rune as well
	default:
		b.key(letters.Key{Name: string(e.Name)})
	}
}

func (b *Board) KeyDown(e *fyne.KeyEvent) {
	b.modifier(e.Name, 1)
}

func (b *Board) KeyUp(e *fyne.KeyEvent) {
	b.modifier(e.Name, -1)
}

func (b *Board) modifier(name fyne.KeyName, delta int) {
	var held *int
	switch name {
	case desktop.KeyControlLeft, desktop.KeyControlRight:
		held = &b.ctrl
	case desktop.KeyAltLeft, desktop.KeyAltRight:
		held = &b.alt
	case desktop.KeySuperLeft, desktop.KeySuperRight:
		held = &b.super
	default:
		return
	}
	*held = max(0, *held+delta)
}

func (b *Board) key(k letters.Key) {
	k.Ctrl, k.Alt, k.Super = b.ctrl > 0, b.alt > 0, b.super > 0
	b.scene.Text.HandleKey(k)
}

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b}
	r.background = canvas.NewRectangle(b.scene.Background().Color())
	r.glyphs = canvas.NewRaster(func(int, int) image.Image { return b.scene.Glyphs.Frame() })
	r.ink = canvas.NewRaster(func(int, int) image.Image { return b.scene.Strokes.Frame() })
	r.objects = []fyne.CanvasObject{r.background, r.glyphs, r.ink}
	r.Refresh()
	return r
}

type boardRenderer struct {
	board      *Board
	background *canvas.Rectangle
	glyphs     *canvas.Raster
	ink        *canvas.Raster
	objects    []fyne.CanvasObject
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Layout stretches every layer over the board and resizes the scene to
// match, one scene pixel per fyne unit.
func (r *boardRenderer) Layout(size fyne.Size) {
	for _, o := range r.objects {
		o.Resize(size)
	}
	r.board.scene.Resize(int(size.Width), int(size.Height))
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardRenderer) Refresh() {
	r.background.FillColor = r.board.scene.Background().Color()
	if r.board.scene.Draw.Active() {
		r.ink.Show()
	} else {
		r.ink.Hide()
	}
	r.background.Refresh()
	r.glyphs.Refresh()
	r.ink.Refresh()
}

func (r *boardRenderer) Destroy() {}
