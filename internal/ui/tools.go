package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/gogpu/gg"

	"AmbientBoard/internal/mode"
	"AmbientBoard/internal/scene"
)

// Ink tones offered in the palette. The first is the default off-white.
var palette = []gg.RGBA{
	gg.Hex("#f5f0e6"),
	gg.Hex("#c9ddf0"),
	gg.Hex("#f0c9d4"),
	gg.Hex("#d4f0c9"),
}

// --- Ink swatch ---
type colorSwatch struct {
	widget.BaseWidget
	Color    gg.RGBA
	OnTapped func(gg.RGBA)
}

func newColorSwatch(c gg.RGBA, tapped func(gg.RGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color.Color())
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Toolbar holds the mode toggle, the ink palette, the snapshot action and a
// status line.
type Toolbar struct {
	bar    fyne.CanvasObject
	toggle *widget.Button
	status *widget.Label
	modes  *mode.Controller
}

// NewToolbar builds the toolbar for sc. done runs after every toolbar
// action, so the caller can hand focus back to the board.
func NewToolbar(sc *scene.Scene, onSnapshot, done func()) *Toolbar {
	t := &Toolbar{
		status: widget.NewLabel(""),
		modes:  sc.Modes,
	}
	t.toggle = widget.NewButtonWithIcon("", nil, func() {
		sc.Modes.Toggle()
		done()
	})
	t.Update()

	onColorTapped := func(c gg.RGBA) {
		sc.Draw.SetInk(c)
		sc.Text.SetInk(c)
		done()
	}
	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { // Snapshot
			onSnapshot()
			done()
		}),
	)

	t.bar = container.NewHBox(
		t.toggle,
		widget.NewSeparator(),
		widget.NewLabel("Ink:"),
		colorBox,
		widget.NewSeparator(),
		actions,
		layout.NewSpacer(),
		t.status,
	)
	return t
}

func (t *Toolbar) Object() fyne.CanvasObject {
	return t.bar
}

// Update shows the label and icon for the next toggle.
func (t *Toolbar) Update() {
	t.toggle.SetText(t.modes.Label())
	if t.modes.Mode() == mode.Draw {
		t.toggle.SetIcon(theme.DocumentIcon())
	} else {
		t.toggle.SetIcon(theme.DocumentCreateIcon())
	}
}

func (t *Toolbar) SetStatus(text string) {
	t.status.SetText(text)
}
