package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// bindKeys installs the Ctrl+S shortcut and routes keys typed while no
// widget has focus to the board, which then takes focus. The board handles
// Tab itself once focused.
func bindKeys(c fyne.Canvas, b *Board, onSnapshot func()) {
	c.SetOnTypedRune(func(r rune) {
		b.Focus()
		b.TypedRune(r)
	})
	c.SetOnTypedKey(func(e *fyne.KeyEvent) {
		b.Focus()
		b.TypedKey(e)
	})
	c.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyS,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(fyne.Shortcut) {
		onSnapshot()
	})
}
