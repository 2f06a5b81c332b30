package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is a custom Entry widget that only accepts digits, up to
// MaxDigits of them when MaxDigits is positive.
type NumericalEntry struct {
	widget.Entry
	MaxDigits int
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry(maxDigits int) *NumericalEntry {
	entry := &NumericalEntry{MaxDigits: maxDigits}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune intercepts text input events and drops anything but 0-9.
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' || e.full() {
		return
	}
	e.Entry.TypedRune(r)
}

// TypedShortcut filters pasted text through TypedRune so that only digits land.
func (e *NumericalEntry) TypedShortcut(s fyne.Shortcut) {
	paste, ok := s.(*fyne.ShortcutPaste)
	if !ok || paste.Clipboard == nil {
		e.Entry.TypedShortcut(s)
		return
	}
	for _, r := range paste.Clipboard.Content() {
		e.TypedRune(r)
	}
}

// full reports whether another digit would exceed MaxDigits. Selected text
// is about to be replaced and does not count.
func (e *NumericalEntry) full() bool {
	if e.MaxDigits <= 0 {
		return false
	}
	return len([]rune(e.Text))-len([]rune(e.SelectedText())) >= e.MaxDigits
}

// Keyboard overrides the default keyboard type.
// This ensures that on mobile devices, a numeric keypad is shown.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
