package ui_test

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-lichvannien/internal/ui"
)

func TestNumericalEntry_TypedRune(t *testing.T) {
	entry := ui.NewNumericalEntry(0)
	window := test.NewWindow(entry)
	defer window.Close()

	tests := []struct {
		name     string
		input    rune
		accepted bool
	}{
		{"Digit_Zero", '0', true},
		{"Digit_Nine", '9', true},
		{"Digit_Five", '5', true},
		{"Letter_a", 'a', false},
		{"Letter_Z", 'Z', false},
		{"Symbol_Dash", '-', false},
		{"Symbol_Space", ' ', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry.SetText("")
			test.Type(entry, string(tt.input))

			if tt.accepted {
				assert.Equal(t, string(tt.input), entry.Text)
			} else {
				assert.Empty(t, entry.Text)
			}
		})
	}
}

func TestNumericalEntry_MaxDigits(t *testing.T) {
	entry := ui.NewNumericalEntry(2)
	window := test.NewWindow(entry)
	defer window.Close()

	test.Type(entry, "2024")
	assert.Equal(t, "20", entry.Text)
}

func TestNumericalEntry_PasteKeepsDigits(t *testing.T) {
	entry := ui.NewNumericalEntry(4)
	window := test.NewWindow(entry)
	defer window.Close()

	clip := &memClipboard{}
	clip.SetContent("ngày 1a9b8c9d0")
	entry.TypedShortcut(&fyne.ShortcutPaste{Clipboard: clip})

	assert.Equal(t, "1989", entry.Text)
}

func TestNumericalEntry_Keyboard(t *testing.T) {
	entry := ui.NewNumericalEntry(0)
	assert.Equal(t, mobile.NumberKeyboard, entry.Keyboard())
}

func TestNumericalEntry_DirectSetText(t *testing.T) {
	entry := ui.NewNumericalEntry(2)

	// SetText bypasses the input filter; validators cover that path.
	entry.SetText("abc")
	assert.Equal(t, "abc", entry.Text)
}

type memClipboard struct{ content string }

func (c *memClipboard) Content() string     { return c.content }
func (c *memClipboard) SetContent(s string) { c.content = s }
