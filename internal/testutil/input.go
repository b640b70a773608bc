// Package testutil builds Bubble Tea input messages for tests.
package testutil

import (
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/atomicstack/overlaykit/internal/keymap"
)

var namedKeys = map[string]rune{
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"enter":     tea.KeyEnter,
	"escape":    tea.KeyEscape,
	"backspace": tea.KeyBackspace,
	"tab":       tea.KeyTab,
	"space":     tea.KeySpace,
	"delete":    tea.KeyDelete,
	"pageup":    tea.KeyPgUp,
	"pagedown":  tea.KeyPgDown,
}

// Key returns the key press for a chord spec such as "cmd-shift-f" or
// "down". It panics on malformed specs.
func Key(spec string) tea.KeyPressMsg {
	chord := keymap.MustParseChord(spec)
	var msg tea.KeyPressMsg
	if chord.Mods.Has(keymap.ModCtrl) {
		msg.Mod |= tea.ModCtrl
	}
	if chord.Mods.Has(keymap.ModAlt) {
		msg.Mod |= tea.ModAlt
	}
	if chord.Mods.Has(keymap.ModShift) {
		msg.Mod |= tea.ModShift
	}
	if chord.Mods.Has(keymap.ModCmd) {
		msg.Mod |= tea.ModSuper
	}
	if code, ok := namedKeys[chord.Key]; ok {
		msg.Code = code
		if code == tea.KeySpace && msg.Mod == 0 {
			msg.Text = " "
		}
		return msg
	}
	r, _ := utf8.DecodeRuneInString(chord.Key)
	msg.Code = r
	switch msg.Mod {
	case 0:
		msg.Text = string(r)
	case tea.ModShift:
		msg.ShiftedCode = unicode.ToUpper(r)
		msg.Text = string(msg.ShiftedCode)
	}
	return msg
}

// Type returns one key press per rune of text, as a terminal delivers typed
// characters.
func Type(text string) []tea.Msg {
	msgs := make([]tea.Msg, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		msg := tea.KeyPressMsg{Code: r, Text: string(r)}
		if r == ' ' {
			msg.Code = tea.KeySpace
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

// Click returns a left button press at x, y.
func Click(x, y int) tea.MouseClickMsg {
	return tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}
}

// RightClick returns a right button press at x, y.
func RightClick(x, y int) tea.MouseClickMsg {
	return tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseRight}
}
