package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
)

var (
	// ErrEmptyChord is returned when a chord spec has no content.
	ErrEmptyChord = errors.New("empty chord")
	// ErrInvalidChord is returned when a chord spec cannot be parsed.
	ErrInvalidChord = errors.New("invalid chord")
)

// Modifier is a bit set of modifier keys held during a chord.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
	ModCmd
)

// Has reports whether all of the given modifiers are set.
func (m Modifier) Has(mod Modifier) bool { return m&mod == mod }

// String renders modifiers in canonical order joined by "-".
func (m Modifier) String() string {
	parts := make([]string, 0, 4)
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if m.Has(ModCmd) {
		parts = append(parts, "cmd")
	}
	return strings.Join(parts, "-")
}

var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"opt":     ModAlt,
	"option":  ModAlt,
	"meta":    ModAlt,
	"shift":   ModShift,
	"cmd":     ModCmd,
	"command": ModCmd,
	"super":   ModCmd,
	"win":     ModCmd,
}

var keyAliases = map[string]string{
	"esc":      "escape",
	"return":   "enter",
	"pgup":     "pageup",
	"pgdown":   "pagedown",
	"del":      "delete",
	"spacebar": "space",
	" ":        "space",
	"bs":       "backspace",
}

// Chord is one keyboard shortcut: a key plus the modifiers held with it.
type Chord struct {
	Mods Modifier
	Key  string
}

// String renders the chord in the canonical "ctrl-alt-shift-cmd-key" form.
func (c Chord) String() string {
	if c.Mods == 0 {
		return c.Key
	}
	return c.Mods.String() + "-" + c.Key
}

// IsZero reports whether the chord carries no key.
func (c Chord) IsZero() bool { return c.Key == "" }

// ParseChord parses a symbolic chord such as "cmd-c", "cmd-shift-f",
// "ctrl+x" or "escape". Modifiers may be separated with "-" or "+".
func ParseChord(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptyChord
	}

	var mods, key string
	last := spec[len(spec)-1]
	switch {
	case len(spec) == 1:
		key = spec
	case (last == '-' || last == '+') && (spec[len(spec)-2] == '-' || spec[len(spec)-2] == '+'):
		key = string(last)
		mods = spec[:len(spec)-2]
	default:
		idx := strings.LastIndexAny(spec, "-+")
		if idx < 0 {
			key = spec
		} else {
			mods = spec[:idx]
			key = spec[idx+1:]
		}
	}
	if key == "" {
		return Chord{}, fmt.Errorf("%w: %q has no key", ErrInvalidChord, spec)
	}

	var chord Chord
	if mods != "" {
		for _, name := range strings.FieldsFunc(mods, func(r rune) bool { return r == '-' || r == '+' }) {
			mod, ok := modifierNames[strings.ToLower(name)]
			if !ok {
				return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidChord, name, spec)
			}
			chord.Mods |= mod
		}
	}
	chord.Key, chord.Mods = normalizeKey(key, chord.Mods)
	return chord, nil
}

// MustParseChord is ParseChord for static tables; it panics on error.
func MustParseChord(spec string) Chord {
	c, err := ParseChord(spec)
	if err != nil {
		panic(err)
	}
	return c
}

func normalizeKey(key string, mods Modifier) (string, Modifier) {
	if utf8.RuneCountInString(key) == 1 {
		r, _ := utf8.DecodeRuneInString(key)
		if unicode.IsUpper(r) {
			return string(unicode.ToLower(r)), mods | ModShift
		}
		if alias, ok := keyAliases[key]; ok {
			return alias, mods
		}
		return key, mods
	}
	lower := strings.ToLower(key)
	if alias, ok := keyAliases[lower]; ok {
		return alias, mods
	}
	return lower, mods
}

// FromKey converts a Bubble Tea key press into a chord.
func FromKey(msg tea.KeyPressMsg) Chord {
	stroke := msg.Keystroke()
	if stroke == "" {
		return Chord{}
	}
	c, err := ParseChord(stroke)
	if err != nil {
		return Chord{Key: stroke}
	}
	return c
}
