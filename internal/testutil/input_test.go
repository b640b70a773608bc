package testutil

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/overlaykit/internal/keymap"
)

func TestKeyRoundTripsThroughChords(t *testing.T) {
	for _, spec := range []string{"cmd-c", "cmd-shift-f", "alt-w", "ctrl-c", "escape", "down", "enter", "q"} {
		want := keymap.MustParseChord(spec)
		got := keymap.FromKey(Key(spec))
		require.Equal(t, want, got, spec)
	}
}

func TestTypeProducesTextPresses(t *testing.T) {
	msgs := Type("a b")
	require.Len(t, msgs, 3)
	space, ok := msgs[1].(tea.KeyPressMsg)
	require.True(t, ok)
	require.Equal(t, rune(tea.KeySpace), space.Code)
	require.Equal(t, " ", space.Text)
}

func TestClicks(t *testing.T) {
	require.Equal(t, tea.MouseLeft, Click(1, 2).Button)
	right := RightClick(3, 4)
	require.Equal(t, tea.MouseRight, right.Button)
	require.Equal(t, 3, right.X)
	require.Equal(t, 4, right.Y)
}
