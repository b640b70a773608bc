package ui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/atomicstack/overlaykit/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	if res := m.dispatcher.DispatchKey(key); res.Handled {
		return res.Cmd
	}
	return m.defaultKey(key)
}

// defaultKey handles keys no focused node bound: text entry for the form
// and type-to-filter for menus.
func (m *Model) defaultKey(key tea.KeyPressMsg) tea.Cmd {
	s := m.focusedSurface()
	if s == nil {
		return nil
	}
	switch {
	case s.form != nil && m.registry.Focused() == s.input:
		s.form.Update(key)
	case s.menu != nil:
		m.filterKey(s, key)
	}
	return nil
}

func (m *Model) filterKey(s *surface, key tea.KeyPressMsg) {
	level := s.menu.level
	switch {
	case key.Keystroke() == "ctrl+w" || key.Keystroke() == "alt+backspace":
		if level.DeleteFilterWordBackward() {
			events.Filter.Backspace(level.ID, level.Filter)
		}
	case key.Code == tea.KeyBackspace && key.Mod == 0:
		if level.DeleteFilterRuneBackward() {
			events.Filter.Backspace(level.ID, level.Filter)
		}
	case key.Text != "" && !key.Mod.Contains(tea.ModCtrl) && !key.Mod.Contains(tea.ModAlt) && !key.Mod.Contains(tea.ModSuper):
		if level.InsertFilterText(key.Text) {
			events.Filter.Append(level.ID, level.Filter)
		}
	default:
		return
	}
	level.EnsureCursorVisible(menuMaxVisible)
}
