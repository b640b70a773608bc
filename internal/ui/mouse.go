package ui

import (
	"image"

	tea "charm.land/bubbletea/v2"

	"github.com/atomicstack/overlaykit/internal/overlay"
)

// handleMouseClickMsg moves focus to the story root, then lets the overlay
// manager route the press. A press inside open content is handled by that
// content in its own coordinates.
func (m *Model) handleMouseClickMsg(msg tea.Msg) tea.Cmd {
	click, ok := msg.(tea.MouseClickMsg)
	if !ok {
		return nil
	}
	mouse := click.Mouse()
	var button overlay.Button
	switch mouse.Button {
	case tea.MouseLeft:
		button = overlay.ButtonLeft
	case tea.MouseRight:
		button = overlay.ButtonRight
	default:
		return nil
	}
	m.registry.Focus(m.root)
	p := image.Pt(mouse.X, mouse.Y)
	res := m.overlays.HandleClick(overlay.Click{Point: p, Button: button})
	if res.Inside != "" {
		return m.clickInside(res.Inside, p, button)
	}
	if res.Consumed() || button != overlay.ButtonLeft {
		return nil
	}
	if r, ok := m.bounds.BoundsOf(zoneSwitch); ok && p.In(r) {
		m.setWindowMode(!m.windowMode)
	}
	return nil
}

func (m *Model) clickInside(id overlay.ID, p image.Point, button overlay.Button) tea.Cmd {
	s := m.surfaces[id]
	if s == nil {
		return nil
	}
	origin, ok := m.surfaceOrigin(id)
	if !ok {
		return nil
	}
	local := p.Sub(origin)
	switch {
	case s.menu != nil:
		m.registry.Focus(s.handle)
		if button != overlay.ButtonLeft {
			return nil
		}
		idx := s.menu.rowAt(local)
		if idx < 0 {
			return nil
		}
		return m.activate(s, idx)
	case s.form != nil:
		m.registry.Focus(s.input)
		s.form.Focus()
		if button == overlay.ButtonLeft && s.form.hitSubmit(local) {
			return m.submitForm(s)
		}
	case s.info != nil:
		m.registry.Focus(s.handle)
		if button == overlay.ButtonLeft && s.info.hitConfirm(local) {
			return dismissCmd(id)
		}
	default:
		m.registry.Focus(s.handle)
	}
	return nil
}
