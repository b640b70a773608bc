package ui

import (
	"image"

	tea "charm.land/bubbletea/v2"

	"github.com/atomicstack/overlaykit/internal/anchor"
	"github.com/atomicstack/overlaykit/internal/keymap"
	"github.com/atomicstack/overlaykit/internal/logging/events"
	"github.com/atomicstack/overlaykit/internal/menu"
	"github.com/atomicstack/overlaykit/internal/overlay"
)

func (m *Model) bindMenu(s *surface) {
	on := func(action keymap.Action, fn func(*surface) tea.Cmd) {
		m.dispatcher.On(s.handle, action, func(keymap.Action) tea.Cmd { return fn(s) })
	}
	on(ActionSelectNext, func(s *surface) tea.Cmd { return m.moveCursor(s, s.menu.level.MoveCursorDown) })
	on(ActionSelectPrev, func(s *surface) tea.Cmd { return m.moveCursor(s, s.menu.level.MoveCursorUp) })
	on(ActionSelectFirst, func(s *surface) tea.Cmd { return m.moveCursor(s, s.menu.level.MoveCursorHome) })
	on(ActionSelectLast, func(s *surface) tea.Cmd { return m.moveCursor(s, s.menu.level.MoveCursorEnd) })
	on(ActionConfirm, m.confirmMenu)
	on(ActionCancel, m.cancelMenu)
	on(ActionSelectChild, m.selectChild)
	on(ActionSelectParent, m.selectParent)
}

func (m *Model) moveCursor(s *surface, move func() bool) tea.Cmd {
	level := s.menu.level
	if move() {
		events.Menu.Cursor(level.ID, level.Cursor)
	}
	level.EnsureCursorVisible(menuMaxVisible)
	return nil
}

func (m *Model) confirmMenu(s *surface) tea.Cmd {
	if s.menu.level.Cursor < 0 {
		return nil
	}
	return m.activate(s, s.menu.level.Cursor)
}

// cancelMenu clears an active filter first; otherwise it closes the menu and
// its open submenus.
func (m *Model) cancelMenu(s *surface) tea.Cmd {
	if s.menu.level.ClearFilter() {
		events.Filter.Cleared(s.menu.level.ID)
		return nil
	}
	m.overlays.Close(s.id)
	return nil
}

func (m *Model) selectChild(s *surface) tea.Cmd {
	node, ok := s.menu.level.Current()
	if !ok || node.Kind != menu.KindSubmenu {
		return nil
	}
	m.openSubmenu(s, s.menu.level.Cursor, true)
	return nil
}

func (m *Model) selectParent(s *surface) tea.Cmd {
	if _, ok := m.overlays.Parent(s.id); ok {
		m.overlays.Close(s.id)
	}
	return nil
}

// activate runs the item at idx. Actions and links close the whole menu
// chain first, so the action is dispatched from the story's focus.
func (m *Model) activate(s *surface, idx int) tea.Cmd {
	level := s.menu.level
	if idx < 0 || idx >= len(level.Items) {
		return nil
	}
	node := level.Items[idx]
	if !node.Selectable() {
		return nil
	}
	level.Select(idx)
	events.Menu.Activate(level.ID, node.Label, node.Kind.String())
	switch node.Kind {
	case menu.KindSubmenu:
		m.openSubmenu(s, idx, true)
		return nil
	case menu.KindLink:
		m.closeMenuChain(s.id)
		return m.openLink(node.URI)
	default:
		m.closeMenuChain(s.id)
		if node.Action == "" {
			return nil
		}
		return m.dispatcher.DispatchAction(node.Action, m.registry.Chain()).Cmd
	}
}

func (m *Model) closeMenuChain(id overlay.ID) {
	root := id
	for {
		parent, ok := m.overlays.Parent(root)
		if !ok {
			break
		}
		root = parent
	}
	m.overlays.Close(root)
}

// openSubmenu opens the submenu at idx beside its row and focuses it.
func (m *Model) openSubmenu(s *surface, idx int, selectFirst bool) {
	node := s.menu.level.Items[idx]
	childID := overlay.ID(string(s.id) + "/" + node.ID)
	if child := m.surfaces[childID]; child != nil {
		m.registry.Focus(child.handle)
		return
	}
	origin, ok := m.surfaceOrigin(s.id)
	if !ok {
		return
	}
	row := s.menu.rowRect(idx).Add(origin)
	children := menu.CloneNodes(node.Children)
	label := node.Label
	table := m.table
	spec := overlay.Spec{
		ID:   childID,
		Kind: overlay.KindSubmenu,
		Provider: overlay.Builder(func(ctx overlay.BuildContext) (overlay.Content, error) {
			return newMenuSurface(ctx.ID, label, children, table), nil
		}),
	}
	if !m.overlays.OpenChild(s.id, spec, row) {
		return
	}
	if child := m.surfaces[childID]; child != nil && selectFirst {
		child.menu.level.MoveCursorHome()
	}
}

// surfaceOrigin returns the window position of an open overlay's content.
func (m *Model) surfaceOrigin(id overlay.ID) (image.Point, bool) {
	p, ok := m.overlays.Placement(id)
	if !ok {
		return image.Point{}, false
	}
	if p.Mode == anchor.Floating {
		return p.Origin, true
	}
	r, ok := m.bounds.BoundsOf(overlay.ZoneID(id))
	if !ok {
		return image.Point{}, false
	}
	return r.Min, true
}
