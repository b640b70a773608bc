package ui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/atomicstack/overlaykit/internal/anchor"
	"github.com/atomicstack/overlaykit/internal/keymap"
	"github.com/atomicstack/overlaykit/internal/overlay"
)

const (
	textTopLeft     = "Hello, this is a Popover."
	textTopRight    = "Hello, this is a Popover on the Top Right."
	textBottomRight = "Hello, this is a Popover on the Bottom Right."
)

var clickedNames = map[keymap.Action]string{
	ActionCopy:      "copy",
	ActionPaste:     "paste",
	ActionCut:       "cut",
	ActionSearchAll: "search all",
}

func (m *Model) registerStoryActions() {
	for action := range clickedNames {
		m.dispatcher.On(m.root, action, m.reportClicked)
	}
	m.dispatcher.On(m.root, ActionToggleWindowMode, func(keymap.Action) tea.Cmd {
		m.setWindowMode(!m.windowMode)
		return nil
	})
	m.dispatcher.On(m.root, ActionQuit, func(keymap.Action) tea.Cmd {
		return tea.Quit
	})
}

func (m *Model) reportClicked(action keymap.Action) tea.Cmd {
	m.message = "You have clicked " + clickedNames[action]
	m.errMsg = ""
	return nil
}

func (m *Model) setWindowMode(on bool) {
	m.windowMode = on
	m.declareOverlays()
	// the popup menu's check mark follows the mode while it is open
	if s := m.surfaces[idPopupMenu]; s != nil && s.menu != nil {
		s.menu.level.UpdateItems(m.popupMenuTree().Nodes())
	}
}

func infoBuilder(text string, width int, confirm bool) overlay.Builder {
	return func(overlay.BuildContext) (overlay.Content, error) {
		return &infoPopover{text: text, width: width, confirm: confirm}, nil
	}
}

// declareOverlays declares every overlay the story can show. It runs after
// each update, so an open popover moves between floating and docked as soon
// as the window mode changes.
func (m *Model) declareOverlays() {
	docked := m.windowMode
	m.overlays.Declare(overlay.Spec{
		ID:             idInfoTopLeft,
		Root:           storyRoot,
		Corner:         anchor.TopLeft,
		WindowEmbedded: docked,
		Provider:       infoBuilder(textTopLeft, 28, true),
	})
	m.overlays.Declare(overlay.Spec{
		ID:             idInfoTopRight,
		Root:           storyRoot,
		Corner:         anchor.TopRight,
		WindowEmbedded: docked,
		Provider:       infoBuilder(textTopRight, 40, true),
	})
	m.overlays.Declare(overlay.Spec{
		ID:             idInfoBottomLeft,
		Root:           storyRoot,
		Corner:         anchor.BottomLeft,
		WindowEmbedded: docked,
		Provider:       overlay.Owned{Content: m.form},
	})
	m.overlays.Declare(overlay.Spec{
		ID:             idInfoBottomRight,
		Root:           storyRoot,
		Corner:         anchor.BottomRight,
		Button:         overlay.ButtonRight,
		WindowEmbedded: docked,
		Provider:       infoBuilder(textBottomRight, 40, true),
	})
	m.overlays.Declare(overlay.Spec{
		ID:       idPopupMenu,
		Root:     storyRoot,
		Kind:     overlay.KindPopupMenu,
		Corner:   anchor.TopLeft,
		Provider: overlay.Builder(m.buildPopupMenu),
	})
	m.overlays.Declare(overlay.Spec{
		ID:       idContextMenu,
		Root:     storyRoot,
		Kind:     overlay.KindContextMenu,
		Trigger:  zoneStory,
		Button:   overlay.ButtonRight,
		Provider: overlay.Builder(m.buildContextMenu),
	})
}

// onTransition keeps the surfaces and the focus tree in step with the
// overlay manager.
func (m *Model) onTransition(t overlay.Transition) {
	switch t.To {
	case overlay.Open:
		m.attachSurface(t.ID)
	case overlay.Closed:
		m.detachSurface(t.ID)
	}
}

func (m *Model) attachSurface(id overlay.ID) {
	content, ok := m.overlays.Content(id)
	if !ok {
		return
	}
	parent := m.root
	if pid, ok := m.overlays.Parent(id); ok {
		if ps := m.surfaces[pid]; ps != nil {
			parent = ps.handle
		}
	}
	s := &surface{id: id, handle: m.registry.New(parent)}
	target := s.handle
	switch c := content.(type) {
	case *menuSurface:
		s.menu = c
		m.registry.SetContext(s.handle, ContextMenu)
		m.bindMenu(s)
	case *Form:
		s.form = c
		m.registry.SetContext(s.handle, ContextPopover)
		m.bindPopover(s)
		s.input = m.registry.New(s.handle)
		m.registry.SetContext(s.input, ContextForm)
		m.dispatcher.On(s.input, ActionSubmit, func(keymap.Action) tea.Cmd {
			m.overlays.Dismiss(s.id)
			return nil
		})
		c.Focus()
		target = s.input
	case *infoPopover:
		s.info = c
		m.registry.SetContext(s.handle, ContextPopover)
		m.bindPopover(s)
	default:
		m.registry.SetContext(s.handle, ContextPopover)
		m.bindPopover(s)
	}
	m.surfaces[id] = s
	m.registry.Focus(target)
}

func (m *Model) detachSurface(id overlay.ID) {
	s, ok := m.surfaces[id]
	if !ok {
		return
	}
	m.dispatcher.Clear(s.handle)
	if s.input != 0 {
		m.dispatcher.Clear(s.input)
	}
	if s.form != nil {
		s.form.Blur()
	}
	m.registry.Release(s.handle)
	delete(m.surfaces, id)
}

func (m *Model) bindPopover(s *surface) {
	m.dispatcher.On(s.handle, ActionDismiss, func(keymap.Action) tea.Cmd {
		m.overlays.Dismiss(s.id)
		return nil
	})
}

// dismissMsg is emitted by popover content asking its owner to close it.
type dismissMsg struct {
	id overlay.ID
}

func dismissCmd(id overlay.ID) tea.Cmd {
	return func() tea.Msg { return dismissMsg{id: id} }
}

func (m *Model) handleDismissMsg(msg tea.Msg) tea.Cmd {
	dismiss, ok := msg.(dismissMsg)
	if !ok {
		return nil
	}
	m.overlays.Dismiss(dismiss.id)
	return nil
}

// submitForm handles a click on Submit. The key binding dismisses directly.
func (m *Model) submitForm(s *surface) tea.Cmd {
	return dismissCmd(s.id)
}

// focusedSurface returns the surface holding focus, if any.
func (m *Model) focusedSurface() *surface {
	focused := m.registry.Focused()
	if focused == 0 || focused == m.root {
		return nil
	}
	for _, s := range m.surfaces {
		if s.handle == focused || (s.input != 0 && s.input == focused) {
			return s
		}
	}
	return nil
}
