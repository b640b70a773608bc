package ui

import (
	"image"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/overlaykit/internal/anchor"
	"github.com/atomicstack/overlaykit/internal/keymap"
	"github.com/atomicstack/overlaykit/internal/overlay"
)

// dockTop is the first row of the region docked popovers are laid out in.
// Rows above it are fixed: header, switch, top buttons, popup menu row and
// the context menu hint, each followed by a blank row.
const dockTop = 10

// View implements tea.Model.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// Render draws the frame: the story layout with docked overlays, then every
// floating overlay composited on top in opening order.
func (m *Model) Render() string {
	frame := m.renderBase()
	if m.zones != nil {
		frame = m.zones.Scan(frame)
	}
	for _, id := range m.overlays.Stack() {
		p, ok := m.overlays.Placement(id)
		if !ok || p.Mode != anchor.Floating {
			continue
		}
		content, ok := m.overlays.Content(id)
		if !ok {
			continue
		}
		frame = overlayAt(frame, content.View(), p.Origin.X, p.Origin.Y)
	}
	return frame
}

func (m *Model) mark(id, s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Mark(id, s)
}

func (m *Model) button(id overlay.ID, label string) string {
	style := styles.Button
	if m.overlays.IsOpen(id) {
		style = styles.ButtonActive
	}
	return m.mark(string(id), style.Render(label))
}

func (m *Model) renderBase() string {
	lines := make([]string, 0, max(m.height, dockTop+4))
	lines = append(lines,
		styles.Header.Render("Popup Story")+"  "+styles.Hint.Render("anchored popovers, menus and window mode"),
		"",
		m.renderSwitch(),
		"",
		spread(m.button(idInfoTopLeft, "Top Left"), m.button(idInfoTopRight, "Top Right"), m.width),
		"",
		m.button(idPopupMenu, "…")+"  "+m.renderMessage(),
		"",
		styles.Hint.Render("Right click to open ContextMenu"),
		"",
	)
	lines = append(lines, m.renderDock()...)

	bottom := spread(m.button(idInfoBottomLeft, "Popup with Form"), m.button(idInfoBottomRight, "Mouse Right Click"), m.width)
	bottomRow := m.height - 1
	if m.showFooter {
		bottomRow--
	}
	for len(lines) < bottomRow {
		lines = append(lines, "")
	}
	lines = append(lines, bottom)
	if m.showFooter {
		lines = append(lines, m.renderFooter())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSwitch() string {
	box, style := "[ ]", styles.Switch
	if m.windowMode {
		box, style = "[x]", styles.SwitchOn
	}
	return m.mark(zoneSwitch, style.Render(box+" Use Window Popover"))
}

func (m *Model) renderMessage() string {
	if m.errMsg != "" {
		return styles.Error.Render(m.errMsg)
	}
	return styles.Message.Render(m.message)
}

func (m *Model) dockedOverlays() []overlay.ID {
	var out []overlay.ID
	for _, id := range m.overlays.Stack() {
		if p, ok := m.overlays.Placement(id); ok && p.Mode == anchor.Docked {
			out = append(out, id)
		}
	}
	return out
}

// syncDock records where docked overlays are drawn so clicks on them resolve
// before the next render.
func (m *Model) syncDock() {
	for _, k := range m.dockKeys {
		delete(m.frame, k)
	}
	m.dockKeys = m.dockKeys[:0]
	y := dockTop
	for _, id := range m.dockedOverlays() {
		content, _ := m.overlays.Content(id)
		view := content.View()
		y++ // panel rule
		k := overlay.ZoneID(id)
		m.frame[k] = image.Rect(0, y, lipgloss.Width(view), y+lipgloss.Height(view))
		m.dockKeys = append(m.dockKeys, k)
		y += lipgloss.Height(view)
	}
}

func (m *Model) renderDock() []string {
	var lines []string
	for _, id := range m.dockedOverlays() {
		content, _ := m.overlays.Content(id)
		panel := styles.DockedPanel.Render(content.View())
		lines = append(lines, strings.Split(panel, "\n")...)
	}
	return lines
}

func (m *Model) renderFooter() string {
	return styles.Footer.Render(m.help.ShortHelpView(m.footerBindings()))
}

func (m *Model) footerBindings() []key.Binding {
	context := ContextStory
	actions := []keymap.Action{ActionCopy, ActionPaste, ActionCut, ActionSearchAll, ActionToggleWindowMode, ActionQuit}
	if s := m.focusedSurface(); s != nil {
		switch {
		case s.menu != nil:
			context = ContextMenu
			actions = []keymap.Action{ActionSelectNext, ActionSelectPrev, ActionConfirm, ActionSelectChild, ActionCancel}
		case s.form != nil && m.registry.Focused() == s.input:
			context = ContextForm
			actions = []keymap.Action{ActionSubmit, ActionDismiss}
		default:
			context = ContextPopover
			actions = []keymap.Action{ActionDismiss}
		}
	}
	bindings := make([]key.Binding, 0, len(actions))
	for _, action := range actions {
		chords := m.keysFor(action, context)
		if len(chords) == 0 {
			continue
		}
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(chords...),
			key.WithHelp(chords[0], Describe(action)),
		))
	}
	return bindings
}

// keysFor walks the context chain the dispatcher would use: a form's input
// sits inside a popover.
func (m *Model) keysFor(action keymap.Action, context string) []string {
	contexts := []string{context}
	if context == ContextForm {
		contexts = append(contexts, ContextPopover)
	}
	for _, ctx := range contexts {
		chords := m.table.KeysFor(action, ctx)
		if len(chords) == 0 {
			continue
		}
		out := make([]string, len(chords))
		for i, c := range chords {
			out[i] = c.String()
		}
		return out
	}
	return nil
}

func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

// overlayAt draws top over base with its top-left cell at x, y. Cells of base
// outside top are kept, styles included.
func overlayAt(base, top string, x, y int) string {
	x = max(x, 0)
	lines := strings.Split(base, "\n")
	for i, line := range strings.Split(top, "\n") {
		row := y + i
		if row < 0 {
			continue
		}
		for len(lines) <= row {
			lines = append(lines, "")
		}
		under := lines[row]
		if w := ansi.StringWidth(under); w < x {
			under += strings.Repeat(" ", x-w)
		}
		left := ansi.Truncate(under, x, "")
		right := ansi.TruncateLeft(under, x+ansi.StringWidth(line), "")
		lines[row] = left + line + right
	}
	return strings.Join(lines, "\n")
}
