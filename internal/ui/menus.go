package ui

import (
	"image"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/overlaykit/internal/keymap"
	"github.com/atomicstack/overlaykit/internal/menu"
	"github.com/atomicstack/overlaykit/internal/overlay"
	"github.com/atomicstack/overlaykit/internal/theme"
	uistate "github.com/atomicstack/overlaykit/internal/ui/state"
)

const (
	menuMinWidth   = 18
	menuMaxVisible = 12
	githubURL      = "https://github.com/huacnlee/gpui-component"
)

func (m *Model) contextMenuTree() menu.Tree {
	return menu.Build(func(b *menu.Builder) {
		b.ItemWithIcon("Cut", menu.IconCut, ActionCut).
			ItemWithIcon("Copy", menu.IconCopy, ActionCopy).
			ItemWithIcon("Paste", menu.IconPaste, ActionPaste).
			Separator().
			Submenu("Settings", func(sub *menu.Builder) {
				sub.Item("Toggle Window Mode", ActionToggleWindowMode).
					Separator().
					Item("Search All", ActionSearchAll)
			}).
			Separator().
			ItemWithIcon("Search All", menu.IconSearch, ActionSearchAll)
	})
}

func (m *Model) popupMenuTree() menu.Tree {
	return menu.Build(func(b *menu.Builder) {
		b.ItemWithIcon("Copy", menu.IconCopy, ActionCopy).
			ItemWithIcon("Cut", menu.IconCut, ActionCut).
			ItemWithIcon("Paste", menu.IconPaste, ActionPaste).
			Separator().
			ItemWithIcon("Search", menu.IconSearch, ActionSearchAll).
			Separator().
			Check("Window Mode", m.windowMode, ActionToggleWindowMode).
			Separator().
			Link("GitHub Repository", menu.IconGitHub, githubURL)
	})
}

func (m *Model) buildPopupMenu(ctx overlay.BuildContext) (overlay.Content, error) {
	return newMenuSurface(ctx.ID, "popup menu", m.popupMenuTree().Nodes(), m.table), nil
}

func (m *Model) buildContextMenu(ctx overlay.BuildContext) (overlay.Content, error) {
	return newMenuSurface(ctx.ID, "context menu", m.contextMenuTree().Nodes(), m.table), nil
}

// menuSurface is the content of an open menu. Each open menu, including every
// open submenu, has its own level.
type menuSurface struct {
	id    overlay.ID
	level *uistate.Level
	table *keymap.Table
}

func newMenuSurface(id overlay.ID, title string, nodes []menu.Node, table *keymap.Table) *menuSurface {
	return &menuSurface{
		id:    id,
		level: uistate.NewLevel(string(id), title, nodes),
		table: table,
	}
}

func (s *menuSurface) shortcut(n menu.Node) string {
	switch n.Kind {
	case menu.KindSubmenu:
		return theme.Glyph(menu.IconChevronRight)
	case menu.KindLink:
		return theme.Glyph(menu.IconExternal)
	}
	if n.Action == "" || s.table == nil {
		return ""
	}
	keys := s.table.KeysFor(n.Action, keymap.GlobalContext)
	if len(keys) == 0 {
		return ""
	}
	return keys[0].String()
}

func (s *menuSurface) mark(n menu.Node) string {
	if n.Kind == menu.KindCheckable {
		if n.Checked {
			return theme.Glyph(menu.IconCheck)
		}
		return " "
	}
	if n.Kind == menu.KindSubmenu {
		return " "
	}
	if g := theme.Glyph(n.Icon); g != "" {
		return g
	}
	return " "
}

// innerWidth is measured over every node, not just the filtered ones, so the
// menu keeps its width while the user types.
func (s *menuSurface) innerWidth() int {
	width := menuMinWidth
	for _, n := range s.level.Full {
		if !n.Selectable() {
			continue
		}
		cells := 1 + ansi.StringWidth(s.mark(n)) + 1 + ansi.StringWidth(n.Label) + 1
		if sc := s.shortcut(n); sc != "" {
			cells += 2 + ansi.StringWidth(sc)
		}
		width = max(width, cells)
	}
	return width
}

func (s *menuSurface) visibleRows() int {
	return min(len(s.level.Items), menuMaxVisible)
}

func (s *menuSurface) renderRow(n menu.Node, width int, selected bool) string {
	if n.Kind == menu.KindSeparator {
		return styles.MenuSeparator.Render(" " + strings.Repeat("─", max(width-2, 0)) + " ")
	}
	left := " " + s.mark(n) + " " + n.Label
	right := s.shortcut(n) + " "
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		left = ansi.Truncate(left, width-ansi.StringWidth(right)-1, "…")
		gap = 1
	}
	if selected {
		return styles.MenuItemSelected.Render(left + strings.Repeat(" ", gap) + right)
	}
	return styles.MenuItem.Render(left) + strings.Repeat(" ", gap) + styles.MenuShortcut.Render(right)
}

// View implements overlay.Content.
func (s *menuSurface) View() string {
	width := s.innerWidth()
	level := s.level
	rows := make([]string, 0, s.visibleRows()+1)
	end := min(level.ViewportOffset+s.visibleRows(), len(level.Items))
	for i := level.ViewportOffset; i < end; i++ {
		rows = append(rows, s.renderRow(level.Items[i], width, i == level.Cursor))
	}
	if len(level.Items) == 0 {
		rows = append(rows, styles.Hint.Render(padRight(" no matches", width)))
	}
	if level.Filter != "" {
		prompt := styles.FilterPrompt.Render(" / ")
		query := ansi.Truncate(level.Filter, max(width-3, 0), "…")
		rows = append(rows, prompt+styles.Filter.Render(padRight(query, width-3)))
	}
	return styles.MenuFrame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Size implements overlay.Sizer.
func (s *menuSurface) Size() image.Point {
	rows := s.visibleRows()
	if len(s.level.Items) == 0 {
		rows = 1
	}
	if s.level.Filter != "" {
		rows++
	}
	return image.Pt(s.innerWidth()+2, rows+2)
}

// rowAt maps a point relative to the surface origin to an item index.
func (s *menuSurface) rowAt(local image.Point) int {
	if local.X < 1 || local.X > s.innerWidth() {
		return -1
	}
	y := local.Y - 1
	if y < 0 || y >= s.visibleRows() {
		return -1
	}
	idx := s.level.ViewportOffset + y
	if idx >= len(s.level.Items) {
		return -1
	}
	return idx
}

// rowRect returns the bounds of item idx relative to the surface origin.
func (s *menuSurface) rowRect(idx int) image.Rectangle {
	y := 1 + idx - s.level.ViewportOffset
	return image.Rect(0, y, s.innerWidth()+2, y+1)
}

func padRight(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
