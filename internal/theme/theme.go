package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/atomicstack/overlaykit/internal/menu"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header           *lipgloss.Style
	Message          *lipgloss.Style
	Hint             *lipgloss.Style
	Footer           *lipgloss.Style
	Error            *lipgloss.Style
	Button           *lipgloss.Style
	ButtonActive     *lipgloss.Style
	Switch           *lipgloss.Style
	SwitchOn         *lipgloss.Style
	Popover          *lipgloss.Style
	DockedPanel      *lipgloss.Style
	PopoverTitle     *lipgloss.Style
	MenuFrame        *lipgloss.Style
	MenuItem         *lipgloss.Style
	MenuItemSelected *lipgloss.Style
	MenuSeparator    *lipgloss.Style
	MenuShortcut     *lipgloss.Style
	MenuIcon         *lipgloss.Style
	Filter           *lipgloss.Style
	FilterPrompt     *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Message: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Hint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Button: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")).Padding(0, 1),
	),
	ButtonActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Padding(0, 1).Bold(true),
	),
	Switch: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SwitchOn: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Popover: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	),
	DockedPanel: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).BorderForeground(lipgloss.Color("238")),
	),
	PopoverTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	MenuFrame: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
	),
	MenuItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	MenuItemSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	MenuSeparator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	MenuShortcut: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	MenuIcon: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
}

var glyphs = map[menu.Icon]string{
	menu.IconSearch:       "⌕",
	menu.IconGitHub:       "⎇",
	menu.IconCopy:         "⧉",
	menu.IconCut:          "✂",
	menu.IconPaste:        "⎘",
	menu.IconSettings:     "⚙",
	menu.IconEllipsis:     "…",
	menu.IconCheck:        "✓",
	menu.IconChevronRight: "›",
	menu.IconExternal:     "↗",
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Glyph returns the single-cell glyph drawn for icon, or "" for none.
func Glyph(icon menu.Icon) string {
	return glyphs[icon]
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
