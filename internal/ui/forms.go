package ui

import (
	"image"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const (
	formTitle       = "This is a form container."
	formSubmitLabel = "Submit"
	// rows above the submit button inside the popover frame: border, title,
	// blank, input, blank.
	formSubmitRow = 5
	// border plus horizontal padding.
	popoverInset = 2
)

// Form is the content of the bottom-left popover. The model owns it, so the
// text typed into it survives the popover closing and reopening.
type Form struct {
	input textinput.Model
}

// NewForm returns an empty form.
func NewForm() *Form {
	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = "Type something"
	input.CharLimit = 64
	return &Form{input: input}
}

// Value returns the text typed so far.
func (f *Form) Value() string { return f.input.Value() }

// SetValue replaces the text.
func (f *Form) SetValue(s string) { f.input.SetValue(s) }

// Focused reports whether the text input accepts keys.
func (f *Form) Focused() bool { return f.input.Focused() }

// Focus gives the text input the cursor. Blinking is not scheduled; the
// cursor is drawn steadily.
func (f *Form) Focus() { _ = f.input.Focus() }

// Blur removes the cursor.
func (f *Form) Blur() { f.input.Blur() }

// Update feeds a key press to the text input.
func (f *Form) Update(msg tea.KeyPressMsg) {
	f.input, _ = f.input.Update(msg)
}

// View implements overlay.Content.
func (f *Form) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.PopoverTitle.Render(formTitle),
		"",
		f.input.View(),
		"",
		styles.ButtonActive.Render(formSubmitLabel),
	)
	return styles.Popover.Render(body)
}

func (f *Form) hitSubmit(local image.Point) bool {
	width := lipgloss.Width(styles.ButtonActive.Render(formSubmitLabel))
	return local.Y == formSubmitRow && local.X >= popoverInset && local.X < popoverInset+width
}

// infoPopover is the stateless content of the plain popovers. It is built
// fresh every time one opens.
type infoPopover struct {
	text    string
	width   int
	confirm bool
}

func (p *infoPopover) textLines() []string {
	wrapped := lipgloss.NewStyle().Width(p.width).Render(p.text)
	return strings.Split(wrapped, "\n")
}

// View implements overlay.Content.
func (p *infoPopover) View() string {
	lines := p.textLines()
	if p.confirm {
		lines = append(lines,
			styles.MenuSeparator.Render(strings.Repeat("─", p.width)),
			styles.Button.Render("Yes"),
		)
	}
	return styles.Popover.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (p *infoPopover) hitConfirm(local image.Point) bool {
	if !p.confirm {
		return false
	}
	row := 1 + len(p.textLines()) + 1
	width := lipgloss.Width(styles.Button.Render("Yes"))
	return local.Y == row && local.X >= popoverInset && local.X < popoverInset+width
}
