package command

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

type doneMsg struct{ label string }

func TestExecuteRunsHandlerCommand(t *testing.T) {
	bus := New()
	cmd := bus.Execute(Request{
		ID:    "link",
		Label: "https://example.com",
		Handler: func() tea.Cmd {
			return func() tea.Msg { return doneMsg{label: "opened"} }
		},
	})
	msg := cmd()
	done, ok := msg.(doneMsg)
	if !ok || done.label != "opened" {
		t.Fatalf("expected doneMsg, got %#v", msg)
	}
}

func TestExecuteSkipsMissingHandler(t *testing.T) {
	bus := New()
	if msg := bus.Execute(Request{ID: "none"})(); msg != nil {
		t.Fatalf("expected nil message, got %#v", msg)
	}
	noop := bus.Execute(Request{ID: "noop", Handler: func() tea.Cmd { return nil }})
	if msg := noop(); msg != nil {
		t.Fatalf("expected nil message for no-op handler, got %#v", msg)
	}
}
