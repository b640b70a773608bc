package command

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/atomicstack/overlaykit/internal/logging/events"
)

// Request encapsulates a deferred piece of work started by a menu activation.
type Request struct {
	ID      string
	Label   string
	Handler func() tea.Cmd
}

// Bus coordinates the execution of deferred work.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		cmd := req.Handler()
		if cmd == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		msg := cmd()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
