// Package dispatch routes key chords and actions through the focus chain.
//
// A chord is resolved to an action at each node using that node's key
// context (falling back to global bindings). The first node on the chain, from
// the focused leaf outward, that registered a handler for the resolved action
// consumes the event. When nobody handles it, Dispatch reports Handled=false
// and the caller applies its default handling.
package dispatch

import (
	tea "charm.land/bubbletea/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/atomicstack/overlaykit/internal/focus"
	"github.com/atomicstack/overlaykit/internal/keymap"
	"github.com/atomicstack/overlaykit/internal/logging/events"
	"github.com/atomicstack/overlaykit/internal/telemetry"
)

// Handler runs an action at a node. The returned command is scheduled by the
// caller and typically requests a re-render or starts deferred work.
type Handler func(keymap.Action) tea.Cmd

// Result describes the outcome of a dispatch.
type Result struct {
	Handled bool
	Action  keymap.Action
	Node    focus.Handle
	Cmd     tea.Cmd
}

// Dispatcher holds per-node action handlers.
type Dispatcher struct {
	table    *keymap.Table
	registry *focus.Registry
	handlers map[focus.Handle]map[keymap.Action]Handler
	tracer   trace.Tracer
}

// New returns a dispatcher resolving chords through table.
func New(table *keymap.Table, registry *focus.Registry) *Dispatcher {
	return &Dispatcher{
		table:    table,
		registry: registry,
		handlers: make(map[focus.Handle]map[keymap.Action]Handler),
		tracer:   telemetry.Tracer("dispatch"),
	}
}

// On registers h for action at node, replacing any previous handler.
func (d *Dispatcher) On(node focus.Handle, action keymap.Action, h Handler) {
	actions, ok := d.handlers[node]
	if !ok {
		actions = make(map[keymap.Action]Handler)
		d.handlers[node] = actions
	}
	actions[action] = h
}

// Clear removes every handler registered at node.
func (d *Dispatcher) Clear(node focus.Handle) {
	delete(d.handlers, node)
}

// Has reports whether node handles action.
func (d *Dispatcher) Has(node focus.Handle, action keymap.Action) bool {
	_, ok := d.handlers[node][action]
	return ok
}

// Table exposes the binding table.
func (d *Dispatcher) Table() *keymap.Table { return d.table }

// DispatchKey dispatches a key press along the registry's current chain.
func (d *Dispatcher) DispatchKey(msg tea.KeyPressMsg) Result {
	return d.Dispatch(keymap.FromKey(msg), d.registry.Chain())
}

// Dispatch resolves chord at each node of chain and invokes the first
// matching handler.
func (d *Dispatcher) Dispatch(chord keymap.Chord, chain []focus.Handle) Result {
	span := telemetry.Span(d.tracer, "dispatch.key", attribute.String("chord", chord.String()))
	defer span.End()

	for depth, node := range chain {
		action, ok := d.table.Lookup(chord, d.context(node))
		if !ok {
			continue
		}
		h, ok := d.handlers[node][action]
		if !ok {
			continue
		}
		events.Dispatch.Handled(chord.String(), string(action), uint64(node), depth)
		span.SetAttributes(attribute.String("action", string(action)), attribute.Int("depth", depth))
		return Result{Handled: true, Action: action, Node: node, Cmd: h(action)}
	}
	events.Dispatch.Unhandled(chord.String(), len(chain))
	return Result{}
}

// DispatchAction bubbles an already resolved action along chain. Menu items
// use this to run their action against the element that owns the menu.
func (d *Dispatcher) DispatchAction(action keymap.Action, chain []focus.Handle) Result {
	span := telemetry.Span(d.tracer, "dispatch.action", attribute.String("action", string(action)))
	defer span.End()

	for depth, node := range chain {
		h, ok := d.handlers[node][action]
		if !ok {
			continue
		}
		events.Dispatch.Handled("", string(action), uint64(node), depth)
		return Result{Handled: true, Action: action, Node: node, Cmd: h(action)}
	}
	events.Dispatch.Unhandled(string(action), len(chain))
	return Result{Action: action}
}

func (d *Dispatcher) context(node focus.Handle) string {
	if d.registry == nil {
		return keymap.GlobalContext
	}
	return d.registry.Context(node)
}
