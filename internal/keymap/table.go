package keymap

import (
	"fmt"

	"github.com/atomicstack/overlaykit/internal/logging/events"
)

// Action identifies a logical command independently of the input that
// triggered it. Actions are namespaced by convention ("story::Copy").
type Action string

// GlobalContext is the fallback scope consulted after a node's own context.
const GlobalContext = ""

// Binding maps a chord to an action within a context.
type Binding struct {
	Chord   Chord
	Action  Action
	Context string
}

// Spec is the textual form of a binding, as passed to BindKeys and read from
// keymap files.
type Spec struct {
	Keys    string `toml:"keys" yaml:"keys"`
	Action  Action `toml:"action" yaml:"action"`
	Context string `toml:"context" yaml:"context"`
}

// NewBinding parses keys into a binding.
func NewBinding(keys string, action Action, context string) (Binding, error) {
	chord, err := ParseChord(keys)
	if err != nil {
		return Binding{}, err
	}
	return Binding{Chord: chord, Action: action, Context: context}, nil
}

type tableKey struct {
	chord   Chord
	context string
}

// Table holds the process-wide key bindings. It is built once at startup and
// passed by reference to the dispatcher.
type Table struct {
	bindings map[tableKey]Binding
	order    []tableKey
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{bindings: make(map[tableKey]Binding)}
}

// Bind registers b. A second binding for the same chord and context replaces
// the first.
func (t *Table) Bind(b Binding) {
	key := tableKey{chord: b.Chord, context: b.Context}
	if prev, ok := t.bindings[key]; ok {
		events.Keymap.Overwrite(b.Chord.String(), b.Context, string(prev.Action), string(b.Action))
	} else {
		t.order = append(t.order, key)
	}
	t.bindings[key] = b
	events.Keymap.Bind(b.Chord.String(), b.Context, string(b.Action))
}

// BindKeys parses and binds specs in order.
func (t *Table) BindKeys(specs []Spec) error {
	for i, spec := range specs {
		b, err := NewBinding(spec.Keys, spec.Action, spec.Context)
		if err != nil {
			return fmt.Errorf("binding %d (%s): %w", i, spec.Action, err)
		}
		t.Bind(b)
	}
	return nil
}

// Lookup resolves chord within context, falling back to the global context.
func (t *Table) Lookup(chord Chord, context string) (Action, bool) {
	if t == nil || chord.IsZero() {
		return "", false
	}
	if b, ok := t.bindings[tableKey{chord: chord, context: context}]; ok {
		return b.Action, true
	}
	if context == GlobalContext {
		return "", false
	}
	if b, ok := t.bindings[tableKey{chord: chord, context: GlobalContext}]; ok {
		return b.Action, true
	}
	return "", false
}

// Bindings returns the effective bindings in first-registration order.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.bindings[key])
	}
	return out
}

// KeysFor returns the chords bound to action in context or globally.
func (t *Table) KeysFor(action Action, context string) []Chord {
	var out []Chord
	for _, key := range t.order {
		b := t.bindings[key]
		if b.Action != action {
			continue
		}
		if b.Context == context || b.Context == GlobalContext {
			out = append(out, b.Chord)
		}
	}
	return out
}

// Len returns the number of distinct chord+context bindings.
func (t *Table) Len() int { return len(t.order) }
