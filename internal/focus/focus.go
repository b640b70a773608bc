// Package focus tracks focusable nodes and the chain from the focused node up
// to the root of the element tree.
package focus

import "github.com/atomicstack/overlaykit/internal/logging/events"

// Handle identifies a focusable node. The zero Handle means "no node".
type Handle uint64

type node struct {
	parent  Handle
	context string
}

// Registry owns the node tree. Views own the handles they create; everything
// else stores handles as plain ids.
type Registry struct {
	next    Handle
	nodes   map[Handle]*node
	focused Handle

	// OnChange, when set, is called after focus moves.
	OnChange func(from, to Handle)
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[Handle]*node)}
}

// New creates a node under parent. Pass 0 for a root.
func (r *Registry) New(parent Handle) Handle {
	if _, ok := r.nodes[parent]; !ok {
		parent = 0
	}
	r.next++
	h := r.next
	r.nodes[h] = &node{parent: parent}
	return h
}

// SetContext sets the key context used when resolving bindings at h.
func (r *Registry) SetContext(h Handle, context string) {
	if n, ok := r.nodes[h]; ok {
		n.context = context
	}
}

// Context returns the key context of h.
func (r *Registry) Context(h Handle) string {
	if n, ok := r.nodes[h]; ok {
		return n.context
	}
	return ""
}

// Parent returns the parent of h, or 0 for roots and unknown handles.
func (r *Registry) Parent(h Handle) Handle {
	if n, ok := r.nodes[h]; ok {
		return n.parent
	}
	return 0
}

// Contains reports whether h is a live node.
func (r *Registry) Contains(h Handle) bool {
	_, ok := r.nodes[h]
	return ok
}

// Focus moves focus to h. Unknown handles are ignored.
func (r *Registry) Focus(h Handle) bool {
	if _, ok := r.nodes[h]; !ok {
		return false
	}
	from := r.focused
	r.focused = h
	if from != h {
		events.Dispatch.Focus(uint64(from), uint64(h))
		if r.OnChange != nil {
			r.OnChange(from, h)
		}
	}
	return true
}

// Focused returns the focused handle.
func (r *Registry) Focused() Handle { return r.focused }

// IsFocused reports whether h or one of its descendants holds focus.
func (r *Registry) IsFocused(h Handle) bool {
	for _, id := range r.Chain() {
		if id == h {
			return true
		}
	}
	return false
}

// Chain returns the focus chain from the focused node to the root.
func (r *Registry) Chain() []Handle {
	return r.ChainFrom(r.focused)
}

// ChainFrom returns the path from h to its root.
func (r *Registry) ChainFrom(h Handle) []Handle {
	var chain []Handle
	for h != 0 {
		n, ok := r.nodes[h]
		if !ok {
			break
		}
		chain = append(chain, h)
		h = n.parent
	}
	return chain
}

// Release removes h and its descendants. If focus was inside the released
// subtree it moves to the nearest surviving ancestor.
func (r *Registry) Release(h Handle) {
	n, ok := r.nodes[h]
	if !ok {
		return
	}
	refocus := r.IsFocused(h)
	parent := n.parent
	r.release(h)
	if refocus {
		if parent != 0 {
			r.Focus(parent)
		} else {
			from := r.focused
			r.focused = 0
			if r.OnChange != nil {
				r.OnChange(from, 0)
			}
		}
	}
}

func (r *Registry) release(h Handle) {
	for id, n := range r.nodes {
		if n.parent == h {
			r.release(id)
		}
	}
	delete(r.nodes, h)
}
