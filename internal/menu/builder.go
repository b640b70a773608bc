package menu

import "github.com/atomicstack/overlaykit/internal/keymap"

// Builder accumulates nodes in call order. Every method returns the builder
// so calls chain.
type Builder struct {
	nodes []Node
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder { return &Builder{} }

// Build runs fn against a fresh builder and returns the tree.
func Build(fn func(*Builder)) Tree {
	b := NewBuilder()
	if fn != nil {
		fn(b)
	}
	return b.Tree()
}

// Item appends an action item.
func (b *Builder) Item(label string, action keymap.Action) *Builder {
	return b.append(Node{Kind: KindAction, Label: label, Action: action})
}

// ItemWithIcon appends an action item drawn with icon.
func (b *Builder) ItemWithIcon(label string, icon Icon, action keymap.Action) *Builder {
	return b.append(Node{Kind: KindAction, Label: label, Action: action, Icon: icon})
}

// Separator appends a separator. Separators at the start of a menu or
// directly after another separator are dropped.
func (b *Builder) Separator() *Builder {
	if len(b.nodes) == 0 || b.nodes[len(b.nodes)-1].Kind == KindSeparator {
		return b
	}
	return b.append(Node{Kind: KindSeparator})
}

// Check appends a checkable item showing the checked snapshot. Activating it
// dispatches action; the menu never flips the value itself.
func (b *Builder) Check(label string, checked bool, action keymap.Action) *Builder {
	return b.append(Node{Kind: KindCheckable, Label: label, Checked: checked, Action: action})
}

// Link appends an item that opens uri.
func (b *Builder) Link(label string, icon Icon, uri string) *Builder {
	return b.append(Node{Kind: KindLink, Label: label, Icon: icon, URI: uri})
}

// Submenu appends a nested menu built by fn.
func (b *Builder) Submenu(label string, fn func(*Builder)) *Builder {
	child := Build(fn)
	return b.append(Node{Kind: KindSubmenu, Label: label, Icon: IconChevronRight, Children: child.nodes})
}

// Tree finalises the builder. Trailing separators are dropped.
func (b *Builder) Tree() Tree {
	nodes := CloneNodes(b.nodes)
	for len(nodes) > 0 && nodes[len(nodes)-1].Kind == KindSeparator {
		nodes = nodes[:len(nodes)-1]
	}
	assignIDs(nodes)
	return Tree{nodes: nodes}
}

func (b *Builder) append(n Node) *Builder {
	b.nodes = append(b.nodes, n)
	return b
}
