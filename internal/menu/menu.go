// Package menu models menu trees: ordered action items, separators,
// checkable items, links and nested submenus, assembled with a fluent
// Builder.
package menu

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/atomicstack/overlaykit/internal/keymap"
)

// Kind tags the variant held by a Node.
type Kind int

const (
	KindAction Kind = iota
	KindSeparator
	KindCheckable
	KindLink
	KindSubmenu
)

func (k Kind) String() string {
	switch k {
	case KindSeparator:
		return "separator"
	case KindCheckable:
		return "checkable"
	case KindLink:
		return "link"
	case KindSubmenu:
		return "submenu"
	default:
		return "action"
	}
}

// Icon names a glyph drawn before a label.
type Icon string

const (
	IconNone         Icon = ""
	IconSearch       Icon = "search"
	IconGitHub       Icon = "github"
	IconCopy         Icon = "copy"
	IconCut          Icon = "cut"
	IconPaste        Icon = "paste"
	IconSettings     Icon = "settings"
	IconEllipsis     Icon = "ellipsis"
	IconCheck        Icon = "check"
	IconChevronRight Icon = "chevron-right"
	IconExternal     Icon = "external-link"
)

// Node is one menu entry. Which fields are meaningful depends on Kind:
// Action items use Label, Action and Icon; Checkable items add Checked;
// Links use Label, Icon and URI; Submenus use Label and Children.
type Node struct {
	ID       string
	Kind     Kind
	Label    string
	Action   keymap.Action
	Icon     Icon
	Checked  bool
	URI      string
	Children []Node
}

// Selectable reports whether keyboard navigation may land on the node.
func (n Node) Selectable() bool { return n.Kind != KindSeparator }

// Tree is an immutable, ordered list of nodes.
type Tree struct {
	nodes []Node
}

// Nodes returns a copy of the top-level nodes.
func (t Tree) Nodes() []Node {
	return CloneNodes(t.nodes)
}

// Len returns the number of top-level nodes.
func (t Tree) Len() int { return len(t.nodes) }

// Empty reports whether the tree has no selectable nodes.
func (t Tree) Empty() bool {
	for _, n := range t.nodes {
		if n.Selectable() {
			return false
		}
	}
	return true
}

// Find returns the node at a "/"-separated ID path.
func (t Tree) Find(path string) (Node, bool) {
	nodes := t.nodes
	parts := strings.Split(path, "/")
	for i, part := range parts {
		found := false
		for _, n := range nodes {
			if n.ID != part {
				continue
			}
			if i == len(parts)-1 {
				return n, true
			}
			nodes = n.Children
			found = true
			break
		}
		if !found {
			return Node{}, false
		}
	}
	return Node{}, false
}

// CloneNodes deep-copies nodes.
func CloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
		out[i].Children = CloneNodes(n.Children)
	}
	return out
}

// slug turns a label into a stable node ID.
func slug(label string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func assignIDs(nodes []Node) {
	seen := make(map[string]int, len(nodes))
	for i := range nodes {
		base := slug(nodes[i].Label)
		if nodes[i].Kind == KindSeparator || base == "" {
			base = nodes[i].Kind.String()
		}
		id := base
		if n := seen[base]; n > 0 {
			id = base + "-" + strconv.Itoa(n+1)
		}
		seen[base]++
		nodes[i].ID = id
	}
}
