package state

import "github.com/atomicstack/overlaykit/internal/menu"

// Level encapsulates the state of one open menu surface: its nodes, the
// type-to-filter query, the highlighted row and the viewport.
type Level struct {
	ID             string
	Title          string
	Items          []menu.Node
	Full           []menu.Node
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewLevel constructs a Level with nothing highlighted.
func NewLevel(id, title string, nodes []menu.Node) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
	}
	l.UpdateItems(nodes)
	return l
}

// IndexOf returns the index of the node with the given ID among visible items.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the nodes, keeping the highlighted node when it
// survives.
func (l *Level) UpdateItems(nodes []menu.Node) {
	var keep string
	if cur, ok := l.Current(); ok {
		keep = cur.ID
	}
	prevOffset := l.ViewportOffset
	l.Full = menu.CloneNodes(nodes)
	l.applyFilter()
	if idx := l.IndexOf(keep); idx >= 0 {
		l.Cursor = idx
	}
	if len(l.Items) == 0 || prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// Current returns the highlighted node.
func (l *Level) Current() (menu.Node, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Node{}, false
	}
	return l.Items[l.Cursor], true
}
