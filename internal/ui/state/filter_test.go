package state

import (
	"testing"

	"github.com/atomicstack/overlaykit/internal/menu"
)

func storyMenu(b *menu.Builder) {
	b.Item("Copy", "copy").
		Item("Cut", "cut").
		Item("Paste", "paste").
		Separator().
		ItemWithIcon("Search", menu.IconSearch, "search")
}

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	level := newTestLevel(storyMenu)
	level.Select(2)
	level.SetFilter("sea", len("sea"))

	if level.Filter != "sea" {
		t.Fatalf("expected filter persisted, got %q", level.Filter)
	}
	if len(level.Items) != 1 || level.Items[0].Label != "Search" {
		t.Fatalf("expected only Search to match, got %#v", level.Items)
	}
	if level.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", level.Cursor)
	}

	level.SetFilter("", 0)
	if cur, _ := level.Current(); cur.Label != "Paste" {
		t.Fatalf("expected Paste restored, got %q", cur.Label)
	}
	if level.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", level.LastCursor)
	}
	if len(level.Items) != 5 {
		t.Fatalf("expected separator back after clearing, got %d items", len(level.Items))
	}
}

func TestFilterHidesSeparators(t *testing.T) {
	nodes := FilterNodes(menu.Build(storyMenu).Nodes(), "c")
	for _, n := range nodes {
		if n.Kind == menu.KindSeparator {
			t.Fatalf("expected separators hidden while filtering")
		}
	}
	if len(nodes) == 0 {
		t.Fatalf("expected matches for 'c'")
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	level := newTestLevel(storyMenu)

	if !level.InsertFilterText("cu") {
		t.Fatal("expected insert to succeed")
	}
	if level.Filter != "cu" || level.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", level.Filter, level.FilterCursor)
	}
	if cur, _ := level.Current(); cur.Label != "Cut" {
		t.Fatalf("expected Cut as best match, got %q", cur.Label)
	}

	if !level.DeleteFilterRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if level.Filter != "c" {
		t.Fatalf("expected filter 'c', got %q", level.Filter)
	}

	level.InsertFilterText(" pa")
	if !level.DeleteFilterWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if level.Filter != "c " {
		t.Fatalf("expected trailing word removed, got %q", level.Filter)
	}

	if !level.ClearFilter() {
		t.Fatal("expected clear to report a change")
	}
	if level.ClearFilter() {
		t.Fatal("expected second clear to be a no-op")
	}
}

func TestBestMatchIndex(t *testing.T) {
	nodes := menu.Build(storyMenu).Nodes()
	if idx := BestMatchIndex(nodes, ""); idx != 0 {
		t.Fatalf("expected first selectable for empty query, got %d", idx)
	}
	if idx := BestMatchIndex(nodes, "paste"); idx != 2 {
		t.Fatalf("expected exact match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(nodes, "se"); idx != 4 {
		t.Fatalf("expected prefix match index 4, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "x"); idx != -1 {
		t.Fatalf("expected -1 for no nodes, got %d", idx)
	}
}
