package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/overlaykit/internal/testutil"
)

func TestOverlayAtReplacesCells(t *testing.T) {
	got := overlayAt("abcdef\nghijkl", "XY", 2, 1)
	if got != "abcdef\nghXYkl" {
		t.Fatalf("unexpected composite %q", got)
	}
	got = overlayAt("ab", "Z", 4, 2)
	if got != "ab\n\n    Z" {
		t.Fatalf("expected rows and columns to be padded, got %q", got)
	}
}

func TestRenderShowsStory(t *testing.T) {
	h := newStoryHarness(t)
	view := ansi.Strip(h.View())
	for _, want := range []string{"Popup Story", "[ ] Use Window Popover", "Top Left", "Top Right", "Popup with Form", "Mouse Right Click", "Right click to open ContextMenu"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != 24 {
		t.Fatalf("expected 24 rows, got %d", lines)
	}
}

func TestRenderCompositesFloatingPopover(t *testing.T) {
	h := newStoryHarness(t)
	h.Send(testutil.Click(1, 4))
	lines := strings.Split(ansi.Strip(h.View()), "\n")
	if !strings.Contains(lines[5], "Hello, this is a Popover.") {
		t.Fatalf("expected popover text on row 5, got %q", lines[5])
	}
	if !strings.HasPrefix(lines[4], "╭") {
		t.Fatalf("expected popover border at the trigger's corner, got %q", lines[4])
	}
}

func TestRenderDocksPopoverInWindowMode(t *testing.T) {
	h := newStoryHarness(t, func(o *Options) { o.WindowMode = true })
	h.Send(testutil.Click(1, 4))
	lines := strings.Split(ansi.Strip(h.View()), "\n")
	if !strings.Contains(lines[dockTop+2], "Hello, this is a Popover.") {
		t.Fatalf("expected docked popover text below the panel rule, got %q", lines[dockTop+2])
	}
	if !strings.Contains(lines[4], "Top Left") {
		t.Fatalf("docked popover must not cover its trigger, got %q", lines[4])
	}
}

func TestFooterFollowsFocus(t *testing.T) {
	h := newStoryHarness(t, func(o *Options) { o.ShowFooter = true })
	view := ansi.Strip(h.View())
	if !strings.Contains(view, "copy") {
		t.Fatalf("expected story help in footer:\n%s", view)
	}
	h.Send(testutil.Click(1, 6))
	view = ansi.Strip(h.View())
	if !strings.Contains(view, "next") {
		t.Fatalf("expected menu help in footer:\n%s", view)
	}
}

func TestMenuViewShowsCheckAndShortcuts(t *testing.T) {
	h := newStoryHarness(t, func(o *Options) { o.WindowMode = true })
	h.Send(testutil.Click(1, 6))
	content, ok := h.Model().Overlays().Content(idPopupMenu)
	if !ok {
		t.Fatalf("expected popup menu content")
	}
	view := ansi.Strip(content.View())
	if !strings.Contains(view, "✓ Window Mode") {
		t.Fatalf("expected checked window mode item:\n%s", view)
	}
	if !strings.Contains(view, "cmd-c") {
		t.Fatalf("expected copy shortcut hint:\n%s", view)
	}
	size := h.Model().surfaces[idPopupMenu].menu.Size()
	if lines := strings.Split(view, "\n"); len(lines) != size.Y {
		t.Fatalf("expected %d rows, got %d", size.Y, len(lines))
	}
}
