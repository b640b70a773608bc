package table

import "testing"

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"cmd-c", "story::Copy", "global"},
		{"escape", "menu::Cancel", "PopupMenu"},
	}
	got := Format(rows, []Alignment{AlignRight, AlignLeft})
	want := []string{
		" cmd-c  story::Copy   global",
		"escape  menu::Cancel  PopupMenu",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatMeasuresCells(t *testing.T) {
	got := Format([][]string{{"⌕", "x"}, {"ab", "y"}}, nil)
	if got[0] != "⌕   x" {
		t.Fatalf("expected single-cell glyph padded to 2, got %q", got[0])
	}
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
