package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/overlaykit/internal/menu"
)

// SetFilter updates the filter query and cursor position. While a query is
// active separators are hidden and the best match is highlighted; clearing the
// query restores the previously highlighted row.
func (l *Level) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(l.Filter)
	restore := ""
	if trimmed != "" && prevTrimmed == "" {
		l.LastCursor = l.Cursor
	}
	if trimmed == "" && prevTrimmed != "" && l.LastCursor >= 0 && l.LastCursor < len(l.Full) {
		restore = l.Full[l.LastCursor].ID
	}
	l.Filter = query
	runes := []rune(l.Filter)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	l.FilterCursor = cursor
	l.applyFilter()
	switch {
	case trimmed != "":
		l.Cursor = BestMatchIndex(l.Items, trimmed)
	case prevTrimmed != "":
		l.Cursor = l.IndexOf(restore)
		l.LastCursor = -1
	}
}

// ClearFilter drops the query.
func (l *Level) ClearFilter() bool {
	if l.Filter == "" {
		return false
	}
	l.SetFilter("", 0)
	return true
}

func (l *Level) applyFilter() {
	l.Items = FilterNodes(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = -1
		l.ViewportOffset = 0
		return
	}
	if l.Cursor >= len(l.Items) || (l.Cursor >= 0 && !l.Items[l.Cursor].Selectable()) {
		l.Cursor = -1
	}
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (l *Level) FilterCursorPos() int {
	runes := []rune(l.Filter)
	if l.FilterCursor < 0 {
		return 0
	}
	if l.FilterCursor > len(runes) {
		return len(runes)
	}
	return l.FilterCursor
}

// InsertFilterText inserts text into the filter at the cursor position.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	l.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes a rune before the filter cursor.
func (l *Level) DeleteFilterRuneBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	l.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the cursor.
func (l *Level) DeleteFilterWordBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i], runes[pos:]...)
	l.SetFilter(string(updated), i)
	return true
}

// FilterNodes returns the selectable nodes whose labels match query. An empty
// query returns every node, separators included.
func FilterNodes(nodes []menu.Node, query string) []menu.Node {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return menu.CloneNodes(nodes)
	}
	candidates := make([]menu.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Selectable() {
			candidates = append(candidates, n)
		}
	}
	labels := make([]string, len(candidates))
	for i, n := range candidates {
		labels[i] = n.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	matches := make(map[int]struct{}, len(ranks))
	for _, rank := range ranks {
		matches[rank.OriginalIndex] = struct{}{}
	}
	filtered := make([]menu.Node, 0, len(matches))
	for idx, n := range candidates {
		if _, ok := matches[idx]; ok {
			filtered = append(filtered, n)
		}
	}
	return menu.CloneNodes(filtered)
}

// BestMatchIndex returns the best index for the query among nodes, or -1.
func BestMatchIndex(nodes []menu.Node, query string) int {
	trimmed := strings.TrimSpace(query)
	first := -1
	for i, n := range nodes {
		if n.Selectable() {
			first = i
			break
		}
	}
	if trimmed == "" || first < 0 {
		return first
	}
	lower := strings.ToLower(trimmed)
	for i, n := range nodes {
		if n.Selectable() && strings.EqualFold(n.Label, trimmed) {
			return i
		}
	}
	for i, n := range nodes {
		if n.Selectable() && strings.HasPrefix(strings.ToLower(n.Label), lower) {
			return i
		}
	}
	labels := make([]string, len(nodes))
	for i, n := range nodes {
		if n.Selectable() {
			labels[i] = n.Label
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return first
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
