package state

// MoveCursorDown highlights the next selectable node, wrapping past the end.
// With nothing highlighted it lands on the first selectable node.
func (l *Level) MoveCursorDown() bool {
	return l.step(1)
}

// MoveCursorUp highlights the previous selectable node, wrapping past the
// start. With nothing highlighted it lands on the last selectable node.
func (l *Level) MoveCursorUp() bool {
	return l.step(-1)
}

func (l *Level) step(dir int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = -1
		return false
	}
	old := l.Cursor
	start := l.Cursor
	if start < 0 || start >= n {
		if dir > 0 {
			start = -1
		} else {
			start = n
		}
	}
	for i := 1; i <= n; i++ {
		idx := ((start+dir*i)%n + n) % n
		if l.Items[idx].Selectable() {
			l.Cursor = idx
			return l.Cursor != old
		}
	}
	l.Cursor = -1
	return old != -1
}

// MoveCursorHome highlights the first selectable node.
func (l *Level) MoveCursorHome() bool {
	old := l.Cursor
	l.Cursor = -1
	if !l.step(1) {
		l.Cursor = old
		return false
	}
	return old != l.Cursor
}

// MoveCursorEnd highlights the last selectable node.
func (l *Level) MoveCursorEnd() bool {
	old := l.Cursor
	l.Cursor = -1
	if !l.step(-1) {
		l.Cursor = old
		return false
	}
	return old != l.Cursor
}

// Select highlights the node at idx when it is selectable.
func (l *Level) Select(idx int) bool {
	if idx < 0 || idx >= len(l.Items) || !l.Items[idx].Selectable() {
		return false
	}
	old := l.Cursor
	l.Cursor = idx
	return old != idx
}

// ClearCursor removes the highlight.
func (l *Level) ClearCursor() {
	l.Cursor = -1
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 || maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < 0 {
		return
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	upper := l.ViewportOffset + maxVisible - 1
	if l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
		if l.ViewportOffset > maxOffset {
			l.ViewportOffset = maxOffset
		}
	}
}
