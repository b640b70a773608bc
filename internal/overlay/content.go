package overlay

import (
	"errors"
	"image"

	"charm.land/lipgloss/v2"
)

var (
	// ErrNoContent is reported when a provider yields nothing to show.
	ErrNoContent = errors.New("overlay has no content")
	// ErrContentPanic wraps a panic raised while building content.
	ErrContentPanic = errors.New("overlay content builder panicked")
	// ErrUnknownOverlay is reported for ids that were never declared.
	ErrUnknownOverlay = errors.New("unknown overlay")
)

// Content is what an open overlay displays.
type Content interface {
	View() string
}

// Sizer lets content report its size instead of having it measured from View.
type Sizer interface {
	Size() image.Point
}

// BuildContext is passed to providers when an overlay opens.
type BuildContext struct {
	ID     ID
	Parent ID
}

// Provider supplies content when an overlay opens. The two implementations
// are Builder, which produces fresh content on every open, and Owned, which
// hands back the same externally owned view every time.
type Provider interface {
	provide(BuildContext) (Content, error)
}

// Builder builds stateless content. It runs on every open.
type Builder func(BuildContext) (Content, error)

func (b Builder) provide(ctx BuildContext) (Content, error) {
	if b == nil {
		return nil, ErrNoContent
	}
	return b(ctx)
}

// Static wraps a plain view function as a Builder.
func Static(view func() string) Builder {
	return func(BuildContext) (Content, error) {
		if view == nil {
			return nil, ErrNoContent
		}
		return staticContent(view()), nil
	}
}

type staticContent string

func (s staticContent) View() string { return string(s) }

// Owned reuses a view owned by the caller. The manager never rebuilds or
// discards it, so state held by the view survives close and reopen.
type Owned struct {
	Content Content
}

func (o Owned) provide(BuildContext) (Content, error) {
	if o.Content == nil {
		return nil, ErrNoContent
	}
	return o.Content, nil
}

func measure(c Content) image.Point {
	if s, ok := c.(Sizer); ok {
		return s.Size()
	}
	view := c.View()
	return image.Pt(lipgloss.Width(view), lipgloss.Height(view))
}
