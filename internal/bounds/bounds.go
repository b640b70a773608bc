// Package bounds answers "where was element X drawn in the last frame".
package bounds

import (
	"image"
	"sync"

	zone "github.com/lrstanley/bubblezone/v2"
)

// Source resolves the on-screen bounds of a rendered element. The result is
// only meaningful after the current frame has been laid out; ok is false for
// elements that were not drawn.
type Source interface {
	BoundsOf(id string) (image.Rectangle, bool)
}

// Static is a fixed id→rect table.
type Static map[string]image.Rectangle

// BoundsOf implements Source.
func (s Static) BoundsOf(id string) (image.Rectangle, bool) {
	r, ok := s[id]
	if !ok || r.Empty() {
		return image.Rectangle{}, false
	}
	return r, true
}

var initOnce sync.Once

// Zones records element bounds with bubblezone markers. Mark wraps rendered
// elements during View; Scan strips the markers from the final frame and
// records their positions.
type Zones struct{}

// NewZones initialises the global zone manager.
func NewZones() *Zones {
	initOnce.Do(zone.NewGlobal)
	return &Zones{}
}

// Mark wraps s so its position is recorded under id.
func (*Zones) Mark(id, s string) string {
	return zone.Mark(id, s)
}

// Scan strips markers from the finished frame.
func (*Zones) Scan(frame string) string {
	return zone.Scan(frame)
}

// BoundsOf implements Source. bubblezone reports inclusive end cells; the
// returned rectangle is half-open.
func (*Zones) BoundsOf(id string) (image.Rectangle, bool) {
	info := zone.Get(id)
	if info == nil || info.IsZero() {
		return image.Rectangle{}, false
	}
	return image.Rect(info.StartX, info.StartY, info.EndX+1, info.EndY+1), true
}

// Layered consults each source in order and returns the first hit.
type Layered []Source

// BoundsOf implements Source.
func (l Layered) BoundsOf(id string) (image.Rectangle, bool) {
	for _, src := range l {
		if src == nil {
			continue
		}
		if r, ok := src.BoundsOf(id); ok {
			return r, true
		}
	}
	return image.Rectangle{}, false
}
