// Package anchor computes where a floating surface goes relative to the
// element that triggered it.
package anchor

import (
	"fmt"
	"image"
	"strings"
)

// Corner names the surface corner pinned to the same corner of the trigger.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

func (c Corner) String() string {
	switch c {
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "top-left"
	}
}

// ParseCorner accepts "top-left", "topleft", "top_left" and similar.
func ParseCorner(s string) (Corner, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case "", "topleft":
		return TopLeft, nil
	case "topright":
		return TopRight, nil
	case "bottomleft":
		return BottomLeft, nil
	case "bottomright":
		return BottomRight, nil
	}
	return TopLeft, fmt.Errorf("unknown corner %q", s)
}

// Mode is the rendering strategy chosen for a surface.
type Mode int

const (
	// Floating surfaces are drawn on a layer above the window at Origin.
	Floating Mode = iota
	// Docked surfaces are laid out by the host inside the trigger's window;
	// Origin is meaningless.
	Docked
)

func (m Mode) String() string {
	if m == Docked {
		return "docked"
	}
	return "floating"
}

// Placement is the resolved position of a surface.
type Placement struct {
	Mode   Mode
	Corner Corner
	Origin image.Point
	Size   image.Point
}

// Rect returns the surface bounds for floating placements.
func (p Placement) Rect() image.Rectangle {
	return image.Rectangle{Min: p.Origin, Max: p.Origin.Add(p.Size)}
}

// Policy controls overflow handling.
type Policy struct {
	// Clamp shifts floating surfaces back inside the viewport.
	Clamp bool
	// FlipSubmenus opens a submenu to the left of its row when it would
	// overflow the right edge.
	FlipSubmenus bool
}

// DefaultPolicy clamps and flips.
func DefaultPolicy() Policy {
	return Policy{Clamp: true, FlipSubmenus: true}
}

// Resolve places a surface of size so that its corner coincides with the
// matching corner of trigger. Embedded surfaces get a docking directive.
func Resolve(trigger image.Rectangle, corner Corner, size image.Point, windowEmbedded bool) Placement {
	if windowEmbedded {
		return Placement{Mode: Docked, Corner: corner, Size: size}
	}
	var origin image.Point
	switch corner {
	case TopRight:
		origin = image.Pt(trigger.Max.X-size.X, trigger.Min.Y)
	case BottomLeft:
		origin = image.Pt(trigger.Min.X, trigger.Max.Y-size.Y)
	case BottomRight:
		origin = image.Pt(trigger.Max.X-size.X, trigger.Max.Y-size.Y)
	default:
		origin = trigger.Min
	}
	return Placement{Mode: Floating, Corner: corner, Origin: origin, Size: size}
}

// AtPointer places a context menu with its top-left corner at the pointer.
func AtPointer(pointer image.Point, size image.Point, windowEmbedded bool) Placement {
	if windowEmbedded {
		return Placement{Mode: Docked, Corner: TopLeft, Size: size}
	}
	return Placement{Mode: Floating, Corner: TopLeft, Origin: pointer, Size: size}
}

// Submenu places a nested menu to the right of row, flipping to the left
// when policy allows and the right side would overflow viewport.
func Submenu(row image.Rectangle, size image.Point, viewport image.Rectangle, policy Policy) Placement {
	p := Placement{Mode: Floating, Corner: TopLeft, Origin: image.Pt(row.Max.X, row.Min.Y), Size: size}
	if policy.FlipSubmenus && !viewport.Empty() && p.Origin.X+size.X > viewport.Max.X {
		if left := row.Min.X - size.X; left >= viewport.Min.X {
			p.Origin.X = left
			p.Corner = TopRight
		}
	}
	if policy.Clamp {
		p = Clamp(p, viewport)
	}
	return p
}

// Clamp shifts a floating placement so it lies within viewport where the
// surface fits. Surfaces larger than the viewport keep their top-left edge
// visible.
func Clamp(p Placement, viewport image.Rectangle) Placement {
	if p.Mode != Floating || viewport.Empty() {
		return p
	}
	if p.Origin.X+p.Size.X > viewport.Max.X {
		p.Origin.X = viewport.Max.X - p.Size.X
	}
	if p.Origin.Y+p.Size.Y > viewport.Max.Y {
		p.Origin.Y = viewport.Max.Y - p.Size.Y
	}
	if p.Origin.X < viewport.Min.X {
		p.Origin.X = viewport.Min.X
	}
	if p.Origin.Y < viewport.Min.Y {
		p.Origin.Y = viewport.Min.Y
	}
	return p
}
