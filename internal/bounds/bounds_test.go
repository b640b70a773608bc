package bounds

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatic(t *testing.T) {
	src := Static{
		"button": image.Rect(2, 3, 10, 4),
		"empty":  image.Rect(5, 5, 5, 5),
	}
	r, ok := src.BoundsOf("button")
	assert.True(t, ok)
	assert.Equal(t, image.Rect(2, 3, 10, 4), r)

	_, ok = src.BoundsOf("empty")
	assert.False(t, ok)
	_, ok = src.BoundsOf("missing")
	assert.False(t, ok)
}

func TestLayered(t *testing.T) {
	first := Static{"a": image.Rect(0, 0, 1, 1)}
	second := Static{"a": image.Rect(5, 5, 6, 6), "b": image.Rect(1, 1, 2, 2)}
	src := Layered{nil, first, second}

	r, ok := src.BoundsOf("a")
	assert.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 1, 1), r)

	r, ok = src.BoundsOf("b")
	assert.True(t, ok)
	assert.Equal(t, image.Rect(1, 1, 2, 2), r)

	_, ok = src.BoundsOf("c")
	assert.False(t, ok)
}

func TestZonesUnknownID(t *testing.T) {
	z := NewZones()
	_, ok := z.BoundsOf("never-drawn")
	assert.False(t, ok)
	assert.Equal(t, "plain", z.Scan(z.Mark("x", "plain")))
}
