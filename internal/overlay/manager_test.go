package overlay

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/overlaykit/internal/anchor"
	"github.com/atomicstack/overlaykit/internal/bounds"
)

var viewport = image.Rect(0, 0, 80, 24)

type box struct {
	w, h int
}

func (b box) View() string {
	line := strings.Repeat("x", b.w)
	lines := make([]string, b.h)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func boxBuilder(w, h int) Builder {
	return func(BuildContext) (Content, error) { return box{w: w, h: h}, nil }
}

type form struct {
	text string
}

func (f *form) View() string { return "[" + f.text + "]" }

type recorder struct {
	transitions []Transition
}

func (r *recorder) observe(t Transition) { r.transitions = append(r.transitions, t) }

func (r *recorder) index(id ID, to State) int {
	for i, t := range r.transitions {
		if t.ID == id && t.To == to {
			return i
		}
	}
	return -1
}

func newTestManager(src bounds.Source) (*Manager, *recorder) {
	rec := &recorder{}
	m := NewManager(src, WithViewport(viewport), WithObserver(rec.observe))
	return m, rec
}

func TestOpenRunsStateMachine(t *testing.T) {
	m, rec := newTestManager(bounds.Static{"a": image.Rect(2, 2, 10, 3)})
	m.Declare(Spec{ID: "a", Provider: boxBuilder(5, 2)})

	require.True(t, m.Open("a"))
	assert.True(t, m.IsOpen("a"))
	require.True(t, m.Close("a"))
	assert.Equal(t, Closed, m.State("a"))

	assert.Equal(t, []Transition{
		{ID: "a", From: Closed, To: Opening},
		{ID: "a", From: Opening, To: Open},
		{ID: "a", From: Open, To: Closing},
		{ID: "a", From: Closing, To: Closed},
	}, rec.transitions)
	assert.False(t, m.Close("a"))
}

func TestOpenPlacesAtCorner(t *testing.T) {
	trigger := image.Rect(40, 10, 50, 11)
	m, _ := newTestManager(bounds.Static{"tr": trigger})
	m.Declare(Spec{ID: "tr", Corner: anchor.TopRight, Provider: boxBuilder(12, 3)})

	require.True(t, m.Open("tr"))
	p, ok := m.Placement("tr")
	require.True(t, ok)
	assert.Equal(t, anchor.Floating, p.Mode)
	assert.Equal(t, image.Rect(38, 10, 50, 13), p.Rect())
}

func TestRightButtonOverlayIgnoresLeftClick(t *testing.T) {
	m, rec := newTestManager(bounds.Static{"menu": image.Rect(60, 20, 75, 21)})
	m.Declare(Spec{ID: "menu", Button: ButtonRight, Corner: anchor.BottomRight, Provider: boxBuilder(10, 3)})

	res := m.HandleClick(Click{Point: image.Pt(62, 20), Button: ButtonLeft})
	assert.False(t, res.Consumed())
	assert.Equal(t, Closed, m.State("menu"))
	assert.Empty(t, rec.transitions)

	res = m.HandleClick(Click{Point: image.Pt(62, 20), Button: ButtonRight})
	assert.Equal(t, ID("menu"), res.Toggled)
	assert.True(t, res.Opened)
	assert.True(t, m.IsOpen("menu"))
}

func TestTopLevelMutualExclusion(t *testing.T) {
	m, rec := newTestManager(bounds.Static{
		"a": image.Rect(0, 0, 5, 1),
		"b": image.Rect(70, 0, 78, 1),
	})
	m.Declare(Spec{ID: "a", Root: "story", Provider: boxBuilder(4, 2)})
	m.Declare(Spec{ID: "b", Root: "story", Provider: boxBuilder(4, 2)})

	require.True(t, m.Open("a"))
	require.True(t, m.Open("b"))

	assert.Equal(t, Closed, m.State("a"))
	assert.True(t, m.IsOpen("b"))
	aClosed := rec.index("a", Closed)
	bOpening := rec.index("b", Opening)
	bOpen := rec.index("b", Open)
	require.NotEqual(t, -1, aClosed)
	assert.Less(t, aClosed, bOpening)
	assert.Less(t, aClosed, bOpen)
	assert.Equal(t, []ID{"b"}, m.Stack())
}

func TestDifferentRootsCoexist(t *testing.T) {
	m, _ := newTestManager(bounds.Static{})
	m.Declare(Spec{ID: "a", Root: "left", Provider: boxBuilder(1, 1)})
	m.Declare(Spec{ID: "b", Root: "right", Provider: boxBuilder(1, 1)})
	m.Open("a")
	m.Open("b")
	assert.True(t, m.IsOpen("a"))
	assert.True(t, m.IsOpen("b"))
}

func TestCascadeCloseArbitraryDepth(t *testing.T) {
	m, rec := newTestManager(bounds.Static{"root": image.Rect(0, 0, 4, 1)})
	m.Declare(Spec{ID: "root", Provider: boxBuilder(10, 4)})
	require.True(t, m.Open("root"))

	const depth = 6
	parent := ID("root")
	var chain []ID
	for i := 0; i < depth; i++ {
		id := ID(fmt.Sprintf("sub-%d", i))
		require.True(t, m.OpenChild(parent, Spec{ID: id, Provider: boxBuilder(8, 3)}, image.Rect(0, i, 10, i+1)))
		chain = append(chain, id)
		parent = id
	}
	got, ok := m.Parent("sub-3")
	require.True(t, ok)
	assert.Equal(t, ID("sub-2"), got)

	require.True(t, m.Close("root"))
	for _, id := range chain {
		assert.Equal(t, Closed, m.State(id), id)
	}
	assert.Empty(t, m.Stack())
	// deepest descendants close first
	assert.Less(t, rec.index("sub-5", Closed), rec.index("sub-0", Closed))
	assert.Less(t, rec.index("sub-0", Closed), rec.index("root", Closed))
}

func TestOpenChildClosesSiblings(t *testing.T) {
	m, _ := newTestManager(bounds.Static{})
	m.Declare(Spec{ID: "menu", Provider: boxBuilder(10, 4)})
	require.True(t, m.Open("menu"))
	require.True(t, m.OpenChild("menu", Spec{ID: "one", Provider: boxBuilder(5, 2)}, image.Rect(0, 1, 10, 2)))
	require.True(t, m.OpenChild("one", Spec{ID: "one-deep", Provider: boxBuilder(5, 2)}, image.Rect(0, 1, 10, 2)))
	require.True(t, m.OpenChild("menu", Spec{ID: "two", Provider: boxBuilder(5, 2)}, image.Rect(0, 2, 10, 3)))

	assert.Equal(t, Closed, m.State("one"))
	assert.Equal(t, Closed, m.State("one-deep"))
	assert.Equal(t, []ID{"two"}, m.Children("menu"))
	assert.False(t, m.OpenChild("closed-parent", Spec{ID: "x", Provider: boxBuilder(1, 1)}, image.Rectangle{}))
}

func TestSubmenuPlacedRightOfRow(t *testing.T) {
	m, _ := newTestManager(bounds.Static{})
	m.Declare(Spec{ID: "menu", Provider: boxBuilder(10, 4)})
	m.Open("menu")
	m.OpenChild("menu", Spec{ID: "settings", Provider: boxBuilder(6, 3)}, image.Rect(10, 5, 30, 6))
	p, ok := m.Placement("settings")
	require.True(t, ok)
	assert.Equal(t, image.Pt(30, 5), p.Origin)
}

func TestOwnedContentSurvivesReopen(t *testing.T) {
	f := &form{}
	m, _ := newTestManager(bounds.Static{"form": image.Rect(0, 20, 10, 21)})
	m.Declare(Spec{ID: "form", Corner: anchor.BottomLeft, Provider: Owned{Content: f}})

	require.True(t, m.Open("form"))
	c, ok := m.Content("form")
	require.True(t, ok)
	c.(*form).text = "hello"
	m.Close("form")

	require.True(t, m.Open("form"))
	c, ok = m.Content("form")
	require.True(t, ok)
	assert.Same(t, f, c)
	assert.Equal(t, "[hello]", c.View())
}

func TestBuilderRunsOnEveryOpen(t *testing.T) {
	builds := 0
	m, _ := newTestManager(bounds.Static{})
	m.Declare(Spec{ID: "p", Provider: Builder(func(BuildContext) (Content, error) {
		builds++
		return box{w: 2, h: 1}, nil
	})})
	m.Open("p")
	m.Open("p")
	m.Close("p")
	m.Open("p")
	assert.Equal(t, 2, builds)
}

func TestBuilderFailureLeavesClosed(t *testing.T) {
	m, rec := newTestManager(bounds.Static{})
	m.Declare(Spec{ID: "err", Provider: Builder(func(BuildContext) (Content, error) {
		return nil, errors.New("nope")
	})})
	m.Declare(Spec{ID: "panic", Provider: Builder(func(BuildContext) (Content, error) {
		panic("kaboom")
	})})
	m.Declare(Spec{ID: "nil", Provider: Owned{}})
	m.Declare(Spec{ID: "none"})

	for _, id := range []ID{"err", "panic", "nil", "none"} {
		assert.False(t, m.Open(id), id)
		assert.Equal(t, Closed, m.State(id), id)
		assert.Equal(t, Closed, rec.transitions[len(rec.transitions)-1].To, id)
	}
	assert.Empty(t, m.Stack())
}

func TestUnresolvedTriggerFallsBackToOrigin(t *testing.T) {
	m, _ := newTestManager(bounds.Static{"zero": image.Rect(5, 5, 5, 5)})
	m.Declare(Spec{ID: "missing", Corner: anchor.BottomRight, Provider: boxBuilder(6, 2)})
	m.Declare(Spec{ID: "zero", Corner: anchor.TopRight, Provider: boxBuilder(6, 2), Root: "other"})

	require.True(t, m.Open("missing"))
	p, _ := m.Placement("missing")
	assert.Equal(t, viewport.Min, p.Origin)

	require.True(t, m.Open("zero"))
	p, _ = m.Placement("zero")
	assert.Equal(t, viewport.Min, p.Origin)

	assert.False(t, m.Open("undeclared"))
}

func TestOutsideClickDismissesFloatingOnly(t *testing.T) {
	m, _ := newTestManager(bounds.Static{
		"float": image.Rect(0, 0, 5, 1),
		"dock":  image.Rect(10, 0, 15, 1),
	})
	m.Declare(Spec{ID: "float", Root: "a", Provider: boxBuilder(4, 2)})
	m.Declare(Spec{ID: "dock", Root: "b", WindowEmbedded: true, Provider: boxBuilder(4, 2)})
	m.Open("float")
	m.Open("dock")

	p, _ := m.Placement("dock")
	assert.Equal(t, anchor.Docked, p.Mode)

	res := m.HandleClick(Click{Point: image.Pt(50, 20)})
	assert.Equal(t, []ID{"float"}, res.Dismissed)
	assert.False(t, res.Consumed())
	assert.Equal(t, Closed, m.State("float"))
	assert.True(t, m.IsOpen("dock"))
}

func TestClickInsideContentIsNotDismissal(t *testing.T) {
	m, _ := newTestManager(bounds.Static{"a": image.Rect(10, 10, 20, 11)})
	m.Declare(Spec{ID: "a", Provider: boxBuilder(8, 4)})
	m.Open("a")

	res := m.HandleClick(Click{Point: image.Pt(12, 12)})
	assert.Equal(t, ID("a"), res.Inside)
	assert.True(t, m.IsOpen("a"))
}

func TestDockedContentUsesZoneBounds(t *testing.T) {
	src := bounds.Static{
		"a":         image.Rect(10, 0, 15, 1),
		ZoneID("a"): image.Rect(0, 15, 30, 20),
	}
	m, _ := newTestManager(src)
	m.Declare(Spec{ID: "a", WindowEmbedded: true, Provider: boxBuilder(8, 4)})
	m.Open("a")

	res := m.HandleClick(Click{Point: image.Pt(3, 16)})
	assert.Equal(t, ID("a"), res.Inside)
}

func TestTriggerClickToggles(t *testing.T) {
	m, _ := newTestManager(bounds.Static{"a": image.Rect(10, 10, 20, 11)})
	m.Declare(Spec{ID: "a", Provider: boxBuilder(4, 2)})

	res := m.HandleClick(Click{Point: image.Pt(11, 10)})
	assert.True(t, res.Opened)
	assert.True(t, m.IsOpen("a"))

	// the content covers (10,10)-(14,12); the rest of the trigger row still
	// belongs to the trigger
	res = m.HandleClick(Click{Point: image.Pt(18, 10)})
	assert.Equal(t, ID("a"), res.Toggled)
	assert.False(t, res.Opened)
	assert.Empty(t, res.Dismissed)
	assert.False(t, m.IsOpen("a"))
}

func TestContextMenuAnchorsAtPointer(t *testing.T) {
	m, _ := newTestManager(bounds.Static{
		"story":  image.Rect(0, 0, 80, 24),
		"button": image.Rect(5, 5, 10, 6),
	})
	m.Declare(Spec{ID: "ctx", Trigger: "story", Kind: KindContextMenu, Button: ButtonRight, Corner: anchor.BottomRight, Provider: boxBuilder(10, 5)})
	m.Declare(Spec{ID: "pop", Trigger: "button", Button: ButtonRight, Provider: boxBuilder(4, 2)})

	res := m.HandleClick(Click{Point: image.Pt(30, 8), Button: ButtonRight})
	require.Equal(t, ID("ctx"), res.Toggled)
	p, _ := m.Placement("ctx")
	assert.Equal(t, image.Pt(30, 8), p.Origin)

	// the smaller trigger wins when both contain the pointer
	res = m.HandleClick(Click{Point: image.Pt(6, 5), Button: ButtonRight})
	assert.Equal(t, ID("pop"), res.Toggled)
	assert.Equal(t, []ID{"ctx"}, res.Dismissed)
}

func TestContextMenuReopensAtNewPointer(t *testing.T) {
	m, rec := newTestManager(bounds.Static{"story": image.Rect(0, 0, 80, 24)})
	m.Declare(Spec{ID: "ctx", Trigger: "story", Kind: KindContextMenu, Button: ButtonRight, Provider: boxBuilder(10, 5)})

	res := m.HandleClick(Click{Point: image.Pt(5, 5), Button: ButtonRight})
	require.True(t, res.Opened)

	res = m.HandleClick(Click{Point: image.Pt(50, 15), Button: ButtonRight})
	assert.Equal(t, ID("ctx"), res.Toggled)
	assert.True(t, res.Opened)
	require.True(t, m.IsOpen("ctx"))
	p, ok := m.Placement("ctx")
	require.True(t, ok)
	assert.Equal(t, image.Pt(50, 15), p.Origin)

	// the first instance closed before the second opened
	closed := -1
	for i, tr := range rec.transitions {
		if tr.ID == "ctx" && tr.To == Closed {
			closed = i
		}
	}
	require.NotEqual(t, -1, closed)
	assert.Equal(t, Open, rec.transitions[len(rec.transitions)-1].To)
	assert.Less(t, closed, len(rec.transitions)-1)
}

func TestDeclareReplacesOpenOverlay(t *testing.T) {
	src := bounds.Static{"a": image.Rect(10, 10, 20, 11)}
	m, _ := newTestManager(src)
	m.Declare(Spec{ID: "a", Provider: boxBuilder(4, 2)})
	m.Open("a")

	src["a"] = image.Rect(30, 12, 40, 13)
	m.Declare(Spec{ID: "a", Provider: boxBuilder(4, 2)})
	p, _ := m.Placement("a")
	assert.Equal(t, image.Pt(30, 12), p.Origin)

	m.Declare(Spec{ID: "a", WindowEmbedded: true, Provider: boxBuilder(4, 2)})
	p, _ = m.Placement("a")
	assert.Equal(t, anchor.Docked, p.Mode)
}

func TestDismissAndCloseAll(t *testing.T) {
	m, _ := newTestManager(bounds.Static{})
	m.Declare(Spec{ID: "a", Root: "1", Provider: boxBuilder(1, 1)})
	m.Declare(Spec{ID: "b", Root: "2", Provider: boxBuilder(1, 1)})
	m.Open("a")
	m.Open("b")
	top, ok := m.Top()
	require.True(t, ok)
	assert.Equal(t, ID("b"), top)

	assert.True(t, m.Dismiss("b"))
	assert.Equal(t, Closed, m.State("b"))
	m.CloseAll()
	assert.Empty(t, m.Stack())
	_, ok = m.Top()
	assert.False(t, ok)
}

func TestClampKeepsSurfaceInViewport(t *testing.T) {
	m, _ := newTestManager(bounds.Static{"edge": image.Rect(75, 22, 80, 23)})
	m.Declare(Spec{ID: "edge", Provider: boxBuilder(20, 6)})
	m.Open("edge")
	p, _ := m.Placement("edge")
	assert.Equal(t, image.Pt(60, 18), p.Origin)

	noClamp := NewManager(bounds.Static{"edge": image.Rect(75, 22, 80, 23)}, WithViewport(viewport), WithPolicy(anchor.Policy{}))
	noClamp.Declare(Spec{ID: "edge", Provider: boxBuilder(20, 6)})
	noClamp.Open("edge")
	p, _ = noClamp.Placement("edge")
	assert.Equal(t, image.Pt(75, 22), p.Origin)
}
