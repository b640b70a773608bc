// Package overlay owns the open/close lifecycle of floating surfaces:
// popovers, context menus, popup menus and their nested submenus.
//
// Views declare their overlays on every render pass; only the identity and
// open state of an overlay persist across frames, keyed by ID. Open overlays
// live in an arena keyed by ID that records parent/child links, so closing a
// parent walks its children by ID and closes the whole subtree.
package overlay

import (
	"fmt"
	"image"
	"sort"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/atomicstack/overlaykit/internal/anchor"
	"github.com/atomicstack/overlaykit/internal/bounds"
	"github.com/atomicstack/overlaykit/internal/logging/events"
	"github.com/atomicstack/overlaykit/internal/telemetry"
)

// ID identifies an overlay across frames.
type ID string

// State is the lifecycle state of an overlay.
type State int

const (
	Closed State = iota
	Opening
	Open
	Closing
)

func (s State) String() string {
	switch s {
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "closed"
	}
}

// Button is the mouse button that opens an overlay.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

func (b Button) String() string {
	if b == ButtonRight {
		return "right"
	}
	return "left"
}

// Kind describes what an overlay is used for.
type Kind int

const (
	KindPopover Kind = iota
	// KindContextMenu overlays anchor at the pointer instead of a corner.
	KindContextMenu
	KindPopupMenu
	KindSubmenu
)

// Spec is the per-frame declaration of an overlay.
type Spec struct {
	ID ID
	// Root scopes top-level mutual exclusion. Overlays sharing a root close
	// each other when opened.
	Root string
	Kind Kind
	// Trigger is the element id whose bounds anchor the overlay. Defaults to
	// the overlay ID.
	Trigger        string
	Corner         anchor.Corner
	Button         Button
	WindowEmbedded bool
	Provider       Provider
}

func (s Spec) trigger() string {
	if s.Trigger != "" {
		return s.Trigger
	}
	return string(s.ID)
}

// Transition is reported to the observer for every state change.
type Transition struct {
	ID   ID
	From State
	To   State
}

// Click is a mouse press in window coordinates.
type Click struct {
	Point  image.Point
	Button Button
}

// ClickResult reports what HandleClick did.
type ClickResult struct {
	// Inside is set when the click landed in open overlay content; the
	// content should handle it.
	Inside ID
	// Toggled is the overlay whose trigger was clicked.
	Toggled ID
	// Opened reports whether Toggled ended up open.
	Opened    bool
	Dismissed []ID
}

// Consumed reports whether the click hit an overlay or a trigger.
func (r ClickResult) Consumed() bool {
	return r.Inside != "" || r.Toggled != ""
}

// ZoneID is the bounds id under which hosts register the drawn area of an
// overlay's content.
func ZoneID(id ID) string { return "overlay:" + string(id) }

type entry struct {
	spec      Spec
	state     State
	parent    ID
	children  []ID
	content   Content
	placement anchor.Placement
	pointer   *image.Point
	row       image.Rectangle
}

// Option configures a Manager.
type Option func(*Manager)

// WithPolicy sets the overflow policy.
func WithPolicy(p anchor.Policy) Option { return func(m *Manager) { m.policy = p } }

// WithLogger sets the logger used for recovered failures.
func WithLogger(l logr.Logger) Option { return func(m *Manager) { m.log = l } }

// WithObserver registers a callback for every transition.
func WithObserver(fn func(Transition)) Option { return func(m *Manager) { m.observer = fn } }

// WithViewport sets the window rectangle.
func WithViewport(r image.Rectangle) Option { return func(m *Manager) { m.viewport = r } }

// Manager tracks declared and open overlays.
type Manager struct {
	bounds   bounds.Source
	policy   anchor.Policy
	viewport image.Rectangle
	log      logr.Logger
	observer func(Transition)
	tracer   trace.Tracer

	declared []ID
	decls    map[ID]Spec
	entries  map[ID]*entry
	stack    []ID
}

// NewManager returns a manager resolving trigger bounds through src.
func NewManager(src bounds.Source, opts ...Option) *Manager {
	m := &Manager{
		bounds:  src,
		policy:  anchor.DefaultPolicy(),
		log:     logr.Discard(),
		tracer:  telemetry.Tracer("overlay"),
		decls:   make(map[ID]Spec),
		entries: make(map[ID]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetViewport updates the window rectangle used for clamping.
func (m *Manager) SetViewport(r image.Rectangle) { m.viewport = r }

// Viewport returns the window rectangle.
func (m *Manager) Viewport() image.Rectangle { return m.viewport }

// Declare records spec for this frame. An open top-level overlay is placed
// again against the trigger's current bounds.
func (m *Manager) Declare(spec Spec) {
	if _, ok := m.decls[spec.ID]; !ok {
		m.declared = append(m.declared, spec.ID)
	}
	m.decls[spec.ID] = spec
	e, ok := m.entries[spec.ID]
	if !ok || e.state != Open || e.parent != "" {
		return
	}
	provider := e.spec.Provider
	e.spec = spec
	e.spec.Provider = provider
	e.placement = m.place(e, measure(e.content))
}

// Spec returns the declaration for id.
func (m *Manager) Spec(id ID) (Spec, bool) {
	if e, ok := m.entries[id]; ok {
		return e.spec, true
	}
	spec, ok := m.decls[id]
	return spec, ok
}

// Open opens a declared overlay anchored to its trigger.
func (m *Manager) Open(id ID) bool {
	spec, ok := m.decls[id]
	if !ok {
		m.log.Info("open ignored", "overlay", string(id), "error", ErrUnknownOverlay.Error())
		return false
	}
	return m.open(spec, "", nil, image.Rectangle{})
}

// OpenAt opens a declared overlay anchored at pointer.
func (m *Manager) OpenAt(id ID, pointer image.Point) bool {
	spec, ok := m.decls[id]
	if !ok {
		m.log.Info("open ignored", "overlay", string(id), "error", ErrUnknownOverlay.Error())
		return false
	}
	return m.open(spec, "", &pointer, image.Rectangle{})
}

// OpenChild opens spec as a submenu of parent, anchored beside row. Open
// siblings under the same parent are closed first.
func (m *Manager) OpenChild(parent ID, spec Spec, row image.Rectangle) bool {
	if !m.IsOpen(parent) {
		return false
	}
	if spec.Kind == KindPopover {
		spec.Kind = KindSubmenu
	}
	return m.open(spec, parent, nil, row)
}

func (m *Manager) open(spec Spec, parent ID, pointer *image.Point, row image.Rectangle) bool {
	if e, ok := m.entries[spec.ID]; ok && e.state == Open {
		return true
	}
	span := telemetry.Span(m.tracer, "overlay.open", attribute.String("id", string(spec.ID)))
	defer span.End()

	if parent == "" {
		for _, other := range m.openTopLevel(spec.Root) {
			m.close(other)
		}
	} else if p, ok := m.entries[parent]; ok {
		for _, sibling := range append([]ID(nil), p.children...) {
			m.close(sibling)
		}
	}

	e := &entry{spec: spec, state: Closed, parent: parent, pointer: pointer, row: row}
	m.entries[spec.ID] = e
	m.transition(e, Opening)

	content, err := m.build(spec, parent)
	if err != nil {
		events.Overlay.ContentFailed(string(spec.ID), err)
		m.log.Error(err, "overlay content unavailable", "overlay", string(spec.ID))
		span.RecordError(err)
		m.transition(e, Closed)
		delete(m.entries, spec.ID)
		return false
	}
	e.content = content
	e.placement = m.place(e, measure(content))
	m.transition(e, Open)
	if p, ok := m.entries[parent]; ok {
		p.children = append(p.children, spec.ID)
	}
	m.stack = append(m.stack, spec.ID)
	r := e.placement.Rect()
	events.Overlay.Placed(string(spec.ID), e.placement.Mode.String(), r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	return true
}

func (m *Manager) build(spec Spec, parent ID) (c Content, err error) {
	defer func() {
		if r := recover(); r != nil {
			c = nil
			err = fmt.Errorf("%w: %v", ErrContentPanic, r)
		}
	}()
	if spec.Provider == nil {
		return nil, ErrNoContent
	}
	c, err = spec.Provider.provide(BuildContext{ID: spec.ID, Parent: parent})
	if err == nil && c == nil {
		err = ErrNoContent
	}
	return c, err
}

func (m *Manager) place(e *entry, size image.Point) anchor.Placement {
	spec := e.spec
	var p anchor.Placement
	switch {
	case e.parent != "":
		return anchor.Submenu(e.row, size, m.viewport, m.policy)
	case e.pointer != nil:
		p = anchor.AtPointer(*e.pointer, size, spec.WindowEmbedded)
	default:
		trigger, ok := m.triggerBounds(spec)
		if !ok {
			events.Overlay.UnresolvedTrigger(string(spec.ID), spec.trigger())
			m.log.Info("unresolved trigger, anchoring at window origin", "overlay", string(spec.ID), "trigger", spec.trigger())
			p = anchor.Resolve(image.Rectangle{}, anchor.TopLeft, size, spec.WindowEmbedded)
			p.Corner = spec.Corner
			p.Origin = m.viewport.Min
			return p
		}
		p = anchor.Resolve(trigger, spec.Corner, size, spec.WindowEmbedded)
	}
	if m.policy.Clamp {
		p = anchor.Clamp(p, m.viewport)
	}
	return p
}

func (m *Manager) triggerBounds(spec Spec) (image.Rectangle, bool) {
	if m.bounds == nil {
		return image.Rectangle{}, false
	}
	r, ok := m.bounds.BoundsOf(spec.trigger())
	if !ok || r.Empty() {
		return image.Rectangle{}, false
	}
	return r, true
}

// Close closes id and all of its descendants.
func (m *Manager) Close(id ID) bool {
	return m.close(id)
}

// Dismiss closes id in response to a dismiss signal from its content.
func (m *Manager) Dismiss(id ID) bool {
	events.Overlay.Dismiss(string(id))
	return m.close(id)
}

// CloseAll closes every open overlay.
func (m *Manager) CloseAll() {
	for _, id := range m.openTopLevel("*") {
		m.close(id)
	}
}

func (m *Manager) close(id ID) bool {
	e, ok := m.entries[id]
	if !ok || e.state != Open {
		return false
	}
	span := telemetry.Span(m.tracer, "overlay.close", attribute.String("id", string(id)))
	defer span.End()

	children := append([]ID(nil), e.children...)
	for i := len(children) - 1; i >= 0; i-- {
		m.close(children[i])
	}
	m.transition(e, Closing)
	e.content = nil
	m.transition(e, Closed)
	if p, ok := m.entries[e.parent]; ok {
		p.children = without(p.children, id)
	}
	m.stack = without(m.stack, id)
	delete(m.entries, id)
	return true
}

func (m *Manager) transition(e *entry, to State) {
	from := e.state
	e.state = to
	events.Overlay.Transition(string(e.spec.ID), from.String(), to.String())
	if m.observer != nil {
		m.observer(Transition{ID: e.spec.ID, From: from, To: to})
	}
}

// openTopLevel lists open overlays without a parent in root ("*" for all),
// in opening order.
func (m *Manager) openTopLevel(root string) []ID {
	var out []ID
	for _, id := range m.stack {
		e := m.entries[id]
		if e.parent != "" {
			continue
		}
		if root != "*" && e.spec.Root != root {
			continue
		}
		out = append(out, id)
	}
	return out
}

// HandleClick routes a mouse press. Clicks inside open content are left to
// the content. A click on a declared trigger with the matching button toggles
// that overlay, except context menus, which reopen at the new pointer. Every
// other open, non-embedded top-level overlay is closed.
func (m *Manager) HandleClick(c Click) ClickResult {
	for i := len(m.stack) - 1; i >= 0; i-- {
		if m.contains(m.stack[i], c.Point) {
			return ClickResult{Inside: m.stack[i]}
		}
	}

	triggered := m.triggerAt(c)
	var res ClickResult
	for _, id := range m.openTopLevel("*") {
		if id == triggered || m.entries[id].spec.WindowEmbedded {
			continue
		}
		events.Overlay.Outside(string(id), c.Point.X, c.Point.Y)
		if m.close(id) {
			res.Dismissed = append(res.Dismissed, id)
		}
	}
	if triggered == "" {
		return res
	}
	res.Toggled = triggered
	if m.decls[triggered].Kind == KindContextMenu {
		// Context menus move to the new pointer instead of toggling.
		if m.IsOpen(triggered) {
			m.close(triggered)
		}
		res.Opened = m.OpenAt(triggered, c.Point)
		return res
	}
	if m.IsOpen(triggered) {
		m.close(triggered)
		return res
	}
	res.Opened = m.Open(triggered)
	return res
}

// triggerAt returns the declared overlay whose trigger contains the click and
// wants its button. The smallest trigger wins so inner elements take
// precedence over enclosing ones.
func (m *Manager) triggerAt(c Click) ID {
	type hit struct {
		id   ID
		area int
		seq  int
	}
	var hits []hit
	for seq, id := range m.declared {
		spec := m.decls[id]
		if spec.Button != c.Button {
			continue
		}
		r, ok := m.triggerBounds(spec)
		if !ok || !c.Point.In(r) {
			continue
		}
		hits = append(hits, hit{id: id, area: r.Dx() * r.Dy(), seq: seq})
	}
	if len(hits) == 0 {
		return ""
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].area != hits[j].area {
			return hits[i].area < hits[j].area
		}
		return hits[i].seq < hits[j].seq
	})
	return hits[0].id
}

func (m *Manager) contains(id ID, p image.Point) bool {
	if m.bounds != nil {
		if r, ok := m.bounds.BoundsOf(ZoneID(id)); ok {
			return p.In(r)
		}
	}
	e, ok := m.entries[id]
	if !ok || e.placement.Mode != anchor.Floating {
		return false
	}
	return p.In(e.placement.Rect())
}

// IsOpen reports whether id is open.
func (m *Manager) IsOpen(id ID) bool {
	return m.State(id) == Open
}

// State returns the lifecycle state of id.
func (m *Manager) State(id ID) State {
	if e, ok := m.entries[id]; ok {
		return e.state
	}
	return Closed
}

// Placement returns where an open overlay was placed.
func (m *Manager) Placement(id ID) (anchor.Placement, bool) {
	e, ok := m.entries[id]
	if !ok || e.state != Open {
		return anchor.Placement{}, false
	}
	return e.placement, true
}

// Content returns the content of an open overlay.
func (m *Manager) Content(id ID) (Content, bool) {
	e, ok := m.entries[id]
	if !ok || e.state != Open {
		return nil, false
	}
	return e.content, true
}

// Parent returns the parent of an open submenu.
func (m *Manager) Parent(id ID) (ID, bool) {
	e, ok := m.entries[id]
	if !ok || e.parent == "" {
		return "", false
	}
	return e.parent, true
}

// Children returns the open children of id.
func (m *Manager) Children(id ID) []ID {
	if e, ok := m.entries[id]; ok {
		return append([]ID(nil), e.children...)
	}
	return nil
}

// Stack returns open overlays from bottom to top.
func (m *Manager) Stack() []ID {
	return append([]ID(nil), m.stack...)
}

// Top returns the most recently opened overlay.
func (m *Manager) Top() (ID, bool) {
	if len(m.stack) == 0 {
		return "", false
	}
	return m.stack[len(m.stack)-1], true
}

func without(ids []ID, id ID) []ID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
