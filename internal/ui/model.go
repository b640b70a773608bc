package ui

import (
	"image"
	"reflect"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/atomicstack/overlaykit/internal/anchor"
	"github.com/atomicstack/overlaykit/internal/bounds"
	"github.com/atomicstack/overlaykit/internal/dispatch"
	"github.com/atomicstack/overlaykit/internal/focus"
	"github.com/atomicstack/overlaykit/internal/keymap"
	"github.com/atomicstack/overlaykit/internal/overlay"
	"github.com/atomicstack/overlaykit/internal/theme"
	"github.com/atomicstack/overlaykit/internal/ui/command"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Ids of the story's overlays and of the elements they anchor to. An
// overlay's trigger has the same id unless its Spec says otherwise.
const (
	storyRoot = "story"
	zoneStory = "story"

	idInfoTopLeft     overlay.ID = "info-top-left"
	idInfoTopRight    overlay.ID = "info-top-right"
	idInfoBottomLeft  overlay.ID = "info-bottom-left"
	idInfoBottomRight overlay.ID = "info-bottom-right"
	idPopupMenu       overlay.ID = "popup-menu-1"
	idContextMenu     overlay.ID = "context-menu"

	zoneSwitch = "switch-window-mode"
)

// Options configures a Model.
type Options struct {
	// Width and Height fix the viewport; zero follows the terminal.
	Width  int
	Height int

	ShowFooter bool
	WindowMode bool
	// OpenLinks launches link items in the system browser. When unset the
	// link is only reported.
	OpenLinks bool

	// Bindings defaults to DefaultBindings.
	Bindings *keymap.Table
	// Policy defaults to anchor.DefaultPolicy.
	Policy *anchor.Policy
	// Bounds resolves element bounds. It defaults to bubblezone marks made
	// while rendering.
	Bounds bounds.Source
	// LinkOpener defaults to the platform URL opener.
	LinkOpener func(uri string) error
	Logger     logr.Logger
}

// surface mirrors one open overlay: the focus node it was given and the state
// the model drives for it.
type surface struct {
	id     overlay.ID
	handle focus.Handle
	// input is the form's text field node, a child of handle.
	input focus.Handle
	menu  *menuSurface
	form  *Form
	info  *infoPopover
}

// Model implements the Bubble Tea model for the popup story.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	openLinks   bool

	windowMode bool
	message    string
	errMsg     string

	table      *keymap.Table
	registry   *focus.Registry
	dispatcher *dispatch.Dispatcher
	overlays   *overlay.Manager
	zones      *bounds.Zones
	frame      bounds.Static
	bounds     bounds.Source
	root       focus.Handle
	form       *Form
	surfaces   map[overlay.ID]*surface
	dockKeys   []string

	handlers map[reflect.Type]msgHandler
	bus      *command.Bus
	help     help.Model
	opener   func(string) error
	log      logr.Logger
}

// NewModel builds the story with nothing open and focus on the story root.
func NewModel(opts Options) *Model {
	table := opts.Bindings
	if table == nil {
		// the defaults always parse
		table, _ = NewBindingTable(nil)
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	m := &Model{
		showFooter: opts.ShowFooter,
		openLinks:  opts.OpenLinks,
		windowMode: opts.WindowMode,
		table:      table,
		registry:   focus.NewRegistry(),
		frame:      bounds.Static{},
		form:       NewForm(),
		surfaces:   make(map[overlay.ID]*surface),
		bus:        command.New(),
		help:       help.New(),
		opener:     opts.LinkOpener,
		log:        log,
	}
	if m.opener == nil {
		m.opener = openURL
	}
	src := opts.Bounds
	if src == nil {
		m.zones = bounds.NewZones()
		src = m.zones
	}
	m.bounds = bounds.Layered{m.frame, src}

	managerOpts := []overlay.Option{
		overlay.WithLogger(log.WithName("overlay")),
		overlay.WithObserver(m.onTransition),
	}
	if opts.Policy != nil {
		managerOpts = append(managerOpts, overlay.WithPolicy(*opts.Policy))
	}
	m.overlays = overlay.NewManager(m.bounds, managerOpts...)
	m.dispatcher = dispatch.New(table, m.registry)

	m.root = m.registry.New(0)
	m.registry.SetContext(m.root, ContextStory)
	m.registry.Focus(m.root)
	m.registerStoryActions()

	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.resize()
	m.declareOverlays()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyPressMsg{}):   m.handleKeyMsg,
		reflect.TypeOf(tea.MouseClickMsg{}): m.handleMouseClickMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(dismissMsg{}):        m.handleDismissMsg,
		reflect.TypeOf(linkOpenedMsg{}):     m.handleLinkOpenedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate re-declares the overlays so placement follows the state the
// handler left behind.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.declareOverlays()
	m.syncDock()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.resize()
	return nil
}

func (m *Model) resize() {
	viewport := image.Rect(0, 0, m.width, m.height)
	m.overlays.SetViewport(viewport)
	m.frame[zoneStory] = viewport
}

// WindowMode reports whether popovers dock into the layout.
func (m *Model) WindowMode() bool { return m.windowMode }

// Message returns the status line text.
func (m *Model) Message() string { return m.message }

// Overlays exposes the overlay manager.
func (m *Model) Overlays() *overlay.Manager { return m.overlays }

// Form exposes the form popover's content.
func (m *Model) Form() *Form { return m.form }
