package ui

import "github.com/atomicstack/overlaykit/internal/keymap"

// Actions understood by the story. Names are namespaced the way keymap files
// refer to them.
const (
	ActionCopy             keymap.Action = "story::Copy"
	ActionPaste            keymap.Action = "story::Paste"
	ActionCut              keymap.Action = "story::Cut"
	ActionSearchAll        keymap.Action = "story::SearchAll"
	ActionToggleWindowMode keymap.Action = "story::ToggleWindowMode"
	ActionQuit             keymap.Action = "app::Quit"

	ActionSelectNext   keymap.Action = "menu::SelectNext"
	ActionSelectPrev   keymap.Action = "menu::SelectPrev"
	ActionSelectFirst  keymap.Action = "menu::SelectFirst"
	ActionSelectLast   keymap.Action = "menu::SelectLast"
	ActionConfirm      keymap.Action = "menu::Confirm"
	ActionCancel       keymap.Action = "menu::Cancel"
	ActionSelectChild  keymap.Action = "menu::SelectChild"
	ActionSelectParent keymap.Action = "menu::SelectParent"

	ActionDismiss keymap.Action = "popover::Dismiss"
	ActionSubmit  keymap.Action = "form::Submit"
)

// Key contexts carried by focus nodes.
const (
	ContextStory   = "PopupStory"
	ContextMenu    = "PopupMenu"
	ContextPopover = "Popover"
	ContextForm    = "Form"
)

var actionDescriptions = map[keymap.Action]string{
	ActionCopy:             "copy",
	ActionPaste:            "paste",
	ActionCut:              "cut",
	ActionSearchAll:        "search all",
	ActionToggleWindowMode: "window mode",
	ActionQuit:             "quit",
	ActionSelectNext:       "next",
	ActionSelectPrev:       "previous",
	ActionSelectFirst:      "first",
	ActionSelectLast:       "last",
	ActionConfirm:          "select",
	ActionCancel:           "close",
	ActionSelectChild:      "open submenu",
	ActionSelectParent:     "back",
	ActionDismiss:          "dismiss",
	ActionSubmit:           "submit",
}

// KnownActions returns the set of actions a keymap file may bind.
func KnownActions() map[keymap.Action]struct{} {
	known := make(map[keymap.Action]struct{}, len(actionDescriptions))
	for action := range actionDescriptions {
		known[action] = struct{}{}
	}
	return known
}

// Describe returns the short help text for an action.
func Describe(action keymap.Action) string {
	if desc, ok := actionDescriptions[action]; ok {
		return desc
	}
	return string(action)
}

// DefaultBindings returns the built-in key bindings. cmd chords have alt
// alternates because most terminals never deliver the super modifier.
func DefaultBindings() []keymap.Spec {
	return []keymap.Spec{
		{Keys: "cmd-c", Action: ActionCopy},
		{Keys: "cmd-v", Action: ActionPaste},
		{Keys: "cmd-x", Action: ActionCut},
		{Keys: "cmd-shift-f", Action: ActionSearchAll},
		{Keys: "alt-c", Action: ActionCopy},
		{Keys: "alt-v", Action: ActionPaste},
		{Keys: "alt-x", Action: ActionCut},
		{Keys: "alt-shift-f", Action: ActionSearchAll},
		{Keys: "alt-w", Action: ActionToggleWindowMode},
		{Keys: "ctrl-c", Action: ActionQuit},
		{Keys: "ctrl-q", Action: ActionQuit},

		{Keys: "escape", Action: ActionQuit, Context: ContextStory},

		{Keys: "up", Action: ActionSelectPrev, Context: ContextMenu},
		{Keys: "ctrl-p", Action: ActionSelectPrev, Context: ContextMenu},
		{Keys: "down", Action: ActionSelectNext, Context: ContextMenu},
		{Keys: "ctrl-n", Action: ActionSelectNext, Context: ContextMenu},
		{Keys: "home", Action: ActionSelectFirst, Context: ContextMenu},
		{Keys: "end", Action: ActionSelectLast, Context: ContextMenu},
		{Keys: "enter", Action: ActionConfirm, Context: ContextMenu},
		{Keys: "escape", Action: ActionCancel, Context: ContextMenu},
		{Keys: "right", Action: ActionSelectChild, Context: ContextMenu},
		{Keys: "left", Action: ActionSelectParent, Context: ContextMenu},

		{Keys: "escape", Action: ActionDismiss, Context: ContextPopover},

		{Keys: "enter", Action: ActionSubmit, Context: ContextForm},
	}
}

// NewBindingTable builds a table from the defaults followed by overrides.
// Later specs replace earlier ones for the same chord and context.
func NewBindingTable(overrides []keymap.Spec) (*keymap.Table, error) {
	table := keymap.NewTable()
	if err := table.BindKeys(DefaultBindings()); err != nil {
		return nil, err
	}
	if err := table.BindKeys(overrides); err != nil {
		return nil, err
	}
	return table, nil
}
