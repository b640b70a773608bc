// Package ui contains the Bubble Tea program for the popup story: a single
// screen demonstrating anchored popovers, a stateful form popover, a popup
// menu, a right-click context menu with a nested submenu, and a window mode
// switch that docks popovers into the layout instead of floating them.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses go to the dispatch package first. The chord is resolved per
//     node of the focus chain and the first node with a handler consumes it.
//     Unhandled keys fall through to default handling: type-to-filter in the
//     focused menu, or text entry in the form.
//   - Mouse presses focus the story root, then go to the overlay manager,
//     which reports whether the click landed inside open content, toggled a
//     trigger, or dismissed floating overlays.
//   - After every update the overlays are re-declared from current state so
//     the window mode switch re-places open overlays on the next frame.
//
// State ownership:
//   - The overlay manager owns open/closed state and placement. The model
//     mirrors it in a surface per open overlay, holding the focus handle the
//     overlay was given and its menu or form state.
//   - Menu level state lives in internal/ui/state.Level, which tracks items,
//     filtering, the highlighted row, and the viewport.
//   - The form popover is owned by the model and handed to the manager as
//     Owned content, so typed text survives close and reopen.
//   - Link opening runs asynchronously through the internal/ui/command bus.
package ui
