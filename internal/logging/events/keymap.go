package events

import "github.com/atomicstack/overlaykit/internal/logging"

type KeymapTracer struct{}

type DispatchTracer struct{}

var (
	Keymap   = KeymapTracer{}
	Dispatch = DispatchTracer{}
)

func (KeymapTracer) Bind(chord, context, action string) {
	logging.Trace("keymap.bind", map[string]interface{}{"chord": chord, "context": context, "action": action})
}

// Overwrite records a duplicate chord+context registration replacing an
// earlier binding.
func (KeymapTracer) Overwrite(chord, context, previous, action string) {
	logging.Trace("keymap.overwrite", map[string]interface{}{
		"chord":    chord,
		"context":  context,
		"previous": previous,
		"action":   action,
	})
}

func (KeymapTracer) Loaded(path string, count int) {
	logging.Trace("keymap.loaded", map[string]interface{}{"path": path, "count": count})
}

func (DispatchTracer) Handled(chord, action string, node uint64, depth int) {
	logging.Trace("dispatch.handled", map[string]interface{}{
		"chord":  chord,
		"action": action,
		"node":   node,
		"depth":  depth,
	})
}

func (DispatchTracer) Unhandled(chord string, chainLen int) {
	logging.Trace("dispatch.unhandled", map[string]interface{}{"chord": chord, "chain": chainLen})
}

func (DispatchTracer) Focus(from, to uint64) {
	logging.Trace("focus.change", map[string]interface{}{"from": from, "to": to})
}
