package events

import "github.com/atomicstack/overlaykit/internal/logging"

type OverlayTracer struct{}

var Overlay = OverlayTracer{}

func (OverlayTracer) Transition(id, from, to string) {
	logging.Trace("overlay.transition", map[string]interface{}{"id": id, "from": from, "to": to})
}

func (OverlayTracer) Placed(id, mode string, x, y, w, h int) {
	logging.Trace("overlay.placed", map[string]interface{}{
		"id":   id,
		"mode": mode,
		"x":    x,
		"y":    y,
		"w":    w,
		"h":    h,
	})
}

func (OverlayTracer) UnresolvedTrigger(id, trigger string) {
	logging.Trace("overlay.unresolved-trigger", map[string]interface{}{"id": id, "trigger": trigger})
}

func (OverlayTracer) ContentFailed(id string, err error) {
	payload := map[string]interface{}{"id": id}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("overlay.content-failed", payload)
}

func (OverlayTracer) Outside(id string, x, y int) {
	logging.Trace("overlay.outside-click", map[string]interface{}{"id": id, "x": x, "y": y})
}

func (OverlayTracer) Dismiss(id string) {
	logging.Trace("overlay.dismiss", map[string]interface{}{"id": id})
}
