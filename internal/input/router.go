// Package input routes raw pointer and key events to the interaction
// functions of a map frame.
package input

import (
	"github.com/charmbracelet/log"

	"geoview/internal/geom"
	"geoview/internal/mapfn"
	"geoview/internal/view"
)

// Viewer supplies the transform events are resolved against.
type Viewer interface {
	Transform() view.Transform
}

// Router resolves each event against the current view and dispatches it to
// every function listening on its channel: AlwaysOn functions first, then the
// rest in registration order. Handled never stops dispatch.
type Router struct {
	reg    *mapfn.Registry
	viewer Viewer
	logger *log.Logger
}

// New returns a router. A nil logger falls back to log.Default().
func New(reg *mapfn.Registry, v Viewer, logger *log.Logger) *Router {
	if logger == nil {
		logger = log.Default()
	}
	return &Router{reg: reg, viewer: v, logger: logger}
}

type mouseHandler func(mapfn.Function, *mapfn.MouseEvent)
type keyHandler func(mapfn.Function, *mapfn.KeyEvent)

func (r *Router) MouseDown(e mapfn.MouseEvent) (mapfn.MouseEvent, bool) {
	return r.mouse("down", e, mapfn.Function.OnMouseDown)
}

func (r *Router) MouseUp(e mapfn.MouseEvent) (mapfn.MouseEvent, bool) {
	return r.mouse("up", e, mapfn.Function.OnMouseUp)
}

func (r *Router) MouseMove(e mapfn.MouseEvent) (mapfn.MouseEvent, bool) {
	return r.mouse("move", e, mapfn.Function.OnMouseMove)
}

// MouseWheel dispatches a wheel event; a zero Delta is dropped.
func (r *Router) MouseWheel(e mapfn.MouseEvent) (mapfn.MouseEvent, bool) {
	if e.Delta == 0 {
		return e, false
	}
	return r.mouse("wheel", e, mapfn.Function.OnMouseWheel)
}

func (r *Router) KeyDown(e mapfn.KeyEvent) (mapfn.KeyEvent, bool) {
	return r.key(e, mapfn.Function.OnKeyDown)
}

func (r *Router) KeyUp(e mapfn.KeyEvent) (mapfn.KeyEvent, bool) {
	return r.key(e, mapfn.Function.OnKeyUp)
}

// mouse fills in the geographic location and InView, then dispatches. Events
// arriving before the view has a usable transform are dropped.
func (r *Router) mouse(kind string, e mapfn.MouseEvent, fn mouseHandler) (mapfn.MouseEvent, bool) {
	if r == nil || r.reg == nil || r.viewer == nil {
		return e, false
	}
	t := r.viewer.Transform()
	geo, ok := t.PixelToGeo(e.Pixel)
	if !ok {
		r.logger.Debug("dropped mouse event", "kind", kind, "reason", "no view")
		return e, false
	}
	e.Geo = geo
	e.InView = inside(t, e.Pixel)
	targets := r.reg.Targets(e.Channel())
	for _, f := range targets {
		fn(f, &e)
	}
	return e, len(targets) > 0
}

func (r *Router) key(e mapfn.KeyEvent, fn keyHandler) (mapfn.KeyEvent, bool) {
	if r == nil || r.reg == nil || r.viewer == nil {
		return e, false
	}
	targets := r.reg.Targets(mapfn.Keyboard)
	for _, f := range targets {
		fn(f, &e)
	}
	return e, len(targets) > 0
}

func inside(t view.Transform, p geom.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < t.Width && p.Y < t.Height
}
