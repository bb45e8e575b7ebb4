package mapfn

import (
	"geoview/internal/geom"
	"geoview/internal/layer"
	"geoview/internal/selection"
	"geoview/internal/view"
)

// Host is the map frame functions act on. Every method is called from the
// event loop that owns the frame.
type Host interface {
	Transform() view.Transform
	ViewExtents() geom.Extent
	// SetViewExtents replaces the viewport and schedules a redraw.
	SetViewExtents(e geom.Extent)
	Invalidate()
	InvalidateRect(r geom.Rectangle)
	MaxExtent() geom.Extent
	IsZoomedToMaxExtent() bool
	Layers() []layer.Node
	Resolver() *selection.Resolver
	// RequestReset schedules a full extent reset behind the frame's debounce.
	RequestReset()
	ShowIdentify(res selection.Result)
	SetStatus(msg string)
}
