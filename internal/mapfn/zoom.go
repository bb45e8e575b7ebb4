package mapfn

import (
	"math"

	"geoview/internal/geom"
	"geoview/internal/selection"
)

// ZoomBy scales the viewport by factor around c, keeping c under the same
// pixel. Factors above 1 zoom out and stop at the max extent.
func ZoomBy(h Host, c geom.Coordinate, factor float64) bool {
	if factor <= 0 || factor == 1 {
		return false
	}
	if factor > 1 && h.IsZoomedToMaxExtent() {
		return false
	}
	next := h.ViewExtents().Scale(c, factor)
	if factor > 1 {
		if fit := maxView(h); !fit.Degenerate() && (next.Width() > fit.Width() || next.Height() > fit.Height()) {
			next = fit
		}
	}
	if next.Degenerate() || next == h.ViewExtents() {
		return false
	}
	h.SetViewExtents(next)
	return true
}

// ZoomToMax shows the whole max extent.
func ZoomToMax(h Host) {
	if fit := maxView(h); !fit.Degenerate() {
		h.SetViewExtents(fit)
	}
}

// maxView is the max extent grown to the client's aspect ratio.
func maxView(h Host) geom.Extent {
	t := h.Transform()
	return h.MaxExtent().FitAspect(t.Width, t.Height)
}

// ZoomScroll zooms around the cursor on wheel steps. Each step schedules a
// debounced reset so a fast wheel spin resets the view once.
type ZoomScroll struct {
	Base
	factor float64
}

// NewZoomScroll returns a wheel zoom; factor is the per-step scale, 1.25 when
// not above 1.
func NewZoomScroll(factor float64) *ZoomScroll {
	if factor <= 1 {
		factor = 1.25
	}
	return &ZoomScroll{Base: NewBase("zoom-scroll", Scroll), factor: factor}
}

func (z *ZoomScroll) OnMouseWheel(e *MouseEvent) {
	h := z.Host()
	if h == nil || !e.InView || e.Delta == 0 {
		return
	}
	if ZoomBy(h, e.Geo, math.Pow(z.factor, -float64(e.Delta))) {
		h.RequestReset()
	}
}

// ClickZoom zooms in on a left click or to a dragged rectangle, and zooms out
// on a right click.
type ClickZoom struct {
	Base
	factor float64
	drag   drag
}

// NewClickZoom returns a click zoom; factor is the per-click scale, 2 when not
// above 1.
func NewClickZoom(factor float64) *ClickZoom {
	if factor <= 1 {
		factor = 2
	}
	return &ClickZoom{Base: NewBase("zoom", LeftButton|RightButton), factor: factor}
}

func (z *ClickZoom) OnMouseDown(e *MouseEvent) {
	if z.Host() == nil || e.Handled || !e.InView || e.Button != ButtonLeft {
		return
	}
	z.drag.begin(e.Pixel)
}

func (z *ClickZoom) OnMouseMove(e *MouseEvent) {
	if z.drag.on {
		z.drag.move(e.Pixel)
		z.Host().Invalidate()
	}
}

func (z *ClickZoom) OnMouseUp(e *MouseEvent) {
	h := z.Host()
	if h == nil {
		return
	}
	if e.Button == ButtonRight {
		if e.InView && !e.Handled && ZoomBy(h, e.Geo, z.factor) {
			h.RequestReset()
		}
		return
	}
	start, end, ok := z.drag.finish(e.Pixel)
	if !ok {
		return
	}
	if !e.InView || e.Handled {
		h.Invalidate()
		return
	}
	if selection.IsClick(start, end, h.Resolver().Config().ClickThresholdPx) {
		ZoomBy(h, e.Geo, 1/z.factor)
	} else if ext, ok := h.Transform().PixelToGeoRect(geom.RectFromPoints(start, end)); ok && !ext.Degenerate() {
		t := h.Transform()
		h.SetViewExtents(ext.FitAspect(t.Width, t.Height))
	}
	h.RequestReset()
}

func (z *ClickZoom) Draw(args DrawArgs) {
	if z.drag.on {
		args.Canvas.Rect(z.drag.rect())
	}
}

func (z *ClickZoom) Unload() {
	z.drag.cancel()
	z.Base.Unload()
}
