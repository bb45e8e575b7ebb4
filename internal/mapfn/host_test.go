package mapfn

import (
	"bytes"

	"github.com/charmbracelet/log"

	"geoview/internal/geom"
	"geoview/internal/layer"
	"geoview/internal/selection"
	"geoview/internal/view"
)

// fakeHost is an 800x600 frame at one map unit per pixel.
type fakeHost struct {
	t          view.Transform
	max        geom.Extent
	nodes      []layer.Node
	resolver   *selection.Resolver
	resets     int
	redraws    int
	rects      []geom.Rectangle
	status     string
	identified []selection.Result
}

func newFakeHost(nodes ...layer.Node) *fakeHost {
	return &fakeHost{
		t:        view.New(800, 600, geom.Extent{MinX: 0, MinY: 0, MaxX: 800, MaxY: 600}),
		max:      geom.Extent{MinX: -800, MinY: -600, MaxX: 1600, MaxY: 1200},
		nodes:    nodes,
		resolver: selection.New(selection.DefaultConfig(), quiet()),
	}
}

func quiet() *log.Logger { return log.New(&bytes.Buffer{}) }

func (h *fakeHost) Transform() view.Transform       { return h.t }
func (h *fakeHost) ViewExtents() geom.Extent        { return h.t.Extent }
func (h *fakeHost) SetViewExtents(e geom.Extent)    { h.t.Extent = e; h.redraws++ }
func (h *fakeHost) Invalidate()                     { h.redraws++ }
func (h *fakeHost) InvalidateRect(r geom.Rectangle) { h.rects = append(h.rects, r) }
func (h *fakeHost) MaxExtent() geom.Extent          { return h.max }
func (h *fakeHost) IsZoomedToMaxExtent() bool       { return h.t.Extent.ContainsExtent(h.max) }
func (h *fakeHost) Layers() []layer.Node            { return h.nodes }
func (h *fakeHost) Resolver() *selection.Resolver   { return h.resolver }
func (h *fakeHost) RequestReset()                   { h.resets++ }
func (h *fakeHost) ShowIdentify(res selection.Result) {
	h.identified = append(h.identified, res)
}
func (h *fakeHost) SetStatus(msg string) { h.status = msg }

// recorder logs every call it receives.
type recorder struct {
	Base
	calls   []string
	handles bool
}

func newRecorder(name string, style YieldStyle) *recorder {
	return &recorder{Base: NewBase(name, style)}
}

func (r *recorder) OnMouseDown(e *MouseEvent) {
	r.calls = append(r.calls, "down")
	if r.handles {
		e.Handled = true
	}
}
func (r *recorder) OnMouseUp(*MouseEvent)    { r.calls = append(r.calls, "up") }
func (r *recorder) OnMouseMove(*MouseEvent)  { r.calls = append(r.calls, "move") }
func (r *recorder) OnMouseWheel(*MouseEvent) { r.calls = append(r.calls, "wheel") }
func (r *recorder) OnKeyDown(*KeyEvent)      { r.calls = append(r.calls, "key") }

type recCanvas struct {
	lines int
	rects []geom.Rectangle
	text  []string
}

func (c *recCanvas) Line(_, _ geom.Point)         { c.lines++ }
func (c *recCanvas) Rect(r geom.Rectangle)        { c.rects = append(c.rects, r) }
func (c *recCanvas) Text(_ geom.Point, s string) { c.text = append(c.text, s) }
