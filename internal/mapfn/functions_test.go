package mapfn

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"geoview/internal/geom"
	"geoview/internal/layer"
)

// at builds an in-view event at pixel (x, y) for the 1:1 fake host.
func at(x, y int, b Button) *MouseEvent {
	return &MouseEvent{
		Pixel:  geom.Point{X: x, Y: y},
		Geo:    geom.Coordinate{X: float64(x), Y: float64(600 - y)},
		Button: b,
		InView: true,
	}
}

func near(a, b geom.Extent) bool {
	const eps = 1e-6
	return math.Abs(a.MinX-b.MinX) < eps && math.Abs(a.MinY-b.MinY) < eps &&
		math.Abs(a.MaxX-b.MaxX) < eps && math.Abs(a.MaxY-b.MaxY) < eps
}

func TestModifiersSelectionMode(t *testing.T) {
	tests := []struct {
		m    Modifiers
		want layer.SelectionMode
	}{
		{0, layer.Replace},
		{Alt, layer.Replace},
		{Shift, layer.Append},
		{Ctrl, layer.Invert},
		{Ctrl | Shift, layer.Invert},
	}
	for _, tt := range tests {
		if got := tt.m.SelectionMode(); got != tt.want {
			t.Errorf("SelectionMode(%d) = %v, want %v", tt.m, got, tt.want)
		}
	}
}

func TestMouseEventChannel(t *testing.T) {
	tests := []struct {
		e    MouseEvent
		want YieldStyle
	}{
		{MouseEvent{Button: ButtonLeft}, LeftButton},
		{MouseEvent{Button: ButtonRight}, RightButton},
		{MouseEvent{}, LeftButton | RightButton},
		{MouseEvent{Button: ButtonMiddle}, 0},
		{MouseEvent{Delta: -1}, Scroll},
	}
	for _, tt := range tests {
		if got := tt.e.Channel(); got != tt.want {
			t.Errorf("Channel(%+v) = %v, want %v", tt.e, got, tt.want)
		}
	}
}

func TestPanCommitsOnRelease(t *testing.T) {
	h := newFakeHost()
	p := NewPan()
	p.Init(h)

	p.OnMouseDown(at(100, 100, ButtonLeft))
	p.OnMouseMove(at(150, 120, ButtonLeft))
	if h.t.Extent != (geom.Extent{MinX: 0, MinY: 0, MaxX: 800, MaxY: 600}) {
		t.Fatal("extent changed during drag")
	}
	c := &recCanvas{}
	p.Draw(DrawArgs{Canvas: c, Transform: h.t})
	if c.lines != 1 {
		t.Errorf("guide lines = %d, want 1", c.lines)
	}
	p.OnMouseUp(at(150, 120, ButtonLeft))
	want := geom.Extent{MinX: -50, MinY: 20, MaxX: 750, MaxY: 620}
	if !near(h.t.Extent, want) {
		t.Errorf("extent = %v, want %v", h.t.Extent, want)
	}
	if h.resets != 1 {
		t.Errorf("resets = %d, want 1", h.resets)
	}
}

func TestPanCancelledOutsideView(t *testing.T) {
	h := newFakeHost()
	p := NewPan()
	p.Init(h)
	before := h.t.Extent

	p.OnMouseDown(at(100, 100, ButtonLeft))
	up := at(900, 100, ButtonLeft)
	up.InView = false
	p.OnMouseUp(up)
	if h.t.Extent != before {
		t.Errorf("extent = %v after cancelled drag", h.t.Extent)
	}

	p.OnMouseDown(at(100, 100, ButtonLeft))
	p.Unload()
	p.Init(h)
	p.OnMouseUp(at(200, 200, ButtonLeft))
	if h.t.Extent != before {
		t.Error("Unload() did not cancel the drag")
	}
}

func TestZoomScroll(t *testing.T) {
	h := newFakeHost()
	z := NewZoomScroll(1.25)
	z.Init(h)

	e := at(400, 300, ButtonNone)
	e.Delta = 1
	z.OnMouseWheel(e)
	if w := h.t.Extent.Width(); math.Abs(w-640) > 1e-9 {
		t.Errorf("width = %f, want 640", w)
	}
	if c := h.t.Extent.Center(); math.Abs(c.X-400) > 1e-9 || math.Abs(c.Y-300) > 1e-9 {
		t.Errorf("center moved to %v", c)
	}

	e.Delta = -20
	z.OnMouseWheel(e)
	if !near(h.t.Extent, h.max) {
		t.Errorf("zoom out not clamped: %v", h.t.Extent)
	}
	resets := h.resets
	z.OnMouseWheel(e)
	if h.resets != resets {
		t.Error("zoom out past max extent should be a no-op")
	}
	if resets != 2 {
		t.Errorf("resets = %d, want 2", resets)
	}
}

func TestClickZoom(t *testing.T) {
	h := newFakeHost()
	z := NewClickZoom(2)
	z.Init(h)

	z.OnMouseDown(at(400, 300, ButtonLeft))
	z.OnMouseUp(at(400, 300, ButtonLeft))
	if !near(h.t.Extent, geom.Extent{MinX: 200, MinY: 150, MaxX: 600, MaxY: 450}) {
		t.Fatalf("click zoom = %v", h.t.Extent)
	}

	z.OnMouseUp(at(400, 300, ButtonRight))
	if !near(h.t.Extent, geom.Extent{MinX: 0, MinY: 0, MaxX: 800, MaxY: 600}) {
		t.Fatalf("right click = %v", h.t.Extent)
	}

	z.OnMouseDown(at(0, 0, ButtonLeft))
	z.OnMouseMove(at(400, 300, ButtonLeft))
	c := &recCanvas{}
	z.Draw(DrawArgs{Canvas: c})
	if len(c.rects) != 1 {
		t.Errorf("drag rects = %d", len(c.rects))
	}
	z.OnMouseUp(at(400, 300, ButtonLeft))
	if !near(h.t.Extent, geom.Extent{MinX: 0, MinY: 300, MaxX: 400, MaxY: 600}) {
		t.Errorf("box zoom = %v", h.t.Extent)
	}
}

func TestKeyNavigation(t *testing.T) {
	h := newFakeHost()
	k := NewKeyNavigation(0.1, 2)
	k.Init(h)

	e := &KeyEvent{Key: "left"}
	k.OnKeyDown(e)
	if !e.Handled || !near(h.t.Extent, geom.Extent{MinX: -80, MinY: 0, MaxX: 720, MaxY: 600}) {
		t.Fatalf("left = %v handled=%v", h.t.Extent, e.Handled)
	}
	k.OnKeyDown(&KeyEvent{Key: "up"})
	k.OnKeyDown(&KeyEvent{Key: "+"})
	if w := h.t.Extent.Width(); math.Abs(w-400) > 1e-9 {
		t.Errorf("width after + = %f", w)
	}
	k.OnKeyDown(&KeyEvent{Key: "home"})
	if !near(h.t.Extent, h.max) {
		t.Errorf("home = %v", h.t.Extent)
	}
	other := &KeyEvent{Key: "x"}
	k.OnKeyDown(other)
	if other.Handled {
		t.Error("unbound key marked handled")
	}
	if h.resets != 4 {
		t.Errorf("resets = %d, want 4", h.resets)
	}
}

func TestGlyphClaimsClicks(t *testing.T) {
	h := newFakeHost()
	reg := NewRegistry(h, quiet())
	g := NewGlyph()
	s := NewSelect()
	reg.Add(g)
	reg.Add(s)
	reg.Activate("select")

	if b := g.Bounds(); b != (geom.Rectangle{X: 792, Y: 2, Width: 6, Height: 8}) {
		t.Fatalf("Bounds() = %v", b)
	}

	dispatch := func(e *MouseEvent, up bool) {
		for _, f := range reg.Targets(e.Channel()) {
			if up {
				f.OnMouseUp(e)
			} else {
				f.OnMouseDown(e)
			}
		}
	}
	down := at(794, 4, ButtonLeft)
	dispatch(down, false)
	if !down.Handled {
		t.Fatal("glyph did not handle the press")
	}
	if s.drag.on {
		t.Error("select started a drag on a handled press")
	}
	up := at(794, 4, ButtonLeft)
	dispatch(up, true)
	if !up.Handled || !near(h.t.Extent, h.max) {
		t.Errorf("handled=%v extent=%v", up.Handled, h.t.Extent)
	}

	c := &recCanvas{}
	reg.Draw(DrawArgs{Canvas: c, Transform: h.t})
	if len(c.rects) != 1 || len(c.text) != 1 {
		t.Errorf("glyph draw = %+v", c)
	}

	miss := at(100, 100, ButtonLeft)
	dispatch(miss, false)
	if miss.Handled || !s.drag.on {
		t.Error("press away from the glyph should reach select")
	}
}

func TestIdentifyShowsHits(t *testing.T) {
	pts := layer.NewFeatureLayer("wells", layer.Point, []geom.Feature{{Geometry: orb.Point{200, 400}}})
	h := newFakeHost(layer.LeafNode(pts))
	id := NewIdentify()
	id.Init(h)

	id.OnMouseDown(at(203, 198, ButtonLeft))
	id.OnMouseUp(at(203, 198, ButtonLeft))
	if len(h.identified) != 1 || len(h.identified[0].Hits) != 1 {
		t.Fatalf("identified = %+v", h.identified)
	}

	id.OnMouseDown(at(100, 100, ButtonLeft))
	id.OnMouseUp(at(300, 300, ButtonLeft))
	if len(h.identified) != 1 {
		t.Error("a drag should not identify")
	}
}

func TestLabelSelect(t *testing.T) {
	pts := layer.NewFeatureLayer("wells", layer.Point, []geom.Feature{
		{Geometry: orb.Point{200, 400}, Properties: map[string]any{"name": "w1"}},
	})
	pts.SetLabelField("name")
	h := newFakeHost(layer.LeafNode(pts))
	s := NewLabelSelect()
	s.Init(h)

	s.OnMouseDown(at(200, 200, ButtonLeft))
	s.OnMouseUp(at(200, 200, ButtonLeft))
	if !pts.IsLabelSelected(0) || pts.SelectedCount() != 0 {
		t.Errorf("labels=%d features=%d", pts.SelectedLabelCount(), pts.SelectedCount())
	}
	if len(h.rects) == 0 {
		t.Error("changed region not invalidated")
	}
}
