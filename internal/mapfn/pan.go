package mapfn

// Pan drags the map with the left button. The new extent is applied on
// release; while dragging only a guide line is drawn.
type Pan struct {
	Base
	drag drag
}

func NewPan() *Pan { return &Pan{Base: NewBase("pan", LeftButton)} }

func (p *Pan) OnMouseDown(e *MouseEvent) {
	if p.Host() == nil || e.Handled || !e.InView || e.Button != ButtonLeft {
		return
	}
	p.drag.begin(e.Pixel)
}

func (p *Pan) OnMouseMove(e *MouseEvent) {
	if p.drag.on {
		p.drag.move(e.Pixel)
		p.Host().Invalidate()
	}
}

func (p *Pan) OnMouseUp(e *MouseEvent) {
	h := p.Host()
	if h == nil {
		return
	}
	start, end, ok := p.drag.finish(e.Pixel)
	if !ok {
		return
	}
	if !e.InView {
		h.Invalidate()
		return
	}
	t := h.Transform()
	a, ok := t.PixelToGeo(start)
	if !ok {
		return
	}
	b, _ := t.PixelToGeo(end)
	if a == b {
		return
	}
	h.SetViewExtents(h.ViewExtents().Translate(a.X-b.X, a.Y-b.Y))
	h.RequestReset()
}

func (p *Pan) Draw(args DrawArgs) {
	if p.drag.on && p.drag.start != p.drag.end {
		args.Canvas.Line(p.drag.start, p.drag.end)
	}
}

func (p *Pan) Unload() {
	p.drag.cancel()
	p.Base.Unload()
}
