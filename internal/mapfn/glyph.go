package mapfn

import "geoview/internal/geom"

const (
	glyphWidth  = 6
	glyphHeight = 8
	glyphMargin = 2
)

// Glyph is a home button drawn in the top-right corner of the view. It
// receives every event ahead of the mode functions; clicks that land on it are
// marked Handled and zoom to the max extent.
type Glyph struct {
	Base
	pressed bool
	hover   bool
}

func NewGlyph() *Glyph { return &Glyph{Base: NewBase("glyph", AlwaysOn)} }

// Bounds returns the button rectangle in client pixels.
func (g *Glyph) Bounds() geom.Rectangle {
	h := g.Host()
	if h == nil {
		return geom.Rectangle{}
	}
	t := h.Transform()
	return geom.Rectangle{X: t.Width - glyphWidth - glyphMargin, Y: glyphMargin, Width: glyphWidth, Height: glyphHeight}
}

func (g *Glyph) hit(e *MouseEvent) bool {
	return g.Host() != nil && e.InView && g.Bounds().Contains(e.Pixel)
}

func (g *Glyph) OnMouseDown(e *MouseEvent) {
	if e.Button != ButtonLeft || !g.hit(e) {
		return
	}
	g.pressed = true
	e.Handled = true
}

func (g *Glyph) OnMouseMove(e *MouseEvent) {
	if g.Host() == nil {
		return
	}
	if over := g.hit(e); over != g.hover {
		g.hover = over
		g.Host().InvalidateRect(g.Bounds())
	}
}

func (g *Glyph) OnMouseUp(e *MouseEvent) {
	if !g.pressed {
		return
	}
	g.pressed = false
	if !g.hit(e) {
		return
	}
	e.Handled = true
	h := g.Host()
	ZoomToMax(h)
	h.RequestReset()
	h.SetStatus("zoomed to full extent")
}

func (g *Glyph) Draw(args DrawArgs) {
	if g.Host() == nil {
		return
	}
	b := g.Bounds()
	args.Canvas.Rect(b)
	label := "⌂"
	if g.hover {
		label = "◆"
	}
	args.Canvas.Text(geom.Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}, label)
}

func (g *Glyph) Unload() {
	g.pressed, g.hover = false, false
	g.Base.Unload()
}
