package mapfn

import "geoview/internal/selection"

// Identify reports every feature under a left click on every visible layer.
type Identify struct {
	Base
	drag drag
}

func NewIdentify() *Identify { return &Identify{Base: NewBase("identify", LeftButton)} }

func (i *Identify) OnMouseDown(e *MouseEvent) {
	if i.Host() == nil || e.Handled || !e.InView || e.Button != ButtonLeft {
		return
	}
	i.drag.begin(e.Pixel)
}

func (i *Identify) OnMouseUp(e *MouseEvent) {
	h := i.Host()
	if h == nil {
		return
	}
	start, end, ok := i.drag.finish(e.Pixel)
	if !ok || !e.InView || e.Handled {
		return
	}
	r := h.Resolver()
	if !selection.IsClick(start, end, r.Config().ClickThresholdPx) {
		return
	}
	res, err := r.Identify(h.Transform(), h.Layers(), end)
	if err != nil {
		h.SetStatus("identify: " + err.Error())
	} else {
		h.SetStatus(res.Message)
	}
	h.ShowIdentify(res)
}

func (i *Identify) Unload() {
	i.drag.cancel()
	i.Base.Unload()
}
