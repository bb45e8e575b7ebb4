package mapfn

import (
	"geoview/internal/selection"
)

// Select selects features under a left-button click or drag rectangle. Held
// modifiers pick the mode: none replaces, Shift appends, Ctrl inverts.
type Select struct {
	Base
	labels bool
	drag   drag
}

// NewSelect returns the feature selection function.
func NewSelect() *Select { return &Select{Base: NewBase("select", LeftButton)} }

// NewLabelSelect returns a selection function acting on labels instead of features.
func NewLabelSelect() *Select {
	return &Select{Base: NewBase("label-select", LeftButton), labels: true}
}

func (s *Select) OnMouseDown(e *MouseEvent) {
	if s.Host() == nil || e.Handled || !e.InView || e.Button != ButtonLeft {
		return
	}
	s.drag.begin(e.Pixel)
}

func (s *Select) OnMouseMove(e *MouseEvent) {
	if s.drag.on {
		s.drag.move(e.Pixel)
		s.Host().Invalidate()
	}
}

func (s *Select) OnMouseUp(e *MouseEvent) {
	h := s.Host()
	if h == nil {
		return
	}
	start, end, ok := s.drag.finish(e.Pixel)
	if !ok {
		return
	}
	if !e.InView || e.Handled {
		h.Invalidate()
		return
	}
	r := h.Resolver()
	mode := e.Modifiers.SelectionMode()
	var res selection.Result
	var err error
	if s.labels {
		res, err = r.SelectLabels(h.Transform(), h.Layers(), start, end, mode)
	} else {
		res, err = r.Select(h.Transform(), h.Layers(), start, end, mode)
	}
	if err != nil {
		h.SetStatus("select: " + err.Error())
	} else {
		h.SetStatus(res.Message)
	}
	h.Invalidate()
	if res.Changed {
		if rect, ok := h.Transform().GeoToPixelRect(res.Region); ok {
			h.InvalidateRect(rect)
		}
	}
}

func (s *Select) Draw(args DrawArgs) {
	if s.drag.on && s.drag.start != s.drag.end {
		args.Canvas.Rect(s.drag.rect())
	}
}

func (s *Select) Unload() {
	s.drag.cancel()
	s.Base.Unload()
}
