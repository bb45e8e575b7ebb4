package mapfn

// KeyNavigation pans with the arrow keys and zooms with +/-. Home shows the
// max extent. Held keys repeat quickly, so each step only requests a
// debounced reset.
type KeyNavigation struct {
	Base
	fraction float64
	factor   float64
}

// NewKeyNavigation returns keyboard navigation panning by fraction of the
// view per key press.
func NewKeyNavigation(fraction, zoomFactor float64) *KeyNavigation {
	if fraction <= 0 || fraction >= 1 {
		fraction = 0.1
	}
	if zoomFactor <= 1 {
		zoomFactor = 1.25
	}
	return &KeyNavigation{Base: NewBase("keys", Keyboard), fraction: fraction, factor: zoomFactor}
}

func (k *KeyNavigation) OnKeyDown(e *KeyEvent) {
	h := k.Host()
	if h == nil || e.Handled {
		return
	}
	ext := h.ViewExtents()
	dx, dy := ext.Width()*k.fraction, ext.Height()*k.fraction
	switch e.Key {
	case "left":
		h.SetViewExtents(ext.Translate(-dx, 0))
	case "right":
		h.SetViewExtents(ext.Translate(dx, 0))
	case "up":
		h.SetViewExtents(ext.Translate(0, dy))
	case "down":
		h.SetViewExtents(ext.Translate(0, -dy))
	case "+", "=":
		if !ZoomBy(h, ext.Center(), 1/k.factor) {
			return
		}
	case "-", "_":
		if !ZoomBy(h, ext.Center(), k.factor) {
			return
		}
	case "home", "0":
		ZoomToMax(h)
	default:
		return
	}
	e.Handled = true
	h.RequestReset()
}
