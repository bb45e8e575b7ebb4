package mapfn

import "geoview/internal/geom"

// drag tracks a button-held gesture in client pixels.
type drag struct {
	on         bool
	start, end geom.Point
}

func (d *drag) begin(p geom.Point) { d.on, d.start, d.end = true, p, p }
func (d *drag) move(p geom.Point)  { d.end = p }
func (d *drag) cancel()            { d.on = false }
func (d *drag) rect() geom.Rectangle {
	return geom.RectFromPoints(d.start, d.end)
}

// finish ends the gesture at p. ok is false when no gesture was in progress.
func (d *drag) finish(p geom.Point) (start, end geom.Point, ok bool) {
	if !d.on {
		return geom.Point{}, geom.Point{}, false
	}
	d.on = false
	d.end = p
	return d.start, p, true
}
