// Package view maps between client pixels and map units and coalesces
// expensive extent resets behind a debounce.
package view

import (
	"math"

	"geoview/internal/geom"
)

// Transform pairs a pixel rectangle (origin at the client top-left) with the
// geographic extent it displays. The y axis is inverted: map north is up,
// screen y grows downwards.
//
// Transform is a value; every method is a pure function of the receiver.
type Transform struct {
	Width  int
	Height int
	Extent geom.Extent
}

// New returns a transform for a w x h pixel client showing e.
func New(w, h int, e geom.Extent) Transform {
	return Transform{Width: w, Height: h, Extent: e}
}

// Resize returns t for a w x h client, keeping the extent.
func (t Transform) Resize(w, h int) Transform {
	t.Width, t.Height = w, h
	return t
}

// Valid reports whether the transform can map coordinates. A zero-sized client
// or a degenerate extent cannot.
func (t Transform) Valid() bool {
	return t.Width > 0 && t.Height > 0 && !t.Extent.Degenerate()
}

// Bounds returns the client rectangle.
func (t Transform) Bounds() geom.Rectangle {
	return geom.Rectangle{Width: t.Width, Height: t.Height}
}

// UnitsPerPixel returns map units per pixel along x and y.
func (t Transform) UnitsPerPixel() (float64, float64) {
	if !t.Valid() {
		return 0, 0
	}
	return t.Extent.Width() / float64(t.Width), t.Extent.Height() / float64(t.Height)
}

// GeoToScreen maps c to fractional pixel coordinates.
func (t Transform) GeoToScreen(c geom.Coordinate) (float64, float64, bool) {
	if !t.Valid() {
		return 0, 0, false
	}
	e := t.Extent
	px := (c.X - e.MinX) * float64(t.Width) / (e.MaxX - e.MinX)
	py := (e.MaxY - c.Y) * float64(t.Height) / (e.MaxY - e.MinY)
	return px, py, true
}

// GeoToPixel maps c to the nearest pixel. ok is false for a degenerate transform,
// in which case the zero Point is returned.
func (t Transform) GeoToPixel(c geom.Coordinate) (geom.Point, bool) {
	px, py, ok := t.GeoToScreen(c)
	if !ok {
		return geom.Point{}, false
	}
	return geom.Point{X: clampInt(math.Round(px)), Y: clampInt(math.Round(py))}, true
}

// ScreenToGeo maps fractional pixel coordinates to map units.
func (t Transform) ScreenToGeo(px, py float64) (geom.Coordinate, bool) {
	if !t.Valid() {
		return geom.Coordinate{}, false
	}
	e := t.Extent
	return geom.Coordinate{
		X: e.MinX + px*(e.MaxX-e.MinX)/float64(t.Width),
		Y: e.MaxY - py*(e.MaxY-e.MinY)/float64(t.Height),
	}, true
}

// PixelToGeo maps a pixel to map units. ok is false for a degenerate transform,
// in which case the zero Coordinate is returned.
func (t Transform) PixelToGeo(p geom.Point) (geom.Coordinate, bool) {
	return t.ScreenToGeo(float64(p.X), float64(p.Y))
}

// PixelToGeoRect maps a pixel rectangle to a normalized extent.
func (t Transform) PixelToGeoRect(r geom.Rectangle) (geom.Extent, bool) {
	a, ok := t.PixelToGeo(geom.Point{X: r.X, Y: r.Y})
	if !ok {
		return geom.Extent{}, false
	}
	b, _ := t.PixelToGeo(geom.Point{X: r.Right(), Y: r.Bottom()})
	return geom.NewExtent(a, b), true
}

// GeoToPixelRect maps an extent to a normalized pixel rectangle.
func (t Transform) GeoToPixelRect(e geom.Extent) (geom.Rectangle, bool) {
	a, ok := t.GeoToPixel(geom.Coordinate{X: e.MinX, Y: e.MinY})
	if !ok {
		return geom.Rectangle{}, false
	}
	b, _ := t.GeoToPixel(geom.Coordinate{X: e.MaxX, Y: e.MaxY})
	return geom.RectFromPoints(a, b), true
}

// clampInt keeps far off-screen projections from overflowing int.
func clampInt(v float64) int {
	const limit = 1 << 30
	switch {
	case math.IsNaN(v):
		return 0
	case v > limit:
		return limit
	case v < -limit:
		return -limit
	}
	return int(v)
}
