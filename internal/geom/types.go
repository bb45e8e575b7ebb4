package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// Coordinate is a location in map units.
type Coordinate struct {
	X float64
	Y float64
}

// Point is a location in client pixels, origin at the top-left corner.
type Point struct {
	X int
	Y int
}

// Rectangle is a pixel rectangle anchored at its top-left corner.
type Rectangle struct {
	X      int
	Y      int
	Width  int
	Height int
}

// RectAround returns the rectangle (x-half, y-half, 2*half, 2*half).
func RectAround(p Point, half int) Rectangle {
	return Rectangle{X: p.X - half, Y: p.Y - half, Width: 2 * half, Height: 2 * half}
}

// RectFromPoints returns the normalized rectangle spanned by two corners.
func RectFromPoints(a, b Point) Rectangle {
	x0, x1 := min(a.X, b.X), max(a.X, b.X)
	y0, y1 := min(a.Y, b.Y), max(a.Y, b.Y)
	return Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Right returns the x coordinate of the right edge.
func (r Rectangle) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rectangle) Bottom() int { return r.Y + r.Height }

// Contains reports whether p lies inside r, edges included.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Extent is an axis-aligned rectangle in map units.
// A well-formed extent has MaxX >= MinX and MaxY >= MinY.
type Extent struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// NewExtent returns the normalized extent spanned by two coordinates.
func NewExtent(a, b Coordinate) Extent {
	return Extent{
		MinX: math.Min(a.X, b.X),
		MinY: math.Min(a.Y, b.Y),
		MaxX: math.Max(a.X, b.X),
		MaxY: math.Max(a.Y, b.Y),
	}
}

// Width returns the extent width in map units.
func (e Extent) Width() float64 { return e.MaxX - e.MinX }

// Height returns the extent height in map units.
func (e Extent) Height() float64 { return e.MaxY - e.MinY }

// Center returns the midpoint of the extent.
func (e Extent) Center() Coordinate {
	return Coordinate{X: (e.MinX + e.MaxX) / 2, Y: (e.MinY + e.MaxY) / 2}
}

// Valid reports whether the extent is well formed and finite.
func (e Extent) Valid() bool {
	for _, v := range [...]float64{e.MinX, e.MinY, e.MaxX, e.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return e.MaxX >= e.MinX && e.MaxY >= e.MinY
}

// Degenerate reports whether the extent has zero width or height.
func (e Extent) Degenerate() bool {
	return !e.Valid() || e.MaxX == e.MinX || e.MaxY == e.MinY
}

// IsZero reports whether e is the zero value.
func (e Extent) IsZero() bool { return e == Extent{} }

// Contains reports whether c lies inside e, edges included.
func (e Extent) Contains(c Coordinate) bool {
	return c.X >= e.MinX && c.X <= e.MaxX && c.Y >= e.MinY && c.Y <= e.MaxY
}

// ContainsExtent reports whether o lies completely inside e.
func (e Extent) ContainsExtent(o Extent) bool {
	return o.MinX >= e.MinX && o.MaxX <= e.MaxX && o.MinY >= e.MinY && o.MaxY <= e.MaxY
}

// Intersects reports whether the two extents share at least one point.
func (e Extent) Intersects(o Extent) bool {
	return !(o.MaxX < e.MinX || o.MinX > e.MaxX || o.MaxY < e.MinY || o.MinY > e.MaxY)
}

// Union returns the smallest extent covering both.
func (e Extent) Union(o Extent) Extent {
	return Extent{
		MinX: math.Min(e.MinX, o.MinX),
		MinY: math.Min(e.MinY, o.MinY),
		MaxX: math.Max(e.MaxX, o.MaxX),
		MaxY: math.Max(e.MaxY, o.MaxY),
	}
}

// Extend grows e to include c.
func (e Extent) Extend(c Coordinate) Extent {
	return Extent{
		MinX: math.Min(e.MinX, c.X),
		MinY: math.Min(e.MinY, c.Y),
		MaxX: math.Max(e.MaxX, c.X),
		MaxY: math.Max(e.MaxY, c.Y),
	}
}

// Expand returns e grown by margin on every side.
func (e Extent) Expand(margin float64) Extent {
	return Extent{MinX: e.MinX - margin, MinY: e.MinY - margin, MaxX: e.MaxX + margin, MaxY: e.MaxY + margin}
}

// Scale returns e scaled by factor around c. Factors below 1 zoom in.
func (e Extent) Scale(c Coordinate, factor float64) Extent {
	return Extent{
		MinX: c.X - (c.X-e.MinX)*factor,
		MinY: c.Y - (c.Y-e.MinY)*factor,
		MaxX: c.X + (e.MaxX-c.X)*factor,
		MaxY: c.Y + (e.MaxY-c.Y)*factor,
	}
}

// Translate returns e shifted by (dx, dy) map units.
func (e Extent) Translate(dx, dy float64) Extent {
	return Extent{MinX: e.MinX + dx, MinY: e.MinY + dy, MaxX: e.MaxX + dx, MaxY: e.MaxY + dy}
}

// FitAspect grows e along one axis so its aspect ratio matches a w x h pixel
// rectangle, keeping the center fixed.
func (e Extent) FitAspect(w, h int) Extent {
	if w <= 0 || h <= 0 || e.Degenerate() {
		return e
	}
	want := float64(w) / float64(h)
	have := e.Width() / e.Height()
	c := e.Center()
	if have < want {
		half := e.Height() * want / 2
		return Extent{MinX: c.X - half, MinY: e.MinY, MaxX: c.X + half, MaxY: e.MaxY}
	}
	half := e.Width() / want / 2
	return Extent{MinX: e.MinX, MinY: c.Y - half, MaxX: e.MaxX, MaxY: c.Y + half}
}

// Bound converts e to an orb.Bound.
func (e Extent) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{e.MinX, e.MinY}, Max: orb.Point{e.MaxX, e.MaxY}}
}

// FromBound converts an orb.Bound to an Extent.
func FromBound(b orb.Bound) Extent {
	return Extent{MinX: b.Min[0], MinY: b.Min[1], MaxX: b.Max[0], MaxY: b.Max[1]}
}

// Feature is a single geometry with its attribute properties.
type Feature struct {
	Geometry   orb.Geometry
	Properties map[string]any
}

// Data is a loaded dataset ready to be split into layers.
type Data struct {
	Features []Feature
	Extent   Extent
}

func (d *Data) add(g orb.Geometry, props map[string]any) {
	if g == nil {
		return
	}
	ext := FromBound(g.Bound())
	if len(d.Features) == 0 {
		d.Extent = ext
	} else {
		d.Extent = d.Extent.Union(ext)
	}
	d.Features = append(d.Features, Feature{Geometry: g, Properties: props})
}
