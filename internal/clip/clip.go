// Package clip implements Cohen–Sutherland clipping of segments and
// polylines against an axis-aligned window.
//
// The window is a geom.Extent in whatever units the points use: pixels when
// clipping for rendering, map units when testing hits against a tolerance
// rectangle. Points on the window boundary count as inside.
package clip

import (
	"github.com/paulmach/orb"

	"geoview/internal/geom"
)

// MaxIterations bounds the clip loop. Pathological input (segments parallel to
// and grazing an edge) can make the floating point intersection oscillate;
// the loop stops here and reports whatever status it reached.
const MaxIterations = 5000

// Status describes how a segment relates to the clip window. Flags combine:
// a segment entering and leaving the window is ClippedFirst|ClippedLast.
type Status uint8

const (
	Unknown Status = 0
	Inside  Status = 1 << (iota - 1)
	Outside
	ClippedFirst
	ClippedLast
)

func (s Status) String() string {
	if s == Unknown {
		return "Unknown"
	}
	var out string
	for _, f := range []struct {
		bit  Status
		name string
	}{{Inside, "Inside"}, {Outside, "Outside"}, {ClippedFirst, "ClippedFirst"}, {ClippedLast, "ClippedLast"}} {
		if s&f.bit == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += f.name
	}
	return out
}

// Visible reports whether any part of the segment lies in the window.
func (s Status) Visible() bool {
	return s != Unknown && s&Outside == 0
}

// outcode bits, one per violated edge.
const (
	left   = 1
	right  = 2
	bottom = 4
	top    = 8
)

func outcode(p orb.Point, w geom.Extent) int {
	code := 0
	if p[0] < w.MinX {
		code |= left
	} else if p[0] > w.MaxX {
		code |= right
	}
	if p[1] < w.MinY {
		code |= bottom
	} else if p[1] > w.MaxY {
		code |= top
	}
	return code
}

// Line clips the segment a-b against w. It returns the clipped endpoints and
// how the segment was treated. An Outside segment is returned unchanged.
func Line(a, b orb.Point, w geom.Extent) (orb.Point, orb.Point, Status) {
	p, q := a, b
	cp, cq := outcode(p, w), outcode(q, w)
	var st Status
	for i := 0; i < MaxIterations; i++ {
		if cp|cq == 0 {
			if st == Unknown {
				st = Inside
			}
			return p, q, st
		}
		if cp&cq != 0 {
			return a, b, Outside
		}
		first := cp != 0
		code := cp
		if !first {
			code = cq
		}
		var x, y float64
		switch {
		case code&top != 0:
			x = p[0] + (q[0]-p[0])*(w.MaxY-p[1])/(q[1]-p[1])
			y = w.MaxY
		case code&bottom != 0:
			x = p[0] + (q[0]-p[0])*(w.MinY-p[1])/(q[1]-p[1])
			y = w.MinY
		case code&right != 0:
			y = p[1] + (q[1]-p[1])*(w.MaxX-p[0])/(q[0]-p[0])
			x = w.MaxX
		default:
			y = p[1] + (q[1]-p[1])*(w.MinX-p[0])/(q[0]-p[0])
			x = w.MinX
		}
		if first {
			p = orb.Point{x, y}
			cp = outcode(p, w)
			st |= ClippedFirst
		} else {
			q = orb.Point{x, y}
			cq = outcode(q, w)
			st |= ClippedLast
		}
	}
	return p, q, st
}

// LineString clips ls against w and returns the visible pieces in order.
// A linestring leaving and re-entering the window yields one polyline per
// inside span; pieces with fewer than two points are dropped.
func LineString(ls orb.LineString, w geom.Extent) []orb.LineString {
	var out []orb.LineString
	var cur orb.LineString
	flush := func() {
		if len(cur) >= 2 {
			out = append(out, cur)
		}
		cur = nil
	}
	for i := 0; i+1 < len(ls); i++ {
		a, b, st := Line(ls[i], ls[i+1], w)
		if !st.Visible() {
			flush()
			continue
		}
		if st&ClippedFirst != 0 || len(cur) == 0 {
			flush()
			cur = orb.LineString{a}
		}
		cur = append(cur, b)
		if st&ClippedLast != 0 {
			flush()
		}
	}
	flush()
	return out
}

// Ring clips a closed ring as a linestring, closing it first if needed.
func Ring(r orb.Ring, w geom.Extent) []orb.LineString {
	ls := orb.LineString(r)
	if n := len(ls); n > 1 && ls[0] != ls[n-1] {
		ls = append(append(orb.LineString{}, ls...), ls[0])
	}
	return LineString(ls, w)
}

// SegmentHits reports whether the segment a-b touches w.
func SegmentHits(a, b orb.Point, w geom.Extent) bool {
	_, _, st := Line(a, b, w)
	return st.Visible()
}
