package layer

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"geoview/internal/clip"
	"geoview/internal/geom"
)

// Intersects reports whether g shares at least one point with e.
func Intersects(g orb.Geometry, e geom.Extent) bool {
	if g == nil || !e.Intersects(geom.FromBound(g.Bound())) {
		return false
	}
	switch g := g.(type) {
	case orb.Point:
		return e.Contains(geom.Coordinate{X: g[0], Y: g[1]})
	case orb.MultiPoint:
		for _, p := range g {
			if e.Contains(geom.Coordinate{X: p[0], Y: p[1]}) {
				return true
			}
		}
	case orb.LineString:
		return lineHits(g, e)
	case orb.MultiLineString:
		for _, ls := range g {
			if lineHits(ls, e) {
				return true
			}
		}
	case orb.Ring:
		return polygonHits(orb.Polygon{g}, e)
	case orb.Polygon:
		return polygonHits(g, e)
	case orb.MultiPolygon:
		for _, p := range g {
			if polygonHits(p, e) {
				return true
			}
		}
	case orb.Collection:
		for _, c := range g {
			if Intersects(c, e) {
				return true
			}
		}
	case orb.Bound:
		return true
	}
	return false
}

func lineHits(ls orb.LineString, e geom.Extent) bool {
	if len(ls) == 1 {
		return e.Contains(geom.Coordinate{X: ls[0][0], Y: ls[0][1]})
	}
	for i := 0; i+1 < len(ls); i++ {
		if clip.SegmentHits(ls[i], ls[i+1], e) {
			return true
		}
	}
	return false
}

// polygonHits tests the boundary first; when no edge touches the window the
// window is either wholly inside the polygon or disjoint from it.
func polygonHits(p orb.Polygon, e geom.Extent) bool {
	for _, r := range p {
		if lineHits(closed(r), e) {
			return true
		}
	}
	if len(p) == 0 {
		return false
	}
	c := e.Center()
	return planar.PolygonContains(p, orb.Point{c.X, c.Y})
}

func closed(r orb.Ring) orb.LineString {
	ls := orb.LineString(r)
	if n := len(ls); n > 1 && ls[0] != ls[n-1] {
		ls = append(append(orb.LineString{}, ls...), ls[0])
	}
	return ls
}

// corrupt reports whether g cannot be hit tested.
func corrupt(g orb.Geometry) bool {
	if g == nil {
		return true
	}
	b := g.Bound()
	for _, v := range [...]float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// anchor returns where a feature's label sits.
func anchor(g orb.Geometry) orb.Point {
	switch g := g.(type) {
	case orb.Point:
		return g
	case orb.LineString:
		if len(g) > 0 {
			return g[len(g)/2]
		}
	}
	c, _ := planar.CentroidArea(g)
	return c
}
