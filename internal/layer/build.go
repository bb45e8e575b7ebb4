package layer

import (
	"github.com/paulmach/orb"

	"geoview/internal/geom"
)

// TypeOf maps an orb geometry onto the layer geometry type that holds it.
func TypeOf(g orb.Geometry) GeometryType {
	switch g.(type) {
	case orb.Point:
		return Point
	case orb.MultiPoint:
		return MultiPoint
	case orb.LineString, orb.MultiLineString:
		return Line
	case orb.Ring, orb.Polygon, orb.MultiPolygon, orb.Bound:
		return Polygon
	}
	return Unspecified
}

// FromData splits a dataset into one leaf per geometry type, grouped under
// name. Leaves are ordered polygons, lines, multipoints, points so that points
// draw last and are hit first. Collections are flattened into their members.
func FromData(name string, data geom.Data, labelField string) *Group {
	buckets := make(map[GeometryType][]geom.Feature)
	var add func(g orb.Geometry, props map[string]any)
	add = func(g orb.Geometry, props map[string]any) {
		if c, ok := g.(orb.Collection); ok {
			for _, m := range c {
				add(m, props)
			}
			return
		}
		t := TypeOf(g)
		if t == Unspecified {
			return
		}
		buckets[t] = append(buckets[t], geom.Feature{Geometry: g, Properties: props})
	}
	for _, f := range data.Features {
		add(f.Geometry, f.Properties)
	}

	g := NewGroup(name)
	for _, t := range [...]GeometryType{Polygon, Line, MultiPoint, Point} {
		fs := buckets[t]
		if len(fs) == 0 {
			continue
		}
		l := NewFeatureLayer(name+" "+t.String()+"s", t, fs)
		l.SetLabelField(labelField)
		g.Add(LeafNode(l))
	}
	return g
}
