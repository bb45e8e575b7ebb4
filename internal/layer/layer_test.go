package layer

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"

	"geoview/internal/geom"
)

func pointLayer(name string, pts ...orb.Point) *FeatureLayer {
	fs := make([]geom.Feature, 0, len(pts))
	for i, p := range pts {
		fs = append(fs, geom.Feature{Geometry: p, Properties: map[string]any{"name": name, "n": i}})
	}
	return NewFeatureLayer(name, Point, fs)
}

func square(minX, minY, maxX, maxY float64) orb.Polygon {
	return orb.Polygon{{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY}}}
}

func box(cx, cy, half float64) geom.Extent {
	return geom.Extent{MinX: cx - half, MinY: cy - half, MaxX: cx + half, MaxY: cy + half}
}

func TestEnvelope(t *testing.T) {
	tol := box(0, 0, 8)
	strict := box(0, 0, 1)
	for _, gt := range []GeometryType{Point, MultiPoint, Line, Raster, Unspecified} {
		if got := Envelope(gt, tol, strict); got != tol {
			t.Errorf("Envelope(%v) = %v, want tolerant", gt, got)
		}
	}
	if got := Envelope(Polygon, tol, strict); got != strict {
		t.Errorf("Envelope(polygon) = %v, want strict", got)
	}
}

// One map unit per pixel: a click 5 units from a polygon edge misses it while
// a point 5 units away is still found.
func TestEnvelopePolicyAtFivePixels(t *testing.T) {
	poly := NewFeatureLayer("parcels", Polygon, []geom.Feature{{Geometry: square(10, 0, 20, 10)}})
	pts := pointLayer("wells", orb.Point{10, 5})

	click := geom.Coordinate{X: 5, Y: 5}
	tol, strict := box(click.X, click.Y, 8), box(click.X, click.Y, 1)

	hits, err := poly.Identify(tol, strict)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("polygon hits = %d, want 0", len(hits))
	}
	hits, err = pts.Identify(tol, strict)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Errorf("point hits = %d, want 1", len(hits))
	}
}

func TestIntersects(t *testing.T) {
	win := geom.Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	tests := []struct {
		name string
		g    orb.Geometry
		want bool
	}{
		{"point inside", orb.Point{5, 5}, true},
		{"point on edge", orb.Point{10, 5}, true},
		{"point outside", orb.Point{11, 5}, false},
		{"multipoint one inside", orb.MultiPoint{{20, 20}, {1, 1}}, true},
		{"line crossing", orb.LineString{{-5, 5}, {15, 5}}, true},
		{"line bbox overlaps but misses", orb.LineString{{-5, 8}, {3, 16}}, false},
		{"polygon containing window", square(-10, -10, 20, 20), true},
		{"polygon edge crossing", square(5, 5, 15, 15), true},
		{"polygon outside", square(11, 11, 20, 20), false},
		{"polygon hole around window", orb.Polygon{
			{{-10, -10}, {20, -10}, {20, 20}, {-10, 20}, {-10, -10}},
			{{-5, -5}, {15, -5}, {15, 15}, {-5, 15}, {-5, -5}},
		}, false},
		{"collection", orb.Collection{orb.Point{50, 50}, orb.Point{2, 2}}, true},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(tt.g, win); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectModes(t *testing.T) {
	l := pointLayer("p", orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{20, 0})
	at := func(x float64) (geom.Extent, geom.Extent) { return box(x, 0, 1), box(x, 0, 0.1) }

	tol, strict := at(0)
	if _, changed, err := l.Select(tol, strict, Replace); err != nil || !changed {
		t.Fatalf("Select() changed=%v err=%v", changed, err)
	}
	tol, strict = at(10)
	l.Select(tol, strict, Append)
	if got := l.Selection(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("after append = %v", got)
	}

	tol, strict = at(20)
	region, changed, _ := l.Select(tol, strict, Replace)
	if got := l.Selection(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("after replace = %v", got)
	}
	if !changed || region.MinX != 0 || region.MaxX != 20 {
		t.Errorf("replace region = %v", region)
	}

	tol, strict = at(20)
	l.InvertSelection(tol, strict)
	tol, strict = at(0)
	l.Select(tol, strict, Invert)
	if got := l.Selection(); len(got) != 1 || got[0] != 0 {
		t.Fatalf("after invert = %v", got)
	}

	if _, changed := l.ClearSelection(); !changed {
		t.Error("ClearSelection() reported no change")
	}
	if _, changed := l.ClearSelection(); changed {
		t.Error("second ClearSelection() reported a change")
	}
}

func TestSelectMissReplaceClears(t *testing.T) {
	l := pointLayer("p", orb.Point{0, 0})
	l.Select(box(0, 0, 1), box(0, 0, 1), Replace)
	if _, changed, _ := l.Select(box(50, 50, 1), box(50, 50, 1), Replace); !changed {
		t.Error("replace miss should clear")
	}
	if l.SelectedCount() != 0 {
		t.Errorf("SelectedCount() = %d", l.SelectedCount())
	}
}

func TestSelectLabels(t *testing.T) {
	l := NewFeatureLayer("zones", Polygon, []geom.Feature{
		{Geometry: square(0, 0, 10, 10), Properties: map[string]any{"name": "a"}},
		{Geometry: square(20, 0, 30, 10), Properties: map[string]any{"name": "b"}},
	})
	if _, changed, _ := l.SelectLabels(box(5, 5, 1), box(5, 5, 1), Replace); changed {
		t.Fatal("labels selected without a label field")
	}
	l.SetLabelField("name")
	if _, changed, _ := l.SelectLabels(box(5, 5, 1), box(5, 5, 1), Replace); !changed {
		t.Fatal("label at centroid not selected")
	}
	if !l.IsLabelSelected(0) || l.IsLabelSelected(1) || l.SelectedCount() != 0 {
		t.Errorf("labels = %d features = %d", l.SelectedLabelCount(), l.SelectedCount())
	}
	text, p, ok := l.Label(1)
	if !ok || text != "b" || p != (orb.Point{25, 5}) {
		t.Errorf("Label(1) = %q %v %v", text, p, ok)
	}
}

func TestCorruptGeometry(t *testing.T) {
	l := NewFeatureLayer("bad", Point, []geom.Feature{
		{Geometry: orb.Point{1, 1}},
		{Geometry: orb.Point{math.NaN(), 1}},
	})
	hits, err := l.Identify(box(1, 1, 1), box(1, 1, 1))
	if len(hits) != 1 {
		t.Errorf("hits = %d, want 1", len(hits))
	}
	if !errors.Is(err, ErrCorruptGeometry) {
		t.Errorf("err = %v, want ErrCorruptGeometry", err)
	}
	var le *Error
	if !errors.As(err, &le) || le.Layer != "bad" {
		t.Errorf("err = %#v, want *Error for layer bad", err)
	}
}

func TestWalkOrder(t *testing.T) {
	a, b, c, d := pointLayer("a"), pointLayer("b"), pointLayer("c"), pointLayer("d")
	inner := NewGroup("inner", LeafNode(b), LeafNode(c))
	roots := []Node{LeafNode(a), GroupNode(inner), LeafNode(d)}

	names := func(ls []Layer) string {
		s := ""
		for _, l := range ls {
			s += l.Name()
		}
		return s
	}
	if got := names(Leaves(roots, Natural)); got != "abcd" {
		t.Errorf("natural = %q", got)
	}
	if got := names(Leaves(roots, Reversed)); got != "dcba" {
		t.Errorf("reversed = %q", got)
	}

	c.SetVisible(false)
	if got := names(VisibleLeaves(roots, Reversed)); got != "dba" {
		t.Errorf("visible = %q", got)
	}
	inner.SetVisible(false)
	c.SetVisible(true)
	if got := names(VisibleLeaves(roots, Natural)); got != "ad" {
		t.Errorf("hidden group = %q", got)
	}

	n := 0
	if Walk(roots, Natural, func(Layer) bool { n++; return n < 2 }) {
		t.Error("Walk() should report early stop")
	}
	if n != 2 {
		t.Errorf("visited %d after stop, want 2", n)
	}
}

func TestFlatten(t *testing.T) {
	inner := NewGroup("inner", LeafNode(pointLayer("b")), LeafNode(pointLayer("c")))
	roots := []Node{LeafNode(pointLayer("a")), GroupNode(inner)}
	got := Flatten(roots)
	want := []struct {
		name  string
		depth int
	}{{"inner", 0}, {"c", 1}, {"b", 1}, {"a", 0}}
	if len(got) != len(want) {
		t.Fatalf("Flatten() len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Node.Name() != w.name || got[i].Depth != w.depth {
			t.Errorf("entry %d = %s@%d, want %s@%d", i, got[i].Node.Name(), got[i].Depth, w.name, w.depth)
		}
	}
}

func TestGroupExtentAndRemove(t *testing.T) {
	a := pointLayer("a", orb.Point{0, 0}, orb.Point{1, 1})
	b := pointLayer("b", orb.Point{5, -2})
	g := NewGroup("g", LeafNode(a), LeafNode(b))
	want := geom.Extent{MinX: 0, MinY: -2, MaxX: 5, MaxY: 1}
	if got := g.Extent(); got != want {
		t.Errorf("Extent() = %v, want %v", got, want)
	}
	if !g.Remove(b.ID()) || g.Len() != 1 {
		t.Fatalf("Remove() failed, len = %d", g.Len())
	}
	if g.Remove(b.ID()) {
		t.Error("second Remove() succeeded")
	}
}

func TestReproject(t *testing.T) {
	l := pointLayer("p", orb.Point{0, 0}, orb.Point{180, 0})
	orig := l.Features()[1].Geometry
	if !l.CanReproject(WebMercator) || l.CanReproject("EPSG:27700") {
		t.Fatal("CanReproject() mismatch")
	}
	if err := l.Reproject(WebMercator); err != nil {
		t.Fatal(err)
	}
	if l.Projection() != WebMercator {
		t.Errorf("Projection() = %q", l.Projection())
	}
	x := l.Features()[1].Geometry.(orb.Point)[0]
	if math.Abs(x-20037508.34) > 1 {
		t.Errorf("x = %f, want ~20037508", x)
	}
	if orig.(orb.Point)[0] != 180 {
		t.Error("source geometry mutated")
	}
	if hits, _ := l.Identify(box(x, 0, 10), box(x, 0, 1)); len(hits) != 1 {
		t.Errorf("index not rebuilt: %d hits", len(hits))
	}
	err := l.Reproject("EPSG:27700")
	if !errors.Is(err, ErrCannotReproject) {
		t.Errorf("err = %v", err)
	}
}

func TestRasterIdentify(t *testing.T) {
	r, err := NewRasterLayer("dem", geom.Coordinate{X: 0, Y: 10}, 5, 2, 2, []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Extent(); got != (geom.Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}) {
		t.Errorf("Extent() = %v", got)
	}
	hits, _ := r.Identify(box(7, 2, 1), box(7, 2, 0))
	if len(hits) != 1 || hits[0].Properties["value"] != 4.0 {
		t.Fatalf("hits = %+v", hits)
	}
	if hits, _ := r.Identify(box(70, 2, 1), box(70, 2, 0)); len(hits) != 0 {
		t.Errorf("outside hits = %d", len(hits))
	}
	if _, err := NewRasterLayer("bad", geom.Coordinate{}, 1, 2, 2, []float64{1}); err == nil {
		t.Error("expected size error")
	}
}

func TestFromData(t *testing.T) {
	data := geom.Data{Features: []geom.Feature{
		{Geometry: orb.Point{1, 1}},
		{Geometry: orb.LineString{{0, 0}, {1, 1}}},
		{Geometry: square(0, 0, 1, 1)},
		{Geometry: orb.Collection{orb.Point{2, 2}, orb.MultiPoint{{3, 3}}}},
	}}
	g := FromData("roads", data, "")
	var types []GeometryType
	for _, n := range g.Children() {
		types = append(types, n.Layer().GeometryType())
	}
	want := []GeometryType{Polygon, Line, MultiPoint, Point}
	if len(types) != len(want) {
		t.Fatalf("types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("child %d = %v, want %v", i, types[i], want[i])
		}
	}
	if pts := g.Children()[3].Layer().(*FeatureLayer); pts.Len() != 2 {
		t.Errorf("points = %d, want 2", pts.Len())
	}
}

func TestAdoptReprojects(t *testing.T) {
	g := NewGroup("root")
	if err := g.Reproject(WebMercator); err != nil {
		t.Fatal(err)
	}
	l := pointLayer("p", orb.Point{90, 0})
	if err := g.Adopt(LeafNode(l)); err != nil {
		t.Fatal(err)
	}
	if l.Projection() != WebMercator || g.Len() != 1 {
		t.Errorf("projection = %q len = %d", l.Projection(), g.Len())
	}
	r, _ := NewRasterLayer("dem", geom.Coordinate{}, 1, 1, 1, []float64{0})
	if err := g.Adopt(LeafNode(r)); !errors.Is(err, ErrCannotReproject) {
		t.Errorf("err = %v, want ErrCannotReproject", err)
	}
	if g.Len() != 1 {
		t.Errorf("len = %d after failed adopt", g.Len())
	}
}
