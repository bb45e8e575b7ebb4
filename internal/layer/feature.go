package layer

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"geoview/internal/geom"
)

// FeatureLayer is a vector leaf whose features share one geometry type.
// Candidate features for a hit test come from an R-tree; the exact test runs
// on the candidates only.
type FeatureLayer struct {
	base
	geomType         GeometryType
	features         []geom.Feature
	extent           geom.Extent
	index            *rtreego.Rtree
	selectionEnabled bool
	selected         map[int]struct{}
	labelField       string
	labelsSelected   map[int]struct{}
}

// NewFeatureLayer builds an indexed layer. Features with nil geometry are dropped.
func NewFeatureLayer(name string, gt GeometryType, features []geom.Feature) *FeatureLayer {
	l := &FeatureLayer{
		base:             newBase(name, WGS84),
		geomType:         gt,
		selectionEnabled: true,
		selected:         make(map[int]struct{}),
		labelsSelected:   make(map[int]struct{}),
	}
	for _, f := range features {
		if f.Geometry == nil {
			continue
		}
		l.features = append(l.features, f)
	}
	l.reindex()
	return l
}

func (l *FeatureLayer) GeometryType() GeometryType { return l.geomType }
func (l *FeatureLayer) Extent() geom.Extent        { return l.extent }

// Features returns the layer's features; callers must not modify them.
func (l *FeatureLayer) Features() []geom.Feature { return l.features }

// Len returns the number of features.
func (l *FeatureLayer) Len() int { return len(l.features) }

func (l *FeatureLayer) SelectionEnabled() bool     { return l.selectionEnabled }
func (l *FeatureLayer) SetSelectionEnabled(v bool) { l.selectionEnabled = v }

// SetLabelField names the property used as the label text. Empty disables labels.
func (l *FeatureLayer) SetLabelField(field string) { l.labelField = field }

func (l *FeatureLayer) HasLabels() bool { return l.labelField != "" }

// Label returns the label text and anchor of feature i.
func (l *FeatureLayer) Label(i int) (string, orb.Point, bool) {
	if l.labelField == "" || i < 0 || i >= len(l.features) {
		return "", orb.Point{}, false
	}
	v, ok := l.features[i].Properties[l.labelField]
	if !ok || v == nil {
		return "", orb.Point{}, false
	}
	return fmt.Sprint(v), anchor(l.features[i].Geometry), true
}

// IsFeatureSelected reports whether feature i is selected.
func (l *FeatureLayer) IsFeatureSelected(i int) bool {
	_, ok := l.selected[i]
	return ok
}

// IsLabelSelected reports whether the label of feature i is selected.
func (l *FeatureLayer) IsLabelSelected(i int) bool {
	_, ok := l.labelsSelected[i]
	return ok
}

// Selection returns the selected feature indices in ascending order.
func (l *FeatureLayer) Selection() []int { return sortedKeys(l.selected) }

func (l *FeatureLayer) SelectedCount() int      { return len(l.selected) }
func (l *FeatureLayer) SelectedLabelCount() int { return len(l.labelsSelected) }

type indexedFeature struct {
	idx    int
	bounds geom.Extent
}

// Bounds implements rtreego.Spatial. Zero-area features get a minimal size
// because the tree needs positive lengths.
func (f *indexedFeature) Bounds() rtreego.Rect {
	return rect(f.bounds)
}

func rect(e geom.Extent) rtreego.Rect {
	const epsilon = 1e-9
	w, h := e.Width(), e.Height()
	if w < epsilon {
		w = epsilon
	}
	if h < epsilon {
		h = epsilon
	}
	r, _ := rtreego.NewRect(rtreego.Point{e.MinX, e.MinY}, []float64{w, h})
	return r
}

func (l *FeatureLayer) reindex() {
	l.index = rtreego.NewTree(2, 25, 50)
	l.extent = geom.Extent{}
	first := true
	for i, f := range l.features {
		if corrupt(f.Geometry) {
			continue
		}
		b := geom.FromBound(f.Geometry.Bound())
		if first {
			l.extent, first = b, false
		} else {
			l.extent = l.extent.Union(b)
		}
		l.index.Insert(&indexedFeature{idx: i, bounds: b})
	}
}

// candidates returns feature indices whose bounds may touch e, ascending.
func (l *FeatureLayer) candidates(e geom.Extent) []int {
	if !e.Valid() {
		return nil
	}
	pad := 1e-9 * max(1, e.Width(), e.Height())
	found := l.index.SearchIntersect(rect(e.Expand(pad)))
	out := make([]int, 0, len(found))
	for _, s := range found {
		out = append(out, s.(*indexedFeature).idx)
	}
	sort.Ints(out)
	return out
}

// hits returns the features intersecting the envelope chosen for this layer's
// geometry type, and a joined error for features that could not be tested.
func (l *FeatureLayer) hits(tolerant, strict geom.Extent) ([]int, error) {
	env := Envelope(l.geomType, tolerant, strict)
	var out []int
	for _, i := range l.candidates(env) {
		if Intersects(l.features[i].Geometry, env) {
			out = append(out, i)
		}
	}
	bad := 0
	for _, f := range l.features {
		if corrupt(f.Geometry) {
			bad++
		}
	}
	if bad > 0 {
		return out, &Error{Layer: l.name, Op: "hit test", Err: fmt.Errorf("%w: %d features skipped", ErrCorruptGeometry, bad)}
	}
	return out, nil
}

// Identify returns every feature hit by the envelope pair.
func (l *FeatureLayer) Identify(tolerant, strict geom.Extent) ([]Hit, error) {
	idx, err := l.hits(tolerant, strict)
	out := make([]Hit, 0, len(idx))
	for _, i := range idx {
		f := l.features[i]
		out = append(out, Hit{Layer: l, Index: i, Geometry: geom.FromBound(f.Geometry.Bound()), Properties: f.Properties})
	}
	return out, err
}

// Select applies mode to the features hit by the envelope pair.
func (l *FeatureLayer) Select(tolerant, strict geom.Extent, mode SelectionMode) (geom.Extent, bool, error) {
	idx, err := l.hits(tolerant, strict)
	region, changed := l.apply(l.selected, idx, mode)
	return region, changed, err
}

// InvertSelection toggles the features hit by the envelope pair.
func (l *FeatureLayer) InvertSelection(tolerant, strict geom.Extent) (geom.Extent, bool, error) {
	return l.Select(tolerant, strict, Invert)
}

// ClearSelection deselects every feature and returns the region that changed.
func (l *FeatureLayer) ClearSelection() (geom.Extent, bool) {
	return l.apply(l.selected, nil, Replace)
}

// SelectLabels applies mode to labels whose anchor falls inside the tolerant
// extent. Labels are point-like, so the strict extent is not used.
func (l *FeatureLayer) SelectLabels(tolerant, strict geom.Extent, mode SelectionMode) (geom.Extent, bool, error) {
	if !l.HasLabels() {
		return geom.Extent{}, false, nil
	}
	var idx []int
	for i := range l.features {
		if corrupt(l.features[i].Geometry) {
			continue
		}
		if _, p, ok := l.Label(i); ok && tolerant.Contains(geom.Coordinate{X: p[0], Y: p[1]}) {
			idx = append(idx, i)
		}
	}
	region, changed := l.apply(l.labelsSelected, idx, mode)
	return region, changed, nil
}

// ClearLabelSelection deselects every label.
func (l *FeatureLayer) ClearLabelSelection() (geom.Extent, bool) {
	return l.apply(l.labelsSelected, nil, Replace)
}

// apply mutates set according to mode and returns the union of the bounds of
// every feature whose membership changed.
func (l *FeatureLayer) apply(set map[int]struct{}, idx []int, mode SelectionMode) (geom.Extent, bool) {
	var region geom.Extent
	changed := false
	touch := func(i int) {
		b := geom.FromBound(l.features[i].Geometry.Bound())
		if !changed {
			region = b
		} else {
			region = region.Union(b)
		}
		changed = true
	}
	hit := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		hit[i] = struct{}{}
	}
	if mode == Replace {
		for i := range set {
			if _, keep := hit[i]; !keep {
				delete(set, i)
				touch(i)
			}
		}
	}
	for _, i := range idx {
		_, in := set[i]
		switch {
		case mode == Invert && in:
			delete(set, i)
			touch(i)
		case !in:
			set[i] = struct{}{}
			touch(i)
		}
	}
	return region, changed
}

func sortedKeys(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
