package layer

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// transformFor returns the point transform between two supported projections.
func transformFor(from, to string) (orb.Projection, bool) {
	switch {
	case from == to:
		return func(p orb.Point) orb.Point { return p }, true
	case from == WGS84 && to == WebMercator:
		return project.WGS84.ToMercator, true
	case from == WebMercator && to == WGS84:
		return project.Mercator.ToWGS84, true
	}
	return nil, false
}

func (l *FeatureLayer) CanReproject(to string) bool {
	_, ok := transformFor(l.projection, to)
	return ok
}

// Reproject moves every feature into the to projection and rebuilds the index.
// Selections are kept since feature indices do not change.
func (l *FeatureLayer) Reproject(to string) error {
	if to == l.projection {
		return nil
	}
	fn, ok := transformFor(l.projection, to)
	if !ok {
		return &Error{Layer: l.name, Op: "reproject", Err: fmt.Errorf("%w: %s to %s", ErrCannotReproject, l.projection, to)}
	}
	for i, f := range l.features {
		if corrupt(f.Geometry) {
			continue
		}
		l.features[i].Geometry = project.Geometry(orb.Clone(f.Geometry), fn)
	}
	l.projection = to
	l.reindex()
	return nil
}
