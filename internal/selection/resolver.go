// Package selection resolves pixel clicks and drags into identify results and
// feature selections across a layer tree.
//
// Every operation carries a pair of geographic envelopes: a tolerant one that
// forgives imprecise clicks on points and lines, and a strict one used for
// polygons so a click just outside an area does not pick it. Layers are
// visited top-most first and every layer is asked; an identify is not a
// single-result pick.
package selection

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"geoview/internal/geom"
	"geoview/internal/layer"
	"geoview/internal/view"
)

// NothingSelected is the advisory message for an operation that hit nothing.
const NothingSelected = "nothing selected"

// Config holds the envelope sizes, in pixels unless noted.
type Config struct {
	// TolerantPx is the half-size of the identify tolerant window.
	TolerantPx int
	// StrictPx is the half-size of the identify strict window.
	StrictPx int
	// ClickThresholdPx separates a click from a drag.
	ClickThresholdPx int
	// ClickTolerancePx is the half-size of the tolerant window for a drag
	// short enough to count as a click.
	ClickTolerancePx int
	// ToleranceDivisor expands a click's strict envelope by viewWidth/ToleranceDivisor map units.
	ToleranceDivisor float64
}

// DefaultConfig returns the standard envelope sizes.
func DefaultConfig() Config {
	return Config{
		TolerantPx:       8,
		StrictPx:         1,
		ClickThresholdPx: 8,
		ClickTolerancePx: 4,
		ToleranceDivisor: 10000,
	}
}

// Result is the outcome of an identify or select.
type Result struct {
	Hits []layer.Hit
	// Region is the union of every extent whose appearance changed.
	Region  geom.Extent
	Changed bool
	// Count is the number of selected features (or hits, for an identify)
	// once the operation finished.
	Count   int
	Message string
}

// Empty reports whether nothing was hit.
func (r Result) Empty() bool { return r.Message == NothingSelected }

func (r *Result) grow(e geom.Extent) {
	if !r.Changed {
		r.Region, r.Changed = e, true
		return
	}
	r.Region = r.Region.Union(e)
}

// Resolver turns pixel gestures into identify and selection results.
type Resolver struct {
	cfg    Config
	logger *log.Logger
	subs   []func(Event)
}

// New returns a resolver. A nil logger falls back to log.Default().
func New(cfg Config, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{cfg: cfg, logger: logger}
}

// Config returns the envelope sizes in use.
func (r *Resolver) Config() Config { return r.cfg }

// Envelopes returns the identify envelope pair around pixel p.
func (r *Resolver) Envelopes(t view.Transform, p geom.Point) (tolerant, strict geom.Extent, ok bool) {
	tolerant, ok = t.PixelToGeoRect(geom.RectAround(p, r.cfg.TolerantPx))
	if !ok {
		return geom.Extent{}, geom.Extent{}, false
	}
	strict, _ = t.PixelToGeoRect(geom.RectAround(p, r.cfg.StrictPx))
	return tolerant, strict, true
}

// DragEnvelopes returns the selection envelope pair for a drag from start to
// end. The drag corners form the strict envelope. A drag shorter than the
// click threshold is treated as a click: the strict envelope grows by
// viewWidth/ToleranceDivisor and the tolerant one also covers a small pixel
// window around the release point.
func (r *Resolver) DragEnvelopes(t view.Transform, start, end geom.Point) (tolerant, strict geom.Extent, ok bool) {
	a, ok := t.PixelToGeo(start)
	if !ok {
		return geom.Extent{}, geom.Extent{}, false
	}
	b, _ := t.PixelToGeo(end)
	strict = geom.NewExtent(a, b)
	if !IsClick(start, end, r.cfg.ClickThresholdPx) {
		return strict, strict, true
	}
	if r.cfg.ToleranceDivisor > 0 {
		strict = strict.Expand(t.Extent.Width() / r.cfg.ToleranceDivisor)
	}
	win, _ := t.PixelToGeoRect(geom.RectAround(end, r.cfg.ClickTolerancePx))
	return win.Union(strict), strict, true
}

// IsClick reports whether a drag from a to b is shorter than threshold pixels.
func IsClick(a, b geom.Point, threshold int) bool {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y)) < float64(threshold)
}

// Identify reports what lies under pixel p on every visible layer.
func (r *Resolver) Identify(t view.Transform, nodes []layer.Node, p geom.Point) (Result, error) {
	tol, strict, ok := r.Envelopes(t, p)
	if !ok {
		return Result{Message: NothingSelected}, nil
	}
	return r.IdentifyEnvelope(nodes, tol, strict)
}

// IdentifyEnvelope identifies against an explicit envelope pair.
func (r *Resolver) IdentifyEnvelope(nodes []layer.Node, tolerant, strict geom.Extent) (Result, error) {
	var res Result
	var errs []error
	layer.WalkVisible(nodes, layer.Reversed, func(l layer.Layer) bool {
		id, ok := l.(layer.Identifier)
		if !ok {
			return true
		}
		err := guard(l, "identify", func() error {
			hits, err := id.Identify(tolerant, strict)
			res.Hits = append(res.Hits, hits...)
			return err
		})
		if err != nil {
			r.logger.Warn("identify failed", "layer", l.Name(), "err", err)
			errs = append(errs, err)
		}
		return true
	})
	res.Count = len(res.Hits)
	if res.Count == 0 {
		res.Message = NothingSelected
		r.publish(Event{Kind: Nothing, Message: res.Message})
	} else {
		res.Message = fmt.Sprintf("%d features identified", res.Count)
		r.publish(Event{Kind: Identified, Count: res.Count, Message: res.Message})
	}
	r.logger.Debug("identify", "hits", res.Count)
	return res, errors.Join(errs...)
}

// Select applies mode to the features under a drag from start to end.
func (r *Resolver) Select(t view.Transform, nodes []layer.Node, start, end geom.Point, mode layer.SelectionMode) (Result, error) {
	tol, strict, ok := r.DragEnvelopes(t, start, end)
	if !ok {
		return Result{Message: NothingSelected}, nil
	}
	return r.SelectEnvelope(nodes, tol, strict, mode)
}

// SelectEnvelope applies mode against an explicit envelope pair. Replace
// clears the selection on every layer first, hidden ones included, then adds
// the hits on visible selectable layers.
func (r *Resolver) SelectEnvelope(nodes []layer.Node, tolerant, strict geom.Extent, mode layer.SelectionMode) (Result, error) {
	var res Result
	requested := mode
	if mode == layer.Replace {
		res = r.Clear(nodes)
		mode = layer.Append
	}
	var errs []error
	hit := false
	for _, s := range layer.SelectableLeaves(nodes, layer.Reversed) {
		var region geom.Extent
		var changed bool
		err := guard(s, "select", func() error {
			var err error
			region, changed, err = s.Select(tolerant, strict, mode)
			return err
		})
		if err != nil {
			r.logger.Warn("select failed", "layer", s.Name(), "err", err)
			errs = append(errs, err)
		}
		if changed {
			hit = true
			res.grow(region)
			r.publish(Event{Kind: Selected, Layer: s.Name(), Count: s.SelectedCount()})
		}
	}
	res.Count = selectedCount(nodes)
	if hit {
		res.Message = fmt.Sprintf("%d features selected", res.Count)
	} else {
		res.Message = NothingSelected
		r.publish(Event{Kind: Nothing, Message: res.Message})
	}
	r.logger.Debug("select", "mode", requested, "selected", res.Count)
	return res, errors.Join(errs...)
}

// Clear removes the feature selection from every layer.
func (r *Resolver) Clear(nodes []layer.Node) Result {
	var res Result
	layer.Walk(nodes, layer.Natural, func(l layer.Layer) bool {
		s, ok := l.(layer.Selectable)
		if !ok {
			return true
		}
		if region, changed := s.ClearSelection(); changed {
			res.grow(region)
			r.publish(Event{Kind: Cleared, Layer: s.Name()})
		}
		return true
	})
	return res
}

// SelectLabels applies mode to the labels under a drag from start to end.
func (r *Resolver) SelectLabels(t view.Transform, nodes []layer.Node, start, end geom.Point, mode layer.SelectionMode) (Result, error) {
	tol, strict, ok := r.DragEnvelopes(t, start, end)
	if !ok {
		return Result{Message: NothingSelected}, nil
	}
	var res Result
	if mode == layer.Replace {
		layer.Walk(nodes, layer.Natural, func(l layer.Layer) bool {
			if ls, ok := l.(layer.LabelSelectable); ok {
				if region, changed := ls.ClearLabelSelection(); changed {
					res.grow(region)
				}
			}
			return true
		})
		mode = layer.Append
	}
	var errs []error
	hit := false
	layer.WalkVisible(nodes, layer.Reversed, func(l layer.Layer) bool {
		ls, ok := l.(layer.LabelSelectable)
		if !ok || !ls.HasLabels() {
			return true
		}
		err := guard(l, "select labels", func() error {
			region, changed, err := ls.SelectLabels(tol, strict, mode)
			if changed {
				hit = true
				res.grow(region)
			}
			res.Count += ls.SelectedLabelCount()
			return err
		})
		if err != nil {
			r.logger.Warn("label select failed", "layer", l.Name(), "err", err)
			errs = append(errs, err)
		}
		return true
	})
	if hit {
		res.Message = fmt.Sprintf("%d labels selected", res.Count)
		r.publish(Event{Kind: LabelsSelected, Count: res.Count, Message: res.Message})
	} else {
		res.Message = NothingSelected
		r.publish(Event{Kind: Nothing, Message: res.Message})
	}
	return res, errors.Join(errs...)
}

func selectedCount(nodes []layer.Node) int {
	n := 0
	layer.Walk(nodes, layer.Natural, func(l layer.Layer) bool {
		if s, ok := l.(layer.Selectable); ok {
			n += s.SelectedCount()
		}
		return true
	})
	return n
}

// guard runs fn and turns a panic from a misbehaving layer into an error so
// the rest of the tree is still visited.
func guard(l layer.Layer, op string, fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &layer.Error{Layer: l.Name(), Op: op, Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	return fn()
}
