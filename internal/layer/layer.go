// Package layer models the map's layer tree: groups holding ordered children,
// and leaf layers carrying features or raster cells.
//
// A tree node is an explicit tagged union (see Node). Traversal helpers in
// walk.go flatten the tree depth first in natural order (bottom layer first,
// used for drawing) or reversed order (topmost first, used for hit tests).
package layer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"geoview/internal/geom"
)

// GeometryType tags what a leaf layer holds.
type GeometryType uint8

const (
	Unspecified GeometryType = iota
	Point
	MultiPoint
	Line
	Polygon
	Raster
)

func (t GeometryType) String() string {
	switch t {
	case Point:
		return "point"
	case MultiPoint:
		return "multipoint"
	case Line:
		return "line"
	case Polygon:
		return "polygon"
	case Raster:
		return "raster"
	}
	return "unspecified"
}

// Envelope picks the extent a hit test against t must use. Polygons are tested
// against the strict extent so a click near, but outside, an area misses it;
// everything else gets the tolerant extent.
func Envelope(t GeometryType, tolerant, strict geom.Extent) geom.Extent {
	if t == Polygon {
		return strict
	}
	return tolerant
}

// SelectionMode controls how a selection combines with the existing one.
type SelectionMode uint8

const (
	// Replace clears the prior selection before adding hits.
	Replace SelectionMode = iota
	// Append adds hits to the existing selection.
	Append
	// Invert toggles the membership of every hit.
	Invert
)

func (m SelectionMode) String() string {
	switch m {
	case Append:
		return "append"
	case Invert:
		return "invert"
	}
	return "replace"
}

// Projection names understood by the reprojection helpers.
const (
	WGS84       = "EPSG:4326"
	WebMercator = "EPSG:3857"
)

var (
	// ErrCannotReproject is returned when a layer cannot move to the requested projection.
	ErrCannotReproject = errors.New("cannot reproject")
	// ErrCorruptGeometry marks a feature whose coordinates cannot be tested.
	ErrCorruptGeometry = errors.New("corrupt geometry")
)

// Error ties a failure to the layer and operation that produced it.
type Error struct {
	Layer string
	Op    string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("layer %q: %s: %v", e.Layer, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Layer is a leaf of the layer tree.
type Layer interface {
	ID() uuid.UUID
	Name() string
	GeometryType() GeometryType
	Extent() geom.Extent

	IsVisible() bool
	SetVisible(bool)
	// IsSelected reports legend selection, not feature selection.
	IsSelected() bool
	SetSelected(bool)

	Projection() string
	CanReproject(to string) bool
	Reproject(to string) error
}

// Hit is one feature (or raster cell) found by an identify.
type Hit struct {
	Layer      Layer
	Index      int
	Geometry   geom.Extent
	Properties map[string]any
}

// Identifier is a layer that can report what lies under an envelope pair.
type Identifier interface {
	Layer
	Identify(tolerant, strict geom.Extent) ([]Hit, error)
}

// Selectable is a layer holding a feature selection.
type Selectable interface {
	Layer
	SelectionEnabled() bool
	// Select applies mode to the features hit by the envelope pair and returns
	// the region whose appearance changed.
	Select(tolerant, strict geom.Extent, mode SelectionMode) (geom.Extent, bool, error)
	InvertSelection(tolerant, strict geom.Extent) (geom.Extent, bool, error)
	ClearSelection() (geom.Extent, bool)
	SelectedCount() int
}

// LabelSelectable is a layer whose labels can be selected independently of its features.
type LabelSelectable interface {
	Layer
	HasLabels() bool
	SelectLabels(tolerant, strict geom.Extent, mode SelectionMode) (geom.Extent, bool, error)
	ClearLabelSelection() (geom.Extent, bool)
	SelectedLabelCount() int
}

// base carries the bookkeeping shared by every leaf.
type base struct {
	id         uuid.UUID
	name       string
	visible    bool
	selected   bool
	projection string
}

func newBase(name, projection string) base {
	if projection == "" {
		projection = WGS84
	}
	return base{id: uuid.New(), name: name, visible: true, projection: projection}
}

func (b *base) ID() uuid.UUID      { return b.id }
func (b *base) Name() string       { return b.name }
func (b *base) IsVisible() bool    { return b.visible }
func (b *base) SetVisible(v bool)  { b.visible = v }
func (b *base) IsSelected() bool   { return b.selected }
func (b *base) SetSelected(v bool) { b.selected = v }
func (b *base) Projection() string { return b.projection }
