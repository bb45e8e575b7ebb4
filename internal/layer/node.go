package layer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"geoview/internal/geom"
)

// Kind discriminates the two shapes a Node can take.
type Kind uint8

const (
	KindLeaf Kind = iota
	KindGroup
)

// Node is either a Group or a leaf Layer.
type Node struct {
	kind  Kind
	group *Group
	leaf  Layer
}

// LeafNode wraps a layer.
func LeafNode(l Layer) Node { return Node{kind: KindLeaf, leaf: l} }

// GroupNode wraps a group.
func GroupNode(g *Group) Node { return Node{kind: KindGroup, group: g} }

// Kind reports which variant n holds.
func (n Node) Kind() Kind { return n.kind }

// Group returns the group, or nil for a leaf.
func (n Node) Group() *Group { return n.group }

// Layer returns the leaf layer, or nil for a group.
func (n Node) Layer() Layer { return n.leaf }

// Name returns the group or layer name.
func (n Node) Name() string {
	switch n.kind {
	case KindGroup:
		return n.group.Name()
	default:
		if n.leaf == nil {
			return ""
		}
		return n.leaf.Name()
	}
}

// ID returns the group or layer id.
func (n Node) ID() uuid.UUID {
	switch n.kind {
	case KindGroup:
		return n.group.ID()
	default:
		if n.leaf == nil {
			return uuid.Nil
		}
		return n.leaf.ID()
	}
}

// Extent returns the node extent. A group's extent is the union of its children.
func (n Node) Extent() geom.Extent {
	switch n.kind {
	case KindGroup:
		return n.group.Extent()
	default:
		if n.leaf == nil {
			return geom.Extent{}
		}
		return n.leaf.Extent()
	}
}

// IsVisible reports the node's own visibility flag.
func (n Node) IsVisible() bool {
	switch n.kind {
	case KindGroup:
		return n.group.IsVisible()
	default:
		return n.leaf != nil && n.leaf.IsVisible()
	}
}

// SetVisible sets the node's own visibility flag.
func (n Node) SetVisible(v bool) {
	switch n.kind {
	case KindGroup:
		n.group.SetVisible(v)
	default:
		if n.leaf != nil {
			n.leaf.SetVisible(v)
		}
	}
}

// Group is an ordered collection of child nodes with its own projection.
// Children are stored bottom first: the last child draws on top.
type Group struct {
	id         uuid.UUID
	name       string
	visible    bool
	projection string
	children   []Node
}

// NewGroup returns a visible group holding children.
func NewGroup(name string, children ...Node) *Group {
	return &Group{id: uuid.New(), name: name, visible: true, projection: WGS84, children: children}
}

func (g *Group) ID() uuid.UUID      { return g.id }
func (g *Group) Name() string       { return g.name }
func (g *Group) IsVisible() bool    { return g.visible }
func (g *Group) SetVisible(v bool)  { g.visible = v }
func (g *Group) Projection() string { return g.projection }

// Children returns the child nodes, bottom first.
func (g *Group) Children() []Node { return g.children }

// Len returns the number of direct children.
func (g *Group) Len() int { return len(g.children) }

// Add appends n on top of the existing children.
func (g *Group) Add(n Node) { g.children = append(g.children, n) }

// Adopt adds n on top, first moving it into the group's projection when it
// differs. A node that cannot move is not added.
func (g *Group) Adopt(n Node) error {
	switch n.kind {
	case KindGroup:
		if n.group.projection != g.projection {
			if !n.group.CanReproject(g.projection) {
				return &Error{Layer: n.group.name, Op: "adopt", Err: fmt.Errorf("%w: %s to %s", ErrCannotReproject, n.group.projection, g.projection)}
			}
			if err := n.group.Reproject(g.projection); err != nil {
				return err
			}
		}
	case KindLeaf:
		if n.leaf != nil && n.leaf.Projection() != g.projection {
			if err := n.leaf.Reproject(g.projection); err != nil {
				return err
			}
		}
	}
	g.Add(n)
	return nil
}

// Remove drops the direct child with the given id.
func (g *Group) Remove(id uuid.UUID) bool {
	for i, c := range g.children {
		if c.ID() == id {
			g.children = append(g.children[:i], g.children[i+1:]...)
			return true
		}
	}
	return false
}

// Extent returns the union of the children's extents.
func (g *Group) Extent() geom.Extent {
	var e geom.Extent
	first := true
	for _, c := range g.children {
		ce := c.Extent()
		if c.kind == KindGroup && ce.IsZero() {
			continue
		}
		if first {
			e, first = ce, false
			continue
		}
		e = e.Union(ce)
	}
	return e
}

// CanReproject reports whether every descendant can move to the projection.
func (g *Group) CanReproject(to string) bool {
	ok := true
	Walk(g.children, Natural, func(l Layer) bool {
		ok = l.CanReproject(to)
		return ok
	})
	return ok
}

// Reproject moves every descendant to the projection. Layers that fail are
// reported together; the rest are still reprojected.
func (g *Group) Reproject(to string) error {
	var errs []error
	Walk(g.children, Natural, func(l Layer) bool {
		if l.Projection() == to {
			return true
		}
		if err := l.Reproject(to); err != nil {
			errs = append(errs, err)
		}
		return true
	})
	walkGroups(g, func(sub *Group) { sub.projection = to })
	return errors.Join(errs...)
}

func walkGroups(g *Group, fn func(*Group)) {
	fn(g)
	for _, c := range g.children {
		if c.kind == KindGroup {
			walkGroups(c.group, fn)
		}
	}
}
