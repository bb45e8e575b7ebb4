package layer

// Order selects the sibling order of a traversal.
type Order uint8

const (
	// Natural visits children bottom first, the drawing order.
	Natural Order = iota
	// Reversed visits children top first, the hit-testing order.
	Reversed
)

// Walk visits every leaf under nodes depth first. Returning false from fn stops
// the walk; Walk reports whether it ran to completion.
func Walk(nodes []Node, order Order, fn func(Layer) bool) bool {
	return walk(nodes, order, false, fn)
}

// WalkVisible is Walk restricted to visible leaves whose ancestors are all visible.
func WalkVisible(nodes []Node, order Order, fn func(Layer) bool) bool {
	return walk(nodes, order, true, fn)
}

func walk(nodes []Node, order Order, visibleOnly bool, fn func(Layer) bool) bool {
	for i := range nodes {
		n := nodes[i]
		if order == Reversed {
			n = nodes[len(nodes)-1-i]
		}
		if visibleOnly && !n.IsVisible() {
			continue
		}
		switch n.kind {
		case KindGroup:
			if !walk(n.group.children, order, visibleOnly, fn) {
				return false
			}
		case KindLeaf:
			if n.leaf == nil {
				continue
			}
			if !fn(n.leaf) {
				return false
			}
		}
	}
	return true
}

// Leaves flattens nodes into their leaf layers.
func Leaves(nodes []Node, order Order) []Layer {
	var out []Layer
	Walk(nodes, order, func(l Layer) bool {
		out = append(out, l)
		return true
	})
	return out
}

// VisibleLeaves flattens nodes into the leaves that would be drawn.
func VisibleLeaves(nodes []Node, order Order) []Layer {
	var out []Layer
	WalkVisible(nodes, order, func(l Layer) bool {
		out = append(out, l)
		return true
	})
	return out
}

// SelectableLeaves returns the visible leaves that accept feature selection.
func SelectableLeaves(nodes []Node, order Order) []Selectable {
	var out []Selectable
	WalkVisible(nodes, order, func(l Layer) bool {
		if s, ok := l.(Selectable); ok && s.SelectionEnabled() {
			out = append(out, s)
		}
		return true
	})
	return out
}

// Entry is one row of a flattened tree, groups included.
type Entry struct {
	Node  Node
	Depth int
}

// Flatten lists every node, groups before their children, top first as a
// legend shows them.
func Flatten(nodes []Node) []Entry {
	var out []Entry
	var rec func([]Node, int)
	rec = func(ns []Node, depth int) {
		for i := len(ns) - 1; i >= 0; i-- {
			out = append(out, Entry{Node: ns[i], Depth: depth})
			if ns[i].kind == KindGroup {
				rec(ns[i].group.children, depth+1)
			}
		}
	}
	rec(nodes, 0)
	return out
}
