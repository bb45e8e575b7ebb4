package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"geoview/internal/layer"
)

type legendItem struct {
	entry layer.Entry
}

func (l legendItem) Title() string {
	n := l.entry.Node
	box := "[ ]"
	if n.IsVisible() {
		box = "[x]"
	}
	return strings.Repeat("  ", l.entry.Depth) + box + " " + n.Name()
}

func (l legendItem) Description() string {
	n := l.entry.Node
	if n.Kind() == layer.KindGroup {
		return fmt.Sprintf("%sgroup, %d layers", strings.Repeat("  ", l.entry.Depth), n.Group().Len())
	}
	desc := n.Layer().GeometryType().String()
	if s, ok := n.Layer().(layer.Selectable); ok && s.SelectedCount() > 0 {
		desc += fmt.Sprintf(", %d selected", s.SelectedCount())
	}
	return strings.Repeat("  ", l.entry.Depth) + desc
}

func (l legendItem) FilterValue() string { return l.entry.Node.Name() }

// refreshLegend rebuilds the legend from the layer tree, top layer first.
func (m *Model) refreshLegend() {
	entries := layer.Flatten(m.frame.root.Children())
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, legendItem{entry: e})
	}
	m.legend.SetItems(items)
	m.frame.legendDirty = false
}

// toggleEntry flips the visibility of the i-th legend entry.
func (m *Model) toggleEntry(i int) {
	entries := layer.Flatten(m.frame.root.Children())
	if i < 0 || i >= len(entries) {
		return
	}
	n := entries[i].Node
	n.SetVisible(!n.IsVisible())
	// legend selection follows the last toggled leaf
	layer.Walk(m.frame.root.Children(), layer.Natural, func(l layer.Layer) bool {
		l.SetSelected(n.Kind() == layer.KindLeaf && l.ID() == n.ID())
		return true
	})
	m.frame.status = fmt.Sprintf("%s: visible=%v", n.Name(), n.IsVisible())
	m.frame.rebuildScene()
	m.refreshLegend()
}

// toggleAll shows every top-level node unless all are already shown.
func (m *Model) toggleAll() {
	nodes := m.frame.root.Children()
	all := true
	for _, n := range nodes {
		all = all && n.IsVisible()
	}
	for _, n := range nodes {
		n.SetVisible(!all)
	}
	m.frame.status = fmt.Sprintf("layers visible: %v", !all)
	m.frame.rebuildScene()
	m.refreshLegend()
}
