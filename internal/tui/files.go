package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"geoview/internal/geom"
	"geoview/internal/layer"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.frame.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.files.SetItems(items)
	if len(items) == 0 {
		m.frame.status = "no supported files in current directory"
	}
}

// loadPath loads a supported file as a new layer group on top of the map.
func (m *Model) loadPath(p string) {
	data, err := geom.Load(p)
	if err != nil {
		m.frame.status = "load error: " + err.Error()
		m.frame.logger.Warn("load failed", "path", p, "err", err)
		return
	}
	m.selPath = p
	m.addData(filepath.Base(p), data)
}

// loadWKT renders pasted WKT as a new layer group.
func (m *Model) loadWKT(text string) error {
	data, err := geom.ParseWKT(text)
	if err != nil {
		return err
	}
	m.addData("pasted", data)
	return nil
}

func (m *Model) addData(name string, data geom.Data) {
	f := m.frame
	g := layer.FromData(name, data, f.cfg.LabelField)
	if err := f.root.Adopt(layer.GroupNode(g)); err != nil {
		f.status = "load error: " + err.Error()
		return
	}
	f.zoomToData()
	counts := make([]string, 0, g.Len())
	for _, c := range g.Children() {
		if fl, ok := c.Layer().(*layer.FeatureLayer); ok {
			counts = append(counts, fmt.Sprintf("%s=%d", fl.GeometryType(), fl.Len()))
		}
	}
	f.status = "loaded: " + name + "  counts: " + strings.Join(counts, " ")
	f.logger.Info("loaded", "name", name, "features", len(data.Features))
	m.refreshLegend()
	if m.showAttrs {
		m.showSelectionAttrs()
	}
}
