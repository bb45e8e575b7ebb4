package tui

import (
	"encoding/json"
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"geoview/internal/layer"
	"geoview/internal/selection"
)

// maxAttrRows bounds the table built from a whole dataset.
const maxAttrRows = 1000

// showIdentify opens the attributes table on an identify result.
func (m *Model) showIdentify(res selection.Result) {
	if len(res.Hits) == 0 {
		m.showAttrs = false
		return
	}
	m.attrsTitle = "identify: " + res.Message
	m.setAttrs(res.Hits)
}

// showSelectionAttrs fills the table with the selected features, or with
// every visible feature when nothing is selected.
func (m *Model) showSelectionAttrs() {
	var hits []layer.Hit
	var all []layer.Hit
	layer.WalkVisible(m.frame.root.Children(), layer.Reversed, func(l layer.Layer) bool {
		fl, ok := l.(*layer.FeatureLayer)
		if !ok {
			return true
		}
		for i, f := range fl.Features() {
			h := layer.Hit{Layer: fl, Index: i, Properties: f.Properties}
			if fl.IsFeatureSelected(i) {
				hits = append(hits, h)
			}
			if len(all) < maxAttrRows {
				all = append(all, h)
			}
		}
		return true
	})
	m.attrsTitle = fmt.Sprintf("selection: %d features", len(hits))
	if len(hits) == 0 {
		hits = all
		m.attrsTitle = fmt.Sprintf("all features (%d shown)", len(all))
	}
	if len(hits) == 0 {
		m.showAttrs = false
		m.frame.status = "no attributes for current dataset"
		return
	}
	m.setAttrs(hits)
}

func (m *Model) setAttrs(hits []layer.Hit) {
	cols, rows := buildAttributes(hits)
	// map to bubbles table columns/rows
	tcols := make([]table.Column, 0, len(cols)+2)
	tcols = append(tcols, table.Column{Title: "#", Width: 4}, table.Column{Title: "layer", Width: 16})
	maxColW := 24
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(tcols))
		row = append(row, fmt.Sprintf("%d", i+1), hits[i].Layer.Name())
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	m.showAttrs = true
}

// buildAttributes unions the property keys of hits in first-seen order and
// returns one row per hit.
func buildAttributes(hits []layer.Hit) ([]string, [][]string) {
	order := []string{}
	seen := map[string]bool{}
	for _, h := range hits {
		for k := range h.Properties {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	rows := make([][]string, 0, len(hits))
	for _, h := range hits {
		vals := make([]string, 0, len(order))
		for _, k := range order {
			vals = append(vals, formatValue(h.Properties[k]))
		}
		rows = append(rows, vals)
	}
	return order, rows
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case int:
		return fmt.Sprintf("%d", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(bs)
	}
}
