package tui

import (
	"sort"
	"strings"

	"github.com/paulmach/orb"

	"geoview/internal/clip"
	"geoview/internal/geom"
	"geoview/internal/layer"
	"geoview/internal/mapfn"
	"geoview/internal/view"
)

// renderMap draws the scene, labels and function overlays into a w x h cell
// braille canvas. The frame transform is in micro pixels (2x4 per cell).
func (f *mapFrame) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	t := f.t
	if !t.Valid() {
		return blank(w, h)
	}
	project := func(p orb.Point) (int, int, bool) {
		px, ok := t.GeoToPixel(geom.Coordinate{X: p[0], Y: p[1]})
		return px.X, px.Y, ok
	}

	// polygons (fill then edges), lines, points: points land on top
	for _, kind := range []layer.GeometryType{layer.Polygon, layer.Line, layer.Point} {
		for _, p := range f.scene {
			if p.kind != kind {
				continue
			}
			ink := inkNormal
			if p.selected {
				ink = inkSelected
			}
			switch kind {
			case layer.Polygon:
				if len(p.polygon) > 0 {
					fillRing(br, t, p.polygon[0], ink)
				}
				drawLines(br, t, p.lines, ink)
			case layer.Line:
				drawLines(br, t, p.lines, ink)
			case layer.Point:
				if mx, my, ok := project(p.point); ok {
					br.setPixel(mx, my, ink)
					if p.selected {
						br.setPixel(mx+1, my, ink)
						br.setPixel(mx, my+1, ink)
						br.setPixel(mx+1, my+1, ink)
					}
				}
			}
		}
	}
	if f.labels {
		f.drawLabels(br, project)
	}

	f.reg.Draw(mapfn.DrawArgs{Canvas: overlayCanvas{br}, Transform: t})
	return strings.Join(br.toLines(), "\n")
}

// drawLines rasterizes lines, re-clipping each segment to the current view
// since the scene may have been clipped to an older, larger extent.
func drawLines(br *brailleBuf, t view.Transform, lines []orb.LineString, ink uint8) {
	ux, uy := t.UnitsPerPixel()
	win := t.Extent.Expand(max(ux, uy))
	for _, ls := range lines {
		for i := 0; i+1 < len(ls); i++ {
			a, b, st := clip.Line(ls[i], ls[i+1], win)
			if !st.Visible() {
				continue
			}
			p0, ok0 := t.GeoToPixel(geom.Coordinate{X: a[0], Y: a[1]})
			p1, ok1 := t.GeoToPixel(geom.Coordinate{X: b[0], Y: b[1]})
			if ok0 && ok1 {
				br.drawLineMicro(p0.X, p0.Y, p1.X, p1.Y, ink)
			}
		}
	}
}

// fillRing fills a ring with the even-odd rule on the micro grid. Holes are
// not subtracted.
func fillRing(br *brailleBuf, t view.Transform, ring orb.Ring, ink uint8) {
	wMic, hMic := br.w*2, br.h*4
	pts := make([][2]int, 0, len(ring))
	for _, p := range ring {
		px, ok := t.GeoToPixel(geom.Coordinate{X: p[0], Y: p[1]})
		if !ok {
			return
		}
		pts = append(pts, [2]int{px.X, px.Y})
	}
	if len(pts) < 3 {
		return
	}
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(pts); i++ {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				r := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+r*float64(x1-x0)))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xstart := clampLine(xs[i], 0, wMic)
			xend := clampLine(xs[i+1], -1, wMic-1)
			for xMic := xstart; xMic <= xend; xMic++ {
				br.setPixel(xMic, yMic, ink)
			}
		}
	}
}

// drawLabels writes label text for layers with a label field. Selected labels
// are bracketed.
func (f *mapFrame) drawLabels(br *brailleBuf, project func(orb.Point) (int, int, bool)) {
	layer.WalkVisible(f.root.Children(), layer.Natural, func(l layer.Layer) bool {
		fl, ok := l.(*layer.FeatureLayer)
		if !ok || !fl.HasLabels() || !fl.Extent().Intersects(f.t.Extent) {
			return true
		}
		for i := range fl.Features() {
			text, at, ok := fl.Label(i)
			if !ok || !f.t.Extent.Contains(geom.Coordinate{X: at[0], Y: at[1]}) {
				continue
			}
			if fl.IsLabelSelected(i) {
				text = "[" + text + "]"
			}
			if mx, my, ok := project(at); ok {
				br.putText(mx+2, my, text)
			}
		}
		return true
	})
}

func blank(w, h int) string {
	row := strings.Repeat(" ", max(0, w))
	rows := make([]string, max(0, h))
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}
