package tui

import "geoview/internal/geom"

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// cellToMicro returns the braille micro pixel at the center of a terminal cell.
func cellToMicro(cx, cy int) geom.Point {
	return geom.Point{X: cx*2 + 1, Y: cy*4 + 2}
}

// clampLine keeps a far off-screen projected coordinate within a range the
// rasterizer can walk quickly.
func clampLine(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
