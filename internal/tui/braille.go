package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geoview/internal/geom"
)

// ink classes, in increasing precedence.
const (
	inkNormal uint8 = iota
	inkSelected
	inkOverlay
)

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	ink  [][]uint8 // per-cell ink class
	text map[[2]int]string
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	ink := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
		ink[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m, ink: ink, text: make(map[[2]int]string)}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, ink uint8) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	b.ink[cy][cx] = max(b.ink[cy][cx], ink)
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, ink uint8) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// putText writes s starting at the cell holding micro pixel (mx, my).
func (b *brailleBuf) putText(mx, my int, s string) {
	cx, cy := mx/2, my/4
	for i, r := range []rune(s) {
		if x := cx + i; x >= 0 && x < b.w && cy >= 0 && cy < b.h {
			b.text[[2]int{x, cy}] = string(r)
		}
	}
}

func (b *brailleBuf) toLines() []string {
	styles := [...]lipgloss.Style{inkNormal: appStyle, inkSelected: selectedStyle, inkOverlay: overlayStyle}
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		for x := 0; x < b.w; x++ {
			if t, ok := b.text[[2]int{x, y}]; ok {
				sb.WriteString(overlayStyle.Render(t))
				continue
			}
			mask := b.m[y][x]
			if mask == 0 {
				sb.WriteByte(' ')
				continue
			}
			cell := string(rune(0x2800 + int(mask)))
			if ink := b.ink[y][x]; ink != inkNormal {
				cell = styles[ink].Render(cell)
			}
			sb.WriteString(cell)
		}
		out[y] = sb.String()
	}
	return out
}

// overlayCanvas lets interaction functions draw onto the buffer.
type overlayCanvas struct{ b *brailleBuf }

func (c overlayCanvas) Line(a, b geom.Point) {
	c.b.drawLineMicro(a.X, a.Y, b.X, b.Y, inkOverlay)
}

func (c overlayCanvas) Rect(r geom.Rectangle) {
	x0, y0, x1, y1 := r.X, r.Y, r.Right(), r.Bottom()
	c.b.drawLineMicro(x0, y0, x1, y0, inkOverlay)
	c.b.drawLineMicro(x1, y0, x1, y1, inkOverlay)
	c.b.drawLineMicro(x1, y1, x0, y1, inkOverlay)
	c.b.drawLineMicro(x0, y1, x0, y0, inkOverlay)
}

func (c overlayCanvas) Text(p geom.Point, s string) { c.b.putText(p.X, p.Y, s) }
