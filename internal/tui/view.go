package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()
	f := m.frame

	// Header
	header := titleStyle.Render(" geoview ─ terminal map viewer ") + modeStyle.Render(" ["+m.mode+"] "+f.root.Projection())
	header = lipgloss.NewStyle().Width(lay.contentWidth).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	switch m.sidebar {
	case sidebarFiles:
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.files.View())
	case sidebarLegend:
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.legend.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		// infer a reasonable width from columns
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, lay.contentWidth-6)
		}
		maxW := min(lay.width, max(32, colW))
		tbl := m.tbl
		tbl.SetWidth(maxW - 4)
		tbl.SetHeight(min(lay.height-4, 20))
		attrsBox := boxStyle.Width(maxW).Render(dimStyle.Render(m.attrsTitle) + "\n" + tbl.View())
		mapView = lipgloss.Place(lay.width, lay.height, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		ta := m.ta
		ta.SetWidth(lay.width)
		ta.SetHeight(min(lay.height, 12))
		mapView = lipgloss.NewStyle().Width(lay.width).Height(lay.height).Render(ta.View())
	default:
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(lay.width).Height(lay.height).Render(f.renderMap(lay.width, lay.height))
	}

	body := mapView
	if m.sidebar != sidebarHidden {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + f.status + " ")
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  x=%.5f y=%.5f  ", m.hoverGeo.X, m.hoverGeo.Y))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, lay.contentWidth-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(lay.contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lay.contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"m/s/b/i/z mode",
		"Esc clear",
		"Tab sidebar",
		"1-9 layer",
		"r proj",
		"p paste",
		"a attrs",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
