package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geoview/internal/layer"
	"geoview/internal/mapfn"
)

// modeKeys activates an interaction function; the registry yields the
// functions it conflicts with.
var modeKeys = map[string]string{
	"m": "pan",
	"s": "select",
	"b": "label-select",
	"i": "identify",
	"z": "zoom",
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := m.frame
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeFrame()
	case resetMsg:
		if f.fire(msg.tok) {
			m.refreshLegend()
		}
		return m, nil
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.sidebar == sidebarFiles && m.files.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.files, cmd = m.files.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				w := strings.TrimSpace(m.ta.Value())
				if w == "" {
					f.status = "paste: empty"
					return m, nil
				}
				if err := m.loadWKT(w); err != nil {
					f.status = "wkt error: " + err.Error()
					return m, nil
				}
				m.pasteMode = false
				m.ta.Blur()
				return m, f.takeCmds()
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if cmd, done := m.handleKey(msg); done {
			return m, tea.Batch(cmd, f.takeCmds())
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
		f.refreshSelection()
		if f.identify != nil {
			m.showIdentify(*f.identify)
			f.identify = nil
		}
		if f.legendDirty {
			m.refreshLegend()
		}
		return m, f.takeCmds()
	}
	var listCmd tea.Cmd
	switch m.sidebar {
	case sidebarFiles:
		m.files, listCmd = m.files.Update(msg)
	case sidebarLegend:
		m.legend, listCmd = m.legend.Update(msg)
	}
	if f.legendDirty {
		m.refreshLegend()
	}
	return m, tea.Batch(f.takeCmds(), listCmd)
}

// handleKey runs the global key bindings. It reports done when the key must
// not reach the sidebar list.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	f := m.frame
	key := msg.String()
	if name, ok := modeKeys[key]; ok {
		if err := f.reg.Activate(name); err != nil {
			f.status = err.Error()
		} else {
			m.mode = name
			f.status = "mode: " + name
		}
		return nil, true
	}
	switch key {
	case "ctrl+c", "q":
		return tea.Quit, true
	case "tab":
		m.sidebar = (m.sidebar + 1) % 3
		switch m.sidebar {
		case sidebarFiles:
			m.refreshDir()
		case sidebarLegend:
			m.refreshLegend()
		}
		m.resizeFrame()
		return nil, true
	case "p":
		m.pasteMode = !m.pasteMode
		if m.pasteMode {
			m.ta.SetValue("")
			f.status = "paste mode"
			m.ta.Focus()
		} else {
			f.status = "view mode"
			m.ta.Blur()
		}
		return nil, true
	case "h":
		m.helpVisible = !m.helpVisible
		return nil, true
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.showSelectionAttrs()
		}
		return nil, true
	case "esc":
		if m.showAttrs {
			m.showAttrs = false
			return nil, true
		}
		res := f.resolver.Clear(f.root.Children())
		f.status = res.Message
		f.refreshSelection()
		f.Invalidate()
		return nil, true
	case "t":
		f.labels = !f.labels
		f.status = fmt.Sprintf("labels: %v", f.labels)
		return nil, true
	case "l":
		m.toggleAll()
		return nil, true
	case "r":
		to := layer.WebMercator
		if f.root.Projection() == layer.WebMercator {
			to = layer.WGS84
		}
		if err := f.reproject(to); err != nil {
			f.status = "reproject error: " + err.Error()
		} else {
			f.status = "projection: " + to
		}
		return nil, true
	case "enter":
		switch m.sidebar {
		case sidebarFiles:
			if it, ok := m.files.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		case sidebarLegend:
			m.toggleEntry(m.legend.Index())
		}
		return nil, true
	}
	if len(key) == 1 && key >= "1" && key <= "9" {
		m.toggleEntry(int(key[0] - '1'))
		return nil, true
	}
	e, _ := f.router.KeyDown(keyEvent(key))
	if e.Handled && m.sidebar != sidebarHidden {
		// the map consumed it; keep the list cursor where it is
		return nil, true
	}
	return nil, false
}

// keyEvent splits modifier prefixes off a bubbletea key string.
func keyEvent(s string) mapfn.KeyEvent {
	var e mapfn.KeyEvent
	for {
		switch {
		case strings.HasPrefix(s, "ctrl+") && len(s) > len("ctrl+"):
			e.Modifiers |= mapfn.Ctrl
			s = s[len("ctrl+"):]
			continue
		case strings.HasPrefix(s, "alt+") && len(s) > len("alt+"):
			e.Modifiers |= mapfn.Alt
			s = s[len("alt+"):]
			continue
		case strings.HasPrefix(s, "shift+") && len(s) > len("shift+"):
			e.Modifiers |= mapfn.Shift
			s = s[len("shift+"):]
			continue
		}
		break
	}
	e.Key = s
	return e
}

// handleMouse converts a terminal cell event into a micro-pixel event and
// routes it.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	f := m.frame
	lay := m.layout()
	e := mapfn.MouseEvent{
		Pixel:     cellToMicro(msg.X-lay.originX, msg.Y-lay.originY),
		Modifiers: mouseModifiers(msg),
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			e.Delta = 1
			f.router.MouseWheel(e)
		case tea.MouseButtonWheelDown:
			e.Delta = -1
			f.router.MouseWheel(e)
		default:
			e.Button = mouseButton(msg.Button)
			if e.Button == mapfn.ButtonNone {
				return
			}
			m.pressed = e.Button
			f.router.MouseDown(e)
		}
	case tea.MouseActionRelease:
		e.Button = mouseButton(msg.Button)
		if e.Button == mapfn.ButtonNone {
			e.Button = m.pressed
		}
		m.pressed = mapfn.ButtonNone
		f.router.MouseUp(e)
	case tea.MouseActionMotion:
		e.Button = m.pressed
		e, _ = f.router.MouseMove(e)
		m.hoverHasGeo = e.InView
		m.hoverGeo = e.Geo
	}
}

func mouseButton(b tea.MouseButton) mapfn.Button {
	switch b {
	case tea.MouseButtonLeft:
		return mapfn.ButtonLeft
	case tea.MouseButtonRight:
		return mapfn.ButtonRight
	case tea.MouseButtonMiddle:
		return mapfn.ButtonMiddle
	}
	return mapfn.ButtonNone
}

func mouseModifiers(msg tea.MouseMsg) mapfn.Modifiers {
	var mods mapfn.Modifiers
	if msg.Shift {
		mods |= mapfn.Shift
	}
	if msg.Ctrl {
		mods |= mapfn.Ctrl
	}
	if msg.Alt {
		mods |= mapfn.Alt
	}
	return mods
}
