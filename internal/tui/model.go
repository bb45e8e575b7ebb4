package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"geoview/internal/config"
	"geoview/internal/geom"
	"geoview/internal/mapfn"
)

const sidebarWidth = 28

type sidebarMode uint8

const (
	sidebarHidden sidebarMode = iota
	sidebarFiles
	sidebarLegend
)

// Options configures a Model.
type Options struct {
	Config config.Config
	Logger *log.Logger
}

type Model struct {
	width  int
	height int

	sidebar     sidebarMode
	helpVisible bool

	// map frame shared by every copy of the model
	frame *mapFrame
	mode  string

	// File explorer
	cwd     string
	files   list.Model
	selPath string

	// layer legend
	legend list.Model

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// hover state
	hoverHasGeo bool
	hoverGeo    geom.Coordinate

	// button held since the last press; some terminals report releases
	// without one
	pressed mapfn.Button

	// attributes table
	showAttrs  bool
	attrsTitle string
	tbl        table.Model
}

func New(opts Options) Model {
	m := Model{
		helpVisible: true,
		frame:       newMapFrame(opts.Config, opts.Logger),
		mode:        "pan",
	}
	m.frame.status = "geoview ready"
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.files = list.New(nil, d, 0, 0)
	m.files.Title = "Files"
	m.files.SetShowHelp(false)
	m.files.SetShowStatusBar(false)
	m.files.SetFilteringEnabled(true)
	// legend setup
	ld := list.NewDefaultDelegate()
	m.legend = list.New(nil, ld, 0, 0)
	m.legend.Title = "Layers"
	m.legend.SetShowHelp(false)
	m.legend.SetShowStatusBar(false)
	m.legend.SetFilteringEnabled(false)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here, one geometry per line. Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns are inferred per result)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPaths preloads files at launch.
func NewWithPaths(opts Options, paths ...string) Model {
	m := New(opts)
	for _, p := range paths {
		m.loadPath(p)
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// layout is the map area in terminal cells.
type layout struct {
	originX, originY int
	width, height    int
	contentWidth     int
	contentHeight    int
}

func (m Model) layout() layout {
	sw := 0
	if m.sidebar != sidebarHidden {
		sw = sidebarWidth
	}
	headerHeight := 1
	footerHeight := 2
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	mapWidth := max(10, contentWidth-sw-1)
	originX := 0
	if sw > 0 {
		originX = sw + 1
	}
	return layout{
		originX:       originX,
		originY:       headerHeight,
		width:         mapWidth,
		height:        contentHeight,
		contentWidth:  contentWidth,
		contentHeight: contentHeight,
	}
}

// resizeFrame keeps the frame's micro-pixel client in step with the layout.
func (m *Model) resizeFrame() {
	lay := m.layout()
	if w, h := lay.width*2, lay.height*4; w != m.frame.t.Width || h != m.frame.t.Height {
		m.frame.resize(w, h)
	}
	m.files.SetSize(sidebarWidth-2, lay.contentHeight-2)
	m.legend.SetSize(sidebarWidth-2, lay.contentHeight-2)
}
