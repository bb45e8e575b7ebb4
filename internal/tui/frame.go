package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"geoview/internal/clip"
	"geoview/internal/config"
	"geoview/internal/geom"
	"geoview/internal/input"
	"geoview/internal/layer"
	"geoview/internal/mapfn"
	"geoview/internal/selection"
	"geoview/internal/view"
)

// resetMsg is delivered when a debounced extent reset may fire.
type resetMsg struct{ tok view.Token }

// piece is a clipped fragment of one feature, kept in map units.
type piece struct {
	layer    *layer.FeatureLayer
	index    int
	kind     layer.GeometryType
	lines    []orb.LineString
	point    orb.Point
	polygon  orb.Polygon
	selected bool
}

// mapFrame is the shared, pointer-held state behind Model. It is the host
// every interaction function acts on.
type mapFrame struct {
	cfg      config.Config
	logger   *log.Logger
	t        view.Transform
	max      geom.Extent
	root     *layer.Group
	resolver *selection.Resolver
	reg      *mapfn.Registry
	router   *input.Router
	debounce *view.Debouncer

	// scene is the visible geometry clipped to sceneExt at the last reset.
	scene    []piece
	sceneExt geom.Extent
	resets   int

	labels      bool
	legendDirty bool
	dirty       bool
	dirtyBox geom.Rectangle
	status   string
	identify *selection.Result
	cmds     []tea.Cmd
}

func newMapFrame(cfg config.Config, logger *log.Logger) *mapFrame {
	if logger == nil {
		logger = log.Default()
	}
	root := layer.NewGroup("map")
	if cfg.Projection != root.Projection() {
		root.Reproject(cfg.Projection)
	}
	f := &mapFrame{
		cfg:      cfg,
		logger:   logger,
		root:     root,
		resolver: selection.New(cfg.Selection(), logger),
		debounce: view.NewDebouncer(cfg.Debounce()),
		labels:   true,
	}
	f.resolver.Subscribe(func(e selection.Event) {
		if e.Kind != selection.Nothing && e.Kind != selection.Identified {
			f.legendDirty = true
		}
	})
	f.reg = mapfn.NewRegistry(f, logger)
	f.router = input.New(f.reg, f, logger)

	i := cfg.Interaction
	for _, fn := range []mapfn.Function{
		mapfn.NewGlyph(),
		mapfn.NewPan(),
		mapfn.NewSelect(),
		mapfn.NewLabelSelect(),
		mapfn.NewIdentify(),
		mapfn.NewClickZoom(2),
		mapfn.NewZoomScroll(i.WheelZoomFactor),
		mapfn.NewKeyNavigation(i.KeyPanFraction, i.WheelZoomFactor),
	} {
		if err := f.reg.Add(fn); err != nil {
			logger.Error("register function", "err", err)
		}
	}
	for _, name := range []string{"pan", "zoom-scroll", "keys"} {
		f.reg.Activate(name)
	}
	return f
}

func (f *mapFrame) Transform() view.Transform { return f.t }
func (f *mapFrame) ViewExtents() geom.Extent  { return f.t.Extent }

func (f *mapFrame) SetViewExtents(e geom.Extent) {
	if !e.Valid() || e.Degenerate() {
		return
	}
	f.t.Extent = e
	f.Invalidate()
}

func (f *mapFrame) Invalidate() {
	f.dirty = true
	f.dirtyBox = f.t.Bounds()
}

func (f *mapFrame) InvalidateRect(r geom.Rectangle) {
	if !f.dirty {
		f.dirtyBox = r
	} else {
		f.dirtyBox = geom.RectFromPoints(
			geom.Point{X: min(f.dirtyBox.X, r.X), Y: min(f.dirtyBox.Y, r.Y)},
			geom.Point{X: max(f.dirtyBox.Right(), r.Right()), Y: max(f.dirtyBox.Bottom(), r.Bottom())},
		)
	}
	f.dirty = true
}

func (f *mapFrame) MaxExtent() geom.Extent { return f.max }

func (f *mapFrame) IsZoomedToMaxExtent() bool {
	return !f.max.Degenerate() && f.t.Extent.ContainsExtent(f.max)
}

func (f *mapFrame) Layers() []layer.Node          { return f.root.Children() }
func (f *mapFrame) Resolver() *selection.Resolver { return f.resolver }

// RequestReset (re)starts the debounce; only the last request's tick fires.
func (f *mapFrame) RequestReset() {
	tok := f.debounce.Touch()
	f.cmds = append(f.cmds, tea.Tick(f.debounce.Delay(), func(time.Time) tea.Msg {
		return resetMsg{tok: tok}
	}))
}

func (f *mapFrame) ShowIdentify(res selection.Result) { f.identify = &res }
func (f *mapFrame) SetStatus(msg string)              { f.status = msg }

// takeCmds returns and clears the commands queued by functions.
func (f *mapFrame) takeCmds() tea.Cmd {
	cmds := f.cmds
	f.cmds = nil
	return tea.Batch(cmds...)
}

// fire runs the reset for tok unless a newer request superseded it.
func (f *mapFrame) fire(tok view.Token) bool {
	if !f.debounce.Fire(tok) {
		return false
	}
	f.reset()
	return true
}

// reset recomputes the max extent and rebuilds the clipped scene for the
// current view.
func (f *mapFrame) reset() {
	f.refreshMax()
	f.rebuildScene()
	f.resets++
	f.logger.Debug("extent reset", "extent", f.t.Extent, "pieces", len(f.scene))
}

func (f *mapFrame) refreshMax() {
	e := f.root.Extent()
	if e.IsZero() || !e.Valid() {
		f.max = geom.Extent{}
		return
	}
	pad := max(e.Width(), e.Height()) * 0.05
	if pad == 0 {
		pad = 1e-3
	}
	f.max = e.Expand(pad)
}

// resize sets the client size in braille micro pixels.
func (f *mapFrame) resize(w, h int) {
	f.t = f.t.Resize(w, h)
	if f.t.Extent.IsZero() && !f.max.Degenerate() {
		mapfn.ZoomToMax(f)
	}
	f.rebuildScene()
}

// zoomToData fits the view to every loaded layer.
func (f *mapFrame) zoomToData() {
	f.refreshMax()
	if f.t.Width > 0 && f.t.Height > 0 {
		mapfn.ZoomToMax(f)
	} else {
		f.t.Extent = f.max
	}
	f.rebuildScene()
}

func (f *mapFrame) rebuildScene() {
	f.scene = f.scene[:0]
	f.sceneExt = f.t.Extent
	if f.sceneExt.Degenerate() {
		return
	}
	w := f.sceneExt
	layer.WalkVisible(f.root.Children(), layer.Natural, func(l layer.Layer) bool {
		fl, ok := l.(*layer.FeatureLayer)
		if !ok || !fl.Extent().Intersects(w) {
			return true
		}
		for i, feat := range fl.Features() {
			f.addPieces(fl, i, feat.Geometry, w)
		}
		return true
	})
}

func (f *mapFrame) addPieces(fl *layer.FeatureLayer, i int, g orb.Geometry, w geom.Extent) {
	if g == nil || !w.Intersects(geom.FromBound(g.Bound())) {
		return
	}
	p := piece{layer: fl, index: i, selected: fl.IsFeatureSelected(i)}
	switch g := g.(type) {
	case orb.Point:
		p.kind, p.point = layer.Point, g
		f.scene = append(f.scene, p)
	case orb.MultiPoint:
		for _, pt := range g {
			f.addPieces(fl, i, pt, w)
		}
	case orb.LineString:
		p.kind = layer.Line
		if p.lines = clip.LineString(g, w); len(p.lines) > 0 {
			f.scene = append(f.scene, p)
		}
	case orb.MultiLineString:
		for _, ls := range g {
			f.addPieces(fl, i, ls, w)
		}
	case orb.Polygon:
		p.kind, p.polygon = layer.Polygon, g
		for _, r := range g {
			p.lines = append(p.lines, clip.Ring(r, w)...)
		}
		f.scene = append(f.scene, p)
	case orb.MultiPolygon:
		for _, poly := range g {
			f.addPieces(fl, i, poly, w)
		}
	case orb.Collection:
		for _, c := range g {
			f.addPieces(fl, i, c, w)
		}
	}
}

// reproject moves the whole tree into to and refits the view.
func (f *mapFrame) reproject(to string) error {
	if to == f.root.Projection() {
		return nil
	}
	if !f.root.CanReproject(to) {
		return &layer.Error{Layer: f.root.Name(), Op: "reproject", Err: layer.ErrCannotReproject}
	}
	if err := f.root.Reproject(to); err != nil {
		return err
	}
	f.cfg.Projection = to
	f.t.Extent = geom.Extent{}
	f.zoomToData()
	return nil
}

// refreshSelection updates the selected flags of the scene without reclipping.
func (f *mapFrame) refreshSelection() {
	for i := range f.scene {
		p := &f.scene[i]
		p.selected = p.layer.IsFeatureSelected(p.index)
	}
}
