package main

import (
	"fmt"
	"image"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"

	"github.com/milk9111/mapforge/brush"
	"github.com/milk9111/mapforge/catalog"
	"github.com/milk9111/mapforge/config"
	"github.com/milk9111/mapforge/mapdata"
	"github.com/milk9111/mapforge/mapfile"
	"github.com/milk9111/mapforge/mapview"
	"github.com/milk9111/mapforge/present"
	"github.com/milk9111/mapforge/undo"
)

const (
	leftPanelWidth = 200
	toolbarHeight  = 56
	statusHeight   = 40
)

// Viewer is the ebiten game hosting one map session.
type Viewer struct {
	cfg     config.Config
	cat     *catalog.Catalog
	view    *mapview.View
	layers  *present.Layers
	watcher *catalog.Watcher
	clip    *Clipboard

	ui         *ebitenui.UI
	toolBar    *ToolBar
	layerPanel *LayerPanel
	toggles    *Toggles

	layer    int
	offset   image.Point
	showGrid bool
	palette  Palette

	stroking  bool
	lastPoint image.Point
	selecting bool
	selStart  image.Point
	panning   bool
	panLast   image.Point

	screenW, screenH int
}

func NewViewer(cfg config.Config, cat *catalog.Catalog, m *mapdata.Map) *Viewer {
	v := &Viewer{
		cfg:      cfg,
		cat:      cat,
		view:     mapview.New(m, cat, undo.NewHistory(cfg.MaxUndo)),
		layers:   present.NewLayers(),
		clip:     NewClipboard(),
		offset:   image.Pt(leftPanelWidth+16, toolbarHeight+16),
		showGrid: cfg.ShowGrid,
	}
	v.view.SetZoom(cfg.Zoom)
	v.view.SetAnimations(cfg.ShowAnimations)
	v.palette.corner = cfg.Corner()
	v.applyPalette()

	v.ui, v.toolBar, v.layerPanel, v.toggles = BuildViewerUI(UICallbacks{
		OnToolSelected:  func(t brush.Tool) { v.view.SetTool(t) },
		OnCornerCycled:  v.cycleCorner,
		OnLayerSelected: func(i int) { v.layer = i },
		OnNewLayer:      v.newLayer,
		OnDeleteLayer:   v.deleteLayer,
		OnMoveLayerUp:   func(i int) { v.moveLayer(i, i+1) },
		OnMoveLayerDown: func(i int) { v.moveLayer(i, i-1) },
		OnToggleVisible: v.toggleVisible,
		OnToggleAnim:    v.toggleAnimations,
		OnToggleGrid:    func() { v.showGrid = !v.showGrid; v.toggles.SetGrid(v.showGrid) },
	})
	v.toolBar.SetTool(v.view.Tool())
	v.toolBar.SetCorner(v.palette.corner)
	v.toggles.SetAnimations(v.view.Animations())
	v.toggles.SetGrid(v.showGrid)
	v.refreshLayers()
	return v
}

func (v *Viewer) Update() error {
	v.ui.Update()
	v.pollAssets()
	v.handleKeys()
	v.handleMouse()
	v.view.Tick()
	v.layers.Sync(v.view.Compositor().Buffers())
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Dimgray)
	zoom := v.view.Zoom()
	v.layers.Draw(screen, v.view.Compositor().Buffers(), zoom, v.offset)
	m := v.view.Map()
	if v.showGrid {
		present.DrawGrid(screen, m.Width, m.Height, zoom, v.offset, colornames.Darkslategray)
	}
	present.DrawRect(screen, v.view.Selection(), zoom, v.offset, colornames.Gold)
	if c, ok := v.hoveredCell(); ok {
		present.DrawRect(screen, image.Rect(c.X, c.Y, c.X+1, c.Y+1), zoom, v.offset, colornames.White)
	}

	v.ui.Draw(screen)

	y := v.screenH - statusHeight + 4
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  layer %d/%d  zoom %.2f  tick %d  animated %d",
		m, v.layer+1, len(m.Layers), zoom, v.view.Scheduler().Count(), v.view.Registry().Len()), leftPanelWidth+8, y)
	ebitenutil.DebugPrintAt(screen, "Brush: "+v.palette.String(), leftPanelWidth+8, y+18)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.screenW, v.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (v *Viewer) pollAssets() {
	if v.watcher == nil {
		return
	}
	changed := v.watcher.Drain()
	if changed == "" {
		return
	}
	cat, err := catalog.Load(v.cfg.Catalog)
	if err != nil {
		log.Printf("reload after %s failed: %v", changed, err)
		return
	}
	if err := v.view.SetCatalog(cat); err != nil {
		log.Printf("reload after %s rejected: %v", changed, err)
		return
	}
	v.cat = cat
	log.Printf("reloaded catalog after change to %s", changed)
}

// Settings returns the configuration with the session's current view state
// folded in, for saving on exit.
func (v *Viewer) Settings() config.Config {
	cfg := v.cfg
	cfg.Zoom = v.view.Zoom()
	cfg.ShowGrid = v.showGrid
	cfg.ShowAnimations = v.view.Animations()
	cfg.BrushCorner = v.palette.corner.String()
	return cfg
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func (v *Viewer) handleKeys() {
	ctrl := ctrlPressed()
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		v.view.Undo()
		v.refreshLayers()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		v.save()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		v.copySelection()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV):
		v.pasteBrush()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyB):
		if b := v.view.CopySelection(v.layer); !b.Empty() {
			b.Origin = v.palette.corner
			v.view.SetBrush(b)
			v.palette.custom = true
		}
	}
	if ctrl {
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		v.setTool(brush.Pencil)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		v.setTool(brush.Eraser)
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		v.setTool(brush.Fill)
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		v.toggleAnimations()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		v.showGrid = !v.showGrid
		v.toggles.SetGrid(v.showGrid)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		v.view.SetSelection(image.Rectangle{})
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		v.palette.autotile = !v.palette.autotile
		v.applyPalette()
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		v.palette.step(v.view.Map(), 1)
		v.applyPalette()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		v.palette.step(v.view.Map(), -1)
		v.applyPalette()
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		v.palette.stepSource(v.view.Map(), 1)
		v.applyPalette()
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		v.palette.stepSource(v.view.Map(), -1)
		v.applyPalette()
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		v.selectLayer(v.layer + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		v.selectLayer(v.layer - 1)
	}
}

func (v *Viewer) handleMouse() {
	mx, my := ebiten.CursorPosition()
	cursor := image.Pt(mx, my)

	if _, wy := ebiten.Wheel(); wy != 0 && v.inCanvas(cursor) {
		// keep the point under the cursor fixed
		before := present.ScreenToMap(cursor, v.view.Zoom(), v.offset)
		factor := 1.1
		if wy < 0 {
			factor = 1 / 1.1
		}
		v.view.SetZoom(v.view.Zoom() * factor)
		z := v.view.Zoom()
		v.offset = image.Pt(mx-int(float64(before.X)*z), my-int(float64(before.Y)*z))
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		if !v.panning {
			v.panning = true
			v.panLast = cursor
		}
		v.offset = v.offset.Add(cursor.Sub(v.panLast))
		v.panLast = cursor
	} else {
		v.panning = false
	}

	p := present.ScreenToMap(cursor, v.view.Zoom(), v.offset)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && v.inCanvas(cursor) {
		v.selecting = true
		v.selStart = brush.CellOf(p)
	}
	if v.selecting {
		c := brush.CellOf(p)
		r := image.Rectangle{Min: v.selStart, Max: c}.Canon()
		r.Max = r.Max.Add(image.Pt(1, 1))
		v.view.SetSelection(r)
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
			v.selecting = false
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && v.inCanvas(cursor) {
		v.stroking = true
		v.lastPoint = brush.NoPoint
		v.view.BeginStroke(p)
	}
	if !v.stroking {
		return
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		v.stroking = false
		v.view.EndStroke()
		return
	}
	if v.lastPoint != brush.NoPoint && brush.CellOf(v.lastPoint) == brush.CellOf(p) {
		return
	}
	v.view.DrawTiles(v.lastPoint, p, v.layer)
	v.lastPoint = p
	if v.view.Tool() == brush.Fill {
		// one fill per click
		v.stroking = false
		v.view.EndStroke()
	}
}

// inCanvas reports whether a screen point lies outside the UI panels.
func (v *Viewer) inCanvas(p image.Point) bool {
	return p.X >= leftPanelWidth && p.Y >= toolbarHeight && p.Y < v.screenH-statusHeight
}

func (v *Viewer) hoveredCell() (image.Point, bool) {
	mx, my := ebiten.CursorPosition()
	if !v.inCanvas(image.Pt(mx, my)) {
		return image.Point{}, false
	}
	c := brush.CellOf(present.ScreenToMap(image.Pt(mx, my), v.view.Zoom(), v.offset))
	return c, v.view.Map().InBounds(c.X, c.Y)
}

func (v *Viewer) setTool(t brush.Tool) {
	v.view.SetTool(t)
	v.toolBar.SetTool(t)
}

func (v *Viewer) cycleCorner() {
	v.palette.corner = (v.palette.corner + 1) % (brush.BottomRight + 1)
	b := v.view.Brush()
	b.Origin = v.palette.corner
	v.view.SetBrush(b)
	v.toolBar.SetCorner(v.palette.corner)
}

func (v *Viewer) applyPalette() {
	v.palette.custom = false
	v.view.SetBrush(v.palette.Brush(v.view.Map()))
}

func (v *Viewer) toggleAnimations() {
	v.view.SetAnimations(!v.view.Animations())
	v.toggles.SetAnimations(v.view.Animations())
}

func (v *Viewer) selectLayer(i int) {
	if i < 0 || i >= len(v.view.Map().Layers) {
		return
	}
	v.layer = i
	v.layerPanel.SetSelected(i)
}

func (v *Viewer) newLayer() {
	v.view.InsertLayer(v.layer + 1)
	v.layer++
	v.refreshLayers()
}

func (v *Viewer) deleteLayer(i int) {
	if err := v.view.DeleteLayer(i); err != nil {
		log.Printf("delete layer: %v", err)
		return
	}
	v.refreshLayers()
}

func (v *Viewer) moveLayer(from, to int) {
	n := len(v.view.Map().Layers)
	if from < 0 || to < 0 || from >= n || to >= n {
		return
	}
	v.view.SwapLayers(from, to)
	v.layer = to
	v.refreshLayers()
}

func (v *Viewer) toggleVisible(i int) {
	l := v.view.Map().Layers[i]
	v.view.SetLayerVisible(i, !l.Visible)
	v.refreshLayers()
}

func (v *Viewer) refreshLayers() {
	m := v.view.Map()
	if v.layer >= len(m.Layers) {
		v.layer = len(m.Layers) - 1
	}
	entries := make([]LayerEntry, len(m.Layers))
	for i, l := range m.Layers {
		entries[i] = LayerEntry{Index: i, Name: l.Name, Visible: l.Visible}
	}
	v.layerPanel.SetLayers(entries)
	v.layerPanel.SetSelected(v.layer)
}

func (v *Viewer) save() {
	if v.cfg.Map == "" {
		v.cfg.Map = fmt.Sprintf("maps/map_%03d.yaml", v.view.Map().ID)
	}
	if err := mapfile.SaveFile(v.cfg.Map, v.view.Map()); err != nil {
		log.Printf("save error: %v", err)
		return
	}
	log.Printf("saved to %s", v.cfg.Map)
}

func (v *Viewer) copySelection() {
	b := v.view.CopySelection(v.layer)
	if b.Empty() {
		return
	}
	if err := v.clip.WriteBrush(b); err != nil {
		log.Printf("copy: %v", err)
	}
}

func (v *Viewer) pasteBrush() {
	b, err := v.clip.ReadBrush()
	if err != nil {
		log.Printf("paste: %v", err)
		return
	}
	if err := fitsMap(b, v.view.Map()); err != nil {
		log.Printf("paste: %v", err)
		return
	}
	b.Origin = v.palette.corner
	v.view.SetBrush(b)
	v.palette.custom = true
}

// fitsMap rejects brushes copied from a map with a longer catalog list.
func fitsMap(b brush.Brush, m *mapdata.Map) error {
	for _, t := range b.Tiles {
		switch {
		case t.Kind == mapdata.KindTileset && t.Index >= len(m.TilesetIDs),
			t.Kind == mapdata.KindAutotile && t.Index >= len(m.AutotileIDs):
			return fmt.Errorf("brush uses %s %d, map has %d tilesets and %d autotiles",
				t.Kind, t.Index, len(m.TilesetIDs), len(m.AutotileIDs))
		}
	}
	return nil
}
