package mapview

import (
	"image"

	"github.com/milk9111/mapforge/brush"
	"github.com/milk9111/mapforge/mapdata"
)

func (v *View) Brush() brush.Brush { return v.brush }

func (v *View) SetBrush(b brush.Brush) { v.brush = b }

func (v *View) Tool() brush.Tool { return v.tool }

func (v *View) SetTool(t brush.Tool) { v.tool = t }

// Selection is the active selection in cells, clipped to the map.
func (v *View) Selection() image.Rectangle { return v.selection }

// HasSelection reports whether a selection is set, even one lying wholly
// outside the map.
func (v *View) HasSelection() bool { return !v.selRaw.Empty() }

// SetSelection selects r. An empty r clears the selection. Painting with a
// selection that misses the map writes nothing.
func (v *View) SetSelection(r image.Rectangle) {
	v.selRaw = r.Canon()
	if v.selRaw.Empty() {
		v.selRaw = image.Rectangle{}
	}
	v.clipSelection()
}

func (v *View) clipSelection() {
	v.selection = v.selRaw.Intersect(image.Rect(0, 0, v.m.Width, v.m.Height))
}

// CopySelection returns the selected region of layer as a brush.
func (v *View) CopySelection(layer int) brush.Brush {
	v.checkLayer(layer)
	return brush.FromRegion(v.m, layer, v.selection)
}

// Origin is the cell where the current stroke started.
func (v *View) Origin() image.Point { return v.origin }

// BeginStroke starts a stroke at map pixel p.
func (v *View) BeginStroke(p image.Point) {
	if v.hist != nil {
		v.hist.MarkReady()
	}
	v.origin = brush.CellOf(p)
	v.stroking = true
}

// EndStroke closes the stroke's undo group.
func (v *View) EndStroke() {
	v.stroking = false
	if v.hist != nil {
		v.hist.MarkReady()
	}
}

// DrawTiles applies one gesture step from map pixel prev to cur on layer
// with the current tool, brush and selection. prev is brush.NoPoint on the
// first step of a stroke. It returns the number of cells that changed.
func (v *View) DrawTiles(prev, cur image.Point, layer int) int {
	v.checkLayer(layer)
	if v.HasSelection() && v.selection.Empty() {
		return 0
	}
	if !v.stroking {
		v.origin = brush.CellOf(cur)
	}
	b := v.brush
	if v.tool == brush.Eraser && b.Empty() {
		b = brush.Single(mapdata.Tile{})
	}
	g := brush.Gesture{Prev: prev, Cur: cur, Origin: v.origin, Tool: v.tool, Selection: v.selection}
	changed := 0
	for _, w := range brush.Plan(g, b, v.m.Width, v.m.Height) {
		if v.DrawTile(w.X, w.Y, layer, w.Tile) {
			changed++
		}
	}
	return changed
}

// DrawTile writes t into (x, y) of layer. Writes equal to the current tile
// are dropped without recording or redrawing. It reports whether the cell
// changed.
func (v *View) DrawTile(x, y, layer int, t mapdata.Tile) bool {
	v.checkLayer(layer)
	if !v.m.InBounds(x, y) {
		return false
	}
	old := v.m.TileAt(layer, x, y)
	if mapdata.Same(old, t) {
		return false
	}
	v.m.SetTile(layer, x, y, t)
	if v.hist != nil && !v.replaying {
		v.hist.RecordTile(v.m.ID, layer, v.m.CellIndex(x, y), t, old)
	}
	if old.IsAutotile() {
		v.UpdateAutotiles(layer, x, y, old.Index, true, true)
	}
	if t.IsAutotile() {
		// The resolver redraws the cell once its shape is stored.
		v.UpdateAutotiles(layer, x, y, t.Index, true, false)
		return true
	}
	v.comp.RedrawCell(layer, x, y)
	return true
}

// UpdateAutotiles recomputes the shape at (x, y) for group and, with
// checkNeighbours, the shapes of its autotile neighbours. Every cell whose
// shape is stored is redrawn.
func (v *View) UpdateAutotiles(layer, x, y, group int, checkNeighbours, deleted bool) {
	v.res.Update(v.m.Grid(layer), x, y, group, checkNeighbours, deleted)
}
