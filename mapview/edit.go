package mapview

import (
	"fmt"
	"log"

	"github.com/milk9111/mapforge/mapdata"
	"github.com/milk9111/mapforge/undo"
)

// InsertLayer inserts an empty layer at index and returns it.
func (v *View) InsertLayer(index int) *mapdata.Layer {
	l := v.m.InsertLayer(index, nil)
	v.comp.InsertLayer(index)
	if v.hist != nil && !v.replaying {
		v.hist.RecordLayer(v.m.ID, index, nil, false)
	}
	return l
}

// DeleteLayer removes the layer at index. The last layer of a map cannot be
// deleted.
func (v *View) DeleteLayer(index int) error {
	v.checkLayer(index)
	if len(v.m.Layers) == 1 {
		return fmt.Errorf("mapview: cannot delete the only layer of %s", v.m)
	}
	l := v.m.RemoveLayer(index)
	v.comp.RemoveLayer(index)
	if v.hist != nil && !v.replaying {
		v.hist.RecordLayer(v.m.ID, index, l, true)
	}
	return nil
}

func (v *View) SwapLayers(i, j int) {
	v.checkLayer(i)
	v.checkLayer(j)
	if i == j {
		return
	}
	v.m.SwapLayers(i, j)
	v.comp.SwapLayers(i, j)
	if v.hist != nil && !v.replaying {
		v.hist.RecordSwap(v.m.ID, i, j)
	}
}

func (v *View) SetLayerVisible(layer int, visible bool) {
	v.checkLayer(layer)
	v.m.Layers[layer].Visible = visible
	v.comp.SetVisible(layer, visible)
}

// Resize changes the map size keeping the top-left region, then re-derives
// shapes along the new edge and renders everything again.
func (v *View) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("mapview: invalid map size %dx%d", width, height)
	}
	v.m.Resize(width, height)
	v.forget()
	v.clipSelection()
	v.resolveAll()
	v.comp.Build()
	return nil
}

// SetTilesets replaces the map's tileset list. Cells referencing a removed
// tileset become empty. It returns the number of cells emptied.
func (v *View) SetTilesets(ids []int) int {
	if v.m.RemovedInUse(mapdata.KindTileset, v.m.TilesetIDs, ids) {
		log.Printf("mapview: %s: removing tilesets that are still in use", v.m)
	}
	n := v.m.RemapTilesets(v.m.TilesetIDs, ids)
	v.forget()
	v.comp.Build()
	return n
}

// SetAutotiles replaces the map's autotile list. Removed autotiles empty
// their cells and neighbouring shapes are re-derived.
func (v *View) SetAutotiles(ids []int) int {
	if v.m.RemovedInUse(mapdata.KindAutotile, v.m.AutotileIDs, ids) {
		log.Printf("mapview: %s: removing autotiles that are still in use", v.m)
	}
	n := v.m.RemapAutotiles(v.m.AutotileIDs, ids)
	v.forget()
	v.resolveAll()
	v.comp.Build()
	return n
}

// RemovesInUse reports whether replacing the map's tileset or autotile list
// with ids would empty painted cells.
func (v *View) RemovesInUse(kind mapdata.Kind, ids []int) bool {
	switch kind {
	case mapdata.KindTileset:
		return v.m.RemovedInUse(kind, v.m.TilesetIDs, ids)
	case mapdata.KindAutotile:
		return v.m.RemovedInUse(kind, v.m.AutotileIDs, ids)
	}
	return false
}

// SetAnimations turns autotile animation on or off. Turning it off shows
// every animated cell at frame 0.
func (v *View) SetAnimations(on bool) {
	v.sched.SetEnabled(on)
}

func (v *View) Animations() bool { return v.sched.Enabled() }

// Tick advances the animation by one frame and returns the number of
// cells redrawn.
func (v *View) Tick() int {
	return v.sched.Tick()
}

// SetZoom sets the display scale. It never touches layer buffers.
func (v *View) SetZoom(z float64) {
	v.zoom = max(MinZoom, min(MaxZoom, z))
}

func (v *View) Zoom() float64 { return v.zoom }

// Undo reverts the most recent action of this map. It reports whether
// anything was reverted.
func (v *View) Undo() bool {
	if v.hist == nil {
		return false
	}
	v.hist.MarkReady()
	for {
		a, ok := v.hist.Pop()
		if !ok {
			return false
		}
		if a.Map() != v.m.ID {
			continue
		}
		v.replaying = true
		v.revert(a)
		v.replaying = false
		return true
	}
}

func (v *View) revert(a undo.Action) {
	switch a := a.(type) {
	case *undo.TileGroup:
		if a.Layer >= len(v.m.Layers) {
			return
		}
		for i := len(a.Changes) - 1; i >= 0; i-- {
			c := a.Changes[i]
			v.DrawTile(c.Cell%v.m.Width, c.Cell/v.m.Width, a.Layer, c.Old)
		}
	case *undo.LayerAction:
		if a.Deleted {
			if a.Data == nil || len(a.Data.Tiles) != v.m.Width*v.m.Height {
				log.Printf("mapview: cannot restore layer %d of %s: size changed", a.Layer, v.m)
				return
			}
			v.m.InsertLayer(a.Layer, a.Data)
			v.comp.InsertLayer(a.Layer)
			return
		}
		if a.Layer < len(v.m.Layers) && len(v.m.Layers) > 1 {
			v.m.RemoveLayer(a.Layer)
			v.comp.RemoveLayer(a.Layer)
		}
	case *undo.SwapAction:
		n := len(v.m.Layers)
		if a.I < n && a.J < n {
			v.SwapLayers(a.I, a.J)
		}
	}
}

// forget drops the history of this session. Recorded cell indices and
// catalog indices are meaningless after a resize or remap.
func (v *View) forget() {
	if v.hist != nil {
		v.hist.Clear()
	}
}
