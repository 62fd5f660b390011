// Package mapview is the editing session for one map: it applies paint
// gestures and layer edits, keeps autotile shapes resolved and keeps the
// rendered layers and animation registry in step with the map.
package mapview

import (
	"fmt"
	"image"

	"github.com/milk9111/mapforge/anim"
	"github.com/milk9111/mapforge/autotile"
	"github.com/milk9111/mapforge/brush"
	"github.com/milk9111/mapforge/compose"
	"github.com/milk9111/mapforge/mapdata"
	"github.com/milk9111/mapforge/undo"
)

const (
	MinZoom = 0.25
	MaxZoom = 4.0
)

// View is single-threaded: every method must run on the host's UI loop.
type View struct {
	m     *mapdata.Map
	cat   mapdata.Catalog
	reg   *anim.Registry
	comp  *compose.Compositor
	sched *anim.Scheduler
	res   autotile.Resolver
	hist  *undo.History

	brush brush.Brush
	tool  brush.Tool
	// selRaw is the selection as requested; selection is selRaw clipped to
	// the map. A non-empty selRaw with an empty clip selects nothing.
	selRaw    image.Rectangle
	selection image.Rectangle
	origin    image.Point
	stroking  bool
	zoom      float64
	replaying bool
}

// New creates a session on m. hist may be nil to disable undo.
func New(m *mapdata.Map, cat mapdata.Catalog, hist *undo.History) *View {
	v := &View{
		cat:   cat,
		reg:   anim.NewRegistry(),
		hist:  hist,
		zoom:  1,
		brush: brush.Single(mapdata.Tile{}),
	}
	v.comp = compose.NewCompositor(m, cat, v.reg)
	v.sched = anim.NewScheduler(v.reg, cat, v.comp)
	v.comp.SetFrames(v.sched)
	v.res.OnShape = func(g autotile.Grid, x, y, _ int) {
		v.comp.RedrawCell(g.Layer(), x, y)
	}
	v.Load(m)
	return v
}

// Load switches the session to m. Stored shapes are re-derived and every
// layer is rendered again.
func (v *View) Load(m *mapdata.Map) {
	v.m = m
	v.selRaw = image.Rectangle{}
	v.selection = image.Rectangle{}
	v.stroking = false
	v.forget()
	v.resolveAll()
	v.comp.SetSource(m, v.cat)
	v.comp.Build()
}

// SetCatalog swaps the asset catalog, for example after a hot reload. A
// catalog missing any asset the map lists is rejected and the current one
// stays in use.
func (v *View) SetCatalog(cat mapdata.Catalog) error {
	if err := v.m.CheckCatalog(cat); err != nil {
		return fmt.Errorf("mapview: set catalog: %w", err)
	}
	v.cat = cat
	v.comp.SetSource(v.m, cat)
	v.sched.SetCatalog(cat)
	v.comp.Build()
	return nil
}

func (v *View) Map() *mapdata.Map               { return v.m }
func (v *View) Catalog() mapdata.Catalog        { return v.cat }
func (v *View) Registry() *anim.Registry        { return v.reg }
func (v *View) Scheduler() *anim.Scheduler      { return v.sched }
func (v *View) Compositor() *compose.Compositor { return v.comp }
func (v *View) History() *undo.History          { return v.hist }

func (v *View) resolveAll() {
	for i := range v.m.Layers {
		autotile.ResolveAll(v.m.Grid(i))
	}
}

func (v *View) checkLayer(layer int) {
	if layer < 0 || layer >= len(v.m.Layers) {
		panic(fmt.Sprintf("mapview: layer %d out of range [0,%d)", layer, len(v.m.Layers)))
	}
}
