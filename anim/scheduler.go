package anim

import (
	"slices"

	"github.com/milk9111/mapforge/mapdata"
)

// Painter redraws animated cells of one layer. The scheduler batches all
// cells of a layer into one call so the layer buffer is opened once per tick.
type Painter interface {
	RedrawAnimated(layer int, entries []Entry)
}

// Scheduler owns the global animation tick. Time is counted in ticks, not
// wall-clock; the host calls Tick once per frame.
type Scheduler struct {
	reg     *Registry
	cat     mapdata.Catalog
	painter Painter
	tick    int
	enabled bool
}

func NewScheduler(reg *Registry, cat mapdata.Catalog, painter Painter) *Scheduler {
	return &Scheduler{reg: reg, cat: cat, painter: painter, enabled: true}
}

// SetCatalog swaps the catalog used to look up animation speeds.
func (s *Scheduler) SetCatalog(cat mapdata.Catalog) {
	s.cat = cat
}

func (s *Scheduler) Count() int { return s.tick }

func (s *Scheduler) Enabled() bool { return s.enabled }

// FrameOf returns the frame an autotile shows right now: frame 0 while
// animation is disabled.
func (s *Scheduler) FrameOf(at *mapdata.Autotile) int {
	if !s.enabled {
		return 0
	}
	return at.FrameAt(s.tick)
}

// Tick advances the counter and redraws every registered cell whose speed
// divides the new count. It returns the number of cells redrawn. Nothing
// happens while animation is disabled.
func (s *Scheduler) Tick() int {
	if !s.enabled {
		return 0
	}
	s.tick++
	groups := make(map[int][]Entry)
	for _, e := range s.reg.Entries() {
		at, ok := s.cat.Autotile(e.Autotile)
		if !ok || at.AnimateSpeed <= 0 {
			continue
		}
		if s.tick%at.AnimateSpeed == 0 {
			groups[e.Layer] = append(groups[e.Layer], e)
		}
	}
	return s.flush(groups)
}

// SetEnabled toggles animation. Disabling redraws every entry at frame 0;
// enabling redraws them at the current frame. Entries stay registered.
func (s *Scheduler) SetEnabled(enabled bool) {
	if s.enabled == enabled {
		return
	}
	s.enabled = enabled
	s.flush(s.reg.ByLayer())
}

func (s *Scheduler) flush(groups map[int][]Entry) int {
	if s.painter == nil {
		return 0
	}
	layers := make([]int, 0, len(groups))
	for l := range groups {
		layers = append(layers, l)
	}
	slices.Sort(layers)
	n := 0
	for _, l := range layers {
		s.painter.RedrawAnimated(l, groups[l])
		n += len(groups[l])
	}
	return n
}
