// Package anim tracks which map cells hold animated autotiles and advances
// their frames on a fixed tick.
package anim

import (
	"cmp"
	"slices"
)

// Cell addresses one grid cell of one layer.
type Cell struct {
	Layer int
	X     int
	Y     int
}

// Entry is an animated autotile on the map. Autotile is the catalog ID,
// not the map-local index.
type Entry struct {
	Cell
	Autotile int
	Shape    int
}

// Registry is the set of cells currently showing an animated autotile. It
// belongs to one map view and must mirror that view's tile grid.
type Registry struct {
	entries map[Cell]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[Cell]Entry)}
}

// Put adds or replaces the entry for e.Cell.
func (r *Registry) Put(e Entry) {
	r.entries[e.Cell] = e
}

// Remove drops the entry at c and reports whether there was one.
func (r *Registry) Remove(c Cell) bool {
	if _, ok := r.entries[c]; !ok {
		return false
	}
	delete(r.entries, c)
	return true
}

func (r *Registry) Get(c Cell) (Entry, bool) {
	e, ok := r.entries[c]
	return e, ok
}

func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) Clear() {
	clear(r.entries)
}

// Entries returns every entry ordered by layer, then row, then column.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.Layer, b.Layer),
			cmp.Compare(a.Y, b.Y),
			cmp.Compare(a.X, b.X),
		)
	})
	return out
}

// ByLayer groups the entries by layer index.
func (r *Registry) ByLayer() map[int][]Entry {
	out := make(map[int][]Entry)
	for _, e := range r.Entries() {
		out[e.Layer] = append(out[e.Layer], e)
	}
	return out
}

// RemoveLayer purges the entries of layer and shifts the layers above it
// down by one.
func (r *Registry) RemoveLayer(layer int) {
	r.remap(func(l int) (int, bool) {
		switch {
		case l == layer:
			return 0, false
		case l > layer:
			return l - 1, true
		default:
			return l, true
		}
	})
}

// InsertLayer shifts entries at or above layer up by one.
func (r *Registry) InsertLayer(layer int) {
	r.remap(func(l int) (int, bool) {
		if l >= layer {
			return l + 1, true
		}
		return l, true
	})
}

func (r *Registry) SwapLayers(i, j int) {
	r.remap(func(l int) (int, bool) {
		switch l {
		case i:
			return j, true
		case j:
			return i, true
		default:
			return l, true
		}
	})
}

func (r *Registry) remap(fn func(layer int) (int, bool)) {
	next := make(map[Cell]Entry, len(r.entries))
	for _, e := range r.entries {
		l, keep := fn(e.Layer)
		if !keep {
			continue
		}
		e.Layer = l
		next[e.Cell] = e
	}
	r.entries = next
}
