// Package undo records map edits so they can be reverted.
package undo

import "github.com/milk9111/mapforge/mapdata"

// DefaultMaxDepth bounds the history when no depth is given.
const DefaultMaxDepth = 100

// Action is one undoable step: a *TileGroup, *LayerAction or *SwapAction.
type Action interface {
	Map() int
}

// TileChange is one cell write. Cell is the flat index x + y*width.
type TileChange struct {
	Cell int
	New  mapdata.Tile
	Old  mapdata.Tile
}

// TileGroup collects the writes of one stroke on one layer.
type TileGroup struct {
	MapID   int
	Layer   int
	Changes []TileChange
	// Ready closes the group; later writes start a new one.
	Ready bool
}

func (g *TileGroup) Map() int { return g.MapID }

// LayerAction records a layer that was created or deleted. Data holds the
// deleted layer's tiles so it can be reinserted.
type LayerAction struct {
	MapID   int
	Layer   int
	Data    *mapdata.Layer
	Deleted bool
}

func (a *LayerAction) Map() int { return a.MapID }

// SwapAction records two layers trading places. Later actions refer to the
// swapped order, so swaps are undone in sequence with them.
type SwapAction struct {
	MapID int
	I, J  int
}

func (a *SwapAction) Map() int { return a.MapID }

// Recorder receives edits as they happen.
type Recorder interface {
	RecordTile(mapID, layer, cell int, newTile, oldTile mapdata.Tile)
	RecordLayer(mapID, layer int, data *mapdata.Layer, deleted bool)
	RecordSwap(mapID, i, j int)
}

var _ Recorder = (*History)(nil)

// History is a bounded stack of actions. The oldest action is dropped when
// the depth is exceeded.
type History struct {
	MaxDepth int
	stack    []Action
}

func NewHistory(maxDepth int) *History {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &History{MaxDepth: maxDepth}
}

// RecordTile appends to the open group of the same map and layer, or starts
// a new group.
func (h *History) RecordTile(mapID, layer, cell int, newTile, oldTile mapdata.Tile) {
	if g, ok := h.top().(*TileGroup); ok && !g.Ready && g.MapID == mapID && g.Layer == layer {
		g.Changes = append(g.Changes, TileChange{Cell: cell, New: newTile, Old: oldTile})
		return
	}
	h.push(&TileGroup{
		MapID:   mapID,
		Layer:   layer,
		Changes: []TileChange{{Cell: cell, New: newTile, Old: oldTile}},
	})
}

func (h *History) RecordLayer(mapID, layer int, data *mapdata.Layer, deleted bool) {
	h.MarkReady()
	h.push(&LayerAction{MapID: mapID, Layer: layer, Data: data, Deleted: deleted})
}

func (h *History) RecordSwap(mapID, i, j int) {
	h.MarkReady()
	h.push(&SwapAction{MapID: mapID, I: i, J: j})
}

// MarkReady closes the open tile group, if any.
func (h *History) MarkReady() {
	if g, ok := h.top().(*TileGroup); ok {
		g.Ready = true
	}
}

// Pop removes and returns the most recent action.
func (h *History) Pop() (Action, bool) {
	n := len(h.stack)
	if n == 0 {
		return nil, false
	}
	a := h.stack[n-1]
	h.stack[n-1] = nil
	h.stack = h.stack[:n-1]
	return a, true
}

func (h *History) Len() int {
	return len(h.stack)
}

func (h *History) Clear() {
	h.stack = nil
}

func (h *History) top() Action {
	if len(h.stack) == 0 {
		return nil
	}
	return h.stack[len(h.stack)-1]
}

func (h *History) push(a Action) {
	h.stack = append(h.stack, a)
	if len(h.stack) > h.MaxDepth {
		// drop oldest
		h.stack = h.stack[1:]
	}
}
