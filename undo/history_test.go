package undo

import (
	"testing"

	"github.com/milk9111/mapforge/mapdata"
)

func TestRecordTileGrouping(t *testing.T) {
	a := mapdata.TilesetTile(0, 1)
	b := mapdata.TilesetTile(0, 2)

	tests := []struct {
		name   string
		record func(h *History)
		groups int
	}{
		{
			name: "same stroke",
			record: func(h *History) {
				h.RecordTile(1, 0, 0, a, mapdata.Tile{})
				h.RecordTile(1, 0, 1, b, mapdata.Tile{})
			},
			groups: 1,
		},
		{
			name: "ready closes group",
			record: func(h *History) {
				h.RecordTile(1, 0, 0, a, mapdata.Tile{})
				h.MarkReady()
				h.RecordTile(1, 0, 1, b, mapdata.Tile{})
			},
			groups: 2,
		},
		{
			name: "layer change",
			record: func(h *History) {
				h.RecordTile(1, 0, 0, a, mapdata.Tile{})
				h.RecordTile(1, 1, 0, b, mapdata.Tile{})
			},
			groups: 2,
		},
		{
			name: "map change",
			record: func(h *History) {
				h.RecordTile(1, 0, 0, a, mapdata.Tile{})
				h.RecordTile(2, 0, 0, b, mapdata.Tile{})
			},
			groups: 2,
		},
		{
			name: "layer action in between",
			record: func(h *History) {
				h.RecordTile(1, 0, 0, a, mapdata.Tile{})
				h.RecordLayer(1, 1, nil, false)
				h.RecordTile(1, 0, 1, b, mapdata.Tile{})
			},
			groups: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(0)
			tt.record(h)
			if h.Len() != tt.groups {
				t.Fatalf("got %d actions, want %d", h.Len(), tt.groups)
			}
		})
	}
}

func TestPopOrder(t *testing.T) {
	h := NewHistory(0)
	h.RecordTile(1, 0, 3, mapdata.TilesetTile(0, 1), mapdata.Tile{})
	h.MarkReady()
	h.RecordLayer(1, 0, mapdata.NewLayer("Layer 1", 2, 2), true)

	a, ok := h.Pop()
	if la, isLayer := a.(*LayerAction); !ok || !isLayer || !la.Deleted || la.Data == nil {
		t.Fatalf("expected deleted layer action first, got %#v", a)
	}
	a, ok = h.Pop()
	g, isGroup := a.(*TileGroup)
	if !ok || !isGroup || len(g.Changes) != 1 || g.Changes[0].Cell != 3 {
		t.Fatalf("expected the tile group second, got %#v", a)
	}
	if _, ok := h.Pop(); ok {
		t.Fatalf("history should be empty")
	}
}

func TestMaxDepthDropsOldest(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		h.RecordTile(1, 0, i, mapdata.TilesetTile(0, i), mapdata.Tile{})
		h.MarkReady()
	}
	if h.Len() != 3 {
		t.Fatalf("depth %d, want 3", h.Len())
	}
	var cells []int
	for {
		a, ok := h.Pop()
		if !ok {
			break
		}
		cells = append(cells, a.(*TileGroup).Changes[0].Cell)
	}
	if cells[0] != 4 || cells[2] != 2 {
		t.Fatalf("expected newest three (4,3,2), got %v", cells)
	}
}

func TestDefaultDepth(t *testing.T) {
	if NewHistory(-1).MaxDepth != DefaultMaxDepth {
		t.Fatalf("non-positive depth should fall back to the default")
	}
}

func TestRecordSwapClosesOpenGroup(t *testing.T) {
	h := NewHistory(0)
	h.RecordTile(1, 0, 0, mapdata.TilesetTile(0, 1), mapdata.Tile{})
	h.RecordSwap(1, 0, 1)
	h.RecordTile(1, 1, 0, mapdata.TilesetTile(0, 2), mapdata.Tile{})
	h.MarkReady()

	if h.Len() != 3 {
		t.Fatalf("depth %d, want 3", h.Len())
	}
	h.Pop()
	a, ok := h.Pop()
	s, isSwap := a.(*SwapAction)
	if !ok || !isSwap || s.I != 0 || s.J != 1 || s.Map() != 1 {
		t.Fatalf("expected the swap second, got %#v", a)
	}
}
