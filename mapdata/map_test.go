package mapdata

import (
	"errors"
	"testing"
)

func TestSame(t *testing.T) {
	cases := []struct {
		name string
		a, b Tile
		want bool
	}{
		{"both_empty", Tile{}, Tile{}, true},
		{"empty_vs_tileset", Tile{}, TilesetTile(0, 1), false},
		{"same_tileset_tile", TilesetTile(0, 5), TilesetTile(0, 5), true},
		{"different_tile_number", TilesetTile(0, 5), TilesetTile(0, 6), false},
		{"different_tileset", TilesetTile(0, 5), TilesetTile(1, 5), false},
		{"autotile_shape_ignored", Tile{Kind: KindAutotile, Index: 2, ID: 0}, Tile{Kind: KindAutotile, Index: 2, ID: 46}, true},
		{"autotile_other_group", AutotileTile(1), AutotileTile(2), false},
		{"kind_differs", Tile{Kind: KindAutotile, Index: 0, ID: 3}, TilesetTile(0, 3), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Same(c.a, c.b); got != c.want {
				t.Fatalf("Same(%+v, %+v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func fillPattern(m *Map) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.SetTile(0, x, y, TilesetTile(0, x+y*m.Width))
		}
	}
}

func TestResizeKeepsTopLeft(t *testing.T) {
	m := New(1, 10, 10)
	fillPattern(m)

	m.Resize(5, 5)
	if got := len(m.Layers[0].Tiles); got != 25 {
		t.Fatalf("expected 25 cells after shrink, got %d", got)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := TilesetTile(0, x+y*10)
			if got := m.TileAt(0, x, y); got != want {
				t.Fatalf("cell (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}

	m.Resize(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			got := m.TileAt(0, x, y)
			if x < 5 && y < 5 {
				if got != TilesetTile(0, x+y*10) {
					t.Fatalf("kept cell (%d,%d) changed to %+v", x, y, got)
				}
				continue
			}
			if !got.Empty() {
				t.Fatalf("grown cell (%d,%d) should be empty, got %+v", x, y, got)
			}
		}
	}
}

func TestResizeNonSquare(t *testing.T) {
	m := New(1, 3, 2)
	fillPattern(m)
	m.Resize(2, 4)
	if m.TileAt(0, 1, 1) != TilesetTile(0, 4) {
		t.Fatalf("expected (1,1) to keep tile 4, got %+v", m.TileAt(0, 1, 1))
	}
	if !m.TileAt(0, 0, 3).Empty() {
		t.Fatalf("expected new row to be empty")
	}
}

func TestLayerEdits(t *testing.T) {
	m := New(1, 2, 2)
	m.Layers[0].Name = "a"
	m.InsertLayer(1, &Layer{Name: "b", Visible: true, Tiles: make([]Tile, 4)})
	m.InsertLayer(0, nil)
	names := func() []string {
		out := make([]string, len(m.Layers))
		for i, l := range m.Layers {
			out[i] = l.Name
		}
		return out
	}
	got := names()
	if len(got) != 3 || got[1] != "a" || got[2] != "b" {
		t.Fatalf("unexpected layer order %v", got)
	}
	m.SwapLayers(1, 2)
	if m.Layers[1].Name != "b" || m.Layers[2].Name != "a" {
		t.Fatalf("swap failed: %v", names())
	}
	removed := m.RemoveLayer(1)
	if removed.Name != "b" || len(m.Layers) != 2 {
		t.Fatalf("remove returned %q, %d layers left", removed.Name, len(m.Layers))
	}
}

func TestInsertLayerWrongSizePanics(t *testing.T) {
	m := New(1, 2, 2)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for mis-sized layer")
		}
	}()
	m.InsertLayer(0, &Layer{Tiles: make([]Tile, 3)})
}

func TestRemapTilesets(t *testing.T) {
	m := New(1, 3, 1)
	m.TilesetIDs = []int{10, 20, 30}
	m.SetTile(0, 0, 0, TilesetTile(0, 1))
	m.SetTile(0, 1, 0, TilesetTile(1, 2))
	m.SetTile(0, 2, 0, TilesetTile(2, 3))

	oldIDs := m.TilesetIDs
	newIDs := []int{30, 10}
	if !m.RemovedInUse(KindTileset, oldIDs, newIDs) {
		t.Fatalf("expected removal of tileset 20 to be reported")
	}
	if n := m.RemapTilesets(oldIDs, newIDs); n != 1 {
		t.Fatalf("expected 1 emptied cell, got %d", n)
	}
	if got := m.TileAt(0, 0, 0); got != TilesetTile(1, 1) {
		t.Fatalf("tileset 10 should map to local 1, got %+v", got)
	}
	if !m.TileAt(0, 1, 0).Empty() {
		t.Fatalf("tileset 20 tile should be emptied")
	}
	if got := m.TileAt(0, 2, 0); got != TilesetTile(0, 3) {
		t.Fatalf("tileset 30 should map to local 0, got %+v", got)
	}
	if len(m.TilesetIDs) != 2 || m.TilesetIDs[0] != 30 {
		t.Fatalf("tileset list not replaced: %v", m.TilesetIDs)
	}
}

func TestRemapAutotilesLeavesTilesets(t *testing.T) {
	m := New(1, 2, 1)
	m.AutotileIDs = []int{4, 5}
	m.SetTile(0, 0, 0, AutotileTile(1))
	m.SetTile(0, 1, 0, TilesetTile(1, 7))
	if m.RemovedInUse(KindAutotile, m.AutotileIDs, []int{5}) {
		t.Fatalf("autotile 5 is kept, nothing should be reported")
	}
	m.RemapAutotiles(m.AutotileIDs, []int{5})
	if got := m.TileAt(0, 0, 0); got.Kind != KindAutotile || got.Index != 0 {
		t.Fatalf("autotile 5 should move to local 0, got %+v", got)
	}
	if got := m.TileAt(0, 1, 0); got != TilesetTile(1, 7) {
		t.Fatalf("tileset tile touched by autotile remap: %+v", got)
	}
}

func TestCellCodec(t *testing.T) {
	l := NewLayer("x", 3, 1)
	l.Tiles[0] = TilesetTile(2, 9)
	l.Tiles[1] = Tile{Kind: KindAutotile, Index: 1, ID: 12}
	cells := EncodeLayer(l)
	if cells[2] != nil {
		t.Fatalf("empty cell should encode as nil")
	}
	back, err := DecodeLayer("x", cells, 3, 1)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Tiles[0] != TilesetTile(2, 9) {
		t.Fatalf("tileset cell round trip: %+v", back.Tiles[0])
	}
	if back.Tiles[1] != AutotileTile(1) {
		t.Fatalf("autotile cell should come back unresolved, got %+v", back.Tiles[1])
	}

	if _, err := DecodeCell(Cell{1}); !errors.Is(err, ErrBadCell) {
		t.Fatalf("expected ErrBadCell, got %v", err)
	}
	if _, err := DecodeLayer("y", cells, 2, 2); err == nil {
		t.Fatalf("expected size mismatch error")
	}
}

func TestAutotileFrames(t *testing.T) {
	at := &Autotile{Format: FormatQuad, AnimateSpeed: 4}
	if at.Frames() != 1 {
		t.Fatalf("autotile without image should have one frame")
	}
	if at.FrameAt(100) != 0 {
		t.Fatalf("single-frame autotile must stay on frame 0")
	}
}

func TestTilesetForPanicsOutOfRange(t *testing.T) {
	m := New(1, 1, 1)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for bad tileset index")
		}
	}()
	m.TilesetFor(NewMemCatalog(), TilesetTile(3, 0))
}

func TestCheckCatalog(t *testing.T) {
	full := NewMemCatalog()
	full.AddTileset(&Tileset{ID: 1})
	full.AddAutotile(&Autotile{ID: 10})
	noAutotile := NewMemCatalog()
	noAutotile.AddTileset(&Tileset{ID: 1})

	tests := []struct {
		name    string
		cat     Catalog
		wantErr bool
	}{
		{"complete", full, false},
		{"missing autotile", noAutotile, true},
		{"empty", NewMemCatalog(), true},
	}
	m := New(1, 2, 2)
	m.AutotileIDs = []int{10}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := m.CheckCatalog(tt.cat); (err != nil) != tt.wantErr {
				t.Fatalf("CheckCatalog() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
