package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/milk9111/mapforge/anim"
	"github.com/milk9111/mapforge/autotile"
	"github.com/milk9111/mapforge/mapdata"
)

// tilesetImage paints tile n with red n+1.
func tilesetImage(rows int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, mapdata.TilesetColumns*mapdata.TileSize, rows*mapdata.TileSize))
	for n := 0; n < mapdata.TilesetColumns*rows; n++ {
		fillRect(img, (&mapdata.Tileset{}).SourceRect(n), color.RGBA{R: uint8(n + 1), A: 255})
	}
	return img
}

// quadImage paints sub-tile q of frame f with red q and green f.
func quadImage(frames int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frames*96, 128))
	for f := 0; f < frames; f++ {
		for q := 0; q < 48; q++ {
			x := f*96 + (q%6)*16
			y := (q / 6) * 16
			fillRect(img, image.Rect(x, y, x+16, y+16), color.RGBA{R: uint8(q), G: uint8(f), A: 255})
		}
	}
	return img
}

// singleImage paints frame f with blue f+1.
func singleImage(frames int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frames*32, 32))
	for f := 0; f < frames; f++ {
		fillRect(img, image.Rect(f*32, 0, f*32+32, 32), color.RGBA{B: uint8(f + 1), A: 255})
	}
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

type fixedFrame int

func (f fixedFrame) FrameOf(*mapdata.Autotile) int { return int(f) }

func fixture() (*mapdata.Map, *mapdata.MemCatalog) {
	cat := mapdata.NewMemCatalog()
	cat.AddTileset(&mapdata.Tileset{ID: 1, Image: tilesetImage(2)})
	cat.AddAutotile(&mapdata.Autotile{ID: 10, Format: mapdata.FormatQuad, Image: quadImage(1)})
	cat.AddAutotile(&mapdata.Autotile{ID: 11, Format: mapdata.FormatQuad, AnimateSpeed: 4, Image: quadImage(3)})
	cat.AddAutotile(&mapdata.Autotile{ID: 12, Format: mapdata.FormatSingle, AnimateSpeed: 2, Image: singleImage(4)})
	m := mapdata.New(1, 4, 3)
	m.TilesetIDs = []int{1}
	m.AutotileIDs = []int{10, 11, 12}
	return m, cat
}

func cellCenter(x, y int) (int, int) {
	return x*mapdata.TileSize + 16, y*mapdata.TileSize + 16
}

func TestBuildTilesetCells(t *testing.T) {
	m, cat := fixture()
	m.SetTile(0, 1, 2, mapdata.TilesetTile(0, 9))
	c := NewCompositor(m, cat, anim.NewRegistry())
	c.Build()
	img := c.Buffer(0).Image()
	if got := img.RGBAAt(cellCenter(1, 2)); got.R != 10 || got.A != 255 {
		t.Fatalf("tile 9 should draw red 10, got %+v", got)
	}
	if got := img.RGBAAt(cellCenter(0, 0)); got.A != 0 {
		t.Fatalf("empty cell should stay transparent, got %+v", got)
	}
	if !c.Buffer(0).Locked() {
		t.Fatalf("buffer must be locked after build")
	}
}

func TestBuildQuadAutotile(t *testing.T) {
	m, cat := fixture()
	m.SetTile(0, 2, 1, mapdata.Tile{Kind: mapdata.KindAutotile, Index: 0, ID: autotile.ShapeIsolated})
	c := NewCompositor(m, cat, anim.NewRegistry())
	c.Build()
	img := c.Buffer(0).Image()
	q := autotile.Quadrants(autotile.ShapeIsolated)
	for i := 0; i < 4; i++ {
		px := 2*32 + 16*(i%2) + 8
		py := 1*32 + 16*(i/2) + 8
		if got := img.RGBAAt(px, py); int(got.R) != q[i] {
			t.Fatalf("quadrant %d drew sub-tile %d, want %d", i, got.R, q[i])
		}
	}
}

func TestAnimatedFramesAndRegistry(t *testing.T) {
	m, cat := fixture()
	m.SetTile(0, 0, 0, mapdata.Tile{Kind: mapdata.KindAutotile, Index: 1, ID: 0})
	m.SetTile(0, 1, 0, mapdata.Tile{Kind: mapdata.KindAutotile, Index: 2, ID: 0})
	m.SetTile(0, 2, 0, mapdata.Tile{Kind: mapdata.KindAutotile, Index: 0, ID: 0})
	reg := anim.NewRegistry()
	c := NewCompositor(m, cat, reg)
	c.SetFrames(fixedFrame(2))
	c.Build()

	if reg.Len() != 2 {
		t.Fatalf("expected the two animated cells registered, got %d", reg.Len())
	}
	e, ok := reg.Get(anim.Cell{Layer: 0, X: 0, Y: 0})
	if !ok || e.Autotile != 11 {
		t.Fatalf("quad entry should carry catalog ID 11, got %+v %v", e, ok)
	}
	img := c.Buffer(0).Image()
	if got := img.RGBAAt(cellCenter(0, 0)); got.G != 2 {
		t.Fatalf("quad autotile should show frame 2, got %+v", got)
	}
	if got := img.RGBAAt(cellCenter(1, 0)); got.B != 3 {
		t.Fatalf("single autotile should show frame 2 (blue 3), got %+v", got)
	}

	// Frames wrap at the image width.
	c.SetFrames(fixedFrame(5))
	c.RedrawCell(0, 1, 0)
	if got := img.RGBAAt(cellCenter(1, 0)); got.B != 2 {
		t.Fatalf("frame 5 of 4 should wrap to frame 1 (blue 2), got %+v", got)
	}
}

func TestRedrawCellClearsAndUnregisters(t *testing.T) {
	m, cat := fixture()
	m.SetTile(0, 0, 0, mapdata.Tile{Kind: mapdata.KindAutotile, Index: 1, ID: 0})
	reg := anim.NewRegistry()
	c := NewCompositor(m, cat, reg)
	c.Build()
	c.Buffer(0).TakeDirty()

	m.SetTile(0, 0, 0, mapdata.Tile{})
	c.RedrawCell(0, 0, 0)
	if got := c.Buffer(0).Image().RGBAAt(cellCenter(0, 0)); got.A != 0 {
		t.Fatalf("cleared cell still drawn: %+v", got)
	}
	if reg.Len() != 0 {
		t.Fatalf("cleared cell still registered")
	}
	if d := c.Buffer(0).TakeDirty(); d != CellRect(0, 0) {
		t.Fatalf("dirty region %v, want %v", d, CellRect(0, 0))
	}
}

func TestStructuralEditsMirrorMap(t *testing.T) {
	m, cat := fixture()
	m.SetTile(0, 3, 2, mapdata.Tile{Kind: mapdata.KindAutotile, Index: 1, ID: 0})
	reg := anim.NewRegistry()
	c := NewCompositor(m, cat, reg)
	c.Build()
	bottom := c.Buffer(0)

	m.InsertLayer(0, nil)
	c.InsertLayer(0)
	if c.Buffer(1) != bottom || len(c.Buffers()) != 2 {
		t.Fatalf("existing buffer should move up on insert")
	}
	if _, ok := reg.Get(anim.Cell{Layer: 1, X: 3, Y: 2}); !ok {
		t.Fatalf("registry should follow the insert")
	}
	for i, b := range c.Buffers() {
		if b.Z != i*2 {
			t.Fatalf("buffer %d has Z %d", i, b.Z)
		}
	}

	m.SwapLayers(0, 1)
	c.SwapLayers(0, 1)
	if c.Buffer(0) != bottom || c.Buffer(0).Z != 0 {
		t.Fatalf("swap should reorder buffers and Z")
	}

	m.RemoveLayer(0)
	c.RemoveLayer(0)
	if len(c.Buffers()) != 1 || reg.Len() != 0 {
		t.Fatalf("remove should drop the buffer and its animated cells (left %d)", reg.Len())
	}
}

func TestLockedBufferPanics(t *testing.T) {
	b := NewBuffer(32, 32)
	var leaked *Canvas
	b.Edit(func(c *Canvas) { leaked = c })
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic drawing outside Edit")
		}
	}()
	leaked.Clear(image.Rect(0, 0, 1, 1))
}

func TestUnknownKindPanics(t *testing.T) {
	m, cat := fixture()
	m.Layers[0].Tiles[0] = mapdata.Tile{Kind: mapdata.Kind(9)}
	c := NewCompositor(m, cat, anim.NewRegistry())
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown tile kind")
		}
	}()
	c.Build()
}
