package mapdata

import (
	"fmt"
	"image"
)

// Passability flags are stored per tile for the game runtime. Nothing in
// this module evaluates them.
type Passability uint8

const (
	PassNone  Passability = 0
	PassDown  Passability = 1
	PassLeft  Passability = 2
	PassRight Passability = 4
	PassUp    Passability = 8
	PassAll               = PassDown | PassLeft | PassRight | PassUp
)

// Format selects how an autotile image is laid out.
type Format uint8

const (
	// FormatSingle is a strip of 32x32 animation frames.
	FormatSingle Format = iota
	// FormatQuad is the 96px wide, 16px quadrant layout with 47 shapes per frame.
	FormatQuad
)

func (f Format) String() string {
	switch f {
	case FormatSingle:
		return "single"
	case FormatQuad:
		return "quad"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// FrameWidth is the horizontal stride between animation frames.
func (f Format) FrameWidth() int {
	if f == FormatQuad {
		return 3 * TileSize
	}
	return TileSize
}

// Tileset is a source image laid out as TilesetColumns columns of 32x32 tiles.
type Tileset struct {
	ID            int
	Name          string
	Image         image.Image
	Passabilities []Passability
	Priorities    []int
}

// SourceRect returns the pixel rectangle of tile number id.
func (ts *Tileset) SourceRect(id int) image.Rectangle {
	x := (id % TilesetColumns) * TileSize
	y := (id / TilesetColumns) * TileSize
	return image.Rect(x, y, x+TileSize, y+TileSize)
}

// Autotile is a multi-part tile whose drawn shape depends on its neighbours.
type Autotile struct {
	ID           int
	Name         string
	Format       Format
	AnimateSpeed int
	Image        image.Image
	Passability  Passability
}

func (a *Autotile) Animated() bool {
	return a.AnimateSpeed > 0
}

// Frames is the number of animation frames in the source image, at least 1.
func (a *Autotile) Frames() int {
	if a.Image == nil {
		return 1
	}
	n := a.Image.Bounds().Dx() / a.Format.FrameWidth()
	if n < 1 {
		return 1
	}
	return n
}

// FrameAt returns the frame shown at global tick for this autotile.
func (a *Autotile) FrameAt(tick int) int {
	if a.AnimateSpeed <= 0 || tick < 0 {
		return 0
	}
	return (tick / a.AnimateSpeed) % a.Frames()
}

// Catalog supplies project-wide tilesets and autotiles by global ID.
type Catalog interface {
	Tileset(id int) (*Tileset, bool)
	Autotile(id int) (*Autotile, bool)
}

// CheckCatalog reports the first tileset or autotile the map lists that cat
// cannot supply.
func (m *Map) CheckCatalog(cat Catalog) error {
	for _, id := range m.TilesetIDs {
		if _, ok := cat.Tileset(id); !ok {
			return fmt.Errorf("mapdata: %s: tileset %d missing from catalog", m, id)
		}
	}
	for _, id := range m.AutotileIDs {
		if _, ok := cat.Autotile(id); !ok {
			return fmt.Errorf("mapdata: %s: autotile %d missing from catalog", m, id)
		}
	}
	return nil
}

// TilesetFor resolves a tileset tile through the map's local index list.
// A reference past the catalog is a corrupted edit sequence and panics.
func (m *Map) TilesetFor(cat Catalog, t Tile) *Tileset {
	if t.Index < 0 || t.Index >= len(m.TilesetIDs) {
		panic(fmt.Sprintf("mapdata: tileset index %d out of range (map %d has %d)", t.Index, m.ID, len(m.TilesetIDs)))
	}
	ts, ok := cat.Tileset(m.TilesetIDs[t.Index])
	if !ok {
		panic(fmt.Sprintf("mapdata: tileset %d missing from catalog", m.TilesetIDs[t.Index]))
	}
	return ts
}

// AutotileFor resolves an autotile tile through the map's local index list.
func (m *Map) AutotileFor(cat Catalog, t Tile) *Autotile {
	if t.Index < 0 || t.Index >= len(m.AutotileIDs) {
		panic(fmt.Sprintf("mapdata: autotile index %d out of range (map %d has %d)", t.Index, m.ID, len(m.AutotileIDs)))
	}
	at, ok := cat.Autotile(m.AutotileIDs[t.Index])
	if !ok {
		panic(fmt.Sprintf("mapdata: autotile %d missing from catalog", m.AutotileIDs[t.Index]))
	}
	return at
}

// MemCatalog is an in-memory Catalog.
type MemCatalog struct {
	Tilesets  map[int]*Tileset
	Autotiles map[int]*Autotile
}

func NewMemCatalog() *MemCatalog {
	return &MemCatalog{
		Tilesets:  make(map[int]*Tileset),
		Autotiles: make(map[int]*Autotile),
	}
}

func (c *MemCatalog) Tileset(id int) (*Tileset, bool) {
	ts, ok := c.Tilesets[id]
	return ts, ok
}

func (c *MemCatalog) Autotile(id int) (*Autotile, bool) {
	at, ok := c.Autotiles[id]
	return at, ok
}

func (c *MemCatalog) AddTileset(ts *Tileset) {
	c.Tilesets[ts.ID] = ts
}

func (c *MemCatalog) AddAutotile(at *Autotile) {
	c.Autotiles[at.ID] = at
}
