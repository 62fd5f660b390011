package mapdata

// TileSize is the edge length in pixels of one map cell.
const TileSize = 32

// TilesetColumns is the number of tiles per row in a tileset image.
const TilesetColumns = 8

// Kind discriminates what a Tile refers to.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindTileset
	KindAutotile
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindTileset:
		return "Tileset"
	case KindAutotile:
		return "Autotile"
	default:
		return "Unknown"
	}
}

// Tile is one cell of a layer. The zero value is an empty cell.
//
// For KindTileset, Index is the map-local tileset index and ID the tile number
// inside that tileset's image. For KindAutotile, Index is the map-local
// autotile index and ID the derived shape (0..46).
type Tile struct {
	Kind  Kind
	Index int
	ID    int
}

// TilesetTile returns a tile referencing tile number id of local tileset index.
func TilesetTile(index, id int) Tile {
	return Tile{Kind: KindTileset, Index: index, ID: id}
}

// AutotileTile returns an autotile reference with an unresolved shape.
func AutotileTile(index int) Tile {
	return Tile{Kind: KindAutotile, Index: index, ID: -1}
}

func (t Tile) Empty() bool {
	return t.Kind == KindEmpty
}

func (t Tile) IsAutotile() bool {
	return t.Kind == KindAutotile
}

// Same reports whether writing b over a would leave the cell unchanged.
// Autotile shapes are derived, so two autotile references of the same
// index are the same tile whatever their shape.
func Same(a, b Tile) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindEmpty:
		return true
	case KindAutotile:
		return a.Index == b.Index
	default:
		return a.Index == b.Index && a.ID == b.ID
	}
}
