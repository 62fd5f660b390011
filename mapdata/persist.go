package mapdata

import (
	"errors"
	"fmt"
)

// ErrBadCell is returned when a persisted cell cannot be decoded.
var ErrBadCell = errors.New("mapdata: bad persisted cell")

// autotileMarker is stored as the tile number of autotile cells. The shape
// is never persisted; it is resolved again after loading.
const autotileMarker = -1

// Cell is the persisted form of a tile: nil for an empty cell, otherwise
// [localIndex, tileNumber].
type Cell []int

// EncodeCell returns the persisted form of t.
func EncodeCell(t Tile) Cell {
	switch t.Kind {
	case KindEmpty:
		return nil
	case KindTileset:
		return Cell{t.Index, t.ID}
	case KindAutotile:
		return Cell{t.Index, autotileMarker}
	default:
		panic(fmt.Sprintf("mapdata: encode unknown tile kind %d", t.Kind))
	}
}

// DecodeCell parses a persisted cell. Autotile cells come back with shape -1.
func DecodeCell(c Cell) (Tile, error) {
	if c == nil {
		return Tile{}, nil
	}
	if len(c) != 2 {
		return Tile{}, fmt.Errorf("%w: want 2 values, got %d", ErrBadCell, len(c))
	}
	if c[0] < 0 {
		return Tile{}, fmt.Errorf("%w: negative index %d", ErrBadCell, c[0])
	}
	if c[1] == autotileMarker {
		return AutotileTile(c[0]), nil
	}
	if c[1] < 0 {
		return Tile{}, fmt.Errorf("%w: negative tile number %d", ErrBadCell, c[1])
	}
	return TilesetTile(c[0], c[1]), nil
}

// EncodeLayer returns the persisted cells of a layer.
func EncodeLayer(l *Layer) []Cell {
	out := make([]Cell, len(l.Tiles))
	for i, t := range l.Tiles {
		out[i] = EncodeCell(t)
	}
	return out
}

// DecodeLayer builds a layer from persisted cells. The cell count must match
// the map area.
func DecodeLayer(name string, cells []Cell, width, height int) (*Layer, error) {
	if len(cells) != width*height {
		return nil, fmt.Errorf("layer %q: %d cells for a %dx%d map", name, len(cells), width, height)
	}
	l := NewLayer(name, width, height)
	for i, c := range cells {
		t, err := DecodeCell(c)
		if err != nil {
			return nil, fmt.Errorf("layer %q cell %d: %w", name, i, err)
		}
		l.Tiles[i] = t
	}
	return l, nil
}
