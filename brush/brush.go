// Package brush turns paint gestures into the set of cell writes they make.
package brush

import (
	"image"

	"github.com/milk9111/mapforge/mapdata"
)

// Corner is the brush corner that sits under the cursor.
type Corner uint8

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "TopLeft"
	case TopRight:
		return "TopRight"
	case BottomLeft:
		return "BottomLeft"
	case BottomRight:
		return "BottomRight"
	default:
		return "Unknown"
	}
}

// ParseCorner maps a corner name back to its value.
func ParseCorner(s string) (Corner, bool) {
	for c := TopLeft; c <= BottomRight; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return TopLeft, false
}

func (c Corner) right() bool  { return c == TopRight || c == BottomRight }
func (c Corner) bottom() bool { return c == BottomLeft || c == BottomRight }

// Tool is the active paint tool.
type Tool uint8

const (
	Pencil Tool = iota
	Eraser
	Fill
)

func (t Tool) String() string {
	switch t {
	case Pencil:
		return "Pencil"
	case Eraser:
		return "Eraser"
	case Fill:
		return "Fill"
	default:
		return "Unknown"
	}
}

// Brush is a rectangle of source tiles, Width x Height cells, row-major.
type Brush struct {
	Width  int
	Height int
	Tiles  []mapdata.Tile
	Origin Corner
}

// Single returns a 1x1 brush of t.
func Single(t mapdata.Tile) Brush {
	return Brush{Width: 1, Height: 1, Tiles: []mapdata.Tile{t}}
}

// FromRegion copies the cells of r on layer into a brush. r is clipped to
// the map.
func FromRegion(m *mapdata.Map, layer int, r image.Rectangle) Brush {
	r = r.Intersect(image.Rect(0, 0, m.Width, m.Height))
	b := Brush{Width: r.Dx(), Height: r.Dy()}
	if r.Empty() {
		return Brush{}
	}
	b.Tiles = make([]mapdata.Tile, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.Tiles = append(b.Tiles, m.TileAt(layer, x, y))
		}
	}
	return b
}

// Empty reports whether the brush has no usable footprint.
func (b Brush) Empty() bool {
	return b.Width <= 0 || b.Height <= 0 || len(b.Tiles) < b.Width*b.Height
}

// At returns the source tile at brush cell (x, y).
func (b Brush) At(x, y int) mapdata.Tile {
	return b.Tiles[x+y*b.Width]
}
