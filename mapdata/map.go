package mapdata

import "fmt"

// Event is an event placed on the map. The tile core only carries it.
type Event struct {
	ID   int
	Name string
	X    int
	Y    int
}

// Layer is one grid of tiles. Tiles is row-major with index x + y*width.
type Layer struct {
	Name    string
	Visible bool
	Tiles   []Tile
}

// NewLayer creates a visible layer of empty cells.
func NewLayer(name string, width, height int) *Layer {
	return &Layer{
		Name:    name,
		Visible: true,
		Tiles:   make([]Tile, width*height),
	}
}

// Map is the editable tile grid of one game map.
//
// TilesetIDs and AutotileIDs translate the map-local indices stored in tiles
// to project-wide catalog IDs.
type Map struct {
	ID          int
	DevName     string
	DisplayName string
	Width       int
	Height      int
	Layers      []*Layer
	TilesetIDs  []int
	AutotileIDs []int
	Events      map[int]*Event
}

// New returns a width x height map with one empty layer and the default
// tileset list.
func New(id, width, height int) *Map {
	m := &Map{
		ID:         id,
		Width:      width,
		Height:     height,
		TilesetIDs: []int{1},
		Events:     make(map[int]*Event),
	}
	m.Layers = []*Layer{NewLayer("Layer 1", width, height)}
	return m
}

func (m *Map) String() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return fmt.Sprintf("Map %d", m.ID)
}

func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// CellIndex returns the flat index of (x, y).
func (m *Map) CellIndex(x, y int) int {
	return x + y*m.Width
}

// TileAt returns the tile at (x, y) on layer, or an empty tile out of bounds.
func (m *Map) TileAt(layer, x, y int) Tile {
	if !m.InBounds(x, y) {
		return Tile{}
	}
	return m.Layers[layer].Tiles[m.CellIndex(x, y)]
}

// SetTile stores t at (x, y) on layer and returns the previous tile.
func (m *Map) SetTile(layer, x, y int, t Tile) Tile {
	i := m.CellIndex(x, y)
	old := m.Layers[layer].Tiles[i]
	m.Layers[layer].Tiles[i] = t
	return old
}

// Grid returns a single-layer view of the map.
func (m *Map) Grid(layer int) LayerGrid {
	return LayerGrid{m: m, layer: layer}
}

// Resize reflows every layer to width x height keeping the top-left overlap.
// New cells are empty; cells outside the new bounds are dropped.
func (m *Map) Resize(width, height int) {
	if width == m.Width && height == m.Height {
		return
	}
	for _, l := range m.Layers {
		tiles := make([]Tile, width*height)
		for y := 0; y < min(height, m.Height); y++ {
			for x := 0; x < min(width, m.Width); x++ {
				tiles[x+y*width] = l.Tiles[x+y*m.Width]
			}
		}
		l.Tiles = tiles
	}
	m.Width = width
	m.Height = height
}

// InsertLayer inserts l at index. A nil l inserts an empty layer.
func (m *Map) InsertLayer(index int, l *Layer) *Layer {
	if index < 0 || index > len(m.Layers) {
		panic(fmt.Sprintf("mapdata: insert layer %d out of range [0,%d]", index, len(m.Layers)))
	}
	if l == nil {
		l = NewLayer(fmt.Sprintf("Layer %d", len(m.Layers)+1), m.Width, m.Height)
	}
	if len(l.Tiles) != m.Width*m.Height {
		panic(fmt.Sprintf("mapdata: layer %q has %d cells, map needs %d", l.Name, len(l.Tiles), m.Width*m.Height))
	}
	m.Layers = append(m.Layers, nil)
	copy(m.Layers[index+1:], m.Layers[index:])
	m.Layers[index] = l
	return l
}

// RemoveLayer removes and returns the layer at index.
func (m *Map) RemoveLayer(index int) *Layer {
	if index < 0 || index >= len(m.Layers) {
		panic(fmt.Sprintf("mapdata: remove layer %d out of range [0,%d)", index, len(m.Layers)))
	}
	l := m.Layers[index]
	m.Layers = append(m.Layers[:index], m.Layers[index+1:]...)
	return l
}

func (m *Map) SwapLayers(i, j int) {
	m.Layers[i], m.Layers[j] = m.Layers[j], m.Layers[i]
}

// LayerGrid is a view of one layer used by the autotile resolver.
type LayerGrid struct {
	m     *Map
	layer int
}

func (g LayerGrid) Layer() int { return g.layer }

func (g LayerGrid) Size() (int, int) { return g.m.Width, g.m.Height }

func (g LayerGrid) InBounds(x, y int) bool { return g.m.InBounds(x, y) }

func (g LayerGrid) At(x, y int) Tile { return g.m.TileAt(g.layer, x, y) }

// SetShape stores a resolved autotile shape without touching kind or index.
func (g LayerGrid) SetShape(x, y, shape int) {
	g.m.Layers[g.layer].Tiles[g.m.CellIndex(x, y)].ID = shape
}
