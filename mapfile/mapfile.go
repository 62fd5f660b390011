// Package mapfile reads and writes maps as YAML documents.
//
// Each layer is stored as rows of cells. A cell is null when empty or a pair
// [localIndex, tileNumber]; autotile cells store -1 as the tile number and
// their shapes are resolved again on load.
package mapfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/mapforge/autotile"
	"github.com/milk9111/mapforge/mapdata"
)

var ErrInvalid = errors.New("mapfile: invalid map")

type Document struct {
	ID          int        `yaml:"id"`
	DevName     string     `yaml:"dev_name,omitempty"`
	DisplayName string     `yaml:"display_name,omitempty"`
	Width       int        `yaml:"width"`
	Height      int        `yaml:"height"`
	Tilesets    []int      `yaml:"tilesets,flow"`
	Autotiles   []int      `yaml:"autotiles,flow"`
	Layers      []LayerDoc `yaml:"layers"`
	Events      []EventDoc `yaml:"events,omitempty"`
}

type LayerDoc struct {
	Name    string `yaml:"name"`
	Visible bool   `yaml:"visible"`
	Rows    []Row  `yaml:"rows"`
}

type EventDoc struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// Row is one row of persisted cells, written in flow style.
type Row []mapdata.Cell

func (r Row) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range r {
		if c == nil {
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"})
			continue
		}
		pair := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, v := range c {
			pair.Content = append(pair.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)})
		}
		n.Content = append(n.Content, pair)
	}
	return n, nil
}

// Encode converts m to its document form.
func Encode(m *mapdata.Map) Document {
	doc := Document{
		ID:          m.ID,
		DevName:     m.DevName,
		DisplayName: m.DisplayName,
		Width:       m.Width,
		Height:      m.Height,
		Tilesets:    slices.Clone(m.TilesetIDs),
		Autotiles:   slices.Clone(m.AutotileIDs),
	}
	for _, l := range m.Layers {
		cells := mapdata.EncodeLayer(l)
		ld := LayerDoc{Name: l.Name, Visible: l.Visible, Rows: make([]Row, m.Height)}
		for y := 0; y < m.Height; y++ {
			ld.Rows[y] = Row(cells[y*m.Width : (y+1)*m.Width])
		}
		doc.Layers = append(doc.Layers, ld)
	}
	ids := make([]int, 0, len(m.Events))
	for id := range m.Events {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		e := m.Events[id]
		doc.Events = append(doc.Events, EventDoc{ID: e.ID, Name: e.Name, X: e.X, Y: e.Y})
	}
	return doc
}

// Decode builds a map from doc and resolves every autotile shape.
func Decode(doc Document) (*mapdata.Map, error) {
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalid, doc.Width, doc.Height)
	}
	if len(doc.Layers) == 0 {
		return nil, fmt.Errorf("%w: no layers", ErrInvalid)
	}
	m := &mapdata.Map{
		ID:          doc.ID,
		DevName:     doc.DevName,
		DisplayName: doc.DisplayName,
		Width:       doc.Width,
		Height:      doc.Height,
		TilesetIDs:  slices.Clone(doc.Tilesets),
		AutotileIDs: slices.Clone(doc.Autotiles),
		Events:      make(map[int]*mapdata.Event, len(doc.Events)),
	}
	for i, ld := range doc.Layers {
		if len(ld.Rows) != doc.Height {
			return nil, fmt.Errorf("%w: layer %d has %d rows, want %d", ErrInvalid, i, len(ld.Rows), doc.Height)
		}
		cells := make([]mapdata.Cell, 0, doc.Width*doc.Height)
		for y, row := range ld.Rows {
			if len(row) != doc.Width {
				return nil, fmt.Errorf("%w: layer %d row %d has %d cells, want %d", ErrInvalid, i, y, len(row), doc.Width)
			}
			cells = append(cells, row...)
		}
		l, err := mapdata.DecodeLayer(ld.Name, cells, doc.Width, doc.Height)
		if err != nil {
			return nil, err
		}
		l.Visible = ld.Visible
		if err := checkRefs(m, l); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		m.Layers = append(m.Layers, l)
	}
	for _, e := range doc.Events {
		if _, dup := m.Events[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate event %d", ErrInvalid, e.ID)
		}
		m.Events[e.ID] = &mapdata.Event{ID: e.ID, Name: e.Name, X: e.X, Y: e.Y}
	}
	for i := range m.Layers {
		autotile.ResolveAll(m.Grid(i))
	}
	return m, nil
}

// checkRefs rejects cells whose local index is outside the map's lists.
// In memory such a cell is a fatal error; in a file it is just bad input.
func checkRefs(m *mapdata.Map, l *mapdata.Layer) error {
	for i, t := range l.Tiles {
		var n int
		switch t.Kind {
		case mapdata.KindTileset:
			n = len(m.TilesetIDs)
		case mapdata.KindAutotile:
			n = len(m.AutotileIDs)
		default:
			continue
		}
		if t.Index >= n {
			return fmt.Errorf("cell %d: %w: %s index %d, map lists %d", i, mapdata.ErrBadCell, t.Kind, t.Index, n)
		}
	}
	return nil
}

func Read(r io.Reader) (*mapdata.Map, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("mapfile: unmarshal: %w", err)
	}
	m, err := Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("mapfile: %w", err)
	}
	return m, nil
}

func Write(w io.Writer, m *mapdata.Map) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Encode(m)); err != nil {
		return fmt.Errorf("mapfile: marshal: %w", err)
	}
	return enc.Close()
}

func LoadFile(filename string) (*mapdata.Map, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// SaveFile writes m to filename, creating its directory if needed.
func SaveFile(filename string, m *mapdata.Map) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
