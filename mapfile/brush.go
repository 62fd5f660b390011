package mapfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/mapforge/brush"
	"github.com/milk9111/mapforge/mapdata"
)

// brushDoc is the clipboard form of a brush. Cells use the map cell format.
type brushDoc struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Origin string `yaml:"origin"`
	Cells  []Row  `yaml:"cells"`
}

// MarshalBrush encodes b as YAML.
func MarshalBrush(b brush.Brush) ([]byte, error) {
	if b.Empty() {
		return nil, fmt.Errorf("mapfile: empty brush")
	}
	doc := brushDoc{Width: b.Width, Height: b.Height, Origin: b.Origin.String()}
	for y := 0; y < b.Height; y++ {
		row := make(Row, b.Width)
		for x := 0; x < b.Width; x++ {
			row[x] = mapdata.EncodeCell(b.At(x, y))
		}
		doc.Cells = append(doc.Cells, row)
	}
	return yaml.Marshal(doc)
}

// UnmarshalBrush decodes a brush written by MarshalBrush. Autotile cells come
// back unresolved; painting resolves them.
func UnmarshalBrush(data []byte) (brush.Brush, error) {
	var doc brushDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return brush.Brush{}, fmt.Errorf("mapfile: unmarshal brush: %w", err)
	}
	if doc.Width <= 0 || doc.Height <= 0 || len(doc.Cells) != doc.Height {
		return brush.Brush{}, fmt.Errorf("%w: brush %dx%d with %d rows", ErrInvalid, doc.Width, doc.Height, len(doc.Cells))
	}
	origin, ok := brush.ParseCorner(doc.Origin)
	if !ok && doc.Origin != "" {
		return brush.Brush{}, fmt.Errorf("%w: brush origin %q", ErrInvalid, doc.Origin)
	}
	b := brush.Brush{Width: doc.Width, Height: doc.Height, Origin: origin}
	for y, row := range doc.Cells {
		if len(row) != doc.Width {
			return brush.Brush{}, fmt.Errorf("%w: brush row %d has %d cells", ErrInvalid, y, len(row))
		}
		for _, c := range row {
			t, err := mapdata.DecodeCell(c)
			if err != nil {
				return brush.Brush{}, err
			}
			b.Tiles = append(b.Tiles, t)
		}
	}
	return b, nil
}
