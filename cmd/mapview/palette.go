package main

import (
	"fmt"

	"github.com/milk9111/mapforge/brush"
	"github.com/milk9111/mapforge/mapdata"
)

// Palette picks the single tile painted when no custom brush is active.
type Palette struct {
	autotile bool
	tileset  int
	tile     int
	group    int
	corner   brush.Corner
	custom   bool
}

func (p *Palette) Brush(m *mapdata.Map) brush.Brush {
	var b brush.Brush
	switch {
	case p.autotile && len(m.AutotileIDs) > 0:
		b = brush.Single(mapdata.AutotileTile(p.group))
	case !p.autotile && len(m.TilesetIDs) > 0:
		b = brush.Single(mapdata.TilesetTile(p.tileset, p.tile))
	default:
		b = brush.Single(mapdata.Tile{})
	}
	b.Origin = p.corner
	return b
}

// step moves to the next tile number or autotile.
func (p *Palette) step(m *mapdata.Map, d int) {
	if p.autotile {
		p.group = wrapIndex(p.group+d, len(m.AutotileIDs))
		return
	}
	p.tile = max(0, p.tile+d)
}

// stepSource moves to the next tileset.
func (p *Palette) stepSource(m *mapdata.Map, d int) {
	if p.autotile {
		p.step(m, d)
		return
	}
	p.tileset = wrapIndex(p.tileset+d, len(m.TilesetIDs))
	p.tile = 0
}

func wrapIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func (p *Palette) String() string {
	corner := p.corner.String()
	switch {
	case p.custom:
		return "custom region, anchor " + corner
	case p.autotile:
		return fmt.Sprintf("autotile %d, anchor %s", p.group, corner)
	default:
		return fmt.Sprintf("tileset %d tile %d (row %d col %d), anchor %s",
			p.tileset, p.tile, p.tile/mapdata.TilesetColumns, p.tile%mapdata.TilesetColumns, corner)
	}
}
