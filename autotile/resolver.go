package autotile

import "github.com/milk9111/mapforge/mapdata"

// Grid is a single map layer as seen by the resolver.
type Grid interface {
	Layer() int
	Size() (width, height int)
	InBounds(x, y int) bool
	At(x, y int) mapdata.Tile
	SetShape(x, y, shape int)
}

// SameGroup reports whether the cell at (x+dx, y+dy) holds an autotile of
// the given local index.
func SameGroup(g Grid, x, y, dx, dy, group int) bool {
	nx, ny := x+dx, y+dy
	if !g.InBounds(nx, ny) {
		return false
	}
	t := g.At(nx, ny)
	return t.Kind == mapdata.KindAutotile && t.Index == group
}

// MaskAt collects the same-group neighbours of (x, y).
func MaskAt(g Grid, x, y, group int) Mask {
	var m Mask
	for _, n := range Neighbours {
		if SameGroup(g, x, y, n.DX, n.DY, group) {
			m |= n.Bit
		}
	}
	return m
}

// Resolver recomputes autotile shapes after cells change.
type Resolver struct {
	// OnShape runs after the shape of (x, y) on g was stored.
	OnShape func(g Grid, x, y, shape int)
}

// Update recomputes (x, y) if it still holds an autotile of group and the
// cell was not deleted. With checkNeighbours, every neighbour holding any
// autotile is recomputed once with its own group; those recomputations do
// not spread further.
func (r *Resolver) Update(g Grid, x, y, group int, checkNeighbours, deleted bool) {
	if !deleted {
		if t := g.At(x, y); t.Kind == mapdata.KindAutotile && t.Index == group {
			shape := Shape(MaskAt(g, x, y, group))
			g.SetShape(x, y, shape)
			if r.OnShape != nil {
				r.OnShape(g, x, y, shape)
			}
		}
	}
	if !checkNeighbours {
		return
	}
	for _, n := range Neighbours {
		nx, ny := x+n.DX, y+n.DY
		if !g.InBounds(nx, ny) {
			continue
		}
		t := g.At(nx, ny)
		if t.Kind != mapdata.KindAutotile {
			continue
		}
		r.Update(g, nx, ny, t.Index, false, false)
	}
}

// ResolveAll assigns a shape to every autotile cell of g without running
// OnShape. It is used after loading or remapping a whole map.
func ResolveAll(g Grid) {
	w, h := g.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := g.At(x, y)
			if t.Kind != mapdata.KindAutotile {
				continue
			}
			g.SetShape(x, y, Shape(MaskAt(g, x, y, t.Index)))
		}
	}
}
