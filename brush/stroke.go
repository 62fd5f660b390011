package brush

import (
	"image"
	"math"

	"github.com/milk9111/mapforge/mapdata"
)

// NoPoint marks a gesture without a previous cursor position.
var NoPoint = image.Pt(-1, -1)

// Write is one cell assignment produced by a stamp.
type Write struct {
	X, Y int
	Tile mapdata.Tile
}

// Gesture is one paint step: the cursor moved from Prev to Cur, both in map
// pixels. Origin is the cell where the stroke started.
type Gesture struct {
	Prev      image.Point
	Cur       image.Point
	Origin    image.Point
	Tool      Tool
	Selection image.Rectangle
}

// CellOf returns the cell containing map pixel p.
func CellOf(p image.Point) image.Point {
	return image.Pt(floorDiv(p.X, mapdata.TileSize), floorDiv(p.Y, mapdata.TileSize))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Anchors returns the cells a gesture stamps the brush at, in stroke order
// and without duplicates.
func Anchors(g Gesture, width, height int) []image.Point {
	prev := g.Prev
	if prev.X == -1 || prev.Y == -1 {
		prev = g.Cur
	}
	switch {
	case g.Tool == Fill:
		return fillAnchors(g.Cur, g.Selection, width, height)
	case prev == g.Cur:
		return []image.Point{CellOf(g.Cur)}
	default:
		return lineAnchors(prev, g.Cur)
	}
}

func fillAnchors(cur image.Point, sel image.Rectangle, width, height int) []image.Point {
	area := image.Rect(0, 0, width, height)
	if !sel.Empty() {
		if !CellOf(cur).In(sel) {
			return nil
		}
		area = sel
	}
	out := make([]image.Point, 0, area.Dx()*area.Dy())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			out = append(out, image.Pt(x, y))
		}
	}
	return out
}

// lineAnchors sweeps once along x and once along y, interpolating the other
// coordinate, so steep and shallow lines both come out gap free.
func lineAnchors(a, b image.Point) []image.Point {
	seen := make(map[image.Point]struct{})
	var out []image.Point
	add := func(x, y int) {
		c := CellOf(image.Pt(x, y))
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if a.X != b.X {
		for x := min(a.X, b.X); x <= max(a.X, b.X); x++ {
			f := float64(x-a.X) / float64(b.X-a.X)
			add(x, int(math.RoundToEven(float64(a.Y)+float64(b.Y-a.Y)*f)))
		}
	}
	if a.Y != b.Y {
		for y := min(a.Y, b.Y); y <= max(a.Y, b.Y); y++ {
			f := float64(y-a.Y) / float64(b.Y-a.Y)
			add(int(math.RoundToEven(float64(a.X)+float64(b.X-a.X)*f)), y)
		}
	}
	return out
}

// Stamp places the brush at every anchor and returns the resulting writes.
// Cells outside the map or outside a non-empty selection are skipped. The
// source cell wraps relative to origin so repeated stamps along a stroke
// continue the pattern instead of restarting it.
func Stamp(anchors []image.Point, origin image.Point, b Brush, erase bool, sel image.Rectangle, width, height int) []Write {
	if b.Empty() {
		return nil
	}
	bw, bh := b.Width, b.Height
	var out []Write
	for _, a := range anchors {
		left, top := a.X, a.Y
		ox, oy := origin.X, origin.Y
		if b.Origin.right() {
			left -= bw - 1
			ox -= bw - 1
		}
		if b.Origin.bottom() {
			top -= bh - 1
			oy -= bh - 1
		}
		diffX := (ox - left) % bw
		diffY := (oy - top) % bh
		for j := 0; j < bw*bh; j++ {
			x := left + j%bw
			y := top + j/bw
			if x < 0 || x >= width || y < 0 || y >= height {
				continue
			}
			if !sel.Empty() && !image.Pt(x, y).In(sel) {
				continue
			}
			sx := wrap(j%bw-diffX, bw)
			sy := wrap(j/bw-diffY, bh)
			src := b.At(sx, sy)
			if erase || src.Empty() {
				out = append(out, Write{X: x, Y: y})
				continue
			}
			out = append(out, Write{X: x, Y: y, Tile: mapdata.Tile{Kind: src.Kind, Index: src.Index, ID: src.ID}})
		}
	}
	return out
}

func wrap(v, n int) int {
	if v < 0 {
		v += n
	}
	return v % n
}

// Plan runs Anchors and Stamp for a gesture.
func Plan(g Gesture, b Brush, width, height int) []Write {
	return Stamp(Anchors(g, width, height), g.Origin, b, g.Tool == Eraser, g.Selection, width, height)
}
