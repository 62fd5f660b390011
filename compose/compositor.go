package compose

import (
	"fmt"
	"image"

	"github.com/milk9111/mapforge/anim"
	"github.com/milk9111/mapforge/autotile"
	"github.com/milk9111/mapforge/mapdata"
)

const quarter = mapdata.TileSize / 2

// FrameSource tells the compositor which animation frame an autotile shows.
type FrameSource interface {
	FrameOf(at *mapdata.Autotile) int
}

// Compositor keeps one Buffer per map layer. Buffers are caches: Build can
// recreate them from the map and catalog at any time.
type Compositor struct {
	m       *mapdata.Map
	cat     mapdata.Catalog
	reg     *anim.Registry
	frames  FrameSource
	buffers []*Buffer
}

func NewCompositor(m *mapdata.Map, cat mapdata.Catalog, reg *anim.Registry) *Compositor {
	return &Compositor{m: m, cat: cat, reg: reg}
}

// SetFrames sets the animation frame source. Without one every autotile
// draws frame 0.
func (c *Compositor) SetFrames(f FrameSource) {
	c.frames = f
}

// SetSource points the compositor at another map or catalog. Call Build
// afterwards.
func (c *Compositor) SetSource(m *mapdata.Map, cat mapdata.Catalog) {
	c.m = m
	c.cat = cat
}

// Buffers returns the layer buffers in draw order.
func (c *Compositor) Buffers() []*Buffer {
	return c.buffers
}

func (c *Compositor) Buffer(layer int) *Buffer {
	return c.buffers[layer]
}

// CellRect returns the pixel rectangle covered by cell (x, y).
func CellRect(x, y int) image.Rectangle {
	return image.Rect(x*mapdata.TileSize, y*mapdata.TileSize, (x+1)*mapdata.TileSize, (y+1)*mapdata.TileSize)
}

// Build renders every layer from scratch and re-registers every animated
// autotile cell.
func (c *Compositor) Build() {
	c.reg.Clear()
	c.buffers = make([]*Buffer, len(c.m.Layers))
	for i := range c.m.Layers {
		c.buffers[i] = c.buildLayer(i)
	}
	c.restack()
}

func (c *Compositor) buildLayer(layer int) *Buffer {
	buf := NewBuffer(c.m.Width*mapdata.TileSize, c.m.Height*mapdata.TileSize)
	buf.Visible = c.m.Layers[layer].Visible
	buf.Edit(func(cv *Canvas) {
		for y := 0; y < c.m.Height; y++ {
			for x := 0; x < c.m.Width; x++ {
				c.drawCell(cv, layer, x, y)
			}
		}
	})
	return buf
}

// RedrawCell clears cell (x, y) of layer and draws its current content.
func (c *Compositor) RedrawCell(layer, x, y int) {
	c.buffers[layer].Edit(func(cv *Canvas) {
		c.redraw(cv, layer, x, y)
	})
}

// RedrawAnimated implements anim.Painter.
func (c *Compositor) RedrawAnimated(layer int, entries []anim.Entry) {
	if layer < 0 || layer >= len(c.buffers) {
		return
	}
	c.buffers[layer].Edit(func(cv *Canvas) {
		for _, e := range entries {
			c.redraw(cv, layer, e.X, e.Y)
		}
	})
}

func (c *Compositor) redraw(cv *Canvas, layer, x, y int) {
	c.reg.Remove(anim.Cell{Layer: layer, X: x, Y: y})
	cv.Clear(CellRect(x, y))
	c.drawCell(cv, layer, x, y)
}

// drawCell draws the tile at (x, y) and registers it when it animates.
func (c *Compositor) drawCell(cv *Canvas, layer, x, y int) {
	t := c.m.TileAt(layer, x, y)
	switch t.Kind {
	case mapdata.KindEmpty:
	case mapdata.KindTileset:
		ts := c.m.TilesetFor(c.cat, t)
		if ts.Image == nil {
			return
		}
		cv.Blit(CellRect(x, y), ts.Image, ts.SourceRect(t.ID).Min.Add(ts.Image.Bounds().Min))
	case mapdata.KindAutotile:
		at := c.m.AutotileFor(c.cat, t)
		if at.Animated() {
			c.reg.Put(anim.Entry{Cell: anim.Cell{Layer: layer, X: x, Y: y}, Autotile: at.ID, Shape: t.ID})
		}
		c.drawAutotile(cv, x, y, at, t.ID, c.frameOf(at))
	default:
		panic(fmt.Sprintf("compose: invalid tile kind %d at layer %d (%d,%d)", t.Kind, layer, x, y))
	}
}

func (c *Compositor) frameOf(at *mapdata.Autotile) int {
	if c.frames == nil {
		return 0
	}
	return c.frames.FrameOf(at)
}

func (c *Compositor) drawAutotile(cv *Canvas, x, y int, at *mapdata.Autotile, shape, frame int) {
	if at.Image == nil {
		return
	}
	src := at.Image.Bounds()
	animX := 0
	if w := src.Dx(); w > 0 {
		animX = (frame * at.Format.FrameWidth()) % w
	}
	if at.Format == mapdata.FormatSingle {
		cv.Blit(CellRect(x, y), at.Image, image.Pt(src.Min.X+animX, src.Min.Y))
		return
	}
	q := autotile.Quadrants(shape)
	for i := 0; i < 4; i++ {
		dx := x*mapdata.TileSize + quarter*(i%2)
		dy := y*mapdata.TileSize + quarter*(i/2)
		sp := image.Pt(
			src.Min.X+quarter*(q[i]%autotile.QuadrantColumns)+animX,
			src.Min.Y+quarter*(q[i]/autotile.QuadrantColumns),
		)
		cv.Blit(image.Rect(dx, dy, dx+quarter, dy+quarter), at.Image, sp)
	}
}

// InsertLayer mirrors a layer inserted into the map at index.
func (c *Compositor) InsertLayer(index int) {
	c.reg.InsertLayer(index)
	c.buffers = append(c.buffers, nil)
	copy(c.buffers[index+1:], c.buffers[index:])
	c.buffers[index] = c.buildLayer(index)
	c.restack()
}

// RemoveLayer drops the buffer of a layer removed from the map and purges
// its animated cells.
func (c *Compositor) RemoveLayer(index int) {
	c.reg.RemoveLayer(index)
	c.buffers = append(c.buffers[:index], c.buffers[index+1:]...)
	c.restack()
}

func (c *Compositor) SwapLayers(i, j int) {
	c.reg.SwapLayers(i, j)
	c.buffers[i], c.buffers[j] = c.buffers[j], c.buffers[i]
	c.restack()
}

func (c *Compositor) SetVisible(layer int, visible bool) {
	c.buffers[layer].Visible = visible
}

// restack keeps draw order equal to layer order. Z leaves a gap between
// layers for overlays.
func (c *Compositor) restack() {
	for i, b := range c.buffers {
		b.Z = i * 2
	}
}
