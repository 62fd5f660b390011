// Package compose renders map layers into pixel buffers and keeps them up
// to date cell by cell.
package compose

import (
	"image"

	"golang.org/x/image/draw"
)

// Buffer is the rendered image of one layer at one pixel per source pixel.
// Pixels may only change inside Edit.
type Buffer struct {
	Z       int
	Visible bool

	img    *image.RGBA
	dirty  image.Rectangle
	locked bool
}

// NewBuffer returns a transparent, locked buffer of w x h pixels.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{
		Visible: true,
		img:     image.NewRGBA(image.Rect(0, 0, w, h)),
		locked:  true,
	}
}

// Image exposes the pixels for reading. Do not draw into it directly.
func (b *Buffer) Image() *image.RGBA {
	return b.img
}

func (b *Buffer) Bounds() image.Rectangle {
	return b.img.Bounds()
}

// Locked is true whenever no Edit is running.
func (b *Buffer) Locked() bool {
	return b.locked
}

// Edit opens the buffer for drawing for the duration of fn. All blits of a
// batch belong in one Edit so presentation sees either none or all of them.
func (b *Buffer) Edit(fn func(c *Canvas)) {
	if !b.locked {
		panic("compose: nested buffer edit")
	}
	b.locked = false
	defer func() { b.locked = true }()
	fn(&Canvas{b: b})
}

// Dirty returns the region changed since the last TakeDirty.
func (b *Buffer) Dirty() image.Rectangle {
	return b.dirty
}

// TakeDirty returns and resets the changed region.
func (b *Buffer) TakeDirty() image.Rectangle {
	r := b.dirty
	b.dirty = image.Rectangle{}
	return r
}

// Canvas draws into a buffer opened by Edit.
type Canvas struct {
	b *Buffer
}

func (c *Canvas) check() {
	if c.b.locked {
		panic("compose: draw into locked buffer")
	}
}

func (c *Canvas) mark(r image.Rectangle) {
	r = r.Intersect(c.b.img.Bounds())
	if r.Empty() {
		return
	}
	c.b.dirty = c.b.dirty.Union(r)
}

// Clear makes r fully transparent.
func (c *Canvas) Clear(r image.Rectangle) {
	c.check()
	draw.Draw(c.b.img, r, image.Transparent, image.Point{}, draw.Src)
	c.mark(r)
}

// Blit copies the dst-sized region of src starting at sp into dst.
func (c *Canvas) Blit(dst image.Rectangle, src image.Image, sp image.Point) {
	c.check()
	if src == nil {
		return
	}
	draw.Draw(c.b.img, dst, src, sp, draw.Src)
	c.mark(dst)
}
