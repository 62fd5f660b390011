// Package present shows composited layers on screen with ebiten.
package present

import (
	"image"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/mapforge/compose"
	"github.com/milk9111/mapforge/mapdata"
)

// Layers mirrors compose buffers into GPU images. Only the dirty region of
// a buffer is uploaded on each Sync.
type Layers struct {
	images  map[*compose.Buffer]*ebiten.Image
	scratch []byte
}

func NewLayers() *Layers {
	return &Layers{images: make(map[*compose.Buffer]*ebiten.Image)}
}

// Sync uploads changed pixels. Images of buffers that no longer exist are
// released.
func (l *Layers) Sync(bufs []*compose.Buffer) {
	live := make(map[*compose.Buffer]bool, len(bufs))
	for _, b := range bufs {
		live[b] = true
		img, ok := l.images[b]
		if !ok || img.Bounds().Size() != b.Bounds().Size() {
			if ok {
				img.Deallocate()
			}
			img = ebiten.NewImage(b.Bounds().Dx(), b.Bounds().Dy())
			l.images[b] = img
			b.TakeDirty()
			img.WritePixels(b.Image().Pix)
			continue
		}
		if d := b.TakeDirty(); !d.Empty() {
			l.upload(img, b.Image(), d)
		}
	}
	for b, img := range l.images {
		if !live[b] {
			img.Deallocate()
			delete(l.images, b)
		}
	}
}

func (l *Layers) upload(dst *ebiten.Image, src *image.RGBA, r image.Rectangle) {
	n := r.Dx() * r.Dy() * 4
	if cap(l.scratch) < n {
		l.scratch = make([]byte, n)
	}
	buf := l.scratch[:n]
	row := r.Dx() * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := src.PixOffset(r.Min.X, y)
		copy(buf[(y-r.Min.Y)*row:], src.Pix[off:off+row])
	}
	dst.SubImage(r).(*ebiten.Image).WritePixels(buf)
}

// Draw paints every visible layer in Z order scaled by zoom at offset.
func (l *Layers) Draw(dst *ebiten.Image, bufs []*compose.Buffer, zoom float64, offset image.Point) {
	ordered := slices.Clone(bufs)
	slices.SortStableFunc(ordered, func(a, b *compose.Buffer) int { return a.Z - b.Z })
	for _, b := range ordered {
		if !b.Visible {
			continue
		}
		img, ok := l.images[b]
		if !ok {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate(float64(offset.X), float64(offset.Y))
		dst.DrawImage(img, op)
	}
}

// DrawGrid outlines every cell of a width x height map.
func DrawGrid(dst *ebiten.Image, width, height int, zoom float64, offset image.Point, clr color.Color) {
	cell := float32(float64(mapdata.TileSize) * zoom)
	ox, oy := float32(offset.X), float32(offset.Y)
	w, h := cell*float32(width), cell*float32(height)
	for x := 0; x <= width; x++ {
		fx := ox + cell*float32(x)
		vector.StrokeLine(dst, fx, oy, fx, oy+h, 1, clr, false)
	}
	for y := 0; y <= height; y++ {
		fy := oy + cell*float32(y)
		vector.StrokeLine(dst, ox, fy, ox+w, fy, 1, clr, false)
	}
}

// DrawRect outlines a cell rectangle, used for the selection and cursor.
func DrawRect(dst *ebiten.Image, r image.Rectangle, zoom float64, offset image.Point, clr color.Color) {
	if r.Empty() {
		return
	}
	cell := float32(float64(mapdata.TileSize) * zoom)
	x := float32(offset.X) + cell*float32(r.Min.X)
	y := float32(offset.Y) + cell*float32(r.Min.Y)
	vector.StrokeRect(dst, x, y, cell*float32(r.Dx()), cell*float32(r.Dy()), 2, clr, false)
}

// ScreenToMap converts a screen position to map pixels.
func ScreenToMap(p image.Point, zoom float64, offset image.Point) image.Point {
	fx := float64(p.X-offset.X) / zoom
	fy := float64(p.Y-offset.Y) / zoom
	return image.Pt(floor(fx), floor(fy))
}

func floor(f float64) int {
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i
}
