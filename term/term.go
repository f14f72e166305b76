// Package term presents redraw frames in a terminal through tcell, using the
// upper half block so every character cell shows two vertically stacked
// pixels.
package term

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

// HalfBlock is the glyph used for every presented cell. Its foreground is the
// upper pixel and its background the lower one.
const HalfBlock = '▀'

// CellWriter is the part of tcell.Screen that Present needs.
type CellWriter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// PixelSize returns the surface size that maps one-to-one onto a terminal of
// cols x rows cells.
func PixelSize(cols, rows int) (w, h int) {
	return cols, rows * 2
}

// Present draws img scaled to fill cols x rows cells. Sampling is nearest
// neighbour. Transparent pixels show as black.
func Present(w CellWriter, img image.Image, cols, rows int) {
	var p Presenter
	p.Present(w, img, cols, rows)
}

type cellColors struct {
	top, bottom tcell.Color
}

// Presenter presents successive frames and only rewrites cells whose colors
// changed since the previous frame. The zero value is ready to use.
type Presenter struct {
	cols, rows int
	last       []cellColors
}

// Reset forgets the previous frame so the next Present rewrites every cell.
// Call it after the screen was cleared or resized.
func (p *Presenter) Reset() {
	p.last = p.last[:0]
	p.cols, p.rows = 0, 0
}

// Present draws img into w as cols x rows cells and returns the number of
// cells written.
func (p *Presenter) Present(w CellWriter, img image.Image, cols, rows int) int {
	if img == nil || cols <= 0 || rows <= 0 {
		return 0
	}
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	fresh := cols != p.cols || rows != p.rows
	if fresh {
		p.cols, p.rows = cols, rows
		p.last = make([]cellColors, cols*rows)
	}

	py := rows * 2
	written := 0
	for cy := 0; cy < rows; cy++ {
		syTop := b.Min.Y + (2*cy)*b.Dy()/py
		syBottom := b.Min.Y + (2*cy+1)*b.Dy()/py
		for cx := 0; cx < cols; cx++ {
			sx := b.Min.X + cx*b.Dx()/cols
			c := cellColors{
				top:    toColor(img, sx, syTop),
				bottom: toColor(img, sx, syBottom),
			}
			i := cy*cols + cx
			if !fresh && p.last[i] == c {
				continue
			}
			p.last[i] = c
			style := tcell.StyleDefault.Foreground(c.top).Background(c.bottom)
			w.SetContent(cx, cy, HalfBlock, nil, style)
			written++
		}
	}
	return written
}

// toColor converts a pixel to a true-color terminal color. Premultiplied
// components are used as-is, which composites the pixel over black.
func toColor(img image.Image, x, y int) tcell.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
