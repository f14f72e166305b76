package redraw

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// RasterSurface is a CPU Surface backed by an *image.RGBA. It needs no GPU or
// window, which makes it the backend for headless rendering, scripted runs,
// the terminal viewer and pixel-exact tests.
//
// Sampling is nearest-neighbour. Pattern tiles are rounded to whole pixels.
// Source images must be CPU-readable (not *ebiten.Image).
type RasterSurface struct {
	transformStack

	img  *image.RGBA
	pool scratchPool
}

// NewRasterSurface creates a transparent surface of the given size.
func NewRasterSurface(w, h int) *RasterSurface {
	return WrapRGBA(image.NewRGBA(image.Rect(0, 0, w, h)))
}

// WrapRGBA creates a surface drawing into img.
func WrapRGBA(img *image.RGBA) *RasterSurface {
	return &RasterSurface{
		transformStack: newTransformStack(),
		img:            img,
	}
}

// Image returns the underlying image. Pixels are premultiplied.
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}

// Size implements Surface.
func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear implements Surface.
func (s *RasterSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// FillRect implements Surface. The rectangle replaces existing pixels.
func (s *RasterSurface) FillRect(c Color, x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	m := s.matrix.Mul(Translation(x, y)).Mul(Scaling(w, h))
	src := image.NewUniform(c.toRGBA())
	draw.NearestNeighbor.Transform(s.img, aff3(m), src, image.Rect(0, 0, 1, 1), draw.Src, nil)
}

// DrawImage implements Surface.
func (s *RasterSurface) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	m := s.matrix.
		Mul(Translation(x, y)).
		Mul(Scaling(w/iw, h/ih)).
		Mul(Translation(-float64(b.Min.X), -float64(b.Min.Y)))
	s.transform(m, img, b)
}

// FillPattern implements Surface. The pattern tile is rendered once at its
// pattern size and tiled into a scratch strip, which is drawn through the
// current matrix. The strip only covers the part of the rectangle that lands
// on the surface, so its size is bounded by the surface, not the rectangle.
func (s *RasterSurface) FillPattern(p Pattern, x, y, w, h float64) {
	if p.Image == nil || w <= 0 || h <= 0 || p.Width <= 0 || p.Height <= 0 {
		return
	}
	if p.Width == w && p.Height == h {
		s.DrawImage(p.Image, x, y, w, h)
		return
	}
	tw := max(1, int(math.Round(p.Width)))
	th := max(1, int(math.Round(p.Height)))
	cw := max(1, int(math.Ceil(w)))
	ch := max(1, int(math.Ceil(h)))

	// Strip pixel (i, j) covers local (x+i*sx, y+j*sy).
	sx, sy := w/float64(cw), h/float64(ch)
	toStrip := s.matrix.Mul(Translation(x, y)).Mul(Scaling(sx, sy))
	vis, ok := s.visibleStrip(toStrip, cw, ch)
	if !ok {
		return
	}

	tile := s.pool.Acquire(tw, th)
	defer s.pool.Release(tile)
	draw.NearestNeighbor.Scale(tile.View, tile.View.Bounds(), p.Image, p.Image.Bounds(), draw.Src, nil)

	// The tile grid stays anchored at strip pixel (0, 0).
	strip := s.pool.Acquire(vis.Dx(), vis.Dy())
	defer s.pool.Release(strip)
	for ty := -(vis.Min.Y % th); ty < vis.Dy(); ty += th {
		for tx := -(vis.Min.X % tw); tx < vis.Dx(); tx += tw {
			draw.Draw(strip.View, image.Rect(tx, ty, tx+tw, ty+th), tile.View, image.Point{}, draw.Src)
		}
	}

	m := toStrip.Mul(Translation(float64(vis.Min.X), float64(vis.Min.Y)))
	s.transform(m, strip.View, strip.View.Bounds())
}

// visibleStrip maps the surface bounds back through m and returns the part
// of the (0, 0, cw, ch) strip that can reach the surface, with a one pixel
// margin for sampling. ok is false when nothing is visible or m is singular.
func (s *RasterSurface) visibleStrip(m Matrix, cw, ch int) (image.Rectangle, bool) {
	if det := m[0]*m[3] - m[2]*m[1]; det > -1e-12 && det < 1e-12 {
		return image.Rectangle{}, false
	}
	inv := m.Invert()
	b := s.img.Bounds()
	corners := [4][2]float64{
		{float64(b.Min.X), float64(b.Min.Y)},
		{float64(b.Max.X), float64(b.Min.Y)},
		{float64(b.Min.X), float64(b.Max.Y)},
		{float64(b.Max.X), float64(b.Max.Y)},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		lx, ly := inv.Apply(c[0], c[1])
		minX, maxX = math.Min(minX, lx), math.Max(maxX, lx)
		minY, maxY = math.Min(minY, ly), math.Max(maxY, ly)
	}
	x0 := int(math.Max(0, math.Floor(minX)-1))
	y0 := int(math.Max(0, math.Floor(minY)-1))
	x1 := int(math.Min(float64(cw), math.Ceil(maxX)+1))
	y1 := int(math.Min(float64(ch), math.Ceil(maxY)+1))
	if x0 >= x1 || y0 >= y1 {
		return image.Rectangle{}, false
	}
	return image.Rect(x0, y0, x1, y1), true
}

// DrawSurface implements Surface.
func (s *RasterSurface) DrawSurface(src Surface) error {
	other, ok := src.(*RasterSurface)
	if !ok {
		return ErrSurfaceMismatch
	}
	draw.Draw(s.img, s.img.Bounds(), other.img, other.img.Bounds().Min, draw.Over)
	return nil
}

// Snapshot implements Snapshotter.
func (s *RasterSurface) Snapshot() *image.NRGBA {
	b := s.img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), s.img, b.Min, draw.Src)
	return out
}

// transform composites src (sr) over the surface through m, applying the
// global alpha as a uniform source mask.
func (s *RasterSurface) transform(m Matrix, src image.Image, sr image.Rectangle) {
	var opts *draw.Options
	if s.alpha < 1 {
		opts = &draw.Options{
			SrcMask: image.NewUniform(color.Alpha16{A: uint16(s.alpha * 0xffff)}),
		}
	}
	draw.NearestNeighbor.Transform(s.img, aff3(m), src, sr, draw.Over, opts)
}

// aff3 converts a Matrix into the row-major f64.Aff3 used by x/image/draw.
func aff3(m Matrix) f64.Aff3 {
	return f64.Aff3{
		m[0], m[2], m[4],
		m[1], m[3], m[5],
	}
}
