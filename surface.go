package redraw

import "image"

// Surface is a 2D raster drawing context. Coordinates passed to the drawing
// methods are transformed by the current matrix; Save and Restore push and pop
// the matrix together with the global alpha.
//
// The engine owns its surfaces exclusively once they are handed to New and
// touches them only from inside RedrawFrame and SetBackground.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (width, height int)

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(theta float64)
	// Transform returns the current matrix.
	Transform() Matrix

	// SetAlpha sets the global alpha applied to DrawImage and FillPattern.
	SetAlpha(a float64)

	// Clear makes every pixel transparent, ignoring the matrix.
	Clear()

	// FillRect replaces the pixels of (x, y, w, h) with c.
	FillRect(c Color, x, y, w, h float64)

	// DrawImage draws img stretched to (x, y, w, h).
	DrawImage(img image.Image, x, y, w, h float64)

	// FillPattern fills (x, y, w, h) with p repeated, anchored at (x, y).
	FillPattern(p Pattern, x, y, w, h float64)

	// DrawSurface composites src over this surface at the origin, ignoring
	// the matrix. src must come from the same backend (ErrSurfaceMismatch).
	DrawSurface(src Surface) error
}

// Pattern is a repeat-fill source: Image scaled to Width x Height, tiled.
type Pattern struct {
	Image         image.Image
	Width, Height float64
}

// Snapshotter is implemented by surfaces whose pixels can be read back.
// The returned image is straight (non-premultiplied) alpha.
type Snapshotter interface {
	Snapshot() *image.NRGBA
}

// imageSize returns the pixel size of img's bounds.
func imageSize(img image.Image) (w, h float64) {
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// unpremultiply converts premultiplied RGBA bytes to a straight-alpha image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}
