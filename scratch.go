package redraw

import (
	"image"
	"math"
)

// scratchImage is a pooled CPU image. View covers exactly the requested size;
// the backing buffer is rounded up to powers of two.
type scratchImage struct {
	full *image.RGBA
	View *image.RGBA
}

// scratchPool manages reusable CPU images keyed by power-of-two dimensions.
// After warmup, Acquire/Release are zero-alloc apart from the view header.
type scratchPool struct {
	buckets map[uint64][]*image.RGBA
}

// poolKey packs power-of-two width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared image with a View of exactly (0, 0, w, h).
func (p *scratchPool) Acquire(w, h int) scratchImage {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	var full *image.RGBA
	if stack := p.buckets[key]; len(stack) > 0 {
		full = stack[len(stack)-1]
		p.buckets[key] = stack[:len(stack)-1]
		clear(full.Pix)
	} else {
		full = image.NewRGBA(image.Rect(0, 0, pw, ph))
	}
	return scratchImage{
		full: full,
		View: full.SubImage(image.Rect(0, 0, w, h)).(*image.RGBA),
	}
}

// Release returns an image to the pool for reuse. The image is cleared on
// the next Acquire, not here.
func (p *scratchPool) Release(img scratchImage) {
	if img.full == nil {
		return
	}
	b := img.full.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*image.RGBA)
	}
	p.buckets[key] = append(p.buckets[key], img.full)
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}
