package redraw

import (
	"image"
	"reflect"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenSurface is a Surface backed by an *ebiten.Image. It is the runtime
// backend used by Run: the image is persistent and owned by the surface, not
// recycled between frames.
type EbitenSurface struct {
	transformStack

	image    *ebiten.Image
	w, h     int
	textures map[image.Image]*ebiten.Image // uploaded non-ebiten sources, see Forget

	op    ebiten.DrawImageOptions
	verts [4]ebiten.Vertex
	inds  [6]uint16
}

// NewEbitenSurface creates a surface with a new offscreen image of the given size.
func NewEbitenSurface(w, h int) *EbitenSurface {
	return WrapEbitenImage(ebiten.NewImage(w, h))
}

// WrapEbitenImage creates a surface drawing into img.
func WrapEbitenImage(img *ebiten.Image) *EbitenSurface {
	b := img.Bounds()
	return &EbitenSurface{
		transformStack: newTransformStack(),
		image:          img,
		w:              b.Dx(),
		h:              b.Dy(),
		inds:           [6]uint16{0, 1, 2, 1, 3, 2},
	}
}

// Image returns the underlying *ebiten.Image for direct manipulation.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.image
}

// Size implements Surface.
func (s *EbitenSurface) Size() (int, int) {
	return s.w, s.h
}

// Clear implements Surface.
func (s *EbitenSurface) Clear() {
	s.image.Clear()
}

// FillRect implements Surface. The rectangle replaces existing pixels.
func (s *EbitenSurface) FillRect(c Color, x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &s.op
	op.GeoM.Reset()
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(matrixGeoM(s.matrix))
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	op.Blend = ebiten.BlendCopy
	op.Filter = ebiten.FilterNearest
	s.image.DrawImage(WhitePixel, op)
}

// DrawImage implements Surface.
func (s *EbitenSurface) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	src, release := s.texture(img)
	defer release()
	iw, ih := imageSize(src)
	if iw == 0 || ih == 0 {
		return
	}
	op := &s.op
	op.GeoM.Reset()
	op.GeoM.Scale(w/iw, h/ih)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(matrixGeoM(s.matrix))
	op.ColorScale.Reset()
	op.ColorScale.ScaleAlpha(float32(s.alpha))
	op.Blend = ebiten.BlendSourceOver
	op.Filter = ebiten.FilterNearest
	s.image.DrawImage(src, op)
}

// FillPattern implements Surface using a single textured quad sampled with
// AddressRepeat, so any number of repetitions costs one draw call.
func (s *EbitenSurface) FillPattern(p Pattern, x, y, w, h float64) {
	if p.Image == nil || w <= 0 || h <= 0 || p.Width <= 0 || p.Height <= 0 {
		return
	}
	if p.Width == w && p.Height == h {
		s.DrawImage(p.Image, x, y, w, h)
		return
	}
	src, release := s.texture(p.Image)
	defer release()
	b := src.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}

	// Source texels per destination unit.
	su := iw / p.Width
	sv := ih / p.Height
	u0, v0 := float64(b.Min.X), float64(b.Min.Y)
	u1, v1 := u0+w*su, v0+h*sv

	lx := [4]float64{x, x + w, x, x + w}
	ly := [4]float64{y, y, y + h, y + h}
	lu := [4]float64{u0, u1, u0, u1}
	lv := [4]float64{v0, v0, v1, v1}
	a := float32(s.alpha)
	for i := range s.verts {
		dx, dy := s.matrix.Apply(lx[i], ly[i])
		s.verts[i] = ebiten.Vertex{
			DstX:   float32(dx),
			DstY:   float32(dy),
			SrcX:   float32(lu[i]),
			SrcY:   float32(lv[i]),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: a,
		}
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.Address = ebiten.AddressRepeat
	triOp.Filter = ebiten.FilterNearest
	triOp.Blend = ebiten.BlendSourceOver
	s.image.DrawTriangles(s.verts[:], s.inds[:], src, &triOp)
}

// DrawSurface implements Surface.
func (s *EbitenSurface) DrawSurface(src Surface) error {
	other, ok := src.(*EbitenSurface)
	if !ok {
		return ErrSurfaceMismatch
	}
	var op ebiten.DrawImageOptions
	s.image.DrawImage(other.image, &op)
	return nil
}

// Snapshot implements Snapshotter. Pixels can only be read back while the
// ebiten game loop is running.
func (s *EbitenSurface) Snapshot() *image.NRGBA {
	pixels := make([]byte, 4*s.w*s.h)
	s.image.ReadPixels(pixels)
	return unpremultiply(pixels, s.w, s.h)
}

// Dispose deallocates the underlying image and any uploaded textures. The
// surface must not be used afterwards.
func (s *EbitenSurface) Dispose() {
	for k, tex := range s.textures {
		tex.Deallocate()
		delete(s.textures, k)
	}
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
}

// Forget deallocates the texture uploaded for img, if any. Call it when a
// CPU image will no longer be drawn.
func (s *EbitenSurface) Forget(img image.Image) {
	if img == nil || !cacheable(img) {
		return
	}
	if tex, ok := s.textures[img]; ok {
		tex.Deallocate()
		delete(s.textures, img)
	}
}

// ForgetSprite forgets every image of sp. It fits Cache.OnEvict.
func (s *EbitenSurface) ForgetSprite(sp Sprite) {
	for _, img := range spriteImages(sp) {
		s.Forget(img)
	}
}

// texture returns img as an *ebiten.Image, uploading CPU images on first use.
// Images that cannot be map keys are uploaded for this draw only; release
// frees them.
func (s *EbitenSurface) texture(img image.Image) (tex *ebiten.Image, release func()) {
	if ei, ok := img.(*ebiten.Image); ok {
		return ei, noRelease
	}
	if !cacheable(img) {
		tex := ebiten.NewImageFromImage(img)
		return tex, tex.Deallocate
	}
	if tex, ok := s.textures[img]; ok {
		return tex, noRelease
	}
	if s.textures == nil {
		s.textures = make(map[image.Image]*ebiten.Image)
	}
	tex = ebiten.NewImageFromImage(img)
	s.textures[img] = tex
	return tex, noRelease
}

func noRelease() {}

// cacheable reports whether img can key the texture map without panicking.
func cacheable(img image.Image) bool {
	return reflect.TypeOf(img).Comparable()
}

// matrixGeoM converts a Matrix into an ebiten.GeoM.
func matrixGeoM(m Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
