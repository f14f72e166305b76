package redraw

import (
	"fmt"
	"image"
)

// painter issues the paint calls for one actor and counts them.
type painter struct {
	s       Surface
	opacity float64
	tiles   int
}

// drawImage draws img at (x, y) with size (w, h).
func (p *painter) drawImage(img image.Image, x, y, w, h float64) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	p.s.SetAlpha(p.opacity)
	p.s.DrawImage(img, x, y, w, h)
	p.s.SetAlpha(1)
	p.tiles++
}

// pattern fills (x, y, w, h) with img repeated at pw x ph, anchored at (x, y).
func (p *painter) pattern(img image.Image, pw, ph, x, y, w, h float64) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	p.s.SetAlpha(p.opacity)
	p.s.FillPattern(Pattern{Image: img, Width: pw, Height: ph}, x, y, w, h)
	p.s.SetAlpha(1)
	p.tiles++
}

// remaining is the part of an actor's local rectangle not yet covered by
// multi-tile pieces.
type remaining struct {
	top, left, right, bottom float64
	width, height            float64
}

func newRemaining(left, top, width, height float64) remaining {
	return remaining{
		top:    top,
		left:   left,
		right:  left + width,
		bottom: top + height,
		width:  width,
		height: height,
	}
}

func (r remaining) positive() bool {
	return r.top < r.bottom && r.left < r.right
}

// drawActor resolves and composites one actor that survived culling. The
// rotation transform is released on every return path, including errors.
func (e *Engine) drawActor(a *Actor) (tiles int, err error) {
	s := e.foreground
	left := a.Left + a.OffsetX
	top := a.Top + a.OffsetY
	if a.Rotation != 0 {
		s.Save()
		defer s.Restore()
		s.Translate(left+a.Width/2, top+a.Height/2)
		s.Rotate(a.Rotation)
		left, top = -a.Width/2, -a.Height/2
	}

	key, err := e.resolveKey(a)
	if err != nil {
		return 0, fmt.Errorf("redraw: resolve key for actor %q: %w", a.Name, err)
	}
	sprite, err := e.cache.Decode(key, a)
	if err != nil {
		return 0, fmt.Errorf("redraw: decode %q for actor %q: %w", key, a.Name, err)
	}

	p := painter{s: s, opacity: a.Opacity}
	r := newRemaining(left, top, a.Width, a.Height)
	switch sp := sprite.(type) {
	case Single:
		drawSingle(&p, a, sp, left, top)
	case *Vertical:
		if sp == nil {
			return 0, unrecognized(key, a, sprite)
		}
		drawVertical(&p, a, sp, r)
	case *Horizontal:
		if sp == nil {
			return 0, unrecognized(key, a, sprite)
		}
		drawHorizontal(&p, a, sp, r)
	case *Corners:
		if sp == nil {
			return 0, unrecognized(key, a, sprite)
		}
		drawCorners(&p, a, sp, r)
	default:
		return 0, unrecognized(key, a, sprite)
	}
	return p.tiles, nil
}

func unrecognized(key string, a *Actor, sprite Sprite) error {
	return fmt.Errorf("redraw: decode %q for actor %q: %w (%T)", key, a.Name, ErrUnrecognizedSprite, sprite)
}

// drawSingle paints a one-image sprite. A repeating actor is filled with the
// tile at SpriteWidth x SpriteHeight; otherwise the tile is drawn at its
// native size times Scale.
func drawSingle(p *painter, a *Actor, sp Single, left, top float64) {
	if sp.Image == nil {
		return
	}
	iw, ih := imageSize(sp.Image)
	if a.Repeat {
		pw := orDefault(a.SpriteWidth, iw)
		ph := orDefault(a.SpriteHeight, ih)
		p.pattern(sp.Image, pw, ph, left, top, a.Width, a.Height)
		return
	}
	scale := a.scale()
	p.drawImage(sp.Image, left, top, iw*scale, ih*scale)
}

// drawVertical paints the bottom cap, then the top cap, then the middle.
// Caps repeat horizontally at the tile's native width.
func drawVertical(p *painter, a *Actor, sp *Vertical, r remaining) {
	if sp.Bottom != nil {
		bh := orDefault(sp.BottomHeight, a.SpriteHeight)
		iw, _ := imageSize(sp.Bottom)
		p.pattern(sp.Bottom, iw, bh, r.left, r.bottom-bh, r.width, bh)
		r.bottom -= bh
		r.height -= bh
	}
	if sp.Top != nil {
		th := orDefault(sp.TopHeight, a.SpriteHeight)
		iw, _ := imageSize(sp.Top)
		p.pattern(sp.Top, iw, th, r.left, r.top, r.width, th)
		r.top += th
		r.height -= th
	}
	drawMiddle(p, sp.Middle, r)
}

// drawHorizontal paints the right cap, then the left cap, then the middle.
// Caps repeat vertically at the tile's native height.
func drawHorizontal(p *painter, a *Actor, sp *Horizontal, r remaining) {
	if sp.Right != nil {
		rw := orDefault(sp.RightWidth, a.SpriteWidth)
		_, ih := imageSize(sp.Right)
		p.pattern(sp.Right, rw, ih, r.right-rw, r.top, rw, r.height)
		r.right -= rw
		r.width -= rw
	}
	if sp.Left != nil {
		lw := orDefault(sp.LeftWidth, a.SpriteWidth)
		_, ih := imageSize(sp.Left)
		p.pattern(sp.Left, lw, ih, r.left, r.top, lw, r.height)
		r.left += lw
		r.width -= lw
	}
	drawMiddle(p, sp.Middle, r)
}

// drawCorners paints a nine-slice sprite: the left column, the top row, the
// right column with the bottom row, then the middle. The insets always
// shrink the remaining rectangle, whether or not their tiles are present.
// Corner tiles are stretched to their inset size; edge tiles repeat along
// the edge at their native length.
func drawCorners(p *painter, a *Actor, sp *Corners, r remaining) {
	th := orDefault(sp.TopHeight, a.SpriteHeight)
	bh := orDefault(sp.BottomHeight, a.SpriteHeight)
	lw := orDefault(sp.LeftWidth, a.SpriteWidth)
	rw := orDefault(sp.RightWidth, a.SpriteWidth)

	// Left column.
	p.pattern(sp.TopLeft, lw, th, r.left, r.top, lw, th)
	p.pattern(sp.BottomLeft, lw, bh, r.left, r.bottom-bh, lw, bh)
	if sp.Left != nil {
		_, ih := imageSize(sp.Left)
		p.pattern(sp.Left, lw, ih, r.left, r.top+th, lw, r.height-th-bh)
	}
	r.left += lw
	r.width -= lw

	// Top row.
	if sp.Top != nil {
		iw, _ := imageSize(sp.Top)
		p.pattern(sp.Top, iw, th, r.left, r.top, r.width-rw, th)
	}
	p.pattern(sp.TopRight, rw, th, r.right-rw, r.top, rw, th)
	r.top += th
	r.height -= th

	// Right column and bottom row.
	if sp.Right != nil {
		_, ih := imageSize(sp.Right)
		p.pattern(sp.Right, rw, ih, r.right-rw, r.top, rw, r.height-bh)
	}
	p.pattern(sp.BottomRight, rw, bh, r.right-rw, r.bottom-bh, rw, bh)
	if sp.Bottom != nil {
		iw, _ := imageSize(sp.Bottom)
		p.pattern(sp.Bottom, iw, bh, r.left, r.bottom-bh, r.width-rw, bh)
	}
	r.right -= rw
	r.width -= rw
	r.bottom -= bh
	r.height -= bh

	drawMiddle(p, sp.Middle, r)
}

// drawMiddle stretches the middle tile over whatever area is left.
func drawMiddle(p *painter, img image.Image, r remaining) {
	if img == nil || !r.positive() {
		return
	}
	p.pattern(img, r.width, r.height, r.left, r.top, r.width, r.height)
}
