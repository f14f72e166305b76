package redraw

import "image"

// Direction tags how a multi-tile sprite is stretched across an actor.
type Direction uint8

const (
	DirectionVertical   Direction = iota // top and bottom caps around a middle
	DirectionHorizontal                  // left and right caps around a middle
	DirectionCorners                     // nine-slice: four corners, four edges, middle
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionVertical:
		return "vertical"
	case DirectionHorizontal:
		return "horizontal"
	case DirectionCorners:
		return "corners"
	default:
		return "unknown"
	}
}

// Sprite is pre-rendered imagery for one actor, as returned by a SpriteCache.
// It is a closed set: Single, *Vertical, *Horizontal and *Corners.
//
// Images may be any image.Image. EbitenSurface uploads non-ebiten images once
// per image value and reuses the texture, so pass pointer images such as
// *image.RGBA. RasterSurface needs CPU-readable images.
type Sprite interface {
	isSprite()
}

// Multiple is implemented by the multi-tile sprite variants.
type Multiple interface {
	Sprite
	Direction() Direction
}

// Single wraps one pre-rendered tile.
type Single struct {
	Image image.Image
}

// Vertical stretches an actor between an optional top and bottom cap.
// A nil image is an absent tile. A zero height uses the actor's SpriteHeight.
type Vertical struct {
	Top, Bottom, Middle     image.Image
	TopHeight, BottomHeight float64
}

// Horizontal stretches an actor between an optional left and right cap.
// A nil image is an absent tile. A zero width uses the actor's SpriteWidth.
type Horizontal struct {
	Left, Right, Middle   image.Image
	LeftWidth, RightWidth float64
}

// Corners is a nine-slice sprite. Any member may be nil.
// Zero insets use the actor's SpriteWidth (left/right) or SpriteHeight
// (top/bottom).
type Corners struct {
	TopLeft, Top, TopRight          image.Image
	Left, Right                     image.Image
	BottomLeft, Bottom, BottomRight image.Image
	Middle                          image.Image

	TopHeight, BottomHeight float64
	LeftWidth, RightWidth   float64
}

// spriteImages returns the non-nil images of s.
func spriteImages(s Sprite) []image.Image {
	var imgs []image.Image
	add := func(list ...image.Image) {
		for _, img := range list {
			if img != nil {
				imgs = append(imgs, img)
			}
		}
	}
	switch v := s.(type) {
	case Single:
		add(v.Image)
	case *Vertical:
		if v != nil {
			add(v.Top, v.Bottom, v.Middle)
		}
	case *Horizontal:
		if v != nil {
			add(v.Left, v.Right, v.Middle)
		}
	case *Corners:
		if v != nil {
			add(v.TopLeft, v.Top, v.TopRight, v.Left, v.Right,
				v.BottomLeft, v.Bottom, v.BottomRight, v.Middle)
		}
	}
	return imgs
}

func (Single) isSprite()      {}
func (*Vertical) isSprite()   {}
func (*Horizontal) isSprite() {}
func (*Corners) isSprite()    {}

// Direction implements Multiple.
func (*Vertical) Direction() Direction { return DirectionVertical }

// Direction implements Multiple.
func (*Horizontal) Direction() Direction { return DirectionHorizontal }

// Direction implements Multiple.
func (*Corners) Direction() Direction { return DirectionCorners }

// orDefault returns v, or def when v is zero.
func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
