package redraw

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the viewport X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Viewport is a resizable window onto a larger world. It implements
// BoundsSource, so an Engine culls against its current size, and maps world
// coordinates to the screen coordinates actors are drawn at.
type Viewport struct {
	// X and Y are the world position of the top-left screen corner.
	X, Y float64
	// Width and Height are the screen size in pixels.
	Width, Height float64

	// LimitsEnabled clamps X and Y so the visible area stays within Limits.
	LimitsEnabled bool
	// Limits is the world rectangle the view is clamped to.
	Limits Rect

	followTarget  *Actor
	followOffsetX float64
	followOffsetY float64
	followLerp    float64

	scrollTween *scrollAnim
}

// NewViewport creates a viewport of the given screen size at the world origin.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// Bounds implements BoundsSource.
func (v *Viewport) Bounds() BoundingBox {
	return BoundingBox{Right: v.Width, Bottom: v.Height, Width: v.Width, Height: v.Height}
}

// Resize changes the screen size.
func (v *Viewport) Resize(width, height float64) {
	v.Width = width
	v.Height = height
	if v.LimitsEnabled {
		v.clampToLimits()
	}
}

// SetLimits enables clamping to the given world rectangle.
func (v *Viewport) SetLimits(limits Rect) {
	v.LimitsEnabled = true
	v.Limits = limits
	v.clampToLimits()
}

// ClearLimits disables clamping.
func (v *Viewport) ClearLimits() {
	v.LimitsEnabled = false
}

// Follow keeps the target actor's world centre in the middle of the screen,
// offset by (offsetX, offsetY). A lerp of 1.0 snaps immediately; lower values
// give smoother following. The target's rectangle is read as world
// coordinates.
func (v *Viewport) Follow(target *Actor, offsetX, offsetY, lerp float64) {
	v.followTarget = target
	v.followOffsetX = offsetX
	v.followOffsetY = offsetY
	v.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (v *Viewport) Unfollow() {
	v.followTarget = nil
}

// ScrollTo animates the top-left corner to world (x, y) over duration seconds.
func (v *Viewport) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// Update advances follow, scroll and clamping by dt seconds.
func (v *Viewport) Update(dt float32) {
	if t := v.followTarget; t != nil {
		targetX := t.Left + t.Width/2 + v.followOffsetX - v.Width/2
		targetY := t.Top + t.Height/2 + v.followOffsetY - v.Height/2
		v.X += (targetX - v.X) * v.followLerp
		v.Y += (targetY - v.Y) * v.followLerp
	}

	if v.scrollTween != nil {
		if !v.scrollTween.doneX {
			val, done := v.scrollTween.tweenX.Update(dt)
			v.X = float64(val)
			v.scrollTween.doneX = done
		}
		if !v.scrollTween.doneY {
			val, done := v.scrollTween.tweenY.Update(dt)
			v.Y = float64(val)
			v.scrollTween.doneY = done
		}
		if v.scrollTween.doneX && v.scrollTween.doneY {
			v.scrollTween = nil
		}
	}

	if v.LimitsEnabled {
		v.clampToLimits()
	}
}

// clampToLimits restricts X and Y so the visible area stays within Limits.
// A world smaller than the screen is centred.
func (v *Viewport) clampToLimits() {
	minX, maxX := v.Limits.X, v.Limits.X+v.Limits.Width-v.Width
	minY, maxY := v.Limits.Y, v.Limits.Y+v.Limits.Height-v.Height

	if minX > maxX {
		v.X = v.Limits.X + (v.Limits.Width-v.Width)/2
	} else {
		v.X = math.Max(minX, math.Min(v.X, maxX))
	}
	if minY > maxY {
		v.Y = v.Limits.Y + (v.Limits.Height-v.Height)/2
	} else {
		v.Y = math.Max(minY, math.Min(v.Y, maxY))
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx - v.X, wy - v.Y
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return sx + v.X, sy + v.Y
}

// VisibleWorld returns the world rectangle currently on screen.
func (v *Viewport) VisibleWorld() Rect {
	return Rect{X: v.X, Y: v.Y, Width: v.Width, Height: v.Height}
}

// Project sets the draw offset of a, whose rectangle is in world
// coordinates, so it is drawn at its screen position. The rectangle itself
// is left untouched.
func (v *Viewport) Project(a *Actor) {
	a.OffsetX = -v.X
	a.OffsetY = -v.Y
}
