package redraw

// Actor is a drawable game entity. The engine only reads actors; creating,
// moving and destroying them is the caller's job.
//
// A single flat struct is used for every actor so the per-frame loop never
// goes through interface dispatch. Construct actors with NewActor, which
// applies the non-zero defaults (Opacity 1, Scale 1).
type Actor struct {
	// Identity
	Name  string
	Class string

	// Rectangle. Right-Left == Width and Bottom-Top == Height.
	Top, Right, Bottom, Left float64
	Width, Height            float64

	// Visual attributes
	Hidden           bool
	Opacity          float64
	OffsetX, OffsetY float64
	Repeat           bool
	Rotation         float64 // radians
	Scale            float64 // zero is treated as 1

	// Intrinsic tile size used for cache lookups and repeat fills,
	// independent of the actor's own rectangle.
	SpriteWidth, SpriteHeight float64

	// Metadata
	UserData any
}

// NewActor creates a visible actor covering (left, top, width, height) whose
// sprite size defaults to the actor size.
func NewActor(name string, left, top, width, height float64) *Actor {
	a := &Actor{
		Name:         name,
		Opacity:      1,
		Scale:        1,
		SpriteWidth:  width,
		SpriteHeight: height,
	}
	a.Left, a.Top = left, top
	a.Width, a.Height = width, height
	a.syncEdges()
	return a
}

// SetPosition moves the actor's top-left corner, keeping its size.
func (a *Actor) SetPosition(left, top float64) {
	a.Left = left
	a.Top = top
	a.syncEdges()
}

// SetSize resizes the actor, keeping its top-left corner.
func (a *Actor) SetSize(width, height float64) {
	a.Width = width
	a.Height = height
	a.syncEdges()
}

// Rect returns the actor's rectangle without offsets.
func (a *Actor) Rect() Rect {
	return Rect{X: a.Left, Y: a.Top, Width: a.Width, Height: a.Height}
}

// syncEdges recomputes Right and Bottom from Left/Top and Width/Height.
func (a *Actor) syncEdges() {
	a.Right = a.Left + a.Width
	a.Bottom = a.Top + a.Height
}

// scale returns the draw scale, treating an unset Scale as 1.
func (a *Actor) scale() float64 {
	if a.Scale == 0 {
		return 1
	}
	return a.Scale
}

// BoundingBox is the visible frame actors are culled against. Only Width and
// Height take part in culling; the frame's origin is the surface origin.
type BoundingBox struct {
	Top, Right, Bottom, Left float64
	Width, Height            float64
}

// NewBoundingBox returns a box of the given size anchored at the origin.
func NewBoundingBox(width, height float64) *BoundingBox {
	return &BoundingBox{Right: width, Bottom: height, Width: width, Height: height}
}

// Bounds implements BoundsSource. A *BoundingBox held by the caller is read
// fresh on every frame, so mutating it in place is picked up immediately.
func (b *BoundingBox) Bounds() BoundingBox {
	return *b
}

// BoundsSource supplies the culling frame. It is read once per drawn frame.
type BoundsSource interface {
	Bounds() BoundingBox
}
