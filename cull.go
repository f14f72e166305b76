package redraw

// DefaultEpsilon is the opacity below which an actor is treated as invisible.
const DefaultEpsilon = 0.007

// culled reports whether a cannot be visible inside b. It reads only actor
// fields and allocates nothing.
func culled(a *Actor, b BoundingBox, eps float64) bool {
	if a.Hidden || a.Opacity < eps || a.Height < 1 || a.Width < 1 {
		return true
	}
	return a.Top+a.OffsetY > b.Height ||
		a.Right+a.OffsetX < 0 ||
		a.Bottom+a.OffsetY < 0 ||
		a.Left+a.OffsetX > b.Width
}
