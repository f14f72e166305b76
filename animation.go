package redraw

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on an Actor simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenSize,
// TweenOpacity, TweenRotation, TweenScale, TweenOffset) and call Update(dt)
// each tick. The group writes values straight into the actor and keeps Right
// and Bottom consistent with the rectangle.
//
// There is no global animation manager: callers own and update their groups.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Actor
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.target.syncEdges()
}

// Stop ends the group where it is. Later Updates are no-ops.
func (g *TweenGroup) Stop() {
	g.Done = true
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenPosition animates the actor's top-left corner to (toLeft, toTop).
func TweenPosition(a *Actor, toLeft, toTop float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: a}
	g.add(&a.Left, toLeft, duration, fn)
	g.add(&a.Top, toTop, duration, fn)
	return g
}

// TweenSize animates the actor's width and height, keeping its top-left
// corner fixed.
func TweenSize(a *Actor, toWidth, toHeight float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: a}
	g.add(&a.Width, toWidth, duration, fn)
	g.add(&a.Height, toHeight, duration, fn)
	return g
}

// TweenOffset animates the actor's draw offset, which moves it on screen
// without changing its rectangle.
func TweenOffset(a *Actor, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: a}
	g.add(&a.OffsetX, toX, duration, fn)
	g.add(&a.OffsetY, toY, duration, fn)
	return g
}

// TweenOpacity animates actor.Opacity. Fading below the engine epsilon
// culls the actor.
func TweenOpacity(a *Actor, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: a}
	g.add(&a.Opacity, to, duration, fn)
	return g
}

// TweenRotation animates actor.Rotation (radians).
func TweenRotation(a *Actor, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: a}
	g.add(&a.Rotation, to, duration, fn)
	return g
}

// TweenScale animates actor.Scale. An unset Scale starts from 1.
func TweenScale(a *Actor, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	if a.Scale == 0 {
		a.Scale = 1
	}
	g := &TweenGroup{target: a}
	g.add(&a.Scale, to, duration, fn)
	return g
}
