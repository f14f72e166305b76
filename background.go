package redraw

import "fmt"

// SetBackground fills (0, 0, bounds.Width, bounds.Height) of the background
// surface with c, replacing whatever was there. The background persists
// across frames until the next call or ResetSurfaces.
func (e *Engine) SetBackground(c Color) {
	b := e.bounds.Bounds()
	e.background.FillRect(c, 0, 0, b.Width, b.Height)
}

// ResetSurfaces replaces both drawing surfaces. The new surfaces are owned by
// the engine from now on; the previous ones are released to the caller.
func (e *Engine) ResetSurfaces(background, foreground Surface) error {
	if background == nil {
		return missing("Background")
	}
	if foreground == nil {
		return missing("Foreground")
	}
	setSurfaceDebug(false, e.background, e.foreground)
	e.background = background
	e.foreground = foreground
	setSurfaceDebug(e.debug, background, foreground)
	bw, bh := background.Size()
	Logger().Info("redraw surfaces reset", "width", bw, "height", bh)
	return nil
}

// composeBackground starts a drawn frame: the foreground is cleared and the
// background copied onto it.
func (e *Engine) composeBackground() error {
	e.foreground.Clear()
	if err := e.foreground.DrawSurface(e.background); err != nil {
		return fmt.Errorf("redraw: compose background: %w", err)
	}
	return nil
}
