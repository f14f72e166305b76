package redraw

import (
	"fmt"
	"log/slog"
	"time"
)

// FrameStats holds per-frame counters for the most recent drawn frame.
// Timings are only measured in debug mode.
type FrameStats struct {
	Frame      uint64 // value of FramesDrawn when the frame was drawn
	Considered int    // actors visited
	Culled     int    // actors rejected before key resolution
	Drawn      int    // actors composited
	Tiles      int    // surface paint calls issued for actors
	CullTime   time.Duration
	DrawTime   time.Duration
}

// setSurfaceDebug passes the engine's debug flag to surfaces built on
// transformStack. Other Surface implementations are left alone.
func setSurfaceDebug(enabled bool, surfaces ...Surface) {
	for _, s := range surfaces {
		if d, ok := s.(interface{ setDebug(bool) }); ok {
			d.setDebug(enabled)
		}
	}
}

// debugLog reports frame stats at debug level.
func (e *Engine) debugLog(st FrameStats) {
	if !e.debug {
		return
	}
	Logger().Debug("redraw frame",
		slog.Uint64("frame", st.Frame),
		slog.Int("considered", st.Considered),
		slog.Int("culled", st.Culled),
		slog.Int("drawn", st.Drawn),
		slog.Int("tiles", st.Tiles),
		slog.Duration("cull", st.CullTime),
		slog.Duration("draw", st.DrawTime),
	)
}

// debugCheckBalanced panics when a frame leaves unmatched Save calls on the
// foreground. Only called in debug mode.
func debugCheckBalanced(s Surface, depthBefore int) {
	d, ok := s.(interface{ depth() int })
	if !ok {
		return
	}
	if got := d.depth(); got != depthBefore {
		panic(fmt.Sprintf("redraw debug: transform stack depth %d after frame, want %d", got, depthBefore))
	}
}

// surfaceDepth returns the save depth of s, or 0 for surfaces that do not
// expose it.
func surfaceDepth(s Surface) int {
	if d, ok := s.(interface{ depth() int }); ok {
		return d.depth()
	}
	return 0
}
