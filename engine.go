package redraw

import (
	"time"
)

// KeyFunc maps an actor to the key its sprite is cached under. It must be
// deterministic for a given actor state.
type KeyFunc func(a *Actor) (string, error)

// SpriteCache produces sprites for actors. Decode may populate its own
// storage lazily. It must return one of the Sprite variants.
type SpriteCache interface {
	Decode(key string, a *Actor) (Sprite, error)
}

// CacheFunc adapts a plain function to the SpriteCache interface.
type CacheFunc func(key string, a *Actor) (Sprite, error)

// Decode implements SpriteCache.
func (f CacheFunc) Decode(key string, a *Actor) (Sprite, error) {
	return f(key, a)
}

// Config holds the construction-time dependencies and options of an Engine.
// Bounds, Background, Foreground, ResolveKey and Cache are required; the
// remaining fields have usable zero values.
type Config struct {
	Bounds     BoundsSource
	Background Surface
	Foreground Surface
	ResolveKey KeyFunc
	Cache      SpriteCache

	// Layers are the initial actor groups, drawn in slice order.
	Layers [][]*Actor
	// BackgroundFill, when set, is applied with SetBackground at construction.
	BackgroundFill *Color
	// Epsilon is the minimum visible opacity. Zero means DefaultEpsilon.
	Epsilon float64
	// FramerateSkip draws one frame every n calls. Zero means 1.
	FramerateSkip int
	// Debug enables per-frame stats logging and transform balance checks.
	Debug bool
	// ScreenshotDir is where Screenshot writes PNG files. Empty means
	// "screenshots".
	ScreenshotDir string
}

// Engine composites ordered actor groups onto a foreground surface once per
// drawn frame. It is not safe for concurrent use; every call must come from
// the goroutine that runs the frame loop.
type Engine struct {
	bounds     BoundsSource
	background Surface
	foreground Surface
	resolveKey KeyFunc
	cache      SpriteCache
	layers     [][]*Actor
	epsilon    float64
	sched      scheduler

	debug bool
	stats FrameStats

	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir   string
	screenshotQueue []string
}

// New validates cfg and creates an Engine.
func New(cfg Config) (*Engine, error) {
	switch {
	case cfg.Bounds == nil:
		return nil, missing("Bounds")
	case cfg.Background == nil:
		return nil, missing("Background")
	case cfg.Foreground == nil:
		return nil, missing("Foreground")
	case cfg.ResolveKey == nil:
		return nil, missing("ResolveKey")
	case cfg.Cache == nil:
		return nil, missing("Cache")
	case cfg.Epsilon < 0:
		return nil, &ConfigError{Field: "Epsilon", Reason: "must not be negative"}
	case cfg.FramerateSkip < 0:
		return nil, &ConfigError{Field: "FramerateSkip", Reason: "must be >= 1"}
	}

	e := &Engine{
		bounds:        cfg.Bounds,
		background:    cfg.Background,
		foreground:    cfg.Foreground,
		resolveKey:    cfg.ResolveKey,
		cache:         cfg.Cache,
		layers:        cfg.Layers,
		epsilon:       orDefault(cfg.Epsilon, DefaultEpsilon),
		sched:         newScheduler(cfg.FramerateSkip),
		ScreenshotDir: cfg.ScreenshotDir,
	}
	if e.ScreenshotDir == "" {
		e.ScreenshotDir = "screenshots"
	}
	e.SetDebugMode(cfg.Debug)
	if cfg.BackgroundFill != nil {
		e.SetBackground(*cfg.BackgroundFill)
	}
	return e, nil
}

// RedrawFrame is called once per external tick. It counts the call and, when
// the frame is due, clears the foreground, composites the background onto it
// and draws every visible actor in group order. It reports whether a frame
// was drawn.
//
// A key or decode failure aborts the rest of the frame and is returned.
func (e *Engine) RedrawFrame() (bool, error) {
	if !e.sched.tick() {
		return false, nil
	}
	if err := e.composeBackground(); err != nil {
		return true, err
	}

	bounds := e.bounds.Bounds()
	st := FrameStats{Frame: e.sched.framesDrawn}
	depth := surfaceDepth(e.foreground)

	var err error
	if e.debug {
		err = e.drawLayersTimed(bounds, &st)
	} else {
		err = e.drawLayers(bounds, &st)
	}
	e.stats = st
	if err != nil {
		return true, err
	}

	if e.debug {
		debugCheckBalanced(e.foreground, depth)
		e.debugLog(st)
	}
	e.flushScreenshots()
	return true, nil
}

func (e *Engine) drawLayers(bounds BoundingBox, st *FrameStats) error {
	for _, group := range e.layers {
		for _, a := range group {
			if a == nil {
				continue
			}
			st.Considered++
			if culled(a, bounds, e.epsilon) {
				st.Culled++
				continue
			}
			n, err := e.drawActor(a)
			st.Tiles += n
			if err != nil {
				return err
			}
			st.Drawn++
		}
	}
	return nil
}

// drawLayersTimed is drawLayers with cull and draw timings.
func (e *Engine) drawLayersTimed(bounds BoundingBox, st *FrameStats) error {
	for _, group := range e.layers {
		for _, a := range group {
			if a == nil {
				continue
			}
			st.Considered++
			t0 := time.Now()
			skip := culled(a, bounds, e.epsilon)
			t1 := time.Now()
			st.CullTime += t1.Sub(t0)
			if skip {
				st.Culled++
				continue
			}
			n, err := e.drawActor(a)
			st.DrawTime += time.Since(t1)
			st.Tiles += n
			if err != nil {
				return err
			}
			st.Drawn++
		}
	}
	return nil
}

// SetFramerateSkip draws one frame every n calls to RedrawFrame. n must be
// at least 1. The frame counter is not reset.
func (e *Engine) SetFramerateSkip(n int) error {
	return e.sched.setSkip(n)
}

// SetLayers replaces the actor groups drawn from the next frame on.
func (e *Engine) SetLayers(layers ...[]*Actor) {
	e.layers = layers
}

// Layers returns the current actor groups. The returned slice MUST NOT be
// mutated.
func (e *Engine) Layers() [][]*Actor {
	return e.layers
}

// SetBounds replaces the culling frame source.
func (e *Engine) SetBounds(b BoundsSource) error {
	if b == nil {
		return missing("Bounds")
	}
	e.bounds = b
	return nil
}

// Bounds returns the current culling frame.
func (e *Engine) Bounds() BoundingBox {
	return e.bounds.Bounds()
}

// Foreground returns the surface frames are drawn to.
func (e *Engine) Foreground() Surface {
	return e.foreground
}

// Background returns the persistent background surface.
func (e *Engine) Background() Surface {
	return e.background
}

// FramesDrawn returns the number of RedrawFrame calls so far, drawn or not.
func (e *Engine) FramesDrawn() uint64 {
	return e.sched.framesDrawn
}

// Stats returns the counters of the most recent drawn frame.
func (e *Engine) Stats() FrameStats {
	return e.stats
}

// SetDebugMode enables or disables debug mode. When enabled, unbalanced
// Restore calls on this engine's surfaces panic, frames that leave the transform stack unbalanced
// panic, and per-frame stats are logged at debug level.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
	setSurfaceDebug(enabled, e.background, e.foreground)
}
