// Package redraw is a frame compositor for 2D games. Once per tick it clears
// a foreground surface, copies a persistent background onto it and paints
// ordered groups of actors from pre-rendered sprites.
//
// # Quick start
//
// An [Engine] needs a culling frame, two surfaces, a key function and a
// sprite cache:
//
//	e, err := redraw.New(redraw.Config{
//		Bounds:     redraw.NewBoundingBox(640, 480),
//		Background: redraw.NewEbitenSurface(640, 480),
//		Foreground: redraw.NewEbitenSurface(640, 480),
//		ResolveKey: redraw.ClassKey,
//		Cache:      redraw.NewCache(loadSprite),
//		Layers:     [][]*redraw.Actor{floor, walls, players},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	redraw.Run(e, redraw.RunConfig{Title: "My Game", Width: 640, Height: 480})
//
// Without a window, call [Engine.RedrawFrame] from your own loop. It returns
// whether a frame was drawn; with [Engine.SetFramerateSkip] set to n only
// every n-th call draws.
//
// # Actors
//
// An [Actor] is a flat rectangle with visual attributes. The engine only
// reads actors: callers move them, resize them and toggle Hidden. Keep Right
// and Bottom consistent by using [Actor.SetPosition] and [Actor.SetSize], or
// the tween helpers in this package.
//
// Actors that are hidden, nearly transparent (below [DefaultEpsilon]),
// thinner than one pixel or entirely outside the bounds are culled before
// their key is resolved, so culling never touches the cache.
//
// # Sprites
//
// A [SpriteCache] maps an actor's key to a [Sprite], one of:
//
//   - [Single]: one image, drawn at native size times Scale, or repeated
//     across the actor when Repeat is set;
//   - [*Vertical]: top and bottom caps with a stretched middle;
//   - [*Horizontal]: left and right caps with a stretched middle;
//   - [*Corners]: a nine-slice with corners, repeated edges and a middle.
//
// [Cache] memoizes a loader function. [Atlas] decodes TexturePacker JSON and
// assembles multi-tile sprites from suffixed region names such as
// "panel_topleft" and "panel_middle".
//
// # Surfaces
//
// Two [Surface] backends are provided. [EbitenSurface] draws on the GPU
// through ebiten. [RasterSurface] draws into an *image.RGBA on the CPU and
// needs no window, which suits headless runs, scripted screenshot checks and
// the terminal presenter in the term sub-package.
//
// # Debugging
//
// [Engine.SetDebugMode] enables per-frame [FrameStats] logging through the
// logger set with [SetLogger] and panics on unbalanced Save and Restore
// calls. [Engine.Screenshot] queues a PNG capture of the next drawn frame,
// and [Script] replays JSON-described actor changes and screenshots.
package redraw
