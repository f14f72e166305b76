// Command redraw-term renders a small redraw scene in the terminal. Each
// character cell shows two pixels using half blocks, so it needs a terminal
// with true-color support.
//
// Keys: q or Esc quits, s queues a screenshot, space pauses, + and - change
// the frame skip.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/redraw"
	"github.com/phanxgames/redraw/term"
	"github.com/tanema/gween/ease"
)

const tickInterval = 33 * time.Millisecond // ~30 FPS

type viewer struct {
	screen    tcell.Screen
	engine    *redraw.Engine
	viewport  *redraw.Viewport
	presenter term.Presenter
	script    *redraw.Script
	chime     chime

	cols, rows int
	paused     bool
	skip       int

	spin   *redraw.Actor
	bar    *redraw.Actor
	tweens []*redraw.TweenGroup
}

type options struct {
	scriptPath string
	skip       int
	sound      bool
	logPath    string
	shots      string
}

func main() {
	var opts options
	flag.StringVar(&opts.scriptPath, "script", "", "JSON script to run against the scene")
	flag.IntVar(&opts.skip, "skip", 1, "draw one frame every n ticks")
	flag.BoolVar(&opts.sound, "sound", false, "play a tone on screenshots and errors")
	flag.StringVar(&opts.logPath, "log", "", "write debug logs to this file")
	flag.StringVar(&opts.shots, "screenshots", "screenshots", "screenshot directory")
	flag.Parse()

	if err := runTerm(opts); err != nil {
		fmt.Fprintf(os.Stderr, "redraw-term: %v\n", err)
		os.Exit(1)
	}
}

// runTerm owns every resource of the session; main only reports its error.
func runTerm(opts options) error {
	if opts.logPath != "" {
		f, err := os.Create(opts.logPath)
		if err != nil {
			return err
		}
		defer f.Close()
		redraw.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer redraw.SetLogger(nil)
	}

	v, err := newViewer(opts.skip, opts.logPath != "", opts.shots)
	if err != nil {
		return err
	}
	defer v.close()

	if opts.sound {
		if err := v.chime.init(); err != nil {
			redraw.Logger().Warn("audio unavailable", "err", err)
		}
	}
	if opts.scriptPath != "" {
		data, err := os.ReadFile(opts.scriptPath)
		if err != nil {
			return err
		}
		if v.script, err = redraw.LoadScript(data); err != nil {
			return err
		}
	}
	return v.run()
}

func newViewer(skip int, debug bool, shotDir string) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	v := &viewer{screen: screen, skip: skip}
	v.cols, v.rows = screen.Size()
	pw, ph := term.PixelSize(v.cols, v.rows)
	v.viewport = redraw.NewViewport(float64(pw), float64(ph))

	bg := redraw.Color{R: 0.05, G: 0.05, B: 0.08, A: 1}
	v.engine, err = redraw.New(redraw.Config{
		Bounds:         v.viewport,
		Background:     redraw.NewRasterSurface(pw, ph),
		Foreground:     redraw.NewRasterSurface(pw, ph),
		ResolveKey:     redraw.ClassKey,
		Cache:          redraw.NewCache(loadSprite),
		BackgroundFill: &bg,
		FramerateSkip:  skip,
		Debug:          debug,
		ScreenshotDir:  shotDir,
	})
	if err != nil {
		screen.Fini()
		return nil, err
	}
	v.buildScene(float64(pw), float64(ph))
	return v, nil
}

// buildScene lays out the demo actors for a pw x ph pixel surface.
func (v *viewer) buildScene(pw, ph float64) {
	floor := actor("floor", "floor", 0, ph*0.75, pw, ph*0.25)
	floor.Repeat = true
	floor.SpriteWidth, floor.SpriteHeight = 4, 4

	panel := actor("panel", "panel", 2, 2, math.Max(12, pw*0.4), math.Max(10, ph*0.4))
	pillar := actor("pillar", "pillar", pw*0.75, ph*0.2, 6, ph*0.55)

	v.bar = actor("bar", "bar", 6, panel.Bottom-8, 8, 4)
	v.spin = actor("spinner", "spinner", pw*0.55, ph*0.3, 8, 8)

	v.engine.SetLayers(
		[]*redraw.Actor{floor},
		[]*redraw.Actor{panel, pillar},
		[]*redraw.Actor{v.bar, v.spin},
	)
	v.tweens = []*redraw.TweenGroup{
		redraw.TweenSize(v.bar, math.Max(8, panel.Width-8), 4, 3, ease.InOutQuad),
		redraw.TweenRotation(v.spin, 2*math.Pi, 4, ease.Linear),
	}
}

func actor(name, class string, left, top, w, h float64) *redraw.Actor {
	a := redraw.NewActor(name, left, top, w, h)
	a.Class = class
	return a
}

func (v *viewer) run() error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	dt := float32(tickInterval.Seconds())
	for {
		select {
		case ev := <-events:
			if !v.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if v.paused {
				continue
			}
			if err := v.tick(dt); err != nil {
				v.chime.play(220, 200*time.Millisecond)
				return err
			}
		}
	}
}

func (v *viewer) tick(dt float32) error {
	for i, g := range v.tweens {
		g.Update(dt)
		if g.Done {
			v.tweens[i] = v.restart(g)
		}
	}
	if v.script != nil && !v.script.Done() {
		if err := v.script.Tick(v.engine); err != nil {
			return err
		}
	}
	drawn, err := v.engine.RedrawFrame()
	if err != nil {
		return err
	}
	if !drawn {
		return nil
	}
	fg := v.engine.Foreground().(*redraw.RasterSurface)
	v.presenter.Present(v.screen, fg.Image(), v.cols, v.rows)
	v.screen.Show()
	return nil
}

// restart loops the demo tweens.
func (v *viewer) restart(g *redraw.TweenGroup) *redraw.TweenGroup {
	switch {
	case g == v.tweens[0]:
		to := 8.0
		if v.bar.Width <= 8 {
			to = v.viewport.Width*0.4 - 8
		}
		return redraw.TweenSize(v.bar, math.Max(8, to), 4, 3, ease.InOutQuad)
	default:
		v.spin.Rotation = 0
		return redraw.TweenRotation(v.spin, 2*math.Pi, 4, ease.Linear)
	}
}

func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			return false
		case ev.Rune() == 's':
			v.engine.Screenshot("term")
			v.chime.play(880, 50*time.Millisecond)
		case ev.Rune() == ' ':
			v.paused = !v.paused
		case ev.Rune() == '+':
			v.setSkip(v.skip + 1)
		case ev.Rune() == '-':
			v.setSkip(v.skip - 1)
		}
	case *tcell.EventResize:
		v.resize()
	}
	return true
}

func (v *viewer) setSkip(n int) {
	if err := v.engine.SetFramerateSkip(n); err != nil {
		redraw.Logger().Debug("frame skip rejected", "n", n, "err", err)
		return
	}
	v.skip = n
}

// resize swaps in surfaces matching the new terminal size.
func (v *viewer) resize() {
	v.screen.Sync()
	v.cols, v.rows = v.screen.Size()
	pw, ph := term.PixelSize(v.cols, v.rows)
	v.viewport.Resize(float64(pw), float64(ph))
	if err := v.engine.ResetSurfaces(redraw.NewRasterSurface(pw, ph), redraw.NewRasterSurface(pw, ph)); err != nil {
		redraw.Logger().Warn("resize", "err", err)
		return
	}
	v.engine.SetBackground(redraw.Color{R: 0.05, G: 0.05, B: 0.08, A: 1})
	v.presenter.Reset()
	v.buildScene(float64(pw), float64(ph))
}

func (v *viewer) close() {
	v.chime.close()
	v.screen.Fini()
}
