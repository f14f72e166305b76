package redraw

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/draw"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS overlays the actual FPS and TPS in the top-left corner.
	ShowFPS bool
	// Update is called once per tick with the tick length in seconds, before
	// the frame is drawn. Returning an error stops the loop.
	Update func(dt float32) error
	// Script, when set, is ticked before Update on every tick.
	Script *Script
}

// Run opens a window and drives e from ebiten's game loop: Update runs the
// caller's hook, Draw calls RedrawFrame and presents the foreground. It
// blocks until the window closes or an error occurs, and returns the first
// frame or update error.
//
// The foreground must be an *EbitenSurface or a *RasterSurface.
func Run(e *Engine, cfg RunConfig) error {
	if e == nil {
		return missing("Engine")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		b := e.Bounds()
		cfg.Width, cfg.Height = int(b.Width), int(b.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(newGame(e, cfg))
}

// game adapts an Engine to ebiten.Game.
type game struct {
	engine *Engine
	cfg    RunConfig
	err    error

	upload *ebiten.Image // RasterSurface frames are copied here
	fps    *fpsOverlay
}

func newGame(e *Engine, cfg RunConfig) *game {
	g := &game{engine: e, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g
}

func (g *game) Update() error {
	if g.err != nil {
		return g.err
	}
	dt := float32(1.0 / float64(ebiten.TPS()))
	if g.fps != nil {
		g.fps.update(dt)
	}
	if g.cfg.Script != nil {
		if err := g.cfg.Script.Tick(g.engine); err != nil {
			return err
		}
	}
	if g.cfg.Update != nil {
		return g.cfg.Update(dt)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.err != nil {
		return
	}
	if _, err := g.engine.RedrawFrame(); err != nil {
		g.err = err
		return
	}
	if err := g.present(screen); err != nil {
		g.err = err
		return
	}
	if g.fps != nil {
		screen.DrawImage(g.fps.img, nil)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// present copies the foreground to the screen.
func (g *game) present(screen *ebiten.Image) error {
	switch fg := g.engine.Foreground().(type) {
	case *EbitenSurface:
		screen.DrawImage(fg.Image(), nil)
	case *RasterSurface:
		img := fg.Image()
		b := img.Bounds()
		if g.upload == nil || g.upload.Bounds().Dx() != b.Dx() || g.upload.Bounds().Dy() != b.Dy() {
			if g.upload != nil {
				g.upload.Deallocate()
			}
			g.upload = ebiten.NewImage(b.Dx(), b.Dy())
		}
		if img.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
			img = tightRGBA(img)
		}
		g.upload.WritePixels(img.Pix)
		screen.DrawImage(g.upload, nil)
	default:
		return fmt.Errorf("redraw: run: cannot present %T", fg)
	}
	return nil
}

// tightRGBA copies img into a new image whose Pix holds exactly its pixels.
func tightRGBA(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// fpsOverlay renders FPS and TPS into a small image, refreshed about twice a
// second.
type fpsOverlay struct {
	img        *ebiten.Image
	lastUpdate float32
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsOverlay{img: ebiten.NewImage(100, 32), lastUpdate: 0.5}
}

func (f *fpsOverlay) update(dt float32) {
	f.lastUpdate += dt
	if f.lastUpdate < 0.5 {
		return
	}
	f.lastUpdate = 0

	f.img.Clear()
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}
