package redraw

import (
	"image"
	"image/color"
	"testing"
)

// recordedOp is one call made on a recorder.
type recordedOp struct {
	kind       string // save, restore, translate, rotate, clear, fillRect, drawImage, pattern, drawSurface
	x, y, w, h float64
	pw, ph     float64 // pattern size
	theta      float64
	alpha      float64 // global alpha at paint time
	matrix     Matrix  // matrix at paint time
	img        image.Image
	color      Color
}

// recorder is a Surface that records every call.
type recorder struct {
	transformStack
	w, h int
	ops  []recordedOp
}

func newRecorder(w, h int) *recorder {
	return &recorder{transformStack: newTransformStack(), w: w, h: h}
}

func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) Save() {
	r.ops = append(r.ops, recordedOp{kind: "save"})
	r.transformStack.Save()
}

func (r *recorder) Restore() {
	r.ops = append(r.ops, recordedOp{kind: "restore"})
	r.transformStack.Restore()
}

func (r *recorder) Translate(x, y float64) {
	r.ops = append(r.ops, recordedOp{kind: "translate", x: x, y: y})
	r.transformStack.Translate(x, y)
}

func (r *recorder) Rotate(theta float64) {
	r.ops = append(r.ops, recordedOp{kind: "rotate", theta: theta})
	r.transformStack.Rotate(theta)
}

func (r *recorder) Clear() {
	r.ops = append(r.ops, recordedOp{kind: "clear"})
}

func (r *recorder) FillRect(c Color, x, y, w, h float64) {
	r.ops = append(r.ops, recordedOp{kind: "fillRect", x: x, y: y, w: w, h: h, color: c, matrix: r.matrix})
}

func (r *recorder) DrawImage(img image.Image, x, y, w, h float64) {
	r.ops = append(r.ops, recordedOp{kind: "drawImage", x: x, y: y, w: w, h: h, img: img, alpha: r.alpha, matrix: r.matrix})
}

func (r *recorder) FillPattern(p Pattern, x, y, w, h float64) {
	r.ops = append(r.ops, recordedOp{
		kind: "pattern", x: x, y: y, w: w, h: h,
		pw: p.Width, ph: p.Height, img: p.Image, alpha: r.alpha, matrix: r.matrix,
	})
}

func (r *recorder) DrawSurface(Surface) error {
	r.ops = append(r.ops, recordedOp{kind: "drawSurface"})
	return nil
}

// paints returns the drawImage and pattern ops.
func (r *recorder) paints() []recordedOp {
	var out []recordedOp
	for _, op := range r.ops {
		if op.kind == "drawImage" || op.kind == "pattern" {
			out = append(out, op)
		}
	}
	return out
}

// kinds returns the op kinds in order.
func (r *recorder) kinds() []string {
	out := make([]string, len(r.ops))
	for i, op := range r.ops {
		out[i] = op.kind
	}
	return out
}

func (r *recorder) reset() {
	r.ops = r.ops[:0]
}

// --- Test fixtures ---

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

// fixedCache returns s for every key.
func fixedCache(s Sprite) CacheFunc {
	return func(string, *Actor) (Sprite, error) { return s, nil }
}

func nameKey(a *Actor) (string, error) { return a.Name, nil }

// newRecordingEngine builds an engine over 100x100 recording surfaces.
func newRecordingEngine(t *testing.T, cache SpriteCache, layers ...[]*Actor) (*Engine, *recorder) {
	t.Helper()
	fg := newRecorder(100, 100)
	e, err := New(Config{
		Bounds:     NewBoundingBox(100, 100),
		Background: newRecorder(100, 100),
		Foreground: fg,
		ResolveKey: nameKey,
		Cache:      cache,
		Layers:     layers,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, fg
}

func mustRedraw(t *testing.T, e *Engine) {
	t.Helper()
	drawn, err := e.RedrawFrame()
	if err != nil {
		t.Fatalf("RedrawFrame: %v", err)
	}
	if !drawn {
		t.Fatal("RedrawFrame did not draw")
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d > -1e-9 && d < 1e-9
}

func matrixApprox(a, b Matrix) bool {
	for i := range a {
		if !approx(a[i], b[i]) {
			return false
		}
	}
	return true
}
