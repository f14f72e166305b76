package redraw

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"
)

// --- Test JSON fixtures ---

const singlePageJSON = `{
  "frames": {
    "hero.png": {
      "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 64, "h": 64},
      "sourceSize": {"w": 64, "h": 64}
    },
    "enemy.png": {
      "frame": {"x": 64, "y": 0, "w": 32, "h": 48},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 32, "h": 48},
      "sourceSize": {"w": 32, "h": 48}
    },
    "rotated.png": {
      "frame": {"x": 200, "y": 0, "w": 48, "h": 32},
      "rotated": true,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 48, "h": 32},
      "sourceSize": {"w": 32, "h": 48}
    }
  },
  "meta": {
    "image": "atlas.png",
    "size": {"w": 256, "h": 256}
  }
}`

const multiPageJSON = `{
  "textures": [
    {
      "image": "atlas-0.png",
      "frames": {
        "page0_sprite.png": {
          "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
          "rotated": false
        }
      }
    },
    {
      "image": "atlas-1.png",
      "frames": {
        "page1_sprite.png": {
          "frame": {"x": 10, "y": 20, "w": 50, "h": 50},
          "rotated": false
        }
      }
    }
  ]
}`

func page(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// tileAtlasJSON lays out each named region as a w x h tile in a row.
func tileAtlasJSON(tiles map[string][2]int) string {
	var b strings.Builder
	b.WriteString(`{"frames": {`)
	x, first := 0, true
	for name, size := range tiles {
		if !first {
			b.WriteString(",")
		}
		first = false
		fmt.Fprintf(&b, `%q: {"frame": {"x": %d, "y": 0, "w": %d, "h": %d}}`, name, x, size[0], size[1])
		x += size[0]
	}
	b.WriteString(`}}`)
	return b.String()
}

func loadTiles(t *testing.T, tiles map[string][2]int) *Atlas {
	t.Helper()
	a, err := LoadAtlas([]byte(tileAtlasJSON(tiles)), []image.Image{page(256, 64)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	return a
}

// --- LoadAtlas tests ---

func TestLoadAtlas_SinglePage_RegionCount(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), []image.Image{page(256, 256)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	names := atlas.Names()
	want := []string{"enemy.png", "hero.png", "rotated.png"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestLoadAtlas_RegionLookup(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), []image.Image{page(256, 256)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}

	r, ok := atlas.Region("enemy.png")
	if !ok {
		t.Fatal("enemy.png not found")
	}
	if r.X != 64 || r.Y != 0 || r.Width != 32 || r.Height != 48 {
		t.Errorf("enemy region = %+v, want 64,0 32x48", r)
	}
	if r.Page != 0 {
		t.Errorf("Page = %d, want 0", r.Page)
	}

	if _, ok := atlas.Region("missing.png"); ok {
		t.Error("missing.png found")
	}
}

func TestLoadAtlas_RotatedRegion(t *testing.T) {
	atlas, err := LoadAtlas([]byte(singlePageJSON), []image.Image{page(256, 256)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}

	r, _ := atlas.Region("rotated.png")
	if !r.Rotated {
		t.Error("rotated.png Rotated = false, want true")
	}
	// In atlas, rotated regions store w/h as the rotated dimensions
	if r.Width != 48 || r.Height != 32 {
		t.Errorf("rotated Width/Height = %d/%d, want 48/32", r.Width, r.Height)
	}

	img, err := atlas.Image("rotated.png")
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 48 {
		t.Errorf("upright size = %dx%d, want 32x48", b.Dx(), b.Dy())
	}
}

func TestAtlasImageUnrotatesPixels(t *testing.T) {
	p := page(4, 4)
	// Stored 2x3; the stored top-right pixel is the upright top-left.
	p.SetRGBA(1, 0, red)
	p.SetRGBA(0, 2, blue)
	atlas, err := LoadAtlas([]byte(`{"frames": {"r": {"frame": {"x": 0, "y": 0, "w": 2, "h": 3}, "rotated": true}}}`), []image.Image{p})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	img, err := atlas.Image("r")
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("upright size = %v, want 3x2", b)
	}
	if got := color.RGBAModel.Convert(img.At(0, 0)); got != red {
		t.Errorf("upright (0,0) = %v, want red", got)
	}
	if got := color.RGBAModel.Convert(img.At(2, 1)); got != blue {
		t.Errorf("upright (2,1) = %v, want blue", got)
	}
}

func TestAtlasImageIsSubImage(t *testing.T) {
	p := page(128, 64)
	p.SetRGBA(64, 0, green)
	atlas, err := LoadAtlas([]byte(singlePageJSON), []image.Image{p})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	img, err := atlas.Image("enemy.png")
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 32 || b.Dy() != 48 {
		t.Errorf("size = %dx%d, want 32x48", b.Dx(), b.Dy())
	}
	if got := color.RGBAModel.Convert(img.At(b.Min.X, b.Min.Y)); got != green {
		t.Errorf("first pixel = %v, want green", got)
	}

	again, _ := atlas.Image("enemy.png")
	if again != img {
		t.Error("Image result not memoized")
	}
}

func TestLoadAtlas_MultiPage(t *testing.T) {
	atlas, err := LoadAtlas([]byte(multiPageJSON), []image.Image{page(512, 512), page(512, 512)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	r0, _ := atlas.Region("page0_sprite.png")
	if r0.Page != 0 {
		t.Errorf("page0_sprite Page = %d, want 0", r0.Page)
	}
	r1, _ := atlas.Region("page1_sprite.png")
	if r1.Page != 1 {
		t.Errorf("page1_sprite Page = %d, want 1", r1.Page)
	}
	if r1.X != 10 || r1.Y != 20 {
		t.Errorf("page1_sprite X/Y = %d/%d, want 10/20", r1.X, r1.Y)
	}
}

func TestLoadAtlas_PageOutOfRange(t *testing.T) {
	_, err := LoadAtlas([]byte(multiPageJSON), []image.Image{page(512, 512)})
	if err == nil {
		t.Fatal("expected error for missing page")
	}
}

func TestLoadAtlas_InvalidJSON(t *testing.T) {
	_, err := LoadAtlas([]byte(`{bad json`), nil)
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadAtlas_NoFramesOrTextures(t *testing.T) {
	_, err := LoadAtlas([]byte(`{"meta": {}}`), nil)
	if err == nil {
		t.Error("expected error when neither frames nor textures present")
	}
	if err != nil && !strings.Contains(err.Error(), "neither") {
		t.Errorf("error = %q, want mention of 'neither'", err.Error())
	}
}

// --- Decode tests ---

func TestAtlasDecodeSingle(t *testing.T) {
	atlas := loadTiles(t, map[string][2]int{"floor": {8, 8}, "floor_top": {8, 2}})
	s, err := atlas.Decode("floor", nil)
	if err != nil {
		t.Fatal(err)
	}
	single, ok := s.(Single)
	if !ok {
		t.Fatalf("sprite = %T, want Single", s)
	}
	if b := single.Image.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("image = %v, want 8x8", b)
	}
}

func TestAtlasDecodeCorners(t *testing.T) {
	atlas := loadTiles(t, map[string][2]int{
		"panel_topleft":     {3, 2},
		"panel_top":         {4, 2},
		"panel_topright":    {5, 2},
		"panel_left":        {3, 4},
		"panel_middle":      {4, 4},
		"panel_right":       {5, 4},
		"panel_bottomleft":  {3, 6},
		"panel_bottom":      {4, 6},
		"panel_bottomright": {5, 6},
	})
	s, err := atlas.Decode("panel", nil)
	if err != nil {
		t.Fatal(err)
	}
	c, ok := s.(*Corners)
	if !ok {
		t.Fatalf("sprite = %T, want *Corners", s)
	}
	if c.TopHeight != 2 || c.BottomHeight != 6 || c.LeftWidth != 3 || c.RightWidth != 5 {
		t.Errorf("insets = top %v bottom %v left %v right %v, want 2 6 3 5",
			c.TopHeight, c.BottomHeight, c.LeftWidth, c.RightWidth)
	}
	for name, img := range map[string]image.Image{
		"TopLeft": c.TopLeft, "Top": c.Top, "TopRight": c.TopRight,
		"Left": c.Left, "Middle": c.Middle, "Right": c.Right,
		"BottomLeft": c.BottomLeft, "Bottom": c.Bottom, "BottomRight": c.BottomRight,
	} {
		if img == nil {
			t.Errorf("%s tile missing", name)
		}
	}
}

func TestAtlasDecodeEdgesMakeCorners(t *testing.T) {
	atlas := loadTiles(t, map[string][2]int{"box_top": {4, 2}, "box_left": {3, 4}})
	s, err := atlas.Decode("box", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*Corners); !ok {
		t.Errorf("sprite = %T, want *Corners", s)
	}
}

func TestAtlasDecodeVertical(t *testing.T) {
	atlas := loadTiles(t, map[string][2]int{
		"pillar_top":    {6, 2},
		"pillar_middle": {6, 1},
		"pillar_bottom": {6, 3},
	})
	s, err := atlas.Decode("pillar", nil)
	if err != nil {
		t.Fatal(err)
	}
	v, ok := s.(*Vertical)
	if !ok {
		t.Fatalf("sprite = %T, want *Vertical", s)
	}
	if v.TopHeight != 2 || v.BottomHeight != 3 || v.Middle == nil {
		t.Errorf("vertical = %+v, want top 2 bottom 3 with middle", v)
	}
}

func TestAtlasDecodeHorizontal(t *testing.T) {
	atlas := loadTiles(t, map[string][2]int{"bar_left": {2, 4}, "bar_right": {3, 4}})
	s, err := atlas.Decode("bar", nil)
	if err != nil {
		t.Fatal(err)
	}
	h, ok := s.(*Horizontal)
	if !ok {
		t.Fatalf("sprite = %T, want *Horizontal", s)
	}
	if h.LeftWidth != 2 || h.RightWidth != 3 || h.Middle != nil {
		t.Errorf("horizontal = %+v, want left 2 right 3 without middle", h)
	}
}

func TestAtlasDecodeMissing(t *testing.T) {
	atlas := loadTiles(t, map[string][2]int{"floor": {8, 8}})
	_, err := atlas.Decode("ghost", nil)
	if !errors.Is(err, ErrRegionNotFound) {
		t.Errorf("err = %v, want ErrRegionNotFound", err)
	}
	if _, err := atlas.Image("ghost"); !errors.Is(err, ErrRegionNotFound) {
		t.Errorf("Image err = %v, want ErrRegionNotFound", err)
	}
}

func TestAtlasDecodePageWithoutSubImage(t *testing.T) {
	atlas, err := LoadAtlas(
		[]byte(`{"frames": {"x_top": {"frame": {"x": 0, "y": 0, "w": 1, "h": 1}}}}`),
		[]image.Image{image.NewUniform(color.White)},
	)
	if err != nil {
		t.Fatal(err)
	}
	_, err = atlas.Decode("x", nil)
	if err == nil || errors.Is(err, ErrRegionNotFound) {
		t.Errorf("err = %v, want a page error", err)
	}
}

func TestAtlasWorksAsEngineCache(t *testing.T) {
	atlas := loadTiles(t, map[string][2]int{"bar_left": {2, 4}, "bar_right": {2, 4}, "bar_middle": {1, 4}})
	a := NewActor("bar", 0, 0, 10, 4)
	a.Class = "bar"

	fg := newRecorder(20, 20)
	e, err := New(Config{
		Bounds:     NewBoundingBox(20, 20),
		Background: newRecorder(20, 20),
		Foreground: fg,
		ResolveKey: ClassKey,
		Cache:      NewCache(atlas.Decode),
		Layers:     [][]*Actor{{a}},
	})
	if err != nil {
		t.Fatal(err)
	}
	mustRedraw(t, e)
	if n := len(fg.paints()); n != 3 {
		t.Errorf("paints = %d, want 3", n)
	}
}

// --- Benchmarks ---

func BenchmarkLoadAtlas_SinglePage(b *testing.B) {
	data := []byte(singlePageJSON)
	pages := []image.Image{page(256, 256)}
	b.ResetTimer()
	for b.Loop() {
		_, _ = LoadAtlas(data, pages)
	}
}

func BenchmarkAtlas_Decode_Hit(b *testing.B) {
	atlas, _ := LoadAtlas([]byte(singlePageJSON), []image.Image{page(256, 256)})
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_, _ = atlas.Decode("hero.png", nil)
	}
}
