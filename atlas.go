package redraw

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"maps"
	"slices"
)

// Region describes a sub-rectangle within an atlas page.
type Region struct {
	Page          int // atlas page index
	X, Y          int // top-left corner within the page
	Width, Height int // size as stored in the page
	Rotated       bool
}

// Atlas holds one or more atlas page images and a map of named regions. It
// implements SpriteCache: a key resolves to its own region as a Single, or to
// a multi-tile sprite assembled from suffixed regions (see Decode).
type Atlas struct {
	// Pages contains the atlas page images indexed by page number. Pages may
	// be any image with a SubImage method, such as *image.RGBA or
	// *ebiten.Image. Rotated regions need CPU-readable pages.
	Pages   []image.Image
	regions map[string]Region
	images  map[string]image.Image
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// LoadAtlas parses TexturePacker JSON data and associates the given page images.
// Supports both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []image.Image) (*Atlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("redraw: parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]Region),
		images:  make(map[string]image.Image),
	}

	switch {
	case probe.Textures != nil:
		if err := parseArrayFormat(probe.Textures, atlas); err != nil {
			return nil, err
		}
	case probe.Frames != nil:
		if err := parseHashFrames(probe.Frames, 0, atlas); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("redraw: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	for name, r := range atlas.regions {
		if r.Page >= len(pages) {
			return nil, fmt.Errorf("redraw: atlas region %q references page %d, have %d pages", name, r.Page, len(pages))
		}
	}
	return atlas, nil
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, page int, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("redraw: parse atlas frames: %w", err)
	}
	for name, f := range frames {
		atlas.regions[name] = frameToRegion(f, page)
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func parseArrayFormat(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("redraw: parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		for name, f := range tex.Frames {
			atlas.regions[name] = frameToRegion(f, i)
		}
	}
	return nil
}

func frameToRegion(f jsonFrame, page int) Region {
	return Region{
		Page:    page,
		X:       f.Frame.X,
		Y:       f.Frame.Y,
		Width:   f.Frame.W,
		Height:  f.Frame.H,
		Rotated: f.Rotated,
	}
}

// Region returns the named region.
func (a *Atlas) Region(name string) (Region, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Names returns every region name in sorted order.
func (a *Atlas) Names() []string {
	return slices.Sorted(maps.Keys(a.regions))
}

// Image returns the named region as an image, upright. Results are memoized.
func (a *Atlas) Image(name string) (image.Image, error) {
	if img, ok := a.images[name]; ok {
		return img, nil
	}
	r, ok := a.regions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRegionNotFound, name)
	}
	page, ok := a.Pages[r.Page].(subImager)
	if !ok {
		return nil, fmt.Errorf("redraw: atlas page %d (%T) has no SubImage method", r.Page, a.Pages[r.Page])
	}
	img := page.SubImage(image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height))
	if r.Rotated {
		img = unrotate(img)
	}
	a.images[name] = img
	return img, nil
}

// unrotate turns a region stored 90 degrees clockwise back upright.
func unrotate(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// Stored pixel (x, y) maps to upright (y', x') with y' counted
			// from the right edge of the stored region.
			dst.Set(y-b.Min.Y, b.Max.X-1-x, src.At(x, y))
		}
	}
	return dst
}

// Tile region suffixes used by Decode.
const (
	SuffixTop         = "_top"
	SuffixBottom      = "_bottom"
	SuffixLeft        = "_left"
	SuffixRight       = "_right"
	SuffixTopLeft     = "_topleft"
	SuffixTopRight    = "_topright"
	SuffixBottomLeft  = "_bottomleft"
	SuffixBottomRight = "_bottomright"
	SuffixMiddle      = "_middle"
)

// Decode implements SpriteCache. A region named key becomes a Single. Otherwise
// the sprite is assembled from regions named key plus a tile suffix:
//   - any corner region makes a *Corners;
//   - top or bottom regions (and no left/right) make a *Vertical;
//   - left or right regions make a *Horizontal.
//
// Insets are taken from the tile region sizes. With no matching region the
// error wraps ErrRegionNotFound.
func (a *Atlas) Decode(key string, _ *Actor) (Sprite, error) {
	if _, ok := a.regions[key]; ok {
		img, err := a.Image(key)
		if err != nil {
			return nil, err
		}
		return Single{Image: img}, nil
	}

	var tileErr error
	tile := func(suffix string) image.Image {
		img, err := a.Image(key + suffix)
		if err != nil {
			if !errors.Is(err, ErrRegionNotFound) && tileErr == nil {
				tileErr = err
			}
			return nil
		}
		return img
	}
	top, bottom := tile(SuffixTop), tile(SuffixBottom)
	left, right := tile(SuffixLeft), tile(SuffixRight)
	tl, tr := tile(SuffixTopLeft), tile(SuffixTopRight)
	bl, br := tile(SuffixBottomLeft), tile(SuffixBottomRight)
	middle := tile(SuffixMiddle)
	if tileErr != nil {
		return nil, tileErr
	}

	switch {
	case tl != nil || tr != nil || bl != nil || br != nil || (hasAny(top, bottom) && hasAny(left, right)):
		return &Corners{
			TopLeft:      tl,
			Top:          top,
			TopRight:     tr,
			Left:         left,
			Right:        right,
			BottomLeft:   bl,
			Bottom:       bottom,
			BottomRight:  br,
			Middle:       middle,
			TopHeight:    firstHeight(tl, top, tr),
			BottomHeight: firstHeight(bl, bottom, br),
			LeftWidth:    firstWidth(tl, left, bl),
			RightWidth:   firstWidth(tr, right, br),
		}, nil
	case hasAny(top, bottom):
		return &Vertical{
			Top:          top,
			Bottom:       bottom,
			Middle:       middle,
			TopHeight:    firstHeight(top),
			BottomHeight: firstHeight(bottom),
		}, nil
	case hasAny(left, right):
		return &Horizontal{
			Left:       left,
			Right:      right,
			Middle:     middle,
			LeftWidth:  firstWidth(left),
			RightWidth: firstWidth(right),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrRegionNotFound, key)
}

func hasAny(imgs ...image.Image) bool {
	for _, img := range imgs {
		if img != nil {
			return true
		}
	}
	return false
}

// firstWidth returns the width of the first non-nil image, or 0.
func firstWidth(imgs ...image.Image) float64 {
	for _, img := range imgs {
		if img != nil {
			return float64(img.Bounds().Dx())
		}
	}
	return 0
}

// firstHeight returns the height of the first non-nil image, or 0.
func firstHeight(imgs ...image.Image) float64 {
	for _, img := range imgs {
		if img != nil {
			return float64(img.Bounds().Dy())
		}
	}
	return 0
}
