package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/phanxgames/redraw"
)

func fill(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func checker(w, h, cell int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return img
}

var (
	frameDark  = color.RGBA{R: 40, G: 60, B: 110, A: 255}
	frameLight = color.RGBA{R: 120, G: 160, B: 230, A: 255}
	panelFill  = color.RGBA{R: 20, G: 28, B: 48, A: 255}
	barCap     = color.RGBA{R: 230, G: 180, B: 60, A: 255}
	barFill    = color.RGBA{R: 200, G: 90, B: 40, A: 255}
	pillarCap  = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	pillarBody = color.RGBA{R: 90, G: 90, B: 100, A: 255}
	spinner    = color.RGBA{R: 90, G: 220, B: 120, A: 255}
	floorA     = color.RGBA{R: 50, G: 45, B: 40, A: 255}
	floorB     = color.RGBA{R: 70, G: 62, B: 55, A: 255}
)

// loadSprite builds the viewer's sprites procedurally, keyed by actor class.
func loadSprite(key string, _ *redraw.Actor) (redraw.Sprite, error) {
	switch key {
	case "panel":
		corner := fill(3, 3, frameLight)
		edge := fill(1, 1, frameDark)
		return &redraw.Corners{
			TopLeft:      corner,
			Top:          edge,
			TopRight:     corner,
			Left:         edge,
			Right:        edge,
			BottomLeft:   corner,
			Bottom:       edge,
			BottomRight:  corner,
			Middle:       fill(1, 1, panelFill),
			TopHeight:    3,
			BottomHeight: 3,
			LeftWidth:    3,
			RightWidth:   3,
		}, nil
	case "bar":
		return &redraw.Horizontal{
			Left:       fill(2, 2, barCap),
			Right:      fill(2, 2, barCap),
			Middle:     fill(1, 1, barFill),
			LeftWidth:  2,
			RightWidth: 2,
		}, nil
	case "pillar":
		return &redraw.Vertical{
			Top:          fill(2, 2, pillarCap),
			Bottom:       fill(2, 2, pillarCap),
			Middle:       checker(4, 4, 1, pillarBody, pillarCap),
			TopHeight:    2,
			BottomHeight: 2,
		}, nil
	case "spinner":
		return redraw.Single{Image: fill(8, 8, spinner)}, nil
	case "floor":
		return redraw.Single{Image: checker(4, 4, 2, floorA, floorB)}, nil
	}
	return nil, fmt.Errorf("no sprite for class %q", key)
}
