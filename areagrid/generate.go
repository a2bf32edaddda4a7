package areagrid

import (
	"image/color"
	"math/rand/v2"
)

var (
	wallColor  = color.RGBA{R: 0x3a, G: 0x3f, B: 0x47, A: 0xff}
	floorColor = color.RGBA{R: 0x6b, G: 0x71, B: 0x7a, A: 0xff}

	// areaColors mirrors the palette tactical maps use for named areas.
	areaColors = []color.RGBA{
		{R: 0x4a, G: 0x7a, B: 0x3c, A: 0xff}, // medical
		{R: 0x8a, G: 0x6d, B: 0x2e, A: 0xff}, // engineering
		{R: 0x2f, G: 0x5d, B: 0x8a, A: 0xff}, // command
		{R: 0x7a, G: 0x3a, B: 0x3a, A: 0xff}, // security
		{R: 0x5e, G: 0x4a, B: 0x7a, A: 0xff}, // research
		{R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff}, // hangar
	}
)

// Generate builds a deterministic w by h station layout: a walled hull,
// a floor, and a handful of colored rooms. The same seed always yields the
// same grid.
func Generate(seed uint64, w, h int) *Grid {
	g := New()
	if w <= 0 || h <= 0 {
		return g
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := floorColor
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				c = wallColor
			}
			g.Set(Vec2i{X: x, Y: y}, c)
		}
	}

	rooms := 3 + rng.IntN(4)
	for i := 0; i < rooms; i++ {
		rw := 3 + rng.IntN(max(1, w/4))
		rh := 3 + rng.IntN(max(1, h/4))
		if rw >= w-2 || rh >= h-2 {
			continue
		}
		rx := 1 + rng.IntN(w-rw-1)
		ry := 1 + rng.IntN(h-rh-1)
		area := areaColors[rng.IntN(len(areaColors))]
		for y := ry; y < ry+rh; y++ {
			for x := rx; x < rx+rw; x++ {
				c := area
				if x == rx || y == ry || x == rx+rw-1 || y == ry+rh-1 {
					c = wallColor
				}
				g.Set(Vec2i{X: x, Y: y}, c)
			}
		}
		// door on the bottom wall
		g.Set(Vec2i{X: rx + rw/2, Y: ry}, area)
	}

	// knock out a few hull corners so the outline is not a perfect box
	for i := 0; i < 4; i++ {
		cx := rng.IntN(max(1, w/6))
		cy := rng.IntN(max(1, h/6))
		if rng.IntN(2) == 0 {
			cx = w - 1 - cx
		}
		if rng.IntN(2) == 0 {
			cy = h - 1 - cy
		}
		g.Delete(Vec2i{X: cx, Y: cy})
	}
	return g
}

// Walkable reports whether a tile colored c can be stood on in a generated
// layout.
func Walkable(c color.RGBA) bool { return c != wallColor }
