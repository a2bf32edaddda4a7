package mapview

import (
	"image"
	"image/color"
	"math"
	"testing"

	"tacmap/areagrid"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

func TestBuildTextureEmpty(t *testing.T) {
	if img, _, _, ok := BuildTexture(nil); ok || img != nil {
		t.Fatalf("empty map should not build a texture")
	}
}

func TestBuildTextureSinglePoint(t *testing.T) {
	img, _, _, ok := BuildTexture(map[areagrid.Vec2i]color.RGBA{{X: 7, Y: -3}: red})
	if !ok {
		t.Fatalf("expected texture")
	}
	if img.Bounds() != image.Rect(0, 0, 1, 1) {
		t.Fatalf("bounds %v, want 1x1", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got != red {
		t.Fatalf("pixel %+v, want %+v", got, red)
	}
}

func TestBuildTextureFlipsVertically(t *testing.T) {
	colors := map[areagrid.Vec2i]color.RGBA{
		{X: 10, Y: 20}: red,   // min corner
		{X: 12, Y: 25}: green, // max Y
		{X: 11, Y: 22}: blue,
	}
	img, lo, delta, ok := BuildTexture(colors)
	if !ok {
		t.Fatalf("expected texture")
	}
	if lo != (areagrid.Vec2i{X: 10, Y: 20}) || delta != (areagrid.Vec2i{X: 2, Y: 5}) {
		t.Fatalf("lo=%+v delta=%+v", lo, delta)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 6 {
		t.Fatalf("bounds %v, want 3x6", img.Bounds())
	}
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 5, red},   // lowest Y is the bottom row
		{2, 0, green}, // highest Y is row 0
		{1, 3, blue},
		{0, 0, color.RGBA{}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Fatalf("pixel %d,%d = %+v, want %+v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBuildTextureOversizedBox(t *testing.T) {
	tests := []struct {
		name   string
		colors map[areagrid.Vec2i]color.RGBA
	}{
		{"far apart", map[areagrid.Vec2i]color.RGBA{
			{X: 0, Y: 0}:                         red,
			{X: math.MaxInt32, Y: math.MaxInt32}: blue,
		}},
		{"wide strip", map[areagrid.Vec2i]color.RGBA{
			{X: 0, Y: 0}:                red,
			{X: MaxTexturePixels, Y: 0}: blue,
		}},
		{"area over the cap", map[areagrid.Vec2i]color.RGBA{
			{X: 0, Y: 0}:             red,
			{X: 1 << 15, Y: 1 << 15}: blue,
		}},
		{"whole int range", map[areagrid.Vec2i]color.RGBA{
			{X: math.MinInt, Y: 0}: red,
			{X: math.MaxInt, Y: 0}: blue,
		}},
	}
	for _, tt := range tests {
		img, _, _, ok := BuildTexture(tt.colors)
		if ok || img != nil {
			t.Fatalf("%s: oversized box built a texture", tt.name)
		}
	}

	// a long thin strip under the cap is still fine
	img, _, _, ok := BuildTexture(map[areagrid.Vec2i]color.RGBA{
		{X: -5000, Y: 0}: red,
		{X: 5000, Y: 0}:  blue,
	})
	if !ok || img.Bounds().Dx() != 10001 || img.Bounds().Dy() != 1 {
		t.Fatalf("strip under the cap rejected")
	}
}

func TestUpdateTextureOversizedKeepsTexture(t *testing.T) {
	c := New()
	g := areagrid.New()
	g.Set(areagrid.Vec2i{X: 0, Y: 0}, red)
	c.UpdateTexture(g)
	before := c.Texture()

	g.Set(areagrid.Vec2i{X: math.MaxInt32, Y: math.MaxInt32}, blue)
	c.UpdateTexture(g)
	if c.Texture() != before {
		t.Fatalf("oversized grid replaced the texture")
	}
}

func TestUpdateTextureEmptyKeepsTexture(t *testing.T) {
	c := New()
	g := areagrid.New()
	g.Set(areagrid.Vec2i{X: 0, Y: 0}, red)
	g.Set(areagrid.Vec2i{X: 3, Y: 2}, blue)
	c.UpdateTexture(g)
	before := c.Texture()
	if before == nil {
		t.Fatalf("expected texture after update")
	}

	c.UpdateTexture(areagrid.New())
	if c.Texture() != before {
		t.Fatalf("empty grid replaced the texture")
	}
	c.UpdateTexture(nil)
	if c.Texture() != before {
		t.Fatalf("nil grid replaced the texture")
	}
}

func TestUpdateTextureReplacesWholesale(t *testing.T) {
	c := New()
	ev := NewEventHandler()
	c.Events = ev

	g := areagrid.New()
	g.Set(areagrid.Vec2i{X: 0, Y: 0}, red)
	c.UpdateTexture(g)
	first := c.Texture()

	g.Set(areagrid.Vec2i{X: 4, Y: 1}, blue)
	c.UpdateTexture(g)
	if c.Texture() == first {
		t.Fatalf("texture not regenerated")
	}
	if c.Size() != image.Pt(5*TileScale, 2*TileScale) {
		t.Fatalf("size %v", c.Size())
	}
	if got := c.DrawPosition(areagrid.Vec2i{X: 4, Y: 1}); got != image.Pt(4, 0) {
		t.Fatalf("draw position %v", got)
	}
	if len(ev.Events) != 2 {
		t.Fatalf("expected two texture events, got %d", len(ev.Events))
	}
	if e := <-ev.Events; e.Type != EventTextureUpdated {
		t.Fatalf("unexpected event %v", e.Type)
	}
}

func TestUpdateBlips(t *testing.T) {
	c := New()
	blips := []Blip{{Indices: areagrid.Vec2i{X: 1, Y: 1}, Color: red, Undefibbable: true}}
	c.UpdateBlips(blips)
	if len(c.Blips()) != 1 || !c.Blips()[0].Undefibbable {
		t.Fatalf("blips not stored")
	}
	c.UpdateBlips(nil)
	if c.Blips() != nil {
		t.Fatalf("nil should clear blips")
	}
}
