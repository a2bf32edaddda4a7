package mapview

import (
	"image"
	"image/color"
	"math"

	"tacmap/areagrid"
)

// BuildTexture rasterizes a sparse tile map into an image one pixel per
// tile. The image spans the inclusive bounding box of the tiles and is
// flipped vertically so the largest Y lands on row 0. lo is the bounding box
// minimum and delta its extent (max - lo). ok is false for an empty map or a
// box too large to allocate, in which case nothing is allocated.
func BuildTexture(colors map[areagrid.Vec2i]color.RGBA) (img *image.RGBA, lo, delta areagrid.Vec2i, ok bool) {
	lo, hi, ok := areagrid.BoundsOf(colors)
	if !ok {
		return nil, lo, delta, false
	}
	width, height, ok := textureSize(lo, hi)
	if !ok {
		return nil, lo, delta, false
	}

	delta = hi.Sub(lo)
	img = image.NewRGBA(image.Rect(0, 0, width, height))
	for pos, c := range colors {
		p := flip(pos, lo, delta)
		img.SetRGBA(p.X, p.Y, c)
	}
	return img, lo, delta, true
}

// MaxTexturePixels caps the texture area. Sparse maps whose tiles lie far
// apart would otherwise need an image too large to allocate.
const MaxTexturePixels = math.MaxInt32 / 4

// textureSize returns the inclusive extent of lo..hi. ok is false when the
// extent overflows int or exceeds MaxTexturePixels.
func textureSize(lo, hi areagrid.Vec2i) (width, height int, ok bool) {
	w := int64(hi.X) - int64(lo.X) + 1
	h := int64(hi.Y) - int64(lo.Y) + 1
	// wraps when the extent spans the whole int64 range
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	if w > MaxTexturePixels || h > MaxTexturePixels || w*h > MaxTexturePixels {
		return 0, 0, false
	}
	return int(w), int(h), true
}

func flip(pos, lo, delta areagrid.Vec2i) image.Point {
	return image.Pt(pos.X-lo.X, delta.Y-(pos.Y-lo.Y))
}
