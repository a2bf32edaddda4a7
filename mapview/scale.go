package mapview

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	uiScale float32 = 1.0

	potatoMode    bool
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// SetUIScale sets the logical to physical pixel multiplier. Non-positive
// values are ignored.
func SetUIScale(scale float32) {
	if scale <= 0 {
		return
	}
	uiScale = scale
}

func UIScale() float32 { return uiScale }

// SetPotatoMode toggles creation of unmanaged ebiten images.
func SetPotatoMode(v bool) {
	if potatoMode == v {
		return
	}
	potatoMode = v
	whiteImage = nil
	whiteSubImage = nil
}

func newImageFromImage(src image.Image) *ebiten.Image {
	if potatoMode {
		return ebiten.NewImageFromImageWithOptions(src, &ebiten.NewImageFromImageOptions{Unmanaged: true})
	}
	return ebiten.NewImageFromImage(src)
}

// solidSource returns a 1x1 white image used as the source of filled
// triangles. It is created on first draw so the package can be imported by
// hosts that never start an ebiten game.
func solidSource() *ebiten.Image {
	if whiteSubImage == nil {
		if potatoMode {
			whiteImage = ebiten.NewImageWithOptions(image.Rect(0, 0, 3, 3), &ebiten.NewImageOptions{Unmanaged: true})
		} else {
			whiteImage = ebiten.NewImage(3, 3)
		}
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}
