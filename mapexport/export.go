// Package mapexport renders a tactical map snapshot to a plain image without
// a GPU, for screenshots and headless export.
package mapexport

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"tacmap/mapview"
	"tacmap/rsi"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
)

var ErrNoTexture = errors.New("mapexport: map has no texture")

// IconImages resolves blip icons. *rsi.Cache satisfies it.
type IconImages interface {
	Image(spec rsi.Specifier) (image.Image, error)
}

// Options controls the output size and icons.
type Options struct {
	// Scale multiplies the logical size; values below 1 mean 1.
	Scale int
	// Icons draws blip sprites when set; otherwise blips are filled squares.
	Icons IconImages
	// Sheet names the RSI holding the background and undefibbable states.
	Sheet string
}

// Render draws ctl's texture, blips and lines the way the widget does at
// the given scale and returns the result.
func Render(ctl *mapview.Control, opt Options) (*image.RGBA, error) {
	tex := ctl.Texture()
	if tex == nil {
		return nil, ErrNoTexture
	}
	scale := opt.Scale
	if scale < 1 {
		scale = 1
	}
	if opt.Sheet == "" {
		opt.Sheet = ctl.Sheet
	}

	base := scaleNearest(tex, mapview.TileScale*scale)
	dc := gg.NewContextForImage(base)
	defer dc.Close()

	size := mapview.BlipSize * scale
	for _, blip := range ctl.Blips() {
		p := ctl.DrawPosition(blip.Indices).Mul(mapview.TileScale * scale)
		if err := drawBlip(dc, opt, blip, p, size); err != nil {
			return nil, err
		}
	}

	dc.SetLineWidth(float64(mapview.LineWidth * scale))
	for _, l := range ctl.Lines {
		if l.Start == l.End {
			continue
		}
		dc.SetColor(l.Color)
		dc.DrawLine(float64(l.Start.X*scale), float64(l.Start.Y*scale),
			float64(l.End.X*scale), float64(l.End.Y*scale))
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("stroke line: %w", err)
		}
	}

	out, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("mapexport: unexpected image type %T", dc.Image())
	}
	return out, nil
}

func drawBlip(dc *gg.Context, opt Options, blip mapview.Blip, p image.Point, size int) error {
	icon := func(spec rsi.Specifier) image.Image {
		if opt.Icons == nil || spec == (rsi.Specifier{}) {
			return nil
		}
		img, err := opt.Icons.Image(spec)
		if err != nil {
			return nil
		}
		return img
	}

	if bg := icon(rsi.Specifier{Path: opt.Sheet, State: "background"}); bg != nil {
		dc.DrawImage(gg.ImageBufFromImage(tinted(fit(bg, size), blip.Color)), float64(p.X), float64(p.Y))
	} else {
		dc.SetColor(blip.Color)
		dc.DrawRectangle(float64(p.X), float64(p.Y), float64(size), float64(size))
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("fill blip: %w", err)
		}
	}
	if img := icon(blip.Image); img != nil {
		dc.DrawImage(gg.ImageBufFromImage(fit(img, size)), float64(p.X), float64(p.Y))
	}
	if blip.Undefibbable {
		if img := icon(rsi.Specifier{Path: opt.Sheet, State: "undefibbable"}); img != nil {
			dc.DrawImage(gg.ImageBufFromImage(fit(img, size)), float64(p.X), float64(p.Y))
		}
	}
	return nil
}

// Encode renders ctl and writes it to w as PNG.
func Encode(w io.Writer, ctl *mapview.Control, opt Options) error {
	img, err := Render(ctl, opt)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	defer dc.Close()
	return dc.EncodePNG(w)
}

// SavePNG renders ctl to the PNG file at path.
func SavePNG(path string, ctl *mapview.Control, opt Options) error {
	img, err := Render(ctl, opt)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// scaleNearest enlarges src by an integer factor without filtering.
func scaleNearest(src image.Image, factor int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// fit stretches src over a size by size square without filtering.
func fit(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	if b := src.Bounds(); !b.Empty() {
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	}
	return dst
}

// tinted multiplies every pixel of img by c in place.
func tinted(img *image.RGBA, c color.RGBA) *image.RGBA {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(uint16(img.Pix[i]) * uint16(c.R) / 0xff)
		img.Pix[i+1] = uint8(uint16(img.Pix[i+1]) * uint16(c.G) / 0xff)
		img.Pix[i+2] = uint8(uint16(img.Pix[i+2]) * uint16(c.B) / 0xff)
		img.Pix[i+3] = uint8(uint16(img.Pix[i+3]) * uint16(c.A) / 0xff)
	}
	return img
}
