package mapview

import (
	"image/color"

	"tacmap/rsi"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Draw renders the texture, blips and lines onto screen. Nothing is drawn
// until a texture exists.
func (c *Control) Draw(screen *ebiten.Image) {
	if c.texture == nil {
		return
	}
	if c.texImg == nil {
		c.texImg = newImageFromImage(c.texture)
	}

	origin := vecFromPoint(c.Position)
	scale := float64(TileScale * uiScale)
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest, DisableMipmaps: true}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(origin.X), float64(origin.Y))
	screen.DrawImage(c.texImg, op)

	c.drawBlips(screen, origin)
	c.drawLines(screen, origin)
}

func (c *Control) icon(state string) *ebiten.Image {
	if c.Icons == nil {
		return nil
	}
	return c.Icons.Frame0(rsi.Specifier{Path: c.Sheet, State: state})
}

func (c *Control) drawBlips(screen *ebiten.Image, origin Vec2) {
	if len(c.blips) == 0 {
		return
	}
	background := c.icon(backgroundState)
	undefibbable := c.icon(undefibbableState)
	size := BlipSize * uiScale

	for _, blip := range c.blips {
		p := vecMul(vecFromPoint(c.DrawPosition(blip.Indices)), TileScale*uiScale)
		p = vecAdd(origin, p)

		if background != nil {
			drawIcon(screen, background, p, size, blip.Color)
		} else {
			vector.FillRect(screen, p.X, p.Y, size, size, blip.Color, false)
		}
		if c.Icons != nil && blip.Image != (rsi.Specifier{}) {
			if img := c.Icons.Frame0(blip.Image); img != nil {
				drawIcon(screen, img, p, size, color.White)
			}
		}
		if blip.Undefibbable && undefibbable != nil {
			drawIcon(screen, undefibbable, p, size, color.White)
		}
	}
}

// drawIcon stretches img over the size by size square at p, tinted by tint.
func drawIcon(dst, img *ebiten.Image, p Vec2, size float32, tint color.Color) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
	op.GeoM.Scale(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	op.GeoM.Translate(float64(p.X), float64(p.Y))
	op.ColorScale.ScaleWithColor(tint)
	dst.DrawImage(img, op)
}

func (c *Control) drawLines(screen *ebiten.Image, origin Vec2) {
	if len(c.Lines) == 0 {
		return
	}
	src := solidSource()
	vs := make([]ebiten.Vertex, 6)
	is := []uint16{0, 1, 2, 3, 4, 5}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}

	for _, line := range c.Lines {
		start := vecAdd(origin, vecScaleMul(vecFromPoint(line.Start)))
		end := vecAdd(origin, vecScaleMul(vecFromPoint(line.End)))
		corners, ok := LineTriangles(start, end, LineWidth*uiScale)
		if !ok {
			continue
		}
		r := float32(line.Color.R) / 0xff
		g := float32(line.Color.G) / 0xff
		b := float32(line.Color.B) / 0xff
		a := float32(line.Color.A) / 0xff
		for i, pt := range corners {
			vs[i] = ebiten.Vertex{
				DstX: pt.X, DstY: pt.Y,
				SrcX: 1.5, SrcY: 1.5,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			}
		}
		screen.DrawTriangles(vs, is, src, op)
	}
}
