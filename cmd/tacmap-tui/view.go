package main

import (
	"fmt"
	"image"
	"image/color"

	"tacmap/mapview"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"
)

// mapTop is the first terminal row used by the map; row 0 is the status bar.
const mapTop = 1

var blipGlyphs = map[string]rune{
	"leader": '★',
	"marine": '●',
	"medic":  '+',
	"xeno":   'x',
	"queen":  'Q',
}

// cellToLogical maps a terminal cell to the center of the map area it
// shows. Each cell is one tile wide and two tiles tall.
func cellToLogical(cx, cy int) image.Point {
	return image.Pt(
		cx*mapview.TileScale+mapview.TileScale/2,
		(cy-mapTop)*2*mapview.TileScale+mapview.TileScale,
	)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// logicalToTile maps a logical point to its texture pixel.
func logicalToTile(p image.Point) image.Point {
	return image.Pt(floorDiv(p.X, mapview.TileScale), floorDiv(p.Y, mapview.TileScale))
}

// frame composes the texture and lines at one pixel per tile. It returns nil
// before the control has a texture.
func frame(ctl *mapview.Control) *image.RGBA {
	tex := ctl.Texture()
	if tex == nil {
		return nil
	}
	img := image.NewRGBA(tex.Bounds())
	xdraw.Draw(img, img.Bounds(), tex, tex.Bounds().Min, xdraw.Src)
	for _, l := range ctl.Lines {
		plotLine(img, logicalToTile(l.Start), logicalToTile(l.End), l.Color)
	}
	return img
}

// plotLine draws a one pixel Bresenham segment, clipped to img.
func plotLine(img *image.RGBA, a, b image.Point, c color.RGBA) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	for {
		if a.In(img.Rect) {
			img.SetRGBA(a.X, a.Y, c)
		}
		if a == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func tcellColor(c color.RGBA) tcell.Color {
	if c.A == 0 {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// halfBlock renders two vertically stacked pixels in one cell.
func halfBlock(top, bottom color.RGBA) (rune, tcell.Style) {
	switch {
	case top.A == 0 && bottom.A == 0:
		return ' ', tcell.StyleDefault
	case top.A == 0:
		return '▄', tcell.StyleDefault.Foreground(tcellColor(bottom))
	}
	return '▀', tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
}

func blipGlyph(b mapview.Blip) rune {
	if b.Undefibbable {
		return '☠'
	}
	if r, ok := blipGlyphs[b.Image.State]; ok {
		return r
	}
	return '■'
}

// statusText is the top bar.
func statusText(ctl *mapview.Control, colorName, relay string) string {
	mode := "view"
	if ctl.Drawing {
		mode = "draw"
	}
	limit := "∞"
	if ctl.LineLimit >= 0 {
		limit = humanize.Comma(int64(ctl.LineLimit))
	}
	s := fmt.Sprintf(" %s | %s | lines %s/%s | d draw  c color  x clear  e export  q quit",
		mode, colorName, humanize.Comma(int64(len(ctl.Lines))), limit)
	if relay != "" {
		s += " | " + relay
	}
	return s
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// render paints the status bar, map and blips.
func render(screen tcell.Screen, ctl *mapview.Control, status string) {
	screen.Clear()
	drawText(screen, 0, 0, status, tcell.StyleDefault.Reverse(true))

	img := frame(ctl)
	if img == nil {
		drawText(screen, 1, mapTop+1, "no map loaded", tcell.StyleDefault)
		screen.Show()
		return
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for cy := 0; cy*2 < h; cy++ {
		for cx := 0; cx < w; cx++ {
			top := img.RGBAAt(cx, cy*2)
			var bottom color.RGBA
			if cy*2+1 < h {
				bottom = img.RGBAAt(cx, cy*2+1)
			}
			r, style := halfBlock(top, bottom)
			screen.SetContent(cx, cy+mapTop, r, nil, style)
		}
	}
	for _, b := range ctl.Blips() {
		p := ctl.DrawPosition(b.Indices)
		if !p.In(img.Rect) {
			continue
		}
		bg := img.RGBAAt(p.X, p.Y)
		style := tcell.StyleDefault.Foreground(tcellColor(b.Color)).Background(tcellColor(bg)).Bold(true)
		screen.SetContent(p.X, p.Y/2+mapTop, blipGlyph(b), nil, style)
	}
	screen.Show()
}
