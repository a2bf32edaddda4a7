package main

import (
	"image/color"
	"strings"

	"tacmap/areagrid"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type paletteEntry struct {
	name  string
	color color.RGBA
}

// drawPalette is the cycle used by the color hotkey.
var drawPalette = []paletteEntry{
	{"white", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	{"alert red", color.RGBA{R: 0xe0, G: 0x30, B: 0x30, A: 0xff}},
	{"marine blue", color.RGBA{R: 0x30, G: 0x80, B: 0xff, A: 0xff}},
	{"medic green", color.RGBA{R: 0x30, G: 0xd0, B: 0x60, A: 0xff}},
	{"command yellow", color.RGBA{R: 0xff, G: 0xd0, B: 0x20, A: 0xff}},
	{"xeno purple", color.RGBA{R: 0xb0, G: 0x40, B: 0xe0, A: 0xff}},
}

var titleCaser = cases.Title(language.English)

// paletteIndex returns the entry matching c, or -1.
func paletteIndex(c color.RGBA) int {
	for i, e := range drawPalette {
		if e.color == c {
			return i
		}
	}
	return -1
}

// nextPaletteColor returns the entry after c, wrapping around. Colors not in
// the palette restart the cycle.
func nextPaletteColor(c color.RGBA) paletteEntry {
	return drawPalette[(paletteIndex(c)+1)%len(drawPalette)]
}

// colorName is the display name of c: its palette name in title case, or
// the hex form for custom colors.
func colorName(c color.RGBA) string {
	if i := paletteIndex(c); i >= 0 {
		return titleCaser.String(drawPalette[i].name)
	}
	return strings.ToLower(areagrid.FormatColor(c))
}
