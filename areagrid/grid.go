// Package areagrid holds the sparse tile to color map a tactical map is
// generated from.
package areagrid

import (
	"image/color"
	"sort"
)

// Grid is a sparse mapping from tile coordinate to area color. The zero value
// is not usable; call New.
type Grid struct {
	Colors map[Vec2i]color.RGBA
}

func New() *Grid {
	return &Grid{Colors: make(map[Vec2i]color.RGBA)}
}

func (g *Grid) Set(pos Vec2i, c color.RGBA) { g.Colors[pos] = c }
func (g *Grid) Delete(pos Vec2i)            { delete(g.Colors, pos) }

// Len returns the number of colored tiles. A nil grid has none.
func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Colors)
}

// Bounds returns the component-wise minimum and maximum of every tile
// present. ok is false when the grid is empty.
func (g *Grid) Bounds() (lo, hi Vec2i, ok bool) {
	if g == nil {
		return Vec2i{}, Vec2i{}, false
	}
	return BoundsOf(g.Colors)
}

// BoundsOf returns the component-wise minimum and maximum of the keys of
// colors. ok is false when colors is empty.
func BoundsOf(colors map[Vec2i]color.RGBA) (lo, hi Vec2i, ok bool) {
	if len(colors) == 0 {
		return Vec2i{}, Vec2i{}, false
	}
	first := true
	for pos := range colors {
		if first {
			lo, hi = pos, pos
			first = false
			continue
		}
		lo = ComponentMin(lo, pos)
		hi = ComponentMax(hi, pos)
	}
	return lo, hi, true
}

// Positions returns the tile coordinates in row-major order.
func (g *Grid) Positions() []Vec2i {
	out := make([]Vec2i, 0, g.Len())
	if g == nil {
		return out
	}
	for pos := range g.Colors {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
