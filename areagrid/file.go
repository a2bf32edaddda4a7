package areagrid

import (
	"encoding/json"
	"fmt"
	"io"
)

type tileJSON struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color"`
}

type gridFile struct {
	Tiles []tileJSON `json:"tiles"`
}

// Load reads a grid document of the form
//
//	{"tiles":[{"x":0,"y":0,"color":"#RRGGBBAA"}]}
//
// Later duplicates of a coordinate overwrite earlier ones.
func Load(r io.Reader) (*Grid, error) {
	var doc gridFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode grid: %w", err)
	}
	g := New()
	for _, t := range doc.Tiles {
		c, err := ParseColor(t.Color)
		if err != nil {
			return nil, fmt.Errorf("tile %d,%d: %w", t.X, t.Y, err)
		}
		g.Set(Vec2i{X: t.X, Y: t.Y}, c)
	}
	return g, nil
}

// Save writes g in the format Load reads, tiles in row-major order.
func (g *Grid) Save(w io.Writer) error {
	doc := gridFile{Tiles: make([]tileJSON, 0, g.Len())}
	for _, pos := range g.Positions() {
		doc.Tiles = append(doc.Tiles, tileJSON{X: pos.X, Y: pos.Y, Color: FormatColor(g.Colors[pos])})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode grid: %w", err)
	}
	return nil
}
