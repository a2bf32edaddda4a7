// Package sim wanders a small squad over a generated layout so the map can
// be exercised without a game server.
package sim

import (
	"image/color"
	"math/rand/v2"

	"tacmap/areagrid"
	"tacmap/assets"
	"tacmap/mapview"
	"tacmap/rsi"
)

var (
	marineBlip = color.RGBA{R: 0x30, G: 0x80, B: 0xff, A: 0xff}
	xenoBlip   = color.RGBA{R: 0xb0, G: 0x40, B: 0xe0, A: 0xff}
	deadBlip   = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
)

type unit struct {
	pos   areagrid.Vec2i
	state string
	color color.RGBA
	dead  bool
}

// Sim moves a fixed squad one tile per Step. It is not safe for concurrent
// use.
type Sim struct {
	grid  *areagrid.Grid
	rng   *rand.Rand
	units []unit
}

var squad = []struct {
	state string
	color color.RGBA
	dead  bool
}{
	{"leader", marineBlip, false},
	{"marine", marineBlip, false},
	{"marine", marineBlip, false},
	{"medic", marineBlip, false},
	{"marine", deadBlip, true},
	{"xeno", xenoBlip, false},
	{"xeno", xenoBlip, false},
	{"queen", xenoBlip, false},
}

// New places the squad on random walkable tiles of grid. The same grid and
// seed always give the same run.
func New(grid *areagrid.Grid, seed uint64) *Sim {
	s := &Sim{
		grid: grid,
		rng:  rand.New(rand.NewPCG(seed, seed+1)),
	}
	var floor []areagrid.Vec2i
	for _, pos := range grid.Positions() {
		if areagrid.Walkable(grid.Colors[pos]) {
			floor = append(floor, pos)
		}
	}
	if len(floor) == 0 {
		return s
	}
	for _, u := range squad {
		s.units = append(s.units, unit{
			pos:   floor[s.rng.IntN(len(floor))],
			state: u.state,
			color: u.color,
			dead:  u.dead,
		})
	}
	return s
}

var steps = []areagrid.Vec2i{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// Step moves every living unit one tile onto a random walkable neighbour.
func (s *Sim) Step() {
	for i := range s.units {
		u := &s.units[i]
		if u.dead {
			continue
		}
		next := u.pos.Add(steps[s.rng.IntN(len(steps))])
		if c, ok := s.grid.Colors[next]; ok && areagrid.Walkable(c) {
			u.pos = next
		}
	}
}

// Blips returns the current unit positions as map blips.
func (s *Sim) Blips() []mapview.Blip {
	out := make([]mapview.Blip, 0, len(s.units))
	for _, u := range s.units {
		out = append(out, mapview.Blip{
			Indices:      u.pos,
			Color:        u.color,
			Image:        rsi.Specifier{Path: assets.BlipSheet, State: u.state},
			Undefibbable: u.dead,
		})
	}
	return out
}
