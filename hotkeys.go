package main

import (
	"fmt"

	"tacmap/areagrid"
	"tacmap/internal/logging"
	"tacmap/mapview"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	minUIScale  = 0.5
	maxUIScale  = 4
	uiScaleStep = 0.25
)

// stepUIScale moves cur by delta steps, clamped to the supported range.
func stepUIScale(cur float32, delta int) float32 {
	next := cur + float32(delta)*uiScaleStep
	if next < minUIScale {
		next = minUIScale
	}
	if next > maxUIScale {
		next = maxUIScale
	}
	return next
}

func handleHotkeys(g *Game) {
	ctl := g.ctl
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)

	if ctrl {
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			if err := copyLines(ctl); err != nil {
				g.status.set(err.Error())
			} else {
				g.status.set(fmt.Sprintf("copied %d lines", len(ctl.Lines)))
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyV) {
			n, err := pasteLines(ctl, g.publish)
			if err != nil {
				g.status.set(err.Error())
			} else {
				g.status.set(fmt.Sprintf("pasted %d lines", n))
			}
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		ctl.Drawing = !ctl.Drawing
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		next := nextPaletteColor(ctl.Color)
		ctl.Color = next.color
		gs.DrawColor = areagrid.FormatColor(next.color)
		settingsDirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		ctl.ClearLines()
		if g.relay != nil {
			if err := g.relay.Clear(); err != nil {
				logging.Warn("relay clear: %v", err)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		name, err := takeScreenshot(ctl, g.icons)
		if err != nil {
			logging.Error("%v", err)
			g.status.set("screenshot failed")
		} else {
			g.status.set("snapshot taken: " + name)
		}
	}

	delta := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		delta--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		delta++
	}
	if delta != 0 {
		gs.UIScale = stepUIScale(gs.UIScale, delta)
		mapview.SetUIScale(gs.UIScale)
		initFont()
		settingsDirty = true
	}
}
