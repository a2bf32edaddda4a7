package main

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"time"

	"tacmap/mapview"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	hudFontSize = 13
	hudHeight   = 24
	statusLife  = 4 * time.Second
)

var (
	hudFace    text.Face
	hudBG      = color.RGBA{A: 0xb0}
	hudFG      = color.RGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
	hudWarning = color.RGBA{R: 0xff, G: 0xc0, B: 0x40, A: 0xff}
)

func initFont() {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("failed to parse font: %v", err)
	}
	hudFace = &text.GoTextFace{
		Source: src,
		Size:   hudFontSize * float64(mapview.UIScale()),
	}
}

// statusLine is a transient message shown under the HUD.
type statusLine struct {
	text    string
	expires time.Time
}

func (s *statusLine) set(msg string) {
	s.text = msg
	s.expires = time.Now().Add(statusLife)
}

func (s *statusLine) current(now time.Time) string {
	if now.After(s.expires) {
		return ""
	}
	return s.text
}

// hudText summarizes the control's state in one line.
func hudText(ctl *mapview.Control, tiles int, relay string) string {
	mode := "viewing"
	if ctl.Drawing {
		mode = "drawing"
	}
	limit := "unlimited"
	if ctl.LineLimit >= 0 {
		limit = humanize.Comma(int64(ctl.LineLimit))
	}
	s := fmt.Sprintf("%s  |  %s  |  lines %s/%s  |  %s tiles",
		mode, colorName(ctl.Color),
		humanize.Comma(int64(len(ctl.Lines))), limit,
		humanize.Comma(int64(tiles)))
	if relay != "" {
		s += "  |  " + relay
	}
	return s
}

func drawHUD(screen *ebiten.Image, line, status string) {
	if hudFace == nil {
		return
	}
	scale := mapview.UIScale()
	w := float32(screen.Bounds().Dx())
	vector.FillRect(screen, 0, 0, w, hudHeight*scale, hudBG, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(6*scale), float64(4*scale))
	op.ColorScale.ScaleWithColor(hudFG)
	text.Draw(screen, line, hudFace, op)

	if status == "" {
		return
	}
	op = &text.DrawOptions{}
	op.GeoM.Translate(float64(6*scale), float64(screen.Bounds().Dy())-float64(20*scale))
	op.ColorScale.ScaleWithColor(hudWarning)
	text.Draw(screen, status, hudFace, op)
}
