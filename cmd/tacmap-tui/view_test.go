package main

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"tacmap/areagrid"
	"tacmap/mapview"
	"tacmap/rsi"

	"github.com/gdamore/tcell/v2"
)

var (
	floor = color.RGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xff}
	red   = color.RGBA{R: 0xff, A: 0xff}
)

func newViewer(t *testing.T, w, h int) *viewer {
	t.Helper()
	g := areagrid.New()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(areagrid.Vec2i{X: x, Y: y}, floor)
		}
	}
	v := &viewer{ctl: mapview.New()}
	v.ctl.Events = &mapview.EventHandler{Handle: v.onEvent}
	v.ctl.UpdateTexture(g)
	return v
}

func TestCellToLogicalRoundTrip(t *testing.T) {
	for _, c := range []image.Point{{0, mapTop}, {5, mapTop}, {7, mapTop + 3}} {
		tile := logicalToTile(cellToLogical(c.X, c.Y))
		want := image.Pt(c.X, (c.Y-mapTop)*2+1)
		if tile != want {
			t.Fatalf("cell %v -> tile %v, want %v", c, tile, want)
		}
	}
	if got := logicalToTile(image.Pt(-1, -4)); got != image.Pt(-1, -2) {
		t.Fatalf("negative logical maps to %v", got)
	}
}

func TestPlotLine(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	plotLine(img, image.Pt(1, 1), image.Pt(6, 4), red)
	for _, p := range []image.Point{{1, 1}, {6, 4}} {
		if img.RGBAAt(p.X, p.Y) != red {
			t.Fatalf("endpoint %v not plotted", p)
		}
	}
	// clipped segments must not panic
	plotLine(img, image.Pt(-5, -5), image.Pt(20, 20), red)
	if img.RGBAAt(7, 7) != red {
		t.Fatalf("diagonal not plotted inside the image")
	}
}

func TestHalfBlock(t *testing.T) {
	if r, _ := halfBlock(color.RGBA{}, color.RGBA{}); r != ' ' {
		t.Fatalf("empty cell rune %q", r)
	}
	if r, _ := halfBlock(color.RGBA{}, red); r != '▄' {
		t.Fatalf("bottom-only rune %q", r)
	}
	r, style := halfBlock(red, floor)
	fg, bg, _ := style.Decompose()
	if r != '▀' || fg != tcellColor(red) || bg != tcellColor(floor) {
		t.Fatalf("got %q fg %v bg %v", r, fg, bg)
	}
}

func TestBlipGlyph(t *testing.T) {
	if blipGlyph(mapview.Blip{Image: rsi.Specifier{State: "queen"}}) != 'Q' {
		t.Fatalf("queen glyph")
	}
	if blipGlyph(mapview.Blip{Image: rsi.Specifier{State: "queen"}, Undefibbable: true}) != '☠' {
		t.Fatalf("undefibbable glyph")
	}
	if blipGlyph(mapview.Blip{}) != '■' {
		t.Fatalf("fallback glyph")
	}
}

func TestMouseDragDrawsLine(t *testing.T) {
	v := newViewer(t, 20, 10)
	v.ctl.Drawing = true

	v.handleMouse(tcell.NewEventMouse(2, mapTop, tcell.Button1, tcell.ModNone))
	if v.ctl.State() != mapview.Dragging {
		t.Fatalf("press did not start a drag")
	}
	// three cells is 9 logical pixels, below the threshold
	v.handleMouse(tcell.NewEventMouse(5, mapTop, tcell.Button1, tcell.ModNone))
	if len(v.ctl.Lines) != 0 {
		t.Fatalf("line added below threshold")
	}
	v.handleMouse(tcell.NewEventMouse(6, mapTop, tcell.Button1, tcell.ModNone))
	if len(v.ctl.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(v.ctl.Lines))
	}
	v.handleMouse(tcell.NewEventMouse(6, mapTop, tcell.ButtonNone, tcell.ModNone))
	if v.ctl.State() != mapview.Idle {
		t.Fatalf("release did not end the drag")
	}

	img := frame(v.ctl)
	if img.RGBAAt(4, 1) != v.ctl.Color {
		t.Fatalf("line not composed into frame: %v", img.RGBAAt(4, 1))
	}
}

func TestPressOutsideMapIgnored(t *testing.T) {
	v := newViewer(t, 4, 4)
	v.ctl.Drawing = true
	v.handleMouse(tcell.NewEventMouse(30, mapTop, tcell.Button1, tcell.ModNone))
	if v.ctl.State() != mapview.Idle {
		t.Fatalf("press outside the map started a drag")
	}
}

func TestKeys(t *testing.T) {
	v := newViewer(t, 4, 4)
	v.ctl.AddLine(mapview.Line{End: image.Pt(10, 0), Color: red})

	key := func(r rune) bool {
		return v.handleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	if !key('d') || !v.ctl.Drawing {
		t.Fatalf("d did not toggle drawing")
	}
	if !key('c') || v.ctl.Color != palette[1].color {
		t.Fatalf("c did not cycle color")
	}
	if !key('x') || len(v.ctl.Lines) != 0 {
		t.Fatalf("x did not clear lines")
	}
	if key('q') {
		t.Fatalf("q did not quit")
	}
	if v.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatalf("escape did not quit")
	}
}

func TestRenderSimulationScreen(t *testing.T) {
	v := newViewer(t, 6, 4)
	v.ctl.UpdateBlips([]mapview.Blip{{
		Indices: areagrid.Vec2i{X: 2, Y: 3},
		Color:   red,
		Image:   rsi.Specifier{State: "marine"},
	}})

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(40, 10)

	render(screen, v.ctl, statusText(v.ctl, "white", ""))
	// Y=3 is the top texture row, so the blip lands in the first map row
	if r, _, _, _ := screen.GetContent(2, mapTop); r != '●' {
		t.Fatalf("blip glyph %q", r)
	}
	if r, _, _, _ := screen.GetContent(0, mapTop+1); r != '▀' {
		t.Fatalf("map cell %q", r)
	}
	var top strings.Builder
	for x := 0; x < 12; x++ {
		r, _, _, _ := screen.GetContent(x, 0)
		top.WriteRune(r)
	}
	if !strings.HasPrefix(top.String(), " view | white") {
		t.Fatalf("status bar %q", top.String())
	}
}

func TestStatusTextUnbounded(t *testing.T) {
	ctl := mapview.New()
	ctl.LineLimit = -1
	if s := statusText(ctl, "red", "relay ws://x"); !strings.Contains(s, "lines 0/∞") || !strings.HasSuffix(s, "relay ws://x") {
		t.Fatalf("status %q", s)
	}
}
