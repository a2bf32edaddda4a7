package main

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"tacmap/areagrid"
	"tacmap/mapview"
)

func TestPaletteCycle(t *testing.T) {
	c := drawPalette[0].color
	for i := 1; i <= len(drawPalette); i++ {
		c = nextPaletteColor(c).color
		if want := drawPalette[i%len(drawPalette)].color; c != want {
			t.Fatalf("step %d: got %v want %v", i, c, want)
		}
	}
	if got := nextPaletteColor(color.RGBA{R: 1, A: 0xff}); got.color != drawPalette[0].color {
		t.Fatalf("custom color should restart the cycle, got %v", got)
	}
}

func TestColorName(t *testing.T) {
	tests := []struct {
		c    color.RGBA
		want string
	}{
		{drawPalette[1].color, "Alert Red"},
		{drawPalette[4].color, "Command Yellow"},
		{color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}, "#123456ff"},
	}
	for _, tt := range tests {
		if got := colorName(tt.c); got != tt.want {
			t.Fatalf("colorName(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestStepUIScale(t *testing.T) {
	tests := []struct {
		cur   float32
		delta int
		want  float32
	}{
		{1, 1, 1.25},
		{1, -1, 0.75},
		{0.5, -1, 0.5},
		{4, 1, 4},
	}
	for _, tt := range tests {
		if got := stepUIScale(tt.cur, tt.delta); got != tt.want {
			t.Fatalf("stepUIScale(%v, %d) = %v, want %v", tt.cur, tt.delta, got, tt.want)
		}
	}
}

func TestLinesClipboardFormat(t *testing.T) {
	lines := []mapview.Line{
		{Start: image.Pt(1, 2), End: image.Pt(40, 2), Color: drawPalette[2].color},
		{Start: image.Pt(-3, 7), End: image.Pt(0, 0), Color: drawPalette[0].color},
	}
	data, err := encodeLines(lines)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeLines(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0] != lines[0] || got[1] != lines[1] {
		t.Fatalf("got %+v", got)
	}

	if _, err := decodeLines([]byte("[]")); !errors.Is(err, errNoLines) {
		t.Fatalf("expected errNoLines, got %v", err)
	}
	if _, err := decodeLines([]byte(`[{"color":"blue"}]`)); !errors.Is(err, areagrid.ErrBadColor) {
		t.Fatalf("expected ErrBadColor, got %v", err)
	}
	if _, err := decodeLines([]byte("hello")); err == nil {
		t.Fatalf("plain text accepted as lines")
	}
}

func TestStatusLineExpires(t *testing.T) {
	var s statusLine
	s.set("hello")
	now := time.Now()
	if s.current(now) != "hello" {
		t.Fatalf("status missing")
	}
	if s.current(now.Add(statusLife+time.Second)) != "" {
		t.Fatalf("status did not expire")
	}
}

func TestHUDText(t *testing.T) {
	ctl := mapview.New()
	ctl.Drawing = true
	ctl.LineLimit = -1
	got := hudText(ctl, 12345, "")
	want := "drawing  |  White  |  lines 0/unlimited  |  12,345 tiles"
	if got != want {
		t.Fatalf("hudText = %q, want %q", got, want)
	}
}
