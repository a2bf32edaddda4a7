package mapview

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerPosition returns the current pointer position in screen pixels.
// If a touch is active, the first touch is used; otherwise the mouse cursor
// position is returned.
func PointerPosition() (int, int) {
	ids := ebiten.AppendTouchIDs(nil)
	if len(ids) > 0 {
		return ebiten.TouchPosition(ids[0])
	}
	return ebiten.CursorPosition()
}

// pointerJustPressed reports whether the primary pointer was just pressed.
// Multi-touch gestures never count as a press.
func pointerJustPressed() bool {
	ids := ebiten.AppendTouchIDs(nil)
	if len(ids) > 1 {
		return false
	}
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		return true
	}
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButton0)
}

// pointerPressed reports whether the primary pointer is currently pressed.
func pointerPressed() bool {
	ids := ebiten.AppendTouchIDs(nil)
	if len(ids) > 1 {
		return false
	}
	if len(ids) == 1 {
		return true
	}
	return ebiten.IsMouseButtonPressed(ebiten.MouseButton0)
}

// ToLocal converts a screen position to the control's logical coordinates.
func (c *Control) ToLocal(x, y int) image.Point {
	lx := math.Floor(float64(x-c.Position.X) / float64(uiScale))
	ly := math.Floor(float64(y-c.Position.Y) / float64(uiScale))
	return image.Pt(int(lx), int(ly))
}

// Update polls ebiten's pointer state and feeds it through the drag state
// machine. Call it once per tick from the host's Update.
func (c *Control) Update() {
	x, y := PointerPosition()
	c.feedPointer(x, y, pointerJustPressed(), pointerPressed())
}

// feedPointer applies one tick of pointer state. A released pointer ends the
// drag before any movement is considered: once a touch lifts, the reported
// position falls back to the mouse cursor and is not part of the gesture.
func (c *Control) feedPointer(x, y int, justPressed, pressed bool) {
	rel := c.ToLocal(x, y)
	if !pressed {
		if c.dragging {
			c.PointerUp(ButtonPrimary)
		}
		c.lastPointer = rel
		return
	}

	if justPressed && c.Contains(rel) {
		c.PointerDown(ButtonPrimary, rel)
	}
	if rel != c.lastPointer {
		c.lastPointer = rel
		c.PointerMove(rel)
	}
}
