package mapview

import (
	"image"
	"math"
)

// Button identifies a pointer button independent of the host toolkit.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// DragState is the state of the drag-to-line gesture.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

func (c *Control) State() DragState {
	if c.dragging {
		return Dragging
	}
	return Idle
}

// PointerDown starts a drag at rel when the primary button is pressed.
func (c *Control) PointerDown(b Button, rel image.Point) {
	if b != ButtonPrimary {
		return
	}
	c.dragging = true
	c.anchor = rel
	c.hasAnchor = true
}

// PointerUp ends the drag.
func (c *Control) PointerUp(b Button) {
	if b != ButtonPrimary {
		return
	}
	c.dragging = false
	c.hasAnchor = false
}

// PointerMove emits a line from the anchor to rel once the pointer has
// travelled at least DragThreshold while drawing, then advances the anchor.
func (c *Control) PointerMove(rel image.Point) {
	if !c.Drawing || !c.dragging {
		return
	}
	if !c.hasAnchor {
		c.anchor = rel
		c.hasAnchor = true
		return
	}

	diff := rel.Sub(c.anchor)
	if diff == (image.Point{}) {
		return
	}
	if math.Hypot(float64(diff.X), float64(diff.Y)) < DragThreshold {
		return
	}
	if c.texture == nil {
		return
	}

	c.addLine(Line{Start: c.anchor, End: rel, Color: c.Color}, true)
	c.anchor = rel
}
