package mapview

import (
	"image"
	"image/color"
)

// Line is an annotation segment in the control's logical coordinates.
type Line struct {
	Start image.Point
	End   image.Point
	Color color.RGBA
}

// AddLine appends a line received from elsewhere, e.g. another player.
func (c *Control) AddLine(l Line) {
	c.addLine(l, false)
}

func (c *Control) addLine(l Line, local bool) {
	c.Lines = append(c.Lines, l)
	c.Events.Emit(UIEvent{Type: EventLineAdded, Line: l, Local: local, Count: len(c.Lines)})
	c.trimLines()
}

// trimLines drops the oldest lines until LineLimit is met.
func (c *Control) trimLines() {
	for c.LineLimit >= 0 && len(c.Lines) > c.LineLimit {
		old := c.Lines[0]
		c.Lines[0] = Line{}
		c.Lines = c.Lines[1:]
		c.Events.Emit(UIEvent{Type: EventLineEvicted, Line: old, Count: len(c.Lines)})
	}
}

// SetLines replaces every line, keeping only the newest LineLimit of them.
func (c *Control) SetLines(lines []Line) {
	c.Lines = append([]Line(nil), lines...)
	c.trimLines()
}

// ClearLines removes every line.
func (c *Control) ClearLines() {
	if len(c.Lines) == 0 {
		return
	}
	c.Lines = nil
	c.Events.Emit(UIEvent{Type: EventLinesCleared})
}
