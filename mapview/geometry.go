package mapview

import (
	"image"
	"math"
)

// Vec2 is a point in screen pixels.
type Vec2 struct {
	X, Y float32
}

func vecFromPoint(p image.Point) Vec2 { return Vec2{X: float32(p.X), Y: float32(p.Y)} }

func vecAdd(a, b Vec2) Vec2 { return Vec2{X: a.X + b.X, Y: a.Y + b.Y} }
func vecSub(a, b Vec2) Vec2 { return Vec2{X: a.X - b.X, Y: a.Y - b.Y} }
func vecMul(a Vec2, s float32) Vec2 { return Vec2{X: a.X * s, Y: a.Y * s} }
func vecLength(a Vec2) float32 { return float32(math.Hypot(float64(a.X), float64(a.Y))) }
func vecScaleMul(a Vec2) Vec2 { return vecMul(a, uiScale) }

// LineTriangles returns the corners of a width-thick rectangle running from
// start to end as a six vertex triangle list: bottom-left, bottom-right,
// top-right, bottom-left, top-left, top-right. The rectangle's length is the
// segment length truncated to whole pixels and it stays centered on the
// segment midpoint. ok is false for a zero length segment.
func LineTriangles(start, end Vec2, width float32) (v [6]Vec2, ok bool) {
	diff := vecSub(end, start)
	length := vecLength(diff)
	if length == 0 {
		return v, false
	}
	dir := vecMul(diff, 1/length)
	normal := Vec2{X: -dir.Y, Y: dir.X}

	center := vecAdd(start, vecMul(diff, 0.5))
	halfLen := vecMul(dir, float32(int(length))/2)
	halfWidth := vecMul(normal, width/2)

	bottomLeft := vecSub(vecSub(center, halfLen), halfWidth)
	bottomRight := vecAdd(vecSub(center, halfLen), halfWidth)
	topRight := vecAdd(vecAdd(center, halfLen), halfWidth)
	topLeft := vecSub(vecAdd(center, halfLen), halfWidth)

	v[0] = bottomLeft
	v[1] = bottomRight
	v[2] = topRight
	v[3] = bottomLeft
	v[4] = topLeft
	v[5] = topRight
	return v, true
}
