// Package mapview implements the tactical map widget: a texture generated
// from area grid colors, blip markers, and annotation lines drawn by
// dragging the pointer. A Control is driven entirely from the host's UI
// thread and is not safe for concurrent use.
package mapview

import (
	"image"
	"image/color"

	"tacmap/areagrid"
	"tacmap/rsi"

	"github.com/hajimehoshi/ebiten/v2"
)

// Blip is a marker shown at a grid position for one frame.
type Blip struct {
	Indices      areagrid.Vec2i
	Color        color.RGBA
	Image        rsi.Specifier
	Undefibbable bool
}

// IconSource resolves icon specifiers to drawable images. A nil result means
// the icon is unavailable and is skipped.
type IconSource interface {
	Frame0(spec rsi.Specifier) *ebiten.Image
}

// Control is the tactical map widget. The exported fields are owned by the
// host and may be changed between frames.
type Control struct {
	// Lines holds the annotation lines, oldest first.
	Lines []Line
	// LineLimit caps len(Lines); negative means unbounded.
	LineLimit int
	// Drawing enables turning drags into lines.
	Drawing bool
	// Color is used for newly drawn lines.
	Color color.RGBA
	// Position is the top-left corner of the control on screen.
	Position image.Point

	Icons  IconSource
	Sheet  string
	Events *EventHandler

	texture *image.RGBA
	texImg  *ebiten.Image
	min     areagrid.Vec2i
	delta   areagrid.Vec2i
	blips   []Blip

	dragging    bool
	anchor      image.Point
	hasAnchor   bool
	lastPointer image.Point
}

func New() *Control {
	return &Control{
		LineLimit: DefaultLineLimit,
		Color:     color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Sheet:     DefaultSheet,
	}
}

// UpdateTexture regenerates the map texture from g. Empty grids and
// degenerate bounds leave the current texture untouched.
func (c *Control) UpdateTexture(g *areagrid.Grid) {
	if g.Len() == 0 {
		return
	}
	img, lo, delta, ok := BuildTexture(g.Colors)
	if !ok {
		return
	}
	c.texture = img
	c.min = lo
	c.delta = delta
	if c.texImg != nil {
		c.texImg.Deallocate()
		c.texImg = nil
	}
	c.Events.Emit(UIEvent{Type: EventTextureUpdated, Count: len(c.Lines)})
}

// Texture returns the current map image, or nil before the first update.
func (c *Control) Texture() *image.RGBA { return c.texture }

func (c *Control) HasTexture() bool { return c.texture != nil }

// UpdateBlips replaces the blips drawn each frame. The slice is retained.
func (c *Control) UpdateBlips(blips []Blip) { c.blips = blips }

func (c *Control) Blips() []Blip { return c.blips }

// DrawPosition maps a grid coordinate to its texture pixel.
func (c *Control) DrawPosition(pos areagrid.Vec2i) image.Point {
	return flip(pos, c.min, c.delta)
}

// Size is the control's extent in logical pixels.
func (c *Control) Size() image.Point {
	if c.texture == nil {
		return image.Point{}
	}
	b := c.texture.Bounds()
	return image.Pt(b.Dx()*TileScale, b.Dy()*TileScale)
}

// Contains reports whether the logical point rel lies on the map.
func (c *Control) Contains(rel image.Point) bool {
	return rel.In(image.Rectangle{Max: c.Size()})
}
