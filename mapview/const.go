package mapview

const (
	// TileScale is the number of logical pixels per grid tile.
	TileScale = 3

	// BlipSize is the edge length of a blip marker in logical pixels.
	BlipSize = 14

	// LineWidth is the thickness of an annotation line in logical pixels.
	LineWidth = 5

	// DragThreshold is the minimum pointer travel, in logical pixels, before
	// a drag emits a new line segment.
	DragThreshold = 10

	// DefaultLineLimit caps the annotation lines kept by New controls.
	DefaultLineLimit = 64

	// DefaultSheet is the icon sheet blips are drawn from.
	DefaultSheet = "map_blips.rsi"

	backgroundState   = "background"
	undefibbableState = "undefibbable"
)
