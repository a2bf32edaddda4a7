package areagrid

// Vec2i is an integer tile coordinate.
type Vec2i struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (v Vec2i) Add(o Vec2i) Vec2i { return Vec2i{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2i) Sub(o Vec2i) Vec2i { return Vec2i{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2i) Less(o Vec2i) bool { return v.Y < o.Y || (v.Y == o.Y && v.X < o.X) }
func ComponentMin(a, b Vec2i) Vec2i { return Vec2i{X: min(a.X, b.X), Y: min(a.Y, b.Y)} }
func ComponentMax(a, b Vec2i) Vec2i { return Vec2i{X: max(a.X, b.X), Y: max(a.Y, b.Y)} }
