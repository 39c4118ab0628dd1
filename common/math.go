package common

const (
	BaseWidth  = 1024
	BaseHeight = 576
	TileSize   = 48
)

// Vec is a 2D offset or position in screen units.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}
