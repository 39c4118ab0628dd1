package common

type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Intersects reports strict overlap. Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Translate returns r moved by v.
func (r Rect) Translate(v Vec) Rect {
	r.X += v.X
	r.Y += v.Y
	return r
}
