package sim

import "github.com/milk9111/beppu/common"

// Camera is the scroll offset of the background. Every camera-relative
// entity is positioned as Offset plus its fixed initial offset.
type Camera struct {
	Offset common.Vec
}

// Candidate returns the offset the camera would move to for dir. The world
// moves opposite to the player: walking right scrolls the world left.
func (c Camera) Candidate(dir Direction, speed float64) common.Vec {
	next := c.Offset
	switch dir {
	case DirUp:
		next.Y += speed
	case DirDown:
		next.Y -= speed
	case DirLeft:
		next.X += speed
	case DirRight:
		next.X -= speed
	}
	return next
}

// Place returns the screen position of an entity anchored at initial.
func (c Camera) Place(initial common.Vec) common.Vec {
	return c.Offset.Add(initial)
}
