package obj

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/beppu/common"
)

// Visible returns the obstacles that land inside a width x height screen when
// the world is scrolled to offset, in screen space and tile order.
func (cw *CollisionWorld) Visible(offset common.Vec, width, height float64) []common.Rect {
	if cw == nil || cw.space == nil {
		return nil
	}
	bb := cp.BB{L: -offset.X, B: -offset.Y, R: width - offset.X, T: height - offset.Y}

	var idx []int
	cw.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		if i, ok := shape.UserData.(int); ok && i >= 0 && i < len(cw.obstacles) {
			idx = append(idx, i)
		}
	}, nil)
	sort.Ints(idx)

	out := make([]common.Rect, 0, len(idx))
	for _, i := range idx {
		out = append(out, cw.obstacles[i].Translate(offset))
	}
	return out
}

// DebugDraw fills every on-screen obstacle with fill.
func (cw *CollisionWorld) DebugDraw(screen *ebiten.Image, offset common.Vec, fill color.Color) {
	if screen == nil || fill == nil {
		return
	}
	b := screen.Bounds()
	for _, r := range cw.Visible(offset, float64(b.Dx()), float64(b.Dy())) {
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), fill, false)
	}
}
