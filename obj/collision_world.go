package obj

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/beppu/common"
	"github.com/milk9111/beppu/levels"
)

// BuildObstacles emits one tileSize square for every tile equal to blockingCode.
func BuildObstacles(tiles []int, rowWidth, blockingCode, tileSize int) ([]common.Rect, error) {
	if rowWidth <= 0 {
		return nil, fmt.Errorf("%w: got %d", levels.ErrInvalidRowWidth, rowWidth)
	}
	if len(tiles)%rowWidth != 0 {
		return nil, fmt.Errorf("%w: %d tiles, row width %d", levels.ErrRaggedTileMap, len(tiles), rowWidth)
	}

	var out []common.Rect
	size := float64(tileSize)
	for i, code := range tiles {
		if code != blockingCode {
			continue
		}
		row := i / rowWidth
		col := i % rowWidth
		out = append(out, common.Rect{
			X:      float64(col) * size,
			Y:      float64(row) * size,
			Width:  size,
			Height: size,
		})
	}
	return out, nil
}

// CollisionWorld indexes static obstacles in a Chipmunk space. The space's
// bounding box tree narrows the candidates; overlap is then decided by the
// strict rectangle test so touching edges never block.
type CollisionWorld struct {
	space     *cp.Space
	obstacles []common.Rect
}

// NewCollisionWorld builds the obstacles of m into a collision world.
func NewCollisionWorld(m *levels.TileMap) (*CollisionWorld, error) {
	if m == nil {
		return nil, fmt.Errorf("collision: nil tile map")
	}
	obstacles, err := BuildObstacles(m.Tiles, m.RowWidth, m.BlockingCode, m.TileSize)
	if err != nil {
		return nil, fmt.Errorf("collision: build obstacles for %s: %w", m.Name, err)
	}
	return NewCollisionWorldFromRects(obstacles), nil
}

func NewCollisionWorldFromRects(obstacles []common.Rect) *CollisionWorld {
	space := cp.NewSpace()
	cw := &CollisionWorld{space: space, obstacles: obstacles}
	for i, o := range obstacles {
		bb := cp.BB{L: o.X, B: o.Y, R: o.X + o.Width, T: o.Y + o.Height}
		shape := cp.NewBox2(space.StaticBody, bb, 0)
		shape.UserData = i
		space.AddShape(shape)
	}
	return cw
}

// Obstacles returns the obstacle rectangles in world space.
func (cw *CollisionWorld) Obstacles() []common.Rect {
	if cw == nil {
		return nil
	}
	return cw.obstacles
}

// IsBlocked reports whether any obstacle, shifted by offset into screen
// space, strictly overlaps player.
func (cw *CollisionWorld) IsBlocked(player common.Rect, offset common.Vec) bool {
	if cw == nil || len(cw.obstacles) == 0 {
		return false
	}

	// Query in world space: shifting the player by -offset is the same as
	// shifting every obstacle by +offset.
	query := player.Translate(common.Vec{X: -offset.X, Y: -offset.Y})
	bb := cp.BB{L: query.X, B: query.Y, R: query.X + query.Width, T: query.Y + query.Height}

	blocked := false
	cw.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		if blocked {
			return
		}
		idx, ok := shape.UserData.(int)
		if !ok || idx < 0 || idx >= len(cw.obstacles) {
			return
		}
		if player.Intersects(cw.obstacles[idx].Translate(offset)) {
			blocked = true
		}
	}, nil)
	return blocked
}

// Scan is the exhaustive form of IsBlocked.
func (cw *CollisionWorld) Scan(player common.Rect, offset common.Vec) bool {
	if cw == nil {
		return false
	}
	for _, o := range cw.obstacles {
		if player.Intersects(o.Translate(offset)) {
			return true
		}
	}
	return false
}
