package obj

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/milk9111/beppu/common"
	"github.com/milk9111/beppu/levels"
)

func TestBuildObstacles(t *testing.T) {
	t.Run("single_blocking_tile", func(t *testing.T) {
		got, err := BuildObstacles([]int{0, 0, 0, 3967}, 4, 3967, 48)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected exactly one obstacle, got %d", len(got))
		}
		if got[0] != (common.Rect{X: 144, Y: 0, Width: 48, Height: 48}) {
			t.Fatalf("unexpected obstacle %+v", got[0])
		}
	})

	t.Run("rows_and_columns", func(t *testing.T) {
		tiles := []int{
			1, 0, 1,
			0, 1, 0,
		}
		got, err := BuildObstacles(tiles, 3, 1, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []common.Rect{
			{X: 0, Y: 0, Width: 10, Height: 10},
			{X: 20, Y: 0, Width: 10, Height: 10},
			{X: 10, Y: 10, Width: 10, Height: 10},
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d obstacles, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("obstacle %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("ragged", func(t *testing.T) {
		if _, err := BuildObstacles([]int{0, 0, 0}, 2, 1, 48); !errors.Is(err, levels.ErrRaggedTileMap) {
			t.Fatalf("expected ErrRaggedTileMap, got %v", err)
		}
	})

	t.Run("zero_width", func(t *testing.T) {
		if _, err := BuildObstacles(nil, 0, 1, 48); !errors.Is(err, levels.ErrInvalidRowWidth) {
			t.Fatalf("expected ErrInvalidRowWidth, got %v", err)
		}
	})

	t.Run("empty_map", func(t *testing.T) {
		got, err := BuildObstacles(nil, 70, 3967, 48)
		if err != nil || len(got) != 0 {
			t.Fatalf("expected no obstacles and no error, got %v %v", got, err)
		}
	})
}

func TestCollisionWorldIsBlocked(t *testing.T) {
	player := common.Rect{X: 488, Y: 330, Width: 48, Height: 72}
	cw := NewCollisionWorldFromRects([]common.Rect{{X: 0, Y: 0, Width: 48, Height: 48}})

	cases := []struct {
		name   string
		offset common.Vec
		want   bool
	}{
		{"inside", common.Vec{X: 488, Y: 330}, true},
		{"one_unit_overlap", common.Vec{X: 441, Y: 330}, true},
		{"touch_left_edge", common.Vec{X: 440, Y: 330}, false},
		{"touch_right_edge", common.Vec{X: 536, Y: 330}, false},
		{"touch_top_edge", common.Vec{X: 488, Y: 282}, false},
		{"touch_bottom_edge", common.Vec{X: 488, Y: 402}, false},
		{"far", common.Vec{X: -1000, Y: -1000}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := cw.IsBlocked(player, c.offset); got != c.want {
				t.Fatalf("IsBlocked(%+v) = %v, want %v", c.offset, got, c.want)
			}
			if got := cw.Scan(player, c.offset); got != c.want {
				t.Fatalf("Scan(%+v) = %v, want %v", c.offset, got, c.want)
			}
		})
	}
}

func TestCollisionWorldMatchesExhaustiveScan(t *testing.T) {
	m, err := levels.LoadTileMap("beppu")
	if err != nil {
		t.Fatalf("load map: %v", err)
	}
	cw, err := NewCollisionWorld(m)
	if err != nil {
		t.Fatalf("new collision world: %v", err)
	}
	if len(cw.Obstacles()) == 0 {
		t.Fatalf("expected obstacles in the town map")
	}

	player := common.Rect{X: 488, Y: 330, Width: 48, Height: 72}
	rng := rand.New(rand.NewSource(7))
	worldW := m.RowWidth * m.TileSize
	worldH := m.Rows() * m.TileSize
	for i := 0; i < 2000; i++ {
		// Multiples of 3 keep offsets on the walk grid.
		off := common.Vec{
			X: float64(3 * (rng.Intn(worldW/3) - worldW/3 + 200)),
			Y: float64(3 * (rng.Intn(worldH/3) - worldH/3 + 120)),
		}
		if got, want := cw.IsBlocked(player, off), cw.Scan(player, off); got != want {
			t.Fatalf("offset %+v: IsBlocked=%v Scan=%v", off, got, want)
		}
	}
}

func TestTownStartIsClear(t *testing.T) {
	m, err := levels.LoadTileMap("beppu")
	if err != nil {
		t.Fatalf("load map: %v", err)
	}
	cw, err := NewCollisionWorld(m)
	if err != nil {
		t.Fatalf("new collision world: %v", err)
	}
	player := common.Rect{X: 488, Y: 330, Width: 48, Height: 72}
	start := common.Vec{X: (1024 - float64(m.RowWidth*m.TileSize)) / 2, Y: -1300}
	if cw.IsBlocked(player, start) {
		t.Fatalf("player spawns inside an obstacle at %+v", start)
	}
}

func TestNewCollisionWorldErrors(t *testing.T) {
	if _, err := NewCollisionWorld(nil); err == nil {
		t.Fatalf("expected error for nil map")
	}
	_, err := NewCollisionWorld(&levels.TileMap{Name: "bad", RowWidth: 3, TileSize: 48, Tiles: []int{1}})
	if !errors.Is(err, levels.ErrRaggedTileMap) {
		t.Fatalf("expected ErrRaggedTileMap, got %v", err)
	}
}

func TestCollisionWorldVisible(t *testing.T) {
	cw := NewCollisionWorldFromRects([]common.Rect{
		{X: 0, Y: 0, Width: 48, Height: 48},
		{X: 100, Y: 0, Width: 48, Height: 48},
		{X: 2000, Y: 0, Width: 48, Height: 48},
	})

	got := cw.Visible(common.Vec{}, 1024, 576)
	if len(got) != 2 || got[0].X != 0 || got[1].X != 100 {
		t.Fatalf("unexpected visible obstacles at origin: %+v", got)
	}

	got = cw.Visible(common.Vec{X: -1990}, 1024, 576)
	if len(got) != 1 || got[0] != (common.Rect{X: 10, Y: 0, Width: 48, Height: 48}) {
		t.Fatalf("unexpected visible obstacles after scroll: %+v", got)
	}
}
