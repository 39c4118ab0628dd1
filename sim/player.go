package sim

import "github.com/milk9111/beppu/common"

const (
	DefaultPlayerWidth   = 48
	DefaultPlayerHeight  = 72
	DefaultPlayerScreenY = 330
	DefaultMaxFrame      = 3
	DefaultTicksPerFrame = 8
)

// PlayerConfig is the fixed shape and animation timing of the player sprite.
type PlayerConfig struct {
	Width         float64
	Height        float64
	ScreenY       float64
	MaxFrame      int
	TicksPerFrame int
	// IdleFrames is the frame shown per facing while no key is held.
	// Facings without an entry idle on frame 0.
	IdleFrames map[Direction]int
}

// DefaultPlayerConfig idles on the last frame when facing right and on the
// first frame otherwise, matching the layout of the walk sheets.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Width:         DefaultPlayerWidth,
		Height:        DefaultPlayerHeight,
		ScreenY:       DefaultPlayerScreenY,
		MaxFrame:      DefaultMaxFrame,
		TicksPerFrame: DefaultTicksPerFrame,
		IdleFrames:    map[Direction]int{DirRight: DefaultMaxFrame},
	}
}

// Player is the animation state of the player. The player never moves on
// screen; the world scrolls underneath it.
type Player struct {
	Facing     Direction
	Frame      int
	FrameTimer int
}

// NewPlayer returns a player facing down on its first frame.
func NewPlayer() Player {
	return Player{Facing: DirDown}
}

// Face turns the player toward dir. DirNone keeps the current facing.
func (p *Player) Face(dir Direction) {
	if dir == DirNone {
		return
	}
	p.Facing = dir
}

// Animate advances the walk cycle while moving and snaps to the idle frame
// for the current facing otherwise.
func (p *Player) Animate(cfg PlayerConfig, moving bool) {
	if !moving {
		p.Frame = cfg.IdleFrames[p.Facing]
		return
	}
	p.FrameTimer++
	if p.FrameTimer > cfg.TicksPerFrame {
		p.FrameTimer = 0
		if p.Frame < cfg.MaxFrame {
			p.Frame++
		} else {
			p.Frame = 0
		}
	}
}

// PlayerHitbox is the player's fixed screen-space rectangle, centered horizontally.
func PlayerHitbox(cfg PlayerConfig, screenWidth float64) common.Rect {
	return common.Rect{
		X:      (screenWidth - cfg.Width) / 2,
		Y:      cfg.ScreenY,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

// SourceRect is the region of the facing's walk sheet for the current frame.
func (p Player) SourceRect(cfg PlayerConfig) common.Rect {
	return common.Rect{
		X:      float64(p.Frame) * cfg.Width,
		Y:      0,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}
