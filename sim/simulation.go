package sim

import (
	"errors"
	"fmt"

	"github.com/milk9111/beppu/common"
)

const (
	DefaultSpeed   = 3
	DefaultNPCSize = 48
)

var ErrNoBlocker = errors.New("sim: collision blocker is nil")

// Blocker answers whether the player would overlap an obstacle if the world
// were scrolled to offset.
type Blocker interface {
	IsBlocked(player common.Rect, offset common.Vec) bool
}

// NPCConfig places an NPC relative to the background and says what it says.
type NPCConfig struct {
	Name    string
	Offset  common.Vec
	Width   float64
	Height  float64
	Message string
	// Speaker overrides Message when set. Message is the fallback on error.
	Speaker Speaker
}

// Hitbox returns the NPC's rectangle at pos.
func (n NPCConfig) Hitbox(pos common.Vec) common.Rect {
	return common.Rect{X: pos.X, Y: pos.Y, Width: n.Width, Height: n.Height}
}

// Config is the immutable setup of a simulation.
type Config struct {
	ScreenWidth float64
	Speed       float64
	// Start is the initial camera offset, the background's top-left on screen.
	Start      common.Vec
	Player     PlayerConfig
	Foreground common.Vec
	// NPCs are listed in dialogue priority order.
	NPCs []NPCConfig
}

// State is everything that changes from frame to frame.
type State struct {
	Frame      uint64
	Camera     Camera
	Player     Player
	Dialogue   DialogueState
	Foreground common.Vec
	NPCs       []common.Vec
	Visits     []int
}

func (s State) clone() State {
	s.NPCs = append([]common.Vec(nil), s.NPCs...)
	s.Visits = append([]int(nil), s.Visits...)
	return s
}

// Simulation steps the walking world one frame at a time.
type Simulation struct {
	cfg     Config
	blocker Blocker
	trigger Trigger
	hitbox  common.Rect
}

// New validates cfg and returns a simulation that reports dialogue to surface.
// surface may be nil.
func New(cfg Config, blocker Blocker, surface DialogueSurface) (*Simulation, error) {
	if blocker == nil {
		return nil, ErrNoBlocker
	}
	if cfg.ScreenWidth <= 0 {
		cfg.ScreenWidth = common.BaseWidth
	}
	if cfg.Speed <= 0 {
		cfg.Speed = DefaultSpeed
	}
	if cfg.Player.Width <= 0 || cfg.Player.Height <= 0 {
		return nil, fmt.Errorf("sim: invalid player size %gx%g", cfg.Player.Width, cfg.Player.Height)
	}
	if cfg.Player.MaxFrame < 0 || cfg.Player.TicksPerFrame < 0 {
		return nil, fmt.Errorf("sim: invalid player animation max_frame=%d ticks=%d", cfg.Player.MaxFrame, cfg.Player.TicksPerFrame)
	}
	for d, f := range cfg.Player.IdleFrames {
		if f < 0 || f > cfg.Player.MaxFrame {
			return nil, fmt.Errorf("sim: idle frame %d for %s out of range", f, d)
		}
	}

	npcs := make([]NPCConfig, len(cfg.NPCs))
	seen := make(map[string]bool, len(cfg.NPCs))
	for i, npc := range cfg.NPCs {
		if npc.Name == "" {
			return nil, fmt.Errorf("sim: npc %d has no name", i)
		}
		if seen[npc.Name] {
			return nil, fmt.Errorf("sim: duplicate npc %q", npc.Name)
		}
		seen[npc.Name] = true
		if npc.Width <= 0 {
			npc.Width = DefaultNPCSize
		}
		if npc.Height <= 0 {
			npc.Height = DefaultPlayerHeight
		}
		npcs[i] = npc
	}
	cfg.NPCs = npcs

	return &Simulation{
		cfg:     cfg,
		blocker: blocker,
		trigger: Trigger{npcs: npcs, surface: surface},
		hitbox:  PlayerHitbox(cfg.Player, cfg.ScreenWidth),
	}, nil
}

// Config returns the simulation's configuration.
func (s *Simulation) Config() Config {
	return s.cfg
}

// PlayerHitbox returns the fixed screen-space player rectangle.
func (s *Simulation) PlayerHitbox() common.Rect {
	return s.hitbox
}

// SetSpeaker replaces the speaker of the named NPC. An open dialogue picks up
// the new line on the next frame.
func (s *Simulation) SetSpeaker(name string, sp Speaker, message string) bool {
	for i := range s.trigger.npcs {
		if s.trigger.npcs[i].Name != name {
			continue
		}
		s.trigger.npcs[i].Speaker = sp
		s.trigger.npcs[i].Message = message
		s.cfg.NPCs[i] = s.trigger.npcs[i]
		s.trigger.gen++
		return true
	}
	return false
}

// Init returns the state before the first frame.
func (s *Simulation) Init() State {
	st := State{
		Camera:   Camera{Offset: s.cfg.Start},
		Player:   NewPlayer(),
		Dialogue: inactiveDialogue(),
		NPCs:     make([]common.Vec, len(s.cfg.NPCs)),
		Visits:   make([]int, len(s.cfg.NPCs)),
	}
	s.place(&st)
	return st
}

// Step advances prev by one frame with dir as the active movement direction.
// prev is not modified.
func (s *Simulation) Step(prev State, dir Direction) State {
	next := prev.clone()
	next.Frame++

	candidate := next.Camera.Candidate(dir, s.cfg.Speed)
	next.Player.Face(dir)
	next.Player.Animate(s.cfg.Player, dir != DirNone)

	if dir != DirNone && !s.blocker.IsBlocked(s.hitbox, candidate) {
		next.Camera.Offset = candidate
	}

	s.place(&next)
	next.Dialogue = s.trigger.resolve(s.hitbox, next.Player.Facing, next.NPCs, next.Visits, next.Dialogue)
	return next
}

func (s *Simulation) place(st *State) {
	st.Foreground = st.Camera.Place(s.cfg.Foreground)
	for i, npc := range s.cfg.NPCs {
		st.NPCs[i] = st.Camera.Place(npc.Offset)
	}
}
