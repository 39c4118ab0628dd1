package main

import (
	"fmt"

	"github.com/milk9111/beppu/common"
	"github.com/milk9111/beppu/npc"
	"github.com/milk9111/beppu/prefabs"
	"github.com/milk9111/beppu/sim"
)

func playerConfig(ps prefabs.PlayerSpec) (sim.PlayerConfig, error) {
	cfg := sim.DefaultPlayerConfig()
	if ps.Width > 0 {
		cfg.Width = ps.Width
	}
	if ps.Height > 0 {
		cfg.Height = ps.Height
	}
	if ps.ScreenY != 0 {
		cfg.ScreenY = ps.ScreenY
	}
	if ps.MaxFrame > 0 {
		cfg.MaxFrame = ps.MaxFrame
	}
	if ps.TicksPerFrame > 0 {
		cfg.TicksPerFrame = ps.TicksPerFrame
	}
	if ps.IdleFrames != nil {
		cfg.IdleFrames = make(map[sim.Direction]int, len(ps.IdleFrames))
		for name, frame := range ps.IdleFrames {
			dir, err := sim.ParseDirection(name)
			if err != nil {
				return sim.PlayerConfig{}, fmt.Errorf("player idle frames: %w", err)
			}
			cfg.IdleFrames[dir] = frame
		}
	}
	return cfg, nil
}

func bindingNames(spec *prefabs.WorldSpec) (map[sim.Direction][]string, error) {
	out := make(map[sim.Direction][]string, len(spec.Bindings))
	for name, keys := range spec.Bindings {
		dir, err := sim.ParseDirection(name)
		if err != nil {
			return nil, fmt.Errorf("bindings: %w", err)
		}
		out[dir] = append(out[dir], keys...)
	}
	return out, nil
}

// spriteSize is the drawn size of a sprite of an imgW x imgH image.
func spriteSize(s prefabs.SpriteSpec, imgW, imgH float64) (float64, float64) {
	w, h := imgW, imgH
	if s.Width > 0 {
		w = s.Width
	}
	if s.Height > 0 {
		h = s.Height
	}
	return w + s.SizeAdjust.W, h + s.SizeAdjust.H
}

func cameraStart(cam prefabs.CameraSpec, screenWidth, backgroundWidth float64) common.Vec {
	start := common.Vec{X: cam.StartX, Y: cam.StartY}
	if cam.CenterX {
		start.X = (screenWidth - backgroundWidth) / 2
	}
	return start
}

func npcConfigs(specs []prefabs.NPCSpec) ([]sim.NPCConfig, error) {
	out := make([]sim.NPCConfig, 0, len(specs))
	for _, s := range specs {
		speaker, err := npc.FromSpec(s)
		if err != nil {
			return nil, err
		}
		out = append(out, sim.NPCConfig{
			Name:    s.Name,
			Offset:  common.Vec{X: s.Offset.X, Y: s.Offset.Y},
			Width:   s.Width,
			Height:  s.Height,
			Message: s.Message,
			Speaker: speaker,
		})
	}
	return out, nil
}

// simConfig builds the simulation setup for spec once the background size is known.
func simConfig(spec *prefabs.WorldSpec, backgroundWidth float64) (sim.Config, error) {
	player, err := playerConfig(spec.Player)
	if err != nil {
		return sim.Config{}, err
	}
	npcs, err := npcConfigs(spec.NPCs)
	if err != nil {
		return sim.Config{}, err
	}
	return sim.Config{
		ScreenWidth: common.BaseWidth,
		Speed:       spec.Speed,
		Start:       cameraStart(spec.Camera, common.BaseWidth, backgroundWidth),
		Player:      player,
		Foreground:  common.Vec{X: spec.Foreground.Offset.X, Y: spec.Foreground.Offset.Y},
		NPCs:        npcs,
	}, nil
}
