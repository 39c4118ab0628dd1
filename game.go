package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/beppu/assets"
	"github.com/milk9111/beppu/common"
	"github.com/milk9111/beppu/levels"
	"github.com/milk9111/beppu/npc"
	"github.com/milk9111/beppu/obj"
	"github.com/milk9111/beppu/prefabs"
	"github.com/milk9111/beppu/sim"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

type gameOptions struct {
	world string
	debug bool
	watch bool
}

type Game struct {
	debug     bool
	worldName string

	spec      *prefabs.WorldSpec
	sim       *sim.Simulation
	state     sim.State
	input     *obj.Input
	collision *obj.CollisionWorld
	dialogue  *DialogueUI
	watcher   *prefabs.Watcher

	background *obj.Sprite
	foreground *obj.Sprite
	npcs       []*obj.Sprite
	player     *obj.Sprite
	sheets     map[sim.Direction]*ebiten.Image

	obstacleColor color.Color
	clipboardOK   bool
	clipboardInit bool
}

func NewGame(opts gameOptions) (*Game, error) {
	spec, err := prefabs.LoadWorldSpec(opts.world)
	if err != nil {
		return nil, err
	}

	tileMap, err := levels.LoadTileMap(spec.Level)
	if err != nil {
		return nil, err
	}
	collision, err := obj.NewCollisionWorld(tileMap)
	if err != nil {
		return nil, err
	}

	bundle, err := assets.LoadBundle(context.Background(), spec.Images())
	if err != nil {
		return nil, err
	}
	log.Printf("assets: loaded %d images", bundle.Len())

	names, err := bindingNames(spec)
	if err != nil {
		return nil, err
	}
	bindings, err := obj.ParseBindings(names)
	if err != nil {
		return nil, err
	}

	g := &Game{
		debug:     opts.debug,
		worldName: opts.world,
		spec:      spec,
		input:     obj.NewInput(bindings),
		collision: collision,
		dialogue:  NewDialogueUI(),
		sheets:    make(map[sim.Direction]*ebiten.Image, len(spec.Player.Sheets)),
	}
	if opts.debug {
		g.obstacleColor = colornames.Red
		if spec.Debug.ObstacleColor != nil {
			g.obstacleColor = spec.Debug.ObstacleColor.Color
		}
	}

	g.background = newSpriteFromSpec(bundle.Image(spec.Background.Image), spec.Background)
	if spec.Foreground.Image != "" {
		g.foreground = newSpriteFromSpec(bundle.Image(spec.Foreground.Image), spec.Foreground)
	}
	for _, n := range spec.NPCs {
		g.npcs = append(g.npcs, newSpriteFromSpec(bundle.Image(n.Image), prefabs.SpriteSpec{
			Image:  n.Image,
			Width:  n.Width,
			Height: n.Height,
			Source: n.Source,
		}))
	}
	for name, path := range spec.Player.Sheets {
		dir, err := sim.ParseDirection(name)
		if err != nil {
			return nil, err
		}
		g.sheets[dir] = bundle.Image(path)
	}

	cfg, err := simConfig(spec, g.background.Width)
	if err != nil {
		return nil, err
	}
	g.sim, err = sim.New(cfg, collision, g.dialogue)
	if err != nil {
		return nil, err
	}
	g.state = g.sim.Init()

	hitbox := g.sim.PlayerHitbox()
	g.player = &obj.Sprite{
		Position: common.Vec{X: hitbox.X, Y: hitbox.Y},
		Width:    hitbox.Width,
		Height:   hitbox.Height,
	}

	if spec.Welcome != "" {
		g.dialogue.Show(spec.Welcome)
	}

	if opts.watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			log.Printf("watch: disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func newSpriteFromSpec(img *ebiten.Image, s prefabs.SpriteSpec) *obj.Sprite {
	sprite := obj.NewSprite(img)
	sprite.Width, sprite.Height = spriteSize(s, sprite.Width, sprite.Height)
	if s.Source.Width > 0 && s.Source.Height > 0 {
		sprite.Source = common.Rect{X: s.Source.X, Y: s.Source.Y, Width: s.Source.Width, Height: s.Source.Height}
	}
	return sprite
}

func (g *Game) Update() error {
	g.input.Update()

	// Dismissal only closes the box; the trigger still re-shows its line each
	// frame and the box ignores it until the line changes or is hidden.
	if g.input.DismissPressed {
		g.dialogue.Dismiss()
	}
	if g.debug && g.input.CopyPressed {
		g.copyPosition()
	}
	g.reload()

	g.state = g.sim.Step(g.state, g.input.Direction())

	g.dialogue.UI.Update()
	return nil
}

// reload rebuilds NPC speakers after their spec or script changed on disk.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		if err != nil {
			log.Printf("watch: %v", err)
		}
	default:
	}

	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}

	if specChanged(changed) {
		spec, err := prefabs.LoadWorldSpec(g.worldName)
		if err != nil {
			log.Printf("watch: reload world: %v", err)
			return
		}
		g.spec.NPCs = spec.NPCs
	}

	for _, s := range g.spec.NPCs {
		if !specChanged(changed) && !scriptChanged(changed, s.Script) {
			continue
		}
		speaker, err := npc.FromSpec(s)
		if err != nil {
			log.Printf("watch: npc %s: %v", s.Name, err)
			continue
		}
		if g.sim.SetSpeaker(s.Name, speaker, s.Message) {
			log.Printf("watch: reloaded npc %s", s.Name)
		}
	}
}

func scriptChanged(changed []string, script string) bool {
	if script == "" {
		return false
	}
	for _, path := range changed {
		if prefabs.IsScriptFile(path) && filepath.Base(path) == filepath.Base(script) {
			return true
		}
	}
	return false
}

func specChanged(changed []string) bool {
	for _, path := range changed {
		if !prefabs.IsScriptFile(path) {
			return true
		}
	}
	return false
}

// copyPosition puts the camera offset and the player's world position on the clipboard.
func (g *Game) copyPosition() {
	if !g.clipboardInit {
		g.clipboardInit = true
		if err := clipboard.Init(); err != nil {
			log.Printf("clipboard: %v", err)
		} else {
			g.clipboardOK = true
		}
	}
	if !g.clipboardOK {
		return
	}
	text := positionText(g.state.Camera.Offset, g.sim.PlayerHitbox())
	clipboard.Write(clipboard.FmtText, []byte(text))
	log.Printf("clipboard: copied %s", text)
}

// positionText reports the camera offset and where the player stands on the background.
func positionText(offset common.Vec, player common.Rect) string {
	world := common.Vec{X: player.X, Y: player.Y}.Sub(offset)
	return fmt.Sprintf("offset=%.0f,%.0f world=%.0f,%.0f", offset.X, offset.Y, world.X, world.Y)
}

func (g *Game) Draw(screen *ebiten.Image) {
	offset := g.state.Camera.Offset

	g.background.Position = offset
	g.background.Draw(screen, common.Vec{})

	for i, s := range g.npcs {
		s.Position = g.state.NPCs[i]
		s.Draw(screen, common.Vec{})
	}

	if g.debug {
		g.collision.DebugDraw(screen, offset, g.obstacleColor)
	}

	cfg := g.sim.Config().Player
	g.player.Image = g.sheets[g.state.Player.Facing]
	g.player.Source = g.state.Player.SourceRect(cfg)
	g.player.Draw(screen, common.Vec{})

	if g.foreground != nil {
		g.foreground.Position = g.state.Foreground
		g.foreground.Draw(screen, common.Vec{})
	}

	g.dialogue.UI.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  %s  facing=%s frame=%d",
			ebiten.ActualFPS(), positionText(offset, g.sim.PlayerHitbox()), g.state.Player.Facing, g.state.Player.Frame), 4, 4)
	}
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
