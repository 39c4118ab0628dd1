package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/beppu/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (draw obstacles, F2 copies position)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	worldName := flag.String("world", "", "world spec in prefabs/ (basename, .yaml optional)")
	watch := flag.Bool("watch", false, "reload NPC dialogue when prefabs/ changes on disk")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("Beppu Town")

	game, err := NewGame(gameOptions{world: *worldName, debug: *debug, watch: *watch})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
