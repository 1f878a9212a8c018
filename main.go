package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs/system"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	assetsDir := flag.String("assets", "assets", "directory holding the sprite folders")
	watch := flag.Bool("watch", false, "reload player tuning when prefabs/player.yaml changes")
	wanderers := flag.Int("wanderers", -1, "number of wanderers to spawn (-1 uses the prefab count)")
	flag.Parse()

	system.Debug = *debug

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("topdown")

	game, err := NewGame(Options{
		AssetsDir: *assetsDir,
		Debug:     *debug,
		Watch:     *watch,
		Wanderers: *wanderers,
		Seed:      uint64(time.Now().UnixNano()),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
