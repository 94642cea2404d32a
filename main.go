package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	settingsPath := flag.String("settings", "", "settings yaml to load and save (F5)")
	watch := flag.Bool("watch", false, "reload the settings file and zone scripts when they change")
	debug := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("voxelwalk")

	game, err := NewGame(Config{SettingsPath: *settingsPath, Watch: *watch, Debug: *debug})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
