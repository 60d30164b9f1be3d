package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable chipmunk debug drawing (toggle at runtime with F1)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	specName := flag.String("spec", "sandbox.yaml", "sandbox prefab in prefabs/ (overridable on disk)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("softbody sandbox")

	game := NewGame(*specName, *debug)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
