// Command dmgboy-gui is the windowed entry point: it loads a ROM and
// drives it through an ebiten window instead of the headless Run loop.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tjweir/dmgboy/internal/gameboy"
	"github.com/tjweir/dmgboy/pkg/display"
	"github.com/tjweir/dmgboy/pkg/dmglog"
)

func main() {
	romPath := flag.String("r", "", "ROM file to load")
	scale := flag.Int("scale", 3, "integer window scale factor")
	debug := flag.Bool("d", false, "enable debug-level logging")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "dmgboy-gui: -r <rom file> is required")
		os.Exit(2)
	}

	log := dmglog.New(dmglog.Options{Debug: *debug})

	gb, err := gameboy.New(*romPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dmgboy-gui: %v\n", err)
		os.Exit(1)
	}
	gb.PPU.OnFrame = func() {
		if err := gb.Cartridge.FlushSave(); err != nil {
			log.Warnf("dmgboy-gui: %v", err)
		}
	}

	game := display.New(gb, *scale)
	ebiten.SetWindowSize(160*(*scale), 144*(*scale))
	ebiten.SetWindowTitle("dmgboy")
	if err := ebiten.RunGame(game); err != nil {
		fmt.Fprintf(os.Stderr, "dmgboy-gui: %v\n", err)
		os.Exit(1)
	}
}
