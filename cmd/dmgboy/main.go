// Command dmgboy is the headless entry point for the emulator core:
// it loads a ROM, optionally loads a battery save, and runs the
// machine to completion or until a decode error is hit.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tjweir/dmgboy/internal/gameboy"
	"github.com/tjweir/dmgboy/internal/gberr"
	"github.com/tjweir/dmgboy/pkg/dmglog"
)

func main() {
	romPath := flag.String("r", "", "ROM file to load")
	logPath := flag.String("l", "", "write logs to this file instead of stderr")
	disableLogging := flag.Bool("disable-logging", false, "suppress all logging")
	trace := flag.Bool("t", false, "enable trace-level logging")
	traceLong := flag.Bool("trace", false, "enable trace-level logging")
	debug := flag.Bool("d", false, "enable debug-level logging")
	debugLong := flag.Bool("debug", false, "enable debug-level logging")
	flag.Parse()

	opts := dmglog.Options{
		Disabled: *disableLogging,
		Trace:    *trace || *traceLong,
		Debug:    *debug || *debugLong,
	}
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dmgboy: could not open log file %s: %v\n", *logPath, err)
			os.Exit(1)
		}
		defer f.Close()
		opts.Output = f
	}
	log := dmglog.New(opts)

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "dmgboy: -r <rom file> is required")
		os.Exit(2)
	}

	gb, err := gameboy.New(*romPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dmgboy: %v\n", err)
		os.Exit(exitCodeFor(err))
	}

	if err := gb.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "dmgboy: %v\n", err)
		if saveErr := gb.Cartridge.FlushSave(); saveErr != nil {
			log.Warnf("dmgboy: final save flush failed: %v", saveErr)
		}
		os.Exit(exitCodeFor(err))
	}

	if err := gb.Cartridge.FlushSave(); err != nil {
		log.Warnf("dmgboy: final save flush failed: %v", err)
	}
}

// exitCodeFor maps a gberr error category to a process exit code.
func exitCodeFor(err error) int {
	var loadErr *gberr.LoadError
	var decodeErr *gberr.DecodeError
	var busErr *gberr.BusError

	switch {
	case errors.As(err, &loadErr):
		return 1
	case errors.As(err, &decodeErr):
		return 2
	case errors.As(err, &busErr):
		return 3
	default:
		return 1
	}
}
