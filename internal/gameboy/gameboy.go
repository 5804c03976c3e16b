// Package gameboy assembles the CPU, bus, and peripherals into a
// runnable machine and drives the M-cycle scheduler: every CPU
// M-cycle charges the timer and PPU four T-cycles and the DMA engine
// one M-cycle.
package gameboy

import (
	"time"

	"github.com/tjweir/dmgboy/internal/bus"
	"github.com/tjweir/dmgboy/internal/cartridge"
	"github.com/tjweir/dmgboy/internal/cpu"
	"github.com/tjweir/dmgboy/internal/dma"
	"github.com/tjweir/dmgboy/internal/interrupts"
	"github.com/tjweir/dmgboy/internal/joypad"
	"github.com/tjweir/dmgboy/internal/ppu"
	"github.com/tjweir/dmgboy/internal/ram"
	"github.com/tjweir/dmgboy/internal/serial"
	"github.com/tjweir/dmgboy/internal/timer"
	"github.com/tjweir/dmgboy/pkg/dmglog"
)

// scheduler implements cpu.Clock: it fans one CPU M-cycle out to the
// Timer and PPU (at T-cycle granularity) and the DMA engine.
type scheduler struct {
	timer *timer.Timer
	ppu   *ppu.PPU
	dma   *dma.DMA
}

func (s *scheduler) Tick(mCycles int) {
	s.timer.Tick(mCycles * 4)
	s.ppu.Tick(mCycles * 4)
	s.dma.Tick(mCycles)
}

// GameBoy owns every subsystem and exposes the operations the external
// collaborators (CLI, UI) drive.
type GameBoy struct {
	CPU       *cpu.CPU
	Bus       *bus.Bus
	Cartridge *cartridge.Cartridge
	PPU       *ppu.PPU
	Joypad    *joypad.Joypad
	Serial    *serial.Port
	IRQ       *interrupts.Controller

	log dmglog.Logger
}

// New loads romPath and assembles a GameBoy ready to run.
func New(romPath string, log dmglog.Logger) (*GameBoy, error) {
	if log == nil {
		log = dmglog.Null()
	}

	cart, err := cartridge.Load(romPath, log)
	if err != nil {
		return nil, err
	}

	irq := interrupts.NewController()
	wram := &ram.WRAM{}
	hram := &ram.HRAM{}
	p := ppu.New(irq)
	t := timer.New(irq)
	j := joypad.New(irq)
	s := serial.New()

	b := bus.New(cart, wram, hram, p, t, j, s, nil, irq, log)
	d := dma.New(b, p)
	b.DMA = d

	sched := &scheduler{timer: t, ppu: p, dma: d}
	c := cpu.New(b, sched, irq, log)

	gb := &GameBoy{
		CPU: c, Bus: b, Cartridge: cart, PPU: p, Joypad: j, Serial: s, IRQ: irq,
		log: log,
	}
	return gb, nil
}

// Step runs exactly one CPU instruction (or halted tick), returning any
// decode error the CPU produced.
func (g *GameBoy) Step() error {
	return g.CPU.Step()
}

// Run drives the machine until Step returns an error or the guest
// executes STOP, pacing frame production to roughly 60 Hz and flushing
// the cartridge's battery save whenever it has pending writes.
func (g *GameBoy) Run() error {
	g.PPU.OnFrame = func() {
		if err := g.Cartridge.FlushSave(); err != nil {
			g.log.Warnf("gameboy: %v", err)
		}
	}

	const frameInterval = time.Second / 60
	lastFrame := g.PPU.FrameCount()
	frameStart := time.Now()

	for {
		if err := g.Step(); err != nil {
			return err
		}
		if g.CPU.Stopped {
			g.log.Infof("gameboy: STOP executed, halting emulation")
			return nil
		}
		if g.PPU.FrameCount() != lastFrame {
			lastFrame = g.PPU.FrameCount()
			if elapsed := time.Since(frameStart); elapsed < frameInterval {
				time.Sleep(frameInterval - elapsed)
			}
			frameStart = time.Now()
		}
	}
}
