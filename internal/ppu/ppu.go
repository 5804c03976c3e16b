// Package ppu implements the pixel-FIFO-driven picture processing unit:
// OAM scan, the five-state BG/window/sprite pixel fetcher, STAT mode
// transitions, and a read-only ARGB8888 frame buffer.
package ppu

import "github.com/tjweir/dmgboy/internal/interrupts"

const (
	linesPerFrame = 154
	ticksPerLine  = 456
	screenWidth   = 160
	screenHeight  = 144
)

// DefaultPalette maps a 2-bit shade to an ARGB8888 pixel; index 0 is
// the lightest shade, 3 the darkest, matching the original DMG panel.
var DefaultPalette = [4]uint32{
	0xFFE0F8D0,
	0xFF88C070,
	0xFF346856,
	0xFF081820,
}

// PPU is the picture processing unit.
type PPU struct {
	regs registers
	vram [0x2000]uint8
	oam  [40]object

	fifo pixelFIFO

	lineTicks  int
	windowLine uint8
	lineSprites []int

	frame       [screenWidth * screenHeight]uint32
	frameCount  uint64

	irq *interrupts.Controller

	// OnFrame is invoked once a full frame lands in the buffer (at the
	// HBlank->VBlank transition of the final visible line). The owning
	// gameboy.GameBoy uses this to flush the cartridge's battery save;
	// frame pacing polls FrameCount instead.
	OnFrame func()
}

// New returns a PPU in its post-boot state.
func New(irq *interrupts.Controller) *PPU {
	p := &PPU{irq: irq}
	p.regs.reset()
	return p
}

// Frame returns a read-only snapshot of the current frame buffer: a
// copy, never a slice aliasing PPU-owned memory.
func (p *PPU) Frame() [screenWidth * screenHeight]uint32 {
	return p.frame
}

// FrameCount returns the number of frames completed since reset.
func (p *PPU) FrameCount() uint64 { return p.frameCount }

func (p *PPU) ReadVRAM(addr uint16) uint8  { return p.vram[addr-0x8000] }
func (p *PPU) WriteVRAM(addr uint16, v uint8) { p.vram[addr-0x8000] = v }

func (p *PPU) ReadOAM(addr uint16) uint8 { return p.readOAM(addr) }

func (p *PPU) ReadRegister(addr uint16) uint8     { return p.regs.read(addr) }
func (p *PPU) WriteRegister(addr uint16, v uint8) { p.regs.write(addr, v) }

// Mode returns the current STAT mode.
func (p *PPU) Mode() Mode { return p.regs.mode() }

// Tick advances the PPU by tCycles T-cycles. The scheduler charges
// the PPU 4 T-cycles per CPU M-cycle.
func (p *PPU) Tick(tCycles int) {
	if !p.regs.enabled() {
		return
	}
	for i := 0; i < tCycles; i++ {
		p.step()
	}
}

func (p *PPU) step() {
	p.lineTicks++
	switch p.regs.mode() {
	case ModeOAM:
		p.stepOAM()
	case ModeXfer:
		p.stepXfer()
	case ModeHBlank:
		p.stepHBlank()
	case ModeVBlank:
		p.stepVBlank()
	}
}

func (p *PPU) stepOAM() {
	if p.lineTicks == 1 {
		p.lineSprites = p.scanLine(p.regs.ly)
	}
	if p.lineTicks >= 80 {
		p.regs.setMode(ModeXfer)
		p.fifo.reset()
	}
}

func (p *PPU) stepXfer() {
	p.pipelineProcess()
	if p.fifo.pushedX >= screenWidth {
		p.fifo.queue = p.fifo.queue[:0]
		p.regs.setMode(ModeHBlank)
		if p.regs.stat&statHBlankInt != 0 {
			p.irq.Request(interrupts.LCDFlag)
		}
	}
}

func (p *PPU) stepHBlank() {
	if p.lineTicks < ticksPerLine {
		return
	}
	p.incrementLY()
	if p.regs.ly >= screenHeight {
		p.regs.setMode(ModeVBlank)
		p.irq.Request(interrupts.VBlankFlag)
		if p.regs.stat&statVBlankInt != 0 {
			p.irq.Request(interrupts.LCDFlag)
		}
		p.frameCount++
		if p.OnFrame != nil {
			p.OnFrame()
		}
	} else {
		p.regs.setMode(ModeOAM)
	}
	p.lineTicks = 0
}

func (p *PPU) stepVBlank() {
	if p.lineTicks < ticksPerLine {
		return
	}
	p.incrementLY()
	if int(p.regs.ly) >= linesPerFrame {
		p.regs.setMode(ModeOAM)
		p.regs.ly = 0
		p.windowLine = 0
	}
	p.lineTicks = 0
}

func (p *PPU) incrementLY() {
	if p.windowVisible() && p.regs.ly >= p.regs.wy && int(p.regs.ly) < int(p.regs.wy)+screenHeight {
		p.windowLine++
	}
	p.regs.ly++
	if p.regs.ly == p.regs.lyc {
		p.regs.stat |= statLYCEqual
		if p.regs.stat&statLYCInt != 0 {
			p.irq.Request(interrupts.LCDFlag)
		}
	} else {
		p.regs.stat &^= statLYCEqual
	}
}

func (p *PPU) windowVisible() bool {
	return p.regs.winEnabled() && p.regs.wx <= 166 && p.regs.wy < screenHeight
}
