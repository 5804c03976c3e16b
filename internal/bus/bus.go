// Package bus implements the CPU's address space: a static decode
// table routing each access to cartridge, RAM, PPU, or an I/O register
// handler. The bus itself owns no mutable game
// state beyond wiring; every access is dispatched to the owning
// subsystem.
package bus

import (
	"github.com/tjweir/dmgboy/internal/dma"
	"github.com/tjweir/dmgboy/internal/interrupts"
	"github.com/tjweir/dmgboy/internal/joypad"
	"github.com/tjweir/dmgboy/internal/ppu"
	"github.com/tjweir/dmgboy/internal/ram"
	"github.com/tjweir/dmgboy/internal/serial"
	"github.com/tjweir/dmgboy/internal/timer"
	"github.com/tjweir/dmgboy/pkg/dmglog"
)

// Cartridge is the bus's view of cartridge-space reads/writes.
type Cartridge interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// Bus owns no state of its own; it dispatches every address to one of
// the subsystems it is constructed with.
type Bus struct {
	Cart    Cartridge
	WRAM    *ram.WRAM
	HRAM    *ram.HRAM
	PPU     *ppu.PPU
	Timer   *timer.Timer
	Joypad  *joypad.Joypad
	Serial  *serial.Port
	DMA     *dma.DMA
	IRQ     *interrupts.Controller
	log     dmglog.Logger

	soundWarned bool
}

// New wires a Bus over its already-constructed subsystems.
func New(cart Cartridge, wram *ram.WRAM, hram *ram.HRAM, p *ppu.PPU, t *timer.Timer, j *joypad.Joypad, s *serial.Port, d *dma.DMA, irq *interrupts.Controller, log dmglog.Logger) *Bus {
	if log == nil {
		log = dmglog.Null()
	}
	return &Bus{Cart: cart, WRAM: wram, HRAM: hram, PPU: p, Timer: t, Joypad: j, Serial: s, DMA: d, IRQ: irq, log: log}
}

// Read dispatches a single-byte read per the decode table.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		return b.Cart.Read(addr)
	case addr < 0xA000:
		return b.PPU.ReadVRAM(addr)
	case addr < 0xC000:
		return b.Cart.Read(addr)
	case addr < 0xE000:
		return b.WRAM.Read(addr - 0xC000)
	case addr < 0xFE00:
		return 0 // echo RAM: reads return 0, not a live WRAM mirror
	case addr < 0xFEA0:
		if b.DMA.Active() {
			return 0xFF
		}
		return b.PPU.ReadOAM(addr)
	case addr < 0xFF00:
		return 0 // unmapped
	case addr < 0xFF80:
		return b.readIO(addr)
	case addr < 0xFFFF:
		return b.HRAM.Read(addr - 0xFF80)
	default: // 0xFFFF
		return b.IRQ.Read(addr)
	}
}

// Write dispatches a single-byte write per the decode table.
func (b *Bus) Write(addr uint16, v uint8) {
	switch {
	case addr < 0x8000:
		b.Cart.Write(addr, v)
	case addr < 0xA000:
		b.PPU.WriteVRAM(addr, v)
	case addr < 0xC000:
		b.Cart.Write(addr, v)
	case addr < 0xE000:
		b.WRAM.Write(addr-0xC000, v)
	case addr < 0xFE00:
		// echo RAM: writes are ignored, not forwarded to WRAM
	case addr < 0xFEA0:
		if b.DMA.Active() {
			return
		}
		b.PPU.WriteOAM(addr, v)
	case addr < 0xFF00:
		// unmapped, ignored
	case addr < 0xFF80:
		b.writeIO(addr, v)
	case addr < 0xFFFF:
		b.HRAM.Write(addr-0xFF80, v)
	default: // 0xFFFF
		b.IRQ.Write(addr, v)
	}
}

func (b *Bus) readIO(addr uint16) uint8 {
	switch {
	case addr == joypad.Register:
		return b.Joypad.Read(addr)
	case addr == serial.DataAddr || addr == serial.ControlAddr:
		return b.Serial.Read(addr)
	case addr >= timer.DivAddr && addr <= timer.TacAddr:
		return b.Timer.Read(addr)
	case addr == interrupts.FlagRegister:
		return b.IRQ.Read(addr)
	case addr >= 0xFF10 && addr <= 0xFF3F:
		b.warnSoundOnce()
		return 0xFF
	case addr >= ppu.LCDCAddr && addr <= ppu.WXAddr:
		return b.PPU.ReadRegister(addr)
	default:
		return 0 // unlisted I/O register
	}
}

func (b *Bus) writeIO(addr uint16, v uint8) {
	switch {
	case addr == joypad.Register:
		b.Joypad.Write(addr, v)
	case addr == serial.DataAddr || addr == serial.ControlAddr:
		b.Serial.Write(addr, v)
	case addr >= timer.DivAddr && addr <= timer.TacAddr:
		b.Timer.Write(addr, v)
	case addr == interrupts.FlagRegister:
		b.IRQ.Write(addr, v)
	case addr >= 0xFF10 && addr <= 0xFF3F:
		b.warnSoundOnce()
	case addr == dma.Register:
		b.DMA.Start(v)
	case addr >= ppu.LCDCAddr && addr <= ppu.WXAddr:
		b.PPU.WriteRegister(addr, v)
	}
}

func (b *Bus) warnSoundOnce() {
	if b.soundWarned {
		return
	}
	b.soundWarned = true
	b.log.Warnf("bus: sound registers accessed but no APU is modeled")
}
