package ppu

import "github.com/tjweir/dmgboy/pkg/bits"

// LCD register addresses.
const (
	LCDCAddr uint16 = 0xFF40
	STATAddr uint16 = 0xFF41
	SCYAddr  uint16 = 0xFF42
	SCXAddr  uint16 = 0xFF43
	LYAddr   uint16 = 0xFF44
	LYCAddr  uint16 = 0xFF45
	BGPAddr  uint16 = 0xFF47
	OBP0Addr uint16 = 0xFF48
	OBP1Addr uint16 = 0xFF49
	WYAddr   uint16 = 0xFF4A
	WXAddr   uint16 = 0xFF4B
)

// LCDC bits.
const (
	lcdcEnable     uint8 = 0x80
	lcdcWinMap     uint8 = 0x40
	lcdcWinEnable  uint8 = 0x20
	lcdcTileData   uint8 = 0x10
	lcdcBGMap      uint8 = 0x08
	lcdcObjSize    uint8 = 0x04
	lcdcObjEnable  uint8 = 0x02
	lcdcBGWEnable  uint8 = 0x01
)

// STAT bits.
const (
	statLYCInt    uint8 = 0x40
	statOAMInt    uint8 = 0x20
	statVBlankInt uint8 = 0x10
	statHBlankInt uint8 = 0x08
	statLYCEqual  uint8 = 0x04
)

// Mode is the current STAT PPU mode.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAM    Mode = 2
	ModeXfer   Mode = 3
)

type registers struct {
	lcdc, stat       uint8
	scy, scx         uint8
	ly, lyc          uint8
	bgp, obp0, obp1  uint8
	wy, wx           uint8
}

func (r *registers) reset() {
	r.lcdc = 0x91
	r.stat = uint8(ModeOAM)
	r.bgp = 0xFC
	r.obp0, r.obp1 = 0xFF, 0xFF
}

func (r *registers) mode() Mode { return Mode(r.stat & 0x03) }
func (r *registers) setMode(m Mode) {
	r.stat = (r.stat &^ 0x03) | uint8(m)
}

func (r *registers) bgEnabled() bool   { return r.lcdc&lcdcBGWEnable != 0 }
func (r *registers) winEnabled() bool  { return r.lcdc&lcdcWinEnable != 0 }
func (r *registers) objEnabled() bool  { return r.lcdc&lcdcObjEnable != 0 }
func (r *registers) enabled() bool     { return r.lcdc&lcdcEnable != 0 }
func (r *registers) objHeight() uint8 {
	if r.lcdc&lcdcObjSize != 0 {
		return 16
	}
	return 8
}
func (r *registers) bgMapArea() uint16 {
	if r.lcdc&lcdcBGMap != 0 {
		return 0x9C00
	}
	return 0x9800
}
func (r *registers) winMapArea() uint16 {
	if r.lcdc&lcdcWinMap != 0 {
		return 0x9C00
	}
	return 0x9800
}
func (r *registers) tileDataArea() uint16 {
	if r.lcdc&lcdcTileData != 0 {
		return 0x8000
	}
	return 0x8800
}

func (r *registers) read(addr uint16) uint8 {
	switch addr {
	case LCDCAddr:
		return r.lcdc
	case STATAddr:
		return r.stat | 0x80
	case SCYAddr:
		return r.scy
	case SCXAddr:
		return r.scx
	case LYAddr:
		return r.ly
	case LYCAddr:
		return r.lyc
	case BGPAddr:
		return r.bgp
	case OBP0Addr:
		return r.obp0
	case OBP1Addr:
		return r.obp1
	case WYAddr:
		return r.wy
	case WXAddr:
		return r.wx
	}
	return 0xFF
}

func (r *registers) write(addr uint16, v uint8) {
	switch addr {
	case LCDCAddr:
		r.lcdc = v
	case STATAddr:
		r.stat = (r.stat & 0x07) | (v &^ 0x07)
	case SCYAddr:
		r.scy = v
	case SCXAddr:
		r.scx = v
	case LYAddr:
		// read-only from the guest's perspective
	case LYCAddr:
		r.lyc = v
	case BGPAddr:
		r.bgp = v
	case OBP0Addr:
		r.obp0 = v
	case OBP1Addr:
		r.obp1 = v
	case WYAddr:
		r.wy = v
	case WXAddr:
		r.wx = v
	}
}

// shade maps a 2-bit color index through a palette byte to a 0-3 shade.
func shade(palette uint8, index uint8) uint8 {
	return bits.Val(palette, index*2) | bits.Val(palette, index*2+1)<<1
}
