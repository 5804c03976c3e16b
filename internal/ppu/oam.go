package ppu

import "sort"

// OAM flag bits.
const (
	oamPriority uint8 = 0x80
	oamYFlip    uint8 = 0x40
	oamXFlip    uint8 = 0x20
	oamPalette  uint8 = 0x10
)

// object is one of the 40 OAM entries.
type object struct {
	Y, X uint8
	Tile uint8
	Flags uint8
}

func (o *object) yFlip() bool    { return o.Flags&oamYFlip != 0 }
func (o *object) xFlip() bool    { return o.Flags&oamXFlip != 0 }
func (o *object) behindBG() bool { return o.Flags&oamPriority != 0 }
func (o *object) palette1() bool { return o.Flags&oamPalette != 0 }

// scanLine selects up to 10 objects visible on ly, ordered by X,
// returning indices into p.oam rather than pointers — there is no
// aliasing of OAM memory outside the PPU.
func (p *PPU) scanLine(ly uint8) []int {
	height := p.regs.objHeight()
	var found []int
	for i := range p.oam {
		o := &p.oam[i]
		if o.X == 0 {
			continue
		}
		top := int(o.Y) - 16
		if int(ly) >= top && int(ly) < top+int(height) {
			found = append(found, i)
			if len(found) >= 10 {
				break
			}
		}
	}
	sort.SliceStable(found, func(a, b int) bool {
		return p.oam[found[a]].X < p.oam[found[b]].X
	})
	return found
}

func (p *PPU) readOAM(addr uint16) uint8 {
	idx := addr - 0xFE00
	entry := idx / 4
	if int(entry) >= len(p.oam) {
		return 0xFF
	}
	o := &p.oam[entry]
	switch idx % 4 {
	case 0:
		return o.Y
	case 1:
		return o.X
	case 2:
		return o.Tile
	default:
		return o.Flags
	}
}

func (p *PPU) writeOAM(addr uint16, v uint8) {
	idx := addr
	if idx >= 0xFE00 {
		idx -= 0xFE00
	}
	entry := idx / 4
	if int(entry) >= len(p.oam) {
		return
	}
	o := &p.oam[entry]
	switch idx % 4 {
	case 0:
		o.Y = v
	case 1:
		o.X = v
	case 2:
		o.Tile = v
	default:
		o.Flags = v
	}
}

// WriteOAM implements dma.Dest: the DMA engine addresses OAM with a
// plain 0-0x9F byte index rather than the 0xFE00-based bus address.
func (p *PPU) WriteOAM(index uint16, v uint8) {
	p.writeOAM(index, v)
}
