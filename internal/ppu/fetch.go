package ppu

// pipelineProcess drives one dot of the XFER-mode pixel pipeline: the
// fetcher advances every other dot, while a pixel is pushed out of the
// FIFO (once primed) on every dot.
func (p *PPU) pipelineProcess() {
	p.fifo.mapY = p.regs.ly + p.regs.scy
	p.fifo.mapX = p.fifo.fetchX + p.regs.scx
	p.fifo.tileY = (p.regs.ly + p.regs.scy) % 8 * 2

	if p.lineTicks&1 == 0 {
		p.pipelineFetch()
	}
	p.pipelinePushPixel()
}

func (p *PPU) pipelineFetch() {
	switch p.fifo.state {
	case fsTile:
		p.fifo.fetchedObjects = p.fifo.fetchedObjects[:0]
		if p.regs.bgEnabled() {
			mapArea := p.regs.bgMapArea()
			addr := mapArea + uint16(p.fifo.mapX/8) + uint16(p.fifo.mapY/8)*32
			p.fifo.bgTileIndex = p.ReadVRAM(addr)
			if p.regs.tileDataArea() == 0x8800 {
				p.fifo.bgTileIndex += 128
			}
			p.loadWindowTile()
		}
		if p.regs.objEnabled() && len(p.lineSprites) > 0 {
			p.loadSpriteTile()
		}
		p.fifo.state = fsTileDataLow
		p.fifo.fetchX += 8

	case fsTileDataLow:
		addr := p.regs.tileDataArea() + uint16(p.fifo.bgTileIndex)*16 + uint16(p.fifo.tileY)
		p.fifo.bgLow = p.ReadVRAM(addr)
		p.loadSpriteData(0)
		p.fifo.state = fsTileDataHigh

	case fsTileDataHigh:
		addr := p.regs.tileDataArea() + uint16(p.fifo.bgTileIndex)*16 + uint16(p.fifo.tileY) + 1
		p.fifo.bgHigh = p.ReadVRAM(addr)
		p.loadSpriteData(1)
		p.fifo.state = fsIdle

	case fsIdle:
		p.fifo.state = fsPush

	case fsPush:
		if p.pipelineFIFOAdd() {
			p.fifo.state = fsTile
		}
	}
}

func (p *PPU) loadWindowTile() {
	if !p.windowVisible() {
		return
	}
	winX, winY := uint16(p.regs.wx), uint16(p.regs.wy)
	fetchX := uint16(p.fifo.fetchX)
	ly := uint16(p.regs.ly)
	if fetchX+7 >= winX && fetchX+7 < winX+uint16(screenWidth)+14 && ly >= winY && ly < winY+screenHeight {
		mapArea := p.regs.winMapArea()
		tileRow := uint16(p.windowLine / 8)
		addr := mapArea + (fetchX+7-winX)/8 + tileRow*32
		p.fifo.bgTileIndex = p.ReadVRAM(addr)
		if p.regs.tileDataArea() == 0x8800 {
			p.fifo.bgTileIndex += 128
		}
	}
}

func (p *PPU) loadSpriteTile() {
	for _, idx := range p.lineSprites {
		o := &p.oam[idx]
		spX := int(o.X) - 8 + int(p.regs.scx%8)
		fetchX := int(p.fifo.fetchX)
		if spX >= fetchX && spX < fetchX+8 {
			p.fifo.fetchedObjects = append(p.fifo.fetchedObjects, idx)
		}
		if len(p.fifo.fetchedObjects) >= 3 {
			break
		}
	}
}

func (p *PPU) loadSpriteData(offset int) {
	height := int(p.regs.objHeight())
	for i, idx := range p.fifo.fetchedObjects {
		o := &p.oam[idx]
		tileY := (int(p.regs.ly) + 16 - int(o.Y)) * 2
		if o.yFlip() {
			tileY = (height*2 - 2) - tileY
		}
		tile := o.Tile
		if height == 16 {
			tile &^= 1
		}
		addr := 0x8000 + uint16(tile)*16 + uint16(tileY) + uint16(offset)
		p.fifo.objData[i][offset] = p.ReadVRAM(addr)
	}
}

// pipelineFIFOAdd composites one 8-pixel tile column (BG/window with
// sprite overlay) and pushes it into the FIFO; returns false without
// pushing while the FIFO still holds more than 8 pixels.
func (p *PPU) pipelineFIFOAdd() bool {
	if p.fifo.size() > 8 {
		return false
	}

	x := int(p.fifo.fetchX) - (8 - int(p.regs.scx%8))
	for i := 0; i < 8; i++ {
		bit := 7 - i
		hi := (p.fifo.bgLow >> bit) & 1
		lo := (p.fifo.bgHigh >> bit) & 1
		bgColorIdx := hi | lo<<1

		color := shade(p.regs.bgp, bgColorIdx)
		if !p.regs.bgEnabled() {
			color = shade(p.regs.bgp, 0)
		}
		if p.regs.objEnabled() {
			color = p.fetchSpritePixel(bit, color, bgColorIdx)
		}

		if x >= 0 {
			p.fifo.push(color)
			p.fifo.fifoX++
		}
	}
	return true
}

func (p *PPU) fetchSpritePixel(bgBit int, color uint8, bgColorIdx uint8) uint8 {
	for i, idx := range p.fifo.fetchedObjects {
		o := &p.oam[idx]
		spX := int(o.X) - 8 + int(p.regs.scx%8)
		if spX+8 < int(p.fifo.fifoX) {
			continue
		}
		offset := int(p.fifo.fifoX) - spX
		if offset < 0 || offset > 7 {
			continue
		}
		bit := 7 - offset
		if o.xFlip() {
			bit = offset
		}
		hi := (p.fifo.objData[i][0] >> bit) & 1
		lo := (p.fifo.objData[i][1] >> bit) & 1
		val := hi | lo<<1
		if val == 0 {
			continue
		}
		if o.behindBG() && bgColorIdx != 0 {
			continue
		}
		palette := p.regs.obp0
		if o.palette1() {
			palette = p.regs.obp1
		}
		return shade(palette, val)
	}
	return color
}

func (p *PPU) pipelinePushPixel() {
	if p.fifo.size() <= 8 {
		return
	}
	shadeIdx := p.fifo.pop()
	if p.fifo.lineX >= p.regs.scx%8 {
		offset := int(p.fifo.pushedX) + int(p.regs.ly)*screenWidth
		p.frame[offset] = DefaultPalette[shadeIdx&3]
		p.fifo.pushedX++
	}
	p.fifo.lineX++
}
