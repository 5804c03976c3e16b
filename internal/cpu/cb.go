package cpu

import "github.com/tjweir/dmgboy/pkg/bits"

// executeCB decodes and runs one CB-prefixed opcode: two bit fields
// select the operation (rotate/shift/swap, BIT, RES, SET) and the bit
// index, the low three bits select the operand register via reg8Order.
// (HL) as the operand adds the read (and, except for BIT, the
// write-back) M-cycle on top of the base 2.
func (c *CPU) executeCB() error {
	cbOp := c.fetch8()
	op := cbOp >> 6
	bit := (cbOp >> 3) & 7
	reg := reg8Order[cbOp&7]

	var val uint8
	if reg == RHL {
		val = c.read8(c.HL())
	} else {
		val = *c.register8(reg)
	}

	switch op {
	case 0:
		var res uint8
		switch bit {
		case 0:
			res = c.cbRLC(val)
		case 1:
			res = c.cbRRC(val)
		case 2:
			res = c.cbRL(val)
		case 3:
			res = c.cbRR(val)
		case 4:
			res = c.cbSLA(val)
		case 5:
			res = c.cbSRA(val)
		case 6:
			res = c.cbSWAP(val)
		case 7:
			res = c.cbSRL(val)
		}
		c.storeCBResult(reg, res)

	case 1: // BIT n,r: read-only, no write-back
		c.setFlags(b2i8(!bits.Test(val, bit)), 0, 1, -1)

	case 2: // RES n,r
		c.storeCBResult(reg, bits.Reset(val, bit))

	case 3: // SET n,r
		c.storeCBResult(reg, bits.Set(val, bit))
	}

	return nil
}

func (c *CPU) storeCBResult(reg RegID, v uint8) {
	if reg == RHL {
		c.write8(c.HL(), v)
		return
	}
	*c.register8(reg) = v
}

func (c *CPU) cbRLC(v uint8) uint8 {
	out := (v >> 7) & 1
	res := (v << 1) | out
	c.setFlags(b2i8(res == 0), 0, 0, b2i8(out == 1))
	return res
}

func (c *CPU) cbRRC(v uint8) uint8 {
	out := v & 1
	res := (v >> 1) | (out << 7)
	c.setFlags(b2i8(res == 0), 0, 0, b2i8(out == 1))
	return res
}

func (c *CPU) cbRL(v uint8) uint8 {
	old := carryBit(c)
	out := (v >> 7) & 1
	res := (v << 1) | old
	c.setFlags(b2i8(res == 0), 0, 0, b2i8(out == 1))
	return res
}

func (c *CPU) cbRR(v uint8) uint8 {
	old := carryBit(c)
	out := v & 1
	res := (v >> 1) | (old << 7)
	c.setFlags(b2i8(res == 0), 0, 0, b2i8(out == 1))
	return res
}

func (c *CPU) cbSLA(v uint8) uint8 {
	out := (v >> 7) & 1
	res := v << 1
	c.setFlags(b2i8(res == 0), 0, 0, b2i8(out == 1))
	return res
}

func (c *CPU) cbSRA(v uint8) uint8 {
	out := v & 1
	res := (v >> 1) | (v & 0x80)
	c.setFlags(b2i8(res == 0), 0, 0, b2i8(out == 1))
	return res
}

func (c *CPU) cbSWAP(v uint8) uint8 {
	res := (v << 4) | (v >> 4)
	c.setFlags(b2i8(res == 0), 0, 0, 0)
	return res
}

func (c *CPU) cbSRL(v uint8) uint8 {
	out := v & 1
	res := v >> 1
	c.setFlags(b2i8(res == 0), 0, 0, b2i8(out == 1))
	return res
}
