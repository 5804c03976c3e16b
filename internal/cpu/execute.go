package cpu

import "github.com/tjweir/dmgboy/pkg/bits"

// write16 stores a 16-bit value little-endian across two writes — used
// only by LD (a16),SP.
func (c *CPU) write16(addr uint16, v uint16) {
	c.write8(addr, bits.Lo(v))
	c.write8(addr+1, bits.Hi(v))
}

// execute performs the instruction's semantics against the operand(s)
// fetchOperand already resolved, charging any mnemonic-specific extra
// M-cycles.
func (c *CPU) execute(instr *Instruction) error {
	switch instr.Mnemonic {
	case MNOP:
		// nothing

	case MLD, MLDH:
		c.execLD(instr)

	case MINC:
		c.execIncDec(instr, true)

	case MDEC:
		c.execIncDec(instr, false)

	case MADD:
		c.execAdd(instr)

	case MADC:
		c.aluAdd(uint8(c.operand), true)

	case MSUB:
		c.aluSub(uint8(c.operand), false, true)

	case MSBC:
		c.aluSub(uint8(c.operand), true, true)

	case MAND:
		c.A &= uint8(c.operand)
		c.setFlags(b2i8(c.A == 0), 0, 1, 0)

	case MXOR:
		c.A ^= uint8(c.operand)
		c.setFlags(b2i8(c.A == 0), 0, 0, 0)

	case MOR:
		c.A |= uint8(c.operand)
		c.setFlags(b2i8(c.A == 0), 0, 0, 0)

	case MCP:
		c.aluSub(uint8(c.operand), false, false)

	case MRLCA:
		bit7 := (c.A >> 7) & 1
		c.A = (c.A << 1) | bit7
		c.setFlags(0, 0, 0, b2i8(bit7 == 1))

	case MRRCA:
		bit0 := c.A & 1
		c.A = (c.A >> 1) | (bit0 << 7)
		c.setFlags(0, 0, 0, b2i8(bit0 == 1))

	case MRLA:
		oldCarry := carryBit(c)
		bit7 := (c.A >> 7) & 1
		c.A = (c.A << 1) | oldCarry
		c.setFlags(0, 0, 0, b2i8(bit7 == 1))

	case MRRA:
		oldCarry := carryBit(c)
		bit0 := c.A & 1
		c.A = (c.A >> 1) | (oldCarry << 7)
		c.setFlags(0, 0, 0, b2i8(bit0 == 1))

	case MDAA:
		c.execDAA()

	case MCPL:
		c.A = ^c.A
		c.setFlags(-1, 1, 1, -1)

	case MSCF:
		c.setFlags(-1, 0, 0, 1)

	case MCCF:
		c.setFlags(-1, 0, 0, b2i8(!c.Carry()))

	case MHALT:
		c.Halted = true

	case MSTOP:
		c.Stopped = true

	case MPOP:
		v := c.popStack16()
		if instr.R1 == RAF {
			v &= 0xFFF0
		}
		c.writeReg16(instr.R1, v)

	case MPUSH:
		c.pushStack16(c.readReg16(instr.R1))

	case MJP:
		c.jumpTo(c.operand, false, instr.Cond)

	case MJPHL:
		c.PC = c.HL()

	case MJR:
		offset := int8(uint8(c.operand))
		target := uint16(int32(c.PC) + int32(offset))
		c.jumpTo(target, false, instr.Cond)

	case MCALL:
		c.jumpTo(c.operand, true, instr.Cond)

	case MRET:
		if instr.Cond != CondNone {
			c.tick(1)
		}
		if !condSatisfied(instr.Cond, &c.Registers) {
			return nil
		}
		c.PC = c.popStack16()
		c.tick(1)

	case MRETI:
		c.PC = c.popStack16()
		c.tick(1)
		c.IRQ.IME = true
		c.enablingIME = false

	case MRST:
		c.jumpTo(instr.Param, true, CondNone)

	case MDI:
		c.IRQ.IME = false
		c.enablingIME = false

	case MEI:
		c.enablingIME = true

	case MCB:
		return c.executeCB()
	}

	return nil
}

func carryBit(c *CPU) uint8 {
	if c.Carry() {
		return 1
	}
	return 0
}

func (c *CPU) execLD(instr *Instruction) {
	if c.destIsMem {
		if instr.Mode == AddrA16R && instr.R2 == RSP {
			c.write16(c.memDest, c.operand)
		} else {
			c.write8(c.memDest, uint8(c.operand))
		}
		return
	}

	switch instr.Mode {
	case AddrHLSPR: // LD HL,SP+r8
		sp := c.SP
		r8 := c.operand
		result := sp + r8
		h := (sp&0xF)+(r8&0xF) > 0xF
		cy := (sp&0xFF)+(r8&0xFF) > 0xFF
		c.setFlags(0, 0, b2i8(h), b2i8(cy))
		c.SetHL(result)
		c.tick(1)

	case AddrRR:
		if instr.R1 == RSP && instr.R2 == RHL { // LD SP,HL
			c.SP = c.HL()
			c.tick(1)
			return
		}
		*c.register8(instr.R1) = uint8(c.operand)

	default:
		if instr.R1.Is16() {
			c.writeReg16(instr.R1, c.operand)
		} else {
			*c.register8(instr.R1) = uint8(c.operand)
		}
	}
}

func (c *CPU) execIncDec(instr *Instruction, inc bool) {
	if instr.Mode == AddrMR {
		addr := c.memDest
		v := c.read8(addr)
		var res uint8
		if inc {
			res = v + 1
			c.setFlags(b2i8(res == 0), 0, b2i8((v&0xF)+1 > 0xF), -1)
		} else {
			res = v - 1
			c.setFlags(b2i8(res == 0), 1, b2i8(v&0xF == 0), -1)
		}
		c.write8(addr, res)
		return
	}

	if instr.R1.Is16() {
		v := c.readReg16(instr.R1)
		if inc {
			c.writeReg16(instr.R1, v+1)
		} else {
			c.writeReg16(instr.R1, v-1)
		}
		c.tick(1)
		return
	}

	r := c.register8(instr.R1)
	old := *r
	if inc {
		*r = old + 1
		c.setFlags(b2i8(*r == 0), 0, b2i8((old&0xF)+1 > 0xF), -1)
	} else {
		*r = old - 1
		c.setFlags(b2i8(*r == 0), 1, b2i8(old&0xF == 0), -1)
	}
}

func (c *CPU) execAdd(instr *Instruction) {
	switch instr.Mode {
	case AddrRR:
		if instr.R1 == RHL {
			hl := c.HL()
			rr := c.readReg16(instr.R2)
			res := uint32(hl) + uint32(rr)
			c.setFlags(-1, 0, b2i8((hl&0xFFF)+(rr&0xFFF) > 0xFFF), b2i8(res > 0xFFFF))
			c.SetHL(uint16(res))
			c.tick(1)
			return
		}
		c.aluAdd(uint8(c.operand), false)

	case AddrHLSPR: // ADD SP,r8
		sp := c.SP
		r8 := c.operand
		result := sp + r8
		h := (sp&0xF)+(r8&0xF) > 0xF
		cy := (sp&0xFF)+(r8&0xFF) > 0xFF
		c.setFlags(0, 0, b2i8(h), b2i8(cy))
		c.SP = result
		c.tick(2)

	default: // AddrRMR (ADD A,(HL)) / AddrRD8 (ADD A,d8)
		c.aluAdd(uint8(c.operand), false)
	}
}

func (c *CPU) aluAdd(n uint8, withCarry bool) {
	carry := uint16(0)
	if withCarry && c.Carry() {
		carry = 1
	}
	a := c.A
	res := uint16(a) + uint16(n) + carry
	h := (a&0xF)+(n&0xF)+uint8(carry) > 0xF
	c.A = uint8(res)
	c.setFlags(b2i8(c.A == 0), 0, b2i8(h), b2i8(res > 0xFF))
}

// aluSub implements SUB/SBC/CP: subtraction with optional borrow-in and
// optional write-back to A (CP discards the result).
func (c *CPU) aluSub(n uint8, withCarry bool, store bool) uint8 {
	carry := 0
	if withCarry && c.Carry() {
		carry = 1
	}
	a := c.A
	full := int(a) - int(n) - carry
	h := int(a&0xF)-int(n&0xF)-carry < 0
	res := uint8(full)
	c.setFlags(b2i8(res == 0), 1, b2i8(h), b2i8(full < 0))
	if store {
		c.A = res
	}
	return res
}

// execDAA adjusts A to packed-BCD after an ADD/ADC/SUB/SBC, per the
// standard Sharp LR35902 algorithm keyed on N/H/C.
func (c *CPU) execDAA() {
	a := c.A
	adjust := uint8(0)
	carry := c.Carry()

	if c.Subtract() {
		if c.HalfCarry() {
			adjust += 0x06
		}
		if carry {
			adjust += 0x60
		}
		a -= adjust
	} else {
		if c.HalfCarry() || a&0xF > 0x9 {
			adjust += 0x06
		}
		if carry || a > 0x99 {
			adjust += 0x60
			carry = true
		}
		a += adjust
	}

	c.A = a
	c.setFlags(b2i8(c.A == 0), -1, 0, b2i8(carry))
}
