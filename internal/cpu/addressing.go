package cpu

// fetchOperand resolves an instruction's addressing mode into c.operand
// (the value an instruction reads) and, when the destination is memory,
// c.memDest/c.destIsMem. Each mode
// charges the M-cycles the table prescribes; execute then charges
// whatever is specific to the mnemonic itself (branch-taken cost, the
// extra cycle on 16-bit INC/DEC, and so on).
func (c *CPU) fetchOperand(instr *Instruction) error {
	c.destIsMem = false

	switch instr.Mode {
	case AddrImplicit:
		// nothing to fetch

	case AddrR:
		if instr.R1.Is16() {
			c.operand = c.readReg16(instr.R1)
		} else {
			c.operand = uint16(*c.register8(instr.R1))
		}

	case AddrRR:
		if instr.R2.Is16() {
			c.operand = c.readReg16(instr.R2)
		} else {
			c.operand = uint16(*c.register8(instr.R2))
		}

	case AddrMRR:
		c.memDest = c.regMemAddr(instr.R1)
		c.destIsMem = true
		c.operand = uint16(*c.register8(instr.R2))

	case AddrRMR:
		c.operand = uint16(c.read8(c.regMemAddr(instr.R2)))

	case AddrRD8:
		c.operand = uint16(c.fetch8())

	case AddrRD16, AddrD16:
		c.operand = c.fetch16()

	case AddrD8:
		// JR r8 (signed displacement) and the STOP padding byte.
		c.operand = uint16(c.fetch8())

	case AddrRHLI:
		addr := c.HL()
		c.operand = uint16(c.read8(addr))
		c.SetHL(addr + 1)

	case AddrRHLD:
		addr := c.HL()
		c.operand = uint16(c.read8(addr))
		c.SetHL(addr - 1)

	case AddrHLIR:
		addr := c.HL()
		c.memDest = addr
		c.destIsMem = true
		c.operand = uint16(*c.register8(instr.R2))
		c.SetHL(addr + 1)

	case AddrHLDR:
		addr := c.HL()
		c.memDest = addr
		c.destIsMem = true
		c.operand = uint16(*c.register8(instr.R2))
		c.SetHL(addr - 1)

	case AddrRA8:
		off := c.fetch8()
		c.operand = uint16(c.read8(0xFF00 + uint16(off)))

	case AddrA8R:
		off := c.fetch8()
		c.memDest = 0xFF00 + uint16(off)
		c.destIsMem = true
		c.operand = uint16(*c.register8(instr.R2))

	case AddrA16R:
		addr := c.fetch16()
		c.memDest = addr
		c.destIsMem = true
		if instr.R2 == RSP {
			c.operand = c.SP
		} else {
			c.operand = uint16(*c.register8(instr.R2))
		}

	case AddrRA16:
		addr := c.fetch16()
		c.operand = uint16(c.read8(addr))

	case AddrHLSPR:
		b := c.fetch8()
		c.operand = uint16(int16(int8(b)))

	case AddrMR:
		c.memDest = c.regMemAddr(instr.R1)
		c.destIsMem = true

	case AddrMRD8:
		c.memDest = c.regMemAddr(instr.R1)
		c.destIsMem = true
		c.operand = uint16(c.fetch8())
	}

	return nil
}

// regMemAddr resolves a register-indirect memory address. A bare C
// register (as opposed to the BC pair) addresses the high page, per the
// (C),A / A,(C) forms used by 0xE2/0xF2.
func (c *CPU) regMemAddr(id RegID) uint16 {
	switch id {
	case RC:
		return 0xFF00 + uint16(c.C)
	case RBC:
		return c.BC()
	case RDE:
		return c.DE()
	case RHL:
		return c.HL()
	}
	panic("cpu: not a valid indirect-address register")
}
