// Package cpu implements the Sharp LR35902-compatible CPU:
// fetch/decode/execute over the opcode descriptor table,
// addressing-mode-driven operand fetch, flag semantics, the CB
// bit-manipulation page, and interrupt service.
package cpu

import (
	"github.com/tjweir/dmgboy/internal/gberr"
	"github.com/tjweir/dmgboy/internal/interrupts"
	"github.com/tjweir/dmgboy/pkg/bits"
	"github.com/tjweir/dmgboy/pkg/dmglog"
)

// MemBus is the CPU's view of the address bus: plain byte reads/writes
// with no cycle-charging of its own. The bus never advances the
// clock; instructions charge M-cycles explicitly.
type MemBus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// Clock is the scheduler the CPU charges M-cycles against.
type Clock interface {
	Tick(mCycles int)
}

// CPU is the Sharp LR35902-compatible processor core.
type CPU struct {
	Registers
	PC, SP uint16

	Halted bool

	// Stopped is set by the STOP instruction: no low-power mode is
	// modeled, so it just halts execution. The owning gameboy.GameBoy
	// loop observes it and exits cleanly.
	Stopped bool

	IRQ *interrupts.Controller

	bus   MemBus
	clock Clock
	log   dmglog.Logger

	enablingIME bool

	// scratch, retained for diagnostics and HL_SPR/operand plumbing.
	opcode    uint8
	operand   uint16
	memDest   uint16
	destIsMem bool
}

// New returns a CPU in its post-boot state.
func New(bus MemBus, clock Clock, irq *interrupts.Controller, log dmglog.Logger) *CPU {
	c := &CPU{
		bus:   bus,
		clock: clock,
		IRQ:   irq,
		log:   log,
	}
	if c.log == nil {
		c.log = dmglog.Null()
	}
	c.Reset()
	return c
}

// Reset restores the post-boot register and PC/SP state.
func (c *CPU) Reset() {
	c.Registers.Reset()
	c.PC = 0x0100
	c.SP = 0xFFFE
	c.Halted = false
	c.enablingIME = false
}

// tick charges n M-cycles to the Timer/PPU/DMA scheduler.
func (c *CPU) tick(n int) {
	c.clock.Tick(n)
}

func (c *CPU) read8(addr uint16) uint8 {
	v := c.bus.Read(addr)
	c.tick(1)
	return v
}

func (c *CPU) write8(addr uint16, v uint8) {
	c.bus.Write(addr, v)
	c.tick(1)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := c.read8(addr)
	hi := c.read8(addr + 1)
	return bits.Join(hi, lo)
}

// fetch8 reads the byte at PC and advances PC, charging 1 M-cycle.
func (c *CPU) fetch8() uint8 {
	v := c.read8(c.PC)
	c.PC++
	return v
}

// fetch16 reads the 16-bit little-endian value at PC and advances PC by
// two, charging 2 M-cycles.
func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return bits.Join(hi, lo)
}

// Step executes one CPU instruction (or one halted tick),
// It returns a *gberr.DecodeError if the fetched opcode has no
// descriptor — the only condition under which the CPU refuses to make
// forward progress.
func (c *CPU) Step() error {
	if c.Halted {
		c.tick(1)
		if c.IRQ.Pending() {
			c.Halted = false
		}
	} else {
		pc := c.PC
		opcode := c.fetch8()
		c.opcode = opcode
		instr := OpcodeTable[opcode]
		if instr.Mnemonic == MNone {
			return c.decodeError(pc, opcode, false)
		}
		if err := c.fetchOperand(&instr); err != nil {
			return err
		}
		if err := c.execute(&instr); err != nil {
			return err
		}
	}

	if c.IRQ.IME && c.IRQ.Pending() {
		c.serviceInterrupt()
	}

	if c.enablingIME {
		c.IRQ.IME = true
		c.enablingIME = false
	}

	return nil
}

// serviceInterrupt pushes PC, jumps to the highest-priority pending
// vector, clears the serviced IF bit, and clears IME.
func (c *CPU) serviceInterrupt() {
	flag, addr, ok := c.IRQ.Next()
	if !ok {
		return
	}
	c.tick(2) // internal delay before the vector dispatch
	c.pushPC16(c.PC)
	c.PC = addr
	c.IRQ.Clear(flag)
	c.IRQ.IME = false
	c.Halted = false
}

func (c *CPU) decodeError(pc uint16, opcode uint8, cb bool) error {
	err := &gberr.DecodeError{
		PC: pc, Opcode: opcode, CBPage: cb,
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L, SP: c.SP,
	}
	c.log.Errorf("%v", err)
	return err
}

// register8 returns the addressed 8-bit register, panicking for RNone or
// a 16-bit pair — a programming error in the opcode table, not guest
// misbehavior.
func (c *CPU) register8(id RegID) *uint8 {
	switch id {
	case RA:
		return &c.A
	case RF:
		return &c.F
	case RB:
		return &c.B
	case RC:
		return &c.C
	case RD:
		return &c.D
	case RE:
		return &c.E
	case RH:
		return &c.H
	case RL:
		return &c.L
	}
	panic("cpu: not an 8-bit register")
}

func (c *CPU) readReg16(id RegID) uint16 {
	switch id {
	case RAF:
		return c.AF()
	case RBC:
		return c.BC()
	case RDE:
		return c.DE()
	case RHL:
		return c.HL()
	case RSP:
		return c.SP
	case RPC:
		return c.PC
	}
	panic("cpu: not a 16-bit register")
}

func (c *CPU) writeReg16(id RegID, v uint16) {
	switch id {
	case RAF:
		c.SetAF(v)
	case RBC:
		c.SetBC(v)
	case RDE:
		c.SetDE(v)
	case RHL:
		c.SetHL(v)
	case RSP:
		c.SP = v
	case RPC:
		c.PC = v
	default:
		panic("cpu: not a 16-bit register")
	}
}

func condSatisfied(cond Cond, r *Registers) bool {
	switch cond {
	case CondNZ:
		return !r.Zero()
	case CondZ:
		return r.Zero()
	case CondNC:
		return !r.Carry()
	case CondC:
		return r.Carry()
	}
	return true
}

// pushPC16 pushes a 16-bit value used for return-address bookkeeping
// (CALL, RST, and interrupt dispatch): two writes, no extra M-cycle.
func (c *CPU) pushPC16(v uint16) {
	c.SP--
	c.write8(c.SP, bits.Hi(v))
	c.SP--
	c.write8(c.SP, bits.Lo(v))
}

// pushStack16 is the explicit PUSH instruction: two writes plus the
// documented extra M-cycle.
func (c *CPU) pushStack16(v uint16) {
	c.pushPC16(v)
	c.tick(1)
}

// popStack16 is the explicit POP/RET pop: two reads, SP incrementing
// between and after.
func (c *CPU) popStack16() uint16 {
	lo := c.read8(c.SP)
	c.SP++
	hi := c.read8(c.SP)
	c.SP++
	return bits.Join(hi, lo)
}

// jumpTo implements goto(addr, push_pc): if cond is
// satisfied, optionally pushes the return address, jumps, and charges
// the 1 M-cycle branch-taken cost.
func (c *CPU) jumpTo(addr uint16, pushPC bool, cond Cond) {
	if !condSatisfied(cond, &c.Registers) {
		return
	}
	if pushPC {
		c.pushPC16(c.PC)
	}
	c.PC = addr
	c.tick(1)
}
