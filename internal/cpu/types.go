package cpu

// RegID names an operand register, 8- or 16-bit, for an Instruction
// descriptor.
type RegID uint8

const (
	RNone RegID = iota
	RA
	RF
	RB
	RC
	RD
	RE
	RH
	RL
	RAF
	RBC
	RDE
	RHL
	RSP
	RPC
)

// Is16 reports whether the register is a 16-bit pair.
func (r RegID) Is16() bool { return r >= RAF }

// AddrMode enumerates the operand-fetch strategies an instruction can use.
type AddrMode uint8

const (
	AddrImplicit AddrMode = iota
	AddrR                 // R: operand = regs[R1]
	AddrRR                // R_R: operand = regs[R2], dest is R1
	AddrMRR               // MR_R: dest = regs[R1] (mem), value = regs[R2]
	AddrRMR               // R_MR: operand = mem[regs[R2]], dest is R1
	AddrRD8               // R_D8
	AddrRD16              // R_D16
	AddrD16               // D16
	AddrD8                // D8
	AddrRHLI              // R_HLI
	AddrRHLD              // R_HLD
	AddrHLIR              // HLI_R
	AddrHLDR              // HLD_R
	AddrRA8               // R_A8
	AddrA8R               // A8_R
	AddrA16R              // A16_R
	AddrRA16              // R_A16
	AddrHLSPR             // HL_SPR
	AddrMR                // MR
	AddrMRD8              // MR_D8
)

// Mnemonic names the operation an Instruction performs.
type Mnemonic uint8

const (
	MNone Mnemonic = iota
	MNOP
	MLD
	MLDH
	MINC
	MDEC
	MRLCA
	MADD
	MRRCA
	MSTOP
	MRLA
	MJR
	MRRA
	MDAA
	MCPL
	MSCF
	MCCF
	MHALT
	MADC
	MSUB
	MSBC
	MAND
	MXOR
	MOR
	MCP
	MPOP
	MJP
	MJPHL
	MPUSH
	MRET
	MCB
	MCALL
	MRETI
	MDI
	MEI
	MRST
)

// Cond enumerates branch conditions.
type Cond uint8

const (
	CondNone Cond = iota
	CondNZ
	CondZ
	CondNC
	CondC
)

// Instruction is the read-only descriptor the opcode table assigns to
// each opcode.
type Instruction struct {
	Mnemonic Mnemonic
	Mode     AddrMode
	R1, R2   RegID
	Cond     Cond
	Param    uint16 // RST target address
}

// reg8Order is the register index table used by the LD r,r' / ALU A,r
// blocks (0x40-0xBF) and the CB page: B,C,D,E,H,L,(HL),A.
var reg8Order = [8]RegID{RB, RC, RD, RE, RH, RL, RHL, RA}
