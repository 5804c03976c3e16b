package cpu

// OpcodeTable is the immutable, process-start-built index table: a
// plain Go array initialized once here, indexed directly by opcode.
var OpcodeTable [256]Instruction

func init() {
	for i := range OpcodeTable {
		OpcodeTable[i] = Instruction{Mnemonic: MNone}
	}

	// 0x00 - 0x0F
	OpcodeTable[0x00] = Instruction{Mnemonic: MNOP, Mode: AddrImplicit}
	OpcodeTable[0x01] = Instruction{Mnemonic: MLD, Mode: AddrRD16, R1: RBC}
	OpcodeTable[0x02] = Instruction{Mnemonic: MLD, Mode: AddrMRR, R1: RBC, R2: RA}
	OpcodeTable[0x03] = Instruction{Mnemonic: MINC, Mode: AddrR, R1: RBC}
	OpcodeTable[0x04] = Instruction{Mnemonic: MINC, Mode: AddrR, R1: RB}
	OpcodeTable[0x05] = Instruction{Mnemonic: MDEC, Mode: AddrR, R1: RB}
	OpcodeTable[0x06] = Instruction{Mnemonic: MLD, Mode: AddrRD8, R1: RB}
	OpcodeTable[0x07] = Instruction{Mnemonic: MRLCA, Mode: AddrImplicit}
	OpcodeTable[0x08] = Instruction{Mnemonic: MLD, Mode: AddrA16R, R2: RSP}
	OpcodeTable[0x09] = Instruction{Mnemonic: MADD, Mode: AddrRR, R1: RHL, R2: RBC}
	OpcodeTable[0x0A] = Instruction{Mnemonic: MLD, Mode: AddrRMR, R1: RA, R2: RBC}
	OpcodeTable[0x0B] = Instruction{Mnemonic: MDEC, Mode: AddrR, R1: RBC}
	OpcodeTable[0x0C] = Instruction{Mnemonic: MINC, Mode: AddrR, R1: RC}
	OpcodeTable[0x0D] = Instruction{Mnemonic: MDEC, Mode: AddrR, R1: RC}
	OpcodeTable[0x0E] = Instruction{Mnemonic: MLD, Mode: AddrRD8, R1: RC}
	OpcodeTable[0x0F] = Instruction{Mnemonic: MRRCA, Mode: AddrImplicit}

	// 0x10 - 0x1F
	OpcodeTable[0x10] = Instruction{Mnemonic: MSTOP, Mode: AddrD8}
	OpcodeTable[0x11] = Instruction{Mnemonic: MLD, Mode: AddrRD16, R1: RDE}
	OpcodeTable[0x12] = Instruction{Mnemonic: MLD, Mode: AddrMRR, R1: RDE, R2: RA}
	OpcodeTable[0x13] = Instruction{Mnemonic: MINC, Mode: AddrR, R1: RDE}
	OpcodeTable[0x14] = Instruction{Mnemonic: MINC, Mode: AddrR, R1: RD}
	OpcodeTable[0x15] = Instruction{Mnemonic: MDEC, Mode: AddrR, R1: RD}
	OpcodeTable[0x16] = Instruction{Mnemonic: MLD, Mode: AddrRD8, R1: RD}
	OpcodeTable[0x17] = Instruction{Mnemonic: MRLA, Mode: AddrImplicit}
	OpcodeTable[0x18] = Instruction{Mnemonic: MJR, Mode: AddrD8, Cond: CondNone}
	OpcodeTable[0x19] = Instruction{Mnemonic: MADD, Mode: AddrRR, R1: RHL, R2: RDE}
	OpcodeTable[0x1A] = Instruction{Mnemonic: MLD, Mode: AddrRMR, R1: RA, R2: RDE}
	OpcodeTable[0x1B] = Instruction{Mnemonic: MDEC, Mode: AddrR, R1: RDE}
	OpcodeTable[0x1C] = Instruction{Mnemonic: MINC, Mode: AddrR, R1: RE}
	OpcodeTable[0x1D] = Instruction{Mnemonic: MDEC, Mode: AddrR, R1: RE}
	OpcodeTable[0x1E] = Instruction{Mnemonic: MLD, Mode: AddrRD8, R1: RE}
	OpcodeTable[0x1F] = Instruction{Mnemonic: MRRA, Mode: AddrImplicit}

	// 0x20 - 0x2F
	OpcodeTable[0x20] = Instruction{Mnemonic: MJR, Mode: AddrD8, Cond: CondNZ}
	OpcodeTable[0x21] = Instruction{Mnemonic: MLD, Mode: AddrRD16, R1: RHL}
	OpcodeTable[0x22] = Instruction{Mnemonic: MLD, Mode: AddrHLIR, R1: RHL, R2: RA}
	OpcodeTable[0x23] = Instruction{Mnemonic: MINC, Mode: AddrR, R1: RHL}
	OpcodeTable[0x24] = Instruction{Mnemonic: MINC, Mode: AddrR, R1: RH}
	OpcodeTable[0x25] = Instruction{Mnemonic: MDEC, Mode: AddrR, R1: RH}
	OpcodeTable[0x26] = Instruction{Mnemonic: MLD, Mode: AddrRD8, R1: RH}
	OpcodeTable[0x27] = Instruction{Mnemonic: MDAA, Mode: AddrImplicit}
	OpcodeTable[0x28] = Instruction{Mnemonic: MJR, Mode: AddrD8, Cond: CondZ}
	OpcodeTable[0x29] = Instruction{Mnemonic: MADD, Mode: AddrRR, R1: RHL, R2: RHL}
	OpcodeTable[0x2A] = Instruction{Mnemonic: MLD, Mode: AddrRHLI, R1: RA, R2: RHL}
	OpcodeTable[0x2B] = Instruction{Mnemonic: MDEC, Mode: AddrR, R1: RHL}
	OpcodeTable[0x2C] = Instruction{Mnemonic: MINC, Mode: AddrR, R1: RL}
	OpcodeTable[0x2D] = Instruction{Mnemonic: MDEC, Mode: AddrR, R1: RL}
	OpcodeTable[0x2E] = Instruction{Mnemonic: MLD, Mode: AddrRD8, R1: RL}
	OpcodeTable[0x2F] = Instruction{Mnemonic: MCPL, Mode: AddrImplicit}

	// 0x30 - 0x3F
	OpcodeTable[0x30] = Instruction{Mnemonic: MJR, Mode: AddrD8, Cond: CondNC}
	OpcodeTable[0x31] = Instruction{Mnemonic: MLD, Mode: AddrRD16, R1: RSP}
	OpcodeTable[0x32] = Instruction{Mnemonic: MLD, Mode: AddrHLDR, R1: RHL, R2: RA}
	OpcodeTable[0x33] = Instruction{Mnemonic: MINC, Mode: AddrR, R1: RSP}
	OpcodeTable[0x34] = Instruction{Mnemonic: MINC, Mode: AddrMR, R1: RHL}
	OpcodeTable[0x35] = Instruction{Mnemonic: MDEC, Mode: AddrMR, R1: RHL}
	OpcodeTable[0x36] = Instruction{Mnemonic: MLD, Mode: AddrMRD8, R1: RHL}
	OpcodeTable[0x37] = Instruction{Mnemonic: MSCF, Mode: AddrImplicit}
	OpcodeTable[0x38] = Instruction{Mnemonic: MJR, Mode: AddrD8, Cond: CondC}
	OpcodeTable[0x39] = Instruction{Mnemonic: MADD, Mode: AddrRR, R1: RHL, R2: RSP}
	OpcodeTable[0x3A] = Instruction{Mnemonic: MLD, Mode: AddrRHLD, R1: RA, R2: RHL}
	OpcodeTable[0x3B] = Instruction{Mnemonic: MDEC, Mode: AddrR, R1: RSP}
	OpcodeTable[0x3C] = Instruction{Mnemonic: MINC, Mode: AddrR, R1: RA}
	OpcodeTable[0x3D] = Instruction{Mnemonic: MDEC, Mode: AddrR, R1: RA}
	OpcodeTable[0x3E] = Instruction{Mnemonic: MLD, Mode: AddrRD8, R1: RA}
	OpcodeTable[0x3F] = Instruction{Mnemonic: MCCF, Mode: AddrImplicit}

	// 0x40 - 0x7F: LD r,r' (0x76 is HALT)
	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			op := 0x40 + dst*8 + src
			if op == 0x76 {
				OpcodeTable[op] = Instruction{Mnemonic: MHALT, Mode: AddrImplicit}
				continue
			}
			d, s := reg8Order[dst], reg8Order[src]
			switch {
			case d == RHL:
				OpcodeTable[op] = Instruction{Mnemonic: MLD, Mode: AddrMRR, R1: RHL, R2: s}
			case s == RHL:
				OpcodeTable[op] = Instruction{Mnemonic: MLD, Mode: AddrRMR, R1: d, R2: RHL}
			default:
				OpcodeTable[op] = Instruction{Mnemonic: MLD, Mode: AddrRR, R1: d, R2: s}
			}
		}
	}

	// 0x80 - 0xBF: ALU A,r
	aluRow := [8]Mnemonic{MADD, MADC, MSUB, MSBC, MAND, MXOR, MOR, MCP}
	for row := 0; row < 8; row++ {
		for src := 0; src < 8; src++ {
			op := 0x80 + row*8 + src
			s := reg8Order[src]
			if s == RHL {
				OpcodeTable[op] = Instruction{Mnemonic: aluRow[row], Mode: AddrRMR, R1: RA, R2: RHL}
			} else {
				OpcodeTable[op] = Instruction{Mnemonic: aluRow[row], Mode: AddrRR, R1: RA, R2: s}
			}
		}
	}

	// 0xC0 - 0xCF
	OpcodeTable[0xC0] = Instruction{Mnemonic: MRET, Mode: AddrImplicit, Cond: CondNZ}
	OpcodeTable[0xC1] = Instruction{Mnemonic: MPOP, Mode: AddrImplicit, R1: RBC}
	OpcodeTable[0xC2] = Instruction{Mnemonic: MJP, Mode: AddrD16, Cond: CondNZ}
	OpcodeTable[0xC3] = Instruction{Mnemonic: MJP, Mode: AddrD16, Cond: CondNone}
	OpcodeTable[0xC4] = Instruction{Mnemonic: MCALL, Mode: AddrD16, Cond: CondNZ}
	OpcodeTable[0xC5] = Instruction{Mnemonic: MPUSH, Mode: AddrImplicit, R1: RBC}
	OpcodeTable[0xC6] = Instruction{Mnemonic: MADD, Mode: AddrRD8, R1: RA}
	OpcodeTable[0xC7] = Instruction{Mnemonic: MRST, Mode: AddrImplicit, Param: 0x00}
	OpcodeTable[0xC8] = Instruction{Mnemonic: MRET, Mode: AddrImplicit, Cond: CondZ}
	OpcodeTable[0xC9] = Instruction{Mnemonic: MRET, Mode: AddrImplicit, Cond: CondNone}
	OpcodeTable[0xCA] = Instruction{Mnemonic: MJP, Mode: AddrD16, Cond: CondZ}
	OpcodeTable[0xCB] = Instruction{Mnemonic: MCB, Mode: AddrImplicit}
	OpcodeTable[0xCC] = Instruction{Mnemonic: MCALL, Mode: AddrD16, Cond: CondZ}
	OpcodeTable[0xCD] = Instruction{Mnemonic: MCALL, Mode: AddrD16, Cond: CondNone}
	OpcodeTable[0xCE] = Instruction{Mnemonic: MADC, Mode: AddrRD8, R1: RA}
	OpcodeTable[0xCF] = Instruction{Mnemonic: MRST, Mode: AddrImplicit, Param: 0x08}

	// 0xD0 - 0xDF
	OpcodeTable[0xD0] = Instruction{Mnemonic: MRET, Mode: AddrImplicit, Cond: CondNC}
	OpcodeTable[0xD1] = Instruction{Mnemonic: MPOP, Mode: AddrImplicit, R1: RDE}
	OpcodeTable[0xD2] = Instruction{Mnemonic: MJP, Mode: AddrD16, Cond: CondNC}
	OpcodeTable[0xD4] = Instruction{Mnemonic: MCALL, Mode: AddrD16, Cond: CondNC}
	OpcodeTable[0xD5] = Instruction{Mnemonic: MPUSH, Mode: AddrImplicit, R1: RDE}
	OpcodeTable[0xD6] = Instruction{Mnemonic: MSUB, Mode: AddrRD8, R1: RA}
	OpcodeTable[0xD7] = Instruction{Mnemonic: MRST, Mode: AddrImplicit, Param: 0x10}
	OpcodeTable[0xD8] = Instruction{Mnemonic: MRET, Mode: AddrImplicit, Cond: CondC}
	OpcodeTable[0xD9] = Instruction{Mnemonic: MRETI, Mode: AddrImplicit}
	OpcodeTable[0xDA] = Instruction{Mnemonic: MJP, Mode: AddrD16, Cond: CondC}
	OpcodeTable[0xDC] = Instruction{Mnemonic: MCALL, Mode: AddrD16, Cond: CondC}
	OpcodeTable[0xDE] = Instruction{Mnemonic: MSBC, Mode: AddrRD8, R1: RA}
	OpcodeTable[0xDF] = Instruction{Mnemonic: MRST, Mode: AddrImplicit, Param: 0x18}

	// 0xE0 - 0xEF
	OpcodeTable[0xE0] = Instruction{Mnemonic: MLDH, Mode: AddrA8R, R2: RA}
	OpcodeTable[0xE1] = Instruction{Mnemonic: MPOP, Mode: AddrImplicit, R1: RHL}
	OpcodeTable[0xE2] = Instruction{Mnemonic: MLD, Mode: AddrMRR, R1: RC, R2: RA}
	OpcodeTable[0xE5] = Instruction{Mnemonic: MPUSH, Mode: AddrImplicit, R1: RHL}
	OpcodeTable[0xE6] = Instruction{Mnemonic: MAND, Mode: AddrRD8, R1: RA}
	OpcodeTable[0xE7] = Instruction{Mnemonic: MRST, Mode: AddrImplicit, Param: 0x20}
	OpcodeTable[0xE8] = Instruction{Mnemonic: MADD, Mode: AddrHLSPR, R1: RSP}
	OpcodeTable[0xE9] = Instruction{Mnemonic: MJPHL, Mode: AddrImplicit}
	OpcodeTable[0xEA] = Instruction{Mnemonic: MLD, Mode: AddrA16R, R2: RA}
	OpcodeTable[0xEE] = Instruction{Mnemonic: MXOR, Mode: AddrRD8, R1: RA}
	OpcodeTable[0xEF] = Instruction{Mnemonic: MRST, Mode: AddrImplicit, Param: 0x28}

	// 0xF0 - 0xFF
	OpcodeTable[0xF0] = Instruction{Mnemonic: MLDH, Mode: AddrRA8, R1: RA}
	OpcodeTable[0xF1] = Instruction{Mnemonic: MPOP, Mode: AddrImplicit, R1: RAF}
	OpcodeTable[0xF2] = Instruction{Mnemonic: MLD, Mode: AddrRMR, R1: RA, R2: RC}
	OpcodeTable[0xF3] = Instruction{Mnemonic: MDI, Mode: AddrImplicit}
	OpcodeTable[0xF5] = Instruction{Mnemonic: MPUSH, Mode: AddrImplicit, R1: RAF}
	OpcodeTable[0xF6] = Instruction{Mnemonic: MOR, Mode: AddrRD8, R1: RA}
	OpcodeTable[0xF7] = Instruction{Mnemonic: MRST, Mode: AddrImplicit, Param: 0x30}
	OpcodeTable[0xF8] = Instruction{Mnemonic: MLD, Mode: AddrHLSPR, R1: RHL}
	OpcodeTable[0xF9] = Instruction{Mnemonic: MLD, Mode: AddrRR, R1: RSP, R2: RHL}
	OpcodeTable[0xFA] = Instruction{Mnemonic: MLD, Mode: AddrRA16, R1: RA}
	OpcodeTable[0xFB] = Instruction{Mnemonic: MEI, Mode: AddrImplicit}
	OpcodeTable[0xFE] = Instruction{Mnemonic: MCP, Mode: AddrRD8, R1: RA}
	OpcodeTable[0xFF] = Instruction{Mnemonic: MRST, Mode: AddrImplicit, Param: 0x38}
}
