package arch

// Info describes a single opcode.
type Info struct {
	Mnemonic int         // Instruction mnemonic.
	Mode     AddressMode // Operand address mode.
	Size     int         // Instruction size in bytes, including the opcode.
	Cycles   int         // Base cycle count, excluding page crossing penalties.
	defined  bool
}

func op(mnemonic int, mode AddressMode, cycles int) Info {
	return Info{
		Mnemonic: mnemonic,
		Mode:     mode,
		Size:     1 + OperandSize(mode),
		Cycles:   cycles,
		defined:  true,
	}
}

// table holds the documented NMOS 6502 opcodes. All other entries are undefined.
var table = [256]Info{
	0x69: op(ADC, Immediate, 2), 0x65: op(ADC, ZeroPage, 3), 0x75: op(ADC, ZeroPageX, 4), 0x6d: op(ADC, Absolute, 4),
	0x7d: op(ADC, AbsoluteX, 4), 0x79: op(ADC, AbsoluteY, 4), 0x61: op(ADC, IndirectX, 6), 0x71: op(ADC, IndirectY, 5),

	0x29: op(AND, Immediate, 2), 0x25: op(AND, ZeroPage, 3), 0x35: op(AND, ZeroPageX, 4), 0x2d: op(AND, Absolute, 4),
	0x3d: op(AND, AbsoluteX, 4), 0x39: op(AND, AbsoluteY, 4), 0x21: op(AND, IndirectX, 6), 0x31: op(AND, IndirectY, 5),

	0x0a: op(ASL, Accumulator, 2), 0x06: op(ASL, ZeroPage, 5), 0x16: op(ASL, ZeroPageX, 6), 0x0e: op(ASL, Absolute, 6),
	0x1e: op(ASL, AbsoluteX, 7),

	0x90: op(BCC, Relative, 2), 0xb0: op(BCS, Relative, 2), 0xf0: op(BEQ, Relative, 2), 0x30: op(BMI, Relative, 2),
	0xd0: op(BNE, Relative, 2), 0x10: op(BPL, Relative, 2), 0x50: op(BVC, Relative, 2), 0x70: op(BVS, Relative, 2),

	0x24: op(BIT, ZeroPage, 3), 0x2c: op(BIT, Absolute, 4),

	0x00: op(BRK, Implied, 7),

	0x18: op(CLC, Implied, 2), 0xd8: op(CLD, Implied, 2), 0x58: op(CLI, Implied, 2), 0xb8: op(CLV, Implied, 2),

	0xc9: op(CMP, Immediate, 2), 0xc5: op(CMP, ZeroPage, 3), 0xd5: op(CMP, ZeroPageX, 4), 0xcd: op(CMP, Absolute, 4),
	0xdd: op(CMP, AbsoluteX, 4), 0xd9: op(CMP, AbsoluteY, 4), 0xc1: op(CMP, IndirectX, 6), 0xd1: op(CMP, IndirectY, 5),

	0xe0: op(CPX, Immediate, 2), 0xe4: op(CPX, ZeroPage, 3), 0xec: op(CPX, Absolute, 4),
	0xc0: op(CPY, Immediate, 2), 0xc4: op(CPY, ZeroPage, 3), 0xcc: op(CPY, Absolute, 4),

	0xc6: op(DEC, ZeroPage, 5), 0xd6: op(DEC, ZeroPageX, 6), 0xce: op(DEC, Absolute, 6), 0xde: op(DEC, AbsoluteX, 7),
	0xca: op(DEX, Implied, 2), 0x88: op(DEY, Implied, 2),

	0x49: op(EOR, Immediate, 2), 0x45: op(EOR, ZeroPage, 3), 0x55: op(EOR, ZeroPageX, 4), 0x4d: op(EOR, Absolute, 4),
	0x5d: op(EOR, AbsoluteX, 4), 0x59: op(EOR, AbsoluteY, 4), 0x41: op(EOR, IndirectX, 6), 0x51: op(EOR, IndirectY, 5),

	0xe6: op(INC, ZeroPage, 5), 0xf6: op(INC, ZeroPageX, 6), 0xee: op(INC, Absolute, 6), 0xfe: op(INC, AbsoluteX, 7),
	0xe8: op(INX, Implied, 2), 0xc8: op(INY, Implied, 2),

	0x4c: op(JMP, Absolute, 3), 0x6c: op(JMP, Indirect, 5),
	0x20: op(JSR, Absolute, 6),

	0xa9: op(LDA, Immediate, 2), 0xa5: op(LDA, ZeroPage, 3), 0xb5: op(LDA, ZeroPageX, 4), 0xad: op(LDA, Absolute, 4),
	0xbd: op(LDA, AbsoluteX, 4), 0xb9: op(LDA, AbsoluteY, 4), 0xa1: op(LDA, IndirectX, 6), 0xb1: op(LDA, IndirectY, 5),

	0xa2: op(LDX, Immediate, 2), 0xa6: op(LDX, ZeroPage, 3), 0xb6: op(LDX, ZeroPageY, 4), 0xae: op(LDX, Absolute, 4),
	0xbe: op(LDX, AbsoluteY, 4),

	0xa0: op(LDY, Immediate, 2), 0xa4: op(LDY, ZeroPage, 3), 0xb4: op(LDY, ZeroPageX, 4), 0xac: op(LDY, Absolute, 4),
	0xbc: op(LDY, AbsoluteX, 4),

	0x4a: op(LSR, Accumulator, 2), 0x46: op(LSR, ZeroPage, 5), 0x56: op(LSR, ZeroPageX, 6), 0x4e: op(LSR, Absolute, 6),
	0x5e: op(LSR, AbsoluteX, 7),

	0xea: op(NOP, Implied, 2),

	0x09: op(ORA, Immediate, 2), 0x05: op(ORA, ZeroPage, 3), 0x15: op(ORA, ZeroPageX, 4), 0x0d: op(ORA, Absolute, 4),
	0x1d: op(ORA, AbsoluteX, 4), 0x19: op(ORA, AbsoluteY, 4), 0x01: op(ORA, IndirectX, 6), 0x11: op(ORA, IndirectY, 5),

	0x48: op(PHA, Implied, 3), 0x08: op(PHP, Implied, 3), 0x68: op(PLA, Implied, 4), 0x28: op(PLP, Implied, 4),

	0x2a: op(ROL, Accumulator, 2), 0x26: op(ROL, ZeroPage, 5), 0x36: op(ROL, ZeroPageX, 6), 0x2e: op(ROL, Absolute, 6),
	0x3e: op(ROL, AbsoluteX, 7),

	0x6a: op(ROR, Accumulator, 2), 0x66: op(ROR, ZeroPage, 5), 0x76: op(ROR, ZeroPageX, 6), 0x6e: op(ROR, Absolute, 6),
	0x7e: op(ROR, AbsoluteX, 7),

	0x40: op(RTI, Implied, 6), 0x60: op(RTS, Implied, 6),

	0xe9: op(SBC, Immediate, 2), 0xe5: op(SBC, ZeroPage, 3), 0xf5: op(SBC, ZeroPageX, 4), 0xed: op(SBC, Absolute, 4),
	0xfd: op(SBC, AbsoluteX, 4), 0xf9: op(SBC, AbsoluteY, 4), 0xe1: op(SBC, IndirectX, 6), 0xf1: op(SBC, IndirectY, 5),

	0x38: op(SEC, Implied, 2), 0xf8: op(SED, Implied, 2), 0x78: op(SEI, Implied, 2),

	0x85: op(STA, ZeroPage, 3), 0x95: op(STA, ZeroPageX, 4), 0x8d: op(STA, Absolute, 4), 0x9d: op(STA, AbsoluteX, 5),
	0x99: op(STA, AbsoluteY, 5), 0x81: op(STA, IndirectX, 6), 0x91: op(STA, IndirectY, 6),

	0x86: op(STX, ZeroPage, 3), 0x96: op(STX, ZeroPageY, 4), 0x8e: op(STX, Absolute, 4),
	0x84: op(STY, ZeroPage, 3), 0x94: op(STY, ZeroPageX, 4), 0x8c: op(STY, Absolute, 4),

	0xaa: op(TAX, Implied, 2), 0xa8: op(TAY, Implied, 2), 0xba: op(TSX, Implied, 2),
	0x8a: op(TXA, Implied, 2), 0x9a: op(TXS, Implied, 2), 0x98: op(TYA, Implied, 2),
}

// Lookup returns the opcode description for the given opcode byte.
// Returns false if the opcode is not a documented instruction.
func Lookup(opcode byte) (Info, bool) {
	info := table[opcode]
	return info, info.defined
}

// Encode returns the opcode byte for the given mnemonic and address mode.
// Returns false if the combination does not exist.
func Encode(mnemonic int, mode AddressMode) (byte, bool) {
	for i := range table {
		if table[i].defined && table[i].Mnemonic == mnemonic && table[i].Mode == mode {
			return byte(i), true
		}
	}
	return 0, false
}

// Modes returns the set of address modes supported by the given mnemonic.
func Modes(mnemonic int) []AddressMode {
	var out []AddressMode
	for i := range table {
		if table[i].defined && table[i].Mnemonic == mnemonic {
			out = append(out, table[i].Mode)
		}
	}
	return out
}
