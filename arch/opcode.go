// Package arch defines the 6502 instruction set along with
// some related helper functions.
package arch

import "strings"

// Known instruction mnemonics.
const (
	ADC = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA

	mnemonicCount
)

var names = [mnemonicCount]string{
	ADC: "ADC", AND: "AND", ASL: "ASL", BCC: "BCC", BCS: "BCS", BEQ: "BEQ",
	BIT: "BIT", BMI: "BMI", BNE: "BNE", BPL: "BPL", BRK: "BRK", BVC: "BVC",
	BVS: "BVS", CLC: "CLC", CLD: "CLD", CLI: "CLI", CLV: "CLV", CMP: "CMP",
	CPX: "CPX", CPY: "CPY", DEC: "DEC", DEX: "DEX", DEY: "DEY", EOR: "EOR",
	INC: "INC", INX: "INX", INY: "INY", JMP: "JMP", JSR: "JSR", LDA: "LDA",
	LDX: "LDX", LDY: "LDY", LSR: "LSR", NOP: "NOP", ORA: "ORA", PHA: "PHA",
	PHP: "PHP", PLA: "PLA", PLP: "PLP", ROL: "ROL", ROR: "ROR", RTI: "RTI",
	RTS: "RTS", SBC: "SBC", SEC: "SEC", SED: "SED", SEI: "SEI", STA: "STA",
	STX: "STX", STY: "STY", TAX: "TAX", TAY: "TAY", TSX: "TSX", TXA: "TXA",
	TXS: "TXS", TYA: "TYA",
}

// Mnemonic returns the mnemonic for the given instruction name.
// Returns false if the name is not recognized.
func Mnemonic(name string) (int, bool) {
	name = strings.ToUpper(name)
	for i, v := range names {
		if v == name {
			return i, true
		}
	}
	return 0, false
}

// Name returns the name for the given mnemonic.
// Returns false if the mnemonic is not recognized.
func Name(mnemonic int) (string, bool) {
	if mnemonic < 0 || mnemonic >= mnemonicCount {
		return "", false
	}
	return names[mnemonic], true
}

// IsBranch returns true if the mnemonic is one of the conditional
// relative branch instructions.
func IsBranch(mnemonic int) bool {
	switch mnemonic {
	case BCC, BCS, BEQ, BMI, BNE, BPL, BVC, BVS:
		return true
	}
	return false
}
