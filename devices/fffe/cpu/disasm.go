package cpu

import (
	"fmt"

	"github.com/hexaflex/px65/arch"
)

// Reader is a read-only byte addressable memory.
type Reader interface {
	Read(addr uint16) byte
}

// Disassemble renders the instruction at addr in conventional 6502 syntax.
// It returns the text and the instruction size in bytes. Undefined opcodes,
// and instructions running past the end of memory, render as a single
// .byte directive.
func Disassemble(mem Reader, addr uint16) (string, int) {
	opcode := mem.Read(addr)
	info, ok := arch.Lookup(opcode)
	if !ok || int(addr)+info.Size > AddressSpace {
		return fmt.Sprintf(".byte $%02x", opcode), 1
	}

	name, _ := arch.Name(info.Mnemonic)
	lo := mem.Read(addr + 1)
	word := uint16(mem.Read(addr+2))<<8 | uint16(lo)

	switch info.Mode {
	case arch.Implied:
		return name, info.Size
	case arch.Accumulator:
		return name + " A", info.Size
	case arch.Immediate:
		return fmt.Sprintf("%s #$%02x", name, lo), info.Size
	case arch.ZeroPage:
		return fmt.Sprintf("%s $%02x", name, lo), info.Size
	case arch.ZeroPageX:
		return fmt.Sprintf("%s $%02x,X", name, lo), info.Size
	case arch.ZeroPageY:
		return fmt.Sprintf("%s $%02x,Y", name, lo), info.Size
	case arch.Relative:
		target := addr + 2 + uint16(int8(lo))
		return fmt.Sprintf("%s $%04x", name, target), info.Size
	case arch.Absolute:
		return fmt.Sprintf("%s $%04x", name, word), info.Size
	case arch.AbsoluteX:
		return fmt.Sprintf("%s $%04x,X", name, word), info.Size
	case arch.AbsoluteY:
		return fmt.Sprintf("%s $%04x,Y", name, word), info.Size
	case arch.Indirect:
		return fmt.Sprintf("%s ($%04x)", name, word), info.Size
	case arch.IndirectX:
		return fmt.Sprintf("%s ($%02x,X)", name, lo), info.Size
	case arch.IndirectY:
		return fmt.Sprintf("%s ($%02x),Y", name, lo), info.Size
	}

	return name, info.Size
}

// String returns the disassembly of the decoded instruction.
func (i *Instruction) String() string {
	var raw [3]byte
	raw[0] = i.Opcode
	copy(raw[1:], i.Operand.Raw[:])
	text, _ := Disassemble(instrBytes(raw), 0)
	if i.Info.Mode == arch.Relative {
		text = fmt.Sprintf("%s $%04x", i.Name(), i.Operand.Address)
	}
	return text
}

// instrBytes serves the bytes of a single instruction as memory.
type instrBytes [3]byte

func (b instrBytes) Read(addr uint16) byte {
	if int(addr) < len(b) {
		return b[addr]
	}
	return 0
}
