package cpu

import (
	"github.com/hexaflex/px65/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	IP      uint16    // Instruction address.
	Opcode  byte      // Instruction opcode.
	Info    arch.Info // Opcode description.
	Operand Operand   // Resolved operand.
}

// Decode decodes the instruction at the program counter and advances the
// program counter past the opcode and its operand bytes.
// The registers are left untouched if decoding fails.
func (i *Instruction) Decode(bus *Bus, regs *Registers) error {
	i.IP = regs.PC
	i.Opcode = bus.Read(i.IP)
	i.Operand = Operand{}

	info, ok := arch.Lookup(i.Opcode)
	if !ok {
		i.Info = arch.Info{}
		return newError(ErrDecode, i, "unknown opcode %02x", i.Opcode)
	}
	i.Info = info

	op, err := resolve(bus, regs, info.Mode, i.IP)
	if err != nil {
		return newError(ErrBounds, i, "%d operand byte(s) run past the end of memory", info.Size-1)
	}

	i.Operand = op
	regs.PC = i.IP + uint16(info.Size)
	return nil
}

// Name returns the instruction mnemonic name.
func (i *Instruction) Name() string {
	name, ok := arch.Name(i.Info.Mnemonic)
	if !ok {
		return "???"
	}
	return name
}
