package cpu

import "github.com/hexaflex/px65/arch"

// Operand defines a resolved instruction operand.
type Operand struct {
	Address     uint16  // Effective address. For relative operands, the branch target.
	Value       byte    // Immediate value. Zero for other modes.
	Raw         [2]byte // Operand bytes as they appear in the instruction stream.
	Size        int     // Number of operand bytes consumed: 0, 1 or 2.
	PageCrossed bool    // Did indexing or branching cross a page boundary?
}

// resolve computes the operand for an instruction with the given address
// mode whose opcode is stored at pc. It only reads memory and registers.
//
// Returns ErrBounds if the operand bytes would extend past the top of memory.
func resolve(bus *Bus, regs *Registers, mode arch.AddressMode, pc uint16) (Operand, error) {
	var op Operand

	op.Size = arch.OperandSize(mode)
	if int(pc)+op.Size >= AddressSpace {
		return op, ErrBounds
	}

	for i := 0; i < op.Size; i++ {
		op.Raw[i] = bus.Read(pc + 1 + uint16(i))
	}

	lo := op.Raw[0]
	word := uint16(op.Raw[1])<<8 | uint16(op.Raw[0])

	switch mode {
	case arch.Implied, arch.Accumulator:
		/* nop */

	case arch.Immediate:
		op.Address = pc + 1
		op.Value = lo

	case arch.ZeroPage:
		op.Address = uint16(lo)
	case arch.ZeroPageX:
		op.Address = uint16(lo + regs.X)
	case arch.ZeroPageY:
		op.Address = uint16(lo + regs.Y)

	case arch.Relative:
		next := pc + 2
		op.Address = next + uint16(int8(lo))
		op.PageCrossed = next&0xff00 != op.Address&0xff00

	case arch.Absolute:
		op.Address = word
	case arch.AbsoluteX:
		op.Address = word + uint16(regs.X)
		op.PageCrossed = word&0xff00 != op.Address&0xff00
	case arch.AbsoluteY:
		op.Address = word + uint16(regs.Y)
		op.PageCrossed = word&0xff00 != op.Address&0xff00

	case arch.Indirect:
		// The NMOS part never carries into the pointer's high byte:
		// JMP ($10ff) reads its target from $10ff and $1000.
		hi := word&0xff00 | uint16(byte(word)+1)
		op.Address = uint16(bus.Read(hi))<<8 | uint16(bus.Read(word))

	case arch.IndirectX:
		ptr := lo + regs.X
		op.Address = zeroPagePointer(bus, ptr)

	case arch.IndirectY:
		base := zeroPagePointer(bus, lo)
		op.Address = base + uint16(regs.Y)
		op.PageCrossed = base&0xff00 != op.Address&0xff00
	}

	return op, nil
}

// zeroPagePointer reads a 16-bit pointer from two consecutive page zero
// bytes. The high byte wraps around within page zero.
func zeroPagePointer(bus *Bus, ptr byte) uint16 {
	return uint16(bus.Read(uint16(ptr+1)))<<8 | uint16(bus.Read(uint16(ptr)))
}
