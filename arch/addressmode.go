package arch

// AddressMode defines instruction operand address modes.
type AddressMode byte

// Known address modes.
const (
	Implied     AddressMode = iota // CLC
	Accumulator                    // ASL A
	Immediate                      // LDA #$10
	ZeroPage                       // LDA $10
	ZeroPageX                      // LDA $10,X
	ZeroPageY                      // LDX $10,Y
	Relative                       // BNE label
	Absolute                       // LDA $1234
	AbsoluteX                      // LDA $1234,X
	AbsoluteY                      // LDA $1234,Y
	Indirect                       // JMP ($1234)
	IndirectX                      // LDA ($10,X)
	IndirectY                      // LDA ($10),Y
)

// OperandSize returns the number of operand bytes following an
// opcode with the given address mode.
func OperandSize(mode AddressMode) int {
	switch mode {
	case Implied, Accumulator:
		return 0
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	}
	return 1
}

func (m AddressMode) String() string {
	switch m {
	case Implied:
		return "implied"
	case Accumulator:
		return "accumulator"
	case Immediate:
		return "immediate"
	case ZeroPage:
		return "zeropage"
	case ZeroPageX:
		return "zeropage,x"
	case ZeroPageY:
		return "zeropage,y"
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	case AbsoluteX:
		return "absolute,x"
	case AbsoluteY:
		return "absolute,y"
	case Indirect:
		return "indirect"
	case IndirectX:
		return "(indirect,x)"
	case IndirectY:
		return "(indirect),y"
	}
	return "unknown"
}
