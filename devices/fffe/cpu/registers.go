package cpu

import (
	"fmt"
	"strings"

	"github.com/hexaflex/px65/arch"
)

// Status defines the packed processor status register.
type Status byte

// Status flags.
const (
	Carry            Status = 1 << iota // C: carry out of bit 7, or no borrow.
	Zero                                // Z: last result was zero.
	InterruptDisable                    // I: IRQs are masked.
	Decimal                             // D: ADC and SBC operate on BCD values.
	Break                               // B: only meaningful in pushed copies of P.
	Unused                              // Always set in pushed copies of P.
	Overflow                            // V: signed overflow.
	Negative                            // N: bit 7 of the last result.
)

// Has returns true if all of the given flags are set.
func (s Status) Has(flag Status) bool {
	return s&flag == flag
}

// Set sets or clears the given flags.
func (s *Status) Set(flag Status, v bool) {
	if v {
		*s |= flag
	} else {
		*s &^= flag
	}
}

// String returns the flags in "NV-BDIZC" order; set flags are
// upper case, clear flags lower case.
func (s Status) String() string {
	var out [8]byte
	for i := 0; i < 8; i++ {
		c := arch.FlagNames[i]
		if c != '-' && s&(0x80>>uint(i)) == 0 {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out[:])
}

// Registers defines the register file.
type Registers struct {
	A  byte   // Accumulator.
	X  byte   // Index register X.
	Y  byte   // Index register Y.
	SP byte   // Stack pointer, an offset into the stack page.
	PC uint16 // Program counter.
	P  Status // Processor status.
}

// String returns the register contents in the form
// "A=00 X=00 Y=00 SP=ff PC=8000 P=nv-bdizc".
func (r Registers) String() string {
	var sb strings.Builder
	for n := arch.RegA; n <= arch.RegP; n++ {
		if n > arch.RegA {
			sb.WriteByte(' ')
		}

		name := arch.RegisterName(n)
		switch n {
		case arch.RegA:
			fmt.Fprintf(&sb, "%s=%02x", name, r.A)
		case arch.RegX:
			fmt.Fprintf(&sb, "%s=%02x", name, r.X)
		case arch.RegY:
			fmt.Fprintf(&sb, "%s=%02x", name, r.Y)
		case arch.RegSP:
			fmt.Fprintf(&sb, "%s=%02x", name, r.SP)
		case arch.RegPC:
			fmt.Fprintf(&sb, "%s=%04x", name, r.PC)
		case arch.RegP:
			fmt.Fprintf(&sb, "%s=%s", name, r.P)
		}
	}
	return sb.String()
}

// Reset restores the power-on state: PC at the load origin, SP at the
// top of the stack page and everything else cleared.
func (r *Registers) Reset() {
	*r = Registers{
		PC: Origin,
		SP: 0xff,
	}
}

// setZN updates the zero and negative flags for the given result.
// Carry and overflow are left untouched.
func (r *Registers) setZN(result byte) {
	r.P.Set(Zero, result == 0)
	r.P.Set(Negative, result&0x80 != 0)
}
