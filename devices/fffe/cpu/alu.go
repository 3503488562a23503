package cpu

// adc adds v and the carry flag to the accumulator.
func (c *CPU) adc(v byte) {
	if c.regs.P.Has(Decimal) {
		c.adcDecimal(v)
		return
	}
	c.adcBinary(v)
}

// sbc subtracts v and the inverted carry flag from the accumulator.
func (c *CPU) sbc(v byte) {
	if c.regs.P.Has(Decimal) {
		c.sbcDecimal(v)
		return
	}
	c.adcBinary(^v)
}

// adcBinary performs a two's complement addition with carry.
// C is the carry out of bit 7. V is set when both inputs share a
// sign which differs from the sign of the result.
func (c *CPU) adcBinary(v byte) {
	r := &c.regs
	sum := uint16(r.A) + uint16(v) + uint16(r.P&Carry)
	result := byte(sum)

	r.P.Set(Carry, sum > 0xff)
	r.P.Set(Overflow, (r.A^result)&(v^result)&0x80 != 0)
	r.A = result
	r.setZN(result)
}

// adcDecimal performs a BCD addition the way the NMOS 6502 does:
// Z follows the binary sum while N and V are taken from the
// intermediate result before the high nibble is adjusted.
func (c *CPU) adcDecimal(v byte) {
	r := &c.regs
	a, m, carry := int(r.A), int(v), int(r.P&Carry)

	lo := a&0x0f + m&0x0f + carry
	if lo > 9 {
		lo += 6
	}

	hi := a>>4 + m>>4
	if lo > 0x0f {
		hi++
	}

	r.P.Set(Zero, byte(a+m+carry) == 0)
	r.P.Set(Negative, hi&0x08 != 0)
	r.P.Set(Overflow, ^(a^m)&(a^(hi<<4))&0x80 != 0)

	if hi > 9 {
		hi += 6
	}

	r.P.Set(Carry, hi > 0x0f)
	r.A = byte(hi<<4 | lo&0x0f)
}

// sbcDecimal performs a BCD subtraction. All flags follow the
// binary subtraction; only the accumulator is decimal adjusted.
func (c *CPU) sbcDecimal(v byte) {
	r := &c.regs
	a, m, borrow := int(r.A), int(v), 1-int(r.P&Carry)

	lo := a&0x0f - m&0x0f - borrow
	hi := a>>4 - m>>4
	if lo < 0 {
		lo -= 6
		hi--
	}
	if hi < 0 {
		hi -= 6
	}

	c.adcBinary(^v)
	r.A = byte(hi<<4 | lo&0x0f)
}
