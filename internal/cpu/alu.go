package cpu

// add adds n (and the carry flag, if shouldCarry is set) to the A
// Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, shouldCarry bool) {
	var carry uint8
	if shouldCarry {
		carry = c.carryBit()
	}
	result := uint16(c.A) + uint16(n) + uint16(carry)
	c.setFlags(uint8(result) == 0, false, c.A&0x0F+n&0x0F+carry > 0x0F, result > 0xFF)
	c.A = uint8(result)
}

// sub subtracts n (and the carry flag, if shouldCarry is set) from
// the A Register.
//
//	SUB n
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, shouldCarry bool) {
	var carry uint8
	if shouldCarry {
		carry = c.carryBit()
	}
	result := int16(c.A) - int16(n) - int16(carry)
	c.setFlags(uint8(result) == 0, true, int16(c.A&0x0F)-int16(n&0x0F)-int16(carry) < 0, result < 0)
	c.A = uint8(result)
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// compare compares n to the A Register.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Set if no borrow.
func (c *CPU) compare(n uint8) {
	c.setFlags(c.A-n == 0, true, n&0x0f > c.A&0x0f, n > c.A)
}

// increment n by 1 and set the flags accordingly.
//
//	INC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from lower nibble.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 0x01
	c.setFlags(incremented == 0, false, n&0xF == 0xF, c.isFlagSet(FlagCarry))
	return incremented
}

// decrement n by 1 and set the flags accordingly.
//
//	DEC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 0x01
	c.setFlags(decremented == 0, true, n&0xF == 0, c.isFlagSet(FlagCarry))
	return decremented
}

// addHLRR adds the value of n to the HL Register pair.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHLRR(n uint16) {
	hl := c.HL.Uint16()
	result := uint32(hl) + uint32(n)
	c.setFlags(c.isFlagSet(FlagZero), false, hl&0x0FFF+n&0x0FFF > 0x0FFF, result > 0xFFFF)
	c.HL.SetUint16(uint16(result))
}

// addSPSigned reads a signed operand and returns SP plus it. The
// half carry and carry flags come from the unsigned addition of the
// operand to the low byte of SP.
//
//	ADD SP, e
//	LD HL, SP+e
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned() uint16 {
	value := c.readOperand()
	c.setFlags(false, false, c.SP&0x0F+uint16(value&0x0F) > 0x0F, c.SP&0xFF+uint16(value) > 0xFF)
	return c.SP + uint16(int8(value))
}

// decimalAdjust adjusts the A Register to binary coded decimal
// after an addition or subtraction.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if register A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	var correction uint8
	carry := c.isFlagSet(FlagCarry)
	if !c.isFlagSet(FlagSubtract) {
		if c.isFlagSet(FlagHalfCarry) || c.A&0x0F > 0x09 {
			correction |= 0x06
		}
		if carry || c.A > 0x99 {
			correction |= 0x60
			carry = true
		}
		c.A += correction
	} else {
		if c.isFlagSet(FlagHalfCarry) {
			correction |= 0x06
		}
		if carry {
			correction |= 0x60
		}
		c.A -= correction
	}
	c.setFlags(c.A == 0, c.isFlagSet(FlagSubtract), false, carry)
}
