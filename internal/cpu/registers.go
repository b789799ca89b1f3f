package cpu

// Register is a single 8-bit register.
type Register = uint8

// RegisterPair is two 8-bit registers addressed as one 16-bit
// register, the first being the high byte.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the pair.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the pair.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Registers holds the 8-bit registers, and the pairs they form.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register // flags, the low nibble is always 0
	H Register
	L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// registerNames is the operand order of the r fields of an opcode.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// registerPairNames is the operand order of the rr fields of an
// opcode. PUSH and POP use AF in place of SP.
var registerPairNames = [4]string{"BC", "DE", "HL", "SP"}

// readRegister returns operand r, 6 being the byte at (HL).
func (c *CPU) readRegister(r uint8) uint8 {
	switch r & 7 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.mmu.Read(c.HL.Uint16())
	default:
		return c.A
	}
}

// writeRegister sets operand r, 6 being the byte at (HL).
func (c *CPU) writeRegister(r uint8, value uint8) {
	switch r & 7 {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		c.H = value
	case 5:
		c.L = value
	case 6:
		c.mmu.Write(c.HL.Uint16(), value)
	default:
		c.A = value
	}
}

// readRegisterPair returns operand rr, 3 being SP.
func (c *CPU) readRegisterPair(rr uint8) uint16 {
	switch rr & 3 {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	default:
		return c.SP
	}
}

// writeRegisterPair sets operand rr, 3 being SP.
func (c *CPU) writeRegisterPair(rr uint8, value uint16) {
	switch rr & 3 {
	case 0:
		c.BC.SetUint16(value)
	case 1:
		c.DE.SetUint16(value)
	case 2:
		c.HL.SetUint16(value)
	default:
		c.SP = value
	}
}
